package collector

// RAMProfile describes Win32_PhysicalMemory, one block per module.
// Capacity is reported in bytes and recorded in capacityUnit.
func RAMProfile(capacityUnit DataUnit) *Profile {
	return &Profile{
		Category: RAM,
		Command:  "wmic path Win32_PhysicalMemory get /format:list",
		Fields: fields(
			"Capacity",
			"ConfiguredClockSpeed",
			"ConfiguredVoltage",
			"DataWidth",
			"DeviceLocator",
			"FormFactor",
			"InterleaveDataDepth",
			"InterleavePosition",
			"Manufacturer",
			"MaxVoltage",
			"MinVoltage",
			"PartNumber",
			"SMBIOSMemoryType",
			"Speed",
			"Tag",
			"TotalWidth",
			"TypeDetail",
		),
		Terminator: "Version",
		Tables: map[string]*CodeTable{
			"FormFactor":       FormFactorTable,
			"SMBIOSMemoryType": MemoryTypeTable,
			"TypeDetail":       TypeDetailTable,
		},
		Conversions: map[string]Conversion{
			"Capacity": {From: Byte, To: capacityUnit},
		},
	}
}
