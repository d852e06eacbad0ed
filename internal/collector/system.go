package collector

// OSProfile describes Win32_OperatingSystem. Memory sizes are reported
// in kilobytes and recorded in megabytes.
func OSProfile() *Profile {
	return &Profile{
		Category: OperatingSystem,
		Command:  "wmic os get BuildNumber,Caption,FreePhysicalMemory,InstallDate,OSArchitecture,ProductType,SerialNumber,TotalVisibleMemorySize,Version /format:list",
		Fields: fields(
			"BuildNumber",
			"Caption",
			"FreePhysicalMemory",
			"InstallDate",
			"OSArchitecture",
			"ProductType",
			"SerialNumber",
			"TotalVisibleMemorySize",
			"Version",
		),
		Terminator: "Version",
		Tables: map[string]*CodeTable{
			"ProductType": ProductTypeTable,
		},
		Conversions: map[string]Conversion{
			"FreePhysicalMemory":     {From: Kilobyte, To: Megabyte},
			"TotalVisibleMemorySize": {From: Kilobyte, To: Megabyte},
		},
	}
}

// MotherboardProfile describes Win32_BaseBoard.
func MotherboardProfile() *Profile {
	return &Profile{
		Category:   Motherboard,
		Command:    "wmic baseboard get Manufacturer,Product,SerialNumber,Version /format:list",
		Fields:     fields("Manufacturer", "Product", "SerialNumber", "Version"),
		Terminator: "Version",
	}
}
