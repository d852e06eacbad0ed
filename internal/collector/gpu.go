package collector

// GPUProfile describes Win32_VideoController, one block per adapter.
// AdapterRAM is reported in bytes and recorded in megabytes.
func GPUProfile() *Profile {
	return &Profile{
		Category: GPU,
		Command:  "wmic path Win32_VideoController get AdapterCompatibility,AdapterRAM,CurrentHorizontalResolution,CurrentRefreshRate,CurrentVerticalResolution,DriverDate,DriverVersion,Name,VideoArchitecture,VideoMemoryType,VideoProcessor /format:list",
		Fields: fields(
			"AdapterCompatibility",
			"AdapterRAM",
			"CurrentHorizontalResolution",
			"CurrentRefreshRate",
			"CurrentVerticalResolution",
			"DriverDate",
			"DriverVersion",
			"Name",
			"VideoArchitecture",
			"VideoMemoryType",
			"VideoProcessor",
		),
		Terminator: "VideoProcessor",
		Tables: map[string]*CodeTable{
			"VideoArchitecture": VideoArchitectureTable,
			"VideoMemoryType":   VideoMemoryTypeTable,
		},
		Conversions: map[string]Conversion{
			"AdapterRAM": {From: Byte, To: Megabyte},
		},
	}
}
