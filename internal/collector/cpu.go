package collector

// CPUProfile describes Win32_Processor, one block per socket.
func CPUProfile() *Profile {
	return &Profile{
		Category: CPU,
		Command:  "wmic cpu get Architecture,Caption,CurrentClockSpeed,L2CacheSize,L3CacheSize,Manufacturer,MaxClockSpeed,Name,NumberOfCores,NumberOfLogicalProcessors,ProcessorId,ProcessorType,SocketDesignation /format:list",
		Fields: fields(
			"Architecture",
			"Caption",
			"CurrentClockSpeed",
			"L2CacheSize",
			"L3CacheSize",
			"Manufacturer",
			"MaxClockSpeed",
			"Name",
			"NumberOfCores",
			"NumberOfLogicalProcessors",
			"ProcessorId",
			"ProcessorType",
			"SocketDesignation",
		),
		Terminator: "SocketDesignation",
		Tables: map[string]*CodeTable{
			"Architecture":  ArchitectureTable,
			"ProcessorType": ProcessorTypeTable,
		},
	}
}
