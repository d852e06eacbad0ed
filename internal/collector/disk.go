package collector

// HardDiskProfile describes Win32_DiskDrive, one block per physical drive.
func HardDiskProfile() *Profile {
	return &Profile{
		Category: HardDisk,
		Command:  "wmic diskdrive get BytesPerSector,Caption,FirmwareRevision,Index,InterfaceType,MediaType,Model,Partitions,SerialNumber,Size,Status /format:list",
		Fields: fields(
			"BytesPerSector",
			"Caption",
			"FirmwareRevision",
			"Index",
			"InterfaceType",
			"MediaType",
			"Model",
			"Partitions",
			"SerialNumber",
			"Size",
			"Status",
		),
		Terminator: "Status",
		Conversions: map[string]Conversion{
			"Size": {From: Byte, To: Gigabyte},
		},
	}
}
