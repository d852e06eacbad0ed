package collector

import (
	"fmt"
	"strconv"
	"strings"
)

// CodeError reports a raw value that could not be parsed as a table code.
type CodeError struct {
	Table string
	Raw   string
	Err   error
}

func (e *CodeError) Error() string {
	return fmt.Sprintf("translate %s %q: %v", e.Table, e.Raw, e.Err)
}

func (e *CodeError) Unwrap() error { return e.Err }

// ParseCode parses a base-10 table code.
func ParseCode(raw string) (int, error) {
	return strconv.Atoi(strings.TrimSpace(raw))
}

// CodeTable maps small integer codes to descriptive labels.
// Tables are built once at package init and only read afterwards.
type CodeTable struct {
	name   string
	labels map[int]string
}

func newCodeTable(name string, labels map[int]string) *CodeTable {
	return &CodeTable{name: name, labels: labels}
}

// Name returns the table's descriptive name.
func (t *CodeTable) Name() string { return t.name }

// Codes returns the table's declared domain in no particular order.
func (t *CodeTable) Codes() []int {
	codes := make([]int, 0, len(t.labels))
	for c := range t.labels {
		codes = append(codes, c)
	}
	return codes
}

// Label returns the label for code, or Unknown outside the table's domain.
func (t *CodeTable) Label(code int) string {
	if l, ok := t.labels[code]; ok {
		return l
	}
	return Unknown
}

// Translate decodes raw into its label.
//
// Unknown passes through unchanged. A raw value that is not a base-10
// integer yields an empty string together with a *CodeError, which is
// deliberately distinct from the Unknown returned for out-of-domain codes.
func (t *CodeTable) Translate(raw string) (string, error) {
	if raw == Unknown {
		return Unknown, nil
	}

	code, err := ParseCode(raw)
	if err != nil {
		return "", &CodeError{Table: t.name, Raw: raw, Err: err}
	}
	return t.Label(code), nil
}

var (
	// FormFactorTable decodes Win32_PhysicalMemory.FormFactor.
	FormFactorTable = newCodeTable("ram form factor", map[int]string{
		0:  "Unknown",
		1:  "Other",
		2:  "SIP",
		3:  "DIP",
		4:  "ZIP",
		5:  "SOJ",
		6:  "Proprietary",
		7:  "SIMM",
		8:  "DIMM",
		9:  "TSOP",
		10: "PGA",
		11: "RIMM",
		12: "SODIMM",
		13: "SRIMM",
		14: "SMD",
		15: "SSMP",
		16: "QFD",
		17: "TQFP",
		18: "SOIC",
		19: "LCC",
		20: "PLCC",
		21: "BGA",
		22: "FPBGA",
		23: "LGA",
	})

	// MemoryTypeTable decodes Win32_PhysicalMemory.SMBIOSMemoryType.
	MemoryTypeTable = newCodeTable("smbios memory type", map[int]string{
		0:  "Unknown",
		1:  "Other",
		2:  "DRAM",
		3:  "Synchronous DRAM",
		4:  "Cache DRAM",
		5:  "EDO",
		6:  "EDRAM",
		7:  "VRAM",
		8:  "SRAM",
		9:  "RAM",
		10: "ROM",
		11: "Flash",
		12: "EEPROM",
		13: "FEPROM",
		14: "EPROM",
		15: "CDRAM",
		16: "3DRAM",
		17: "SDRAM",
		18: "SGRAM",
		19: "RDRAM",
		20: "DDR1",
		21: "DDR2",
		22: "DDR2 - FBDIMM",
		23: "DDR2 - FBDIMM",
		24: "DDR3",
		25: "FBD2",
		26: "DDR4",
		27: "LPDDR",
		28: "LPDDR2",
		29: "LPDDR3",
		30: "LPDDR4",
		31: "Logical non-volatile device",
		32: "HBM",
		33: "HBM2",
		34: "DDR5",
		35: "LPDDR5",
	})

	// TypeDetailTable decodes Win32_PhysicalMemory.TypeDetail.
	TypeDetailTable = newCodeTable("ram type detail", map[int]string{
		1:    "Reserved",
		2:    "Other",
		4:    "Unknown",
		8:    "Fast-paged",
		16:   "Static column",
		32:   "Pseudo-static",
		64:   "RAMBUS",
		128:  "Synchronous",
		256:  "CMOS",
		512:  "EDO",
		1024: "Window DRAM",
		2048: "Cache DRAM",
		4096: "Non-volatile",
	})

	// ArchitectureTable decodes Win32_Processor.Architecture.
	ArchitectureTable = newCodeTable("cpu architecture", map[int]string{
		0:  "x86",
		1:  "MIPS",
		2:  "Alpha",
		3:  "PowerPC",
		5:  "ARM",
		6:  "ia64",
		9:  "x64",
		12: "ARM64",
	})

	// ProcessorTypeTable decodes Win32_Processor.ProcessorType.
	ProcessorTypeTable = newCodeTable("cpu processor type", map[int]string{
		1: "Other",
		2: "Unknown",
		3: "Central Processor",
		4: "Math Processor",
		5: "DSP Processor",
		6: "Video Processor",
	})

	// VideoArchitectureTable decodes Win32_VideoController.VideoArchitecture.
	VideoArchitectureTable = newCodeTable("gpu video architecture", map[int]string{
		1:   "Other",
		2:   "Unknown",
		3:   "CGA",
		4:   "EGA",
		5:   "VGA",
		6:   "SVGA",
		7:   "MDA",
		8:   "HGC",
		9:   "MCGA",
		10:  "8514A",
		11:  "XGA",
		12:  "Linear Frame Buffer",
		160: "PC-98",
	})

	// VideoMemoryTypeTable decodes Win32_VideoController.VideoMemoryType.
	VideoMemoryTypeTable = newCodeTable("gpu video memory type", map[int]string{
		1:  "Other",
		2:  "Unknown",
		3:  "VRAM",
		4:  "DRAM",
		5:  "SRAM",
		6:  "WRAM",
		7:  "EDO RAM",
		8:  "Burst Synchronous DRAM",
		9:  "Pipelined Burst SRAM",
		10: "CDRAM",
		11: "3DRAM",
		12: "SDRAM",
		13: "SGRAM",
	})

	// ProductTypeTable decodes Win32_OperatingSystem.ProductType.
	ProductTypeTable = newCodeTable("os product type", map[int]string{
		1: "Work Station",
		2: "Domain Controller",
		3: "Server",
	})
)
