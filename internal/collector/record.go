package collector

import (
	"fmt"
	"strings"
)

// Category names the hardware or software domain a Collector covers.
type Category string

const (
	Motherboard     Category = "Motherboard"
	OperatingSystem Category = "OS"
	CPU             Category = "CPU"
	GPU             Category = "GPU"
	RAM             Category = "RAM"
	HardDisk        Category = "HardDisk"
)

// Categories lists every category in collection order.
var Categories = []Category{Motherboard, OperatingSystem, CPU, GPU, RAM, HardDisk}

// ParseCategory matches s against the category names, case-insensitively.
func ParseCategory(s string) (Category, error) {
	for _, c := range Categories {
		if strings.EqualFold(s, string(c)) {
			return c, nil
		}
	}
	return "", fmt.Errorf("unknown category %q", s)
}

// Attribute is one named value of a Record.
type Attribute struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Record is one assembled block. Index is 1-based and unique within
// a single collection run; Attributes follow the profile's field order.
type Record struct {
	Category   Category    `json:"category"`
	Index      int         `json:"index"`
	Attributes []Attribute `json:"attributes"`
}

// Value returns the named attribute and whether the record carries it.
func (r Record) Value(name string) (string, bool) {
	for _, a := range r.Attributes {
		if a.Name == name {
			return a.Value, true
		}
	}
	return "", false
}

func (r Record) String() string {
	return fmt.Sprintf("%s #%d", r.Category, r.Index)
}
