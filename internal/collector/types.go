package collector

import (
	"time"

	"go.uber.org/zap"
)

// Inventory is the output of one collection run.
type Inventory struct {
	ID          string                `json:"id"`
	CollectedAt time.Time             `json:"collected_at"`
	Hostname    string                `json:"hostname"`
	Platform    string                `json:"platform"`
	Records     map[Category][]Record `json:"records"`
}

// RecordCount returns the number of records across all categories.
func (inv *Inventory) RecordCount() int {
	n := 0
	for _, recs := range inv.Records {
		n += len(recs)
	}
	return n
}

// Options selects and parameterises the collectors built by Collectors.
type Options struct {
	// Categories limits collection; empty means all, in Categories order.
	Categories []Category
	// RAMCapacityUnit is the unit RAM Capacity is recorded in.
	RAMCapacityUnit DataUnit
}

// ProfileFor returns the profile of category c.
func ProfileFor(c Category, opts Options) *Profile {
	switch c {
	case Motherboard:
		return MotherboardProfile()
	case OperatingSystem:
		return OSProfile()
	case CPU:
		return CPUProfile()
	case GPU:
		return GPUProfile()
	case RAM:
		return RAMProfile(opts.RAMCapacityUnit)
	case HardDisk:
		return HardDiskProfile()
	}
	return nil
}

// Collectors builds one Collector per selected category, sharing exec.
// Selected categories always run in Categories order.
func Collectors(exec Executor, opts Options, logger *zap.Logger) []*Collector {
	selected := make(map[Category]bool, len(opts.Categories))
	for _, c := range opts.Categories {
		selected[c] = true
	}

	var out []*Collector
	for _, c := range Categories {
		if len(selected) > 0 && !selected[c] {
			continue
		}
		out = append(out, New(ProfileFor(c, opts), exec, logger))
	}
	return out
}
