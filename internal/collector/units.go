package collector

import (
	"fmt"
	"math"
	"math/bits"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
)

// DataUnit is a power-of-1024 storage unit.
type DataUnit int

const (
	Byte DataUnit = iota
	Kilobyte
	Megabyte
	Gigabyte
	Terabyte
)

var dataUnitNames = [...]string{"byte", "kb", "mb", "gb", "tb"}

func (u DataUnit) String() string {
	if u < Byte || u > Terabyte {
		return fmt.Sprintf("DataUnit(%d)", int(u))
	}
	return dataUnitNames[u]
}

// ParseDataUnit accepts the names printed by DataUnit.String, case-insensitively.
func ParseDataUnit(s string) (DataUnit, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, n := range dataUnitNames {
		if s == n {
			return DataUnit(i), nil
		}
	}
	return Byte, fmt.Errorf("unknown data unit %q", s)
}

// Conversion rescales an attribute from the unit it is reported in to the
// unit it is recorded in.
type Conversion struct {
	From DataUnit
	To   DataUnit
}

// Apply converts raw according to c.
func (c Conversion) Apply(raw string) (string, error) {
	return ConvertDataUnits(raw, c.From, c.To)
}

// ConvertDataUnits rescales the integer magnitude raw from one unit to another.
// Unknown is returned unchanged, as is raw when both units match. Scaling
// up to a larger unit truncates to two fractional digits.
func ConvertDataUnits(raw string, from, to DataUnit) (string, error) {
	if raw == Unknown || from == to {
		return raw, nil
	}

	n, err := strconv.ParseUint(strings.TrimSpace(raw), 10, 64)
	if err != nil {
		return raw, fmt.Errorf("convert %q from %s to %s: %w", raw, from, to, err)
	}

	if to > from {
		v := float64(n) / math.Pow(1024, float64(to-from))
		return humanize.FtoaWithDigits(v, 2), nil
	}

	factor := uint64(1) << (10 * uint(from-to))
	hi, lo := bits.Mul64(n, factor)
	if hi != 0 {
		return raw, fmt.Errorf("convert %q from %s to %s: value overflows", raw, from, to)
	}
	return strconv.FormatUint(lo, 10), nil
}
