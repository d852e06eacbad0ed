package collector

import (
	"strings"

	"go.uber.org/zap"
)

// Profile is the per-category configuration driving the shared pipeline:
// which query to run, which fields to extract, which line closes a block
// and how coded or sized attributes are decoded.
type Profile struct {
	Category    Category
	Command     string
	Fields      []Field
	Terminator  string
	Tables      map[string]*CodeTable
	Conversions map[string]Conversion
}

// newWorkingRecord returns an accumulator aligned with p.Fields,
// every slot set to Unknown.
func (p *Profile) newWorkingRecord() []string {
	work := make([]string, len(p.Fields))
	for i := range work {
		work[i] = Unknown
	}
	return work
}

// Assemble scans lines into records. Every line is offered to every field
// first; a line starting with the terminator then closes the current block.
// Lines after the last terminator are dropped.
func (p *Profile) Assemble(lines []string, logger *zap.Logger) []Record {
	if logger == nil {
		logger = zap.NewNop()
	}

	var records []Record
	work := p.newWorkingRecord()
	index := 1

	for _, line := range lines {
		for i, f := range p.Fields {
			tryFetchField(line, f.Key, &work[i])
		}

		if strings.HasPrefix(line, p.Terminator) {
			records = append(records, p.finalize(work, index, logger))
			index++
			work = p.newWorkingRecord()
		}
	}

	return records
}

// finalize applies code tables and unit conversions and freezes work into a Record.
func (p *Profile) finalize(work []string, index int, logger *zap.Logger) Record {
	rec := Record{
		Category:   p.Category,
		Index:      index,
		Attributes: make([]Attribute, len(p.Fields)),
	}

	for i, f := range p.Fields {
		v := work[i]

		if t, ok := p.Tables[f.Attribute]; ok {
			label, err := t.Translate(v)
			if err != nil {
				logger.Error("failed to translate attribute",
					zap.String("category", string(p.Category)),
					zap.String("attribute", f.Attribute),
					zap.Error(err))
			}
			v = label
		}

		if c, ok := p.Conversions[f.Attribute]; ok {
			converted, err := c.Apply(v)
			if err != nil {
				logger.Warn("failed to convert attribute",
					zap.String("category", string(p.Category)),
					zap.String("attribute", f.Attribute),
					zap.Error(err))
			}
			v = converted
		}

		rec.Attributes[i] = Attribute{Name: f.Attribute, Value: v}
	}

	return rec
}
