package collector

import "strings"

// Unknown is the placeholder for any attribute without matched, non-empty data.
const Unknown = "unknown"

// Field binds a "Key=" line prefix to the record attribute it fills.
type Field struct {
	Key       string
	Attribute string
}

// field builds the Field for a wmic list property.
func field(name string) Field {
	return Field{Key: name + "=", Attribute: name}
}

func fields(names ...string) []Field {
	out := make([]Field, len(names))
	for i, n := range names {
		out[i] = field(n)
	}
	return out
}

// tryFetchField fills value from line when line starts with key.
// A value that is already known is never overwritten. A non-matching
// line resets a still-unknown value to Unknown.
func tryFetchField(line, key string, value *string) {
	if *value != Unknown {
		return
	}

	if !strings.HasPrefix(line, key) {
		*value = Unknown
		return
	}

	*value = strings.TrimSpace(line[len(key):])
	if *value == "" {
		*value = Unknown
	}
}
