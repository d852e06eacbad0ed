package collector

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTryFetchField(t *testing.T) {
	tests := []struct {
		name  string
		line  string
		start string
		want  string
	}{
		{"match", "Capacity=17179869184", Unknown, "17179869184"},
		{"empty value", "Capacity=", Unknown, Unknown},
		{"blank value", "Capacity=   ", Unknown, Unknown},
		{"trailing spaces trimmed", "Capacity=8589934592   ", Unknown, "8589934592"},
		{"no match", "Speed=3200", Unknown, Unknown},
		{"prefix must be at line start", " Capacity=1", Unknown, Unknown},
		{"blank line", "", Unknown, Unknown},
		{"known value kept on match", "Capacity=1", "2", "2"},
		{"known value kept on miss", "Speed=3200", "2", "2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := tt.start
			tryFetchField(tt.line, "Capacity=", &v)
			assert.Equal(t, tt.want, v)
		})
	}
}

func TestTryFetchFieldFirstMatchWins(t *testing.T) {
	v := Unknown
	for _, line := range []string{"Tag=", "Tag=Physical Memory 0", "Speed=1", "Tag=Physical Memory 1"} {
		tryFetchField(line, "Tag=", &v)
	}
	assert.Equal(t, "Physical Memory 0", v)
}

func TestFieldsBuildsKeyPrefixes(t *testing.T) {
	got := fields("Capacity", "Speed")
	assert.Equal(t, []Field{
		{Key: "Capacity=", Attribute: "Capacity"},
		{Key: "Speed=", Attribute: "Speed"},
	}, got)
}
