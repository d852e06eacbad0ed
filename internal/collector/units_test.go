package collector

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConvertDataUnits(t *testing.T) {
	tests := []struct {
		raw      string
		from, to DataUnit
		want     string
	}{
		{"17179869184", Byte, Byte, "17179869184"},
		{"17179869184", Byte, Kilobyte, "16777216"},
		{"17179869184", Byte, Gigabyte, "16"},
		{"1610612736", Byte, Gigabyte, "1.5"},
		{"1000", Byte, Kilobyte, "0.97"},
		{"16651808", Kilobyte, Megabyte, "16261.53"},
		{"16", Gigabyte, Byte, "17179869184"},
		{"2", Terabyte, Megabyte, "2097152"},
	}

	for _, tt := range tests {
		got, err := ConvertDataUnits(tt.raw, tt.from, tt.to)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "%s %s->%s", tt.raw, tt.from, tt.to)
	}
}

func TestConvertDataUnitsUnknownPassesThrough(t *testing.T) {
	for _, to := range []DataUnit{Byte, Kilobyte, Megabyte, Gigabyte, Terabyte} {
		got, err := ConvertDataUnits(Unknown, Byte, to)
		require.NoError(t, err)
		assert.Equal(t, Unknown, got)
	}
}

func TestConvertDataUnitsErrors(t *testing.T) {
	got, err := ConvertDataUnits("lots", Byte, Gigabyte)
	assert.Error(t, err)
	assert.Equal(t, "lots", got)

	got, err = ConvertDataUnits("18446744073709551615", Kilobyte, Byte)
	assert.Error(t, err)
	assert.Equal(t, "18446744073709551615", got)
}

func TestParseDataUnit(t *testing.T) {
	u, err := ParseDataUnit(" GB ")
	require.NoError(t, err)
	assert.Equal(t, Gigabyte, u)
	assert.Equal(t, "gb", u.String())

	_, err = ParseDataUnit("parsec")
	assert.Error(t, err)
	assert.Equal(t, "DataUnit(9)", DataUnit(9).String())
}
