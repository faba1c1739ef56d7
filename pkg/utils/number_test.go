package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToInt(t *testing.T) {
	cases := []struct {
		in   string
		want *int
	}{
		{"45", intPtr(45)},
		{" 1,200 ", intPtr(1200)},
		{"", nil},
		{"unknown", nil},
		{"12.5", nil},
	}
	for _, c := range cases {
		got := ToInt(c.in)
		if c.want == nil {
			assert.Nil(t, got, "input %q", c.in)
			continue
		}
		require.NotNil(t, got, "input %q", c.in)
		assert.Equal(t, *c.want, *got, "input %q", c.in)
	}
}

func TestToDecimal(t *testing.T) {
	cases := []struct {
		in   string
		want *float64
	}{
		{"1200", floatPtr(1200)},
		{"€2M", floatPtr(2_000_000)},
		{"$2.5m", floatPtr(2_500_000)},
		{"€1,500,000", floatPtr(1_500_000)},
		{"", nil},
		{"undisclosed", nil},
	}
	for _, c := range cases {
		got := ToDecimal(c.in)
		if c.want == nil {
			assert.Nil(t, got, "input %q", c.in)
			continue
		}
		require.NotNil(t, got, "input %q", c.in)
		assert.InDelta(t, *c.want, *got, 0.001, "input %q", c.in)
	}
}

func TestFormatCurrency(t *testing.T) {
	assert.Equal(t, "€2.000.000", FormatCurrency(2_000_000))
	assert.Equal(t, "€500", FormatCurrency(500))
	assert.Equal(t, "€1.000", FormatCurrency(1000))
	assert.Equal(t, "-€1.500", FormatCurrency(-1500))
}

func TestParseISODate(t *testing.T) {
	d, ok := ParseISODate("2024-03-01")
	require.True(t, ok)
	assert.Equal(t, 2024, d.Year())

	_, ok = ParseISODate("March 2024")
	assert.False(t, ok)

	_, ok = ParseISODate("")
	assert.False(t, ok)
}

func intPtr(v int) *int           { return &v }
func floatPtr(v float64) *float64 { return &v }
