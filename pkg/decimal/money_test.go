package decimal

import (
	"testing"

	stddec "github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewFromString(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "plain", input: "123.45", want: "123.45"},
		{name: "grouped", input: "1,234.5", want: "1234.50"},
		{name: "dollar sign", input: " $16,914.00 ", want: "16914.00"},
		{name: "negative", input: "-7.1", want: "-7.10"},
		{name: "negative dollars", input: "-$1,234.56", want: "-1234.56"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := NewFromString(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, m.String())
		})
	}

	_, err := NewFromString("not-a-number")
	assert.Error(t, err)
}

func TestGrouped(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"0", "0.00"},
		{"999.999", "1,000.00"},
		{"16914", "16,914.00"},
		{"163045.1", "163,045.10"},
		{"1234567.891", "1,234,567.89"},
		{"-25247", "-25,247.00"},
		{"-0.001", "0.00"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, New(stddec.RequireFromString(tt.in)).Grouped())
		})
	}
}

func TestFormat(t *testing.T) {
	assert.Equal(t, "$1,234.50", New(stddec.RequireFromString("1234.5")).Format())
	assert.Equal(t, "-$7,500.00", New(stddec.NewFromInt(-7500)).Format())
}

func TestPercent(t *testing.T) {
	got := Percent(stddec.NewFromInt(25247), stddec.NewFromInt(150000))
	assert.Equal(t, "16.83", got.StringFixed(2))
	assert.True(t, Percent(stddec.NewFromInt(5), stddec.Zero).IsZero())
	assert.True(t, Percent(stddec.NewFromInt(5), stddec.NewFromInt(-1)).IsZero())
}
