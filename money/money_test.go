package money

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParse(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"5.000", 5000},
		{"5,000", 5000},
		{"Rp 5.000", 5000},
		{"Rp125.000", 125000},
		{"1.250.000", 1250000},
		{"0", 0},
		{"", 0},
		{"free", 0},
		{"10000", 10000},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Parse(tt.in), "Parse(%q)", tt.in)
	}
}

func TestParseSeparatorStylesAgree(t *testing.T) {
	assert.Equal(t, Parse("5.000"), Parse("5,000"))
	assert.Equal(t, Parse("1.250.000"), Parse("1,250,000"))
}

func TestFormat(t *testing.T) {
	tests := []struct {
		in   int
		want string
	}{
		{0, "0"},
		{500, "500"},
		{5000, "5.000"},
		{20000, "20.000"},
		{1250000, "1.250.000"},
		{-5000, "-5.000"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Format(tt.in), "Format(%d)", tt.in)
	}
}

func TestFormatParseRoundTrip(t *testing.T) {
	for _, n := range []int{0, 1, 999, 1000, 123456, 98765432} {
		assert.Equal(t, n, Parse(Format(n)))
	}
}
