package address

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParse_FullAddress(t *testing.T) {
	got := Parse("10 Downing Street, Westminster, London, SW1A 2AA")
	assert.Equal(t, "10 Downing Street", got.Line1)
	assert.Equal(t, "Westminster", got.Line2)
	assert.Equal(t, "London", got.TownCity)
	assert.Equal(t, "SW1A 2AA", got.Postcode)
	assert.Equal(t, "GB", got.CountryCode)
}

func TestParse_PostcodeWithoutSpace(t *testing.T) {
	got := Parse("1 High Street, Manchester, m11ae")
	assert.Equal(t, "1 High Street", got.Line1)
	assert.Equal(t, "", got.Line2)
	assert.Equal(t, "Manchester", got.TownCity)
	assert.Equal(t, "M1 1AE", got.Postcode)
}

func TestParse_NoPostcode(t *testing.T) {
	got := Parse("Flat 2, 5 Mill Lane, Leeds")
	assert.Equal(t, "Flat 2", got.Line1)
	assert.Equal(t, "5 Mill Lane", got.Line2)
	assert.Equal(t, "Leeds", got.TownCity)
	assert.Equal(t, "", got.Postcode)
}

func TestParse_SingleSegment(t *testing.T) {
	got := Parse("Somewhere House")
	assert.Equal(t, "Somewhere House", got.Line1)
	assert.Equal(t, "", got.TownCity)
}

func TestParse_Empty(t *testing.T) {
	got := Parse("  ")
	assert.Equal(t, Parsed{CountryCode: "GB"}, got)
}

func TestNormalizePostcode(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"sw1a2aa", "SW1A 2AA"},
		{"SW1A 2AA", "SW1A 2AA"},
		{"m1  1ae", "M1 1AE"},
		{"E1", "E1"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizePostcode(tt.in), "in=%q", tt.in)
	}
}

func TestSingleLine_DedupKeyIsCaseAndSpaceInsensitive(t *testing.T) {
	a := Parse("10 Downing Street, Westminster, London, SW1A 2AA").SingleLine()
	b := Parse("10 DOWNING STREET,  Westminster , London, sw1a2aa").SingleLine()
	assert.Equal(t, a, b)
	assert.Equal(t, "10 DOWNING STREET WESTMINSTER LONDON SW1A 2AA GB", a)
}
