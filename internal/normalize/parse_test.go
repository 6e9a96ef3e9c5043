package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		in   string
		want string
		ok   bool
	}{
		{"2023-06-30", "2023-06-30", true},
		{"30/06/2023", "2023-06-30", true},
		{"30 Jun 2023", "2023-06-30", true},
		{"14 March 1985", "1985-03-14", true},
		{"Jun 2023", "2023-06-01", true},
		{"2026-09-01T11:00:00Z", "2026-09-01", true},
		{"not a date", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		got, ok := parseDate(tt.in)
		assert.Equal(t, tt.ok, ok, "in=%q", tt.in)
		assert.Equal(t, tt.want, got, "in=%q", tt.in)
	}
}

func TestParseAmount(t *testing.T) {
	tests := []struct {
		in   string
		want float64
		ok   bool
	}{
		{"£1,250.00", 1250, true},
		{"1250", 1250, true},
		{"$99.95", 99.95, true},
		{"£ 300", 300, true},
		{"N/A", 0, false},
		{"", 0, false},
	}
	for _, tt := range tests {
		got, ok := parseAmount(tt.in)
		assert.Equal(t, tt.ok, ok, "in=%q", tt.in)
		assert.Equal(t, tt.want, got, "in=%q", tt.in)
	}
}

func TestParseInt(t *testing.T) {
	v, ok := parseInt("999")
	assert.True(t, ok)
	assert.Equal(t, 999, v)

	_, ok = parseInt("-1")
	assert.False(t, ok)
	_, ok = parseInt("N/A")
	assert.False(t, ok)
}

func TestParseBool(t *testing.T) {
	v, ok := parseBool("true")
	assert.True(t, ok)
	assert.True(t, v)

	v, ok = parseBool("No")
	assert.True(t, ok)
	assert.False(t, v)

	_, ok = parseBool("maybe")
	assert.False(t, ok)
}
