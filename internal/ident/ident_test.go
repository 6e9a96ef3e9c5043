package ident

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestContentID_Deterministic(t *testing.T) {
	a := ContentID("addr", "10 Downing Street", "London", "SW1A 2AA")
	b := ContentID("addr", "10 Downing Street", "London", "SW1A 2AA")
	assert.Equal(t, a, b)
}

func TestContentID_FoldsCaseAndWhitespace(t *testing.T) {
	a := ContentID("org", "Test   Bank")
	b := ContentID("org", "test bank")
	assert.Equal(t, a, b)
}

func TestContentID_PartBoundariesMatter(t *testing.T) {
	a := ContentID("acct", "ab", "c")
	b := ContentID("acct", "a", "bc")
	assert.NotEqual(t, a, b)
}

func TestContentID_Pattern(t *testing.T) {
	pattern := regexp.MustCompile(`^[a-z]+:[0-9a-f]{8}$`)
	id := ContentID("file", "adapter", "2025-01-01T00:00:00Z", "https://example.com")
	assert.Regexp(t, pattern, id)
}

func TestSequencer_PerPrefixCounters(t *testing.T) {
	seq := NewSequencer()
	assert.Equal(t, "tl:1", seq.Next("tl"))
	assert.Equal(t, "tl:2", seq.Next("tl"))
	assert.Equal(t, "srch:1", seq.Next("srch"))
	assert.Equal(t, "tl:3", seq.Next("tl"))
}

func TestNormalizeKeyPart(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"  Test  Bank  ", "test bank"},
		{"HSBC\tUK", "hsbc uk"},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizeKeyPart(tt.in))
	}
}
