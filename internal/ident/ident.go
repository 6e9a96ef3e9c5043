// Package ident mints the two identifier forms used throughout a credit
// file: content-addressed IDs, which let independent observations of the
// same real-world entity converge on one identity, and sequential IDs for
// entities with no natural merge key.
package ident

import (
	"fmt"
	"hash/fnv"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// partSeparator joins key parts before hashing. A control character keeps
// ("ab","c") and ("a","bc") from colliding.
const partSeparator = "\x1f"

// ContentID returns prefix + ":" + 8 lowercase hex digits of FNV-1a 32 over
// the normalized key parts. Identical parts always yield the identical ID,
// across runs and across ports of this engine.
func ContentID(prefix string, parts ...string) string {
	h := fnv.New32a()
	for i, part := range parts {
		if i > 0 {
			_, _ = h.Write([]byte(partSeparator))
		}
		_, _ = h.Write([]byte(NormalizeKeyPart(part)))
	}
	return fmt.Sprintf("%s:%08x", prefix, h.Sum32())
}

// NormalizeKeyPart folds a key part so that cosmetically different inputs
// hash identically: NFC unicode form, lower case, collapsed inner
// whitespace, trimmed.
func NormalizeKeyPart(s string) string {
	s = norm.NFC.String(s)
	s = strings.ToLower(s)
	return strings.Join(strings.Fields(s), " ")
}

// Sequencer assigns per-prefix monotonically increasing IDs in stable
// traversal order. One Sequencer lives on the run context; it is not safe
// for concurrent use and does not need to be.
type Sequencer struct {
	counters map[string]int
}

// NewSequencer returns an empty sequencer; every prefix starts at 1.
func NewSequencer() *Sequencer {
	return &Sequencer{counters: make(map[string]int)}
}

// Next returns the next ID for the prefix, e.g. "tl:1", "tl:2".
func (s *Sequencer) Next(prefix string) string {
	s.counters[prefix]++
	return fmt.Sprintf("%s:%d", prefix, s.counters[prefix])
}
