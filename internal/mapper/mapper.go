// Package mapper canonicalizes free-text field values into the closed enums
// of the credit file schema. Every mapper is an ordered list of
// (predicate, canonical value) pairs evaluated top to bottom; declaration
// order encodes precedence ("default" must out-rank a looser "closed"
// match), so the tables are slices, never maps. A miss returns the
// designated unknown value with ok=false; canonicalization never fails.
package mapper

import "strings"

type rule[T any] struct {
	match func(string) bool
	value T
}

// lookup evaluates the rules in declared order against the folded text.
func lookup[T any](rules []rule[T], text string, miss T) (T, bool) {
	folded := fold(text)
	if folded == "" {
		return miss, false
	}
	for _, r := range rules {
		if r.match(folded) {
			return r.value, true
		}
	}
	return miss, false
}

// fold lowercases and collapses whitespace so predicates can assume a
// canonical shape.
func fold(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}

func contains(substr string) func(string) bool {
	return func(s string) bool { return strings.Contains(s, substr) }
}

func exact(values ...string) func(string) bool {
	return func(s string) bool {
		for _, v := range values {
			if s == v {
				return true
			}
		}
		return false
	}
}

func anyOf(preds ...func(string) bool) func(string) bool {
	return func(s string) bool {
		for _, p := range preds {
			if p(s) {
				return true
			}
		}
		return false
	}
}

func hasPrefix(prefix string) func(string) bool {
	return func(s string) bool { return strings.HasPrefix(s, prefix) }
}
