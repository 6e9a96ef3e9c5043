// Package grid rebuilds a two-dimensional payment-history table from the
// flat token stream a PDF text extractor produces once layout coordinates
// are gone. The stream is a mix of single-letter month headers, 4-digit year
// labels and status codes, in column-major order. Reconstruction is
// best-effort over lossy input: correct for well-formed streams observed in
// practice, not a guaranteed parse.
package grid

import (
	"fmt"
	"strconv"
	"strings"
)

// calendar is the fixed 12-letter header sequence. Letters repeat (J is
// January, June and July), so column advance must always search strictly
// forward from the current column, never wrapping backward.
var calendar = [12]string{"J", "F", "M", "A", "M", "J", "J", "A", "S", "O", "N", "D"}

// Placeholder is the cell token meaning "no data for this month". It is
// consumed like a status (it occupies a row) but filtered from the result.
const Placeholder = "-"

// terminatorMarker starts the boilerplate legend that trails every
// payment-history block; nothing after it belongs to the grid.
const terminatorMarker = "key to payment history"

// statusCodes is the closed set of cell values that can appear in a grid.
// Their per-source meaning lives in the status-code mapper; the
// reconstructor only needs to recognize them.
var statusCodes = map[string]bool{
	"0": true, "1": true, "2": true, "3": true, "4": true, "5": true, "6": true,
	"D": true, "S": true, "A": true, "AR": true, "AP": true,
	"R": true, "Q": true, "U": true, "OK": true,
	Placeholder: true,
}

const (
	minPlausibleYear = 1900
	maxPlausibleYear = 2099
)

// Tokenize splits a raw payment-history text block into grid tokens,
// discarding everything from the trailing legend onward.
func Tokenize(text string) []string {
	var tokens []string
	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(strings.ToLower(trimmed), terminatorMarker) {
			break
		}
		tokens = append(tokens, strings.Fields(trimmed)...)
	}
	return tokens
}

// Reconstruct rebuilds the sparse "YYYY-MM" -> status code mapping from a
// token stream. An empty stream, or one with no month header at all, yields
// an empty result: without a header there is no way to establish column 0.
func Reconstruct(tokens []string) map[string]string {
	result := make(map[string]string)
	if len(tokens) == 0 {
		return result
	}

	// Pass 1: every plausible 4-digit token, in order, is the row index.
	var years []int
	seen := make(map[int]bool)
	for _, tok := range tokens {
		if y, ok := parseYear(tok); ok && !seen[y] {
			seen[y] = true
			years = append(years, y)
		}
	}

	// Establish column 0 from the first month-letter token.
	start := -1
	activeColumn := -1
	for i, tok := range tokens {
		if col, ok := columnAfter(-1, tok); ok {
			start = i
			activeColumn = col
			break
		}
	}
	if start < 0 || len(years) == 0 {
		return result
	}

	activeRow := 0
	for _, tok := range tokens[start+1:] {
		if strings.HasPrefix(strings.ToLower(tok), "key") {
			// Defensive: legend marker that survived tokenization.
			break
		}
		if y, ok := parseYear(tok); ok {
			activeRow = yearIndex(years, y)
			continue
		}
		if col, ok := columnAfter(activeColumn, tok); ok {
			// New header: next column starts at the top row.
			activeColumn = col
			activeRow = 0
			continue
		}
		if statusCodes[tok] {
			if activeRow < len(years) {
				if tok != Placeholder {
					result[fmt.Sprintf("%d-%02d", years[activeRow], activeColumn+1)] = tok
				}
				activeRow++
			}
			continue
		}
		// Unrecognized token: skip without losing position.
	}

	return result
}

// columnAfter finds the next calendar slot strictly after current matching
// the token, treating the token as a month header. ok is false when the
// token is not a header letter or no forward slot exists.
func columnAfter(current int, tok string) (int, bool) {
	if len(tok) != 1 {
		return 0, false
	}
	for i := current + 1; i < len(calendar); i++ {
		if calendar[i] == tok {
			return i, true
		}
	}
	return 0, false
}

func parseYear(tok string) (int, bool) {
	if len(tok) != 4 {
		return 0, false
	}
	y, err := strconv.Atoi(tok)
	if err != nil || y < minPlausibleYear || y > maxPlausibleYear {
		return 0, false
	}
	return y, true
}

func yearIndex(years []int, y int) int {
	for i, v := range years {
		if v == y {
			return i
		}
	}
	return 0
}
