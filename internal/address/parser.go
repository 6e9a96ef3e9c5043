// Package address decomposes free-text UK addresses into the canonical parts
// the credit file schema expects. The algorithm is heuristic: comma-split,
// locate the postcode from the end, treat the segment before it as the town.
package address

import (
	"regexp"
	"strings"
)

// Parsed is the decomposed form of a single address string.
type Parsed struct {
	Line1       string
	Line2       string
	TownCity    string
	Postcode    string
	CountryCode string
}

// postcodePattern matches a UK postcode with or without the inner space,
// e.g. "SW1A 2AA", "sw1a2aa", "M1 1AE".
var postcodePattern = regexp.MustCompile(`(?i)^[A-Z]{1,2}[0-9][A-Z0-9]?\s*[0-9][A-Z]{2}$`)

// Parse decomposes a comma-separated address string. It always succeeds and
// always emits country code GB; missing parts are left empty.
func Parse(raw string) Parsed {
	parsed := Parsed{CountryCode: "GB"}

	var segments []string
	for _, seg := range strings.Split(raw, ",") {
		if s := strings.TrimSpace(seg); s != "" {
			segments = append(segments, s)
		}
	}
	if len(segments) == 0 {
		return parsed
	}

	// Scan from the end for a postcode-shaped segment.
	postcodeIdx := -1
	for i := len(segments) - 1; i >= 0; i-- {
		if postcodePattern.MatchString(segments[i]) {
			postcodeIdx = i
			break
		}
	}

	if postcodeIdx >= 0 {
		parsed.Postcode = NormalizePostcode(segments[postcodeIdx])
		if postcodeIdx >= 1 {
			parsed.TownCity = segments[postcodeIdx-1]
		}
		if postcodeIdx >= 2 {
			parsed.Line1 = segments[0]
			if postcodeIdx >= 3 {
				parsed.Line2 = strings.Join(segments[1:postcodeIdx-1], ", ")
			}
		}
	} else {
		// No postcode: the last segment is the town when there is more than
		// one segment, everything before it is address lines.
		last := len(segments) - 1
		if last > 0 {
			parsed.TownCity = segments[last]
			parsed.Line1 = segments[0]
			if last > 1 {
				parsed.Line2 = strings.Join(segments[1:last], ", ")
			}
		} else {
			parsed.Line1 = segments[0]
		}
	}

	return parsed
}

// NormalizePostcode uppercases and inserts the single inner space three
// characters from the end ("sw1a2aa" -> "SW1A 2AA").
func NormalizePostcode(raw string) string {
	compact := strings.ToUpper(strings.Join(strings.Fields(raw), ""))
	if len(compact) <= 3 {
		return compact
	}
	return compact[:len(compact)-3] + " " + compact[len(compact)-3:]
}

// SingleLine builds the normalized dedup key for an address: the uppercased,
// whitespace-collapsed concatenation of its resolved parts.
func (p Parsed) SingleLine() string {
	parts := make([]string, 0, 5)
	for _, part := range []string{p.Line1, p.Line2, p.TownCity, p.Postcode, p.CountryCode} {
		if part != "" {
			parts = append(parts, part)
		}
	}
	joined := strings.Join(parts, " ")
	return strings.ToUpper(strings.Join(strings.Fields(joined), " "))
}
