package normalize

import (
	"strconv"
	"strings"
	"time"
)

// dateLayouts are tried in order. Parsed dates always render back as
// YYYY-MM-DD; parsing failure is reported to the caller, never raised.
var dateLayouts = []string{
	"2006-01-02",
	"02/01/2006",
	"02-01-2006",
	"2 January 2006",
	"2 Jan 2006",
	"02 Jan 2006",
	"January 2006",
	"Jan 2006",
	"2006-01-02T15:04:05Z07:00",
}

// parseDate normalizes a free-text date to ISO form.
func parseDate(raw string) (string, bool) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, trimmed); err == nil {
			return t.Format("2006-01-02"), true
		}
	}
	return "", false
}

// parseAmount reads a monetary value, tolerating currency symbols and
// thousands separators ("£1,250.00" -> 1250).
func parseAmount(raw string) (float64, bool) {
	cleaned := strings.TrimSpace(raw)
	cleaned = strings.TrimPrefix(cleaned, "£")
	cleaned = strings.TrimPrefix(cleaned, "$")
	cleaned = strings.TrimPrefix(cleaned, "€")
	cleaned = strings.ReplaceAll(cleaned, ",", "")
	cleaned = strings.TrimSpace(cleaned)
	if cleaned == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// parseInt reads a non-negative integer (scores, term counts).
func parseInt(raw string) (int, bool) {
	cleaned := strings.ReplaceAll(strings.TrimSpace(raw), ",", "")
	if cleaned == "" {
		return 0, false
	}
	v, err := strconv.Atoi(cleaned)
	if err != nil || v < 0 {
		return 0, false
	}
	return v, true
}

// parseBool reads the adapter's presence flags.
func parseBool(raw string) (bool, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "true", "yes", "y", "1", "present":
		return true, true
	case "false", "no", "n", "0", "absent":
		return false, true
	}
	return false, false
}
