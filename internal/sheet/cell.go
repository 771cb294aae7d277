package sheet

import (
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// dateLayouts covers the formats the spreadsheet tools emit: ISO dates,
// UK day-first dates, and the short month-first style Excel applies to
// date-typed cells.
var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	time.RFC3339,
	"02/01/2006",
	"1/2/06",
	"01-02-06",
	"02-01-2006",
}

// ParseDate parses a cell into a UTC midnight. An empty or unparseable
// cell reports false; null dates are a normal state upstream (a member
// with no issuance history has no renewal date).
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), true
		}
	}

	return time.Time{}, false
}

// ParsePence parses a money cell into integer pence. Thousands commas
// are tolerated ("1,234.56" -> 123456).
func ParsePence(s string) (int64, error) {
	clean := strings.ReplaceAll(strings.TrimSpace(s), ",", "")

	d, err := decimal.NewFromString(clean)
	if err != nil {
		return 0, err
	}

	return d.Mul(decimal.NewFromInt(100)).Round(0).IntPart(), nil
}

// FormatPence renders pence as pounds the way the source sheets carry
// them: whole pounds without decimals, otherwise two places.
func FormatPence(p int64) string {
	d := decimal.New(p, -2)
	if p%100 == 0 {
		return d.Truncate(0).String()
	}

	return d.StringFixed(2)
}

// ParseBool interprets the truthy spellings found across the workbooks.
// Everything else, including blank, is false.
func ParseBool(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "yes", "y", "1":
		return true
	}

	return false
}

// ParseInt parses an integer cell, defaulting to 0 for blank cells.
func ParseInt(s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}

	// Excel renders integer cells as floats often enough ("3" vs "3.0").
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return int(f), nil
	}

	return strconv.Atoi(s)
}
