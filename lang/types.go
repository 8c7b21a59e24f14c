package lang

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Boolean spellings accepted by [ParseBool], matched case-insensitively.
var (
	trueValues  = []string{"true", "yes", "y"}
	falseValues = []string{"false", "no", "n"}
)

// dateLayouts are the layouts tried, in order, when a date literal carries
// no explicit format.
var dateLayouts = []string{
	"2006-01-02",
	"2006/01/02",
	"02-01-2006",
	"02/01/2006",
	"02.01.2006",
	"2 January 2006",
	"2 Jan 2006",
	"Jan 2, 2006",
	"January 2, 2006",
	time.RFC3339,
	"2006-01-02 15:04:05",
}

// ParseBool converts a string to a boolean. It accepts a few human
// spellings for each value; anything else is an error.
func ParseBool(s string) (bool, error) {
	lower := strings.ToLower(s)

	for _, v := range trueValues {
		if lower == v {
			return true, nil
		}
	}

	for _, v := range falseValues {
		if lower == v {
			return false, nil
		}
	}

	return false, fmt.Errorf(
		"impossible to interpret '%s' as 'boolean' value.", s)
}

// ParseDate converts a string to a date. With a non-empty layout the value
// must match it exactly; otherwise a sequence of common layouts is tried
// and the parse fails only if none match.
func ParseDate(value, layout string) (time.Time, error) {
	if layout != "" {
		date, err := time.Parse(layout, value)
		if err != nil {
			return time.Time{}, fmt.Errorf(
				"date '%s' does not match format '%s'.", value, layout)
		}

		return date, nil
	}

	for _, l := range dateLayouts {
		if date, err := time.Parse(l, value); err == nil {
			return date, nil
		}
	}

	return time.Time{}, fmt.Errorf("unrecognized date format: '%s'.", value)
}

// ParseInteger converts a string to an integer. Malformed input returns a
// format error that assignment strategies treat as "does not apply".
func ParseInteger(s string) (int, error) {
	return strconv.Atoi(s)
}

// ParseDecimal converts a string to a decimal. Malformed input returns a
// format error that assignment strategies treat as "does not apply".
func ParseDecimal(s string) (float64, error) {
	return strconv.ParseFloat(s, 64)
}
