package pdf

import (
	"fmt"
	"math"
	"strings"
	"time"
	"unicode"
)

// Display formatting helpers. Every function is total: malformed input maps
// to a fixed fallback value, never an error or panic, so renderers can call
// them without guarding.

const currencyFallback = "₹0.00"

// FormatCurrency renders an amount with the rupee sign, two decimals and
// en-IN digit grouping (last three digits, then groups of two).
// Non-finite amounts collapse to the fallback.
func FormatCurrency(amount float64) string {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return currencyFallback
	}
	v := math.Abs(amount)
	whole := int64(v)
	frac := int64(math.Round((v - float64(whole)) * 100))
	if frac == 100 { // rounding carried into the integer part
		whole++
		frac = 0
	}
	return fmt.Sprintf("₹%s.%02d", groupIndian(whole), frac)
}

// groupIndian applies Indian digit grouping: 1234567 -> "12,34,567".
func groupIndian(n int64) string {
	s := fmt.Sprintf("%d", n)
	if len(s) <= 3 {
		return s
	}
	head := s[:len(s)-3]
	tail := s[len(s)-3:]
	var parts []string
	for len(head) > 2 {
		parts = append([]string{head[len(head)-2:]}, parts...)
		head = head[:len(head)-2]
	}
	if head != "" {
		parts = append([]string{head}, parts...)
	}
	return strings.Join(parts, ",") + "," + tail
}

var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"02/01/2006",
}

// FormatDate renders an input date string as DD/MMM/YYYY. Missing or
// unparsable input yields "Invalid Date".
func FormatDate(raw string) string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return "Invalid Date"
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format("02/Jan/2006")
		}
	}
	return "Invalid Date"
}

// FormatTimestamp renders a point in time for document headers.
func FormatTimestamp(t time.Time) string {
	if t.IsZero() {
		return "Invalid Date"
	}
	return t.Format("02/Jan/2006")
}

// SafeString trims the input and substitutes fallback for blank values.
func SafeString(s, fallback string) string {
	t := strings.TrimSpace(s)
	if t == "" {
		return fallback
	}
	return t
}

// SafeNumber substitutes fallback for non-finite values.
func SafeNumber(v, fallback float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return fallback
	}
	return v
}

// Capitalize upper-cases the first rune of a trimmed string; blank input
// yields "N/A".
func Capitalize(s string) string {
	t := strings.TrimSpace(s)
	if t == "" {
		return "N/A"
	}
	r := []rune(t)
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}
