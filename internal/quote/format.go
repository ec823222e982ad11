package quote

import (
	"fmt"
	"strings"
)

// FormatEUR formats an amount the way it appears on the printed quote:
// French notation with a narrow space between thousand groups and a
// decimal comma, e.g. "1 234,56 €". Always two decimal places.
func FormatEUR(amount float64) string {
	negative := false
	if amount < 0 {
		negative = true
		amount = -amount
	}

	raw := fmt.Sprintf("%.2f", amount)
	parts := strings.SplitN(raw, ".", 2)
	intPart := parts[0]
	decPart := parts[1]

	result := groupThousands(intPart) + "," + decPart + " €"
	if negative {
		result = "-" + result
	}
	return result
}

// groupThousands inserts a space every three digits from the right.
func groupThousands(s string) string {
	n := len(s)
	if n <= 3 {
		return s
	}
	result := s[n-3:]
	remaining := s[:n-3]
	for len(remaining) > 3 {
		result = remaining[len(remaining)-3:] + " " + result
		remaining = remaining[:len(remaining)-3]
	}
	return remaining + " " + result
}
