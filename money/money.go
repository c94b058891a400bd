// Package money normalizes display price strings into integer rupiah
// amounts. Catalog prices are stored the way they are shown ("125.000",
// "Rp 5.000"); every arithmetic path goes through Parse first.
package money

import (
	"strconv"
	"strings"
)

// Parse strips every non-digit rune and parses the rest as a base-10
// integer. "5.000", "5,000" and "Rp5.000" all reduce to 5000. An empty
// or digit-free string parses to 0.
func Parse(price string) int {
	var b strings.Builder
	for _, r := range price {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}

	if b.Len() == 0 {
		return 0
	}

	n, err := strconv.Atoi(b.String())
	if err != nil {
		// Parse can only fail on overflow given the digit-only input.
		return 0
	}
	return n
}

// Format renders an integer amount with dot thousand separators,
// matching the storefront's display convention.
func Format(amount int) string {
	neg := amount < 0
	if neg {
		amount = -amount
	}

	s := strconv.Itoa(amount)
	var b strings.Builder
	if neg {
		b.WriteByte('-')
	}

	lead := len(s) % 3
	if lead > 0 {
		b.WriteString(s[:lead])
		if len(s) > lead {
			b.WriteByte('.')
		}
	}
	for i := lead; i < len(s); i += 3 {
		b.WriteString(s[i : i+3])
		if i+3 < len(s) {
			b.WriteByte('.')
		}
	}
	return b.String()
}
