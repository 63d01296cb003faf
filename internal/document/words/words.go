// Package words converts currency amounts to Indian-numbering-system words.
package words

import (
	"math"
	"strings"
)

var ones = []string{"", "One", "Two", "Three", "Four", "Five", "Six", "Seven", "Eight", "Nine"}

var teens = []string{"Ten", "Eleven", "Twelve", "Thirteen", "Fourteen", "Fifteen", "Sixteen", "Seventeen", "Eighteen", "Nineteen"}

var tens = []string{"", "", "Twenty", "Thirty", "Forty", "Fifty", "Sixty", "Seventy", "Eighty", "Ninety"}

const (
	crore = 10_000_000
	lakh  = 100_000
)

// AmountInWords renders an amount as Indian English words, e.g.
// 1234.50 → "One Thousand Two Hundred Thirty Four Rupees and Fifty
// Paisa Only". A zero amount is just "Zero".
func AmountInWords(amount float64) string {
	if amount < 0 || math.IsNaN(amount) || math.IsInf(amount, 0) {
		amount = 0
	}

	rupees := int64(math.Floor(amount))
	paise := int64(math.Round((amount - math.Floor(amount)) * 100))
	if paise >= 100 {
		// 1.999 rounds up into the next rupee.
		rupees++
		paise -= 100
	}

	if rupees == 0 && paise == 0 {
		return "Zero"
	}

	rupeeWords := "Zero"
	if rupees > 0 {
		rupeeWords = integerWords(rupees)
	}

	out := rupeeWords + " Rupees"
	if paise > 0 {
		out += " and " + integerWords(paise) + " Paisa"
	}
	return out + " Only"
}

// integerWords groups by crore, lakh and thousand, then hands the
// remainder to the under-one-thousand converter.
func integerWords(n int64) string {
	var parts []string
	if n >= crore {
		parts = append(parts, integerWords(n/crore), "Crore")
		n %= crore
	}
	if n >= lakh {
		parts = append(parts, underThousand(n/lakh), "Lakh")
		n %= lakh
	}
	if n >= 1000 {
		parts = append(parts, underThousand(n/1000), "Thousand")
		n %= 1000
	}
	if n > 0 {
		parts = append(parts, underThousand(n))
	}
	return strings.Join(parts, " ")
}

func underThousand(n int64) string {
	var parts []string
	if n >= 100 {
		parts = append(parts, ones[n/100], "Hundred")
		n %= 100
	}
	switch {
	case n >= 20:
		parts = append(parts, tens[n/10])
		if n%10 > 0 {
			parts = append(parts, ones[n%10])
		}
	case n >= 10:
		parts = append(parts, teens[n-10])
	case n > 0:
		parts = append(parts, ones[n])
	}
	return strings.Join(parts, " ")
}
