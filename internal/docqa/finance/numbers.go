package finance

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	numberRe = regexp.MustCompile(`[-+]?\$\s?[\d,]+(?:\.\d+)?|[-+]?\d[\d,]*(?:\.\d+)?`)
	digitsRe = regexp.MustCompile(`-?\d+(?:\.\d+)?`)
)

var numberCleaner = strings.NewReplacer(",", "", "$", "", "(", "-", ")", "")

// CleanNumber turns the number formats seen in filings into a decimal value.
// Parentheses denote negatives: "(123)" is -123. "$1,234.50" is 1234.5.
func CleanNumber(s string) (decimal.Decimal, bool) {
	s = strings.TrimSpace(numberCleaner.Replace(s))
	if s == "" {
		return decimal.Zero, false
	}
	if val, err := decimal.NewFromString(s); err == nil {
		return val, true
	}
	// try to salvage the digits out of a mixed cell like "1,234 (a)"
	if m := digitsRe.FindString(s); m != "" {
		if val, err := decimal.NewFromString(m); err == nil {
			return val, true
		}
	}
	return decimal.Zero, false
}

// NumbersInText pulls every parseable amount out of free text. Used by the
// low-confidence fallback answer.
func NumbersInText(text string) []decimal.Decimal {
	var cleaned []decimal.Decimal
	for _, match := range numberRe.FindAllString(text, -1) {
		if val, ok := CleanNumber(match); ok {
			cleaned = append(cleaned, val)
		}
	}
	return cleaned
}
