package parser

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

var (
	// The VAT rates that appear on settlement documents. Tokens equal to one
	// of these are never read as amounts.
	vatRateRe = regexp.MustCompile(`\b(10\.50|21\.00|27\.00|0\.00)\b`)

	// Monetary amounts: digit groups with a decimal point and a two- or
	// three-digit fraction, e.g. 1,234.56 or 450.00.
	moneyRe = regexp.MustCompile(`\b\d[\d,]*\.\d{2,3}\b`)

	digitRe = regexp.MustCompile(`\d`)
)

// moneyTokens returns the monetary tokens of a line, excluding tokens that
// equal a known VAT-rate literal so a rate is never misread as an amount.
func moneyTokens(line string) []string {
	var out []string
	for _, tok := range moneyRe.FindAllString(line, -1) {
		if isVATRateLiteral(tok) {
			continue
		}
		out = append(out, tok)
	}
	return out
}

func isVATRateLiteral(tok string) bool {
	m := vatRateRe.FindString(tok)
	return m == tok
}

// detectVATRate returns the first VAT-rate literal on the line, if any.
func detectVATRate(line string) *float64 {
	m := vatRateRe.FindStringSubmatch(line)
	if m == nil {
		return nil
	}
	rate, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return nil
	}
	return &rate
}

// parseMoney parses a monetary token like "$ 1,234.56" into a float.
func parseMoney(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, "$", "")
	s = strings.ReplaceAll(s, " ", "")
	s = strings.ReplaceAll(s, ",", "")
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// moneyOrZero is parseMoney with the documented zero default.
func moneyOrZero(s string) float64 {
	v, _ := parseMoney(s)
	return v
}

// parseCount parses an integer count token like "12,450", truncating any
// fraction.
func parseCount(s string) float64 {
	v, ok := parseMoney(s)
	if !ok {
		return 0
	}
	return math.Trunc(v)
}

func digitCount(s string) int {
	return len(digitRe.FindAllString(s, -1))
}
