package parser

import "regexp"

// Totals are the five document-level amounts. Absent anchors yield zero.
type Totals struct {
	Gross         float64
	VATOnGross    float64
	Expenses      float64
	VATOnExpenses float64
	Net           float64
}

var (
	grossTotalRe  = moneyAfter(`Importe Bruto:`)
	vatGrossRe    = moneyAfter(`IVA s/Bruto:`)
	expensesRe    = moneyAfter(`Total Gastos:`)
	vatExpensesRe = moneyAfter(`IVA s/Gastos:`)
	netRe         = moneyAfter(`Importe Neto:`)
)

func moneyAfter(label string) *regexp.Regexp {
	return regexp.MustCompile(`(?i)` + label + `\s*\$?\s*([0-9][0-9,]*\.[0-9]{2})`)
}

// ParseTotals runs the five independent labeled-anchor searches.
func ParseTotals(text string) Totals {
	return Totals{
		Gross:         moneyOrZero(findOne(grossTotalRe, text)),
		VATOnGross:    moneyOrZero(findOne(vatGrossRe, text)),
		Expenses:      moneyOrZero(findOne(expensesRe, text)),
		VATOnExpenses: moneyOrZero(findOne(vatExpensesRe, text)),
		Net:           moneyOrZero(findOne(netRe, text)),
	}
}
