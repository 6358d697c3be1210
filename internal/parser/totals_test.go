package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseTotals(t *testing.T) {
	text := "Importe Bruto: $ 126,125.00\n" +
		"IVA s/Bruto: $ 13,243.13\n" +
		"Total Gastos: $ 5,950.00\n" +
		"IVA s/Gastos: $ 997.50\n" +
		"Importe Neto: $ 132,420.63\n"

	totals := ParseTotals(text)

	assert.Equal(t, 126125.00, totals.Gross)
	assert.Equal(t, 13243.13, totals.VATOnGross)
	assert.Equal(t, 5950.00, totals.Expenses)
	assert.Equal(t, 997.50, totals.VATOnExpenses)
	assert.Equal(t, 132420.63, totals.Net)
}

func TestParseTotalsWithoutCurrencySign(t *testing.T) {
	totals := ParseTotals("Importe Bruto: 95,000.00\nImporte Neto:104,975.00\n")

	assert.Equal(t, 95000.00, totals.Gross)
	assert.Equal(t, 104975.00, totals.Net)
	assert.Zero(t, totals.Expenses)
}

func TestParseTotalsMissingAnchors(t *testing.T) {
	totals := ParseTotals("no recognizable labels here")

	assert.Zero(t, totals.Gross)
	assert.Zero(t, totals.VATOnGross)
	assert.Zero(t, totals.Expenses)
	assert.Zero(t, totals.VATOnExpenses)
	assert.Zero(t, totals.Net)
}
