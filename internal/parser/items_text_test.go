package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"haciendas/internal/domain"
)

func TestTextStrategyHeadPricedRow(t *testing.T) {
	text := "Categoría/Raza\n" +
		"Novillo 50 Cabeza 450.00 95,000.00 10.50 9,975.00\n" +
		"Importe Bruto: $ 95,000.00\n"

	items := NewTextStrategy(text).Items()
	require.Len(t, items, 1)

	it := items[0]
	assert.Equal(t, "Novillo", it.Category)
	assert.Equal(t, 50.0, it.HeadCount)
	assert.Zero(t, it.Kilos)
	assert.Equal(t, domain.UnitHead, it.Unit)
	assert.Equal(t, 450.00, it.UnitPrice)
	assert.Equal(t, 95000.00, it.Gross)
	require.NotNil(t, it.VATRate)
	assert.Equal(t, 10.50, *it.VATRate)
	require.NotNil(t, it.VATAmount)
	assert.Equal(t, 9975.00, *it.VATAmount)
}

func TestTextStrategyWeightPricedRow(t *testing.T) {
	text := "Categoría/Raza\n" +
		"Vaquillona 30 Kg Vivo 12,450 2.50 31,125.00 10.50 3,268.13\n" +
		"Importe Bruto: $ 31,125.00\n"

	items := NewTextStrategy(text).Items()
	require.Len(t, items, 1)

	it := items[0]
	assert.Equal(t, "Vaquillona", it.Category)
	assert.Equal(t, 30.0, it.HeadCount)
	assert.Equal(t, 12450.0, it.Kilos)
	assert.Equal(t, domain.UnitLiveKg, it.Unit)
	assert.Equal(t, 2.50, it.UnitPrice)
	assert.Equal(t, 31125.00, it.Gross)
	require.NotNil(t, it.VATAmount)
	assert.Equal(t, 3268.13, *it.VATAmount)
}

func TestTextStrategyMergesSplitRows(t *testing.T) {
	// Category, unit line and trailing breed each land on their own line.
	text := "Categoría/Raza\n" +
		"Ternero\n" +
		"25 Cabeza 380.00 48,000.00 10.50 5,040.00\n" +
		"Aberdeen Angus\n" +
		"Importe Bruto: $ 48,000.00\n"

	items := NewTextStrategy(text).Items()
	require.Len(t, items, 1)

	it := items[0]
	assert.Equal(t, "Ternero Aberdeen Angus", it.Category)
	assert.Equal(t, 25.0, it.HeadCount)
	assert.Equal(t, 48000.00, it.Gross)
}

func TestTextStrategyStripsClientCodePrefix(t *testing.T) {
	text := "Categoría/Raza\n" +
		"30698765432 - Vaca Conserva 10 Cabeza 200.00 18,000.00 10.50 1,890.00\n" +
		"Importe Bruto: $ 18,000.00\n"

	items := NewTextStrategy(text).Items()
	require.Len(t, items, 1)
	assert.Equal(t, "Vaca Conserva", items[0].Category)
}

func TestTextStrategySkipsExpenseLeakage(t *testing.T) {
	text := "Categoría/Raza\n" +
		"Novillo 50 Cabeza 450.00 95,000.00 10.50 9,975.00\n" +
		"Gastos\n" +
		"Comisión 4,750.00 997.50\n" +
		"Importe Bruto: $ 95,000.00\n"

	items := NewTextStrategy(text).Items()
	require.Len(t, items, 1)
	assert.Equal(t, "Novillo", items[0].Category)
}

func TestTextStrategyNoMarkers(t *testing.T) {
	assert.Nil(t, NewTextStrategy("no detail section at all").Items())
	assert.Nil(t, NewTextStrategy("Importe Bruto: 1.00\nCategoría/Raza\n").Items())
}

func TestTextStrategyDropsUnderfilledRows(t *testing.T) {
	// A rate with a single amount cannot be disambiguated.
	text := "Categoría/Raza\n" +
		"Novillo 10 Cabeza 10.50 9,975.00\n" +
		"Importe Bruto: $ 9,975.00\n"

	assert.Empty(t, NewTextStrategy(text).Items())
}

func TestTextStrategyAmountOrdering(t *testing.T) {
	text := "Categoría/Raza\n" +
		"Novillo 50 Cabeza 450.00 95,000.00 10.50 9,975.00\n" +
		"Importe Bruto: $ 95,000.00\n"

	items := NewTextStrategy(text).Items()
	require.Len(t, items, 1)

	it := items[0]
	assert.GreaterOrEqual(t, it.Gross, *it.VATAmount)
	assert.GreaterOrEqual(t, *it.VATAmount, it.UnitPrice)
}
