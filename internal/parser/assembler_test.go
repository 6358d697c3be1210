package parser

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"haciendas/internal/domain"
	"haciendas/internal/port"
)

const settlementFixture = "GANADERA DEL SUR S.A. Cód. 186\n" +
	"ORIGINAL A LIQUIDACIÓN DE COMPRA DIRECTA N° 00005-00001234\n" +
	"Fecha 15/03/2024\n" +
	"CUIT: 30712345678\n" +
	"Ingresos Brutos: 901-123456-7\n" +
	"Condicion frente al IVA: Responsable Inscripto\n" +
	"Receptor\n" +
	"Nombre y Apellido: ESTANCIA LA MARGARITA S.R.L.\n" +
	"CUIT: 30698765432\n" +
	"Situación IVA: Responsable Inscripto\n" +
	"N° IIBB: 902-654321-8\n" +
	"Fecha Operación:12/03/2024\n" +
	"Categoría/Raza\n" +
	"Novillo 50 Cabeza 450.00 95,000.00 10.50 9,975.00\n" +
	"Vaquillona 30 Kg Vivo 12,450 2.50 31,125.00 10.50 3,268.13\n" +
	"Gastos\n" +
	"Comisión 4,750.00 997.50\n" +
	"Flete 1,200.00\n" +
	"Importe Bruto: $ 126,125.00\n" +
	"IVA s/Bruto: $ 13,243.13\n" +
	"Total Gastos: $ 5,950.00\n" +
	"IVA s/Gastos: $ 997.50\n" +
	"Importe Neto: $ 132,420.63\n" +
	"Retención Ganancias 1,500.00\n"

type stubTextExtractor struct {
	pages []string
	err   error
}

func (s stubTextExtractor) PageTexts(string) ([]string, error) { return s.pages, s.err }

type stubTableExtractor struct {
	tables []port.Table
	err    error
}

func (s stubTableExtractor) PageTables(string, int) ([]port.Table, error) {
	return s.tables, s.err
}

func TestAssemblerParse(t *testing.T) {
	a := NewAssembler(
		stubTextExtractor{pages: []string{settlementFixture}},
		stubTableExtractor{},
	)

	doc, err := a.Parse("/tmp/liq-00001234.pdf")
	require.NoError(t, err)

	assert.Equal(t, "liq-00001234.pdf", doc.Filename)
	assert.Equal(t, 186, doc.TypeCode)
	assert.Equal(t, "A", doc.Letter)
	assert.Equal(t, "00005", doc.PointOfSale)
	assert.Equal(t, "00001234", doc.Number)
	assert.Equal(t, "LIQUIDACIÓN DE COMPRA DIRECTA", doc.Title)
	assert.Equal(t, "15/03/2024", doc.IssueDate)
	assert.Equal(t, "12/03/2024", doc.OperationDate)

	assert.Equal(t, "GANADERA DEL SUR S.A.", doc.Issuer.Name)
	assert.Equal(t, "30712345678", doc.Issuer.CUIT)
	assert.Equal(t, domain.VATRegistered, doc.Issuer.VATCondition)
	assert.Equal(t, "ESTANCIA LA MARGARITA S.R.L.", doc.Recipient.Name)
	assert.Equal(t, "30698765432", doc.Recipient.CUIT)

	assert.Equal(t, "CD", doc.InternalType)
	assert.False(t, doc.Adjustment.IsAdjustment)

	assert.Equal(t, 126125.00, doc.GrossAmount)
	assert.Equal(t, 13243.13, doc.VATOnGross)
	assert.Equal(t, 5950.00, doc.TotalExpenses)
	assert.Equal(t, 997.50, doc.VATOnExpenses)
	assert.Equal(t, 132420.63, doc.NetAmount)

	require.Len(t, doc.Items, 2)
	assert.Equal(t, "Novillo", doc.Items[0].Category)
	assert.Equal(t, "Vaquillona", doc.Items[1].Category)
	assert.Equal(t, 80.0, doc.HeadCount())
	assert.Equal(t, 12450.0, doc.Kilos())

	require.Len(t, doc.Expenses, 2)
	require.Len(t, doc.Withholdings, 1)
	assert.Equal(t, "Retención Ganancias", doc.Withholdings[0].Label)
}

func TestAssemblerPrefersTableItems(t *testing.T) {
	a := NewAssembler(
		stubTextExtractor{pages: []string{settlementFixture}},
		stubTableExtractor{tables: []port.Table{{
			{"Categoría/Raza", "Cantidad", "Precio", "Importe Bruto"},
			{"Toro Reproductor", "2", "800,000.00", "1,600,000.00"},
		}}},
	)

	doc, err := a.Parse("liq.pdf")
	require.NoError(t, err)

	require.Len(t, doc.Items, 1)
	assert.Equal(t, "Toro Reproductor", doc.Items[0].Category)
}

func TestAssemblerTableFailureFallsBackToText(t *testing.T) {
	a := NewAssembler(
		stubTextExtractor{pages: []string{settlementFixture}},
		stubTableExtractor{err: errors.New("xref table damaged")},
	)

	doc, err := a.Parse("liq.pdf")
	require.NoError(t, err)
	require.Len(t, doc.Items, 2)
	assert.Equal(t, "Novillo", doc.Items[0].Category)
}

func TestAssemblerTextFailureIsFatal(t *testing.T) {
	a := NewAssembler(
		stubTextExtractor{err: domain.ErrUnreadableSource},
		stubTableExtractor{},
	)

	_, err := a.Parse("broken.pdf")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrUnreadableSource)
}

func TestAssemblerEmptyTextIsUnreadable(t *testing.T) {
	a := NewAssembler(
		stubTextExtractor{pages: []string{"  \n  "}},
		stubTableExtractor{},
	)

	_, err := a.Parse("blank.pdf")
	assert.ErrorIs(t, err, domain.ErrUnreadableSource)
}

func TestAssemblerCreditAdjustmentSigns(t *testing.T) {
	text := "FRIGORÍFICO DEL NORTE S.A. Cód. 186\n" +
		"ORIGINAL A AJUSTE FÍSICO CRÉDITO N° 00002-00000042\n" +
		"Fecha 20/04/2024\n" +
		"Categoría/Raza\n" +
		"Novillo 10 Cabeza 450.00 19,000.00 10.50 1,995.00\n" +
		"Importe Bruto: $ 19,000.00\n" +
		"IVA s/Bruto: $ 1,995.00\n" +
		"Importe Neto: $ 20,995.00\n"

	a := NewAssembler(stubTextExtractor{pages: []string{text}}, stubTableExtractor{})

	doc, err := a.Parse("ajuste.pdf")
	require.NoError(t, err)

	assert.Equal(t, "CN", doc.InternalType)
	assert.True(t, doc.Adjustment.IsAdjustment)
	assert.Equal(t, domain.DirectionCredit, doc.Adjustment.Direction)
	assert.Equal(t, domain.KindPhysical, doc.Adjustment.Kind)
	assert.Equal(t, -19000.00, doc.SignedGross())
	assert.Equal(t, -10.0, doc.SignedHeadCount())
}
