package csvexport

import (
	"bytes"
	"encoding/csv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"haciendas/internal/domain"
	"haciendas/internal/report"
)

func TestWriteHeader(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)
	require.NoError(t, w.WriteHeader())
	w.Flush()
	require.NoError(t, w.Error())

	r := csv.NewReader(&buf)
	row, err := r.Read()
	require.NoError(t, err)

	assert.Len(t, row, 15)
	assert.Equal(t, "Fecha", row[0])
	assert.Equal(t, "CUIT Cliente", row[6])
	assert.Equal(t, "Total", row[14])
}

func TestWriteLedger(t *testing.T) {
	rows := []report.LedgerRow{{
		IssueDate:    "15/03/2024",
		InternalType: "CD",
		TypeCode:     186,
		Letter:       "A",
		PointOfSale:  "00005",
		Number:       "00001234",
		ClientCUIT:   "30712345678",
		ClientName:   "GANADERA DEL SUR S.A.",
		ClientVAT:    domain.VATRegistered,
		Net105:       126125.00,
		VAT105:       13243.13,
		Total:        139368.13,
	}}

	var buf bytes.Buffer
	w := NewWriter(&buf)
	require.NoError(t, w.WriteHeader())
	require.NoError(t, w.WriteLedger(rows))
	w.Flush()
	require.NoError(t, w.Error())

	r := csv.NewReader(&buf)
	records, err := r.ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)

	row := records[1]
	assert.Equal(t, "15/03/2024", row[0])
	assert.Equal(t, "CD", row[1])
	assert.Equal(t, "186", row[2])
	assert.Equal(t, "A", row[3])
	assert.Equal(t, "00005", row[4])
	assert.Equal(t, "00001234", row[5])
	assert.Equal(t, "30712345678", row[6])
	assert.Equal(t, "GANADERA DEL SUR S.A.", row[7])
	assert.Equal(t, "RI", row[8])
	assert.Equal(t, "126125.00", row[9])
	assert.Equal(t, "13243.13", row[10])
	assert.Equal(t, "0.00", row[11])
	assert.Equal(t, "0.00", row[12])
	assert.Equal(t, "0.00", row[13])
	assert.Equal(t, "139368.13", row[14])
}

func TestWriteLedgerEmpty(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)
	require.NoError(t, w.WriteLedger(nil))
	w.Flush()
	require.NoError(t, w.Error())
	assert.Zero(t, buf.Len())
}

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"Libro Ventas 2024", "Libro_Ventas_2024"},
		{"liquidación/marzo", "liquidaci_n_marzo"},
		{"___ya__limpio___", "ya_limpio"},
		{"normal-name_1", "normal-name_1"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, SanitizeFilename(tt.input))
		})
	}
}

func TestBuildFilename(t *testing.T) {
	name := BuildFilename("Libro Ventas")
	assert.Regexp(t, `^Libro_Ventas_\d{4}-\d{2}-\d{2}\.csv$`, name)
}
