package csvexport

import (
	"encoding/csv"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
	"time"

	"haciendas/internal/report"
)

// UTF-8 BOM bytes for Excel compatibility on Windows.
var BOM = []byte{0xEF, 0xBB, 0xBF}

// columns defines the sales-ledger CSV header row (15 columns).
var columns = []string{
	"Fecha",
	"Tipo",
	"Cod ARCA",
	"Letra",
	"PV",
	"Numero",
	"CUIT Cliente",
	"Razon Social Cliente",
	"Cond IVA",
	"Neto 10.5",
	"IVA 10.5",
	"Neto 21",
	"IVA 21",
	"Exento",
	"Total",
}

// Writer wraps csv.Writer for exporting the sales VAT ledger as CSV.
type Writer struct {
	csv *csv.Writer
}

// NewWriter creates a Writer that writes CSV to w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{csv: csv.NewWriter(w)}
}

// WriteHeader writes the 15-column header row.
func (w *Writer) WriteHeader() error {
	return w.csv.Write(columns)
}

// WriteLedger converts ledger rows to CSV rows and writes them.
func (w *Writer) WriteLedger(rows []report.LedgerRow) error {
	for i := range rows {
		if err := w.csv.Write(ledgerToRow(&rows[i])); err != nil {
			return err
		}
	}
	return nil
}

// Flush flushes the underlying csv.Writer buffer.
func (w *Writer) Flush() {
	w.csv.Flush()
}

// Error returns any error from the underlying csv.Writer.
func (w *Writer) Error() error {
	return w.csv.Error()
}

func ledgerToRow(r *report.LedgerRow) []string {
	row := make([]string, len(columns))
	row[0] = r.IssueDate
	row[1] = r.InternalType
	row[2] = strconv.Itoa(r.TypeCode)
	row[3] = r.Letter
	row[4] = r.PointOfSale
	row[5] = r.Number
	row[6] = r.ClientCUIT
	row[7] = r.ClientName
	row[8] = string(r.ClientVAT)
	row[9] = formatMoney(r.Net105)
	row[10] = formatMoney(r.VAT105)
	row[11] = formatMoney(r.Net21)
	row[12] = formatMoney(r.VAT21)
	row[13] = formatMoney(r.Exempt)
	row[14] = formatMoney(r.Total)
	return row
}

func formatMoney(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

// nonAlphanumeric matches characters that are not alphanumeric, hyphen, or underscore.
var nonAlphanumeric = regexp.MustCompile(`[^a-zA-Z0-9_-]+`)

// multiUnderscore matches consecutive underscores.
var multiUnderscore = regexp.MustCompile(`_{2,}`)

// SanitizeFilename cleans a name for use in Content-Disposition. Replaces
// non-alphanumeric chars (except - _) with _, collapses consecutive
// underscores, and truncates to 100 chars.
func SanitizeFilename(name string) string {
	s := nonAlphanumeric.ReplaceAllString(name, "_")
	s = multiUnderscore.ReplaceAllString(s, "_")
	s = strings.Trim(s, "_")
	if len(s) > 100 {
		s = s[:100]
	}
	return s
}

// BuildFilename returns a sanitized filename for the Content-Disposition
// header. Format: {sanitized_name}_{YYYY-MM-DD}.csv
func BuildFilename(name string) string {
	return fmt.Sprintf("%s_%s.csv", SanitizeFilename(name), time.Now().Format("2006-01-02"))
}
