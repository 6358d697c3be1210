// Package pdfx adapts the pdf library to the extraction ports. Text content
// is pulled per page; table structure is reconstructed from glyph positions,
// splitting each visual row into cells wherever a horizontal gap is wide
// enough to be a column boundary.
package pdfx

import (
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"

	"haciendas/internal/domain"
	"haciendas/internal/port"
)

// cellGap is the horizontal distance, in text-space units, that separates
// two glyph runs into different columns.
const cellGap = 12.0

// Reader extracts text and positional tables from PDF files. The zero value
// is ready to use.
type Reader struct{}

var (
	_ port.TextExtractor  = Reader{}
	_ port.TableExtractor = Reader{}
)

// PageTexts returns the plain text of every page.
func (Reader) PageTexts(path string) ([]string, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrUnreadableSource, err)
	}
	defer f.Close()

	var pages []string
	for i := 1; i <= r.NumPage(); i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			return nil, fmt.Errorf("page %d: %w", i, err)
		}
		pages = append(pages, text)
	}
	if len(pages) == 0 {
		return nil, domain.ErrUnreadableSource
	}
	return pages, nil
}

// PageTables reconstructs one positional table per page for up to maxPages
// pages. Pages without any multi-cell rows yield no table.
func (Reader) PageTables(path string, maxPages int) ([]port.Table, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrUnreadableSource, err)
	}
	defer f.Close()

	limit := r.NumPage()
	if maxPages > 0 && maxPages < limit {
		limit = maxPages
	}

	var tables []port.Table
	for i := 1; i <= limit; i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		rows, err := page.GetTextByRow()
		if err != nil {
			return nil, fmt.Errorf("page %d rows: %w", i, err)
		}
		if table := rowsToTable(rows); table != nil {
			tables = append(tables, table)
		}
	}
	return tables, nil
}

// rowsToTable turns positioned glyph rows into cell grids. A page only
// counts as tabular when at least one row splits into several cells.
func rowsToTable(rows pdf.Rows) port.Table {
	var table port.Table
	multiCell := false
	for _, row := range rows {
		cells := splitCells(row.Content)
		if len(cells) == 0 {
			continue
		}
		if len(cells) > 1 {
			multiCell = true
		}
		table = append(table, cells)
	}
	if !multiCell {
		return nil
	}
	return table
}

// splitCells groups a row's glyph runs into cells on horizontal gaps.
func splitCells(texts []pdf.Text) []string {
	var (
		cells []string
		cur   strings.Builder
		endX  float64
	)
	flush := func() {
		if s := strings.TrimSpace(cur.String()); s != "" {
			cells = append(cells, s)
		}
		cur.Reset()
	}
	for i, t := range texts {
		if i > 0 && t.X-endX > cellGap {
			flush()
		}
		cur.WriteString(t.S)
		endX = t.X + t.W
	}
	flush()
	return cells
}
