package parser

import (
	"strings"

	"haciendas/internal/domain"
	"haciendas/internal/port"
)

// tableColumns maps semantic columns to their index in a header row.
type tableColumns struct {
	category int
	heads    int
	unit     int
	quantity int
	price    int
	gross    int
	vatRate  int
	vatAmt   int
}

func newTableColumns() tableColumns {
	return tableColumns{
		category: -1, heads: -1, unit: -1, quantity: -1,
		price: -1, gross: -1, vatRate: -1, vatAmt: -1,
	}
}

func (c tableColumns) score() int {
	n := 0
	for _, idx := range []int{c.category, c.heads, c.unit, c.quantity, c.price, c.gross, c.vatRate, c.vatAmt} {
		if idx >= 0 {
			n++
		}
	}
	return n
}

// TableStrategy reads line items out of structurally extracted tables. It is
// preferred over text reconstruction when a table with a recognizable detail
// header exists.
type TableStrategy struct {
	tables []port.Table
}

func NewTableStrategy(tables []port.Table) TableStrategy {
	return TableStrategy{tables: tables}
}

func (TableStrategy) Name() string { return "table" }

func (s TableStrategy) Items() []domain.LineItem {
	table, cols, headerIdx := bestTable(s.tables)
	if table == nil || cols.category < 0 {
		return nil
	}

	var items []domain.LineItem
	for _, row := range table[headerIdx+1:] {
		if item, ok := tableRowItem(row, cols); ok {
			items = append(items, item)
		}
	}
	return items
}

// bestTable picks the table whose header row matches the most detail
// columns, breaking ties by row count.
func bestTable(tables []port.Table) (port.Table, tableColumns, int) {
	var (
		best     port.Table
		bestCols tableColumns
		bestIdx  int
		bestRank int
	)
	for _, t := range tables {
		for i, row := range t {
			cols := matchHeader(row)
			rank := cols.score()*100 + len(t)
			if cols.category >= 0 && rank > bestRank {
				best, bestCols, bestIdx, bestRank = t, cols, i, rank
			}
		}
	}
	return best, bestCols, bestIdx
}

// matchHeader classifies each cell of a candidate header row by keyword.
// Both "IVA %" and plain "IVA" headers occur; the rate column is claimed
// first so the amount match does not shadow it.
func matchHeader(row []string) tableColumns {
	cols := newTableColumns()
	for i, cell := range row {
		h := foldHeader(cell)
		switch {
		case strings.Contains(h, "categor") || strings.Contains(h, "raza"):
			if cols.category < 0 {
				cols.category = i
			}
		case strings.Contains(h, "cabez"):
			if cols.heads < 0 {
				cols.heads = i
			}
		case strings.Contains(h, "u.m") || strings.Contains(h, "unidad de medida") || h == "um":
			if cols.unit < 0 {
				cols.unit = i
			}
		case strings.Contains(h, "cantidad") || strings.Contains(h, "kilos") || strings.Contains(h, "kgs"):
			if cols.quantity < 0 {
				cols.quantity = i
			}
		case strings.Contains(h, "precio"):
			if cols.price < 0 {
				cols.price = i
			}
		case strings.Contains(h, "bruto") || strings.Contains(h, "importe"):
			if cols.gross < 0 {
				cols.gross = i
			}
		case strings.Contains(h, "iva") && strings.Contains(h, "%"):
			if cols.vatRate < 0 {
				cols.vatRate = i
			}
		case strings.Contains(h, "iva") || strings.Contains(h, "alicuota"):
			if cols.vatAmt < 0 {
				cols.vatAmt = i
			}
		}
	}
	return cols
}

func tableRowItem(row []string, cols tableColumns) (domain.LineItem, bool) {
	category := strings.TrimSpace(cell(row, cols.category))
	category = clientCodeRe.ReplaceAllString(category, "")
	category = strings.TrimSpace(category)
	if category == "" || isNonLivestock(category) {
		return domain.LineItem{}, false
	}

	item := domain.LineItem{Category: category}

	item.Unit = detectUnit(cell(row, cols.unit))
	if item.Unit == domain.UnitUnknown {
		item.Unit = detectUnit(strings.Join(row, " "))
	}

	item.HeadCount = parseCount(cell(row, cols.heads))
	if qty := parseCount(cell(row, cols.quantity)); qty > 0 {
		// The quantity column carries kilos on weight-priced rows and
		// doubles as the head count otherwise.
		if item.Unit == domain.UnitLiveKg {
			item.Kilos = qty
		} else if item.HeadCount == 0 {
			item.HeadCount = qty
		}
	}

	if v, ok := parseMoney(cell(row, cols.price)); ok {
		item.UnitPrice = v
	}
	if v, ok := parseMoney(cell(row, cols.gross)); ok {
		item.Gross = v
	}
	if cols.vatRate >= 0 {
		item.VATRate = detectVATRate(cell(row, cols.vatRate))
	}
	if item.VATRate == nil {
		item.VATRate = detectVATRate(strings.Join(row, " "))
	}
	if v, ok := parseMoney(cell(row, cols.vatAmt)); ok && !isVATRateLiteral(cell(row, cols.vatAmt)) {
		item.VATAmount = &v
	}

	if item.Gross == 0 {
		return domain.LineItem{}, false
	}
	return item, true
}

func cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}
