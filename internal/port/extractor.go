package port

// TextExtractor yields the plain text of each page of a source document.
type TextExtractor interface {
	PageTexts(path string) ([]string, error)
}

// Table is one structurally detected grid: rows of cell text in reading order.
type Table [][]string

// TableExtractor yields per-page grids of cell text from a source document.
// Implementations that cannot detect any structure return no tables.
type TableExtractor interface {
	PageTables(path string, maxPages int) ([]Table, error)
}
