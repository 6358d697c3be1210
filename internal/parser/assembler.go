package parser

import (
	"fmt"
	"log"
	"path/filepath"
	"strconv"
	"strings"

	"haciendas/internal/domain"
	"haciendas/internal/port"
	"haciendas/internal/rules"
)

// tableScanPages bounds structural table detection; the detail table of a
// settlement never starts past the second page.
const tableScanPages = 2

// Assembler runs every field extractor over a source document and builds the
// final settlement record.
type Assembler struct {
	text   port.TextExtractor
	tables port.TableExtractor
}

func NewAssembler(text port.TextExtractor, tables port.TableExtractor) *Assembler {
	return &Assembler{text: text, tables: tables}
}

// Parse extracts the settlement record from the document at path. Text
// extraction failure is fatal; table extraction failure only disables the
// table strategy and falls through to text reconstruction.
func (a *Assembler) Parse(path string) (*domain.SettlementDoc, error) {
	pages, err := a.text.PageTexts(path)
	if err != nil {
		return nil, fmt.Errorf("extract text from %s: %w", filepath.Base(path), err)
	}

	text := NormalizeText(strings.Join(pages, "\n"))
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("extract text from %s: %w", filepath.Base(path), domain.ErrUnreadableSource)
	}

	var tables []port.Table
	if a.tables != nil {
		tables, err = a.tables.PageTables(path, tableScanPages)
		if err != nil {
			log.Printf("[parser] table extraction unavailable for %s: %v", filepath.Base(path), err)
			tables = nil
		}
	}

	header := ParseHeader(text)
	issuer, recipient := ParseParties(text)
	totals := ParseTotals(text)

	doc := &domain.SettlementDoc{
		Filename:      filepath.Base(path),
		TypeCode:      parseTypeCode(header.TypeCode),
		Letter:        header.Letter,
		PointOfSale:   header.PointOfSale,
		Number:        header.Number,
		Title:         header.Title,
		IssueDate:     header.IssueDate,
		OperationDate: header.OperationDate,

		Issuer:     issuer,
		Recipient:  recipient,
		Adjustment: DetectAdjustment(text),

		GrossAmount:   totals.Gross,
		VATOnGross:    totals.VATOnGross,
		TotalExpenses: totals.Expenses,
		VATOnExpenses: totals.VATOnExpenses,
		NetAmount:     totals.Net,

		Items:        ExtractItems(NewTableStrategy(tables), NewTextStrategy(text)),
		Expenses:     ParseExpenses(text),
		Withholdings: ParseWithholdings(text),
	}
	doc.InternalType = rules.InternalType(doc.TypeCode, text)
	return doc, nil
}

func parseTypeCode(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0
	}
	return n
}
