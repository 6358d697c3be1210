// Package export renders a report as a single XLSX workbook, one sheet per
// grid, plain cell values only.
package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"haciendas/internal/report"
)

var summaryHeaders = []string{
	"Fecha", "Fecha Operación", "Título", "Tipo", "Cód ARCA", "Letra", "PV",
	"Número", "Ajuste", "Ajuste sentido", "Ajuste tipo", "Contraparte CUIT",
	"Contraparte", "Cond IVA", "Categoría/Raza", "Cabezas", "Kilos",
	"Neto Hacienda (sin gastos)", "IVA Hacienda", "Gastos (sin IVA)", "IVA Gastos",
}

var expenseHeaders = []string{
	"Movimiento", "Fecha", "Tipo", "Cód ARCA", "PV", "Número", "Contraparte",
	"Concepto", "Importe (sin IVA)", "IVA %", "IVA $",
}

var controlHeaders = []string{
	"Tipo de Hacienda", "UM", "Precio ($ UM)", "Cantidad (Cabezas)", "Kilos",
	"Monto Bruto (sin gastos)",
}

var ledgerHeaders = []string{
	"Fecha", "Tipo", "Cód ARCA", "Letra", "PV", "Número", "CUIT Cliente",
	"Razón Social Cliente", "Cond IVA", "Neto 10.5", "IVA 10.5", "Neto 21",
	"IVA 21", "Exento", "Total",
}

// Workbook builds the XLSX bytes for a report: Ventas, Compras, Gastos,
// Libro_Ventas and the control sheets.
func Workbook(r *report.Report) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", "Ventas"); err != nil {
		return nil, err
	}
	if err := writeSummarySheet(f, "Ventas", r.Sales); err != nil {
		return nil, err
	}
	if err := writeSummarySheet(f, "Compras", r.Purchases); err != nil {
		return nil, err
	}
	if err := writeExpenseSheet(f, r.Expenses); err != nil {
		return nil, err
	}
	if err := writeLedgerSheet(f, r.SalesLedger); err != nil {
		return nil, err
	}
	if err := writeControlSheet(f, "Ctrl_Ventas", r.SalesControlSummary); err != nil {
		return nil, err
	}
	if err := writeControlSheet(f, "Ctrl_Compras", r.PurchasesControlSummary); err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func newSheet(f *excelize.File, name string, headers []string) error {
	if idx, _ := f.GetSheetIndex(name); idx == -1 {
		if _, err := f.NewSheet(name); err != nil {
			return err
		}
	}
	return writeRow(f, name, 1, toAny(headers))
}

func writeRow(f *excelize.File, sheet string, row int, values []any) error {
	for i, v := range values {
		cell, err := excelize.CoordinatesToCellName(i+1, row)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, v); err != nil {
			return err
		}
	}
	return nil
}

func toAny(ss []string) []any {
	out := make([]any, len(ss))
	for i, s := range ss {
		out[i] = s
	}
	return out
}

func yesNo(v bool) string {
	if v {
		return "SI"
	}
	return "NO"
}

func writeSummarySheet(f *excelize.File, name string, rows []report.SummaryRow) error {
	if err := newSheet(f, name, summaryHeaders); err != nil {
		return err
	}
	for i, r := range rows {
		values := []any{
			r.IssueDate, r.OperationDate, r.Title, r.InternalType, r.TypeCode,
			r.Letter, r.PointOfSale, r.Number, yesNo(r.IsAdjustment),
			r.Direction, r.Kind, r.CounterpartyCUIT, r.CounterpartyName,
			string(r.CounterpartyVAT), r.Categories, r.Heads, r.Kilos,
			r.NetLivestock, r.VATLivestock, r.Expenses, r.VATExpenses,
		}
		if err := writeRow(f, name, i+2, values); err != nil {
			return err
		}
	}
	return nil
}

func writeExpenseSheet(f *excelize.File, rows []report.ExpenseRow) error {
	const name = "Gastos"
	if err := newSheet(f, name, expenseHeaders); err != nil {
		return err
	}
	for i, r := range rows {
		var rate, vat any
		if r.VATRate != nil {
			rate = *r.VATRate
		}
		if r.VATAmount != nil {
			vat = *r.VATAmount
		}
		values := []any{
			string(r.Movement), r.IssueDate, r.InternalType, r.TypeCode,
			r.PointOfSale, r.Number, r.Counterparty, r.Concept, r.Amount,
			rate, vat,
		}
		if err := writeRow(f, name, i+2, values); err != nil {
			return err
		}
	}
	return nil
}

func writeLedgerSheet(f *excelize.File, rows []report.LedgerRow) error {
	const name = "Libro_Ventas"
	if err := newSheet(f, name, ledgerHeaders); err != nil {
		return err
	}
	for i, r := range rows {
		values := []any{
			r.IssueDate, r.InternalType, r.TypeCode, r.Letter, r.PointOfSale,
			r.Number, r.ClientCUIT, r.ClientName, string(r.ClientVAT),
			r.Net105, r.VAT105, r.Net21, r.VAT21, r.Exempt, r.Total,
		}
		if err := writeRow(f, name, i+2, values); err != nil {
			return err
		}
	}
	return nil
}

func writeControlSheet(f *excelize.File, name string, rows []report.ControlSummaryRow) error {
	if err := newSheet(f, name, controlHeaders); err != nil {
		return err
	}
	for i, r := range rows {
		values := []any{
			r.Category, string(r.Unit), r.UnitPrice, r.Heads, r.Kilos, r.Gross,
		}
		if err := writeRow(f, name, i+2, values); err != nil {
			return err
		}
	}
	return nil
}
