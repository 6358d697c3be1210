// Package report aggregates parsed settlement documents into the accounting
// grids: per-movement summaries, expense detail, livestock control counts
// and the sales VAT ledger.
package report

import (
	"math"
	"sort"
	"strings"

	"haciendas/internal/domain"
	"haciendas/internal/rules"
)

// SummaryRow is one document in the sales or purchases grid. Amounts carry
// the adjustment sign.
type SummaryRow struct {
	IssueDate        string              `json:"issue_date"`
	OperationDate    string              `json:"operation_date"`
	Title            string              `json:"title"`
	InternalType     string              `json:"internal_type"`
	TypeCode         int                 `json:"type_code"`
	Letter           string              `json:"letter"`
	PointOfSale      string              `json:"point_of_sale"`
	Number           string              `json:"number"`
	IsAdjustment     bool                `json:"is_adjustment"`
	Direction        string              `json:"direction,omitempty"`
	Kind             string              `json:"kind,omitempty"`
	CounterpartyCUIT string              `json:"counterparty_cuit"`
	CounterpartyName string              `json:"counterparty_name"`
	CounterpartyVAT  domain.VATCondition `json:"counterparty_vat"`
	Categories       string              `json:"categories"`
	Heads            float64             `json:"heads"`
	Kilos            float64             `json:"kilos"`
	NetLivestock     float64             `json:"net_livestock"`
	VATLivestock     float64             `json:"vat_livestock"`
	Expenses         float64             `json:"expenses"`
	VATExpenses      float64             `json:"vat_expenses"`
}

// ExpenseRow is one expense line across all documents.
type ExpenseRow struct {
	Movement     domain.Movement `json:"movement"`
	IssueDate    string          `json:"issue_date"`
	InternalType string          `json:"internal_type"`
	TypeCode     int             `json:"type_code"`
	PointOfSale  string          `json:"point_of_sale"`
	Number       string          `json:"number"`
	Counterparty string          `json:"counterparty"`
	Concept      string          `json:"concept"`
	Amount       float64         `json:"amount"`
	VATRate      *float64        `json:"vat_rate,omitempty"`
	VATAmount    *float64        `json:"vat_amount,omitempty"`
}

// ControlRow is one livestock line of the head/kilo control grid. Heads and
// kilos carry the quantity sign, the gross the monetary sign.
type ControlRow struct {
	Category  string      `json:"category"`
	Unit      domain.Unit `json:"unit"`
	UnitPrice float64     `json:"unit_price"`
	Heads     int         `json:"heads"`
	Kilos     float64     `json:"kilos"`
	Gross     float64     `json:"gross"`
}

// ControlSummaryRow aggregates control rows per category and unit. UnitPrice
// is kept only when every grouped row agrees on it.
type ControlSummaryRow struct {
	Category  string      `json:"category"`
	Unit      domain.Unit `json:"unit"`
	UnitPrice float64     `json:"unit_price,omitempty"`
	Heads     int         `json:"heads"`
	Kilos     float64     `json:"kilos"`
	Gross     float64     `json:"gross"`
}

// LedgerRow is one document in the sales VAT ledger, with net and VAT split
// into the 10.5, 21 and exempt buckets.
type LedgerRow struct {
	IssueDate    string              `json:"issue_date"`
	InternalType string              `json:"internal_type"`
	TypeCode     int                 `json:"type_code"`
	Letter       string              `json:"letter"`
	PointOfSale  string              `json:"point_of_sale"`
	Number       string              `json:"number"`
	ClientCUIT   string              `json:"client_cuit"`
	ClientName   string              `json:"client_name"`
	ClientVAT    domain.VATCondition `json:"client_vat"`
	Net105       float64             `json:"net_105"`
	VAT105       float64             `json:"vat_105"`
	Net21        float64             `json:"net_21"`
	VAT21        float64             `json:"vat_21"`
	Exempt       float64             `json:"exempt"`
	Total        float64             `json:"total"`
}

// Report holds every output grid of one aggregation run.
type Report struct {
	Sales                   []SummaryRow        `json:"sales"`
	Purchases               []SummaryRow        `json:"purchases"`
	Expenses                []ExpenseRow        `json:"expenses"`
	SalesControl            []ControlRow        `json:"sales_control"`
	SalesControlSummary     []ControlSummaryRow `json:"sales_control_summary"`
	PurchasesControl        []ControlRow        `json:"purchases_control"`
	PurchasesControlSummary []ControlSummaryRow `json:"purchases_control_summary"`
	SalesLedger             []LedgerRow         `json:"sales_ledger"`
}

// Build aggregates stored documents into the report grids. Documents without
// a declared role are read from the recipient's side.
func Build(docs []domain.StoredDocument) *Report {
	r := &Report{}
	for _, stored := range docs {
		role := stored.Role
		if role == "" {
			role = domain.RoleRecipient
		}
		addDocument(r, &stored.Doc, role)
	}
	r.SalesControlSummary = summarizeControl(r.SalesControl)
	r.PurchasesControlSummary = summarizeControl(r.PurchasesControl)
	return r
}

func addDocument(r *Report, d *domain.SettlementDoc, role domain.Role) {
	mov := rules.MovementFor(d.TypeCode, role)
	counterparty := counterpartyFor(d, mov, role)

	summary := SummaryRow{
		IssueDate:        d.IssueDate,
		OperationDate:    d.OperationDate,
		Title:            d.Title,
		InternalType:     d.InternalType,
		TypeCode:         d.TypeCode,
		Letter:           d.Letter,
		PointOfSale:      d.PointOfSale,
		Number:           d.Number,
		IsAdjustment:     d.Adjustment.IsAdjustment,
		Direction:        string(d.Adjustment.Direction),
		Kind:             string(d.Adjustment.Kind),
		CounterpartyCUIT: counterparty.CUIT,
		CounterpartyName: counterparty.Name,
		CounterpartyVAT:  counterparty.VATCondition,
		Categories:       categoryList(d.Items),
		Heads:            d.SignedHeadCount(),
		Kilos:            d.SignedKilos(),
		NetLivestock:     d.SignedGross(),
		VATLivestock:     d.SignedVATOnGross(),
		Expenses:         d.SignedExpenses(),
		VATExpenses:      d.SignedVATOnExpenses(),
	}

	switch mov {
	case domain.MovementSale:
		r.Sales = append(r.Sales, summary)
	case domain.MovementPurchase:
		r.Purchases = append(r.Purchases, summary)
	}

	sign := d.Adjustment.SignMultiplier()
	for _, exp := range d.Expenses {
		row := ExpenseRow{
			Movement:     mov,
			IssueDate:    d.IssueDate,
			InternalType: d.InternalType,
			TypeCode:     d.TypeCode,
			PointOfSale:  d.PointOfSale,
			Number:       d.Number,
			Counterparty: counterparty.Name,
			Concept:      exp.Concept,
			Amount:       exp.Amount * sign,
			VATRate:      exp.VATRate,
		}
		if exp.VATAmount != nil {
			v := *exp.VATAmount * sign
			row.VATAmount = &v
		}
		r.Expenses = append(r.Expenses, row)
	}

	addControl(r, d, mov)

	if mov == domain.MovementSale {
		r.SalesLedger = append(r.SalesLedger, ledgerRow(d, counterparty))
	}
}

// counterpartyFor picks the party on the other side of the movement.
func counterpartyFor(d *domain.SettlementDoc, mov domain.Movement, role domain.Role) domain.Party {
	switch mov {
	case domain.MovementSale:
		if role == domain.RoleRecipient {
			return d.Issuer
		}
		return d.Recipient
	case domain.MovementPurchase:
		if role == domain.RoleIssuer {
			return d.Recipient
		}
		return d.Issuer
	}
	return d.Recipient
}

func categoryList(items []domain.LineItem) string {
	seen := map[string]bool{}
	for _, it := range items {
		if c := strings.TrimSpace(it.Category); c != "" {
			seen[c] = true
		}
	}
	cats := make([]string, 0, len(seen))
	for c := range seen {
		cats = append(cats, c)
	}
	sort.Strings(cats)
	return strings.Join(cats, ", ")
}

func addControl(r *Report, d *domain.SettlementDoc, mov domain.Movement) {
	if mov != domain.MovementSale && mov != domain.MovementPurchase {
		return
	}
	moneySign := d.Adjustment.SignMultiplier()
	qtySign := 1.0
	if d.Adjustment.AffectsQuantities() {
		qtySign = moneySign
	}
	for _, it := range d.Items {
		row := ControlRow{
			Category:  it.Category,
			Unit:      it.Unit,
			UnitPrice: it.UnitPrice,
			Heads:     int(math.Round(it.HeadCount * qtySign)),
			Kilos:     it.Kilos * qtySign,
			Gross:     it.Gross * moneySign,
		}
		if mov == domain.MovementSale {
			r.SalesControl = append(r.SalesControl, row)
		} else {
			r.PurchasesControl = append(r.PurchasesControl, row)
		}
	}
}

// summarizeControl groups control rows by category and unit, keeping the
// unit price only when it is uniform across the group.
func summarizeControl(rows []ControlRow) []ControlSummaryRow {
	type key struct {
		category string
		unit     domain.Unit
	}
	groups := map[key]*ControlSummaryRow{}
	uniform := map[key]bool{}
	var order []key

	for _, row := range rows {
		k := key{row.Category, row.Unit}
		g, ok := groups[k]
		if !ok {
			g = &ControlSummaryRow{Category: row.Category, Unit: row.Unit, UnitPrice: row.UnitPrice}
			groups[k] = g
			uniform[k] = true
			order = append(order, k)
		} else if g.UnitPrice != row.UnitPrice {
			uniform[k] = false
		}
		g.Heads += row.Heads
		g.Kilos += row.Kilos
		g.Gross += row.Gross
	}

	out := make([]ControlSummaryRow, 0, len(order))
	for _, k := range order {
		g := groups[k]
		if !uniform[k] {
			g.UnitPrice = 0
		}
		out = append(out, *g)
	}
	return out
}

// ledgerRow buckets a sale's items into the 10.5, 21 and exempt columns.
// Items without a per-item rate fall back to the rate implied by the
// document totals.
func ledgerRow(d *domain.SettlementDoc, counterparty domain.Party) LedgerRow {
	row := LedgerRow{
		IssueDate:    d.IssueDate,
		InternalType: d.InternalType,
		TypeCode:     d.TypeCode,
		Letter:       d.Letter,
		PointOfSale:  d.PointOfSale,
		Number:       d.Number,
		ClientCUIT:   counterparty.CUIT,
		ClientName:   counterparty.Name,
		ClientVAT:    counterparty.VATCondition,
	}

	sign := d.Adjustment.SignMultiplier()
	for _, it := range d.Items {
		net := it.Gross * sign
		var vat float64
		if it.VATAmount != nil {
			vat = *it.VATAmount * sign
		}
		pct := PctFromTotals(d.GrossAmount, d.VATOnGross)
		if it.VATRate != nil {
			pct = *it.VATRate
		}
		switch {
		case pct >= 20:
			row.Net21 += net
			row.VAT21 += vat
		case pct > 0:
			row.Net105 += net
			row.VAT105 += vat
		default:
			row.Exempt += net
		}
	}

	row.Net105 = round2(row.Net105)
	row.VAT105 = round2(row.VAT105)
	row.Net21 = round2(row.Net21)
	row.VAT21 = round2(row.VAT21)
	row.Exempt = round2(row.Exempt)
	row.Total = round2(row.Net105 + row.VAT105 + row.Net21 + row.VAT21 + row.Exempt)
	return row
}

// PctFromTotals derives the effective VAT percentage from the document
// totals, rounded to three decimals.
func PctFromTotals(gross, vat float64) float64 {
	if gross == 0 || vat == 0 {
		return 0
	}
	return math.Round(vat/gross*100*1000) / 1000
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
