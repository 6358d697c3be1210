package domain

import (
	"time"

	"github.com/google/uuid"
)

// Party identifies one side of a settlement document.
type Party struct {
	CUIT            string       `json:"cuit"`
	Name            string       `json:"name"`
	VATConditionRaw string       `json:"vat_condition_raw"`
	VATCondition    VATCondition `json:"vat_condition"`
	IIBB            string       `json:"iibb"`
}

// Adjustment describes whether a document corrects an earlier settlement and
// how that correction impacts amounts and quantities.
type Adjustment struct {
	IsAdjustment bool                `json:"is_adjustment"`
	Direction    AdjustmentDirection `json:"direction,omitempty"`
	Kind         AdjustmentKind      `json:"kind,omitempty"`
}

// SignMultiplier is the sign applied to monetary amounts: credit adjustments
// negate, everything else keeps the positive sign.
func (a Adjustment) SignMultiplier() float64 {
	if a.IsAdjustment && a.Direction == DirectionCredit {
		return -1
	}
	return 1
}

// AffectsQuantities reports whether head counts and kilos carry the
// adjustment sign. Only physical adjustments do.
func (a Adjustment) AffectsQuantities() bool {
	return a.IsAdjustment && a.Kind == KindPhysical
}

// LineItem is one livestock row of the settlement detail.
// HeadCount and Kilos are unsigned; consumers apply the adjustment sign.
type LineItem struct {
	Category  string   `json:"category"`
	HeadCount float64  `json:"head_count"`
	Kilos     float64  `json:"kilos"`
	Unit      Unit     `json:"unit"`
	UnitPrice float64  `json:"unit_price"`
	Gross     float64  `json:"gross"`
	VATRate   *float64 `json:"vat_rate,omitempty"`
	VATAmount *float64 `json:"vat_amount,omitempty"`
}

// Expense is one line of the expense/commission section.
type Expense struct {
	Concept   string   `json:"concept"`
	Base      *float64 `json:"base,omitempty"`
	Rate      *float64 `json:"rate,omitempty"`
	Amount    float64  `json:"amount"`
	VATRate   *float64 `json:"vat_rate,omitempty"`
	VATAmount *float64 `json:"vat_amount,omitempty"`
}

// Withholding is one tax retention or perception line.
type Withholding struct {
	Label  string  `json:"label"`
	Amount float64 `json:"amount"`
}

// SettlementDoc is the fully extracted record of one settlement document.
// It is built once by the assembler and never mutated afterwards.
type SettlementDoc struct {
	Filename      string `json:"filename"`
	TypeCode      int    `json:"type_code"`
	Letter        string `json:"letter"`
	PointOfSale   string `json:"point_of_sale"`
	Number        string `json:"number"`
	Title         string `json:"title"`
	IssueDate     string `json:"issue_date"`
	OperationDate string `json:"operation_date"`

	Issuer       Party      `json:"issuer"`
	Recipient    Party      `json:"recipient"`
	InternalType string     `json:"internal_type"`
	Adjustment   Adjustment `json:"adjustment"`

	GrossAmount   float64 `json:"gross_amount"`
	VATOnGross    float64 `json:"vat_on_gross"`
	TotalExpenses float64 `json:"total_expenses"`
	VATOnExpenses float64 `json:"vat_on_expenses"`
	NetAmount     float64 `json:"net_amount"`

	Items        []LineItem    `json:"items"`
	Expenses     []Expense     `json:"expenses"`
	Withholdings []Withholding `json:"withholdings"`
}

// HeadCount sums the unsigned head counts over all items.
func (d *SettlementDoc) HeadCount() float64 {
	var total float64
	for _, it := range d.Items {
		total += it.HeadCount
	}
	return total
}

// Kilos sums the unsigned live-weight kilos over all items.
func (d *SettlementDoc) Kilos() float64 {
	var total float64
	for _, it := range d.Items {
		total += it.Kilos
	}
	return total
}

// quantitySign is the sign applied to head counts and kilos. Monetary
// adjustments leave quantities untouched.
func (d *SettlementDoc) quantitySign() float64 {
	if d.Adjustment.AffectsQuantities() {
		return d.Adjustment.SignMultiplier()
	}
	return 1
}

// SignedGross is the document gross with the adjustment sign applied.
func (d *SettlementDoc) SignedGross() float64 {
	return d.GrossAmount * d.Adjustment.SignMultiplier()
}

// SignedVATOnGross is the VAT on gross with the adjustment sign applied.
func (d *SettlementDoc) SignedVATOnGross() float64 {
	return d.VATOnGross * d.Adjustment.SignMultiplier()
}

// SignedExpenses is the expense total with the adjustment sign applied.
func (d *SettlementDoc) SignedExpenses() float64 {
	return d.TotalExpenses * d.Adjustment.SignMultiplier()
}

// SignedVATOnExpenses is the VAT on expenses with the adjustment sign applied.
func (d *SettlementDoc) SignedVATOnExpenses() float64 {
	return d.VATOnExpenses * d.Adjustment.SignMultiplier()
}

// SignedHeadCount is the head-count total, negated only by physical credit
// adjustments.
func (d *SettlementDoc) SignedHeadCount() float64 {
	return d.HeadCount() * d.quantitySign()
}

// SignedKilos is the kilo total, negated only by physical credit adjustments.
func (d *SettlementDoc) SignedKilos() float64 {
	return d.Kilos() * d.quantitySign()
}

// StoredDocument is a persisted settlement document plus the role the
// operator declared for it.
type StoredDocument struct {
	ID        uuid.UUID     `json:"id"`
	Role      Role          `json:"role"`
	Doc       SettlementDoc `json:"doc"`
	CreatedAt time.Time     `json:"created_at"`
}
