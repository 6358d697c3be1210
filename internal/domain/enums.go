package domain

import "strings"

// VATCondition is the abbreviated VAT status of a counterparty.
type VATCondition string

const (
	VATRegistered VATCondition = "RI"
	VATMonotax    VATCondition = "MT"
	VATExempt     VATCondition = "EX"
	VATUnknown    VATCondition = ""
)

// Unit is the unit of measure of a livestock line item.
type Unit string

const (
	UnitHead    Unit = "Cabeza"
	UnitLiveKg  Unit = "Kg Vivo"
	UnitSingle  Unit = "Unidad"
	UnitUnknown Unit = ""
)

// AdjustmentDirection tells whether an adjustment credits or debits the
// original settlement.
type AdjustmentDirection string

const (
	DirectionCredit AdjustmentDirection = "CREDITO"
	DirectionDebit  AdjustmentDirection = "DEBITO"
	DirectionUnset  AdjustmentDirection = ""
)

// AdjustmentKind tells whether an adjustment corrects physical quantities or
// money only.
type AdjustmentKind string

const (
	KindPhysical AdjustmentKind = "FISICO"
	KindMonetary AdjustmentKind = "MONETARIO"
	KindUnset    AdjustmentKind = ""
)

// Movement classifies a document as a sale, a purchase, or neither, from the
// point of view of the declared role.
type Movement string

const (
	MovementSale     Movement = "VENTA"
	MovementPurchase Movement = "COMPRA"
	MovementNeutral  Movement = "NEUTRO"
)

// Role is the side of the settlement the operator declares for a document.
// The same document can be a purchase or a sale depending on it.
type Role string

const (
	RoleIssuer    Role = "EMISOR"
	RoleRecipient Role = "RECEPTOR"
)

// ParseRole validates a role string from an API request or a CLI flag.
func ParseRole(s string) (Role, error) {
	switch Role(strings.ToUpper(strings.TrimSpace(s))) {
	case RoleIssuer:
		return RoleIssuer, nil
	case RoleRecipient:
		return RoleRecipient, nil
	}
	return "", ErrInvalidRole
}
