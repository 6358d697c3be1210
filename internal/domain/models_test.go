package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAdjustmentSignMultiplier(t *testing.T) {
	tests := []struct {
		name string
		adj  Adjustment
		want float64
	}{
		{"no adjustment", Adjustment{}, 1},
		{"credit", Adjustment{IsAdjustment: true, Direction: DirectionCredit}, -1},
		{"debit", Adjustment{IsAdjustment: true, Direction: DirectionDebit}, 1},
		{"adjustment without direction", Adjustment{IsAdjustment: true}, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.adj.SignMultiplier())
		})
	}
}

func TestAdjustmentAffectsQuantities(t *testing.T) {
	assert.False(t, Adjustment{}.AffectsQuantities())
	assert.False(t, Adjustment{IsAdjustment: true, Kind: KindMonetary}.AffectsQuantities())
	assert.True(t, Adjustment{IsAdjustment: true, Kind: KindPhysical}.AffectsQuantities())
}

func TestSignedTotals_PhysicalCredit(t *testing.T) {
	doc := SettlementDoc{
		Adjustment:  Adjustment{IsAdjustment: true, Direction: DirectionCredit, Kind: KindPhysical},
		GrossAmount: 1000,
		VATOnGross:  105,
		Items: []LineItem{
			{Category: "Novillo", HeadCount: 10, Kilos: 4000, Gross: 600},
			{Category: "Vaca", HeadCount: 5, Kilos: 2500, Gross: 400},
		},
	}

	assert.Equal(t, -doc.HeadCount(), doc.SignedHeadCount())
	assert.Equal(t, -doc.Kilos(), doc.SignedKilos())
	assert.Equal(t, -1000.0, doc.SignedGross())
	assert.Equal(t, -105.0, doc.SignedVATOnGross())
}

func TestSignedTotals_MonetaryCredit(t *testing.T) {
	doc := SettlementDoc{
		Adjustment:  Adjustment{IsAdjustment: true, Direction: DirectionCredit, Kind: KindMonetary},
		GrossAmount: 1000,
		Items:       []LineItem{{Category: "Novillo", HeadCount: 10, Kilos: 4000}},
	}

	// Monetary adjustments negate money but leave quantities untouched.
	assert.Equal(t, 10.0, doc.SignedHeadCount())
	assert.Equal(t, 4000.0, doc.SignedKilos())
	assert.Equal(t, -1000.0, doc.SignedGross())
}

func TestParseRole(t *testing.T) {
	r, err := ParseRole(" emisor ")
	assert.NoError(t, err)
	assert.Equal(t, RoleIssuer, r)

	r, err = ParseRole("RECEPTOR")
	assert.NoError(t, err)
	assert.Equal(t, RoleRecipient, r)

	_, err = ParseRole("COMPRADOR")
	assert.ErrorIs(t, err, ErrInvalidRole)
}
