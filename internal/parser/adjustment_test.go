package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"haciendas/internal/domain"
)

func TestDetectAdjustment(t *testing.T) {
	tests := []struct {
		name string
		text string
		want domain.Adjustment
	}{
		{
			name: "plain settlement",
			text: "LIQUIDACIÓN DE COMPRA DIRECTA",
			want: domain.Adjustment{},
		},
		{
			name: "physical credit",
			text: "AJUSTE FÍSICO CRÉDITO sobre liquidación 00001234",
			want: domain.Adjustment{
				IsAdjustment: true,
				Direction:    domain.DirectionCredit,
				Kind:         domain.KindPhysical,
			},
		},
		{
			name: "monetary debit without accents",
			text: "Ajuste financiero debito\n",
			want: domain.Adjustment{
				IsAdjustment: true,
				Direction:    domain.DirectionDebit,
				Kind:         domain.KindMonetary,
			},
		},
		{
			name: "adjustment with no direction keyword",
			text: "AJUSTE sobre operación anterior",
			want: domain.Adjustment{IsAdjustment: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DetectAdjustment(tt.text))
		})
	}
}

func TestDetectAdjustmentSigns(t *testing.T) {
	credit := DetectAdjustment("AJUSTE FÍSICO CRÉDITO")
	assert.Equal(t, -1.0, credit.SignMultiplier())
	assert.True(t, credit.AffectsQuantities())

	monetary := DetectAdjustment("AJUSTE MONETARIO CRÉDITO")
	assert.Equal(t, -1.0, monetary.SignMultiplier())
	assert.False(t, monetary.AffectsQuantities())

	debit := DetectAdjustment("AJUSTE FÍSICO DÉBITO")
	assert.Equal(t, 1.0, debit.SignMultiplier())
}
