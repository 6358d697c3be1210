package parser

import (
	"strings"

	"haciendas/internal/domain"
)

// DetectAdjustment classifies the document as a normal liquidation or a
// credit/debit, physical/monetary adjustment. It is a pure function over the
// upper-cased text; when keywords are ambiguous the direction or kind stays
// unset.
func DetectAdjustment(text string) domain.Adjustment {
	t := strings.ToUpper(text)
	if !strings.Contains(t, "AJUSTE") {
		return domain.Adjustment{}
	}

	adj := domain.Adjustment{IsAdjustment: true}

	switch {
	case strings.Contains(t, "CRÉDITO") || strings.Contains(t, "CREDITO"):
		adj.Direction = domain.DirectionCredit
	case strings.Contains(t, "DÉBITO") || strings.Contains(t, "DEBITO"):
		adj.Direction = domain.DirectionDebit
	}

	switch {
	case strings.Contains(t, "AJUSTE FÍSICO") || strings.Contains(t, "AJUSTE FISICO"):
		adj.Kind = domain.KindPhysical
	case strings.Contains(t, "AJUSTE FINANCIERO") || strings.Contains(t, "AJUSTE MONETARIO"):
		adj.Kind = domain.KindMonetary
	}

	return adj
}
