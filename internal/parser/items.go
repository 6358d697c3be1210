package parser

import (
	"regexp"
	"strings"

	"haciendas/internal/domain"
)

// ItemStrategy yields the livestock line items of one document.
type ItemStrategy interface {
	Name() string
	Items() []domain.LineItem
}

// ExtractItems tries strategies in order; the first non-empty result wins.
// An empty result from every strategy means "no itemized detail", not a
// parse failure.
func ExtractItems(strategies ...ItemStrategy) []domain.LineItem {
	for _, s := range strategies {
		if items := s.Items(); len(items) > 0 {
			return items
		}
	}
	return nil
}

var (
	categoryHeaderRe = regexp.MustCompile(`(?i)Categor[ií]a\s*/\s*Raza`)
	grossLabelRe     = regexp.MustCompile(`(?i)Importe Bruto:`)

	kgVivoRe   = regexp.MustCompile(`(?i)Kg\.?\s*Vivo`)
	headRe     = regexp.MustCompile(`(?i)\bCabezas?\b`)
	unitWordRe = regexp.MustCompile(`(?i)\bUnidad(?:es)?\b`)

	// Rows from the expense section that leak into the detail block.
	nonLivestockRe = regexp.MustCompile(`(?i)\b(COMISI[OÓ]N(?:ES)?|GASTOS?|NETO\s+GRAVADO|BASE\s+IMPONIBLE|IVA)\b`)
)

// detectUnit normalizes the unit-of-measure wording found in s.
func detectUnit(s string) domain.Unit {
	switch {
	case kgVivoRe.MatchString(s):
		return domain.UnitLiveKg
	case headRe.MatchString(s):
		return domain.UnitHead
	case unitWordRe.MatchString(s):
		return domain.UnitSingle
	}
	return domain.UnitUnknown
}

func isNonLivestock(label string) bool {
	return nonLivestockRe.MatchString(label)
}

// foldHeader lowers case and strips diacritics for header-keyword matching.
var deaccenter = strings.NewReplacer(
	"á", "a", "é", "e", "í", "i", "ó", "o", "ú", "u", "ñ", "n",
	"Á", "A", "É", "E", "Í", "I", "Ó", "O", "Ú", "U", "Ñ", "N",
)

func foldHeader(s string) string {
	return strings.ToLower(deaccenter.Replace(s))
}
