// Package parser turns the raw extracted text of a livestock settlement
// document into a typed domain.SettlementDoc. Every field extractor is an
// independent fallible function over the normalized text; the assembler runs
// them all and fills documented defaults for whatever was not found.
package parser

import "regexp"

var (
	// Amounts wrap across page lines, e.g. "1,876,895.\n78" or "1,500,000.0\n0".
	brokenDecimalRe  = regexp.MustCompile(`(\d[\d,]*\.)\s*\n\s*(\d{1,3})\b`)
	brokenFractionRe = regexp.MustCompile(`(\d[\d,]*\.\d)\s*\n\s*(\d)\b`)
	hspaceRe         = regexp.MustCompile(`[ \t]+`)
)

// NormalizeText rejoins numeric tokens broken across line boundaries and
// collapses runs of horizontal whitespace, preserving line breaks otherwise.
// It is idempotent.
func NormalizeText(text string) string {
	if text == "" {
		return ""
	}
	t := brokenDecimalRe.ReplaceAllString(text, "$1$2")
	t = brokenFractionRe.ReplaceAllString(t, "$1$2")
	return hspaceRe.ReplaceAllString(t, " ")
}
