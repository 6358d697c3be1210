package parser

import (
	"regexp"
	"strings"

	"haciendas/internal/domain"
)

var withholdingPrefixRe = regexp.MustCompile(`(?i)^\s*(Retenci[oó]n|Percepci[oó]n)\b`)

// ParseWithholdings scans for retention and perception lines anywhere in the
// document. The label is the line text up to the trailing amount.
func ParseWithholdings(text string) []domain.Withholding {
	var out []domain.Withholding
	for _, ln := range nonEmptyLines(text) {
		if !withholdingPrefixRe.MatchString(ln) {
			continue
		}
		tokens := moneyTokens(ln)
		if len(tokens) == 0 {
			continue
		}
		last := tokens[len(tokens)-1]
		label := ln
		if idx := strings.LastIndex(ln, last); idx >= 0 {
			label = ln[:idx]
		}
		label = strings.TrimRight(strings.TrimSpace(label), ":$ \t")
		out = append(out, domain.Withholding{
			Label:  label,
			Amount: moneyOrZero(last),
		})
	}
	return out
}
