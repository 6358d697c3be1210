package parser

import (
	"regexp"
	"sort"
	"strings"

	"haciendas/internal/domain"
)

var (
	expensesHeaderRe = regexp.MustCompile(`(?im)^\s*Gastos\b`)

	alphaRe      = regexp.MustCompile(`[A-Za-zÁÉÍÓÚÑáéíóúñ]`)
	clientCodeRe = regexp.MustCompile(`^\s*\d{11}\s*-\s*`)
	intTokenRe   = regexp.MustCompile(`\b\d[\d,]*\b`)
	strayDotRe   = regexp.MustCompile(`\s*\.\s*`)

	// Unit-anchored count/weight patterns. On weight-priced rows the head
	// count precedes the unit token and the kilos follow it.
	kgPairRe      = regexp.MustCompile(`(?i)\s(\d{1,5})\s+Kg\.?\s*Vivo\s+(\d[\d,]*)`)
	kgHeadsRe     = regexp.MustCompile(`(?i)\b(\d{1,5})\s+Kg\.?\s*Vivo\b`)
	kgKilosRe     = regexp.MustCompile(`(?i)Kg\.?\s*Vivo\s+(\d[\d,]*)`)
	headCountRe   = regexp.MustCompile(`(?i)\b(\d{1,5})\s+Cabezas?\b`)
	singleCountRe = regexp.MustCompile(`(?i)\b(\d{1,5})\s+Unidad(?:es)?\b`)
)

// TextStrategy reconstructs line items from the plain text between the
// category header and the gross-amount label. It is the fallback when no
// structural table qualifies.
type TextStrategy struct {
	text string
}

func NewTextStrategy(text string) TextStrategy {
	return TextStrategy{text: text}
}

func (TextStrategy) Name() string { return "text" }

func (s TextStrategy) Items() []domain.LineItem {
	start := categoryHeaderRe.FindStringIndex(s.text)
	end := grossLabelRe.FindStringIndex(s.text)
	if start == nil || end == nil || end[0] <= start[1] {
		return nil
	}

	block := s.text[start[0]:end[0]]
	// Keep expense rows out of the detail block.
	if g := expensesHeaderRe.FindStringIndex(block); g != nil && g[0] > 0 {
		block = block[:g[0]]
	}

	lines := nonEmptyLines(block)
	headerIdx := -1
	for i, ln := range lines {
		if categoryHeaderRe.MatchString(ln) {
			headerIdx = i
			break
		}
	}
	if headerIdx < 0 {
		return nil
	}

	var items []domain.LineItem
	for _, row := range mergeRows(lines[headerIdx+1:]) {
		if item, ok := parseItemRow(row); ok {
			items = append(items, item)
		}
	}
	return items
}

// mergeRows reassembles logical rows from physical lines. Category, unit and
// amounts frequently end up on separate lines of the extracted text.
func mergeRows(lines []string) []string {
	var merged []string
	i := 0
	for i < len(lines) {
		cur := lines[i]
		var next string
		if i+1 < len(lines) {
			next = lines[i+1]
		}

		// Unit on the following line: join, then absorb a third text-only
		// line (a breed name such as "Brangus") when present.
		if detectUnit(cur) == domain.UnitUnknown && next != "" && detectUnit(next) != domain.UnitUnknown {
			combined := cur + " " + next
			i += 2
			if i < len(lines) {
				third := lines[i]
				if len(moneyTokens(third)) == 0 && alphaRe.MatchString(third) {
					combined += " " + third
					i++
				}
			}
			merged = append(merged, combined)
			continue
		}

		// A nearly numberless line is a stray continuation of the previous row.
		if len(merged) > 0 && digitCount(cur) < 3 && len(moneyTokens(cur)) == 0 {
			merged[len(merged)-1] += " " + cur
			i++
			continue
		}

		// A text-only follower after a line that already has amounts
		// continues the category label.
		if next != "" && len(moneyTokens(cur)) > 0 &&
			len(moneyTokens(next)) == 0 && digitCount(next) == 0 && alphaRe.MatchString(next) {
			merged = append(merged, cur+" "+next)
			i += 2
			continue
		}

		merged = append(merged, cur)
		i++
	}
	return merged
}

// parseItemRow turns one reconstructed row into a line item. Rows with too
// few monetary values to disambiguate are dropped.
func parseItemRow(row string) (domain.LineItem, bool) {
	unit := detectUnit(row)
	rate := detectVATRate(row)

	var values []float64
	for _, tok := range moneyTokens(row) {
		if v, ok := parseMoney(tok); ok {
			values = append(values, v)
		}
	}

	gross, price, vatAmount, ok := assignAmounts(values, rate != nil)
	if !ok {
		return domain.LineItem{}, false
	}

	heads, kilos := countsFor(unit, row)

	category := categoryLabel(row)
	if category == "" || isNonLivestock(category) {
		return domain.LineItem{}, false
	}

	return domain.LineItem{
		Category:  category,
		HeadCount: heads,
		Kilos:     kilos,
		Unit:      unit,
		UnitPrice: price,
		Gross:     gross,
		VATRate:   rate,
		VATAmount: vatAmount,
	}, true
}

// assignAmounts disambiguates gross, VAT amount and unit price by magnitude.
// With a VAT rate present the largest value is the gross, the second largest
// the VAT amount, and a remaining smallest value the unit price; without a
// rate the largest is the gross and a second value the unit price. This
// ordering assumption is a documented extraction policy: documents whose
// unit price exceeds the row gross will be misread, by choice, rather than
// guessed at.
func assignAmounts(values []float64, hasRate bool) (gross, price float64, vatAmount *float64, ok bool) {
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)

	if hasRate {
		if len(sorted) < 2 {
			return 0, 0, nil, false
		}
		gross = sorted[len(sorted)-1]
		v := sorted[len(sorted)-2]
		vatAmount = &v
		if len(sorted) >= 3 {
			price = sorted[0]
		}
		return gross, price, vatAmount, true
	}

	if len(sorted) < 1 {
		return 0, 0, nil, false
	}
	gross = sorted[len(sorted)-1]
	if len(sorted) >= 2 {
		price = sorted[0]
	}
	return gross, price, nil, true
}

// countsFor recovers head count and kilos with a pattern anchored on the
// detected unit token.
func countsFor(unit domain.Unit, row string) (heads, kilos float64) {
	switch unit {
	case domain.UnitLiveKg:
		if m := kgPairRe.FindStringSubmatch(row); m != nil {
			return parseCount(m[1]), parseCount(m[2])
		}
		if m := kgHeadsRe.FindStringSubmatch(row); m != nil {
			heads = parseCount(m[1])
		}
		if m := kgKilosRe.FindStringSubmatch(row); m != nil {
			kilos = parseCount(m[1])
		}
	case domain.UnitHead:
		if m := headCountRe.FindStringSubmatch(row); m != nil {
			heads = parseCount(m[1])
		}
	case domain.UnitSingle:
		if m := singleCountRe.FindStringSubmatch(row); m != nil {
			heads = parseCount(m[1])
		}
	}
	return heads, kilos
}

// categoryLabel strips amounts, counts, the unit phrase and the leading
// client-code prefix ("30123456789 - ") from a row, leaving the
// category/breed text.
func categoryLabel(row string) string {
	t := clientCodeRe.ReplaceAllString(row, " ")
	t = moneyRe.ReplaceAllString(t, " ")
	t = intTokenRe.ReplaceAllString(t, " ")
	t = kgVivoRe.ReplaceAllString(t, " ")
	t = headRe.ReplaceAllString(t, " ")
	t = unitWordRe.ReplaceAllString(t, " ")
	t = strayDotRe.ReplaceAllString(t, " ")
	t = hspaceRe.ReplaceAllString(t, " ")
	return strings.TrimSpace(strings.Trim(strings.TrimSpace(t), "-/"))
}
