package parser

import (
	"regexp"
	"strings"

	"haciendas/internal/domain"
)

var (
	expenseBlockRe = regexp.MustCompile(`(?is)\bGastos\b[^\n]*\n(.*?)\nImporte Bruto:`)
	conceptTailRe  = regexp.MustCompile(`\s+\d.*$`)
	expensePctRe   = regexp.MustCompile(`(\d{1,2}(?:\.\d{1,3})?)\s*%`)
)

// ParseExpenses reads the expense section rows between the "Gastos" header
// and the gross total. Each row yields a concept and an amount; rows that
// carry two monetary values are read as amount plus VAT amount, in that
// visual order.
func ParseExpenses(text string) []domain.Expense {
	m := expenseBlockRe.FindStringSubmatch(text)
	if m == nil {
		return nil
	}

	var expenses []domain.Expense
	for _, ln := range nonEmptyLines(m[1]) {
		if exp, ok := parseExpenseRow(ln); ok {
			expenses = append(expenses, exp)
		}
	}
	return expenses
}

func parseExpenseRow(line string) (domain.Expense, bool) {
	tokens := moneyTokens(line)
	if len(tokens) == 0 {
		return domain.Expense{}, false
	}

	concept := strings.TrimSpace(conceptTailRe.ReplaceAllString(line, ""))
	if concept == "" {
		concept = "Gasto"
	}

	exp := domain.Expense{Concept: concept}

	if m := expensePctRe.FindStringSubmatch(line); m != nil {
		if v, ok := parseMoney(m[1]); ok {
			exp.Rate = &v
		}
	}
	// Same fixed-literal rate match as the line items; the literal never
	// needs an "IVA" prefix on the row.
	exp.VATRate = detectVATRate(line)

	switch len(tokens) {
	case 1:
		exp.Amount = moneyOrZero(tokens[0])
	default:
		// Amount and its VAT are the last two values on the row; anything
		// before them is a base figure.
		exp.Amount = moneyOrZero(tokens[len(tokens)-2])
		vat := moneyOrZero(tokens[len(tokens)-1])
		exp.VATAmount = &vat
		if len(tokens) >= 3 {
			base := moneyOrZero(tokens[len(tokens)-3])
			exp.Base = &base
		}
	}
	return exp, true
}
