package parser

import (
	"regexp"
	"strings"

	"haciendas/internal/domain"
)

var (
	codMarkerRe = regexp.MustCompile(`(?i)C[oó]d\.`)

	issuerCUITRe = regexp.MustCompile(`CUIT:\s*([0-9]{11})`)
	issuerIIBBRe = regexp.MustCompile(`Ingresos Brutos:\s*([A-Z0-9\-. ]*)`)
	issuerVATRe  = regexp.MustCompile(`(?i)Condici[oó]n frente al IVA:\s*([A-Za-zÁÉÍÓÚÑáéíóúñ ]+)`)

	recipientBlockRe = regexp.MustCompile(`(?is)Receptor(.*?)Fecha Operaci[oó]n:`)
	recipientNameRe  = regexp.MustCompile(`(?i)(?:Nombre y Apellido|Raz[oó]n Social):\s*([A-Z0-9.\- ÁÉÍÓÚÑáéíóúñ]+)`)
	recipientVATRe   = regexp.MustCompile(`(?i)Situaci[oó]n IVA:\s*([A-Za-zÁÉÍÓÚÑáéíóúñ ]+)`)
	recipientIIBBRe  = regexp.MustCompile(`(?i)N[°º] IIBB:\s*([A-Z0-9\-. ]*)`)
)

// Captions that surround the issuer name on the document head but are never
// the name itself.
var boilerplateCaptions = []string{
	"ORIGINAL", "LIQUIDACIÓN", "LIQUIDACION", "CUENTA DE VENTA", "N°", "Nº",
}

// Markers that end the issuer-name scan below the type-code line.
var issuerNameStops = []string{
	"FECHA", "CUIT", "RECEPTOR", "CATEGOR", "GASTOS",
}

// AbbreviateVATCondition maps the raw VAT-condition text of a document to
// its abbreviated code. Text matching none of the known conditions maps to
// the unknown (empty) code.
func AbbreviateVATCondition(raw string) domain.VATCondition {
	t := strings.ToUpper(raw)
	switch {
	case strings.Contains(t, "MONOTRIB"):
		return domain.VATMonotax
	case strings.Contains(t, "EXENT"):
		return domain.VATExempt
	case strings.Contains(t, "RESPONSABLE") && strings.Contains(t, "INSCRIP"):
		return domain.VATRegistered
	case strings.Contains(t, "IVA") && strings.Contains(t, "RESP"):
		return domain.VATRegistered
	}
	return domain.VATUnknown
}

// ParseParties recovers issuer and recipient identity. The text is split at
// the first "Receptor" marker; issuer fields are searched before it, and
// recipient fields inside the block delimited by "Receptor" and the
// operation-date marker.
func ParseParties(text string) (issuer, recipient domain.Party) {
	issuerSeg := text
	if idx := strings.Index(text, "Receptor"); idx >= 0 {
		issuerSeg = text[:idx]
	}

	issuer.Name = issuerName(issuerSeg)
	issuer.CUIT = findOne(issuerCUITRe, issuerSeg)
	issuer.IIBB = findOne(issuerIIBBRe, issuerSeg)
	issuer.VATConditionRaw = findOne(issuerVATRe, issuerSeg)
	issuer.VATCondition = AbbreviateVATCondition(issuer.VATConditionRaw)

	block := ""
	if m := recipientBlockRe.FindStringSubmatch(text); m != nil {
		block = m[1]
	}
	recipient.CUIT = findOne(issuerCUITRe, block)
	recipient.Name = findOne(recipientNameRe, block)
	recipient.VATConditionRaw = findOne(recipientVATRe, block)
	recipient.VATCondition = AbbreviateVATCondition(recipient.VATConditionRaw)
	recipient.IIBB = findOne(recipientIIBBRe, block)
	return issuer, recipient
}

// issuerName recovers the issuer display name around the type-code line.
// The name is usually printed on the same line, before "Cód."; when that
// slot holds a boilerplate caption instead, the lines right below are
// concatenated until a stop marker appears.
func issuerName(seg string) string {
	lines := nonEmptyLines(seg)
	idx := -1
	var loc []int
	for i, ln := range lines {
		if loc = codMarkerRe.FindStringIndex(ln); loc != nil {
			idx = i
			break
		}
	}
	if idx < 0 {
		return ""
	}

	if prefix := strings.TrimSpace(lines[idx][:loc[0]]); prefix != "" && !isBoilerplate(prefix) {
		return prefix
	}

	var parts []string
	for j := idx + 1; j < len(lines) && j <= idx+3; j++ {
		up := strings.ToUpper(lines[j])
		if hasAnyPrefixOrWord(up, issuerNameStops) {
			break
		}
		if isBoilerplate(lines[j]) {
			continue
		}
		parts = append(parts, lines[j])
	}
	return strings.TrimSpace(strings.Join(parts, " "))
}

func isBoilerplate(line string) bool {
	up := strings.ToUpper(line)
	for _, c := range boilerplateCaptions {
		if strings.Contains(up, c) {
			return true
		}
	}
	return false
}

func hasAnyPrefixOrWord(up string, markers []string) bool {
	for _, m := range markers {
		if strings.Contains(up, m) {
			return true
		}
	}
	return false
}
