package parser

import (
	"regexp"
	"strings"
)

var (
	titleRe    = regexp.MustCompile(`ORIGINAL\s+[A-Z]\s+(.+?)\s+N[°º]`)
	typeCodeRe = regexp.MustCompile(`(?i)C[oó]d\.\s*([0-9]{3})`)
	letterRe   = regexp.MustCompile(`ORIGINAL\s+([A-Z])\b`)
	numberRe   = regexp.MustCompile(`N[°º]\s*([0-9]{5})-([0-9]{8})`)
	issueRe    = regexp.MustCompile(`Fecha\s+([0-9]{2}/[0-9]{2}/[0-9]{4})`)
	opDateRe   = regexp.MustCompile(`(?i)Fecha Operaci[oó]n:\s*([0-9]{2}/[0-9]{2}/[0-9]{4})`)
)

// Header carries the identity fields of a settlement document. Fields whose
// anchor pattern is absent are empty strings.
type Header struct {
	Title         string
	TypeCode      string
	Letter        string
	PointOfSale   string
	Number        string
	IssueDate     string
	OperationDate string
}

// ParseHeader recovers document identity via anchored pattern search.
func ParseHeader(text string) Header {
	h := Header{
		Title:         findOne(titleRe, text),
		TypeCode:      findOne(typeCodeRe, text),
		Letter:        findOne(letterRe, text),
		IssueDate:     findOne(issueRe, text),
		OperationDate: findOne(opDateRe, text),
	}

	if m := numberRe.FindStringSubmatch(text); m != nil {
		h.PointOfSale = m[1]
		h.Number = m[2]
	}

	if h.Title == "" {
		h.Title = strings.Join(firstLines(text, 3), " ")
	}
	return h
}

// findOne returns the first trimmed capture of re in text, or "".
func findOne(re *regexp.Regexp, text string) string {
	if m := re.FindStringSubmatch(text); m != nil {
		return strings.TrimSpace(m[1])
	}
	return ""
}

// firstLines returns up to n leading non-empty lines of text.
func firstLines(text string, n int) []string {
	var out []string
	for _, ln := range strings.Split(text, "\n") {
		ln = strings.TrimSpace(ln)
		if ln == "" {
			continue
		}
		out = append(out, ln)
		if len(out) == n {
			break
		}
	}
	return out
}

// nonEmptyLines returns all trimmed non-empty lines of text.
func nonEmptyLines(text string) []string {
	var out []string
	for _, ln := range strings.Split(text, "\n") {
		ln = strings.TrimSpace(ln)
		if ln != "" {
			out = append(out, ln)
		}
	}
	return out
}
