// Package detection scans free text for PII-shaped substrings and redacts
// them. Detection is heuristic pattern matching: it can miss PII and it
// can double-report a span under more than one type. Treat the output as
// best-effort hygiene, not a compliance guarantee.
package detection

import (
	"regexp"
	"sort"
	"strings"
)

// Type classifies a detected PII substring.
type Type string

const (
	TypeEmail      Type = "email"
	TypePhone      Type = "phone"
	TypeSSN        Type = "ssn"
	TypeCreditCard Type = "credit_card"
	TypeIPv4       Type = "ipv4"
)

// Finding is one detected PII substring: its type, the matched text, and
// the byte offset where it starts. Findings are ephemeral; callers consume
// them immediately for redaction or reporting.
type Finding struct {
	Type  Type
	Match string
	Index int
}

// Patterns are evaluated independently and in this order. Order matters
// only for the stable ordering of findings; it is not a precedence rule,
// and a span matching two patterns is reported twice.
var patterns = []struct {
	piiType Type
	regex   *regexp.Regexp
}{
	{TypeEmail, regexp.MustCompile(`[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}`)},
	{TypePhone, regexp.MustCompile(`\b\(?\d{3}\)?[-.\s]?\d{3}[-.\s]?\d{4}\b`)},
	{TypeSSN, regexp.MustCompile(`\b\d{3}-\d{2}-\d{4}\b`)},
	{TypeCreditCard, regexp.MustCompile(`\b\d{4}[-\s]?\d{4}[-\s]?\d{4}[-\s]?\d{4}\b`)},
	{TypeIPv4, regexp.MustCompile(`\b(?:\d{1,3}\.){3}\d{1,3}\b`)},
}

// Detect scans text and returns every pattern match. Findings are grouped
// by pattern order, then by position. No matches is a valid empty result,
// never an error.
func Detect(text string) []Finding {
	var findings []Finding
	for _, p := range patterns {
		for _, loc := range p.regex.FindAllStringIndex(text, -1) {
			findings = append(findings, Finding{
				Type:  p.piiType,
				Match: text[loc[0]:loc[1]],
				Index: loc[0],
			})
		}
	}
	return findings
}

// Redact replaces every detected PII substring with a typed placeholder
// such as [REDACTED_EMAIL].
//
// Overlapping findings are merged into a single span before splicing, and
// the earliest-starting (widest on ties) finding supplies the placeholder
// type, so double-reported spans redact deterministically and no part of an
// overlapped match survives. Splices land in descending offset order so
// earlier offsets stay valid.
func Redact(text string) string {
	findings := Detect(text)
	if len(findings) == 0 {
		return text
	}

	type span struct {
		start, end int
		piiType    Type
	}
	spans := make([]span, 0, len(findings))
	for _, f := range findings {
		spans = append(spans, span{f.Index, f.Index + len(f.Match), f.Type})
	}
	sort.SliceStable(spans, func(i, j int) bool {
		if spans[i].start != spans[j].start {
			return spans[i].start < spans[j].start
		}
		return spans[i].end > spans[j].end
	})

	merged := spans[:1]
	for _, s := range spans[1:] {
		last := &merged[len(merged)-1]
		if s.start < last.end {
			if s.end > last.end {
				last.end = s.end
			}
			continue
		}
		merged = append(merged, s)
	}

	out := text
	for i := len(merged) - 1; i >= 0; i-- {
		s := merged[i]
		out = out[:s.start] + placeholder(s.piiType) + out[s.end:]
	}
	return out
}

func placeholder(t Type) string {
	return "[REDACTED_" + strings.ToUpper(string(t)) + "]"
}
