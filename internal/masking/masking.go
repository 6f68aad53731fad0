// Package masking provides irreversible, type-specific masking of PII values
// for display and export. All functions are pure and deterministic: the same
// input always produces the same masked output, and a non-empty input is never
// returned unmodified. Parse failures degrade to a more aggressive mask, never
// to the raw value.
package masking

import (
	"regexp"
	"strings"
)

// Rule selects which masking algorithm applies to a value.
type Rule string

const (
	RuleFull       Rule = "full"
	RulePartial    Rule = "partial"
	RuleEmail      Rule = "email"
	RulePhone      Rule = "phone"
	RuleSSN        Rule = "ssn"
	RuleCreditCard Rule = "credit_card"
	RuleAddress    Rule = "address"
	RuleName       Rule = "name"
	RuleIP         Rule = "ip"
)

// ParseRule converts a string into a Rule.
// Returns false if the string does not name a known rule.
func ParseRule(s string) (Rule, bool) {
	switch Rule(s) {
	case RuleFull, RulePartial, RuleEmail, RulePhone, RuleSSN,
		RuleCreditCard, RuleAddress, RuleName, RuleIP:
		return Rule(s), true
	}
	return "", false
}

// Options tunes partial and phone masking. The zero value is not useful;
// use DefaultOptions as a starting point.
type Options struct {
	// ShowFirst is the number of leading characters kept in clear by partial masking.
	ShowFirst int
	// ShowLast is the number of trailing characters kept in clear by partial masking.
	ShowLast int
	// MaskChar is the character substituted for masked characters.
	MaskChar rune
	// PreserveFormat keeps original punctuation and spacing positionally when
	// masking phone numbers.
	PreserveFormat bool
}

// DefaultOptions returns the masking defaults: show two characters on each
// side for partial masking, '*' as the mask character, format preserved.
func DefaultOptions() Options {
	return Options{
		ShowFirst:      2,
		ShowLast:       2,
		MaskChar:       '*',
		PreserveFormat: true,
	}
}

// addressTailRegex matches a trailing "City, ST" pattern at the end of an address.
var addressTailRegex = regexp.MustCompile(`([A-Za-z][A-Za-z .'-]*),\s*([A-Z]{2})\s*$`)

// Mask applies the given rule to value. Empty input returns empty output
// unchanged. An unknown rule falls back to partial masking with default
// options so the raw value is never echoed back.
func Mask(value string, rule Rule, opts Options) string {
	if value == "" {
		return ""
	}
	if opts.MaskChar == 0 {
		opts.MaskChar = '*'
	}

	switch rule {
	case RuleFull:
		return maskFull(value, opts)
	case RulePartial:
		return maskPartial(value, opts)
	case RuleEmail:
		return maskEmail(value, opts)
	case RulePhone:
		return maskPhone(value, opts)
	case RuleSSN:
		return maskSSN(value, opts)
	case RuleCreditCard:
		return maskCreditCard(value, opts)
	case RuleAddress:
		return maskAddress(value, opts)
	case RuleName:
		return maskName(value, opts)
	case RuleIP:
		return maskIP(value, opts)
	default:
		return maskPartial(value, DefaultOptions())
	}
}

// maskFull replaces every character with the mask character.
// Output length equals input length.
func maskFull(value string, opts Options) string {
	return strings.Repeat(string(opts.MaskChar), len([]rune(value)))
}

// maskPartial keeps ShowFirst leading and ShowLast trailing characters and
// masks the middle. Values too short to safely reveal their boundaries are
// masked entirely.
func maskPartial(value string, opts Options) string {
	runes := []rune(value)
	if opts.ShowFirst < 0 {
		opts.ShowFirst = 0
	}
	if opts.ShowLast < 0 {
		opts.ShowLast = 0
	}
	if len(runes) <= opts.ShowFirst+opts.ShowLast {
		return maskFull(value, opts)
	}

	var b strings.Builder
	b.WriteString(string(runes[:opts.ShowFirst]))
	b.WriteString(strings.Repeat(string(opts.MaskChar), len(runes)-opts.ShowFirst-opts.ShowLast))
	b.WriteString(string(runes[len(runes)-opts.ShowLast:]))
	return b.String()
}

// maskEmail keeps the first character of the local part and masks the rest,
// then masks only the leftmost domain label so the suffix stays readable
// (e.g. "john@mail.example.com" -> "j***@****.example.com").
// Anything that does not look like an email falls back to a full mask.
func maskEmail(value string, opts Options) string {
	if strings.Count(value, "@") != 1 {
		return maskFull(value, opts)
	}

	at := strings.Index(value, "@")
	local := value[:at]
	domain := value[at+1:]
	if local == "" || domain == "" {
		return maskFull(value, opts)
	}

	localRunes := []rune(local)
	maskedLocal := string(localRunes[0]) +
		strings.Repeat(string(opts.MaskChar), len(localRunes)-1)

	labels := strings.Split(domain, ".")
	labels[0] = strings.Repeat(string(opts.MaskChar), len([]rune(labels[0])))

	return maskedLocal + "@" + strings.Join(labels, ".")
}

// maskPhone reveals only the last four digits. With PreserveFormat set,
// original punctuation and spacing are kept positionally; otherwise the
// output contains digits only. Fewer than four digits masks everything.
func maskPhone(value string, opts Options) string {
	digits := digitCount(value)
	if digits < 4 {
		return maskFull(value, opts)
	}

	if !opts.PreserveFormat {
		stripped := extractDigits(value)
		return strings.Repeat(string(opts.MaskChar), len(stripped)-4) + stripped[len(stripped)-4:]
	}

	var b strings.Builder
	seen := 0
	for _, r := range value {
		if r < '0' || r > '9' {
			b.WriteRune(r)
			continue
		}
		seen++
		if seen > digits-4 {
			b.WriteRune(r)
		} else {
			b.WriteRune(opts.MaskChar)
		}
	}
	return b.String()
}

// maskSSN renders a nine-digit social security number as "***-**-" plus the
// last four digits. Inputs without exactly nine digits are fully masked.
func maskSSN(value string, opts Options) string {
	digits := extractDigits(value)
	if len(digits) != 9 {
		return maskFull(value, opts)
	}

	mc := string(opts.MaskChar)
	return strings.Repeat(mc, 3) + "-" + strings.Repeat(mc, 2) + "-" + digits[5:]
}

// maskCreditCard reveals the last four digits. Sixteen-digit card numbers are
// rendered in the familiar grouped form; other lengths use an ungrouped mask.
// Fewer than four digits masks everything.
func maskCreditCard(value string, opts Options) string {
	digits := extractDigits(value)
	if len(digits) < 4 {
		return maskFull(value, opts)
	}

	mc := string(opts.MaskChar)
	last4 := digits[len(digits)-4:]
	if len(digits) == 16 {
		group := strings.Repeat(mc, 4)
		return group + "-" + group + "-" + group + "-" + last4
	}
	return strings.Repeat(mc, len(digits)-4) + last4
}

// addressFallbackMaskLen is the length of the fixed mask used when no
// trailing "City, ST" pattern can be extracted from an address.
const addressFallbackMaskLen = 10

// maskAddress extracts a trailing "City, ST" pattern and renders
// "***, City, ST". When the heuristic fails it returns a fixed-length mask
// followed by an ellipsis. Best-effort: not guaranteed to hide every token.
func maskAddress(value string, opts Options) string {
	mc := string(opts.MaskChar)

	m := addressTailRegex.FindStringSubmatch(value)
	if m == nil {
		return strings.Repeat(mc, addressFallbackMaskLen) + "..."
	}

	city := strings.TrimSpace(m[1])
	state := m[2]
	return strings.Repeat(mc, 3) + ", " + city + ", " + state
}

// maskName masks a single name to its first character plus mask. Multi-token
// names keep the first initial and the first character of the last token,
// masking the remainder of the last token; middle tokens are dropped.
func maskName(value string, opts Options) string {
	tokens := strings.Fields(value)
	mc := string(opts.MaskChar)

	switch len(tokens) {
	case 0:
		// Whitespace only.
		return maskFull(value, opts)
	case 1:
		runes := []rune(tokens[0])
		if len(runes) == 1 {
			// A bare initial would echo the input.
			return maskFull(value, opts)
		}
		return string(runes[0]) + strings.Repeat(mc, len(runes)-1)
	default:
		first := []rune(tokens[0])
		last := []rune(tokens[len(tokens)-1])
		return string(first[0]) + ". " + string(last[0]) + strings.Repeat(mc, len(last)-1)
	}
}

// maskIP reveals the first two IPv4 octets or the first two IPv6 groups and
// masks the remainder. Values that are not dotted-quad or colon-grouped
// fall back to a full mask.
func maskIP(value string, opts Options) string {
	if strings.Contains(value, ":") {
		groups := strings.Split(value, ":")
		if len(groups) < 3 {
			return maskFull(value, opts)
		}
		for i := 2; i < len(groups); i++ {
			if groups[i] != "" {
				groups[i] = strings.Repeat(string(opts.MaskChar), 4)
			}
		}
		return strings.Join(groups, ":")
	}

	octets := strings.Split(value, ".")
	if len(octets) != 4 {
		return maskFull(value, opts)
	}
	mc := strings.Repeat(string(opts.MaskChar), 3)
	return octets[0] + "." + octets[1] + "." + mc + "." + mc
}

// extractDigits returns only the decimal digits of value.
func extractDigits(value string) string {
	var b strings.Builder
	for _, r := range value {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// digitCount returns the number of decimal digits in value.
func digitCount(value string) int {
	n := 0
	for _, r := range value {
		if r >= '0' && r <= '9' {
			n++
		}
	}
	return n
}
