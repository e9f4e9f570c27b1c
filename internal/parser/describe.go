package parser

import (
	"regexp"
	"strings"
)

// The normalizer turns raw, noisy transaction descriptions into short
// human-readable labels. Each rewrite rule is a pure (string) -> (string,
// matched) function; rules are tried in priority order and the first match
// wins. Text no rule claims falls through to a token-filter fallback.

// fallbackLabel is used whenever normalization produces an empty string.
const fallbackLabel = "Transaction"

var (
	// Parenthesised email-ish handles, e.g. "(ali.khan@nayapay)".
	emailParenPattern = regexp.MustCompile(`\s*\([^)]*@[^)]*\)`)
	// Masked account tokens, e.g. "****1234", "4521-**-9910".
	maskedAccountPattern = regexp.MustCompile(`\S*\*{2,}\S*`)

	pureDigitsPattern = regexp.MustCompile(`^\d+$`)
	alnumTokenPattern = regexp.MustCompile(`^[A-Za-z0-9-]+$`)
)

// isOpaqueCode reports whether a token looks like a reference code: long,
// purely alphanumeric, and carrying at least one digit. Long plain words
// are kept.
func isOpaqueCode(tok string) bool {
	return len(tok) >= 10 &&
		alnumTokenPattern.MatchString(tok) &&
		strings.ContainsAny(tok, "0123456789")
}

type rewriteRule struct {
	pattern *regexp.Regexp
	rewrite func(m []string) string
}

var rewriteRules = []rewriteRule{
	{
		regexp.MustCompile(`(?i)money\s+received\s+from\s+(.+)`),
		func(m []string) string { return "Received from " + titleCase(strings.TrimSpace(m[1])) },
	},
	{
		regexp.MustCompile(`(?i)money\s+sent\s+to\s+(.+)`),
		func(m []string) string { return "Sent to " + titleCase(strings.TrimSpace(m[1])) },
	},
	{
		regexp.MustCompile(`(?i)outgoing\s+fund\s+transfer\s+to\s+(.+)`),
		func(m []string) string { return "Transfer to " + strings.TrimSpace(m[1]) },
	},
	{
		regexp.MustCompile(`(?i)incoming\s+fund\s+transfer\s+from\s+(.+)`),
		func(m []string) string { return "Transfer from " + firstWords(strings.TrimSpace(m[1]), 3) },
	},
	{
		regexp.MustCompile(`(?i)revers(?:al|ed)\b.*?paid\s+to\s+(\S+)`),
		func(m []string) string { return cleanMerchantName(m[1]) + " Refund" },
	},
	{
		regexp.MustCompile(`(?i)paid\s+to\s+(.+?)(?:\s+(?:by|via|using)\s+.*)?$`),
		func(m []string) string { return cleanMerchantName(m[1]) },
	},
	{
		regexp.MustCompile(`(?i)\b(?:atm|cash)\s+withdrawal\b`),
		func(m []string) string { return "ATM Withdrawal" },
	},
	{
		regexp.MustCompile(`(?i)\b(?:mobile\s+top-?up|prepaid\s+(?:top-?up|recharge))\b`),
		func(m []string) string { return "Mobile Top-up" },
	},
}

// NormalizeDescription cleans a raw description into a short label. The
// result is never empty: text that normalizes away entirely becomes
// "Transaction".
func NormalizeDescription(raw string) string {
	s := emailParenPattern.ReplaceAllString(raw, "")
	s = maskedAccountPattern.ReplaceAllString(s, " ")
	s = collapseWhitespace(s)
	if s == "" {
		return fallbackLabel
	}

	for _, rule := range rewriteRules {
		if m := rule.pattern.FindStringSubmatch(s); m != nil {
			if out := collapseWhitespace(rule.rewrite(m)); out != "" {
				return out
			}
			return fallbackLabel
		}
	}

	if out := fallbackDescription(s); out != "" {
		return out
	}
	return fallbackLabel
}

// fallbackDescription keeps the first few meaningful tokens of text no
// rewrite rule claimed: pure digits and opaque reference codes are
// dropped, at most 5 tokens survive, and the result is capped at 50
// characters.
func fallbackDescription(s string) string {
	var kept []string
	for _, tok := range strings.Fields(s) {
		if pureDigitsPattern.MatchString(tok) {
			continue
		}
		if isOpaqueCode(tok) {
			continue
		}
		kept = append(kept, tok)
		if len(kept) == 5 {
			break
		}
	}

	out := strings.Join(kept, " ")
	if runes := []rune(out); len(runes) > 50 {
		out = strings.TrimSpace(string(runes[:50])) + "…"
	}
	return out
}
