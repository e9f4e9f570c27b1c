package parser

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Date shapes seen across Pakistani bank statements.
var (
	// DD-MM-YYYY anywhere in a line
	datePatternDash = regexp.MustCompile(`\b(\d{2}-\d{2}-\d{4})\b`)
	// D Mon YYYY (e.g. 1 Mar 2024, 01 March 2024)
	datePatternText = regexp.MustCompile(`(?i)\b(\d{1,2})\s+(Jan|Feb|Mar|Apr|May|Jun|Jul|Aug|Sep|Oct|Nov|Dec)[a-z]*\s+(\d{4})\b`)
	// HH:MM[:SS] timestamps, optionally with AM/PM
	timePattern = regexp.MustCompile(`(?i)\b\d{1,2}:\d{2}(?::\d{2})?\s*(?:AM|PM)?\b`)
)

// decimalFieldPattern matches a decimal-formatted numeric field with an
// optional thousands separator, e.g. "1,000.00" or "25.99".
var decimalFieldPattern = regexp.MustCompile(`\d{1,3}(?:,\d{3})*\.\d{1,2}|\d+\.\d{1,2}`)

var monthNums = map[string]string{
	"jan": "01", "feb": "02", "mar": "03", "apr": "04",
	"may": "05", "jun": "06", "jul": "07", "aug": "08",
	"sep": "09", "oct": "10", "nov": "11", "dec": "12",
}

// parseAmount converts strings like "1,234.56", "Rs. 500" or "-Rs.1,000"
// to a float64. Currency markers, separators and stray whitespace are
// stripped first.
func parseAmount(s string) (float64, error) {
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, "Rs.", "")
	s = strings.ReplaceAll(s, "Rs", "")
	s = strings.ReplaceAll(s, "PKR", "")
	s = strings.ReplaceAll(s, "₨", "")
	s = strings.ReplaceAll(s, ",", "")
	s = strings.ReplaceAll(s, " ", "")
	s = strings.ReplaceAll(s, " ", "")

	if s == "" || s == "-" {
		return 0, nil
	}

	return strconv.ParseFloat(s, 64)
}

// isoFromDMY converts a DD-MM-YYYY date to ISO YYYY-MM-DD. Inputs that do
// not match the shape are returned unchanged.
func isoFromDMY(date string) string {
	parts := strings.Split(date, "-")
	if len(parts) != 3 || len(parts[2]) != 4 {
		return date
	}
	return parts[2] + "-" + parts[1] + "-" + parts[0]
}

// isoFromTextDate converts a (day, month-name, year) triple to ISO form.
func isoFromTextDate(day, month, year string) string {
	num, ok := monthNums[strings.ToLower(month[:3])]
	if !ok {
		return ""
	}
	d, err := strconv.Atoi(day)
	if err != nil {
		return ""
	}
	return fmt.Sprintf("%s-%s-%02d", year, num, d)
}

// collapseWhitespace squashes runs of whitespace into single spaces and
// trims the ends.
func collapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// titleCase re-cases SHOUTING name tokens. Tokens that are entirely
// uppercase and longer than 3 characters become Title Case; everything
// else is left alone (short tokens are often legitimate acronyms).
func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		if len(w) > 3 && w == strings.ToUpper(w) && strings.ContainsAny(w, "ABCDEFGHIJKLMNOPQRSTUVWXYZ") {
			words[i] = strings.ToUpper(w[:1]) + strings.ToLower(w[1:])
		}
	}
	return strings.Join(words, " ")
}

// cleanMerchantName extracts a short merchant label: first word only,
// trailing ".com" stripped, SHOUTING re-cased.
func cleanMerchantName(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	first := strings.Fields(s)[0]
	first = strings.TrimSuffix(first, ".com")
	first = strings.TrimSuffix(first, ".COM")
	return titleCase(first)
}

// firstWords returns at most n leading whitespace-separated words of s.
func firstWords(s string, n int) string {
	words := strings.Fields(s)
	if len(words) > n {
		words = words[:n]
	}
	return strings.Join(words, " ")
}
