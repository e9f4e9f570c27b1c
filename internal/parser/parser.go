package parser

import (
	"strings"

	"github.com/UmerFruit/umers-expense-buddy-sub000/internal/models"
)

// Dialect is a self-contained bank statement format: a detector plus a
// parser. Dialects are stateless and independent of each other; a new bank
// is supported by implementing Dialect and appending it to the registry.
type Dialect interface {
	// ID returns the short machine identifier (e.g. "meezan").
	ID() string
	// DisplayName returns the human-readable bank name.
	DisplayName() string
	// Detect reports whether the reconstructed statement text looks like
	// this bank's layout.
	Detect(text string) bool
	// Parse turns reconstructed statement text into transactions. Blocks
	// that cannot be parsed are dropped, never reported as errors.
	Parse(text string) []models.ParsedTransaction
}

// registry holds all known dialects in priority order. Earlier entries win
// when indicator sets overlap.
var registry = []Dialect{
	&MeezanParser{},
	&NayaPayParser{},
}

// Registry returns the registered dialects in priority order.
func Registry() []Dialect {
	return registry
}

// DialectNames returns the display names of all registered dialects, for
// "unsupported format" error messages.
func DialectNames() []string {
	names := make([]string, 0, len(registry))
	for _, d := range registry {
		names = append(names, d.DisplayName())
	}
	return names
}

// Detect scans the registry in order and returns the first dialect whose
// detector matches the text. The second return is false when no dialect
// recognizes the statement.
func Detect(text string) (Dialect, bool) {
	for _, d := range registry {
		if d.Detect(text) {
			return d, true
		}
	}
	return nil, false
}

// countIndicators counts how many of the indicator strings appear in the
// text, checking both exact and case-insensitive containment. Each
// indicator is counted at most once.
func countIndicators(text string, indicators []string) int {
	lower := strings.ToLower(text)
	count := 0
	for _, ind := range indicators {
		if strings.Contains(text, ind) || strings.Contains(lower, strings.ToLower(ind)) {
			count++
		}
	}
	return count
}
