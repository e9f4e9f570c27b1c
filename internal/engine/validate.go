package engine

import (
	"fmt"
	"regexp"

	log "github.com/sirupsen/logrus"

	"github.com/UmerFruit/umers-expense-buddy-sub000/internal/models"
)

// maxReasonableTransactions is the point past which a statement has most
// likely been mis-segmented. Crossing it produces a warning, not an
// error.
const maxReasonableTransactions = 1000

var isoDatePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// validateTransactions applies the aggregate sanity checks from the parse
// run. Fatal conditions return a typed error; soft conditions come back as
// warnings to attach to the result.
func validateTransactions(bank models.BankDetection, txns []models.ParsedTransaction) ([]string, error) {
	if len(txns) == 0 {
		return nil, &NoTransactionsFoundError{Bank: bank.Name}
	}

	var warnings []string
	if len(txns) > maxReasonableTransactions {
		w := fmt.Sprintf("found %d transactions; the statement may have been mis-segmented", len(txns))
		warnings = append(warnings, w)
		log.WithField("count", len(txns)).Warn(w)
	}

	invalid := 0
	for _, t := range txns {
		if !isoDatePattern.MatchString(t.Date) {
			invalid++
		}
	}
	// Strictly more than half: 500/1000 passes, 501/1000 fails.
	if invalid*2 > len(txns) {
		return nil, &TooManyInvalidDatesError{Invalid: invalid, Total: len(txns)}
	}

	return warnings, nil
}
