package engine

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/UmerFruit/umers-expense-buddy-sub000/internal/models"
)

// csvBank is the fixed identity attached to results from the tabular
// fallback path, which bypasses the reconstructor and detector.
var csvBank = models.BankDetection{ID: "csv", Name: "CSV Import"}

var csvDatePattern = regexp.MustCompile(`^\d{2}-\d{2}-\d{4}$`)

// ParseCSV parses a comma-delimited export with a header row and
// date,debit,credit,description... columns. The description may itself
// contain commas and is optionally wrapped in quotes. Rows that cannot be
// read are skipped, never fatal; the usual validation applies to whatever
// survives.
func ParseCSV(text string) (*models.ParseResult, error) {
	if strings.TrimSpace(text) == "" {
		return nil, &EmptyDocumentError{}
	}

	lines := strings.Split(text, "\n")
	var txns []models.ParsedTransaction

	for i, raw := range lines {
		if i == 0 {
			continue // header row
		}
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}

		fields := strings.Split(line, ",")
		if len(fields) < 3 {
			continue
		}

		debit := parseCSVNumber(fields[1])
		credit := parseCSVNumber(fields[2])
		// A transaction is an outflow or an inflow; a row with both
		// sides set is as unreadable as a row with neither.
		if debit == 0 && credit == 0 {
			continue
		}
		if debit != 0 && credit != 0 {
			continue
		}

		desc := strings.TrimSpace(strings.Join(fields[3:], ","))
		desc = strings.Trim(desc, `"`)

		orig := strings.TrimSpace(fields[0])
		date := orig
		if csvDatePattern.MatchString(orig) {
			parts := strings.Split(orig, "-")
			date = parts[2] + "-" + parts[1] + "-" + parts[0]
		}

		txns = append(txns, models.ParsedTransaction{
			OriginalDate: orig,
			Date:         date,
			Debit:        debit,
			Credit:       credit,
			Description:  desc,
		})
	}

	return finalize(csvBank, txns)
}

// parseCSVNumber reads a numeric cell, defaulting to 0 on anything
// unparseable.
func parseCSVNumber(s string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || v < 0 {
		return 0
	}
	return v
}
