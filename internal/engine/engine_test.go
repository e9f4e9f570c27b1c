package engine

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/UmerFruit/umers-expense-buddy-sub000/internal/models"
)

const meezanStatement = `Meezan Bank
The Premier Islamic Bank
Statement of Account
Branch Code 0101

Date Description Debit Credit Balance
01-03-2024  Transfer fr John Doe  1,000.00  5,000.00
02-03-2024  Utility Bill Payment  1,200.00  3,800.00

Closing Balance 3,800.00`

func TestParseText_Meezan(t *testing.T) {
	result, err := ParseText(meezanStatement)
	require.NoError(t, err)

	assert.Equal(t, "meezan", result.Bank.ID)
	assert.Equal(t, "Meezan Bank", result.Bank.Name)
	require.Len(t, result.Transactions, 2)

	assert.Equal(t, "2024-03-01", result.Transactions[0].Date)
	assert.Equal(t, 1000.0, result.Transactions[0].Credit)
	assert.Equal(t, 1200.0, result.Transactions[1].Debit)

	assert.Equal(t, 1000.0, result.Summary.TotalIncome)
	assert.Equal(t, 1200.0, result.Summary.TotalExpenses)
	assert.Equal(t, -200.0, result.Summary.Net)
	assert.Equal(t, 2, result.Summary.TransactionCount)
	assert.Empty(t, result.Warnings)
}

// glyphPages lays text out as one glyph run per line, top to bottom, so
// reconstruction yields the text back.
func glyphPages(text string) [][]models.GlyphRun {
	var runs []models.GlyphRun
	y := 1000.0
	for _, line := range strings.Split(text, "\n") {
		runs = append(runs, models.GlyphRun{Text: line, X: 0, Y: y})
		y -= 20
	}
	return [][]models.GlyphRun{runs}
}

func TestParseGlyphs_Meezan(t *testing.T) {
	result, err := ParseGlyphs(glyphPages(meezanStatement))
	require.NoError(t, err)
	assert.Equal(t, "meezan", result.Bank.ID)
	require.Len(t, result.Transactions, 2)
}

func TestParseGlyphs_UnreadableExtraction(t *testing.T) {
	// What identity-encoded fonts decode to: long, non-ASCII, no
	// statement vocabulary.
	garbage := strings.Repeat("þéòû¼ß ", 40)

	_, err := ParseGlyphs(glyphPages(garbage))
	var unreadable *UnreadableTextError
	require.ErrorAs(t, err, &unreadable)
}

func TestParseGlyphs_EmptyPages(t *testing.T) {
	_, err := ParseGlyphs(nil)
	var emptyErr *EmptyDocumentError
	require.ErrorAs(t, err, &emptyErr)
}

func TestParseText_Deterministic(t *testing.T) {
	first, err := ParseText(meezanStatement)
	require.NoError(t, err)
	second, err := ParseText(meezanStatement)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestParseText_EmptyDocument(t *testing.T) {
	_, err := ParseText("   \n\t  ")
	var emptyErr *EmptyDocumentError
	require.ErrorAs(t, err, &emptyErr)
}

func TestParseText_UnsupportedFormat(t *testing.T) {
	_, err := ParseText("Allied Bank Limited\nAccount Statement for March")
	var unsupported *UnsupportedFormatError
	require.ErrorAs(t, err, &unsupported)
	assert.Contains(t, unsupported.Supported, "Meezan Bank")
	assert.Contains(t, unsupported.Supported, "NayaPay")
}

func TestParseText_NoTransactionsFound(t *testing.T) {
	// Detectable as Meezan but carrying no transaction lines.
	_, err := ParseText("Meezan Bank\nThe Premier Islamic Bank\nStatement of Account\nNo activity this period")
	var notFound *NoTransactionsFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "Meezan Bank", notFound.Bank)
}

func TestValidateTransactions_InvalidDateThreshold(t *testing.T) {
	bank := models.BankDetection{ID: "meezan", Name: "Meezan Bank"}

	build := func(total, invalid int) []models.ParsedTransaction {
		txns := make([]models.ParsedTransaction, total)
		for i := range txns {
			txns[i] = models.ParsedTransaction{Date: "2024-03-01", Debit: 10}
		}
		for i := 0; i < invalid; i++ {
			txns[i].Date = "01-03-2024"
		}
		return txns
	}

	// Exactly half invalid is tolerated.
	_, err := validateTransactions(bank, build(1000, 500))
	assert.NoError(t, err)

	// One past half is fatal.
	_, err = validateTransactions(bank, build(1000, 501))
	var tooMany *TooManyInvalidDatesError
	require.ErrorAs(t, err, &tooMany)
	assert.Equal(t, 501, tooMany.Invalid)
	assert.Equal(t, 1000, tooMany.Total)
}

func TestValidateTransactions_OversizeIsWarningOnly(t *testing.T) {
	bank := models.BankDetection{ID: "meezan", Name: "Meezan Bank"}
	txns := make([]models.ParsedTransaction, 1001)
	for i := range txns {
		txns[i] = models.ParsedTransaction{Date: "2024-03-01", Credit: 1}
	}

	warnings, err := validateTransactions(bank, txns)
	require.NoError(t, err)
	require.Len(t, warnings, 1)
	assert.Contains(t, warnings[0], "1001")
}

func TestSummarize_NoFloatDrift(t *testing.T) {
	var txns []models.ParsedTransaction
	for i := 0; i < 10; i++ {
		txns = append(txns, models.ParsedTransaction{Date: "2024-03-01", Credit: 0.1, Debit: 0.2})
	}

	s := summarize(txns)
	assert.Equal(t, 1.0, s.TotalIncome)
	assert.Equal(t, 2.0, s.TotalExpenses)
	assert.Equal(t, -1.0, s.Net)
	assert.Equal(t, 10, s.TransactionCount)
}

func TestErrorMessages(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{&EmptyDocumentError{}, "no extractable text"},
		{&UnreadableTextError{}, "not readable"},
		{&UnsupportedFormatError{Supported: []string{"Meezan Bank", "NayaPay"}}, "Meezan Bank, NayaPay"},
		{&NoTransactionsFoundError{Bank: "NayaPay"}, "NayaPay statement"},
		{&TooManyInvalidDatesError{Invalid: 7, Total: 10}, "7 of 10"},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%T", tt.err), func(t *testing.T) {
			assert.Contains(t, tt.err.Error(), tt.want)
		})
	}
}

func TestErrorsAreDistinct(t *testing.T) {
	var empty *EmptyDocumentError
	assert.False(t, errors.As(&UnsupportedFormatError{}, &empty))
}
