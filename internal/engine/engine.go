// Package engine is the top-level statement ingestion pipeline: it turns
// raw page glyph runs or CSV text into a validated ParseResult, or fails
// with one of the terminal errors in errors.go. Each call is independent
// and deterministic; nothing is persisted here.
package engine

import (
	"strings"

	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"

	"github.com/UmerFruit/umers-expense-buddy-sub000/internal/extractor"
	"github.com/UmerFruit/umers-expense-buddy-sub000/internal/models"
	"github.com/UmerFruit/umers-expense-buddy-sub000/internal/parser"
)

// ParseGlyphs runs the full pipeline over per-page glyph runs: reconstruct
// logical lines, gate on text readability, detect the bank dialect, parse,
// validate, aggregate.
func ParseGlyphs(pages [][]models.GlyphRun) (*models.ParseResult, error) {
	text := extractor.ReconstructPages(pages)
	if strings.TrimSpace(text) != "" && !extractor.IsReadableText(text) {
		return nil, &UnreadableTextError{}
	}
	return ParseText(text)
}

// ParseText runs detection and parsing over already-reconstructed
// statement text.
func ParseText(text string) (*models.ParseResult, error) {
	if strings.TrimSpace(text) == "" {
		return nil, &EmptyDocumentError{}
	}

	dialect, ok := parser.Detect(text)
	if !ok {
		return nil, &UnsupportedFormatError{Supported: parser.DialectNames()}
	}

	bank := models.BankDetection{ID: dialect.ID(), Name: dialect.DisplayName()}
	txns := dialect.Parse(text)

	log.WithFields(log.Fields{
		"bank":         bank.ID,
		"transactions": len(txns),
	}).Info("parsed statement")

	return finalize(bank, txns)
}

// finalize validates the transaction set and assembles the immutable
// result. All parse paths (PDF, text, CSV) converge here.
func finalize(bank models.BankDetection, txns []models.ParsedTransaction) (*models.ParseResult, error) {
	warnings, err := validateTransactions(bank, txns)
	if err != nil {
		return nil, err
	}

	return &models.ParseResult{
		Bank:         bank,
		Transactions: txns,
		Summary:      summarize(txns),
		Warnings:     warnings,
	}, nil
}

// summarize computes the result totals. Sums are carried in decimals so a
// long statement does not accumulate binary float drift.
func summarize(txns []models.ParsedTransaction) models.Summary {
	income := decimal.Zero
	expenses := decimal.Zero
	for _, t := range txns {
		income = income.Add(decimal.NewFromFloat(t.Credit))
		expenses = expenses.Add(decimal.NewFromFloat(t.Debit))
	}

	totalIncome, _ := income.Float64()
	totalExpenses, _ := expenses.Float64()
	net, _ := income.Sub(expenses).Float64()

	return models.Summary{
		TotalIncome:      totalIncome,
		TotalExpenses:    totalExpenses,
		Net:              net,
		TransactionCount: len(txns),
	}
}
