package parser

import (
	"regexp"
	"strings"

	"github.com/UmerFruit/umers-expense-buddy-sub000/internal/models"
)

// NayaPayParser handles NayaPay wallet statement PDFs.
//
// NayaPay statements spread one transaction over a variable number of
// lines. A block is terminated by its amount line; a leading minus before
// the currency marker means an outflow:
//
//	01 Mar 2024 09:15 PM
//	Money sent to Ali Khan (ali.khan@nayapay)
//	Raast Out
//	5f3a9c01-77aa-4b0e-9f6c
//	-Rs. 500
//
// Where a fee line accompanies an outflow, the fee is folded into the
// debit amount.
type NayaPayParser struct{}

func (p *NayaPayParser) ID() string          { return "nayapay" }
func (p *NayaPayParser) DisplayName() string { return "NayaPay" }

var nayapayIndicators = []string{
	"NayaPay",
	"nayapay.com",
	"support@nayapay.com",
	"NayaPay ID",
	"NayaPay Account",
}

// NayaPay's indicators are distinctive enough that two hits suffice.
func (p *NayaPayParser) Detect(text string) bool {
	return countIndicators(text, nayapayIndicators) >= 2
}

// maxBlockLines caps block accumulation so a missed terminator cannot
// swallow the rest of a section.
const maxBlockLines = 40

var (
	// Amount-only line terminating a block: "-Rs. 500", "Rs. 1,250.75",
	// optionally paired with a trailing balance amount.
	nayaAmountLine = regexp.MustCompile(`^(-)?\s*Rs\.?\s*([\d,]+(?:\.\d+)?)(?:\s+-?\s*Rs\.?\s*[\d,]+(?:\.\d+)?)?\s*$`)
	// Fee line, e.g. "Fees and Government Taxes Rs. 10".
	nayaFeeLine = regexp.MustCompile(`(?i)^fees?\s+(?:and|&)\s+government\s+taxes\s+Rs\.?\s*([\d,]+(?:\.\d+)?)`)
	// Transaction-ID lines: long opaque hex/uuid-ish tokens.
	nayaTxnIDLine = regexp.MustCompile(`^[A-Za-z0-9-]{12,}$`)
	// Masked account or card fragments, e.g. "****1234", "4521-**-9910".
	nayaMaskedToken = regexp.MustCompile(`[\d-]*\*{2,}[\d-]*`)
)

// Footer markers that close a transaction section.
var nayapayFooters = []string{
	"support@nayapay.com",
	"this is a system generated statement",
	"for queries",
	"page ",
}

func isNayaPayHeader(line string) bool {
	lower := strings.ToLower(line)
	return strings.Contains(lower, "timestamp") &&
		strings.Contains(lower, "amount") &&
		(strings.Contains(lower, "description") || strings.Contains(lower, "details"))
}

func isNayaPayFooter(line string) bool {
	lower := strings.ToLower(line)
	for _, kw := range nayapayFooters {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

func (p *NayaPayParser) Parse(text string) []models.ParsedTransaction {
	var txns []models.ParsedTransaction
	for _, section := range p.splitSections(text) {
		txns = append(txns, p.parseSection(section)...)
	}
	return txns
}

// splitSections carves the statement into coarse transaction sections
// bounded by the column header row and footer boilerplate. Statements
// repeat the header on every page, so multiple sections are normal.
func (p *NayaPayParser) splitSections(text string) [][]string {
	var sections [][]string
	var current []string
	inSection := false

	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)
		switch {
		case isNayaPayHeader(line):
			if len(current) > 0 {
				sections = append(sections, current)
				current = nil
			}
			inSection = true
		case isNayaPayFooter(line):
			if len(current) > 0 {
				sections = append(sections, current)
				current = nil
			}
			inSection = false
		case inSection && line != "":
			current = append(current, line)
		}
	}
	if len(current) > 0 {
		sections = append(sections, current)
	}
	return sections
}

// parseSection groups a section's lines into blocks. Lines accumulate
// until one matches the amount-line pattern, which closes the block.
func (p *NayaPayParser) parseSection(lines []string) []models.ParsedTransaction {
	var txns []models.ParsedTransaction
	var block []string

	for _, line := range lines {
		block = append(block, line)
		if nayaAmountLine.MatchString(line) || len(block) >= maxBlockLines {
			if txn, ok := p.parseBlock(block); ok {
				txns = append(txns, txn)
			}
			block = nil
		}
	}
	// A trailing partial block has no amount line and yields nothing.
	return txns
}

// parseBlock extracts the date, fee and signed amount from a block via
// independent, order-insensitive scans, then assembles the description
// from whatever lines are not structural.
func (p *NayaPayParser) parseBlock(block []string) (models.ParsedTransaction, bool) {
	var (
		originalDate string
		isoDate      string
		amount       float64
		negative     bool
		haveAmount   bool
		fee          float64
	)
	var descLines []string

	for _, line := range block {
		if originalDate == "" {
			if m := datePatternText.FindStringSubmatch(line); m != nil {
				originalDate = m[0]
				isoDate = isoFromTextDate(m[1], m[2], m[3])
			}
		}
		if m := nayaFeeLine.FindStringSubmatch(line); m != nil && fee == 0 {
			fee, _ = parseAmount(m[1])
			continue
		}
		if m := nayaAmountLine.FindStringSubmatch(line); m != nil && !haveAmount {
			amount, _ = parseAmount(m[2])
			negative = m[1] == "-"
			haveAmount = true
			continue
		}
		if !isNayaStructuralLine(line) {
			descLines = append(descLines, line)
		}
	}

	// No date or a zero amount means the block is not a transaction.
	if originalDate == "" || isoDate == "" || amount == 0 {
		return models.ParsedTransaction{}, false
	}

	txn := models.ParsedTransaction{
		OriginalDate: originalDate,
		Date:         isoDate,
		Description:  NormalizeDescription(strings.Join(descLines, " ")),
	}

	if negative {
		// Fees ride on top of the outflow.
		txn.Debit = amount + fee
	} else {
		txn.Credit = amount
	}

	return txn, true
}

// Structural labels that carry no payee information.
var nayaStructuralLabels = []string{
	"transaction id", "reference number", "raast out", "raast in",
	"ibft out", "ibft in", "card transaction", "wallet", "type",
	"debit", "credit", "balance",
}

// isNayaStructuralLine reports whether a line is statement scaffolding
// (dates, timestamps, IDs, masked accounts, amounts, boilerplate labels)
// rather than description content.
func isNayaStructuralLine(line string) bool {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return true
	}
	if datePatternText.MatchString(trimmed) || timePattern.MatchString(trimmed) {
		return true
	}
	if nayaAmountLine.MatchString(trimmed) || nayaFeeLine.MatchString(trimmed) {
		return true
	}
	if nayaTxnIDLine.MatchString(trimmed) && strings.ContainsAny(trimmed, "0123456789") {
		return true
	}
	if nayaMaskedToken.MatchString(trimmed) && len(strings.Fields(trimmed)) <= 2 {
		return true
	}
	lower := strings.ToLower(trimmed)
	for _, label := range nayaStructuralLabels {
		if lower == label {
			return true
		}
	}
	return false
}
