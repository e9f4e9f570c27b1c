package parser

import (
	"regexp"
	"strings"

	"github.com/UmerFruit/umers-expense-buddy-sub000/internal/models"
)

// MeezanParser handles Meezan Bank account statement PDFs.
//
// Meezan statements use a fixed-column layout where each transaction starts
// with a dated line and may spill onto following lines:
//
//	Date        Description                 Debit      Credit     Balance
//	01-03-2024  Transfer fr John Doe                   1,000.00   5,000.00
//	            IBFT Ref 00123456789
//
// Date format: DD-MM-YYYY at the start of the line.
type MeezanParser struct{}

func (p *MeezanParser) ID() string          { return "meezan" }
func (p *MeezanParser) DisplayName() string { return "Meezan Bank" }

var meezanIndicators = []string{
	"Meezan Bank",
	"meezanbank.com",
	"The Premier Islamic Bank",
	"Statement of Account",
	"111-331-331",
	"Branch Code",
}

// Meezan's indicator list contains generic banking vocabulary, so the
// detection threshold is higher than NayaPay's.
func (p *MeezanParser) Detect(text string) bool {
	return countIndicators(text, meezanIndicators) >= 3
}

// meezanDateLine anchors the start of a new transaction block.
var meezanDateLine = regexp.MustCompile(`^(\d{2}-\d{2}-\d{4})\b`)

// Section-end markers after which lines are no longer transaction content.
var meezanSectionEnd = []string{
	"closing balance",
	"end of statement",
	"total withdrawals",
	"total deposits",
	"carried forward",
}

// Incoming-funds keywords. A block containing any of these (case
// insensitive) is classified as a credit, otherwise as a debit.
var meezanCreditKeywords = []string{"from", "received", "transfer fr"}

func (p *MeezanParser) Parse(text string) []models.ParsedTransaction {
	var txns []models.ParsedTransaction
	var block []string
	inSection := false

	flush := func() {
		if len(block) == 0 {
			return
		}
		if txn, ok := p.parseBlock(block); ok {
			txns = append(txns, txn)
		}
		block = block[:0]
	}

	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)

		switch {
		case line == "":
			// Blank line ends the current block without starting a new one.
			flush()

		case isMeezanHeader(line):
			// Column header repeats on every page; never block content.
			inSection = true

		case isMeezanSectionEnd(line):
			flush()
			inSection = false

		case meezanDateLine.MatchString(line):
			flush()
			inSection = true
			block = append(block, line)

		case inSection && len(block) > 0:
			block = append(block, line)
		}
	}
	flush()

	return txns
}

// parseBlock turns one accumulated transaction block into a transaction.
// The last two decimal fields on the dated line are (amount, balance);
// the balance is discarded. Returns false for blocks that yield nothing.
func (p *MeezanParser) parseBlock(block []string) (models.ParsedTransaction, bool) {
	first := block[0]
	m := meezanDateLine.FindStringSubmatch(first)
	if m == nil {
		return models.ParsedTransaction{}, false
	}
	originalDate := m[1]

	var amount float64
	fields := decimalFieldPattern.FindAllString(first, -1)
	if len(fields) >= 2 {
		amount, _ = parseAmount(fields[len(fields)-2])
	} else if len(fields) == 1 {
		amount, _ = parseAmount(fields[0])
	}

	// Annotation rows carry a date but no amount; they are not transactions.
	if amount == 0 {
		return models.ParsedTransaction{}, false
	}

	joined := strings.Join(block, " ")
	desc := cleanMeezanDescription(block)

	txn := models.ParsedTransaction{
		OriginalDate: originalDate,
		Date:         isoFromDMY(originalDate),
		Description:  desc,
	}

	lower := strings.ToLower(joined)
	credit := false
	for _, kw := range meezanCreditKeywords {
		if strings.Contains(lower, kw) {
			credit = true
			break
		}
	}
	if credit {
		txn.Credit = amount
	} else {
		txn.Debit = amount
	}

	return txn, true
}

func isMeezanHeader(line string) bool {
	lower := strings.ToLower(line)
	return strings.Contains(lower, "date") &&
		strings.Contains(lower, "description") &&
		strings.Contains(lower, "debit") &&
		strings.Contains(lower, "credit") &&
		strings.Contains(lower, "balance")
}

func isMeezanSectionEnd(line string) bool {
	lower := strings.ToLower(line)
	for _, kw := range meezanSectionEnd {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// --- Description cleanup ---

var (
	// 1 to 4 decimal amount groups hanging off the end of the text
	// (amount, balance, and occasionally accrued totals).
	meezanTrailingAmounts = regexp.MustCompile(`(?:\s+(?:\d{1,3}(?:,\d{3})*\.\d{1,2}|\d+\.\d{1,2})){1,4}\s*$`)
	// Currency-prefixed amounts anywhere in the text.
	meezanCurrencyAmount = regexp.MustCompile(`(?i)(?:Rs\.?|PKR|₨)\s*[\d,]+(?:\.\d+)?`)
	// IBAN-like and card-like tokens, and long raw digit runs
	// (reference numbers, account numbers).
	meezanIBANLike  = regexp.MustCompile(`\b[A-Z]{2}\d{2}[A-Z0-9]{10,30}\b`)
	meezanCardLike  = regexp.MustCompile(`\b\d{4,6}\*+\d{2,4}\b`)
	meezanDigitRuns = regexp.MustCompile(`\b\d{7,}\b`)
)

// meezanBoilerplate words stripped token-wise from descriptions. These are
// transfer-channel labels, not payee information.
var meezanBoilerplate = map[string]bool{
	"transfer": true, "fr": true, "frm": true, "to": true,
	"ft": true, "ibft": true, "raast": true, "fund": true,
	"funds": true, "online": true, "txn": true, "ref": true,
	"narration": true, "channel": true,
}

// cleanMeezanDescription strips the structural debris a Meezan block
// carries around its payee text: repeated dates, amount columns, reference
// numbers, and channel boilerplate. Trailing amount groups are stripped
// per source line, since each line carries its own column remnants.
func cleanMeezanDescription(block []string) string {
	lines := make([]string, len(block))
	for i, line := range block {
		lines[i] = meezanTrailingAmounts.ReplaceAllString(line, " ")
	}
	s := strings.Join(lines, " ")

	s = datePatternDash.ReplaceAllString(s, " ")
	s = meezanCurrencyAmount.ReplaceAllString(s, " ")
	s = meezanIBANLike.ReplaceAllString(s, " ")
	s = meezanCardLike.ReplaceAllString(s, " ")
	s = meezanDigitRuns.ReplaceAllString(s, " ")

	var kept []string
	for _, tok := range strings.Fields(s) {
		if meezanBoilerplate[strings.ToLower(tok)] {
			continue
		}
		if len(tok) >= 10 {
			continue
		}
		kept = append(kept, tok)
	}

	return collapseWhitespace(strings.Join(kept, " "))
}
