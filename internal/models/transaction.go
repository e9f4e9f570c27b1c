package models

// GlyphRun is one positioned fragment of text extracted from a document
// page. The external PDF renderer produces these per page; only the line
// reconstructor consumes them.
type GlyphRun struct {
	Text string  `json:"text"`
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
}

// ParsedTransaction is a single normalized statement transaction.
// Exactly one of Debit/Credit is non-zero; Date is always ISO 8601
// (YYYY-MM-DD) regardless of the source bank's native date format.
type ParsedTransaction struct {
	OriginalDate string  `json:"originalDate"`
	Date         string  `json:"date"`
	Debit        float64 `json:"debit"`
	Credit       float64 `json:"credit"`
	Description  string  `json:"description"`
}

// BankDetection identifies which dialect a statement was parsed with.
type BankDetection struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Summary holds the aggregate totals for a parse run.
type Summary struct {
	TotalIncome      float64 `json:"totalIncome"`
	TotalExpenses    float64 `json:"totalExpenses"`
	Net              float64 `json:"net"`
	TransactionCount int     `json:"transactionCount"`
}

// ParseResult is the terminal artifact returned to callers. It is never
// mutated after construction; Warnings are non-fatal notes attached by the
// validator.
type ParseResult struct {
	Bank         BankDetection       `json:"bank"`
	Transactions []ParsedTransaction `json:"transactions"`
	Summary      Summary             `json:"summary"`
	Warnings     []string            `json:"warnings,omitempty"`
}

// Transaction types used by the import hand-off.
const (
	TypeExpense = "expense"
	TypeIncome  = "income"
)

// ImportTransaction is the projection of a ParsedTransaction handed to the
// persistence layer. Category assignment happens downstream, so CategoryID
// is always nil here.
type ImportTransaction struct {
	Date        string  `json:"date" csv:"date"`
	Amount      float64 `json:"amount" csv:"amount"`
	Type        string  `json:"type" csv:"type"`
	Description string  `json:"description" csv:"description"`
	CategoryID  *int64  `json:"category_id" csv:"category_id"`
}

// ToImport projects parsed transactions into the import hand-off shape.
// Amount is whichever side of the transaction is non-zero.
func ToImport(txns []ParsedTransaction) []ImportTransaction {
	out := make([]ImportTransaction, 0, len(txns))
	for _, t := range txns {
		it := ImportTransaction{
			Date:        t.Date,
			Description: t.Description,
		}
		if t.Debit > 0 {
			it.Amount = t.Debit
			it.Type = TypeExpense
		} else {
			it.Amount = t.Credit
			it.Type = TypeIncome
		}
		out = append(out, it)
	}
	return out
}
