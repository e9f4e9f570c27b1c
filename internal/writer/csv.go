// Package writer serialises the import hand-off shape. The downstream
// persistence layer consumes ImportTransaction rows; this package gives
// that contract a file form.
package writer

import (
	"fmt"
	"io"
	"os"

	"github.com/gocarina/gocsv"

	"github.com/UmerFruit/umers-expense-buddy-sub000/internal/models"
)

// ImportWriter writes import transactions as CSV with a header row.
type ImportWriter struct{}

// Write serialises the transactions to the given writer. A nil or empty
// slice still produces the header row.
func (w *ImportWriter) Write(out io.Writer, txns []models.ImportTransaction) error {
	if txns == nil {
		txns = []models.ImportTransaction{}
	}
	if err := gocsv.Marshal(&txns, out); err != nil {
		return fmt.Errorf("failed to write import CSV: %w", err)
	}
	return nil
}

// WriteToFile writes the transactions to a CSV file at the given path.
func (w *ImportWriter) WriteToFile(path string, txns []models.ImportTransaction) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file %q: %w", path, err)
	}
	defer f.Close()

	return w.Write(f, txns)
}
