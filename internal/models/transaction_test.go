package models

import (
	"testing"
)

func TestToImport(t *testing.T) {
	txns := []ParsedTransaction{
		{Date: "2024-03-01", Credit: 1000, Description: "John Doe"},
		{Date: "2024-03-02", Debit: 250.50, Description: "Groceries"},
	}

	imports := ToImport(txns)
	if len(imports) != len(txns) {
		t.Fatalf("count: got %d, want %d", len(imports), len(txns))
	}

	income := imports[0]
	if income.Type != TypeIncome {
		t.Errorf("income.Type: got %q, want %q", income.Type, TypeIncome)
	}
	if income.Amount != 1000 {
		t.Errorf("income.Amount: got %f, want 1000", income.Amount)
	}
	if income.Date != "2024-03-01" || income.Description != "John Doe" {
		t.Errorf("income fields not carried over: %+v", income)
	}
	if income.CategoryID != nil {
		t.Errorf("CategoryID must be nil, got %v", *income.CategoryID)
	}

	expense := imports[1]
	if expense.Type != TypeExpense {
		t.Errorf("expense.Type: got %q, want %q", expense.Type, TypeExpense)
	}
	if expense.Amount != 250.50 {
		t.Errorf("expense.Amount: got %f, want 250.50", expense.Amount)
	}
}

func TestToImport_Empty(t *testing.T) {
	imports := ToImport(nil)
	if imports == nil || len(imports) != 0 {
		t.Fatalf("nil input must yield empty non-nil slice, got %#v", imports)
	}
}
