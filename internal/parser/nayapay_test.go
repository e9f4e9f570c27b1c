package parser

import (
	"testing"
)

const nayapaySample = `NayaPay Statement of Account
NayaPay ID: ali123

Timestamp Description Amount Balance
01 Mar 2024 09:15 PM
Money sent to Ali Khan (ali.khan@nayapay)
Raast Out
5f3a9c0177aa4b0e9f6c
-Rs. 500  Rs. 4,500
02 Mar 2024 10:00 AM
Money received from Sara Ahmed
Raast In
Rs. 1,500
This is a system generated statement`

func TestNayaPayParser_Parse(t *testing.T) {
	p := &NayaPayParser{}

	txns := p.Parse(nayapaySample)
	if len(txns) != 2 {
		t.Fatalf("transactions: got %d, want 2", len(txns))
	}

	sent := txns[0]
	if sent.Date != "2024-03-01" {
		t.Errorf("sent.Date: got %q, want %q", sent.Date, "2024-03-01")
	}
	if sent.OriginalDate != "01 Mar 2024" {
		t.Errorf("sent.OriginalDate: got %q", sent.OriginalDate)
	}
	if sent.Debit != 500 || sent.Credit != 0 {
		t.Errorf("sent amounts: debit %f credit %f, want 500/0", sent.Debit, sent.Credit)
	}
	if sent.Description != "Sent to Ali Khan" {
		t.Errorf("sent.Description: got %q, want %q", sent.Description, "Sent to Ali Khan")
	}

	recv := txns[1]
	if recv.Date != "2024-03-02" {
		t.Errorf("recv.Date: got %q, want %q", recv.Date, "2024-03-02")
	}
	if recv.Credit != 1500 || recv.Debit != 0 {
		t.Errorf("recv amounts: debit %f credit %f, want 0/1500", recv.Debit, recv.Credit)
	}
	if recv.Description != "Received from Sara Ahmed" {
		t.Errorf("recv.Description: got %q, want %q", recv.Description, "Received from Sara Ahmed")
	}
}

func TestNayaPayParser_FeeFoldedIntoDebit(t *testing.T) {
	p := &NayaPayParser{}

	text := `Timestamp Description Amount
03 Mar 2024 01:05 PM
Outgoing fund transfer to Meezan Bank account
IBFT Out
Fees and Government Taxes Rs. 10
-Rs. 500
For queries contact support`

	txns := p.Parse(text)
	if len(txns) != 1 {
		t.Fatalf("transactions: got %d, want 1", len(txns))
	}
	if txns[0].Debit != 510 {
		t.Errorf("Debit: got %f, want 510 (fee folded in)", txns[0].Debit)
	}
	if txns[0].Description != "Transfer to Meezan Bank account" {
		t.Errorf("Description: got %q", txns[0].Description)
	}
}

func TestNayaPayParser_DropsIncompleteBlocks(t *testing.T) {
	p := &NayaPayParser{}

	text := `Timestamp Description Amount
Promotional message with no date
Rs. 250
04 Mar 2024 11:00 AM
Top up attempt
Rs. 0
05 Mar 2024 12:00 PM
Trailing block with no amount line ever`

	txns := p.Parse(text)
	if len(txns) != 0 {
		t.Fatalf("transactions: got %d, want 0 (no date, zero amount, no terminator)", len(txns))
	}
}

func TestNayaPayParser_RepeatedHeaderSplitsSections(t *testing.T) {
	p := &NayaPayParser{}

	text := `Timestamp Description Amount
06 Mar 2024 09:00 AM
Money received from Bilal
Rs. 100
Timestamp Description Amount
07 Mar 2024 09:00 AM
Money received from Hamza
Rs. 200`

	txns := p.Parse(text)
	if len(txns) != 2 {
		t.Fatalf("transactions: got %d, want 2", len(txns))
	}
	if txns[0].Credit != 100 || txns[1].Credit != 200 {
		t.Errorf("credits: got %f and %f", txns[0].Credit, txns[1].Credit)
	}
}

func TestIsNayaStructuralLine(t *testing.T) {
	tests := []struct {
		line string
		want bool
	}{
		{"01 Mar 2024 09:15 PM", true},
		{"Raast Out", true},
		{"IBFT In", true},
		{"5f3a9c0177aa4b0e9f6c", true},
		{"****1234", true},
		{"-Rs. 500", true},
		{"Fees and Government Taxes Rs. 10", true},
		{"", true},
		{"Money sent to Ali Khan", false},
		{"Paid to CHEEZIOUS", false},
	}

	for _, tt := range tests {
		if got := isNayaStructuralLine(tt.line); got != tt.want {
			t.Errorf("isNayaStructuralLine(%q) = %v, want %v", tt.line, got, tt.want)
		}
	}
}
