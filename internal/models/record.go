package models

import (
	"strings"
	"time"
)

// Record represents a single logged expense or debt.
type Record struct {
	// ID is the user-visible record id. Ids are allocated per user,
	// sequentially, and are never reused after delete.
	ID     int64 `db:"id"`
	UserID int64 `db:"user_id"`

	Kind RecordKind `db:"kind"`

	Amount       string `db:"amount"`
	CurrencyUnit string `db:"currency_unit"`
	Counterparty string `db:"counterparty"`
	Description  string `db:"description"`
	// Raw keeps the original message the record was parsed from.
	// Guided entries store the "guided" marker instead.
	Raw string `db:"raw"`

	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

// RecordKind represents the type of a record.
type RecordKind string

const (
	// ExpenseRecordKind represents a plain expense.
	ExpenseRecordKind RecordKind = "expense"
	// PayableRecordKind represents a debt the user owes to someone.
	PayableRecordKind RecordKind = "payable"
	// ReceivableRecordKind represents a debt someone owes to the user.
	ReceivableRecordKind RecordKind = "receivable"
)

// IsDebt reports whether the kind requires a counterparty.
func (k RecordKind) IsDebt() bool {
	return k == PayableRecordKind || k == ReceivableRecordKind
}

// GetName returns a human readable label for the kind.
func (k RecordKind) GetName() string {
	switch k {
	case ExpenseRecordKind:
		return "Expense"
	case PayableRecordKind:
		return "Payable (you owe)"
	case ReceivableRecordKind:
		return "Receivable (owed to you)"
	default:
		return string(k)
	}
}

// ParseRecordKind matches the input text against the known kind labels.
// Returns an empty kind when there is no match.
func ParseRecordKind(value string) RecordKind {
	switch {
	case equalsFold(value, string(ExpenseRecordKind), "Expense"):
		return ExpenseRecordKind
	case equalsFold(value, string(PayableRecordKind), "Payable"):
		return PayableRecordKind
	case equalsFold(value, string(ReceivableRecordKind), "Receivable"):
		return ReceivableRecordKind
	default:
		return ""
	}
}

func equalsFold(value string, candidates ...string) bool {
	for _, candidate := range candidates {
		if strings.EqualFold(strings.TrimSpace(value), candidate) {
			return true
		}
	}
	return false
}

// ParsedRecord represents a best-effort record extracted from free-form text.
type ParsedRecord struct {
	Amount       string
	Kind         RecordKind
	Counterparty string
	CurrencyUnit string
	Description  string
	Raw          string
}
