package models

import "time"

// Transaction is a single categorized ledger entry as returned by the
// analytics API. Amount is negative for spending, positive for income.
type Transaction struct {
	ID          string    `json:"id"`
	Date        time.Time `json:"date"`
	Amount      float64   `json:"amount"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	Merchant    string    `json:"merchant,omitempty"`
}

// IsExpense reports whether the transaction is spending rather than income.
func (t Transaction) IsExpense() bool {
	return t.Amount < 0
}

// AbsAmount returns the magnitude of the transaction amount.
func (t Transaction) AbsAmount() float64 {
	if t.Amount < 0 {
		return -t.Amount
	}
	return t.Amount
}

// TransactionSet wraps a slice of transactions with chainable filters.
type TransactionSet struct {
	Transactions []Transaction
}

// NewTransactionSet creates a TransactionSet from a slice.
func NewTransactionSet(transactions []Transaction) *TransactionSet {
	return &TransactionSet{Transactions: transactions}
}

// FilterByDateRange returns transactions within [start, end] inclusive.
func (ts *TransactionSet) FilterByDateRange(start, end time.Time) *TransactionSet {
	var filtered []Transaction
	for _, t := range ts.Transactions {
		if !t.Date.Before(start) && !t.Date.After(end) {
			filtered = append(filtered, t)
		}
	}
	return &TransactionSet{Transactions: filtered}
}

// FilterByCategory returns transactions in the given category.
func (ts *TransactionSet) FilterByCategory(category string) *TransactionSet {
	var filtered []Transaction
	for _, t := range ts.Transactions {
		if t.Category == category {
			filtered = append(filtered, t)
		}
	}
	return &TransactionSet{Transactions: filtered}
}

// Expenses returns only spending transactions.
func (ts *TransactionSet) Expenses() *TransactionSet {
	var filtered []Transaction
	for _, t := range ts.Transactions {
		if t.IsExpense() {
			filtered = append(filtered, t)
		}
	}
	return &TransactionSet{Transactions: filtered}
}

// Income returns only income transactions.
func (ts *TransactionSet) Income() *TransactionSet {
	var filtered []Transaction
	for _, t := range ts.Transactions {
		if t.Amount > 0 {
			filtered = append(filtered, t)
		}
	}
	return &TransactionSet{Transactions: filtered}
}

// Sum returns the total of all transaction amounts.
func (ts *TransactionSet) Sum() float64 {
	var total float64
	for _, t := range ts.Transactions {
		total += t.Amount
	}
	return total
}

// Count returns the number of transactions in the set.
func (ts *TransactionSet) Count() int {
	return len(ts.Transactions)
}
