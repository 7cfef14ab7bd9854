package models

import (
	"strings"
	"time"
)

// TransactionType distinguishes money coming in from money going out.
type TransactionType string

const (
	TypeIncome  TransactionType = "income"
	TypeExpense TransactionType = "expense"
)

// Valid reports whether t is one of the known transaction types.
func (t TransactionType) Valid() bool {
	return t == TypeIncome || t == TypeExpense
}

// Transaction represents a single income or expense record in the ledger.
type Transaction struct {
	ID          int64           `json:"id"`
	UserID      int64           `json:"user_id"`
	Type        TransactionType `json:"type"`
	Amount      float64         `json:"amount"`
	Category    string          `json:"category"`
	Description string          `json:"description"`
	Date        time.Time       `json:"date"`
}

// Validate checks the ledger invariants for a transaction.
func (t Transaction) Validate() error {
	if !t.Type.Valid() {
		return ErrInvalidType
	}
	if t.Amount <= 0 {
		return ErrInvalidAmount
	}
	if strings.TrimSpace(t.Category) == "" {
		return ErrEmptyCategory
	}
	if t.Date.IsZero() {
		return ErrInvalidDate
	}
	return nil
}

// User represents a user account.
type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// Budget is a per-category spending threshold for one calendar month.
// At most one budget exists per (user, category, month, year).
type Budget struct {
	ID        int64   `json:"id"`
	UserID    int64   `json:"user_id"`
	Category  string  `json:"category"`
	Threshold float64 `json:"threshold"`
	Month     int     `json:"month"`
	Year      int     `json:"year"`
}

// Validate checks the budget invariants.
func (b Budget) Validate() error {
	if strings.TrimSpace(b.Category) == "" {
		return ErrEmptyCategory
	}
	if b.Threshold < 0 {
		return ErrInvalidThreshold
	}
	if b.Month < 1 || b.Month > 12 {
		return ErrInvalidDate
	}
	return nil
}

// CategoryTotal is one row of a report's expense breakdown.
type CategoryTotal struct {
	Category string  `json:"category"`
	Total    float64 `json:"total"`
}

// Report is a derived view over one user's transactions in a period.
// It is never persisted.
type Report struct {
	Period        string          `json:"period"`
	StartDate     time.Time       `json:"start_date"`
	EndDate       time.Time       `json:"end_date"`
	TotalIncome   float64         `json:"total_income"`
	TotalExpenses float64         `json:"total_expenses"`
	Savings       float64         `json:"savings"`
	Breakdown     []CategoryTotal `json:"category_expenses"`
}
