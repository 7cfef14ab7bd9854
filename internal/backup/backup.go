// Package backup serializes a user's transactions and budgets to a JSON
// snapshot and restores them losslessly.
package backup

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"finance-tracker/internal/models"
	"finance-tracker/internal/storage"
)

// Snapshot is the portable backup document.
type Snapshot struct {
	UserID       int64                `json:"user_id"`
	CreatedAt    time.Time            `json:"created_at"`
	Transactions []models.Transaction `json:"transactions"`
	Budgets      []models.Budget      `json:"budgets"`
}

// Export writes a snapshot of all the user's transactions and budgets to w.
func Export(db *storage.DB, userID int64, w io.Writer) error {
	transactions, err := db.ListTransactions(userID, storage.TransactionFilter{})
	if err != nil {
		return fmt.Errorf("list transactions: %w", err)
	}

	budgets, err := db.ListAllBudgets(userID)
	if err != nil {
		return fmt.Errorf("list budgets: %w", err)
	}

	snap := Snapshot{
		UserID:       userID,
		CreatedAt:    time.Now().UTC(),
		Transactions: transactions,
		Budgets:      budgets,
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(snap)
}

// Import reads a snapshot from r and replaces the user's transactions and
// budgets with its contents. A snapshot that fails to decode, belongs to a
// different user, or contains invalid records is rejected without touching
// existing data.
func Import(db *storage.DB, userID int64, r io.Reader) error {
	var snap Snapshot
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&snap); err != nil {
		return fmt.Errorf("%w: %v", models.ErrBadSnapshot, err)
	}

	if snap.UserID != userID {
		return fmt.Errorf("%w: snapshot belongs to another user", models.ErrUnauthorized)
	}

	for i, t := range snap.Transactions {
		if err := t.Validate(); err != nil {
			return fmt.Errorf("%w: transaction %d: %v", models.ErrBadSnapshot, i, err)
		}
	}
	for i, b := range snap.Budgets {
		if err := b.Validate(); err != nil {
			return fmt.Errorf("%w: budget %d: %v", models.ErrBadSnapshot, i, err)
		}
	}

	return db.ReplaceUserData(userID, snap.Transactions, snap.Budgets)
}
