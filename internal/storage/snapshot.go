package storage

import (
	"fmt"

	"finance-tracker/internal/models"
)

// ReplaceUserData atomically replaces all of the user's transactions and
// budgets with the given records. Either the full set is applied or nothing
// changes. Record ids are preserved so a restored snapshot is identical to
// the exported one.
func (db *DB) ReplaceUserData(userID int64, transactions []models.Transaction, budgets []models.Budget) error {
	for _, t := range transactions {
		if err := t.Validate(); err != nil {
			return fmt.Errorf("transaction %d: %w", t.ID, err)
		}
	}
	for _, b := range budgets {
		if err := b.Validate(); err != nil {
			return fmt.Errorf("budget %s %d/%d: %w", b.Category, b.Month, b.Year, err)
		}
	}

	tx, err := db.conn.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM transactions WHERE user_id = ?", userID); err != nil {
		return err
	}
	if _, err := tx.Exec("DELETE FROM budgets WHERE user_id = ?", userID); err != nil {
		return err
	}

	for _, t := range transactions {
		if _, err := tx.Exec(
			"INSERT INTO transactions (id, user_id, type, amount, category, description, date) VALUES (?, ?, ?, ?, ?, ?, ?)",
			t.ID, userID, string(t.Type), t.Amount, t.Category, t.Description, t.Date,
		); err != nil {
			return fmt.Errorf("restore transaction %d: %w", t.ID, err)
		}
	}

	for _, b := range budgets {
		if _, err := tx.Exec(
			"INSERT INTO budgets (user_id, category, threshold, month, year) VALUES (?, ?, ?, ?, ?)",
			userID, b.Category, b.Threshold, b.Month, b.Year,
		); err != nil {
			return fmt.Errorf("restore budget %s %d/%d: %w", b.Category, b.Month, b.Year, err)
		}
	}

	return tx.Commit()
}
