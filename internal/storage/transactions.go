package storage

import (
	"database/sql"
	"errors"
	"strings"
	"time"

	"finance-tracker/internal/models"
)

// TransactionFilter narrows ListTransactions results. Zero values mean the
// dimension is not filtered. DateFrom is inclusive, DateTo exclusive.
type TransactionFilter struct {
	DateFrom time.Time
	DateTo   time.Time
	Category string
	Type     models.TransactionType
}

// TransactionUpdate holds the fields of a partial transaction update.
// Nil fields keep their current value.
type TransactionUpdate struct {
	Amount      *float64
	Category    *string
	Description *string
	Date        *time.Time
}

// AddTransaction inserts a new transaction and returns its id.
func (db *DB) AddTransaction(t models.Transaction) (int64, error) {
	if err := t.Validate(); err != nil {
		return 0, err
	}

	result, err := db.conn.Exec(
		"INSERT INTO transactions (user_id, type, amount, category, description, date) VALUES (?, ?, ?, ?, ?, ?)",
		t.UserID, string(t.Type), t.Amount, t.Category, t.Description, t.Date,
	)
	if err != nil {
		return 0, err
	}
	return result.LastInsertId()
}

// GetTransaction retrieves a transaction by id. It returns ErrNotFound when
// no such transaction exists and ErrUnauthorized when it belongs to another
// user.
func (db *DB) GetTransaction(userID, id int64) (*models.Transaction, error) {
	row := db.conn.QueryRow(
		"SELECT id, user_id, type, amount, category, description, date FROM transactions WHERE id = ?",
		id,
	)

	var t models.Transaction
	var typ string
	if err := row.Scan(&t.ID, &t.UserID, &typ, &t.Amount, &t.Category, &t.Description, &t.Date); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, models.ErrNotFound
		}
		return nil, err
	}
	t.Type = models.TransactionType(typ)

	if t.UserID != userID {
		return nil, models.ErrUnauthorized
	}
	return &t, nil
}

// UpdateTransaction applies a partial update to one of the user's
// transactions.
func (db *DB) UpdateTransaction(userID, id int64, upd TransactionUpdate) error {
	var sets []string
	var params []any

	if upd.Amount != nil {
		if *upd.Amount <= 0 {
			return models.ErrInvalidAmount
		}
		sets = append(sets, "amount = ?")
		params = append(params, *upd.Amount)
	}
	if upd.Category != nil {
		if strings.TrimSpace(*upd.Category) == "" {
			return models.ErrEmptyCategory
		}
		sets = append(sets, "category = ?")
		params = append(params, *upd.Category)
	}
	if upd.Description != nil {
		sets = append(sets, "description = ?")
		params = append(params, *upd.Description)
	}
	if upd.Date != nil {
		if upd.Date.IsZero() {
			return models.ErrInvalidDate
		}
		sets = append(sets, "date = ?")
		params = append(params, *upd.Date)
	}

	if len(sets) == 0 {
		return models.ErrNoFields
	}

	// Ownership check distinguishes NotFound from cross-user access.
	if _, err := db.GetTransaction(userID, id); err != nil {
		return err
	}

	params = append(params, id, userID)
	_, err := db.conn.Exec(
		"UPDATE transactions SET "+strings.Join(sets, ", ")+" WHERE id = ? AND user_id = ?",
		params...,
	)
	return err
}

// DeleteTransaction removes one of the user's transactions.
func (db *DB) DeleteTransaction(userID, id int64) error {
	if _, err := db.GetTransaction(userID, id); err != nil {
		return err
	}
	_, err := db.conn.Exec("DELETE FROM transactions WHERE id = ? AND user_id = ?", id, userID)
	return err
}

// ListTransactions retrieves the user's transactions matching the filter,
// ordered by date ascending with ties broken by insertion order.
func (db *DB) ListTransactions(userID int64, f TransactionFilter) ([]models.Transaction, error) {
	query := "SELECT id, user_id, type, amount, category, description, date FROM transactions WHERE user_id = ?"
	params := []any{userID}

	if !f.DateFrom.IsZero() {
		query += " AND date >= ?"
		params = append(params, f.DateFrom)
	}
	if !f.DateTo.IsZero() {
		query += " AND date < ?"
		params = append(params, f.DateTo)
	}
	if f.Category != "" {
		query += " AND category = ?"
		params = append(params, f.Category)
	}
	if f.Type != "" {
		query += " AND type = ?"
		params = append(params, string(f.Type))
	}

	query += " ORDER BY date ASC, id ASC"

	rows, err := db.conn.Query(query, params...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var transactions []models.Transaction
	for rows.Next() {
		var t models.Transaction
		var typ string
		if err := rows.Scan(&t.ID, &t.UserID, &typ, &t.Amount, &t.Category, &t.Description, &t.Date); err != nil {
			return nil, err
		}
		t.Type = models.TransactionType(typ)
		transactions = append(transactions, t)
	}

	return transactions, rows.Err()
}

// SumExpenses returns the total expense amount for the user in a category
// over [from, to). An empty category sums all categories.
func (db *DB) SumExpenses(userID int64, category string, from, to time.Time) (float64, error) {
	query := "SELECT COALESCE(SUM(amount), 0) FROM transactions WHERE user_id = ? AND type = 'expense' AND date >= ? AND date < ?"
	params := []any{userID, from, to}

	if category != "" {
		query += " AND category = ?"
		params = append(params, category)
	}

	var total float64
	err := db.conn.QueryRow(query, params...).Scan(&total)
	return total, err
}
