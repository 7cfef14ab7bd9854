package storage

import (
	"database/sql"
	"errors"

	"finance-tracker/internal/models"
)

// SetBudget creates or replaces the budget for (user, category, month, year).
func (db *DB) SetBudget(b models.Budget) error {
	if err := b.Validate(); err != nil {
		return err
	}

	_, err := db.conn.Exec(`
		INSERT INTO budgets (user_id, category, threshold, month, year)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (user_id, category, month, year)
		DO UPDATE SET threshold = excluded.threshold
	`, b.UserID, b.Category, b.Threshold, b.Month, b.Year)
	return err
}

// GetBudget retrieves the budget for (user, category, month, year).
func (db *DB) GetBudget(userID int64, category string, month, year int) (*models.Budget, error) {
	row := db.conn.QueryRow(
		"SELECT id, user_id, category, threshold, month, year FROM budgets WHERE user_id = ? AND category = ? AND month = ? AND year = ?",
		userID, category, month, year,
	)

	var b models.Budget
	if err := row.Scan(&b.ID, &b.UserID, &b.Category, &b.Threshold, &b.Month, &b.Year); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, models.ErrNotFound
		}
		return nil, err
	}
	return &b, nil
}

// ListBudgets retrieves all of the user's budgets for one calendar month,
// ordered by category for stable display.
func (db *DB) ListBudgets(userID int64, month, year int) ([]models.Budget, error) {
	return db.queryBudgets(
		"SELECT id, user_id, category, threshold, month, year FROM budgets WHERE user_id = ? AND month = ? AND year = ? ORDER BY category ASC",
		userID, month, year,
	)
}

// ListAllBudgets retrieves every budget the user has set, across all periods.
func (db *DB) ListAllBudgets(userID int64) ([]models.Budget, error) {
	return db.queryBudgets(
		"SELECT id, user_id, category, threshold, month, year FROM budgets WHERE user_id = ? ORDER BY year ASC, month ASC, category ASC",
		userID,
	)
}

func (db *DB) queryBudgets(query string, params ...any) ([]models.Budget, error) {
	rows, err := db.conn.Query(query, params...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var budgets []models.Budget
	for rows.Next() {
		var b models.Budget
		if err := rows.Scan(&b.ID, &b.UserID, &b.Category, &b.Threshold, &b.Month, &b.Year); err != nil {
			return nil, err
		}
		budgets = append(budgets, b)
	}

	return budgets, rows.Err()
}
