// Package budget evaluates per-category monthly spending against stored
// thresholds. Exceeded status is recomputed from the ledger on every check,
// never persisted.
package budget

import (
	"fmt"
	"time"

	"finance-tracker/internal/models"
	"finance-tracker/internal/storage"
)

// Status is the result of checking one budget against the ledger.
type Status struct {
	Category  string
	Month     int
	Year      int
	Threshold float64
	Spent     float64
	Exceeded  bool
}

// Set upserts the threshold for (user, category, month, year).
func Set(db *storage.DB, userID int64, category string, month, year int, threshold float64) error {
	return db.SetBudget(models.Budget{
		UserID:    userID,
		Category:  category,
		Threshold: threshold,
		Month:     month,
		Year:      year,
	})
}

// Check sums the user's expense transactions for the category in the given
// calendar month and compares them to the stored threshold. It returns
// ErrNotFound when no budget is set. Exceeded is strict: spending exactly
// the threshold is within budget.
func Check(db *storage.DB, userID int64, category string, month, year int) (Status, error) {
	b, err := db.GetBudget(userID, category, month, year)
	if err != nil {
		return Status{}, err
	}
	return status(db, userID, *b)
}

// List returns the live status of every budget the user has for the month.
func List(db *storage.DB, userID int64, month, year int) ([]Status, error) {
	budgets, err := db.ListBudgets(userID, month, year)
	if err != nil {
		return nil, err
	}

	statuses := make([]Status, 0, len(budgets))
	for _, b := range budgets {
		s, err := status(db, userID, b)
		if err != nil {
			return nil, err
		}
		statuses = append(statuses, s)
	}
	return statuses, nil
}

func status(db *storage.DB, userID int64, b models.Budget) (Status, error) {
	start := time.Date(b.Year, time.Month(b.Month), 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0)

	spent, err := db.SumExpenses(userID, b.Category, start, end)
	if err != nil {
		return Status{}, fmt.Errorf("sum expenses for %s: %w", b.Category, err)
	}

	return Status{
		Category:  b.Category,
		Month:     b.Month,
		Year:      b.Year,
		Threshold: b.Threshold,
		Spent:     spent,
		Exceeded:  spent > b.Threshold,
	}, nil
}
