// Package report aggregates a user's transactions over a period into
// income/expense totals and a per-category expense breakdown.
package report

import (
	"fmt"
	"sort"
	"time"

	"finance-tracker/internal/models"
	"finance-tracker/internal/storage"
)

// Period selects the aggregation window relative to a reference date.
type Period string

const (
	Monthly Period = "monthly"
	Yearly  Period = "yearly"
)

// ParsePeriod converts user input into a Period.
func ParsePeriod(s string) (Period, error) {
	switch Period(s) {
	case Monthly, Yearly:
		return Period(s), nil
	default:
		return "", fmt.Errorf("%w: got %q", models.ErrInvalidPeriod, s)
	}
}

// Bounds returns the inclusive start and exclusive end of the period
// containing ref. Monthly covers the full calendar month, yearly the full
// calendar year.
func (p Period) Bounds(ref time.Time) (start, end time.Time, err error) {
	switch p {
	case Monthly:
		start = time.Date(ref.Year(), ref.Month(), 1, 0, 0, 0, 0, ref.Location())
		return start, start.AddDate(0, 1, 0), nil
	case Yearly:
		start = time.Date(ref.Year(), time.January, 1, 0, 0, 0, 0, ref.Location())
		return start, start.AddDate(1, 0, 0), nil
	default:
		return time.Time{}, time.Time{}, models.ErrInvalidPeriod
	}
}

// Generate builds a report over the user's transactions in the period
// containing referenceDate. Savings is income minus expenses and may be
// negative.
func Generate(db *storage.DB, userID int64, period Period, referenceDate time.Time) (*models.Report, error) {
	start, end, err := period.Bounds(referenceDate)
	if err != nil {
		return nil, err
	}

	transactions, err := db.ListTransactions(userID, storage.TransactionFilter{
		DateFrom: start,
		DateTo:   end,
	})
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}

	var totalIncome, totalExpenses float64
	byCategory := make(map[string]float64)

	for _, t := range transactions {
		switch t.Type {
		case models.TypeIncome:
			totalIncome += t.Amount
		case models.TypeExpense:
			totalExpenses += t.Amount
			byCategory[t.Category] += t.Amount
		}
	}

	breakdown := make([]models.CategoryTotal, 0, len(byCategory))
	for category, total := range byCategory {
		breakdown = append(breakdown, models.CategoryTotal{Category: category, Total: total})
	}
	// Largest totals first; equal totals by category name for stable display
	sort.Slice(breakdown, func(i, j int) bool {
		if breakdown[i].Total != breakdown[j].Total {
			return breakdown[i].Total > breakdown[j].Total
		}
		return breakdown[i].Category < breakdown[j].Category
	})

	return &models.Report{
		Period:        string(period),
		StartDate:     start,
		EndDate:       end.AddDate(0, 0, -1),
		TotalIncome:   totalIncome,
		TotalExpenses: totalExpenses,
		Savings:       totalIncome - totalExpenses,
		Breakdown:     breakdown,
	}, nil
}
