package cli

import (
	"bytes"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"testing"

	"finance-tracker/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDB(t *testing.T) *storage.DB {
	t.Helper()
	db, err := storage.NewDB(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

// runSession feeds the lines to the menu loop and returns everything printed.
func runSession(t *testing.T, db *storage.DB, lines ...string) string {
	t.Helper()
	in := strings.NewReader(strings.Join(lines, "\n") + "\n")
	var out bytes.Buffer
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	app := New(db, in, &out, logger)
	require.NoError(t, app.Run())
	return out.String()
}

func TestRegisterAndLogin(t *testing.T) {
	db := newTestDB(t)

	out := runSession(t, db,
		"1", "alice", "secret",
		"2", "alice", "secret",
		"13",
	)

	assert.Contains(t, out, "Registration successful!")
	assert.Contains(t, out, "Welcome, alice!")
	assert.Contains(t, out, "Thank you for using Personal Finance Tracker!")
}

func TestRegister_Duplicate(t *testing.T) {
	db := newTestDB(t)

	out := runSession(t, db,
		"1", "alice", "secret",
		"1", "alice", "other",
		"13",
	)

	assert.Contains(t, out, "Username already exists.")
}

func TestLogin_WrongPassword(t *testing.T) {
	db := newTestDB(t)

	out := runSession(t, db,
		"1", "alice", "secret",
		"2", "alice", "wrong",
		"2", "nobody", "secret",
		"13",
	)

	assert.Equal(t, 2, strings.Count(out, "Invalid username or password."))
	assert.NotContains(t, out, "Welcome,")
}

func TestRequiresLogin(t *testing.T) {
	db := newTestDB(t)

	out := runSession(t, db,
		"3",
		"8",
		"13",
	)

	assert.Equal(t, 2, strings.Count(out, "Please log in first."))
}

func TestAddTransactionsAndReport(t *testing.T) {
	db := newTestDB(t)

	// Blank dates default to today so the monthly report includes them.
	out := runSession(t, db,
		"1", "alice", "secret",
		"2", "alice", "secret",
		"3", "5000", "salary", "september pay", "",
		"4", "600", "Food", "", "",
		"4", "300", "Travel", "", "",
		"4", "300", "Entertainment", "", "",
		"8", "monthly",
		"13",
	)

	assert.Contains(t, out, "Transaction added successfully!")
	assert.Contains(t, out, "Total Income: $5000.00")
	assert.Contains(t, out, "Total Expenses: $1200.00")
	assert.Contains(t, out, "Savings: $3800.00")
	assert.Contains(t, out, "Food: $600.00")
	assert.Contains(t, out, "Travel: $300.00")
	assert.Contains(t, out, "Entertainment: $300.00")

	// Descending totals, names break the 300/300 tie
	food := strings.Index(out, "Food: $600.00")
	ent := strings.Index(out, "Entertainment: $300.00")
	travel := strings.Index(out, "Travel: $300.00")
	assert.Less(t, food, ent)
	assert.Less(t, ent, travel)
}

func TestAddTransaction_InvalidInput(t *testing.T) {
	db := newTestDB(t)

	out := runSession(t, db,
		"1", "alice", "secret",
		"2", "alice", "secret",
		"3", "abc",
		"4", "-50", "food", "", "",
		"13",
	)

	assert.Contains(t, out, "Invalid amount. Please enter a number.")
	assert.Contains(t, out, "Amount must be positive.")
}

func TestViewTransactions_Filters(t *testing.T) {
	db := newTestDB(t)

	out := runSession(t, db,
		"1", "alice", "secret",
		"2", "alice", "secret",
		"4", "25", "food", "lunch", "2025-09-05",
		"4", "80", "travel", "train", "2025-09-10",
		"5", "3", "food",
		"5", "2", "2025-09-10", "2025-09-10",
		"13",
	)

	assert.Contains(t, out, "ID: 1 | 2025-09-05 | EXPENSE | $25.00 | food | lunch")
	assert.Contains(t, out, "ID: 2 | 2025-09-10 | EXPENSE | $80.00 | travel | train")
	// Category filter shows only the food row
	assert.Equal(t, 1, strings.Count(out, "lunch"))
	// Inclusive date-range filter catches the boundary day
	assert.Equal(t, 1, strings.Count(out, "train"))
}

func TestUpdateAndDeleteTransaction(t *testing.T) {
	db := newTestDB(t)

	out := runSession(t, db,
		"1", "alice", "secret",
		"2", "alice", "secret",
		"4", "25", "food", "lunch", "2025-09-05",
		"6", "1", "30", "", "dinner",
		"5", "1",
		"7", "1",
		"7", "1",
		"13",
	)

	assert.Contains(t, out, "Transaction updated successfully!")
	assert.Contains(t, out, "$30.00 | food | dinner")
	assert.Contains(t, out, "Transaction deleted successfully!")
	// Second delete of the same id
	assert.Contains(t, out, "Transaction not found.")
}

func TestBudgetFlow(t *testing.T) {
	db := newTestDB(t)

	out := runSession(t, db,
		"1", "alice", "secret",
		"2", "alice", "secret",
		"9", "food", "500", "", "",
		"10", "", "",
		"4", "600", "food", "", "",
		"10", "", "",
		"13",
	)

	assert.Contains(t, out, "Budget for food set to $500.00")
	assert.Contains(t, out, "food: $0.00 spent of $500.00")
	assert.Contains(t, out, "Warning: You have exceeded your budget for food!")
	assert.Contains(t, out, "Budget: $500.00, Spent: $600.00")
	assert.Contains(t, out, "food: $600.00 spent of $500.00 [EXCEEDED]")
}

func TestBudget_NoWarningWithinThreshold(t *testing.T) {
	db := newTestDB(t)

	out := runSession(t, db,
		"1", "alice", "secret",
		"2", "alice", "secret",
		"9", "food", "500", "", "",
		"4", "500", "food", "", "",
		"13",
	)

	// Spending exactly the threshold is within budget
	assert.NotContains(t, out, "Warning:")
}

func TestBackupAndRestore(t *testing.T) {
	db := newTestDB(t)
	path := filepath.Join(t.TempDir(), "backup.json")

	out := runSession(t, db,
		"1", "alice", "secret",
		"2", "alice", "secret",
		"4", "25", "food", "lunch", "2025-09-05",
		"11", path,
		"7", "1",
		"12", path,
		"5", "1",
		"13",
	)

	assert.Contains(t, out, "Backup created successfully: "+path)
	assert.Contains(t, out, "Data restored successfully!")
	// Deleted transaction came back via restore
	assert.Contains(t, out, "$25.00 | food | lunch")
}

func TestRestore_MissingFile(t *testing.T) {
	db := newTestDB(t)

	out := runSession(t, db,
		"1", "alice", "secret",
		"2", "alice", "secret",
		"12", filepath.Join(t.TempDir(), "nope.json"),
		"13",
	)

	assert.Contains(t, out, "Backup file not found.")
}

func TestInvalidMenuChoice(t *testing.T) {
	db := newTestDB(t)

	out := runSession(t, db,
		"42",
		"13",
	)

	assert.Contains(t, out, "Invalid choice. Please try again.")
}
