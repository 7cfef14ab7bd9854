// Package cli implements the interactive menu for the finance tracker.
package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"finance-tracker/internal/auth"
	"finance-tracker/internal/backup"
	"finance-tracker/internal/budget"
	"finance-tracker/internal/models"
	"finance-tracker/internal/report"
	"finance-tracker/internal/storage"

	"golang.org/x/term"
)

const dateLayout = "2006-01-02"

// App wires the interactive menu to the datastore.
type App struct {
	db    *storage.DB
	stdin io.Reader
	in    *bufio.Scanner
	out   io.Writer
	log   *slog.Logger
}

// New creates an App reading menu input from stdin and writing to stdout.
func New(db *storage.DB, stdin io.Reader, stdout io.Writer, logger *slog.Logger) *App {
	return &App{
		db:    db,
		stdin: stdin,
		in:    bufio.NewScanner(stdin),
		out:   stdout,
		log:   logger,
	}
}

// Run drives the menu loop until the user exits or input ends. The logged-in
// user is held here and passed explicitly into every operation.
func (a *App) Run() error {
	var user *models.User

	for {
		a.printMenu()

		choice, ok := a.prompt("Enter your choice (1-13): ")
		if !ok {
			return nil
		}

		switch choice {
		case "1":
			a.register()
		case "2":
			if u := a.login(); u != nil {
				user = u
			}
		case "3":
			a.loggedIn(user, func(u *models.User) { a.addTransaction(u, models.TypeIncome) })
		case "4":
			a.loggedIn(user, func(u *models.User) { a.addTransaction(u, models.TypeExpense) })
		case "5":
			a.loggedIn(user, a.viewTransactions)
		case "6":
			a.loggedIn(user, a.updateTransaction)
		case "7":
			a.loggedIn(user, a.deleteTransaction)
		case "8":
			a.loggedIn(user, a.generateReport)
		case "9":
			a.loggedIn(user, a.setBudget)
		case "10":
			a.loggedIn(user, a.viewBudgets)
		case "11":
			a.loggedIn(user, a.backupData)
		case "12":
			a.loggedIn(user, a.restoreData)
		case "13":
			fmt.Fprintln(a.out, "Thank you for using Personal Finance Tracker!")
			return nil
		default:
			fmt.Fprintln(a.out, "Invalid choice. Please try again.")
		}
	}
}

func (a *App) printMenu() {
	fmt.Fprintln(a.out, "\n=== Personal Finance Tracker ===")
	fmt.Fprintln(a.out, "1. Register")
	fmt.Fprintln(a.out, "2. Login")
	fmt.Fprintln(a.out, "3. Add Income")
	fmt.Fprintln(a.out, "4. Add Expense")
	fmt.Fprintln(a.out, "5. View Transactions")
	fmt.Fprintln(a.out, "6. Update Transaction")
	fmt.Fprintln(a.out, "7. Delete Transaction")
	fmt.Fprintln(a.out, "8. Generate Report")
	fmt.Fprintln(a.out, "9. Set Budget")
	fmt.Fprintln(a.out, "10. View Budgets")
	fmt.Fprintln(a.out, "11. Backup Data")
	fmt.Fprintln(a.out, "12. Restore Data")
	fmt.Fprintln(a.out, "13. Exit")
	fmt.Fprintln(a.out, "================================")
}

// prompt prints the label and reads one trimmed line. ok is false on EOF.
func (a *App) prompt(label string) (value string, ok bool) {
	fmt.Fprint(a.out, label)
	if !a.in.Scan() {
		return "", false
	}
	return strings.TrimSpace(a.in.Text()), true
}

// readPassword reads a password without echo when stdin is a terminal,
// falling back to a plain line read for pipes and tests.
func (a *App) readPassword(label string) (string, bool) {
	fmt.Fprint(a.out, label)
	if f, ok := a.stdin.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		b, err := term.ReadPassword(int(f.Fd()))
		fmt.Fprintln(a.out)
		if err != nil {
			return "", false
		}
		return string(b), true
	}
	if !a.in.Scan() {
		return "", false
	}
	return a.in.Text(), true
}

// loggedIn runs fn with the current user, or prints a hint when nobody is
// logged in.
func (a *App) loggedIn(user *models.User, fn func(*models.User)) {
	if user == nil {
		fmt.Fprintln(a.out, "Please log in first.")
		return
	}
	fn(user)
}

func (a *App) register() {
	username, ok := a.prompt("Enter username: ")
	if !ok {
		return
	}
	password, ok := a.readPassword("Enter password: ")
	if !ok {
		return
	}

	if username == "" || strings.TrimSpace(password) == "" {
		fmt.Fprintln(a.out, "Username and password cannot be empty.")
		return
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		a.log.Error("hash password", "error", err)
		fmt.Fprintln(a.out, "An error occurred. Please try again.")
		return
	}

	if _, err := a.db.CreateUser(username, hash); err != nil {
		if errors.Is(err, models.ErrUsernameTaken) {
			fmt.Fprintln(a.out, "Username already exists. Please choose a different one.")
			return
		}
		a.fail("create user", err)
		return
	}

	fmt.Fprintln(a.out, "Registration successful!")
}

func (a *App) login() *models.User {
	username, ok := a.prompt("Enter username: ")
	if !ok {
		return nil
	}
	password, ok := a.readPassword("Enter password: ")
	if !ok {
		return nil
	}

	user, err := a.db.GetUserByUsername(username)
	if err != nil || !auth.CheckPassword(password, user.PasswordHash) {
		fmt.Fprintln(a.out, "Invalid username or password.")
		return nil
	}

	fmt.Fprintf(a.out, "Welcome, %s!\n", user.Username)
	return user
}

func (a *App) addTransaction(user *models.User, typ models.TransactionType) {
	label := "income"
	if typ == models.TypeExpense {
		label = "expense"
	}

	amountStr, ok := a.prompt(fmt.Sprintf("Enter %s amount: ", label))
	if !ok {
		return
	}
	amount, err := strconv.ParseFloat(amountStr, 64)
	if err != nil {
		fmt.Fprintln(a.out, "Invalid amount. Please enter a number.")
		return
	}

	category, ok := a.prompt("Enter category: ")
	if !ok {
		return
	}
	description, ok := a.prompt("Enter description (optional): ")
	if !ok {
		return
	}
	date, ok := a.promptDate("Enter date (YYYY-MM-DD, blank = today): ", today())
	if !ok {
		return
	}

	id, err := a.db.AddTransaction(models.Transaction{
		UserID:      user.ID,
		Type:        typ,
		Amount:      amount,
		Category:    category,
		Description: description,
		Date:        date,
	})
	if err != nil {
		a.fail("add transaction", err)
		return
	}

	fmt.Fprintf(a.out, "Transaction added successfully! (ID: %d)\n", id)

	if typ == models.TypeExpense {
		a.warnIfOverBudget(user, category, date)
	}
}

// warnIfOverBudget prints a warning when the category's budget for the
// transaction's month is now exceeded. No budget set means no warning.
func (a *App) warnIfOverBudget(user *models.User, category string, date time.Time) {
	s, err := budget.Check(a.db, user.ID, category, int(date.Month()), date.Year())
	if err != nil {
		if !errors.Is(err, models.ErrNotFound) {
			a.log.Warn("budget check", "category", category, "error", err)
		}
		return
	}
	if s.Exceeded {
		fmt.Fprintf(a.out, "Warning: You have exceeded your budget for %s!\n", category)
		fmt.Fprintf(a.out, "Budget: $%.2f, Spent: $%.2f\n", s.Threshold, s.Spent)
	}
}

func (a *App) viewTransactions(user *models.User) {
	fmt.Fprintln(a.out, "\nFilter options:")
	fmt.Fprintln(a.out, "1. All transactions")
	fmt.Fprintln(a.out, "2. By date range")
	fmt.Fprintln(a.out, "3. By category")
	fmt.Fprintln(a.out, "4. By type (income/expense)")

	choice, ok := a.prompt("Enter your choice (1-4): ")
	if !ok {
		return
	}

	var filter storage.TransactionFilter
	switch choice {
	case "2":
		from, ok := a.promptDate("Enter start date (YYYY-MM-DD): ", time.Time{})
		if !ok {
			return
		}
		to, ok := a.promptDate("Enter end date (YYYY-MM-DD): ", time.Time{})
		if !ok {
			return
		}
		filter.DateFrom = from
		if !to.IsZero() {
			// inclusive end date
			filter.DateTo = to.AddDate(0, 0, 1)
		}
	case "3":
		category, ok := a.prompt("Enter category: ")
		if !ok {
			return
		}
		filter.Category = category
	case "4":
		typ, ok := a.prompt("Enter type (income/expense): ")
		if !ok {
			return
		}
		filter.Type = models.TransactionType(strings.ToLower(typ))
		if !filter.Type.Valid() {
			fmt.Fprintln(a.out, models.ErrInvalidType.Error())
			return
		}
	}

	transactions, err := a.db.ListTransactions(user.ID, filter)
	if err != nil {
		a.fail("list transactions", err)
		return
	}

	if len(transactions) == 0 {
		fmt.Fprintln(a.out, "No transactions found.")
		return
	}

	fmt.Fprintln(a.out, "\nTransactions:")
	fmt.Fprintln(a.out, strings.Repeat("-", 80))
	var totalIncome, totalExpense float64
	for _, t := range transactions {
		fmt.Fprintf(a.out, "ID: %d | %s | %s | $%.2f | %s | %s\n",
			t.ID, t.Date.Format(dateLayout), strings.ToUpper(string(t.Type)), t.Amount, t.Category, t.Description)
		if t.Type == models.TypeIncome {
			totalIncome += t.Amount
		} else {
			totalExpense += t.Amount
		}
	}
	fmt.Fprintln(a.out, strings.Repeat("-", 80))
	fmt.Fprintf(a.out, "Total Income: $%.2f | Total Expense: $%.2f | Net: $%.2f\n",
		totalIncome, totalExpense, totalIncome-totalExpense)
}

func (a *App) updateTransaction(user *models.User) {
	id, ok := a.promptID("Enter transaction ID to update: ")
	if !ok {
		return
	}

	fmt.Fprintln(a.out, "Leave field blank to keep current value:")

	var upd storage.TransactionUpdate

	amountStr, ok := a.prompt("Enter new amount: ")
	if !ok {
		return
	}
	if amountStr != "" {
		amount, err := strconv.ParseFloat(amountStr, 64)
		if err != nil {
			fmt.Fprintln(a.out, "Invalid amount. Please enter a number.")
			return
		}
		upd.Amount = &amount
	}

	category, ok := a.prompt("Enter new category: ")
	if !ok {
		return
	}
	if category != "" {
		upd.Category = &category
	}

	description, ok := a.prompt("Enter new description: ")
	if !ok {
		return
	}
	if description != "" {
		upd.Description = &description
	}

	if err := a.db.UpdateTransaction(user.ID, id, upd); err != nil {
		a.fail("update transaction", err)
		return
	}
	fmt.Fprintln(a.out, "Transaction updated successfully!")
}

func (a *App) deleteTransaction(user *models.User) {
	id, ok := a.promptID("Enter transaction ID to delete: ")
	if !ok {
		return
	}

	if err := a.db.DeleteTransaction(user.ID, id); err != nil {
		a.fail("delete transaction", err)
		return
	}
	fmt.Fprintln(a.out, "Transaction deleted successfully!")
}

func (a *App) generateReport(user *models.User) {
	periodStr, ok := a.prompt("Enter period (monthly/yearly): ")
	if !ok {
		return
	}
	period, err := report.ParsePeriod(strings.ToLower(periodStr))
	if err != nil {
		fmt.Fprintln(a.out, "Invalid period. Use 'monthly' or 'yearly'.")
		return
	}

	r, err := report.Generate(a.db, user.ID, period, today())
	if err != nil {
		a.fail("generate report", err)
		return
	}

	fmt.Fprintf(a.out, "\n--- Financial Report (%s) ---\n", r.Period)
	fmt.Fprintf(a.out, "Period: %s to %s\n", r.StartDate.Format(dateLayout), r.EndDate.Format(dateLayout))
	fmt.Fprintf(a.out, "Total Income: $%.2f\n", r.TotalIncome)
	fmt.Fprintf(a.out, "Total Expenses: $%.2f\n", r.TotalExpenses)
	fmt.Fprintf(a.out, "Savings: $%.2f\n", r.Savings)

	if len(r.Breakdown) > 0 {
		fmt.Fprintln(a.out, "\nExpenses by Category:")
		for _, c := range r.Breakdown {
			fmt.Fprintf(a.out, "  %s: $%.2f\n", c.Category, c.Total)
		}
	}
}

func (a *App) setBudget(user *models.User) {
	category, ok := a.prompt("Enter category: ")
	if !ok {
		return
	}
	amountStr, ok := a.prompt("Enter budget amount: ")
	if !ok {
		return
	}
	threshold, err := strconv.ParseFloat(amountStr, 64)
	if err != nil {
		fmt.Fprintln(a.out, "Invalid amount. Please enter a number.")
		return
	}

	month, year, ok := a.promptMonthYear()
	if !ok {
		return
	}

	if err := budget.Set(a.db, user.ID, category, month, year, threshold); err != nil {
		a.fail("set budget", err)
		return
	}

	period := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	fmt.Fprintf(a.out, "Budget for %s set to $%.2f for %s.\n", category, threshold, period.Format("January 2006"))
}

func (a *App) viewBudgets(user *models.User) {
	month, year, ok := a.promptMonthYear()
	if !ok {
		return
	}

	statuses, err := budget.List(a.db, user.ID, month, year)
	if err != nil {
		a.fail("list budgets", err)
		return
	}

	if len(statuses) == 0 {
		fmt.Fprintln(a.out, "No budgets set for this month.")
		return
	}

	fmt.Fprintln(a.out, "\nCurrent Budgets:")
	fmt.Fprintln(a.out, strings.Repeat("-", 40))
	for _, s := range statuses {
		line := fmt.Sprintf("%s: $%.2f spent of $%.2f", s.Category, s.Spent, s.Threshold)
		if s.Exceeded {
			line += " [EXCEEDED]"
		}
		fmt.Fprintln(a.out, line)
	}
	fmt.Fprintln(a.out, strings.Repeat("-", 40))
}

func (a *App) backupData(user *models.User) {
	name, ok := a.prompt("Enter backup filename: ")
	if !ok {
		return
	}
	if name == "" {
		name = fmt.Sprintf("finance_backup_%s.json", time.Now().Format("20060102_150405"))
	}

	f, err := os.Create(name)
	if err != nil {
		a.fail("create backup file", err)
		return
	}
	defer f.Close()

	if err := backup.Export(a.db, user.ID, f); err != nil {
		a.fail("write backup", err)
		return
	}

	fmt.Fprintf(a.out, "Backup created successfully: %s\n", name)
}

func (a *App) restoreData(user *models.User) {
	name, ok := a.prompt("Enter backup filename: ")
	if !ok {
		return
	}

	f, err := os.Open(name)
	if err != nil {
		fmt.Fprintln(a.out, "Backup file not found.")
		return
	}
	defer f.Close()

	if err := backup.Import(a.db, user.ID, f); err != nil {
		a.fail("restore backup", err)
		return
	}

	fmt.Fprintln(a.out, "Data restored successfully!")
}

// fail renders an operation's error to the user and logs unexpected ones.
func (a *App) fail(op string, err error) {
	switch {
	case errors.Is(err, models.ErrNotFound):
		fmt.Fprintln(a.out, "Transaction not found.")
	case errors.Is(err, models.ErrUnauthorized):
		fmt.Fprintln(a.out, "You don't have permission to access this record.")
	case errors.Is(err, models.ErrBadSnapshot):
		fmt.Fprintln(a.out, "Backup file is malformed. Nothing was restored.")
	case errors.Is(err, models.ErrInvalidAmount),
		errors.Is(err, models.ErrInvalidType),
		errors.Is(err, models.ErrEmptyCategory),
		errors.Is(err, models.ErrInvalidDate),
		errors.Is(err, models.ErrInvalidThreshold),
		errors.Is(err, models.ErrNoFields):
		fmt.Fprintln(a.out, capitalize(err.Error())+".")
	default:
		a.log.Error(op, "error", err)
		fmt.Fprintf(a.out, "Error: %v\n", err)
	}
}

func (a *App) promptID(label string) (int64, bool) {
	s, ok := a.prompt(label)
	if !ok {
		return 0, false
	}
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		fmt.Fprintln(a.out, "Invalid transaction ID.")
		return 0, false
	}
	return id, true
}

// promptDate reads a calendar date, returning fallback on blank input.
func (a *App) promptDate(label string, fallback time.Time) (time.Time, bool) {
	s, ok := a.prompt(label)
	if !ok {
		return time.Time{}, false
	}
	if s == "" {
		return fallback, true
	}
	date, err := time.Parse(dateLayout, s)
	if err != nil {
		fmt.Fprintln(a.out, "Invalid date. Use YYYY-MM-DD.")
		return time.Time{}, false
	}
	return date, true
}

// promptMonthYear reads an optional month and year, defaulting to the
// current calendar month.
func (a *App) promptMonthYear() (month, year int, ok bool) {
	now := time.Now()
	month, year = int(now.Month()), now.Year()

	s, scanOK := a.prompt("Enter month (1-12, blank = current): ")
	if !scanOK {
		return 0, 0, false
	}
	if s != "" {
		m, err := strconv.Atoi(s)
		if err != nil || m < 1 || m > 12 {
			fmt.Fprintln(a.out, "Invalid month.")
			return 0, 0, false
		}
		month = m
	}

	s, scanOK = a.prompt("Enter year (blank = current): ")
	if !scanOK {
		return 0, 0, false
	}
	if s != "" {
		y, err := strconv.Atoi(s)
		if err != nil || y < 1 {
			fmt.Fprintln(a.out, "Invalid year.")
			return 0, 0, false
		}
		year = y
	}

	return month, year, true
}

// today returns the current date at midnight UTC, matching how explicit
// dates are parsed.
func today() time.Time {
	now := time.Now()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
