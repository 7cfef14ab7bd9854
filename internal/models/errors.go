package models

import "errors"

// Sentinel errors for the domain. Callers branch with errors.Is; the CLI
// boundary renders them as user-facing messages.
var (
	// Validation failures on user input.
	ErrInvalidAmount    = errors.New("amount must be positive")
	ErrInvalidType      = errors.New(`transaction type must be "income" or "expense"`)
	ErrEmptyCategory    = errors.New("category cannot be empty")
	ErrInvalidDate      = errors.New("invalid date")
	ErrInvalidThreshold = errors.New("budget threshold cannot be negative")
	ErrInvalidPeriod    = errors.New(`period must be "monthly" or "yearly"`)
	ErrNoFields         = errors.New("no fields to update")
	ErrEmptyCredentials = errors.New("username and password cannot be empty")

	// ErrNotFound marks lookups for records that do not exist.
	ErrNotFound = errors.New("not found")

	// ErrUnauthorized marks credential mismatches and attempts to touch
	// another user's records.
	ErrUnauthorized = errors.New("not authorized")

	// ErrUsernameTaken marks registration with an existing username.
	ErrUsernameTaken = errors.New("username already exists")

	// ErrBadSnapshot marks malformed or invalid backup documents.
	ErrBadSnapshot = errors.New("malformed backup snapshot")
)
