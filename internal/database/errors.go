package database

import "errors"

// Errors returned by ledger, order, catalog and feedback operations.
// Callers match them with errors.Is; they are wrapped with context.
var (
	ErrNotFound            = errors.New("not found")
	ErrForbidden           = errors.New("forbidden")
	ErrInsufficientBalance = errors.New("insufficient balance")
	ErrAlreadyClaimedToday = errors.New("daily reward already claimed today")
	ErrInvalidInput        = errors.New("invalid input")
	ErrNotCancelable       = errors.New("order is not pending")
	ErrAlreadyExists       = errors.New("already exists")
)
