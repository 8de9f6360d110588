package models

import "github.com/shopspring/decimal"

// Expense represents a payment made by one participant on behalf of others.
type Expense struct {
	// ID is the unique identifier for the expense (UUID format).
	ID string

	// GroupID is the group this expense belongs to.
	GroupID string

	// PaidByID is the participant who paid.
	PaidByID string

	// Description is a short label (e.g., "Sushi Dinner").
	Description string

	// Amount is the total paid. Never negative.
	Amount decimal.Decimal

	// CreatedAt is the Unix timestamp when the expense was recorded.
	CreatedAt int64

	// Splits are the participants sharing this expense.
	// Their share amounts are expected to add up to Amount.
	Splits []Split
}

// Split is one participant's share of an expense.
type Split struct {
	ID            string
	ExpenseID     string
	ParticipantID string
	ShareAmount   decimal.Decimal
}
