// Package models defines the core domain models for DivvyUp.
//
// A Group is a trip that people join with a share code. Each person in the
// group is a Participant, identified by a UUID and shown by nickname.
// Expenses are paid by one participant and split among any subset of the
// group; each Split records one participant's share.
//
// Models reference each other by ID strings rather than pointers. Monetary
// values use decimal.Decimal so shares and totals keep their exact value
// between storage and the balance calculator.
package models
