// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"

	"github.com/divvyup/divvyup/internal/models"
)

var (
	// ErrNotFound is returned when the requested record does not exist.
	ErrNotFound = errors.New("not found")
	// ErrConflict is returned when a write violates a uniqueness constraint.
	ErrConflict = errors.New("already exists")
)

// Store defines the interface for group, participant and expense storage.
// This abstraction allows swapping storage backends (SQLite, PostgreSQL, etc.)
// without changing the service layer.
type Store interface {
	// CreateGroup persists a new group together with its creator.
	// ID and CreatedAt are populated on both when empty.
	// Returns ErrConflict if the share code is already taken.
	CreateGroup(ctx context.Context, group *models.Group, creator *models.Participant) error
	GetGroup(ctx context.Context, groupID string) (*models.Group, error)
	GetGroupByShareCode(ctx context.Context, shareCode string) (*models.Group, error)

	// CreateParticipant adds a participant to an existing group.
	// Returns ErrConflict if the nickname is already used in the group.
	CreateParticipant(ctx context.Context, participant *models.Participant) error
	GetParticipant(ctx context.Context, participantID string) (*models.Participant, error)
	GetParticipantByNickname(ctx context.Context, groupID, nickname string) (*models.Participant, error)
	// ListParticipants returns a group's participants in join order.
	ListParticipants(ctx context.Context, groupID string) ([]*models.Participant, error)
	// UpdateParticipant saves the admin flag and avatar of a participant.
	UpdateParticipant(ctx context.Context, participant *models.Participant) error
	// DeleteParticipant removes a participant and their splits.
	// Expenses they paid are kept.
	DeleteParticipant(ctx context.Context, participantID string) error

	// CreateExpense persists an expense and its splits atomically.
	CreateExpense(ctx context.Context, expense *models.Expense) error
	GetExpense(ctx context.Context, expenseID string) (*models.Expense, error)
	// ListExpensesByGroup returns a group's expenses with splits, newest first.
	ListExpensesByGroup(ctx context.Context, groupID string) ([]*models.Expense, error)
	// UpdateExpense replaces an expense's details and splits atomically.
	UpdateExpense(ctx context.Context, expense *models.Expense) error
	DeleteExpense(ctx context.Context, expenseID string) error

	// Close releases any resources held by the store.
	Close() error
}
