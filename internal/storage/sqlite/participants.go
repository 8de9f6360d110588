package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/divvyup/divvyup/internal/models"
	"github.com/divvyup/divvyup/internal/storage"
)

const participantColumns = "id, group_id, nickname, is_creator, is_admin, avatar_url, created_at"

// CreateParticipant inserts a new participant into an existing group.
func (s *SQLiteStore) CreateParticipant(ctx context.Context, participant *models.Participant) error {
	return insertParticipant(ctx, s.db, participant)
}

func insertParticipant(ctx context.Context, db execer, participant *models.Participant) error {
	if participant.ID == "" {
		participant.ID = uuid.New().String()
	}
	if participant.CreatedAt == 0 {
		participant.CreatedAt = time.Now().Unix()
	}

	_, err := db.ExecContext(ctx,
		`INSERT INTO participants (`+participantColumns+`)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		participant.ID,
		participant.GroupID,
		participant.Nickname,
		participant.IsCreator,
		participant.IsAdmin,
		nullable(participant.AvatarURL),
		participant.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("nickname %q: %w", participant.Nickname, storage.ErrConflict)
		}
		return fmt.Errorf("failed to insert participant: %w", err)
	}
	return nil
}

// GetParticipant retrieves a participant by ID.
func (s *SQLiteStore) GetParticipant(ctx context.Context, participantID string) (*models.Participant, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT "+participantColumns+" FROM participants WHERE id = ?",
		participantID,
	)
	participant, err := scanParticipant(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("participant %s: %w", participantID, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get participant: %w", err)
	}
	return participant, nil
}

// GetParticipantByNickname retrieves a participant by nickname within a group.
func (s *SQLiteStore) GetParticipantByNickname(ctx context.Context, groupID, nickname string) (*models.Participant, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT "+participantColumns+" FROM participants WHERE group_id = ? AND nickname = ?",
		groupID, nickname,
	)
	participant, err := scanParticipant(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("participant %q: %w", nickname, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get participant by nickname: %w", err)
	}
	return participant, nil
}

// ListParticipants retrieves a group's participants in the order they joined.
func (s *SQLiteStore) ListParticipants(ctx context.Context, groupID string) ([]*models.Participant, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT "+participantColumns+" FROM participants WHERE group_id = ? ORDER BY created_at, rowid",
		groupID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list participants: %w", err)
	}
	defer rows.Close()

	var participants []*models.Participant
	for rows.Next() {
		participant, err := scanParticipant(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan participant: %w", err)
		}
		participants = append(participants, participant)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate participants: %w", err)
	}
	return participants, nil
}

// UpdateParticipant saves a participant's admin flag and avatar.
func (s *SQLiteStore) UpdateParticipant(ctx context.Context, participant *models.Participant) error {
	res, err := s.db.ExecContext(ctx,
		"UPDATE participants SET is_admin = ?, avatar_url = ? WHERE id = ?",
		participant.IsAdmin, nullable(participant.AvatarURL), participant.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update participant: %w", err)
	}
	return requireAffected(res, "participant", participant.ID)
}

// DeleteParticipant removes a participant. Their splits cascade.
func (s *SQLiteStore) DeleteParticipant(ctx context.Context, participantID string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM participants WHERE id = ?", participantID)
	if err != nil {
		return fmt.Errorf("failed to delete participant: %w", err)
	}
	return requireAffected(res, "participant", participantID)
}

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanParticipant(row rowScanner) (*models.Participant, error) {
	participant := &models.Participant{}
	var avatar sql.NullString
	if err := row.Scan(
		&participant.ID,
		&participant.GroupID,
		&participant.Nickname,
		&participant.IsCreator,
		&participant.IsAdmin,
		&avatar,
		&participant.CreatedAt,
	); err != nil {
		return nil, err
	}
	if avatar.Valid {
		participant.AvatarURL = avatar.String
	}
	return participant, nil
}
