package service

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"log/slog"
	"math/big"
	"strings"

	"connectrpc.com/connect"

	"github.com/divvyup/divvyup/internal/auth"
	"github.com/divvyup/divvyup/internal/models"
	"github.com/divvyup/divvyup/internal/notify"
	"github.com/divvyup/divvyup/internal/storage"
	apiv1 "github.com/divvyup/divvyup/pkg/api/v1"
	"github.com/divvyup/divvyup/pkg/api/v1/apiconnect"
)

const (
	shareCodeAlphabet    = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	shareCodeLength      = 6
	maxShareCodeAttempts = 5
)

// GroupService implements the Connect GroupService.
type GroupService struct {
	apiconnect.UnimplementedGroupServiceHandler
	store        storage.Store
	jwtManager   *auth.JWTManager
	hub          *notify.Hub
	newShareCode func() (string, error)
}

// NewGroupService creates a new GroupService with the given storage backend.
func NewGroupService(store storage.Store, jwtManager *auth.JWTManager, hub *notify.Hub) *GroupService {
	return &GroupService{
		store:        store,
		jwtManager:   jwtManager,
		hub:          hub,
		newShareCode: generateShareCode,
	}
}

// generateShareCode returns a random code of upper-case letters and digits.
func generateShareCode() (string, error) {
	limit := big.NewInt(int64(len(shareCodeAlphabet)))
	var b strings.Builder
	for range shareCodeLength {
		n, err := rand.Int(rand.Reader, limit)
		if err != nil {
			return "", fmt.Errorf("failed to generate share code: %w", err)
		}
		b.WriteByte(shareCodeAlphabet[n.Int64()])
	}
	return b.String(), nil
}

// CreateGroup creates a new group with the caller as its creator and admin.
func (s *GroupService) CreateGroup(ctx context.Context, req *connect.Request[apiv1.CreateGroupRequest]) (*connect.Response[apiv1.CreateGroupResponse], error) {
	slog.Info("CreateGroup request received", "name", req.Msg.Name, "nickname", req.Msg.Nickname)

	if err := validateRequest(req.Msg); err != nil {
		return nil, err
	}

	creator := &models.Participant{
		Nickname:  req.Msg.Nickname,
		IsCreator: true,
		IsAdmin:   true,
		AvatarURL: req.Msg.AvatarURL,
	}

	var group *models.Group
	for attempt := 1; ; attempt++ {
		code, err := s.newShareCode()
		if err != nil {
			return nil, connect.NewError(connect.CodeInternal, err)
		}

		group = &models.Group{Name: req.Msg.Name, ShareCode: code}
		err = s.store.CreateGroup(ctx, group, creator)
		if err == nil {
			break
		}
		if !errors.Is(err, storage.ErrConflict) || attempt == maxShareCodeAttempts {
			slog.Error("CreateGroup failed", "attempt", attempt, "error", err)
			return nil, connect.NewError(connect.CodeInternal, err)
		}
		slog.Debug("Share code taken, retrying", "share_code", code)
		creator.ID, creator.CreatedAt = "", 0
	}

	token, err := s.jwtManager.Generate(creator)
	if err != nil {
		slog.Error("Failed to generate token", "participant_id", creator.ID, "error", err)
		return nil, connect.NewError(connect.CodeInternal, err)
	}

	slog.Info("Group created", "group_id", group.ID, "share_code", group.ShareCode)

	return connect.NewResponse(&apiv1.CreateGroupResponse{
		Group:       toAPIGroup(group),
		Participant: toAPIParticipant(creator),
		Token:       token,
	}), nil
}

// JoinGroup adds the caller to the group behind a share code. Joining again
// with a nickname already in the group resumes as that participant.
func (s *GroupService) JoinGroup(ctx context.Context, req *connect.Request[apiv1.JoinGroupRequest]) (*connect.Response[apiv1.JoinGroupResponse], error) {
	slog.Info("JoinGroup request received", "share_code", req.Msg.ShareCode, "nickname", req.Msg.Nickname)

	if err := validateRequest(req.Msg); err != nil {
		return nil, err
	}

	group, err := s.store.GetGroupByShareCode(ctx, strings.ToUpper(req.Msg.ShareCode))
	if err != nil {
		slog.Warn("JoinGroup failed", "share_code", req.Msg.ShareCode, "error", err)
		return nil, storeError(err)
	}

	participant, err := s.store.GetParticipantByNickname(ctx, group.ID, req.Msg.Nickname)
	switch {
	case err == nil:
		if req.Msg.AvatarURL != "" && req.Msg.AvatarURL != participant.AvatarURL {
			participant.AvatarURL = req.Msg.AvatarURL
			if err := s.store.UpdateParticipant(ctx, participant); err != nil {
				return nil, storeError(err)
			}
			s.hub.Publish(group.ID)
		}
		slog.Info("Participant rejoined", "group_id", group.ID, "participant_id", participant.ID)
	case errors.Is(err, storage.ErrNotFound):
		participant = &models.Participant{
			GroupID:   group.ID,
			Nickname:  req.Msg.Nickname,
			AvatarURL: req.Msg.AvatarURL,
		}
		if err := s.store.CreateParticipant(ctx, participant); err != nil {
			slog.Error("JoinGroup failed", "group_id", group.ID, "error", err)
			return nil, storeError(err)
		}
		s.hub.Publish(group.ID)
		slog.Info("Participant joined", "group_id", group.ID, "participant_id", participant.ID)
	default:
		return nil, storeError(err)
	}

	token, err := s.jwtManager.Generate(participant)
	if err != nil {
		slog.Error("Failed to generate token", "participant_id", participant.ID, "error", err)
		return nil, connect.NewError(connect.CodeInternal, err)
	}

	return connect.NewResponse(&apiv1.JoinGroupResponse{
		Group:       toAPIGroup(group),
		Participant: toAPIParticipant(participant),
		Token:       token,
	}), nil
}

// GetGroupDetails returns the caller's group with its participants and expenses.
func (s *GroupService) GetGroupDetails(ctx context.Context, req *connect.Request[apiv1.GetGroupDetailsRequest]) (*connect.Response[apiv1.GetGroupDetailsResponse], error) {
	caller, err := currentParticipant(ctx, s.store)
	if err != nil {
		return nil, err
	}
	slog.Info("GetGroupDetails request received", "group_id", caller.GroupID)

	group, err := s.store.GetGroup(ctx, caller.GroupID)
	if err != nil {
		return nil, storeError(err)
	}
	participants, err := s.store.ListParticipants(ctx, group.ID)
	if err != nil {
		return nil, storeError(err)
	}
	expenses, err := s.store.ListExpensesByGroup(ctx, group.ID)
	if err != nil {
		return nil, storeError(err)
	}

	slog.Info("GetGroupDetails successful",
		"group_id", group.ID,
		"participants_count", len(participants),
		"expenses_count", len(expenses),
	)

	return connect.NewResponse(&apiv1.GetGroupDetailsResponse{
		Group:        toAPIGroup(group),
		Participants: toAPIParticipants(participants),
		Expenses:     toAPIExpenses(expenses, participants),
	}), nil
}

// AddParticipant adds a named participant on someone's behalf. Admins only.
func (s *GroupService) AddParticipant(ctx context.Context, req *connect.Request[apiv1.AddParticipantRequest]) (*connect.Response[apiv1.AddParticipantResponse], error) {
	caller, err := currentParticipant(ctx, s.store)
	if err != nil {
		return nil, err
	}
	slog.Info("AddParticipant request received", "group_id", caller.GroupID, "nickname", req.Msg.Nickname)

	if err := validateRequest(req.Msg); err != nil {
		return nil, err
	}
	if !caller.IsAdmin {
		return nil, connect.NewError(connect.CodePermissionDenied, errNotAdmin)
	}

	participant := &models.Participant{GroupID: caller.GroupID, Nickname: req.Msg.Nickname}
	if err := s.store.CreateParticipant(ctx, participant); err != nil {
		slog.Error("AddParticipant failed", "group_id", caller.GroupID, "error", err)
		return nil, storeError(err)
	}
	s.hub.Publish(caller.GroupID)

	slog.Info("Participant added", "group_id", caller.GroupID, "participant_id", participant.ID)

	return connect.NewResponse(&apiv1.AddParticipantResponse{
		Participant: toAPIParticipant(participant),
	}), nil
}

// RemoveParticipant removes a participant and their shares. Admins only; the
// creator and the caller themselves cannot be removed.
func (s *GroupService) RemoveParticipant(ctx context.Context, req *connect.Request[apiv1.RemoveParticipantRequest]) (*connect.Response[apiv1.RemoveParticipantResponse], error) {
	caller, err := currentParticipant(ctx, s.store)
	if err != nil {
		return nil, err
	}
	slog.Info("RemoveParticipant request received", "group_id", caller.GroupID, "target_id", req.Msg.ParticipantID)

	if err := validateRequest(req.Msg); err != nil {
		return nil, err
	}
	if !caller.IsAdmin {
		return nil, connect.NewError(connect.CodePermissionDenied, errNotAdmin)
	}

	target, err := s.groupMember(ctx, caller.GroupID, req.Msg.ParticipantID)
	if err != nil {
		return nil, err
	}
	if target.ID == caller.ID {
		return nil, connect.NewError(connect.CodeInvalidArgument, errTargetSelf)
	}
	if target.IsCreator {
		return nil, connect.NewError(connect.CodePermissionDenied, errRemoveCreator)
	}

	if err := s.store.DeleteParticipant(ctx, target.ID); err != nil {
		slog.Error("RemoveParticipant failed", "participant_id", target.ID, "error", err)
		return nil, storeError(err)
	}
	s.hub.Publish(caller.GroupID)

	slog.Info("Participant removed", "group_id", caller.GroupID, "participant_id", target.ID)

	return connect.NewResponse(&apiv1.RemoveParticipantResponse{}), nil
}

// ToggleAdmin grants or revokes admin rights. Creator only, never on themselves.
func (s *GroupService) ToggleAdmin(ctx context.Context, req *connect.Request[apiv1.ToggleAdminRequest]) (*connect.Response[apiv1.ToggleAdminResponse], error) {
	caller, err := currentParticipant(ctx, s.store)
	if err != nil {
		return nil, err
	}
	slog.Info("ToggleAdmin request received", "group_id", caller.GroupID, "target_id", req.Msg.ParticipantID)

	if err := validateRequest(req.Msg); err != nil {
		return nil, err
	}
	if !caller.IsCreator {
		return nil, connect.NewError(connect.CodePermissionDenied, errNotCreator)
	}

	target, err := s.groupMember(ctx, caller.GroupID, req.Msg.ParticipantID)
	if err != nil {
		return nil, err
	}
	if target.ID == caller.ID {
		return nil, connect.NewError(connect.CodeInvalidArgument, errTargetSelf)
	}

	target.IsAdmin = !target.IsAdmin
	if err := s.store.UpdateParticipant(ctx, target); err != nil {
		slog.Error("ToggleAdmin failed", "participant_id", target.ID, "error", err)
		return nil, storeError(err)
	}
	s.hub.Publish(caller.GroupID)

	slog.Info("Admin toggled", "participant_id", target.ID, "is_admin", target.IsAdmin)

	return connect.NewResponse(&apiv1.ToggleAdminResponse{
		Participant: toAPIParticipant(target),
	}), nil
}

// groupMember loads a participant and checks it belongs to groupID.
// Participants of other groups are reported as not found.
func (s *GroupService) groupMember(ctx context.Context, groupID, participantID string) (*models.Participant, error) {
	participant, err := s.store.GetParticipant(ctx, participantID)
	if err != nil {
		return nil, storeError(err)
	}
	if participant.GroupID != groupID {
		return nil, connect.NewError(connect.CodeNotFound, fmt.Errorf("participant %s: %w", participantID, storage.ErrNotFound))
	}
	return participant, nil
}
