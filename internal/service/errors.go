package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"connectrpc.com/connect"
	"github.com/go-playground/validator/v10"

	"github.com/divvyup/divvyup/internal/middleware"
	"github.com/divvyup/divvyup/internal/models"
	"github.com/divvyup/divvyup/internal/storage"
)

var (
	errNotAdmin       = errors.New("only group admins can do this")
	errNotCreator     = errors.New("only the group creator can do this")
	errRemoveCreator  = errors.New("the group creator cannot be removed")
	errTargetSelf     = errors.New("cannot apply this to yourself")
	errNoLongerMember = errors.New("participant is no longer in the group")
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// validateRequest checks struct tags on a request message.
func validateRequest(msg any) error {
	err := validate.Struct(msg)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) {
		msgs := make([]string, 0, len(fieldErrs))
		for _, fe := range fieldErrs {
			msgs = append(msgs, fmt.Sprintf("%s failed %q", fe.Field(), fe.Tag()))
		}
		return connect.NewError(connect.CodeInvalidArgument, errors.New(strings.Join(msgs, "; ")))
	}
	return connect.NewError(connect.CodeInvalidArgument, err)
}

// storeError maps storage sentinels to Connect codes.
func storeError(err error) error {
	switch {
	case errors.Is(err, storage.ErrNotFound):
		return connect.NewError(connect.CodeNotFound, err)
	case errors.Is(err, storage.ErrConflict):
		return connect.NewError(connect.CodeAlreadyExists, err)
	default:
		return connect.NewError(connect.CodeInternal, err)
	}
}

func invalidArgument(format string, args ...any) error {
	return connect.NewError(connect.CodeInvalidArgument, fmt.Errorf(format, args...))
}

// currentParticipant loads the participant the session token was issued to.
// A participant removed since the token was issued is denied.
func currentParticipant(ctx context.Context, store storage.Store) (*models.Participant, error) {
	participantID := middleware.GetParticipantID(ctx)
	if participantID == "" {
		return nil, connect.NewError(connect.CodeUnauthenticated, errors.New("no participant in context"))
	}

	participant, err := store.GetParticipant(ctx, participantID)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, connect.NewError(connect.CodePermissionDenied, errNoLongerMember)
	}
	if err != nil {
		return nil, connect.NewError(connect.CodeInternal, err)
	}
	if participant.GroupID != middleware.GetGroupID(ctx) {
		return nil, connect.NewError(connect.CodePermissionDenied, errNoLongerMember)
	}
	return participant, nil
}
