package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"connectrpc.com/connect"

	"github.com/divvyup/divvyup/internal/auth"
)

// contextKey is a custom type for context keys to avoid collisions.
type contextKey string

const (
	// ParticipantIDKey is the context key for the authenticated participant ID.
	ParticipantIDKey contextKey = "participant_id"
	// GroupIDKey is the context key for the authenticated participant's group ID.
	GroupIDKey contextKey = "group_id"
)

// GetParticipantID extracts the participant ID from the context.
// Returns empty string if not found.
func GetParticipantID(ctx context.Context) string {
	participantID, _ := ctx.Value(ParticipantIDKey).(string)
	return participantID
}

// GetGroupID extracts the group ID from the context.
// Returns empty string if not found.
func GetGroupID(ctx context.Context) string {
	groupID, _ := ctx.Value(GroupIDKey).(string)
	return groupID
}

// WithParticipant returns a context carrying the given session identity.
func WithParticipant(ctx context.Context, participantID, groupID string) context.Context {
	ctx = context.WithValue(ctx, ParticipantIDKey, participantID)
	return context.WithValue(ctx, GroupIDKey, groupID)
}

// AuthInterceptor validates bearer tokens on unary and streaming calls.
// Procedures listed as public are let through without a token.
type AuthInterceptor struct {
	jwtManager *auth.JWTManager
	public     map[string]bool
}

var _ connect.Interceptor = (*AuthInterceptor)(nil)

// RequireAuth returns an interceptor that requires a valid token on every
// procedure except the public ones.
func RequireAuth(jwtManager *auth.JWTManager, publicProcedures ...string) *AuthInterceptor {
	public := make(map[string]bool, len(publicProcedures))
	for _, p := range publicProcedures {
		public[p] = true
	}
	return &AuthInterceptor{jwtManager: jwtManager, public: public}
}

func (i *AuthInterceptor) WrapUnary(next connect.UnaryFunc) connect.UnaryFunc {
	return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
		procedure := req.Spec().Procedure
		if i.public[procedure] {
			return next(ctx, req)
		}
		ctx, err := i.authenticate(ctx, procedure, req.Header())
		if err != nil {
			return nil, err
		}
		return next(ctx, req)
	}
}

func (i *AuthInterceptor) WrapStreamingClient(next connect.StreamingClientFunc) connect.StreamingClientFunc {
	return next
}

func (i *AuthInterceptor) WrapStreamingHandler(next connect.StreamingHandlerFunc) connect.StreamingHandlerFunc {
	return func(ctx context.Context, conn connect.StreamingHandlerConn) error {
		procedure := conn.Spec().Procedure
		if i.public[procedure] {
			return next(ctx, conn)
		}
		ctx, err := i.authenticate(ctx, procedure, conn.RequestHeader())
		if err != nil {
			return err
		}
		return next(ctx, conn)
	}
}

// authenticate parses the Bearer token and adds the session identity to ctx.
func (i *AuthInterceptor) authenticate(ctx context.Context, procedure string, header http.Header) (context.Context, error) {
	authHeader := header.Get("Authorization")
	if authHeader == "" {
		return ctx, connect.NewError(connect.CodeUnauthenticated, auth.ErrMissingToken)
	}

	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return ctx, connect.NewError(connect.CodeUnauthenticated, auth.ErrInvalidToken)
	}

	claims, err := i.jwtManager.Validate(parts[1])
	if err != nil {
		slog.Warn("Rejected token", "procedure", procedure, "error", err)
		return ctx, connect.NewError(connect.CodeUnauthenticated, err)
	}

	return WithParticipant(ctx, claims.ParticipantID, claims.GroupID), nil
}
