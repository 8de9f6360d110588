package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"connectrpc.com/connect"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/divvyup/divvyup/internal/auth"
	"github.com/divvyup/divvyup/internal/middleware"
	"github.com/divvyup/divvyup/internal/notify"
	"github.com/divvyup/divvyup/internal/storage/sqlite"
	apiv1 "github.com/divvyup/divvyup/pkg/api/v1"
	"github.com/divvyup/divvyup/pkg/api/v1/apiconnect"
)

type testEnv struct {
	groups   apiconnect.GroupServiceClient
	expenses apiconnect.ExpenseServiceClient
	balances apiconnect.BalanceServiceClient
	groupSvc *GroupService
	hub      *notify.Hub
}

// session is one participant signed in to one group.
type session struct {
	token       string
	group       *apiv1.Group
	participant *apiv1.Participant
}

// setupTestServer serves all three services behind the auth interceptor.
func setupTestServer(t *testing.T) *testEnv {
	t.Helper()

	store, err := sqlite.New(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err, "failed to create store")

	jwtManager := auth.NewJWTManager("test-secret-key", time.Hour)
	hub := notify.NewHub()
	groupSvc := NewGroupService(store, jwtManager, hub)

	interceptors := connect.WithInterceptors(middleware.RequireAuth(jwtManager,
		apiconnect.GroupServiceCreateGroupProcedure,
		apiconnect.GroupServiceJoinGroupProcedure,
	))

	mux := http.NewServeMux()
	mux.Handle(apiconnect.NewGroupServiceHandler(groupSvc, interceptors))
	mux.Handle(apiconnect.NewExpenseServiceHandler(NewExpenseService(store, hub), interceptors))
	mux.Handle(apiconnect.NewBalanceServiceHandler(NewBalanceService(store, hub), interceptors))

	server := httptest.NewServer(mux)
	t.Cleanup(func() {
		server.Close()
		store.Close()
	})

	return &testEnv{
		groups:   apiconnect.NewGroupServiceClient(server.Client(), server.URL),
		expenses: apiconnect.NewExpenseServiceClient(server.Client(), server.URL),
		balances: apiconnect.NewBalanceServiceClient(server.Client(), server.URL),
		groupSvc: groupSvc,
		hub:      hub,
	}
}

// withToken wraps msg in a request carrying the session's bearer token.
func withToken[T any](s session, msg *T) *connect.Request[T] {
	req := connect.NewRequest(msg)
	req.Header().Set("Authorization", "Bearer "+s.token)
	return req
}

func (e *testEnv) createGroup(t *testing.T, name, nickname string) session {
	t.Helper()
	resp, err := e.groups.CreateGroup(context.Background(), connect.NewRequest(&apiv1.CreateGroupRequest{
		Name:     name,
		Nickname: nickname,
	}))
	require.NoError(t, err, "CreateGroup failed")
	return session{token: resp.Msg.Token, group: resp.Msg.Group, participant: resp.Msg.Participant}
}

func (e *testEnv) join(t *testing.T, shareCode, nickname string) session {
	t.Helper()
	resp, err := e.groups.JoinGroup(context.Background(), connect.NewRequest(&apiv1.JoinGroupRequest{
		ShareCode: shareCode,
		Nickname:  nickname,
	}))
	require.NoError(t, err, "JoinGroup failed")
	return session{token: resp.Msg.Token, group: resp.Msg.Group, participant: resp.Msg.Participant}
}

// trip creates a group with Alice as creator and Bob and Charlie joined.
func (e *testEnv) trip(t *testing.T) (alice, bob, charlie session) {
	t.Helper()
	alice = e.createGroup(t, "Lisbon", "Alice")
	bob = e.join(t, alice.group.ShareCode, "Bob")
	charlie = e.join(t, alice.group.ShareCode, "Charlie")
	return alice, bob, charlie
}

func (e *testEnv) addEqualExpense(t *testing.T, s session, payer session, amount string, among ...session) *apiv1.Expense {
	t.Helper()
	ids := make([]string, len(among))
	for i, m := range among {
		ids[i] = m.participant.ID
	}
	resp, err := e.expenses.AddExpense(context.Background(), withToken(s, &apiv1.AddExpenseRequest{
		PaidByID:      payer.participant.ID,
		Description:   "Expense " + amount,
		Amount:        decimal.RequireFromString(amount),
		SplitAmongIDs: ids,
	}))
	require.NoError(t, err, "AddExpense failed")
	return resp.Msg.Expense
}

func requireCode(t *testing.T, err error, code connect.Code) {
	t.Helper()
	require.Error(t, err)
	require.Equal(t, code, connect.CodeOf(err), "unexpected error: %v", err)
}
