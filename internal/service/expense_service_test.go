package service

import (
	"context"
	"testing"

	"connectrpc.com/connect"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apiv1 "github.com/divvyup/divvyup/pkg/api/v1"
)

func TestAddExpense_EqualSplit(t *testing.T) {
	env := setupTestServer(t)
	alice, bob, charlie := env.trip(t)

	expense := env.addEqualExpense(t, bob, alice, "120", alice, bob, charlie)

	assert.NotEmpty(t, expense.ID)
	assert.Equal(t, alice.participant.ID, expense.PaidByID)
	assert.Equal(t, "Alice", expense.PaidByNickname)
	assert.True(t, expense.Amount.Equal(decimal.NewFromInt(120)))
	require.Len(t, expense.Splits, 3)
	for _, split := range expense.Splits {
		assert.Equal(t, "40.00", split.ShareAmount.StringFixed(2))
	}
}

func TestAddExpense_ExplicitShares(t *testing.T) {
	env := setupTestServer(t)
	alice, bob, _ := env.trip(t)

	resp, err := env.expenses.AddExpense(context.Background(), withToken(alice, &apiv1.AddExpenseRequest{
		PaidByID:    alice.participant.ID,
		Description: "Hotel",
		Amount:      decimal.RequireFromString("100"),
		Shares: []*apiv1.Share{
			{ParticipantID: alice.participant.ID, Amount: decimal.RequireFromString("70")},
			{ParticipantID: bob.participant.ID, Amount: decimal.RequireFromString("30")},
		},
	}))
	require.NoError(t, err)

	splits := resp.Msg.Expense.Splits
	require.Len(t, splits, 2)
	assert.Equal(t, bob.participant.ID, splits[1].ParticipantID)
	assert.Equal(t, "30.00", splits[1].ShareAmount.StringFixed(2))
}

func TestAddExpense_Invalid(t *testing.T) {
	env := setupTestServer(t)
	alice, bob, _ := env.trip(t)
	outsider := env.createGroup(t, "Other", "Zed")

	share := func(s session, amount string) *apiv1.Share {
		return &apiv1.Share{ParticipantID: s.participant.ID, Amount: decimal.RequireFromString(amount)}
	}

	tests := []struct {
		name string
		req  *apiv1.AddExpenseRequest
	}{
		{
			name: "missing description",
			req: &apiv1.AddExpenseRequest{
				PaidByID: alice.participant.ID, Amount: decimal.NewFromInt(10),
				SplitAmongIDs: []string{alice.participant.ID},
			},
		},
		{
			name: "negative amount",
			req: &apiv1.AddExpenseRequest{
				PaidByID: alice.participant.ID, Description: "Refund", Amount: decimal.NewFromInt(-10),
				SplitAmongIDs: []string{alice.participant.ID},
			},
		},
		{
			name: "neither ids nor shares",
			req: &apiv1.AddExpenseRequest{
				PaidByID: alice.participant.ID, Description: "Lunch", Amount: decimal.NewFromInt(10),
			},
		},
		{
			name: "both ids and shares",
			req: &apiv1.AddExpenseRequest{
				PaidByID: alice.participant.ID, Description: "Lunch", Amount: decimal.NewFromInt(10),
				SplitAmongIDs: []string{alice.participant.ID},
				Shares:        []*apiv1.Share{share(alice, "10")},
			},
		},
		{
			name: "duplicate split ids",
			req: &apiv1.AddExpenseRequest{
				PaidByID: alice.participant.ID, Description: "Lunch", Amount: decimal.NewFromInt(10),
				SplitAmongIDs: []string{alice.participant.ID, alice.participant.ID},
			},
		},
		{
			name: "shares do not add up",
			req: &apiv1.AddExpenseRequest{
				PaidByID: alice.participant.ID, Description: "Lunch", Amount: decimal.NewFromInt(10),
				Shares: []*apiv1.Share{share(alice, "5"), share(bob, "4.98")},
			},
		},
		{
			name: "negative share",
			req: &apiv1.AddExpenseRequest{
				PaidByID: alice.participant.ID, Description: "Lunch", Amount: decimal.NewFromInt(10),
				Shares: []*apiv1.Share{share(alice, "15"), share(bob, "-5")},
			},
		},
		{
			name: "payer outside the group",
			req: &apiv1.AddExpenseRequest{
				PaidByID: outsider.participant.ID, Description: "Lunch", Amount: decimal.NewFromInt(10),
				SplitAmongIDs: []string{alice.participant.ID},
			},
		},
		{
			name: "share holder outside the group",
			req: &apiv1.AddExpenseRequest{
				PaidByID: alice.participant.ID, Description: "Lunch", Amount: decimal.NewFromInt(10),
				SplitAmongIDs: []string{alice.participant.ID, outsider.participant.ID},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.expenses.AddExpense(context.Background(), withToken(alice, tt.req))
			requireCode(t, err, connect.CodeInvalidArgument)
		})
	}
}

func TestAddExpense_SharesWithinOneCent(t *testing.T) {
	env := setupTestServer(t)
	alice, bob, charlie := env.trip(t)

	_, err := env.expenses.AddExpense(context.Background(), withToken(alice, &apiv1.AddExpenseRequest{
		PaidByID:    alice.participant.ID,
		Description: "Taxi",
		Amount:      decimal.RequireFromString("10"),
		Shares: []*apiv1.Share{
			{ParticipantID: alice.participant.ID, Amount: decimal.RequireFromString("3.33")},
			{ParticipantID: bob.participant.ID, Amount: decimal.RequireFromString("3.33")},
			{ParticipantID: charlie.participant.ID, Amount: decimal.RequireFromString("3.33")},
		},
	}))
	require.NoError(t, err)
}

func TestUpdateExpense(t *testing.T) {
	env := setupTestServer(t)
	alice, bob, charlie := env.trip(t)
	ctx := context.Background()
	expense := env.addEqualExpense(t, alice, alice, "90", alice, bob, charlie)

	resp, err := env.expenses.UpdateExpense(ctx, withToken(bob, &apiv1.UpdateExpenseRequest{
		ExpenseID:     expense.ID,
		PaidByID:      bob.participant.ID,
		Description:   "Dinner (corrected)",
		Amount:        decimal.RequireFromString("60"),
		SplitAmongIDs: []string{alice.participant.ID, bob.participant.ID},
	}))
	require.NoError(t, err)

	updated := resp.Msg.Expense
	assert.Equal(t, expense.ID, updated.ID)
	assert.Equal(t, bob.participant.ID, updated.PaidByID)
	assert.Equal(t, "Dinner (corrected)", updated.Description)
	require.Len(t, updated.Splits, 2)

	list, err := env.expenses.ListExpenses(ctx, withToken(charlie, &apiv1.ListExpensesRequest{}))
	require.NoError(t, err)
	require.Len(t, list.Msg.Expenses, 1)
	assert.Equal(t, "60.00", list.Msg.Expenses[0].Amount.StringFixed(2))
	assert.Len(t, list.Msg.Expenses[0].Splits, 2)

	t.Run("missing expense", func(t *testing.T) {
		_, err := env.expenses.UpdateExpense(ctx, withToken(bob, &apiv1.UpdateExpenseRequest{
			ExpenseID:     "missing",
			PaidByID:      bob.participant.ID,
			Description:   "Nothing",
			Amount:        decimal.RequireFromString("1"),
			SplitAmongIDs: []string{bob.participant.ID},
		}))
		requireCode(t, err, connect.CodeNotFound)
	})
}

func TestDeleteExpense(t *testing.T) {
	env := setupTestServer(t)
	alice, bob, _ := env.trip(t)
	ctx := context.Background()
	expense := env.addEqualExpense(t, alice, alice, "20", alice, bob)

	t.Run("other groups cannot see it", func(t *testing.T) {
		other := env.createGroup(t, "Other", "Zed")
		_, err := env.expenses.DeleteExpense(ctx, withToken(other, &apiv1.DeleteExpenseRequest{ExpenseID: expense.ID}))
		requireCode(t, err, connect.CodeNotFound)
	})

	_, err := env.expenses.DeleteExpense(ctx, withToken(bob, &apiv1.DeleteExpenseRequest{ExpenseID: expense.ID}))
	require.NoError(t, err)

	list, err := env.expenses.ListExpenses(ctx, withToken(alice, &apiv1.ListExpensesRequest{}))
	require.NoError(t, err)
	assert.Empty(t, list.Msg.Expenses)

	_, err = env.expenses.DeleteExpense(ctx, withToken(bob, &apiv1.DeleteExpenseRequest{ExpenseID: expense.ID}))
	requireCode(t, err, connect.CodeNotFound)
}

func TestListExpenses_NewestFirst(t *testing.T) {
	env := setupTestServer(t)
	alice, bob, _ := env.trip(t)

	env.addEqualExpense(t, alice, alice, "10", alice, bob)
	env.addEqualExpense(t, alice, bob, "20", alice, bob)

	list, err := env.expenses.ListExpenses(context.Background(), withToken(alice, &apiv1.ListExpensesRequest{}))
	require.NoError(t, err)
	require.Len(t, list.Msg.Expenses, 2)
	assert.Equal(t, "Expense 20", list.Msg.Expenses[0].Description)
	assert.Equal(t, "Bob", list.Msg.Expenses[0].PaidByNickname)
	assert.Equal(t, "Expense 10", list.Msg.Expenses[1].Description)
}
