package service

import (
	"context"
	"log/slog"

	"connectrpc.com/connect"
	"github.com/shopspring/decimal"

	"github.com/divvyup/divvyup/internal/calculator"
	"github.com/divvyup/divvyup/internal/models"
	"github.com/divvyup/divvyup/internal/notify"
	"github.com/divvyup/divvyup/internal/storage"
	apiv1 "github.com/divvyup/divvyup/pkg/api/v1"
	"github.com/divvyup/divvyup/pkg/api/v1/apiconnect"
)

// ExpenseService implements the Connect ExpenseService.
type ExpenseService struct {
	apiconnect.UnimplementedExpenseServiceHandler
	store storage.Store
	hub   *notify.Hub
}

// NewExpenseService creates a new ExpenseService.
func NewExpenseService(store storage.Store, hub *notify.Hub) *ExpenseService {
	return &ExpenseService{store: store, hub: hub}
}

// expenseInput is the part of an expense a caller controls.
type expenseInput struct {
	paidByID      string
	amount        decimal.Decimal
	splitAmongIDs []string
	shares        []*apiv1.Share
}

// AddExpense records a new expense in the caller's group.
func (s *ExpenseService) AddExpense(ctx context.Context, req *connect.Request[apiv1.AddExpenseRequest]) (*connect.Response[apiv1.AddExpenseResponse], error) {
	caller, err := currentParticipant(ctx, s.store)
	if err != nil {
		return nil, err
	}
	slog.Info("AddExpense request received",
		"group_id", caller.GroupID,
		"paid_by_id", req.Msg.PaidByID,
		"amount", req.Msg.Amount.String(),
	)

	if err := validateRequest(req.Msg); err != nil {
		return nil, err
	}

	participants, err := s.store.ListParticipants(ctx, caller.GroupID)
	if err != nil {
		return nil, storeError(err)
	}
	splits, err := buildSplits(participants, expenseInput{
		paidByID:      req.Msg.PaidByID,
		amount:        req.Msg.Amount,
		splitAmongIDs: req.Msg.SplitAmongIDs,
		shares:        req.Msg.Shares,
	})
	if err != nil {
		return nil, err
	}

	expense := &models.Expense{
		GroupID:     caller.GroupID,
		PaidByID:    req.Msg.PaidByID,
		Description: req.Msg.Description,
		Amount:      req.Msg.Amount,
		Splits:      splits,
	}
	if err := s.store.CreateExpense(ctx, expense); err != nil {
		slog.Error("AddExpense failed", "group_id", caller.GroupID, "error", err)
		return nil, storeError(err)
	}
	s.hub.Publish(caller.GroupID)

	slog.Info("Expense added", "expense_id", expense.ID, "splits_count", len(splits))

	return connect.NewResponse(&apiv1.AddExpenseResponse{
		Expense: toAPIExpense(expense, nicknamesByID(participants)),
	}), nil
}

// UpdateExpense replaces an expense's payer, description, amount and shares.
func (s *ExpenseService) UpdateExpense(ctx context.Context, req *connect.Request[apiv1.UpdateExpenseRequest]) (*connect.Response[apiv1.UpdateExpenseResponse], error) {
	caller, err := currentParticipant(ctx, s.store)
	if err != nil {
		return nil, err
	}
	slog.Info("UpdateExpense request received", "group_id", caller.GroupID, "expense_id", req.Msg.ExpenseID)

	if err := validateRequest(req.Msg); err != nil {
		return nil, err
	}

	expense, err := s.groupExpense(ctx, caller.GroupID, req.Msg.ExpenseID)
	if err != nil {
		return nil, err
	}

	participants, err := s.store.ListParticipants(ctx, caller.GroupID)
	if err != nil {
		return nil, storeError(err)
	}
	splits, err := buildSplits(participants, expenseInput{
		paidByID:      req.Msg.PaidByID,
		amount:        req.Msg.Amount,
		splitAmongIDs: req.Msg.SplitAmongIDs,
		shares:        req.Msg.Shares,
	})
	if err != nil {
		return nil, err
	}

	expense.PaidByID = req.Msg.PaidByID
	expense.Description = req.Msg.Description
	expense.Amount = req.Msg.Amount
	expense.Splits = splits
	if err := s.store.UpdateExpense(ctx, expense); err != nil {
		slog.Error("UpdateExpense failed", "expense_id", expense.ID, "error", err)
		return nil, storeError(err)
	}
	s.hub.Publish(caller.GroupID)

	slog.Info("Expense updated", "expense_id", expense.ID)

	return connect.NewResponse(&apiv1.UpdateExpenseResponse{
		Expense: toAPIExpense(expense, nicknamesByID(participants)),
	}), nil
}

// DeleteExpense removes an expense and its splits.
func (s *ExpenseService) DeleteExpense(ctx context.Context, req *connect.Request[apiv1.DeleteExpenseRequest]) (*connect.Response[apiv1.DeleteExpenseResponse], error) {
	caller, err := currentParticipant(ctx, s.store)
	if err != nil {
		return nil, err
	}
	slog.Info("DeleteExpense request received", "group_id", caller.GroupID, "expense_id", req.Msg.ExpenseID)

	if err := validateRequest(req.Msg); err != nil {
		return nil, err
	}

	expense, err := s.groupExpense(ctx, caller.GroupID, req.Msg.ExpenseID)
	if err != nil {
		return nil, err
	}
	if err := s.store.DeleteExpense(ctx, expense.ID); err != nil {
		slog.Error("DeleteExpense failed", "expense_id", expense.ID, "error", err)
		return nil, storeError(err)
	}
	s.hub.Publish(caller.GroupID)

	slog.Info("Expense deleted", "expense_id", expense.ID)

	return connect.NewResponse(&apiv1.DeleteExpenseResponse{}), nil
}

// ListExpenses returns the caller's group expenses, newest first.
func (s *ExpenseService) ListExpenses(ctx context.Context, req *connect.Request[apiv1.ListExpensesRequest]) (*connect.Response[apiv1.ListExpensesResponse], error) {
	caller, err := currentParticipant(ctx, s.store)
	if err != nil {
		return nil, err
	}

	participants, err := s.store.ListParticipants(ctx, caller.GroupID)
	if err != nil {
		return nil, storeError(err)
	}
	expenses, err := s.store.ListExpensesByGroup(ctx, caller.GroupID)
	if err != nil {
		return nil, storeError(err)
	}

	slog.Info("ListExpenses successful", "group_id", caller.GroupID, "count", len(expenses))

	return connect.NewResponse(&apiv1.ListExpensesResponse{
		Expenses: toAPIExpenses(expenses, participants),
	}), nil
}

// groupExpense loads an expense and checks it belongs to groupID.
func (s *ExpenseService) groupExpense(ctx context.Context, groupID, expenseID string) (*models.Expense, error) {
	expense, err := s.store.GetExpense(ctx, expenseID)
	if err != nil {
		return nil, storeError(err)
	}
	if expense.GroupID != groupID {
		return nil, storeError(storage.ErrNotFound)
	}
	return expense, nil
}

// buildSplits turns an equal-split id list or explicit shares into splits.
// Payer and every share holder must be members of the group.
func buildSplits(participants []*models.Participant, in expenseInput) ([]models.Split, error) {
	if in.amount.IsNegative() {
		return nil, invalidArgument("amount cannot be negative")
	}
	hasIDs, hasShares := len(in.splitAmongIDs) > 0, len(in.shares) > 0
	if hasIDs == hasShares {
		return nil, invalidArgument("exactly one of split_among_ids or shares must be set")
	}

	members := make(map[string]bool, len(participants))
	for _, p := range participants {
		members[p.ID] = true
	}
	if !members[in.paidByID] {
		return nil, invalidArgument("payer %s is not in the group", in.paidByID)
	}

	var shares []calculator.Share
	if hasIDs {
		var err error
		shares, err = calculator.EqualSplit(in.amount, in.splitAmongIDs)
		if err != nil {
			return nil, connect.NewError(connect.CodeInvalidArgument, err)
		}
	} else {
		seen := make(map[string]bool, len(in.shares))
		for _, sh := range in.shares {
			if sh.Amount.IsNegative() {
				return nil, invalidArgument("share for %s cannot be negative", sh.ParticipantID)
			}
			if seen[sh.ParticipantID] {
				return nil, invalidArgument("duplicate share for %s", sh.ParticipantID)
			}
			seen[sh.ParticipantID] = true
			shares = append(shares, calculator.Share{ParticipantID: sh.ParticipantID, Amount: sh.Amount})
		}
		if !calculator.SharesMatch(in.amount, shares) {
			return nil, invalidArgument("shares add up to %s, expected %s",
				calculator.SumShares(shares).String(), in.amount.String())
		}
	}

	splits := make([]models.Split, len(shares))
	for i, sh := range shares {
		if !members[sh.ParticipantID] {
			return nil, invalidArgument("participant %s is not in the group", sh.ParticipantID)
		}
		splits[i] = models.Split{ParticipantID: sh.ParticipantID, ShareAmount: sh.Amount}
	}
	return splits, nil
}
