package service

import (
	"context"
	"log/slog"
	"time"

	"connectrpc.com/connect"
	"github.com/shopspring/decimal"

	"github.com/divvyup/divvyup/internal/calculator"
	"github.com/divvyup/divvyup/internal/metrics"
	"github.com/divvyup/divvyup/internal/models"
	"github.com/divvyup/divvyup/internal/notify"
	"github.com/divvyup/divvyup/internal/storage"
	apiv1 "github.com/divvyup/divvyup/pkg/api/v1"
	"github.com/divvyup/divvyup/pkg/api/v1/apiconnect"
)

// BalanceService implements the Connect BalanceService.
type BalanceService struct {
	apiconnect.UnimplementedBalanceServiceHandler
	store storage.Store
	hub   *notify.Hub
}

// NewBalanceService creates a new BalanceService.
func NewBalanceService(store storage.Store, hub *notify.Hub) *BalanceService {
	return &BalanceService{store: store, hub: hub}
}

// GetSettlement computes who pays whom to settle the caller's group.
func (s *BalanceService) GetSettlement(ctx context.Context, req *connect.Request[apiv1.GetSettlementRequest]) (*connect.Response[apiv1.GetSettlementResponse], error) {
	caller, err := currentParticipant(ctx, s.store)
	if err != nil {
		return nil, err
	}
	slog.Info("GetSettlement request received", "group_id", caller.GroupID)

	settlement, err := s.settlement(ctx, caller)
	if err != nil {
		return nil, err
	}

	slog.Info("GetSettlement successful",
		"group_id", caller.GroupID,
		"transfers_count", len(settlement.Transfers),
		"settled", settlement.Settled,
	)

	return connect.NewResponse(&apiv1.GetSettlementResponse{Settlement: settlement}), nil
}

// WatchSettlement streams a settlement now and again after every change to
// the caller's group, until the client goes away.
func (s *BalanceService) WatchSettlement(ctx context.Context, req *connect.Request[apiv1.WatchSettlementRequest], stream *connect.ServerStream[apiv1.WatchSettlementResponse]) error {
	caller, err := currentParticipant(ctx, s.store)
	if err != nil {
		return err
	}
	changes, cancel := s.hub.Subscribe(caller.GroupID)
	defer cancel()

	slog.Info("WatchSettlement started",
		"group_id", caller.GroupID,
		"participant_id", caller.ID,
		"watchers", s.hub.Subscribers(caller.GroupID),
	)

	sent := 0
	for {
		settlement, err := s.settlement(ctx, caller)
		if err != nil {
			return err
		}
		if err := stream.Send(&apiv1.WatchSettlementResponse{Settlement: settlement}); err != nil {
			slog.Debug("WatchSettlement send failed", "participant_id", caller.ID, "error", err)
			return err
		}
		sent++

		select {
		case <-ctx.Done():
			slog.Info("WatchSettlement ended", "participant_id", caller.ID, "sent", sent)
			return nil
		case <-changes:
		}

		// The caller may have been removed by the change.
		if caller, err = currentParticipant(ctx, s.store); err != nil {
			return err
		}
	}
}

func (s *BalanceService) settlement(ctx context.Context, caller *models.Participant) (*apiv1.Settlement, error) {
	participants, err := s.store.ListParticipants(ctx, caller.GroupID)
	if err != nil {
		return nil, storeError(err)
	}
	expenses, err := s.store.ListExpensesByGroup(ctx, caller.GroupID)
	if err != nil {
		return nil, storeError(err)
	}

	start := time.Now()
	people, items := balanceInputs(participants, expenses)
	balances := calculator.ComputeBalances(people, items)
	transfers := calculator.SimplifyDebts(balances)
	metrics.ObserveSettlement(len(transfers), time.Since(start))

	totalSpent := decimal.Zero
	for _, e := range expenses {
		totalSpent = totalSpent.Add(e.Amount)
	}
	toPay, toReceive := calculator.Summarize(transfers, caller.ID)

	out := &apiv1.Settlement{
		GroupID:        caller.GroupID,
		Balances:       make([]*apiv1.Balance, len(balances)),
		Transfers:      make([]*apiv1.Transfer, len(transfers)),
		TotalSpent:     calculator.RoundCents(totalSpent),
		TotalToPay:     toPay,
		TotalToReceive: toReceive,
		Settled:        len(transfers) == 0,
		ComputedAt:     time.Now().Unix(),
	}
	for i, b := range balances {
		out.Balances[i] = toAPIBalance(b)
	}
	for i, t := range transfers {
		out.Transfers[i] = toAPITransfer(t, caller.ID)
	}
	return out, nil
}
