package service

import (
	"github.com/divvyup/divvyup/internal/calculator"
	"github.com/divvyup/divvyup/internal/models"
	apiv1 "github.com/divvyup/divvyup/pkg/api/v1"
)

func toAPIGroup(g *models.Group) *apiv1.Group {
	return &apiv1.Group{
		ID:        g.ID,
		Name:      g.Name,
		ShareCode: g.ShareCode,
		CreatedAt: g.CreatedAt,
	}
}

func toAPIParticipant(p *models.Participant) *apiv1.Participant {
	return &apiv1.Participant{
		ID:        p.ID,
		GroupID:   p.GroupID,
		Nickname:  p.Nickname,
		IsCreator: p.IsCreator,
		IsAdmin:   p.IsAdmin,
		AvatarURL: p.AvatarURL,
		CreatedAt: p.CreatedAt,
	}
}

func toAPIParticipants(participants []*models.Participant) []*apiv1.Participant {
	out := make([]*apiv1.Participant, len(participants))
	for i, p := range participants {
		out[i] = toAPIParticipant(p)
	}
	return out
}

// toAPIExpense converts an expense. nicknames resolves the payer; a payer
// who has left the group has no nickname.
func toAPIExpense(e *models.Expense, nicknames map[string]string) *apiv1.Expense {
	splits := make([]*apiv1.Split, len(e.Splits))
	for i, s := range e.Splits {
		splits[i] = &apiv1.Split{
			ID:            s.ID,
			ParticipantID: s.ParticipantID,
			ShareAmount:   s.ShareAmount,
		}
	}
	return &apiv1.Expense{
		ID:             e.ID,
		GroupID:        e.GroupID,
		PaidByID:       e.PaidByID,
		PaidByNickname: nicknames[e.PaidByID],
		Description:    e.Description,
		Amount:         e.Amount,
		CreatedAt:      e.CreatedAt,
		Splits:         splits,
	}
}

func toAPIExpenses(expenses []*models.Expense, participants []*models.Participant) []*apiv1.Expense {
	nicknames := nicknamesByID(participants)
	out := make([]*apiv1.Expense, len(expenses))
	for i, e := range expenses {
		out[i] = toAPIExpense(e, nicknames)
	}
	return out
}

func nicknamesByID(participants []*models.Participant) map[string]string {
	nicknames := make(map[string]string, len(participants))
	for _, p := range participants {
		nicknames[p.ID] = p.Nickname
	}
	return nicknames
}

// balanceInputs adapts stored rows to the calculator's input types.
func balanceInputs(participants []*models.Participant, expenses []*models.Expense) ([]calculator.ParticipantForBalance, []calculator.ExpenseForBalance) {
	people := make([]calculator.ParticipantForBalance, len(participants))
	for i, p := range participants {
		people[i] = calculator.ParticipantForBalance{ID: p.ID, Name: p.Nickname}
	}

	items := make([]calculator.ExpenseForBalance, len(expenses))
	for i, e := range expenses {
		shares := make([]calculator.Share, len(e.Splits))
		for j, s := range e.Splits {
			shares[j] = calculator.Share{ParticipantID: s.ParticipantID, Amount: s.ShareAmount}
		}
		items[i] = calculator.ExpenseForBalance{PaidByID: e.PaidByID, Amount: e.Amount, Shares: shares}
	}
	return people, items
}

func toAPIBalance(b calculator.MemberBalance) *apiv1.Balance {
	return &apiv1.Balance{
		ParticipantID: b.ParticipantID,
		Nickname:      b.Name,
		TotalPaidOut:  calculator.RoundCents(b.TotalPaid),
		TotalDebt:     calculator.RoundCents(b.TotalOwed),
		NetBalance:    calculator.RoundCents(b.NetBalance),
	}
}

func toAPITransfer(t calculator.Transfer, currentID string) *apiv1.Transfer {
	return &apiv1.Transfer{
		FromID:    t.FromID,
		FromName:  t.FromName,
		ToID:      t.ToID,
		ToName:    t.ToName,
		Amount:    t.Amount,
		Direction: calculator.Classify(t, currentID).String(),
	}
}
