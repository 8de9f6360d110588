package calculator

import (
	"slices"

	"github.com/shopspring/decimal"
)

// UnknownName labels a transfer side whose participant cannot be resolved.
const UnknownName = "Unknown"

// ParticipantForBalance is the minimal participant information needed for balance calculations.
type ParticipantForBalance struct {
	ID   string
	Name string
}

// ExpenseForBalance represents an expense with the minimal information needed for balance calculations.
type ExpenseForBalance struct {
	PaidByID string
	Amount   decimal.Decimal
	Shares   []Share
}

// MemberBalance represents the balance information for one participant.
type MemberBalance struct {
	ParticipantID string
	Name          string
	TotalPaid     decimal.Decimal // Total amount paid across all expenses
	TotalOwed     decimal.Decimal // Total of this participant's shares
	NetBalance    decimal.Decimal // Positive = owed money, Negative = owes money
}

// Transfer is a payment from a debtor to a creditor that settles debt.
type Transfer struct {
	FromID   string
	FromName string
	ToID     string
	ToName   string
	Amount   decimal.Decimal
}

// ComputeBalances aggregates who paid what and who owes what.
//
// Every participant starts at zero and the result keeps the input order.
// The payer of each expense is credited the full amount and each share is
// debited from its participant. Payers and shares referencing ids outside
// participants are ignored.
func ComputeBalances(participants []ParticipantForBalance, expenses []ExpenseForBalance) []MemberBalance {
	balances := make([]MemberBalance, 0, len(participants))
	index := make(map[string]int, len(participants))
	for _, p := range participants {
		if _, exists := index[p.ID]; exists {
			continue
		}
		index[p.ID] = len(balances)
		balances = append(balances, MemberBalance{ParticipantID: p.ID, Name: p.Name})
	}

	for _, expense := range expenses {
		if i, ok := index[expense.PaidByID]; ok {
			balances[i].TotalPaid = balances[i].TotalPaid.Add(expense.Amount)
		}
		for _, share := range expense.Shares {
			if i, ok := index[share.ParticipantID]; ok {
				balances[i].TotalOwed = balances[i].TotalOwed.Add(share.Amount)
			}
		}
	}

	for i := range balances {
		balances[i].NetBalance = balances[i].TotalPaid.Sub(balances[i].TotalOwed)
	}
	return balances
}

type position struct {
	id     string
	name   string
	amount decimal.Decimal
}

// SimplifyDebts turns net balances into transfers using greedy matching.
//
// Balances are rounded to cents; anything within one cent of zero is
// considered settled. Debtors are ordered most negative first and creditors
// most positive first, with ties keeping the input order. Each step moves
// min(debt, credit) from the current debtor to the current creditor and
// advances whichever side is exhausted. An empty result means everyone is
// settled.
func SimplifyDebts(balances []MemberBalance) []Transfer {
	var debtors, creditors []position
	for _, bal := range balances {
		amount := RoundCents(bal.NetBalance)
		switch {
		case amount.LessThan(Tolerance.Neg()):
			debtors = append(debtors, position{id: bal.ParticipantID, name: bal.Name, amount: amount})
		case amount.GreaterThan(Tolerance):
			creditors = append(creditors, position{id: bal.ParticipantID, name: bal.Name, amount: amount})
		}
	}

	slices.SortStableFunc(debtors, func(a, b position) int {
		return a.amount.Cmp(b.amount)
	})
	slices.SortStableFunc(creditors, func(a, b position) int {
		return b.amount.Cmp(a.amount)
	})

	transfers := []Transfer{}
	i, j := 0, 0
	for i < len(debtors) && j < len(creditors) {
		debtor := &debtors[i]
		creditor := &creditors[j]

		amount := decimal.Min(debtor.amount.Abs(), creditor.amount)
		transfers = append(transfers, Transfer{
			FromID:   debtor.id,
			FromName: displayName(debtor.name),
			ToID:     creditor.id,
			ToName:   displayName(creditor.name),
			Amount:   amount,
		})

		debtor.amount = debtor.amount.Add(amount)
		creditor.amount = creditor.amount.Sub(amount)

		if debtor.amount.Abs().LessThan(Tolerance) {
			i++
		}
		if creditor.amount.LessThan(Tolerance) {
			j++
		}
	}

	return transfers
}

// ComputeSettlement computes balances for the given data and simplifies them
// into the transfers that settle the group.
func ComputeSettlement(participants []ParticipantForBalance, expenses []ExpenseForBalance) []Transfer {
	return SimplifyDebts(ComputeBalances(participants, expenses))
}

func displayName(name string) string {
	if name == "" {
		return UnknownName
	}
	return name
}
