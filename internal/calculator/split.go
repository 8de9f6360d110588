package calculator

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Share is one participant's portion of an expense.
type Share struct {
	ParticipantID string
	Amount        decimal.Decimal
}

// EqualSplit divides amount evenly among the given participants.
// Each share is amount / len(participantIDs); any sub-cent remainder is left
// to the one-cent tolerance applied when balances are simplified.
func EqualSplit(amount decimal.Decimal, participantIDs []string) ([]Share, error) {
	if amount.IsNegative() {
		return nil, fmt.Errorf("amount cannot be negative")
	}
	if len(participantIDs) == 0 {
		return nil, fmt.Errorf("must have at least one participant")
	}

	seen := make(map[string]bool, len(participantIDs))
	for _, id := range participantIDs {
		if seen[id] {
			return nil, fmt.Errorf("duplicate participant %q", id)
		}
		seen[id] = true
	}

	perPerson := amount.Div(decimal.NewFromInt(int64(len(participantIDs))))
	shares := make([]Share, len(participantIDs))
	for i, id := range participantIDs {
		shares[i] = Share{ParticipantID: id, Amount: perPerson}
	}
	return shares, nil
}

// SumShares returns the total of all share amounts.
func SumShares(shares []Share) decimal.Decimal {
	total := decimal.Zero
	for _, s := range shares {
		total = total.Add(s.Amount)
	}
	return total
}

// SharesMatch reports whether shares add up to amount within one cent.
func SharesMatch(amount decimal.Decimal, shares []Share) bool {
	return amount.Sub(SumShares(shares)).Abs().LessThanOrEqual(Tolerance)
}
