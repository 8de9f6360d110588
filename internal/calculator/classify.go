package calculator

import "github.com/shopspring/decimal"

// Direction describes how a transfer relates to a given participant.
type Direction int

const (
	DirectionNone Direction = iota
	DirectionPays
	DirectionReceives
)

func (d Direction) String() string {
	switch d {
	case DirectionPays:
		return "pays"
	case DirectionReceives:
		return "receives"
	default:
		return "none"
	}
}

// Classify reports whether participantID pays, receives or is not involved in t.
func Classify(t Transfer, participantID string) Direction {
	switch participantID {
	case "":
		return DirectionNone
	case t.FromID:
		return DirectionPays
	case t.ToID:
		return DirectionReceives
	default:
		return DirectionNone
	}
}

// Summarize totals what participantID has to pay and to receive across transfers.
func Summarize(transfers []Transfer, participantID string) (toPay, toReceive decimal.Decimal) {
	for _, t := range transfers {
		switch Classify(t, participantID) {
		case DirectionPays:
			toPay = toPay.Add(t.Amount)
		case DirectionReceives:
			toReceive = toReceive.Add(t.Amount)
		}
	}
	return toPay, toReceive
}
