// Package apiv1 defines the request and response messages of the DivvyUp API.
// Messages travel as JSON; money is encoded as a decimal string.
package apiv1

import "github.com/shopspring/decimal"

type Group struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	ShareCode string `json:"share_code"`
	CreatedAt int64  `json:"created_at"`
}

type Participant struct {
	ID        string `json:"id"`
	GroupID   string `json:"group_id"`
	Nickname  string `json:"nickname"`
	IsCreator bool   `json:"is_creator"`
	IsAdmin   bool   `json:"is_admin"`
	AvatarURL string `json:"avatar_url,omitempty"`
	CreatedAt int64  `json:"created_at"`
}

type Split struct {
	ID            string          `json:"id"`
	ParticipantID string          `json:"participant_id"`
	ShareAmount   decimal.Decimal `json:"share_amount"`
}

type Expense struct {
	ID             string          `json:"id"`
	GroupID        string          `json:"group_id"`
	PaidByID       string          `json:"paid_by_id"`
	PaidByNickname string          `json:"paid_by_nickname,omitempty"`
	Description    string          `json:"description"`
	Amount         decimal.Decimal `json:"amount"`
	CreatedAt      int64           `json:"created_at"`
	Splits         []*Split        `json:"splits"`
}

// Share is an explicit, possibly unequal, portion of an expense.
type Share struct {
	ParticipantID string          `json:"participant_id" validate:"required"`
	Amount        decimal.Decimal `json:"amount"`
}

// Balance is one participant's position across all expenses.
type Balance struct {
	ParticipantID string          `json:"participant_id"`
	Nickname      string          `json:"nickname"`
	TotalPaidOut  decimal.Decimal `json:"total_paid_out"`
	TotalDebt     decimal.Decimal `json:"total_debt"`
	NetBalance    decimal.Decimal `json:"net_balance"`
}

// Transfer is one payment in the settle-up plan.
// Direction is "pays", "receives" or "none" relative to the caller.
type Transfer struct {
	FromID    string          `json:"from_id"`
	FromName  string          `json:"from_name"`
	ToID      string          `json:"to_id"`
	ToName    string          `json:"to_name"`
	Amount    decimal.Decimal `json:"amount"`
	Direction string          `json:"direction"`
}

type Settlement struct {
	GroupID        string          `json:"group_id"`
	Balances       []*Balance      `json:"balances"`
	Transfers      []*Transfer     `json:"transfers"`
	TotalSpent     decimal.Decimal `json:"total_spent"`
	TotalToPay     decimal.Decimal `json:"total_to_pay"`
	TotalToReceive decimal.Decimal `json:"total_to_receive"`
	Settled        bool            `json:"settled"`
	ComputedAt     int64           `json:"computed_at"`
}

// GroupService

type CreateGroupRequest struct {
	Name      string `json:"name" validate:"required,max=100"`
	Nickname  string `json:"nickname" validate:"required,max=50"`
	AvatarURL string `json:"avatar_url,omitempty"`
}

type CreateGroupResponse struct {
	Group       *Group       `json:"group"`
	Participant *Participant `json:"participant"`
	Token       string       `json:"token"`
}

type JoinGroupRequest struct {
	ShareCode string `json:"share_code" validate:"required,len=6,alphanum"`
	Nickname  string `json:"nickname" validate:"required,max=50"`
	AvatarURL string `json:"avatar_url,omitempty"`
}

type JoinGroupResponse struct {
	Group       *Group       `json:"group"`
	Participant *Participant `json:"participant"`
	Token       string       `json:"token"`
}

type GetGroupDetailsRequest struct{}

type GetGroupDetailsResponse struct {
	Group        *Group         `json:"group"`
	Participants []*Participant `json:"participants"`
	Expenses     []*Expense     `json:"expenses"`
}

type AddParticipantRequest struct {
	Nickname string `json:"nickname" validate:"required,max=50"`
}

type AddParticipantResponse struct {
	Participant *Participant `json:"participant"`
}

type RemoveParticipantRequest struct {
	ParticipantID string `json:"participant_id" validate:"required"`
}

type RemoveParticipantResponse struct{}

type ToggleAdminRequest struct {
	ParticipantID string `json:"participant_id" validate:"required"`
}

type ToggleAdminResponse struct {
	Participant *Participant `json:"participant"`
}

// ExpenseService

// AddExpenseRequest splits Amount equally among SplitAmongIDs, or uses
// Shares verbatim. Exactly one of the two must be set.
type AddExpenseRequest struct {
	PaidByID      string          `json:"paid_by_id" validate:"required"`
	Description   string          `json:"description" validate:"required,max=200"`
	Amount        decimal.Decimal `json:"amount"`
	SplitAmongIDs []string        `json:"split_among_ids,omitempty" validate:"omitempty,unique,dive,required"`
	Shares        []*Share        `json:"shares,omitempty" validate:"omitempty,dive,required"`
}

type AddExpenseResponse struct {
	Expense *Expense `json:"expense"`
}

type UpdateExpenseRequest struct {
	ExpenseID     string          `json:"expense_id" validate:"required"`
	PaidByID      string          `json:"paid_by_id" validate:"required"`
	Description   string          `json:"description" validate:"required,max=200"`
	Amount        decimal.Decimal `json:"amount"`
	SplitAmongIDs []string        `json:"split_among_ids,omitempty" validate:"omitempty,unique,dive,required"`
	Shares        []*Share        `json:"shares,omitempty" validate:"omitempty,dive,required"`
}

type UpdateExpenseResponse struct {
	Expense *Expense `json:"expense"`
}

type DeleteExpenseRequest struct {
	ExpenseID string `json:"expense_id" validate:"required"`
}

type DeleteExpenseResponse struct{}

type ListExpensesRequest struct{}

type ListExpensesResponse struct {
	Expenses []*Expense `json:"expenses"`
}

// BalanceService

type GetSettlementRequest struct{}

type GetSettlementResponse struct {
	Settlement *Settlement `json:"settlement"`
}

type WatchSettlementRequest struct{}

type WatchSettlementResponse struct {
	Settlement *Settlement `json:"settlement"`
}
