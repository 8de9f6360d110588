package calculator

import (
	"fmt"
	"math/rand/v2"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	alice   = ParticipantForBalance{ID: "p-alice", Name: "Alice"}
	bob     = ParticipantForBalance{ID: "p-bob", Name: "Bob"}
	charlie = ParticipantForBalance{ID: "p-charlie", Name: "Charlie"}
)

func equalExpense(t *testing.T, payer string, amount string, among ...string) ExpenseForBalance {
	t.Helper()
	shares, err := EqualSplit(d(t, amount), among)
	require.NoError(t, err)
	return ExpenseForBalance{PaidByID: payer, Amount: d(t, amount), Shares: shares}
}

func netByID(balances []MemberBalance) map[string]decimal.Decimal {
	out := make(map[string]decimal.Decimal, len(balances))
	for _, b := range balances {
		out[b.ParticipantID] = b.NetBalance
	}
	return out
}

func transferStrings(transfers []Transfer) []string {
	out := make([]string, len(transfers))
	for i, tr := range transfers {
		out[i] = fmt.Sprintf("%s->%s %s", tr.FromName, tr.ToName, tr.Amount.StringFixed(2))
	}
	return out
}

func TestComputeBalances(t *testing.T) {
	tests := []struct {
		name         string
		participants []ParticipantForBalance
		expenses     func(t *testing.T) []ExpenseForBalance
		want         map[string]string
	}{
		{
			name:         "single payer equal split",
			participants: []ParticipantForBalance{alice, bob, charlie},
			expenses: func(t *testing.T) []ExpenseForBalance {
				return []ExpenseForBalance{equalExpense(t, alice.ID, "120", alice.ID, bob.ID, charlie.ID)}
			},
			want: map[string]string{alice.ID: "80", bob.ID: "-40", charlie.ID: "-40"},
		},
		{
			name:         "two expenses with partial overlap",
			participants: []ParticipantForBalance{alice, bob, charlie},
			expenses: func(t *testing.T) []ExpenseForBalance {
				return []ExpenseForBalance{
					equalExpense(t, alice.ID, "120", alice.ID, bob.ID, charlie.ID),
					equalExpense(t, bob.ID, "30", alice.ID, bob.ID),
				}
			},
			want: map[string]string{alice.ID: "65", bob.ID: "-25", charlie.ID: "-40"},
		},
		{
			name:         "expense without splits credits the payer",
			participants: []ParticipantForBalance{alice, bob},
			expenses: func(t *testing.T) []ExpenseForBalance {
				return []ExpenseForBalance{{PaidByID: alice.ID, Amount: d(t, "50")}}
			},
			want: map[string]string{alice.ID: "50", bob.ID: "0"},
		},
		{
			name:         "unknown payer and split participants are ignored",
			participants: []ParticipantForBalance{alice, bob},
			expenses: func(t *testing.T) []ExpenseForBalance {
				return []ExpenseForBalance{
					equalExpense(t, "p-ghost", "90", alice.ID, bob.ID, "p-ghost"),
					equalExpense(t, alice.ID, "20", alice.ID, "p-ghost"),
				}
			},
			want: map[string]string{alice.ID: "-20", bob.ID: "-30"},
		},
		{
			name:         "unequal shares are honored as given",
			participants: []ParticipantForBalance{alice, bob, charlie},
			expenses: func(t *testing.T) []ExpenseForBalance {
				return []ExpenseForBalance{{
					PaidByID: charlie.ID,
					Amount:   d(t, "100"),
					Shares: []Share{
						{ParticipantID: alice.ID, Amount: d(t, "70")},
						{ParticipantID: bob.ID, Amount: d(t, "25.50")},
						{ParticipantID: charlie.ID, Amount: d(t, "4.50")},
					},
				}}
			},
			want: map[string]string{alice.ID: "-70", bob.ID: "-25.5", charlie.ID: "95.5"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			balances := ComputeBalances(tt.participants, tt.expenses(t))
			require.Len(t, balances, len(tt.participants))
			for i, p := range tt.participants {
				assert.Equal(t, p.ID, balances[i].ParticipantID, "balances keep participant order")
			}
			got := netByID(balances)
			for id, want := range tt.want {
				assertAmount(t, want, RoundCents(got[id]), id)
			}
		})
	}
}

func TestComputeBalances_TotalsPaidAndOwed(t *testing.T) {
	balances := ComputeBalances(
		[]ParticipantForBalance{alice, bob},
		[]ExpenseForBalance{
			equalExpense(t, alice.ID, "60", alice.ID, bob.ID),
			equalExpense(t, bob.ID, "10", bob.ID),
		},
	)

	assertAmount(t, "60", balances[0].TotalPaid)
	assertAmount(t, "30", balances[0].TotalOwed)
	assertAmount(t, "10", balances[1].TotalPaid)
	assertAmount(t, "40", balances[1].TotalOwed)
}

func TestComputeBalances_DuplicateParticipantCountedOnce(t *testing.T) {
	balances := ComputeBalances(
		[]ParticipantForBalance{alice, alice, bob},
		[]ExpenseForBalance{equalExpense(t, alice.ID, "10", alice.ID, bob.ID)},
	)
	require.Len(t, balances, 2)
	assertAmount(t, "5", balances[0].NetBalance)
}

func TestComputeSettlement(t *testing.T) {
	tests := []struct {
		name         string
		participants []ParticipantForBalance
		expenses     func(t *testing.T) []ExpenseForBalance
		want         []string
	}{
		{
			name:         "empty input",
			participants: nil,
			expenses:     func(t *testing.T) []ExpenseForBalance { return nil },
			want:         []string{},
		},
		{
			name:         "single payer equal split",
			participants: []ParticipantForBalance{alice, bob, charlie},
			expenses: func(t *testing.T) []ExpenseForBalance {
				return []ExpenseForBalance{equalExpense(t, alice.ID, "120", alice.ID, bob.ID, charlie.ID)}
			},
			want: []string{"Bob->Alice 40.00", "Charlie->Alice 40.00"},
		},
		{
			name:         "two expenses with partial overlap",
			participants: []ParticipantForBalance{alice, bob, charlie},
			expenses: func(t *testing.T) []ExpenseForBalance {
				return []ExpenseForBalance{
					equalExpense(t, alice.ID, "120", alice.ID, bob.ID, charlie.ID),
					equalExpense(t, bob.ID, "30", alice.ID, bob.ID),
				}
			},
			want: []string{"Charlie->Alice 40.00", "Bob->Alice 25.00"},
		},
		{
			name:         "already settled",
			participants: []ParticipantForBalance{alice, bob},
			expenses: func(t *testing.T) []ExpenseForBalance {
				return []ExpenseForBalance{
					equalExpense(t, alice.ID, "40", alice.ID, bob.ID),
					equalExpense(t, bob.ID, "40", alice.ID, bob.ID),
				}
			},
			want: []string{},
		},
		{
			name:         "one cent differences are treated as settled",
			participants: []ParticipantForBalance{alice, bob},
			expenses: func(t *testing.T) []ExpenseForBalance {
				return []ExpenseForBalance{{
					PaidByID: alice.ID,
					Amount:   d(t, "0.01"),
					Shares:   []Share{{ParticipantID: bob.ID, Amount: d(t, "0.01")}},
				}}
			},
			want: []string{},
		},
		{
			name:         "sub-cent drift does not produce a leftover transfer",
			participants: []ParticipantForBalance{alice, bob, charlie},
			expenses: func(t *testing.T) []ExpenseForBalance {
				return []ExpenseForBalance{equalExpense(t, alice.ID, "100", alice.ID, bob.ID, charlie.ID)}
			},
			want: []string{"Bob->Alice 33.33", "Charlie->Alice 33.33"},
		},
		{
			name:         "one debtor pays several creditors largest first",
			participants: []ParticipantForBalance{alice, bob, charlie},
			expenses: func(t *testing.T) []ExpenseForBalance {
				return []ExpenseForBalance{
					{PaidByID: alice.ID, Amount: d(t, "30"), Shares: []Share{{ParticipantID: charlie.ID, Amount: d(t, "30")}}},
					{PaidByID: bob.ID, Amount: d(t, "50"), Shares: []Share{{ParticipantID: charlie.ID, Amount: d(t, "50")}}},
				}
			},
			want: []string{"Charlie->Bob 50.00", "Charlie->Alice 30.00"},
		},
		{
			name:         "equal debts keep participant order",
			participants: []ParticipantForBalance{charlie, bob, alice},
			expenses: func(t *testing.T) []ExpenseForBalance {
				return []ExpenseForBalance{equalExpense(t, alice.ID, "90", alice.ID, bob.ID, charlie.ID)}
			},
			want: []string{"Charlie->Alice 30.00", "Bob->Alice 30.00"},
		},
		{
			name:         "unequal splits",
			participants: []ParticipantForBalance{alice, bob, charlie},
			expenses: func(t *testing.T) []ExpenseForBalance {
				return []ExpenseForBalance{{
					PaidByID: alice.ID,
					Amount:   d(t, "100"),
					Shares: []Share{
						{ParticipantID: alice.ID, Amount: d(t, "10")},
						{ParticipantID: bob.ID, Amount: d(t, "60")},
						{ParticipantID: charlie.ID, Amount: d(t, "30")},
					},
				}}
			},
			want: []string{"Bob->Alice 60.00", "Charlie->Alice 30.00"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			transfers := ComputeSettlement(tt.participants, tt.expenses(t))
			require.NotNil(t, transfers)
			assert.Equal(t, tt.want, transferStrings(transfers))
		})
	}
}

func TestSimplifyDebts_UnknownName(t *testing.T) {
	transfers := SimplifyDebts([]MemberBalance{
		{ParticipantID: "p-1", NetBalance: d(t, "-12.5")},
		{ParticipantID: "p-2", Name: "Bob", NetBalance: d(t, "12.5")},
	})

	require.Len(t, transfers, 1)
	assert.Equal(t, UnknownName, transfers[0].FromName)
	assert.Equal(t, "p-1", transfers[0].FromID)
	assert.Equal(t, "Bob", transfers[0].ToName)
	assertAmount(t, "12.5", transfers[0].Amount)
}

func TestSimplifyDebts_UnbalancedInputStopsAtShorterSide(t *testing.T) {
	// Credits exceed debts when a debtor has been dropped from the group.
	transfers := SimplifyDebts([]MemberBalance{
		{ParticipantID: alice.ID, Name: alice.Name, NetBalance: d(t, "80")},
		{ParticipantID: bob.ID, Name: bob.Name, NetBalance: d(t, "-40")},
	})
	assert.Equal(t, []string{"Bob->Alice 40.00"}, transferStrings(transfers))
}

// randomGroup builds a group whose expense shares are multiples of five cents
// that sum exactly to each expense amount, so no balance lands inside the
// one-cent tolerance.
func randomGroup(r *rand.Rand, people, expenses int) ([]ParticipantForBalance, []ExpenseForBalance) {
	participants := make([]ParticipantForBalance, people)
	for i := range participants {
		participants[i] = ParticipantForBalance{ID: fmt.Sprintf("p-%d", i), Name: fmt.Sprintf("Person %d", i)}
	}

	out := make([]ExpenseForBalance, expenses)
	for e := range out {
		payer := participants[r.IntN(people)].ID
		count := 1 + r.IntN(people)
		perm := r.Perm(people)[:count]

		cents := make([]int64, count)
		var total int64
		for k := range cents {
			cents[k] = 5 * r.Int64N(4000)
			total += cents[k]
		}

		shares := make([]Share, count)
		for k, idx := range perm {
			shares[k] = Share{ParticipantID: participants[idx].ID, Amount: decimal.New(cents[k], -2)}
		}
		out[e] = ExpenseForBalance{PaidByID: payer, Amount: decimal.New(total, -2), Shares: shares}
	}
	return participants, out
}

func TestComputeSettlement_Properties(t *testing.T) {
	r := rand.New(rand.NewPCG(42, 7))

	for run := 0; run < 200; run++ {
		participants, expenses := randomGroup(r, 2+r.IntN(8), r.IntN(25))

		balances := ComputeBalances(participants, expenses)
		sum := decimal.Zero
		for _, b := range balances {
			sum = sum.Add(b.NetBalance)
		}
		require.True(t, IsSettled(sum), "run %d: balances sum to %s", run, sum)

		transfers := SimplifyDebts(balances)
		remaining := netByID(balances)
		for _, tr := range transfers {
			require.NotEqual(t, tr.FromID, tr.ToID, "run %d: self transfer", run)
			require.True(t, tr.Amount.GreaterThanOrEqual(Tolerance), "run %d: transfer below a cent: %s", run, tr.Amount)
			remaining[tr.FromID] = remaining[tr.FromID].Add(tr.Amount)
			remaining[tr.ToID] = remaining[tr.ToID].Sub(tr.Amount)
		}
		for id, left := range remaining {
			require.True(t, IsSettled(left), "run %d: %s left with %s", run, id, left)
		}

		require.Equal(t, transfers, ComputeSettlement(participants, expenses), "run %d: output not deterministic", run)
		require.LessOrEqual(t, len(transfers), max(len(participants)-1, 0), "run %d: too many transfers", run)
	}
}
