package withdrawal

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"MonkeyStarApi/internal/config"
	"MonkeyStarApi/internal/ledger"
	"MonkeyStarApi/internal/models"
	"MonkeyStarApi/internal/referral"
	"MonkeyStarApi/internal/store/memstore"
)

func testConfig() *config.Config {
	return &config.Config{
		WithdrawalAmounts:       []float64{15, 25, 50, 100},
		ActiveReferralThreshold: 3,
	}
}

type fixture struct {
	st   *memstore.Store
	gate *Gate
}

func newFixture() *fixture {
	st := memstore.New()
	cfg := testConfig()
	led := ledger.New(st)
	return &fixture{st: st, gate: New(led, referral.New(st, led, cfg), cfg)}
}

// seed creates account 1 with the given balance and activeReferrals invitees
// that each hold a confirmed sponsor subscription.
func (f *fixture) seed(t *testing.T, balance float64, activeReferrals int) {
	t.Helper()
	ctx := context.Background()

	err := f.st.UpsertAccount(ctx, &models.Account{
		ID:       1,
		Username: "alice",
		Balance:  decimal.NewFromFloat(balance),
	})
	if err != nil {
		t.Fatal(err)
	}

	referrerID := int64(1)
	for i := 0; i < activeReferrals; i++ {
		id := int64(100 + i)
		err := f.st.UpsertAccount(ctx, &models.Account{
			ID:         id,
			Username:   "invitee",
			ReferrerID: &referrerID,
		})
		if err != nil {
			t.Fatal(err)
		}
		if err := f.st.SetSubscriptionStatus(ctx, id, 1, true); err != nil {
			t.Fatal(err)
		}
	}
}

func TestCanWithdraw(t *testing.T) {
	tests := []struct {
		name            string
		balance         float64
		activeReferrals int
		amount          float64
		want            bool
	}{
		{"all conditions met", 30, 3, 25, true},
		{"amount not a tier", 30, 3, 20, false},
		{"balance too low", 20, 3, 25, false},
		{"too few active referrals", 30, 2, 25, false},
		{"rich but no referrals", 1000, 0, 100, false},
		{"referrals but broke", 5, 5, 15, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			f.seed(t, tt.balance, tt.activeReferrals)

			got, err := f.gate.CanWithdraw(context.Background(), 1, decimal.NewFromFloat(tt.amount))
			if err != nil {
				t.Fatal(err)
			}
			if got != tt.want {
				t.Errorf("CanWithdraw = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRequestCreatesPendingWithdrawal(t *testing.T) {
	f := newFixture()
	f.seed(t, 30, 3)
	ctx := context.Background()

	w, err := f.gate.Request(ctx, 1, decimal.NewFromInt(25))
	if err != nil {
		t.Fatal(err)
	}
	if w.Status != models.WithdrawalStatusPending {
		t.Errorf("status = %s, want pending", w.Status)
	}
	if !w.Amount.Equal(decimal.NewFromInt(25)) {
		t.Errorf("amount = %s, want 25", w.Amount)
	}

	account, err := f.st.GetAccount(ctx, 1)
	if err != nil {
		t.Fatal(err)
	}
	if !account.Balance.Equal(decimal.NewFromInt(5)) {
		t.Errorf("balance = %s, want 5", account.Balance)
	}

	transactions, err := f.st.ListTransactions(ctx, 1)
	if err != nil {
		t.Fatal(err)
	}
	if len(transactions) != 1 {
		t.Fatalf("got %d transactions, want 1", len(transactions))
	}
	if transactions[0].Kind != models.TransactionWithdrawal {
		t.Errorf("kind = %s, want withdrawal", transactions[0].Kind)
	}
	if !transactions[0].Amount.Equal(decimal.NewFromInt(-25)) {
		t.Errorf("amount = %s, want -25", transactions[0].Amount)
	}

	if rows := f.st.Withdrawals(); len(rows) != 1 {
		t.Errorf("got %d withdrawal rows, want 1", len(rows))
	}
}

func TestRequestRefusals(t *testing.T) {
	tests := []struct {
		name            string
		balance         float64
		activeReferrals int
		amount          float64
		wantErr         error
	}{
		{"amount not a tier", 30, 3, 20, ErrAmountNotAllowed},
		{"too few active referrals", 30, 2, 25, ErrNotEnoughReferrals},
		{"balance too low", 20, 3, 25, ledger.ErrInsufficientFunds},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			f.seed(t, tt.balance, tt.activeReferrals)
			ctx := context.Background()

			_, err := f.gate.Request(ctx, 1, decimal.NewFromFloat(tt.amount))
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("err = %v, want %v", err, tt.wantErr)
			}

			// A refused request must leave no trace.
			account, err := f.st.GetAccount(ctx, 1)
			if err != nil {
				t.Fatal(err)
			}
			if !account.Balance.Equal(decimal.NewFromFloat(tt.balance)) {
				t.Errorf("balance = %s, want unchanged %v", account.Balance, tt.balance)
			}
			if rows := f.st.Withdrawals(); len(rows) != 0 {
				t.Errorf("got %d withdrawal rows, want none", len(rows))
			}
		})
	}
}

func TestRequestRollsBackDebitOnRowFailure(t *testing.T) {
	f := newFixture()
	f.seed(t, 30, 3)
	ctx := context.Background()

	f.st.CreateWithdrawalErr = errors.New("insert failed")
	if _, err := f.gate.Request(ctx, 1, decimal.NewFromInt(25)); err == nil {
		t.Fatal("expected row failure to surface")
	}
	f.st.CreateWithdrawalErr = nil

	account, err := f.st.GetAccount(ctx, 1)
	if err != nil {
		t.Fatal(err)
	}
	if !account.Balance.Equal(decimal.NewFromInt(30)) {
		t.Errorf("balance = %s, want rolled back 30", account.Balance)
	}

	transactions, err := f.st.ListTransactions(ctx, 1)
	if err != nil {
		t.Fatal(err)
	}
	if len(transactions) != 0 {
		t.Errorf("got %d transactions, want none", len(transactions))
	}
}

func TestEligibility(t *testing.T) {
	f := newFixture()
	f.seed(t, 30, 2)

	e, err := f.gate.Eligibility(context.Background(), 1)
	if err != nil {
		t.Fatal(err)
	}
	if !e.Balance.Equal(decimal.NewFromInt(30)) {
		t.Errorf("balance = %s, want 30", e.Balance)
	}
	if e.TotalReferrals != 2 || e.ActiveReferrals != 2 {
		t.Errorf("referrals = %d/%d, want 2/2", e.ActiveReferrals, e.TotalReferrals)
	}
	if e.RequiredReferrals != 3 {
		t.Errorf("required = %d, want 3", e.RequiredReferrals)
	}
	if len(e.Amounts) != 4 {
		t.Errorf("got %d amounts, want 4", len(e.Amounts))
	}
}
