package memstore

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"MonkeyStarApi/internal/models"
	"MonkeyStarApi/internal/store"
)

func TestGetAccountNotFound(t *testing.T) {
	st := New()
	_, err := st.GetAccount(context.Background(), 1)
	if !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("err = %v, want store.ErrNotFound", err)
	}
}

func TestAtomicRollsBackEveryWrite(t *testing.T) {
	st := New()
	ctx := context.Background()

	err := st.UpsertAccount(ctx, &models.Account{ID: 1, Username: "alice"})
	if err != nil {
		t.Fatal(err)
	}

	boom := errors.New("boom")
	err = st.Atomic(ctx, func(tx store.AccountStore) error {
		account, err := tx.GetAccount(ctx, 1)
		if err != nil {
			return err
		}
		account.Balance = decimal.NewFromInt(100)
		if err := tx.UpsertAccount(ctx, account); err != nil {
			return err
		}
		if err := tx.AppendTransaction(ctx, &models.Transaction{ID: "t1", AccountID: 1}); err != nil {
			return err
		}
		if err := tx.UpsertAccount(ctx, &models.Account{ID: 2, Username: "bob"}); err != nil {
			return err
		}
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("err = %v, want boom", err)
	}

	account, err := st.GetAccount(ctx, 1)
	if err != nil {
		t.Fatal(err)
	}
	if !account.Balance.IsZero() {
		t.Errorf("balance = %s, want rolled back 0", account.Balance)
	}

	if _, err := st.GetAccount(ctx, 2); !errors.Is(err, store.ErrNotFound) {
		t.Error("account created inside the failed unit should not exist")
	}

	transactions, err := st.ListTransactions(ctx, 1)
	if err != nil {
		t.Fatal(err)
	}
	if len(transactions) != 0 {
		t.Errorf("got %d transactions, want none", len(transactions))
	}
}

func TestAtomicCommits(t *testing.T) {
	st := New()
	ctx := context.Background()

	err := st.Atomic(ctx, func(tx store.AccountStore) error {
		return tx.UpsertAccount(ctx, &models.Account{ID: 1, Username: "alice"})
	})
	if err != nil {
		t.Fatal(err)
	}

	if _, err := st.GetAccount(ctx, 1); err != nil {
		t.Fatalf("committed account missing: %v", err)
	}
}

func TestSetSubscriptionStatusUpserts(t *testing.T) {
	st := New()
	ctx := context.Background()

	if err := st.SetSubscriptionStatus(ctx, 1, 10, true); err != nil {
		t.Fatal(err)
	}
	if err := st.SetSubscriptionStatus(ctx, 1, 10, false); err != nil {
		t.Fatal(err)
	}

	subs, err := st.GetSubscriptionStatus(ctx, 1)
	if err != nil {
		t.Fatal(err)
	}
	if len(subs) != 1 {
		t.Fatalf("got %d subscription rows, want 1", len(subs))
	}
	if subs[0].IsSubscribed {
		t.Error("subscription should have been flipped off")
	}
}

func TestStats(t *testing.T) {
	st := New()
	ctx := context.Background()

	for i := int64(1); i <= 3; i++ {
		err := st.UpsertAccount(ctx, &models.Account{
			ID:           i,
			Username:     "u",
			Balance:      decimal.NewFromInt(10),
			TotalWagered: decimal.NewFromInt(5),
		})
		if err != nil {
			t.Fatal(err)
		}
	}
	_, err := st.CreateWithdrawal(ctx, &models.Withdrawal{
		ID: "w1", AccountID: 1, Amount: decimal.NewFromInt(15), Status: models.WithdrawalStatusPending,
	})
	if err != nil {
		t.Fatal(err)
	}

	stats, err := st.Stats(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if stats.TotalAccounts != 3 {
		t.Errorf("accounts = %d, want 3", stats.TotalAccounts)
	}
	if !stats.TotalBalance.Equal(decimal.NewFromInt(30)) {
		t.Errorf("total balance = %s, want 30", stats.TotalBalance)
	}
	if !stats.TotalWagered.Equal(decimal.NewFromInt(15)) {
		t.Errorf("total wagered = %s, want 15", stats.TotalWagered)
	}
	if stats.PendingWithdrawals != 1 {
		t.Errorf("pending withdrawals = %d, want 1", stats.PendingWithdrawals)
	}
}
