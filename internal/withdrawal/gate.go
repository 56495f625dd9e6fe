// Package withdrawal gates payout requests behind the balance and
// active-referral thresholds, and creates the pending withdrawal row in the
// same unit of work as the ledger debit.
package withdrawal

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"MonkeyStarApi/internal/config"
	"MonkeyStarApi/internal/ledger"
	"MonkeyStarApi/internal/models"
	"MonkeyStarApi/internal/referral"
	"MonkeyStarApi/internal/store"
)

var (
	ErrAmountNotAllowed   = errors.New("withdrawal amount not allowed")
	ErrNotEnoughReferrals = errors.New("not enough active referrals")
)

type Gate struct {
	ledger    *ledger.Ledger
	referrals *referral.Graph
	cfg       *config.Config
}

func New(led *ledger.Ledger, refs *referral.Graph, cfg *config.Config) *Gate {
	return &Gate{ledger: led, referrals: refs, cfg: cfg}
}

func (g *Gate) amountAllowed(amount decimal.Decimal) bool {
	for _, tier := range g.cfg.WithdrawalAmounts {
		if amount.Equal(decimal.NewFromFloat(tier)) {
			return true
		}
	}
	return false
}

// CanWithdraw reports whether a request for amount would pass: the amount is
// an allowed tier, the balance covers it and the account has enough active
// referrals.
func (g *Gate) CanWithdraw(ctx context.Context, accountID int64, amount decimal.Decimal) (bool, error) {
	if !g.amountAllowed(amount) {
		return false, nil
	}

	balance, err := g.ledger.Balance(ctx, accountID)
	if err != nil {
		return false, err
	}
	if balance.LessThan(amount) {
		return false, nil
	}

	_, active, err := g.referrals.Counts(ctx, accountID)
	if err != nil {
		return false, err
	}
	return active >= g.cfg.ActiveReferralThreshold, nil
}

// Request creates the pending withdrawal and debits the account. The row and
// the debit commit together or not at all: a refused debit leaves no
// withdrawal behind.
func (g *Gate) Request(ctx context.Context, accountID int64, amount decimal.Decimal) (*models.Withdrawal, error) {
	// The front-end restricts input to the same tier list; re-validate anyway.
	if !g.amountAllowed(amount) {
		return nil, ErrAmountNotAllowed
	}

	_, active, err := g.referrals.Counts(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if active < g.cfg.ActiveReferralThreshold {
		return nil, ErrNotEnoughReferrals
	}

	var created *models.Withdrawal
	err = g.ledger.WithAccount(ctx, accountID, func(tx store.AccountStore) error {
		w := &models.Withdrawal{
			ID:        uuid.NewString(),
			AccountID: accountID,
			Amount:    amount,
			Status:    models.WithdrawalStatusPending,
			CreatedAt: time.Now(),
		}

		_, err := ledger.Apply(ctx, tx, accountID, amount.Neg(),
			models.TransactionWithdrawal, fmt.Sprintf("Withdrawal #%s", w.ID))
		if err != nil {
			return err
		}

		created, err = tx.CreateWithdrawal(ctx, w)
		return err
	})
	if err != nil {
		return nil, err
	}

	return created, nil
}

// Eligibility is what the front-end shows on the withdrawal screen.
type Eligibility struct {
	Balance           decimal.Decimal
	TotalReferrals    int
	ActiveReferrals   int
	RequiredReferrals int
	Amounts           []float64
}

func (g *Gate) Eligibility(ctx context.Context, accountID int64) (*Eligibility, error) {
	balance, err := g.ledger.Balance(ctx, accountID)
	if err != nil {
		return nil, err
	}

	total, active, err := g.referrals.Counts(ctx, accountID)
	if err != nil {
		return nil, err
	}

	return &Eligibility{
		Balance:           balance,
		TotalReferrals:    total,
		ActiveReferrals:   active,
		RequiredReferrals: g.cfg.ActiveReferralThreshold,
		Amounts:           g.cfg.WithdrawalAmounts,
	}, nil
}
