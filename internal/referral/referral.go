// Package referral tracks inviter relationships and pushes referral money
// through the ledger. Credits to a referrer are best-effort: a missing or
// broken referrer never blocks the action that triggered the credit.
package referral

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"MonkeyStarApi/internal/config"
	"MonkeyStarApi/internal/ledger"
	"MonkeyStarApi/internal/models"
	"MonkeyStarApi/internal/store"
	"MonkeyStarApi/pkg/logger"
)

type Graph struct {
	store  store.AccountStore
	ledger *ledger.Ledger
	cfg    *config.Config
}

func New(st store.AccountStore, led *ledger.Ledger, cfg *config.Config) *Graph {
	return &Graph{store: st, ledger: led, cfg: cfg}
}

// LinkAndReward runs after account creation. When the referee carries a
// referrer id and that referrer exists, it records the edge and pays both
// signup bonuses as two independent atomic credits. When the referrer is
// missing, edge and bonuses are skipped silently; the signup itself already
// succeeded.
func (g *Graph) LinkAndReward(ctx context.Context, referee *models.Account) {
	if !referee.HasReferrer() {
		return
	}
	referrerID := *referee.ReferrerID

	if _, err := g.store.GetAccount(ctx, referrerID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			logger.Info("referrer %d of account %d not found, skipping referral bonuses", referrerID, referee.ID)
		} else {
			logger.Error("%v", err)
		}
		return
	}

	err := g.store.CreateReferralEdge(ctx, &models.ReferralEdge{
		ReferrerID: referrerID,
		RefereeID:  referee.ID,
		CreatedAt:  time.Now(),
	})
	if err != nil {
		logger.Error("%v", err)
	}

	referrerReward := decimal.NewFromFloat(g.cfg.ReferralRewardReferrer)
	_, err = g.ledger.Credit(ctx, referrerID, referrerReward,
		models.TransactionReferralBonus, fmt.Sprintf("For inviting %s", referee.Username))
	if err != nil {
		logger.Error("referral bonus for referrer %d dropped: %v", referrerID, err)
	}

	refereeReward := decimal.NewFromFloat(g.cfg.ReferralRewardReferee)
	_, err = g.ledger.Credit(ctx, referee.ID, refereeReward,
		models.TransactionReferralBonus, "For signing up with a referral link")
	if err != nil {
		logger.Error("referral bonus for referee %d dropped: %v", referee.ID, err)
	}
}

// PropagateClickIncome credits the referrer with their percent cut of a
// click reward. Failures are logged and dropped; the click reward itself has
// already been paid.
func (g *Graph) PropagateClickIncome(ctx context.Context, account *models.Account, reward decimal.Decimal) {
	if !account.HasReferrer() {
		return
	}

	income := reward.
		Mul(decimal.NewFromInt(g.cfg.ClickReferralPercent)).
		Div(decimal.NewFromInt(100)).
		Round(2)
	if !income.IsPositive() {
		return
	}

	_, err := g.ledger.Credit(ctx, *account.ReferrerID, income,
		models.TransactionReferralIncome,
		fmt.Sprintf("%d%% of %s's click reward", g.cfg.ClickReferralPercent, account.Username))
	if err != nil {
		logger.Error("referral income for referrer %d dropped: %v", *account.ReferrerID, err)
	}
}

// Counts returns (totalInvited, activeInvited) over direct invitees only.
// An invitee is active when at least one of its sponsor subscriptions is
// confirmed.
func (g *Graph) Counts(ctx context.Context, accountID int64) (int, int, error) {
	invitees, err := g.store.ListAccountsByReferrer(ctx, accountID)
	if err != nil {
		return 0, 0, logger.WrapError(err, "")
	}

	active := 0
	for _, invitee := range invitees {
		subs, err := g.store.GetSubscriptionStatus(ctx, invitee.ID)
		if err != nil {
			return 0, 0, logger.WrapError(err, "")
		}
		for _, sub := range subs {
			if sub.IsSubscribed {
				active++
				break
			}
		}
	}

	return len(invitees), active, nil
}
