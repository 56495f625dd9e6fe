package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"MonkeyStarApi/internal/ledger"
	"MonkeyStarApi/internal/middleware"
	"MonkeyStarApi/internal/models"
	"MonkeyStarApi/internal/store"
	"MonkeyStarApi/pkg/logger"
)

var errClickCooldown = errors.New("click cooldown active")

type clickResult struct {
	Reward  decimal.Decimal
	Balance decimal.Decimal
	RetryIn time.Duration
}

// Click pays the click reward once per cooldown window and forwards the
// referrer's cut. 429 carries the remaining wait in seconds.
func (s *Service) Click(c *gin.Context) {
	accountID, err := middleware.GetAccountIDFromGinContext(c)
	if err != nil {
		logger.Error("%v", err)
		c.Status(500)
		return
	}

	result, err := s.click(c.Request.Context(), accountID)
	if errors.Is(err, errClickCooldown) {
		c.JSON(429, gin.H{"retry_in": int(result.RetryIn.Seconds())})
		return
	} else if errors.Is(err, store.ErrNotFound) {
		c.JSON(404, gin.H{"error": "Account not found"})
		return
	} else if err != nil {
		logger.Error("%v", err)
		c.Status(500)
		return
	}

	c.JSON(200, gin.H{
		"reward":  result.Reward,
		"balance": result.Balance,
	})
}

func clickCooldownKey(accountID int64) string {
	return fmt.Sprintf("click_cooldown:%d", accountID)
}

func (s *Service) click(ctx context.Context, accountID int64) (*clickResult, error) {
	result := &clickResult{Reward: decimal.NewFromFloat(s.cfg.ClickReward)}

	// Fast path: a live redis key means the cooldown is still running. The
	// durable LastClickAt below stays authoritative when redis misses.
	if s.redis != nil {
		if ttl, err := s.redis.TTL(ctx, clickCooldownKey(accountID)); err == nil && ttl > 0 {
			result.RetryIn = ttl
			return result, errClickCooldown
		}
	}

	var account *models.Account
	err := s.ledger.WithAccount(ctx, accountID, func(tx store.AccountStore) error {
		var err error
		account, err = tx.GetAccount(ctx, accountID)
		if err != nil {
			return err
		}

		now := time.Now()
		if account.LastClickAt != nil {
			elapsed := now.Sub(*account.LastClickAt)
			if elapsed < s.cfg.ClickCooldown {
				result.RetryIn = s.cfg.ClickCooldown - elapsed
				return errClickCooldown
			}
		}

		account.LastClickAt = &now
		if err := tx.UpsertAccount(ctx, account); err != nil {
			return err
		}

		result.Balance, err = ledger.Apply(ctx, tx, accountID, result.Reward,
			models.TransactionClick, "Clicker")
		return err
	})
	if err != nil {
		return result, err
	}

	if s.redis != nil {
		if err := s.redis.SetKey(ctx, clickCooldownKey(accountID), 1, s.cfg.ClickCooldown); err != nil {
			logger.Warn("click cooldown key not cached: %v", err)
		}
	}

	s.graph.PropagateClickIncome(ctx, account, result.Reward)

	return result, nil
}
