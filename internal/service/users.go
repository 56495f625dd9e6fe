package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"MonkeyStarApi/internal/middleware"
	"MonkeyStarApi/internal/models"
	"MonkeyStarApi/internal/store"
	"MonkeyStarApi/pkg/logger"
)

type registerInput struct {
	Username string `json:"username" validate:"max=64"`
}

// Register creates the account on first contact. The referrer id comes from
// the start parameter forwarded by the bot as the "referral" query value and
// is fixed here once and for all; self-referrals are dropped. Repeat calls
// for an existing account are a no-op that returns the current profile.
func (s *Service) Register(c *gin.Context) {
	accountID, err := middleware.GetAccountIDFromGinContext(c)
	if err != nil {
		logger.Error("%v", err)
		c.Status(500)
		return
	}

	var input registerInput
	// The body is optional; the bot may register with no username yet.
	if err := c.ShouldBindJSON(&input); err != nil {
		input.Username = ""
	}
	if err := validate.Struct(&input); err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}

	var referrerID *int64
	if raw, ok := c.GetQuery("referral"); ok {
		if id, err := strconv.ParseInt(raw, 10, 64); err == nil && id != accountID {
			referrerID = &id
		}
	}

	account, err := s.register(c.Request.Context(), accountID, input.Username, referrerID)
	if err != nil {
		logger.Error("%v", err)
		c.Status(500)
		return
	}

	s.respondProfile(c, account)
}

func (s *Service) register(ctx context.Context, accountID int64, username string, referrerID *int64) (*models.Account, error) {
	if account, err := s.store.GetAccount(ctx, accountID); err == nil {
		return account, nil
	} else if !errors.Is(err, store.ErrNotFound) {
		return nil, logger.WrapError(err, "")
	}

	if username == "" {
		username = fmt.Sprintf("user_%d", accountID)
	}

	account := &models.Account{
		ID:         accountID,
		Username:   username,
		ReferrerID: referrerID,
		CreatedAt:  time.Now(),
	}
	if err := s.store.UpsertAccount(ctx, account); err != nil {
		return nil, logger.WrapError(err, "")
	}

	s.graph.LinkAndReward(ctx, account)

	// Re-read: the referee signup bonus may have landed already.
	account, err := s.store.GetAccount(ctx, accountID)
	if err != nil {
		return nil, logger.WrapError(err, "")
	}
	return account, nil
}

// GetProfile returns the account with its referral counts. 404 tells the bot
// to re-run registration.
func (s *Service) GetProfile(c *gin.Context) {
	accountID, err := middleware.GetAccountIDFromGinContext(c)
	if err != nil {
		logger.Error("%v", err)
		c.Status(500)
		return
	}

	account, err := s.store.GetAccount(c.Request.Context(), accountID)
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(404, gin.H{"error": "Account not found"})
		return
	} else if err != nil {
		logger.Error("%v", err)
		c.Status(500)
		return
	}

	s.respondProfile(c, account)
}

func (s *Service) respondProfile(c *gin.Context, account *models.Account) {
	total, active, err := s.graph.Counts(c.Request.Context(), account.ID)
	if err != nil {
		logger.Error("%v", err)
		c.Status(500)
		return
	}

	c.JSON(200, gin.H{
		"id":               account.ID,
		"username":         account.Username,
		"balance":          account.Balance,
		"total_wagered":    account.TotalWagered,
		"games_played":     account.GamesPlayed,
		"games_won":        account.GamesWon,
		"total_referrals":  total,
		"active_referrals": active,
	})
}
