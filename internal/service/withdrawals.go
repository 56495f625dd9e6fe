package service

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"MonkeyStarApi/internal/ledger"
	"MonkeyStarApi/internal/middleware"
	"MonkeyStarApi/internal/store"
	"MonkeyStarApi/internal/withdrawal"
	"MonkeyStarApi/pkg/logger"
)

type withdrawInput struct {
	Amount float64 `json:"amount" validate:"required,gt=0"`
}

func (s *Service) RequestWithdrawal(c *gin.Context) {
	var input withdrawInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(400, gin.H{"error": "unable to unmarshal body"})
		return
	}
	if err := validate.Struct(&input); err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}

	accountID, err := middleware.GetAccountIDFromGinContext(c)
	if err != nil {
		logger.Error("%v", err)
		c.Status(500)
		return
	}

	w, err := s.gate.Request(c.Request.Context(), accountID, decimal.NewFromFloat(input.Amount))
	if errors.Is(err, withdrawal.ErrAmountNotAllowed) {
		c.JSON(400, gin.H{"error": "withdrawal amount not allowed"})
		return
	} else if errors.Is(err, withdrawal.ErrNotEnoughReferrals) {
		c.JSON(402, gin.H{"error": "not enough active referrals"})
		return
	} else if errors.Is(err, ledger.ErrInsufficientFunds) {
		c.JSON(402, gin.H{"error": "insufficient balance"})
		return
	} else if errors.Is(err, store.ErrNotFound) {
		c.JSON(404, gin.H{"error": "Account not found"})
		return
	} else if err != nil {
		logger.Error("%v", err)
		c.Status(500)
		return
	}

	c.JSON(201, gin.H{
		"id":     w.ID,
		"amount": w.Amount,
		"status": w.Status,
	})
}

func (s *Service) GetWithdrawalEligibility(c *gin.Context) {
	accountID, err := middleware.GetAccountIDFromGinContext(c)
	if err != nil {
		logger.Error("%v", err)
		c.Status(500)
		return
	}

	e, err := s.gate.Eligibility(c.Request.Context(), accountID)
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(404, gin.H{"error": "Account not found"})
		return
	} else if err != nil {
		logger.Error("%v", err)
		c.Status(500)
		return
	}

	c.JSON(200, gin.H{
		"balance":            e.Balance,
		"total_referrals":    e.TotalReferrals,
		"active_referrals":   e.ActiveReferrals,
		"required_referrals": e.RequiredReferrals,
		"amounts":            e.Amounts,
	})
}
