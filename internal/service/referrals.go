package service

import (
	"errors"

	"github.com/gin-gonic/gin"

	"MonkeyStarApi/internal/middleware"
	"MonkeyStarApi/internal/store"
	"MonkeyStarApi/pkg/logger"
)

func (s *Service) GetReferrals(c *gin.Context) {
	accountID, err := middleware.GetAccountIDFromGinContext(c)
	if err != nil {
		logger.Error("%v", err)
		c.Status(500)
		return
	}

	total, active, err := s.graph.Counts(c.Request.Context(), accountID)
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(404, gin.H{"error": "Account not found"})
		return
	} else if err != nil {
		logger.Error("%v", err)
		c.Status(500)
		return
	}

	referees, err := s.store.ListAccountsByReferrer(c.Request.Context(), accountID)
	if err != nil {
		logger.Error("%v", err)
		c.Status(500)
		return
	}

	type referralEntry struct {
		ID       int64  `json:"id"`
		Username string `json:"username"`
	}
	entries := make([]referralEntry, 0, len(referees))
	for _, r := range referees {
		entries = append(entries, referralEntry{ID: r.ID, Username: r.Username})
	}

	c.JSON(200, gin.H{
		"total":     total,
		"active":    active,
		"required":  s.cfg.ActiveReferralThreshold,
		"referrals": entries,
	})
}
