package service

import (
	"github.com/gin-gonic/gin"

	"MonkeyStarApi/pkg/logger"
)

func (s *Service) GetStats(c *gin.Context) {
	stats, err := s.store.Stats(c.Request.Context())
	if err != nil {
		logger.Error("%v", err)
		c.Status(500)
		return
	}

	c.JSON(200, gin.H{
		"total_accounts":      stats.TotalAccounts,
		"total_balance":       stats.TotalBalance.StringFixed(2),
		"total_wagered":       stats.TotalWagered.StringFixed(2),
		"pending_withdrawals": stats.PendingWithdrawals,
	})
}

func (s *Service) ListAccounts(c *gin.Context) {
	accounts, err := s.store.ListAllAccounts(c.Request.Context())
	if err != nil {
		logger.Error("%v", err)
		c.Status(500)
		return
	}

	type accountEntry struct {
		ID          int64  `json:"id"`
		Username    string `json:"username"`
		Balance     string `json:"balance"`
		GamesPlayed int    `json:"games_played"`
		GamesWon    int    `json:"games_won"`
	}
	entries := make([]accountEntry, 0, len(accounts))
	for _, a := range accounts {
		entries = append(entries, accountEntry{
			ID:          a.ID,
			Username:    a.Username,
			Balance:     a.Balance.StringFixed(2),
			GamesPlayed: a.GamesPlayed,
			GamesWon:    a.GamesWon,
		})
	}

	c.JSON(200, gin.H{"accounts": entries})
}
