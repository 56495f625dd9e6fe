package service

import (
	"github.com/gin-gonic/gin"

	"MonkeyStarApi/internal/middleware"
	"MonkeyStarApi/pkg/logger"
)

// GetTransactions returns the caller's ledger history, newest first.
func (s *Service) GetTransactions(c *gin.Context) {
	accountID, err := middleware.GetAccountIDFromGinContext(c)
	if err != nil {
		logger.Error("%v", err)
		c.Status(500)
		return
	}

	transactions, err := s.store.ListTransactions(c.Request.Context(), accountID)
	if err != nil {
		logger.Error("%v", err)
		c.Status(500)
		return
	}

	type transactionEntry struct {
		ID          string `json:"id"`
		Kind        string `json:"kind"`
		Amount      string `json:"amount"`
		Description string `json:"description"`
		CreatedAt   string `json:"created_at"`
	}
	entries := make([]transactionEntry, 0, len(transactions))
	for _, t := range transactions {
		entries = append(entries, transactionEntry{
			ID:          t.ID,
			Kind:        string(t.Kind),
			Amount:      t.Amount.StringFixed(2),
			Description: t.Description,
			CreatedAt:   t.CreatedAt.Format("2006-01-02 15:04:05"),
		})
	}

	c.JSON(200, gin.H{"transactions": entries})
}
