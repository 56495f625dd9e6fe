package middleware

import (
	"errors"

	"github.com/gin-gonic/gin"

	"MonkeyStarApi/internal/store"
	"MonkeyStarApi/pkg/logger"
)

// AuthMiddleware rejects requests from accounts that never registered.
// Registration itself runs outside this middleware.
func AuthMiddleware(st store.AccountStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		accountID, err := GetAccountIDFromGinContext(c)
		if err != nil {
			logger.Error("%v", err)
			c.AbortWithStatus(500)
			return
		}

		_, err = st.GetAccount(c.Request.Context(), accountID)
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(401, gin.H{"error": "User not authorized"})
			c.Abort()
			return
		} else if err != nil {
			logger.Error("%v", err)
			c.AbortWithStatus(500)
			return
		}

		c.Next()
	}
}
