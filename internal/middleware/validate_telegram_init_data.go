package middleware

import (
	"errors"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	initdata "github.com/telegram-mini-apps/init-data-golang"

	"MonkeyStarApi/pkg/logger"
)

const (
	ContextAccountIDKey = "account_id"
	InitDataExpiration  = 24 * time.Hour
)

// ValidateTelegramInitDataMiddleware authenticates mini-app requests by
// verifying the signed init data against the bot token. The account id it
// extracts is what every downstream handler trusts.
func ValidateTelegramInitDataMiddleware() gin.HandlerFunc {
	botToken, ok := os.LookupEnv("TOKEN")
	if !ok {
		logger.Fatal("unable to get telegram bot token from environment")
	}

	return func(c *gin.Context) {
		initData := c.GetHeader("X-Telegram-Init-Data")
		if initData == "" {
			c.JSON(400, gin.H{"error": "Missing Telegram init data"})
			c.Abort()
			return
		}

		err := initdata.Validate(initData, botToken, InitDataExpiration)
		if err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			c.Abort()
			return
		}

		parsedData, err := initdata.Parse(initData)
		if err != nil {
			c.JSON(400, gin.H{"error": "Failed to parse Telegram init data"})
			c.Abort()
			return
		}

		if parsedData.User.ID == 0 {
			c.JSON(400, gin.H{"error": "User ID is zero"})
			c.Abort()
			return
		}

		c.Set(ContextAccountIDKey, parsedData.User.ID)
		c.Next()
	}
}

func GetAccountIDFromGinContext(c *gin.Context) (int64, error) {
	accountIDAny, ok := c.Get(ContextAccountIDKey)
	if !ok {
		return 0, logger.WrapError(errors.New("account_id not in GIN context"), "")
	}

	accountID, ok := accountIDAny.(int64)
	if !ok {
		return 0, logger.WrapError(errors.New("unable to cast account_id value to int64"), "")
	}

	return accountID, nil
}
