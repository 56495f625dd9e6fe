package middleware

import (
	"errors"
	"os"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"

	"MonkeyStarApi/pkg/logger"
)

const adminRole = "admin"

type adminClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

func getTokenFromAuthorizationHeader(c *gin.Context) (string, error) {
	header := c.GetHeader("Authorization")
	if header == "" {
		return "", errors.New("missing Authorization header")
	}

	token, found := strings.CutPrefix(header, "Bearer ")
	if !found {
		return "", errors.New("Authorization header is not a bearer token")
	}

	return token, nil
}

// AdminAuthMiddleware guards the admin group with an HMAC signed JWT. The
// dashboard obtains tokens out-of-band; this service only verifies them.
func AdminAuthMiddleware() gin.HandlerFunc {
	jwtKey, ok := os.LookupEnv("ADMIN_JWT_KEY")
	if !ok {
		logger.Fatal("unable to get admin jwt key from environment")
	}

	return func(c *gin.Context) {
		token, err := getTokenFromAuthorizationHeader(c)
		if err != nil {
			logger.Error("%v", err)
			c.AbortWithStatus(400)
			return
		}

		claims := &adminClaims{}
		parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, errors.New("unexpected signing method")
			}
			return []byte(jwtKey), nil
		})
		if err != nil {
			if errors.Is(err, jwt.ErrTokenExpired) {
				c.AbortWithStatus(401)
				return
			}
			logger.Error("%v", err)
			c.AbortWithStatus(400)
			return
		}

		if !parsed.Valid || claims.Role != adminRole {
			c.JSON(401, gin.H{"error": "User not authorized"})
			c.Abort()
			return
		}

		c.Next()
	}
}
