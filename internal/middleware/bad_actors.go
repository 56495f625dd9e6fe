package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
)

// Paths that only probes and scanners ask for. Anything matching is cut off
// before it reaches a handler.
var badPaths = []string{
	".env", "php", "login", "mysql", "cgi-bin", "index.jsp",
	"powershell", "favicon.ico", "actuator", "geoserver", "goform",
	"wp-login.php", "wp-admin", "xmlrpc.php", "config.php", "passwd",
	"shadow", "backup", "bin/bash", "bin/sh", "cmd.exe", "shell",
	"manager/html", "web-console", "login.do",
}

func BlockBadActorsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestPath := c.Request.URL.Path

		for _, path := range badPaths {
			if strings.Contains(requestPath, path) {
				c.JSON(403, gin.H{"error": "Forbidden"})
				c.Abort()
				return
			}
		}
		c.Next()
	}
}
