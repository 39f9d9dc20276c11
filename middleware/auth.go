package middleware

import (
	"net/http"
	"strings"

	"venuedesk/utils"

	"github.com/gin-gonic/gin"
)

// StaffAuth requires a valid staff bearer token when auth is enabled and
// stores its subject under "staff".
func StaffAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !utils.AuthEnabled() {
			c.Next()
			return
		}
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing or invalid Authorization header"})
			return
		}
		subject, err := utils.ExtractSubject(strings.TrimPrefix(authHeader, "Bearer "))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			return
		}
		c.Set("staff", subject)
		c.Next()
	}
}
