package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/MartinXCVI/mern-auth-system/internal/utils"
)

const (
	ContextUserID = "userId"

	AccessTokenCookie  = "accessToken"
	RefreshTokenCookie = "refreshToken"
)

// AuthRequired gates protected routes on the access-token cookie. Every
// failure mode — missing cookie, malformed token, bad signature, expiry,
// missing id claim — is reported as 401, never as a server fault.
func AuthRequired(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(AccessTokenCookie)
		if err != nil || token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"message": "Unauthorized: login again",
			})
			return
		}

		userID, err := utils.ParseSessionToken(token, secret)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"message": "Unauthorized: login again",
			})
			return
		}

		c.Set(ContextUserID, userID)
		c.Next()
	}
}
