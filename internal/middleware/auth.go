package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/staffdesk/incentive-api/internal/constants"
	"github.com/staffdesk/incentive-api/internal/database"
	apierrors "github.com/staffdesk/incentive-api/internal/errors"
	"github.com/staffdesk/incentive-api/internal/models"
	"github.com/staffdesk/incentive-api/internal/token"
)

// RequireAuth verifies the bearer token and loads the staff principal. The
// role embedded at token-issue time is never trusted; the row is re-read so
// role changes take effect immediately.
func RequireAuth(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, ok := bearerToken(c)
		if !ok {
			apierrors.Unauthorized(c, "missing or malformed authorization header")
			c.Abort()
			return
		}

		userID, err := token.Parse(raw, token.AudienceStaff, secret)
		if err != nil {
			apierrors.Unauthorized(c, "invalid token")
			c.Abort()
			return
		}

		var user models.User
		if err := database.GetDB().First(&user, userID).Error; err != nil {
			apierrors.Unauthorized(c, "user not found")
			c.Abort()
			return
		}

		c.Set(constants.ContextKeyUser, &user)
		c.Next()
	}
}

// GetUser retrieves the authenticated staff principal from context.
func GetUser(c *gin.Context) (*models.User, bool) {
	value, exists := c.Get(constants.ContextKeyUser)
	if !exists {
		return nil, false
	}
	user, ok := value.(*models.User)
	return user, ok
}

// bearerToken extracts the token from an exact "Bearer <token>" pair.
func bearerToken(c *gin.Context) (string, bool) {
	header := c.GetHeader("Authorization")
	if header == "" {
		return "", false
	}
	parts := strings.Split(header, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return "", false
	}
	return parts[1], true
}
