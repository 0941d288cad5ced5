package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/staffdesk/incentive-api/internal/constants"
	"github.com/staffdesk/incentive-api/internal/database"
	apierrors "github.com/staffdesk/incentive-api/internal/errors"
	"github.com/staffdesk/incentive-api/internal/models"
	"github.com/staffdesk/incentive-api/internal/token"
)

// RequireAdminAuth verifies an admin-portal bearer token, loads the admin
// fresh, and optionally restricts to a set of roles.
func RequireAdminAuth(secret string, roles ...models.AdminRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, ok := bearerToken(c)
		if !ok {
			apierrors.Unauthorized(c, "missing or malformed authorization header")
			c.Abort()
			return
		}

		adminID, err := token.Parse(raw, token.AudienceAdmin, secret)
		if err != nil {
			apierrors.Unauthorized(c, "invalid token")
			c.Abort()
			return
		}

		var admin models.Admin
		if err := database.GetDB().First(&admin, adminID).Error; err != nil {
			apierrors.Unauthorized(c, "admin not found")
			c.Abort()
			return
		}

		if len(roles) > 0 && !roleAllowed(admin.Role, roles) {
			apierrors.Forbidden(c, "insufficient permissions")
			c.Abort()
			return
		}

		c.Set(constants.ContextKeyAdmin, &admin)
		c.Next()
	}
}

// GetAdmin retrieves the authenticated admin principal from context.
func GetAdmin(c *gin.Context) (*models.Admin, bool) {
	value, exists := c.Get(constants.ContextKeyAdmin)
	if !exists {
		return nil, false
	}
	admin, ok := value.(*models.Admin)
	return admin, ok
}

func roleAllowed(role models.AdminRole, allowed []models.AdminRole) bool {
	for _, r := range allowed {
		if r == role {
			return true
		}
	}
	return false
}
