package middleware

import (
	"net/http"

	"go-portal/internal/rbac"
	"go-portal/internal/shared/response"

	"github.com/gin-gonic/gin"
)

// RBACAuthorize gates a route on the acting user's role. The policy is
// static (see internal/rbac/policy.csv): MANAGER inherits EMPLOYEE and
// additionally holds the decide/comment/issue actions.
func RBACAuthorize(service rbac.Service, resource, action string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := c.GetString("role")
		if role == "" {
			response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "missing auth context", nil)
			c.Abort()
			return
		}

		allowed, err := service.Enforce(role, resource, action)
		if err != nil {
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "authorization check failed", nil)
			c.Abort()
			return
		}

		if !allowed {
			response.Error(c, http.StatusForbidden, "FORBIDDEN",
				"You do not have permission to access this resource",
				gin.H{"required": resource + ":" + action},
			)
			c.Abort()
			return
		}
		c.Next()
	}
}
