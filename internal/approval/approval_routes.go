package approval

import (
	"go-portal/internal/middleware"
	"go-portal/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rbacService rbac.Service,
) {
	approvals := r.Group("/pending-approvals")
	approvals.Use(middleware.AuthMiddleware())
	{
		approvals.GET("", middleware.RBACAuthorize(rbacService, "approval", "read"), handler.ListPending)
	}
}
