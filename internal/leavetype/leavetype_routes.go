package leavetype

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
	leaveTypes := r.Group("/leave-types")
	leaveTypes.Use(middleware.AuthMiddleware())
	{
		leaveTypes.GET("", middleware.RBACAuthorize(rbacService, "leavetype", "read"), handler.GetAll)
	}
}
