package reimbursement

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
	claims := r.Group("/reimbursements")
	claims.Use(middleware.AuthMiddleware())
	{
		claims.POST("", middleware.RBACAuthorize(rbacService, "reimbursement", "create"), handler.Create)
		claims.GET("", middleware.RBACAuthorize(rbacService, "reimbursement", "read"), handler.GetAll)
		claims.GET("/:id", middleware.RBACAuthorize(rbacService, "reimbursement", "read"), handler.GetById)
		claims.PATCH("/:id/decision", middleware.RBACAuthorize(rbacService, "reimbursement", "decide"), handler.Decide)
		claims.PATCH("/:id/comment", middleware.RBACAuthorize(rbacService, "reimbursement", "comment"), handler.Comment)
	}
}
