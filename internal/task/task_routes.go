package task

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
	tasks := r.Group("/tasks")
	tasks.Use(middleware.AuthMiddleware())
	{
		tasks.POST("", middleware.RBACAuthorize(rbacService, "task", "create"), handler.Create)
		tasks.GET("", middleware.RBACAuthorize(rbacService, "task", "read"), handler.GetAll)
		tasks.GET("/:id", middleware.RBACAuthorize(rbacService, "task", "read"), handler.GetById)
		tasks.PUT("/:id", middleware.RBACAuthorize(rbacService, "task", "update"), handler.Update)
		tasks.DELETE("/:id", middleware.RBACAuthorize(rbacService, "task", "update"), handler.Delete)
	}
}
