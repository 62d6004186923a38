package trip

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
	trips := r.Group("/trips")
	trips.Use(middleware.AuthMiddleware())
	{
		trips.POST("", middleware.RBACAuthorize(rbacService, "trip", "create"), handler.Create)
		trips.GET("", middleware.RBACAuthorize(rbacService, "trip", "read"), handler.GetAll)
		trips.GET("/:id", middleware.RBACAuthorize(rbacService, "trip", "read"), handler.GetById)
		trips.PUT("/:id", middleware.RBACAuthorize(rbacService, "trip", "update"), handler.Update)
		trips.POST("/:id/submit", middleware.RBACAuthorize(rbacService, "trip", "update"), handler.Submit)
	}
}
