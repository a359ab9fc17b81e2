package leavetype

import (
	"go-leavedesk/internal/middleware"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rbacService middleware.RBACService,
	logger *zap.Logger,
) {
	types := r.Group("/leave-types")
	types.Use(middleware.AuthMiddleware())
	types.Use(middleware.ContextLogger(logger))
	{
		types.GET("",
			middleware.RateLimitByUser(5, 20),
			middleware.RBACAuthorize(rbacService, "leave_type", "read"),
			handler.GetAll,
		)

		types.GET("/:id",
			middleware.RateLimitByUser(5, 20),
			middleware.RBACAuthorize(rbacService, "leave_type", "read"),
			handler.GetById,
		)

		types.POST("",
			middleware.RateLimitByUser(0.5, 2),
			middleware.RBACAuthorize(rbacService, "leave_type", "create"),
			handler.Create,
		)

		types.PUT("/:id",
			middleware.RateLimitByUser(0.5, 2),
			middleware.RBACAuthorize(rbacService, "leave_type", "update"),
			handler.Update,
		)

		types.DELETE("/:id",
			middleware.RateLimitByUser(0.1, 1),
			middleware.RBACAuthorize(rbacService, "leave_type", "delete"),
			handler.Delete,
		)
	}
}
