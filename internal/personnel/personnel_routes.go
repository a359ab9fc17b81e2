package personnel

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
	people := r.Group("/personnel")
	people.Use(middleware.AuthMiddleware())
	people.Use(middleware.ContextLogger(logger))
	{
		people.GET("",
			middleware.RateLimitByUser(3, 10),
			middleware.RBACAuthorize(rbacService, "personnel", "read"),
			handler.GetAll,
		)

		people.GET("/options",
			middleware.RateLimitByUser(5, 20),
			middleware.RBACAuthorize(rbacService, "personnel", "read"),
			handler.GetOptions,
		)

		people.GET("/:id",
			middleware.RateLimitByUser(3, 10),
			middleware.RBACAuthorize(rbacService, "personnel", "read"),
			handler.GetById,
		)

		people.POST("",
			middleware.RateLimitByUser(0.5, 2),
			middleware.RBACAuthorize(rbacService, "personnel", "create"),
			handler.Create,
		)

		people.PUT("/:id",
			middleware.RateLimitByUser(0.5, 2),
			middleware.RBACAuthorize(rbacService, "personnel", "update"),
			handler.Update,
		)

		people.DELETE("/:id",
			middleware.RateLimitByUser(0.1, 1),
			middleware.RBACAuthorize(rbacService, "personnel", "delete"),
			handler.Delete,
		)
	}
}
