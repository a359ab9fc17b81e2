package leave

import (
	"go-leavedesk/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rbacService middleware.RBACService,
	rdb *redis.Client,
	logger *zap.Logger,
) {
	leaves := r.Group("/leaves")
	leaves.Use(middleware.AuthMiddleware())
	leaves.Use(middleware.ContextLogger(logger))
	{
		leaves.GET("/eligibility",
			middleware.RateLimitByUser(5, 20),
			middleware.RBACAuthorize(rbacService, "leave", "read"),
			handler.CheckEligibility,
		)

		leaves.GET("/history/:personnelID",
			middleware.RateLimitByUser(5, 20),
			middleware.RBACAuthorize(rbacService, "leave", "read"),
			handler.GetHistory,
		)

		leaves.GET("/calendar.ics",
			middleware.RateLimitByUser(1, 5),
			middleware.RBACAuthorize(rbacService, "leave", "read"),
			handler.Calendar,
		)

		leaves.POST("",
			middleware.RateLimitByUser(1, 3),
			middleware.RBACAuthorize(rbacService, "leave", "create"),
			middleware.Idempotency(rdb),
			handler.Create,
		)

		leaves.POST("/:id/approve",
			middleware.RateLimitByUser(1, 3),
			middleware.RBACAuthorize(rbacService, "leave", "approve"),
			handler.Approve,
		)

		leaves.POST("/:id/reject",
			middleware.RateLimitByUser(1, 3),
			middleware.RBACAuthorize(rbacService, "leave", "reject"),
			handler.Reject,
		)
	}
}
