package auth

import (
	"go-leavedesk/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, rbacService middleware.RBACService) {
	authGroup := r.Group("/auth")
	{
		authGroup.POST("/login", middleware.RateLimitByIP(1, 5), handler.Login)
		authGroup.POST("/refresh", middleware.RateLimitByIP(1, 5), handler.Refresh)
		authGroup.POST("/logout", handler.Logout)

		authGroup.GET("/me", middleware.AuthMiddleware(), handler.Me)
		authGroup.POST("/register",
			middleware.AuthMiddleware(),
			middleware.RBACAuthorize(rbacService, "personnel", "create"),
			handler.Register,
		)
	}
}
