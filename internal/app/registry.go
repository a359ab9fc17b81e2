package app

import (
	"database/sql"
	"net/http"

	"go-leavedesk/internal/auth"
	"go-leavedesk/internal/leave"
	"go-leavedesk/internal/leavetype"
	"go-leavedesk/internal/messaging/kafka"
	"go-leavedesk/internal/personnel"
	"go-leavedesk/internal/rbac"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type moduleDeps struct {
	db          *gorm.DB
	sqlDB       *sql.DB
	rdb         *redis.Client
	rbacService rbac.Service
	logger      *zap.Logger
}

func registerModules(engine *gin.Engine, deps moduleDeps) {
	engine.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := engine.Group("/api/v1")

	outboxRepo := kafka.NewOutboxRepository(deps.sqlDB)

	authHandler := auth.NewHandler(auth.NewService(auth.NewRepository(deps.db), deps.logger))
	auth.RegisterRoutes(api, authHandler, deps.rbacService)

	personnelService := personnel.NewServiceWithOutbox(
		deps.sqlDB,
		personnel.NewRepository(deps.db),
		outboxRepo,
		deps.rdb,
		deps.logger,
	)
	personnel.RegisterRoutes(api, personnel.NewHandler(personnelService, deps.logger), deps.rbacService, deps.logger)

	leaveTypeService := leavetype.NewService(deps.sqlDB, leavetype.NewRepository(deps.db), deps.logger)
	leavetype.RegisterRoutes(api, leavetype.NewHandler(leaveTypeService, deps.logger), deps.rbacService, deps.logger)

	leaveService := leave.NewService(deps.sqlDB, leave.NewRepository(deps.sqlDB), outboxRepo, deps.logger)
	leave.RegisterRoutes(api, leave.NewHandler(leaveService, deps.logger), deps.rbacService, deps.rdb, deps.logger)
}
