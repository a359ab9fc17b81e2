package app

import (
	"database/sql"
	"fmt"
	"os"

	"go-leavedesk/internal/bootstrap"
	"go-leavedesk/internal/middleware"
	"go-leavedesk/internal/rbac"
	rbacinfra "go-leavedesk/internal/rbac/infra"
	"go-leavedesk/internal/shared/connection"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// App bundles the composed HTTP application and the resources it owns.
type App struct {
	Engine *gin.Engine
	DB     *gorm.DB
	SQLDB  *sql.DB
	Redis  *redis.Client
}

func (a *App) Close() {
	if a.SQLDB != nil {
		a.SQLDB.Close()
	}
	if a.Redis != nil {
		a.Redis.Close()
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// BuildApp connects the backing stores, runs migrations, and wires every
// module onto one Gin engine.
func BuildApp(logger *zap.Logger) (*App, error) {
	db, err := connection.ConnectGORMWithRetry(
		envOr("DB_HOST", "localhost"),
		envOr("DB_USER", "postgres"),
		envOr("DB_PASSWORD", "postgres"),
		envOr("DB_NAME", "leavedesk"),
		envOr("DB_PORT", "5432"),
		envOr("DB_SSLMODE", "disable"),
		10,
	)
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("unwrap sql.DB: %w", err)
	}

	if err := connection.RunMigrations(sqlDB, logger); err != nil {
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	rdb, err := connection.ConnectRedisWithRetry(envOr("REDIS_ADDR", "localhost:6379"), 10)
	if err != nil {
		return nil, fmt.Errorf("connect redis: %w", err)
	}

	enforcer, err := rbacinfra.NewEnforcer(envOr("RBAC_MODEL_PATH", "internal/rbac/infra/model.conf"))
	if err != nil {
		return nil, fmt.Errorf("build rbac enforcer: %w", err)
	}

	rbacService := rbac.NewService(rbac.NewRepository(db), enforcer)
	if err := rbacService.LoadPolicy(); err != nil {
		return nil, fmt.Errorf("load rbac policy: %w", err)
	}

	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestID())
	engine.Use(bootstrap.AuditMiddleware(bootstrap.NewZapAuditLogger(logger)))

	registerModules(engine, moduleDeps{
		db:          db,
		sqlDB:       sqlDB,
		rdb:         rdb,
		rbacService: rbacService,
		logger:      logger,
	})

	return &App{Engine: engine, DB: db, SQLDB: sqlDB, Redis: rdb}, nil
}
