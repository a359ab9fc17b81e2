package bootstrap

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AuditLog records who changed what through the API.
type AuditLog struct {
	Timestamp time.Time `json:"timestamp"`
	ActorID   string    `json:"actor_id"`
	Role      string    `json:"role"`
	Method    string    `json:"method"`
	Path      string    `json:"path"`
	Status    int       `json:"status"`
	RequestID string    `json:"request_id"`
	ClientIP  string    `json:"client_ip"`
}

type AuditLogger interface {
	Record(entry AuditLog)
}

// zapAuditLogger emits audit entries as structured log lines; a log shipper
// turns them into the durable audit trail.
type zapAuditLogger struct {
	logger *zap.Logger
}

func NewZapAuditLogger(logger *zap.Logger) AuditLogger {
	return &zapAuditLogger{logger: logger.Named("audit")}
}

func (l *zapAuditLogger) Record(entry AuditLog) {
	l.logger.Info("audit",
		zap.Time("timestamp", entry.Timestamp),
		zap.String("actor_id", entry.ActorID),
		zap.String("role", entry.Role),
		zap.String("method", entry.Method),
		zap.String("path", entry.Path),
		zap.Int("status", entry.Status),
		zap.String("request_id", entry.RequestID),
		zap.String("client_ip", entry.ClientIP),
	)
}

// AuditMiddleware records every mutating request after it completes.
func AuditMiddleware(audit AuditLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		switch c.Request.Method {
		case "POST", "PUT", "PATCH", "DELETE":
		default:
			return
		}

		audit.Record(AuditLog{
			Timestamp: time.Now().UTC(),
			ActorID:   c.GetString("user_id"),
			Role:      c.GetString("role"),
			Method:    c.Request.Method,
			Path:      c.FullPath(),
			Status:    c.Writer.Status(),
			RequestID: c.GetString("request_id"),
			ClientIP:  c.ClientIP(),
		})
	}
}
