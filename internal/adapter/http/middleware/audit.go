package middleware

import (
	"encoding/json"
	"net/http"
	"time"

	"credit-arcade/internal/core/domain"
	"credit-arcade/internal/core/ports"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// AuditLog creates an audit middleware that logs successful write operations.
func AuditLog(auditSvc ports.AuditService) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		status := c.Writer.Status()
		if status < 200 || status >= 300 {
			return
		}
		if c.Request.Method != http.MethodPost {
			return
		}

		action, resourceType := mapPathToAction(c.FullPath())
		if action == "" {
			return
		}

		details, _ := json.Marshal(map[string]interface{}{
			"method": c.Request.Method,
			"path":   c.Request.URL.Path,
			"status": status,
		})

		auditSvc.Log(c.Request.Context(), &domain.AuditLog{
			ID:           uuid.New(),
			Identity:     Identity(c),
			Action:       action,
			ResourceType: resourceType,
			ResourceID:   c.GetString(CtxResourceID),
			IPAddress:    c.ClientIP(),
			Details:      string(details),
			CreatedAt:    time.Now().UTC(),
		})
	}
}

func mapPathToAction(route string) (domain.AuditAction, string) {
	switch route {
	case "/api/v1/auth/login":
		return domain.AuditActionLogin, "session"
	case "/api/v1/auth/logout":
		return domain.AuditActionLogout, "session"
	case "/api/v1/mines/start":
		return domain.AuditActionMinesStart, "mines_game"
	case "/api/v1/mines/reveal":
		return domain.AuditActionMinesReveal, "mines_game"
	case "/api/v1/mines/cashout":
		return domain.AuditActionMinesCashout, "mines_game"
	case "/api/v1/mines/reset":
		return domain.AuditActionMinesReset, "mines_game"
	}
	return "", ""
}
