package middlewares

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jonasbrito1/LicitaSis-sub003/internal/models"
	"github.com/jonasbrito1/LicitaSis-sub003/internal/services"
)

// RequirePermission bloqueia com 403 quem não pode executar action em resource.
// Negações são registradas como ACCESS_DENIED.
func RequirePermission(authz services.Authorizer, auditor services.Auditor, resource string, action services.Action) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := GetUserRole(c)
		if authz.Can(c.Request.Context(), role, resource, action) {
			c.Next()
			return
		}

		if auditor != nil {
			auditor.Record(c.Request.Context(), models.AuditEntry{
				Action:   services.AuditAccessDenied,
				UserID:   GetUserID(c),
				UserName: GetUserName(c),
				Table:    resource,
				Details: map[string]any{
					"action": string(action),
					"path":   c.Request.URL.Path,
					"method": c.Request.Method,
				},
				IP:        c.ClientIP(),
				UserAgent: c.Request.UserAgent(),
			})
		}

		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
			"error":      "Você não tem permissão para acessar esta funcionalidade.",
			"resource":   resource,
			"action":     action,
			"user_role":  role,
			"request_id": GetRequestID(c),
		})
	}
}
