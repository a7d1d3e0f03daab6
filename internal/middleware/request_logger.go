package middlewares

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jonasbrito1/LicitaSis-sub003/internal/observability"
)

// RequestLogger registra uma linha por requisição; 5xx em Error, 4xx em Warn.
// A linha leva a rota registrada (ex.: /api/v1/empenhos/uasg/:uasg), o usuário
// identificado pela autenticação e os erros anexados pelos handlers.
// Deve ficar antes de Recovery para que panics também gerem a linha de acesso.
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		query := c.Request.URL.RawQuery

		c.Next()

		status := c.Writer.Status()
		route := c.FullPath()
		if route == "" {
			route = "sem_rota"
		}

		attrs := []any{
			"status", status,
			"method", c.Request.Method,
			"route", route,
			"path", path,
			"latency_ms", time.Since(start).Milliseconds(),
			"bytes", c.Writer.Size(),
			"client_ip", c.ClientIP(),
		}
		if query != "" {
			attrs = append(attrs, "query", query)
		}
		if name := GetUserName(c); name != "" {
			attrs = append(attrs, "user_name", name)
		}
		if len(c.Errors) > 0 {
			attrs = append(attrs, "errors", c.Errors.String())
		}

		// user_id e user_role entram pelo context preenchido na autenticação
		logger := observability.WithContext(c.Request.Context())
		switch {
		case status >= 500:
			logger.Error("requisição concluída", attrs...)
		case status >= 400:
			logger.Warn("requisição concluída", attrs...)
		default:
			logger.Info("requisição concluída", attrs...)
		}
	}
}
