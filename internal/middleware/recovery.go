package middlewares

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"
	"github.com/jonasbrito1/LicitaSis-sub003/internal/observability"
)

// Recovery converte um panic em 500 com o id da requisição.
// O panic é anexado a c.Errors para aparecer na linha de acesso de RequestLogger.
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			r := recover()
			if r == nil {
				return
			}

			observability.WithContext(c.Request.Context()).Error("panic recuperado",
				"panic", r,
				"route", c.FullPath(),
				"handler", c.HandlerName(),
				"stack", string(debug.Stack()),
			)

			_ = c.Error(fmt.Errorf("panic: %v", r))
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
				"error":      "Erro interno do servidor",
				"request_id": GetRequestID(c),
			})
		}()

		c.Next()
	}
}
