package middlewares

import (
	"github.com/gin-gonic/gin"
)

const (
	UserIDKey   = "user_id"
	UserNameKey = "user_name"
	UserRoleKey = "user_role"
)

// ExtractUserContext lê o usuário dos headers injetados pelo gateway
// quando a validação de JWT está desabilitada neste serviço:
//   - X-User-ID: id do usuário
//   - X-User-Name: nome do usuário
//   - X-User-Permission: nível de permissão (ex.: Usuario_Nivel_2)
func ExtractUserContext() gin.HandlerFunc {
	return func(c *gin.Context) {
		setUser(c, c.GetHeader("X-User-ID"), c.GetHeader("X-User-Name"), c.GetHeader("X-User-Permission"))
		c.Next()
	}
}

// GetUserID retorna o id do usuário autenticado
func GetUserID(c *gin.Context) string {
	return c.GetString(UserIDKey)
}

// GetUserName retorna o nome do usuário autenticado
func GetUserName(c *gin.Context) string {
	return c.GetString(UserNameKey)
}

// GetUserRole retorna o nível de permissão do usuário
func GetUserRole(c *gin.Context) string {
	return c.GetString(UserRoleKey)
}
