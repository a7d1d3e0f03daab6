package middlewares

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/jonasbrito1/LicitaSis-sub003/internal/observability"
)

// JWTClaims são os claims emitidos pelo login do LicitaSis.
// Subject carrega o id do usuário e Permission o nível de permissão.
type JWTClaims struct {
	Name       string `json:"name"`
	Permission string `json:"permission"`
	jwt.RegisteredClaims
}

// GenerateToken assina um token HS256 para o usuário
func GenerateToken(userID, name, permission, secret string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := JWTClaims{
		Name:       name,
		Permission: permission,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

// JWTAuthMiddleware valida o token Bearer e coloca o usuário no contexto
func JWTAuthMiddleware(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Token não fornecido"})
			return
		}

		tokenString, ok := strings.CutPrefix(authHeader, "Bearer ")
		if !ok || tokenString == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Formato do header Authorization inválido"})
			return
		}

		claims := &JWTClaims{}
		token, err := jwt.ParseWithClaims(tokenString, claims, func(*jwt.Token) (any, error) {
			return []byte(secret), nil
		}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
		if err != nil || !token.Valid {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Token inválido ou expirado"})
			return
		}

		setUser(c, claims.Subject, claims.Name, claims.Permission)
		c.Next()
	}
}

// setUser guarda o usuário no gin.Context e os campos de log no context da requisição
func setUser(c *gin.Context, userID, name, role string) {
	c.Set(UserIDKey, userID)
	c.Set(UserNameKey, name)
	c.Set(UserRoleKey, role)

	ctx := c.Request.Context()
	if userID != "" {
		ctx = context.WithValue(ctx, observability.UserIDKey, userID)
	}
	if role != "" {
		ctx = context.WithValue(ctx, observability.UserRoleKey, role)
	}
	c.Request = c.Request.WithContext(ctx)
}
