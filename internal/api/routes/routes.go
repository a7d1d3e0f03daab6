package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/jonasbrito1/LicitaSis-sub003/internal/api/handlers"
	"github.com/jonasbrito1/LicitaSis-sub003/internal/config"
	middlewares "github.com/jonasbrito1/LicitaSis-sub003/internal/middleware"
	"github.com/jonasbrito1/LicitaSis-sub003/internal/services"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Dependencies reúne os serviços usados pelas rotas
type Dependencies struct {
	Validator  handlers.EmpenhoValidator
	Empenhos   handlers.EmpenhoLookup
	Authorizer services.Authorizer
	Auditor    services.Auditor
	DB         handlers.Pinger
}

func SetupRouter(cfg *config.Config, deps Dependencies) *gin.Engine {
	r := gin.New()

	r.Use(middlewares.RequestID())
	r.Use(middlewares.RequestLogger())
	r.Use(middlewares.Recovery())
	r.Use(middlewares.RequestTiming())
	r.Use(corsMiddleware())

	healthHandler := handlers.NewHealthHandler(deps.DB)
	r.GET("/liveness", healthHandler.Liveness)
	r.GET("/readiness", healthHandler.Readiness)
	r.GET("/health", healthHandler.Health)

	validationHandler := handlers.NewValidationHandler(deps.Validator, deps.Auditor)
	empenhoHandler := handlers.NewEmpenhoHandler(deps.Empenhos)

	api := r.Group("/api/v1")
	if cfg.Auth.Enabled {
		api.Use(middlewares.JWTAuthMiddleware(cfg.Auth.JWTSecret))
	} else {
		api.Use(middlewares.ExtractUserContext())
	}

	verEmpenhos := middlewares.RequirePermission(deps.Authorizer, deps.Auditor, services.ResourceEmpenhos, services.ActionView)
	verClientes := middlewares.RequirePermission(deps.Authorizer, deps.Auditor, services.ResourceClientes, services.ActionView)

	empenhos := api.Group("/empenhos")
	{
		empenhos.POST("/validar", verEmpenhos, validationHandler.ValidarEmpenho)
		for _, method := range []string{"GET", "PUT", "PATCH", "DELETE"} {
			empenhos.Handle(method, "/validar", validationHandler.MetodoNaoPermitido)
		}

		empenhos.GET("/duplicado", verEmpenhos, empenhoHandler.VerificarDuplicado)
		empenhos.GET("/uasg/:uasg", verEmpenhos, empenhoHandler.ListarPorUASG)
	}

	clientes := api.Group("/clientes")
	{
		clientes.GET("/uasg/:uasg", verClientes, empenhoHandler.BuscarClientePorUASG)
	}

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return r
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization, accept, origin, Cache-Control, X-Requested-With, X-Request-ID")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET")
		c.Writer.Header().Set("Access-Control-Expose-Headers", "X-Request-ID")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
