package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	_ "github.com/jonasbrito1/LicitaSis-sub003/docs"
	"github.com/jonasbrito1/LicitaSis-sub003/internal/api/routes"
	"github.com/jonasbrito1/LicitaSis-sub003/internal/config"
	"github.com/jonasbrito1/LicitaSis-sub003/internal/observability"
	"github.com/jonasbrito1/LicitaSis-sub003/internal/services"
	"github.com/jonasbrito1/LicitaSis-sub003/internal/store"
)

// @title           LicitaSis - Validação de Empenhos API
// @version         1.0
// @description     API de validação de empenhos do LicitaSis contra os cadastros de clientes, produtos e empenhos

// @contact.name   LicitaSis

// @BasePath  /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Token JWT no formato: Bearer {token}

func main() {
	cfg := config.LoadConfig()
	if err := cfg.Validate(); err != nil {
		slog.Error("configuração inválida", "error", err)
		os.Exit(1)
	}

	observability.InitLogger(cfg.LogLevel, cfg.LogFormat)

	observability.InitTracer(cfg)
	defer observability.ShutdownTracer()

	loc := cfg.Location()

	db, err := store.Open(cfg.Database, loc)
	if err != nil {
		slog.Error("falha ao conectar no MySQL", "error", err, "host", cfg.Database.Host, "database", cfg.Database.Name)
		os.Exit(1)
	}
	defer db.Close()

	permissionService := services.NewPermissionService(db, cfg.Auth.PermissionCacheSize,
		time.Duration(cfg.Auth.PermissionCacheTTLSeconds)*time.Second)
	auditService := services.NewAuditService(db, cfg.AuditEnabled)

	if cfg.Auth.PermissionCacheTTLSeconds > 0 {
		ticker := permissionService.StartCacheCleanup(time.Minute)
		defer ticker.Stop()
	}

	gin.SetMode(gin.ReleaseMode)
	router := routes.SetupRouter(cfg, routes.Dependencies{
		Validator:  services.NewValidationService(db, loc),
		Empenhos:   services.NewEmpenhoService(db, loc),
		Authorizer: permissionService,
		Auditor:    auditService,
		DB:         db,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.ServerPort,
		Handler:      router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		slog.Info("servidor iniciado", "port", cfg.ServerPort, "timezone", cfg.Timezone, "auth_enabled", cfg.Auth.Enabled)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("erro ao iniciar servidor", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	slog.Info("encerrando servidor...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("servidor encerrado à força", "error", err)
	}

	auditService.Wait()
	slog.Info("servidor encerrado")
}
