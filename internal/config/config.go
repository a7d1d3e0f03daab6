// Package config gerencia configurações da aplicação via variáveis de ambiente.
//
// # Variáveis de Ambiente
//
// ## Servidor
//   - SERVER_PORT: Porta HTTP (default: 8080)
//   - APP_TIMEZONE: Fuso usado como "hoje" nas regras de data (default: America/Sao_Paulo)
//
// ## Banco de dados (MySQL)
//   - DB_HOST: Host do MySQL (default: localhost)
//   - DB_PORT: Porta do MySQL (default: 3306)
//   - DB_USER: Usuário (obrigatório)
//   - DB_PASSWORD: Senha
//   - DB_NAME: Nome do schema (obrigatório)
//   - DB_MAX_OPEN_CONNS: Conexões abertas máximas (default: 10)
//   - DB_MAX_IDLE_CONNS: Conexões ociosas máximas (default: 5)
//   - DB_CONN_MAX_LIFETIME_MINUTES: Tempo de vida de uma conexão (default: 5)
//   - DB_QUERY_TIMEOUT_SECONDS: Timeout de cada consulta (default: 5)
//
// ## Autenticação e permissões
//   - AUTH_ENABLED: Exige JWT nas rotas /api (default: true)
//   - JWT_SECRET: Segredo HS256 dos tokens (obrigatório se AUTH_ENABLED=true)
//   - PERMISSION_CACHE_TTL_SECONDS: TTL do cache de permissões (default: 60)
//   - PERMISSION_CACHE_SIZE: Entradas máximas do cache de permissões (default: 256)
//   - AUDIT_ENABLED: Grava ações em audit_log (default: true)
//
// ## Observabilidade
//   - LOG_LEVEL: debug, info, warn, error (default: info)
//   - LOG_FORMAT: json ou text (default: json)
//   - TRACING_ENABLED: Habilita OpenTelemetry (default: false)
//   - TRACING_ENDPOINT: Endpoint OTLP gRPC (default: localhost:4317)
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

// DatabaseConfig contém a configuração de conexão com o MySQL
type DatabaseConfig struct {
	Host     string `validate:"required"`
	Port     int    `validate:"min=1,max=65535"`
	User     string `validate:"required"`
	Password string
	Name     string `validate:"required"`

	MaxOpenConns           int `validate:"min=1"`
	MaxIdleConns           int `validate:"min=0"`
	ConnMaxLifetimeMinutes int `validate:"min=0"`
	QueryTimeoutSeconds    int `validate:"min=1"`
}

// QueryTimeout retorna o timeout de consulta como time.Duration
func (d DatabaseConfig) QueryTimeout() time.Duration {
	return time.Duration(d.QueryTimeoutSeconds) * time.Second
}

// AuthConfig contém a configuração de autenticação
type AuthConfig struct {
	Enabled   bool
	JWTSecret string `validate:"required_if=Enabled true"`

	PermissionCacheTTLSeconds int `validate:"min=0"`
	PermissionCacheSize       int `validate:"min=1"`
}

type Config struct {
	ServerPort string `validate:"required,numeric"`
	Timezone   string `validate:"required"`

	Database DatabaseConfig
	Auth     AuthConfig

	AuditEnabled bool

	// Logging configuration
	LogLevel  string `validate:"oneof=debug info warn error"`
	LogFormat string `validate:"oneof=json text"`

	// Tracing configuration
	TracingEnabled  bool
	TracingEndpoint string
}

func LoadConfig() *Config {
	_ = godotenv.Load()

	return &Config{
		ServerPort: getEnv("SERVER_PORT", "8080"),
		Timezone:   getEnv("APP_TIMEZONE", "America/Sao_Paulo"),

		Database: DatabaseConfig{
			Host:                   getEnv("DB_HOST", "localhost"),
			Port:                   getEnvInt("DB_PORT", 3306),
			User:                   getEnv("DB_USER", ""),
			Password:               getEnv("DB_PASSWORD", ""),
			Name:                   getEnv("DB_NAME", ""),
			MaxOpenConns:           getEnvInt("DB_MAX_OPEN_CONNS", 10),
			MaxIdleConns:           getEnvInt("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetimeMinutes: getEnvInt("DB_CONN_MAX_LIFETIME_MINUTES", 5),
			QueryTimeoutSeconds:    getEnvInt("DB_QUERY_TIMEOUT_SECONDS", 5),
		},

		Auth: AuthConfig{
			Enabled:                   getEnv("AUTH_ENABLED", "true") == "true",
			JWTSecret:                 getEnv("JWT_SECRET", ""),
			PermissionCacheTTLSeconds: getEnvInt("PERMISSION_CACHE_TTL_SECONDS", 60),
			PermissionCacheSize:       getEnvInt("PERMISSION_CACHE_SIZE", 256),
		},

		AuditEnabled: getEnv("AUDIT_ENABLED", "true") == "true",

		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "json"),

		// Tracing configuration
		TracingEnabled:  getEnv("TRACING_ENABLED", "false") == "true",
		TracingEndpoint: getEnv("TRACING_ENDPOINT", "localhost:4317"),
	}
}

// Validate verifica campos obrigatórios e faixas de valores
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("configuração inválida: %w", err)
	}
	if _, err := time.LoadLocation(c.Timezone); err != nil {
		return fmt.Errorf("configuração inválida: APP_TIMEZONE %q: %w", c.Timezone, err)
	}
	return nil
}

// Location retorna o fuso configurado, com fallback para UTC
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}
