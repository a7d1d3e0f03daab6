package routes

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jonasbrito1/LicitaSis-sub003/internal/config"
	middlewares "github.com/jonasbrito1/LicitaSis-sub003/internal/middleware"
	"github.com/jonasbrito1/LicitaSis-sub003/internal/models"
	"github.com/jonasbrito1/LicitaSis-sub003/internal/services"
)

const testSecret = "segredo-de-teste"

type stubValidator struct{}

func (stubValidator) Validate(context.Context, *models.EmpenhoSubmission) (*models.Report, error) {
	return &models.Report{Valid: true}, nil
}

type stubLookup struct{}

func (stubLookup) CheckDuplicate(context.Context, string, string) (*models.DuplicateCheck, error) {
	return &models.DuplicateCheck{}, nil
}

func (stubLookup) ListByUASG(_ context.Context, uasg string) (*models.EmpenhosPorUASG, error) {
	return &models.EmpenhosPorUASG{UASG: uasg}, nil
}

func (stubLookup) FindClient(_ context.Context, uasg string) (*models.ClientRecord, error) {
	return &models.ClientRecord{UASG: uasg}, nil
}

type stubPermissions struct{}

func (stubPermissions) PagePermission(context.Context, string, string) (*models.PagePermission, error) {
	return nil, nil
}

type stubPinger struct{}

func (stubPinger) Ping(context.Context) error { return nil }

func newTestRouter(authEnabled bool) *gin.Engine {
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{Auth: config.AuthConfig{Enabled: authEnabled, JWTSecret: testSecret}}
	return SetupRouter(cfg, Dependencies{
		Validator:  stubValidator{},
		Empenhos:   stubLookup{},
		Authorizer: services.NewPermissionService(stubPermissions{}, 16, 0),
		DB:         stubPinger{},
	})
}

func TestRoutesWithJWT(t *testing.T) {
	router := newTestRouter(true)

	nivel1, err := middlewares.GenerateToken("7", "Maria", services.RoleNivel1, testSecret, time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}
	investidor, err := middlewares.GenerateToken("8", "João", services.RoleInvestidor, testSecret, time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	tests := []struct {
		name   string
		method string
		path   string
		token  string
		want   int
	}{
		{"health sem token", http.MethodGet, "/health", "", http.StatusOK},
		{"validar sem token", http.MethodPost, "/api/v1/empenhos/validar", "", http.StatusUnauthorized},
		{"validar nivel 1", http.MethodPost, "/api/v1/empenhos/validar", nivel1, http.StatusOK},
		{"validar investidor", http.MethodPost, "/api/v1/empenhos/validar", investidor, http.StatusForbidden},
		{"validar com GET", http.MethodGet, "/api/v1/empenhos/validar", nivel1, http.StatusMethodNotAllowed},
		{"duplicado", http.MethodGet, "/api/v1/empenhos/duplicado?numero=EMP-1&uasg=123456", nivel1, http.StatusOK},
		{"empenhos por uasg", http.MethodGet, "/api/v1/empenhos/uasg/123456", nivel1, http.StatusOK},
		{"cliente por uasg", http.MethodGet, "/api/v1/clientes/uasg/123456", nivel1, http.StatusOK},
		{"cors preflight", http.MethodOptions, "/api/v1/empenhos/validar", "", http.StatusNoContent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, strings.NewReader(`{}`))
			if tt.token != "" {
				req.Header.Set("Authorization", "Bearer "+tt.token)
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			if w.Code != tt.want {
				t.Errorf("%s %s = %d, want %d (%s)", tt.method, tt.path, w.Code, tt.want, w.Body.String())
			}
			if w.Header().Get(middlewares.RequestIDHeader) == "" {
				t.Error("missing request id header")
			}
		})
	}
}

func TestRoutesWithGatewayHeaders(t *testing.T) {
	router := newTestRouter(false)

	tests := []struct {
		name string
		role string
		want int
	}{
		{"administrador", services.RoleAdministrador, http.StatusOK},
		{"nivel 3", services.RoleNivel3, http.StatusOK},
		{"sem nível", "", http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/v1/empenhos/validar", strings.NewReader(`{}`))
			req.Header.Set("X-User-Permission", tt.role)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			if w.Code != tt.want {
				t.Errorf("status = %d, want %d", w.Code, tt.want)
			}
		})
	}
}
