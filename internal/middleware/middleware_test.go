package middlewares

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jonasbrito1/LicitaSis-sub003/internal/models"
	"github.com/jonasbrito1/LicitaSis-sub003/internal/observability"
	"github.com/jonasbrito1/LicitaSis-sub003/internal/services"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestRequestID(t *testing.T) {
	router := gin.New()
	router.Use(RequestID())
	router.GET("/test", func(c *gin.Context) {
		c.String(http.StatusOK, GetRequestID(c))
	})

	t.Run("gera id", func(t *testing.T) {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/test", nil))

		id := w.Header().Get(RequestIDHeader)
		if id == "" || w.Body.String() != id {
			t.Errorf("header = %q, body = %q", id, w.Body.String())
		}
	})

	t.Run("reaproveita id recebido", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/test", nil)
		req.Header.Set(RequestIDHeader, "req-123")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		if got := w.Header().Get(RequestIDHeader); got != "req-123" {
			t.Errorf("header = %q, want req-123", got)
		}
	})
}

func TestRecovery(t *testing.T) {
	router := gin.New()
	router.Use(RequestID(), Recovery())
	router.GET("/panic", func(c *gin.Context) {
		panic("falha inesperada")
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/panic", nil))

	if w.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", w.Code)
	}
	if !strings.Contains(w.Body.String(), "request_id") {
		t.Errorf("body = %s", w.Body.String())
	}
}

// captureLogs direciona o logger padrão para um buffer JSON durante o teste.
func captureLogs(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(observability.NewLogger(&buf, "debug", "json"))
	t.Cleanup(func() { slog.SetDefault(prev) })
	return &buf
}

func accessLine(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		var entry map[string]any
		if err := json.Unmarshal([]byte(line), &entry); err != nil {
			t.Fatalf("linha de log inválida %q: %v", line, err)
		}
		if entry["msg"] == "requisição concluída" {
			return entry
		}
	}
	t.Fatalf("linha de acesso ausente em %s", buf.String())
	return nil
}

func TestRequestLogger(t *testing.T) {
	t.Run("rota e usuário", func(t *testing.T) {
		buf := captureLogs(t)
		router := gin.New()
		router.Use(RequestID(), RequestLogger(), ExtractUserContext())
		router.GET("/empenhos/uasg/:uasg", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"uasg": c.Param("uasg")})
		})

		req := httptest.NewRequest(http.MethodGet, "/empenhos/uasg/160001?page=2", nil)
		req.Header.Set("X-User-ID", "9")
		req.Header.Set("X-User-Name", "Maria")
		req.Header.Set("X-User-Permission", "Usuario_Nivel_2")
		router.ServeHTTP(httptest.NewRecorder(), req)

		entry := accessLine(t, buf)
		want := map[string]any{
			"level":     "INFO",
			"route":     "/empenhos/uasg/:uasg",
			"path":      "/empenhos/uasg/160001",
			"query":     "page=2",
			"user_id":   "9",
			"user_name": "Maria",
			"user_role": "Usuario_Nivel_2",
		}
		for k, v := range want {
			if entry[k] != v {
				t.Errorf("%s = %v, want %v", k, entry[k], v)
			}
		}
		if entry["status"] != float64(http.StatusOK) {
			t.Errorf("status = %v", entry["status"])
		}
		if _, ok := entry["errors"]; ok {
			t.Errorf("errors presente sem falha: %v", entry["errors"])
		}
	})

	t.Run("rota inexistente", func(t *testing.T) {
		buf := captureLogs(t)
		router := gin.New()
		router.Use(RequestLogger())

		router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/nada", nil))

		entry := accessLine(t, buf)
		if entry["route"] != "sem_rota" || entry["level"] != "WARN" {
			t.Errorf("route = %v level = %v", entry["route"], entry["level"])
		}
	})

	t.Run("panic registrado na linha de acesso", func(t *testing.T) {
		buf := captureLogs(t)
		router := gin.New()
		router.Use(RequestID(), RequestLogger(), Recovery())
		router.GET("/empenhos/:id", func(c *gin.Context) {
			panic("falha inesperada")
		})

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/empenhos/42", nil))

		if w.Code != http.StatusInternalServerError {
			t.Fatalf("status = %d, want 500", w.Code)
		}
		entry := accessLine(t, buf)
		if entry["level"] != "ERROR" || entry["route"] != "/empenhos/:id" {
			t.Errorf("level = %v route = %v", entry["level"], entry["route"])
		}
		if errs, _ := entry["errors"].(string); !strings.Contains(errs, "panic: falha inesperada") {
			t.Errorf("errors = %v", entry["errors"])
		}
		if !strings.Contains(buf.String(), `"msg":"panic recuperado"`) {
			t.Errorf("panic não registrado: %s", buf.String())
		}
	})
}

func TestJWTAuthMiddleware(t *testing.T) {
	const secret = "segredo-de-teste"

	valid, err := GenerateToken("7", "Maria", "Usuario_Nivel_2", secret, time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken() error = %v", err)
	}
	expired, _ := GenerateToken("7", "Maria", "Usuario_Nivel_2", secret, -time.Hour)
	otherSecret, _ := GenerateToken("7", "Maria", "Usuario_Nivel_2", "outro", time.Hour)

	router := gin.New()
	router.Use(JWTAuthMiddleware(secret))
	router.GET("/me", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"id": GetUserID(c), "name": GetUserName(c), "role": GetUserRole(c)})
	})

	tests := []struct {
		name   string
		header string
		want   int
	}{
		{"token válido", "Bearer " + valid, http.StatusOK},
		{"sem header", "", http.StatusUnauthorized},
		{"sem Bearer", valid, http.StatusUnauthorized},
		{"token expirado", "Bearer " + expired, http.StatusUnauthorized},
		{"assinatura diferente", "Bearer " + otherSecret, http.StatusUnauthorized},
		{"token malformado", "Bearer abc.def.ghi", http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			if w.Code != tt.want {
				t.Errorf("status = %d, want %d", w.Code, tt.want)
			}
			if tt.want == http.StatusOK && !strings.Contains(w.Body.String(), `"role":"Usuario_Nivel_2"`) {
				t.Errorf("body = %s", w.Body.String())
			}
		})
	}
}

func TestExtractUserContext(t *testing.T) {
	router := gin.New()
	router.Use(ExtractUserContext())
	router.GET("/me", func(c *gin.Context) {
		c.String(http.StatusOK, GetUserID(c)+"|"+GetUserRole(c))
	})

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("X-User-ID", "9")
	req.Header.Set("X-User-Permission", "Administrador")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Body.String() != "9|Administrador" {
		t.Errorf("body = %q", w.Body.String())
	}
}

type staticAuthorizer map[string]bool

func (a staticAuthorizer) Can(_ context.Context, role, resource string, action services.Action) bool {
	return a[role+"|"+resource+"|"+string(action)]
}

type recordingAuditor struct {
	mu      sync.Mutex
	entries []models.AuditEntry
}

func (r *recordingAuditor) Record(_ context.Context, entry models.AuditEntry) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, entry)
}

func TestRequirePermission(t *testing.T) {
	authz := staticAuthorizer{"Usuario_Nivel_1|empenhos|view": true}
	auditor := &recordingAuditor{}

	router := gin.New()
	router.Use(ExtractUserContext())
	router.GET("/empenhos", RequirePermission(authz, auditor, "empenhos", services.ActionView), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})

	tests := []struct {
		name string
		role string
		want int
	}{
		{"permitido", "Usuario_Nivel_1", http.StatusNoContent},
		{"negado", "Investidor", http.StatusForbidden},
		{"sem usuário", "", http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/empenhos", nil)
			req.Header.Set("X-User-Permission", tt.role)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			if w.Code != tt.want {
				t.Errorf("status = %d, want %d", w.Code, tt.want)
			}
		})
	}

	if len(auditor.entries) != 2 {
		t.Fatalf("audited %d denials, want 2", len(auditor.entries))
	}
	if e := auditor.entries[0]; e.Action != services.AuditAccessDenied || e.Table != "empenhos" {
		t.Errorf("entry = %+v", e)
	}
}
