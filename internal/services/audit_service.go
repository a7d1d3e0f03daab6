package services

import (
	"context"
	"sync"
	"time"

	"github.com/jonasbrito1/LicitaSis-sub003/internal/models"
	"github.com/jonasbrito1/LicitaSis-sub003/internal/observability"
)

// Ações registradas em audit_log
const (
	AuditCreate       = "CREATE"
	AuditRead         = "READ"
	AuditUpdate       = "UPDATE"
	AuditDelete       = "DELETE"
	AuditLogin        = "LOGIN"
	AuditLogout       = "LOGOUT"
	AuditAccessDenied = "ACCESS_DENIED"
)

const defaultAuditTimeout = 3 * time.Second

// AuditStore grava registros de auditoria
type AuditStore interface {
	InsertAudit(ctx context.Context, entry models.AuditEntry) error
}

// Auditor registra ações sem bloquear quem chama
type Auditor interface {
	Record(ctx context.Context, entry models.AuditEntry)
}

// AuditService grava a auditoria em segundo plano. Falhas são apenas logadas.
type AuditService struct {
	store   AuditStore
	enabled bool
	timeout time.Duration
	wg      sync.WaitGroup
}

// NewAuditService cria o serviço; com enabled=false, Record não faz nada
func NewAuditService(store AuditStore, enabled bool) *AuditService {
	return &AuditService{
		store:   store,
		enabled: enabled,
		timeout: defaultAuditTimeout,
	}
}

// Record agenda a gravação da entrada. O cancelamento de ctx não interrompe a gravação.
func (s *AuditService) Record(ctx context.Context, entry models.AuditEntry) {
	if !s.enabled || s.store == nil {
		return
	}

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()

		writeCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.timeout)
		defer cancel()

		if err := s.store.InsertAudit(writeCtx, entry); err != nil {
			observability.WithContext(ctx).Error("falha ao gravar auditoria",
				"action", entry.Action,
				"table", entry.Table,
				"error", err,
			)
		}
	}()
}

// Wait aguarda as gravações pendentes
func (s *AuditService) Wait() {
	s.wg.Wait()
}
