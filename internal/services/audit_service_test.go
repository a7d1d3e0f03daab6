package services

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/jonasbrito1/LicitaSis-sub003/internal/models"
)

type fakeAuditStore struct {
	mu      sync.Mutex
	entries []models.AuditEntry
	err     error
}

func (f *fakeAuditStore) InsertAudit(ctx context.Context, entry models.AuditEntry) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if ctx.Err() != nil {
		return ctx.Err()
	}
	f.entries = append(f.entries, entry)
	return f.err
}

func TestAuditServiceRecord(t *testing.T) {
	store := &fakeAuditStore{}
	svc := NewAuditService(store, true)

	ctx, cancel := context.WithCancel(context.Background())
	svc.Record(ctx, models.AuditEntry{Action: AuditRead, Table: "empenhos", UserID: "7"})
	cancel()
	svc.Wait()

	if len(store.entries) != 1 || store.entries[0].Action != AuditRead {
		t.Errorf("entries = %+v", store.entries)
	}
}

func TestAuditServiceDisabled(t *testing.T) {
	store := &fakeAuditStore{}
	svc := NewAuditService(store, false)

	svc.Record(context.Background(), models.AuditEntry{Action: AuditAccessDenied})
	svc.Wait()

	if len(store.entries) != 0 {
		t.Errorf("entries = %+v, want none", store.entries)
	}
}

func TestAuditServiceSwallowsErrors(t *testing.T) {
	store := &fakeAuditStore{err: errors.New("audit_log indisponível")}
	svc := NewAuditService(store, true)

	svc.Record(context.Background(), models.AuditEntry{Action: AuditRead})
	svc.Wait()

	if len(store.entries) != 1 {
		t.Errorf("entries = %d, want the attempt to be made", len(store.entries))
	}
}
