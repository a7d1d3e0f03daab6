package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jonasbrito1/LicitaSis-sub003/internal/models"
)

func newEmpenhoService(gw *fakeGateway) *EmpenhoService {
	svc := NewEmpenhoService(gw, brt)
	svc.SetClock(fixedClock)
	return svc
}

func TestCheckDuplicate(t *testing.T) {
	gw := &fakeGateway{empenhos: map[string]*models.EmpenhoRecord{
		"EMP-001|123456": {ClienteNome: "Hospital Federal", CreatedAt: time.Date(2026, 10, 1, 11, 0, 0, 0, time.UTC)},
	}}
	svc := newEmpenhoService(gw)

	t.Run("existente", func(t *testing.T) {
		got, err := svc.CheckDuplicate(context.Background(), " EMP-001 ", "123456")
		if err != nil {
			t.Fatalf("CheckDuplicate() error = %v", err)
		}
		if !got.Exists || got.ClienteNome != "Hospital Federal" || got.CreatedAt != "2026-10-01 08:00:00" {
			t.Errorf("got = %+v", got)
		}
		if got.Message != "Empenho EMP-001 já existe para a UASG 123456" {
			t.Errorf("Message = %q", got.Message)
		}
	})

	t.Run("disponível", func(t *testing.T) {
		got, err := svc.CheckDuplicate(context.Background(), "EMP-002", "123456")
		if err != nil || got.Exists {
			t.Errorf("got = %+v, %v", got, err)
		}
	})

	t.Run("parâmetros em branco", func(t *testing.T) {
		calls := len(gw.calls)
		got, err := svc.CheckDuplicate(context.Background(), "", "123456")
		if err != nil || got.Exists || len(gw.calls) != calls {
			t.Errorf("got = %+v, %v, calls = %v", got, err, gw.calls)
		}
	})

	t.Run("falha do banco", func(t *testing.T) {
		failing := newEmpenhoService(&fakeGateway{failOn: "empenho", err: errors.New("timeout")})
		if _, err := failing.CheckDuplicate(context.Background(), "EMP-001", "123456"); err == nil {
			t.Error("expected error")
		}
	})
}

func TestListByUASG(t *testing.T) {
	day := func(y int, m time.Month, d int) *time.Time {
		t := time.Date(y, m, d, 0, 0, 0, 0, brt)
		return &t
	}
	created := time.Date(2026, 10, 18, 12, 0, 0, 0, brt)

	gw := &fakeGateway{empenhoList: map[string][]models.EmpenhoRecord{
		"123456": {
			{ID: 4, Numero: "EMP-004", Data: day(2026, 10, 10), ValorTotalEmpenho: 100, Classificacao: "Pendente", CreatedAt: created},
			{ID: 3, Numero: "EMP-003", Data: day(2026, 9, 18), ValorTotalEmpenho: 200, Classificacao: "Faturado", CreatedAt: created},
			{ID: 2, Numero: "EMP-002", Data: day(2026, 9, 1), ValorTotalEmpenho: 300, Classificacao: "Pago", CreatedAt: created},
			{ID: 1, Numero: "EMP-001", ValorTotalEmpenho: 400, Classificacao: "Pendente", CreatedAt: time.Date(2026, 8, 1, 9, 0, 0, 0, brt)},
		},
	}}

	got, err := newEmpenhoService(gw).ListByUASG(context.Background(), "123456")
	if err != nil {
		t.Fatalf("ListByUASG() error = %v", err)
	}

	wantDias := []int{9, 31, 48, 79}
	for i, e := range got.Empenhos {
		if e.DiasDesdeEmpenho != wantDias[i] {
			t.Errorf("empenho %s: dias = %d, want %d", e.Numero, e.DiasDesdeEmpenho, wantDias[i])
		}
	}

	want := models.EstatisticasUASG{TotalEmpenhos: 4, ValorTotal: 1000, EmAtraso: 2, ValorMedio: 250}
	if got.Estatisticas != want {
		t.Errorf("Estatisticas = %+v, want %+v", got.Estatisticas, want)
	}
	if got.Empenhos[3].Data != "" {
		t.Errorf("Data = %q, want empty when unknown", got.Empenhos[3].Data)
	}
}

func TestListByUASGEmpty(t *testing.T) {
	got, err := newEmpenhoService(&fakeGateway{}).ListByUASG(context.Background(), "999999")
	if err != nil {
		t.Fatalf("ListByUASG() error = %v", err)
	}
	if got.Estatisticas.TotalEmpenhos != 0 || got.Message == "" || got.Empenhos == nil {
		t.Errorf("got = %+v", got)
	}

	if _, err := newEmpenhoService(&fakeGateway{}).ListByUASG(context.Background(), " "); !errors.Is(err, ErrUASGObrigatoria) {
		t.Errorf("error = %v, want ErrUASGObrigatoria", err)
	}
}

func TestFindClient(t *testing.T) {
	gw := &fakeGateway{clients: map[string]*models.ClientRecord{"12345": {UASG: "12345", NomeOrgaos: "Hospital Federal"}}}
	svc := newEmpenhoService(gw)

	client, err := svc.FindClient(context.Background(), "12345")
	if err != nil || client.NomeOrgaos != "Hospital Federal" {
		t.Errorf("FindClient() = %+v, %v", client, err)
	}

	if _, err := svc.FindClient(context.Background(), "54321"); !errors.Is(err, ErrClienteNaoEncontrado) {
		t.Errorf("error = %v, want ErrClienteNaoEncontrado", err)
	}
}
