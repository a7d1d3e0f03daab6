package services

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/jonasbrito1/LicitaSis-sub003/internal/models"
)

const (
	empenhosPorUASGLimite = 20

	// Empenhos pendentes ou faturados há mais dias que isso contam como em atraso
	diasParaAtraso = 30
)

var classificacoesEmAberto = []string{string(models.ClassificacaoPendente), string(models.ClassificacaoFaturado)}

// EmpenhoStore são as consultas das telas de empenho e cliente
type EmpenhoStore interface {
	FindEmpenho(ctx context.Context, numero, uasg string) (*models.EmpenhoRecord, error)
	FindClientByUASG(ctx context.Context, uasg string) (*models.ClientRecord, error)
	ListEmpenhosByUASG(ctx context.Context, uasg string, limit int) ([]models.EmpenhoRecord, error)
}

// EmpenhoService atende as consultas auxiliares do cadastro de empenhos
type EmpenhoService struct {
	store    EmpenhoStore
	location *time.Location
	now      func() time.Time
}

// NewEmpenhoService cria o serviço
func NewEmpenhoService(store EmpenhoStore, loc *time.Location) *EmpenhoService {
	if loc == nil {
		loc = time.UTC
	}
	return &EmpenhoService{store: store, location: loc, now: time.Now}
}

// SetClock substitui o relógio usado no cálculo de dias
func (s *EmpenhoService) SetClock(now func() time.Time) {
	s.now = now
}

// CheckDuplicate verifica se o número já foi usado para a UASG
func (s *EmpenhoService) CheckDuplicate(ctx context.Context, numero, uasg string) (*models.DuplicateCheck, error) {
	numero = strings.TrimSpace(numero)
	uasg = strings.TrimSpace(uasg)
	if numero == "" || uasg == "" {
		return &models.DuplicateCheck{Exists: false, Message: "Parâmetros insuficientes"}, nil
	}

	existing, err := s.store.FindEmpenho(ctx, numero, uasg)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return &models.DuplicateCheck{Exists: false, Message: "Empenho disponível"}, nil
	}

	return &models.DuplicateCheck{
		Exists:      true,
		ClienteNome: existing.ClienteNome,
		CreatedAt:   existing.CreatedAt.In(s.location).Format("2006-01-02 15:04:05"),
		Message:     fmt.Sprintf("Empenho %s já existe para a UASG %s", numero, uasg),
	}, nil
}

// ListByUASG retorna os últimos empenhos da UASG com as estatísticas da listagem
func (s *EmpenhoService) ListByUASG(ctx context.Context, uasg string) (*models.EmpenhosPorUASG, error) {
	uasg = strings.TrimSpace(uasg)
	if uasg == "" {
		return nil, ErrUASGObrigatoria
	}

	records, err := s.store.ListEmpenhosByUASG(ctx, uasg, empenhosPorUASGLimite)
	if err != nil {
		return nil, err
	}

	today := s.now().In(s.location)
	result := &models.EmpenhosPorUASG{
		UASG:     uasg,
		Empenhos: make([]models.EmpenhoResumo, 0, len(records)),
	}

	for _, r := range records {
		resumo := models.EmpenhoResumo{
			ID:                r.ID,
			Numero:            r.Numero,
			ValorTotalEmpenho: r.ValorTotalEmpenho,
			Classificacao:     r.Classificacao,
			Pregao:            r.Pregao,
			CreatedAt:         r.CreatedAt.In(s.location).Format("2006-01-02 15:04:05"),
		}

		referencia := r.CreatedAt.In(s.location)
		if r.Data != nil {
			resumo.Data = r.Data.Format("2006-01-02")
			referencia = *r.Data
		}
		resumo.DiasDesdeEmpenho = diasEntre(referencia, today)

		result.Estatisticas.ValorTotal += r.ValorTotalEmpenho
		if slices.Contains(classificacoesEmAberto, r.Classificacao) && resumo.DiasDesdeEmpenho > diasParaAtraso {
			result.Estatisticas.EmAtraso++
		}

		result.Empenhos = append(result.Empenhos, resumo)
	}

	result.Estatisticas.TotalEmpenhos = len(result.Empenhos)
	if result.Estatisticas.TotalEmpenhos > 0 {
		result.Estatisticas.ValorMedio = result.Estatisticas.ValorTotal / float64(result.Estatisticas.TotalEmpenhos)
	} else {
		result.Message = "Nenhum empenho encontrado para esta UASG"
	}

	return result, nil
}

// FindClient retorna o cliente da UASG ou ErrClienteNaoEncontrado
func (s *EmpenhoService) FindClient(ctx context.Context, uasg string) (*models.ClientRecord, error) {
	uasg = strings.TrimSpace(uasg)
	if uasg == "" {
		return nil, ErrUASGObrigatoria
	}

	client, err := s.store.FindClientByUASG(ctx, uasg)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, ErrClienteNaoEncontrado
	}
	return client, nil
}

// diasEntre conta os dias de calendário de from até to
func diasEntre(from, to time.Time) int {
	fy, fm, fd := from.Date()
	ty, tm, td := to.Date()
	a := time.Date(fy, fm, fd, 0, 0, 0, 0, time.UTC)
	b := time.Date(ty, tm, td, 0, 0, 0, 0, time.UTC)
	return int(b.Sub(a).Hours() / 24)
}
