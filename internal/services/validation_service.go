package services

import (
	"context"
	"fmt"
	"runtime/debug"
	"time"

	"github.com/jonasbrito1/LicitaSis-sub003/internal/models"
	"github.com/jonasbrito1/LicitaSis-sub003/internal/observability"
	"github.com/jonasbrito1/LicitaSis-sub003/internal/store"
	"github.com/jonasbrito1/LicitaSis-sub003/internal/validation"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

// LookupGateway são as consultas somente leitura de que a validação precisa.
// Um registro inexistente é devolvido como nil sem erro.
type LookupGateway interface {
	FindEmpenho(ctx context.Context, numero, uasg string) (*models.EmpenhoRecord, error)
	FindClientByUASG(ctx context.Context, uasg string) (*models.ClientRecord, error)
	FindProduct(ctx context.Context, id int64) (*models.ProductRecord, error)
	CountEmpenhosByPregao(ctx context.Context, pregao, uasg string) (int, error)
	ClientHistory(ctx context.Context, uasg string) (*models.ClientHistory, error)
}

// ValidationService executa as consultas, avalia as regras e monta o relatório
type ValidationService struct {
	gateway   LookupGateway
	evaluator *validation.Evaluator
	location  *time.Location
	now       func() time.Time
}

// NewValidationService cria o serviço; loc define o "hoje" das regras de data
func NewValidationService(gateway LookupGateway, loc *time.Location) *ValidationService {
	if loc == nil {
		loc = time.UTC
	}
	return &ValidationService{
		gateway:   gateway,
		evaluator: validation.NewEvaluator(),
		location:  loc,
		now:       time.Now,
	}
}

// SetClock substitui o relógio usado como referência de data
func (s *ValidationService) SetClock(now func() time.Time) {
	s.now = now
}

// Validate avalia a submissão. Qualquer falha de consulta interrompe a validação
// com um *AbortError; nunca é tratada como "registro não encontrado".
func (s *ValidationService) Validate(ctx context.Context, sub *models.EmpenhoSubmission) (report *models.Report, err error) {
	ctx, span := observability.Tracer().Start(ctx, "validation.validate")
	defer span.End()

	defer func() {
		if r := recover(); r != nil {
			observability.WithContext(ctx).Error("panic durante validação de empenho",
				"panic", r,
				"stack", string(debug.Stack()),
			)
			span.SetStatus(codes.Error, "panic")
			report = nil
			err = &AbortError{
				Finding: models.NewError("system", "Erro interno do sistema",
					models.SystemErrorDetails{Message: fmt.Sprint(r)}),
				Err: fmt.Errorf("panic: %v", r),
			}
		}
	}()

	if sub == nil {
		sub = &models.EmpenhoSubmission{}
	}
	now := s.now().In(s.location)

	lk, err := s.loadLookups(ctx, sub, now)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "falha na consulta")
		return nil, &AbortError{
			Finding: models.NewError("database", "Erro de conexão com banco de dados",
				models.DatabaseErrorDetails{ErrorCode: store.ErrorCode(err)}),
			Err: err,
		}
	}

	report = validation.BuildReport(s.evaluator.Evaluate(sub, lk), now)

	span.SetAttributes(
		attribute.Bool("validation.valid", report.Valid),
		attribute.Int("validation.errors", report.Summary.TotalErrors),
		attribute.Int("validation.warnings", report.Summary.TotalWarnings),
		attribute.Int("validation.quality_score", report.Summary.QualityScore),
	)

	return report, nil
}

// loadLookups executa, em sequência, apenas as consultas que a submissão exige
func (s *ValidationService) loadLookups(ctx context.Context, sub *models.EmpenhoSubmission, now time.Time) (*validation.Lookups, error) {
	plan := validation.PlanLookups(sub)
	lk := &validation.Lookups{
		Now:      now,
		Products: make(map[int64]*models.ProductRecord, len(plan.ProductIDs)),
	}

	if plan.CheckDuplicate {
		err := s.traced(ctx, "empenho_duplicado", func(ctx context.Context) (err error) {
			lk.ExistingEmpenho, err = s.gateway.FindEmpenho(ctx, plan.Numero, plan.UASG)
			return err
		})
		if err != nil {
			return nil, err
		}
	}

	if plan.LookupClient {
		err := s.traced(ctx, "cliente", func(ctx context.Context) (err error) {
			lk.Client, err = s.gateway.FindClientByUASG(ctx, plan.UASG)
			return err
		})
		if err != nil {
			return nil, err
		}
	}

	for _, id := range plan.ProductIDs {
		err := s.traced(ctx, "produto", func(ctx context.Context) error {
			p, err := s.gateway.FindProduct(ctx, id)
			if err != nil {
				return err
			}
			lk.Products[id] = p
			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	if plan.CountPregao {
		err := s.traced(ctx, "pregao", func(ctx context.Context) (err error) {
			lk.PregaoCount, err = s.gateway.CountEmpenhosByPregao(ctx, plan.Pregao, plan.UASG)
			return err
		})
		if err != nil {
			return nil, err
		}
	}

	if plan.LoadHistory {
		err := s.traced(ctx, "historico_cliente", func(ctx context.Context) (err error) {
			lk.History, err = s.gateway.ClientHistory(ctx, plan.UASG)
			return err
		})
		if err != nil {
			return nil, err
		}
	}

	return lk, nil
}

func (s *ValidationService) traced(ctx context.Context, lookup string, fn func(context.Context) error) error {
	ctx, span := observability.Tracer().Start(ctx, "lookup."+lookup)
	defer span.End()

	if err := fn(ctx); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		observability.WithContext(ctx).Error("falha na consulta de validação", "lookup", lookup, "error", err)
		return err
	}
	return nil
}
