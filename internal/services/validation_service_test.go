package services

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/jonasbrito1/LicitaSis-sub003/internal/models"
	"github.com/jonasbrito1/LicitaSis-sub003/internal/store"
)

// fakeGateway responde às consultas a partir de mapas em memória
type fakeGateway struct {
	empenhos    map[string]*models.EmpenhoRecord
	clients     map[string]*models.ClientRecord
	products    map[int64]*models.ProductRecord
	pregoes     map[string]int
	history     map[string]*models.ClientHistory
	empenhoList map[string][]models.EmpenhoRecord

	failOn string
	err    error
	panics bool
	calls  []string
}

func (f *fakeGateway) fail(op string) error {
	f.calls = append(f.calls, op)
	if f.panics && f.failOn == op {
		panic("consulta quebrada")
	}
	if f.failOn == op {
		return f.err
	}
	return nil
}

func (f *fakeGateway) FindEmpenho(_ context.Context, numero, uasg string) (*models.EmpenhoRecord, error) {
	if err := f.fail("empenho"); err != nil {
		return nil, err
	}
	return f.empenhos[numero+"|"+uasg], nil
}

func (f *fakeGateway) FindClientByUASG(_ context.Context, uasg string) (*models.ClientRecord, error) {
	if err := f.fail("cliente"); err != nil {
		return nil, err
	}
	return f.clients[uasg], nil
}

func (f *fakeGateway) FindProduct(_ context.Context, id int64) (*models.ProductRecord, error) {
	if err := f.fail("produto"); err != nil {
		return nil, err
	}
	return f.products[id], nil
}

func (f *fakeGateway) CountEmpenhosByPregao(_ context.Context, pregao, uasg string) (int, error) {
	if err := f.fail("pregao"); err != nil {
		return 0, err
	}
	return f.pregoes[pregao+"|"+uasg], nil
}

func (f *fakeGateway) ClientHistory(_ context.Context, uasg string) (*models.ClientHistory, error) {
	if err := f.fail("historico"); err != nil {
		return nil, err
	}
	if h, ok := f.history[uasg]; ok {
		return h, nil
	}
	return &models.ClientHistory{}, nil
}

func (f *fakeGateway) ListEmpenhosByUASG(_ context.Context, uasg string, limit int) ([]models.EmpenhoRecord, error) {
	if err := f.fail("lista"); err != nil {
		return nil, err
	}
	list := f.empenhoList[uasg]
	if len(list) > limit {
		list = list[:limit]
	}
	return list, nil
}

var brt = time.FixedZone("BRT", -3*60*60)

func fixedClock() time.Time {
	return time.Date(2026, 10, 19, 14, 30, 0, 0, brt)
}

func str(s string) *models.FlexString {
	v := models.FlexString(s)
	return &v
}

func newValidationService(gw *fakeGateway) *ValidationService {
	svc := NewValidationService(gw, brt)
	svc.SetClock(fixedClock)
	return svc
}

func TestValidateEndToEnd(t *testing.T) {
	gw := &fakeGateway{}
	sub := &models.EmpenhoSubmission{
		Numero: str("EMP-001"),
		UASG:   str("123456"),
		Produtos: []models.LineItem{
			{Nome: str("Caneta Azul"), Quantidade: 10, ValorUnitario: 2.5},
		},
	}

	report, err := newValidationService(gw).Validate(context.Background(), sub)
	if err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if !report.Valid || report.Summary.ValorTotal != 25 {
		t.Errorf("Valid = %v, ValorTotal = %v", report.Valid, report.Summary.ValorTotal)
	}
	if report.Summary.QualityScore != 95 || report.Summary.QualityLevel != "Excelente" {
		t.Errorf("score = %d %q", report.Summary.QualityScore, report.Summary.QualityLevel)
	}

	want := []string{"empenho", "cliente", "historico"}
	if fmt.Sprint(gw.calls) != fmt.Sprint(want) {
		t.Errorf("calls = %v, want %v", gw.calls, want)
	}
}

func TestValidateDuplicate(t *testing.T) {
	gw := &fakeGateway{
		empenhos: map[string]*models.EmpenhoRecord{
			"EMP-001|123456": {ID: 1, ClienteNome: "Hospital Federal", CreatedAt: time.Date(2026, 10, 1, 8, 0, 0, 0, brt)},
		},
	}
	sub := &models.EmpenhoSubmission{Numero: str("EMP-001"), UASG: str(" 123456 ")}

	report, err := newValidationService(gw).Validate(context.Background(), sub)
	if err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if report.Valid || len(report.Errors) != 1 || report.Errors[0].Field != "numero" {
		t.Fatalf("Errors = %+v", report.Errors)
	}
	details, ok := report.Errors[0].Details.(models.DuplicateDetails)
	if !ok || details.Cliente != "Hospital Federal" {
		t.Errorf("Details = %+v", report.Errors[0].Details)
	}
}

func TestValidateProductLookups(t *testing.T) {
	gw := &fakeGateway{
		products: map[int64]*models.ProductRecord{
			7: {ID: 7, Nome: "Caneta Azul", PrecoVenda: 2.5, CustoTotal: 1, ControlaEstoque: true, EstoqueAtual: 5},
		},
	}
	sub := &models.EmpenhoSubmission{Produtos: []models.LineItem{
		{Nome: str("Caneta Azul"), Quantidade: 10, ValorUnitario: 2.5, ProdutoID: str("7")},
		{Nome: str("Grampeador"), Quantidade: 1, ValorUnitario: 30, ProdutoID: str("8")},
		{Nome: str("Caneta Preta"), Quantidade: 1, ValorUnitario: 2.5, ProdutoID: str("7")},
	}}

	report, err := newValidationService(gw).Validate(context.Background(), sub)
	if err != nil {
		t.Fatalf("Validate() error = %v", err)
	}

	if len(gw.calls) != 2 {
		t.Errorf("calls = %v, want one lookup per distinct produto_id", gw.calls)
	}

	fields := map[string]bool{}
	for _, f := range report.Warnings {
		fields[f.Field] = true
	}
	if !fields["produto_0_estoque"] || !fields["produto_1_id"] {
		t.Errorf("Warnings = %+v", report.Warnings)
	}
}

func TestValidateStorageFailureFailsClosed(t *testing.T) {
	lookups := []string{"empenho", "cliente", "produto", "pregao", "historico"}

	for _, op := range lookups {
		t.Run(op, func(t *testing.T) {
			gw := &fakeGateway{
				failOn: op,
				err:    fmt.Errorf("%w: consulta: %w", store.ErrQuery, &mysql.MySQLError{Number: 2013, Message: "Lost connection"}),
			}
			sub := &models.EmpenhoSubmission{
				Numero:   str("EMP-001"),
				UASG:     str("123456"),
				Pregao:   str("PE 1/2026"),
				Produtos: []models.LineItem{{Nome: str("Caneta"), Quantidade: 1, ValorUnitario: 2, ProdutoID: str("7")}},
			}

			report, err := newValidationService(gw).Validate(context.Background(), sub)
			if report != nil {
				t.Errorf("report = %+v, want nil", report)
			}

			var abort *AbortError
			if !errors.As(err, &abort) {
				t.Fatalf("error = %v, want *AbortError", err)
			}
			if abort.Finding.Field != "database" || abort.Finding.Severity != models.SeverityError {
				t.Errorf("Finding = %+v", abort.Finding)
			}
			if d, ok := abort.Finding.Details.(models.DatabaseErrorDetails); !ok || d.ErrorCode != 2013 {
				t.Errorf("Details = %+v", abort.Finding.Details)
			}
			if !errors.Is(err, store.ErrQuery) {
				t.Error("abort error should wrap store.ErrQuery")
			}
			if gw.calls[len(gw.calls)-1] != op {
				t.Errorf("lookups continued after failure: %v", gw.calls)
			}
		})
	}
}

func TestValidatePanicBecomesSystemFinding(t *testing.T) {
	gw := &fakeGateway{failOn: "cliente", panics: true}

	_, err := newValidationService(gw).Validate(context.Background(), &models.EmpenhoSubmission{UASG: str("123456")})

	var abort *AbortError
	if !errors.As(err, &abort) {
		t.Fatalf("error = %v, want *AbortError", err)
	}
	if abort.Finding.Field != "system" {
		t.Errorf("Field = %q, want system", abort.Finding.Field)
	}
	if d, ok := abort.Finding.Details.(models.SystemErrorDetails); !ok || d.Message != "consulta quebrada" {
		t.Errorf("Details = %+v", abort.Finding.Details)
	}
}

func TestValidateEmptySubmission(t *testing.T) {
	gw := &fakeGateway{}
	report, err := newValidationService(gw).Validate(context.Background(), nil)
	if err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if !report.Valid || len(gw.calls) != 0 {
		t.Errorf("Valid = %v, calls = %v", report.Valid, gw.calls)
	}
	if report.Summary.Timestamp != "2026-10-19 14:30:00" {
		t.Errorf("Timestamp = %q", report.Summary.Timestamp)
	}
}

func TestValidateOverflowingTotalIsReported(t *testing.T) {
	sub := &models.EmpenhoSubmission{Produtos: []models.LineItem{
		{Nome: str("Caneta"), Quantidade: 1e200, ValorUnitario: 1e200},
	}}

	report, err := newValidationService(&fakeGateway{}).Validate(context.Background(), sub)
	if err != nil {
		t.Fatalf("Validate() error = %v, want a report", err)
	}
	if report.Valid || len(report.Errors) != 1 || report.Errors[0].Field != "valor_total" {
		t.Errorf("errors = %+v", report.Errors)
	}
	if len(report.Warnings) != 2 {
		t.Errorf("warnings = %+v, want quantity and unit price", report.Warnings)
	}
}
