package validation

import (
	"math"
	"time"

	"github.com/jonasbrito1/LicitaSis-sub003/internal/models"
	"github.com/jonasbrito1/LicitaSis-sub003/internal/utils"
)

const (
	scoreInicial        = 100
	penalidadePorErro   = 25
	penalidadePorAlerta = 5

	timestampLayout = "2006-01-02 15:04:05"
)

// Níveis de qualidade do empenho
const (
	QualityExcelente       = "Excelente"
	QualityBom             = "Bom"
	QualityRegular         = "Regular"
	QualityPrecisaMelhorar = "Precisa melhorar"
)

// QualityScore calcula 100 - 25 por erro - 5 por alerta, limitado a [0, 100]
func QualityScore(errors, warnings int) int {
	score := scoreInicial - errors*penalidadePorErro - warnings*penalidadePorAlerta
	if score < 0 {
		return 0
	}
	if score > scoreInicial {
		return scoreInicial
	}
	return score
}

// QualityLevel converte o score em um nível legível
func QualityLevel(score int) string {
	switch {
	case score >= 90:
		return QualityExcelente
	case score >= 70:
		return QualityBom
	case score >= 50:
		return QualityRegular
	default:
		return QualityPrecisaMelhorar
	}
}

// BuildReport separa os achados por severidade e calcula o resumo
func BuildReport(ev *Evaluation, now time.Time) *models.Report {
	report := &models.Report{
		Errors:   []models.Finding{},
		Warnings: []models.Finding{},
		Info:     []models.Finding{},
	}

	for _, f := range ev.Findings {
		switch f.Severity {
		case models.SeverityError:
			report.Errors = append(report.Errors, f)
		case models.SeverityWarning:
			report.Warnings = append(report.Warnings, f)
		default:
			report.Info = append(report.Info, f)
		}
	}

	report.Valid = len(report.Errors) == 0
	report.Summary = Summarize(report.Errors, report.Warnings, report.Info, ev.ValorTotal, ev.ProdutosCount, now)

	return report
}

// valorCodificavel limita o valor ao maior float64 finito; NaN vira 0.
// encoding/json não serializa ±Inf nem NaN.
func valorCodificavel(v float64) float64 {
	switch {
	case math.IsNaN(v):
		return 0
	case math.IsInf(v, 1):
		return math.MaxFloat64
	case math.IsInf(v, -1):
		return -math.MaxFloat64
	}
	return v
}

// Summarize agrega contagens, valor total e score de qualidade
func Summarize(errs, warnings, info []models.Finding, valorTotal float64, produtosCount int, now time.Time) models.Summary {
	score := QualityScore(len(errs), len(warnings))

	return models.Summary{
		TotalErrors:         len(errs),
		TotalWarnings:       len(warnings),
		TotalInfo:           len(info),
		ProdutosCount:       produtosCount,
		ValorTotal:          valorCodificavel(valorTotal),
		ValorTotalFormatado: utils.FormatarMoeda(valorTotal),
		ValidacaoCompleta:   len(errs) == 0,
		RequerAtencao:       len(warnings) > 0,
		Timestamp:           now.Format(timestampLayout),
		QualityScore:        score,
		QualityLevel:        QualityLevel(score),
	}
}
