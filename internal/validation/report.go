package validation

import (
	"github.com/jonasbrito1/LicitaSis-sub003/internal/models"
)

// ToResponse serializa o Report no contrato JSON externo
func ToResponse(r *models.Report) models.ReportResponse {
	return models.ReportResponse{
		Valid:    r.Valid,
		Errors:   nonNil(r.Errors),
		Warnings: nonNil(r.Warnings),
		Info:     nonNil(r.Info),
		Summary:  r.Summary,
	}
}

// AbortResponse monta a resposta de uma validação que não pôde ser concluída:
// um único erro sintético e nenhum alerta ou informação
func AbortResponse(f models.Finding) models.ReportResponse {
	f.Severity = models.SeverityError
	return models.ReportResponse{
		Valid:    false,
		Errors:   []models.Finding{f},
		Warnings: []models.Finding{},
		Info:     []models.Finding{},
		Summary: models.AbortSummary{
			TotalErrors:       1,
			ValidacaoCompleta: false,
		},
	}
}

func nonNil(findings []models.Finding) []models.Finding {
	if findings == nil {
		return []models.Finding{}
	}
	return findings
}
