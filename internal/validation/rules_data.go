package validation

import (
	"fmt"
	"time"

	"github.com/jonasbrito1/LicitaSis-sub003/internal/models"
)

const dateLayout = "2006-01-02"

// checkDataEmpenho valida o formato da data e sinaliza datas futuras, antigas ou em fim de semana
func checkDataEmpenho(sub *models.EmpenhoSubmission, lk *Lookups) []models.Finding {
	if sub.DataEmpenho == nil {
		return nil
	}

	raw := sub.DataEmpenho.String()
	date, err := time.Parse(dateLayout, raw)
	if err != nil || date.Format(dateLayout) != raw {
		return []models.Finding{models.NewError("data_empenho", "Data do empenho inválida")}
	}

	now := time.Now()
	if lk != nil && !lk.Now.IsZero() {
		now = lk.Now
	}

	var findings []models.Finding

	diff := civilDay(date) - civilDay(now)
	days := int(diff)
	if days < 0 {
		days = -days
	}

	switch {
	case diff > 0:
		findings = append(findings, models.NewWarning("data_empenho", "Data do empenho é futura",
			models.FutureDateDetails{DiasFuturo: days}))
	case days > 365:
		findings = append(findings, models.NewWarning("data_empenho", "Data do empenho é muito antiga (mais de 1 ano)",
			models.PastDateDetails{DiasPassados: days}))
	case days > 90:
		findings = append(findings, models.NewInfo("data_empenho", fmt.Sprintf("Empenho com mais de 90 dias (%d dias)", days),
			models.PastDateDetails{DiasPassados: days}))
	}

	if wd := date.Weekday(); wd == time.Saturday || wd == time.Sunday {
		findings = append(findings, models.NewInfo("data_empenho", "Data do empenho é final de semana"))
	}

	return findings
}

// civilDay converte a data do calendário de t em um número de dias corridos
func civilDay(t time.Time) int64 {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC).Unix() / 86400
}
