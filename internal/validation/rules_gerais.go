package validation

import (
	"fmt"
	"math"
	"slices"

	"github.com/jonasbrito1/LicitaSis-sub003/internal/models"
	"github.com/jonasbrito1/LicitaSis-sub003/internal/utils"
)

const (
	observacaoMaxLength = 1000

	// Desvio, em %, a partir do qual o valor é comparado à média histórica
	desvioHistoricoMaximo = 50.0
)

func checkClassificacao(sub *models.EmpenhoSubmission, _ *Lookups) []models.Finding {
	if sub.Classificacao == nil {
		return nil
	}
	if slices.Contains(models.Classificacoes, sub.Classificacao.String()) {
		return nil
	}
	return []models.Finding{models.NewError("classificacao", "Classificação inválida",
		models.OptionsDetails{OpcoesValidas: models.Classificacoes})}
}

// checkPrioridade não bloqueia: prioridade inválida é tratada como Normal
func checkPrioridade(sub *models.EmpenhoSubmission, _ *Lookups) []models.Finding {
	if sub.Prioridade == nil {
		return nil
	}
	if slices.Contains(models.Prioridades, sub.Prioridade.String()) {
		return nil
	}
	return []models.Finding{models.NewWarning("prioridade", "Prioridade inválida, usando 'Normal'",
		models.OptionsDetails{OpcoesValidas: models.Prioridades})}
}

func checkPregao(sub *models.EmpenhoSubmission, lk *Lookups) []models.Finding {
	pregao, _ := models.Trimmed(sub.Pregao)
	uasg, _ := models.Trimmed(sub.UASG)
	if pregao == "" || uasg == "" || lk == nil || lk.PregaoCount <= 0 {
		return nil
	}
	return []models.Finding{models.NewInfo("pregao",
		fmt.Sprintf("Já existem %d empenho(s) com este pregão para esta UASG", lk.PregaoCount))}
}

func checkObservacao(sub *models.EmpenhoSubmission, _ *Lookups) []models.Finding {
	observacao, _ := models.Trimmed(sub.Observacao)
	if utils.ContarCaracteres(observacao) <= observacaoMaxLength {
		return nil
	}
	return []models.Finding{models.NewWarning("observacao", "Observação muito longa (máx. 1000 caracteres)")}
}

// checkHistoricoCliente resume o histórico da UASG e compara o valor atual com a média
func checkHistoricoCliente(sub *models.EmpenhoSubmission, lk *Lookups) []models.Finding {
	uasg, _ := models.Trimmed(sub.UASG)
	if uasg == "" || lk == nil || lk.History == nil || lk.History.TotalEmpenhos <= 0 {
		return nil
	}

	hist := lk.History
	details := models.HistoryDetails{
		TotalEmpenhos: hist.TotalEmpenhos,
		ValorMedio:    hist.ValorMedio,
		ValorMaximo:   hist.ValorMaximo,
	}
	if hist.PrimeiroEmpenho != nil {
		details.ClienteDesde = hist.PrimeiroEmpenho.Format("2006-01-02 15:04:05")
	}

	findings := []models.Finding{models.NewInfo("historico_cliente", "Cliente possui histórico no sistema", details)}

	total := sub.ValorTotal()
	if finito(total) && total > 0 && hist.ValorMedio > 0 {
		desvio := (total - hist.ValorMedio) / hist.ValorMedio * 100
		if math.Abs(desvio) > desvioHistoricoMaximo {
			direcao := "menor"
			if desvio > 0 {
				direcao = "maior"
			}
			findings = append(findings, models.NewInfo("comparacao_historica",
				fmt.Sprintf("Valor %+.1f%% %s que a média histórica do cliente", desvio, direcao)))
		}
	}

	return findings
}
