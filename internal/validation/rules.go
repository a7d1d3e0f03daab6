// Package validation implementa o motor de regras de negócio que avalia um
// empenho candidato contra os dados já cadastrados.
//
// O motor é puro: todas as consultas ao banco são feitas antes pelo orquestrador
// (services.ValidationService) e chegam aqui como Lookups. Cada regra é uma função
// independente que devolve zero ou mais achados; o Evaluator executa as regras na
// ordem do registro e nunca interrompe a avaliação por causa de um achado.
package validation

import (
	"time"

	"github.com/jonasbrito1/LicitaSis-sub003/internal/models"
)

// Lookups reúne os resultados das consultas feitas antes da avaliação
type Lookups struct {
	// Now é o instante de referência ("hoje") no fuso da aplicação
	Now time.Time

	// ExistingEmpenho é o empenho já cadastrado com o mesmo número e UASG
	ExistingEmpenho *models.EmpenhoRecord

	// Client é o cliente cadastrado com a UASG informada
	Client *models.ClientRecord

	// Products guarda o resultado da consulta de cada produto_id.
	// Um valor nil significa que o produto não existe no catálogo.
	Products map[int64]*models.ProductRecord

	// PregaoCount é o número de empenhos com o mesmo pregão e UASG
	PregaoCount int

	// History é o agregado dos empenhos anteriores da UASG
	History *models.ClientHistory
}

// Product retorna o produto consultado e se ele existe no catálogo
func (l *Lookups) Product(id int64) (*models.ProductRecord, bool) {
	if l == nil || l.Products == nil {
		return nil, false
	}
	p := l.Products[id]
	return p, p != nil
}

// Rule é uma regra de validação nomeada
type Rule struct {
	Name  string
	Check func(sub *models.EmpenhoSubmission, lk *Lookups) []models.Finding
}

// DefaultRules retorna o registro de regras na ordem de avaliação
func DefaultRules() []Rule {
	return []Rule{
		{Name: "empenho_duplicado", Check: checkDuplicateEmpenho},
		{Name: "formato_numero", Check: checkNumeroFormat},
		{Name: "uasg", Check: checkUASG},
		{Name: "data_empenho", Check: checkDataEmpenho},
		{Name: "produtos", Check: checkProdutos},
		{Name: "valor_total", Check: checkValorTotal},
		{Name: "classificacao", Check: checkClassificacao},
		{Name: "prioridade", Check: checkPrioridade},
		{Name: "pregao", Check: checkPregao},
		{Name: "observacao", Check: checkObservacao},
		{Name: "historico_cliente", Check: checkHistoricoCliente},
	}
}

// LookupPlan descreve as consultas que a submissão exige
type LookupPlan struct {
	Numero string
	UASG   string
	Pregao string

	CheckDuplicate bool
	LookupClient   bool
	CountPregao    bool
	LoadHistory    bool

	// ProductIDs na ordem de primeira ocorrência, sem repetição
	ProductIDs []int64
}

// PlanLookups decide quais consultas são necessárias para avaliar a submissão
func PlanLookups(sub *models.EmpenhoSubmission) LookupPlan {
	numero, _ := models.Trimmed(sub.Numero)
	uasg, _ := models.Trimmed(sub.UASG)
	pregao, _ := models.Trimmed(sub.Pregao)

	plan := LookupPlan{
		Numero:         numero,
		UASG:           uasg,
		Pregao:         pregao,
		CheckDuplicate: numero != "" && uasg != "",
		LookupClient:   uasg != "",
		CountPregao:    pregao != "" && uasg != "",
		LoadHistory:    uasg != "",
	}

	seen := make(map[int64]bool)
	for _, item := range sub.Produtos {
		id, ok := item.CatalogID()
		if !ok || seen[id] {
			continue
		}
		seen[id] = true
		plan.ProductIDs = append(plan.ProductIDs, id)
	}

	return plan
}
