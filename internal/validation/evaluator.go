package validation

import (
	"github.com/jonasbrito1/LicitaSis-sub003/internal/models"
)

// Evaluation é a saída bruta do Evaluator, antes da agregação
type Evaluation struct {
	Findings      []models.Finding
	ValorTotal    float64
	ProdutosCount int
}

// Evaluator executa um registro ordenado de regras
type Evaluator struct {
	rules []Rule
}

// NewEvaluator cria um avaliador com as regras informadas ou, sem argumentos, com DefaultRules
func NewEvaluator(rules ...Rule) *Evaluator {
	if len(rules) == 0 {
		rules = DefaultRules()
	}
	return &Evaluator{rules: rules}
}

// Rules retorna os nomes das regras na ordem de avaliação
func (e *Evaluator) Rules() []string {
	names := make([]string, len(e.rules))
	for i, r := range e.rules {
		names[i] = r.Name
	}
	return names
}

// Evaluate aplica todas as regras. Nenhuma regra interrompe as seguintes.
func (e *Evaluator) Evaluate(sub *models.EmpenhoSubmission, lk *Lookups) *Evaluation {
	if sub == nil {
		sub = &models.EmpenhoSubmission{}
	}

	ev := &Evaluation{
		Findings:      []models.Finding{},
		ValorTotal:    sub.ValorTotal(),
		ProdutosCount: len(sub.Produtos),
	}

	for _, rule := range e.rules {
		ev.Findings = append(ev.Findings, rule.Check(sub, lk)...)
	}

	return ev
}
