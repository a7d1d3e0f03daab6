package validation

import (
	"fmt"
	"math"
	"strconv"

	"github.com/jonasbrito1/LicitaSis-sub003/internal/models"
	"github.com/jonasbrito1/LicitaSis-sub003/internal/utils"
)

const (
	nomeMinLength = 3
	nomeMaxLength = 255

	quantidadeMaxima = 999999

	valorUnitarioMaximo = 1000000
	valorUnitarioMinimo = 0.01

	// Divergência máxima, em %, entre o preço informado e o cadastrado
	desvioPrecoMaximo = 20.0

	margemBaixa = 5.0
	margemAlta  = 100.0

	valorTotalMuitoAlto = 10000000
	valorTotalAlto      = 1000000
	valorTotalMinimo    = 1
)

// checkProdutos valida cada item na ordem de envio e, ao final, os nomes repetidos
func checkProdutos(sub *models.EmpenhoSubmission, lk *Lookups) []models.Finding {
	if !sub.HasProdutos() {
		return nil
	}
	if len(sub.Produtos) == 0 {
		return []models.Finding{models.NewError("produtos", "Pelo menos um produto deve ser adicionado")}
	}

	var findings []models.Finding
	for index, item := range sub.Produtos {
		findings = append(findings, checkItem(index, item, lk)...)
	}
	findings = append(findings, checkNomesDuplicados(sub.Produtos)...)

	return findings
}

func checkItem(index int, item models.LineItem, lk *Lookups) []models.Finding {
	num := index + 1
	field := func(suffix string) string {
		return fmt.Sprintf("produto_%d_%s", index, suffix)
	}

	var findings []models.Finding

	nome, _ := models.Trimmed(item.Nome)
	if nome == "" {
		findings = append(findings, models.NewError(field("nome"), fmt.Sprintf("Nome do produto %d é obrigatório", num)))
	} else if n := utils.ContarCaracteres(nome); n < nomeMinLength {
		findings = append(findings, models.NewWarning(field("nome"), fmt.Sprintf("Nome do produto %d muito curto", num)))
	} else if n > nomeMaxLength {
		findings = append(findings, models.NewError(field("nome"), fmt.Sprintf("Nome do produto %d muito longo (máx. 255 caracteres)", num)))
	}

	quantidade := float64(item.Quantidade)
	switch {
	case quantidade <= 0:
		findings = append(findings, models.NewError(field("quantidade"), fmt.Sprintf("Quantidade do produto %d deve ser maior que zero", num)))
	case quantidade > quantidadeMaxima:
		findings = append(findings, models.NewWarning(field("quantidade"), fmt.Sprintf("Quantidade do produto %d muito alta", num)))
	case math.Mod(quantidade, 1) != 0 && quantidade < 1:
		// Somente quantidades entre 0 e 1 (ex.: 0.5); 1.5 não gera achado
		findings = append(findings, models.NewInfo(field("quantidade"), fmt.Sprintf("Produto %d com quantidade fracionária", num)))
	}

	valorUnitario := float64(item.ValorUnitario)
	switch {
	case valorUnitario <= 0:
		findings = append(findings, models.NewError(field("valor_unitario"), fmt.Sprintf("Valor unitário do produto %d deve ser maior que zero", num)))
	case valorUnitario > valorUnitarioMaximo:
		findings = append(findings, models.NewWarning(field("valor_unitario"), fmt.Sprintf("Valor unitário do produto %d muito alto", num)))
	case valorUnitario < valorUnitarioMinimo:
		findings = append(findings, models.NewWarning(field("valor_unitario"), fmt.Sprintf("Valor unitário do produto %d muito baixo", num)))
	}

	id, hasID := item.CatalogID()
	if !hasID {
		return findings
	}

	produto, found := lk.Product(id)
	if !found {
		return append(findings, models.NewWarning(field("id"), fmt.Sprintf("Produto %d não encontrado no cadastro", num)))
	}

	findings = append(findings, checkEstoque(field("estoque"), produto, quantidade)...)
	findings = append(findings, checkPreco(field("preco"), produto, valorUnitario)...)
	findings = append(findings, checkMargem(field("margem"), produto, valorUnitario)...)

	return findings
}

func checkEstoque(field string, produto *models.ProductRecord, quantidade float64) []models.Finding {
	if !produto.ControlaEstoque {
		return nil
	}

	estoque := produto.EstoqueAtual
	if quantidade > estoque {
		if estoque <= 0 {
			return []models.Finding{models.NewError(field, fmt.Sprintf("Produto '%s' sem estoque disponível", produto.Nome))}
		}
		return []models.Finding{models.NewWarning(field, fmt.Sprintf(
			"Produto '%s': quantidade solicitada (%s) maior que estoque disponível (%s)",
			produto.Nome, formatQuantity(quantidade), formatQuantity(estoque)))}
	}

	if estoque-quantidade <= produto.EstoqueMinimo {
		return []models.Finding{models.NewInfo(field, fmt.Sprintf("Produto '%s' ficará com estoque baixo após este empenho", produto.Nome))}
	}
	return nil
}

func checkPreco(field string, produto *models.ProductRecord, valorUnitario float64) []models.Finding {
	referencia := produto.ReferencePrice()
	if referencia <= 0 {
		return nil
	}

	desvio := (valorUnitario - referencia) / referencia * 100
	if math.Abs(desvio) <= desvioPrecoMaximo {
		return nil
	}

	direcao := "menor"
	if desvio > 0 {
		direcao = "maior"
	}

	return []models.Finding{models.NewWarning(field,
		fmt.Sprintf("Preço do produto '%s' %+.1f%% %s que o cadastrado", produto.Nome, desvio, direcao),
		models.PriceDetails{
			PrecoCadastrado:     referencia,
			PrecoInformado:      valorUnitario,
			DiferencaPercentual: desvio,
		})}
}

func checkMargem(field string, produto *models.ProductRecord, valorUnitario float64) []models.Finding {
	// Sem preço válido a margem não é definida; o erro de valor unitário já foi emitido
	if produto.CustoTotal <= 0 || valorUnitario <= 0 {
		return nil
	}

	margem := (valorUnitario - produto.CustoTotal) / valorUnitario * 100
	switch {
	case margem < 0:
		return []models.Finding{models.NewWarning(field, fmt.Sprintf("Produto '%s' com margem negativa (%.1f%%)", produto.Nome, margem))}
	case margem < margemBaixa:
		return []models.Finding{models.NewInfo(field, fmt.Sprintf("Produto '%s' com margem baixa (%.1f%%)", produto.Nome, margem))}
	case margem > margemAlta:
		return []models.Finding{models.NewInfo(field, fmt.Sprintf("Produto '%s' com margem muito alta (%.1f%%)", produto.Nome, margem))}
	}
	return nil
}

// checkNomesDuplicados emite um alerta por nome repetido, na ordem da primeira ocorrência
func checkNomesDuplicados(produtos []models.LineItem) []models.Finding {
	counts := make(map[string]int)
	var order []string

	for _, item := range produtos {
		nome, _ := models.Trimmed(item.Nome)
		key := utils.ChaveComparacao(nome)
		if key == "" {
			continue
		}
		if counts[key] == 0 {
			order = append(order, key)
		}
		counts[key]++
	}

	var findings []models.Finding
	for _, key := range order {
		if counts[key] > 1 {
			findings = append(findings, models.NewWarning("produtos_duplicados",
				fmt.Sprintf("Produto '%s' aparece %d vezes na lista", key, counts[key])))
		}
	}
	return findings
}

// checkValorTotal aplica os limites de valor total quando há produtos
func checkValorTotal(sub *models.EmpenhoSubmission, _ *Lookups) []models.Finding {
	if len(sub.Produtos) == 0 {
		return nil
	}

	total := sub.ValorTotal()
	switch {
	case !finito(total):
		return []models.Finding{models.NewError("valor_total", "Valor total do empenho excede o limite numérico")}
	case total > valorTotalMuitoAlto:
		return []models.Finding{models.NewWarning("valor_total",
			"Valor total do empenho muito alto: "+utils.FormatarMoeda(total),
			models.TotalDetails{ValorTotal: total})}
	case total < valorTotalMinimo:
		return []models.Finding{models.NewError("valor_total", "Valor total do empenho deve ser maior que R$ 1,00")}
	case total > valorTotalAlto:
		return []models.Finding{models.NewInfo("valor_total",
			"Empenho de alto valor: "+utils.FormatarMoeda(total),
			models.TotalDetails{ValorTotal: total})}
	}
	return nil
}

// finito indica se v é um número representável (nem ±Inf nem NaN)
func finito(v float64) bool {
	return !math.IsInf(v, 0) && !math.IsNaN(v)
}

func formatQuantity(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
