package models

import (
	"bytes"
	"encoding/json"
	"errors"
	"regexp"
	"strconv"
	"strings"
)

// Classificacao é o status de ciclo de vida de um empenho
type Classificacao string

const (
	ClassificacaoPendente  Classificacao = "Pendente"
	ClassificacaoFaturado  Classificacao = "Faturado"
	ClassificacaoEntregue  Classificacao = "Entregue"
	ClassificacaoLiquidado Classificacao = "Liquidado"
	ClassificacaoPago      Classificacao = "Pago"
	ClassificacaoCancelado Classificacao = "Cancelado"
)

// Classificacoes lista as classificações válidas na ordem exibida ao usuário
var Classificacoes = []string{"Pendente", "Faturado", "Entregue", "Liquidado", "Pago", "Cancelado"}

// Prioridade de atendimento de um empenho
type Prioridade string

const (
	PrioridadeNormal  Prioridade = "Normal"
	PrioridadeAlta    Prioridade = "Alta"
	PrioridadeUrgente Prioridade = "Urgente"
)

// Prioridades lista as prioridades válidas
var Prioridades = []string{"Normal", "Alta", "Urgente"}

// EmpenhoSubmission representa um empenho candidato enviado para validação.
// Todos os campos são opcionais: campos ausentes desativam as regras correspondentes.
type EmpenhoSubmission struct {
	Numero        *FlexString `json:"numero"`
	UASG          *FlexString `json:"uasg"`
	DataEmpenho   *FlexString `json:"data_empenho"`
	Classificacao *FlexString `json:"classificacao"`
	Prioridade    *FlexString `json:"prioridade"`
	Pregao        *FlexString `json:"pregao"`
	Observacao    *FlexString `json:"observacao"`

	// nil quando o campo não foi enviado; vazio quando enviado como []
	Produtos []LineItem `json:"produtos"`
}

// LineItem representa um produto do empenho
type LineItem struct {
	Nome          *FlexString `json:"nome"`
	Quantidade    FlexNumber  `json:"quantidade"`
	ValorUnitario FlexNumber  `json:"valor_unitario"`
	ProdutoID     *FlexString `json:"produto_id"`
}

// Subtotal retorna quantidade * valor unitário
func (i LineItem) Subtotal() float64 {
	return float64(i.Quantidade) * float64(i.ValorUnitario)
}

// CatalogID retorna o ID do produto no catálogo e se ele foi informado.
// "", "0" e ausência contam como não informado.
func (i LineItem) CatalogID() (int64, bool) {
	if i.ProdutoID == nil {
		return 0, false
	}
	raw := i.ProdutoID.String()
	if raw == "" || raw == "0" {
		return 0, false
	}
	return leadingInt(strings.TrimSpace(raw)), true
}

// HasProdutos indica se o campo produtos foi enviado
func (s *EmpenhoSubmission) HasProdutos() bool {
	return s.Produtos != nil
}

// ValorTotal soma quantidade * valor unitário de todos os itens, na ordem de envio
func (s *EmpenhoSubmission) ValorTotal() float64 {
	total := 0.0
	for _, item := range s.Produtos {
		total += item.Subtotal()
	}
	return total
}

// Trimmed retorna o valor sem espaços nas bordas e se o campo foi enviado
func Trimmed(v *FlexString) (string, bool) {
	if v == nil {
		return "", false
	}
	return strings.TrimSpace(v.String()), true
}

// FlexString aceita texto ou número no JSON (ex.: UASG enviada como 123456)
type FlexString string

func (f FlexString) String() string {
	return string(f)
}

var errInvalidText = errors.New("valor de texto inválido")

func (f *FlexString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return errInvalidText
	}
	switch data[0] {
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = FlexString(s)
	case 't':
		*f = "1"
	case 'f':
		*f = ""
	case '{', '[':
		return errInvalidText
	default:
		var n json.Number
		if err := json.Unmarshal(data, &n); err != nil {
			return errInvalidText
		}
		*f = FlexString(n.String())
	}
	return nil
}

// FlexNumber aceita número ou texto numérico no JSON.
// Texto não numérico vale 0; um prefixo numérico é aproveitado ("12 un" vale 12).
type FlexNumber float64

var numericPrefix = regexp.MustCompile(`^[+-]?(\d+(\.\d*)?|\.\d+)([eE][+-]?\d+)?`)

func (f *FlexNumber) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return errInvalidText
	}
	switch data[0] {
	case 'n':
		*f = 0
	case 't':
		*f = 1
	case 'f':
		*f = 0
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = FlexNumber(ParseLooseFloat(s))
	case '{', '[':
		return errInvalidText
	default:
		v, err := strconv.ParseFloat(string(data), 64)
		if err != nil {
			return err
		}
		*f = FlexNumber(v)
	}
	return nil
}

// ParseLooseFloat converte o prefixo numérico de s, retornando 0 se não houver
func ParseLooseFloat(s string) float64 {
	m := numericPrefix.FindString(strings.TrimSpace(s))
	if m == "" {
		return 0
	}
	v, err := strconv.ParseFloat(m, 64)
	if err != nil {
		return 0
	}
	return v
}

func leadingInt(s string) int64 {
	end := 0
	for end < len(s) {
		c := s[end]
		if (c >= '0' && c <= '9') || (end == 0 && (c == '-' || c == '+')) {
			end++
			continue
		}
		break
	}
	v, err := strconv.ParseInt(s[:end], 10, 64)
	if err != nil {
		return 0
	}
	return v
}
