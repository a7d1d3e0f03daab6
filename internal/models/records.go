package models

import "time"

// ClientRecord é um órgão cliente cadastrado, identificado pela UASG
type ClientRecord struct {
	ID         int64  `json:"id"`
	UASG       string `json:"uasg"`
	NomeOrgaos string `json:"nome_orgaos"`
	CNPJ       string `json:"cnpj"`
	Endereco   string `json:"endereco"`
	Telefone   string `json:"telefone"`
	Email      string `json:"email"`
}

// ProductRecord é um produto do catálogo
type ProductRecord struct {
	ID              int64   `json:"id"`
	Nome            string  `json:"nome"`
	PrecoUnitario   float64 `json:"preco_unitario"`
	PrecoVenda      float64 `json:"preco_venda"`
	CustoTotal      float64 `json:"custo_total"`
	EstoqueAtual    float64 `json:"estoque_atual"`
	EstoqueMinimo   float64 `json:"estoque_minimo"`
	ControlaEstoque bool    `json:"controla_estoque"`
	Categoria       string  `json:"categoria"`
	Unidade         string  `json:"unidade"`
}

// ReferencePrice retorna o preço de venda, ou o preço unitário quando não há preço de venda
func (p *ProductRecord) ReferencePrice() float64 {
	if p.PrecoVenda > 0 {
		return p.PrecoVenda
	}
	return p.PrecoUnitario
}

// EmpenhoRecord é um empenho já persistido
type EmpenhoRecord struct {
	ID                int64      `json:"id"`
	Numero            string     `json:"numero"`
	ClienteUASG       string     `json:"cliente_uasg"`
	ClienteNome       string     `json:"cliente_nome"`
	Data              *time.Time `json:"data,omitempty"`
	ValorTotalEmpenho float64    `json:"valor_total_empenho"`
	Classificacao     string     `json:"classificacao"`
	Pregao            string     `json:"pregao"`
	CreatedAt         time.Time  `json:"created_at"`
}

// ClientHistory agrega os empenhos anteriores de uma UASG
type ClientHistory struct {
	TotalEmpenhos   int
	ValorMedio      float64
	ValorMaximo     float64
	PrimeiroEmpenho *time.Time
}

// PagePermission é uma linha da tabela page_permissions
type PagePermission struct {
	CanView   bool
	CanEdit   bool
	CanCreate bool
	CanDelete bool
}

// Allows retorna a flag correspondente à ação (view, edit, create ou delete)
func (p PagePermission) Allows(action string) bool {
	switch action {
	case "view":
		return p.CanView
	case "edit":
		return p.CanEdit
	case "create":
		return p.CanCreate
	case "delete":
		return p.CanDelete
	}
	return false
}

// AuditEntry é um registro de auditoria
type AuditEntry struct {
	Action    string
	UserID    string
	UserName  string
	Table     string
	RecordID  *int64
	Details   map[string]any
	IP        string
	UserAgent string
}
