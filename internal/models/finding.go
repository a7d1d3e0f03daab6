package models

// Severity indica o peso de um achado de validação.
// Apenas SeverityError impede a aceitação do empenho.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// Finding é um resultado individual de validação
type Finding struct {
	Severity Severity `json:"-"`
	Field    string   `json:"field"`
	Message  string   `json:"message"`
	Details  Details  `json:"details,omitempty"`
}

// NewError cria um achado bloqueante
func NewError(field, message string, details ...Details) Finding {
	return newFinding(SeverityError, field, message, details)
}

// NewWarning cria um alerta
func NewWarning(field, message string, details ...Details) Finding {
	return newFinding(SeverityWarning, field, message, details)
}

// NewInfo cria um achado informativo
func NewInfo(field, message string, details ...Details) Finding {
	return newFinding(SeverityInfo, field, message, details)
}

func newFinding(sev Severity, field, message string, details []Details) Finding {
	f := Finding{Severity: sev, Field: field, Message: message}
	if len(details) > 0 {
		f.Details = details[0]
	}
	return f
}

// Details é o conteúdo estruturado opcional de um Finding.
// As implementações abaixo são o conjunto fechado de formatos aceitos.
type Details interface {
	isDetails()
}

// DuplicateDetails acompanha o erro de empenho já cadastrado
type DuplicateDetails struct {
	Cliente      string `json:"cliente"`
	DataCadastro string `json:"data_cadastro"`
}

// ClientDetails é o snapshot do cliente encontrado pela UASG
type ClientDetails struct {
	NomeOrgaos string `json:"nome_orgaos"`
	CNPJ       string `json:"cnpj"`
	Endereco   string `json:"endereco"`
	Telefone   string `json:"telefone"`
}

// FutureDateDetails acompanha o alerta de data futura
type FutureDateDetails struct {
	DiasFuturo int `json:"dias_futuro"`
}

// PastDateDetails acompanha os achados de empenho antigo
type PastDateDetails struct {
	DiasPassados int `json:"dias_passados"`
}

// PriceDetails acompanha o alerta de divergência de preço
type PriceDetails struct {
	PrecoCadastrado     float64 `json:"preco_cadastrado"`
	PrecoInformado      float64 `json:"preco_informado"`
	DiferencaPercentual float64 `json:"diferenca_percentual"`
}

// TotalDetails acompanha os achados sobre o valor total
type TotalDetails struct {
	ValorTotal float64 `json:"valor_total"`
}

// OptionsDetails lista as opções aceitas para um campo enumerado
type OptionsDetails struct {
	OpcoesValidas []string `json:"opcoes_validas"`
}

// HistoryDetails resume o histórico de empenhos da UASG
type HistoryDetails struct {
	TotalEmpenhos int     `json:"total_empenhos"`
	ValorMedio    float64 `json:"valor_medio"`
	ValorMaximo   float64 `json:"valor_maximo"`
	ClienteDesde  string  `json:"cliente_desde"`
}

// DatabaseErrorDetails acompanha a falha de armazenamento
type DatabaseErrorDetails struct {
	ErrorCode int `json:"error_code"`
}

// SystemErrorDetails acompanha falhas internas inesperadas
type SystemErrorDetails struct {
	Message string `json:"message"`
}

func (DuplicateDetails) isDetails()     {}
func (ClientDetails) isDetails()        {}
func (FutureDateDetails) isDetails()    {}
func (PastDateDetails) isDetails()      {}
func (PriceDetails) isDetails()         {}
func (TotalDetails) isDetails()         {}
func (OptionsDetails) isDetails()       {}
func (HistoryDetails) isDetails()       {}
func (DatabaseErrorDetails) isDetails() {}
func (SystemErrorDetails) isDetails()   {}
