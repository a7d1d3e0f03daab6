package models

// Report é o resultado completo de uma validação de empenho
type Report struct {
	Valid    bool
	Errors   []Finding
	Warnings []Finding
	Info     []Finding
	Summary  Summary
}

// Summary agrega os achados de um Report
type Summary struct {
	TotalErrors         int     `json:"total_errors"`
	TotalWarnings       int     `json:"total_warnings"`
	TotalInfo           int     `json:"total_info"`
	ProdutosCount       int     `json:"produtos_count"`
	ValorTotal          float64 `json:"valor_total"`
	ValorTotalFormatado string  `json:"valor_total_formatado"`
	ValidacaoCompleta   bool    `json:"validacao_completa"`
	RequerAtencao       bool    `json:"requer_atencao"`
	Timestamp           string  `json:"timestamp"`
	QualityScore        int     `json:"quality_score"`
	QualityLevel        string  `json:"quality_level"`
}

// ReportResponse é o contrato JSON devolvido aos clientes
type ReportResponse struct {
	Valid    bool      `json:"valid"`
	Errors   []Finding `json:"errors"`
	Warnings []Finding `json:"warnings"`
	Info     []Finding `json:"info"`
	Summary  any       `json:"summary"`
}

// AbortSummary é o resumo reduzido usado quando a validação não pôde ser executada
type AbortSummary struct {
	TotalErrors       int  `json:"total_errors"`
	TotalWarnings     int  `json:"total_warnings"`
	TotalInfo         int  `json:"total_info"`
	ValidacaoCompleta bool `json:"validacao_completa"`
}
