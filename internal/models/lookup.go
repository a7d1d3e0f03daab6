package models

// DuplicateCheck é a resposta da verificação de empenho duplicado
type DuplicateCheck struct {
	Exists      bool   `json:"exists"`
	ClienteNome string `json:"cliente_nome,omitempty"`
	CreatedAt   string `json:"created_at,omitempty"`
	Message     string `json:"message"`
}

// EmpenhoResumo é um empenho da listagem por UASG
type EmpenhoResumo struct {
	ID                int64   `json:"id"`
	Numero            string  `json:"numero"`
	Data              string  `json:"data,omitempty"`
	ValorTotalEmpenho float64 `json:"valor_total_empenho"`
	Classificacao     string  `json:"classificacao"`
	Pregao            string  `json:"pregao"`
	CreatedAt         string  `json:"created_at"`
	DiasDesdeEmpenho  int     `json:"dias_desde_empenho"`
}

// EstatisticasUASG resume os empenhos listados de uma UASG
type EstatisticasUASG struct {
	TotalEmpenhos int     `json:"total_empenhos"`
	ValorTotal    float64 `json:"valor_total"`
	EmAtraso      int     `json:"em_atraso"`
	ValorMedio    float64 `json:"valor_medio"`
}

// EmpenhosPorUASG é a resposta da listagem de empenhos de uma UASG
type EmpenhosPorUASG struct {
	UASG         string           `json:"uasg"`
	Empenhos     []EmpenhoResumo  `json:"empenhos"`
	Estatisticas EstatisticasUASG `json:"estatisticas"`
	Message      string           `json:"message,omitempty"`
}
