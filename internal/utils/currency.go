package utils

import (
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

// FormatarNumeroBR formata um valor com duas casas decimais no padrão brasileiro
// Exemplo: 1234567.891 -> "1.234.567,89"
// Valores não finitos não têm representação decimal: ±Inf vira "∞"/"-∞" e NaN vira "0,00".
func FormatarNumeroBR(valor float64) string {
	switch {
	case math.IsNaN(valor):
		return "0,00"
	case math.IsInf(valor, 1):
		return "∞"
	case math.IsInf(valor, -1):
		return "-∞"
	}

	fixed := decimal.NewFromFloat(valor).StringFixed(2)

	negativo := strings.HasPrefix(fixed, "-")
	fixed = strings.TrimPrefix(fixed, "-")

	inteiro, centavos, _ := strings.Cut(fixed, ".")

	var b strings.Builder
	if negativo && (inteiro != "0" || centavos != "00") {
		b.WriteByte('-')
	}
	for i, r := range inteiro {
		if i > 0 && (len(inteiro)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(r)
	}
	b.WriteByte(',')
	b.WriteString(centavos)
	return b.String()
}

// FormatarMoeda formata um valor em reais
// Exemplo: 1234.5 -> "R$ 1.234,50"
func FormatarMoeda(valor float64) string {
	return "R$ " + FormatarNumeroBR(valor)
}
