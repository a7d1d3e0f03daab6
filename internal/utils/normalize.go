package utils

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

// NormalizarTexto remove espaços das bordas e recompõe acentos (NFC),
// para que "Caneta" digitada com acentos decompostos conte igual à composta
func NormalizarTexto(texto string) string {
	return norm.NFC.String(strings.TrimSpace(texto))
}

// ContarCaracteres retorna o número de caracteres (não bytes) do texto normalizado
func ContarCaracteres(texto string) int {
	return utf8.RuneCountInString(NormalizarTexto(texto))
}

// ChaveComparacao gera a chave usada para detectar nomes repetidos:
// texto normalizado e em minúsculas. Acentos são preservados.
// Exemplo: "  Caneta AZUL " -> "caneta azul"
func ChaveComparacao(texto string) string {
	return cases.Lower(language.BrazilianPortuguese).String(NormalizarTexto(texto))
}
