package utils

import (
	"math"
	"testing"
)

func TestFormatarMoeda(t *testing.T) {
	tests := []struct {
		input    float64
		expected string
	}{
		{0, "R$ 0,00"},
		{1, "R$ 1,00"},
		{0.99, "R$ 0,99"},
		{25, "R$ 25,00"},
		{1234.56, "R$ 1.234,56"},
		{999.995, "R$ 1.000,00"},
		{1000000, "R$ 1.000.000,00"},
		{10000000.5, "R$ 10.000.000,50"},
		{123456789.129, "R$ 123.456.789,13"},
		{-1234.5, "R$ -1.234,50"},
		{-0.001, "R$ 0,00"},
		{math.Inf(1), "R$ ∞"},
		{math.Inf(-1), "R$ -∞"},
		{math.NaN(), "R$ 0,00"},
	}

	for _, test := range tests {
		result := FormatarMoeda(test.input)
		if result != test.expected {
			t.Errorf("FormatarMoeda(%v) = %q; expected %q", test.input, result, test.expected)
		}
	}
}
