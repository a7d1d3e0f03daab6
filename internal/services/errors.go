package services

import (
	"errors"

	"github.com/jonasbrito1/LicitaSis-sub003/internal/models"
)

var (
	// ErrClienteNaoEncontrado indica que nenhuma UASG corresponde à busca
	ErrClienteNaoEncontrado = errors.New("cliente não encontrado para a UASG informada")

	// ErrUASGObrigatoria indica que a UASG não foi informada
	ErrUASGObrigatoria = errors.New("UASG não informada")
)

// AbortError interrompe uma validação por falha de infraestrutura.
// Finding é o achado sintético devolvido ao cliente.
type AbortError struct {
	Finding models.Finding
	Err     error
}

func (e *AbortError) Error() string {
	return "validação interrompida: " + e.Err.Error()
}

func (e *AbortError) Unwrap() error {
	return e.Err
}
