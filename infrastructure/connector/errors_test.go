package connector

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsTransient(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{
			name:     "Erro nulo não é transitório",
			err:      nil,
			expected: false,
		},
		{
			name:     "Contexto cancelado não vale nova tentativa",
			err:      context.Canceled,
			expected: false,
		},
		{
			name:     "Prazo do contexto estourado não vale nova tentativa",
			err:      fmt.Errorf("erro ao fazer a requisição: %w", context.DeadlineExceeded),
			expected: false,
		},
		{
			name:     "Limite de taxa é transitório",
			err:      &RequestError{Platform: "stripe", StatusCode: http.StatusTooManyRequests},
			expected: true,
		},
		{
			name:     "Erro do servidor é transitório",
			err:      &RequestError{Platform: "shopify", StatusCode: http.StatusBadGateway},
			expected: true,
		},
		{
			name:     "Requisição malformada é terminal",
			err:      &RequestError{Platform: "stripe", StatusCode: http.StatusBadRequest},
			expected: false,
		},
		{
			name:     "Credencial rejeitada é terminal",
			err:      ErrUnauthorized,
			expected: false,
		},
		{
			name:     "Erro de API embrulhado preserva a classificação",
			err:      fmt.Errorf("erro na página 3: %w", &RequestError{Platform: "webanalytics", StatusCode: http.StatusServiceUnavailable}),
			expected: true,
		},
		{
			name:     "Erro genérico é terminal",
			err:      errors.New("algo inesperado"),
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, IsTransient(tt.err))
		})
	}
}

func TestRequestErrorMessage(t *testing.T) {
	err := &RequestError{Platform: "stripe", StatusCode: 422, Body: "parâmetro inválido"}

	assert.Contains(t, err.Error(), "stripe")
	assert.Contains(t, err.Error(), "422")
}
