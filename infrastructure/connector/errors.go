package connector

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
)

// RequestError representa uma resposta de erro de uma API externa
type RequestError struct {
	Platform   string
	StatusCode int
	Body       string
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("requisição à API %s falhou com status %d: %s", e.Platform, e.StatusCode, e.Body)
}

// Transient indica se o erro vale uma nova tentativa. Limite de taxa e
// erros do lado do servidor são transitórios; erros de autorização e de
// requisição malformada são terminais.
func (e *RequestError) Transient() bool {
	if e.StatusCode == http.StatusTooManyRequests {
		return true
	}

	return e.StatusCode >= 500
}

// ErrUnauthorized sinaliza credencial rejeitada. O conector pode tentar
// renovar o token uma única vez antes de propagar.
var ErrUnauthorized = errors.New("credencial rejeitada pela plataforma")

// IsTransient classifica um erro arbitrário para fins de retry
func IsTransient(err error) bool {
	if err == nil {
		return false
	}

	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	var reqErr *RequestError
	if errors.As(err, &reqErr) {
		return reqErr.Transient()
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return netErr.Timeout()
	}

	return false
}
