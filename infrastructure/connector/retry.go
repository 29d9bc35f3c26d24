package connector

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v4"
)

// RetryPolicy define as tentativas e o backoff exponencial aplicados às
// chamadas de API das plataformas
type RetryPolicy struct {
	MaxAttempts     int
	InitialInterval time.Duration
	Multiplier      float64
	MaxInterval     time.Duration
}

func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxAttempts:     3,
		InitialInterval: 500 * time.Millisecond,
		Multiplier:      2.0,
		MaxInterval:     30 * time.Second,
	}
}

// DoWithRetry executa a operação com backoff exponencial. Apenas erros
// transitórios geram nova tentativa; erros terminais interrompem na hora.
func (p RetryPolicy) DoWithRetry(ctx context.Context, operation func() error) error {
	expBackoff := backoff.NewExponentialBackOff()
	expBackoff.InitialInterval = p.InitialInterval
	expBackoff.Multiplier = p.Multiplier
	expBackoff.MaxInterval = p.MaxInterval

	maxAttempts := p.MaxAttempts
	if maxAttempts < 1 {
		maxAttempts = 1
	}

	wrapped := func() error {
		err := operation()
		if err == nil {
			return nil
		}

		if !IsTransient(err) {
			return backoff.Permanent(err)
		}

		return err
	}

	strategy := backoff.WithContext(
		backoff.WithMaxRetries(expBackoff, uint64(maxAttempts-1)),
		ctx,
	)

	return backoff.Retry(wrapped, strategy)
}
