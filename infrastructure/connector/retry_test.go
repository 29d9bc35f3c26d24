package connector

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func testPolicy(maxAttempts int) RetryPolicy {
	return RetryPolicy{
		MaxAttempts:     maxAttempts,
		InitialInterval: time.Millisecond,
		Multiplier:      2.0,
		MaxInterval:     10 * time.Millisecond,
	}
}

func TestRetryPolicyDoWithRetry(t *testing.T) {
	tests := []struct {
		name        string
		maxAttempts int
		fail        int
		failWith    error
		expectCalls int
		expectErr   bool
	}{
		{
			name:        "Sucesso imediato não repete",
			maxAttempts: 3,
			fail:        0,
			expectCalls: 1,
		},
		{
			name:        "Erro transitório é repetido até passar",
			maxAttempts: 3,
			fail:        2,
			failWith:    &RequestError{Platform: "stripe", StatusCode: http.StatusServiceUnavailable},
			expectCalls: 3,
		},
		{
			name:        "Tentativas esgotadas propagam o erro",
			maxAttempts: 2,
			fail:        5,
			failWith:    &RequestError{Platform: "stripe", StatusCode: http.StatusTooManyRequests},
			expectCalls: 2,
			expectErr:   true,
		},
		{
			name:        "Erro terminal interrompe na primeira tentativa",
			maxAttempts: 3,
			fail:        5,
			failWith:    ErrUnauthorized,
			expectCalls: 1,
			expectErr:   true,
		},
		{
			name:        "Limite de tentativas abaixo de um vira um",
			maxAttempts: 0,
			fail:        5,
			failWith:    &RequestError{Platform: "stripe", StatusCode: http.StatusInternalServerError},
			expectCalls: 1,
			expectErr:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calls := 0
			operation := func() error {
				calls++
				if calls <= tt.fail {
					return tt.failWith
				}
				return nil
			}

			err := testPolicy(tt.maxAttempts).DoWithRetry(context.Background(), operation)

			assert.Equal(t, tt.expectCalls, calls)
			if tt.expectErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestRetryPolicyStopsOnCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	calls := 0
	err := testPolicy(3).DoWithRetry(ctx, func() error {
		calls++
		cancel()
		return &RequestError{Platform: "stripe", StatusCode: http.StatusInternalServerError}
	})

	assert.Error(t, err)
	assert.Equal(t, 1, calls)
}

func TestRateLimiterWaitWithoutIntervalReturnsImmediately(t *testing.T) {
	limiter := NewRateLimiter(0)

	start := time.Now()
	assert.NoError(t, limiter.Wait(context.Background()))
	assert.NoError(t, limiter.Wait(context.Background()))
	assert.Less(t, time.Since(start), 50*time.Millisecond)
}

func TestRateLimiterCooldownDelaysNextWait(t *testing.T) {
	limiter := NewRateLimiter(0)
	limiter.Cooldown(30 * time.Millisecond)

	start := time.Now()
	assert.NoError(t, limiter.Wait(context.Background()))
	assert.GreaterOrEqual(t, time.Since(start), 25*time.Millisecond)
}

func TestRateLimiterWaitHonorsContextCancellation(t *testing.T) {
	limiter := NewRateLimiter(0)
	limiter.Cooldown(time.Second)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	err := limiter.Wait(ctx)
	assert.True(t, errors.Is(err, context.DeadlineExceeded))
}
