package connector

import (
	"context"
	"sync"
	"time"
)

// RateLimiter impõe um intervalo mínimo entre requisições à mesma
// plataforma e respeita o período de espera devolvido em respostas 429
type RateLimiter struct {
	mu        sync.Mutex
	interval  time.Duration
	nextAllow time.Time
}

func NewRateLimiter(interval time.Duration) *RateLimiter {
	return &RateLimiter{
		interval: interval,
	}
}

// Wait bloqueia até a próxima janela de requisição permitida
func (l *RateLimiter) Wait(ctx context.Context) error {
	l.mu.Lock()
	now := time.Now()

	wait := l.nextAllow.Sub(now)
	if wait < 0 {
		wait = 0
	}

	l.nextAllow = now.Add(wait + l.interval)
	l.mu.Unlock()

	if wait == 0 {
		return nil
	}

	timer := time.NewTimer(wait)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// Cooldown adia a próxima requisição após um limite de taxa da plataforma
func (l *RateLimiter) Cooldown(d time.Duration) {
	l.mu.Lock()
	defer l.mu.Unlock()

	until := time.Now().Add(d)
	if until.After(l.nextAllow) {
		l.nextAllow = until
	}
}
