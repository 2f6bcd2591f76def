package llm

import (
	"context"
	"log/slog"
	"time"

	"github.com/felixgeelhaar/fortify/circuitbreaker"
)

// BreakerProvider is a decorator that stops calling a provider that keeps
// failing. While the circuit is open, Generate fails immediately with
// *ErrCircuitOpen so callers can switch to their fallback without waiting
// out a timeout.
type BreakerProvider struct {
	inner   Provider
	breaker circuitbreaker.CircuitBreaker[*Response]
}

// WithBreaker wraps a Provider with a circuit breaker.
func WithBreaker(p Provider, cfg BreakerConfig, logger *slog.Logger) Provider {
	threshold := cfg.FailureThreshold
	if threshold == 0 {
		threshold = 3
	}
	openFor := cfg.OpenTimeout
	if openFor <= 0 {
		openFor = time.Minute
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &BreakerProvider{
		inner: p,
		breaker: circuitbreaker.New[*Response](circuitbreaker.Config{
			MaxRequests: 1,
			Interval:    openFor,
			Timeout:     openFor,
			ReadyToTrip: func(counts circuitbreaker.Counts) bool {
				return counts.ConsecutiveFailures >= threshold
			},
			OnStateChange: func(from, to circuitbreaker.State) {
				logger.Warn("model circuit breaker state change",
					"model", p.ModelID(),
					"from", from.String(),
					"to", to.String())
			},
		}),
	}
}

func (b *BreakerProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	called := false
	resp, err := b.breaker.Execute(ctx, func(ctx context.Context) (*Response, error) {
		called = true
		return b.inner.Generate(ctx, req)
	})
	if err != nil && !called {
		return nil, &ErrCircuitOpen{Err: err}
	}
	return resp, err
}

func (b *BreakerProvider) ModelID() string {
	return b.inner.ModelID()
}
