package decoder

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/DanielPopoola/vin-gateway/internal/application"
	"github.com/DanielPopoola/vin-gateway/internal/config"
	"github.com/DanielPopoola/vin-gateway/internal/domain"
)

// RetryClient retries transient decoder failures with exponential backoff.
type RetryClient struct {
	inner      application.Decoder
	baseDelay  time.Duration
	maxRetries int
}

func NewRetryClient(inner application.Decoder, cfg config.RetryConfig) *RetryClient {
	maxRetries := cfg.MaxRetries
	if maxRetries < 1 {
		maxRetries = 1
	}
	return &RetryClient{
		inner:      inner,
		baseDelay:  cfg.BaseDelay,
		maxRetries: maxRetries,
	}
}

func (r *RetryClient) Provider() domain.Provider {
	return r.inner.Provider()
}

// HasAPIKey reports the wrapped decoder's configured key. Decoders that
// don't hold keys are assumed to need none.
func (r *RetryClient) HasAPIKey() bool {
	if kh, ok := r.inner.(application.KeyHolder); ok {
		return kh.HasAPIKey()
	}
	return true
}

func (r *RetryClient) Decode(ctx context.Context, req application.DecodeRequest) (*application.DecodeResult, error) {
	return retry(r, ctx, func(ctx context.Context) (*application.DecodeResult, error) {
		return r.inner.Decode(ctx, req)
	})
}

func retry[T any](r *RetryClient, ctx context.Context, operation func(ctx context.Context) (*T, error)) (*T, error) {
	var lastErr error

	for attempt := 0; attempt < r.maxRetries; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		resp, err := operation(ctx)
		if err == nil {
			return resp, nil
		}

		lastErr = err

		if !application.IsRetryable(err) {
			return nil, err
		}

		if attempt < r.maxRetries-1 {
			timer := time.NewTimer(r.backoff(attempt))
			select {
			case <-ctx.Done():
				timer.Stop()
				return nil, ctx.Err()
			case <-timer.C:
			}
		}
	}

	if r.maxRetries == 1 {
		return nil, lastErr
	}
	return nil, fmt.Errorf("maximum retries exceeded: %w", lastErr)
}

// Backoff calculation with exponential delay and jitter
func (r *RetryClient) backoff(attempt int) time.Duration {
	base := r.baseDelay * time.Duration(1<<attempt)
	if r.baseDelay <= 0 {
		return 0
	}

	jitter := time.Duration(rand.Int63n(int64(r.baseDelay)/2 + 1))

	return base + jitter
}
