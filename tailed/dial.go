package tailed

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog/log"
)

// Retry is the policy for the initial connection. The zero value makes
// a single attempt.
type Retry struct {
	Attempts   int
	Backoff    time.Duration
	MaxBackoff time.Duration
}

// DialWithRetry dials up to r.Attempts times, doubling the wait after
// each failure from r.Backoff up to r.MaxBackoff.
func DialWithRetry(ctx context.Context, cfg Config, r Retry) (*Client, error) {
	attempts := r.Attempts
	if attempts < 1 {
		attempts = 1
	}
	backoff := r.Backoff
	var lastErr error
	for i := 1; ; i++ {
		c, err := Dial(ctx, cfg)
		if err == nil {
			return c, nil
		}
		lastErr = err
		var ce *ConnectionError
		if errors.As(err, &ce) {
			lastErr = ce.Err
		}
		log.Warn().Err(lastErr).Str("server", cfg.Server).Int("attempt", i).Msg("failed to connect")
		if i >= attempts {
			break
		}
		log.Info().Msgf("sleeping %s before reconnect...", backoff)
		select {
		case <-time.After(backoff):
		case <-ctx.Done():
			return nil, &ConnectionError{Server: cfg.Server, Attempts: i, Err: ctx.Err()}
		}
		backoff = backoff * 2
		if r.MaxBackoff > 0 && backoff > r.MaxBackoff {
			backoff = r.MaxBackoff
		}
	}
	return nil, &ConnectionError{Server: cfg.Server, Attempts: attempts, Err: lastErr}
}
