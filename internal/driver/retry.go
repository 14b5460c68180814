package driver

import (
	"context"
	"time"
)

// Policy is the explicit retry contract for operations that can transiently
// fail. It is passed in, never applied as implicit wrapping.
type Policy struct {
	MaxAttempts int
	Backoff     time.Duration
}

// Do runs op up to MaxAttempts times, sleeping Backoff between attempts.
// It returns nil on the first success, the last error once attempts are
// exhausted, and the context error if ctx ends while waiting to retry.
func (p Policy) Do(ctx context.Context, op func() error) error {
	attempts := p.MaxAttempts
	if attempts < 1 {
		attempts = 1
	}

	var err error
	for i := 0; i < attempts; i++ {
		if i > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(p.Backoff):
			}
		}
		if err = op(); err == nil {
			return nil
		}
	}
	return err
}
