package ai

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// RetryConfig configures exponential backoff retry behavior.
type RetryConfig struct {
	MaxRetries        int
	BaseDelay         time.Duration // default 2s
	MaxRateLimitWaits int           // max consecutive rate limit waits (default 3)
	RateLimitWait     time.Duration // default 1m
	OnRetry           func(attempt int, delay time.Duration, err error)
	OnRateLimit       func(err *RateLimitError)
}

// RetryWithBackoff retries fn with exponential backoff.
// Delays: BaseDelay, BaseDelay*2, BaseDelay*4, ...
// Rate limit errors wait RateLimitWait and retry without using an attempt.
// Context cancellation stops immediately.
func RetryWithBackoff(ctx context.Context, cfg RetryConfig, fn func() error) error {
	if cfg.BaseDelay == 0 {
		cfg.BaseDelay = 2 * time.Second
	}
	if cfg.MaxRateLimitWaits == 0 {
		cfg.MaxRateLimitWaits = 3
	}
	if cfg.RateLimitWait == 0 {
		cfg.RateLimitWait = time.Minute
	}

	attempt := 0
	delay := cfg.BaseDelay
	rateLimitWaits := 0

	for {
		err := fn()
		if err == nil {
			return nil
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}

		var rateLimitErr *RateLimitError
		if errors.As(err, &rateLimitErr) {
			rateLimitWaits++
			if rateLimitWaits >= cfg.MaxRateLimitWaits {
				return fmt.Errorf("max rate limit waits (%d) exceeded: %w", cfg.MaxRateLimitWaits, err)
			}
			if cfg.OnRateLimit != nil {
				cfg.OnRateLimit(rateLimitErr)
			}
			if err := sleep(ctx, cfg.RateLimitWait); err != nil {
				return err
			}
			continue
		}

		if attempt >= cfg.MaxRetries {
			return fmt.Errorf("max retries (%d) exceeded: %w", cfg.MaxRetries, err)
		}
		if cfg.OnRetry != nil {
			cfg.OnRetry(attempt, delay, err)
		}
		if err := sleep(ctx, delay); err != nil {
			return err
		}
		delay *= 2
		attempt++
	}
}

func sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// RetryGenerator wraps any Generator with RetryWithBackoff. Empty responses
// are retried like any other failure.
type RetryGenerator struct {
	Inner    Generator
	RetryCfg RetryConfig
}

// Generate delegates to the inner generator, retrying on failure.
func (g *RetryGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	var out string
	err := RetryWithBackoff(ctx, g.RetryCfg, func() error {
		text, err := g.Inner.Generate(ctx, prompt)
		if err != nil {
			return err
		}
		out = text
		return nil
	})
	if err != nil {
		return "", err
	}
	return out, nil
}
