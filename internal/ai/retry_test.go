package ai

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scriptedGenerator is a test double returning canned results in order.
type scriptedGenerator struct {
	calls   int
	prompts []string
	outputs []string
	errs    []error
}

func (m *scriptedGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	idx := m.calls
	m.calls++
	m.prompts = append(m.prompts, prompt)
	var out string
	var err error
	if idx < len(m.outputs) {
		out = m.outputs[idx]
	}
	if idx < len(m.errs) {
		err = m.errs[idx]
	}
	return out, err
}

// Compile-time interface checks.
var (
	_ Generator = (*RetryGenerator)(nil)
	_ Generator = (*OllamaGenerator)(nil)
	_ Generator = (*CommandGenerator)(nil)
)

func TestRetryWithBackoff_DelaysDouble(t *testing.T) {
	var delays []time.Duration
	cfg := RetryConfig{
		MaxRetries: 3,
		BaseDelay:  time.Millisecond,
		OnRetry: func(attempt int, delay time.Duration, err error) {
			delays = append(delays, delay)
		},
	}

	err := RetryWithBackoff(context.Background(), cfg, func() error { return errors.New("always fail") })

	require.Error(t, err)
	assert.Contains(t, err.Error(), "max retries (3) exceeded")
	assert.Equal(t, []time.Duration{time.Millisecond, 2 * time.Millisecond, 4 * time.Millisecond}, delays)
}

func TestRetryWithBackoff_SucceedsAfterFailures(t *testing.T) {
	calls := 0
	err := RetryWithBackoff(context.Background(), RetryConfig{MaxRetries: 5, BaseDelay: time.Millisecond}, func() error {
		calls++
		if calls < 3 {
			return errors.New("transient")
		}
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 3, calls)
}

func TestRetryWithBackoff_ZeroRetries(t *testing.T) {
	calls := 0
	err := RetryWithBackoff(context.Background(), RetryConfig{MaxRetries: 0, BaseDelay: time.Millisecond}, func() error {
		calls++
		return ErrEmptyResponse
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrEmptyResponse)
	assert.Equal(t, 1, calls)
}

func TestRetryWithBackoff_ContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	calls := 0
	err := RetryWithBackoff(ctx, RetryConfig{MaxRetries: 10, BaseDelay: time.Hour}, func() error {
		calls++
		cancel()
		return errors.New("fail")
	})

	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, calls)
}

func TestRetryWithBackoff_RateLimitDoesNotUseAttempts(t *testing.T) {
	calls := 0
	var limited int
	cfg := RetryConfig{
		MaxRetries:        0,
		BaseDelay:         time.Millisecond,
		RateLimitWait:     time.Millisecond,
		MaxRateLimitWaits: 3,
		OnRateLimit:       func(*RateLimitError) { limited++ },
	}
	err := RetryWithBackoff(context.Background(), cfg, func() error {
		calls++
		if calls <= 2 {
			return &RateLimitError{Backend: "test"}
		}
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 3, calls)
	assert.Equal(t, 2, limited)
}

func TestRetryWithBackoff_RateLimitCap(t *testing.T) {
	cfg := RetryConfig{RateLimitWait: time.Millisecond, MaxRateLimitWaits: 2}
	err := RetryWithBackoff(context.Background(), cfg, func() error {
		return &RateLimitError{Backend: "test"}
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "max rate limit waits (2) exceeded")
	var rl *RateLimitError
	assert.True(t, errors.As(err, &rl))
}

func TestRetryGenerator(t *testing.T) {
	inner := &scriptedGenerator{
		outputs: []string{"", "", "## Monday\n"},
		errs:    []error{ErrEmptyResponse, errors.New("boom"), nil},
	}
	g := &RetryGenerator{Inner: inner, RetryCfg: RetryConfig{MaxRetries: 3, BaseDelay: time.Millisecond}}

	out, err := g.Generate(context.Background(), "prompt")

	require.NoError(t, err)
	assert.Equal(t, "## Monday\n", out)
	assert.Equal(t, 3, inner.calls)
	assert.Equal(t, []string{"prompt", "prompt", "prompt"}, inner.prompts)
}

func TestRetryGenerator_Exhausted(t *testing.T) {
	inner := &scriptedGenerator{errs: []error{ErrEmptyResponse, ErrEmptyResponse}}
	g := &RetryGenerator{Inner: inner, RetryCfg: RetryConfig{MaxRetries: 1, BaseDelay: time.Millisecond}}

	out, err := g.Generate(context.Background(), "prompt")

	assert.Empty(t, out)
	assert.ErrorIs(t, err, ErrEmptyResponse)
}
