package ai

import (
	"context"
	"errors"
	"regexp"
)

// Generator produces a candidate plan for a prompt.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// ErrEmptyResponse is returned when the model answered with blank text.
var ErrEmptyResponse = errors.New("model returned an empty response")

// RateLimitError is returned when the backend reports throttling.
type RateLimitError struct {
	Backend       string
	UnderlyingErr error
}

func (e *RateLimitError) Error() string {
	return e.Backend + ": rate limit detected"
}

func (e *RateLimitError) Unwrap() error {
	return e.UnderlyingErr
}

// barePatternMaxContentSize bounds rate-limit sniffing on model output so a
// plan that happens to mention "too many requests" is not mistaken for one.
const barePatternMaxContentSize = 500

var rateLimitPattern = regexp.MustCompile(`(?i)you'?ve hit your limit|rate limit(ed| exceeded)|too many requests|\b429\b`)

func looksRateLimited(content string) bool {
	return len(content) <= barePatternMaxContentSize && rateLimitPattern.MatchString(content)
}
