package ai

import (
	"context"
	"fmt"
	"os/exec"
)

// Checker is implemented by generators that can verify their backend before
// the first request.
type Checker interface {
	Available(ctx context.Context) error
}

// Available checks that the command is in PATH.
func (g *CommandGenerator) Available(ctx context.Context) error {
	if _, err := exec.LookPath(g.Name); err != nil {
		return fmt.Errorf("%s not found in PATH: %w", g.Name, err)
	}
	return nil
}

// CheckAvailability verifies g's backend when g supports it. Wrapped
// generators are unwrapped first.
func CheckAvailability(ctx context.Context, g Generator) error {
	if r, ok := g.(*RetryGenerator); ok {
		g = r.Inner
	}
	if c, ok := g.(Checker); ok {
		return c.Available(ctx)
	}
	return nil
}
