package ai

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"

	"github.com/kballard/go-shellquote"
)

// CommandGenerator implements Generator by running an external CLI that
// reads the prompt on stdin and prints the plan on stdout, e.g.
// "claude --print" or "llm -m gpt-4o".
type CommandGenerator struct {
	Name string
	Args []string
}

// ParseCommand splits a COMMAND config value into a generator using shell
// word rules, so quoted arguments survive.
func ParseCommand(command string) (*CommandGenerator, error) {
	fields, err := shellquote.Split(command)
	if err != nil {
		return nil, fmt.Errorf("invalid COMMAND %q: %w", command, err)
	}
	if len(fields) == 0 {
		return nil, fmt.Errorf("COMMAND is empty")
	}
	return &CommandGenerator{Name: fields[0], Args: fields[1:]}, nil
}

// Generate runs the command and returns its stdout. Rate-limit messages on
// stdout or stderr become a RateLimitError.
func (g *CommandGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	cmd := exec.CommandContext(ctx, g.Name, g.Args...)
	cmd.Stdin = strings.NewReader(prompt)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	runErr := cmd.Run()
	out := stdout.String()
	if looksRateLimited(out) || looksRateLimited(stderr.String()) {
		return "", &RateLimitError{Backend: g.Name, UnderlyingErr: runErr}
	}
	if runErr != nil {
		return "", fmt.Errorf("%s command failed: %w: %s", g.Name, runErr, strings.TrimSpace(stderr.String()))
	}
	if strings.TrimSpace(out) == "" {
		return "", ErrEmptyResponse
	}
	return out, nil
}
