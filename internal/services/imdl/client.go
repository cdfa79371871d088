package imdl

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"strings"

	"crescendo/internal/rules"
	"crescendo/internal/services"
)

// DefaultBinary is the imdl executable name resolved through PATH.
const DefaultBinary = "imdl"

// Executor abstracts command execution for testability.
type Executor interface {
	// Run executes binary with args, feeding stdin to the process. It
	// returns combined output, whether the process ran to completion with a
	// non-zero exit, and any execution error.
	Run(ctx context.Context, binary string, args []string, stdin []byte) (output string, exitFailure bool, err error)
}

// Option configures the client.
type Option func(*Client)

// WithExecutor injects a custom executor (primarily for tests).
func WithExecutor(executor Executor) Option {
	return func(c *Client) {
		if executor != nil {
			c.exec = executor
		}
	}
}

// Client wraps imdl CLI interactions.
type Client struct {
	binary string
	exec   Executor
}

// New constructs an imdl client. An empty binary falls back to DefaultBinary.
func New(binary string, opts ...Option) *Client {
	binary = strings.TrimSpace(binary)
	if binary == "" {
		binary = DefaultBinary
	}
	client := &Client{binary: binary, exec: commandExecutor{}}
	for _, opt := range opts {
		opt(client)
	}
	return client
}

// Verify checks the content directory against the torrent descriptor bytes.
// A clean pass returns no rules; a content mismatch returns a HashMismatch
// rule carrying imdl's diagnostic. Failure to run the tool at all is a hard
// error.
func (c *Client) Verify(ctx context.Context, descriptor []byte, contentDir string) ([]rules.Rule, error) {
	if len(descriptor) == 0 {
		return nil, services.Wrap(services.ErrValidation, "imdl", "verify", "empty torrent descriptor", nil)
	}
	if strings.TrimSpace(contentDir) == "" {
		return nil, services.Wrap(services.ErrValidation, "imdl", "verify", "content directory required", nil)
	}

	args := []string{"torrent", "verify", "--input", "-", "--content", contentDir}
	output, exitFailure, err := c.exec.Run(ctx, c.binary, args, descriptor)
	if err != nil {
		return nil, services.Wrap(services.ErrExternalTool, "imdl", "verify", output, err)
	}
	if exitFailure {
		return []rules.Rule{rules.AtDetail(rules.HashMismatch, contentDir, condense(output))}, nil
	}
	return nil, nil
}

// condense flattens tool output to a single diagnostic line.
func condense(output string) string {
	lines := strings.Split(strings.TrimSpace(output), "\n")
	kept := lines[:0]
	for _, line := range lines {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			kept = append(kept, trimmed)
		}
	}
	const maxLines = 3
	if len(kept) > maxLines {
		kept = kept[:maxLines]
	}
	return strings.Join(kept, "; ")
}

type commandExecutor struct{}

func (commandExecutor) Run(ctx context.Context, binary string, args []string, stdin []byte) (string, bool, error) {
	cmd := exec.CommandContext(ctx, binary, args...)
	cmd.Stdin = bytes.NewReader(stdin)
	output, err := cmd.CombinedOutput()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			// The tool ran and rejected the content.
			return string(output), true, nil
		}
		return string(output), false, err
	}
	return string(output), false, nil
}
