package vorbiscomment

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"vctag/internal/comments"
	"vctag/internal/services"
)

var commandContext = exec.CommandContext

// DefaultBinary is the tool name resolved from PATH when no explicit
// location is configured.
const DefaultBinary = "vorbiscomment"

// Option configures the client.
type Option func(*Client)

// WithBinary overrides the default binary location.
func WithBinary(binary string) Option {
	return func(c *Client) {
		if strings.TrimSpace(binary) != "" {
			c.binary = binary
		}
	}
}

// WithTimeout bounds each invocation. Zero keeps the documented behaviour
// of waiting on the tool indefinitely.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.timeout = timeout
		}
	}
}

// Client wraps vorbiscomment CLI interactions. Every operation performs a
// single synchronous invocation with an argument vector; no shell is
// involved at any point.
type Client struct {
	binary  string
	timeout time.Duration
}

// New constructs a client using defaults.
func New(opts ...Option) *Client {
	client := &Client{binary: DefaultBinary}
	for _, opt := range opts {
		opt(client)
	}
	return client
}

// List returns the raw tag lines the tool reports for file. When
// exportPath is non-empty the listing is additionally exported to that
// file via the tool's -c flag.
func (c *Client) List(ctx context.Context, file, exportPath string) ([]string, error) {
	args := []string{"-l", file}
	if exportPath != "" {
		args = append(args, "-c", exportPath)
	}
	stdout, err := c.run(ctx, "list", args)
	if err != nil {
		return nil, err
	}
	return splitLines(stdout), nil
}

// Append adds the pairs to the file's existing comments.
func (c *Client) Append(ctx context.Context, file string, set comments.Set, escapes bool) error {
	return c.apply(ctx, "append", "-a", file, set, "", escapes)
}

// Write replaces all comments on the file with the pairs.
func (c *Client) Write(ctx context.Context, file string, set comments.Set, escapes bool) error {
	return c.apply(ctx, "write", "-w", file, set, "", escapes)
}

// AppendFile adds the comments file's lines to the target, delegating the
// line parsing to the tool.
func (c *Client) AppendFile(ctx context.Context, file, commentsPath string, escapes bool) error {
	return c.apply(ctx, "append", "-a", file, nil, commentsPath, escapes)
}

// WriteFile replaces all comments on the target with the comments file's
// lines.
func (c *Client) WriteFile(ctx context.Context, file, commentsPath string, escapes bool) error {
	return c.apply(ctx, "write", "-w", file, nil, commentsPath, escapes)
}

// Version returns the tool's combined version output verbatim.
func (c *Client) Version(ctx context.Context) (string, error) {
	runCtx, cancel := c.boundContext(ctx)
	defer cancel()

	cmd := commandContext(runCtx, c.binary, "--version") //nolint:gosec
	output, err := cmd.CombinedOutput()
	if err != nil {
		return "", services.Wrap(services.ErrExternalTool, "vorbiscomment", "version", strings.TrimSpace(string(output)), err)
	}
	return string(output), nil
}

func (c *Client) apply(ctx context.Context, operation, modeFlag, file string, set comments.Set, commentsPath string, escapes bool) error {
	args := make([]string, 0, 5+2*len(set))
	if escapes {
		args = append(args, "-e")
	}
	args = append(args, modeFlag, file)
	if commentsPath != "" {
		args = append(args, "-c", commentsPath)
	} else {
		for _, pair := range set {
			args = append(args, "-t", pair.String())
		}
	}
	_, err := c.run(ctx, operation, args)
	return err
}

func (c *Client) run(ctx context.Context, operation string, args []string) (string, error) {
	runCtx, cancel := c.boundContext(ctx)
	defer cancel()

	cmd := commandContext(runCtx, c.binary, args...) //nolint:gosec
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		detail := strings.TrimSpace(stderr.String())
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			message := fmt.Sprintf("exit status %d", exitErr.ExitCode())
			if detail != "" {
				message = message + ": " + detail
			}
			return "", services.Wrap(services.ErrExternalTool, "vorbiscomment", operation, message, nil)
		}
		return "", services.Wrap(services.ErrExternalTool, "vorbiscomment", operation, detail, err)
	}
	return stdout.String(), nil
}

func (c *Client) boundContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if c.timeout > 0 {
		return context.WithTimeout(ctx, c.timeout)
	}
	return ctx, func() {}
}

func splitLines(output string) []string {
	output = strings.TrimRight(output, "\n")
	if output == "" {
		return nil
	}
	lines := strings.Split(output, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, "\r")
	}
	return lines
}
