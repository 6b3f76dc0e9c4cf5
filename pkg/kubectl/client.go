package kubectl

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"github.com/kdbg-dev/kdbg/pkg/execs"
)

// DefaultBin is the binary resolved from PATH when no override is given.
const DefaultBin = "kubectl"

// Runner abstracts the subprocess layer. [*execs.Executor] is the standard
// implementation; tests substitute scripted runners.
type Runner interface {
	Exec(ctx context.Context, args ...string) (*execs.Result, error)
	Stream(ctx context.Context, args []string, opts ...execs.StreamOpt) (*execs.ExitOutcome, error)
	String() string
}

// Client fetches cluster state and runs shaped invocations through one
// kubectl binary.
type Client struct {
	run Runner
	bin string
}

// ClientOpt configures a [Client].
type ClientOpt func(c *Client) error

// WithBin overrides the kubectl binary name or path resolved from PATH.
func WithBin(bin string) ClientOpt {
	return func(c *Client) error {
		if bin == "" {
			return fmt.Errorf("%w: empty binary name", ErrToolUnavailable)
		}

		c.bin = bin

		return nil
	}
}

// WithRunner injects a [Runner], bypassing PATH resolution entirely.
func WithRunner(r Runner) ClientOpt {
	return func(c *Client) error {
		c.run = r

		return nil
	}
}

// NewClient creates a [Client], resolving the kubectl binary from PATH
// unless a runner was injected. A missing binary surfaces immediately as
// [ErrToolUnavailable] rather than on first use.
func NewClient(opts ...ClientOpt) (*Client, error) {
	c := &Client{bin: DefaultBin}

	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}

	if c.run == nil {
		path, err := exec.LookPath(c.bin)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrToolUnavailable, err)
		}

		c.run = execs.NewExecutor(path)
	}

	return c, nil
}

// Pods fetches the live pod inventory for a namespace, or for all
// namespaces when namespace is empty. Zero pods is an empty slice, never an
// error. The snapshot is point-in-time: no caching, and no retries, since a
// retried query can observe a different cluster state and masks genuine
// connectivity failures.
func (c *Client) Pods(ctx context.Context, namespace string) ([]PodRecord, error) {
	result, err := c.run.Exec(ctx, PodsArgs(namespace)...)
	if err != nil {
		if errors.Is(err, exec.ErrNotFound) {
			return nil, fmt.Errorf("%w: %w", ErrToolUnavailable, err)
		}

		if excerpt := stderrExcerpt(result); excerpt != "" {
			return nil, fmt.Errorf("%w: %s", ErrClusterUnreachable, excerpt)
		}

		return nil, fmt.Errorf("%w: %w", ErrClusterUnreachable, err)
	}

	var list podList
	if err := json.Unmarshal([]byte(result.Stdout), &list); err != nil {
		return nil, fmt.Errorf("decode pod inventory: %w", err)
	}

	records := make([]PodRecord, 0, len(list.Items))
	for _, item := range list.Items {
		records = append(records, item.record())
	}

	return records, nil
}

// Exec runs a captured invocation through the underlying runner.
func (c *Client) Exec(ctx context.Context, args ...string) (*execs.Result, error) {
	return c.run.Exec(ctx, args...)
}

// Stream runs a terminal-attached invocation through the underlying runner.
func (c *Client) Stream(ctx context.Context, args []string, opts ...execs.StreamOpt) (*execs.ExitOutcome, error) {
	return c.run.Stream(ctx, args, opts...)
}

func (c *Client) String() string {
	return c.run.String()
}

func stderrExcerpt(result *execs.Result) string {
	if result == nil {
		return ""
	}

	for line := range strings.Lines(result.Stderr) {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			return trimmed
		}
	}

	return ""
}
