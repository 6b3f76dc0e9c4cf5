package execs

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"os/signal"
	"syscall"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/kdbg-dev/kdbg/pkg/log"
)

// interruptExitCode is the shell convention (128+SIGINT) used by children
// that catch the interrupt and exit on their own terms.
const interruptExitCode = 130

// ExitOutcome describes how a terminal-connected command ended.
type ExitOutcome struct {
	// Code is the child's exit code.
	Code int
	// Interrupted reports that the session ended in response to the
	// terminal's interrupt signal. It is an expected way for a session to
	// end, not a failure.
	Interrupted bool
}

type streamConfig struct {
	discardStderr bool
}

// StreamOpt configures a single [Executor.Stream] call.
type StreamOpt func(c *streamConfig)

// WithDiscardStderr connects the child's stderr to the null device.
func WithDiscardStderr() StreamOpt {
	return func(c *streamConfig) {
		c.discardStderr = true
	}
}

// Stream runs the binary with the caller's stdio attached and blocks until
// the child exits. A non-zero exit is reported through the returned
// [ExitOutcome], not as an error; errors are reserved for failures to run
// the child at all.
//
// The parent subscribes to the interrupt signal for the duration of the
// child. The terminal delivers the signal to the whole foreground process
// group, the child acts on it, and the parent survives to run any cleanup
// its callers registered. Cancellation of ctx is deliberately not wired to
// the child: killing an interactive session from the outside would bypass
// the terminal's own interrupt protocol.
func (e *Executor) Stream(ctx context.Context, args []string, opts ...StreamOpt) (*ExitOutcome, error) {
	ctx, span := e.tracer.Start(ctx, "stream", trace.WithAttributes(
		attribute.String("command", e.commandLine(args)),
	))
	defer span.End()

	if e.bin == "" {
		return nil, fmt.Errorf("%w: %w", ErrCommandExecution, ErrEmptyCommand)
	}

	cfg := &streamConfig{}
	for _, opt := range opts {
		opt(cfg)
	}

	logger := log.WithContext(ctx).With(
		slog.String("command", e.commandLine(args)),
	)

	//nolint:gosec // G204: Arguments are assembled from validated requests.
	cmd := exec.Command(e.bin, args...)
	cmd.Stdin = e.stdin
	cmd.Stdout = e.stdout

	if !cfg.discardStderr {
		cmd.Stderr = e.stderr
	}

	// Subscribe before starting the child so an early interrupt cannot kill
	// the parent between Start and Notify.
	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, os.Interrupt)
	defer signal.Stop(sigc)

	start := time.Now()

	err := cmd.Run()
	duration := time.Since(start)

	outcome := &ExitOutcome{}

	var exitErr *exec.ExitError

	switch {
	case err == nil:

	case errors.As(err, &exitErr):
		outcome.Code = exitErr.ExitCode()

		if ws, ok := exitErr.Sys().(syscall.WaitStatus); ok && ws.Signaled() && ws.Signal() == syscall.SIGINT {
			// The child died from the signal itself.
			outcome.Code = interruptExitCode
			outcome.Interrupted = true
		} else if outcome.Code == interruptExitCode {
			// The child caught the interrupt and exited by convention.
			outcome.Interrupted = true
		}

	default:
		return nil, fmt.Errorf("%w: %w", ErrCommandExecution, err)
	}

	logger.DebugContext(ctx, "session ended",
		slog.Int("code", outcome.Code),
		slog.Bool("interrupted", outcome.Interrupted),
		slog.Duration("duration", duration),
	)

	return outcome, nil
}
