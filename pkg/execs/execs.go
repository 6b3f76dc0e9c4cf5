package execs

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/kdbg-dev/kdbg/pkg/log"
)

var (
	// ErrCommandExecution is returned when command execution fails.
	ErrCommandExecution = errors.New("run")

	// ErrEmptyCommand is returned when a command is empty.
	ErrEmptyCommand = errors.New("empty command")
)

// Result holds the captured output of a completed command.
type Result struct {
	Stdout string
	Stderr string
}

// Executor runs one external binary. The child inherits the caller's full
// environment; tools like kubectl depend on it for kubeconfig discovery and
// credential helpers.
type Executor struct {
	tracer trace.Tracer
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
	bin    string
}

// ExecutorOpt configures an [Executor].
type ExecutorOpt func(e *Executor)

// WithStdio overrides the stdio endpoints used by [Executor.Stream].
// Defaults are the process's own stdin, stdout, and stderr.
func WithStdio(stdin io.Reader, stdout, stderr io.Writer) ExecutorOpt {
	return func(e *Executor) {
		e.stdin = stdin
		e.stdout = stdout
		e.stderr = stderr
	}
}

// NewExecutor creates an [Executor] for the given binary.
func NewExecutor(bin string, opts ...ExecutorOpt) *Executor {
	e := &Executor{
		tracer: otel.Tracer("executor"),
		bin:    bin,
		stdin:  os.Stdin,
		stdout: os.Stdout,
		stderr: os.Stderr,
	}
	for _, opt := range opts {
		opt(e)
	}

	return e
}

// Exec runs the binary with the given arguments and captures its output.
// On a non-zero exit the captured output is still returned alongside the
// error when any was produced.
func (e *Executor) Exec(ctx context.Context, args ...string) (*Result, error) {
	ctx, span := e.tracer.Start(ctx, "exec", trace.WithAttributes(
		attribute.String("command", e.commandLine(args)),
	))
	defer span.End()

	if e.bin == "" {
		return nil, fmt.Errorf("%w: %w", ErrCommandExecution, ErrEmptyCommand)
	}

	logger := log.WithContext(ctx).With(
		slog.String("command", e.commandLine(args)),
	)

	start := time.Now()

	//nolint:gosec // G204: Arguments are assembled from validated requests.
	cmd := exec.CommandContext(ctx, e.bin, args...)

	var stdout, stderr bytes.Buffer

	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	result := &Result{
		Stdout: stdout.String(),
		Stderr: stderr.String(),
	}

	if err != nil {
		logger.DebugContext(ctx, "command failed",
			slog.Duration("duration", time.Since(start)),
			slog.Any("error", err),
		)

		if stdout.Len() > 0 || stderr.Len() > 0 {
			return result, fmt.Errorf("%w: %w", ErrCommandExecution, err)
		}

		return nil, fmt.Errorf("%w: %w", ErrCommandExecution, err)
	}

	logger.DebugContext(ctx, "command executed successfully",
		slog.Duration("duration", time.Since(start)),
	)

	return result, nil
}

func (e *Executor) String() string {
	return e.bin
}

func (e *Executor) commandLine(args []string) string {
	return fmt.Sprintf("%s %s", e.bin, strings.Join(args, " "))
}
