// Package dispatch composes the operation pipeline: fetch the pod
// inventory, resolve the fragment, arbitrate selection, shape the
// invocation, and run it. Notices go to stderr so that stdout carries
// nothing but the downstream tool's output.
package dispatch

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/kdbg-dev/kdbg/pkg/debugpod"
	"github.com/kdbg-dev/kdbg/pkg/execs"
	"github.com/kdbg-dev/kdbg/pkg/kubectl"
	"github.com/kdbg-dev/kdbg/pkg/resolve"
)

// DefaultShellLadder is tried in order by the shell operation. Every rung
// but the last runs with stderr suppressed, so probing for bash stays
// silent on minimal images.
var DefaultShellLadder = []string{"/bin/bash", "/bin/sh"}

var (
	infoStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
)

// Client is the kubectl surface the pipeline consumes. [*kubectl.Client]
// implements it.
type Client interface {
	Pods(ctx context.Context, namespace string) ([]kubectl.PodRecord, error)
	Exec(ctx context.Context, args ...string) (*execs.Result, error)
	Stream(ctx context.Context, args []string, opts ...execs.StreamOpt) (*execs.ExitOutcome, error)
}

// Dispatcher routes one operation request through the pipeline.
type Dispatcher struct {
	client   Client
	resolver *resolve.Resolver
	selector *resolve.Selector
	stdout   io.Writer
	stderr   io.Writer
	shells   []string
}

// DispatcherOpt configures a [Dispatcher].
type DispatcherOpt func(d *Dispatcher)

// WithResolver overrides the default resolver.
func WithResolver(r *resolve.Resolver) DispatcherOpt {
	return func(d *Dispatcher) {
		d.resolver = r
	}
}

// WithSelector overrides the default selector.
func WithSelector(s *resolve.Selector) DispatcherOpt {
	return func(d *Dispatcher) {
		d.selector = s
	}
}

// WithShellLadder overrides [DefaultShellLadder]. An empty ladder keeps the
// default.
func WithShellLadder(shells []string) DispatcherOpt {
	return func(d *Dispatcher) {
		if len(shells) > 0 {
			d.shells = shells
		}
	}
}

// WithStdio redirects table output and notices.
func WithStdio(stdout, stderr io.Writer) DispatcherOpt {
	return func(d *Dispatcher) {
		d.stdout = stdout
		d.stderr = stderr
	}
}

// NewDispatcher creates a [Dispatcher] for one kubectl client.
func NewDispatcher(client Client, opts ...DispatcherOpt) *Dispatcher {
	d := &Dispatcher{
		client: client,
		stdout: os.Stdout,
		stderr: os.Stderr,
		shells: DefaultShellLadder,
	}

	for _, opt := range opts {
		opt(d)
	}

	if d.resolver == nil {
		d.resolver = resolve.NewResolver()
	}

	if d.selector == nil {
		d.selector = resolve.NewSelector()
	}

	return d
}

// Dispatch runs one operation end to end. The returned outcome is nil for
// captured operations; for terminal-attached ones it carries the child's
// exit status so the caller can propagate it.
func (d *Dispatcher) Dispatch(ctx context.Context, req kubectl.Request) (*execs.ExitOutcome, error) {
	switch req.Op {
	case kubectl.OpList:
		return nil, d.list(ctx, req)

	case kubectl.OpTop:
		return d.top(ctx, req)

	case kubectl.OpShell:
		return d.shell(ctx, req)

	case kubectl.OpDebug:
		return d.debug(ctx, req)
	}

	return d.passthrough(ctx, req)
}

// target runs the fetch, resolve, and select stages for one request.
func (d *Dispatcher) target(ctx context.Context, req kubectl.Request) (kubectl.PodRecord, error) {
	pods, err := d.client.Pods(ctx, req.Namespace)
	if err != nil {
		return kubectl.PodRecord{}, err
	}

	outcome := d.resolver.Resolve(req.Fragment, pods)
	slog.DebugContext(ctx, "resolved fragment",
		slog.String("fragment", req.Fragment),
		slog.String("kind", outcome.Kind.String()),
		slog.Int("candidates", len(outcome.Candidates)),
	)

	return d.selector.Select(ctx, req.Fragment, req.Namespace, outcome)
}

func (d *Dispatcher) passthrough(ctx context.Context, req kubectl.Request) (*execs.ExitOutcome, error) {
	target, err := d.target(ctx, req)
	if err != nil {
		return nil, err
	}

	inv, err := kubectl.Build(req, target)
	if err != nil {
		return nil, err
	}

	d.preamble(req, target)

	outcome, err := d.client.Stream(ctx, inv.Args)
	if err != nil {
		return nil, err
	}

	if req.Op == kubectl.OpRestart && outcome.Code == 0 {
		d.success("Pod deleted. Waiting for recreation...")
	}

	return outcome, nil
}

func (d *Dispatcher) list(ctx context.Context, req kubectl.Request) error {
	pods, err := d.client.Pods(ctx, req.Namespace)
	if err != nil {
		return err
	}

	if req.Fragment != "" {
		outcome := d.resolver.Resolve(req.Fragment, pods)

		filtered := make([]kubectl.PodRecord, 0, len(outcome.Candidates))
		for _, mc := range outcome.Candidates {
			filtered = append(filtered, mc.Record)
		}

		pods = filtered
	}

	renderPodTable(d.stdout, pods, req.Options.Verbose, time.Now())

	return nil
}

func (d *Dispatcher) top(ctx context.Context, req kubectl.Request) (*execs.ExitOutcome, error) {
	inv, err := kubectl.Build(req, kubectl.PodRecord{})
	if err != nil {
		return nil, err
	}

	fmt.Fprintln(d.stderr, infoStyle.Bold(true).Render("Pod Resource Usage:"))
	d.rule()

	outcome, err := d.client.Stream(ctx, inv.Args)
	if err != nil {
		return nil, err
	}

	// Metrics are optional cluster equipment. Their absence is worth a
	// warning, not a failed invocation.
	if outcome.Code != 0 && !outcome.Interrupted {
		d.warn("Failed to get resource usage (metrics-server may not be installed)")

		return &execs.ExitOutcome{}, nil
	}

	return outcome, nil
}

func (d *Dispatcher) shell(ctx context.Context, req kubectl.Request) (*execs.ExitOutcome, error) {
	target, err := d.target(ctx, req)
	if err != nil {
		return nil, err
	}

	d.info("Opening shell in pod: %s (namespace: %s)", target.Name, target.Namespace)
	d.rule()

	for i, sh := range d.shells {
		req.Options.Shell = sh

		inv, err := kubectl.Build(req, target)
		if err != nil {
			return nil, err
		}

		final := i == len(d.shells)-1

		var opts []execs.StreamOpt
		if !final {
			opts = append(opts, execs.WithDiscardStderr())
		}

		outcome, err := d.client.Stream(ctx, inv.Args, opts...)
		if err != nil {
			return nil, err
		}

		if outcome.Code == 0 || outcome.Interrupted || final {
			return outcome, nil
		}

		slog.DebugContext(ctx, "shell exited nonzero, trying next",
			slog.String("shell", sh),
			slog.Int("code", outcome.Code),
		)
	}

	// Unreachable: the final rung always returns.
	return &execs.ExitOutcome{}, nil
}

func (d *Dispatcher) debug(ctx context.Context, req kubectl.Request) (*execs.ExitOutcome, error) {
	session := debugpod.NewSession(d.client, req.Options.Image, req.Namespace)

	d.info("Creating debug pod: %s (image: %s, namespace: %s)",
		session.Name(), req.Options.Image, req.Namespace)
	d.info("Pod will be deleted when you exit the shell")
	d.rule()

	return session.Run(ctx)
}

// preamble writes the operation's informational lines before the terminal
// is handed to the child.
func (d *Dispatcher) preamble(req kubectl.Request, target kubectl.PodRecord) {
	switch req.Op {
	case kubectl.OpLogs:
		d.info("Logs for pod: %s (namespace: %s)", target.Name, target.Namespace)

	case kubectl.OpExec:
		d.info("Executing in pod: %s (namespace: %s)", target.Name, target.Namespace)
		d.info("Command: %s", req.Options.Command)

	case kubectl.OpDescribe:
		d.info("Describing pod: %s (namespace: %s)", target.Name, target.Namespace)

	case kubectl.OpForward:
		d.info("Port forwarding: localhost:%d -> %s:%d (namespace: %s)",
			req.Options.LocalPort, target.Name, req.Options.RemotePort, target.Namespace)
		d.info("Press Ctrl+C to stop")

	case kubectl.OpRestart:
		d.info("Restarting pod: %s (namespace: %s)", target.Name, target.Namespace)
		d.info("This will delete the pod and let the controller recreate it")

	case kubectl.OpEvents:
		d.info("Events for pod: %s (namespace: %s)", target.Name, target.Namespace)
	}

	d.rule()
}

func (d *Dispatcher) info(format string, args ...any) {
	fmt.Fprintln(d.stderr, infoStyle.Render(fmt.Sprintf(format, args...)))
}

func (d *Dispatcher) warn(format string, args ...any) {
	fmt.Fprintln(d.stderr, warnStyle.Render(fmt.Sprintf(format, args...)))
}

func (d *Dispatcher) success(format string, args ...any) {
	fmt.Fprintln(d.stderr, successStyle.Render(fmt.Sprintf(format, args...)))
}

func (d *Dispatcher) rule() {
	fmt.Fprintln(d.stderr, tableRuleLine())
}
