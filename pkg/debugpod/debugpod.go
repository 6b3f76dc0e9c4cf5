// Package debugpod manages the transient pod behind a debug session. The
// pod exists only for the session's duration; deletion runs on every exit
// path, including interrupts delivered mid-shell.
package debugpod

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"time"

	"github.com/kdbg-dev/kdbg/pkg/execs"
	"github.com/kdbg-dev/kdbg/pkg/kubectl"
)

// ErrSessionUsed is returned when Run is called twice on one session.
var ErrSessionUsed = errors.New("debug session already used")

// DefaultShell is the interpreter started inside the debug pod.
const DefaultShell = "/bin/sh"

// DefaultWaitTimeout bounds how long a session waits for the pod to become
// ready before giving up and tearing it down.
const DefaultWaitTimeout = 60 * time.Second

// State tracks a session through its lifecycle. Every session ends in
// [StateDone], whether it got as far as a shell or not.
type State int

const (
	StateUninitialized State = iota
	StateCreating
	StateReady
	StateInUse
	StateTearingDown
	StateDone
)

func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateCreating:
		return "creating"
	case StateReady:
		return "ready"
	case StateInUse:
		return "in use"
	case StateTearingDown:
		return "tearing down"
	case StateDone:
		return "done"
	}

	return "unknown"
}

// Runner runs kubectl invocations for the session. [*kubectl.Client]
// implements it.
type Runner interface {
	Exec(ctx context.Context, args ...string) (*execs.Result, error)
	Stream(ctx context.Context, args []string, opts ...execs.StreamOpt) (*execs.ExitOutcome, error)
}

// Session owns one transient debug pod from creation to deletion. A
// session is single-use.
type Session struct {
	run       Runner
	createdAt time.Time
	name      string
	image     string
	namespace string
	shell     string
	wait      time.Duration
	state     State
}

// SessionOpt configures a [Session].
type SessionOpt func(s *Session)

// WithShell overrides the interpreter started inside the pod.
func WithShell(shell string) SessionOpt {
	return func(s *Session) {
		s.shell = shell
	}
}

// WithWaitTimeout overrides [DefaultWaitTimeout].
func WithWaitTimeout(d time.Duration) SessionOpt {
	return func(s *Session) {
		s.wait = d
	}
}

// NewSession creates a session for one debug pod. The pod name carries the
// creation timestamp so that stray pods from torn sessions are
// recognizable in the cluster.
func NewSession(run Runner, image, namespace string, opts ...SessionOpt) *Session {
	now := time.Now()

	s := &Session{
		run:       run,
		createdAt: now,
		name:      "debug-" + strconv.FormatInt(now.Unix(), 10),
		image:     image,
		namespace: namespace,
		shell:     DefaultShell,
		wait:      DefaultWaitTimeout,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Name returns the generated pod name.
func (s *Session) Name() string {
	return s.name
}

// State returns the session's current lifecycle state.
func (s *Session) State() State {
	return s.state
}

// Run drives the full lifecycle: create the pod, wait for readiness, hand
// the terminal to a shell inside it, and delete the pod. Deletion is
// registered before the first kubectl call so that failures during
// creation or readiness also clean up; it is best-effort and downgraded to
// a warning, since a stray pod is recoverable but a blocked exit is not.
//
// The returned outcome is the shell's, so an interactive exit code (or an
// interrupt) propagates to the caller untouched.
func (s *Session) Run(ctx context.Context) (*execs.ExitOutcome, error) {
	if s.state != StateUninitialized {
		return nil, ErrSessionUsed
	}

	// Hold interrupts for the whole lifecycle. The foreground child still
	// receives them, so an interrupt during create or wait fails that step
	// and falls through to teardown instead of killing the parent first.
	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, os.Interrupt)
	defer signal.Stop(sigc)

	s.state = StateCreating

	// Teardown must run even when the surrounding context was cancelled,
	// otherwise an interrupt mid-session leaves the pod behind.
	defer s.teardown(context.WithoutCancel(ctx))

	createArgs, err := kubectl.DebugCreateArgs(s.name, s.image, s.namespace)
	if err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "creating debug pod",
		slog.String("pod", s.name),
		slog.String("namespace", s.namespace),
		slog.String("image", s.image),
	)

	if _, err := s.run.Exec(ctx, createArgs...); err != nil {
		return nil, fmt.Errorf("create debug pod %q: %w", s.name, err)
	}

	if _, err := s.run.Exec(ctx, kubectl.DebugWaitArgs(s.name, s.namespace, s.wait)...); err != nil {
		return nil, fmt.Errorf("debug pod %q not ready: %w", s.name, err)
	}

	s.state = StateReady

	inv, err := kubectl.Build(
		kubectl.Request{
			Op:        kubectl.OpShell,
			Namespace: s.namespace,
			Options:   kubectl.Options{Shell: s.shell},
		},
		kubectl.PodRecord{Name: s.name, Namespace: s.namespace},
	)
	if err != nil {
		return nil, err
	}

	s.state = StateInUse

	outcome, err := s.run.Stream(ctx, inv.Args)
	if err != nil {
		return nil, fmt.Errorf("debug shell: %w", err)
	}

	return outcome, nil
}

// teardown deletes the pod and finishes the session. It runs even when the
// pod never came up; deletion tolerates absent pods.
func (s *Session) teardown(ctx context.Context) {
	s.state = StateTearingDown

	_, err := s.run.Exec(ctx, kubectl.DeletePodArgs(s.name, s.namespace)...)
	if err != nil {
		slog.WarnContext(ctx, "debug pod may be left behind",
			slog.String("pod", s.name),
			slog.String("namespace", s.namespace),
			slog.Any("err", err),
		)
	} else {
		slog.InfoContext(ctx, "deleted debug pod",
			slog.String("pod", s.name),
			slog.String("namespace", s.namespace),
		)
	}

	s.state = StateDone
}
