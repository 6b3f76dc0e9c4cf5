package debugpod_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kdbg-dev/kdbg/pkg/debugpod"
	"github.com/kdbg-dev/kdbg/pkg/execs"
)

// mockRunner implements the Runner interface for testing. failOn makes the
// captured call whose first argument matches fail.
type mockRunner struct {
	streamOutcome *execs.ExitOutcome
	streamErr     error
	failOn        string
	execCalls     [][]string
	streamCalls   [][]string
}

func (m *mockRunner) Exec(_ context.Context, args ...string) (*execs.Result, error) {
	m.execCalls = append(m.execCalls, args)

	if m.failOn != "" && args[0] == m.failOn {
		return nil, execs.ErrCommandExecution
	}

	return &execs.Result{}, nil
}

func (m *mockRunner) Stream(_ context.Context, args []string, _ ...execs.StreamOpt) (*execs.ExitOutcome, error) {
	m.streamCalls = append(m.streamCalls, args)

	if m.streamErr != nil {
		return nil, m.streamErr
	}

	if m.streamOutcome != nil {
		return m.streamOutcome, nil
	}

	return &execs.ExitOutcome{}, nil
}

func firstArgs(calls [][]string) []string {
	verbs := make([]string, len(calls))
	for i, call := range calls {
		verbs[i] = call[0]
	}

	return verbs
}

func TestSessionRun(t *testing.T) {
	t.Parallel()

	runner := &mockRunner{streamOutcome: &execs.ExitOutcome{Code: 0}}
	s := debugpod.NewSession(runner, "busybox", "default")

	require.True(t, strings.HasPrefix(s.Name(), "debug-"))
	assert.Equal(t, debugpod.StateUninitialized, s.State())

	outcome, err := s.Run(t.Context())
	require.NoError(t, err)
	assert.Equal(t, 0, outcome.Code)
	assert.Equal(t, debugpod.StateDone, s.State())

	require.Equal(t, []string{"run", "wait", "delete"}, firstArgs(runner.execCalls))

	create := runner.execCalls[0]
	assert.Equal(t, []string{
		"run", s.Name(),
		"--image", "busybox",
		"-n", "default",
		"--restart=Never",
		"--command", "--", "sleep", "86400",
	}, create)

	wait := runner.execCalls[1]
	assert.Equal(t, []string{
		"wait", "--for=condition=Ready",
		"pod/" + s.Name(),
		"-n", "default",
		"--timeout", "1m0s",
	}, wait)

	require.Len(t, runner.streamCalls, 1)
	assert.Equal(t, []string{
		"exec", "-it", s.Name(), "-n", "default", "--", "/bin/sh",
	}, runner.streamCalls[0])

	assert.Equal(t, []string{
		"delete", "pod", s.Name(), "-n", "default", "--ignore-not-found",
	}, runner.execCalls[2])
}

func TestSessionOptions(t *testing.T) {
	t.Parallel()

	runner := &mockRunner{}
	s := debugpod.NewSession(runner, "alpine", "tools",
		debugpod.WithShell("/bin/bash"),
		debugpod.WithWaitTimeout(90*time.Second),
	)

	_, err := s.Run(t.Context())
	require.NoError(t, err)

	assert.Contains(t, runner.execCalls[1], "1m30s")
	assert.Equal(t, "/bin/bash", runner.streamCalls[0][len(runner.streamCalls[0])-1])
}

func TestSessionCreationFailure(t *testing.T) {
	t.Parallel()

	runner := &mockRunner{failOn: "run"}
	s := debugpod.NewSession(runner, "busybox", "default")

	outcome, err := s.Run(t.Context())
	require.ErrorIs(t, err, execs.ErrCommandExecution)
	require.ErrorContains(t, err, "create debug pod")
	assert.Nil(t, outcome)

	// Never got to readiness or a shell, but deletion still ran.
	assert.Equal(t, []string{"run", "delete"}, firstArgs(runner.execCalls))
	assert.Empty(t, runner.streamCalls)
	assert.Equal(t, debugpod.StateDone, s.State())
}

func TestSessionReadinessFailure(t *testing.T) {
	t.Parallel()

	runner := &mockRunner{failOn: "wait"}
	s := debugpod.NewSession(runner, "busybox", "default")

	_, err := s.Run(t.Context())
	require.ErrorContains(t, err, "not ready")

	assert.Equal(t, []string{"run", "wait", "delete"}, firstArgs(runner.execCalls))
	assert.Empty(t, runner.streamCalls)
	assert.Equal(t, debugpod.StateDone, s.State())
}

func TestSessionShellFailure(t *testing.T) {
	t.Parallel()

	runner := &mockRunner{streamErr: execs.ErrCommandExecution}
	s := debugpod.NewSession(runner, "busybox", "default")

	_, err := s.Run(t.Context())
	require.ErrorContains(t, err, "debug shell")

	assert.Equal(t, []string{"run", "wait", "delete"}, firstArgs(runner.execCalls))
	assert.Equal(t, debugpod.StateDone, s.State())
}

func TestSessionTeardownFailureIsNotAnError(t *testing.T) {
	t.Parallel()

	runner := &mockRunner{failOn: "delete", streamOutcome: &execs.ExitOutcome{Code: 7}}
	s := debugpod.NewSession(runner, "busybox", "default")

	outcome, err := s.Run(t.Context())
	require.NoError(t, err)
	assert.Equal(t, 7, outcome.Code)
	assert.Equal(t, debugpod.StateDone, s.State())
}

func TestSessionInterruptedShell(t *testing.T) {
	t.Parallel()

	runner := &mockRunner{streamOutcome: &execs.ExitOutcome{Code: 130, Interrupted: true}}
	s := debugpod.NewSession(runner, "busybox", "default")

	outcome, err := s.Run(t.Context())
	require.NoError(t, err)
	assert.True(t, outcome.Interrupted)

	assert.Equal(t, []string{"run", "wait", "delete"}, firstArgs(runner.execCalls))
}

func TestSessionIsSingleUse(t *testing.T) {
	t.Parallel()

	runner := &mockRunner{}
	s := debugpod.NewSession(runner, "busybox", "default")

	_, err := s.Run(t.Context())
	require.NoError(t, err)

	_, err = s.Run(t.Context())
	require.ErrorIs(t, err, debugpod.ErrSessionUsed)
}

func TestSessionRejectsEmptyImage(t *testing.T) {
	t.Parallel()

	runner := &mockRunner{}
	s := debugpod.NewSession(runner, "", "default")

	_, err := s.Run(t.Context())
	require.Error(t, err)

	var sawCreate bool
	for _, call := range runner.execCalls {
		if call[0] == "run" {
			sawCreate = true
		}
	}
	assert.False(t, sawCreate)
	assert.Equal(t, debugpod.StateDone, s.State())
}

func TestSessionStateTransitions(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "uninitialized", debugpod.StateUninitialized.String())
	assert.Equal(t, "creating", debugpod.StateCreating.String())
	assert.Equal(t, "ready", debugpod.StateReady.String())
	assert.Equal(t, "in use", debugpod.StateInUse.String())
	assert.Equal(t, "tearing down", debugpod.StateTearingDown.String())
	assert.Equal(t, "done", debugpod.StateDone.String())
	assert.Equal(t, "unknown", debugpod.State(99).String())
}

func TestSessionDefaultTimeoutIsBounded(t *testing.T) {
	t.Parallel()

	runner := &mockRunner{}
	s := debugpod.NewSession(runner, "busybox", "default")

	_, err := s.Run(t.Context())
	require.NoError(t, err)

	assert.Contains(t, runner.execCalls[1], debugpod.DefaultWaitTimeout.String())
}
