package cli_test

import (
	"bytes"
	"errors"
	"fmt"
	"testing"

	"github.com/charmbracelet/fang"
	"github.com/stretchr/testify/assert"

	"github.com/kdbg-dev/kdbg/internal/cli"
	"github.com/kdbg-dev/kdbg/pkg/kubectl"
	"github.com/kdbg-dev/kdbg/pkg/resolve"
)

func TestExitCode(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		err  error
		want int
	}{
		"nil error": {
			err:  nil,
			want: 0,
		},
		"generic error": {
			err:  errors.New("boom"),
			want: 1,
		},
		"child exit status": {
			err:  &cli.ExitError{Code: 42},
			want: 42,
		},
		"wrapped child exit status": {
			err:  fmt.Errorf("dispatch: %w", &cli.ExitError{Code: 7}),
			want: 7,
		},
		"invalid option": {
			err:  &kubectl.BuildError{Option: "tail", Reason: "must not be negative"},
			want: 2,
		},
		"unknown flag": {
			err:  errors.New("unknown flag: --bogus"),
			want: 2,
		},
		"wrong argument count": {
			err:  errors.New("accepts 1 arg(s), received 2"),
			want: 2,
		},
		"no matching pod": {
			err:  &resolve.NotFoundError{Fragment: "web"},
			want: 3,
		},
		"selection cancelled": {
			err:  resolve.ErrCancelled,
			want: 4,
		},
		"not interactive": {
			err:  fmt.Errorf("choose: %w", resolve.ErrNotInteractive),
			want: 4,
		},
		"kubectl missing": {
			err:  fmt.Errorf("run kubectl: %w", kubectl.ErrToolUnavailable),
			want: 5,
		},
		"cluster unreachable": {
			err:  fmt.Errorf("list pods: %w", kubectl.ErrClusterUnreachable),
			want: 6,
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tc.want, cli.ExitCode(tc.err))
		})
	}
}

func TestErrorHandler(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		err             error
		wantContains    []string
		wantNotContains []string
		wantEmpty       bool
	}{
		"child exit status renders nothing": {
			err:       &cli.ExitError{Code: 3},
			wantEmpty: true,
		},
		"usage error includes help hint": {
			err:          errors.New("unknown flag: --bogus"),
			wantContains: []string{"unknown flag: --bogus", "--help"},
		},
		"other errors render the message only": {
			err:             errors.New(`no pod matching "web" in any namespace`),
			wantContains:    []string{`no pod matching "web"`},
			wantNotContains: []string{"--help"},
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			b := &bytes.Buffer{}
			cli.ErrorHandler(b, fang.Styles{}, tc.err)

			if tc.wantEmpty {
				assert.Empty(t, b.String())

				return
			}

			for _, want := range tc.wantContains {
				assert.Contains(t, b.String(), want)
			}
			for _, want := range tc.wantNotContains {
				assert.NotContains(t, b.String(), want)
			}
		})
	}
}
