package cli_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kdbg-dev/kdbg/internal/cli"
	"github.com/kdbg-dev/kdbg/pkg/config"
	"github.com/kdbg-dev/kdbg/pkg/kubectl"
)

func intPtr(i int) *int { return &i }

// The remaining targeted commands share one request shape, differing only in
// operation and per-command options.
func TestTargetedCommandRequests(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		build func(t *testing.T, cfg *config.Config) kubectl.Request
		want  kubectl.Request
	}{
		"exec defaults to /bin/sh": {
			build: func(t *testing.T, cfg *config.Config) kubectl.Request {
				t.Helper()

				ea := cli.NewExecArgs(cli.NewRootArgs())
				cmd := cli.NewExecCmd(ea)
				require.NoError(t, cmd.ParseFlags(nil))

				return ea.Request(cmd, []string{"api"}, cfg)
			},
			want: kubectl.Request{
				Op:       kubectl.OpExec,
				Fragment: "api",
				Options:  kubectl.Options{Command: "/bin/sh"},
			},
		},
		"exec honors an explicit command": {
			build: func(t *testing.T, cfg *config.Config) kubectl.Request {
				t.Helper()

				ea := cli.NewExecArgs(cli.NewRootArgs())
				cmd := cli.NewExecCmd(ea)
				require.NoError(t, cmd.ParseFlags([]string{"-c", "ls -la /tmp"}))

				return ea.Request(cmd, []string{"api"}, cfg)
			},
			want: kubectl.Request{
				Op:       kubectl.OpExec,
				Fragment: "api",
				Options:  kubectl.Options{Command: "ls -la /tmp"},
			},
		},
		"shell leaves the interpreter to the dispatcher": {
			build: func(t *testing.T, cfg *config.Config) kubectl.Request {
				t.Helper()

				sa := cli.NewShellArgs(cli.NewRootArgs())
				cmd := cli.NewShellCmd(sa)
				require.NoError(t, cmd.ParseFlags(nil))

				return sa.Request(cmd, []string{"api"}, cfg)
			},
			want: kubectl.Request{
				Op:       kubectl.OpShell,
				Fragment: "api",
			},
		},
		"describe": {
			build: func(t *testing.T, cfg *config.Config) kubectl.Request {
				t.Helper()

				da := cli.NewDescribeArgs(cli.NewRootArgs())
				cmd := cli.NewDescribeCmd(da)
				require.NoError(t, cmd.ParseFlags(nil))

				return da.Request(cmd, []string{"api"}, cfg)
			},
			want: kubectl.Request{
				Op:       kubectl.OpDescribe,
				Fragment: "api",
			},
		},
		"top resolves no fragment": {
			build: func(t *testing.T, cfg *config.Config) kubectl.Request {
				t.Helper()

				ta := cli.NewTopArgs(cli.NewRootArgs())
				cmd := cli.NewTopCmd(ta)
				require.NoError(t, cmd.ParseFlags([]string{"-n", "prod"}))

				return ta.Request(cmd, cfg)
			},
			want: kubectl.Request{
				Op:        kubectl.OpTop,
				Namespace: "prod",
			},
		},
		"restart": {
			build: func(t *testing.T, cfg *config.Config) kubectl.Request {
				t.Helper()

				ra := cli.NewRestartArgs(cli.NewRootArgs())
				cmd := cli.NewRestartCmd(ra)
				require.NoError(t, cmd.ParseFlags(nil))

				return ra.Request(cmd, []string{"api"}, cfg)
			},
			want: kubectl.Request{
				Op:       kubectl.OpRestart,
				Fragment: "api",
			},
		},
		"events": {
			build: func(t *testing.T, cfg *config.Config) kubectl.Request {
				t.Helper()

				ea := cli.NewEventsArgs(cli.NewRootArgs())
				cmd := cli.NewEventsCmd(ea)
				require.NoError(t, cmd.ParseFlags(nil))

				return ea.Request(cmd, []string{"api"}, cfg)
			},
			want: kubectl.Request{
				Op:       kubectl.OpEvents,
				Fragment: "api",
			},
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			got := tc.build(t, config.New())
			assert.Equal(t, tc.want, got)
		})
	}
}
