package cli

import (
	"github.com/spf13/cobra"

	"github.com/kdbg-dev/kdbg/pkg/config"
	"github.com/kdbg-dev/kdbg/pkg/kubectl"
)

type ShellArgs struct {
	*RootArgs

	Namespace string
}

func NewShellArgs(rootArgs *RootArgs) *ShellArgs {
	return &ShellArgs{
		RootArgs: rootArgs,
	}
}

func (sa *ShellArgs) AddFlags(cmd *cobra.Command) {
	addNamespaceFlag(cmd, &sa.Namespace)
}

// Request builds the shell request. The shell itself is left unset; the
// dispatcher walks its ladder of candidate shells.
func (sa *ShellArgs) Request(cmd *cobra.Command, args []string, cfg *config.Config) kubectl.Request {
	return kubectl.Request{
		Op:        kubectl.OpShell,
		Namespace: namespaceOrDefault(cmd, sa.Namespace, cfg),
		Fragment:  args[0],
	}
}

func NewShellCmd(sa *ShellArgs) *cobra.Command {
	cmd := &cobra.Command{
		Use:               "shell <fragment>",
		Short:             "Open an interactive shell in the pod matching a name fragment",
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: podCompletion(&sa.Namespace),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := sa.LoadConfig()
			if err != nil {
				return err
			}

			return dispatchRequest(cmd, sa.RootArgs, cfg, sa.Request(cmd, args, cfg))
		},
	}
	sa.AddFlags(cmd)

	bindEnvVars(cmd)

	return cmd
}
