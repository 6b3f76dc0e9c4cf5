package cli

import (
	"github.com/spf13/cobra"

	"github.com/kdbg-dev/kdbg/pkg/config"
	"github.com/kdbg-dev/kdbg/pkg/kubectl"
)

// defaultExecCommand runs when no command is given, mirroring the behavior
// of a bare kubectl exec into minimal images.
const defaultExecCommand = "/bin/sh"

type ExecArgs struct {
	*RootArgs

	Namespace string
	Command   string
}

func NewExecArgs(rootArgs *RootArgs) *ExecArgs {
	return &ExecArgs{
		RootArgs: rootArgs,
	}
}

func (ea *ExecArgs) AddFlags(cmd *cobra.Command) {
	addNamespaceFlag(cmd, &ea.Namespace)
	cmd.Flags().StringVarP(&ea.Command, "command", "c", defaultExecCommand, "Command to run inside the pod")
}

// Request builds the exec request. The command string is shell-split later
// by the invocation builder, so quoting works the way a shell user expects.
func (ea *ExecArgs) Request(cmd *cobra.Command, args []string, cfg *config.Config) kubectl.Request {
	return kubectl.Request{
		Op:        kubectl.OpExec,
		Namespace: namespaceOrDefault(cmd, ea.Namespace, cfg),
		Fragment:  args[0],
		Options: kubectl.Options{
			Command: ea.Command,
		},
	}
}

func NewExecCmd(ea *ExecArgs) *cobra.Command {
	cmd := &cobra.Command{
		Use:               "exec <fragment>",
		Short:             "Run a command inside the pod matching a name fragment",
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: podCompletion(&ea.Namespace),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ea.LoadConfig()
			if err != nil {
				return err
			}

			return dispatchRequest(cmd, ea.RootArgs, cfg, ea.Request(cmd, args, cfg))
		},
	}
	ea.AddFlags(cmd)

	bindEnvVars(cmd)

	return cmd
}
