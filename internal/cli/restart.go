package cli

import (
	"github.com/spf13/cobra"

	"github.com/kdbg-dev/kdbg/pkg/config"
	"github.com/kdbg-dev/kdbg/pkg/kubectl"
)

type RestartArgs struct {
	*RootArgs

	Namespace string
}

func NewRestartArgs(rootArgs *RootArgs) *RestartArgs {
	return &RestartArgs{
		RootArgs: rootArgs,
	}
}

func (ra *RestartArgs) AddFlags(cmd *cobra.Command) {
	addNamespaceFlag(cmd, &ra.Namespace)
}

// Request builds the restart request. Restart deletes the pod and relies on
// its controller to replace it.
func (ra *RestartArgs) Request(cmd *cobra.Command, args []string, cfg *config.Config) kubectl.Request {
	return kubectl.Request{
		Op:        kubectl.OpRestart,
		Namespace: namespaceOrDefault(cmd, ra.Namespace, cfg),
		Fragment:  args[0],
	}
}

func NewRestartCmd(ra *RestartArgs) *cobra.Command {
	cmd := &cobra.Command{
		Use:               "restart <fragment>",
		Short:             "Delete the pod matching a name fragment so its controller recreates it",
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: podCompletion(&ra.Namespace),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ra.LoadConfig()
			if err != nil {
				return err
			}

			return dispatchRequest(cmd, ra.RootArgs, cfg, ra.Request(cmd, args, cfg))
		},
	}
	ra.AddFlags(cmd)

	bindEnvVars(cmd)

	return cmd
}
