package cli

import (
	"github.com/spf13/cobra"

	"github.com/kdbg-dev/kdbg/pkg/config"
	"github.com/kdbg-dev/kdbg/pkg/kubectl"
)

type LogsArgs struct {
	*RootArgs

	Namespace string
	Tail      int
	Follow    bool
}

func NewLogsArgs(rootArgs *RootArgs) *LogsArgs {
	return &LogsArgs{
		RootArgs: rootArgs,
	}
}

func (la *LogsArgs) AddFlags(cmd *cobra.Command) {
	addNamespaceFlag(cmd, &la.Namespace)
	cmd.Flags().IntVar(&la.Tail, "tail", config.DefaultTail, "Number of recent log lines to print")
	cmd.Flags().BoolVarP(&la.Follow, "follow", "f", false, "Stream new log lines as they are written")
}

// Request builds the logs request for one resolved pod.
func (la *LogsArgs) Request(cmd *cobra.Command, args []string, cfg *config.Config) kubectl.Request {
	return kubectl.Request{
		Op:        kubectl.OpLogs,
		Namespace: namespaceOrDefault(cmd, la.Namespace, cfg),
		Fragment:  args[0],
		Options: kubectl.Options{
			Tail:   tailOrDefault(cmd, la.Tail, cfg),
			Follow: la.Follow,
		},
	}
}

func NewLogsCmd(la *LogsArgs) *cobra.Command {
	cmd := &cobra.Command{
		Use:               "logs <fragment>",
		Short:             "Print logs from the pod matching a name fragment",
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: podCompletion(&la.Namespace),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := la.LoadConfig()
			if err != nil {
				return err
			}

			return dispatchRequest(cmd, la.RootArgs, cfg, la.Request(cmd, args, cfg))
		},
	}
	la.AddFlags(cmd)

	bindEnvVars(cmd)

	return cmd
}
