package cli

import (
	"github.com/spf13/cobra"

	"github.com/kdbg-dev/kdbg/pkg/config"
	"github.com/kdbg-dev/kdbg/pkg/kubectl"
)

type EventsArgs struct {
	*RootArgs

	Namespace string
}

func NewEventsArgs(rootArgs *RootArgs) *EventsArgs {
	return &EventsArgs{
		RootArgs: rootArgs,
	}
}

func (ea *EventsArgs) AddFlags(cmd *cobra.Command) {
	addNamespaceFlag(cmd, &ea.Namespace)
}

// Request builds the events request for one resolved pod.
func (ea *EventsArgs) Request(cmd *cobra.Command, args []string, cfg *config.Config) kubectl.Request {
	return kubectl.Request{
		Op:        kubectl.OpEvents,
		Namespace: namespaceOrDefault(cmd, ea.Namespace, cfg),
		Fragment:  args[0],
	}
}

func NewEventsCmd(ea *EventsArgs) *cobra.Command {
	cmd := &cobra.Command{
		Use:               "events <fragment>",
		Short:             "Show events for the pod matching a name fragment",
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
