package cli

import (
	"github.com/spf13/cobra"

	"github.com/kdbg-dev/kdbg/pkg/config"
	"github.com/kdbg-dev/kdbg/pkg/kubectl"
)

type TopArgs struct {
	*RootArgs

	Namespace string
}

func NewTopArgs(rootArgs *RootArgs) *TopArgs {
	return &TopArgs{
		RootArgs: rootArgs,
	}
}

func (ta *TopArgs) AddFlags(cmd *cobra.Command) {
	addNamespaceFlag(cmd, &ta.Namespace)
}

// Request builds the top request. Top is namespace-wide and resolves no
// fragment.
func (ta *TopArgs) Request(cmd *cobra.Command, cfg *config.Config) kubectl.Request {
	return kubectl.Request{
		Op:        kubectl.OpTop,
		Namespace: namespaceOrDefault(cmd, ta.Namespace, cfg),
	}
}

func NewTopCmd(ta *TopArgs) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "top",
		Short: "Show pod resource usage",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := ta.LoadConfig()
			if err != nil {
				return err
			}

			return dispatchRequest(cmd, ta.RootArgs, cfg, ta.Request(cmd, cfg))
		},
	}
	ta.AddFlags(cmd)

	bindEnvVars(cmd)

	return cmd
}
