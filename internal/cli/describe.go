package cli

import (
	"github.com/spf13/cobra"

	"github.com/kdbg-dev/kdbg/pkg/config"
	"github.com/kdbg-dev/kdbg/pkg/kubectl"
)

type DescribeArgs struct {
	*RootArgs

	Namespace string
}

func NewDescribeArgs(rootArgs *RootArgs) *DescribeArgs {
	return &DescribeArgs{
		RootArgs: rootArgs,
	}
}

func (da *DescribeArgs) AddFlags(cmd *cobra.Command) {
	addNamespaceFlag(cmd, &da.Namespace)
}

// Request builds the describe request for one resolved pod.
func (da *DescribeArgs) Request(cmd *cobra.Command, args []string, cfg *config.Config) kubectl.Request {
	return kubectl.Request{
		Op:        kubectl.OpDescribe,
		Namespace: namespaceOrDefault(cmd, da.Namespace, cfg),
		Fragment:  args[0],
	}
}

func NewDescribeCmd(da *DescribeArgs) *cobra.Command {
	cmd := &cobra.Command{
		Use:               "describe <fragment>",
		Short:             "Describe the pod matching a name fragment",
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: podCompletion(&da.Namespace),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := da.LoadConfig()
			if err != nil {
				return err
			}

			return dispatchRequest(cmd, da.RootArgs, cfg, da.Request(cmd, args, cfg))
		},
	}
	da.AddFlags(cmd)

	bindEnvVars(cmd)

	return cmd
}
