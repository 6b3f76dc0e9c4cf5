package cli

import (
	"github.com/spf13/cobra"

	"github.com/kdbg-dev/kdbg/pkg/config"
	"github.com/kdbg-dev/kdbg/pkg/kubectl"
)

type ListArgs struct {
	*RootArgs

	Namespace string
	Verbose   bool
}

func NewListArgs(rootArgs *RootArgs) *ListArgs {
	return &ListArgs{
		RootArgs: rootArgs,
	}
}

func (la *ListArgs) AddFlags(cmd *cobra.Command) {
	addNamespaceFlag(cmd, &la.Namespace)
	cmd.Flags().BoolVarP(&la.Verbose, "verbose", "v", false, "Add restart and age columns")
}

// Request builds the list request. A positional fragment narrows the table
// to matching pods; without one the full inventory is shown.
func (la *ListArgs) Request(cmd *cobra.Command, args []string, cfg *config.Config) kubectl.Request {
	var fragment string
	if len(args) > 0 {
		fragment = args[0]
	}

	return kubectl.Request{
		Op:        kubectl.OpList,
		Namespace: namespaceOrDefault(cmd, la.Namespace, cfg),
		Fragment:  fragment,
		Options: kubectl.Options{
			Verbose: la.Verbose,
		},
	}
}

func NewListCmd(la *ListArgs) *cobra.Command {
	cmd := &cobra.Command{
		Use:               "list [fragment]",
		Short:             "List pods, optionally narrowed by a name fragment",
		Args:              cobra.MaximumNArgs(1),
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
