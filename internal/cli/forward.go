package cli

import (
	"github.com/spf13/cobra"

	"github.com/kdbg-dev/kdbg/pkg/config"
	"github.com/kdbg-dev/kdbg/pkg/kubectl"
)

const forwardExamples = `  # Forward local port 8080 to port 80 of the best "web" match:
  kdbg forward web 8080 80`

type ForwardArgs struct {
	*RootArgs

	Namespace string
}

func NewForwardArgs(rootArgs *RootArgs) *ForwardArgs {
	return &ForwardArgs{
		RootArgs: rootArgs,
	}
}

func (fa *ForwardArgs) AddFlags(cmd *cobra.Command) {
	addNamespaceFlag(cmd, &fa.Namespace)
}

// Request builds the port-forward request. Both ports are validated here so
// a bad port fails before anything reaches the cluster.
func (fa *ForwardArgs) Request(cmd *cobra.Command, args []string, cfg *config.Config) (kubectl.Request, error) {
	localPort, err := kubectl.ParsePort("local port", args[1])
	if err != nil {
		return kubectl.Request{}, err
	}

	remotePort, err := kubectl.ParsePort("pod port", args[2])
	if err != nil {
		return kubectl.Request{}, err
	}

	return kubectl.Request{
		Op:        kubectl.OpForward,
		Namespace: namespaceOrDefault(cmd, fa.Namespace, cfg),
		Fragment:  args[0],
		Options: kubectl.Options{
			LocalPort:  localPort,
			RemotePort: remotePort,
		},
	}, nil
}

func NewForwardCmd(fa *ForwardArgs) *cobra.Command {
	cmd := &cobra.Command{
		Use:               "forward <fragment> <local-port> <pod-port>",
		Short:             "Forward a local port to the pod matching a name fragment",
		Example:           forwardExamples,
		Args:              cobra.ExactArgs(3),
		ValidArgsFunction: podCompletion(&fa.Namespace),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := fa.LoadConfig()
			if err != nil {
				return err
			}

			req, err := fa.Request(cmd, args, cfg)
			if err != nil {
				return err
			}

			return dispatchRequest(cmd, fa.RootArgs, cfg, req)
		},
	}
	fa.AddFlags(cmd)

	bindEnvVars(cmd)

	return cmd
}
