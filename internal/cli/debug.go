package cli

import (
	"github.com/spf13/cobra"

	"github.com/kdbg-dev/kdbg/pkg/config"
	"github.com/kdbg-dev/kdbg/pkg/kubectl"
)

const debugExamples = `  # Busybox pod in the default namespace:
  kdbg debug

  # Image with more tooling, in a specific namespace:
  kdbg debug -i nicolaka/netshoot -n prod`

type DebugArgs struct {
	*RootArgs

	Namespace string
	Image     string
}

func NewDebugArgs(rootArgs *RootArgs) *DebugArgs {
	return &DebugArgs{
		RootArgs: rootArgs,
	}
}

func (da *DebugArgs) AddFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&da.Namespace, "namespace", "n", config.DefaultDebugNamespace, "Namespace to create the debug pod in")
	cmd.Flags().StringVarP(&da.Image, "image", "i", config.DefaultImage, "Container image for the debug pod")
}

// Request builds the debug request. Debug targets no existing pod; it
// creates a transient one that is deleted when the shell exits.
func (da *DebugArgs) Request(cmd *cobra.Command, cfg *config.Config) kubectl.Request {
	return kubectl.Request{
		Op:        kubectl.OpDebug,
		Namespace: debugNamespaceOrDefault(cmd, da.Namespace, cfg),
		Options: kubectl.Options{
			Image: imageOrDefault(cmd, da.Image, cfg),
		},
	}
}

func NewDebugCmd(da *DebugArgs) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "debug",
		Short:   "Start a throwaway pod and shell into it",
		Example: debugExamples,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := da.LoadConfig()
			if err != nil {
				return err
			}

			return dispatchRequest(cmd, da.RootArgs, cfg, da.Request(cmd, cfg))
		},
	}
	da.AddFlags(cmd)

	bindEnvVars(cmd)

	return cmd
}
