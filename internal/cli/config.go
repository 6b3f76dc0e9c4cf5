package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kdbg-dev/kdbg/pkg/config"
)

// ConfigArgs defines arguments for the config command group.
type ConfigArgs struct {
	*RootArgs

	Force bool
}

// NewConfigArgs creates a [ConfigArgs] with default values.
func NewConfigArgs(ra *RootArgs) *ConfigArgs {
	return &ConfigArgs{RootArgs: ra}
}

// AddFlags adds config init flags to the provided command.
func (ca *ConfigArgs) AddFlags(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&ca.Force, "force", false,
		"Back up and replace an existing config file")
}

// Path resolves the config file path from the persistent --config flag,
// falling back to the default location.
func (ca *ConfigArgs) Path() string {
	if ca.ConfigPath != "" {
		return ca.ConfigPath
	}

	return config.GetPath()
}

// NewConfigCmd creates a new config command group.
func NewConfigCmd(ra *RootArgs) *cobra.Command {
	ca := NewConfigArgs(ra)

	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the kdbg config file",
	}

	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write the default config file and its JSON schema",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			path := ca.Path()

			err := config.WriteDefault(path, ca.Force)
			if err != nil {
				return err
			}

			mustN(fmt.Fprintln(cmd.OutOrStdout(), path))

			return nil
		},
	}
	ca.AddFlags(initCmd)

	pathCmd := &cobra.Command{
		Use:   "path",
		Short: "Print the config file path",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			mustN(fmt.Fprintln(cmd.OutOrStdout(), ca.Path()))
		},
	}

	cmd.AddCommand(initCmd, pathCmd)

	return cmd
}
