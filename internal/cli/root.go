package cli

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/kdbg-dev/kdbg/pkg/config"
	"github.com/kdbg-dev/kdbg/pkg/log"
)

const (
	cmdName = "kdbg"
	cmdDesc = `Fast kubectl wrapper with fuzzy pod name matching.`

	cmdExamples = `  # List pods across all namespaces:
  kdbg list

  # Follow logs from the pod whose name best matches "api":
  kdbg logs api -f

  # Open a shell in a pod, scoped to one namespace:
  kdbg shell billing -n prod

  # Forward local port 8080 to port 80 of a pod:
  kdbg forward web 8080 80

  # Start a throwaway busybox pod with an interactive shell:
  kdbg debug`
)

type RootArgs struct {
	LogLevel   string
	LogFormat  string
	ConfigPath string
}

func NewRootArgs() *RootArgs {
	return &RootArgs{}
}

func (ra *RootArgs) AddFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().
		StringVar(&ra.LogLevel, "log-level", "warn", fmt.Sprintf("Log level, one of: %s", log.Levels))
	cmd.PersistentFlags().
		StringVar(&ra.LogFormat, "log-format", "text", fmt.Sprintf("Log format, one of: %s", log.Formats))
	cmd.PersistentFlags().
		StringVar(&ra.ConfigPath, "config", "", "Path to the kdbg configuration file")

	var err error

	err = cmd.RegisterFlagCompletionFunc("log-format",
		cobra.FixedCompletions(log.Formats, cobra.ShellCompDirectiveNoFileComp),
	)
	if err != nil {
		panic(err)
	}

	err = cmd.RegisterFlagCompletionFunc("log-level",
		cobra.FixedCompletions(log.Levels, cobra.ShellCompDirectiveNoFileComp),
	)
	if err != nil {
		panic(err)
	}

	err = cmd.MarkPersistentFlagFilename("config", "yaml", "yml")
	if err != nil {
		panic(fmt.Errorf("mark config flag: %w", err))
	}
}

// LoadConfig loads the configuration file, falling back to built-in defaults
// when no file exists. A file that exists but fails validation is an error,
// never silently ignored.
func (ra *RootArgs) LoadConfig() (*config.Config, error) {
	configPath := ra.ConfigPath
	if configPath == "" {
		configPath = config.GetPath()
	}

	cl, err := config.NewLoaderFromFile(configPath)
	if err != nil {
		slog.Debug("no config file, using defaults",
			slog.String("path", configPath),
			slog.Any("err", err),
		)

		return config.New(), nil
	}

	err = cl.Validate()
	if err != nil {
		return nil, fmt.Errorf("invalid config %q: %w", configPath, err)
	}

	cfg, err := cl.Load()
	if err != nil {
		return nil, fmt.Errorf("invalid config %q: %w", configPath, err)
	}

	return cfg, nil
}

func NewRootCmd() *cobra.Command {
	args := NewRootArgs()

	cmd := &cobra.Command{
		Use:               cmdName,
		Short:             cmdDesc,
		Example:           cmdExamples,
		PersistentPreRunE: setupLogging(args),
	}

	args.AddFlags(cmd)

	cmd.AddCommand(
		NewListCmd(NewListArgs(args)),
		NewLogsCmd(NewLogsArgs(args)),
		NewExecCmd(NewExecArgs(args)),
		NewShellCmd(NewShellArgs(args)),
		NewDebugCmd(NewDebugArgs(args)),
		NewDescribeCmd(NewDescribeArgs(args)),
		NewTopCmd(NewTopArgs(args)),
		NewForwardCmd(NewForwardArgs(args)),
		NewRestartCmd(NewRestartArgs(args)),
		NewEventsCmd(NewEventsArgs(args)),
		NewConfigCmd(args),
	)

	bindEnvVars(cmd)

	return cmd
}

func setupLogging(rc *RootArgs) func(cmd *cobra.Command, _ []string) error {
	return func(cmd *cobra.Command, _ []string) error {
		logHandler, err := log.NewHandler(cmd.ErrOrStderr(), rc.LogLevel, rc.LogFormat)
		if err != nil {
			return fmt.Errorf("create log handler: %w", err)
		}

		slog.SetDefault(slog.New(logHandler))

		return nil
	}
}
