package cli

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// bindEnvVars gives every flag of cmd an environment variable fallback
// named KDBG_<FLAG_NAME>, with dashes mapped to underscores. A flag set on
// the command line wins over its variable, which wins over the registered
// default. Each usage string gains the variable name so help output shows
// the full lookup chain.
func bindEnvVars(cmd *cobra.Command) {
	for _, fs := range []*pflag.FlagSet{cmd.Flags(), cmd.PersistentFlags()} {
		fs.VisitAll(bindFlagToEnv)
	}
}

func bindFlagToEnv(flag *pflag.Flag) {
	envName := flagToEnvName(flag.Name)

	if !strings.Contains(flag.Usage, envName) {
		flag.Usage = fmt.Sprintf("%s ($%s)", flag.Usage, envName)
	}

	if flag.Changed {
		return
	}

	envValue, ok := os.LookupEnv(envName)
	if !ok {
		return
	}

	err := flag.Value.Set(envValue)
	if err != nil {
		// Keep the registered default rather than failing the command.
		slog.Error("set flag from environment variable",
			slog.String("flag", flag.Name),
			slog.String("env", envName),
			slog.String("value", envValue),
			slog.Any("error", err),
		)
	}
}

// flagProvided reports whether the flag was set explicitly, either on the
// command line or through its environment variable. Flags that were not
// provided fall back to config file values at request construction.
func flagProvided(cmd *cobra.Command, name string) bool {
	flag := cmd.Flags().Lookup(name)
	if flag == nil {
		return false
	}

	if flag.Changed {
		return true
	}

	_, ok := os.LookupEnv(flagToEnvName(flag.Name))

	return ok
}

// flagToEnvName maps "log-level" to "KDBG_LOG_LEVEL".
func flagToEnvName(flagName string) string {
	return strings.ToUpper(cmdName + "_" + strings.ReplaceAll(flagName, "-", "_"))
}
