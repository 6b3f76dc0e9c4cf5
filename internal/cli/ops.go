package cli

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/kdbg-dev/kdbg/pkg/config"
	"github.com/kdbg-dev/kdbg/pkg/dispatch"
	"github.com/kdbg-dev/kdbg/pkg/execs"
	"github.com/kdbg-dev/kdbg/pkg/kubectl"
	"github.com/kdbg-dev/kdbg/pkg/log"
	"github.com/kdbg-dev/kdbg/pkg/resolve"
)

// ringCapacity bounds how many log entries are retained while a child
// process owns the terminal.
const ringCapacity = 100

// dispatchRequest runs one operation through the dispatch pipeline. Log
// output is held in a ring for the duration, since the pipeline may hand the
// terminal to a prompt or a child process, and flushed to stderr afterwards.
// A child's non-zero exit comes back as an [*ExitError] so its code reaches
// the process exit status.
func dispatchRequest(cmd *cobra.Command, ra *RootArgs, cfg *config.Config, req kubectl.Request) error {
	ring := log.NewRing(ringCapacity)

	logHandler, err := log.NewHandler(ring, ra.LogLevel, ra.LogFormat)
	if err != nil {
		return fmt.Errorf("create log handler: %w", err)
	}

	logger := slog.New(logHandler)
	slog.SetDefault(logger)
	defer flushLogs(cmd.ErrOrStderr(), ring)

	client, err := kubectl.NewClient()
	if err != nil {
		return err
	}

	d := dispatch.NewDispatcher(client,
		dispatch.WithResolver(resolve.NewResolver(
			resolve.WithSimilarityThreshold(*cfg.Resolver.SimilarityThreshold),
		)),
		dispatch.WithSelector(resolve.NewSelector(resolve.WithChooser(
			resolve.NewTTYChooser(resolve.WithMaxSuggestions(cfg.Resolver.MaxSuggestions)),
		))),
		dispatch.WithShellLadder(cfg.Defaults.Shells),
		dispatch.WithStdio(cmd.OutOrStdout(), cmd.ErrOrStderr()),
	)

	outcome, err := d.Dispatch(log.NewContext(cmd.Context(), logger), req)
	if err != nil {
		return err
	}

	return exitOutcomeError(outcome)
}

func exitOutcomeError(outcome *execs.ExitOutcome) error {
	if outcome == nil || outcome.Code == 0 {
		return nil
	}

	return &ExitError{Code: outcome.Code}
}

func flushLogs(w io.Writer, ring *log.Ring) {
	slog.Debug("flush logs to console", slog.Int("count", ring.Len()))

	_, err := ring.WriteTo(w)
	if err != nil {
		panic(err)
	}
}

// addNamespaceFlag registers the namespace flag shared by the operation
// commands. The registered default is the all-namespaces sentinel; the
// config file value applies at request construction when the flag was not
// provided.
func addNamespaceFlag(cmd *cobra.Command, namespace *string) {
	cmd.Flags().StringVarP(namespace, "namespace", "n", "", "Namespace to search, empty searches all namespaces")
}

// namespaceOrDefault applies the flag > env > config precedence for the
// namespace. The empty string stays meaningful as the all-namespaces
// sentinel, so the config value applies only when the flag was not provided
// at all.
func namespaceOrDefault(cmd *cobra.Command, flagValue string, cfg *config.Config) string {
	if flagProvided(cmd, "namespace") {
		return flagValue
	}

	return cfg.Defaults.Namespace
}

func tailOrDefault(cmd *cobra.Command, flagValue int, cfg *config.Config) int {
	if flagProvided(cmd, "tail") {
		return flagValue
	}

	return *cfg.Defaults.Tail
}

func imageOrDefault(cmd *cobra.Command, flagValue string, cfg *config.Config) string {
	if flagProvided(cmd, "image") {
		return flagValue
	}

	return cfg.Defaults.Image
}

// debugNamespaceOrDefault resolves the namespace a debug pod is created in.
// Unlike the other operations there is no all-namespaces form, so the
// config fallback is a concrete namespace.
func debugNamespaceOrDefault(cmd *cobra.Command, flagValue string, cfg *config.Config) string {
	if flagProvided(cmd, "namespace") {
		return flagValue
	}

	return cfg.Defaults.DebugNamespace
}
