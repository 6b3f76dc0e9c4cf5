package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/charmbracelet/fang"

	"github.com/kdbg-dev/kdbg/internal/cli"
	"github.com/kdbg-dev/kdbg/pkg/telemetry"
	"github.com/kdbg-dev/kdbg/pkg/version"
)

const shutdownTimeout = 5 * time.Second

func main() {
	os.Exit(run())
}

func run() int {
	// The root context is never cancelled on SIGINT. Streaming commands hold
	// interrupts themselves so the kubectl child exits first, and debug pod
	// teardown must still run after an interrupt.
	ctx := context.Background()

	shutdown, err := telemetry.Setup(ctx)
	if err != nil {
		slog.Warn("telemetry setup", slog.Any("err", err))
	} else {
		defer func() {
			sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()

			err := shutdown(sctx)
			if err != nil {
				slog.Debug("telemetry shutdown", slog.Any("err", err))
			}
		}()
	}

	err = fang.Execute(ctx, cli.NewRootCmd(),
		fang.WithVersion(version.Get()),
		fang.WithErrorHandler(cli.ErrorHandler),
		fang.WithColorSchemeFunc(cli.ColorSchemeFunc),
	)
	if err != nil {
		return cli.ExitCode(err)
	}

	return 0
}
