package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/fang"
	"github.com/charmbracelet/lipgloss"

	"github.com/kdbg-dev/kdbg/pkg/kubectl"
	"github.com/kdbg-dev/kdbg/pkg/resolve"
)

// Exit codes, one per failure category. Streaming children propagate their
// own codes instead.
const (
	exitUsage       = 2
	exitNotFound    = 3
	exitCancelled   = 4
	exitNoTool      = 5
	exitUnreachable = 6
)

// ExitError carries a child process exit status through the command tree.
// The child already reported on the shared terminal, so it renders nothing.
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("exit status %d", e.Code)
}

// ExitCode maps an error returned by command execution to the process exit
// code.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}

	var (
		exitErr     *ExitError
		buildErr    *kubectl.BuildError
		notFoundErr *resolve.NotFoundError
	)

	switch {
	case errors.As(err, &exitErr):
		return exitErr.Code

	case errors.As(err, &buildErr):
		return exitUsage

	case errors.As(err, &notFoundErr):
		return exitNotFound

	case errors.Is(err, resolve.ErrCancelled),
		errors.Is(err, resolve.ErrNotInteractive):
		return exitCancelled

	case errors.Is(err, kubectl.ErrToolUnavailable):
		return exitNoTool

	case errors.Is(err, kubectl.ErrClusterUnreachable):
		return exitUnreachable

	case isUsageError(err):
		return exitUsage
	}

	return 1
}

func ErrorHandler(w io.Writer, styles fang.Styles, err error) {
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return
	}

	mustN(fmt.Fprintln(w, styles.ErrorHeader.String()))
	mustN(fmt.Fprintln(w, lipgloss.NewStyle().MarginLeft(2).Render(err.Error())))
	mustN(fmt.Fprintln(w))
	if isUsageError(err) {
		mustN(fmt.Fprintln(w, lipgloss.JoinHorizontal(
			lipgloss.Left,
			styles.ErrorText.UnsetWidth().Render("Try"),
			styles.Program.Flag.Render("--help"),
			styles.ErrorText.UnsetWidth().UnsetMargins().UnsetTransform().PaddingLeft(1).Render("for usage."),
		)))
		mustN(fmt.Fprintln(w))
	}
}

// XXX: this is a hack to detect usage errors.
// See: https://github.com/spf13/cobra/pull/2266
func isUsageError(err error) bool {
	s := err.Error()
	for _, prefix := range []string{
		"flag needs an argument:",
		"unknown flag:",
		"unknown shorthand flag:",
		"unknown command",
		"invalid argument",
		"accepts ",
	} {
		if strings.HasPrefix(s, prefix) {
			return true
		}
	}

	return false
}

func must(err error) {
	if err != nil {
		panic(err)
	}
}

func mustN(_ int, err error) {
	must(err)
}
