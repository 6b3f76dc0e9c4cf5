package dispatch

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/kdbg-dev/kdbg/pkg/kubectl"
)

const ruleWidth = 100

const (
	nameWidth      = 40
	namespaceWidth = 15
	statusWidth    = 10
	restartsWidth  = 15
)

var (
	titleStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("6")).Bold(true)
	nameStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	namespaceStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))

	runningStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	pendingStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	failedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	succeededStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("4"))
)

// renderPodTable writes the pod table. Columns are NAME, NAMESPACE, STATUS,
// with RESTARTS and AGE added in verbose mode; a total footer follows. Rows
// arrive pre-ordered (cluster order, or best-first when a fragment filtered
// them).
func renderPodTable(w io.Writer, records []kubectl.PodRecord, verbose bool, now time.Time) {
	rule := tableRuleLine()

	fmt.Fprintln(w, titleStyle.Render("Pods:"))
	fmt.Fprintln(w, rule)

	if verbose {
		fmt.Fprintln(w, pad("NAME", nameWidth), pad("NAMESPACE", namespaceWidth),
			pad("STATUS", statusWidth), pad("RESTARTS", restartsWidth), "AGE")
	} else {
		fmt.Fprintln(w, pad("NAME", nameWidth), pad("NAMESPACE", namespaceWidth), "STATUS")
	}

	fmt.Fprintln(w, rule)

	for _, rec := range records {
		name := pad(nameStyle.Render(rec.Name), nameWidth)
		namespace := pad(namespaceStyle.Render(rec.Namespace), namespaceWidth)
		status := statusStyle(rec.Status).Render(rec.Status)

		if verbose {
			fmt.Fprintln(w, name, namespace, pad(status, statusWidth),
				pad(fmt.Sprintf("%d", rec.Restarts), restartsWidth),
				compactAge(now.Sub(rec.CreatedAt)))
		} else {
			fmt.Fprintln(w, name, namespace, status)
		}
	}

	fmt.Fprintf(w, "\nTotal: %d pods\n", len(records))
}

func statusStyle(status string) lipgloss.Style {
	switch status {
	case kubectl.StatusRunning:
		return runningStyle
	case kubectl.StatusPending:
		return pendingStyle
	case kubectl.StatusFailed:
		return failedStyle
	case kubectl.StatusSucceeded:
		return succeededStyle
	}

	return lipgloss.NewStyle()
}

// pad left-aligns s to width display cells, counting styled text by its
// visible width. Overlong cells are not truncated.
func pad(s string, width int) string {
	gap := width - ansi.StringWidth(s)
	if gap <= 0 {
		return s
	}

	return s + strings.Repeat(" ", gap)
}

// compactAge renders a duration the way kubectl does: whole seconds,
// minutes, hours, or days, single unit.
func compactAge(age time.Duration) string {
	secs := int64(age.Seconds())

	switch {
	case secs < 0:
		return "0s"
	case secs < 60:
		return fmt.Sprintf("%ds", secs)
	case secs < 60*60:
		return fmt.Sprintf("%dm", secs/60)
	case secs < 24*60*60:
		return fmt.Sprintf("%dh", secs/(60*60))
	}

	return fmt.Sprintf("%dd", secs/(24*60*60))
}

func tableRuleLine() string {
	return strings.Repeat("-", ruleWidth)
}
