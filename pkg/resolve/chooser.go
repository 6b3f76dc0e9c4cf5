package resolve

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/huh"
	"github.com/dustin/go-humanize"
	"golang.org/x/term"

	xstrings "github.com/charmbracelet/x/exp/strings"

	"github.com/kdbg-dev/kdbg/pkg/kubectl"
)

// DefaultMaxSuggestions caps how many candidate names a non-interactive
// ambiguity error lists.
const DefaultMaxSuggestions = 5

// TTYChooser prompts for a choice on the caller's terminal.
type TTYChooser struct {
	maxSuggestions int
}

// TTYChooserOpt configures a [TTYChooser].
type TTYChooserOpt func(c *TTYChooser)

// WithMaxSuggestions caps the candidate names listed when no prompt is
// possible. Non-positive values keep the default.
func WithMaxSuggestions(n int) TTYChooserOpt {
	return func(c *TTYChooser) {
		if n > 0 {
			c.maxSuggestions = n
		}
	}
}

// NewTTYChooser creates a [TTYChooser].
func NewTTYChooser(opts ...TTYChooserOpt) *TTYChooser {
	c := &TTYChooser{
		maxSuggestions: DefaultMaxSuggestions,
	}
	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Choose displays the numbered candidate list and blocks for a single
// selection. Backing out of the form maps to [ErrCancelled]; without a
// terminal on stdin no prompt is possible, so the error names the
// best-ranked candidates and the caller has to provide a more specific
// fragment.
func (c *TTYChooser) Choose(ctx context.Context, fragment string, candidates []MatchCandidate) (kubectl.PodRecord, error) {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		shown := min(c.maxSuggestions, len(candidates))
		names := make([]string, 0, shown)

		for _, mc := range candidates[:shown] {
			names = append(names, mc.Record.Namespace+"/"+mc.Record.Name)
		}

		return kubectl.PodRecord{}, fmt.Errorf(
			"%w: %d pods match %q (%s), provide a more specific name",
			ErrNotInteractive, len(candidates), fragment, xstrings.EnglishJoin(names, true),
		)
	}

	options := make([]huh.Option[int], len(candidates))
	for i, mc := range candidates {
		options[i] = huh.NewOption(optionLabel(i, mc.Record), i)
	}

	var choice int

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[int]().
				Title(fmt.Sprintf("%d pods match %q", len(candidates), fragment)).
				Options(options...).
				Value(&choice),
		),
	).
		WithShowHelp(false)

	err := form.RunWithContext(ctx)
	if err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return kubectl.PodRecord{}, ErrCancelled
		}

		return kubectl.PodRecord{}, fmt.Errorf("run selection prompt: %w", err)
	}

	return candidates[choice].Record, nil
}

func optionLabel(idx int, rec kubectl.PodRecord) string {
	return fmt.Sprintf("%d. %s  (%s, %s, %s)",
		idx+1, rec.Name, rec.Namespace, rec.Status, humanize.Time(rec.CreatedAt))
}
