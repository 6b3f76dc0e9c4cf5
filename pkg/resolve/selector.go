package resolve

import (
	"context"
	"errors"
	"fmt"

	"github.com/kdbg-dev/kdbg/pkg/kubectl"
)

var (
	// ErrCancelled is returned when the user backs out of an ambiguity
	// prompt without choosing.
	ErrCancelled = errors.New("selection cancelled")

	// ErrNotInteractive is returned when an ambiguity prompt would be
	// required but stdin is not a terminal.
	ErrNotInteractive = errors.New("cannot prompt for selection")
)

// NotFoundError reports that a fragment matched nothing in the inventory
// snapshot it was resolved against.
type NotFoundError struct {
	Fragment  string
	Namespace string
}

func (e *NotFoundError) Error() string {
	if e.Namespace == "" {
		return fmt.Sprintf("no pod matching %q in any namespace", e.Fragment)
	}

	return fmt.Sprintf("no pod matching %q in namespace %q", e.Fragment, e.Namespace)
}

// Chooser picks one pod from an ambiguous, best-first candidate set.
type Chooser interface {
	Choose(ctx context.Context, fragment string, candidates []MatchCandidate) (kubectl.PodRecord, error)
}

// Selector applies the selection policy to a [ResolutionOutcome]: unique
// matches proceed silently, ambiguity defers to the [Chooser], and no match
// is an error. This is the pipeline's only interactive point.
type Selector struct {
	chooser Chooser
}

// SelectorOpt configures a [Selector].
type SelectorOpt func(s *Selector)

// WithChooser overrides the interactive chooser.
func WithChooser(c Chooser) SelectorOpt {
	return func(s *Selector) {
		s.chooser = c
	}
}

// NewSelector creates a [Selector], defaulting to the terminal-backed
// chooser.
func NewSelector(opts ...SelectorOpt) *Selector {
	s := &Selector{}

	for _, opt := range opts {
		opt(s)
	}

	if s.chooser == nil {
		s.chooser = NewTTYChooser()
	}

	return s
}

// Select reduces an outcome to a single pod. The fragment and namespace are
// carried along for error reporting only.
func (s *Selector) Select(ctx context.Context, fragment, namespace string, outcome ResolutionOutcome) (kubectl.PodRecord, error) {
	switch outcome.Kind {
	case Exact:
		return outcome.Best(), nil

	case Ambiguous:
		return s.chooser.Choose(ctx, fragment, outcome.Candidates)

	case NoMatch:
	}

	return kubectl.PodRecord{}, &NotFoundError{Fragment: fragment, Namespace: namespace}
}
