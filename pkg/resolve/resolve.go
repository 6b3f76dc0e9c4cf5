// Package resolve turns a user-typed name fragment into a concrete pod
// selection. Resolution is pure and deterministic; the only interactive
// point is the [Chooser] consulted when several pods survive.
package resolve

import (
	"cmp"
	"slices"
	"strings"

	"github.com/kdbg-dev/kdbg/pkg/kubectl"
)

// Kind discriminates how a resolution concluded.
type Kind int

const (
	// NoMatch means no candidate survived any comparison stage.
	NoMatch Kind = iota
	// Exact means exactly one candidate survived.
	Exact
	// Ambiguous means several candidates survived and one must be chosen.
	Ambiguous
)

func (k Kind) String() string {
	switch k {
	case Exact:
		return "exact"
	case Ambiguous:
		return "ambiguous"
	case NoMatch:
		return "no match"
	}

	return "unknown"
}

// MatchCandidate pairs a pod with its match score (0-1, higher is better).
// Candidates exist only within one resolution call.
type MatchCandidate struct {
	Record kubectl.PodRecord
	Score  float64
}

// ResolutionOutcome is the result of matching one fragment against one
// inventory snapshot. Candidates are ordered best-first and always refer to
// records from that snapshot.
type ResolutionOutcome struct {
	Candidates []MatchCandidate
	Kind       Kind
}

// Best returns the top-ranked record. Only valid when Kind is not
// [NoMatch].
func (o ResolutionOutcome) Best() kubectl.PodRecord {
	return o.Candidates[0].Record
}

// Resolver matches name fragments against pod inventories.
type Resolver struct {
	threshold float64
}

// ResolverOpt configures a [Resolver].
type ResolverOpt func(r *Resolver)

// WithSimilarityThreshold overrides [DefaultSimilarityThreshold] for the
// fallback stage.
func WithSimilarityThreshold(threshold float64) ResolverOpt {
	return func(r *Resolver) {
		r.threshold = threshold
	}
}

// NewResolver creates a [Resolver].
func NewResolver(opts ...ResolverOpt) *Resolver {
	r := &Resolver{threshold: DefaultSimilarityThreshold}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// Resolve matches fragment against candidates, in three stages that
// short-circuit in priority order: case-insensitive equality, then
// case-insensitive substring containment scored by how early the fragment
// starts, then similarity scoring to surface near-misses. An empty fragment
// never picks a pod.
func (r *Resolver) Resolve(fragment string, candidates []kubectl.PodRecord) ResolutionOutcome {
	if fragment == "" {
		return ResolutionOutcome{Kind: NoMatch}
	}

	if matches := exactMatches(fragment, candidates); len(matches) > 0 {
		return outcomeFor(matches)
	}

	if matches := substringMatches(fragment, candidates); len(matches) > 0 {
		return outcomeFor(matches)
	}

	return outcomeFor(r.similarMatches(fragment, candidates))
}

func exactMatches(fragment string, candidates []kubectl.PodRecord) []MatchCandidate {
	var matches []MatchCandidate

	for _, rec := range candidates {
		if strings.EqualFold(rec.Name, fragment) {
			matches = append(matches, MatchCandidate{Record: rec, Score: 1.0})
		}
	}

	return matches
}

func substringMatches(fragment string, candidates []kubectl.PodRecord) []MatchCandidate {
	frag := strings.ToLower(fragment)

	var matches []MatchCandidate

	for _, rec := range candidates {
		idx := strings.Index(strings.ToLower(rec.Name), frag)
		if idx < 0 {
			continue
		}

		matches = append(matches, MatchCandidate{
			Record: rec,
			Score:  1.0 / float64(1+idx),
		})
	}

	return matches
}

func (r *Resolver) similarMatches(fragment string, candidates []kubectl.PodRecord) []MatchCandidate {
	frag := strings.ToLower(fragment)

	var matches []MatchCandidate

	for _, rec := range candidates {
		score := similarity(frag, strings.ToLower(rec.Name))
		if score < r.threshold {
			continue
		}

		matches = append(matches, MatchCandidate{Record: rec, Score: score})
	}

	return matches
}

// outcomeFor orders matches best-first and maps the surviving count to a
// [Kind]. The ordering is total, so resolution of the same snapshot is
// reproducible.
func outcomeFor(matches []MatchCandidate) ResolutionOutcome {
	if len(matches) == 0 {
		return ResolutionOutcome{Kind: NoMatch}
	}

	slices.SortStableFunc(matches, func(a, b MatchCandidate) int {
		if c := cmp.Compare(b.Score, a.Score); c != 0 {
			return c
		}

		if c := cmp.Compare(len(a.Record.Name), len(b.Record.Name)); c != 0 {
			return c
		}

		if c := cmp.Compare(a.Record.Name, b.Record.Name); c != 0 {
			return c
		}

		return cmp.Compare(a.Record.Namespace, b.Record.Namespace)
	})

	kind := Exact
	if len(matches) > 1 {
		kind = Ambiguous
	}

	return ResolutionOutcome{Kind: kind, Candidates: matches}
}
