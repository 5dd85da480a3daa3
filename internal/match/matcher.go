// Package match selects the alternate of a query path from a candidate set.
//
// Only candidates of the opposite classification are eligible: a test file's
// alternate is an implementation file and vice versa. Every eligible
// candidate is scored by a judge and the highest score wins; ties go to the
// candidate supplied first. Large sets are scored across concurrent shards
// with the same outcome as a sequential pass.
package match

import (
	"context"
	"runtime"
	"slices"

	"github.com/standardbeagle/alt/internal/debug"
	"github.com/standardbeagle/alt/internal/judge"
	"github.com/standardbeagle/alt/internal/path"
)

// DefaultParallelThreshold is the eligible set size below which scoring stays
// on the calling goroutine.
const DefaultParallelThreshold = 512

// Candidate is a classified path and its position in the caller's sequence.
type Candidate struct {
	Path  path.Path
	Index int
}

// Match is a scored candidate.
type Match struct {
	Candidate
	Score float64
}

// better reports whether a outranks b: higher score first, then lower index.
func better(a, b Match) bool {
	if a.Score != b.Score {
		return a.Score > b.Score
	}
	return a.Index < b.Index
}

// Options configure a Matcher. Zero values select defaults.
type Options struct {
	// Workers is the shard count for large sets; 0 means runtime.NumCPU()
	// and 1 forces sequential scoring.
	Workers int
	// ParallelThreshold is the minimum eligible count scored concurrently.
	ParallelThreshold int
	// Judge scores candidates; nil selects the substring judge.
	Judge judge.Judge
	// Classifier classifies raw strings passed to Find and Paths.
	Classifier *path.Classifier
	// IgnoreClassification makes every candidate except the query itself
	// eligible.
	IgnoreClassification bool
}

// Matcher applies a judge across a candidate set.
type Matcher struct {
	opts Options
}

// New creates a matcher, filling defaults for unset options.
func New(opts Options) *Matcher {
	if opts.Workers <= 0 {
		opts.Workers = runtime.NumCPU()
	}
	if opts.ParallelThreshold <= 0 {
		opts.ParallelThreshold = DefaultParallelThreshold
	}
	if opts.Judge == nil {
		opts.Judge = judge.Substring{}
	}
	if opts.Classifier == nil {
		opts.Classifier = path.DefaultClassifier()
	}
	return &Matcher{opts: opts}
}

// Options returns the resolved options.
func (m *Matcher) Options() Options {
	return m.opts
}

// Paths classifies raw candidate strings, dropping lines that are blank after
// normalization.
func (m *Matcher) Paths(raw []string) []path.Path {
	out := make([]path.Path, 0, len(raw))
	for _, r := range raw {
		p := m.opts.Classifier.New(r)
		if p.IsEmpty() {
			continue
		}
		out = append(out, p)
	}
	return out
}

// Eligible filters candidates to the opposite classification of query,
// keeping each survivor's original index.
func (m *Matcher) Eligible(query path.Path, candidates []path.Path) []Candidate {
	eligible := make([]Candidate, 0, len(candidates))
	for i, c := range candidates {
		if m.opts.IgnoreClassification {
			if c.String() == query.String() {
				continue
			}
		} else if c.IsTest() == query.IsTest() {
			continue
		}
		eligible = append(eligible, Candidate{Path: c, Index: i})
	}
	return eligible
}

// executor picks sequential scoring for small sets or a single worker.
func (m *Matcher) executor(n int) Executor {
	if m.opts.Workers <= 1 || n < m.opts.ParallelThreshold {
		return Sequential{}
	}
	return Sharded{Workers: m.opts.Workers}
}

// BestMatch returns the highest scoring eligible candidate, or nil when no
// candidate is eligible. Errors only arise from judge contract violations.
func (m *Matcher) BestMatch(ctx context.Context, query path.Path, candidates []path.Path) (*Match, error) {
	eligible := m.Eligible(query, candidates)
	if len(eligible) == 0 {
		debug.LogMatch("no eligible candidates for %s among %d", query, len(candidates))
		return nil, nil
	}

	exec := m.executor(len(eligible))
	debug.LogMatch("scoring %d of %d candidates for %s with %s judge (%s)",
		len(eligible), len(candidates), query, m.opts.Judge.Name(), exec)

	return exec.Best(ctx, query.String(), eligible, m.opts.Judge)
}

// Rank scores every eligible candidate and orders them best first. A positive
// limit truncates the result.
func (m *Matcher) Rank(ctx context.Context, query path.Path, candidates []path.Path, limit int) ([]Match, error) {
	eligible := m.Eligible(query, candidates)
	if len(eligible) == 0 {
		return nil, nil
	}

	scored, err := m.executor(len(eligible)).ScoreAll(ctx, query.String(), eligible, m.opts.Judge)
	if err != nil {
		return nil, err
	}

	slices.SortFunc(scored, func(a, b Match) int {
		switch {
		case better(a, b):
			return -1
		case better(b, a):
			return 1
		}
		return 0
	})

	if limit > 0 && len(scored) > limit {
		scored = scored[:limit]
	}
	return scored, nil
}

// Find is the string level entry point: it classifies query and candidates
// and returns the winner's normalized path. ok is false on no match.
func (m *Matcher) Find(ctx context.Context, query string, candidates []string) (string, bool, error) {
	best, err := m.BestMatch(ctx, m.opts.Classifier.New(query), m.Paths(candidates))
	if err != nil || best == nil {
		return "", false, err
	}
	return best.Path.String(), true, nil
}
