package match

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/standardbeagle/alt/internal/debug"
	alterrors "github.com/standardbeagle/alt/internal/errors"
	"github.com/standardbeagle/alt/internal/judge"
)

// ctxCheckInterval is how many candidates a worker scores between context checks.
const ctxCheckInterval = 64

// Executor scores an eligible candidate set. Implementations must agree on
// the winner for every input.
type Executor interface {
	// Best returns the top candidate of a non-empty eligible set.
	Best(ctx context.Context, query string, eligible []Candidate, j judge.Judge) (*Match, error)
	// ScoreAll returns one Match per eligible candidate, in input order.
	ScoreAll(ctx context.Context, query string, eligible []Candidate, j judge.Judge) ([]Match, error)
	String() string
}

// Sequential scores on the calling goroutine.
type Sequential struct{}

func (Sequential) String() string { return "sequential" }

// Best implements Executor
func (Sequential) Best(ctx context.Context, query string, eligible []Candidate, j judge.Judge) (*Match, error) {
	return bestOf(ctx, query, eligible, j)
}

// ScoreAll implements Executor
func (Sequential) ScoreAll(ctx context.Context, query string, eligible []Candidate, j judge.Judge) ([]Match, error) {
	out := make([]Match, len(eligible))
	if err := scoreInto(ctx, query, eligible, out, j); err != nil {
		return nil, err
	}
	return out, nil
}

// Sharded splits the eligible set into contiguous shards scored by one
// goroutine each. Partial winners carry their original index so the reduction
// reproduces the sequential tie-break.
type Sharded struct {
	Workers int
}

func (s Sharded) String() string { return fmt.Sprintf("sharded x%d", s.Workers) }

// Best implements Executor
func (s Sharded) Best(ctx context.Context, query string, eligible []Candidate, j judge.Judge) (*Match, error) {
	bounds := shardBounds(len(eligible), s.Workers)
	partials := make([]*Match, len(bounds))

	g, gctx := errgroup.WithContext(ctx)
	for i, b := range bounds {
		g.Go(func() error {
			m, err := bestOf(gctx, query, eligible[b.lo:b.hi], j)
			if err != nil {
				return err
			}
			// each worker owns exactly one slot
			partials[i] = m
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var best *Match
	for _, p := range partials {
		if p != nil && (best == nil || better(*p, *best)) {
			best = p
		}
	}
	debug.LogMatch("reduced %d shard winners", len(partials))
	return best, nil
}

// ScoreAll implements Executor. Workers write disjoint ranges of one slice.
func (s Sharded) ScoreAll(ctx context.Context, query string, eligible []Candidate, j judge.Judge) ([]Match, error) {
	out := make([]Match, len(eligible))

	g, gctx := errgroup.WithContext(ctx)
	for _, b := range shardBounds(len(eligible), s.Workers) {
		g.Go(func() error {
			return scoreInto(gctx, query, eligible[b.lo:b.hi], out[b.lo:b.hi], j)
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

type bound struct{ lo, hi int }

// shardBounds splits n items into at most workers contiguous ranges of
// near-equal size, in order.
func shardBounds(n, workers int) []bound {
	if n == 0 {
		return nil
	}
	if workers < 1 {
		workers = 1
	}
	size := (n + workers - 1) / workers
	bounds := make([]bound, 0, (n+size-1)/size)
	for lo := 0; lo < n; lo += size {
		bounds = append(bounds, bound{lo: lo, hi: min(lo+size, n)})
	}
	return bounds
}

// bestOf keeps a local accumulator; a later candidate replaces it only with a
// strictly greater score, so the earliest index wins ties.
func bestOf(ctx context.Context, query string, shard []Candidate, j judge.Judge) (*Match, error) {
	var best *Match
	for i, c := range shard {
		if i%ctxCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
		score, err := j.Score(query, c.Path.String())
		if err != nil {
			return nil, alterrors.NewMatchError(query, c.Path.String(), err)
		}
		if best == nil || score > best.Score {
			best = &Match{Candidate: c, Score: score}
		}
	}
	return best, nil
}

func scoreInto(ctx context.Context, query string, shard []Candidate, out []Match, j judge.Judge) error {
	for i, c := range shard {
		if i%ctxCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return err
			}
		}
		score, err := j.Score(query, c.Path.String())
		if err != nil {
			return alterrors.NewMatchError(query, c.Path.String(), err)
		}
		out[i] = Match{Candidate: c, Score: score}
	}
	return nil
}
