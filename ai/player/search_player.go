package player

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"sort"

	"github.com/rs/zerolog/log"
	"lukechampine.com/frand"

	"github.com/domino14/reversi/board"
	"github.com/domino14/reversi/eval"
	"github.com/domino14/reversi/move"
	"github.com/domino14/reversi/movegen"
	"github.com/domino14/reversi/search"
)

var ErrBadOptions = errors.New("invalid player options")

// Options configures a SearchPlayer.
type Options struct {
	// CornerFirst takes any available corner without searching.
	CornerFirst    bool
	CornerAdjacent CornerAdjacentPolicy
	// With TopN above 1 the player picks at random, weighted towards the
	// better moves, among the TopN best moves scoring within RandomMargin
	// of the best one.
	TopN         int
	RandomMargin int
	// Seed feeds the player's own random number generator.
	Seed  uint64
	Depth search.DepthPolicy
}

func DefaultOptions() Options {
	return Options{
		CornerFirst:    true,
		CornerAdjacent: CornerAdjacentUnlessOwned,
		TopN:           1,
		Depth:          search.DefaultDepthPolicy(),
	}
}

// SearchPlayer picks moves by searching each candidate with alpha-beta.
// It is not safe for concurrent use.
type SearchPlayer struct {
	solver    *search.Solver
	evaluator eval.Evaluator
	// gen generates root moves in row-major order, so that ties go to the
	// first move in that order whatever the solver's move ordering.
	gen  *movegen.Generator
	opts Options
	rng  *frand.RNG
}

func NewSearchPlayer(solver *search.Solver, opts Options) (*SearchPlayer, error) {
	if err := opts.Depth.Validate(); err != nil {
		return nil, err
	}
	policy, err := ParseCornerAdjacentPolicy(string(opts.CornerAdjacent))
	if err != nil {
		return nil, err
	}
	opts.CornerAdjacent = policy
	if opts.TopN < 0 || opts.RandomMargin < 0 {
		return nil, fmt.Errorf("%w: top-n %d, random-margin %d", ErrBadOptions,
			opts.TopN, opts.RandomMargin)
	}
	seed := make([]byte, 32)
	binary.LittleEndian.PutUint64(seed, opts.Seed)
	return &SearchPlayer{
		solver:    solver,
		evaluator: solver.Evaluator(),
		gen:       movegen.NewGenerator(),
		opts:      opts,
		rng:       frand.NewCustom(seed, 1024, 12),
	}, nil
}

func (p *SearchPlayer) Name() string {
	return "search"
}

func (p *SearchPlayer) Solver() *search.Solver {
	return p.solver
}

func (p *SearchPlayer) Options() Options {
	return p.opts
}

func validate(b *board.Board, side board.Cell, dim int) error {
	if err := b.Validate(); err != nil {
		return err
	}
	if b.Dim() != dim {
		return fmt.Errorf("%w: board %d, evaluator %d", ErrDimensionMismatch, b.Dim(), dim)
	}
	if !side.IsSide() {
		return fmt.Errorf("%w: %v", board.ErrBadSide, side)
	}
	return nil
}

// BestMove searches every candidate move and returns the best one, with
// its search value set as the move's valuation. If ctx expires midway, the
// best move among those fully searched is returned; if none was, the
// context error is.
func (p *SearchPlayer) BestMove(ctx context.Context, b *board.Board, side board.Cell) (*move.Move, error) {
	if err := validate(b, side, p.evaluator.Dim()); err != nil {
		return nil, err
	}
	plays := p.gen.GenAll(b, side)
	if len(plays) == 0 {
		log.Debug().Str("side", side.String()).Msg("no-moves-passing")
		return move.NewPassMove(), nil
	}
	if p.opts.CornerFirst {
		if m := cornerMove(b, plays); m != nil {
			log.Debug().Str("move", m.ShortDescription()).Msg("taking-corner")
			return m, nil
		}
	}
	candidates := filterCornerAdjacent(b, plays, side, p.opts.CornerAdjacent)
	depth := p.opts.Depth.DepthFor(b, p.evaluator.Phase(b))
	log.Debug().Int("depth", depth).Int("candidates", len(candidates)).
		Int("empties", b.Empties()).Msg("search-depth-chosen")

	scored, err := p.scoreCandidates(ctx, b, side, candidates, depth)
	if len(scored) == 0 {
		return nil, err
	}
	if err != nil {
		if ctx.Err() == nil {
			return nil, err
		}
		log.Warn().Err(err).Int("scored", len(scored)).Int("candidates", len(candidates)).
			Msg("search-interrupted")
	}
	best := p.choose(scored)
	log.Debug().Str("move", best.ShortDescription()).Int("value", best.Valuation()).
		Uint64("nodes", p.solver.Nodes()).Msg("best-move-chosen")
	return best, nil
}

// scoreCandidates searches each candidate and returns those that finished,
// in order. With a single winner wanted, later candidates only need to
// show they are no better than the best so far, so the window narrows.
func (p *SearchPlayer) scoreCandidates(ctx context.Context, b *board.Board, side board.Cell,
	candidates []*move.Move, depth int) ([]*move.Move, error) {

	opp := side.Opponent()
	scored := make([]*move.Move, 0, len(candidates))
	err := p.solver.Track(ctx, func(ctx context.Context) error {
		work := b.Copy()
		alpha := -search.Infinity
		for i, m := range candidates {
			if i > 0 {
				if err := ctx.Err(); err != nil {
					return err
				}
			}
			window := -search.Infinity
			if p.opts.TopN <= 1 {
				window = alpha
			}
			work.PlayMove(m.Row(), m.Col(), side)
			v, err := p.solver.Minimax(ctx, work, opp, depth-1, false, side, window, search.Infinity)
			work.UnplayLastMove()
			if err != nil {
				return err
			}
			m.SetValuation(v)
			scored = append(scored, m)
			alpha = max(alpha, v)
		}
		return nil
	})
	return scored, err
}

// choose returns the first move with the highest valuation, or with TopN
// set, a weighted random pick among the leaders.
func (p *SearchPlayer) choose(scored []*move.Move) *move.Move {
	best := scored[0]
	for _, m := range scored[1:] {
		if m.Valuation() > best.Valuation() {
			best = m
		}
	}
	if p.opts.TopN <= 1 {
		return best
	}
	ranked := make([]*move.Move, len(scored))
	copy(ranked, scored)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Valuation() > ranked[j].Valuation()
	})
	n := 0
	for n < len(ranked) && n < p.opts.TopN &&
		best.Valuation()-ranked[n].Valuation() <= p.opts.RandomMargin {
		n++
	}
	// rank i gets weight n-i
	total := n * (n + 1) / 2
	r := p.rng.Intn(total)
	for i := 0; i < n; i++ {
		r -= n - i
		if r < 0 {
			return ranked[i]
		}
	}
	return ranked[0]
}
