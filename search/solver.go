// Package search implements depth-limited minimax with alpha-beta pruning
// over Othello positions.
package search

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"strings"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/domino14/reversi/board"
	"github.com/domino14/reversi/eval"
	"github.com/domino14/reversi/movegen"
)

// thanks Wikipedia:
/**function alphabeta(node, depth, α, β, maximizingPlayer) is
    if depth = 0 or node is a terminal node then
        return the heuristic value of node
    if maximizingPlayer then
        value := −∞
        for each child of node do
            value := max(value, alphabeta(child, depth − 1, α, β, FALSE))
            α := max(α, value)
            if α ≥ β then
                break (* β cut-off *)
        return value
    else
        value := +∞
        for each child of node do
            value := min(value, alphabeta(child, depth − 1, α, β, TRUE))
            β := min(β, value)
            if α ≥ β then
                break (* α cut-off *)
        return value
**/
// A side with no move passes: the same node is searched again for the
// other side at the same depth.

// Infinity is above any value an evaluator may return.
const Infinity = math.MaxInt32

const DefaultTTFraction = 0.05

var (
	ErrDimensionMismatch = errors.New("board dimension does not match the evaluator")
	ErrPerspective       = errors.New("maximizing must mean the mover is self when the transposition table is on")
)

// Solver searches positions with a fixed evaluator. It is not safe for
// concurrent use; give each goroutine its own.
type Solver struct {
	evaluator eval.Evaluator
	movegen   *movegen.Generator

	pruningOptim            bool
	moveOrderingOptim       bool
	transpositionTableOptim bool
	ttFraction              float64
	ttable                  *TranspositionTable

	nodes     atomic.Uint64
	logStream io.Writer
}

// NewSolver returns a solver with pruning on and everything else off.
func NewSolver(ev eval.Evaluator) *Solver {
	return &Solver{
		evaluator:    ev,
		movegen:      movegen.NewGenerator(),
		pruningOptim: true,
		ttFraction:   DefaultTTFraction,
	}
}

// SetPruning turns alpha-beta cut-offs on or off. With pruning off the
// solver is plain minimax, which is only useful as a reference.
func (s *Solver) SetPruning(p bool) {
	s.pruningOptim = p
}

// SetMoveOrdering searches likely-good moves first below the root. It
// changes how many nodes are visited but never a value.
func (s *Solver) SetMoveOrdering(o bool) {
	s.moveOrderingOptim = o
	if o {
		s.movegen.SetSortingParameter(movegen.SortByPriority)
	} else {
		s.movegen.SetSortingParameter(movegen.SortByNone)
	}
}

func (s *Solver) SetTranspositionTableOptim(tt bool) {
	s.transpositionTableOptim = tt
}

// SetTranspositionTableFraction sets the share of system memory the table
// is sized from. It takes effect at the next ResetTranspositionTable.
func (s *Solver) SetTranspositionTableFraction(f float64) {
	s.ttFraction = f
}

// SetLogStream makes the solver write a trace of every node it expands.
func (s *Solver) SetLogStream(l io.Writer) {
	s.logStream = l
}

func (s *Solver) Evaluator() eval.Evaluator {
	return s.evaluator
}

// Nodes returns the number of placements expanded since the last
// ResetNodes.
func (s *Solver) Nodes() uint64 {
	return s.nodes.Load()
}

func (s *Solver) ResetNodes() {
	s.nodes.Store(0)
}

// ResetTranspositionTable clears the table, allocating it if needed.
func (s *Solver) ResetTranspositionTable() {
	if s.ttable == nil {
		s.ttable = &TranspositionTable{}
	}
	s.ttable.Reset(s.ttFraction, s.evaluator.Dim())
}

// TranspositionTable returns the table, or nil if it was never used.
func (s *Solver) TranspositionTable() *TranspositionTable {
	return s.ttable
}

// Minimax returns the value of b for self, searching depth plies with
// mover to play. maximizing says whether mover's choices raise the value;
// it is normally mover == self. b is not modified.
func (s *Solver) Minimax(ctx context.Context, b *board.Board, mover board.Cell,
	depth int, maximizing bool, self board.Cell, alpha, beta int) (int, error) {

	if b.Dim() != s.evaluator.Dim() {
		return 0, fmt.Errorf("%w: board %d, evaluator %d", ErrDimensionMismatch,
			b.Dim(), s.evaluator.Dim())
	}
	if !mover.IsSide() || !self.IsSide() {
		return 0, fmt.Errorf("%w: mover %v, self %v", board.ErrBadSide, mover, self)
	}
	if depth < 0 {
		return 0, fmt.Errorf("%w: %d", ErrBadDepth, depth)
	}
	work := b.Copy()
	var key uint64
	if s.transpositionTableOptim {
		if maximizing != (mover == self) {
			return 0, ErrPerspective
		}
		if s.ttable == nil {
			s.ResetTranspositionTable()
		}
		key = s.ttable.zobrist.Hash(work, mover, self)
	}
	return s.minimax(ctx, work, key, mover, depth, maximizing, self, alpha, beta, 0)
}

func (s *Solver) minimax(ctx context.Context, b *board.Board, nodeKey uint64,
	mover board.Cell, depth int, maximizing bool, self board.Cell,
	α, β int, ply int) (int, error) {

	if depth == 0 {
		return s.evaluator.Evaluate(b, self), nil
	}
	αOrig, βOrig := α, β
	if s.transpositionTableOptim {
		ttEntry := s.ttable.lookup(nodeKey)
		if ttEntry.valid() && int(ttEntry.depth) == depth {
			score := int(ttEntry.score)
			switch ttEntry.flag {
			case TTExact:
				return score, nil
			case TTLower:
				α = max(α, score)
			case TTUpper:
				β = min(β, score)
			}
			if α >= β {
				return score, nil
			}
		}
	}

	opp := mover.Opponent()
	children := s.movegen.GenAll(b, mover)
	if len(children) == 0 {
		if b.Empties() == 0 || !b.HasLegalMove(opp) {
			// game over
			return s.evaluator.Evaluate(b, self), nil
		}
		if s.logStream != nil {
			fmt.Fprintf(s.logStream, "  %v- pass: %v\n", strings.Repeat(" ", 2*ply), mover)
		}
		childKey := nodeKey
		if s.transpositionTableOptim {
			childKey = s.ttable.zobrist.AddPass(nodeKey)
		}
		return s.minimax(ctx, b, childKey, opp, depth, !maximizing, self, α, β, ply+1)
	}

	indent := strings.Repeat(" ", 2*ply)
	bestValue := Infinity
	if maximizing {
		bestValue = -Infinity
	}
	for i, child := range children {
		if i > 0 {
			if err := ctx.Err(); err != nil {
				return bestValue, err
			}
		}
		if s.logStream != nil {
			fmt.Fprintf(s.logStream, "  %v- play: %v\n", indent, child.ShortDescription())
		}
		b.PlayMove(child.Row(), child.Col(), mover)
		s.nodes.Add(1)
		childKey := nodeKey
		if s.transpositionTableOptim {
			childKey = s.ttable.zobrist.AddMove(nodeKey, child.Row()*b.Dim()+child.Col(),
				b.LastFlips(), mover)
		}
		value, err := s.minimax(ctx, b, childKey, opp, depth-1, !maximizing, self, α, β, ply+1)
		b.UnplayLastMove()
		if err != nil {
			return bestValue, err
		}
		if s.logStream != nil {
			fmt.Fprintf(s.logStream, "  %v  value: %v\n", indent, value)
		}
		if maximizing {
			bestValue = max(bestValue, value)
			α = max(α, bestValue)
		} else {
			bestValue = min(bestValue, value)
			β = min(β, bestValue)
		}
		if s.pruningOptim && β <= α {
			break
		}
	}

	if s.transpositionTableOptim {
		entry := TableEntry{score: int32(bestValue), depth: uint16(depth)}
		switch {
		case bestValue <= αOrig:
			entry.flag = TTUpper
		case bestValue >= βOrig:
			entry.flag = TTLower
		default:
			entry.flag = TTExact
		}
		s.ttable.store(nodeKey, entry)
	}
	return bestValue, nil
}

// Search returns the full-window value of b for the side to move, at the
// given depth.
func (s *Solver) Search(ctx context.Context, b *board.Board, mover board.Cell, depth int) (int, error) {
	var value int
	err := s.Track(ctx, func(ctx context.Context) error {
		var err error
		value, err = s.Minimax(ctx, b, mover, depth, true, mover, -Infinity, Infinity)
		return err
	})
	return value, err
}

// Track runs work while a second goroutine logs the node rate once a
// second. The node counter is reset first.
func (s *Solver) Track(ctx context.Context, work func(ctx context.Context) error) error {
	s.ResetNodes()
	tstart := time.Now()
	g := &errgroup.Group{}
	done := make(chan bool)

	g.Go(func() error {
		ticker := time.NewTicker(1 * time.Second)
		defer ticker.Stop()
		var lastNodes uint64
		for {
			select {
			case <-done:
				return nil
			case <-ticker.C:
				nodes := s.nodes.Load()
				log.Debug().Uint64("nps", nodes-lastNodes).Msg("nodes-per-second")
				lastNodes = nodes
			}
		}
	})

	g.Go(func() error {
		defer close(done)
		return work(ctx)
	})

	err := g.Wait()
	elapsed := time.Since(tstart)
	ev := log.Debug().
		Uint64("nodes", s.nodes.Load()).
		Float64("time-elapsed-sec", elapsed.Seconds())
	if elapsed > 0 {
		ev = ev.Float64("nps", float64(s.nodes.Load())/elapsed.Seconds())
	}
	if s.ttable != nil {
		created, lookups, hits, collisions := s.ttable.Stats()
		ev = ev.Uint64("ttable-created", created).
			Uint64("ttable-lookups", lookups).
			Uint64("ttable-hits", hits).
			Uint64("ttable-collisions", collisions)
	}
	ev.Msg("search-finished")
	return err
}
