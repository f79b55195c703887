// Package eval scores Othello positions for the search.
package eval

import (
	"fmt"

	"github.com/samber/lo"

	"github.com/domino14/reversi/board"
	"github.com/domino14/reversi/movegen"
)

// Phase is the stage of the game, judged by the number of empty squares.
type Phase uint8

const (
	PhaseOpening Phase = iota
	PhaseMidgame
	PhaseEndgame
)

func (p Phase) String() string {
	switch p {
	case PhaseOpening:
		return "opening"
	case PhaseMidgame:
		return "midgame"
	case PhaseEndgame:
		return "endgame"
	}
	return "unknown"
}

// Evaluator scores a position from self's point of view. Higher is better
// for self. Implementations must be pure: the same position and side always
// give the same score, and the board is never modified.
type Evaluator interface {
	Evaluate(b *board.Board, self board.Cell) int
	Phase(b *board.Board) Phase
	// Dim is the board dimension the evaluator was built for.
	Dim() int
}

// Terms is the breakdown of one evaluation.
type Terms struct {
	Positional int
	Mobility   int
	Stability  int
	Frontier   int
	Discs      int
	// Terminal is set when the game is over; Total is then the final disc
	// differential times the terminal multiplier and the other terms are 0.
	Terminal bool
	Total    int
}

func (t Terms) String() string {
	if t.Terminal {
		return fmt.Sprintf("terminal %d", t.Total)
	}
	return fmt.Sprintf("positional %d mobility %d stability %d frontier %d discs %d = %d",
		t.Positional, t.Mobility, t.Stability, t.Frontier, t.Discs, t.Total)
}

// Heuristic is the weighted evaluator. It is safe for concurrent use once
// built.
type Heuristic struct {
	dim     int
	weights Weights
	table   []int
	// cornerOf maps each X- and C-square to the index of its corner, and
	// every other square to -1.
	cornerOf []int
}

// New builds a heuristic evaluator for a dim×dim board.
func New(w Weights, dim int) (*Heuristic, error) {
	if err := w.Validate(dim); err != nil {
		return nil, err
	}
	b, err := board.NewBoard(dim)
	if err != nil {
		return nil, err
	}
	h := &Heuristic{
		dim:      dim,
		weights:  w,
		table:    w.squareTable(dim),
		cornerOf: make([]int, dim*dim),
	}
	for r := 0; r < dim; r++ {
		for c := 0; c < dim; c++ {
			h.cornerOf[r*dim+c] = -1
			if cr, cc, ok := b.AdjacentCorner(r, c); ok {
				h.cornerOf[r*dim+c] = cr*dim + cc
			}
		}
	}
	return h, nil
}

// NewDefault is New with DefaultWeights.
func NewDefault(dim int) (*Heuristic, error) {
	return New(DefaultWeights(dim), dim)
}

func (h *Heuristic) Dim() int {
	return h.dim
}

func (h *Heuristic) Weights() Weights {
	return h.weights
}

// Table returns the static square values, row-major.
func (h *Heuristic) Table() []int {
	return h.table
}

func (h *Heuristic) Phase(b *board.Board) Phase {
	e := b.Empties()
	switch {
	case e > h.weights.OpeningEmpties:
		return PhaseOpening
	case e <= h.weights.EndgameEmpties:
		return PhaseEndgame
	}
	return PhaseMidgame
}

func (h *Heuristic) Evaluate(b *board.Board, self board.Cell) int {
	return h.Terms(b, self).Total
}

// Terms evaluates the position and returns each weighted term.
func (h *Heuristic) Terms(b *board.Board, self board.Cell) Terms {
	opp := self.Opponent()
	own, theirs := 0, 0
	if b.Empties() > 0 {
		own = movegen.CountMoves(b, self)
		theirs = movegen.CountMoves(b, opp)
	}
	if own == 0 && theirs == 0 {
		return Terms{
			Terminal: true,
			Total:    b.Spread(self) * h.weights.TerminalMultiplier,
		}
	}

	phase := h.Phase(b)
	t := Terms{
		Positional: h.positional(b, self),
		Mobility:   h.mobility(own, theirs, phase),
		Stability:  (StableDiscs(b, self) - StableDiscs(b, opp)) * h.weights.Stability,
		Frontier:   -(FrontierDiscs(b, self) - FrontierDiscs(b, opp)) * h.weights.Frontier,
		Discs:      b.Spread(self) * h.weights.Discs.For(phase),
	}
	t.Total = lo.Sum([]int{t.Positional, t.Mobility, t.Stability, t.Frontier, t.Discs})
	return t
}

func (h *Heuristic) positional(b *board.Board, self board.Cell) int {
	sq := b.Squares()
	score := 0
	for i, c := range sq {
		if c == board.Empty {
			continue
		}
		v := h.table[i]
		if corner := h.cornerOf[i]; corner >= 0 && sq[corner] != board.Empty {
			v = h.weights.Squares.Settled
		}
		if c == self {
			score += v
		} else {
			score -= v
		}
	}
	return score
}

func (h *Heuristic) mobility(own, theirs int, phase Phase) int {
	score := (own - theirs) * h.weights.Mobility.For(phase)
	switch {
	case own == 0 && theirs > 0:
		score -= h.weights.NoMovePenalty
	case theirs == 0 && own > 0:
		score += h.weights.NoMovePenalty
	}
	return score
}
