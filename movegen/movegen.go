// Package movegen enumerates the legal placements for a side.
package movegen

import (
	"sort"

	"github.com/domino14/reversi/board"
	"github.com/domino14/reversi/move"
)

type SortBy int

const (
	// SortByNone keeps row-major order.
	SortByNone SortBy = iota
	// SortByPriority puts likely-good moves first so that alpha-beta cuts
	// earlier. It never changes which moves are generated.
	SortByPriority
)

const (
	cornerBonus    = 1000
	xSquarePenalty = -1000
	cSquarePenalty = -500
)

// MoveGenerator is a generic interface for generating moves.
type MoveGenerator interface {
	GenAll(b *board.Board, side board.Cell) []*move.Move
	SetSortingParameter(s SortBy)
	Plays() []*move.Move
}

// Generator generates placements. It is not safe for concurrent use; give
// each goroutine its own.
type Generator struct {
	sortingParameter SortBy
	plays            []*move.Move
}

func NewGenerator() *Generator {
	return &Generator{}
}

func (gen *Generator) SetSortingParameter(s SortBy) {
	gen.sortingParameter = s
}

// GenAll returns every legal placement for side in a fresh slice, in
// row-major order unless priority sorting is on. It never returns a pass;
// an empty result means side must pass.
func (gen *Generator) GenAll(b *board.Board, side board.Cell) []*move.Move {
	dim := b.Dim()
	plays := make([]*move.Move, 0, 16)
	for r := 0; r < dim; r++ {
		for c := 0; c < dim; c++ {
			if b.At(r, c) != board.Empty {
				continue
			}
			if flips := b.CountFlips(r, c, side); flips > 0 {
				plays = append(plays, move.NewPlayMove(r, c, flips))
			}
		}
	}
	if gen.sortingParameter == SortByPriority {
		keys := make(map[*move.Move]int, len(plays))
		for _, p := range plays {
			keys[p] = OrderKey(b, p)
		}
		sort.SliceStable(plays, func(i, j int) bool {
			return keys[plays[i]] > keys[plays[j]]
		})
	}
	gen.plays = plays
	return plays
}

// Plays returns the result of the last GenAll.
func (gen *Generator) Plays() []*move.Move {
	return gen.plays
}

// OrderKey is the priority used by SortByPriority: corners first, squares
// next to an open corner last, and otherwise the number of flips.
func OrderKey(b *board.Board, m *move.Move) int {
	switch b.Kind(m.Row(), m.Col()) {
	case board.KindCorner:
		return cornerBonus + m.Flips()
	case board.KindXSquare:
		if cornerEmpty(b, m.Row(), m.Col()) {
			return xSquarePenalty + m.Flips()
		}
	case board.KindCSquare:
		if cornerEmpty(b, m.Row(), m.Col()) {
			return cSquarePenalty + m.Flips()
		}
	}
	return m.Flips()
}

func cornerEmpty(b *board.Board, row, col int) bool {
	cr, cc, ok := b.AdjacentCorner(row, col)
	return ok && b.At(cr, cc) == board.Empty
}

// CountMoves returns the number of legal placements for side.
func CountMoves(b *board.Board, side board.Cell) int {
	n := 0
	dim := b.Dim()
	for r := 0; r < dim; r++ {
		for c := 0; c < dim; c++ {
			if b.IsLegal(r, c, side) {
				n++
			}
		}
	}
	return n
}
