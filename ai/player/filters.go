package player

import (
	"errors"
	"fmt"

	"github.com/samber/lo"

	"github.com/domino14/reversi/board"
	"github.com/domino14/reversi/move"
)

// CornerAdjacentPolicy decides when X- and C-squares are taken off the
// candidate list.
type CornerAdjacentPolicy string

const (
	// CornerAdjacentOff never vetoes a move.
	CornerAdjacentOff CornerAdjacentPolicy = "off"
	// CornerAdjacentWhileEmpty vetoes X- and C-squares while their corner
	// is empty.
	CornerAdjacentWhileEmpty CornerAdjacentPolicy = "while-empty"
	// CornerAdjacentUnlessOwned vetoes them unless the mover owns the corner.
	CornerAdjacentUnlessOwned CornerAdjacentPolicy = "unless-owned"
	// CornerAdjacentAbsolute always vetoes them.
	CornerAdjacentAbsolute CornerAdjacentPolicy = "absolute"
)

var ErrUnknownPolicy = errors.New("unknown corner-adjacent policy")

func ParseCornerAdjacentPolicy(s string) (CornerAdjacentPolicy, error) {
	switch p := CornerAdjacentPolicy(s); p {
	case CornerAdjacentOff, CornerAdjacentWhileEmpty, CornerAdjacentUnlessOwned,
		CornerAdjacentAbsolute:
		return p, nil
	case "":
		return CornerAdjacentUnlessOwned, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownPolicy, s)
}

func vetoed(b *board.Board, m *move.Move, side board.Cell, policy CornerAdjacentPolicy) bool {
	if policy == CornerAdjacentOff {
		return false
	}
	cr, cc, ok := b.AdjacentCorner(m.Row(), m.Col())
	if !ok {
		return false
	}
	switch policy {
	case CornerAdjacentWhileEmpty:
		return b.At(cr, cc) == board.Empty
	case CornerAdjacentUnlessOwned:
		return b.At(cr, cc) != side
	}
	return true
}

// filterCornerAdjacent drops the moves the policy vetoes. If that would
// leave nothing, every move is kept.
func filterCornerAdjacent(b *board.Board, plays []*move.Move, side board.Cell,
	policy CornerAdjacentPolicy) []*move.Move {

	kept := lo.Filter(plays, func(m *move.Move, _ int) bool {
		return !vetoed(b, m, side, policy)
	})
	if len(kept) == 0 {
		return plays
	}
	return kept
}

// mostFlips returns the first move with the highest flip count.
func mostFlips(plays []*move.Move) *move.Move {
	return lo.MaxBy(plays, func(a, b *move.Move) bool {
		return a.Flips() > b.Flips()
	})
}

// cornerMove returns the corner placement with the most flips, or nil if
// no corner is available.
func cornerMove(b *board.Board, plays []*move.Move) *move.Move {
	corners := lo.Filter(plays, func(m *move.Move, _ int) bool {
		return b.IsCorner(m.Row(), m.Col())
	})
	if len(corners) == 0 {
		return nil
	}
	return mostFlips(corners)
}
