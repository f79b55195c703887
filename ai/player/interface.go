// Package player holds automatic Othello players: a searching player and
// a greedy baseline.
package player

import (
	"context"

	"github.com/domino14/reversi/board"
	"github.com/domino14/reversi/move"
	"github.com/domino14/reversi/search"
)

// ErrDimensionMismatch is returned for a board whose size differs from the
// one the player's evaluator was built for.
var ErrDimensionMismatch = search.ErrDimensionMismatch

// AIPlayer picks a move for side. When side has no legal placement the
// result is a pass move and a nil error.
type AIPlayer interface {
	BestMove(ctx context.Context, b *board.Board, side board.Cell) (*move.Move, error)
	Name() string
}
