package player

import (
	"context"

	"github.com/domino14/reversi/board"
	"github.com/domino14/reversi/move"
	"github.com/domino14/reversi/movegen"
)

// GreedyPlayer does no look-ahead. It takes a corner when it can, and
// otherwise the move that flips the most discs. Ties go to the first move
// in row-major order.
type GreedyPlayer struct {
	gen *movegen.Generator
	dim int
}

// NewGreedyPlayer returns a greedy player for dim×dim boards. A dim of 0
// accepts any size.
func NewGreedyPlayer(dim int) *GreedyPlayer {
	return &GreedyPlayer{gen: movegen.NewGenerator(), dim: dim}
}

func (p *GreedyPlayer) Name() string {
	return "greedy"
}

func (p *GreedyPlayer) BestMove(ctx context.Context, b *board.Board, side board.Cell) (*move.Move, error) {
	dim := p.dim
	if dim == 0 && b != nil {
		dim = b.Dim()
	}
	if err := validate(b, side, dim); err != nil {
		return nil, err
	}
	plays := p.gen.GenAll(b, side)
	if len(plays) == 0 {
		return move.NewPassMove(), nil
	}
	if m := cornerMove(b, plays); m != nil {
		return m, nil
	}
	return mostFlips(plays), nil
}
