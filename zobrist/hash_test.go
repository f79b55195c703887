package zobrist

import (
	"testing"

	"github.com/matryer/is"

	"github.com/domino14/reversi/board"
)

func TestPlayAndUnplay(t *testing.T) {
	is := is.New(t)
	z := &Zobrist{}
	z.Initialize(8)

	b := board.MustBoard(board.VsMidgame)
	h := z.Hash(b, board.Black, board.Black)
	b.PlayMove(2, 1, board.Black)
	idx := 2*8 + 1
	flipped := append([]int(nil), b.LastFlips()...)
	h1 := z.AddMove(h, idx, flipped, board.Black)
	// incremental and full hashes agree
	is.Equal(h1, z.Hash(b, board.White, board.Black))
	is.True(h1 != h)

	// and the same update takes the move back
	h2 := z.AddMove(h1, idx, flipped, board.Black)
	b.UnplayLastMove()
	is.Equal(h2, h)
	is.Equal(z.Hash(b, board.Black, board.Black), h)
}

func TestPlayMoreLevels(t *testing.T) {
	is := is.New(t)
	z := &Zobrist{}
	z.Initialize(8)

	b := board.MustBoard(board.VsOpening)
	side := board.Black
	h := z.Hash(b, side, board.Black)
	for i := 0; i < 12 && !b.IsTerminal(); i++ {
		played := false
		for idx := range b.Squares() {
			if b.IsLegal(idx/8, idx%8, side) {
				b.PlayMove(idx/8, idx%8, side)
				h = z.AddMove(h, idx, b.LastFlips(), side)
				played = true
				break
			}
		}
		if !played {
			h = z.AddPass(h)
		}
		side = side.Opponent()
		is.Equal(h, z.Hash(b, side, board.Black))
	}
}

func TestPerspectiveAndMover(t *testing.T) {
	is := is.New(t)
	z := &Zobrist{}
	z.Initialize(8)
	b := board.MustBoard(board.VsOpening)
	keys := map[uint64]bool{}
	for _, mover := range []board.Cell{board.Black, board.White} {
		for _, self := range []board.Cell{board.Black, board.White} {
			keys[z.Hash(b, mover, self)] = true
		}
	}
	is.Equal(len(keys), 4)
	is.Equal(z.AddPass(z.Hash(b, board.Black, board.White)), z.Hash(b, board.White, board.White))
}
