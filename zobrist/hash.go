package zobrist

import (
	"lukechampine.com/frand"

	"github.com/domino14/reversi/board"
)

const bignum = 1<<63 - 2

// generate a zobrist hash for an Othello position.
// https://en.wikipedia.org/wiki/Zobrist_hashing
//
// The key covers the discs, the side to move, and the side whose point of
// view the score is computed from, since search values depend on all three.
type Zobrist struct {
	whiteToMove uint64
	whiteIsSelf uint64

	// posTable[square][0] is a black disc, [1] a white one.
	posTable [][2]uint64

	boardDim int
}

func (z *Zobrist) Initialize(boardDim int) {
	z.boardDim = boardDim
	z.posTable = make([][2]uint64, boardDim*boardDim)
	for i := range z.posTable {
		z.posTable[i][0] = frand.Uint64n(bignum) + 1
		z.posTable[i][1] = frand.Uint64n(bignum) + 1
	}
	z.whiteToMove = frand.Uint64n(bignum) + 1
	z.whiteIsSelf = frand.Uint64n(bignum) + 1
}

func (z *Zobrist) BoardDim() int {
	return z.boardDim
}

func discKey(side board.Cell) int {
	return int(side) - 1
}

func (z *Zobrist) Hash(b *board.Board, mover, self board.Cell) uint64 {
	key := uint64(0)
	for i, c := range b.Squares() {
		if c == board.Empty {
			continue
		}
		key ^= z.posTable[i][discKey(c)]
	}
	if mover == board.White {
		key ^= z.whiteToMove
	}
	if self == board.White {
		key ^= z.whiteIsSelf
	}
	return key
}

// AddMove updates key for side's disc at idx and the discs it flipped, as
// reported by Board.LastFlips. The side to move changes. Applying the same
// move again undoes it.
func (z *Zobrist) AddMove(key uint64, idx int, flipped []int, side board.Cell) uint64 {
	own := discKey(side)
	theirs := discKey(side.Opponent())
	key ^= z.posTable[idx][own]
	for _, f := range flipped {
		key ^= z.posTable[f][theirs]
		key ^= z.posTable[f][own]
	}
	key ^= z.whiteToMove
	return key
}

// AddPass hands the move to the other side.
func (z *Zobrist) AddPass(key uint64) uint64 {
	return key ^ z.whiteToMove
}
