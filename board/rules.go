package board

import "fmt"

// runLength returns the length of the opponent run starting next to
// (row, col) in direction d, provided a disc of side closes it. An open
// run (empty square or board edge) returns 0.
func (b *Board) runLength(row, col int, d [2]int, side Cell) int {
	opp := side.Opponent()
	r, c := row+d[0], col+d[1]
	n := 0
	for b.inBounds(r, c) {
		switch b.squares[r*b.dim+c] {
		case opp:
			n++
		case side:
			return n
		default:
			return 0
		}
		r += d[0]
		c += d[1]
	}
	return 0
}

// IsLegal reports whether side may play at (row, col).
func (b *Board) IsLegal(row, col int, side Cell) bool {
	if !b.inBounds(row, col) || b.squares[row*b.dim+col] != Empty {
		return false
	}
	for _, d := range directions {
		if b.runLength(row, col, d, side) > 0 {
			return true
		}
	}
	return false
}

// CountFlips returns the number of discs side would capture by playing at
// (row, col). It does not check that the square is empty.
func (b *Board) CountFlips(row, col int, side Cell) int {
	flips := 0
	for _, d := range directions {
		flips += b.runLength(row, col, d, side)
	}
	return flips
}

// HasLegalMove reports whether side has at least one legal move.
func (b *Board) HasLegalMove(side Cell) bool {
	if b.empties == 0 {
		return false
	}
	for idx, c := range b.squares {
		if c != Empty {
			continue
		}
		if b.IsLegal(idx/b.dim, idx%b.dim, side) {
			return true
		}
	}
	return false
}

// IsTerminal reports whether the game is over: the board is full or
// neither side can move.
func (b *Board) IsTerminal() bool {
	if b.empties == 0 {
		return true
	}
	return !b.HasLegalMove(Black) && !b.HasLegalMove(White)
}

// ValidateMove returns ErrIllegalMove unless side may play at (row, col).
func (b *Board) ValidateMove(row, col int, side Cell) error {
	if !side.IsSide() {
		return fmt.Errorf("%w: %v", ErrBadSide, side)
	}
	if !b.inBounds(row, col) {
		return fmt.Errorf("%w: (%d, %d) is off the board", ErrIllegalMove, row, col)
	}
	if b.At(row, col) != Empty {
		return fmt.Errorf("%w: (%d, %d) is occupied", ErrIllegalMove, row, col)
	}
	if !b.IsLegal(row, col, side) {
		return fmt.Errorf("%w: (%d, %d) captures nothing for %v", ErrIllegalMove,
			row, col, side)
	}
	return nil
}

// PlayMove places a disc for side at (row, col) and flips every bracketed
// run. It returns the number of flipped discs and pushes an undo frame.
// Playing an occupied or non-capturing square is a programming error and
// panics; check IsLegal first.
func (b *Board) PlayMove(row, col int, side Cell) int {
	idx := row*b.dim + col
	if b.squares[idx] != Empty {
		panic(fmt.Sprintf("PlayMove: (%d, %d) is occupied by %v", row, col, b.squares[idx]))
	}
	frame := undoFrame{idx: idx, side: side, flipStart: len(b.flipStack)}
	// Each direction's run is measured before any of it is flipped. Rays
	// from one origin share no squares, so the order of directions does
	// not matter.
	for _, d := range directions {
		n := b.runLength(row, col, d, side)
		r, c := row, col
		for i := 0; i < n; i++ {
			r += d[0]
			c += d[1]
			fidx := r*b.dim + c
			b.squares[fidx] = side
			b.flipStack = append(b.flipStack, fidx)
		}
	}
	flipped := len(b.flipStack) - frame.flipStart
	if flipped == 0 {
		panic(fmt.Sprintf("PlayMove: (%d, %d) captures nothing for %v", row, col, side))
	}
	b.squares[idx] = side
	b.empties--
	b.frames = append(b.frames, frame)
	return flipped
}

// UnplayLastMove takes back the most recent PlayMove.
func (b *Board) UnplayLastMove() {
	if len(b.frames) == 0 {
		panic("UnplayLastMove: no move to take back")
	}
	frame := b.frames[len(b.frames)-1]
	b.frames = b.frames[:len(b.frames)-1]
	opp := frame.side.Opponent()
	for _, fidx := range b.flipStack[frame.flipStart:] {
		b.squares[fidx] = opp
	}
	b.flipStack = b.flipStack[:frame.flipStart]
	b.squares[frame.idx] = Empty
	b.empties++
}

// LastFlips returns the squares flipped by the most recent PlayMove, as
// row-major indexes. The slice is only valid until the next PlayMove or
// UnplayLastMove.
func (b *Board) LastFlips() []int {
	if len(b.frames) == 0 {
		return nil
	}
	return b.flipStack[b.frames[len(b.frames)-1].flipStart:]
}

// Apply returns a new board with side's move at (row, col) played. The
// receiver is untouched. The same preconditions as PlayMove apply.
func (b *Board) Apply(row, col int, side Cell) *Board {
	nb := b.Copy()
	nb.PlayMove(row, col, side)
	nb.frames = nb.frames[:0]
	nb.flipStack = nb.flipStack[:0]
	return nb
}
