package board

import (
	"errors"
	"fmt"
)

const (
	MinDim = 4
	MaxDim = 16
	// StandardDim is the size of a tournament board.
	StandardDim = 8
)

var (
	ErrNotSquare    = errors.New("board is not square")
	ErrBadDimension = errors.New("board dimension out of range")
	ErrBadCell      = errors.New("cell value out of range")
	ErrIllegalMove  = errors.New("illegal move")
)

// The eight compass directions as (row, col) steps.
var directions = [8][2]int{
	{-1, -1}, {-1, 0}, {-1, 1},
	{0, -1}, {0, 1},
	{1, -1}, {1, 0}, {1, 1},
}

// undoFrame records one PlayMove so it can be taken back. The flipped
// squares live in Board.flipStack starting at flipStart.
type undoFrame struct {
	idx       int
	side      Cell
	flipStart int
}

// Board is an N×N Othello board. The zero value is not usable; create
// boards with NewBoard, StandardBoard, FromRows or FromDisplayText.
type Board struct {
	dim     int
	squares []Cell
	empties int

	flipStack []int
	frames    []undoFrame
}

// NewBoard returns an empty board of the given dimension.
func NewBoard(dim int) (*Board, error) {
	if dim < MinDim || dim > MaxDim {
		return nil, fmt.Errorf("%w: %d", ErrBadDimension, dim)
	}
	return &Board{
		dim:     dim,
		squares: make([]Cell, dim*dim),
		empties: dim * dim,
	}, nil
}

// StandardBoard returns the starting position: a 2×2 block in the centre
// with Black on the main diagonal.
func StandardBoard(dim int) (*Board, error) {
	if dim%2 != 0 {
		return nil, fmt.Errorf("%w: standard position needs an even dimension, got %d",
			ErrBadDimension, dim)
	}
	b, err := NewBoard(dim)
	if err != nil {
		return nil, err
	}
	h := dim / 2
	b.Set(h-1, h-1, Black)
	b.Set(h-1, h, White)
	b.Set(h, h-1, White)
	b.Set(h, h, Black)
	return b, nil
}

// FromRows builds a board from rows of 0 (empty), 1 (black) and 2 (white).
func FromRows(rows [][]int) (*Board, error) {
	dim := len(rows)
	b, err := NewBoard(dim)
	if err != nil {
		return nil, err
	}
	for r, row := range rows {
		if len(row) != dim {
			return nil, fmt.Errorf("%w: row %d has %d cells, want %d",
				ErrNotSquare, r, len(row), dim)
		}
		for c, v := range row {
			if v < int(Empty) || v > int(White) {
				return nil, fmt.Errorf("%w: row %d col %d has value %d",
					ErrBadCell, r, c, v)
			}
			b.Set(r, c, Cell(v))
		}
	}
	return b, nil
}

// Rows returns the board as rows of 0/1/2 integers.
func (b *Board) Rows() [][]int {
	rows := make([][]int, b.dim)
	for r := range rows {
		rows[r] = make([]int, b.dim)
		for c := range rows[r] {
			rows[r][c] = int(b.squares[r*b.dim+c])
		}
	}
	return rows
}

// Validate checks the board's internal invariants.
func (b *Board) Validate() error {
	if b == nil {
		return fmt.Errorf("%w: nil board", ErrBadDimension)
	}
	if b.dim < MinDim || b.dim > MaxDim {
		return fmt.Errorf("%w: %d", ErrBadDimension, b.dim)
	}
	if len(b.squares) != b.dim*b.dim {
		return fmt.Errorf("%w: %d squares for dimension %d", ErrNotSquare,
			len(b.squares), b.dim)
	}
	empties := 0
	for i, c := range b.squares {
		if c > White {
			return fmt.Errorf("%w: row %d col %d has value %d",
				ErrBadCell, i/b.dim, i%b.dim, c)
		}
		if c == Empty {
			empties++
		}
	}
	if empties != b.empties {
		return fmt.Errorf("%w: empty count %d does not match %d",
			ErrBadCell, b.empties, empties)
	}
	return nil
}

func (b *Board) Dim() int {
	return b.dim
}

// At returns the cell at (row, col).
func (b *Board) At(row, col int) Cell {
	return b.squares[row*b.dim+col]
}

// Set puts c at (row, col) without any capture logic. It exists to build
// positions; play goes through PlayMove.
func (b *Board) Set(row, col int, c Cell) {
	idx := row*b.dim + col
	if b.squares[idx] == Empty && c != Empty {
		b.empties--
	} else if b.squares[idx] != Empty && c == Empty {
		b.empties++
	}
	b.squares[idx] = c
}

func (b *Board) inBounds(row, col int) bool {
	return row >= 0 && col >= 0 && row < b.dim && col < b.dim
}

// Empties returns the number of empty squares.
func (b *Board) Empties() int {
	return b.empties
}

// Occupied returns the number of discs on the board.
func (b *Board) Occupied() int {
	return b.dim*b.dim - b.empties
}

// Count returns the number of discs belonging to side.
func (b *Board) Count(side Cell) int {
	n := 0
	for _, c := range b.squares {
		if c == side {
			n++
		}
	}
	return n
}

// Spread returns side's disc count minus the opponent's.
func (b *Board) Spread(side Cell) int {
	return b.Count(side) - b.Count(side.Opponent())
}

// Copy returns a deep copy of the position. The undo log is not copied.
func (b *Board) Copy() *Board {
	squares := make([]Cell, len(b.squares))
	copy(squares, b.squares)
	return &Board{
		dim:     b.dim,
		squares: squares,
		empties: b.empties,
	}
}

// CopyFrom overwrites b with the position in other, reusing b's storage
// when the dimensions agree. The undo log is cleared.
func (b *Board) CopyFrom(other *Board) {
	if len(b.squares) != len(other.squares) {
		b.squares = make([]Cell, len(other.squares))
	}
	copy(b.squares, other.squares)
	b.dim = other.dim
	b.empties = other.empties
	b.flipStack = b.flipStack[:0]
	b.frames = b.frames[:0]
}

// Equals compares positions only.
func (b *Board) Equals(other *Board) bool {
	if b.dim != other.dim {
		return false
	}
	for i := range b.squares {
		if b.squares[i] != other.squares[i] {
			return false
		}
	}
	return true
}

// Squares exposes the row-major cell slice. Callers must not modify it.
func (b *Board) Squares() []Cell {
	return b.squares
}
