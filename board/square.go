package board

import (
	"errors"
	"fmt"
)

// A Cell is the contents of a single square: empty, or a disc of one side.
type Cell uint8

const (
	Empty Cell = iota
	// Black is side A. It moves first from the standard position.
	Black
	// White is side B.
	White
)

var ErrBadSide = errors.New("side must be black or white")

// Opponent returns the other side. It is only meaningful for Black and White.
func (c Cell) Opponent() Cell {
	return 3 - c
}

// IsSide reports whether c is Black or White.
func (c Cell) IsSide() bool {
	return c == Black || c == White
}

func (c Cell) String() string {
	switch c {
	case Empty:
		return "empty"
	case Black:
		return "black"
	case White:
		return "white"
	}
	return fmt.Sprintf("cell(%d)", uint8(c))
}

// DisplayString is the single character used by ToDisplayText.
func (c Cell) DisplayString() string {
	switch c {
	case Black:
		return "X"
	case White:
		return "O"
	}
	return "."
}

// SideFromString parses a side name as typed by a user.
func SideFromString(s string) (Cell, error) {
	switch s {
	case "black", "b", "x", "X", "1":
		return Black, nil
	case "white", "w", "o", "O", "2":
		return White, nil
	}
	return Empty, fmt.Errorf("%w: %q", ErrBadSide, s)
}

// SquareKind classifies a square by its relation to the corners and edges.
type SquareKind uint8

const (
	KindInterior SquareKind = iota
	// KindInnerRing is the ring one step in from the edge, minus X-squares.
	KindInnerRing
	KindEdge
	// KindASquare is an edge square two steps from a corner.
	KindASquare
	// KindCSquare is an edge square orthogonally adjacent to a corner.
	KindCSquare
	// KindXSquare is diagonally adjacent to a corner.
	KindXSquare
	KindCorner
)

func (k SquareKind) String() string {
	switch k {
	case KindInterior:
		return "interior"
	case KindInnerRing:
		return "inner-ring"
	case KindEdge:
		return "edge"
	case KindASquare:
		return "a-square"
	case KindCSquare:
		return "c-square"
	case KindXSquare:
		return "x-square"
	case KindCorner:
		return "corner"
	}
	return "unknown"
}

// Kind returns the kind of the square at (row, col).
func (b *Board) Kind(row, col int) SquareKind {
	return squareKind(b.dim, row, col)
}

func squareKind(dim, row, col int) SquareKind {
	last := dim - 1
	onRowEdge := row == 0 || row == last
	onColEdge := col == 0 || col == last
	nearRow := row == 1 || row == last-1
	nearCol := col == 1 || col == last-1

	switch {
	case onRowEdge && onColEdge:
		return KindCorner
	case nearRow && nearCol:
		return KindXSquare
	case (onRowEdge && nearCol) || (onColEdge && nearRow):
		return KindCSquare
	case onRowEdge && (col == 2 || col == last-2):
		return KindASquare
	case onColEdge && (row == 2 || row == last-2):
		return KindASquare
	case onRowEdge || onColEdge:
		return KindEdge
	case nearRow || nearCol:
		return KindInnerRing
	}
	return KindInterior
}

// IsCorner reports whether (row, col) is one of the four corners.
func (b *Board) IsCorner(row, col int) bool {
	return squareKind(b.dim, row, col) == KindCorner
}

// Corners returns the four corner coordinates in row-major order.
func (b *Board) Corners() [4][2]int {
	last := b.dim - 1
	return [4][2]int{{0, 0}, {0, last}, {last, 0}, {last, last}}
}

// AdjacentCorner returns the corner that an X- or C-square touches. ok is
// false for every other square.
func (b *Board) AdjacentCorner(row, col int) (crow, ccol int, ok bool) {
	k := squareKind(b.dim, row, col)
	if k != KindXSquare && k != KindCSquare {
		return 0, 0, false
	}
	crow, ccol = 0, 0
	if row >= b.dim/2 {
		crow = b.dim - 1
	}
	if col >= b.dim/2 {
		ccol = b.dim - 1
	}
	return crow, ccol, true
}
