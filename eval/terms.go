package eval

import "github.com/domino14/reversi/board"

// StableDiscs counts side's discs reachable from one of side's corners
// through a chain of side's discs, stepping in any of the 8 directions.
//
// This is an approximation. A disc connected to an owned corner can still
// be flipped along a line that runs through an empty square, and stable
// discs not connected to a corner are missed.
func StableDiscs(b *board.Board, side board.Cell) int {
	dim := b.Dim()
	sq := b.Squares()
	marked := make([]bool, len(sq))
	queue := make([]int, 0, 16)
	for _, corner := range b.Corners() {
		idx := corner[0]*dim + corner[1]
		if sq[idx] == side && !marked[idx] {
			marked[idx] = true
			queue = append(queue, idx)
		}
	}
	count := 0
	for len(queue) > 0 {
		idx := queue[0]
		queue = queue[1:]
		count++
		r, c := idx/dim, idx%dim
		for dr := -1; dr <= 1; dr++ {
			for dc := -1; dc <= 1; dc++ {
				nr, nc := r+dr, c+dc
				if (dr == 0 && dc == 0) || nr < 0 || nc < 0 || nr >= dim || nc >= dim {
					continue
				}
				n := nr*dim + nc
				if sq[n] == side && !marked[n] {
					marked[n] = true
					queue = append(queue, n)
				}
			}
		}
	}
	return count
}

// FrontierDiscs counts side's discs that touch at least one empty square.
func FrontierDiscs(b *board.Board, side board.Cell) int {
	dim := b.Dim()
	sq := b.Squares()
	count := 0
	for idx, cell := range sq {
		if cell != side {
			continue
		}
		r, c := idx/dim, idx%dim
	neighbours:
		for dr := -1; dr <= 1; dr++ {
			for dc := -1; dc <= 1; dc++ {
				nr, nc := r+dr, c+dc
				if (dr == 0 && dc == 0) || nr < 0 || nc < 0 || nr >= dim || nc >= dim {
					continue
				}
				if sq[nr*dim+nc] == board.Empty {
					count++
					break neighbours
				}
			}
		}
	}
	return count
}
