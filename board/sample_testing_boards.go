package board

// This file contains some sample positions, used solely for testing.

// VsWho is a text representation of a position, in the format read by
// FromDisplayText.
type VsWho string

const (
	// VsOpening is the standard 8×8 starting position.
	VsOpening VsWho = `
........
........
........
...XO...
...OX...
........
........
........
`
	// VsSmallOpening is the 6×6 starting position.
	VsSmallOpening VsWho = `
......
......
..XO..
..OX..
......
......
`
	// VsLoneCorner gives Black exactly one legal move, the a1 corner.
	VsLoneCorner VsWho = `
.OX.....
........
........
........
........
........
........
........
`
	// VsFilled is a full board; Black has 40 discs and White 24.
	VsFilled VsWho = `
XXXXXXXX
XXXXXXXX
XXXXXXXX
XXXXXXXX
XXXXXXXX
OOOOOOOO
OOOOOOOO
OOOOOOOO
`
	// VsStuck has empty squares but no legal move for either side.
	VsStuck VsWho = `
XXXX....
........
........
........
........
........
........
........
`
	// VsSixEmpties is a late endgame with six empty squares, Black to move.
	VsSixEmpties VsWho = `
XOOOOOO.
OOOOOOOO
OOXXXOOO
OOX..XOO
OOXXXOOO
OOOOOOOO
OXXXXXXO
X..OOOO.
`
	// VsEightEmpties is a late endgame, Black to move, where the only
	// corner on offer is not the best move.
	VsEightEmpties VsWho = `
OOOOOOOO
.XXOXOOO
XXXXXXOO
.OOXOOOO
.XXOOOXO
..XOOXXX
.XOXXOO.
.OOOOOOX
`
	// VsMidgame is a 16-disc position with moves for both sides.
	VsMidgame VsWho = `
........
........
..XXXO..
..OXOO..
..XOXX..
...OXO..
....X...
........
`
)

// MustBoard parses a sample position and panics if it is malformed.
func MustBoard(v VsWho) *Board {
	b, err := FromDisplayText(string(v))
	if err != nil {
		panic(err)
	}
	return b
}
