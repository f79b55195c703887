package move

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// MoveType is a type of move; a disc placement or a pass.
type MoveType uint8

const (
	MoveTypePlay MoveType = iota
	MoveTypePass
)

var ErrBadCoords = errors.New("unparseable coordinates")

// Move is a single turn. A play knows where it lands and how many discs it
// turns over; a pass knows nothing. The valuation is filled in by whoever
// searched the move.
type Move struct {
	action    MoveType
	row       int
	col       int
	flips     int
	valuation int
	// score is the number of discs the mover gains, including the placed one.
	score int
}

var reCoords *regexp.Regexp

func init() {
	reCoords = regexp.MustCompile(`^(?P<col>[a-zA-Z])(?P<row>[0-9]+)$`)
}

// NewPlayMove creates a placement at (row, col) that flips the given number
// of discs.
func NewPlayMove(row, col, flips int) *Move {
	return &Move{
		action: MoveTypePlay,
		row:    row,
		col:    col,
		flips:  flips,
		score:  flips + 1,
	}
}

// NewPassMove creates a pass. It is only legal when the mover has no
// placement available.
func NewPassMove() *Move {
	return &Move{action: MoveTypePass, row: -1, col: -1}
}

// String provides a string just for debugging purposes.
func (m *Move) String() string {
	switch m.action {
	case MoveTypePlay:
		return fmt.Sprintf("<%p action: play %v flips: %v valu: %v>",
			m, m.ShortDescription(), m.flips, m.valuation)
	case MoveTypePass:
		return fmt.Sprintf("<%p action: pass valu: %v>", m, m.valuation)
	}
	return "<Unhandled move>"
}

func (m *Move) MoveTypeString() string {
	switch m.action {
	case MoveTypePlay:
		return "Play"
	case MoveTypePass:
		return "Pass"
	}
	return "UNHANDLED"
}

// ShortDescription provides a short description, useful for logging or
// user display: "d3" for a placement, "pass" for a pass.
func (m *Move) ShortDescription() string {
	if m.action == MoveTypePass {
		return "pass"
	}
	return ToBoardGameCoords(m.row, m.col)
}

func (m *Move) Action() MoveType {
	return m.action
}

func (m *Move) IsPass() bool {
	return m.action == MoveTypePass
}

func (m *Move) Row() int { return m.row }
func (m *Move) Col() int { return m.col }

// Coords returns the (col, row) pair, in that order, for callers that speak
// x/y rather than row/column.
func (m *Move) Coords() (int, int) {
	return m.col, m.row
}

// Flips returns the number of opponent discs this move turns over.
func (m *Move) Flips() int {
	return m.flips
}

// Score is the change in the mover's disc count.
func (m *Move) Score() int {
	return m.score
}

// Valuation is the search value of this move from the searching player's
// point of view. It is calculated outside this package.
func (m *Move) Valuation() int {
	return m.valuation
}

func (m *Move) SetValuation(v int) {
	m.valuation = v
}

// Equals compares where the moves land; valuations are ignored.
func (m *Move) Equals(other *Move) bool {
	if m.action != other.action {
		return false
	}
	if m.action == MoveTypePass {
		return true
	}
	return m.row == other.row && m.col == other.col
}

// CopyFrom copies every field of other into m.
func (m *Move) CopyFrom(other *Move) {
	*m = *other
}

// Copy returns a new move with the same contents.
func (m *Move) Copy() *Move {
	c := *m
	return &c
}

// ToBoardGameCoords converts a row and column to a coordinate like d3: the
// column as a lowercase letter and the row counted from 1.
func ToBoardGameCoords(row, col int) string {
	return string(rune('a'+col)) + strconv.Itoa(row+1)
}

// FromBoardGameCoords does the inverse operation of ToBoardGameCoords above.
// Uppercase column letters are accepted.
func FromBoardGameCoords(c string) (int, int, error) {
	matches := reCoords.FindStringSubmatch(strings.TrimSpace(c))
	if len(matches) != 3 {
		return 0, 0, fmt.Errorf("%w: %q", ErrBadCoords, c)
	}
	row, err := strconv.Atoi(matches[2])
	if err != nil || row < 1 {
		return 0, 0, fmt.Errorf("%w: %q", ErrBadCoords, c)
	}
	col := int(strings.ToLower(matches[1])[0] - 'a')
	return row - 1, col, nil
}
