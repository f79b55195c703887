package board

import (
	"fmt"
	"strings"
)

// ToDisplayText renders the board with column letters and 1-based row
// numbers, in the same notation move descriptions use.
func (b *Board) ToDisplayText() string {
	var sb strings.Builder
	n := b.dim
	sb.WriteString("   ")
	for i := 0; i < n; i++ {
		sb.WriteString(fmt.Sprintf("%c ", 'a'+i))
	}
	sb.WriteString("\n")
	sb.WriteString("   " + strings.Repeat("-", n*2) + "\n")
	for r := 0; r < n; r++ {
		sb.WriteString(fmt.Sprintf("%2d|", r+1))
		for c := 0; c < n; c++ {
			sb.WriteString(b.At(r, c).DisplayString())
			sb.WriteString(" ")
		}
		sb.WriteString("|\n")
	}
	sb.WriteString("   " + strings.Repeat("-", n*2) + "\n")
	return "\n" + sb.String()
}

func (b *Board) String() string {
	var sb strings.Builder
	for r := 0; r < b.dim; r++ {
		for c := 0; c < b.dim; c++ {
			sb.WriteString(b.At(r, c).DisplayString())
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

func cellFromRune(ch rune) (Cell, bool) {
	switch ch {
	case '.', '_', '0':
		return Empty, true
	case 'X', 'x', 'B', 'b', '1', '*':
		return Black, true
	case 'O', 'o', 'W', 'w', '2':
		return White, true
	}
	return Empty, false
}

// FromDisplayText parses a board written one row per line. Squares are
// '.' for empty, 'X'/'B' for black and 'O'/'W' for white; spaces are
// ignored. The output of ToDisplayText is accepted as well: the column
// header, the dashed rules, row numbers and '|' borders are skipped.
func FromDisplayText(text string) (*Board, error) {
	var rows [][]int
	for lineNo, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.Trim(line, "-") == "" {
			continue
		}
		if i := strings.Index(line, "|"); i >= 0 {
			line = strings.TrimSuffix(line[i+1:], "|")
		} else if isColumnHeader(line) {
			continue
		}
		var row []int
		for _, ch := range line {
			if ch == ' ' || ch == '\t' {
				continue
			}
			c, ok := cellFromRune(ch)
			if !ok {
				return nil, fmt.Errorf("%w: line %d has unknown square %q",
					ErrBadCell, lineNo+1, ch)
			}
			row = append(row, int(c))
		}
		rows = append(rows, row)
	}
	return FromRows(rows)
}

func isColumnHeader(line string) bool {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return false
	}
	for i, f := range fields {
		if len(f) != 1 || f[0] != byte('a'+i) {
			return false
		}
	}
	return true
}
