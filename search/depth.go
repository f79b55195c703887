package search

import (
	"errors"
	"fmt"

	"github.com/domino14/reversi/board"
	"github.com/domino14/reversi/eval"
)

var ErrBadDepth = errors.New("search depth must be positive")

// DepthPolicy picks how many plies to search from a position.
type DepthPolicy struct {
	OpeningDepth int `mapstructure:"opening-depth" yaml:"opening-depth"`
	// MidgameDepth is also used in the endgame phase until the position is
	// small enough to search to the end.
	MidgameDepth int `mapstructure:"midgame-depth" yaml:"midgame-depth"`
	// Once at most ExhaustiveEmpties squares are empty the search runs to
	// the end of the game.
	ExhaustiveEmpties int `mapstructure:"exhaustive-empties" yaml:"exhaustive-empties"`
	// MaxDepth caps every other setting.
	MaxDepth int `mapstructure:"max-depth" yaml:"max-depth"`
}

func DefaultDepthPolicy() DepthPolicy {
	return DepthPolicy{
		OpeningDepth:      4,
		MidgameDepth:      5,
		ExhaustiveEmpties: 10,
		MaxDepth:          16,
	}
}

func (p DepthPolicy) Validate() error {
	if p.OpeningDepth < 1 || p.MidgameDepth < 1 || p.MaxDepth < 1 {
		return fmt.Errorf("%w: opening %d, midgame %d, max %d", ErrBadDepth,
			p.OpeningDepth, p.MidgameDepth, p.MaxDepth)
	}
	if p.ExhaustiveEmpties < 0 {
		return fmt.Errorf("%w: exhaustive-empties %d", ErrBadDepth, p.ExhaustiveEmpties)
	}
	return nil
}

// DepthFor returns the search depth for b in the given phase. It is never
// less than 1.
func (p DepthPolicy) DepthFor(b *board.Board, phase eval.Phase) int {
	var d int
	switch {
	case b.Empties() <= p.ExhaustiveEmpties:
		d = b.Empties()
	case phase == eval.PhaseOpening:
		d = p.OpeningDepth
	default:
		d = p.MidgameDepth
	}
	if p.MaxDepth > 0 && d > p.MaxDepth {
		d = p.MaxDepth
	}
	return max(d, 1)
}
