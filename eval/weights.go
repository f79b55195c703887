package eval

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"

	"github.com/domino14/reversi/board"
)

// MaxScore bounds every value Evaluate can return, terminal or not.
const MaxScore = math.MaxInt32 - 1

var (
	ErrWeakTerminal   = errors.New("terminal multiplier does not dominate the heuristic")
	ErrScoreOverflow  = errors.New("terminal multiplier overflows the score range")
	ErrBadTable       = errors.New("square table does not match the board dimension")
	ErrBadThresholds  = errors.New("phase thresholds out of order")
	ErrNegativeWeight = errors.New("weight must not be negative")
)

// SquareWeights are the positional values of each kind of square. They
// generate the square table for any board size.
type SquareWeights struct {
	Corner    int `yaml:"corner"`
	XSquare   int `yaml:"x-square"`
	CSquare   int `yaml:"c-square"`
	ASquare   int `yaml:"a-square"`
	Edge      int `yaml:"edge"`
	InnerRing int `yaml:"inner-ring"`
	Interior  int `yaml:"interior"`
	// Settled replaces the X- and C-square values once the neighbouring
	// corner is occupied by either side.
	Settled int `yaml:"settled"`
}

// PhaseWeights holds one multiplier per game phase.
type PhaseWeights struct {
	Opening int `yaml:"opening"`
	Midgame int `yaml:"midgame"`
	Endgame int `yaml:"endgame"`
}

func (p PhaseWeights) For(ph Phase) int {
	switch ph {
	case PhaseOpening:
		return p.Opening
	case PhaseEndgame:
		return p.Endgame
	}
	return p.Midgame
}

func (p PhaseWeights) max() int {
	return max(abs(p.Opening), abs(p.Midgame), abs(p.Endgame))
}

// Weights is everything the heuristic evaluator can be tuned with.
type Weights struct {
	Squares SquareWeights `yaml:"squares"`
	// Table, if set, replaces the table generated from Squares. It is
	// row-major, one row per board row.
	Table [][]int `yaml:"table,omitempty"`

	Mobility      PhaseWeights `yaml:"mobility"`
	Discs         PhaseWeights `yaml:"discs"`
	NoMovePenalty int          `yaml:"no-move-penalty"`
	Stability     int          `yaml:"stability"`
	Frontier      int          `yaml:"frontier"`

	// TerminalMultiplier scales the final disc differential of a finished
	// game. It has to exceed HeuristicBound so that any won game outranks
	// any unfinished position.
	TerminalMultiplier int `yaml:"terminal-multiplier"`

	// The game is in the opening while more than OpeningEmpties squares
	// are empty, and in the endgame once at most EndgameEmpties are.
	OpeningEmpties int `yaml:"opening-empties"`
	EndgameEmpties int `yaml:"endgame-empties"`
}

// DefaultWeights returns hand-tuned weights for a dim×dim board.
func DefaultWeights(dim int) Weights {
	area := dim * dim
	return Weights{
		Squares: SquareWeights{
			Corner:    100,
			XSquare:   -50,
			CSquare:   -20,
			ASquare:   10,
			Edge:      5,
			InnerRing: -2,
			Interior:  -1,
			Settled:   5,
		},
		Mobility:           PhaseWeights{Opening: 5, Midgame: 8, Endgame: 3},
		Discs:              PhaseWeights{Opening: 0, Midgame: 1, Endgame: 5},
		NoMovePenalty:      50,
		Stability:          20,
		Frontier:           3,
		TerminalMultiplier: 1_000_000,
		OpeningEmpties:     area - area/4,
		EndgameEmpties:     area * 3 / 16,
	}
}

// HeuristicBound is an upper bound on the absolute value of the
// non-terminal evaluation on a dim×dim board.
func (w Weights) HeuristicBound(dim int) int {
	area := dim * dim
	positional := 0
	for _, v := range w.squareTable(dim) {
		positional += max(abs(v), abs(w.Squares.Settled))
	}
	return positional +
		w.Mobility.max()*area + abs(w.NoMovePenalty) +
		abs(w.Stability)*area +
		abs(w.Frontier)*area +
		w.Discs.max()*area
}

// Validate checks the weights against a board dimension.
func (w Weights) Validate(dim int) error {
	if dim < board.MinDim || dim > board.MaxDim {
		return fmt.Errorf("%w: %d", board.ErrBadDimension, dim)
	}
	if w.Table != nil {
		if len(w.Table) != dim {
			return fmt.Errorf("%w: %d rows for dimension %d", ErrBadTable, len(w.Table), dim)
		}
		for r, row := range w.Table {
			if len(row) != dim {
				return fmt.Errorf("%w: row %d has %d values", ErrBadTable, r, len(row))
			}
		}
	}
	if w.OpeningEmpties < 0 || w.EndgameEmpties < 0 || w.EndgameEmpties > w.OpeningEmpties {
		return fmt.Errorf("%w: opening-empties %d, endgame-empties %d",
			ErrBadThresholds, w.OpeningEmpties, w.EndgameEmpties)
	}
	if w.NoMovePenalty < 0 || w.Stability < 0 || w.Frontier < 0 {
		return fmt.Errorf("%w: no-move-penalty %d, stability %d, frontier %d",
			ErrNegativeWeight, w.NoMovePenalty, w.Stability, w.Frontier)
	}
	bound := w.HeuristicBound(dim)
	if w.TerminalMultiplier <= bound {
		return fmt.Errorf("%w: multiplier %d, heuristic bound %d",
			ErrWeakTerminal, w.TerminalMultiplier, bound)
	}
	if w.TerminalMultiplier > MaxScore/(dim*dim) {
		return fmt.Errorf("%w: multiplier %d on a %d×%d board",
			ErrScoreOverflow, w.TerminalMultiplier, dim, dim)
	}
	return nil
}

// squareTable returns the row-major static table: the explicit Table when
// present, otherwise one generated from the square kinds.
func (w Weights) squareTable(dim int) []int {
	t := make([]int, dim*dim)
	if w.Table != nil {
		for r := 0; r < dim; r++ {
			copy(t[r*dim:(r+1)*dim], w.Table[r])
		}
		return t
	}
	// The kinds don't depend on the position, so any board of this size
	// will do.
	b, err := board.NewBoard(dim)
	if err != nil {
		return t
	}
	for r := 0; r < dim; r++ {
		for c := 0; c < dim; c++ {
			t[r*dim+c] = w.Squares.forKind(b.Kind(r, c))
		}
	}
	return t
}

func (s SquareWeights) forKind(k board.SquareKind) int {
	switch k {
	case board.KindCorner:
		return s.Corner
	case board.KindXSquare:
		return s.XSquare
	case board.KindCSquare:
		return s.CSquare
	case board.KindASquare:
		return s.ASquare
	case board.KindEdge:
		return s.Edge
	case board.KindInnerRing:
		return s.InnerRing
	}
	return s.Interior
}

// LoadWeights reads YAML weights on top of DefaultWeights(dim), so a file
// only needs the values it changes. The result is validated.
func LoadWeights(r io.Reader, dim int) (Weights, error) {
	w := DefaultWeights(dim)
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&w); err != nil && !errors.Is(err, io.EOF) {
		return Weights{}, fmt.Errorf("decoding weights: %w", err)
	}
	if err := w.Validate(dim); err != nil {
		return Weights{}, err
	}
	return w, nil
}

// WeightsFromFile loads weights from a YAML file. An empty path returns
// the defaults.
func WeightsFromFile(path string, dim int) (Weights, error) {
	if path == "" {
		return DefaultWeights(dim), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return Weights{}, err
	}
	defer f.Close()
	w, err := LoadWeights(f, dim)
	if err != nil {
		return Weights{}, fmt.Errorf("%s: %w", path, err)
	}
	log.Debug().Str("path", path).Int("dim", dim).Msg("loaded-weights")
	return w, nil
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
