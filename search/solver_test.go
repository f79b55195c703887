package search

import (
	"bytes"
	"context"
	"errors"
	"math"
	"os"
	"strings"
	"testing"

	"github.com/matryer/is"
	"github.com/rs/zerolog"

	"github.com/domino14/reversi/board"
	"github.com/domino14/reversi/eval"
)

// White has no move here; Black has four.
const whiteMustPass board.VsWho = `
XXO.....
XO......
........
........
........
........
......OO
.......O
`

func TestMain(m *testing.M) {
	zerolog.SetGlobalLevel(zerolog.Disabled)
	os.Exit(m.Run())
}

func newSolver(t *testing.T) (*Solver, int) {
	t.Helper()
	h, err := eval.NewDefault(8)
	if err != nil {
		t.Fatal(err)
	}
	return NewSolver(h), h.Weights().TerminalMultiplier
}

// bruteForce returns the final disc differential for side under perfect
// play by both sides.
func bruteForce(b *board.Board, side board.Cell) int {
	opp := side.Opponent()
	best := math.MinInt
	for r := 0; r < b.Dim(); r++ {
		for c := 0; c < b.Dim(); c++ {
			if b.IsLegal(r, c, side) {
				best = max(best, -bruteForce(b.Apply(r, c, side), opp))
			}
		}
	}
	if best != math.MinInt {
		return best
	}
	if b.HasLegalMove(opp) {
		return -bruteForce(b, opp)
	}
	return b.Spread(side)
}

func TestFilledBoard(t *testing.T) {
	is := is.New(t)
	s, mult := newSolver(t)
	b := board.MustBoard(board.VsFilled)
	v, err := s.Minimax(context.Background(), b, board.Black, 5, true, board.Black,
		-Infinity, Infinity)
	is.NoErr(err)
	is.Equal(v, 16*mult)
	is.Equal(s.Nodes(), uint64(0))

	v, err = s.Minimax(context.Background(), b, board.White, 5, true, board.White,
		-Infinity, Infinity)
	is.NoErr(err)
	is.Equal(v, -16*mult)
}

func TestDoublePassEndsSearch(t *testing.T) {
	is := is.New(t)
	s, mult := newSolver(t)
	v, err := s.Search(context.Background(), board.MustBoard(board.VsStuck), board.White, 6)
	is.NoErr(err)
	is.Equal(v, -4*mult)
	is.Equal(s.Nodes(), uint64(0))
}

func TestPassKeepsDepth(t *testing.T) {
	is := is.New(t)
	s, _ := newSolver(t)
	ctx := context.Background()
	b := board.MustBoard(whiteMustPass)
	passed, err := s.Minimax(ctx, b, board.White, 1, true, board.White, -Infinity, Infinity)
	is.NoErr(err)
	direct, err := s.Minimax(ctx, b, board.Black, 1, false, board.White, -Infinity, Infinity)
	is.NoErr(err)
	is.Equal(passed, direct)
	// Black's four replies were expanded, once per call
	is.Equal(s.Nodes(), uint64(8))
}

func TestExhaustiveMatchesBruteForce(t *testing.T) {
	is := is.New(t)
	s, mult := newSolver(t)
	for _, tc := range []struct {
		pos  board.VsWho
		side board.Cell
		want int
	}{
		{board.VsSixEmpties, board.Black, -28},
		{board.VsSixEmpties, board.White, 14},
		{board.VsEightEmpties, board.Black, -24},
	} {
		b := board.MustBoard(tc.pos)
		is.Equal(bruteForce(b, tc.side), tc.want)
		v, err := s.Search(context.Background(), b, tc.side, b.Empties())
		is.NoErr(err)
		is.Equal(v, tc.want*mult)
	}
}

func TestPruningMatchesMinimax(t *testing.T) {
	is := is.New(t)
	pruned, _ := newSolver(t)
	plain, _ := newSolver(t)
	plain.SetPruning(false)
	ctx := context.Background()

	for _, v := range []board.VsWho{board.VsOpening, board.VsMidgame, board.VsEightEmpties} {
		b := board.MustBoard(v)
		for _, side := range []board.Cell{board.Black, board.White} {
			for depth := 1; depth <= 3; depth++ {
				pruned.ResetNodes()
				plain.ResetNodes()
				pv, err := pruned.Minimax(ctx, b, side, depth, true, side, -Infinity, Infinity)
				is.NoErr(err)
				uv, err := plain.Minimax(ctx, b, side, depth, true, side, -Infinity, Infinity)
				is.NoErr(err)
				is.Equal(pv, uv)
				is.True(pruned.Nodes() <= plain.Nodes())
			}
		}
	}
}

func TestOrderingAndTableKeepValues(t *testing.T) {
	is := is.New(t)
	base, _ := newSolver(t)
	ordered, _ := newSolver(t)
	ordered.SetMoveOrdering(true)
	tabled, _ := newSolver(t)
	tabled.SetTranspositionTableOptim(true)
	tabled.SetTranspositionTableFraction(0)
	both, _ := newSolver(t)
	both.SetMoveOrdering(true)
	both.SetTranspositionTableOptim(true)
	both.SetTranspositionTableFraction(0)
	ctx := context.Background()

	for _, v := range []board.VsWho{board.VsMidgame, board.VsSixEmpties, board.VsEightEmpties} {
		b := board.MustBoard(v)
		for _, side := range []board.Cell{board.Black, board.White} {
			depth := min(4, b.Empties())
			want, err := base.Search(ctx, b, side, depth)
			is.NoErr(err)
			for _, s := range []*Solver{ordered, tabled, both} {
				// twice, so the second search runs against a warm table
				for i := 0; i < 2; i++ {
					got, err := s.Search(ctx, b, side, depth)
					is.NoErr(err)
					is.Equal(got, want)
				}
			}
		}
	}
	_, _, hits, _ := tabled.TranspositionTable().Stats()
	is.True(hits > 0)
}

func TestSearchLeavesBoardAlone(t *testing.T) {
	is := is.New(t)
	s, _ := newSolver(t)
	b := board.MustBoard(board.VsMidgame)
	_, err := s.Search(context.Background(), b, board.Black, 3)
	is.NoErr(err)
	is.True(b.Equals(board.MustBoard(board.VsMidgame)))
	is.NoErr(b.Validate())
}

func TestCanceledContext(t *testing.T) {
	is := is.New(t)
	s, _ := newSolver(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := s.Minimax(ctx, board.MustBoard(board.VsMidgame), board.Black, 3, true,
		board.Black, -Infinity, Infinity)
	is.True(errors.Is(err, context.Canceled))
}

func TestMinimaxRejects(t *testing.T) {
	is := is.New(t)
	s, _ := newSolver(t)
	ctx := context.Background()

	small := board.MustBoard(board.VsSmallOpening)
	_, err := s.Minimax(ctx, small, board.Black, 2, true, board.Black, -Infinity, Infinity)
	is.True(errors.Is(err, ErrDimensionMismatch))

	b := board.MustBoard(board.VsOpening)
	_, err = s.Minimax(ctx, b, board.Empty, 2, true, board.Black, -Infinity, Infinity)
	is.True(errors.Is(err, board.ErrBadSide))

	_, err = s.Minimax(ctx, b, board.Black, -1, true, board.Black, -Infinity, Infinity)
	is.True(errors.Is(err, ErrBadDepth))

	s.SetTranspositionTableOptim(true)
	s.SetTranspositionTableFraction(0)
	_, err = s.Minimax(ctx, b, board.Black, 2, false, board.Black, -Infinity, Infinity)
	is.True(errors.Is(err, ErrPerspective))
}

func TestLogStream(t *testing.T) {
	is := is.New(t)
	s, _ := newSolver(t)
	var buf bytes.Buffer
	s.SetLogStream(&buf)
	_, err := s.Search(context.Background(), board.MustBoard(board.VsOpening), board.Black, 2)
	is.NoErr(err)
	out := buf.String()
	is.True(strings.Contains(out, "- play: e3"))
	is.True(strings.Contains(out, "value: "))
}

func TestDepthPolicy(t *testing.T) {
	is := is.New(t)
	h, err := eval.NewDefault(8)
	is.NoErr(err)
	p := DefaultDepthPolicy()
	is.NoErr(p.Validate())

	depthFor := func(v board.VsWho) int {
		b := board.MustBoard(v)
		return p.DepthFor(b, h.Phase(b))
	}
	is.Equal(depthFor(board.VsOpening), 4)
	is.Equal(depthFor(board.VsMidgame), 5)
	is.Equal(depthFor(board.VsSixEmpties), 6)
	is.Equal(depthFor(board.VsEightEmpties), 8)
	is.Equal(depthFor(board.VsFilled), 1)

	p.MaxDepth = 3
	is.Equal(depthFor(board.VsEightEmpties), 3)

	p.OpeningDepth = 0
	is.True(errors.Is(p.Validate(), ErrBadDepth))
}

func TestTTableEntry(t *testing.T) {
	is := is.New(t)
	tt := &TranspositionTable{}
	tt.Reset(0, 8)
	is.Equal(tt.sizePowerOf2, minSizePowerOf2)

	key := uint64(9409641586937047728)
	tt.store(key, TableEntry{score: -12, depth: 23, flag: TTUpper})
	te := tt.lookup(key)
	is.True(te.valid())
	is.Equal(te.depth, uint16(23))
	is.Equal(te.flag, uint8(TTUpper))
	is.Equal(te.score, int32(-12))

	// same slot, different position
	te = tt.lookup(key + 1<<minSizePowerOf2)
	is.Equal(te, TableEntry{})
	is.Equal(tt.collisions.Load(), uint64(1))

	// an empty slot is not a collision
	te = tt.lookup(key + 1)
	is.Equal(te, TableEntry{})
	is.Equal(tt.lookups.Load(), uint64(3))
	is.Equal(tt.collisions.Load(), uint64(1))
	is.True(tt.Zobrist() != nil)
}
