package game

import (
	"errors"
	"os"
	"testing"

	"github.com/matryer/is"
	"github.com/rs/zerolog"

	"github.com/domino14/reversi/board"
	"github.com/domino14/reversi/move"
	"github.com/domino14/reversi/movegen"
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

func TestNewGame(t *testing.T) {
	is := is.New(t)
	g, err := NewGame(8)
	is.NoErr(err)
	is.Equal(g.Playing(), PlayStatePlaying)
	is.Equal(g.SideOnTurn(), board.Black)
	is.True(g.Board().Equals(board.MustBoard(board.VsOpening)))
	is.Equal(g.Turn(), 0)
	is.True(g.Uid() != "")

	_, err = NewGame(5)
	is.True(errors.Is(err, board.ErrBadDimension))
}

func TestPlayAndUnplay(t *testing.T) {
	is := is.New(t)
	g, err := NewGame(8)
	is.NoErr(err)

	is.True(errors.Is(g.PlayMove(move.NewPassMove()), ErrIllegalPass))
	is.True(errors.Is(g.PlayMove(move.NewPlayMove(0, 0, 1)), board.ErrIllegalMove))
	is.Equal(g.Turn(), 0)

	is.NoErr(g.PlayMove(move.NewPlayMove(2, 4, 1)))
	is.Equal(g.SideOnTurn(), board.White)
	is.Equal(g.Turn(), 1)
	is.Equal(g.History()[0], Turn{Side: board.Black, Move: g.History()[0].Move, Black: 4, White: 1})
	is.Equal(g.SpreadFor(board.Black), 3)
	is.Equal(g.Transcript(), "e3")

	is.NoErr(g.UnplayLastMove())
	is.True(g.Board().Equals(board.MustBoard(board.VsOpening)))
	is.Equal(g.SideOnTurn(), board.Black)
	is.Equal(g.Turn(), 0)
	is.Equal(g.Transcript(), "")
	is.True(errors.Is(g.UnplayLastMove(), ErrNoHistory))
}

func TestForcedPass(t *testing.T) {
	is := is.New(t)
	g, err := NewFromPosition(board.MustBoard(whiteMustPass), board.White)
	is.NoErr(err)
	is.True(errors.Is(g.PlayMove(move.NewPlayMove(0, 3, 1)), board.ErrIllegalMove))

	is.NoErr(g.PlayMove(move.NewPassMove()))
	is.Equal(g.Playing(), PlayStatePlaying)
	is.Equal(g.SideOnTurn(), board.Black)
	is.Equal(g.passes, 1)

	plays := movegen.NewGenerator().GenAll(g.Board(), board.Black)
	is.Equal(len(plays), 4)
	is.NoErr(g.PlayMove(plays[0]))
	is.Equal(g.passes, 0)
	is.Equal(g.Transcript(), "pass "+plays[0].ShortDescription())

	is.NoErr(g.UnplayLastMove())
	is.NoErr(g.UnplayLastMove())
	is.Equal(g.SideOnTurn(), board.White)
	is.Equal(g.passes, 0)
	is.True(g.Board().Equals(board.MustBoard(whiteMustPass)))
}

func TestGameOver(t *testing.T) {
	is := is.New(t)
	g, err := NewFromPosition(board.MustBoard(board.VsStuck), board.Black)
	is.NoErr(err)
	is.Equal(g.Playing(), PlayStateGameOver)
	is.True(errors.Is(g.PlayMove(move.NewPassMove()), ErrGameOver))
	is.Equal(g.Winner(), board.Black)

	// taking the last corner wipes White out
	g, err = NewFromPosition(board.MustBoard(board.VsLoneCorner), board.Black)
	is.NoErr(err)
	is.NoErr(g.PlayMove(move.NewPlayMove(0, 0, 1)))
	is.Equal(g.Playing(), PlayStateGameOver)
	is.Equal(g.SpreadFor(board.Black), 3)
	is.Equal(g.Winner(), board.Black)

	g, err = NewFromPosition(board.MustBoard(board.VsFilled), board.White)
	is.NoErr(err)
	is.Equal(g.Playing(), PlayStateGameOver)

	_, err = NewFromPosition(board.MustBoard(board.VsOpening), board.Empty)
	is.True(errors.Is(err, board.ErrBadSide))
}

func playOut(t *testing.T, dim int) *Game {
	t.Helper()
	g, err := NewGame(dim)
	if err != nil {
		t.Fatal(err)
	}
	gen := movegen.NewGenerator()
	for g.Playing() == PlayStatePlaying {
		plays := gen.GenAll(g.Board(), g.SideOnTurn())
		m := move.NewPassMove()
		if len(plays) > 0 {
			m = plays[len(plays)-1]
		}
		if err := g.PlayMove(m); err != nil {
			t.Fatal(err)
		}
	}
	return g
}

func TestPlayToTheEnd(t *testing.T) {
	is := is.New(t)
	g1 := playOut(t, 6)
	g2 := playOut(t, 6)
	is.True(g1.Board().IsTerminal())
	is.Equal(g1.Turn(), len(g1.History()))
	is.True(g1.Uid() != g2.Uid())
	is.Equal(g1.Transcript(), g2.Transcript())
	is.Equal(g1.Fingerprint(), g2.Fingerprint())

	last := g1.History()[len(g1.History())-1]
	is.Equal(last.Black, g1.Board().Count(board.Black))
	is.Equal(last.White, g1.Board().Count(board.White))

	// unwinding the whole game gets back to the start
	for len(g1.History()) > 0 {
		is.NoErr(g1.UnplayLastMove())
	}
	is.True(g1.Board().Equals(board.MustBoard(board.VsSmallOpening)))
	is.Equal(g1.Playing(), PlayStatePlaying)
	is.True(g1.Fingerprint() != g2.Fingerprint())
}
