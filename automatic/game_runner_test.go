package automatic

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/matryer/is"
	"github.com/rs/zerolog"

	"github.com/domino14/reversi/board"
	"github.com/domino14/reversi/config"
	"github.com/domino14/reversi/game"
)

func TestMain(m *testing.M) {
	zerolog.SetGlobalLevel(zerolog.Disabled)
	os.Exit(m.Run())
}

// smallConfig plays quick games on a 6×6 board.
func smallConfig() config.Config {
	cfg := config.DefaultConfig()
	cfg.Dim = 6
	cfg.Search.OpeningDepth = 2
	cfg.Search.MidgameDepth = 2
	cfg.Search.ExhaustiveEmpties = 6
	return cfg
}

func TestNewPlayer(t *testing.T) {
	is := is.New(t)
	cfg := smallConfig()

	p, err := NewPlayer(&cfg, SearchPlayer, 1)
	is.NoErr(err)
	is.Equal(p.Name(), "search")
	p, err = NewPlayer(&cfg, GreedyPlayer, 1)
	is.NoErr(err)
	is.Equal(p.Name(), "greedy")

	_, err = NewPlayer(&cfg, "random", 1)
	is.True(errors.Is(err, ErrUnknownPlayer))

	cfg.WeightsPath = "/nonexistent/weights.yaml"
	_, err = NewPlayer(&cfg, SearchPlayer, 1)
	is.True(err != nil)

	_, err = NewGameRunner(nil, &cfg, 0)
	is.True(err != nil)
}

func TestPlayFull(t *testing.T) {
	is := is.New(t)
	cfg := smallConfig()
	logchan := make(chan string, 200)
	r, err := NewGameRunner(logchan, &cfg, 0)
	is.NoErr(err)

	for _, p1First := range []bool{true, false} {
		res, err := r.playFull(context.Background(), p1First)
		is.NoErr(err)
		g := r.Game()
		is.Equal(g.Playing(), game.PlayStateGameOver)
		is.True(g.Board().IsTerminal())
		is.Equal(res.Uid, g.Uid())
		is.Equal(res.Player1First, p1First)
		is.Equal(res.Turns, len(g.History()))
		is.Equal(res.Fingerprint, g.Fingerprint())
		p1Side := board.Black
		if !p1First {
			p1Side = board.White
		}
		is.Equal(res.Player1Spread, g.SpreadFor(p1Side))
		is.Equal(len(logchan), res.Turns)
		for len(logchan) > 0 {
			<-logchan
		}
	}
}

func TestSeatSwapWithIdenticalPlayers(t *testing.T) {
	is := is.New(t)
	cfg := smallConfig()
	cfg.Autoplay.Player2 = SearchPlayer
	r, err := NewGameRunner(nil, &cfg, 0)
	is.NoErr(err)
	r1, err := r.playFull(context.Background(), true)
	is.NoErr(err)
	// identical deterministic players play the same game from either seat
	r2, err := r.playFull(context.Background(), false)
	is.NoErr(err)
	is.Equal(r1.Fingerprint, r2.Fingerprint)
	is.Equal(r1.Player1Spread, -r2.Player1Spread)
}

func TestCanceledPlay(t *testing.T) {
	is := is.New(t)
	cfg := smallConfig()
	r, err := NewGameRunner(nil, &cfg, 0)
	is.NoErr(err)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = r.playFull(ctx, true)
	is.True(errors.Is(err, context.Canceled))
}
