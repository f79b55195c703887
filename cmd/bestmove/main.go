// bestmove prints the move the engine picks for one position.
//
//	bestmove [flags] <board-file|-> <black|white> [search|greedy]
//
// The board file holds one row per line, using . for empty squares and X
// and O for Black and White discs.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/domino14/reversi/automatic"
	"github.com/domino14/reversi/board"
	"github.com/domino14/reversi/config"
	"github.com/domino14/reversi/eval"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	cfg := &config.Config{}
	if err := cfg.Load(os.Args[1:]); err != nil {
		log.Fatal().Err(err).Msg("loading-config")
	}
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		log.Fatal().Err(err).Msg("bad-log-level")
	}
	zerolog.SetGlobalLevel(level)

	if len(cfg.Args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: bestmove [flags] <board-file|-> <black|white> [search|greedy]")
		os.Exit(2)
	}
	kind := automatic.SearchPlayer
	if len(cfg.Args) > 2 {
		kind = cfg.Args[2]
	}

	b, err := readBoard(cfg.Args[0])
	if err != nil {
		log.Fatal().Err(err).Msg("reading-board")
	}
	side, err := board.SideFromString(cfg.Args[1])
	if err != nil {
		log.Fatal().Err(err).Msg("parsing-side")
	}
	cfg.Dim = b.Dim()
	p, err := automatic.NewPlayer(cfg, kind, cfg.Selector.Seed)
	if err != nil {
		log.Fatal().Err(err).Msg("creating-player")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	m, err := p.BestMove(ctx, b, side)
	if err != nil {
		log.Fatal().Err(err).Msg("best-move")
	}
	if w, err := cfg.Weights(); err == nil {
		if h, err := eval.New(w, b.Dim()); err == nil {
			log.Debug().Str("phase", h.Phase(b).String()).
				Str("terms", h.Terms(b, side).String()).Msg("position")
		}
	}
	if m.IsPass() {
		fmt.Println("pass")
		return
	}
	fmt.Printf("%v %d %d %d\n", m.ShortDescription(), m.Row(), m.Col(), m.Valuation())
}

func readBoard(path string) (*board.Board, error) {
	var r io.Reader = os.Stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		r = f
	}
	text, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return board.FromDisplayText(string(text))
}
