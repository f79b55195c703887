// Package automatic plays computer-vs-computer Othello games and collects
// statistics about them.
package automatic

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/domino14/reversi/ai/player"
	"github.com/domino14/reversi/board"
	"github.com/domino14/reversi/config"
	"github.com/domino14/reversi/eval"
	"github.com/domino14/reversi/game"
	"github.com/domino14/reversi/search"
)

const (
	SearchPlayer = "search"
	GreedyPlayer = "greedy"
)

var ErrUnknownPlayer = errors.New("unknown player kind")

// NewPlayer builds a player of the given kind from the configuration.
func NewPlayer(cfg *config.Config, kind string, seed uint64) (player.AIPlayer, error) {
	switch kind {
	case GreedyPlayer:
		return player.NewGreedyPlayer(cfg.Dim), nil
	case SearchPlayer:
		w, err := cfg.Weights()
		if err != nil {
			return nil, err
		}
		h, err := eval.New(w, cfg.Dim)
		if err != nil {
			return nil, err
		}
		solver := search.NewSolver(h)
		solver.SetMoveOrdering(cfg.Search.MoveOrdering)
		solver.SetTranspositionTableOptim(cfg.Search.TTable)
		solver.SetTranspositionTableFraction(cfg.Search.TTableFraction)
		return player.NewSearchPlayer(solver, player.Options{
			CornerFirst:    cfg.Selector.CornerFirst,
			CornerAdjacent: player.CornerAdjacentPolicy(cfg.Selector.CornerAdjacent),
			TopN:           cfg.Selector.TopN,
			RandomMargin:   cfg.Selector.RandomMargin,
			Seed:           seed,
			Depth:          cfg.Search.DepthPolicy,
		})
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownPlayer, kind)
}

// GameResult is the outcome of one finished game.
type GameResult struct {
	Uid           string
	Player1First  bool
	// Player1Spread is player 1's final disc count minus player 2's.
	Player1Spread int
	Turns         int
	Fingerprint   uint64
}

// GameRunner is the master struct here for the automatic game logic.
type GameRunner struct {
	game      *game.Game
	config    *config.Config
	logchan   chan string
	aiplayers [2]player.AIPlayer
	// first is the index of the player holding Black.
	first int
}

// NewGameRunner instantiates a runner with the two configured players.
// Their random seeds are offset by seedOffset, so that parallel runners
// do not play identical games.
func NewGameRunner(logchan chan string, cfg *config.Config, seedOffset uint64) (*GameRunner, error) {
	r := &GameRunner{logchan: logchan, config: cfg}
	if err := r.Init(cfg.Autoplay.Player1, cfg.Autoplay.Player2, seedOffset); err != nil {
		return nil, err
	}
	return r, nil
}

// Init initializes the runner's players.
func (r *GameRunner) Init(player1, player2 string, seedOffset uint64) error {
	for idx, kind := range []string{player1, player2} {
		seed := r.config.Selector.Seed + 2*seedOffset + uint64(idx)
		p, err := NewPlayer(r.config, kind, seed)
		if err != nil {
			return err
		}
		r.aiplayers[idx] = p
	}
	return nil
}

// StartGame sets up a new game. player1First gives Black to player 1.
func (r *GameRunner) StartGame(player1First bool) error {
	g, err := game.NewGame(r.config.Dim)
	if err != nil {
		return err
	}
	r.game = g
	r.first = 1
	if player1First {
		r.first = 0
	}
	return nil
}

func (r *GameRunner) playerOnTurn() int {
	if r.game.SideOnTurn() == board.Black {
		return r.first
	}
	return 1 - r.first
}

// PlayBestTurn asks the player on turn for a move and plays it.
func (r *GameRunner) PlayBestTurn(ctx context.Context) error {
	idx := r.playerOnTurn()
	side := r.game.SideOnTurn()
	best, err := r.aiplayers[idx].BestMove(ctx, r.game.Board(), side)
	if err != nil {
		return err
	}
	if err := r.game.PlayMove(best); err != nil {
		return err
	}
	if r.logchan != nil {
		b := r.game.Board()
		r.logchan <- fmt.Sprintf("%v,%v,%v,%v,%v,%v,%v,%v,%v\n",
			fmt.Sprintf("p%d", idx+1),
			r.game.Uid(),
			r.game.Turn(),
			side,
			best.ShortDescription(),
			best.Flips(),
			best.Valuation(),
			b.Count(board.Black),
			b.Count(board.White))
	}
	return nil
}

// playFull plays a new game to the end.
func (r *GameRunner) playFull(ctx context.Context, player1First bool) (GameResult, error) {
	if err := r.StartGame(player1First); err != nil {
		return GameResult{}, err
	}
	for r.game.Playing() == game.PlayStatePlaying {
		if err := ctx.Err(); err != nil {
			return GameResult{}, err
		}
		if err := r.PlayBestTurn(ctx); err != nil {
			return GameResult{}, err
		}
	}
	p1Side := board.Black
	if !player1First {
		p1Side = board.White
	}
	res := GameResult{
		Uid:           r.game.Uid(),
		Player1First:  player1First,
		Player1Spread: r.game.SpreadFor(p1Side),
		Turns:         r.game.Turn(),
		Fingerprint:   r.game.Fingerprint(),
	}
	log.Debug().Str("uid", res.Uid).Int("p1-spread", res.Player1Spread).
		Int("turns", res.Turns).Msg("game-finished")
	return res, nil
}

// Game returns the game most recently started.
func (r *GameRunner) Game() *game.Game {
	return r.game
}
