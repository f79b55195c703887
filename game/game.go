// Package game keeps the state of an Othello game between two players:
// whose turn it is, the moves played so far, and when the game ends.
// It doesn't care how moves are chosen; players live in ai/player.
package game

import (
	"errors"
	"fmt"
	"strings"

	"github.com/cespare/xxhash"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/domino14/reversi/board"
	"github.com/domino14/reversi/move"
)

type PlayState int

const (
	PlayStatePlaying PlayState = iota
	PlayStateGameOver
)

func (p PlayState) String() string {
	if p == PlayStateGameOver {
		return "game-over"
	}
	return "playing"
}

var (
	ErrGameOver    = errors.New("game is over")
	ErrIllegalPass = errors.New("cannot pass with a legal move available")
	ErrNoHistory   = errors.New("no move to take back")
)

// Turn is one entry of the game history.
type Turn struct {
	Side board.Cell
	Move *move.Move
	// Black and White disc counts after the move.
	Black, White int
}

type backedupState struct {
	onturn  board.Cell
	playing PlayState
	passes  int
}

// Game is the state of a game. It is not safe for concurrent use.
type Game struct {
	uid     uuid.UUID
	board   *board.Board
	onturn  board.Cell
	turnnum int
	playing PlayState
	// passes counts consecutive passes; two in a row end the game.
	passes  int
	history []Turn

	stateStack []backedupState
}

// NewGame starts a game from the standard position, Black to move.
func NewGame(dim int) (*Game, error) {
	b, err := board.StandardBoard(dim)
	if err != nil {
		return nil, err
	}
	return NewFromPosition(b, board.Black)
}

// NewFromPosition starts a game from any valid position. The board is
// copied. If neither side can move the game starts over.
func NewFromPosition(b *board.Board, onturn board.Cell) (*Game, error) {
	if err := b.Validate(); err != nil {
		return nil, err
	}
	if !onturn.IsSide() {
		return nil, fmt.Errorf("%w: %v", board.ErrBadSide, onturn)
	}
	g := &Game{
		uid:    uuid.New(),
		board:  b.Copy(),
		onturn: onturn,
	}
	if g.board.IsTerminal() {
		g.playing = PlayStateGameOver
	}
	return g, nil
}

// String returns a helpful string representation of this state.
func (g *Game) String() string {
	return fmt.Sprintf("%v to move | turn=%v black=%v white=%v pl=%v",
		g.onturn, g.turnnum, g.board.Count(board.Black), g.board.Count(board.White),
		g.playing)
}

// ValidateMove checks that m may be played by the side on turn.
func (g *Game) ValidateMove(m *move.Move) error {
	if g.playing == PlayStateGameOver {
		return ErrGameOver
	}
	if m.IsPass() {
		if g.board.HasLegalMove(g.onturn) {
			return ErrIllegalPass
		}
		return nil
	}
	return g.board.ValidateMove(m.Row(), m.Col(), g.onturn)
}

// PlayMove validates and plays m for the side on turn, then hands the turn
// over. The game ends once the board is full or neither side can move.
func (g *Game) PlayMove(m *move.Move) error {
	if err := g.ValidateMove(m); err != nil {
		return err
	}
	g.stateStack = append(g.stateStack, backedupState{
		onturn:  g.onturn,
		playing: g.playing,
		passes:  g.passes,
	})
	side := g.onturn
	if m.IsPass() {
		g.passes++
	} else {
		g.board.PlayMove(m.Row(), m.Col(), side)
		g.passes = 0
	}
	g.history = append(g.history, Turn{
		Side:  side,
		Move:  m.Copy(),
		Black: g.board.Count(board.Black),
		White: g.board.Count(board.White),
	})
	g.turnnum++
	g.onturn = side.Opponent()

	if g.passes >= 2 || g.board.IsTerminal() {
		g.playing = PlayStateGameOver
		log.Debug().Str("uid", g.Uid()).Int("black", g.board.Count(board.Black)).
			Int("white", g.board.Count(board.White)).Msg("game-over")
	}
	return nil
}

// UnplayLastMove takes back the most recent move.
func (g *Game) UnplayLastMove() error {
	if len(g.history) == 0 {
		return ErrNoHistory
	}
	last := g.history[len(g.history)-1]
	g.history = g.history[:len(g.history)-1]
	if !last.Move.IsPass() {
		g.board.UnplayLastMove()
	}
	st := g.stateStack[len(g.stateStack)-1]
	g.stateStack = g.stateStack[:len(g.stateStack)-1]
	g.onturn = st.onturn
	g.playing = st.playing
	g.passes = st.passes
	g.turnnum--
	return nil
}

// Board returns the live board. Callers must not modify it.
func (g *Game) Board() *board.Board {
	return g.board
}

func (g *Game) Uid() string {
	return g.uid.String()
}

func (g *Game) Turn() int {
	return g.turnnum
}

func (g *Game) Playing() PlayState {
	return g.playing
}

func (g *Game) SideOnTurn() board.Cell {
	return g.onturn
}

func (g *Game) History() []Turn {
	return g.history
}

// SpreadFor returns side's disc count minus the opponent's.
func (g *Game) SpreadFor(side board.Cell) int {
	return g.board.Spread(side)
}

// Winner returns the side with more discs, or Empty for a draw. It only
// means something once the game is over.
func (g *Game) Winner() board.Cell {
	switch s := g.board.Spread(board.Black); {
	case s > 0:
		return board.Black
	case s < 0:
		return board.White
	}
	return board.Empty
}

// Transcript returns the moves played so far, space-separated.
func (g *Game) Transcript() string {
	parts := make([]string, len(g.history))
	for i, t := range g.history {
		parts[i] = t.Move.ShortDescription()
	}
	return strings.Join(parts, " ")
}

// Fingerprint hashes the transcript. Games with the same moves from the
// same start share a fingerprint.
func (g *Game) Fingerprint() uint64 {
	return xxhash.Sum64String(g.Transcript())
}
