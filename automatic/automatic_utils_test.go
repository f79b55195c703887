package automatic

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matryer/is"
	"github.com/stretchr/testify/assert"
)

func TestSummarize(t *testing.T) {
	s := Summarize("a", "b", []GameResult{
		{Player1First: true, Player1Spread: 4, Turns: 30, Fingerprint: 1},
		{Player1First: false, Player1Spread: -2, Turns: 32, Fingerprint: 2},
		{Player1First: true, Player1Spread: 0, Turns: 30, Fingerprint: 1},
		{Player1First: false, Player1Spread: 6, Turns: 28, Fingerprint: 3},
	})
	assert.Equal(t, 4, s.Games)
	assert.Equal(t, 2, s.Player1Wins)
	assert.Equal(t, 1, s.Player2Wins)
	assert.Equal(t, 1, s.Draws)
	assert.Equal(t, 2, s.BlackWins)
	assert.Equal(t, 3, s.DistinctGames)
	assert.InDelta(t, 2.0, s.MeanSpread, 1e-9)
	assert.InDelta(t, 3.6515, s.StdDevSpread, 1e-4)
	assert.InDelta(t, 30.0, s.MeanTurns, 1e-9)

	one := Summarize("a", "b", []GameResult{{Player1Spread: 8}})
	assert.Equal(t, 8.0, one.MeanSpread)
	assert.Equal(t, 0.0, one.StdDevSpread)

	none := Summarize("a", "b", nil)
	assert.Equal(t, 0, none.Games)
	assert.Equal(t, 0.0, none.MeanSpread)
}

func TestCompVComp(t *testing.T) {
	is := is.New(t)
	cfg := smallConfig()
	out := filepath.Join(t.TempDir(), "games.txt")

	s, err := StartCompVComp(context.Background(), &cfg, 6, 2, out)
	is.NoErr(err)
	is.Equal(s.Games, 6)
	is.Equal(s.Player1, "search")
	is.Equal(s.Player2, "greedy")
	is.Equal(s.Player1Wins+s.Player2Wins+s.Draws, 6)
	is.Equal(len(s.Spreads), 6)
	// both players are deterministic, so only the seating varies
	is.True(s.DistinctGames >= 1 && s.DistinctGames <= 2)
	is.Equal(CVCCounter.Value(), int64(6))
	is.Equal(IsPlaying.Value(), int64(0))

	contents, err := os.ReadFile(out)
	is.NoErr(err)
	is.True(strings.HasPrefix(string(contents), LogHeader))

	fromLog, err := AnalyzeLogFile(out)
	is.NoErr(err)
	is.Equal(fromLog.Games, s.Games)
	is.Equal(fromLog.Player1Wins, s.Player1Wins)
	is.Equal(fromLog.Draws, s.Draws)
	is.Equal(fromLog.BlackWins, s.BlackWins)
	is.Equal(fromLog.DistinctGames, s.DistinctGames)
	assert.ElementsMatch(t, s.Spreads, fromLog.Spreads)
	assert.InDelta(t, s.MeanSpread, fromLog.MeanSpread, 1e-9)
	assert.InDelta(t, s.MeanTurns, fromLog.MeanTurns, 1e-9)
}

func TestCompVCompCanceled(t *testing.T) {
	is := is.New(t)
	cfg := smallConfig()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	s, err := StartCompVComp(ctx, &cfg, 10, 2, filepath.Join(t.TempDir(), "games.txt"))
	is.True(errors.Is(err, context.Canceled))
	is.Equal(s.Games, 0)
}

func TestAnalyzeMissingFile(t *testing.T) {
	_, err := AnalyzeLogFile(filepath.Join(t.TempDir(), "nope.txt"))
	assert.Error(t, err)
}
