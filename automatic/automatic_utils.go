package automatic

// Data collection for automatic games. Computer vs computer games, etc.

import (
	"context"
	"errors"
	"expvar"
	"math"
	"os"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/stat"

	"github.com/domino14/reversi/config"
)

const LogHeader = "playerID,gameID,turn,side,play,flips,value,black,white\n"

var (
	CVCCounter *expvar.Int
	IsPlaying  *expvar.Int

	ErrAlreadyPlaying = errors.New("games are already being played, please wait till complete")
)

func init() {
	CVCCounter = expvar.NewInt("cvcCounter")
	IsPlaying = expvar.NewInt("isPlaying")
}

// Summary aggregates a batch of games from player 1's point of view.
type Summary struct {
	Player1       string  `yaml:"player1"`
	Player2       string  `yaml:"player2"`
	Games         int     `yaml:"games"`
	Player1Wins   int     `yaml:"player1-wins"`
	Player2Wins   int     `yaml:"player2-wins"`
	Draws         int     `yaml:"draws"`
	BlackWins     int     `yaml:"black-wins"`
	MeanSpread    float64 `yaml:"mean-spread"`
	StdDevSpread  float64 `yaml:"stddev-spread"`
	MeanTurns     float64 `yaml:"mean-turns"`
	DistinctGames int     `yaml:"distinct-games"`

	// Spreads holds player 1's spread for every game.
	Spreads []float64 `yaml:"-"`
}

// Summarize computes a Summary over finished games.
func Summarize(player1, player2 string, results []GameResult) *Summary {
	s := &Summary{
		Player1: player1,
		Player2: player2,
		Games:   len(results),
		Spreads: make([]float64, len(results)),
	}
	seen := map[uint64]bool{}
	turns := 0
	for i, res := range results {
		s.Spreads[i] = float64(res.Player1Spread)
		switch {
		case res.Player1Spread > 0:
			s.Player1Wins++
			if res.Player1First {
				s.BlackWins++
			}
		case res.Player1Spread < 0:
			s.Player2Wins++
			if !res.Player1First {
				s.BlackWins++
			}
		default:
			s.Draws++
		}
		seen[res.Fingerprint] = true
		turns += res.Turns
	}
	s.DistinctGames = len(seen)
	if len(results) > 0 {
		s.MeanTurns = float64(turns) / float64(len(results))
		s.MeanSpread, s.StdDevSpread = stat.MeanStdDev(s.Spreads, nil)
		if len(results) < 2 || math.IsNaN(s.StdDevSpread) {
			s.StdDevSpread = 0
		}
	}
	return s
}

// StartCompVComp plays numGames games between the two configured players
// on threads workers, alternating who plays Black. Every move is written
// to outputFilename as a CSV line. It blocks until all games are done or
// ctx is canceled, and returns a summary of the games that finished.
func StartCompVComp(ctx context.Context, cfg *config.Config, numGames int, threads int,
	outputFilename string) (*Summary, error) {

	if IsPlaying.Value() > 0 {
		return nil, ErrAlreadyPlaying
	}
	logfile, err := os.Create(outputFilename)
	if err != nil {
		return nil, err
	}
	log.Debug().Msgf("Starting %v games, %v threads", numGames, threads)

	CVCCounter.Set(0)
	jobs := make(chan int, 100)
	logChan := make(chan string, 100)
	resultChan := make(chan GameResult, 100)

	g, gctx := errgroup.WithContext(ctx)
	for i := 0; i < threads; i++ {
		i := i
		g.Go(func() error {
			r, err := NewGameRunner(logChan, cfg, uint64(i))
			if err != nil {
				return err
			}
			IsPlaying.Add(1)
			defer IsPlaying.Add(-1)
			for j := range jobs {
				res, err := r.playFull(gctx, j%2 == 0)
				if err != nil {
					return err
				}
				resultChan <- res
				CVCCounter.Add(1)
			}
			return nil
		})
	}

	go func() {
	gameLoop:
		for i := 0; i < numGames; i++ {
			select {
			case jobs <- i:
			case <-gctx.Done():
				log.Info().Msg("Got stop signal, exiting soon...")
				break gameLoop
			}
			if (i+1)%1000 == 0 {
				log.Info().Int("queued", i+1).Msg("queued-jobs")
			}
		}
		close(jobs)
		log.Debug().Msg("Finished queueing all jobs.")
	}()

	loggerDone := make(chan error)
	go func() {
		_, werr := logfile.WriteString(LogHeader)
		for msg := range logChan {
			if werr == nil {
				_, werr = logfile.WriteString(msg)
			}
		}
		if cerr := logfile.Close(); werr == nil {
			werr = cerr
		}
		loggerDone <- werr
	}()

	var results []GameResult
	collectorDone := make(chan struct{})
	go func() {
		for res := range resultChan {
			results = append(results, res)
		}
		close(collectorDone)
	}()

	err = g.Wait()
	close(logChan)
	close(resultChan)
	<-collectorDone
	werr := <-loggerDone
	log.Info().Int("games", len(results)).Msg("All games finished.")

	summary := Summarize(cfg.Autoplay.Player1, cfg.Autoplay.Player2, results)
	if err == nil {
		err = werr
	}
	if err == nil {
		err = ctx.Err()
	}
	return summary, err
}
