// autoplay plays computer-vs-computer games and prints a summary.
package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"runtime/pprof"
	"syscall"

	"github.com/aybabtme/uniplot/histogram"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"

	"github.com/domino14/reversi/automatic"
	"github.com/domino14/reversi/config"
)

const histogramWidth = 50

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

	if profilePath := os.Getenv("REVERSI_PROFILE_PATH"); profilePath != "" {
		f, err := os.Create(profilePath)
		if err != nil {
			log.Fatal().Err(err).Msg("")
		}
		pprof.StartCPUProfile(f)
		defer pprof.StopCPUProfile()
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	log.Info().Str("player1", cfg.Autoplay.Player1).Str("player2", cfg.Autoplay.Player2).
		Int("games", cfg.Autoplay.Games).Int("threads", cfg.Autoplay.Threads).
		Str("output", cfg.Autoplay.Output).Msg("starting-autoplay")

	summary, err := automatic.StartCompVComp(ctx, cfg, cfg.Autoplay.Games,
		cfg.Autoplay.Threads, cfg.Autoplay.Output)
	if err != nil && !errors.Is(err, context.Canceled) {
		log.Fatal().Err(err).Msg("autoplay")
	}
	if err != nil {
		log.Info().Msg("got quit signal, summarizing finished games")
	}

	enc := yaml.NewEncoder(os.Stdout)
	if err := enc.Encode(summary); err != nil {
		log.Fatal().Err(err).Msg("encoding-summary")
	}
	enc.Close()

	if len(summary.Spreads) > 1 {
		h := histogram.Hist(15, summary.Spreads)
		if err := histogram.Fprint(os.Stdout, h, histogram.Linear(histogramWidth)); err != nil {
			log.Fatal().Err(err).Msg("printing-histogram")
		}
	}
}
