package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/domino14/reversi/board"
	"github.com/domino14/reversi/eval"
	"github.com/domino14/reversi/search"
)

const EnvPrefix = "REVERSI"

var ErrBadConfig = errors.New("invalid configuration")

type SearchConfig struct {
	search.DepthPolicy `mapstructure:",squash" yaml:",inline"`

	TTable         bool    `mapstructure:"ttable" yaml:"ttable"`
	TTableFraction float64 `mapstructure:"ttable-fraction" yaml:"ttable-fraction"`
	MoveOrdering   bool    `mapstructure:"move-ordering" yaml:"move-ordering"`
}

type SelectorConfig struct {
	CornerFirst    bool   `mapstructure:"corner-first" yaml:"corner-first"`
	CornerAdjacent string `mapstructure:"corner-adjacent" yaml:"corner-adjacent"`
	TopN           int    `mapstructure:"top-n" yaml:"top-n"`
	RandomMargin   int    `mapstructure:"random-margin" yaml:"random-margin"`
	Seed           uint64 `mapstructure:"seed" yaml:"seed"`
}

type AutoplayConfig struct {
	Games   int    `mapstructure:"games" yaml:"games"`
	Threads int    `mapstructure:"threads" yaml:"threads"`
	Output  string `mapstructure:"output" yaml:"output"`
	Player1 string `mapstructure:"player1" yaml:"player1"`
	Player2 string `mapstructure:"player2" yaml:"player2"`
}

type Config struct {
	LogLevel    string `mapstructure:"log-level" yaml:"log-level"`
	Dim         int    `mapstructure:"dim" yaml:"dim"`
	WeightsPath string `mapstructure:"weights-path" yaml:"weights-path"`

	Search   SearchConfig   `mapstructure:"search" yaml:"search"`
	Selector SelectorConfig `mapstructure:"selector" yaml:"selector"`
	Autoplay AutoplayConfig `mapstructure:"autoplay" yaml:"autoplay"`

	// Args holds the positional arguments left after flag parsing.
	Args []string `mapstructure:"-" yaml:"-"`
}

func DefaultConfig() Config {
	return Config{
		LogLevel: "info",
		Dim:      board.StandardDim,
		Search: SearchConfig{
			DepthPolicy:    search.DefaultDepthPolicy(),
			TTableFraction: search.DefaultTTFraction,
		},
		Selector: SelectorConfig{
			CornerFirst:    true,
			CornerAdjacent: "unless-owned",
			TopN:           1,
		},
		Autoplay: AutoplayConfig{
			Games:   100,
			Threads: 4,
			Output:  "/tmp/autoplay.txt",
			Player1: "search",
			Player2: "greedy",
		},
	}
}

func flagSet(d Config) *pflag.FlagSet {
	fs := pflag.NewFlagSet("reversi", pflag.ContinueOnError)
	fs.String("config", "", "optional YAML config file")
	fs.String("log-level", d.LogLevel, "log level: debug, info, warn, error")
	fs.Int("dim", d.Dim, "board dimension")
	fs.String("weights-path", d.WeightsPath, "YAML file with evaluator weights; empty for the defaults")

	fs.Int("search.opening-depth", d.Search.OpeningDepth, "plies searched in the opening")
	fs.Int("search.midgame-depth", d.Search.MidgameDepth, "plies searched after the opening")
	fs.Int("search.exhaustive-empties", d.Search.ExhaustiveEmpties, "search to the end of the game at or below this many empty squares")
	fs.Int("search.max-depth", d.Search.MaxDepth, "cap on any search depth")
	fs.Bool("search.ttable", d.Search.TTable, "use a transposition table")
	fs.Float64("search.ttable-fraction", d.Search.TTableFraction, "fraction of system memory for the transposition table")
	fs.Bool("search.move-ordering", d.Search.MoveOrdering, "search likely-good moves first")

	fs.Bool("selector.corner-first", d.Selector.CornerFirst, "take an available corner without searching")
	fs.String("selector.corner-adjacent", d.Selector.CornerAdjacent, "X/C-square veto: off, while-empty, unless-owned, absolute")
	fs.Int("selector.top-n", d.Selector.TopN, "pick at random among this many best moves")
	fs.Int("selector.random-margin", d.Selector.RandomMargin, "only randomize among moves this close to the best")
	fs.Uint64("selector.seed", d.Selector.Seed, "seed for the selector's random choices")

	fs.Int("autoplay.games", d.Autoplay.Games, "number of self-play games")
	fs.Int("autoplay.threads", d.Autoplay.Threads, "number of self-play workers")
	fs.String("autoplay.output", d.Autoplay.Output, "file for the self-play move log")
	fs.String("autoplay.player1", d.Autoplay.Player1, "first player: search or greedy")
	fs.String("autoplay.player2", d.Autoplay.Player2, "second player: search or greedy")
	return fs
}

// Load reads flags from args, then REVERSI_* environment variables, then an
// optional config file, falling back to the defaults. Nested keys map to
// environment variables with dots and dashes turned into underscores, so
// search.max-depth is REVERSI_SEARCH_MAX_DEPTH.
func (c *Config) Load(args []string) error {
	d := DefaultConfig()
	fs := flagSet(d)
	if err := fs.Parse(args); err != nil {
		return err
	}

	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	if err := v.BindPFlags(fs); err != nil {
		return err
	}
	if path := v.GetString("config"); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("reading config %v: %w", path, err)
		}
	}

	loaded := DefaultConfig()
	if err := v.Unmarshal(&loaded); err != nil {
		return err
	}
	loaded.Args = fs.Args()
	if err := loaded.Validate(); err != nil {
		return err
	}
	*c = loaded
	return nil
}

func (c *Config) Validate() error {
	if c.Dim < board.MinDim || c.Dim > board.MaxDim || c.Dim%2 != 0 {
		return fmt.Errorf("%w: dim %d", ErrBadConfig, c.Dim)
	}
	if err := c.Search.DepthPolicy.Validate(); err != nil {
		return err
	}
	if c.Search.TTableFraction < 0 || c.Search.TTableFraction > 0.5 {
		return fmt.Errorf("%w: ttable-fraction %v", ErrBadConfig, c.Search.TTableFraction)
	}
	if c.Autoplay.Games < 0 || c.Autoplay.Threads < 1 {
		return fmt.Errorf("%w: games %d, threads %d", ErrBadConfig,
			c.Autoplay.Games, c.Autoplay.Threads)
	}
	return nil
}

// Weights returns the evaluator weights for the configured dimension.
func (c *Config) Weights() (eval.Weights, error) {
	return eval.WeightsFromFile(c.WeightsPath, c.Dim)
}
