// Package config loads run settings from defaults, an optional TOML file,
// LANDER_* environment variables and command-line flags, in rising precedence
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/lixenwraith/mars-lander/genetic"
	"github.com/lixenwraith/mars-lander/parameter"
)

// ErrInvalid reports a configuration that fails validation
var ErrInvalid = errors.New("invalid config")

// EnvPrefix namespaces environment overrides
const EnvPrefix = "LANDER"

// PopulationConfig holds genetic population settings
type PopulationConfig struct {
	Size            int     `mapstructure:"size"`
	ElitePercentage float64 `mapstructure:"elitePercentage"`
	MutationRate    float64 `mapstructure:"mutationRate"`
	MaxTurns        int     `mapstructure:"maxTurns"`
	Sampling        string  `mapstructure:"sampling"`
}

// SearchConfig holds loop settings
type SearchConfig struct {
	Seed        uint64        `mapstructure:"seed"`
	Parallelism int           `mapstructure:"parallelism"`
	Budget      time.Duration `mapstructure:"budget"`
}

// PhysicsConfig holds simulator settings
type PhysicsConfig struct {
	Gravity float64 `mapstructure:"gravity"`
}

// ViewerConfig holds terminal viewer settings
type ViewerConfig struct {
	FPS   int  `mapstructure:"fps"`
	Audio bool `mapstructure:"audio"`
}

// OutputConfig names the artifact files; empty disables each one
type OutputConfig struct {
	Replay  string `mapstructure:"replay"`
	History string `mapstructure:"history"`
	Plot    string `mapstructure:"plot"`
}

// Config is the validated run configuration
type Config struct {
	Population PopulationConfig `mapstructure:"population"`
	Search     SearchConfig     `mapstructure:"search"`
	Physics    PhysicsConfig    `mapstructure:"physics"`
	Viewer     ViewerConfig     `mapstructure:"viewer"`
	Output     OutputConfig     `mapstructure:"output"`
	LogLevel   string           `mapstructure:"logLevel"`
}

// flagKeys maps flag names to config keys
var flagKeys = map[string]string{
	"population":  "population.size",
	"elite":       "population.elitePercentage",
	"mutation":    "population.mutationRate",
	"turns":       "population.maxTurns",
	"sampling":    "population.sampling",
	"seed":        "search.seed",
	"parallelism": "search.parallelism",
	"budget":      "search.budget",
	"gravity":     "physics.gravity",
	"log-level":   "logLevel",
	"fps":         "viewer.fps",
	"audio":       "viewer.audio",
	"replay":      "output.replay",
	"history":     "output.history",
	"plot":        "output.plot",
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("population.size", parameter.GAPoolSize)
	v.SetDefault("population.elitePercentage", parameter.GAElitePercentage)
	v.SetDefault("population.mutationRate", parameter.GAMutationRate)
	v.SetDefault("population.maxTurns", parameter.GAMaxTurns)
	v.SetDefault("population.sampling", parameter.GASamplingIndependent)

	v.SetDefault("search.seed", 0)
	v.SetDefault("search.parallelism", parameter.GAParallelism)
	v.SetDefault("search.budget", parameter.SearchBudget)

	v.SetDefault("physics.gravity", parameter.MarsGravity)

	v.SetDefault("viewer.fps", parameter.ViewerFPS)
	v.SetDefault("viewer.audio", false)

	v.SetDefault("output.replay", "")
	v.SetDefault("output.history", "")
	v.SetDefault("output.plot", "")

	v.SetDefault("logLevel", "info")
}

// RegisterFlags adds the override flags to fs, with defaults matching the config defaults
func RegisterFlags(fs *pflag.FlagSet) {
	fs.Int("population", parameter.GAPoolSize, "candidates per generation")
	fs.Float64("elite", parameter.GAElitePercentage, "fraction of best candidates cloned each generation")
	fs.Float64("mutation", parameter.GAMutationRate, "per-gene resample probability")
	fs.Int("turns", parameter.GAMaxTurns, "genome length in turns")
	fs.String("sampling", parameter.GASamplingIndependent, "gene sampling: independent or walk")
	fs.Uint64("seed", 0, "random seed, 0 picks one")
	fs.Int("parallelism", parameter.GAParallelism, "concurrent candidate evaluations")
	fs.Duration("budget", parameter.SearchBudget, "search time budget")
	fs.Float64("gravity", parameter.MarsGravity, "gravity in m/s²")
	fs.String("log-level", "info", "log level")
	fs.Int("fps", parameter.ViewerFPS, "viewer frame rate")
	fs.Bool("audio", false, "chime on new best solution")
	fs.String("replay", "", "write best trajectory replay (TOML) to this path")
	fs.String("history", "", "write per-generation history (parquet) to this path")
	fs.String("plot", "", "write trajectory plot (PNG) to this path")
}

// Load builds a Config; path and flags are both optional
func Load(path string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	if flags != nil {
		for name, key := range flagKeys {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("bind flag %s: %w", name, err)
				}
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Default returns the validated defaults
func Default() *Config {
	cfg, err := Load("", nil)
	if err != nil {
		panic(err)
	}
	return cfg
}

// Validate checks ranges and enumerations
func (c *Config) Validate() error {
	var errs []error

	if err := c.Engine().Validate(); err != nil {
		errs = append(errs, err)
	}
	if c.Population.MaxTurns < 1 {
		errs = append(errs, fmt.Errorf("max turns %d: need at least 1", c.Population.MaxTurns))
	}
	switch c.Population.Sampling {
	case parameter.GASamplingIndependent, parameter.GASamplingWalk:
	default:
		errs = append(errs, fmt.Errorf("sampling %q: want %s or %s",
			c.Population.Sampling, parameter.GASamplingIndependent, parameter.GASamplingWalk))
	}
	if c.Search.Parallelism < 1 {
		errs = append(errs, fmt.Errorf("parallelism %d: need at least 1", c.Search.Parallelism))
	}
	if c.Search.Budget <= 0 {
		errs = append(errs, fmt.Errorf("budget %v: must be positive", c.Search.Budget))
	}
	if c.Physics.Gravity <= 0 {
		errs = append(errs, fmt.Errorf("gravity %v: must be positive", c.Physics.Gravity))
	}
	if c.Viewer.FPS < 1 {
		errs = append(errs, fmt.Errorf("fps %d: need at least 1", c.Viewer.FPS))
	}
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, fmt.Errorf("log level: %w", err))
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalid, errors.Join(errs...))
	}
	return nil
}

// Engine projects the population settings onto the genetic engine config
func (c *Config) Engine() genetic.EngineConfig {
	return genetic.EngineConfig{
		PoolSize:        c.Population.Size,
		ElitePercentage: c.Population.ElitePercentage,
		MutationRate:    c.Population.MutationRate,
		Parallelism:     c.Search.Parallelism,
		Seed:            c.Search.Seed,
	}
}

// Level returns the parsed zerolog level, info when unset
func (c *Config) Level() zerolog.Level {
	lvl, err := zerolog.ParseLevel(c.LogLevel)
	if err != nil || c.LogLevel == "" {
		return zerolog.InfoLevel
	}
	return lvl
}
