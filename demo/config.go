package demo

import (
	"os"
	"strconv"
	"strings"

	"github.com/benz9527/xrbtree/lib/infra"
	"github.com/benz9527/xrbtree/observability"
)

const (
	envInserts  = "RBDEMO_INSERTS"
	envSearches = "RBDEMO_SEARCHES"
	envDeletes  = "RBDEMO_DELETES"
	envMaxValue = "RBDEMO_MAX_VALUE"
	envRounds   = "RBDEMO_ROUNDS"
	envWorkers  = "RBDEMO_WORKERS"
	envSeed     = "RBDEMO_SEED"
	envMetrics  = "RBDEMO_METRICS"
	envNoColor  = "RBDEMO_NO_COLOR"
)

// Config of the demonstration rounds. Every round inserts Inserts
// random values in [0, MaxValue), then runs Searches lookups and
// Deletes search-then-delete attempts.
type Config struct {
	Inserts  int
	Searches int
	Deletes  int
	MaxValue int
	Rounds   int
	Workers  int
	// Seed 0 means a random seed for every run.
	Seed    uint64
	Metrics observability.MetricsExporterType
	NoColor bool
}

func defaultConfig() *Config {
	return &Config{
		Inserts:  10,
		Searches: 1,
		Deletes:  1,
		MaxValue: 100,
		Rounds:   1,
		Workers:  1,
		Metrics:  observability.NoneExporter,
	}
}

func (cfg *Config) validate() error {
	switch {
	case cfg.Inserts < 0:
		return infra.NewErrorStack("[demo] negative inserts")
	case cfg.Searches < 0:
		return infra.NewErrorStack("[demo] negative searches")
	case cfg.Deletes < 0:
		return infra.NewErrorStack("[demo] negative deletes")
	case cfg.MaxValue <= 0:
		return infra.NewErrorStack("[demo] max value must be positive")
	case cfg.Rounds <= 0:
		return infra.NewErrorStack("[demo] rounds must be positive")
	case cfg.Workers <= 0:
		return infra.NewErrorStack("[demo] workers must be positive")
	}
	return nil
}

type Option func(cfg *Config) error

// NewConfig applies the options in order on top of the defaults, so
// the options after WithEnv override the environment.
func NewConfig(opts ...Option) (*Config, error) {
	cfg := defaultConfig()
	for _, o := range opts {
		if o == nil {
			continue
		}
		if err := o(cfg); err != nil {
			return nil, err
		}
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func WithInserts(n int) Option {
	return func(cfg *Config) error {
		cfg.Inserts = n
		return nil
	}
}

func WithSearches(n int) Option {
	return func(cfg *Config) error {
		cfg.Searches = n
		return nil
	}
}

func WithDeletes(n int) Option {
	return func(cfg *Config) error {
		cfg.Deletes = n
		return nil
	}
}

func WithMaxValue(max int) Option {
	return func(cfg *Config) error {
		cfg.MaxValue = max
		return nil
	}
}

func WithRounds(rounds, workers int) Option {
	return func(cfg *Config) error {
		cfg.Rounds = rounds
		cfg.Workers = workers
		return nil
	}
}

func WithSeed(seed uint64) Option {
	return func(cfg *Config) error {
		cfg.Seed = seed
		return nil
	}
}

func WithMetricsExporter(typ string) Option {
	return func(cfg *Config) error {
		t, err := observability.ParseMetricsExporterType(typ)
		if err != nil {
			return err
		}
		cfg.Metrics = t
		return nil
	}
}

func WithNoColor() Option {
	return func(cfg *Config) error {
		cfg.NoColor = true
		return nil
	}
}

// WithEnv loads the RBDEMO_* environment variables. The unset
// variables keep the current values.
func WithEnv() Option {
	return withLookupEnv(os.LookupEnv)
}

func withLookupEnv(lookup func(key string) (string, bool)) Option {
	return func(cfg *Config) error {
		ints := []struct {
			key string
			dst *int
		}{
			{envInserts, &cfg.Inserts},
			{envSearches, &cfg.Searches},
			{envDeletes, &cfg.Deletes},
			{envMaxValue, &cfg.MaxValue},
			{envRounds, &cfg.Rounds},
			{envWorkers, &cfg.Workers},
		}
		for _, i := range ints {
			v, ok := lookup(i.key)
			if !ok || len(strings.TrimSpace(v)) == 0 {
				continue
			}
			n, err := strconv.Atoi(strings.TrimSpace(v))
			if err != nil {
				return infra.WrapErrorStackWithMessage(err, "[demo] parse env "+i.key)
			}
			*i.dst = n
		}

		if v, ok := lookup(envSeed); ok && len(strings.TrimSpace(v)) > 0 {
			seed, err := strconv.ParseUint(strings.TrimSpace(v), 10, 64)
			if err != nil {
				return infra.WrapErrorStackWithMessage(err, "[demo] parse env "+envSeed)
			}
			cfg.Seed = seed
		}

		if v, ok := lookup(envMetrics); ok {
			typ, err := observability.ParseMetricsExporterType(v)
			if err != nil {
				return err
			}
			cfg.Metrics = typ
		}

		if v, ok := lookup(envNoColor); ok && len(strings.TrimSpace(v)) > 0 {
			noColor, err := strconv.ParseBool(strings.TrimSpace(v))
			if err != nil {
				return infra.WrapErrorStackWithMessage(err, "[demo] parse env "+envNoColor)
			}
			cfg.NoColor = noColor
		}
		return nil
	}
}
