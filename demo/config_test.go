package demo

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/benz9527/xrbtree/observability"
)

func mapLookup(env map[string]string) func(key string) (string, bool) {
	return func(key string) (string, bool) {
		v, ok := env[key]
		return v, ok
	}
}

func TestNewConfig_Defaults(t *testing.T) {
	cfg, err := NewConfig()
	require.NoError(t, err)
	require.Equal(t, 10, cfg.Inserts)
	require.Equal(t, 1, cfg.Searches)
	require.Equal(t, 1, cfg.Deletes)
	require.Equal(t, 100, cfg.MaxValue)
	require.Equal(t, 1, cfg.Rounds)
	require.Equal(t, 1, cfg.Workers)
	require.Equal(t, uint64(0), cfg.Seed)
	require.Equal(t, observability.NoneExporter, cfg.Metrics)
	require.False(t, cfg.NoColor)
}

func TestNewConfig_Options(t *testing.T) {
	cfg, err := NewConfig(
		WithInserts(20),
		WithSearches(3),
		WithDeletes(2),
		WithMaxValue(50),
		WithRounds(8, 4),
		WithSeed(42),
		WithMetricsExporter("Prometheus"),
		WithNoColor(),
		nil,
	)
	require.NoError(t, err)
	require.Equal(t, &Config{
		Inserts:  20,
		Searches: 3,
		Deletes:  2,
		MaxValue: 50,
		Rounds:   8,
		Workers:  4,
		Seed:     42,
		Metrics:  observability.PrometheusExporter,
		NoColor:  true,
	}, cfg)
}

func TestNewConfig_Invalid(t *testing.T) {
	testcases := []struct {
		name string
		opt  Option
	}{
		{"negative inserts", WithInserts(-1)},
		{"negative searches", WithSearches(-1)},
		{"negative deletes", WithDeletes(-1)},
		{"zero max value", WithMaxValue(0)},
		{"zero rounds", WithRounds(0, 1)},
		{"zero workers", WithRounds(1, 0)},
		{"unknown exporter", WithMetricsExporter("jaeger")},
	}
	for _, tc := range testcases {
		t.Run(tc.name, func(tt *testing.T) {
			cfg, err := NewConfig(tc.opt)
			require.Error(tt, err)
			require.Nil(tt, cfg)
		})
	}
}

func TestNewConfig_Env(t *testing.T) {
	cfg, err := NewConfig(withLookupEnv(mapLookup(map[string]string{
		envInserts:  " 30 ",
		envSearches: "5",
		envDeletes:  "",
		envMaxValue: "1000",
		envRounds:   "6",
		envWorkers:  "3",
		envSeed:     "7",
		envMetrics:  "stdout",
		envNoColor:  "true",
	})))
	require.NoError(t, err)
	require.Equal(t, 30, cfg.Inserts)
	require.Equal(t, 5, cfg.Searches)
	require.Equal(t, 1, cfg.Deletes)
	require.Equal(t, 1000, cfg.MaxValue)
	require.Equal(t, 6, cfg.Rounds)
	require.Equal(t, 3, cfg.Workers)
	require.Equal(t, uint64(7), cfg.Seed)
	require.Equal(t, observability.StdoutExporter, cfg.Metrics)
	require.True(t, cfg.NoColor)

	// The later options override the env.
	cfg, err = NewConfig(
		withLookupEnv(mapLookup(map[string]string{envInserts: "30"})),
		WithInserts(5),
	)
	require.NoError(t, err)
	require.Equal(t, 5, cfg.Inserts)
}

func TestNewConfig_EnvInvalid(t *testing.T) {
	testcases := []map[string]string{
		{envInserts: "ten"},
		{envSeed: "-1"},
		{envMetrics: "zipkin"},
		{envNoColor: "maybe"},
		{envRounds: "0"},
	}
	for _, env := range testcases {
		cfg, err := NewConfig(withLookupEnv(mapLookup(env)))
		require.Error(t, err, env)
		require.Nil(t, cfg)
	}
}

func TestWithEnv(t *testing.T) {
	t.Setenv(envInserts, "12")
	t.Setenv(envMetrics, "")
	cfg, err := NewConfig(WithEnv())
	require.NoError(t, err)
	require.Equal(t, 12, cfg.Inserts)
	require.Equal(t, observability.NoneExporter, cfg.Metrics)
}
