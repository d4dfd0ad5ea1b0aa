package main

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/fx"

	"github.com/benz9527/xrbtree/demo"
)

func TestNewApp_Validate(t *testing.T) {
	t.Setenv("RBDEMO_METRICS", "none")
	var runner *demo.Runner
	require.NoError(t, fx.ValidateApp(appOptions(&bytes.Buffer{}, &runner)))
}

func TestRun(t *testing.T) {
	t.Setenv("XLOG_LVL", "ERROR")
	t.Setenv("RBDEMO_SEED", "99")
	t.Setenv("RBDEMO_ROUNDS", "2")
	t.Setenv("RBDEMO_WORKERS", "2")
	t.Setenv("RBDEMO_NO_COLOR", "true")
	t.Setenv("RBDEMO_METRICS", "prometheus")

	out := &bytes.Buffer{}
	require.NoError(t, run(context.Background(), out))
	text := out.String()
	require.Equal(t, 2, strings.Count(text, "Inserting\n"))
	require.Contains(t, text, "Round 1\n")
	require.Contains(t, text, "Round 2\n")
	require.Contains(t, text, "rbtree_ops_total")
	require.Contains(t, text, "app_core_goroutines")
	// Tables first, metrics are flushed on stop.
	require.Less(t, strings.LastIndex(text, "BFS Ordered:"), strings.Index(text, "rbtree_ops_total"))
}

func TestRun_InvalidEnv(t *testing.T) {
	t.Setenv("XLOG_LVL", "ERROR")
	t.Setenv("RBDEMO_INSERTS", "many")
	require.Error(t, run(context.Background(), &bytes.Buffer{}))
}
