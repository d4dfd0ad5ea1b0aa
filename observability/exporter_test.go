package observability

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseMetricsExporterType(t *testing.T) {
	testcases := []struct {
		in       string
		expected MetricsExporterType
		hasErr   bool
	}{
		{in: "", expected: NoneExporter},
		{in: "none", expected: NoneExporter},
		{in: " Stdout ", expected: StdoutExporter},
		{in: "PROMETHEUS", expected: PrometheusExporter},
		{in: "otlp", expected: NoneExporter, hasErr: true},
	}
	for _, tc := range testcases {
		t.Run(tc.in, func(tt *testing.T) {
			typ, err := ParseMetricsExporterType(tc.in)
			if tc.hasErr {
				require.Error(tt, err)
			} else {
				require.NoError(tt, err)
			}
			require.Equal(tt, tc.expected, typ)
		})
	}
}

func TestNewMeterProvider(t *testing.T) {
	testcases := []struct {
		typ      MetricsExporterType
		contains string
	}{
		{typ: NoneExporter},
		{typ: StdoutExporter, contains: `"rbtree.ops"`},
		{typ: PrometheusExporter, contains: "rbtree_ops_total"},
	}
	for _, tc := range testcases {
		t.Run(string(tc.typ), func(tt *testing.T) {
			buf := &bytes.Buffer{}
			mp, shutdown, err := NewMeterProvider(tc.typ, WithMetricsWriter(buf), WithMetricsInterval(0, 0), nil)
			require.NoError(tt, err)
			stats := NewTreeStats(mp, "exporter")
			stats.RecordOp(context.Background(), OpInsert, 5)
			require.NoError(tt, shutdown(context.Background()))
			if tc.contains == "" {
				require.Empty(tt, buf.String())
				return
			}
			require.Contains(tt, buf.String(), tc.contains)
		})
	}

	_, _, err := NewMeterProvider("otlp")
	require.Error(t, err)
}
