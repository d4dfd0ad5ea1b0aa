package xlog

import (
	"context"
	"errors"
	"io"
	randv2 "math/rand/v2"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/benz9527/xrbtree/lib/infra"
)

type testMemOutWriter struct {
	lock sync.Mutex
	data []byte
}

func (w *testMemOutWriter) Write(p []byte) (n int, err error) {
	w.lock.Lock()
	defer w.lock.Unlock()
	w.data = append(w.data, p...)
	return len(p), nil
}

func (w *testMemOutWriter) Sync() error {
	return nil
}

func (w *testMemOutWriter) String() string {
	w.lock.Lock()
	defer w.lock.Unlock()
	return string(w.data)
}

func (w *testMemOutWriter) Reset() {
	w.lock.Lock()
	defer w.lock.Unlock()
	w.data = make([]byte, 0, 4096)
}

func newTestMemOutWriter(t *testing.T) *testMemOutWriter {
	w := &testMemOutWriter{data: make([]byte, 0, 4096)}
	setOutWriterByType(testMemAsOut, w)
	t.Cleanup(func() {
		setOutWriterByType(testMemAsOut, zapcore.AddSync(io.Discard))
	})
	return w
}

func TestLogLevelString(t *testing.T) {
	require.Equal(t, "DEBUG", LogLevelDebug.String())
	require.Equal(t, "INFO", LogLevelInfo.String())
	require.Equal(t, "WARN", LogLevelWarn.String())
	require.Equal(t, "ERROR", LogLevelError.String())
	require.Equal(t, zapcore.DebugLevel, LogLevelDebug.zapLevel())
	require.Equal(t, zapcore.InfoLevel, LogLevelInfo.zapLevel())
	require.Equal(t, zapcore.WarnLevel, LogLevelWarn.zapLevel())
	require.Equal(t, zapcore.ErrorLevel, LogLevelError.zapLevel())
	require.Equal(t, zapcore.InfoLevel, getLogLevelOrDefault(" info "))
	require.Equal(t, zapcore.DebugLevel, getLogLevelOrDefault("trace"))
	require.Equal(t, zapcore.DebugLevel, getLogLevelOrDefault(""))
}

type testBanner struct{}

func (b testBanner) JSON() string {
	return "{\"app\":\"rbdemo\"}"
}

func (b testBanner) PlainText() string {
	return `
 ___ ___  ___  ___ __  __  ___
| _ \ _ )|   \| __|  \/  |/ _ \
|   / _ \| |) | _|| |\/| | (_) |
|_|_\___/|___/|___|_|  |_|\___/
`
}

func TestLoggerPrintBanner(t *testing.T) {
	w := newTestMemOutWriter(t)

	printBanner = sync.Once{}
	logger := NewXLogger(WithXLoggerWriter(testMemAsOut), WithXLoggerEncoder(JSON))
	logger.Banner(testBanner{})
	require.Equal(t, "{\"banner\":\"{\\\"app\\\":\\\"rbdemo\\\"}\"}\n", w.String())
	w.Reset()

	// Only once.
	logger.Banner(testBanner{})
	require.Empty(t, w.String())

	printBanner = sync.Once{}
	logger = NewXLogger(WithXLoggerWriter(testMemAsOut), WithXLoggerEncoder(PlainText))
	logger.Banner(nil)
	logger.Banner(testBanner{})
	require.Equal(t, testBanner{}.PlainText()+"\n", w.String())
}

func TestXLoggerOptions(t *testing.T) {
	require.Panics(t, func() {
		NewXLogger(WithXLoggerEncoder(_encMax))
	})
	require.Panics(t, func() {
		NewXLogger(WithXLoggerWriter(_writerMax))
	})

	t.Setenv("XLOG_LVL", "warn")
	logger := NewXLogger(nil, WithXLoggerLevelEncoder(nil), WithXLoggerTimeEncoder(nil))
	require.Equal(t, zapcore.WarnLevel.String(), logger.Level())

	logger = NewXLogger(WithXLoggerLevel(LogLevelError))
	require.Equal(t, zapcore.ErrorLevel.String(), logger.Level())
}

func TestXLogger_ContextFields(t *testing.T) {
	w := newTestMemOutWriter(t)
	logger := NewXLogger(
		WithXLoggerWriter(testMemAsOut),
		WithXLoggerLevel(LogLevelDebug),
		WithXLoggerContextFieldExtract("round", "roundID"),
		WithXLoggerContextFieldExtract("phase"),
		WithXLoggerContextFieldExtract("secret", ContextKeyMapToOmitempty),
		WithXLoggerContextFieldExtract(""),
	)
	ctx := context.WithValue(context.Background(), ContextKey("round"), uint64(7))
	ctx = context.WithValue(ctx, ContextKey("secret"), "hidden")

	logger.InfoContext(ctx, "round started")
	out := w.String()
	require.Contains(t, out, `"msg":"round started","phase":"nil","roundID":7}`)
	require.NotContains(t, out, "hidden")
	w.Reset()

	var nilCtx context.Context
	logger.DebugContext(nilCtx, "no context")
	require.Contains(t, w.String(), `"msg":"no context"}`)
}

func TestXLogger_ErrorStack(t *testing.T) {
	w := newTestMemOutWriter(t)
	logger := NewXLogger(WithXLoggerWriter(testMemAsOut), WithXLoggerLevel(LogLevelDebug))

	err1 := infra.WrapErrorStack(errors.New("error 1"))
	logger.ErrorStack(err1, "stack message")
	out := w.String()
	require.Contains(t, out, `"msg":"stack message","error":"error 1","errorStack":["`)
	require.Contains(t, out, "TestXLogger_ErrorStack")
	w.Reset()

	// A plain error is still printed.
	logger.ErrorStack(errors.New("plain"), "plain message")
	require.Contains(t, w.String(), `"msg":"plain message","error":"plain"}`)
	w.Reset()

	merr := infra.WrapErrorStack(multierr.Combine(errors.New("a"), errors.New("b")))
	logger.ErrorStackContext(context.Background(), merr, "multi")
	require.Contains(t, w.String(), `"errors":["a","b"]`)
	w.Reset()

	logger.ErrorStackf(err1, "formatted %d", 1)
	require.Contains(t, w.String(), `"msg":"formatted 1","error":"error 1"`)
	w.Reset()

	logger.Error(err1, "error message")
	logger.ErrorContext(context.Background(), err1, "error message 2")
	lines := strings.Split(strings.TrimSpace(w.String()), "\n")
	require.Len(t, lines, 2)
	require.NotContains(t, lines[0], "errorStack")
}

type testObj1 struct {
	name string
	arr  []testObj2
}

type testObj2 struct {
	age int
}

func TestXLogger_Zap_AllAPIs(t *testing.T) {
	testcases := []struct {
		name          string
		encoder       logEncoderType
		core          string
		defaultLogger bool
		ctxM          map[string]string
	}{
		{
			name:    "mem json",
			encoder: JSON,
			ctxM: map[string]string{
				"traceId": "TraceID",
				"service": "Svc",
			},
		},
		{
			name:    "mem plaintext",
			encoder: PlainText,
			core:    "console",
			ctxM: map[string]string{
				"traceId": "traceID",
				"service": "svc",
				"abc":     "",
			},
		},
		{
			name:          "default json",
			defaultLogger: true,
		},
	}
	for _, tc := range testcases {
		t.Run(tc.name, func(t *testing.T) {
			w := newTestMemOutWriter(t)
			var opts []XLoggerOption
			if !tc.defaultLogger {
				opts = append(opts,
					WithXLoggerLevel(LogLevelDebug),
					WithXLoggerEncoder(tc.encoder),
					WithXLoggerWriter(testMemAsOut),
				)
			} else {
				opts = append(opts, WithXLoggerWriter(testMemAsOut))
			}
			for k, v := range tc.ctxM {
				opts = append(opts, WithXLoggerContextFieldExtract(k, v))
			}
			if tc.core == "console" {
				opts = append(opts, WithXLoggerConsoleCore())
			}
			logger := NewXLogger(opts...)

			ctx := context.TODO()
			ctx = context.WithValue(ctx, ContextKey("traceId"), "1234567890")
			ctx = context.WithValue(ctx, ContextKey("service"), "rbdemo")

			logger.Debug("debug message 1")
			logger.DebugContext(ctx, "debug message 2")
			logger.Info("info message 1")
			logger.InfoContext(ctx, "info message 2")
			logger.Warn("warn message 1")
			logger.WarnContext(ctx, "warn message 2")

			obj1 := testObj1{
				name: "testObj1",
				arr:  []testObj2{{age: 1}, {age: 2}},
			}
			field := zap.Object("testObj1", zapcore.ObjectMarshalerFunc(
				func(oe zapcore.ObjectEncoder) error {
					oe.AddString("name", obj1.name)
					return oe.AddArray("arr", zapcore.ArrayMarshalerFunc(
						func(ae zapcore.ArrayEncoder) error {
							for _, v := range obj1.arr {
								if err := ae.AppendObject(zapcore.ObjectMarshalerFunc(func(enc zapcore.ObjectEncoder) error {
									enc.AddInt("age", v.age)
									return nil
								})); err != nil {
									return err
								}
							}
							return nil
						}))
				}))
			logger.Info("info message 3", field)
			logger.InfoContext(ctx, "info message 4", field)
			require.Contains(t, w.String(), "info message 4")
			if tc.ctxM != nil {
				require.Contains(t, w.String(), "1234567890")
			}
			w.Reset()

			logger.IncreaseLogLevel(zapcore.WarnLevel)
			require.Equal(t, zapcore.WarnLevel.String(), logger.Level())
			logger.Logf(getLogLevelOrDefault(""), "unprintable debug message 3")
			logger.Logf(getLogLevelOrDefault(LogLevelInfo.String()), "unprintable info message 5")
			logger.Logf(getLogLevelOrDefault(LogLevelWarn.String()), "printable warn message 3")
			require.NotContains(t, w.String(), "unprintable")
			require.Contains(t, w.String(), "printable warn message 3")

			logger.IncreaseLogLevel(zapcore.DebugLevel)
			require.Equal(t, zapcore.DebugLevel.String(), logger.Level())
			logger.Logf(getLogLevelOrDefault(""), "dynamic printable debug message 4")
			require.Contains(t, w.String(), "dynamic printable debug message 4")

			require.NoError(t, logger.Sync())
		})
	}
}

func TestXLogger_Zap_DataRace(t *testing.T) {
	newTestMemOutWriter(t)
	logger := NewXLogger(WithXLoggerWriter(testMemAsOut))
	lvls := []zapcore.Level{
		zapcore.DebugLevel,
		zapcore.InfoLevel,
		zapcore.WarnLevel,
		zapcore.ErrorLevel,
	}
	n := int32(len(lvls))
	var wg sync.WaitGroup
	total := 10
	wg.Add(total)
	for i := 0; i < total; i++ {
		go func(i int) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				rng := randv2.Int32N(n)
				if i*total+j == 666 {
					logger.IncreaseLogLevel(lvls[rng])
				}
				logger.Logf(lvls[rng], "message i: %d; j: %d", i, j)
			}
		}(i)
	}
	wg.Wait()
	_ = logger.Sync()
}

func BenchmarkXLogger_Zap(b *testing.B) {
	setOutWriterByType(testMemAsOut, zapcore.AddSync(io.Discard))
	logger := NewXLogger(WithXLoggerWriter(testMemAsOut))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		logger.Info("message")
	}
	b.ReportAllocs()
}
