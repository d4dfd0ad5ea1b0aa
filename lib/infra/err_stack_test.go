package infra

import (
	"errors"
	"fmt"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"
	"go.uber.org/zap/zapcore"
)

var initPC = caller()

//go:noinline
func caller() Frame {
	var PCs [3]uintptr
	n := runtime.Callers(2, PCs[:])
	frames := runtime.CallersFrames(PCs[:n])
	frame, _ := frames.Next()
	return Frame(frame.PC)
}

func TestFrameFormat(t *testing.T) {
	testcases := []struct {
		Frame
		format string
		want   string
	}{
		{initPC, "%s", "err_stack_test.go"},
		{initPC, "%n", "init"},
		{Frame(0), "%s", unknownFile},
		{Frame(0), "%n", unknownFunc},
		{Frame(0), "%d", "0"},
		{Frame(0), "%v", unknownFile + ":0"},
	}
	for _, tc := range testcases {
		require.Equal(t, tc.want, fmt.Sprintf(tc.format, tc.Frame))
	}
	require.True(t, strings.HasPrefix(fmt.Sprintf("%v", initPC), "err_stack_test.go:"))
	require.True(t, strings.HasPrefix(fmt.Sprintf("%+s", initPC), "github.com/benz9527/xrbtree/lib/infra.init\n\t"))
}

func TestFrameMarshalText(t *testing.T) {
	text, err := Frame(0).MarshalText()
	require.NoError(t, err)
	require.Equal(t, unknownFrame, string(text))

	text, err = initPC.MarshalText()
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(string(text), "github.com/benz9527/xrbtree/lib/infra.init "))
	require.Contains(t, string(text), "err_stack_test.go:")
}

func TestNewErrorStack(t *testing.T) {
	err := NewErrorStack("rbtree broken")
	require.Error(t, err)
	require.Equal(t, "rbtree broken", err.Error())

	var es ErrorStack
	require.True(t, errors.As(err, &es))
	require.NotEmpty(t, es.Frames())
	require.Equal(t, "TestNewErrorStack", fmt.Sprintf("%n", es.Frames()[0]))

	verbose := fmt.Sprintf("%+v", err)
	require.True(t, strings.HasPrefix(verbose, "rbtree broken\n"))
	require.Contains(t, verbose, "err_stack_test.go")
	require.Equal(t, "rbtree broken", fmt.Sprintf("%s", err))
	require.Equal(t, `"rbtree broken"`, fmt.Sprintf("%q", err))
}

func TestWrapErrorStack(t *testing.T) {
	require.NoError(t, WrapErrorStack(nil))
	require.NoError(t, WrapErrorStackWithMessage(nil, "ignored"))

	base := errors.New("node not found")
	err := WrapErrorStack(base)
	require.ErrorIs(t, err, base)
	require.Equal(t, "node not found", err.Error())
	// Already carrying frames, keep it.
	require.Same(t, err.(*errorStack), WrapErrorStack(err).(*errorStack))

	err = WrapErrorStackWithMessage(base, "delete")
	require.ErrorIs(t, err, base)
	require.Equal(t, "delete: node not found", err.Error())
}

func TestErrorStackMarshalLogObject(t *testing.T) {
	merr := multierr.Combine(errors.New("red violation"), errors.New("black violation"))
	err := WrapErrorStackWithMessage(merr, "validate")

	enc := zapcore.NewMapObjectEncoder()
	es := err.(ErrorStack)
	require.NoError(t, es.MarshalLogObject(enc))
	require.Equal(t, "validate: red violation; black violation", enc.Fields["error"])
	require.Len(t, enc.Fields["errors"], 2)
	require.NotEmpty(t, enc.Fields["errorStack"])

	enc = zapcore.NewMapObjectEncoder()
	require.NoError(t, NewErrorStack("single").(ErrorStack).MarshalLogObject(enc))
	_, ok := enc.Fields["errors"]
	require.False(t, ok)
}
