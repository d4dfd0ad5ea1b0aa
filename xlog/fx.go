package xlog

import (
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"
)

// FxXLogger reports the fx lifecycle events. The hooks and the
// failures are printed above the debug level, the dependency
// graph details are debug only.
type FxXLogger struct {
	logger XLogger
}

func moduleFields(module string, fields ...zap.Field) []zap.Field {
	if module == "" {
		return fields
	}
	return append(fields, zap.String("module", module))
}

func (l *FxXLogger) hookExecuted(hook, function, caller string, in int64, err error) {
	fields := []zap.Field{
		zap.String("function", function),
		zap.String("caller", caller),
		zap.Int64("in", in),
	}
	if err != nil {
		l.logger.Error(err, "HOOK "+hook+" failed", fields...)
		return
	}
	l.logger.Info("HOOK "+hook+" executed", fields...)
}

func (l *FxXLogger) typesProvided(action string, types []string, module string, err error, stacktrace []string, fields ...zap.Field) {
	for _, rtype := range types {
		l.logger.Debug(action, moduleFields(module, append([]zap.Field{zap.String("rtype", rtype)}, fields...)...)...)
	}
	if err != nil {
		l.logger.Error(err, action+" failed", zap.Strings("stacktrace", stacktrace))
	}
}

func (l *FxXLogger) LogEvent(event fxevent.Event) {
	if l == nil || l.logger == nil {
		return
	}

	switch e := event.(type) {
	case *fxevent.OnStartExecuting:
		l.logger.Debug("HOOK OnStart executing",
			zap.String("function", e.FunctionName),
			zap.String("caller", e.CallerName),
		)
	case *fxevent.OnStartExecuted:
		l.hookExecuted("OnStart", e.FunctionName, e.CallerName, int64(e.Runtime), e.Err)
	case *fxevent.OnStopExecuting:
		l.logger.Debug("HOOK OnStop executing",
			zap.String("function", e.FunctionName),
			zap.String("caller", e.CallerName),
		)
	case *fxevent.OnStopExecuted:
		l.hookExecuted("OnStop", e.FunctionName, e.CallerName, int64(e.Runtime), e.Err)
	case *fxevent.Supplied:
		if e.Err != nil {
			l.logger.Error(e.Err, "SUPPLY failed",
				zap.String("type", e.TypeName),
				zap.Strings("stacktrace", e.StackTrace),
			)
			return
		}
		l.logger.Debug("SUPPLY", moduleFields(e.ModuleName, zap.String("type", e.TypeName))...)
	case *fxevent.Provided:
		l.typesProvided("PROVIDE", e.OutputTypeNames, e.ModuleName, e.Err, e.StackTrace,
			zap.String("constructor", e.ConstructorName),
			zap.Bool("private", e.Private),
		)
	case *fxevent.Replaced:
		l.typesProvided("REPLACE", e.OutputTypeNames, e.ModuleName, e.Err, e.StackTrace)
	case *fxevent.Decorated:
		l.typesProvided("DECORATE", e.OutputTypeNames, e.ModuleName, e.Err, e.StackTrace,
			zap.String("decorator", e.DecoratorName),
		)
	case *fxevent.Invoking:
		l.logger.Debug("INVOKING", moduleFields(e.ModuleName, zap.String("function", e.FunctionName))...)
	case *fxevent.Invoked:
		if e.Err != nil {
			l.logger.Error(e.Err, "INVOKE failed",
				zap.String("function", e.FunctionName),
				zap.String("trace", e.Trace),
			)
		}
	case *fxevent.Stopping:
		l.logger.Info("STOPPING", zap.String("signal", e.Signal.String()))
	case *fxevent.Stopped:
		if e.Err != nil {
			l.logger.Error(e.Err, "STOP failed")
		}
	case *fxevent.RollingBack:
		l.logger.Warn("START failed, rolling back", zap.Error(e.StartErr))
	case *fxevent.RolledBack:
		if e.Err != nil {
			l.logger.Error(e.Err, "ROLLBACK failed")
		}
	case *fxevent.Started:
		if e.Err != nil {
			l.logger.Error(e.Err, "START failed")
			return
		}
		l.logger.Debug("RUNNING")
	case *fxevent.LoggerInitialized:
		if e.Err != nil {
			l.logger.Error(e.Err, "LOGGER initialize failed")
			return
		}
		l.logger.Debug("LOGGER initialized", zap.String("constructor", e.ConstructorName))
	}
}

func NewFxXLogger(logger XLogger) *FxXLogger {
	return &FxXLogger{logger: withComponent(logger, "Fx")}
}
