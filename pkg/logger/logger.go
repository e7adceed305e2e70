// Package logger wraps zap with the fields the procurement service puts on
// its log lines: request correlation ids, the caller, the component and the
// acquisition being changed.
package logger

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	appctx "procurement/internal/core/context"
)

// Field names shared by every log line.
const (
	FieldApp           = "app"
	FieldComponent     = "component"
	FieldTraceID       = "trace_id"
	FieldRequestID     = "request_id"
	FieldUserID        = "user_id"
	FieldAcquisitionID = "acquisition_id"
)

const appName = "procurement"

// Logger is a zap.SugaredLogger carrying service fields.
type Logger struct {
	*zap.SugaredLogger
}

// Config holds logger configuration.
type Config struct {
	Level       string // debug, info, warn, error
	Development bool   // colored console output
	OutputPaths []string
}

// New builds a logger. Production output is JSON with ISO8601 timestamps;
// every line carries the app name.
func New(cfg Config) (*Logger, error) {
	level := zapcore.InfoLevel
	if cfg.Level != "" {
		parsed, err := zapcore.ParseLevel(cfg.Level)
		if err != nil {
			return nil, fmt.Errorf("log level %q: %w", cfg.Level, err)
		}
		level = parsed
	}

	var zc zap.Config
	if cfg.Development {
		zc = zap.NewDevelopmentConfig()
		zc.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	} else {
		zc = zap.NewProductionConfig()
		zc.EncoderConfig.TimeKey = "ts"
		zc.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	}
	zc.Level = zap.NewAtomicLevelAt(level)
	zc.InitialFields = map[string]any{FieldApp: appName}
	if len(cfg.OutputPaths) > 0 {
		zc.OutputPaths = cfg.OutputPaths
	}

	z, err := zc.Build(zap.AddCallerSkip(1))
	if err != nil {
		return nil, err
	}
	return &Logger{z.Sugar()}, nil
}

var defaultLogger = sync.OnceValue(func() *Logger {
	l, err := New(Config{OutputPaths: []string{"stdout"}})
	if err != nil {
		return Nop()
	}
	return l
})

// Default returns the process-wide fallback logger used when nothing was
// injected.
func Default() *Logger {
	return defaultLogger()
}

// Nop returns a logger that discards everything.
func Nop() *Logger {
	return &Logger{zap.NewNop().Sugar()}
}

// WithContext adds the trace, request and user ids found in ctx.
func (l *Logger) WithContext(ctx context.Context) *Logger {
	var fields []any
	if trace := appctx.GetTrace(ctx); trace != nil {
		fields = append(fields, FieldTraceID, trace.TraceID, FieldRequestID, trace.RequestID)
	}
	if user := appctx.GetUser(ctx); user != nil {
		fields = append(fields, FieldUserID, user.UserID)
	}
	if len(fields) == 0 {
		return l
	}
	return &Logger{l.SugaredLogger.With(fields...)}
}

// WithComponent names the part of the service producing the line.
func (l *Logger) WithComponent(name string) *Logger {
	return &Logger{l.SugaredLogger.With(FieldComponent, name)}
}

// WithAcquisition tags lines about one acquisition.
func (l *Logger) WithAcquisition(id int64) *Logger {
	return &Logger{l.SugaredLogger.With(FieldAcquisitionID, id)}
}

type loggerKey struct{}

// WithLogger stores l in ctx for FromContext.
func WithLogger(ctx context.Context, l *Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, l)
}

// FromContext returns the logger stored in ctx, or Default, enriched with
// the request fields of ctx.
func FromContext(ctx context.Context) *Logger {
	l, ok := ctx.Value(loggerKey{}).(*Logger)
	if !ok {
		l = Default()
	}
	return l.WithContext(ctx)
}

// Debug logs at debug level with the logger from ctx.
func Debug(ctx context.Context, msg string, keysAndValues ...any) {
	FromContext(ctx).Debugw(msg, keysAndValues...)
}

// Info logs at info level with the logger from ctx.
func Info(ctx context.Context, msg string, keysAndValues ...any) {
	FromContext(ctx).Infow(msg, keysAndValues...)
}

// Error logs at error level with the logger from ctx.
func Error(ctx context.Context, msg string, keysAndValues ...any) {
	FromContext(ctx).Errorw(msg, keysAndValues...)
}
