// Package logger provides a zap-based application logger that stamps every
// record with the service name and the active trace id.
package logger

import (
	"context"
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Level is a logging severity.
type Level int8

// Supported levels.
const (
	LevelDebug Level = Level(zapcore.DebugLevel)
	LevelInfo  Level = Level(zapcore.InfoLevel)
	LevelWarn  Level = Level(zapcore.WarnLevel)
	LevelError Level = Level(zapcore.ErrorLevel)
)

// ParseLevel converts a level name into a Level.
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return LevelDebug, nil
	case "", "info":
		return LevelInfo, nil
	case "warn", "warning":
		return LevelWarn, nil
	case "error":
		return LevelError, nil
	}
	return LevelInfo, fmt.Errorf("unknown log level %q", s)
}

// TraceIDFn extracts a trace id from a context; it returns "" when none.
type TraceIDFn func(ctx context.Context) string

// Logger writes structured JSON records.
type Logger struct {
	sugar   *zap.SugaredLogger
	traceID TraceIDFn
}

// New builds a Logger writing JSON to w at or above level.
func New(w io.Writer, level Level, service string, traceID TraceIDFn) *Logger {
	enc := zap.NewProductionEncoderConfig()
	enc.EncodeTime = zapcore.RFC3339NanoTimeEncoder
	enc.TimeKey = "time"
	core := zapcore.NewCore(zapcore.NewJSONEncoder(enc), zapcore.AddSync(w), zapcore.Level(level))
	z := zap.New(core, zap.AddCaller(), zap.AddCallerSkip(1)).With(zap.String("service", service))
	return &Logger{sugar: z.Sugar(), traceID: traceID}
}

// Debug logs at debug level.
func (l *Logger) Debug(ctx context.Context, msg string, keyvals ...any) {
	l.sugar.Debugw(msg, l.with(ctx, keyvals)...)
}

// Info logs at info level.
func (l *Logger) Info(ctx context.Context, msg string, keyvals ...any) {
	l.sugar.Infow(msg, l.with(ctx, keyvals)...)
}

// Warn logs at warn level.
func (l *Logger) Warn(ctx context.Context, msg string, keyvals ...any) {
	l.sugar.Warnw(msg, l.with(ctx, keyvals)...)
}

// Error logs at error level.
func (l *Logger) Error(ctx context.Context, msg string, keyvals ...any) {
	l.sugar.Errorw(msg, l.with(ctx, keyvals)...)
}

// Sync flushes buffered records.
func (l *Logger) Sync() error {
	return l.sugar.Sync()
}

func (l *Logger) with(ctx context.Context, keyvals []any) []any {
	if l.traceID == nil {
		return keyvals
	}
	if id := l.traceID(ctx); id != "" {
		return append(keyvals, "trace_id", id)
	}
	return keyvals
}
