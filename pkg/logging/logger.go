// Package logging provides the structured logger used across glsgraph.
//
// JSONLogger writes one JSON object per line through log/slog. Fields are
// flattened into the object next to time, level and msg.
package logging

import (
	"context"
	"io"
	"log/slog"
	"os"
	"sync"
	"time"
)

// JSONLogger implements Logger with JSON output
type JSONLogger struct {
	logger *slog.Logger
	level  *levelVar
}

// levelVar is shared by a logger and all children created with With
type levelVar struct {
	mu    sync.RWMutex
	level Level
	slog  slog.LevelVar
}

func (v *levelVar) set(level Level) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.level = level
	v.slog.Set(level.slogLevel())
}

func (v *levelVar) get() Level {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.level
}

// NewJSONLogger creates a new JSON logger
func NewJSONLogger(writer io.Writer, level Level) *JSONLogger {
	lv := &levelVar{}
	lv.set(level)
	handler := slog.NewJSONHandler(writer, &slog.HandlerOptions{Level: &lv.slog})
	return &JSONLogger{
		logger: slog.New(handler),
		level:  lv,
	}
}

// NewDefaultLogger creates a logger that writes to stderr at INFO level
func NewDefaultLogger() *JSONLogger {
	return NewJSONLogger(os.Stderr, InfoLevel)
}

func (l *JSONLogger) log(level Level, msg string, fields []Field) {
	lvl := level.slogLevel()
	ctx := context.Background()
	if !l.logger.Enabled(ctx, lvl) {
		return
	}
	attrs := make([]slog.Attr, len(fields))
	for i, f := range fields {
		attrs[i] = f.attr()
	}
	l.logger.LogAttrs(ctx, lvl, msg, attrs...)
}

// Debug logs a debug-level message
func (l *JSONLogger) Debug(msg string, fields ...Field) {
	l.log(DebugLevel, msg, fields)
}

// Info logs an info-level message
func (l *JSONLogger) Info(msg string, fields ...Field) {
	l.log(InfoLevel, msg, fields)
}

// Warn logs a warning-level message
func (l *JSONLogger) Warn(msg string, fields ...Field) {
	l.log(WarnLevel, msg, fields)
}

// Error logs an error-level message
func (l *JSONLogger) Error(msg string, fields ...Field) {
	l.log(ErrorLevel, msg, fields)
}

// With creates a child logger with the given fields pre-set. The child
// shares its parent's level.
func (l *JSONLogger) With(fields ...Field) Logger {
	args := make([]any, len(fields))
	for i, f := range fields {
		args[i] = f.attr()
	}
	return &JSONLogger{
		logger: l.logger.With(args...),
		level:  l.level,
	}
}

// SetLevel sets the minimum log level
func (l *JSONLogger) SetLevel(level Level) {
	l.level.set(level)
}

// GetLevel returns the current log level
func (l *JSONLogger) GetLevel() Level {
	return l.level.get()
}

// Global default logger
var (
	defaultLogger Logger
	once          sync.Once
	defaultMu     sync.RWMutex
)

// DefaultLogger returns the global default logger, honouring LOG_LEVEL
func DefaultLogger() Logger {
	once.Do(func() {
		level := InfoLevel
		if levelStr := os.Getenv("LOG_LEVEL"); levelStr != "" {
			level = ParseLevel(levelStr)
		}
		defaultMu.Lock()
		if defaultLogger == nil {
			defaultLogger = NewJSONLogger(os.Stderr, level)
		}
		defaultMu.Unlock()
	})
	defaultMu.RLock()
	defer defaultMu.RUnlock()
	return defaultLogger
}

// SetDefaultLogger sets the global default logger
func SetDefaultLogger(logger Logger) {
	once.Do(func() {})
	defaultMu.Lock()
	defer defaultMu.Unlock()
	defaultLogger = logger
}

// StartTimer begins timing an operation
func StartTimer(logger Logger, msg string, fields ...Field) *TimedOperation {
	return &TimedOperation{
		logger: logger,
		msg:    msg,
		start:  time.Now(),
		fields: fields,
	}
}

// End logs the operation with its duration and returns the duration
func (t *TimedOperation) End(fields ...Field) time.Duration {
	elapsed := time.Since(t.start)
	t.logger.Info(t.msg, t.with(elapsed, fields)...)
	return elapsed
}

// EndError logs the operation as an error with its duration
func (t *TimedOperation) EndError(err error, fields ...Field) time.Duration {
	elapsed := time.Since(t.start)
	t.logger.Error(t.msg, append(t.with(elapsed, fields), Error(err))...)
	return elapsed
}

func (t *TimedOperation) with(elapsed time.Duration, extra []Field) []Field {
	fields := make([]Field, 0, len(t.fields)+len(extra)+1)
	fields = append(fields, t.fields...)
	fields = append(fields, extra...)
	return append(fields, Latency(elapsed))
}
