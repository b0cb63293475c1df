package logging

import (
	"context"
	"io"
	"log/slog"
	"os"
	"time"
)

// Logger defines the minimal logging interface for AgentGrid. Args are
// alternating key/value pairs in the slog convention.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// SlogAdapter wraps *slog.Logger to implement the Logger interface.
type SlogAdapter struct {
	*slog.Logger
}

// NewSlogAdapter creates a Logger from *slog.Logger.
func NewSlogAdapter(logger *slog.Logger) Logger {
	return &SlogAdapter{Logger: logger}
}

// NewDefaultSlogLogger creates a Logger using slog.Default().
func NewDefaultSlogLogger() Logger {
	return NewSlogAdapter(slog.Default())
}

// NoOpLogger discards all log messages. Useful for testing or when logging
// is disabled.
type NoOpLogger struct{}

// Debug discards the message.
func (NoOpLogger) Debug(string, ...any) {}

// Info discards the message.
func (NoOpLogger) Info(string, ...any) {}

// Warn discards the message.
func (NoOpLogger) Warn(string, ...any) {}

// Error discards the message.
func (NoOpLogger) Error(string, ...any) {}

// Config configures construction of a GridLogger.
type Config struct {
	Level     slog.Level
	Format    string // json or text
	Output    io.Writer
	AddSource bool
	Component string
	SessionID string
}

// DefaultConfig returns a baseline JSON info level configuration.
func DefaultConfig() *Config {
	return &Config{Level: slog.LevelInfo, Format: "json", Output: os.Stdout}
}

// GridLogger wraps slog.Logger adding contextual cloning helpers and domain
// convenience methods for the control plane. It is cheap to copy via With*
// methods.
type GridLogger struct {
	logger    *slog.Logger
	component string
	sessionID string
}

// NewGridLogger builds a GridLogger from a config (or defaults if nil).
func NewGridLogger(cfg *Config) *GridLogger {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	output := cfg.Output
	if output == nil {
		output = os.Stdout
	}
	opts := &slog.HandlerOptions{Level: cfg.Level, AddSource: cfg.AddSource}
	var handler slog.Handler
	if cfg.Format == "text" {
		handler = slog.NewTextHandler(output, opts)
	} else {
		handler = slog.NewJSONHandler(output, opts)
	}
	return &GridLogger{logger: slog.New(handler), component: cfg.Component, sessionID: cfg.SessionID}
}

// WithComponent sets the logical component (dispatcher, registry, validator).
func (l *GridLogger) WithComponent(c string) *GridLogger {
	nl := *l
	nl.component = c
	return &nl
}

// WithSession attaches the session identifier.
func (l *GridLogger) WithSession(sid string) *GridLogger {
	nl := *l
	nl.sessionID = sid
	return &nl
}

func (l *GridLogger) attrs(extra ...slog.Attr) []slog.Attr {
	attrs := make([]slog.Attr, 0, len(extra)+2)
	if l.component != "" {
		attrs = append(attrs, slog.String("component", l.component))
	}
	if l.sessionID != "" {
		attrs = append(attrs, slog.String("session_id", l.sessionID))
	}
	return append(attrs, extra...)
}

func (l *GridLogger) log(level slog.Level, msg string, extra ...slog.Attr) {
	l.logger.LogAttrs(context.Background(), level, msg, l.attrs(extra...)...)
}

// Debug logs at debug level.
func (l *GridLogger) Debug(msg string, args ...any) {
	l.logger.LogAttrs(context.Background(), slog.LevelDebug, msg, l.kvAttrs(args)...)
}

// Info logs at info level.
func (l *GridLogger) Info(msg string, args ...any) {
	l.logger.LogAttrs(context.Background(), slog.LevelInfo, msg, l.kvAttrs(args)...)
}

// Warn logs at warn level.
func (l *GridLogger) Warn(msg string, args ...any) {
	l.logger.LogAttrs(context.Background(), slog.LevelWarn, msg, l.kvAttrs(args)...)
}

// Error logs at error level.
func (l *GridLogger) Error(msg string, args ...any) {
	l.logger.LogAttrs(context.Background(), slog.LevelError, msg, l.kvAttrs(args)...)
}

func (l *GridLogger) kvAttrs(args []any) []slog.Attr {
	extra := make([]slog.Attr, 0, len(args)/2)
	for i := 0; i+1 < len(args); i += 2 {
		key, ok := args[i].(string)
		if !ok {
			continue
		}
		extra = append(extra, slog.Any(key, args[i+1]))
	}
	return l.attrs(extra...)
}

// LogDispatch records one completed hook trigger.
func (l *GridLogger) LogDispatch(point string, plugins int, dur time.Duration, err error) {
	attrs := []slog.Attr{
		slog.String("point", point),
		slog.Int("plugin_count", plugins),
		slog.Duration("duration", dur),
	}
	level := slog.LevelDebug
	msg := "hook dispatch completed"
	if err != nil {
		attrs = append(attrs, slog.String("error", err.Error()))
		level = slog.LevelError
		msg = "hook dispatch failed"
	}
	l.log(level, msg, attrs...)
}

// LogPluginFault records an isolated plugin failure during a broadcast.
func (l *GridLogger) LogPluginFault(point, plugin string, err error) {
	l.log(slog.LevelWarn, "plugin fault isolated",
		slog.String("point", point),
		slog.String("plugin", plugin),
		slog.String("error", err.Error()))
}

// LogValidation records the outcome of a topology validation pass.
func (l *GridLogger) LogValidation(violations []string) {
	if len(violations) == 0 {
		l.log(slog.LevelInfo, "topology valid")
		return
	}
	l.log(slog.LevelError, "topology invalid",
		slog.Int("violation_count", len(violations)),
		slog.Any("violations", violations))
}

var _ Logger = (*GridLogger)(nil)
