package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync/atomic"
)

// LogLevel is one of the named levels a logger can enable.
type LogLevel int

const (
	LogLevelDebug LogLevel = iota
	LogLevelInfo
	LogLevelWarn
	LogLevelError
)

// String returns the config name of the level.
func (l LogLevel) String() string {
	switch l {
	case LogLevelDebug:
		return "debug"
	case LogLevelInfo:
		return "info"
	case LogLevelWarn:
		return "warn"
	case LogLevelError:
		return "error"
	default:
		return "unknown"
	}
}

func (l LogLevel) slogLevel() slog.Level {
	switch l {
	case LogLevelDebug:
		return slog.LevelDebug
	case LogLevelWarn:
		return slog.LevelWarn
	case LogLevelError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Logger writes structured records for the levels it was configured with.
// Levels are enabled individually, so "warn" alone does not imply "error".
type Logger struct {
	levels map[LogLevel]bool
	slog   *slog.Logger
}

var defaultLogger atomic.Pointer[Logger]

func init() {
	defaultLogger.Store(NewLogger([]string{"warn", "error"}, os.Stderr))
}

// ParseLevels turns level names from config or flags into a level set.
// Unknown names are ignored.
func ParseLevels(levels []string) map[LogLevel]bool {
	set := make(map[LogLevel]bool)
	for _, level := range levels {
		level = strings.ToLower(strings.TrimSpace(level))
		switch level {
		case "debug", "query":
			set[LogLevelDebug] = true
		case "info":
			set[LogLevelInfo] = true
		case "warn", "warning":
			set[LogLevelWarn] = true
		case "error":
			set[LogLevelError] = true
		}
	}
	return set
}

// NewLogger creates a logger with a text handler writing to writer.
func NewLogger(levels []string, writer io.Writer) *Logger {
	return FromHandler(levels, slog.NewTextHandler(writer, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
}

// FromHandler wraps an existing slog handler.
func FromHandler(levels []string, h slog.Handler) *Logger {
	return &Logger{
		levels: ParseLevels(levels),
		slog:   slog.New(h),
	}
}

// Discard returns a logger that drops everything.
func Discard() *Logger {
	return &Logger{levels: map[LogLevel]bool{}, slog: slog.New(slog.NewTextHandler(io.Discard, nil))}
}

// SetDefaultLogger replaces the package default logger.
func SetDefaultLogger(logger *Logger) {
	if logger != nil {
		defaultLogger.Store(logger)
	}
}

// GetDefaultLogger returns the package default logger.
func GetDefaultLogger() *Logger {
	return defaultLogger.Load()
}

// Enabled reports whether level is switched on.
func (l *Logger) Enabled(level LogLevel) bool {
	return l != nil && l.levels[level]
}

// With returns a logger that adds attrs to every record.
func (l *Logger) With(attrs ...any) *Logger {
	if l == nil {
		return nil
	}
	return &Logger{levels: l.levels, slog: l.slog.With(redactAttrs(attrs)...)}
}

func (l *Logger) log(level LogLevel, msg string, attrs []any) {
	if !l.Enabled(level) {
		return
	}
	l.slog.Log(context.Background(), level.slogLevel(), msg, redactAttrs(attrs)...)
}

// Debug logs translation-level detail.
func (l *Logger) Debug(msg string, attrs ...any) { l.log(LogLevelDebug, msg, attrs) }

// Info logs lifecycle events.
func (l *Logger) Info(msg string, attrs ...any) { l.log(LogLevelInfo, msg, attrs) }

// Warn logs recoverable anomalies such as misreported metadata.
func (l *Logger) Warn(msg string, attrs ...any) { l.log(LogLevelWarn, msg, attrs) }

// Error logs failures.
func (l *Logger) Error(msg string, attrs ...any) { l.log(LogLevelError, msg, attrs) }

// redactAttrs masks values of key/value pairs whose key or value looks sensitive.
func redactAttrs(attrs []any) []any {
	out := make([]any, len(attrs))
	copy(out, attrs)
	for i := 0; i+1 < len(out); i += 2 {
		key, ok := out[i].(string)
		if !ok {
			continue
		}
		if isSensitiveKey(key) {
			out[i+1] = "***REDACTED***"
			continue
		}
		out[i+1] = formatArg(out[i+1])
	}
	return out
}

// formatArg sanitises a value before it is logged.
func formatArg(arg any) any {
	switch v := arg.(type) {
	case string:
		if isSensitiveData(v) {
			return "***REDACTED***"
		}
		if len(v) > 200 {
			return fmt.Sprintf("%s... (truncated)", v[:200])
		}
		return v
	case []byte:
		if len(v) > 0 {
			return "***REDACTED***"
		}
		return ""
	default:
		return arg
	}
}

func isSensitiveKey(key string) bool {
	key = strings.ToLower(key)
	for _, keyword := range []string{"password", "passwd", "secret", "token", "dsn", "url"} {
		if strings.Contains(key, keyword) {
			return true
		}
	}
	return false
}

// isSensitiveData checks whether a string looks like it carries credentials.
func isSensitiveData(s string) bool {
	s = strings.ToLower(s)
	for _, keyword := range []string{"password=", "passwd=", "pwd=", "secret=", "token=", "api_key="} {
		if strings.Contains(s, keyword) {
			return true
		}
	}
	// user:pass@host in URLs and DSNs
	at := strings.LastIndex(s, "@")
	if at <= 0 {
		return false
	}
	userinfo := s[:at]
	if scheme := strings.Index(userinfo, "://"); scheme >= 0 {
		userinfo = userinfo[scheme+3:]
	}
	return strings.Contains(userinfo, ":")
}

func Debug(msg string, attrs ...any) {
	GetDefaultLogger().Debug(msg, attrs...)
}

func Info(msg string, attrs ...any) {
	GetDefaultLogger().Info(msg, attrs...)
}

func Warn(msg string, attrs ...any) {
	GetDefaultLogger().Warn(msg, attrs...)
}

func Error(msg string, attrs ...any) {
	GetDefaultLogger().Error(msg, attrs...)
}

// SetLogWriter keeps the default logger's levels but writes to writer.
func SetLogWriter(writer io.Writer) {
	current := GetDefaultLogger()
	next := NewLogger(nil, writer)
	next.levels = current.levels
	SetDefaultLogger(next)
}

// FileLogger creates a logger that appends to filename.
func FileLogger(filename string, levels []string) (*Logger, error) {
	file, err := os.OpenFile(filename, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	return NewLogger(levels, file), nil
}
