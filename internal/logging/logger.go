package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"
)

// L is the process-wide logger. It discards everything until InitLogger is called.
var L = slog.New(slog.NewTextHandler(io.Discard, nil))

// ParseLevel maps a level name to a slog level. Unknown names fall back to
// info and report ok=false.
func ParseLevel(name string) (slog.Level, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		return slog.LevelDebug, true
	case "", "info":
		return slog.LevelInfo, true
	case "warn", "warning":
		return slog.LevelWarn, true
	case "error":
		return slog.LevelError, true
	default:
		return slog.LevelInfo, false
	}
}

// New builds a logger writing to w. format is "json" or "text"; timestamps
// are RFC3339.
func New(w io.Writer, level, format string) (*slog.Logger, error) {
	lvl, ok := ParseLevel(level)
	if !ok {
		return nil, fmt.Errorf("unknown log level %q", level)
	}
	opts := &slog.HandlerOptions{
		Level: lvl,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey {
				if t, ok := a.Value.Any().(time.Time); ok {
					a.Value = slog.StringValue(t.Format(time.RFC3339))
				}
			}
			return a
		},
	}

	var handler slog.Handler
	switch strings.ToLower(format) {
	case "", "text":
		handler = slog.NewTextHandler(w, opts)
	case "json":
		handler = slog.NewJSONHandler(w, opts)
	default:
		return nil, fmt.Errorf("unknown log format %q", format)
	}
	return slog.New(handler), nil
}

// InitLogger installs the process-wide logger on stderr so report output on stdout
// stays clean.
func InitLogger(level, format string) error {
	logger, err := New(os.Stderr, level, format)
	if err != nil {
		return err
	}
	L = logger
	slog.SetDefault(L)
	L.Debug("logger initialized", "level", level, "format", format)
	return nil
}

// CalcLogger adapts a slog logger to the printf-style logger the estimator
// expects.
type CalcLogger struct {
	L *slog.Logger
}

// ForCalculation wraps the process-wide logger.
func ForCalculation() CalcLogger { return CalcLogger{L: L} }

func (c CalcLogger) logger() *slog.Logger {
	if c.L == nil {
		return L
	}
	return c.L
}

func (c CalcLogger) Debugf(format string, args ...any) {
	c.logger().Debug(fmt.Sprintf(format, args...))
}

func (c CalcLogger) Infof(format string, args ...any) {
	c.logger().Info(fmt.Sprintf(format, args...))
}

func (c CalcLogger) Warnf(format string, args ...any) {
	c.logger().Warn(fmt.Sprintf(format, args...))
}

func (c CalcLogger) Errorf(format string, args ...any) {
	c.logger().Error(fmt.Sprintf(format, args...))
}
