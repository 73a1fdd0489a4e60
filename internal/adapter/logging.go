package adapter

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// MaxLogSize is the size at which the log file is rotated on startup.
// One previous file is kept with a ".1" suffix.
const MaxLogSize = 5 << 20

// redactedKeys are attribute names whose values never reach the log
var redactedKeys = map[string]bool{
	"api_key": true,
	"apikey":  true,
}

// SetupLogger initializes the slog logger with file output.
// The terminal belongs to the TUI, so logs never go to stdout/stderr.
func SetupLogger(cfg *LoggingConfig) (*slog.Logger, error) {
	logPath := expandHome(cfg.File)
	if logPath == "" {
		return NullLogger(), nil
	}

	logDir := filepath.Dir(logPath)
	if err := os.MkdirAll(logDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	if err := rotateLog(logPath, MaxLogSize); err != nil {
		return nil, err
	}

	logFile, err := os.OpenFile(logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0600)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}

	return NewJSONLogger(logFile, cfg.Level), nil
}

// rotateLog moves path to path.1 when it has grown past limit
func rotateLog(path string, limit int64) error {
	info, err := os.Stat(path)
	if err != nil || info.Size() < limit {
		return nil
	}
	if err := os.Rename(path, path+".1"); err != nil {
		return fmt.Errorf("failed to rotate log file: %w", err)
	}
	return nil
}

// NewJSONLogger creates a structured JSON logger writing to w. Attributes
// that could carry the catalog API key are masked.
func NewJSONLogger(w io.Writer, level string) *slog.Logger {
	handler := slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level:       parseLogLevel(level),
		ReplaceAttr: redactSecrets,
	})
	return slog.New(handler).With("app", "marquee")
}

func redactSecrets(_ []string, a slog.Attr) slog.Attr {
	if redactedKeys[strings.ToLower(a.Key)] {
		return slog.String(a.Key, "[redacted]")
	}
	return a
}

// parseLogLevel converts a string log level to slog.Level
func parseLogLevel(level string) slog.Level {
	switch strings.ToUpper(level) {
	case "DEBUG":
		return slog.LevelDebug
	case "WARN", "WARNING":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// NullLogger returns a logger that discards all output
func NullLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}
