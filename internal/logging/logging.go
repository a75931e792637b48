package logging

import (
	"io"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/thenoetrevino/tablero/internal/config"
)

// Logger is the global slog instance for the application
var Logger *slog.Logger

// Init initializes the logging system. By default logs go to
// ~/.tablero/logs/tablero.log; cfg.File "-" sends them to stderr.
// Uses text format for human readability.
func Init(cfg config.LogConfig) (io.Closer, error) {
	out, closer, err := openOutput(cfg.File)
	if err != nil {
		return nil, err
	}

	handler := slog.NewTextHandler(out, &slog.HandlerOptions{
		Level: ParseLevel(cfg.Level),
	})

	Logger = slog.New(handler)
	slog.SetDefault(Logger)

	// Redirect standard log package output to the same place
	log.SetOutput(out)
	log.SetFlags(log.LstdFlags)

	return closer, nil
}

// ParseLevel maps a config string to a slog level, defaulting to info
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	return slog.LevelInfo
}

func openOutput(path string) (io.Writer, io.Closer, error) {
	if path == "-" {
		return os.Stderr, io.NopCloser(os.Stderr), nil
	}

	if path == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return nil, nil, err
		}
		path = filepath.Join(homeDir, ".tablero", "logs", "tablero.log")
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, nil, err
	}

	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, err
	}
	return file, file, nil
}
