package logger

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"gopkg.in/natefinch/lumberjack.v2"
)

type Config struct {
	// debug, info, warn, error
	Level string
	// text, json or logfmt
	Format string
	// Optional rotating log file. Empty means stderr only.
	File string
}

// New builds a slog logger backed by charmbracelet/log and sets it as default.
func New(cfg Config) (*slog.Logger, error) {
	level, err := log.ParseLevel(strings.ToLower(cfg.Level))
	if err != nil {
		level = log.InfoLevel
	}
	var w io.Writer = os.Stderr
	if cfg.File != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.File), 0755); err != nil {
			return nil, err
		}
		w = io.MultiWriter(os.Stderr, &lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    10, // megabytes
			MaxBackups: 3,
			MaxAge:     28, // days
			Compress:   true,
		})
	}
	handler := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Level:           level,
		Prefix:          "coco",
		Formatter:       formatter(cfg.Format),
	})
	logger := slog.New(handler)
	slog.SetDefault(logger)
	return logger, nil
}

func formatter(name string) log.Formatter {
	switch strings.ToLower(name) {
	case "json":
		return log.JSONFormatter
	case "logfmt":
		return log.LogfmtFormatter
	default:
		return log.TextFormatter
	}
}

// Discard is used by tests and tools that don't want output.
func Discard() *slog.Logger {
	return slog.New(log.New(io.Discard))
}
