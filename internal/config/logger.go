package config

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// SetupLogger installs the default slog logger for LOG_LEVEL and LOG_FORMAT.
// Records go to stderr, tagged with the command name.
func SetupLogger(cfg *Config, command string) {
	slog.SetDefault(NewLogger(os.Stderr, cfg).With("cmd", command))
}

// NewLogger builds a logger writing to w. Unknown levels mean info and
// unknown formats mean text.
func NewLogger(w io.Writer, cfg *Config) *slog.Logger {
	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}

	if strings.EqualFold(cfg.LogFormat, "json") {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}
