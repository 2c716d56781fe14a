// Package logging builds the zerolog logger used by the CLI and MCP server.
package logging

import (
	"io"
	"strings"

	"github.com/rs/zerolog"

	"github.com/hpungsan/optom/internal/config"
)

// New returns a logger writing to w at cfg.LogLevel. An unknown or empty
// level falls back to warn. w should not be the MCP transport (stdout).
func New(w io.Writer, cfg *config.Config) zerolog.Logger {
	if cfg.LogConsole {
		w = zerolog.ConsoleWriter{Out: w}
	}
	return zerolog.New(w).Level(ParseLevel(cfg.LogLevel)).With().Timestamp().Logger()
}

// ParseLevel maps a level name to a zerolog level.
func ParseLevel(s string) zerolog.Level {
	level, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(s)))
	if err != nil || level == zerolog.NoLevel {
		return zerolog.WarnLevel
	}
	return level
}
