// Package logger builds the zerolog logger used by the command line tool.
package logger

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Output formats.
const (
	FormatConsole = "console"
	FormatJSON    = "json"
)

// Config describes the logger.
type Config struct {
	Level   string    // trace, debug, info, warn, error; empty means info
	Format  string    // console or json; empty means console
	Output  io.Writer // defaults to os.Stderr
	NoColor bool      // console only
}

// Setup creates a logger from cfg. The level is applied to the returned
// logger only; zerolog's global level is left alone.
func Setup(cfg Config) (zerolog.Logger, error) {
	levelName := strings.ToLower(strings.TrimSpace(cfg.Level))
	if levelName == "" {
		levelName = zerolog.InfoLevel.String()
	}
	level, err := zerolog.ParseLevel(levelName)
	if err != nil {
		return zerolog.Nop(), fmt.Errorf("invalid log level '%s': %w", cfg.Level, err)
	}

	output := cfg.Output
	if output == nil {
		output = os.Stderr
	}

	switch strings.ToLower(strings.TrimSpace(cfg.Format)) {
	case "", FormatConsole:
		output = zerolog.ConsoleWriter{
			Out:        output,
			TimeFormat: time.RFC3339,
			NoColor:    cfg.NoColor,
		}
	case FormatJSON:
	default:
		return zerolog.Nop(), fmt.Errorf("invalid log format '%s': expected %s or %s", cfg.Format, FormatConsole, FormatJSON)
	}

	return zerolog.New(output).Level(level).With().Timestamp().Logger(), nil
}
