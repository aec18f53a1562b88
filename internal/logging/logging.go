package logging

import (
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/arcanaland/patience/internal/config"
)

// Init configures the global zerolog logger. Output goes to stderr so it
// never interleaves with the board drawn on stdout.
func Init(cfg config.LogConfig) {
	InitWriter(cfg, os.Stderr)
}

// InitWriter configures the global logger to write to w
func InitWriter(cfg config.LogConfig, w io.Writer) {
	level := zerolog.WarnLevel
	if v := strings.TrimSpace(cfg.Level); v != "" {
		if parsed, err := zerolog.ParseLevel(strings.ToLower(v)); err == nil {
			level = parsed
		}
	}

	output := w
	if cfg.Pretty {
		output = zerolog.ConsoleWriter{Out: w, NoColor: true}
	}

	zerolog.SetGlobalLevel(level)
	log.Logger = zerolog.New(output).With().Timestamp().Logger()
}
