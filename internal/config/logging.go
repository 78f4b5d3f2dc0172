package config

import (
	"log/slog"
	"math"
	"os"
	"time"

	"github.com/charmbracelet/log"
)

// SetupLogging wires slog onto charmbracelet/log, the same way the
// teacher's root command does: verbose count raises the level, quiet
// silences everything.
func SetupLogging(verbose int, quiet bool) {
	level := log.ErrorLevel - log.Level(verbose*4)
	if quiet {
		level = log.Level(math.MaxInt32)
	}

	logger := log.NewWithOptions(os.Stderr, log.Options{
		TimeFormat: time.RFC822,
		Level:      level,
	})
	slog.SetDefault(slog.New(logger))
}
