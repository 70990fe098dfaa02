package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/breakout/internal/config"
	"github.com/vovakirdan/breakout/internal/games/breakout"
)

// fail prints err and exits. The profile is flushed first since os.Exit
// skips the post-run hook.
func fail(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	stopProfile()
	os.Exit(1)
}

// openLogOutput returns where logs go. Without --log-file, logs go to
// stderr unless they would corrupt the terminal UI.
func openLogOutput(quietByDefault bool) (io.Writer, func(), error) {
	if flagLogFile == "" {
		if quietByDefault {
			return io.Discard, func() {}, nil
		}
		return os.Stderr, func() {}, nil
	}
	f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, nil, fmt.Errorf("cannot open log file: %w", err)
	}
	return f, func() { _ = f.Close() }, nil
}

// newLogger creates the application logger writing to w.
func newLogger(w io.Writer) (*log.Logger, error) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid --log-level: %w", err)
	}
	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.TimeOnly,
		Prefix:          "breakout",
	})
	logger.SetLevel(level)
	return logger, nil
}

// loadConfig resolves the game config and applies the difficulty preset.
func loadConfig(logger *log.Logger) (config.BreakoutConfig, error) {
	preset, err := config.ParsePreset(flagDifficulty)
	if err != nil {
		return config.BreakoutConfig{}, err
	}

	cfg, source, err := config.LoadBreakout(flagConfig)
	if err != nil {
		return config.BreakoutConfig{}, err
	}
	config.ApplyBreakoutPreset(&cfg, preset)

	logger.Debug("config loaded", "source", source, "difficulty", string(preset), "layout", cfg.Bricks.Layout)
	return cfg, nil
}

// newGame loads the config and creates a game.
func newGame(logger *log.Logger, opts ...breakout.Option) (*breakout.Game, error) {
	cfg, err := loadConfig(logger)
	if err != nil {
		return nil, err
	}
	return breakout.New(cfg, append([]breakout.Option{breakout.WithLogger(logger)}, opts...)...)
}
