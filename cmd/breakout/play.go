package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/breakout/internal/core"
	"github.com/vovakirdan/breakout/internal/games/breakout"
	"github.com/vovakirdan/breakout/internal/platform/tui"
	"github.com/vovakirdan/breakout/internal/registry"
)

var (
	flagBackend    string
	flagPickLayout bool
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play the game",
	Long: `Start playing Breakout on the selected backend.

Controls:
  Left/A/H   - Move paddle left
  Right/D/L  - Move paddle right
  Esc/Q      - Quit

Difficulty options:
  easy   - Slower ball, wider paddle, progresses with destroyed bricks
  normal - Default sizes, progresses with destroyed bricks
  hard   - Faster ball and paddle, narrower paddle
  fixed  - No progression

Examples:
  breakout play
  breakout play --backend window
  breakout play --difficulty easy
  breakout play --pick-layout
  breakout play --config ./my-breakout.yaml`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagBackend, "backend", "terminal", "Presentation backend: terminal, window, headless")
	playCmd.Flags().BoolVar(&flagPickLayout, "pick-layout", false, "Choose the brick layout from a menu first")
}

func runPlay(cmd *cobra.Command, args []string) {
	// Check if backend exists
	if !registry.Exists(flagBackend) {
		fmt.Fprintf(os.Stderr, "Error: unknown backend %q\n", flagBackend)
		fmt.Fprintln(os.Stderr, "Run 'breakout backends' to see available backends.")
		os.Exit(1)
	}

	// The terminal UI owns stdout, so logs are off unless --log-file is set.
	out, closeLog, err := openLogOutput(flagBackend == "terminal")
	if err != nil {
		fail("%v", err)
	}
	defer closeLog()

	logger, err := newLogger(out)
	if err != nil {
		fail("%v", err)
	}

	// Get terminal size
	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil { //#nosec G115
		width = w
		height = h
	}

	rcfg := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
	}

	var opts []breakout.Option
	if flagBackend == "headless" && flagFPS > 0 {
		// Headless play runs in real time; the other backends tick themselves.
		opts = append(opts, breakout.WithFrameInterval(time.Second/time.Duration(flagFPS)))
	}

	if flagPickLayout {
		layout, pickErr := tui.RunLayoutPicker(layoutFromConfig(logger), rcfg)
		if pickErr != nil {
			fail("%v", pickErr)
		}
		// User quit the picker
		if layout == nil {
			return
		}
		opts = append(opts, breakout.WithLayout(layout))
	}

	game, err := newGame(logger, opts...)
	if err != nil {
		fail("%v", err)
	}
	defer game.Close()

	backend, err := registry.Create(flagBackend)
	if err != nil {
		fail("creating backend: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := backend.Run(ctx, game, rcfg); err != nil {
		closeLog()
		fail("running game: %v", err)
	}

	snap := game.Snapshot()
	logger.Info("game over", "frames", snap.Frame, "bricks_destroyed", snap.BricksDestroyed, "bricks_remaining", snap.BricksRemaining)
}

// layoutFromConfig returns the configured layout ID so the picker starts on
// it. Config errors surface later when the game is created.
func layoutFromConfig(logger *log.Logger) string {
	cfg, err := loadConfig(logger)
	if err != nil {
		return ""
	}
	return cfg.Bricks.Layout
}
