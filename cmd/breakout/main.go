// breakout is a Breakout clone that runs in a terminal, a native window or
// headless.
//
// Usage:
//
//	breakout play                 - Play in the terminal
//	breakout play --backend window - Play in a native window
//	breakout backends             - List presentation backends
//	breakout layouts              - List brick layouts
//	breakout simulate             - Run headless and print the final state
//
// Global flags:
//
//	--fps <rate>          - Set tick rate (default: 60)
//	--config <path>       - Custom config YAML
//	--difficulty <preset> - easy, normal, hard or fixed
//	--log-level <level>   - debug, info, warn or error
//	--log-file <path>     - Write logs to a file
//	--profile <mode>      - cpu or mem
package main

import (
	"fmt"
	"os"

	"github.com/pkg/profile"
	"github.com/spf13/cobra"

	// Import backends to register them
	_ "github.com/vovakirdan/breakout/internal/platform/headless"
	_ "github.com/vovakirdan/breakout/internal/platform/tui"
	_ "github.com/vovakirdan/breakout/internal/platform/window"
)

var (
	// Global flags
	flagFPS        int
	flagConfig     string
	flagDifficulty string
	flagLogLevel   string
	flagLogFile    string
	flagProfile    string
)

// profiler is the running profile, stopped after the command finishes.
var profiler interface{ Stop() }

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "breakout",
	Short: "Breakout - bounce a ball, break the bricks",
	Long: `Breakout moves a paddle along the bottom of the playfield to keep a
ball bouncing into a wall of bricks.

Available commands:
  play      - Play the game
  backends  - Show available presentation backends
  layouts   - Show built-in brick layouts
  simulate  - Run the game headless and print a snapshot

Examples:
  breakout play
  breakout play --backend window
  breakout play --difficulty hard
  breakout simulate --frames 600 --script ./moves.yaml`,
	PersistentPreRunE: startProfile,
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		stopProfile()
	},
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file")
	rootCmd.PersistentFlags().StringVar(&flagProfile, "profile", "", "Write a profile: cpu or mem")

	// Add subcommands
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(backendsCmd)
	rootCmd.AddCommand(layoutsCmd)
	rootCmd.AddCommand(simulateCmd)
}

func startProfile(cmd *cobra.Command, args []string) error {
	switch flagProfile {
	case "":
		return nil
	case "cpu":
		profiler = profile.Start(profile.CPUProfile, profile.ProfilePath("."), profile.NoShutdownHook)
	case "mem":
		profiler = profile.Start(profile.MemProfileAllocs, profile.ProfilePath("."), profile.NoShutdownHook)
	default:
		return fmt.Errorf("unknown profile mode %q (want cpu or mem)", flagProfile)
	}
	return nil
}

func stopProfile() {
	if profiler != nil {
		profiler.Stop()
		profiler = nil
	}
}
