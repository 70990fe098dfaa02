package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/breakout/internal/core"
	"github.com/vovakirdan/breakout/internal/platform/headless"
)

var (
	flagFrames uint64
	flagScript string
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Run the game headless and print the final state",
	Long: `Runs the game without a display for a number of frames, feeding key
events from an optional YAML script, then prints a snapshot of the final
state as YAML.

A script is a list of key transitions:

  - {frame: 0, key: right, state: down}
  - {frame: 40, key: right, state: up}

Examples:
  breakout simulate --frames 600
  breakout simulate --frames 3000 --script ./moves.yaml --difficulty hard`,
	Args: cobra.NoArgs,
	Run:  runSimulate,
}

func init() {
	simulateCmd.Flags().Uint64Var(&flagFrames, "frames", 600, "Number of frames to run (0 = until the script presses escape)")
	simulateCmd.Flags().StringVar(&flagScript, "script", "", "Path to an input script YAML")
}

func runSimulate(cmd *cobra.Command, args []string) {
	out, closeLog, err := openLogOutput(false)
	if err != nil {
		fail("%v", err)
	}
	defer closeLog()

	logger, err := newLogger(out)
	if err != nil {
		fail("%v", err)
	}

	var script *headless.Script
	if flagScript != "" {
		if script, err = headless.LoadScript(flagScript); err != nil {
			fail("%v", err)
		}
	}
	if flagFrames == 0 && script.Len() == 0 {
		fail("--frames 0 needs a script that presses escape")
	}

	game, err := newGame(logger)
	if err != nil {
		fail("%v", err)
	}
	defer game.Close()

	backend := headless.New(headless.WithScript(script), headless.WithMaxFrames(flagFrames))
	if err := backend.Run(context.Background(), game, core.RuntimeConfig{TickRate: flagFPS}); err != nil {
		fail("running game: %v", err)
	}

	snap := game.Snapshot()
	enc := yaml.NewEncoder(os.Stdout)
	enc.SetIndent(2)
	if err := enc.Encode(snap); err != nil {
		fail("encoding snapshot: %v", err)
	}
	_ = enc.Close()
	fmt.Printf("# hash: %016x\n", snap.Hash())
}
