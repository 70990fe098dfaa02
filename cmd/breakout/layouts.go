package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/breakout/internal/games/breakout"
)

var flagLayoutsShow bool

var layoutsCmd = &cobra.Command{
	Use:   "layouts",
	Short: "List built-in brick layouts",
	Long: `Shows the built-in brick layouts. Select one with bricks.layout in the
config file.`,
	Run: runLayouts,
}

func init() {
	layoutsCmd.Flags().BoolVar(&flagLayoutsShow, "show", false, "Print each layout grid")
}

func runLayouts(cmd *cobra.Command, args []string) {
	layouts := breakout.BuiltinLayouts()

	maxIDLen := 2
	for _, l := range layouts {
		maxIDLen = max(maxIDLen, len(l.ID))
	}

	fmt.Printf("  %-*s  %-14s  %s\n", maxIDLen, "ID", "Name", "Bricks")
	fmt.Printf("  %-*s  %-14s  %s\n", maxIDLen, "--", "----", "------")
	for _, l := range layouts {
		fmt.Printf("  %-*s  %-14s  %d\n", maxIDLen, l.ID, l.Name, l.Count())
		if flagLayoutsShow {
			fmt.Println(indent(layoutGrid(l), "      "))
		}
	}
}

// layoutGrid draws a layout with '#' for bricks and '.' for gaps.
func layoutGrid(l *breakout.Layout) string {
	var sb strings.Builder
	for row := range l.Height {
		if row > 0 {
			sb.WriteByte('\n')
		}
		for col := range l.Width {
			if l.Has(row, col) {
				sb.WriteByte('#')
			} else {
				sb.WriteByte('.')
			}
		}
	}
	return sb.String()
}

func indent(s, prefix string) string {
	return prefix + strings.ReplaceAll(s, "\n", "\n"+prefix)
}
