package tui

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/breakout/internal/core"
)

// BlockChar fills the cells covered by a box.
const BlockChar = '█'

// ScreenRenderer is a core.Renderer that scales the playfield onto a
// terminal cell grid.
type ScreenRenderer struct {
	screen         *core.Screen
	fieldW, fieldH float32
	frames         int
}

// NewScreenRenderer creates a renderer drawing a fieldW x fieldH playfield
// into screen.
func NewScreenRenderer(screen *core.Screen, fieldW, fieldH float32) *ScreenRenderer {
	return &ScreenRenderer{screen: screen, fieldW: fieldW, fieldH: fieldH}
}

// Screen returns the cell buffer being drawn into.
func (r *ScreenRenderer) Screen() *core.Screen { return r.screen }

// Frames returns the number of completed frames.
func (r *ScreenRenderer) Frames() int { return r.frames }

// BeginFrame clears the screen.
func (r *ScreenRenderer) BeginFrame() error {
	r.screen.Clear()
	return nil
}

// DrawBox fills the cells covered by b. Every box covers at least one cell.
func (r *ScreenRenderer) DrawBox(b core.Box, c core.RGB) error {
	r.screen.DrawRect(r.Project(b), BlockChar, c)
	return nil
}

// EndFrame marks the frame complete.
func (r *ScreenRenderer) EndFrame() error {
	r.frames++
	return nil
}

// Close implements core.Renderer.
func (r *ScreenRenderer) Close() error { return nil }

// Project maps a playfield box to the cells it covers.
func (r *ScreenRenderer) Project(b core.Box) core.Rect {
	sx := float64(r.screen.Width()) / float64(r.fieldW)
	sy := float64(r.screen.Height()) / float64(r.fieldH)

	x0 := int(math.Floor(float64(b.Left()) * sx))
	y0 := int(math.Floor(float64(b.Top()) * sy))
	x1 := int(math.Ceil(float64(b.Right()) * sx))
	y1 := int(math.Ceil(float64(b.Bottom()) * sy))
	if x1 <= x0 {
		x1 = x0 + 1
	}
	if y1 <= y0 {
		y1 = y0 + 1
	}
	return core.NewRect(x0, y0, x1-x0, y1-y0)
}

// styleCache maps colors to lipgloss styles.
var styleCache = map[core.RGB]lipgloss.Style{}

func styleFor(c core.RGB) lipgloss.Style {
	if s, ok := styleCache[c]; ok {
		return s
	}
	s := lipgloss.NewStyle().Foreground(lipgloss.Color(c.Hex()))
	styleCache[c] = s
	return s
}

// RenderScreen converts a Screen buffer to a styled string for display.
// Groups adjacent cells with the same color to minimize ANSI escape sequences.
func RenderScreen(s *core.Screen) string {
	var sb strings.Builder
	// Pre-allocate with extra space for ANSI codes
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

		// Group consecutive cells with the same color for efficiency
		x := 0
		for x < s.Width() {
			cell := s.GetCell(x, y)
			startColor := cell.Color

			var run strings.Builder
			blank := true
			for x < s.Width() {
				cell = s.GetCell(x, y)
				if cell.Color != startColor {
					break
				}
				if cell.Rune != ' ' {
					blank = false
				}
				run.WriteRune(cell.Rune)
				x++
			}

			if blank {
				sb.WriteString(run.String())
				continue
			}
			sb.WriteString(styleFor(startColor).Render(run.String()))
		}
	}
	return sb.String()
}
