package breakout

import (
	"fmt"
	"sort"

	"github.com/vovakirdan/breakout/internal/config"
	"github.com/vovakirdan/breakout/internal/core"
)

// brickColors maps layout characters to brick colors.
var brickColors = map[byte]core.RGB{
	'R': core.ColorRed,
	'O': core.ColorOrange,
	'G': core.ColorGreen,
	'Y': core.ColorYellow,
	'B': core.ColorBlue,
	'W': core.ColorWhite,
}

// Layout is a brick arrangement on a grid of cells.
type Layout struct {
	ID     string
	Name   string
	Width  int          // Number of brick columns
	Height int          // Number of brick rows
	Cells  [][]core.RGB // [row][col]; only meaningful where Has is true
	filled [][]bool
}

// Count returns the number of bricks in the layout.
func (l *Layout) Count() int {
	n := 0
	for _, row := range l.filled {
		for _, ok := range row {
			if ok {
				n++
			}
		}
	}
	return n
}

// Has reports whether the cell at (row, col) holds a brick.
func (l *Layout) Has(row, col int) bool {
	if row < 0 || row >= len(l.filled) || col < 0 || col >= len(l.filled[row]) {
		return false
	}
	return l.filled[row][col]
}

// Bricks places the layout in playfield coordinates, row by row.
func (l *Layout) Bricks(cfg config.BricksConfig) []Entity {
	bricks := make([]Entity, 0, l.Count())
	for row := range l.Height {
		for col := range l.Width {
			if !l.filled[row][col] {
				continue
			}
			x := cfg.OriginX + float32(col)*cfg.StrideX
			y := cfg.OriginY + float32(row)*cfg.StrideY
			bricks = append(bricks, Entity{
				Box:   core.NewBox(x, y, cfg.Width, cfg.Height),
				Color: l.Cells[row][col],
			})
		}
	}
	return bricks
}

// ParseLayout creates a Layout from an ASCII map.
// Characters:
//
//	'R' = red, 'O' = orange, 'G' = green
//	'Y' = yellow, 'B' = blue, 'W' = white
//	'.' = empty
//
// Any other character is an error.
func ParseLayout(id, name string, lines []string) (*Layout, error) {
	maxWidth := 0
	for _, line := range lines {
		maxWidth = max(maxWidth, len(line))
	}

	l := &Layout{
		ID:     id,
		Name:   name,
		Width:  maxWidth,
		Height: len(lines),
		Cells:  make([][]core.RGB, len(lines)),
		filled: make([][]bool, len(lines)),
	}

	for row, line := range lines {
		l.Cells[row] = make([]core.RGB, maxWidth)
		l.filled[row] = make([]bool, maxWidth)
		for col := range len(line) {
			ch := line[col]
			if ch == '.' {
				continue
			}
			c, ok := brickColors[ch]
			if !ok {
				return nil, fmt.Errorf("breakout: layout %s: unknown brick %q at row %d, column %d", id, ch, row, col)
			}
			l.Cells[row][col] = c
			l.filled[row][col] = true
		}
	}
	return l, nil
}

func mustParseLayout(id, name string, lines []string) *Layout {
	l, err := ParseLayout(id, name, lines)
	if err != nil {
		panic(err)
	}
	return l
}

// BuiltinLayouts returns all built-in layouts sorted by ID.
func BuiltinLayouts() []*Layout {
	layouts := []*Layout{
		// Six rows of ten: two red, two orange, two green.
		mustParseLayout("classic", "Classic", []string{
			"RRRRRRRRRR",
			"RRRRRRRRRR",
			"OOOOOOOOOO",
			"OOOOOOOOOO",
			"GGGGGGGGGG",
			"GGGGGGGGGG",
		}),

		mustParseLayout("pyramid", "Pyramid", []string{
			"....RR....",
			"...OOOO...",
			"..YYYYYY..",
			".GGGGGGGG.",
			"BBBBBBBBBB",
		}),

		mustParseLayout("checker", "Checkerboard", []string{
			"R.R.R.R.R.",
			".O.O.O.O.O",
			"Y.Y.Y.Y.Y.",
			".G.G.G.G.G",
			"B.B.B.B.B.",
			".W.W.W.W.W",
		}),

		mustParseLayout("striped", "Striped", []string{
			"RRRRRRRRRR",
			"..........",
			"YYYYYYYYYY",
			"..........",
			"GGGGGGGGGG",
			"..........",
			"BBBBBBBBBB",
		}),
	}
	sort.Slice(layouts, func(i, j int) bool { return layouts[i].ID < layouts[j].ID })
	return layouts
}

// LayoutByID returns a built-in layout by its ID.
func LayoutByID(id string) (*Layout, bool) {
	for _, l := range BuiltinLayouts() {
		if l.ID == id {
			return l, true
		}
	}
	return nil, false
}
