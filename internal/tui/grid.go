package tui

import (
	"strings"

	lipgloss "charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"
)

// grid is one styled terminal row built cell by cell. Runs of cells sharing
// a style are rendered together.
type grid struct {
	cells  []string
	styles []int
	pal    []lipgloss.Style
}

func newGrid(width int, fill string, base lipgloss.Style) *grid {
	g := &grid{
		cells:  make([]string, width),
		styles: make([]int, width),
		pal:    []lipgloss.Style{base},
	}
	for i := range g.cells {
		g.cells[i] = fill
	}
	return g
}

// style registers s and returns its index.
func (g *grid) style(s lipgloss.Style) int {
	g.pal = append(g.pal, s)
	return len(g.pal) - 1
}

func (g *grid) width() int { return len(g.cells) }

// set writes one cell. Out of range columns are ignored.
func (g *grid) set(x int, cell string, style int) {
	if x < 0 || x >= len(g.cells) {
		return
	}
	g.cells[x] = cell
	g.styles[x] = style
}

// fill paints [from, to) with cell.
func (g *grid) fill(from, to int, cell string, style int) {
	for x := max(from, 0); x < min(to, len(g.cells)); x++ {
		g.set(x, cell, style)
	}
}

// write places text starting at x, clipped to limit cells. Wide runes take
// two cells.
func (g *grid) write(x, limit int, text string, style int) {
	end := min(x+limit, len(g.cells))
	for _, r := range text {
		s := string(r)
		w := ansi.StringWidth(s)
		if w == 0 {
			continue
		}
		if x+w > end {
			return
		}
		g.set(x, s, style)
		for i := 1; i < w; i++ {
			g.set(x+i, "", style)
		}
		x += w
	}
}

func (g *grid) String() string {
	var sb strings.Builder
	var run strings.Builder
	current := -1
	flush := func() {
		if run.Len() > 0 {
			sb.WriteString(g.pal[current].Render(run.String()))
			run.Reset()
		}
	}
	for i, cell := range g.cells {
		if g.styles[i] != current {
			flush()
			current = g.styles[i]
		}
		run.WriteString(cell)
	}
	flush()
	return sb.String()
}
