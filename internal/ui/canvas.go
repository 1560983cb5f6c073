package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/tmux-dojo/dojo/internal/layout"
)

type cell struct {
	r     rune
	style *lipgloss.Style
}

// canvas is a fixed grid of styled cells used to draw pane borders and
// overlays before they are flattened into lines.
type canvas struct {
	w, h  int
	cells [][]cell
}

func newCanvas(w, h int) *canvas {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	cells := make([][]cell, h)
	for y := range cells {
		row := make([]cell, w)
		for x := range row {
			row[x].r = ' '
		}
		cells[y] = row
	}
	return &canvas{w: w, h: h, cells: cells}
}

func (c *canvas) set(x, y int, r rune, style *lipgloss.Style) {
	if x < 0 || y < 0 || x >= c.w || y >= c.h {
		return
	}
	c.cells[y][x] = cell{r: r, style: style}
}

// text writes s starting at x, clipped to limit cells.
func (c *canvas) text(x, y int, s string, limit int, style *lipgloss.Style) {
	n := 0
	for _, r := range ansi.Strip(s) {
		if n >= limit {
			return
		}
		if r == '\t' {
			r = ' '
		}
		c.set(x+n, y, r, style)
		n++
	}
}

func (c *canvas) box(r layout.Rect, style *lipgloss.Style) {
	if r.Empty() {
		return
	}
	right, bottom := r.X+r.W-1, r.Y+r.H-1
	for x := r.X + 1; x < right; x++ {
		c.set(x, r.Y, '─', style)
		c.set(x, bottom, '─', style)
	}
	for y := r.Y + 1; y < bottom; y++ {
		c.set(r.X, y, '│', style)
		c.set(right, y, '│', style)
	}
	c.set(r.X, r.Y, '┌', style)
	c.set(right, r.Y, '┐', style)
	c.set(r.X, bottom, '└', style)
	c.set(right, bottom, '┘', style)
}

// centerIn writes s in the middle of r.
func (c *canvas) centerIn(r layout.Rect, s string, style *lipgloss.Style) {
	w := len([]rune(s))
	x := r.X + (r.W-w)/2
	if x < r.X {
		x = r.X
	}
	c.text(x, r.Y+r.H/2, s, r.W, style)
}

// render flattens the grid, styling each run of cells that share a style.
func (c *canvas) render() string {
	lines := make([]string, c.h)
	var b, run strings.Builder
	for y, row := range c.cells {
		b.Reset()
		var current *lipgloss.Style
		flush := func() {
			if run.Len() == 0 {
				return
			}
			if current != nil {
				b.WriteString(current.Render(run.String()))
			} else {
				b.WriteString(run.String())
			}
			run.Reset()
		}
		for _, cl := range row {
			if cl.style != current {
				flush()
				current = cl.style
			}
			run.WriteRune(cl.r)
		}
		flush()
		lines[y] = b.String()
	}
	return strings.Join(lines, "\n")
}
