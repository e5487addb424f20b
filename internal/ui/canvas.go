package ui

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/litescript/ls-cosmos/internal/astro"
	"github.com/litescript/ls-cosmos/internal/scene"
	"github.com/litescript/ls-cosmos/internal/state"
)

// cell is one character of the scene canvas.
type cell struct {
	ch    rune
	style lipgloss.Style
	set   bool
}

type canvas struct {
	w, h  int
	cells [][]cell
}

func newCanvas(w, h int) *canvas {
	c := &canvas{w: w, h: h, cells: make([][]cell, h)}
	for y := range c.cells {
		c.cells[y] = make([]cell, w)
	}
	return c
}

// put writes a glyph unless the cell is taken and force is false.
func (c *canvas) put(x, y int, ch rune, style lipgloss.Style, force bool) {
	if x < 0 || y < 0 || x >= c.w || y >= c.h {
		return
	}
	if c.cells[y][x].set && !force {
		return
	}
	c.cells[y][x] = cell{ch: ch, style: style, set: true}
}

func (c *canvas) text(x, y int, s string, style lipgloss.Style) {
	for i, r := range []rune(s) {
		if x+i >= c.w {
			return
		}
		cur := c.cells[y][x+i]
		if !cur.set || cur.ch == '·' || cur.ch == '˙' {
			c.put(x+i, y, r, style, true)
		}
	}
}

func (c *canvas) String() string {
	var b strings.Builder
	for y, row := range c.cells {
		for _, cl := range row {
			if !cl.set {
				b.WriteByte(' ')
				continue
			}
			b.WriteString(cl.style.Render(string(cl.ch)))
		}
		if y < c.h-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

var (
	ringStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("238"))
	sunStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("220")).Bold(true)
	labelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("249"))
	starStyles = []lipgloss.Style{
		lipgloss.NewStyle().Foreground(lipgloss.Color("236")),
		lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
		lipgloss.NewStyle().Foreground(lipgloss.Color("250")),
	}
)

// sceneFrame is what one render needs from the outside world.
type sceneFrame struct {
	scene   *scene.Scene
	view    astro.View
	quality state.Quality
	focus   string // highlighted planet id
	labels  bool
}

// screenPos is a planet's projected grid position from the last render.
type screenPos struct {
	id   string
	x, y int
}

// renderScene projects the starfield, orbit rings, sun and planets through
// the camera onto a w×h canvas.
func renderScene(f sceneFrame, w, h int) (string, []screenPos) {
	c := newCanvas(w, h)
	cfg := astro.DefaultProjectionConfig(w, h)
	secs := f.scene.Elapsed().Seconds()

	if stars := f.scene.Stars(); stars != nil {
		for _, i := range stars.Subset(scene.StarStride(f.quality)) {
			p, ok := astro.Project(stars.Stars[i].Pos, f.view, cfg)
			if !ok || !p.InBounds(cfg) {
				continue
			}
			ch, style := starGlyph(stars.Brightness(i, secs))
			if ch != ' ' {
				c.put(int(p.X), int(p.Y), ch, style, false)
			}
		}
	}

	segs := scene.RingSegments(f.quality)
	bodies := f.scene.Bodies()
	for _, b := range bodies {
		r := b.Planet.OrbitRadius
		for s := range segs {
			a := 2 * math.Pi * float64(s) / float64(segs)
			p, ok := astro.Project(astro.Vec3{X: r * math.Cos(a), Z: r * math.Sin(a)}, f.view, cfg)
			if ok && p.InBounds(cfg) {
				c.put(int(p.X), int(p.Y), '·', ringStyle, true)
			}
		}
	}

	if p, ok := astro.Project(astro.Vec3{}, f.view, cfg); ok && p.InBounds(cfg) {
		c.put(int(p.X), int(p.Y), '☉', sunStyle, true)
	}

	var out []screenPos
	for _, b := range bodies {
		p, ok := astro.Project(b.Pos, f.view, cfg)
		if !ok || !p.InBounds(cfg) {
			continue
		}
		x, y := int(p.X), int(p.Y)
		out = append(out, screenPos{id: b.Planet.ID, x: x, y: y})

		focused := b.Planet.ID == f.focus
		style := hexStyle(b.Planet.Color)
		glyph := '•'
		if p.Scale*b.Planet.Size >= 1.5 {
			glyph = '●'
		}
		if focused {
			glyph = '◉'
			style = style.Bold(true)
		}
		c.put(x, y, glyph, style, true)

		switch {
		case focused:
			c.text(x+2, y, "◄ "+b.Planet.Name, activeStyle)
		case f.labels:
			c.text(x+2, y, b.Planet.Name, labelStyle)
		}
	}
	return c.String(), out
}

func starGlyph(brightness float64) (rune, lipgloss.Style) {
	switch {
	case brightness >= 0.7:
		return '∗', starStyles[2]
	case brightness >= 0.4:
		return '·', starStyles[1]
	case brightness >= 0.2:
		return '˙', starStyles[0]
	}
	return ' ', starStyles[0]
}

// hit returns the planet drawn nearest to (x, y), within two columns and
// one row.
func hit(positions []screenPos, x, y int) (string, bool) {
	best, bestD := "", math.MaxInt
	for _, p := range positions {
		dx, dy := abs(p.x-x), abs(p.y-y)
		if dx > 2 || dy > 1 {
			continue
		}
		if d := dx + 2*dy; d < bestD {
			best, bestD = p.id, d
		}
	}
	return best, best != ""
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
