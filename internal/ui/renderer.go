package ui

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/samdwyer/monsterarena/internal/game"
)

const (
	barWidth    = 20
	inputPrefix = "> "
)

// View is everything one frame shows.
type View struct {
	Standings []game.Standing
	Log       []string
	Input     string
}

// Renderer handles drawing the arena to a canvas.
type Renderer struct {
	canvas  Canvas
	palette *Palette
}

// NewRenderer creates a new renderer for the given canvas.
func NewRenderer(canvas Canvas, palette *Palette) *Renderer {
	return &Renderer{canvas: canvas, palette: palette}
}

// Render draws the standings at the top, the input line at the bottom and
// as much of the log's tail as fits between them.
func (r *Renderer) Render(v View) {
	r.canvas.Clear()
	width, height := r.canvas.Size()

	y := 0
	for _, s := range v.Standings {
		if y >= height-1 {
			break
		}
		r.drawStanding(y, s)
		y++
	}
	if len(v.Standings) > 0 && y < height-1 {
		r.drawText(0, y, repeatRune('─', width), tcell.StyleDefault.Foreground(tcell.ColorDarkGray))
		y++
	}

	rows := height - 1 - y
	logLines := v.Log
	if rows < len(logLines) {
		logLines = logLines[len(logLines)-max(rows, 0):]
	}
	for _, line := range logLines {
		r.drawText(0, y, line, tcell.StyleDefault.Foreground(tcell.ColorWhite))
		y++
	}

	if height > 0 {
		r.drawText(0, height-1, inputPrefix+v.Input, tcell.StyleDefault.Foreground(r.palette.Highlight()).Bold(true))
	}
	r.canvas.Show()
}

func (r *Renderer) drawStanding(y int, s game.Standing) {
	m := s.Monster
	color := r.palette.Element(m.Element)
	if m.Fainted {
		color = r.palette.Fainted()
	}

	marker := ' '
	if s.Choosing {
		marker = '*'
	}
	x := r.drawText(0, y, fmt.Sprintf("%c%d %-12s ", marker, s.Number, m.Name), tcell.StyleDefault.Foreground(color))

	filled := 0
	if m.MaxHP > 0 {
		filled = (barWidth*m.HP + m.MaxHP - 1) / m.MaxHP
	}
	for i := 0; i < barWidth; i++ {
		if i < filled {
			r.canvas.SetContent(x+i, y, '█', tcell.StyleDefault.Foreground(color))
		} else {
			r.canvas.SetContent(x+i, y, '░', tcell.StyleDefault.Foreground(tcell.ColorDarkGray))
		}
	}
	x += barWidth

	status := m.Status.String()
	if m.Fainted {
		status = "FAINTED"
	}
	r.drawText(x, y, fmt.Sprintf(" %d/%d %s", m.HP, m.MaxHP, status), tcell.StyleDefault.Foreground(color))
}

// drawText writes s from (x, y) and returns the column after it. Text past
// the right edge is dropped.
func (r *Renderer) drawText(x, y int, s string, style tcell.Style) int {
	width, _ := r.canvas.Size()
	for _, ch := range s {
		if x >= width {
			break
		}
		r.canvas.SetContent(x, y, ch, style)
		x++
	}
	return x
}

func repeatRune(ch rune, n int) string {
	out := make([]rune, max(n, 0))
	for i := range out {
		out[i] = ch
	}
	return string(out)
}
