package terminal

import (
	"fmt"
	"math"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/pixil98/corvax-lab/internal/display"
	"github.com/pixil98/corvax-lab/internal/sim"
)

const (
	hudRows      = 2
	minLogRows   = 1
	lowResources = "Low on TCorvax: build a Reactor!"
)

// canvas is the part of tcell.Screen the renderer draws on.
type canvas interface {
	SetContent(x, y int, primary rune, combining []rune, style tcell.Style)
	Size() (int, int)
}

type layout struct {
	width   int
	height  int
	world   Viewport
	logTop  int
	logRows int
}

func newLayout(width, height, logRows int) layout {
	logRows = max(min(logRows, height-hudRows-1), minLogRows)
	mapRows := height - hudRows - logRows
	return layout{
		width:   width,
		height:  height,
		world:   Viewport{X: 0, Y: hudRows, Cols: width, Rows: mapRows},
		logTop:  hudRows + max(mapRows, 0),
		logRows: logRows,
	}
}

func color(hex string) tcell.Color {
	return tcell.GetColor(hex)
}

func drawText(c canvas, x, y, maxX int, style tcell.Style, s string) int {
	for _, r := range s {
		if x >= maxX {
			break
		}
		c.SetContent(x, y, r, nil, style)
		x++
	}
	return x
}

func fill(c canvas, x0, y0, x1, y1 int, r rune, style tcell.Style) {
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			c.SetContent(x, y, r, nil, style)
		}
	}
}

func formatCost(cost sim.Amounts) string {
	var parts []string
	for _, r := range sim.Resources {
		if v, ok := cost[r]; ok && v > 0 {
			parts = append(parts, fmt.Sprintf("%s %s", display.FormatResource(v), r.Label()))
		}
	}
	if len(parts) == 0 {
		return "free"
	}
	return strings.Join(parts, ", ")
}

// render draws one frame. Later layers overwrite earlier ones.
func render(c canvas, snap *sim.Snapshot, log *FeedbackLog, logRows int) {
	w, h := c.Size()
	l := newLayout(w, h, logRows)
	fill(c, 0, 0, w, h, ' ', tcell.StyleDefault)

	renderHUD(c, l, snap)
	if l.world.Empty() {
		drawText(c, 0, hudRows, w, tcell.StyleDefault.Foreground(tcell.ColorRed), "terminal too small")
		return
	}

	for _, m := range snap.Machines {
		renderMachine(c, l.world, m, m.ID == snap.NearestID)
	}
	renderPlayer(c, l.world, snap.Player)
	for _, p := range snap.Particles {
		x, y := l.world.ToCell(sim.Point{X: p.X, Y: p.Y})
		if l.world.Contains(x, y) {
			c.SetContent(x, y, '*', nil, tcell.StyleDefault.Foreground(color(p.Color)).Dim(p.Life < 0.5))
		}
	}
	for _, n := range snap.Notifications {
		x, y := l.world.ToCell(sim.Point{X: n.X, Y: n.Y})
		if y < l.world.Y || y >= l.world.Y+l.world.Rows {
			continue
		}
		x -= len(n.Text) / 2
		style := tcell.StyleDefault.Foreground(color(n.Color)).Bold(n.Life > 0.5).Dim(n.Life < 0.3)
		drawText(c, max(x, 0), y, w, style, n.Text)
	}

	if log != nil {
		for i, line := range log.Tail(w, l.logRows) {
			drawText(c, 0, l.logTop+i, w, tcell.StyleDefault.Foreground(color(line.color)), line.text)
		}
	}
}

func renderHUD(c canvas, l layout, snap *sim.Snapshot) {
	x := 0
	for _, r := range sim.Resources {
		x = drawText(c, x, 0, l.width, tcell.StyleDefault.Bold(true), r.Label()+" ")
		x = drawText(c, x, 0, l.width, tcell.StyleDefault, display.FormatResource(snap.Ledger.Get(r))+"  ")
	}
	if snap.LoggedIn {
		x = drawText(c, x, 0, l.width, tcell.StyleDefault.Foreground(tcell.ColorGreen), display.Capitalize(snap.User)+"  ")
	}
	if snap.LowResources {
		drawText(c, x, 0, l.width, tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true), lowResources)
	}

	x = 0
	for i, opt := range snap.BuildOptions {
		style := tcell.StyleDefault
		if !opt.CanBuild {
			style = style.Dim(true)
		}
		label := fmt.Sprintf("[%d] %s %d/%d: %s  ", i+1, opt.Name, opt.Count, opt.Limit, formatCost(opt.Cost))
		x = drawText(c, x, 1, l.width, style, label)
	}
}

func renderMachine(c canvas, v Viewport, m sim.MachineView, nearest bool) {
	x0, y0 := v.ToCell(sim.Point{X: m.X, Y: m.Y})
	x1, y1 := v.ToCell(sim.Point{X: m.X + sim.MachineSize, Y: m.Y + sim.MachineSize})
	x1, y1 = max(x1, x0+1), max(y1, y0+1)
	x0, y0 = max(x0, v.X), max(y0, v.Y)
	x1, y1 = min(x1, v.X+v.Cols), min(y1, v.Y+v.Rows)
	if x0 >= x1 || y0 >= y1 {
		return
	}

	box := tcell.StyleDefault.Background(color(m.Color)).Foreground(tcell.ColorBlack)
	fill(c, x0, y0, x1, y1, ' ', box)

	label := fmt.Sprintf("%c%d", []rune(m.Name)[0], m.Level)
	if nearest {
		label = ">" + label
	}
	drawText(c, x0, y0, x1, box.Bold(nearest), label)

	if m.IsOffline {
		drawText(c, x0, min(y0+1, y1-1), x1, box.Foreground(tcell.ColorRed).Bold(true), "OFF")
	}

	if m.State == sim.MachineOnCooldown && y1-y0 > 1 {
		width := x1 - x0
		remaining := int(math.Ceil(m.Progress * float64(width)))
		fill(c, x0, y1-1, x0+remaining, y1, '█', box.Foreground(tcell.ColorGray))
		fill(c, x0+remaining, y1-1, x1, y1, '░', box)
	}
}

func renderPlayer(c canvas, v Viewport, p sim.Player) {
	x, y := v.ToCell(p.Center())
	if !v.Contains(x, y) {
		return
	}
	glyph := '>'
	if !p.FacingRight {
		glyph = '<'
	}
	style := tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)
	c.SetContent(x, y, '@', nil, style)
	if v.Contains(x+1, y) && p.FacingRight {
		c.SetContent(x+1, y, glyph, nil, style)
	} else if v.Contains(x-1, y) && !p.FacingRight {
		c.SetContent(x-1, y, glyph, nil, style)
	}
}
