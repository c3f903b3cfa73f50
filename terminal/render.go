package terminal

import (
	"fmt"
	"math"

	"github.com/dustin/go-humanize"
	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/void-ranks/parameter"
	"github.com/lixenwraith/void-ranks/sim"
	"github.com/lixenwraith/void-ranks/vmath"
)

var (
	styleHUD       = tcell.StyleDefault.Foreground(tcell.ColorSilver)
	styleDebug     = tcell.StyleDefault.Foreground(tcell.ColorGray)
	stylePlayer    = tcell.StyleDefault.Foreground(tcell.ColorAqua).Bold(true)
	styleFormation = tcell.StyleDefault.Foreground(tcell.ColorGreen)
	styleFree      = tcell.StyleDefault.Foreground(tcell.ColorYellow)
	styleAttack    = tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true)
	styleLaser     = tcell.StyleDefault.Foreground(tcell.ColorWhite)
	styleWell      = tcell.StyleDefault.Foreground(tcell.ColorPurple)
)

// arrows indexed by heading octant, 0 = +X, clockwise on screen (y down)
var arrows = [8]rune{'>', '\\', 'v', '/', '<', '\\', '^', '/'}

// Glyph returns the rune and style drawn for a snapshot entry
func Glyph(d sim.Drawable) (rune, tcell.Style) {
	switch d.Category {
	case sim.CategoryPlayer:
		return 'A', stylePlayer
	case sim.CategoryEnemyFormation:
		return 'W', styleFormation
	case sim.CategoryEnemyFree:
		return arrow(d.Orientation), styleFree
	case sim.CategoryEnemyAttacking:
		return arrow(d.Orientation), styleAttack
	case sim.CategoryLaser:
		return '|', styleLaser
	case sim.CategoryWell:
		return '@', styleWell
	}
	return '?', tcell.StyleDefault
}

func arrow(angle float64) rune {
	oct := int(math.Round(angle/(math.Pi/4))) % 8
	if oct < 0 {
		oct += 8
	}
	return arrows[oct]
}

// HUD is the status line content
type HUD struct {
	Ordinal, Levels int
	Name            string
	State           string
	Kills, Live     int64
	Paused, Muted   bool
	Debug           []string // Metric lines, shown only when non-empty
}

// Renderer is a sim.Sink drawing into a tcell screen
// Call Begin, submit the snapshot, then Present
type Renderer struct {
	screen tcell.Screen
}

func NewRenderer(s tcell.Screen) *Renderer {
	return &Renderer{screen: s}
}

// Playfield returns the cell area left for the simulation
func (r *Renderer) Playfield() (int, int) {
	w, h := r.screen.Size()
	return w, max(h-parameter.HUDRows, 1)
}

// Sync redraws the whole screen after a resize
// The playfield keeps the size it started with
func (r *Renderer) Sync() {
	r.screen.Sync()
}

func (r *Renderer) Begin() {
	r.screen.Clear()
}

// Submit draws one entity; entries outside the screen are skipped
func (r *Renderer) Submit(d sim.Drawable) {
	x := vmath.ToInt(d.Position.X)
	y := vmath.ToInt(d.Position.Y) + parameter.HUDRows
	w, h := r.screen.Size()
	if x < 0 || x >= w || y < parameter.HUDRows || y >= h {
		return
	}
	ch, style := Glyph(d)
	r.screen.SetContent(x, y, ch, nil, style)
}

// Present draws the HUD over the frame and shows it
func (r *Renderer) Present(hud HUD) {
	line := fmt.Sprintf(" LEVEL %d/%d %s  KILLS %s  ENEMIES %s  %s",
		hud.Ordinal, hud.Levels, hud.Name, humanize.Comma(hud.Kills), humanize.Comma(hud.Live), hud.State)
	if hud.Paused {
		line += "  PAUSED"
	}
	if hud.Muted {
		line += "  MUTED"
	}
	r.text(0, 0, line, styleHUD)

	for i, l := range hud.Debug {
		r.text(1, parameter.HUDRows+i, l, styleDebug)
	}
	r.screen.Show()
}

func (r *Renderer) text(x, y int, s string, style tcell.Style) {
	w, _ := r.screen.Size()
	for _, ch := range s {
		if x >= w {
			return
		}
		r.screen.SetContent(x, y, ch, nil, style)
		x++
	}
}

var _ sim.Sink = (*Renderer)(nil)
