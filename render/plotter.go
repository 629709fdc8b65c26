package render

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/mattn/go-runewidth"

	"github.com/lixenwraith/raytracer/physics"
	"github.com/lixenwraith/raytracer/vmath"
)

// Glyphs
const (
	GlyphGround     = '─'
	GlyphTrail      = '•'
	GlyphProjectile = '@'
	GlyphLaunch     = '>'
	GlyphApex       = '^'
	GlyphLanding    = 'X'
)

// Tokyo Night-ish palette
var (
	ColorBg     = colorful.Color{R: 26 / 255.0, G: 27 / 255.0, B: 38 / 255.0}
	ColorGround = colorful.Color{R: 100 / 255.0, G: 100 / 255.0, B: 110 / 255.0}
	ColorTrail0 = colorful.Color{R: 0, G: 1, B: 1} // cyan, oldest
	ColorTrail1 = colorful.Color{R: 1, G: 0, B: 1} // pink, newest
	ColorFire   = colorful.Color{R: 1, G: 160 / 255.0, B: 50 / 255.0}
	ColorText   = colorful.Color{R: 200 / 255.0, G: 200 / 255.0, B: 200 / 255.0}
)

// Plotter draws a flight on a tcell screen: ground line, colour-graded trail, markers and a HUD row
type Plotter struct {
	screen tcell.Screen
	start  physics.Projectile
	steps  []physics.Step
	landed bool
}

func NewPlotter(screen tcell.Screen) *Plotter {
	return &Plotter{screen: screen}
}

// Reset starts a new flight
func (p *Plotter) Reset(start physics.Projectile) {
	p.start = start
	p.steps = p.steps[:0]
	p.landed = !physics.Airborne(start)
}

// Push records a step
func (p *Plotter) Push(st physics.Step) {
	p.steps = append(p.steps, st)
	p.landed = !physics.Airborne(st.Projectile)
}

// Steps returns the recorded flight
func (p *Plotter) Steps() []physics.Step {
	return p.steps
}

func (p *Plotter) points() []vmath.Tuple {
	pts := make([]vmath.Tuple, 0, len(p.steps)+1)
	pts = append(pts, p.start.Position)
	for _, st := range p.steps {
		pts = append(pts, st.Position)
	}
	return pts
}

// Viewport fits the recorded flight to the screen, reserving the bottom row for the HUD
func (p *Plotter) Viewport() Viewport {
	w, h := p.screen.Size()
	return FitViewport(p.points(), w, h-1)
}

// Draw renders the current flight and shows the screen
func (p *Plotter) Draw(hud string) {
	w, h := p.screen.Size()
	bg := toTcell(ColorBg)
	base := tcell.StyleDefault.Background(bg)

	p.screen.SetStyle(base)
	p.screen.Clear()
	if w <= 0 || h <= 1 {
		p.screen.Show()
		return
	}

	vp := p.Viewport()

	// Ground
	if row := vp.GroundRow(); row >= 0 && row < vp.Rows {
		style := base.Foreground(toTcell(ColorGround))
		for x := 0; x < w; x++ {
			p.screen.SetContent(x, row, GlyphGround, nil, style)
		}
	}

	// Trail, oldest to newest; the head is drawn last so markers never hide it
	n := len(p.steps)
	trailStyle := func(i int) tcell.Style {
		t := 1.0
		if n > 1 {
			t = float64(i) / float64(n-1)
		}
		return base.Foreground(toTcell(ColorTrail0.BlendLab(ColorTrail1, t)))
	}
	for i := 0; i < n-1; i++ {
		p.plot(vp, p.steps[i].Position, GlyphTrail, trailStyle(i))
	}

	if apex, ok := p.apex(); ok && apex.Y > p.start.Position.Y {
		p.plot(vp, apex, GlyphApex, base.Foreground(toTcell(ColorFire)).Bold(true))
	}
	p.plot(vp, p.start.Position, GlyphLaunch, base.Foreground(toTcell(ColorTrail0)).Bold(true))

	if n > 0 {
		head := GlyphProjectile
		if p.landed {
			head = GlyphLanding
		}
		p.plot(vp, p.steps[n-1].Position, head, trailStyle(n-1).Bold(true))
	}

	p.DrawString(0, h-1, hud, base.Foreground(toTcell(ColorText)))
	p.screen.Show()
}

func (p *Plotter) plot(vp Viewport, pos vmath.Tuple, glyph rune, style tcell.Style) {
	if col, row, ok := vp.Cell(pos.X, pos.Y); ok {
		p.screen.SetContent(col, row, glyph, nil, style)
	}
}

func (p *Plotter) apex() (vmath.Tuple, bool) {
	if len(p.steps) == 0 {
		return vmath.Tuple{}, false
	}
	best := p.steps[0].Position
	for _, st := range p.steps[1:] {
		if st.Position.Y > best.Y {
			best = st.Position
		}
	}
	return best, true
}

// DrawString writes s from (x, y), advancing by display width and clipping at the right edge
func (p *Plotter) DrawString(x, y int, s string, style tcell.Style) {
	w, _ := p.screen.Size()
	for _, r := range s {
		rw := runewidth.RuneWidth(r)
		if rw == 0 {
			continue
		}
		if x+rw > w {
			return
		}
		p.screen.SetContent(x, y, r, nil, style)
		x += rw
	}
}

// StatusLine formats the HUD for the latest step
func StatusLine(st physics.Step, landed bool) string {
	state := "airborne"
	if landed {
		state = "landed"
	}
	return fmt.Sprintf(" tick %d │ x %.3f │ y %.3f │ %s │ q/Esc quit", st.Tick, st.Position.X, st.Position.Y, state)
}

func toTcell(c colorful.Color) tcell.Color {
	r, g, b := c.Clamped().RGB255()
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}
