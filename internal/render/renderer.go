// Package render draws a round on a tcell screen. Screen implements
// present.Gateway: the session pushes state into it and Draw paints the
// latest state once per frame.
package render

import (
	"math"

	"gift-tornado/assets"
	"gift-tornado/internal/present"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

// hudRows is the number of rows above the field: the status line and a
// separator.
const hudRows = 2

// Speaker plays audio cues. The audio package provides one; nil is silent.
type Speaker interface {
	Play(c present.Cue)
	SetTempo(rate float64)
}

// Screen is the terminal presentation layer.
type Screen struct {
	*present.Scene

	// Menu lists the difficulties offered on the outcome overlay.
	Menu []string

	screen  tcell.Screen
	speaker Speaker
	pal     Palette
	cam     Camera

	hearts int    // most hearts shown this round
	seen   [2]int // flash requests already turned into timers
	flash  [2]int // frames of score flash left per side
	frame  int
}

// NewScreen creates a Screen on an initialised tcell screen.
func NewScreen(s tcell.Screen, sp Speaker) *Screen {
	r := &Screen{
		Scene:   present.NewScene(present.DefaultLayout()),
		screen:  s,
		speaker: sp,
		pal:     DefaultPalette,
	}
	r.Resize()
	return r
}

// Resize recomputes the camera after the terminal size changed.
func (r *Screen) Resize() {
	w, h := r.screen.Size()
	r.cam = NewCamera(r.Layout, w, h, hudRows+1)
}

func (r *Screen) Camera() Camera { return r.cam }

// PointerY converts a screen row to a field height for Session.SetPointer.
func (r *Screen) PointerY(sx, sy int) float64 {
	return r.cam.ScreenToField(sx, sy).Y
}

func (r *Screen) PlayCue(c present.Cue) {
	if r.speaker != nil {
		r.speaker.Play(c)
	}
}

func (r *Screen) SetMusicTempo(rate float64) {
	if r.speaker != nil {
		r.speaker.SetTempo(rate)
	}
}

// ShowOutcome with OutcomeNone hides the overlay and starts a fresh HUD.
// Any outcome cancels running score flashes.
func (r *Screen) ShowOutcome(o present.Outcome) {
	if o == present.OutcomeNone {
		r.hearts = 0
	}
	r.Scene.ShowOutcome(o)
	for _, side := range []present.Side{present.SidePlayer, present.SideElf} {
		r.flash[side] = 0
		r.seen[side] = r.Flashes(side)
	}
}

func (r *Screen) SetHealthDisplay(count int) {
	r.hearts = max(r.hearts, count)
	r.Scene.SetHealthDisplay(count)
}

// Draw paints one frame.
func (r *Screen) Draw() {
	r.frame++
	r.screen.Clear()
	r.drawBorder()
	r.drawTornado()
	r.drawSprites()
	r.drawActors()
	r.drawHUD()
	if o := r.Outcome(); o != present.OutcomeNone {
		r.drawOutcome(o)
	}
	r.screen.Show()
}

func (r *Screen) drawBorder() {
	x0, y0, x1, y1 := r.cam.Bounds()
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			r.screen.SetContent(x, y, ' ', nil, r.pal.Field)
		}
	}
	for x := x0; x <= x1; x++ {
		r.screen.SetContent(x, y0-1, '─', nil, r.pal.Border)
		r.screen.SetContent(x, y1+1, '─', nil, r.pal.Border)
	}
	for y := y0; y <= y1; y++ {
		r.screen.SetContent(x0-1, y, '│', nil, r.pal.Border)
		r.screen.SetContent(x1+1, y, '│', nil, r.pal.Border)
	}
	r.screen.SetContent(x0-1, y0-1, '┌', nil, r.pal.Border)
	r.screen.SetContent(x1+1, y0-1, '┐', nil, r.pal.Border)
	r.screen.SetContent(x0-1, y1+1, '└', nil, r.pal.Border)
	r.screen.SetContent(x1+1, y1+1, '┘', nil, r.pal.Border)
}

// drawTornado draws the spiral glyph with arms whose reach follows the
// current scale and whose shape follows the rotation.
func (r *Screen) drawTornado() {
	box, _ := r.ActorBox(present.ActorSource)
	sx, sy, ok := r.cam.FieldToScreen(box.Center())
	if !ok {
		return
	}
	r.putGlyph(sx-1, sy, assets.GlyphTornado, r.pal.Tornado)

	arm := assets.TornadoArms[armFrame(r.Rotation())]
	reach := int(math.Round(r.Scale() * float64(r.Layout.SourceCols) / 2))
	for k := 1; k < reach; k++ {
		r.putGlyph(sx-1-k, sy, arm, r.pal.Tornado)
		r.putGlyph(sx+k, sy, arm, r.pal.Tornado)
	}
	if r.Scale() >= 1.5 {
		r.putGlyph(sx, sy-1, arm, r.pal.Tornado)
		r.putGlyph(sx-1, sy+1, arm, r.pal.Tornado)
	}
}

// armFrame picks one of the four arm glyphs for an angle in degrees.
func armFrame(deg float64) int {
	n := len(assets.TornadoArms)
	i := int(math.Round(math.Mod(deg, 180)/45)) % n
	if i < 0 {
		i += n
	}
	return i
}

func (r *Screen) drawSprites() {
	for _, sp := range r.Sprites() {
		if !sp.Placed {
			continue
		}
		box := r.Layout.SpriteBox(sp.Pos, sp.Entry.Glyph)
		sx, sy, ok := r.cam.FieldToScreen(box.Min)
		if !ok {
			continue
		}
		r.putGlyph(sx, sy, sp.Entry.Glyph, r.pal.Field)
	}
}

// drawActors draws the player and elf on the middle row of their footprint.
func (r *Screen) drawActors() {
	for _, a := range []present.Actor{present.ActorPlayer, present.ActorElf} {
		box, ok := r.ActorBox(a)
		if !ok {
			continue
		}
		sx, sy, _ := r.cam.FieldToScreen(box.Center())
		glyph := assets.GlyphPlayer
		if a == present.ActorElf {
			glyph = assets.GlyphElf
		}
		w := runewidth.StringWidth(glyph)
		r.putGlyph(sx-w/2, sy, glyph, r.pal.Field)
	}
}

// putGlyph draws a single glyph (ASCII or multi-rune emoji) at screen position (x, y).
func (r *Screen) putGlyph(x, y int, glyph string, style tcell.Style) {
	runes := []rune(glyph)
	if len(runes) == 0 {
		return
	}
	var combc []rune
	if len(runes) > 1 {
		combc = runes[1:]
	}
	r.screen.SetContent(x, y, runes[0], combc, style)
	if runewidth.StringWidth(glyph) == 2 {
		r.screen.SetContent(x+1, y, ' ', nil, style)
	}
}

var _ present.Gateway = (*Screen)(nil)
