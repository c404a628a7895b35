package present

import (
	"cmp"
	"fmt"
	"slices"

	"gift-tornado/assets"
	"gift-tornado/internal/geom"

	"github.com/mattn/go-runewidth"
)

// Layout is the logical geometry of the play field. Field units are laid
// out on a grid of terminal-sized cells so sprite footprints match what a
// terminal can draw, whatever the real terminal size is.
type Layout struct {
	Width, Height float64
	CellW, CellH  float64
	ActorCols     int     // player/elf width in cells
	ActorRows     int     // player/elf height in cells
	Inset         float64 // gap between the field edge and the actor sprites
	SourceCols    int     // tornado footprint at scale 1
	SourceRows    int
}

// DefaultLayout is a 60×15 cell field.
func DefaultLayout() Layout {
	return Layout{
		Width:      960,
		Height:     540,
		CellW:      16,
		CellH:      36,
		ActorCols:  2,
		ActorRows:  3,
		Inset:      32,
		SourceCols: 6,
		SourceRows: 2,
	}
}

// Cols and Rows give the field size in cells.
func (l Layout) Cols() int { return int(l.Width / l.CellW) }
func (l Layout) Rows() int { return int(l.Height / l.CellH) }

// ActorHeight is the vertical extent of the player and elf sprites.
func (l Layout) ActorHeight() float64 { return float64(l.ActorRows) * l.CellH }

// SpriteBox is the footprint of glyph drawn centered on pos. Wide glyphs
// (most emoji) take two cells.
func (l Layout) SpriteBox(pos geom.Vec2, glyph string) geom.Box {
	cols := runewidth.StringWidth(glyph)
	if cols < 1 {
		cols = 1
	}
	return geom.BoxAround(pos, float64(cols)*l.CellW, l.CellH)
}

// ActorBox is the footprint of the player (left edge) or elf (right edge)
// whose sprite top is at y.
func (l Layout) ActorBox(a Actor, y float64) geom.Box {
	w := float64(l.ActorCols) * l.CellW
	x := l.Inset
	if a == ActorElf {
		x = l.Width - l.Inset - w
	}
	return geom.Box{Min: geom.Vec2{X: x, Y: y}, Max: geom.Vec2{X: x + w, Y: y + l.ActorHeight()}}
}

// SourceBox is the tornado footprint at the given scale, centered on the field.
func (l Layout) SourceBox(scale float64) geom.Box {
	center := geom.Vec2{X: l.Width / 2, Y: l.Height / 2}
	return geom.BoxAround(center,
		float64(l.SourceCols)*l.CellW*scale,
		float64(l.SourceRows)*l.CellH*scale)
}

// Sprite is one drawn game object.
type Sprite struct {
	Ref    Ref
	Entry  assets.Entry
	Pos    geom.Vec2
	Placed bool // false until the first SetEntityTransform
}

// Scene is the presentation-side state shared by every Gateway
// implementation: sprite positions, actor positions, tornado pose and HUD
// values. It implements Gateway except for the audio methods.
type Scene struct {
	Layout Layout

	nextRef  Ref
	sprites  map[Ref]*Sprite
	actors   [2]float64
	rotation float64
	scale    float64
	health   int
	scores   [2]int
	flashes  [2]int
	clock    string
	outcome  Outcome
}

// NewScene creates an empty scene with the given layout.
func NewScene(l Layout) *Scene {
	return &Scene{
		Layout:  l,
		nextRef: 1,
		sprites: make(map[Ref]*Sprite),
		scale:   1,
	}
}

func (s *Scene) FieldBox() geom.Box {
	return geom.Box{Max: geom.Vec2{X: s.Layout.Width, Y: s.Layout.Height}}
}

func (s *Scene) ActorBox(a Actor) (geom.Box, bool) {
	switch a {
	case ActorPlayer, ActorElf:
		return s.Layout.ActorBox(a, s.actors[a]), true
	case ActorSource:
		return s.Layout.SourceBox(s.scale), true
	}
	return geom.Box{}, false
}

func (s *Scene) BoundingBox(ref Ref) (geom.Box, bool) {
	sp, ok := s.sprites[ref]
	if !ok || !sp.Placed {
		return geom.Box{}, false
	}
	return s.Layout.SpriteBox(sp.Pos, sp.Entry.Glyph), true
}

func (s *Scene) CreateEntity(e assets.Entry) (Ref, error) {
	if e.Glyph == "" {
		return 0, fmt.Errorf("create entity %q: empty glyph", e.Name)
	}
	ref := s.nextRef
	s.nextRef++
	s.sprites[ref] = &Sprite{Ref: ref, Entry: e}
	return ref, nil
}

func (s *Scene) DestroyEntity(ref Ref) { delete(s.sprites, ref) }

func (s *Scene) SetEntityTransform(ref Ref, pos geom.Vec2) {
	if sp, ok := s.sprites[ref]; ok {
		sp.Pos = pos
		sp.Placed = true
	}
}

func (s *Scene) SetActorPosition(a Actor, y float64) {
	if a == ActorPlayer || a == ActorElf {
		s.actors[a] = y
	}
}

func (s *Scene) SetSourceRotation(deg float64) { s.rotation = deg }
func (s *Scene) SetSourceScale(factor float64) { s.scale = factor }
func (s *Scene) ShowOutcome(o Outcome)         { s.outcome = o }
func (s *Scene) SetHealthDisplay(count int)    { s.health = count }
func (s *Scene) SetClockDisplay(text string)   { s.clock = text }

func (s *Scene) SetScoreDisplay(side Side, value int, flash bool) {
	if side > SideElf {
		return
	}
	s.scores[side] = value
	if flash {
		s.flashes[side]++
	}
}

// Sprites returns the live sprites ordered by Ref.
func (s *Scene) Sprites() []Sprite {
	out := make([]Sprite, 0, len(s.sprites))
	for _, sp := range s.sprites {
		out = append(out, *sp)
	}
	slices.SortFunc(out, func(a, b Sprite) int { return cmp.Compare(a.Ref, b.Ref) })
	return out
}

func (s *Scene) ActorY(a Actor) float64 {
	if a > ActorElf {
		return 0
	}
	return s.actors[a]
}

func (s *Scene) Rotation() float64   { return s.rotation }
func (s *Scene) Scale() float64      { return s.scale }
func (s *Scene) Health() int         { return s.health }
func (s *Scene) Clock() string       { return s.clock }
func (s *Scene) Outcome() Outcome    { return s.outcome }
func (s *Scene) Score(side Side) int { return s.scores[side] }

// Flashes counts how many times a flash was requested for side.
func (s *Scene) Flashes(side Side) int { return s.flashes[side] }
