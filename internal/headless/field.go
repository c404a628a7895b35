// Package headless is a Gateway with no screen and no speaker. It keeps the
// same geometry as the terminal renderer, so a round simulated here plays
// out exactly as it did on screen. Tests and the replay runner use it.
package headless

import (
	"errors"

	"gift-tornado/assets"
	"gift-tornado/internal/geom"
	"gift-tornado/internal/present"
)

// ErrCreateRefused is returned by CreateEntity while RefuseCreate is set.
var ErrCreateRefused = errors.New("headless: entity creation refused")

// Field records the audio and lifecycle calls made on it.
type Field struct {
	*present.Scene

	Cues      []present.Cue
	Tempo     float64
	Outcomes  []present.Outcome
	Destroyed []present.Ref

	// RefuseCreate makes CreateEntity fail, as a real presentation layer
	// might when it cannot attach a sprite.
	RefuseCreate bool

	hidden      map[present.Ref]bool
	hiddenActor map[present.Actor]bool
}

// New creates a Field with the default layout.
func New() *Field { return NewWithLayout(present.DefaultLayout()) }

func NewWithLayout(l present.Layout) *Field {
	return &Field{
		Scene:       present.NewScene(l),
		hidden:      make(map[present.Ref]bool),
		hiddenActor: make(map[present.Actor]bool),
	}
}

func (f *Field) CreateEntity(e assets.Entry) (present.Ref, error) {
	if f.RefuseCreate {
		return 0, ErrCreateRefused
	}
	return f.Scene.CreateEntity(e)
}

func (f *Field) DestroyEntity(ref present.Ref) {
	f.Destroyed = append(f.Destroyed, ref)
	delete(f.hidden, ref)
	f.Scene.DestroyEntity(ref)
}

func (f *Field) PlayCue(c present.Cue)      { f.Cues = append(f.Cues, c) }
func (f *Field) SetMusicTempo(rate float64) { f.Tempo = rate }

func (f *Field) ShowOutcome(o present.Outcome) {
	f.Outcomes = append(f.Outcomes, o)
	f.Scene.ShowOutcome(o)
}

// Hide makes a sprite's geometry unavailable until Show is called.
func (f *Field) Hide(ref present.Ref) { f.hidden[ref] = true }
func (f *Field) Show(ref present.Ref) { delete(f.hidden, ref) }

// HideActor makes an actor's geometry unavailable.
func (f *Field) HideActor(a present.Actor) { f.hiddenActor[a] = true }

func (f *Field) BoundingBox(ref present.Ref) (geom.Box, bool) {
	if f.hidden[ref] {
		return geom.Box{}, false
	}
	return f.Scene.BoundingBox(ref)
}

func (f *Field) ActorBox(a present.Actor) (geom.Box, bool) {
	if f.hiddenActor[a] {
		return geom.Box{}, false
	}
	return f.Scene.ActorBox(a)
}

// CueCount returns how many times c was played.
func (f *Field) CueCount(c present.Cue) int {
	n := 0
	for _, got := range f.Cues {
		if got == c {
			n++
		}
	}
	return n
}

// Reset forgets recorded calls but keeps the scene.
func (f *Field) Reset() {
	f.Cues = nil
	f.Outcomes = nil
	f.Destroyed = nil
}

var _ present.Gateway = (*Field)(nil)
