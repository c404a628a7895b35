// Package present defines the boundary between the simulation core and
// whatever draws it. The core only calls Gateway; the terminal renderer and
// the headless double both implement it on top of Scene.
package present

import (
	"gift-tornado/assets"
	"gift-tornado/internal/geom"
)

// Ref is an opaque handle to a drawn entity. The zero Ref is never issued.
type Ref uint64

// Actor names the fixed sprites on the field.
type Actor uint8

const (
	ActorPlayer Actor = iota
	ActorElf
	ActorSource // the tornado
)

// Side selects which score counter to update.
type Side uint8

const (
	SidePlayer Side = iota
	SideElf
)

// Cue is a fire-and-forget audio trigger.
type Cue string

const (
	CueHit       Cue = "hit"
	CuePickup    Cue = "pickup"
	CueDefeat    Cue = "defeat"
	CueMusic     Cue = "music"
	CueMusicStop Cue = "music-stop"
)

// Outcome is the terminal classification of a round.
type Outcome string

const (
	OutcomeNone  Outcome = ""
	OutcomeWin   Outcome = "win"
	OutcomeLose  Outcome = "lose"
	OutcomeEaten Outcome = "eaten"
)

// Geometry answers bounding-box queries in field-relative coordinates.
// A false second result means the geometry is unavailable right now.
type Geometry interface {
	FieldBox() geom.Box
	ActorBox(a Actor) (geom.Box, bool)
	BoundingBox(ref Ref) (geom.Box, bool)
}

// Gateway is everything the simulation needs from the presentation layer.
type Gateway interface {
	Geometry

	CreateEntity(e assets.Entry) (Ref, error)
	DestroyEntity(ref Ref)
	SetEntityTransform(ref Ref, pos geom.Vec2)
	SetActorPosition(a Actor, y float64)
	SetSourceRotation(deg float64)
	SetSourceScale(factor float64)

	PlayCue(c Cue)
	SetMusicTempo(rate float64)

	ShowOutcome(o Outcome)
	SetHealthDisplay(count int)
	SetScoreDisplay(s Side, value int, flash bool)
	SetClockDisplay(text string)
}
