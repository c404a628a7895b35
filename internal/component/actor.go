package component

import (
	"gift-tornado/internal/ecs"
	"gift-tornado/internal/present"
)

const (
	CScore ecs.ComponentType = 5
	CActor ecs.ComponentType = 6
)

// Score counts gifts caught.
type Score struct {
	Points int
}

func (Score) Type() ecs.ComponentType { return CScore }

// Actor is one of the two paddles on the field edges. Y is the top of the
// sprite; the x position is fixed by the layout.
type Actor struct {
	Role present.Actor
	Y    float64
}

func (Actor) Type() ecs.ComponentType { return CActor }
