package component

import (
	"gift-tornado/assets"
	"gift-tornado/internal/ecs"
	"gift-tornado/internal/present"
)

const (
	CObject ecs.ComponentType = 3
	CSprite ecs.ComponentType = 4
)

// Object marks a gift or enemy and records which catalog entry it shows.
type Object struct {
	Entry assets.Entry
}

func (Object) Type() ecs.ComponentType { return CObject }

func (o Object) Kind() assets.Kind { return o.Entry.Kind }

// Sprite links a simulated entity to its presentation handle.
type Sprite struct {
	Ref present.Ref
}

func (Sprite) Type() ecs.ComponentType { return CSprite }
