package component

import (
	"gift-tornado/internal/ecs"
	"gift-tornado/internal/geom"
)

const CBody ecs.ComponentType = 1

// Body is the simulated motion state of a game object. Pos is the sprite
// centre in field coordinates; Vel is added once per tick.
type Body struct {
	Pos, Vel geom.Vec2
	// IgnoreTornado is set once the object has been re-launched by the
	// tornado and cleared when it leaves the tornado's footprint.
	IgnoreTornado bool
}

func (Body) Type() ecs.ComponentType { return CBody }
