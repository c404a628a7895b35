package factory

import (
	"gift-tornado/assets"
	"gift-tornado/internal/component"
	"gift-tornado/internal/ecs"
	"gift-tornado/internal/geom"
	"gift-tornado/internal/present"
)

// NewPlayer creates the player entity with its sprite top at y.
func NewPlayer(w *ecs.World, y float64, health int) ecs.EntityID {
	id := w.CreateEntity()
	w.Add(id, component.Actor{Role: present.ActorPlayer, Y: y})
	w.Add(id, component.Health{Current: health, Max: health})
	w.Add(id, component.Score{})
	w.Add(id, component.TagPlayer{})
	return id
}

// NewElf creates the NPC entity with its sprite top at y.
func NewElf(w *ecs.World, y float64) ecs.EntityID {
	id := w.CreateEntity()
	w.Add(id, component.Actor{Role: present.ActorElf, Y: y})
	w.Add(id, component.Score{})
	w.Add(id, component.TagElf{})
	return id
}

// NewGameObject registers a gift or enemy that already has a presentation
// handle. Objects are born inside the tornado, so IgnoreTornado starts set.
func NewGameObject(w *ecs.World, entry assets.Entry, ref present.Ref, pos, vel geom.Vec2) ecs.EntityID {
	id := w.CreateEntity()
	w.Add(id, component.Body{Pos: pos, Vel: vel, IgnoreTornado: true})
	w.Add(id, component.Object{Entry: entry})
	w.Add(id, component.Sprite{Ref: ref})
	return id
}
