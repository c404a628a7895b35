package system

import (
	"gift-tornado/assets"
	"gift-tornado/internal/component"
	"gift-tornado/internal/config"
	"gift-tornado/internal/ecs"
	"gift-tornado/internal/geom"
	"gift-tornado/internal/present"
)

// Env is the state every per-tick system reads. The session owns it and
// refreshes Scale once per tick.
type Env struct {
	World *ecs.World
	View  present.Gateway
	RNG   *RNG
	Diff  config.Difficulty
	Tune  config.Tuning
	Scale float64 // 1 + VelocityGrowth*progress
}

// Launch draws a fresh velocity at the current scale.
func (e *Env) Launch() geom.Vec2 {
	return RandomVelocity(e.RNG, e.Diff, e.Tune.LaunchSpreadY, e.Scale)
}

// RemoveObject detaches a game object from the presentation layer and the
// world together. It reports false if the object was already gone.
func RemoveObject(w *ecs.World, view present.Gateway, id ecs.EntityID) bool {
	if !w.Alive(id) {
		return false
	}
	if sp, ok := w.Get(id, component.CSprite).(component.Sprite); ok {
		view.DestroyEntity(sp.Ref)
	}
	return w.DestroyEntity(id)
}

// ClearObjects removes every live gift and enemy and returns how many.
func ClearObjects(w *ecs.World, view present.Gateway) int {
	n := 0
	for _, id := range w.Query(component.CObject) {
		if RemoveObject(w, view, id) {
			n++
		}
	}
	return n
}

// CountObjects returns the live gifts and enemies.
func CountObjects(w *ecs.World) (gifts, enemies int) {
	for _, id := range w.Query(component.CObject) {
		if w.Get(id, component.CObject).(component.Object).Kind() == assets.KindEnemy {
			enemies++
		} else {
			gifts++
		}
	}
	return gifts, enemies
}
