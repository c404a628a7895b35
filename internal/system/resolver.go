package system

import (
	"gift-tornado/assets"
	"gift-tornado/internal/component"
	"gift-tornado/internal/ecs"
	"gift-tornado/internal/geom"
	"gift-tornado/internal/present"
)

// Events summarises one resolver pass.
type Events struct {
	PlayerHits  int
	PlayerGifts int
	ElfGifts    int
	Relaunched  int
	Bounces     int
	// Defeated is set when an enemy took the player's last heart. The pass
	// stops at that entity.
	Defeated bool
}

// Resolve runs one physics and collision pass over every live object in
// ascending ID order. Each object's box is the one drawn on the previous
// tick; an object with no geometry is skipped for this tick.
func Resolve(env *Env, player, elf ecs.EntityID) Events {
	var ev Events
	view := env.View

	field := view.FieldBox()
	src, srcOK := view.ActorBox(present.ActorSource)
	pBox, pOK := view.ActorBox(present.ActorPlayer)
	eBox, eOK := view.ActorBox(present.ActorElf)

	for _, id := range env.World.Query(component.CBody, component.CObject, component.CSprite) {
		ref := env.World.Get(id, component.CSprite).(component.Sprite).Ref
		box, ok := view.BoundingBox(ref)
		if !ok {
			continue
		}
		b := env.World.Get(id, component.CBody).(component.Body)
		kind := env.World.Get(id, component.CObject).(component.Object).Kind()

		if srcOK && geom.Overlap(box, src) {
			if !b.IgnoreTornado {
				b.Vel = env.Launch()
				b.IgnoreTornado = true
				ev.Relaunched++
			}
			b.Vel = b.Vel.Mul(env.Tune.TornadoAcceleration)
		} else {
			b.IgnoreTornado = false
		}

		if pOK && geom.Overlap(box, pBox) {
			if kind == assets.KindEnemy {
				ev.PlayerHits++
				if damagePlayer(env, player) {
					view.PlayCue(present.CueDefeat)
					RemoveObject(env.World, view, id)
					ev.Defeated = true
					return ev
				}
				view.PlayCue(present.CueHit)
			} else {
				ev.PlayerGifts++
				view.PlayCue(present.CuePickup)
				view.SetScoreDisplay(present.SidePlayer, addPoint(env.World, player), true)
			}
			RemoveObject(env.World, view, id)
			continue
		}

		if kind == assets.KindGift && eOK && geom.Overlap(box, eBox) {
			ev.ElfGifts++
			RemoveObject(env.World, view, id)
			view.SetScoreDisplay(present.SideElf, addPoint(env.World, elf), true)
			continue
		}

		var bounced bool
		b, bounced = Bounce(b, box, field)
		if bounced {
			ev.Bounces++
		}
		b.Pos = b.Pos.Add(b.Vel)
		env.World.Add(id, b)
		view.SetEntityTransform(ref, b.Pos)
	}
	return ev
}

// Bounce reflects b off every field edge its box touches or crosses and
// moves it back inside by the penetration depth. Speed per axis is kept.
func Bounce(b component.Body, box, field geom.Box) (component.Body, bool) {
	bounced := false
	if box.Left() <= field.Left() {
		b.Vel.X = -b.Vel.X
		b.Pos.X += field.Left() - box.Left()
		bounced = true
	}
	if box.Right() >= field.Right() {
		b.Vel.X = -b.Vel.X
		b.Pos.X -= box.Right() - field.Right()
		bounced = true
	}
	if box.Top() <= field.Top() {
		b.Vel.Y = -b.Vel.Y
		b.Pos.Y += field.Top() - box.Top()
		bounced = true
	}
	if box.Bottom() >= field.Bottom() {
		b.Vel.Y = -b.Vel.Y
		b.Pos.Y -= box.Bottom() - field.Bottom()
		bounced = true
	}
	return b, bounced
}

// damagePlayer takes one heart and reports whether none are left.
func damagePlayer(env *Env, player ecs.EntityID) bool {
	hp, ok := env.World.Get(player, component.CHealth).(component.Health)
	if !ok {
		return false
	}
	hp.Current = max(hp.Current-1, 0)
	env.World.Add(player, hp)
	env.View.SetHealthDisplay(hp.Current)
	return hp.Dead()
}

// addPoint increments an actor's score and returns the new value.
func addPoint(w *ecs.World, id ecs.EntityID) int {
	s, _ := w.Get(id, component.CScore).(component.Score)
	s.Points++
	w.Add(id, s)
	return s.Points
}
