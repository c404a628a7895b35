package system

import (
	"gift-tornado/assets"
	"gift-tornado/internal/component"
	"gift-tornado/internal/ecs"
	"gift-tornado/internal/geom"
	"gift-tornado/internal/present"
)

// PursueNearestGift moves the elf one proportional step toward the nearest
// live gift. With no gift in play it steers at a point far off the left
// edge at mid height, which drifts the elf slowly back to centre.
// It returns the elf's new Y, or false if the elf's geometry is unavailable.
func PursueNearestGift(env *Env, elf ecs.EntityID) (float64, bool) {
	act, ok := env.World.Get(elf, component.CActor).(component.Actor)
	if !ok {
		return 0, false
	}
	eBox, ok := env.View.ActorBox(present.ActorElf)
	if !ok {
		return act.Y, false
	}

	target := nearestGift(env, eBox.Center())
	act.Y += (target.Y - eBox.Center().Y) * env.Diff.ElfSpeed
	env.World.Add(elf, act)
	env.View.SetActorPosition(present.ActorElf, act.Y)
	return act.Y, true
}

// nearestGift returns the centre of the gift closest to from. Ties keep the
// lower entity ID.
func nearestGift(env *Env, from geom.Vec2) geom.Vec2 {
	field := env.View.FieldBox()
	best := geom.Vec2{X: env.Tune.ElfSentinelX, Y: field.Bottom() / 2}
	bestDist := from.Dist(best)

	for _, id := range env.World.Query(component.CObject, component.CSprite) {
		if env.World.Get(id, component.CObject).(component.Object).Kind() != assets.KindGift {
			continue
		}
		box, ok := env.View.BoundingBox(env.World.Get(id, component.CSprite).(component.Sprite).Ref)
		if !ok {
			continue
		}
		c := box.Center()
		if d := from.Dist(c); d < bestDist {
			best, bestDist = c, d
		}
	}
	return best
}
