package system

import (
	"fmt"
	"math"

	"gift-tornado/assets"
	"gift-tornado/internal/ecs"
	"gift-tornado/internal/factory"
)

// TargetCount is how many objects should be live at pulse progress q.
// Halves round away from zero.
func TargetCount(maxObjects int, q float64) int {
	return int(math.Round(float64(maxObjects) * q))
}

// Spawner releases objects from the tornado. It cycles through each
// catalog independently of the gift/enemy decision.
type Spawner struct {
	Gifts, Enemies []assets.Entry

	nextGift  int
	nextEnemy int
}

// NewSpawner uses the built-in catalogs.
func NewSpawner() *Spawner {
	return &Spawner{Gifts: assets.Gifts, Enemies: assets.Enemies}
}

// Reset rewinds both catalog cursors.
func (s *Spawner) Reset() { s.nextGift, s.nextEnemy = 0, 0 }

// Cursors returns the next catalog indices.
func (s *Spawner) Cursors() (gift, enemy int) { return s.nextGift, s.nextEnemy }

// Spawn makes one spawn decision for pulse progress q. It creates at most
// one object and returns NilEntity when the field is already full enough.
// The presentation handle is created first; if that fails nothing is
// registered and the cursors do not move.
func (s *Spawner) Spawn(env *Env, q float64) (ecs.EntityID, error) {
	gifts, enemies := CountObjects(env.World)
	live := gifts + enemies
	if live >= TargetCount(env.Diff.MaxObjects, q) {
		return ecs.NilEntity, nil
	}

	enemyShare := 0.5
	if live > 0 {
		enemyShare = float64(enemies) / float64(live)
	}

	var entry assets.Entry
	enemy := enemyShare < env.Diff.EnemyFraction
	if enemy {
		entry = s.Enemies[s.nextEnemy]
	} else {
		entry = s.Gifts[s.nextGift]
	}

	ref, err := env.View.CreateEntity(entry)
	if err != nil {
		return ecs.NilEntity, fmt.Errorf("spawn %s: %w", entry.Name, err)
	}
	if enemy {
		s.nextEnemy = (s.nextEnemy + 1) % len(s.Enemies)
	} else {
		s.nextGift = (s.nextGift + 1) % len(s.Gifts)
	}

	center := env.View.FieldBox().Center()
	id := factory.NewGameObject(env.World, entry, ref, center, env.Launch())
	env.View.SetEntityTransform(ref, center)
	return id, nil
}
