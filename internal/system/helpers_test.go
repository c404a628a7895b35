package system

import (
	"testing"

	"gift-tornado/assets"
	"gift-tornado/internal/component"
	"gift-tornado/internal/config"
	"gift-tornado/internal/ecs"
	"gift-tornado/internal/factory"
	"gift-tornado/internal/geom"
	"gift-tornado/internal/headless"
	"gift-tornado/internal/present"
)

type testRig struct {
	env    *Env
	view   *headless.Field
	player ecs.EntityID
	elf    ecs.EntityID
}

func newRig(t *testing.T) *testRig {
	t.Helper()
	view := headless.New()
	w := ecs.NewWorld()
	d, _ := config.Default().Lookup(config.Normal)
	r := &testRig{
		env: &Env{
			World: w,
			View:  view,
			RNG:   NewRNG(7),
			Diff:  d,
			Tune:  config.DefaultTuning(),
			Scale: 1,
		},
		view:   view,
		player: factory.NewPlayer(w, 0, 3),
		elf:    factory.NewElf(w, 0),
	}
	return r
}

// place registers an object at pos and draws it there.
func (r *testRig) place(t *testing.T, e assets.Entry, pos, vel geom.Vec2, ignore bool) ecs.EntityID {
	t.Helper()
	ref, err := r.view.CreateEntity(e)
	if err != nil {
		t.Fatalf("CreateEntity: %v", err)
	}
	id := factory.NewGameObject(r.env.World, e, ref, pos, vel)
	b := r.body(id)
	b.IgnoreTornado = ignore
	r.env.World.Add(id, b)
	r.view.SetEntityTransform(ref, pos)
	return id
}

func (r *testRig) body(id ecs.EntityID) component.Body {
	return r.env.World.Get(id, component.CBody).(component.Body)
}

func (r *testRig) movePlayer(y float64) {
	r.view.SetActorPosition(present.ActorPlayer, y)
}

func (r *testRig) moveElf(y float64) {
	r.view.SetActorPosition(present.ActorElf, y)
}
