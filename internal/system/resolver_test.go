package system

import (
	"math"
	"math/rand"
	"testing"

	"gift-tornado/assets"
	"gift-tornado/internal/component"
	"gift-tornado/internal/geom"
	"gift-tornado/internal/present"
)

func TestResolvePlayerCatchesGift(t *testing.T) {
	r := newRig(t)
	r.movePlayer(200)
	id := r.place(t, assets.Gifts[0], geom.Vec2{X: 48, Y: 254}, geom.Vec2{X: -1}, true)

	ev := Resolve(r.env, r.player, r.elf)

	if ev.PlayerGifts != 1 {
		t.Fatalf("PlayerGifts = %d; want 1", ev.PlayerGifts)
	}
	if r.env.World.Alive(id) {
		t.Fatal("caught gift must be removed from the world")
	}
	if len(r.view.Sprites()) != 0 {
		t.Fatal("caught gift must be removed from the presentation")
	}
	if s := r.env.World.Get(r.player, component.CScore).(component.Score); s.Points != 1 {
		t.Fatalf("player score = %d; want 1", s.Points)
	}
	if r.view.Score(present.SidePlayer) != 1 || r.view.Flashes(present.SidePlayer) != 1 {
		t.Fatal("score display not updated with a flash")
	}
	if r.view.CueCount(present.CuePickup) != 1 {
		t.Fatalf("cues = %v; want one pickup", r.view.Cues)
	}
}

func TestResolveEnemyHitsPlayer(t *testing.T) {
	r := newRig(t)
	r.movePlayer(200)
	r.place(t, assets.Enemies[0], geom.Vec2{X: 48, Y: 254}, geom.Vec2{}, true)

	ev := Resolve(r.env, r.player, r.elf)

	if ev.PlayerHits != 1 || ev.Defeated {
		t.Fatalf("events = %+v; want one non-fatal hit", ev)
	}
	if hp := r.env.World.Get(r.player, component.CHealth).(component.Health); hp.Current != 2 {
		t.Fatalf("health = %d; want 2", hp.Current)
	}
	if r.view.Health() != 2 {
		t.Fatalf("health display = %d; want 2", r.view.Health())
	}
	if r.view.CueCount(present.CueHit) != 1 || r.view.CueCount(present.CueDefeat) != 0 {
		t.Fatalf("cues = %v", r.view.Cues)
	}
}

func TestResolveDefeatStopsPass(t *testing.T) {
	r := newRig(t)
	r.env.World.Add(r.player, component.Health{Current: 1, Max: 3})
	r.movePlayer(200)
	r.place(t, assets.Enemies[0], geom.Vec2{X: 48, Y: 254}, geom.Vec2{}, true)
	later := r.place(t, assets.Gifts[0], geom.Vec2{X: 300, Y: 400}, geom.Vec2{X: 1}, true)

	ev := Resolve(r.env, r.player, r.elf)

	if !ev.Defeated {
		t.Fatal("last heart lost but Defeated not reported")
	}
	if hp := r.env.World.Get(r.player, component.CHealth).(component.Health); hp.Current != 0 {
		t.Fatalf("health = %d; want 0", hp.Current)
	}
	if r.view.CueCount(present.CueDefeat) != 1 || r.view.CueCount(present.CueHit) != 0 {
		t.Fatalf("cues = %v; want only defeat", r.view.Cues)
	}
	if b := r.body(later); b.Pos != (geom.Vec2{X: 300, Y: 400}) {
		t.Fatalf("entity after the defeat was still integrated: %v", b.Pos)
	}
}

func TestResolveElfOnlyTakesGifts(t *testing.T) {
	r := newRig(t)
	r.moveElf(200)
	gift := r.place(t, assets.Gifts[1], geom.Vec2{X: 912, Y: 230}, geom.Vec2{}, true)
	bear := r.place(t, assets.Enemies[0], geom.Vec2{X: 912, Y: 280}, geom.Vec2{}, true)

	ev := Resolve(r.env, r.player, r.elf)

	if ev.ElfGifts != 1 || r.env.World.Alive(gift) {
		t.Fatalf("elf should take the gift: %+v", ev)
	}
	if !r.env.World.Alive(bear) {
		t.Fatal("enemies must pass through the elf")
	}
	if r.view.Score(present.SideElf) != 1 || r.view.Flashes(present.SideElf) != 1 {
		t.Fatal("elf score display not updated with a flash")
	}
	if len(r.view.Cues) != 0 {
		t.Fatalf("elf catches play no cue, got %v", r.view.Cues)
	}
}

func TestResolveBounce(t *testing.T) {
	tests := []struct {
		name    string
		pos     geom.Vec2
		vel     geom.Vec2
		wantPos geom.Vec2
		wantVel geom.Vec2
	}{
		{"left", geom.Vec2{X: 10, Y: 400}, geom.Vec2{X: -2}, geom.Vec2{X: 18, Y: 400}, geom.Vec2{X: 2}},
		{"right", geom.Vec2{X: 955, Y: 400}, geom.Vec2{X: 3}, geom.Vec2{X: 941, Y: 400}, geom.Vec2{X: -3}},
		{"top", geom.Vec2{X: 300, Y: 10}, geom.Vec2{Y: -1}, geom.Vec2{X: 300, Y: 19}, geom.Vec2{Y: 1}},
		{"bottom", geom.Vec2{X: 300, Y: 530}, geom.Vec2{Y: 4}, geom.Vec2{X: 300, Y: 518}, geom.Vec2{Y: -4}},
		{"inside", geom.Vec2{X: 300, Y: 400}, geom.Vec2{X: 1, Y: 1}, geom.Vec2{X: 301, Y: 401}, geom.Vec2{X: 1, Y: 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newRig(t)
			id := r.place(t, assets.Gifts[0], tt.pos, tt.vel, false)
			Resolve(r.env, r.player, r.elf)
			b := r.body(id)
			if b.Pos != tt.wantPos || b.Vel != tt.wantVel {
				t.Fatalf("got pos %v vel %v; want pos %v vel %v", b.Pos, b.Vel, tt.wantPos, tt.wantVel)
			}
			ref := r.env.World.Get(id, component.CSprite).(component.Sprite).Ref
			if box, _ := r.view.BoundingBox(ref); box.Center() != tt.wantPos {
				t.Fatalf("presentation not updated: %v", box.Center())
			}
		})
	}
}

func TestBouncePreservesSpeedPerAxis(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	field := geom.Box{Max: geom.Vec2{X: 960, Y: 540}}
	for i := 0; i < 500; i++ {
		b := component.Body{
			Pos: geom.Vec2{X: rng.Float64()*1000 - 20, Y: rng.Float64()*580 - 20},
			Vel: geom.Vec2{X: rng.Float64()*10 - 5, Y: rng.Float64()*10 - 5},
		}
		box := geom.BoxAround(b.Pos, 32, 36)
		got, _ := Bounce(b, box, field)
		if math.Abs(got.Vel.X) != math.Abs(b.Vel.X) || math.Abs(got.Vel.Y) != math.Abs(b.Vel.Y) {
			t.Fatalf("speed changed: %v -> %v", b.Vel, got.Vel)
		}
	}
}

func TestResolveTornado(t *testing.T) {
	center := geom.Vec2{X: 480, Y: 270}

	t.Run("relaunch once", func(t *testing.T) {
		r := newRig(t)
		id := r.place(t, assets.Gifts[0], center, geom.Vec2{X: 1}, false)
		want := RandomVelocity(NewRNG(7), r.env.Diff, r.env.Tune.LaunchSpreadY, 1).Mul(1.01)

		ev := Resolve(r.env, r.player, r.elf)

		b := r.body(id)
		if ev.Relaunched != 1 || !b.IgnoreTornado {
			t.Fatalf("relaunch not applied: %+v %+v", ev, b)
		}
		if b.Vel != want {
			t.Fatalf("vel = %v; want %v", b.Vel, want)
		}
	})

	t.Run("accelerates while inside", func(t *testing.T) {
		r := newRig(t)
		id := r.place(t, assets.Gifts[0], center, geom.Vec2{X: 2}, true)
		ev := Resolve(r.env, r.player, r.elf)
		if ev.Relaunched != 0 {
			t.Fatal("ignoring object must not be relaunched")
		}
		if b := r.body(id); math.Abs(b.Vel.X-2.02) > 1e-12 || !b.IgnoreTornado {
			t.Fatalf("body = %+v; want vel.x 2.02 and still ignoring", b)
		}
		if r.env.RNG.Calls() != 0 {
			t.Fatal("acceleration must not draw random numbers")
		}
	})

	t.Run("leaving clears the flag", func(t *testing.T) {
		r := newRig(t)
		id := r.place(t, assets.Gifts[0], geom.Vec2{X: 300, Y: 400}, geom.Vec2{X: 2}, true)
		Resolve(r.env, r.player, r.elf)
		if b := r.body(id); b.IgnoreTornado || b.Vel.X != 2 {
			t.Fatalf("body = %+v", b)
		}
	})
}

func TestResolveSkipsMissingGeometry(t *testing.T) {
	r := newRig(t)
	r.movePlayer(200)
	id := r.place(t, assets.Enemies[0], geom.Vec2{X: 48, Y: 254}, geom.Vec2{X: 5}, true)
	ref := r.env.World.Get(id, component.CSprite).(component.Sprite).Ref
	r.view.Hide(ref)

	ev := Resolve(r.env, r.player, r.elf)

	if ev != (Events{}) {
		t.Fatalf("hidden entity produced events: %+v", ev)
	}
	if b := r.body(id); b.Pos != (geom.Vec2{X: 48, Y: 254}) {
		t.Fatalf("hidden entity moved to %v", b.Pos)
	}

	r.view.Show(ref)
	r.view.HideActor(present.ActorPlayer)
	if ev := Resolve(r.env, r.player, r.elf); ev.PlayerHits != 0 {
		t.Fatal("missing player geometry must mean no overlap")
	}
}

func TestHealthNeverIncreasesOrGoesNegative(t *testing.T) {
	r := newRig(t)
	r.env.Diff.EnemyFraction = 0.9
	sp := NewSpawner()
	rng := rand.New(rand.NewSource(11))

	last := 3
	for tick := 0; tick < 5000; tick++ {
		q := float64(tick%420) / 420
		if _, err := sp.Spawn(r.env, q); err != nil {
			t.Fatalf("Spawn: %v", err)
		}
		r.movePlayer(rng.Float64() * 432)
		ev := Resolve(r.env, r.player, r.elf)
		hp := r.env.World.Get(r.player, component.CHealth).(component.Health).Current
		if hp < 0 || hp > last {
			t.Fatalf("tick %d: health went from %d to %d", tick, last, hp)
		}
		last = hp
		if ev.Defeated {
			if hp != 0 {
				t.Fatalf("defeated with %d health", hp)
			}
			return
		}
	}
}

func TestRemoveObjectIdempotent(t *testing.T) {
	r := newRig(t)
	id := r.place(t, assets.Gifts[0], geom.Vec2{X: 300, Y: 300}, geom.Vec2{}, false)

	if !RemoveObject(r.env.World, r.view, id) {
		t.Fatal("first removal should report true")
	}
	if RemoveObject(r.env.World, r.view, id) {
		t.Fatal("second removal should be a no-op")
	}
	if len(r.view.Destroyed) != 1 {
		t.Fatalf("presentation destroyed %d times; want 1", len(r.view.Destroyed))
	}
}
