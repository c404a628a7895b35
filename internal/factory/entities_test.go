package factory

import (
	"testing"

	"gift-tornado/assets"
	"gift-tornado/internal/component"
	"gift-tornado/internal/ecs"
	"gift-tornado/internal/geom"
	"gift-tornado/internal/present"
)

func TestNewPlayerComponents(t *testing.T) {
	w := ecs.NewWorld()
	id := NewPlayer(w, 42, 3)

	if !w.Alive(id) {
		t.Fatal("player entity must be alive")
	}
	act := w.Get(id, component.CActor)
	if act == nil {
		t.Fatal("player must have CActor")
	}
	if a := act.(component.Actor); a.Role != present.ActorPlayer || a.Y != 42 {
		t.Errorf("actor = %+v; want player at 42", a)
	}

	hp := w.Get(id, component.CHealth)
	if hp == nil {
		t.Fatal("player must have CHealth")
	}
	if h := hp.(component.Health); h.Current != 3 || h.Max != 3 {
		t.Errorf("HP = %d/%d; want 3/3", h.Current, h.Max)
	}
	if w.Get(id, component.CScore) == nil {
		t.Error("player must have CScore")
	}
	if !w.Has(id, component.CTagPlayer) {
		t.Error("player must have CTagPlayer")
	}
	if w.Has(id, component.CBody) {
		t.Error("player must not have CBody; the resolver only moves game objects")
	}
}

func TestNewElfComponents(t *testing.T) {
	w := ecs.NewWorld()
	id := NewElf(w, 10)

	if !w.Has(id, component.CTagElf) {
		t.Error("elf must have CTagElf")
	}
	if w.Has(id, component.CHealth) {
		t.Error("elf must not have CHealth")
	}
	if a := w.Get(id, component.CActor).(component.Actor); a.Role != present.ActorElf {
		t.Errorf("elf role = %v", a.Role)
	}
}

func TestNewGameObjectComponents(t *testing.T) {
	tests := []struct {
		name  string
		entry assets.Entry
	}{
		{"gift", assets.Gifts[0]},
		{"enemy", assets.Enemies[0]},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := ecs.NewWorld()
			pos := geom.Vec2{X: 480, Y: 270}
			vel := geom.Vec2{X: -2, Y: 1}
			id := NewGameObject(w, tt.entry, present.Ref(7), pos, vel)

			b := w.Get(id, component.CBody).(component.Body)
			if b.Pos != pos || b.Vel != vel {
				t.Errorf("body = %+v", b)
			}
			if !b.IgnoreTornado {
				t.Error("new objects start inside the tornado and must ignore it")
			}
			if o := w.Get(id, component.CObject).(component.Object); o.Kind() != tt.entry.Kind {
				t.Errorf("kind = %v; want %v", o.Kind(), tt.entry.Kind)
			}
			if s := w.Get(id, component.CSprite).(component.Sprite); s.Ref != 7 {
				t.Errorf("ref = %d; want 7", s.Ref)
			}
		})
	}
}
