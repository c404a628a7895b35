package geom

import (
	"math"
	"math/rand"
	"testing"
)

func TestVecArithmetic(t *testing.T) {
	a := Vec2{3, 4}
	b := Vec2{1, -2}

	if got := a.Add(b); got != (Vec2{4, 2}) {
		t.Errorf("Add = %v; want {4 2}", got)
	}
	if got := a.Sub(b); got != (Vec2{2, 6}) {
		t.Errorf("Sub = %v; want {2 6}", got)
	}
	if got := a.Mul(2); got != (Vec2{6, 8}) {
		t.Errorf("Mul = %v; want {6 8}", got)
	}
	if got := a.Len(); got != 5 {
		t.Errorf("Len = %v; want 5", got)
	}
}

func TestBoxAroundAndCenter(t *testing.T) {
	b := BoxAround(Vec2{10, 20}, 4, 6)
	if b.Min != (Vec2{8, 17}) || b.Max != (Vec2{12, 23}) {
		t.Fatalf("BoxAround = %+v", b)
	}
	if c := b.Center(); c != (Vec2{10, 20}) {
		t.Errorf("Center = %v; want {10 20}", c)
	}
	if b.Width() != 4 || b.Height() != 6 {
		t.Errorf("size = %vx%v; want 4x6", b.Width(), b.Height())
	}
}

func TestOverlap(t *testing.T) {
	base := Box{Min: Vec2{0, 0}, Max: Vec2{10, 10}}
	cases := []struct {
		name string
		b    Box
		want bool
	}{
		{"inside", Box{Vec2{2, 2}, Vec2{4, 4}}, true},
		{"partial", Box{Vec2{8, 8}, Vec2{12, 12}}, true},
		{"touching right edge", Box{Vec2{10, 0}, Vec2{20, 10}}, false},
		{"touching bottom edge", Box{Vec2{0, 10}, Vec2{10, 20}}, false},
		{"disjoint", Box{Vec2{30, 30}, Vec2{40, 40}}, false},
		{"containing", Box{Vec2{-5, -5}, Vec2{15, 15}}, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Overlap(base, tc.b); got != tc.want {
				t.Errorf("Overlap = %v; want %v", got, tc.want)
			}
		})
	}
}

func TestOverlapIsSymmetric(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	randBox := func() Box {
		c := Vec2{rng.Float64() * 100, rng.Float64() * 100}
		return BoxAround(c, 1+rng.Float64()*30, 1+rng.Float64()*30)
	}
	for i := 0; i < 500; i++ {
		a, b := randBox(), randBox()
		if Overlap(a, b) != Overlap(b, a) {
			t.Fatalf("asymmetric overlap for %+v and %+v", a, b)
		}
	}
}

func TestClamp(t *testing.T) {
	if got := Clamp(-1, 0, 5); got != 0 {
		t.Errorf("Clamp(-1,0,5) = %v", got)
	}
	if got := Clamp(7, 0, 5); got != 5 {
		t.Errorf("Clamp(7,0,5) = %v", got)
	}
	if got := Clamp(3, 0, -2); got != 0 {
		t.Errorf("Clamp with inverted range = %v; want lower bound", got)
	}
	if got := Vec2{1, 1}.Dist(Vec2{4, 5}); math.Abs(got-5) > 1e-12 {
		t.Errorf("Dist = %v; want 5", got)
	}
}
