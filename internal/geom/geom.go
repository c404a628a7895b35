// Package geom holds the 2D primitives shared by the simulation and the
// presentation layer. It has no dependencies so both sides can import it.
package geom

import "math"

// Vec2 is a 2D vector in field units. Y grows downwards, like the screen.
type Vec2 struct{ X, Y float64 }

func (v Vec2) Add(o Vec2) Vec2     { return Vec2{v.X + o.X, v.Y + o.Y} }
func (v Vec2) Sub(o Vec2) Vec2     { return Vec2{v.X - o.X, v.Y - o.Y} }
func (v Vec2) Mul(s float64) Vec2  { return Vec2{v.X * s, v.Y * s} }
func (v Vec2) Len() float64        { return math.Sqrt(v.X*v.X + v.Y*v.Y) }
func (v Vec2) Dist(o Vec2) float64 { return v.Sub(o).Len() }

// Box is an axis-aligned rectangle given by its top-left and bottom-right corners.
type Box struct {
	Min Vec2 // top-left
	Max Vec2 // bottom-right
}

// BoxAround returns the box of size (w, h) centered on c.
func BoxAround(c Vec2, w, h float64) Box {
	half := Vec2{w / 2, h / 2}
	return Box{Min: c.Sub(half), Max: c.Add(half)}
}

func (b Box) Left() float64   { return b.Min.X }
func (b Box) Top() float64    { return b.Min.Y }
func (b Box) Right() float64  { return b.Max.X }
func (b Box) Bottom() float64 { return b.Max.Y }
func (b Box) Width() float64  { return b.Max.X - b.Min.X }
func (b Box) Height() float64 { return b.Max.Y - b.Min.Y }

// Center returns the midpoint of the box.
func (b Box) Center() Vec2 {
	return b.Min.Add(b.Max.Sub(b.Min).Mul(0.5))
}

// Overlap reports whether a and b intersect. Edges that only touch do not
// count, so the test is symmetric and half-open.
func Overlap(a, b Box) bool {
	return a.Min.X < b.Max.X &&
		a.Max.X > b.Min.X &&
		a.Min.Y < b.Max.Y &&
		a.Max.Y > b.Min.Y
}

// Clamp restricts v to [lo, hi]. When hi < lo, lo wins.
func Clamp(v, lo, hi float64) float64 {
	return math.Max(math.Min(v, hi), lo)
}
