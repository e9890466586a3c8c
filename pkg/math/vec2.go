package math

import "math"

// Vec2 is a 2D vector. Curve points use X for time and Y for value.
type Vec2 struct {
	X, Y float32
}

// Sub returns v - other.
func (v Vec2) Sub(other Vec2) Vec2 {
	return Vec2{v.X - other.X, v.Y - other.Y}
}

// Length returns the magnitude.
func (v Vec2) Length() float32 {
	return float32(math.Sqrt(float64(v.X*v.X + v.Y*v.Y)))
}

// Near reports whether the distance to other is strictly below eps.
func (v Vec2) Near(other Vec2, eps float32) bool {
	return v.Sub(other).Length() < eps
}

// FlipV returns (u, 1-v), converting a bottom-left UV origin to top-left.
func (v Vec2) FlipV() Vec2 {
	return Vec2{v.X, 1 - v.Y}
}
