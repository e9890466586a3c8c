// Package math provides the float32 vector, quaternion and matrix types used
// by the scene model and the exporters.
package math

import "math"

// Vec3 is a 3D vector.
type Vec3 struct {
	X, Y, Z float32
}

// Sub returns v - other.
func (v Vec3) Sub(other Vec3) Vec3 {
	return Vec3{v.X - other.X, v.Y - other.Y, v.Z - other.Z}
}

// Length returns the magnitude.
func (v Vec3) Length() float32 {
	return float32(math.Sqrt(float64(v.X*v.X + v.Y*v.Y + v.Z*v.Z)))
}

// Near reports whether the distance to other is strictly below eps.
func (v Vec3) Near(other Vec3, eps float32) bool {
	return v.Sub(other).Length() < eps
}
