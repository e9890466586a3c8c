package math

import "github.com/go-gl/mathgl/mgl32"

// Mat4 is a 4x4 matrix in column-major order.
// Layout: [m0 m4 m8  m12]
//
//	[m1 m5 m9  m13]
//	[m2 m6 m10 m14]
//	[m3 m7 m11 m15]
type Mat4 [16]float32

// Identity returns an identity matrix.
func Identity() Mat4 {
	return Mat4{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// Compose returns the matrix that rotates by q and then translates by t.
func Compose(q Quat, t Vec3) Mat4 {
	m := q.ToMat4()
	m[12], m[13], m[14] = t.X, t.Y, t.Z
	return m
}

// Mul multiplies this matrix by another (m * other).
func (m Mat4) Mul(other Mat4) Mat4 {
	var result Mat4
	for col := 0; col < 4; col++ {
		for row := 0; row < 4; row++ {
			result[col*4+row] =
				m[0*4+row]*other[col*4+0] +
					m[1*4+row]*other[col*4+1] +
					m[2*4+row]*other[col*4+2] +
					m[3*4+row]*other[col*4+3]
		}
	}
	return result
}

// Inverse returns the inverse of the matrix.
// Returns identity if the matrix is singular.
func (m Mat4) Inverse() Mat4 {
	g := mgl32.Mat4(m)
	if g.Det() == 0 {
		return Identity()
	}
	return Mat4(g.Inv())
}

// Translation returns the translation column.
func (m Mat4) Translation() Vec3 {
	return Vec3{m[12], m[13], m[14]}
}

// Rotation extracts the rotation of the upper 3x3 part as a unit quaternion.
// Scale is divided out of each basis column first.
func (m Mat4) Rotation() Quat {
	g := mgl32.Mat4(m)
	for col := 0; col < 3; col++ {
		c := g.Col(col).Vec3()
		l := c.Len()
		if l == 0 {
			continue
		}
		c = c.Mul(1 / l)
		g.SetCol(col, c.Vec4(0))
	}
	q := mgl32.Mat4ToQuat(g).Normalize()
	return Quat{X: q.V[0], Y: q.V[1], Z: q.V[2], W: q.W}
}
