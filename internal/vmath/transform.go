package vmath

import "github.com/go-gl/mathgl/mgl32"

// TRS composes translation t, rotation q and scale s as T*R*S.
func TRS(t mgl32.Vec3, q mgl32.Quat, s mgl32.Vec3) mgl32.Mat4 {
	return mgl32.Translate3D(t[0], t[1], t[2]).
		Mul4(q.Mat4()).
		Mul4(mgl32.Scale3D(s[0], s[1], s[2]))
}

// FromAxisAngle builds a rotation of deg degrees around axis. A zero axis
// gives the identity.
func FromAxisAngle(axis mgl32.Vec3, deg float32) mgl32.Quat {
	if axis.LenSqr() == 0 {
		return mgl32.QuatIdent()
	}
	return mgl32.QuatRotate(mgl32.DegToRad(deg), axis.Normalize()).Normalize()
}

// Transform applies the affine transform m to the point v.
func Transform(m mgl32.Mat4, v mgl32.Vec3) mgl32.Vec3 {
	return m.Mul4x1(v.Vec4(1)).Vec3()
}

func Translation(m mgl32.Mat4) mgl32.Vec3 {
	return m.Col(3).Vec3()
}

// Scale returns the length of each basis column.
func Scale(m mgl32.Mat4) mgl32.Vec3 {
	return mgl32.Vec3{m.Col(0).Vec3().Len(), m.Col(1).Vec3().Len(), m.Col(2).Vec3().Len()}
}

// Rotation extracts the rotation part of m. The basis columns are normalized
// first so that scaled transforms still yield a unit quaternion.
func Rotation(m mgl32.Mat4) mgl32.Quat {
	r := mgl32.Ident4()
	for i := 0; i < 3; i++ {
		col := Nor(m.Col(i).Vec3())
		r.SetCol(i, col.Vec4(0))
	}
	return mgl32.Mat4ToQuat(r).Normalize()
}

// FromAxes builds the rotation whose basis columns are x, y and z.
func FromAxes(x, y, z mgl32.Vec3) mgl32.Quat {
	return mgl32.Mat4ToQuat(mgl32.Mat3FromCols(x, y, z).Mat4())
}
