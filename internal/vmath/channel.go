package vmath

import "github.com/go-gl/mathgl/mgl32"

// Load3 reads a vector from src starting at off.
func Load3(src []float32, off int) mgl32.Vec3 {
	return mgl32.Vec3{src[off], src[off+1], src[off+2]}
}

// Store3 writes v into dst starting at off.
func Store3(v mgl32.Vec3, dst []float32, off int) {
	dst[off] = v[0]
	dst[off+1] = v[1]
	dst[off+2] = v[2]
}

// Load4 reads a quaternion stored as (x, y, z, w).
func Load4(src []float32, off int) mgl32.Quat {
	return mgl32.Quat{W: src[off+3], V: mgl32.Vec3{src[off], src[off+1], src[off+2]}}
}

// Store4 writes q as (x, y, z, w).
func Store4(q mgl32.Quat, dst []float32, off int) {
	dst[off] = q.V[0]
	dst[off+1] = q.V[1]
	dst[off+2] = q.V[2]
	dst[off+3] = q.W
}
