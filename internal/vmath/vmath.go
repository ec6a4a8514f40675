// Package vmath adds the particle engine's helpers on top of mgl32: column
// load/store for channel slices, degree trig and transform decomposition.
package vmath

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

const Pi = float32(math.Pi)

var UnitY = mgl32.Vec3{0, 1, 0}

func SinDeg(deg float32) float32 { return Sin(mgl32.DegToRad(deg)) }
func CosDeg(deg float32) float32 { return Cos(mgl32.DegToRad(deg)) }
func Sin(rad float32) float32    { return float32(math.Sin(float64(rad))) }
func Cos(rad float32) float32    { return float32(math.Cos(float64(rad))) }
func Sqrt(x float32) float32     { return float32(math.Sqrt(float64(x))) }

// Nor returns v scaled to unit length. Unlike mgl32's Normalize the zero
// vector comes back unchanged.
func Nor(v mgl32.Vec3) mgl32.Vec3 {
	if v.LenSqr() == 0 {
		return v
	}
	return v.Normalize()
}

// Eq reports whether a and b agree within eps on every component.
func Eq(a, b mgl32.Vec3, eps float32) bool {
	return a.ApproxEqualThreshold(b, eps)
}
