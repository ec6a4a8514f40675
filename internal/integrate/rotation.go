package integrate

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/san-kum/partsim/internal/vmath"
)

// Rotate2D composes each (cos, sin) pair in rot with a rotation of
// angVel*dt degrees. rot has stride 2, angVel stride 1.
func Rotate2D(rot, angVel []float32, n int, dt float32) {
	for i := 0; i < n; i++ {
		deg := angVel[i] * dt
		if deg == 0 {
			continue
		}
		cb, sb := vmath.CosDeg(deg), vmath.SinDeg(deg)
		k := i * 2
		c, s := rot[k], rot[k+1]
		rot[k] = c*cb - s*sb
		rot[k+1] = s*cb + c*sb
	}
}

// Rotate3D integrates each quaternion in rot (stride 4) by the angular velocity
// in angVel (stride 3, radians per second): q += 0.5*dt*(ω,0)*q, then renormalizes.
func Rotate3D(rot, angVel []float32, n int, dt float32) {
	for i := 0; i < n; i++ {
		q := vmath.Load4(rot, i*4)
		w := mgl32.Quat{V: mgl32.Vec3{angVel[i*3], angVel[i*3+1], angVel[i*3+2]}}
		q = w.Mul(q).Scale(0.5 * dt).Add(q).Normalize()
		vmath.Store4(q, rot, i*4)
	}
}
