// Package integrate advances particle columns in place: position-Verlet for
// translation and first-order integration of 2D and 3D rotations.
package integrate

// Verlet advances n particles with position-Verlet:
//
//	next = 2*pos - prev + acc*dt²
//
// prev receives the pre-step position. All three slices use stride 3.
func Verlet(pos, prev, acc []float32, n int, dtSqr float32) {
	for i := 0; i < n*3; i += 3 {
		for k := i; k < i+3; k++ {
			x := pos[k]
			pos[k] = 2*x - prev[k] + acc[k]*dtSqr
			prev[k] = x
		}
	}
}

// Prime copies the current positions of rows [start, start+count) into prev so
// the next Verlet step starts at rest.
func Prime(pos, prev []float32, start, count int) {
	copy(prev[start*3:(start+count)*3], pos[start*3:(start+count)*3])
}
