package particles

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/san-kum/partsim/internal/channels"
	"github.com/san-kum/partsim/internal/values"
	"github.com/san-kum/partsim/internal/vmath"
)

// modifierBase holds what every dynamics modifier shares. Global modifiers
// work in world space and ignore the controller transform.
type modifierBase struct {
	ComponentBase
	Global bool

	life *channels.Channel[float32]
}

func (m *modifierBase) AllocateChannels() error {
	var err error
	m.life, err = channels.Add(m.controller.Particles, channels.Life)
	return err
}

func (m *modifierBase) lifePercent(row int) float32 {
	return m.life.Data[row*m.life.Stride+channels.LifePercentOffset]
}

// strengthBase caches a per-particle strength interpolation.
type strengthBase struct {
	modifierBase
	Strength values.Scaled

	strength *channels.Channel[float32]
}

func newStrengthBase() strengthBase {
	return strengthBase{Strength: values.NewScaled()}
}

func (s *strengthBase) AllocateChannels() error {
	if err := s.modifierBase.AllocateChannels(); err != nil {
		return err
	}
	var err error
	s.strength, err = channels.Add(s.controller.Particles, channels.Interpolation.WithID(s.controller.NewScratchID()))
	return err
}

func (s *strengthBase) ActivateParticles(start, count int) {
	rng := s.controller.Rand()
	for i, end := start*s.strength.Stride, (start+count)*s.strength.Stride; i < end; i += s.strength.Stride {
		lo, diff := s.Strength.StartDiff(rng)
		s.strength.Data[i+channels.InterpolationStartOffset] = lo
		s.strength.Data[i+channels.InterpolationDiffOffset] = diff
	}
}

func (s *strengthBase) strengthAt(row int, lifePercent float32) float32 {
	i := row * s.strength.Stride
	return s.strength.Data[i+channels.InterpolationStartOffset] +
		s.strength.Data[i+channels.InterpolationDiffOffset]*s.Strength.Scale(lifePercent)
}

func (s strengthBase) clone() strengthBase {
	return strengthBase{modifierBase: modifierBase{Global: s.Global}, Strength: s.Strength.Clone()}
}

// angularBase adds a per-particle direction given by a polar angle Theta and
// an azimuth Phi, both in degrees.
type angularBase struct {
	strengthBase
	Theta values.Scaled
	Phi   values.Scaled

	angular *channels.Channel[float32]
}

func newAngularBase() angularBase {
	return angularBase{strengthBase: newStrengthBase(), Theta: values.NewScaled(), Phi: values.NewScaled()}
}

func (a *angularBase) AllocateChannels() error {
	if err := a.strengthBase.AllocateChannels(); err != nil {
		return err
	}
	var err error
	a.angular, err = channels.Add(a.controller.Particles, channels.Interpolation4.WithID(a.controller.NewScratchID()))
	return err
}

func (a *angularBase) ActivateParticles(start, count int) {
	a.strengthBase.ActivateParticles(start, count)
	rng := a.controller.Rand()
	for i, end := start*a.angular.Stride, (start+count)*a.angular.Stride; i < end; i += a.angular.Stride {
		lo, diff := a.Theta.StartDiff(rng)
		a.angular.Data[i+channels.ThetaStartOffset] = lo
		a.angular.Data[i+channels.ThetaDiffOffset] = diff
		lo, diff = a.Phi.StartDiff(rng)
		a.angular.Data[i+channels.PhiStartOffset] = lo
		a.angular.Data[i+channels.PhiDiffOffset] = diff
	}
}

// direction returns the unnormalized spherical direction for row.
func (a *angularBase) direction(row int, lifePercent float32) mgl32.Vec3 {
	i := row * a.angular.Stride
	d := a.angular.Data
	theta := d[i+channels.ThetaStartOffset] + d[i+channels.ThetaDiffOffset]*a.Theta.Scale(lifePercent)
	phi := d[i+channels.PhiStartOffset] + d[i+channels.PhiDiffOffset]*a.Phi.Scale(lifePercent)
	sinPhi := vmath.SinDeg(phi)
	return mgl32.Vec3{vmath.CosDeg(theta) * sinPhi, vmath.CosDeg(phi), vmath.SinDeg(theta) * sinPhi}
}

func (a angularBase) clone() angularBase {
	return angularBase{strengthBase: a.strengthBase.clone(), Theta: a.Theta.Clone(), Phi: a.Phi.Clone()}
}

// addAcceleration allocates the acceleration channel for directional modifiers.
func addAcceleration(c *Controller) (*channels.Channel[float32], error) {
	return channels.Add(c.Particles, channels.Acceleration)
}

// Rotational2D spins particles in the plane at Strength degrees per second.
type Rotational2D struct {
	strengthBase
	angular *channels.Channel[float32]
}

func NewRotational2D() *Rotational2D { return &Rotational2D{strengthBase: newStrengthBase()} }

func (r *Rotational2D) AllocateChannels() error {
	if err := r.strengthBase.AllocateChannels(); err != nil {
		return err
	}
	var err error
	r.angular, err = channels.Add(r.controller.Particles, channels.AngularVelocity2D)
	return err
}

func (r *Rotational2D) Update() {
	n := r.controller.Particles.Size()
	for i := 0; i < n; i++ {
		r.angular.Data[i] += r.strengthAt(i, r.lifePercent(i))
	}
}

func (r *Rotational2D) Copy() DynamicsModifier {
	return &Rotational2D{strengthBase: r.strengthBase.clone()}
}

// Rotational3D spins particles around the (Theta, Phi) axis at Strength
// degrees per second.
type Rotational3D struct {
	angularBase
	angular3D *channels.Channel[float32]
}

func NewRotational3D() *Rotational3D { return &Rotational3D{angularBase: newAngularBase()} }

func (r *Rotational3D) AllocateChannels() error {
	if err := r.angularBase.AllocateChannels(); err != nil {
		return err
	}
	var err error
	r.angular3D, err = channels.Add(r.controller.Particles, channels.AngularVelocity3D)
	return err
}

func (r *Rotational3D) Update() {
	n := r.controller.Particles.Size()
	for i := 0; i < n; i++ {
		t := r.lifePercent(i)
		w := r.direction(i, t).Mul(mgl32.DegToRad(r.strengthAt(i, t)))
		k := i * r.angular3D.Stride
		r.angular3D.Data[k+channels.XOffset] += w[0]
		r.angular3D.Data[k+channels.YOffset] += w[1]
		r.angular3D.Data[k+channels.ZOffset] += w[2]
	}
}

func (r *Rotational3D) Copy() DynamicsModifier {
	return &Rotational3D{angularBase: r.angularBase.clone()}
}

func accumulate(acc *channels.Channel[float32], row int, v mgl32.Vec3) {
	k := row * acc.Stride
	acc.Data[k+channels.XOffset] += v[0]
	acc.Data[k+channels.YOffset] += v[1]
	acc.Data[k+channels.ZOffset] += v[2]
}

// CentripetalAcceleration pushes particles away from the controller origin,
// or from the world origin when Global. A negative strength pulls them in.
type CentripetalAcceleration struct {
	strengthBase
	acceleration *channels.Channel[float32]
	position     *channels.Channel[float32]
}

func NewCentripetalAcceleration() *CentripetalAcceleration {
	return &CentripetalAcceleration{strengthBase: newStrengthBase()}
}

func (m *CentripetalAcceleration) AllocateChannels() error {
	if err := m.strengthBase.AllocateChannels(); err != nil {
		return err
	}
	var err error
	if m.acceleration, err = addAcceleration(m.controller); err != nil {
		return err
	}
	m.position, err = channels.Add(m.controller.Particles, channels.Position)
	return err
}

func (m *CentripetalAcceleration) Update() {
	var center mgl32.Vec3
	if !m.Global {
		center = vmath.Translation(m.controller.Transform)
	}
	n := m.controller.Particles.Size()
	for i := 0; i < n; i++ {
		p := vmath.Load3(m.position.Data, i*m.position.Stride)
		accumulate(m.acceleration, i, vmath.Nor(p.Sub(center)).Mul(m.strengthAt(i, m.lifePercent(i))))
	}
}

func (m *CentripetalAcceleration) Copy() DynamicsModifier {
	return &CentripetalAcceleration{strengthBase: m.strengthBase.clone()}
}

// PolarAcceleration accelerates along the (Theta, Phi) direction, expressed in
// the controller's frame unless Global.
type PolarAcceleration struct {
	angularBase
	acceleration *channels.Channel[float32]
}

func NewPolarAcceleration() *PolarAcceleration {
	return &PolarAcceleration{angularBase: newAngularBase()}
}

func (m *PolarAcceleration) AllocateChannels() error {
	if err := m.angularBase.AllocateChannels(); err != nil {
		return err
	}
	var err error
	m.acceleration, err = addAcceleration(m.controller)
	return err
}

func (m *PolarAcceleration) Update() {
	rot := mgl32.QuatIdent()
	if !m.Global {
		rot = vmath.Rotation(m.controller.Transform)
	}
	n := m.controller.Particles.Size()
	for i := 0; i < n; i++ {
		t := m.lifePercent(i)
		v := vmath.Nor(m.direction(i, t)).Mul(m.strengthAt(i, t))
		if !m.Global {
			v = rot.Rotate(v)
		}
		accumulate(m.acceleration, i, v)
	}
}

func (m *PolarAcceleration) Copy() DynamicsModifier {
	return &PolarAcceleration{angularBase: m.angularBase.clone()}
}

// TangentialAcceleration accelerates perpendicular to both the (Theta, Phi)
// axis and the particle position, swirling particles around that axis.
type TangentialAcceleration struct {
	angularBase
	acceleration *channels.Channel[float32]
	position     *channels.Channel[float32]
}

func NewTangentialAcceleration() *TangentialAcceleration {
	return &TangentialAcceleration{angularBase: newAngularBase()}
}

func (m *TangentialAcceleration) AllocateChannels() error {
	if err := m.angularBase.AllocateChannels(); err != nil {
		return err
	}
	var err error
	if m.acceleration, err = addAcceleration(m.controller); err != nil {
		return err
	}
	m.position, err = channels.Add(m.controller.Particles, channels.Position)
	return err
}

func (m *TangentialAcceleration) Update() {
	rot := mgl32.QuatIdent()
	if !m.Global {
		rot = vmath.Rotation(m.controller.Transform)
	}
	n := m.controller.Particles.Size()
	for i := 0; i < n; i++ {
		t := m.lifePercent(i)
		p := vmath.Load3(m.position.Data, i*m.position.Stride)
		v := vmath.Nor(m.direction(i, t).Cross(p)).Mul(m.strengthAt(i, t))
		if !m.Global {
			v = rot.Rotate(v)
		}
		accumulate(m.acceleration, i, v)
	}
}

func (m *TangentialAcceleration) Copy() DynamicsModifier {
	return &TangentialAcceleration{angularBase: m.angularBase.clone()}
}

// BrownianAcceleration adds a random unit direction scaled by Strength every frame.
type BrownianAcceleration struct {
	strengthBase
	acceleration *channels.Channel[float32]
}

func NewBrownianAcceleration() *BrownianAcceleration {
	return &BrownianAcceleration{strengthBase: newStrengthBase()}
}

func (m *BrownianAcceleration) AllocateChannels() error {
	if err := m.strengthBase.AllocateChannels(); err != nil {
		return err
	}
	var err error
	m.acceleration, err = addAcceleration(m.controller)
	return err
}

func (m *BrownianAcceleration) Update() {
	rng := m.controller.Rand()
	n := m.controller.Particles.Size()
	for i := 0; i < n; i++ {
		v := mgl32.Vec3{2*rng.Float32() - 1, 2*rng.Float32() - 1, 2*rng.Float32() - 1}
		accumulate(m.acceleration, i, vmath.Nor(v).Mul(m.strengthAt(i, m.lifePercent(i))))
	}
}

func (m *BrownianAcceleration) Copy() DynamicsModifier {
	return &BrownianAcceleration{strengthBase: m.strengthBase.clone()}
}

// FaceDirection orients each particle's 3D rotation along its accumulated
// acceleration. Register it after the modifiers that produce that acceleration.
type FaceDirection struct {
	modifierBase
	rotation     *channels.Channel[float32]
	acceleration *channels.Channel[float32]
}

func NewFaceDirection() *FaceDirection { return &FaceDirection{} }

func (m *FaceDirection) AllocateChannels() error {
	store := m.controller.Particles
	var err error
	if m.rotation, err = channels.Add(store, channels.Rotation3D, channels.IdentityRotation3D); err != nil {
		return err
	}
	m.acceleration, err = addAcceleration(m.controller)
	return err
}

func (m *FaceDirection) Update() {
	n := m.controller.Particles.Size()
	for i := 0; i < n; i++ {
		z := vmath.Nor(vmath.Load3(m.acceleration.Data, i*m.acceleration.Stride))
		y := vmath.Nor(vmath.Nor(z.Cross(vmath.UnitY)).Cross(z))
		x := vmath.Nor(y.Cross(z))
		vmath.Store4(vmath.FromAxes(x, y, z), m.rotation.Data, i*m.rotation.Stride)
	}
}

func (m *FaceDirection) Copy() DynamicsModifier {
	return &FaceDirection{modifierBase: modifierBase{Global: m.Global}}
}
