package vmath

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

const eps = 1e-5

func TestTRSDecompose(t *testing.T) {
	tr := mgl32.Vec3{1, 2, 3}
	q := FromAxisAngle(mgl32.Vec3{0, 0, 1}, 90)
	s := mgl32.Vec3{2, 3, 4}

	m := TRS(tr, q, s)

	if got := Translation(m); !Eq(got, tr, eps) {
		t.Errorf("translation = %v, want %v", got, tr)
	}
	if got := Scale(m); !Eq(got, s, eps) {
		t.Errorf("scale = %v, want %v", got, s)
	}
	if got := Rotation(m); !got.ApproxEqualThreshold(q, eps) {
		t.Errorf("rotation = %v, want %v", got, q)
	}
}

func TestTransformPoint(t *testing.T) {
	m := TRS(mgl32.Vec3{10, 0, 0}, FromAxisAngle(mgl32.Vec3{0, 0, 1}, 90), mgl32.Vec3{1, 1, 1})
	p := Transform(m, mgl32.Vec3{1, 0, 0})
	want := mgl32.Vec3{10, 1, 0}
	if !Eq(p, want, eps) {
		t.Errorf("Transform = %v, want %v", p, want)
	}
}

func TestFromAxisAngleZeroAxis(t *testing.T) {
	if got := FromAxisAngle(mgl32.Vec3{}, 45); got != mgl32.QuatIdent() {
		t.Errorf("zero axis gave %v", got)
	}
}

func TestLoadStore(t *testing.T) {
	buf := make([]float32, 8)
	q := FromAxisAngle(UnitY, 30)
	Store4(q, buf, 4)
	if got := Load4(buf, 4); got != q {
		t.Errorf("Load4 = %v, want %v", got, q)
	}
	Store3(mgl32.Vec3{1, 2, 3}, buf, 0)
	if got := Load3(buf, 0); got != (mgl32.Vec3{1, 2, 3}) {
		t.Errorf("Load3 = %v", got)
	}
	if buf[7] != q.W {
		t.Errorf("w stored at %v, want last slot", buf)
	}
}

func TestNor(t *testing.T) {
	tests := []struct {
		name string
		in   mgl32.Vec3
		want float32
	}{
		{"zero", mgl32.Vec3{}, 0},
		{"unit", mgl32.Vec3{1, 0, 0}, 1},
		{"long", mgl32.Vec3{3, 4, 0}, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Nor(tt.in).Len(); mgl32.Abs(got-tt.want) > eps {
				t.Errorf("Nor().Len() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestTrigDegrees(t *testing.T) {
	if got := SinDeg(90); mgl32.Abs(got-1) > eps {
		t.Errorf("SinDeg(90) = %v", got)
	}
	if got := CosDeg(180); mgl32.Abs(got+1) > eps {
		t.Errorf("CosDeg(180) = %v", got)
	}
}
