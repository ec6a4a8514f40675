package render

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/san-kum/partsim/internal/channels"
	"github.com/san-kum/partsim/internal/sorter"
	"github.com/san-kum/partsim/internal/vmath"
)

// Vertex is one flattened particle, ready for a backend to draw as a quad.
type Vertex struct {
	Position   mgl32.Vec3
	Rotation   mgl32.Quat
	Color      [4]float32
	U, V       float32
	U2, V2     float32
	HalfWidth  float32
	HalfHeight float32
	Scale      float32
}

// BufferedBatch merges every controller submitted during a frame and writes
// their particles into Vertices in the order chosen by Sorter.
type BufferedBatch struct {
	Sorter   sorter.Sorter
	Vertices []Vertex

	data  []*RenderData
	spans []sorter.Span
}

// NewBufferedBatch returns a batch; a nil sorter keeps submission order.
func NewBufferedBatch(s sorter.Sorter) *BufferedBatch {
	if s == nil {
		s = sorter.NewNone()
	}
	return &BufferedBatch{Sorter: s}
}

func (b *BufferedBatch) SetCamera(view mgl32.Mat4) { b.Sorter.SetCamera(view) }

func (b *BufferedBatch) Begin() {
	b.data = b.data[:0]
}

func (b *BufferedBatch) Draw(d *RenderData) {
	if d.Count() > 0 {
		b.data = append(b.data, d)
	}
}

// End flattens the submitted data. Vertices stays valid until the next End.
func (b *BufferedBatch) End() {
	b.spans = b.spans[:0]
	n := 0
	for _, d := range b.data {
		b.spans = append(b.spans, sorter.Span{Positions: d.Position.Data, Count: d.Count()})
		n += d.Count()
	}
	b.Sorter.EnsureCapacity(n)
	placement := b.Sorter.Sort(b.spans)

	if cap(b.Vertices) < n {
		b.Vertices = make([]Vertex, n)
	}
	b.Vertices = b.Vertices[:n]

	k := 0
	for _, d := range b.data {
		for i := 0; i < d.Count(); i++ {
			writeVertex(&b.Vertices[placement[k]], d, i)
			k++
		}
	}
}

func (b *BufferedBatch) Len() int { return len(b.Vertices) }

func writeVertex(v *Vertex, d *RenderData, i int) {
	v.Position = vmath.Load3(d.Position.Data, i*d.Position.Stride)
	v.Rotation = vmath.Load4(d.Rotation.Data, i*d.Rotation.Stride)
	copy(v.Color[:], d.Color.Row(i))
	r := d.Region.Row(i)
	v.U, v.V = r[channels.UOffset], r[channels.VOffset]
	v.U2, v.V2 = r[channels.U2Offset], r[channels.V2Offset]
	v.HalfWidth, v.HalfHeight = r[channels.HalfWidthOffset], r[channels.HalfHeightOffset]
	v.Scale = d.Scale.Data[i*d.Scale.Stride]
}
