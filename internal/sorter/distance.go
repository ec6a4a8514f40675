package sorter

import "github.com/go-gl/mathgl/mgl32"

// insertionMax is the longest range sorted by insertion sort.
const insertionMax = 8

// Distance orders particles by view-space depth, the dot product of the world
// position with the third row of the view matrix. With a right-handed view the
// farthest particles come first.
type Distance struct {
	view      mgl32.Mat4
	distances []float32
	indices   []int
	placement []int
}

func NewDistance() *Distance {
	return &Distance{view: mgl32.Ident4()}
}

func (s *Distance) SetCamera(view mgl32.Mat4) { s.view = view }

func (s *Distance) EnsureCapacity(n int) {
	if n <= len(s.distances) {
		return
	}
	s.distances = make([]float32, n)
	s.indices = make([]int, n)
	s.placement = make([]int, n)
}

func (s *Distance) Sort(spans []Span) []int {
	n := total(spans)
	s.EnsureCapacity(n)

	row := s.view.Row(2)
	m20, m21, m22 := row[0], row[1], row[2]
	k := 0
	for _, span := range spans {
		p := span.Positions
		for i := 0; i < span.Count*3; i += 3 {
			s.distances[k] = m20*p[i] + m21*p[i+1] + m22*p[i+2]
			s.indices[k] = k
			k++
		}
	}

	s.qsort(0, n-1)

	for i := 0; i < n; i++ {
		s.placement[s.indices[i]] = i
	}
	return s.placement[:n]
}

// qsort sorts distances[lo..hi] ascending and moves indices along with them.
func (s *Distance) qsort(lo, hi int) {
	if lo >= hi {
		return
	}
	d, idx := s.distances, s.indices

	if hi-lo < insertionMax {
		for i := lo + 1; i <= hi; i++ {
			for j := i; j > lo && d[j-1] > d[j]; j-- {
				d[j-1], d[j] = d[j], d[j-1]
				idx[j-1], idx[j] = idx[j], idx[j-1]
			}
		}
		return
	}

	pivot, pivotIndex := d[lo], idx[lo]
	i := lo + 1
	for j := lo + 1; j <= hi; j++ {
		if d[j] < pivot {
			if j > i {
				d[i], d[j] = d[j], d[i]
				idx[i], idx[j] = idx[j], idx[i]
			}
			i++
		}
	}
	d[lo], idx[lo] = d[i-1], idx[i-1]
	d[i-1], idx[i-1] = pivot, pivotIndex

	s.qsort(lo, i-2)
	s.qsort(i, hi)
}
