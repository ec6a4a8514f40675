// Package pool provides a free-list object pool whose bulk Clear tears down
// every pooled instance.
package pool

// Pool hands out instances made by a factory and keeps freed ones for reuse.
// Unlike sync.Pool it never drops instances on its own, so Clear can release
// each pooled instance exactly once.
type Pool[T any] struct {
	newFn    func() T
	teardown func(T)
	free     []T
	max      int
	peak     int
}

// New returns a pool. teardown may be nil; max <= 0 means unbounded.
func New[T any](newFn func() T, teardown func(T), max int) *Pool[T] {
	return &Pool[T]{newFn: newFn, teardown: teardown, max: max}
}

// Obtain returns a pooled instance, or a fresh one when the pool is empty.
func (p *Pool[T]) Obtain() T {
	n := len(p.free)
	if n == 0 {
		return p.newFn()
	}
	obj := p.free[n-1]
	var zero T
	p.free[n-1] = zero
	p.free = p.free[:n-1]
	return obj
}

// Free returns obj to the pool. When the pool is full obj is torn down instead.
func (p *Pool[T]) Free(obj T) {
	if p.max > 0 && len(p.free) >= p.max {
		if p.teardown != nil {
			p.teardown(obj)
		}
		return
	}
	p.free = append(p.free, obj)
	if len(p.free) > p.peak {
		p.peak = len(p.free)
	}
}

// Fill creates n instances and stores them in the pool.
func (p *Pool[T]) Fill(n int) {
	for i := 0; i < n; i++ {
		p.Free(p.newFn())
	}
}

// Clear tears down and drops every pooled instance.
func (p *Pool[T]) Clear() {
	for i, obj := range p.free {
		if p.teardown != nil {
			p.teardown(obj)
		}
		var zero T
		p.free[i] = zero
	}
	p.free = p.free[:0]
}

// Len is the number of instances waiting in the pool.
func (p *Pool[T]) Len() int { return len(p.free) }

// Peak is the largest number of instances the pool has held at once.
func (p *Pool[T]) Peak() int { return p.peak }
