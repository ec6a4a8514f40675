package channels

import "fmt"

// Store is a growable table of channels sharing one capacity.
type Store struct {
	capacity int
	size     int
	columns  []column
	byID     map[int]column
}

func NewStore(capacity int) *Store {
	return &Store{
		capacity: capacity,
		byID:     make(map[int]column),
	}
}

func (s *Store) Size() int     { return s.size }
func (s *Store) Capacity() int { return s.capacity }
func (s *Store) Len() int      { return len(s.columns) }

// Add returns the channel registered under d.ID, allocating a zeroed one (passed
// through init, if given) when the identity is new. An existing channel is returned
// untouched.
func Add[T any](s *Store, d Descriptor[T], init ...Initializer[T]) (*Channel[T], error) {
	if d.ID == Scratch {
		return nil, ErrScratchIdentity
	}
	if col, ok := s.byID[d.ID]; ok {
		c, ok := col.(*Channel[T])
		if !ok {
			return nil, fmt.Errorf("%w: %v is %s, requested %s", ErrKindMismatch, d, col.Kind(), d.Kind())
		}
		return c, nil
	}

	c := &Channel[T]{
		id:     d.ID,
		Stride: d.Stride,
		Data:   make([]T, s.capacity*d.Stride),
	}
	for _, fn := range init {
		fn(c)
	}
	s.columns = append(s.columns, c)
	s.byID[d.ID] = c
	return c, nil
}

// Get looks a channel up by identity. It never allocates and returns nil when the
// identity is absent or bound to another element type.
func Get[T any](s *Store, d Descriptor[T]) *Channel[T] {
	col, ok := s.byID[d.ID]
	if !ok {
		return nil
	}
	c, _ := col.(*Channel[T])
	return c
}

// Has reports whether a channel with the given identity exists.
func (s *Store) Has(id int) bool {
	_, ok := s.byID[id]
	return ok
}

// AddElement appends one particle. Values are consumed positionally, Stride values
// per channel, in channel registration order.
func (s *Store) AddElement(values ...any) error {
	if s.size == s.capacity {
		return ErrCapacityExceeded
	}
	off := 0
	for _, col := range s.columns {
		n, err := col.put(s.size, values[off:])
		if err != nil {
			return err
		}
		off += n
	}
	s.size++
	return nil
}

// Extend marks count more rows live without writing them. Callers fill the rows
// [Size()-count, Size()) afterwards.
func (s *Store) Extend(count int) error {
	if s.size+count > s.capacity {
		return fmt.Errorf("%w: %d+%d > %d", ErrCapacityExceeded, s.size, count, s.capacity)
	}
	s.size += count
	return nil
}

// RemoveElement swaps row i with the last live row in every channel and shrinks the
// store by one. Row order is not preserved. i must be < Size().
func (s *Store) RemoveElement(i int) {
	last := s.size - 1
	if i != last {
		for _, col := range s.columns {
			col.swap(i, last)
		}
	}
	s.size = last
}

// SetCapacity resizes every channel, truncating or zero-extending its data.
func (s *Store) SetCapacity(n int) {
	if n == s.capacity {
		return
	}
	for _, col := range s.columns {
		col.resize(n)
	}
	s.capacity = n
	if s.size > n {
		s.size = n
	}
}

// Clear drops every channel and resets the size.
func (s *Store) Clear() {
	s.columns = s.columns[:0]
	clear(s.byID)
	s.size = 0
}
