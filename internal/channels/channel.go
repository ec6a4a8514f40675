package channels

import "fmt"

// Kind is the element type of a channel.
type Kind int

const (
	KindFloat Kind = iota
	KindInt
	KindObject
)

func (k Kind) String() string {
	switch k {
	case KindFloat:
		return "float32"
	case KindInt:
		return "int32"
	default:
		return "object"
	}
}

func kindOf[T any]() Kind {
	var zero T
	switch any(zero).(type) {
	case float32:
		return KindFloat
	case int32:
		return KindInt
	default:
		return KindObject
	}
}

// Descriptor is the blueprint of a channel: identity, element type and stride.
type Descriptor[T any] struct {
	ID     int
	Stride int
}

// WithID returns a copy of d carrying the given identity. Scratch descriptors are
// stamped this way with an identity from the controller's allocator.
func (d Descriptor[T]) WithID(id int) Descriptor[T] {
	d.ID = id
	return d
}

func (d Descriptor[T]) Kind() Kind { return kindOf[T]() }

func (d Descriptor[T]) String() string {
	if name, ok := names[d.ID]; ok {
		return name
	}
	return fmt.Sprintf("channel#%d(%s x%d)", d.ID, d.Kind(), d.Stride)
}

// Initializer fills a freshly allocated channel with default values.
type Initializer[T any] func(c *Channel[T])

// Channel is one densely packed column.
type Channel[T any] struct {
	id     int
	Stride int
	Data   []T
}

func (c *Channel[T]) ID() int    { return c.id }
func (c *Channel[T]) Kind() Kind { return kindOf[T]() }

// Row returns the slice holding particle i.
func (c *Channel[T]) Row(i int) []T {
	return c.Data[i*c.Stride : (i+1)*c.Stride]
}

// Fill sets every slot of the rows in [start, end) to the given row values.
func (c *Channel[T]) Fill(start, end int, row ...T) {
	for i := start * c.Stride; i < end*c.Stride; i += c.Stride {
		copy(c.Data[i:i+c.Stride], row)
	}
}

// Zero clears the first n rows.
func (c *Channel[T]) Zero(n int) {
	clear(c.Data[:n*c.Stride])
}

// column is the type-erased view the store uses for lock-step operations.
type column interface {
	ID() int
	Kind() Kind
	swap(i, j int)
	resize(capacity int)
	put(row int, values []any) (int, error)
}

func (c *Channel[T]) swap(i, j int) {
	a := c.Data[i*c.Stride : (i+1)*c.Stride]
	b := c.Data[j*c.Stride : (j+1)*c.Stride]
	for k := range a {
		a[k], b[k] = b[k], a[k]
	}
}

func (c *Channel[T]) resize(capacity int) {
	data := make([]T, capacity*c.Stride)
	copy(data, c.Data)
	c.Data = data
}

func (c *Channel[T]) put(row int, values []any) (int, error) {
	if len(values) < c.Stride {
		return 0, fmt.Errorf("%w: channel %d wants %d values, %d left", ErrRowValues, c.id, c.Stride, len(values))
	}
	dst := c.Row(row)
	for k := range dst {
		v, ok := values[k].(T)
		if !ok {
			return 0, fmt.Errorf("%w: channel %d wants %s, got %T", ErrRowValues, c.id, c.Kind(), values[k])
		}
		dst[k] = v
	}
	return c.Stride, nil
}
