// Package channels implements the columnar particle store.
//
// A [Store] holds a set of typed columns ([Channel]), each keeping Stride
// scalars per particle in one contiguous slice sized Capacity*Stride. Rows
// [0, Size) are live; every column is resized and swapped in lock-step so a
// row index names the same particle in every column.
//
// Columns are requested through a [Descriptor]. Descriptors with a fixed
// identity come from the registry in registry.go; scratch descriptors carry
// the [Scratch] identity and must be stamped with a per-controller identity
// from an [IDAllocator] before use.
//
// # Thread Safety
//
// A Store is owned by exactly one controller and is not safe for concurrent
// use.
package channels
