// Package vec is a small growable array built on the storage layer,
// proving it from the consumer side: growth relocates the live prefix
// through the classifier's bulk path when the payload allows it and falls
// back to element-wise take+destroy otherwise.
package vec

import (
	"github.com/collectkit/optres/pkg/mem"
	"github.com/collectkit/optres/pkg/optional"
)

// Array is the surface the rest of a collections stack consumes.
type Array[T any] interface {
	Push(T)
	Pop() optional.Optional[T]
	Get(i int) optional.Optional[T]
	Len() int
	Cap() int
}

// Vec is a growable array of T. The zero value is an empty vector. Vecs
// are single-owner and not safe for concurrent use.
type Vec[T any] struct {
	buf []T
	n   int
}

var _ Array[int] = (*Vec[int])(nil)

// New returns an empty Vec with the given capacity pre-allocated.
func New[T any](capacity int) *Vec[T] {
	if capacity < 0 {
		capacity = 0
	}
	return &Vec[T]{buf: make([]T, capacity)}
}

// Len returns the number of live elements.
func (v *Vec[T]) Len() int {
	return v.n
}

// Cap returns the current slot count.
func (v *Vec[T]) Cap() int {
	return len(v.buf)
}

// Push appends e, growing the buffer when full.
func (v *Vec[T]) Push(e T) {
	if v.n == len(v.buf) {
		v.Grow(v.n + 1)
	}
	v.buf[v.n] = e
	v.n++
}

// Pop removes and returns the last element, or None on an empty Vec.
func (v *Vec[T]) Pop() optional.Optional[T] {
	if v.n == 0 {
		return optional.None[T]()
	}

	v.n--
	return optional.Some(mem.TakeAndDestroy(&v.buf[v.n]))
}

// Get returns a copy of the i-th element, or None when i is out of range.
func (v *Vec[T]) Get(i int) optional.Optional[T] {
	if i < 0 || i >= v.n {
		return optional.None[T]()
	}
	return optional.Some(mem.Clone(&v.buf[i]))
}

// At returns the address of the i-th element, or nil when i is out of
// range. The address stays valid until the next growth.
func (v *Vec[T]) At(i int) *T {
	if i < 0 || i >= v.n {
		return nil
	}
	return &v.buf[i]
}

// Grow ensures capacity for at least want slots, relocating the live
// prefix into the new buffer.
func (v *Vec[T]) Grow(want int) {
	if want <= len(v.buf) {
		return
	}

	newCap := len(v.buf) * 2
	if newCap < want {
		newCap = want
	}
	if newCap < 4 {
		newCap = 4
	}

	next := make([]T, newCap)
	mem.RelocateSlice(next[:v.n], v.buf[:v.n])
	v.buf = next
}

// Drain moves every element out in order, leaving the Vec empty.
func (v *Vec[T]) Drain() []T {
	if v.n == 0 {
		return nil
	}

	out := make([]T, v.n)
	mem.RelocateSlice(out, v.buf[:v.n])
	v.n = 0
	return out
}

// Clear destroys every element in place. The capacity is kept.
func (v *Vec[T]) Clear() {
	for i := 0; i < v.n; i++ {
		mem.DestroyInPlace(&v.buf[i])
	}
	v.n = 0
}
