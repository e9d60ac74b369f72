package optional

import (
	"golang.org/x/exp/constraints"
)

// Map applies f to the value, if any.
func Map[A, B any](o Optional[A], f func(A) B) Optional[B] {
	if o.IsNone() {
		return None[B]()
	}
	return Some(f(o.MustValue()))
}

// AndThen chains a computation that may itself come up empty.
func AndThen[A, B any](o Optional[A], f func(A) Optional[B]) Optional[B] {
	if o.IsNone() {
		return None[B]()
	}
	return f(o.MustValue())
}

// Filter keeps the value only when pred accepts it.
func Filter[T any](o Optional[T], pred func(T) bool) Optional[T] {
	if o.IsNone() || !pred(o.MustValue()) {
		return None[T]()
	}
	return o
}

// Zipped pairs the values of two zipped optionals.
type Zipped[A, B any] struct {
	First  A
	Second B
}

// Zip combines two optionals into one holding both values, empty when
// either side is.
func Zip[A, B any](a Optional[A], b Optional[B]) Optional[Zipped[A, B]] {
	if a.IsNone() || b.IsNone() {
		return None[Zipped[A, B]]()
	}
	return Some(Zipped[A, B]{First: a.MustValue(), Second: b.MustValue()})
}

// Or returns a when it holds a value, b otherwise.
func Or[T any](a, b Optional[T]) Optional[T] {
	if a.IsSome() {
		return a
	}
	return b
}

// Xor returns whichever of a and b holds a value, empty when both or
// neither do.
func Xor[T any](a, b Optional[T]) Optional[T] {
	switch {
	case a.IsSome() && b.IsNone():
		return a
	case b.IsSome() && a.IsNone():
		return b
	default:
		return None[T]()
	}
}

// Equal reports whether two optionals agree on both presence and value.
func Equal[T comparable](a, b Optional[T]) bool {
	if a.IsSome() != b.IsSome() {
		return false
	}
	if a.IsNone() {
		return true
	}
	return a.MustValue() == b.MustValue()
}

// Compare orders optionals with None before any value.
func Compare[T constraints.Ordered](a, b Optional[T]) int {
	switch {
	case a.IsNone() && b.IsNone():
		return 0
	case a.IsNone():
		return -1
	case b.IsNone():
		return 1
	}

	av, bv := a.MustValue(), b.MustValue()
	switch {
	case av < bv:
		return -1
	case av > bv:
		return 1
	default:
		return 0
	}
}
