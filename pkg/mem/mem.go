// Package mem exposes the per-type capability predicates, the never-value
// oracle, and the take/destroy primitives the storage cells and their
// consuming collections are built on. Every answer is derived once per type
// and cached; all predicates are pure.
package mem

import (
	"github.com/collectkit/optres/internal/caps"
)

// Dropper is implemented by payload types with a non-trivial destructor.
// The storage layer runs Drop at most once per logical value.
type Dropper = caps.Dropper

// Invalidator is implemented by payload types that reserve an invalid bit
// pattern, enabling the never-value layout of optional cells.
type Invalidator = caps.Invalidator

// Cloner is implemented by payload types whose copies must not share state.
type Cloner[T any] interface {
	Clone() T
}

// Relocatable reports whether values of T may be moved by raw byte copy
// instead of element-wise take+destroy. Conservative: false whenever the
// data size cannot be computed and no author assertion widens it.
func Relocatable[T any]() bool {
	return caps.For[T]().Relocatable
}

// TriviallyCopyable reports whether copying a T needs no Clone dispatch.
func TriviallyCopyable[T any]() bool {
	return caps.For[T]().TriviallyCopyable
}

// TriviallyDestructible reports whether destroying a T needs no Drop dispatch.
func TriviallyDestructible[T any]() bool {
	return caps.For[T]().TriviallyDestructible
}

// TriviallyMovable reports whether moving a T out of a slot is a plain
// assignment.
func TriviallyMovable[T any]() bool {
	return caps.For[T]().TriviallyMovable
}

// HasNeverValue reports whether T reserves an invalid bit pattern usable as
// an empty discriminant.
func HasNeverValue[T any]() bool {
	return caps.For[T]().HasNeverValue
}

// IsCopyable reports whether T supports copies at all. Every Go value does;
// the predicate exists so callers select overloads through one oracle.
func IsCopyable[T any]() bool {
	return true
}

// IsMovable reports whether T supports moves. Always true for Go values.
func IsMovable[T any]() bool {
	return true
}

// IsDefaultConstructible reports whether T has a usable zero value. Always
// true for Go values.
func IsDefaultConstructible[T any]() bool {
	return true
}

// DataSize returns the size of T excluding trailing padding, the bytes a
// relocation may legally move. ok is false when layout introspection cannot
// produce an answer.
func DataSize[T any]() (uintptr, bool) {
	rec := caps.For[T]()
	return rec.DataSize, rec.DataSizeKnown
}

// FullSize returns sizeof(T) including trailing padding.
func FullSize[T any]() uintptr {
	return caps.For[T]().FullSize
}

// RegisterRelocatable records the author's assertion that T is relocatable
// even though its structural traits say otherwise. Widens only: it cannot
// make an incomputable data size computable.
func RegisterRelocatable[T any]() error {
	return caps.RegisterRelocatable(caps.TypeOf[T]())
}

// RegisterNeverValue supplies explicit sentinel accessors for a T that
// cannot implement Invalidator itself.
func RegisterNeverValue[T any](mark func(*T), probe func(*T) bool) error {
	return caps.RegisterNeverValue(caps.TypeOf[T](), mark, probe)
}

// RegisterDrop supplies a destructor for a T that cannot implement Dropper
// itself. T stops being trivially destructible.
func RegisterDrop[T any](drop func(*T)) error {
	return caps.RegisterDrop(caps.TypeOf[T](), drop)
}

// RegisterClone supplies a copy constructor for a T that cannot implement
// Cloner itself. T stops being trivially copyable.
func RegisterClone[T any](clone func(*T) T) error {
	return caps.RegisterClone(caps.TypeOf[T](), clone)
}
