// Package optional provides a value-or-nothing wrapper over the tagged
// storage cells. Emptiness is an ordinary queried state, never an
// out-of-band signal; the unchecked accessors make their precondition the
// caller's problem and are fatal when it does not hold.
package optional

import (
	"github.com/zeebo/errs"

	"github.com/collectkit/optres/internal/cell"
	"github.com/collectkit/optres/internal/logging"
	"github.com/collectkit/optres/internal/violation"
)

// Error is the class of all recoverable optional errors.
var Error = errs.Class("optional")

// ErrEmpty is returned by the checked accessors of an empty Optional.
var ErrEmpty = Error.New("no value present")

// Optional holds either one T or nothing. The zero value is None and fully
// usable. Optionals are single-owner: pass by pointer or use Clone when a
// payload owns resources.
type Optional[T any] struct {
	cell cell.Cell[T]
}

// Some returns an Optional holding v.
func Some[T any](v T) Optional[T] {
	return Optional[T]{cell: cell.FromValue(v)}
}

// None returns an empty Optional.
func None[T any]() Optional[T] {
	return Optional[T]{}
}

// FromPtr returns Some of the pointee, or None for nil.
func FromPtr[T any](p *T) Optional[T] {
	if p == nil {
		return None[T]()
	}
	return Some(*p)
}

// IsSome reports whether o holds a value.
func (o Optional[T]) IsSome() bool {
	return o.cell.State() == cell.Occupied
}

// IsNone reports whether o is empty.
func (o Optional[T]) IsNone() bool {
	return !o.IsSome()
}

// HasValue is IsSome under the collection-facing name.
func (o Optional[T]) HasValue() bool {
	return o.IsSome()
}

// Get returns a copy of the value, or ErrEmpty.
func (o Optional[T]) Get() (T, error) {
	if o.IsNone() {
		var zero T
		return zero, ErrEmpty
	}
	return o.cell.Value(), nil
}

// GetOr returns the value or the given fallback.
func (o Optional[T]) GetOr(fallback T) T {
	if o.IsNone() {
		return fallback
	}
	return o.cell.Value()
}

// GetOrElse returns the value or the fallback's result, computed only when
// needed.
func (o Optional[T]) GetOrElse(fallback func() T) T {
	if o.IsNone() {
		return fallback()
	}
	return o.cell.Value()
}

// GetOrZero returns the value or T's zero value.
func (o Optional[T]) GetOrZero() T {
	var zero T
	return o.GetOr(zero)
}

// MustValue returns a copy of the value. Fatal if empty: the caller has
// asserted the precondition.
func (o Optional[T]) MustValue() T {
	return o.cell.Value()
}

// Expect is MustValue with a caller-supplied diagnostic message.
func (o Optional[T]) Expect(msg string) T {
	if o.IsNone() {
		violation.Report(violation.EmptyAccess, "optional.Expect", "empty",
			logging.String("expect", msg))
	}
	return o.cell.Value()
}

// Take moves the value out, leaving o empty. Fatal if already empty.
func (o *Optional[T]) Take() T {
	return o.cell.TakeAndEmpty()
}

// TakeChecked moves the value out, or reports ErrEmpty.
func (o *Optional[T]) TakeChecked() (T, error) {
	if o.IsNone() {
		var zero T
		return zero, ErrEmpty
	}
	return o.cell.TakeAndEmpty(), nil
}

// Set stores v, releasing any previous value.
func (o *Optional[T]) Set(v T) {
	o.cell.Set(v)
}

// Insert stores v and returns the occupant's address.
func (o *Optional[T]) Insert(v T) *T {
	o.cell.Set(v)
	return o.cell.ValueRef()
}

// GetOrInsert returns the occupant's address, storing v first if empty.
func (o *Optional[T]) GetOrInsert(v T) *T {
	if o.IsNone() {
		o.cell.ConstructFromEmpty(v)
	}
	return o.cell.ValueRef()
}

// Replace stores v and returns the previous content as an Optional.
func (o *Optional[T]) Replace(v T) Optional[T] {
	if o.IsNone() {
		o.cell.ConstructFromEmpty(v)
		return None[T]()
	}
	return Some(o.cell.Replace(v))
}

// Clear destroys any value, leaving o empty. Idempotent.
func (o *Optional[T]) Clear() {
	o.cell.Destroy()
}

// Ptr returns the occupant's address, or nil when empty. The address stays
// valid until the next take, clear, or replace.
func (o *Optional[T]) Ptr() *T {
	if o.IsNone() {
		return nil
	}
	return o.cell.ValueRef()
}

// ForEach runs f zero or one times.
func (o Optional[T]) ForEach(f func(T)) {
	if o.IsSome() {
		f(o.cell.Value())
	}
}

// AsSlice returns the zero-or-one element view of o.
func (o Optional[T]) AsSlice() []T {
	if o.IsNone() {
		return nil
	}
	return []T{o.cell.Value()}
}

// Clone returns a deep copy of o, routing through T's copy constructor when
// it has one.
func (o Optional[T]) Clone() Optional[T] {
	var out Optional[T]
	out.cell.CopyFrom(&o.cell)
	return out
}
