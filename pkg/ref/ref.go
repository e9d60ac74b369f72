// Package ref wraps a reference to caller-owned storage as a non-null
// address. The nil pattern is the wrapper's reserved invalid state, which
// makes Ref the canonical never-value payload: an optional of Ref costs one
// pointer word and no tag byte.
package ref

import (
	"github.com/zeebo/errs"

	"github.com/collectkit/optres/internal/violation"
)

// Error is the class of all ref construction failures.
var Error = errs.Class("ref")

// ErrNil is returned by TryTo for a nil address.
var ErrNil = Error.New("nil reference")

// Ref holds a non-nil address into storage owned by the caller. It owns the
// address, never the referent. The zero value is the invalid pattern and
// must not be read; it exists only as the empty encoding of an enclosing
// cell.
type Ref[T any] struct {
	ptr *T
}

// To wraps p. Fatal if p is nil; TryTo is the checked variant.
func To[T any](p *T) Ref[T] {
	if p == nil {
		violation.Report(violation.NilReference, "ref.To", "nil")
	}
	return Ref[T]{ptr: p}
}

// TryTo wraps p, reporting a nil address as an ordinary error.
func TryTo[T any](p *T) (Ref[T], error) {
	if p == nil {
		return Ref[T]{}, ErrNil
	}
	return Ref[T]{ptr: p}, nil
}

// Get returns the wrapped address. Fatal on an invalid Ref.
func (r Ref[T]) Get() *T {
	if r.ptr == nil {
		violation.Report(violation.NilReference, "ref.Get", "invalid")
	}
	return r.ptr
}

// Deref returns a copy of the referent. Fatal on an invalid Ref.
func (r Ref[T]) Deref() T {
	return *r.Get()
}

// Set assigns v through the wrapped address. Fatal on an invalid Ref.
func (r Ref[T]) Set(v T) {
	*r.Get() = v
}

// Invalidate forces the reserved invalid pattern. Part of the never-value
// contract consumed by the storage cells; not for general use.
func (r *Ref[T]) Invalidate() {
	r.ptr = nil
}

// Invalid reports whether r holds the reserved invalid pattern.
func (r *Ref[T]) Invalid() bool {
	return r.ptr == nil
}
