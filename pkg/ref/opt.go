package ref

import (
	"github.com/collectkit/optres/internal/violation"
)

// Opt is the pointer-sized specialization of an optional reference: one
// word, no tag byte, nil as the empty encoding. It proves the never-value
// layout at its cheapest; general payloads go through optional.Optional.
//
// The zero value is empty.
type Opt[T any] struct {
	ptr *T
}

// SomeRef returns an occupied Opt. Fatal if p is nil.
func SomeRef[T any](p *T) Opt[T] {
	if p == nil {
		violation.Report(violation.NilReference, "ref.SomeRef", "nil")
	}
	return Opt[T]{ptr: p}
}

// NoneRef returns an empty Opt.
func NoneRef[T any]() Opt[T] {
	return Opt[T]{}
}

// IsSome reports whether o holds an address.
func (o Opt[T]) IsSome() bool {
	return o.ptr != nil
}

// IsNone reports whether o is empty.
func (o Opt[T]) IsNone() bool {
	return o.ptr == nil
}

// Get returns the address and whether it is present.
func (o Opt[T]) Get() (*T, bool) {
	return o.ptr, o.ptr != nil
}

// Must returns the address. Fatal if empty.
func (o Opt[T]) Must() *T {
	if o.ptr == nil {
		violation.Report(violation.EmptyAccess, "ref.Opt.Must", "empty")
	}
	return o.ptr
}

// Take returns the address and empties o. Fatal if already empty.
func (o *Opt[T]) Take() *T {
	if o.ptr == nil {
		violation.Report(violation.EmptyAccess, "ref.Opt.Take", "empty")
	}
	p := o.ptr
	o.ptr = nil
	return p
}
