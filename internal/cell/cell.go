// Package cell implements the tagged storage cells behind the optional and
// result wrappers. A cell owns at most one constructed payload at a time and
// enforces its state machine through the violation package: any access in
// the wrong state is fatal, never a garbage read.
package cell

import (
	"github.com/collectkit/optres/internal/violation"
	"github.com/collectkit/optres/pkg/mem"
)

type State int8

const (
	Empty State = iota
	Occupied
)

func (s State) String() string {
	switch s {
	case Empty:
		return "empty"
	case Occupied:
		return "occupied"
	default:
		return "undefined"
	}
}

func (s State) IsValid() bool {
	return s.String() != "undefined"
}

// Cell is the optional backing store: Empty or Occupied. The layout is
// chosen per payload type: types whose zero value is their reserved invalid
// pattern encode Empty through the payload's own bytes and the tag stays
// dead; every other type carries the explicit tag. Both layouts are
// indistinguishable through the methods.
//
// The zero value is a valid Empty cell. Cells are single-owner and not safe
// for concurrent use.
type Cell[T any] struct {
	value    T
	occupied bool
}

// FromValue returns an Occupied cell holding v.
func FromValue[T any](v T) Cell[T] {
	var c Cell[T]
	c.place(v)
	return c
}

func (c *Cell[T]) place(v T) {
	c.value = v
	if !mem.SentinelLayout[T]() {
		c.occupied = true
	}
}

// State never mutates the cell.
func (c *Cell[T]) State() State {
	if _, probe, ok := sentinelFuncs[T](); ok {
		if probe(&c.value) {
			return Empty
		}
		return Occupied
	}

	if c.occupied {
		return Occupied
	}
	return Empty
}

// Value returns a copy of the occupant. Fatal on an Empty cell; checked
// wrappers convert the precondition into a reported error before calling.
func (c *Cell[T]) Value() T {
	c.mustOccupy("cell.Value")
	return mem.Clone(&c.value)
}

// ValueRef returns the occupant's address. Fatal on an Empty cell. The
// reference stays valid until the next take, destroy, or replace.
func (c *Cell[T]) ValueRef() *T {
	c.mustOccupy("cell.ValueRef")
	return &c.value
}

// ConstructFromEmpty places v into an Empty cell. Fatal if Occupied.
func (c *Cell[T]) ConstructFromEmpty(v T) {
	if c.State() != Empty {
		violation.Report(violation.WrongState, "cell.ConstructFromEmpty", c.State().String())
	}
	c.place(v)
}

// Set stores v from either state. An occupant of the same kind is assigned
// in place, its resources released first, so the slot's address stays
// stable.
func (c *Cell[T]) Set(v T) {
	if c.State() == Occupied && !mem.TriviallyDestructible[T]() {
		mem.DestroyInPlace(&c.value)
	}
	c.place(v)
}

// Replace stores v and returns the previous occupant. Fatal if Empty.
func (c *Cell[T]) Replace(v T) T {
	c.mustOccupy("cell.Replace")

	prev := mem.TakeAndDestroy(&c.value)
	c.place(v)
	return prev
}

// TakeAndEmpty moves the occupant out and leaves the cell Empty. Fatal if
// already Empty. Exactly one destructor obligation leaves with the value.
func (c *Cell[T]) TakeAndEmpty() T {
	c.mustOccupy("cell.TakeAndEmpty")

	v := mem.TakeAndDestroy(&c.value)
	c.markEmpty()
	return v
}

// Destroy runs the occupant's destructor and empties the cell. A no-op on
// an Empty cell.
func (c *Cell[T]) Destroy() {
	if c.State() != Occupied {
		return
	}

	mem.DestroyInPlace(&c.value)
	c.markEmpty()
}

// CopyFrom makes c a copy of src, destroying any current occupant first.
// Copying an Empty source yields an Empty cell without touching T.
func (c *Cell[T]) CopyFrom(src *Cell[T]) {
	if c == src {
		return
	}

	c.Destroy()
	if src.State() == Occupied {
		c.place(mem.Clone(&src.value))
	}
}

// MoveFrom transfers src's occupant into c, destroying any current occupant
// first. src is left Empty.
func (c *Cell[T]) MoveFrom(src *Cell[T]) {
	if c == src {
		return
	}

	c.Destroy()
	if src.State() == Occupied {
		c.place(src.TakeAndEmpty())
	}
}

func (c *Cell[T]) mustOccupy(op string) {
	if c.State() != Occupied {
		violation.Report(violation.EmptyAccess, op, c.State().String())
	}
}

func (c *Cell[T]) markEmpty() {
	if mark, _, ok := sentinelFuncs[T](); ok {
		mark(&c.value)
		return
	}
	c.occupied = false
}

// sentinelFuncs resolves the never-value accessors only for payloads using
// the sentinel layout; tag-layout cells ignore any sentinel the type may
// have, keeping one discriminant authoritative.
func sentinelFuncs[T any]() (func(*T), func(*T) bool, bool) {
	if !mem.SentinelLayout[T]() {
		return nil, nil, false
	}
	mark, probe, ok := mem.NeverValue[T]()
	if !ok {
		return nil, nil, false
	}
	return mark, probe, true
}
