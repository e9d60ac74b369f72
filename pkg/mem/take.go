package mem

import (
	"github.com/collectkit/optres/internal/caps"
)

// TakeAndDestroy moves the value out of *src and returns it. The source is
// left a zeroed husk carrying no further destructor obligation: the one
// physical Drop now belongs to the returned value's owner. Precondition:
// the caller does not use *src again except to re-construct it in place.
func TakeAndDestroy[T any](src *T) T {
	v := *src
	var zero T
	*src = zero
	return v
}

// TakeCopyAndDestroy serves copy-only payloads: it clones the value out,
// then runs the source's destructor. Exactly one Drop runs on the source.
func TakeCopyAndDestroy[T any](src *T) T {
	v := Clone(src)
	DestroyInPlace(src)
	return v
}

// DestroyInPlace runs T's destructor on *src, if it has one, and zeroes the
// slot. Safe to call on a zeroed husk only for trivially destructible types;
// for others the caller's state machine guarantees the slot holds a live
// value.
func DestroyInPlace[T any](src *T) {
	if drop, ok := dropOf[T](); ok {
		drop(src)
	}
	var zero T
	*src = zero
}

// Clone copies *src through T's copy constructor when it has one, plain
// assignment otherwise.
func Clone[T any](src *T) T {
	if clone, ok := cloneOf[T](); ok {
		return clone(src)
	}
	return *src
}

func dropOf[T any]() (func(*T), bool) {
	rec := caps.For[T]()
	if rec.TriviallyDestructible {
		return nil, false
	}

	if f, ok := caps.DropFor(rec.Type); ok {
		return f.(func(*T)), true
	}

	return func(p *T) {
		any(p).(Dropper).Drop()
	}, true
}

func cloneOf[T any]() (func(*T) T, bool) {
	rec := caps.For[T]()
	if rec.TriviallyCopyable {
		return nil, false
	}

	if f, ok := caps.CloneFor(rec.Type); ok {
		return f.(func(*T) T), true
	}

	return func(p *T) T {
		if c, ok := any(p).(Cloner[T]); ok {
			return c.Clone()
		}
		if c, ok := any(*p).(Cloner[T]); ok {
			return c.Clone()
		}
		// Trivial copy is suppressed only by a Clone method or a registered
		// drop; a droppable type without a clone copies by assignment.
		return *p
	}, true
}
