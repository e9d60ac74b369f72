package cell

import (
	"github.com/collectkit/optres/internal/violation"
	"github.com/collectkit/optres/pkg/mem"
)

type PairState int8

const (
	Moved PairState = iota
	HoldsOk
	HoldsErr
)

func (s PairState) String() string {
	switch s {
	case Moved:
		return "moved"
	case HoldsOk:
		return "holds-ok"
	case HoldsErr:
		return "holds-err"
	default:
		return "undefined"
	}
}

func (s PairState) IsValid() bool {
	return s.String() != "undefined"
}

// Pair is the result backing store: two payload slots and an explicit
// tri-valued discriminant. Two arbitrary payload types cannot share one
// reserved bit pattern, so no sentinel layout exists here. At most one slot
// holds a constructed value; the other is never touched.
//
// The zero value is Moved and never constructed, so a double-use bug and a
// never-initialized result stay distinguishable in the diagnostic.
type Pair[T, E any] struct {
	ok          T
	err         E
	state       PairState
	constructed bool
}

// FromOk returns a Pair holding a success value.
func FromOk[T, E any](v T) Pair[T, E] {
	return Pair[T, E]{ok: v, state: HoldsOk, constructed: true}
}

// FromErr returns a Pair holding an error value.
func FromErr[T, E any](e E) Pair[T, E] {
	return Pair[T, E]{err: e, state: HoldsErr, constructed: true}
}

// StateOf never mutates the pair.
func (p *Pair[T, E]) StateOf() PairState {
	return p.state
}

// Constructed reports whether the pair ever held a value. False only for
// zero-value pairs.
func (p *Pair[T, E]) Constructed() bool {
	return p.constructed
}

// Ok returns a copy of the success value. Fatal unless HoldsOk.
func (p *Pair[T, E]) Ok() T {
	p.mustHold(HoldsOk, "cell.Ok")
	return mem.Clone(&p.ok)
}

// OkRef returns the success slot's address. Fatal unless HoldsOk.
func (p *Pair[T, E]) OkRef() *T {
	p.mustHold(HoldsOk, "cell.OkRef")
	return &p.ok
}

// Err returns a copy of the error value. Fatal unless HoldsErr.
func (p *Pair[T, E]) Err() E {
	p.mustHold(HoldsErr, "cell.Err")
	return mem.Clone(&p.err)
}

// ErrRef returns the error slot's address. Fatal unless HoldsErr.
func (p *Pair[T, E]) ErrRef() *E {
	p.mustHold(HoldsErr, "cell.ErrRef")
	return &p.err
}

// SetOk stores a success value. An existing error occupant is destroyed
// first; a success occupant is assigned in place.
func (p *Pair[T, E]) SetOk(v T) {
	switch p.state {
	case HoldsErr:
		mem.DestroyInPlace(&p.err)
	case HoldsOk:
		if !mem.TriviallyDestructible[T]() {
			mem.DestroyInPlace(&p.ok)
		}
	}

	p.ok = v
	p.state = HoldsOk
	p.constructed = true
}

// SetErr stores an error value. An existing success occupant is destroyed
// first; an error occupant is assigned in place.
func (p *Pair[T, E]) SetErr(e E) {
	switch p.state {
	case HoldsOk:
		mem.DestroyInPlace(&p.ok)
	case HoldsErr:
		if !mem.TriviallyDestructible[E]() {
			mem.DestroyInPlace(&p.err)
		}
	}

	p.err = e
	p.state = HoldsErr
	p.constructed = true
}

// TakeOk moves the success value out; the pair becomes Moved. Fatal unless
// HoldsOk.
func (p *Pair[T, E]) TakeOk() T {
	p.mustHold(HoldsOk, "cell.TakeOk")

	v := mem.TakeAndDestroy(&p.ok)
	p.state = Moved
	return v
}

// TakeErr moves the error value out; the pair becomes Moved. Fatal unless
// HoldsErr.
func (p *Pair[T, E]) TakeErr() E {
	p.mustHold(HoldsErr, "cell.TakeErr")

	e := mem.TakeAndDestroy(&p.err)
	p.state = Moved
	return e
}

// DropOk destroys the success value; the pair becomes Moved. Fatal unless
// HoldsOk.
func (p *Pair[T, E]) DropOk() {
	p.mustHold(HoldsOk, "cell.DropOk")

	mem.DestroyInPlace(&p.ok)
	p.state = Moved
}

// DropErr destroys the error value; the pair becomes Moved. Fatal unless
// HoldsErr.
func (p *Pair[T, E]) DropErr() {
	p.mustHold(HoldsErr, "cell.DropErr")

	mem.DestroyInPlace(&p.err)
	p.state = Moved
}

// Destroy releases whichever occupant exists and leaves the pair Moved.
// A no-op on a Moved pair.
func (p *Pair[T, E]) Destroy() {
	switch p.state {
	case HoldsOk:
		mem.DestroyInPlace(&p.ok)
	case HoldsErr:
		mem.DestroyInPlace(&p.err)
	default:
		return
	}
	p.state = Moved
}

// CopyFrom makes p a copy of src, destroying any current occupant first.
// Only the active slot of src is copied; the absent payload's copy
// constructor never runs. Copying a Moved source is fatal.
func (p *Pair[T, E]) CopyFrom(src *Pair[T, E]) {
	if p == src {
		return
	}
	src.mustNotBeMoved("cell.CopyFrom")

	p.Destroy()
	switch src.state {
	case HoldsOk:
		p.ok = mem.Clone(&src.ok)
		p.state = HoldsOk
	case HoldsErr:
		p.err = mem.Clone(&src.err)
		p.state = HoldsErr
	}
	p.constructed = true
}

// MoveFrom transfers src's occupant into p, destroying any current occupant
// first. src becomes Moved. Moving from a Moved source is fatal.
func (p *Pair[T, E]) MoveFrom(src *Pair[T, E]) {
	if p == src {
		return
	}
	src.mustNotBeMoved("cell.MoveFrom")

	p.Destroy()
	switch src.state {
	case HoldsOk:
		p.ok = src.TakeOk()
		p.state = HoldsOk
	case HoldsErr:
		p.err = src.TakeErr()
		p.state = HoldsErr
	}
	p.constructed = true
}

func (p *Pair[T, E]) mustHold(want PairState, op string) {
	if p.state == want {
		return
	}

	switch {
	case !p.constructed:
		violation.Report(violation.UsedBeforeInit, op, p.state.String())
	case p.state == Moved:
		violation.Report(violation.UsedAfterMove, op, p.state.String())
	default:
		violation.Report(violation.WrongState, op, p.state.String())
	}
}

func (p *Pair[T, E]) mustNotBeMoved(op string) {
	if p.state != Moved {
		return
	}

	if !p.constructed {
		violation.Report(violation.UsedBeforeInit, op, p.state.String())
	}
	violation.Report(violation.UsedAfterMove, op, p.state.String())
}
