// Package result provides a success-or-error wrapper over the two-payload
// storage pair. A result has three logical states: holding a success value,
// holding an error value, or moved (its content already taken). Moved stays
// distinguishable from both occupied states so double-use bugs surface at
// their source instead of reading stale data.
package result

import (
	"github.com/zeebo/errs"

	"github.com/collectkit/optres/internal/cell"
	"github.com/collectkit/optres/internal/logging"
	"github.com/collectkit/optres/internal/violation"
	"github.com/collectkit/optres/pkg/optional"
)

// Error is the class of all recoverable result errors.
var Error = errs.Class("result")

var (
	// ErrNotOK is returned by checked success accessors of a result that
	// holds an error.
	ErrNotOK = Error.New("result does not hold a success value")

	// ErrNotErr is returned by checked error accessors of a result that
	// holds a success value.
	ErrNotErr = Error.New("result does not hold an error value")

	// ErrUsedAfterMove is returned by checked accessors of a moved result.
	ErrUsedAfterMove = Error.New("result used after move")
)

// Unit is the zero-sized success payload of results that carry no value.
type Unit = struct{}

// Result holds either a success value of type T or an error value of type
// E. The zero value is moved and never constructed; build results through
// Ok, Err, or Of. Results are single-owner: pass by pointer.
type Result[T, E any] struct {
	pair cell.Pair[T, E]
}

// Ok returns a successful Result holding v.
func Ok[T, E any](v T) Result[T, E] {
	return Result[T, E]{pair: cell.FromOk[T, E](v)}
}

// Err returns a failed Result holding e.
func Err[T, E any](e E) Result[T, E] {
	return Result[T, E]{pair: cell.FromErr[T](e)}
}

// OkUnit returns a successful Result with no payload.
func OkUnit[E any]() Result[Unit, E] {
	return Ok[Unit, E](Unit{})
}

// Of bridges Go's (value, error) convention: a nil error yields Ok(v),
// anything else yields Err.
func Of[T any](v T, err error) Result[T, error] {
	if err != nil {
		return Err[T](err)
	}
	return Ok[T, error](v)
}

// IsOk reports whether r holds a success value. False for moved results.
func (r Result[T, E]) IsOk() bool {
	return r.pair.StateOf() == cell.HoldsOk
}

// IsErr reports whether r holds an error value. False for moved results.
func (r Result[T, E]) IsErr() bool {
	return r.pair.StateOf() == cell.HoldsErr
}

// IsMoved reports whether r's content was already taken.
func (r Result[T, E]) IsMoved() bool {
	return r.pair.StateOf() == cell.Moved
}

// GetOk returns a copy of the success value, or ErrNotOK/ErrUsedAfterMove.
func (r Result[T, E]) GetOk() (T, error) {
	if err := r.checked(cell.HoldsOk); err != nil {
		var zero T
		return zero, err
	}
	return r.pair.Ok(), nil
}

// GetErr returns a copy of the error value, or ErrNotErr/ErrUsedAfterMove.
func (r Result[T, E]) GetErr() (E, error) {
	if err := r.checked(cell.HoldsErr); err != nil {
		var zero E
		return zero, err
	}
	return r.pair.Err(), nil
}

// MustOk returns a copy of the success value. Fatal unless r holds one.
func (r Result[T, E]) MustOk() T {
	return r.pair.Ok()
}

// MustErr returns a copy of the error value. Fatal unless r holds one.
func (r Result[T, E]) MustErr() E {
	return r.pair.Err()
}

// Expect is MustOk with a caller-supplied diagnostic message.
func (r Result[T, E]) Expect(msg string) T {
	if !r.IsOk() {
		violation.Report(violation.WrongState, "result.Expect", r.pair.StateOf().String(),
			logging.String("expect", msg))
	}
	return r.pair.Ok()
}

// TakeOk moves the success value out; r becomes moved. Fatal unless r
// holds one.
func (r *Result[T, E]) TakeOk() T {
	return r.pair.TakeOk()
}

// TakeErr moves the error value out; r becomes moved. Fatal unless r
// holds one.
func (r *Result[T, E]) TakeErr() E {
	return r.pair.TakeErr()
}

// TakeOkChecked moves the success value out, or reports the state mismatch.
func (r *Result[T, E]) TakeOkChecked() (T, error) {
	if err := r.checked(cell.HoldsOk); err != nil {
		var zero T
		return zero, err
	}
	return r.pair.TakeOk(), nil
}

// TakeErrChecked moves the error value out, or reports the state mismatch.
func (r *Result[T, E]) TakeErrChecked() (E, error) {
	if err := r.checked(cell.HoldsErr); err != nil {
		var zero E
		return zero, err
	}
	return r.pair.TakeErr(), nil
}

// SetOk stores a success value from any state, releasing a previous
// occupant of either kind.
func (r *Result[T, E]) SetOk(v T) {
	r.pair.SetOk(v)
}

// SetErr stores an error value from any state, releasing a previous
// occupant of either kind.
func (r *Result[T, E]) SetErr(e E) {
	r.pair.SetErr(e)
}

// Destroy releases whichever occupant exists; r becomes moved. Idempotent.
func (r *Result[T, E]) Destroy() {
	r.pair.Destroy()
}

// OkOptional converts r into an Optional of the success value, consuming
// r. An error result yields None and releases the error.
func (r *Result[T, E]) OkOptional() optional.Optional[T] {
	switch r.pair.StateOf() {
	case cell.HoldsOk:
		return optional.Some(r.pair.TakeOk())
	case cell.HoldsErr:
		r.pair.DropErr()
		return optional.None[T]()
	default:
		violation.Report(violation.UsedAfterMove, "result.OkOptional", r.pair.StateOf().String())
		return optional.None[T]()
	}
}

// ErrOptional converts r into an Optional of the error value, consuming
// r. A success result yields None and releases the value.
func (r *Result[T, E]) ErrOptional() optional.Optional[E] {
	switch r.pair.StateOf() {
	case cell.HoldsErr:
		return optional.Some(r.pair.TakeErr())
	case cell.HoldsOk:
		r.pair.DropOk()
		return optional.None[E]()
	default:
		violation.Report(violation.UsedAfterMove, "result.ErrOptional", r.pair.StateOf().String())
		return optional.None[E]()
	}
}

// Clone returns a deep copy of r. Fatal on a moved result.
func (r Result[T, E]) Clone() Result[T, E] {
	var out Result[T, E]
	out.pair.CopyFrom(&r.pair)
	return out
}

func (r *Result[T, E]) checked(want cell.PairState) error {
	state := r.pair.StateOf()
	if state == want {
		return nil
	}

	switch {
	case state == cell.Moved:
		return ErrUsedAfterMove
	case want == cell.HoldsOk:
		return ErrNotOK
	default:
		return ErrNotErr
	}
}
