package result

import (
	"github.com/collectkit/optres/pkg/optional"
)

// Map transforms the success value, passing an error through untouched.
// Consumes r, which becomes moved.
func Map[T, U, E any](r *Result[T, E], f func(T) U) Result[U, E] {
	if r.IsOk() {
		return Ok[U, E](f(r.TakeOk()))
	}
	return Err[U](r.TakeErr())
}

// MapErr transforms the error value, passing a success through untouched.
// Consumes r, which becomes moved.
func MapErr[T, E, F any](r *Result[T, E], f func(E) F) Result[T, F] {
	if r.IsErr() {
		return Err[T](f(r.TakeErr()))
	}
	return Ok[T, F](r.TakeOk())
}

// AndThen chains a computation that may itself fail. Consumes r, which
// becomes moved.
func AndThen[T, U, E any](r *Result[T, E], f func(T) Result[U, E]) Result[U, E] {
	if r.IsOk() {
		return f(r.TakeOk())
	}
	return Err[U](r.TakeErr())
}

// OrElse recovers from an error with a computation that may itself fail.
// Consumes r, which becomes moved.
func OrElse[T, E, F any](r *Result[T, E], f func(E) Result[T, F]) Result[T, F] {
	if r.IsErr() {
		return f(r.TakeErr())
	}
	return Ok[T, F](r.TakeOk())
}

// OkOr lifts an optional into a result, using e as the error of an empty
// one. Consumes o. Lives here rather than in the optional package so the
// dependency between the two wrappers points one way.
func OkOr[T, E any](o *optional.Optional[T], e E) Result[T, E] {
	if o.IsSome() {
		return Ok[T, E](o.Take())
	}
	return Err[T](e)
}
