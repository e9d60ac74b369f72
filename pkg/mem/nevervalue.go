package mem

import (
	"github.com/collectkit/optres/internal/caps"
)

// NeverValue returns T's sentinel accessors: mark forces the reserved
// invalid pattern without destructor semantics, probe reports whether the
// current bits match it. ok is false when T has no never-value state.
// Reading a payload for which probe holds is outside the contract.
func NeverValue[T any]() (mark func(*T), probe func(*T) bool, ok bool) {
	rec := caps.For[T]()
	if !rec.HasNeverValue {
		return nil, nil, false
	}

	if rec.NeverValueRegistered {
		m, p, found := caps.NeverValueFor(rec.Type)
		if !found {
			return nil, nil, false
		}
		return m.(func(*T)), p.(func(*T) bool), true
	}

	mark = func(p *T) {
		any(p).(Invalidator).Invalidate()
	}
	probe = func(p *T) bool {
		return any(p).(Invalidator).Invalid()
	}
	return mark, probe, true
}

// SentinelLayout reports whether cells of T may drop their tag byte and
// encode Empty through T's own invalid pattern. Requires the zero value to
// already match the pattern, since Go zero-initializes storage no
// constructor ever sees; other never-value types keep the explicit tag,
// which is functionally equivalent and one byte larger.
func SentinelLayout[T any]() bool {
	rec := caps.For[T]()
	return rec.HasNeverValue && rec.ZeroInvalid
}
