package violation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_ReportShouldAlwaysPanic(t *testing.T) {
	assert.Panics(t, func() {
		Report(EmptyAccess, "optional.Take", "empty")
	})
}

func Test_ReportShouldPanicWithViolationValue(t *testing.T) {
	defer func() {
		r := recover()
		assert.NotNil(t, r)

		v, ok := r.(*Violation)
		assert.True(t, ok)
		assert.Equal(t, UsedAfterMove, v.Kind)
		assert.Equal(t, "result.TakeOk", v.Op)
		assert.Equal(t, "moved", v.State)
		assert.Contains(t, v.Error(), "used after move")
	}()

	Report(UsedAfterMove, "result.TakeOk", "moved")
}

func Test_HandlerShouldObserveViolationBeforePanic(t *testing.T) {
	var seen *Violation
	prev := SetHandler(func(v *Violation) {
		seen = v
	})
	defer SetHandler(prev)

	assert.Panics(t, func() {
		Report(WrongState, "cell.Err", "holds-ok")
	})

	assert.NotNil(t, seen)
	assert.Equal(t, WrongState, seen.Kind)
	assert.Equal(t, "holds-ok", seen.State)
}

func Test_HandlerShouldNotSuppressPanic(t *testing.T) {
	prev := SetHandler(func(*Violation) {})
	defer SetHandler(prev)

	assert.Panics(t, func() {
		Report(NilReference, "ref.To", "nil")
	})
}

func Test_KindStringsShouldBeDistinct(t *testing.T) {
	kinds := []Kind{EmptyAccess, WrongState, UsedAfterMove, UsedBeforeInit, NilReference, BadArgument}

	seen := make(map[string]struct{})
	for _, k := range kinds {
		assert.True(t, k.IsValid())
		seen[k.String()] = struct{}{}
	}

	assert.Equal(t, len(kinds), len(seen))
	assert.False(t, Kind(99).IsValid())
}
