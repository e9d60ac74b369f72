package ref

import (
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"

	"github.com/collectkit/optres/internal/violation"
	"github.com/collectkit/optres/pkg/mem"
)

func Test_ToShouldWrapNonNilAddress(t *testing.T) {
	v := 5
	r := To(&v)

	assert.Same(t, &v, r.Get())
	assert.Equal(t, 5, r.Deref())
}

func Test_ToShouldBeFatalOnNil(t *testing.T) {
	var seen *violation.Violation
	prev := violation.SetHandler(func(v *violation.Violation) { seen = v })
	defer violation.SetHandler(prev)

	assert.Panics(t, func() { To[int](nil) })
	assert.Equal(t, violation.NilReference, seen.Kind)
}

func Test_TryToShouldReportNilAsError(t *testing.T) {
	_, err := TryTo[int](nil)
	assert.ErrorIs(t, err, ErrNil)

	v := 1
	r, err := TryTo(&v)
	assert.NoError(t, err)
	assert.Same(t, &v, r.Get())
}

func Test_SetShouldWriteThroughToTheReferent(t *testing.T) {
	v := 1
	r := To(&v)

	r.Set(9)

	assert.Equal(t, 9, v)
	assert.Equal(t, 9, r.Deref())
}

func Test_RefShouldSatisfyTheNeverValueOracle(t *testing.T) {
	assert.True(t, mem.HasNeverValue[Ref[int]]())
	assert.True(t, mem.SentinelLayout[Ref[int]]())

	mark, probe, ok := mem.NeverValue[Ref[int]]()
	assert.True(t, ok)

	v := 5
	r := To(&v)
	assert.False(t, probe(&r))

	mark(&r)
	assert.True(t, probe(&r))
	assert.Panics(t, func() { r.Get() })
}

func Test_RefShouldCostOnePointerWord(t *testing.T) {
	var r Ref[int]
	assert.Equal(t, unsafe.Sizeof(uintptr(0)), unsafe.Sizeof(r))
}

func Test_OptZeroValueShouldBeNone(t *testing.T) {
	var o Opt[int]

	assert.True(t, o.IsNone())
	assert.False(t, o.IsSome())

	p, ok := o.Get()
	assert.Nil(t, p)
	assert.False(t, ok)
}

func Test_OptShouldHoldAndTakeAnAddress(t *testing.T) {
	v := 7
	o := SomeRef(&v)

	assert.True(t, o.IsSome())
	assert.Same(t, &v, o.Must())

	got := o.Take()
	assert.Same(t, &v, got)
	assert.True(t, o.IsNone())
}

func Test_OptTakeOnEmptyShouldBeFatalEveryTime(t *testing.T) {
	var o Opt[int]

	for i := 0; i < 3; i++ {
		assert.Panics(t, func() { o.Take() })
	}
}

func Test_OptShouldCostOnePointerWord(t *testing.T) {
	var o Opt[int]
	assert.Equal(t, unsafe.Sizeof(uintptr(0)), unsafe.Sizeof(o))
}
