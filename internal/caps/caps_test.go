package caps

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
)

type paddedPayload struct {
	A uint32
	B uint8
}

type dropPayload struct {
	closed bool
}

func (d *dropPayload) Drop() {
	d.closed = true
}

type clonePayload struct {
	N int
}

func (c clonePayload) Clone() clonePayload {
	return clonePayload{N: c.N}
}

type sentinelPayload struct {
	set bool
	V   int32
}

func (s *sentinelPayload) Invalidate() {
	s.set = false
}

func (s *sentinelPayload) Invalid() bool {
	return !s.set
}

type assertedPayload struct {
	res *int
}

func (a *assertedPayload) Drop() {
	a.res = nil
}

type externalPayload struct {
	handle int
}

func Test_PlainTypesShouldBeTriviallyEverything(t *testing.T) {
	rec := For[int]()

	assert.True(t, rec.TriviallyCopyable)
	assert.True(t, rec.TriviallyMovable)
	assert.True(t, rec.TriviallyDestructible)
	assert.False(t, rec.HasNeverValue)
	assert.True(t, rec.Relocatable)
	assert.True(t, rec.DataSizeKnown)
	assert.Equal(t, rec.FullSize, rec.DataSize)
}

func Test_TailPaddingShouldBeExcludedFromDataSize(t *testing.T) {
	rec := For[paddedPayload]()

	assert.True(t, rec.DataSizeKnown)
	assert.Equal(t, uintptr(8), rec.FullSize)
	assert.Equal(t, uintptr(5), rec.DataSize)
}

func Test_DropperShouldNotBeTriviallyAnything(t *testing.T) {
	rec := For[dropPayload]()

	assert.False(t, rec.TriviallyDestructible)
	assert.False(t, rec.TriviallyCopyable)
	assert.False(t, rec.TriviallyMovable)
	assert.False(t, rec.Relocatable)
}

func Test_CloneShouldSuppressTrivialCopyOnly(t *testing.T) {
	rec := For[clonePayload]()

	assert.False(t, rec.TriviallyCopyable)
	assert.True(t, rec.TriviallyDestructible)
	assert.True(t, rec.TriviallyMovable)
	assert.True(t, rec.Relocatable)
}

func Test_InvalidatorShouldGrantNeverValue(t *testing.T) {
	rec := For[sentinelPayload]()

	assert.True(t, rec.HasNeverValue)
	assert.False(t, rec.NeverValueRegistered)
	assert.True(t, rec.ZeroInvalid)
}

func Test_PointerFreeShouldFollowLayout(t *testing.T) {
	assert.True(t, For[int]().PointerFree)
	assert.True(t, For[paddedPayload]().PointerFree)
	assert.True(t, For[[4]float64]().PointerFree)
	assert.False(t, For[*int]().PointerFree)
	assert.False(t, For[string]().PointerFree)
	assert.False(t, For[assertedPayload]().PointerFree)
}

func Test_PlainPointerShouldNotGetNeverValue(t *testing.T) {
	rec := For[*int]()

	assert.False(t, rec.HasNeverValue)
	assert.True(t, rec.Relocatable)
}

func Test_ReferenceKindsShouldBeRelocatable(t *testing.T) {
	assert.True(t, For[map[string]int]().Relocatable)
	assert.True(t, For[chan int]().Relocatable)
	assert.True(t, For[func()]().Relocatable)
	assert.True(t, For[*dropPayload]().Relocatable)
}

func Test_ArraysShouldInheritElementAnswer(t *testing.T) {
	assert.True(t, For[[4]int]().Relocatable)
	assert.False(t, For[[4]dropPayload]().Relocatable)

	rec := For[[2]paddedPayload]()
	assert.Equal(t, uintptr(16), rec.FullSize)
	assert.Equal(t, uintptr(13), rec.DataSize)
}

func Test_AssertionShouldWidenRelocatability(t *testing.T) {
	before := For[assertedPayload]()
	assert.False(t, before.Relocatable)

	err := RegisterRelocatable(TypeOf[assertedPayload]())
	assert.NoError(t, err)

	after := For[assertedPayload]()
	assert.True(t, after.Relocatable)
	assert.True(t, after.AssertedRelocatable)
	assert.False(t, after.TriviallyDestructible)
}

func Test_RegisteredNeverValueShouldGrantNeverValue(t *testing.T) {
	mark := func(p *externalPayload) { p.handle = -1 }
	probe := func(p *externalPayload) bool { return p.handle == -1 }

	err := RegisterNeverValue(TypeOf[externalPayload](), mark, probe)
	assert.NoError(t, err)

	rec := For[externalPayload]()
	assert.True(t, rec.HasNeverValue)
	assert.True(t, rec.NeverValueRegistered)
	assert.False(t, rec.ZeroInvalid)

	gotMark, gotProbe, ok := NeverValueFor(TypeOf[externalPayload]())
	assert.True(t, ok)

	var p externalPayload
	gotMark.(func(*externalPayload))(&p)
	assert.True(t, gotProbe.(func(*externalPayload) bool)(&p))
}

func Test_RegistrationShouldRejectWrongShapes(t *testing.T) {
	typ := TypeOf[externalPayload]()

	assert.Error(t, RegisterNeverValue(typ, func(externalPayload) {}, func(*externalPayload) bool { return false }))
	assert.Error(t, RegisterNeverValue(typ, nil, nil))
	assert.Error(t, RegisterDrop(typ, func(externalPayload) {}))
	assert.Error(t, RegisterClone(typ, func(*externalPayload) *externalPayload { return nil }))
	assert.Error(t, RegisterRelocatable(nil))
}

func Test_RegisteredDropShouldSuppressTriviality(t *testing.T) {
	type managedPayload struct {
		fd int
	}

	err := RegisterDrop(TypeOf[managedPayload](), func(p *managedPayload) { p.fd = -1 })
	assert.NoError(t, err)

	rec := For[managedPayload]()
	assert.False(t, rec.TriviallyDestructible)
	assert.False(t, rec.Relocatable)

	drop, ok := DropFor(TypeOf[managedPayload]())
	assert.True(t, ok)

	var p managedPayload
	drop.(func(*managedPayload))(&p)
	assert.Equal(t, -1, p.fd)
}

func Test_RecordsShouldBeStableAcrossLookups(t *testing.T) {
	first := For[paddedPayload]()
	second := For[paddedPayload]()

	assert.Equal(t, first, second)
	assert.Equal(t, reflect.Struct, first.Kind)
}
