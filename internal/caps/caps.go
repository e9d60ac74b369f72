// Package caps derives and serves per-payload-type capability records. A
// record is computed once per type through reflection, cached, and then
// consulted by the storage cells and the public mem predicates to pick
// between trivial (direct assignment) and hand-rolled (drop/clone dispatch)
// code paths.
package caps

import (
	"reflect"

	"github.com/collectkit/optres/internal/logging"
)

// Dropper is implemented by payload types with a non-trivial destructor.
// Drop releases whatever the value owns; the storage layer guarantees it runs
// at most once per logical value.
type Dropper interface {
	Drop()
}

// Invalidator is implemented by payload types that expose a reserved invalid
// bit pattern. Invalidate forces the pattern without destructor semantics,
// Invalid reports whether the current value matches it. Reading a payload for
// which Invalid holds is outside the contract.
type Invalidator interface {
	Invalidate()
	Invalid() bool
}

var (
	dropperType     = reflect.TypeOf((*Dropper)(nil)).Elem()
	invalidatorType = reflect.TypeOf((*Invalidator)(nil)).Elem()
)

// Record is the capability descriptor of one payload type. Immutable once
// derived.
type Record struct {
	Type reflect.Type
	Kind reflect.Kind

	FullSize      uintptr
	DataSize      uintptr
	DataSizeKnown bool

	TriviallyCopyable     bool
	TriviallyMovable      bool
	TriviallyDestructible bool

	HasNeverValue        bool
	NeverValueRegistered bool

	// ZeroInvalid holds when the type's zero value already matches its
	// reserved invalid pattern. Only then may a cell drop its tag byte:
	// Go zero-initializes storage no constructor ever sees.
	ZeroInvalid bool

	Relocatable         bool
	AssertedRelocatable bool

	// PointerFree means no word of the value is scanned by the collector, so
	// its bytes may be copied without write barriers.
	PointerFree bool
}

// Of returns the capability record for t, deriving and caching it on first
// use.
func Of(t reflect.Type) Record {
	key := typeKey(t)

	if rec, ok := records.lookup(key); ok {
		return rec
	}

	rec := derive(t)
	records.put(key, rec)

	logging.New().Debug("derived capability record",
		logging.String("type", t.String()),
		logging.Bool("trivially_copyable", rec.TriviallyCopyable),
		logging.Bool("trivially_destructible", rec.TriviallyDestructible),
		logging.Bool("never_value", rec.HasNeverValue),
		logging.Bool("relocatable", rec.Relocatable),
		logging.Uint("full_size", uint64(rec.FullSize)),
		logging.Uint("data_size", uint64(rec.DataSize)),
	)

	return rec
}

func derive(t reflect.Type) Record {
	rec := Record{
		Type:     t,
		Kind:     t.Kind(),
		FullSize: t.Size(),
	}

	rec.DataSize, rec.DataSizeKnown = dataSize(t)

	key := typeKey(t)

	_, dropRegistered := records.dropFor(key)
	rec.TriviallyDestructible = !implementsDrop(t) && !dropRegistered

	_, cloneRegistered := records.cloneFor(key)
	rec.TriviallyCopyable = rec.TriviallyDestructible && !hasCloneMethod(t) && !cloneRegistered

	// A payload with a destructor is presumed to null out or otherwise fix up
	// its source when moved; only an author assertion says its bytes may move
	// raw.
	rec.TriviallyMovable = rec.TriviallyDestructible

	rec.NeverValueRegistered = records.neverValueRegistered(key)
	rec.HasNeverValue = rec.NeverValueRegistered || implementsInvalidator(t)
	if rec.HasNeverValue {
		rec.ZeroInvalid = zeroMatchesInvalid(t, rec.NeverValueRegistered)
	}

	rec.AssertedRelocatable = records.assertedRelocatable(key)
	rec.Relocatable = classifyRelocatable(t, rec)
	rec.PointerFree = !containsPointers(t)

	return rec
}

func containsPointers(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64, reflect.Complex64, reflect.Complex128:
		return false
	case reflect.Array:
		return t.Len() > 0 && containsPointers(t.Elem())
	case reflect.Struct:
		for i := 0; i < t.NumField(); i++ {
			if containsPointers(t.Field(i).Type) {
				return true
			}
		}
		return false
	default:
		return true
	}
}

func classifyRelocatable(t reflect.Type, rec Record) bool {
	if isReferenceKind(rec.Kind) {
		return true
	}

	if rec.Kind == reflect.Array {
		elem := Of(t.Elem())
		return rec.DataSizeKnown && elem.Relocatable
	}

	if !rec.DataSizeKnown {
		return false
	}

	switch {
	case rec.TriviallyCopyable:
		return true
	case rec.TriviallyMovable && rec.TriviallyDestructible:
		return true
	case rec.AssertedRelocatable:
		return true
	}

	return false
}

func isReferenceKind(k reflect.Kind) bool {
	switch k {
	case reflect.Pointer, reflect.UnsafePointer, reflect.Map, reflect.Chan, reflect.Func:
		return true
	}
	return false
}

func implementsDrop(t reflect.Type) bool {
	return reflect.PointerTo(t).Implements(dropperType)
}

func implementsInvalidator(t reflect.Type) bool {
	return reflect.PointerTo(t).Implements(invalidatorType)
}

func zeroMatchesInvalid(t reflect.Type, registered bool) bool {
	zero := reflect.New(t)

	if registered {
		_, probe, ok := NeverValueFor(t)
		if !ok {
			return false
		}
		out := reflect.ValueOf(probe).Call([]reflect.Value{zero})
		return out[0].Bool()
	}

	inv, ok := zero.Interface().(Invalidator)
	if !ok {
		return false
	}
	return inv.Invalid()
}

func hasCloneMethod(t reflect.Type) bool {
	m, ok := t.MethodByName("Clone")
	if !ok {
		m, ok = reflect.PointerTo(t).MethodByName("Clone")
	}
	if !ok {
		return false
	}

	mt := m.Type
	return mt.NumIn() == 1 && mt.NumOut() == 1 && mt.Out(0) == t
}

// dataSize computes the size of t excluding trailing padding: the bytes a
// composing struct may legally repurpose. Structs use the last field's offset
// plus that field's own data size; arrays use full strides for all but the
// last element.
func dataSize(t reflect.Type) (uintptr, bool) {
	switch t.Kind() {
	case reflect.Invalid:
		return 0, false
	case reflect.Struct:
		n := t.NumField()
		if n == 0 {
			return 0, true
		}
		last := t.Field(n - 1)
		lastData, ok := dataSize(last.Type)
		if !ok {
			return 0, false
		}
		return last.Offset + lastData, true
	case reflect.Array:
		l := t.Len()
		if l == 0 {
			return 0, true
		}
		elemData, ok := dataSize(t.Elem())
		if !ok {
			return 0, false
		}
		return uintptr(l-1)*t.Elem().Size() + elemData, true
	default:
		return t.Size(), true
	}
}

// TypeOf is the reflect handle used for all record lookups of T.
func TypeOf[T any]() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}

// For returns the capability record of T.
func For[T any]() Record {
	return Of(TypeOf[T]())
}

func typeKey(t reflect.Type) string {
	if pp := t.PkgPath(); pp != "" {
		return pp + "." + t.Name()
	}
	return t.String()
}
