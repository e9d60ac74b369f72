package caps

import (
	"reflect"

	"github.com/zeebo/errs"
)

var boolType = reflect.TypeOf(true)

// RegisterRelocatable records the author's assertion that values of t may be
// relocated by raw byte copy even though the structural rules say otherwise.
// The assertion only widens eligibility: it cannot make an incomputable data
// size computable.
func RegisterRelocatable(t reflect.Type) error {
	if t == nil {
		return errs.New("relocatable assertion requires a concrete type")
	}

	key := typeKey(t)

	records.init()
	records.mu.Lock()
	records.reloc[key] = struct{}{}
	records.mu.Unlock()

	records.invalidate(key)
	return nil
}

// RegisterNeverValue supplies explicit sentinel accessors for a type that
// cannot implement Invalidator itself. mark must be func(*T), probe must be
// func(*T) bool.
func RegisterNeverValue(t reflect.Type, mark, probe any) error {
	if t == nil {
		return errs.New("never-value registration requires a concrete type")
	}

	ptr := reflect.PointerTo(t)

	wantMark := reflect.FuncOf([]reflect.Type{ptr}, nil, false)
	if mark == nil || reflect.TypeOf(mark) != wantMark {
		return errs.New("mark for %s must be %s", t, wantMark)
	}

	wantProbe := reflect.FuncOf([]reflect.Type{ptr}, []reflect.Type{boolType}, false)
	if probe == nil || reflect.TypeOf(probe) != wantProbe {
		return errs.New("probe for %s must be %s", t, wantProbe)
	}

	key := typeKey(t)

	records.init()
	records.mu.Lock()
	records.never[key] = neverValueFuncs{mark: mark, probe: probe}
	records.mu.Unlock()

	records.invalidate(key)
	return nil
}

// RegisterDrop supplies a destructor, func(*T), for a type that cannot
// implement Dropper itself. The type stops being trivially destructible.
func RegisterDrop(t reflect.Type, drop any) error {
	if t == nil {
		return errs.New("drop registration requires a concrete type")
	}

	want := reflect.FuncOf([]reflect.Type{reflect.PointerTo(t)}, nil, false)
	if drop == nil || reflect.TypeOf(drop) != want {
		return errs.New("drop for %s must be %s", t, want)
	}

	key := typeKey(t)

	records.init()
	records.mu.Lock()
	records.drops[key] = drop
	records.mu.Unlock()

	records.invalidate(key)
	return nil
}

// RegisterClone supplies a copy constructor, func(*T) T, for a type whose
// copies must not share state. The type stops being trivially copyable.
func RegisterClone(t reflect.Type, clone any) error {
	if t == nil {
		return errs.New("clone registration requires a concrete type")
	}

	want := reflect.FuncOf([]reflect.Type{reflect.PointerTo(t)}, []reflect.Type{t}, false)
	if clone == nil || reflect.TypeOf(clone) != want {
		return errs.New("clone for %s must be %s", t, want)
	}

	key := typeKey(t)

	records.init()
	records.mu.Lock()
	records.clones[key] = clone
	records.mu.Unlock()

	records.invalidate(key)
	return nil
}

// NeverValueFor returns the registered sentinel accessors of t, if any.
func NeverValueFor(t reflect.Type) (mark, probe any, ok bool) {
	f, ok := records.neverValueFor(typeKey(t))
	return f.mark, f.probe, ok
}

// DropFor returns the registered destructor of t, if any.
func DropFor(t reflect.Type) (any, bool) {
	return records.dropFor(typeKey(t))
}

// CloneFor returns the registered copy constructor of t, if any.
func CloneFor(t reflect.Type) (any, bool) {
	return records.cloneFor(typeKey(t))
}
