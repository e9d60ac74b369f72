package caps

import (
	"sync"

	"github.com/patrickmn/go-cache"
)

type inMemoryCache interface {
	SetDefault(k string, v any)
	Get(k string) (any, bool)
	Delete(k string)
}

// store holds the derived record cache plus the code-level registries the
// derivation consults. Records are derived once per type; registering
// anything for a type invalidates its cached record so the next lookup
// re-derives with the registration visible.
type store struct {
	once  sync.Once
	cache inMemoryCache

	mu     sync.Mutex
	reloc  map[string]struct{}
	never  map[string]neverValueFuncs
	drops  map[string]any
	clones map[string]any
}

type neverValueFuncs struct {
	mark  any
	probe any
}

var records store

func (s *store) init() {
	s.once.Do(func() {
		s.cache = cache.New(cache.NoExpiration, 0)
		s.reloc = make(map[string]struct{})
		s.never = make(map[string]neverValueFuncs)
		s.drops = make(map[string]any)
		s.clones = make(map[string]any)
	})
}

func (s *store) lookup(key string) (Record, bool) {
	s.init()

	if v, found := s.cache.Get(key); found {
		return v.(Record), true
	}

	return Record{}, false
}

func (s *store) put(key string, rec Record) {
	s.init()
	s.cache.SetDefault(key, rec)
}

func (s *store) invalidate(key string) {
	s.init()
	s.cache.Delete(key)
}

func (s *store) assertedRelocatable(key string) bool {
	s.init()

	s.mu.Lock()
	defer s.mu.Unlock()

	_, ok := s.reloc[key]
	return ok
}

func (s *store) neverValueRegistered(key string) bool {
	s.init()

	s.mu.Lock()
	defer s.mu.Unlock()

	_, ok := s.never[key]
	return ok
}

func (s *store) neverValueFor(key string) (neverValueFuncs, bool) {
	s.init()

	s.mu.Lock()
	defer s.mu.Unlock()

	f, ok := s.never[key]
	return f, ok
}

func (s *store) dropFor(key string) (any, bool) {
	s.init()

	s.mu.Lock()
	defer s.mu.Unlock()

	f, ok := s.drops[key]
	return f, ok
}

func (s *store) cloneFor(key string) (any, bool) {
	s.init()

	s.mu.Lock()
	defer s.mu.Unlock()

	f, ok := s.clones[key]
	return f, ok
}
