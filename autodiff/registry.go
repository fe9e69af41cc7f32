package autodiff

import (
	"sort"
	"sync"

	"github.com/hupe1980/gradir/indexset"
)

// Registry is the per-module witness registry. It is append-only: entries
// are never modified or removed, and at most one witness exists per
// (function name, config) pair.
//
// Resolution normally runs on the single thread driving a compilation
// unit, but InsertIfAbsent is atomic so that future parallel passes keep
// the at-most-one invariant without external coordination.
type Registry struct {
	mu     sync.RWMutex
	byKey  map[Key]*Witness
	byName map[string][]*Witness
}

// NewRegistry creates an empty witness registry.
func NewRegistry() *Registry {
	return &Registry{
		byKey:  make(map[Key]*Witness),
		byName: make(map[string][]*Witness),
	}
}

// LookupByName returns all witnesses registered for the function name, in
// insertion order. The returned slice is a copy.
func (r *Registry) LookupByName(name string) []*Witness {
	r.mu.RLock()
	defer r.mu.RUnlock()

	entries := r.byName[name]
	if len(entries) == 0 {
		return nil
	}
	out := make([]*Witness, len(entries))
	copy(out, entries)
	return out
}

// LookupByIndexSets returns the earliest-registered witness whose parameter
// and result sets are exactly equal to the given ones, or nil. The
// constraint is not part of the match: a witness registered under a
// derivative generic constraint still satisfies a constraint-free query
// over the same sets. Superset configurations do not match.
func (r *Registry) LookupByIndexSets(name string, parameters, results *indexset.Set) *Witness {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, w := range r.byName[name] {
		if w.Config.Parameters.Equal(parameters) && w.Config.Results.Equal(results) {
			return w
		}
	}
	return nil
}

// LookupExact returns the witness whose config is exactly equal to the
// given one (both index sets and the constraint), or nil. This is the
// config-keyed lookup the resolver uses after deriving a minimal
// configuration from an annotation.
func (r *Registry) LookupExact(name string, config Config) *Witness {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, w := range r.byName[name] {
		if w.Config.Equal(config) {
			return w
		}
	}
	return nil
}

// InsertIfAbsent registers the witness unless one already exists for its
// (function name, config) key. It returns the registered witness (the
// existing one on conflict) and whether an insert happened.
func (r *Registry) InsertIfAbsent(w *Witness) (*Witness, bool) {
	key := w.Key()

	r.mu.Lock()
	defer r.mu.Unlock()

	if existing, ok := r.byKey[key]; ok {
		return existing, false
	}
	r.byKey[key] = w
	r.byName[w.FunctionName] = append(r.byName[w.FunctionName], w)
	return w, true
}

// Len returns the number of registered witnesses.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.byKey)
}

// All returns every registered witness in a deterministic order: function
// names ascending, insertion order within a name. Used by snapshots.
func (r *Registry) All() []*Witness {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.byName))
	for name := range r.byName {
		names = append(names, name)
	}
	sort.Strings(names)

	out := make([]*Witness, 0, len(r.byKey))
	for _, name := range names {
		out = append(out, r.byName[name]...)
	}
	return out
}
