package dialect

import (
	"sort"
	"sync"
	"sync/atomic"
)

// Registry holds named dialects. Readers never block; writers copy the map
// and publish the new one atomically, so a reader sees either the old or the
// new set in full.
type Registry struct {
	mu      sync.Mutex // serialises writers
	current atomic.Pointer[map[string]*Dialect]
}

func NewRegistry() *Registry {
	r := &Registry{}
	empty := map[string]*Dialect{}
	r.current.Store(&empty)
	return r
}

func (r *Registry) load() map[string]*Dialect {
	if m := r.current.Load(); m != nil {
		return *m
	}
	return nil
}

func (r *Registry) Get(name string) (*Dialect, bool) {
	d, ok := r.load()[name]
	return d, ok
}

func (r *Registry) Put(name string, d *Dialect) {
	r.mu.Lock()
	defer r.mu.Unlock()

	old := r.load()
	next := make(map[string]*Dialect, len(old)+1)
	for k, v := range old {
		next[k] = v
	}
	next[name] = d
	r.current.Store(&next)
}

// Replace swaps the whole set, dropping names not in dialects.
func (r *Registry) Replace(dialects map[string]*Dialect) {
	next := make(map[string]*Dialect, len(dialects))
	for k, v := range dialects {
		next[k] = v
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.current.Store(&next)
}

// Names returns the registered names in sorted order.
func (r *Registry) Names() []string {
	m := r.load()
	names := make([]string, 0, len(m))
	for k := range m {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}
