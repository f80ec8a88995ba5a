package transport

import (
	"sort"
	"sync"
)

// Registry maps URI schemes to dialers.
type Registry struct {
	mu      sync.RWMutex
	dialers map[string]Dialer
}

// DefaultRegistry is the global dialer registry. Dialer packages register
// themselves here from init.
var DefaultRegistry = NewRegistry()

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{dialers: make(map[string]Dialer)}
}

// Register binds scheme to dialer, replacing any previous binding.
func (r *Registry) Register(scheme string, dialer Dialer) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.dialers[scheme] = dialer
}

// Lookup returns the dialer registered for scheme.
func (r *Registry) Lookup(scheme string) (Dialer, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	d, ok := r.dialers[scheme]
	return d, ok
}

// Has reports whether scheme is registered.
func (r *Registry) Has(scheme string) bool {
	_, ok := r.Lookup(scheme)
	return ok
}

// Names returns the registered schemes in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.dialers))
	for name := range r.dialers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Register adds a dialer to the default registry.
func Register(scheme string, dialer Dialer) {
	DefaultRegistry.Register(scheme, dialer)
}

// Lookup finds a dialer in the default registry.
func Lookup(scheme string) (Dialer, bool) {
	return DefaultRegistry.Lookup(scheme)
}
