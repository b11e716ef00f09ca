package provider

import (
	"sync"

	"chatpolish/internal/logging"
)

// Registry maps provider ids to Provider instances and tracks which
// provider each conversation origin is currently using. All methods are
// safe for concurrent use.
type Registry struct {
	mu        sync.RWMutex
	providers map[string]Provider
	bindings  map[string]string // conversation origin -> provider id
	defaultID string
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		providers: make(map[string]Provider),
		bindings:  make(map[string]string),
	}
}

// Register adds a provider. The first registered provider becomes the
// default until SetDefault says otherwise.
func (r *Registry) Register(p Provider) {
	if p == nil {
		return
	}
	r.mu.Lock()
	r.providers[p.ID()] = p
	if r.defaultID == "" {
		r.defaultID = p.ID()
	}
	r.mu.Unlock()
}

// SetDefault selects the global default provider by id.
func (r *Registry) SetDefault(id string) {
	r.mu.Lock()
	r.defaultID = id
	r.mu.Unlock()
}

// Bind associates a conversation origin with a provider id, mirroring
// the host pipeline's "provider in use for this conversation".
func (r *Registry) Bind(origin, id string) {
	r.mu.Lock()
	r.bindings[origin] = id
	r.mu.Unlock()
}

// ByID looks up a provider by id.
func (r *Registry) ByID(id string) (Provider, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.providers[id]
	return p, ok
}

// UsingFor returns the provider bound to the conversation origin, or
// the global default when the origin has no binding. Returns nil when
// nothing resolves.
func (r *Registry) UsingFor(origin string) Provider {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if id, ok := r.bindings[origin]; ok {
		if p, ok := r.providers[id]; ok {
			return p
		}
	}
	if p, ok := r.providers[r.defaultID]; ok {
		return p
	}
	return nil
}

// Resolve picks the provider for a polish call: the explicitly
// configured id when it resolves, else the conversation's provider. An
// unresolvable configured id logs a warning and falls through.
func (r *Registry) Resolve(configuredID, origin string) Provider {
	if configuredID != "" {
		if p, ok := r.ByID(configuredID); ok {
			return p
		}
		logging.ProviderWarn("Configured provider %q not found, falling back to conversation default", configuredID)
	}
	return r.UsingFor(origin)
}
