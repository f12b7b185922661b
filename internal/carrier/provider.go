package carrier

import (
	"context"
	"fmt"
	"sort"
	"sync"
)

// Provider is a carrier API integration. Implementations own transport,
// authentication, and translation into the normalized types.
type Provider interface {
	Name() string
	Authenticate(ctx context.Context) error
	FetchCircuits(ctx context.Context) ([]NormalizedCircuit, error)
	FetchCircuitDetail(ctx context.Context, cid string) (*NormalizedCircuit, error)
}

// Constructor builds a Provider from a stored API configuration.
type Constructor func(cfg APIConfig) Provider

// Registry maps provider-type identifiers to constructors. Provider files
// register themselves from init(), so lookups may happen concurrently with
// nothing left to add; the mutex keeps tests that mutate the registry safe.
type Registry struct {
	mu           sync.RWMutex
	constructors map[string]Constructor
}

func NewRegistry() *Registry {
	return &Registry{constructors: make(map[string]Constructor)}
}

func (r *Registry) Register(providerType string, c Constructor) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.constructors[providerType] = c
}

func (r *Registry) Unregister(providerType string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.constructors, providerType)
}

func (r *Registry) Get(providerType string) (Constructor, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.constructors[providerType]
	if !ok {
		return nil, fmt.Errorf("provider type %q is not registered", providerType)
	}
	return c, nil
}

// Types lists the registered provider types in sorted order.
func (r *Registry) Types() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	types := make([]string, 0, len(r.constructors))
	for t := range r.constructors {
		types = append(types, t)
	}
	sort.Strings(types)
	return types
}

// DefaultRegistry is where provider files register themselves at init time.
var DefaultRegistry = NewRegistry()
