package usecase

import "sync"

// SourceRegistry holds listing sources by name so that deployments can
// pick which sources a pipeline runs via configuration.
type SourceRegistry interface {
	RegisterSource(name string, source ListingSource)
	GetSource(name string) (ListingSource, bool)
}

type sourceRegistry struct {
	sources map[string]ListingSource
	mu      sync.RWMutex
}

func NewSourceRegistry() SourceRegistry {
	return &sourceRegistry{
		sources: make(map[string]ListingSource),
	}
}

func (r *sourceRegistry) RegisterSource(name string, source ListingSource) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sources[name] = source
}

func (r *sourceRegistry) GetSource(name string) (ListingSource, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	source, exists := r.sources[name]
	return source, exists
}
