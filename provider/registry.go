package provider

import (
	"fmt"
	"sort"
	"sync"
)

// ProviderRegistry keeps provider factories by name
type ProviderRegistry struct {
	providers map[string]ProviderFactory
	mu        sync.RWMutex
}

// NewProviderRegistry creates an empty registry
func NewProviderRegistry() *ProviderRegistry {
	return &ProviderRegistry{
		providers: make(map[string]ProviderFactory),
	}
}

// Register adds or replaces a provider factory
func (r *ProviderRegistry) Register(name string, factory ProviderFactory) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.providers[name] = factory
}

// Get retrieves a provider factory by name
func (r *ProviderRegistry) Get(name string) (ProviderFactory, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	factory, exists := r.providers[name]
	if !exists {
		return nil, fmt.Errorf("payment provider '%s' is not registered", name)
	}

	return factory, nil
}

// CreateProvider builds a provider instance through its factory
func (r *ProviderRegistry) CreateProvider(name string, config map[string]string) (Provider, error) {
	factory, err := r.Get(name)
	if err != nil {
		return nil, err
	}

	p, err := factory(config)
	if err != nil {
		return nil, fmt.Errorf("failed to create provider '%s': %w", name, err)
	}
	return p, nil
}

// GetProviderNames returns the registered names in sorted order
func (r *ProviderRegistry) GetProviderNames() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.providers))
	for name := range r.providers {
		names = append(names, name)
	}
	sort.Strings(names)

	return names
}

// DefaultRegistry is the registry provider packages register into
var DefaultRegistry = NewProviderRegistry()

// Register registers a provider with the default registry
func Register(name string, factory ProviderFactory) {
	DefaultRegistry.Register(name, factory)
}

// CreateProvider creates a provider instance from the default registry
func CreateProvider(name string, config map[string]string) (Provider, error) {
	return DefaultRegistry.CreateProvider(name, config)
}
