package provider

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProviderRegistry_Register(t *testing.T) {
	registry := NewProviderRegistry()

	mockFactory := func(map[string]string) (Provider, error) { return &stubProvider{}, nil }

	registry.Register("test-provider", mockFactory)

	factory, err := registry.Get("test-provider")
	assert.NoError(t, err)
	assert.NotNil(t, factory)
}

func TestProviderRegistry_GetProviderNames(t *testing.T) {
	registry := NewProviderRegistry()

	assert.Empty(t, registry.GetProviderNames())

	mockFactory := func(map[string]string) (Provider, error) { return &stubProvider{}, nil }
	registry.Register("provider2", mockFactory)
	registry.Register("provider1", mockFactory)

	assert.Equal(t, []string{"provider1", "provider2"}, registry.GetProviderNames())
}

func TestProviderRegistry_Get_NotFound(t *testing.T) {
	registry := NewProviderRegistry()

	factory, err := registry.Get("non-existent")
	assert.Error(t, err)
	assert.Nil(t, factory)
	assert.Contains(t, err.Error(), "is not registered")
}

func TestProviderRegistry_CreateProvider(t *testing.T) {
	registry := NewProviderRegistry()
	registry.Register("ok", func(map[string]string) (Provider, error) { return &stubProvider{}, nil })
	registry.Register("broken", func(map[string]string) (Provider, error) { return nil, errors.New("no library") })

	p, err := registry.CreateProvider("ok", nil)
	require.NoError(t, err)
	assert.NotNil(t, p)

	_, err = registry.CreateProvider("broken", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no library")
}

func TestDefaultRegistry(t *testing.T) {
	Register("default-test", func(map[string]string) (Provider, error) { return &stubProvider{}, nil })

	p, err := CreateProvider("default-test", nil)
	assert.NoError(t, err)
	assert.NotNil(t, p)
	assert.Contains(t, DefaultRegistry.GetProviderNames(), "default-test")
}
