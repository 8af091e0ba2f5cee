package provider

import (
	"container/list"
	"fmt"
	"strings"
	"sync"
	"time"
)

// methodsCacheEntry is one cached payment methods answer
type methodsCacheEntry struct {
	key         string
	countries   PaymentMethodCountries
	createdAt   time.Time
	listElement *list.Element
}

// MethodsCache stores payment method lists between provider calls
type MethodsCache interface {
	// Get returns the cached countries, nil when absent or expired
	Get(request PaymentMethodsRequest) PaymentMethodCountries

	// Set stores the countries for the request
	Set(request PaymentMethodsRequest, countries PaymentMethodCountries)

	// Clear removes all entries
	Clear()

	// Stats returns cache statistics
	Stats() CacheStats
}

// CacheStats represents cache performance metrics
type CacheStats struct {
	Size        int           `json:"size"`
	MaxSize     int           `json:"max_size"`
	Hits        int64         `json:"hits"`
	Misses      int64         `json:"misses"`
	Evictions   int64         `json:"evictions"`
	TTLExpiries int64         `json:"ttl_expiries"`
	HitRatio    float64       `json:"hit_ratio"`
	TTL         time.Duration `json:"ttl"`
}

// InMemoryMethodsCache is an LRU cache with a per-entry TTL
type InMemoryMethodsCache struct {
	entries     map[string]*methodsCacheEntry
	accessOrder *list.List // most recent at front
	maxSize     int
	ttl         time.Duration
	now         func() time.Time
	mu          sync.Mutex

	hits        int64
	misses      int64
	evictions   int64
	ttlExpiries int64
}

// NewMethodsCache creates an in-memory cache. ttl <= 0 disables expiry.
func NewMethodsCache(maxSize int, ttl time.Duration) *InMemoryMethodsCache {
	if maxSize <= 0 {
		maxSize = 100
	}
	return &InMemoryMethodsCache{
		entries:     make(map[string]*methodsCacheEntry),
		accessOrder: list.New(),
		maxSize:     maxSize,
		ttl:         ttl,
		now:         time.Now,
	}
}

// The selected countries are not part of the key, filtering happens after the cache.
func methodsCacheKey(r PaymentMethodsRequest) string {
	lang := r.Language
	if lang == "" {
		lang = DefaultLanguage
	}
	return fmt.Sprintf("%d-%d-%s-%s", r.ProjectID, r.Amount, strings.ToUpper(r.Currency), lang)
}

func (c *InMemoryMethodsCache) Get(request PaymentMethodsRequest) PaymentMethodCountries {
	key := methodsCacheKey(request)

	c.mu.Lock()
	defer c.mu.Unlock()

	entry, exists := c.entries[key]
	if !exists {
		c.misses++
		return nil
	}

	if c.ttl > 0 && c.now().Sub(entry.createdAt) > c.ttl {
		c.deleteEntryUnsafe(entry)
		c.ttlExpiries++
		c.misses++
		return nil
	}

	c.accessOrder.MoveToFront(entry.listElement)
	c.hits++
	return entry.countries.Clone()
}

func (c *InMemoryMethodsCache) Set(request PaymentMethodsRequest, countries PaymentMethodCountries) {
	key := methodsCacheKey(request)
	now := c.now()
	countries = countries.Clone()

	c.mu.Lock()
	defer c.mu.Unlock()

	if existing, exists := c.entries[key]; exists {
		existing.countries = countries
		existing.createdAt = now
		c.accessOrder.MoveToFront(existing.listElement)
		return
	}

	if len(c.entries) >= c.maxSize {
		c.evictLRUUnsafe()
	}

	entry := &methodsCacheEntry{
		key:       key,
		countries: countries,
		createdAt: now,
	}
	entry.listElement = c.accessOrder.PushFront(entry)
	c.entries[key] = entry
}

func (c *InMemoryMethodsCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = make(map[string]*methodsCacheEntry)
	c.accessOrder = list.New()
}

func (c *InMemoryMethodsCache) Stats() CacheStats {
	c.mu.Lock()
	defer c.mu.Unlock()

	total := c.hits + c.misses
	hitRatio := 0.0
	if total > 0 {
		hitRatio = float64(c.hits) / float64(total)
	}

	return CacheStats{
		Size:        len(c.entries),
		MaxSize:     c.maxSize,
		Hits:        c.hits,
		Misses:      c.misses,
		Evictions:   c.evictions,
		TTLExpiries: c.ttlExpiries,
		HitRatio:    hitRatio,
		TTL:         c.ttl,
	}
}

// evictLRUUnsafe must be called with the lock held
func (c *InMemoryMethodsCache) evictLRUUnsafe() {
	back := c.accessOrder.Back()
	if back == nil {
		return
	}
	c.deleteEntryUnsafe(back.Value.(*methodsCacheEntry))
	c.evictions++
}

// deleteEntryUnsafe must be called with the lock held
func (c *InMemoryMethodsCache) deleteEntryUnsafe(entry *methodsCacheEntry) {
	delete(c.entries, entry.key)
	if entry.listElement != nil {
		c.accessOrder.Remove(entry.listElement)
	}
}
