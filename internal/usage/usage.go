// Package usage counts how often routes are switched to, so callers can
// surface a "most used" list. Storage sits behind the Store port; the
// SQLite-backed implementation lives in internal/db.
package usage

import (
	"context"
	"sort"
	"sync"

	"github.com/brooksai/slashhub/internal/route"
)

// Store is the usage counter port. Routes are compared by normalized key.
type Store interface {
	Get(ctx context.Context, routeKey string) (int, error)
	Increment(ctx context.Context, routeKey string) error
}

// MemoryStore is a process-local Store, safe for concurrent use.
type MemoryStore struct {
	mu     sync.Mutex
	counts map[string]int
}

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{counts: make(map[string]int)}
}

// Get returns the count for a route (0 if never used).
func (m *MemoryStore) Get(_ context.Context, routeKey string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.counts[route.NormalizeKey(routeKey)], nil
}

// Increment bumps the count for a route.
func (m *MemoryStore) Increment(_ context.Context, routeKey string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.counts[route.NormalizeKey(routeKey)]++
	return nil
}

// Ranked is a route paired with its usage count.
type Ranked struct {
	Route string `json:"route"`
	Count int    `json:"count"`
}

// MostUsed ranks candidate routes by usage, highest first, ties broken by
// normalized key. Routes with no usage are dropped. n <= 0 means no limit.
func MostUsed(ctx context.Context, store Store, routes []string, n int) ([]Ranked, error) {
	seen := make(map[string]bool, len(routes))
	ranked := make([]Ranked, 0, len(routes))

	for _, r := range routes {
		key := route.NormalizeKey(r)
		if seen[key] {
			continue
		}
		seen[key] = true

		count, err := store.Get(ctx, key)
		if err != nil {
			return nil, err
		}
		if count == 0 {
			continue
		}
		ranked = append(ranked, Ranked{Route: key, Count: count})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Count != ranked[j].Count {
			return ranked[i].Count > ranked[j].Count
		}
		return ranked[i].Route < ranked[j].Route
	})

	if n > 0 && len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked, nil
}

// SortByUsage reorders suggestions so the most used come first. Suggestions
// with equal counts keep their relative order.
func SortByUsage(ctx context.Context, store Store, items []route.Suggestion) error {
	counts := make(map[string]int, len(items))
	for _, s := range items {
		key := s.Key()
		if _, ok := counts[key]; ok {
			continue
		}
		c, err := store.Get(ctx, key)
		if err != nil {
			return err
		}
		counts[key] = c
	}

	sort.SliceStable(items, func(i, j int) bool {
		return counts[items[i].Key()] > counts[items[j].Key()]
	})
	return nil
}
