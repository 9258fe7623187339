package cache

import (
	"context"
	"strconv"
	"sync"

	"golang.org/x/sync/singleflight"
)

// Op distinguishes list and item queries for one resource.
type Op string

const (
	OpList Op = "list"
	OpItem Op = "item"
)

// Key identifies one cached query. Params must render identical queries
// identically (services canonicalize page/limit/search before building it).
// A structured key, rather than an ad-hoc string, keeps invalidation scoping
// type-checked.
type Key struct {
	Resource string
	Op       Op
	Params   string
}

// ListKey builds the key for a paginated/filtered list query.
func ListKey(resource, params string) Key {
	return Key{Resource: resource, Op: OpList, Params: params}
}

// ItemKey builds the key for a single-record query.
func ItemKey(resource string, id int64) Key {
	return Key{Resource: resource, Op: OpItem, Params: strconv.FormatInt(id, 10)}
}

// flight is the singleflight grouping string for the key.
func (k Key) flight() string {
	return k.Resource + "\x00" + string(k.Op) + "\x00" + k.Params
}

type entry struct {
	value any
	stale bool
}

// FetchFunc loads the value for a key from the upstream.
type FetchFunc func(ctx context.Context) (any, error)

// Cache is a stale-while-revalidate query cache. Invalidation only marks
// entries stale; the next read of a stale or missing key fetches, and
// concurrent readers of one key share a single in-flight fetch. Fetch errors
// are never cached.
type Cache struct {
	mu      sync.Mutex
	entries map[Key]*entry
	group   singleflight.Group
}

func New() *Cache {
	return &Cache{entries: make(map[Key]*entry)}
}

// Get returns the cached value when fresh, otherwise fetches. Cache writes
// are last-response-wins, which keeps unmount-while-in-flight callers safe
// to ignore.
func (c *Cache) Get(ctx context.Context, key Key, fetch FetchFunc) (any, error) {
	c.mu.Lock()
	if e, ok := c.entries[key]; ok && !e.stale {
		value := e.value
		c.mu.Unlock()
		return value, nil
	}
	c.mu.Unlock()

	value, err, _ := c.group.Do(key.flight(), func() (any, error) {
		// A queued caller may arrive after the flight it joined already
		// refreshed the entry.
		c.mu.Lock()
		if e, ok := c.entries[key]; ok && !e.stale {
			value := e.value
			c.mu.Unlock()
			return value, nil
		}
		c.mu.Unlock()

		fetched, err := fetch(ctx)
		if err != nil {
			return nil, err
		}

		c.mu.Lock()
		c.entries[key] = &entry{value: fetched}
		c.mu.Unlock()
		return fetched, nil
	})
	if err != nil {
		return nil, err
	}
	return value, nil
}

// Invalidate marks every entry in the resource's op scope stale, regardless
// of params. Coarse on purpose: a list must never show data inconsistent
// with a just-completed mutation, and the refetch cost is deferred until a
// reader actually touches the key.
func (c *Cache) Invalidate(resource string, op Op) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for k, e := range c.entries {
		if k.Resource == resource && k.Op == op {
			e.stale = true
		}
	}
}

// InvalidateItem marks one detail entry stale. Other ids are untouched.
func (c *Cache) InvalidateItem(resource string, id int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if e, ok := c.entries[ItemKey(resource, id)]; ok {
		e.stale = true
	}
}
