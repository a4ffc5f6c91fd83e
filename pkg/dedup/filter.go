// Package dedup implements the deduplication filter: a short-lived cache that
// lets the validator skip re-running the full checker pipeline against a SQL
// attempt it has already seen very recently, from the same place, with the
// same pagination.
//
// The design this generalizes from uses a per-thread cache, to keep lookups
// lock-free and immune to cross-request contention. Go has no notion of "the
// calling thread" stable across a request, so this package approximates the
// intent with a sync.Pool of independent shards: each validate call borrows a
// shard, uses it, and returns it. Pool reuse means a given goroutine will
// usually — but not always — see its own shard again, which is enough to
// absorb the bursty, same-goroutine-repeats-itself access pattern this is
// guarding against, without inventing a goroutine-identity hack to force
// exclusivity.
package dedup

import (
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/sqlshield/sqlshield/pkg/types"
)

// DefaultShardSize bounds each per-lease shard's entry count.
const DefaultShardSize = 1000

// DefaultTTL bounds how long a recorded key suppresses a repeat validation.
const DefaultTTL = 100 * time.Millisecond

// shard is one dedup cache instance, handed out by the pool and returned
// after use. Entries are the last known ValidationResult keyed by
// DeduplicationKey, good for DefaultTTL (or Filter's configured TTL).
type shard struct {
	cache *expirable.LRU[types.DeduplicationKey, *types.ValidationResult]
}

// Filter is the deduplication filter. A zero Filter is not usable; build one
// with New.
type Filter struct {
	pool *sync.Pool
	size int
	ttl  time.Duration
}

// New builds a Filter whose shards hold up to size entries for ttl each. A
// non-positive size or ttl falls back to the package defaults.
func New(size int, ttl time.Duration) *Filter {
	if size <= 0 {
		size = DefaultShardSize
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	f := &Filter{size: size, ttl: ttl}
	f.pool = &sync.Pool{
		New: func() any {
			return &shard{cache: expirable.NewLRU[types.DeduplicationKey, *types.ValidationResult](f.size, nil, f.ttl)}
		},
	}
	return f
}

// Lookup checks whether key was recently recorded, and if so returns the
// ValidationResult recorded for it and true. Otherwise it returns nil, false.
// Every call borrows and returns a shard; callers should not hold onto the
// returned result past the current validate call.
func (f *Filter) Lookup(key types.DeduplicationKey) (*types.ValidationResult, bool) {
	s := f.pool.Get().(*shard)
	defer f.pool.Put(s)
	return s.cache.Get(key)
}

// Record stores result under key, good for this Filter's TTL.
func (f *Filter) Record(key types.DeduplicationKey, result *types.ValidationResult) {
	s := f.pool.Get().(*shard)
	defer f.pool.Put(s)
	s.cache.Add(key, result)
}

// Clear drops every shard currently held by the pool, forcing fresh (empty)
// shards to be built on next use. This is the closest Go equivalent to the
// spec's clear_all(): it cannot reach shards mid-flight in another goroutine,
// but since shards only ever hold recent, short-TTL entries, the stale
// entries expire on their own shortly after.
func (f *Filter) Clear() {
	f.pool = &sync.Pool{
		New: func() any {
			return &shard{cache: expirable.NewLRU[types.DeduplicationKey, *types.ValidationResult](f.size, nil, f.ttl)}
		},
	}
}
