// SPDX-License-Identifier: BSD-3-Clause

// Package cache memoizes catalog lookup outcomes, including negative
// and ambiguous ones, so reruns do not repeat expensive remote calls.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/LePresidente/xmltv-tools/internal/log"
)

// Kind selects the catalog namespace an entry belongs to.
type Kind string

const (
	KindMovie  Kind = "movies"
	KindSeries Kind = "series"
)

// DefaultTTL applies to every entry state, negative results included.
// Reruns against an unstable or rate-limited catalog must not re-query
// known-bad titles, at the cost of staleness if the catalog improves.
const DefaultTTL = 90 * 24 * time.Hour

// State is the outcome memoized for a lookup key.
type State int

const (
	// Miss means no entry exists or the entry has expired.
	Miss State = iota
	// Found carries catalog attributes for an unambiguous match.
	Found
	// NotFound records that the catalog had no exact match.
	NotFound
	// Ambiguous records that the catalog had several exact matches.
	Ambiguous
)

func (s State) String() string {
	switch s {
	case Found:
		return "found"
	case NotFound:
		return "not_found"
	case Ambiguous:
		return "ambiguous"
	default:
		return "miss"
	}
}

// Attributes are the catalog facts cached for a Found entry.
type Attributes struct {
	Title          string   `json:"title"`
	RuntimeMinutes int      `json:"runtime_minutes,omitempty"`
	Overview       string   `json:"overview,omitempty"`
	Genres         []string `json:"genres,omitempty"`
	PosterURL      string   `json:"poster_url,omitempty"`
}

// entry is the JSON value stored per key. Exactly one state holds;
// NotFound and Ambiguous entries never carry attributes.
type entry struct {
	State      string      `json:"state"`
	Attributes *Attributes `json:"attributes,omitempty"`
}

// Store is a key-value store with per-key expiry. The backing store
// may be shared with concurrent external processes; entries are
// expiry-timestamped rather than versioned, so no locking is needed.
type Store interface {
	// Get returns the raw entry for key, or ok=false when absent or
	// expired. A non-nil error means the store itself failed.
	Get(ctx context.Context, key string) (value []byte, ok bool, err error)
	// Set writes an entry with the given TTL, replacing any prior one.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// Lookup layers the tri-state memoization protocol over a Store.
type Lookup struct {
	store  Store
	ttl    time.Duration
	logger zerolog.Logger
}

// NewLookup wraps store with the given TTL; ttl <= 0 means DefaultTTL.
func NewLookup(store Store, ttl time.Duration) *Lookup {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Lookup{
		store:  store,
		ttl:    ttl,
		logger: log.WithComponent("cache"),
	}
}

func cacheKey(kind Kind, key string) string {
	return fmt.Sprintf("%s.%s", kind, key)
}

// Get resolves the memoized state for (kind, key). Attributes are only
// returned for Found. A store failure surfaces as an error; callers
// treat it as transient and must not cache a negative result for it.
func (l *Lookup) Get(ctx context.Context, kind Kind, key string) (State, *Attributes, error) {
	raw, ok, err := l.store.Get(ctx, cacheKey(kind, key))
	if err != nil {
		return Miss, nil, fmt.Errorf("cache get %s.%s: %w", kind, key, err)
	}
	if !ok {
		return Miss, nil, nil
	}

	var e entry
	if err := json.Unmarshal(raw, &e); err != nil {
		// A corrupt entry behaves like an expired one.
		l.logger.Warn().Err(err).Str("kind", string(kind)).Str("key", key).
			Msg("discarding undecodable cache entry")
		return Miss, nil, nil
	}

	switch e.State {
	case Found.String():
		if e.Attributes == nil {
			l.logger.Warn().Str("kind", string(kind)).Str("key", key).
				Msg("found entry without attributes, treating as miss")
			return Miss, nil, nil
		}
		return Found, e.Attributes, nil
	case NotFound.String():
		return NotFound, nil, nil
	case Ambiguous.String():
		return Ambiguous, nil, nil
	default:
		return Miss, nil, nil
	}
}

// PutFound memoizes an unambiguous match with its attributes.
func (l *Lookup) PutFound(ctx context.Context, kind Kind, key string, attrs Attributes) error {
	return l.put(ctx, kind, key, entry{State: Found.String(), Attributes: &attrs})
}

// PutNotFound memoizes a zero-match outcome.
func (l *Lookup) PutNotFound(ctx context.Context, kind Kind, key string) error {
	return l.put(ctx, kind, key, entry{State: NotFound.String()})
}

// PutAmbiguous memoizes a multiple-match outcome.
func (l *Lookup) PutAmbiguous(ctx context.Context, kind Kind, key string) error {
	return l.put(ctx, kind, key, entry{State: Ambiguous.String()})
}

func (l *Lookup) put(ctx context.Context, kind Kind, key string, e entry) error {
	raw, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("cache marshal %s.%s: %w", kind, key, err)
	}
	if err := l.store.Set(ctx, cacheKey(kind, key), raw, l.ttl); err != nil {
		return fmt.Errorf("cache set %s.%s: %w", kind, key, err)
	}
	l.logger.Debug().Str("kind", string(kind)).Str("key", key).
		Str("state", e.State).Msg("cached lookup outcome")
	return nil
}

// MemoryStore is an in-process Store used in tests and as a harness
// for runs without a reachable Redis. Expired entries are dropped on
// read; a one-shot run has no need for background eviction.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
}

type memoryEntry struct {
	value      []byte
	expiration time.Time
}

// NewMemoryStore creates an empty in-process store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: make(map[string]memoryEntry)}
}

// Get implements Store.
func (m *MemoryStore) Get(_ context.Context, key string) ([]byte, bool, error) {
	m.mu.RLock()
	e, ok := m.entries[key]
	m.mu.RUnlock()
	if !ok || time.Now().After(e.expiration) {
		return nil, false, nil
	}
	return e.value, true, nil
}

// Set implements Store.
func (m *MemoryStore) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	m.mu.Lock()
	m.entries[key] = memoryEntry{value: value, expiration: time.Now().Add(ttl)}
	m.mu.Unlock()
	return nil
}
