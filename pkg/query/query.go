package query

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Options tunes the cache behaviour. Zero fields fall back to the
// application defaults.
type Options struct {
	// StaleTime is how long a fetched result is served without hitting
	// the repository again.
	StaleTime time.Duration
	// GCTime is how long an unused entry survives in memory.
	GCTime time.Duration
	// Retry is the number of additional attempts after a failed fetch.
	Retry int
	// PersistThrottle is the minimum interval between snapshot writes.
	PersistThrottle time.Duration
}

// Default cache tuning, mirroring the client defaults the screens rely on.
const (
	DefaultStaleTime       = time.Minute
	DefaultGCTime          = 24 * time.Hour
	DefaultRetry           = 1
	DefaultPersistThrottle = time.Second
)

// PersistedEntry is one successfully fetched result in a snapshot.
type PersistedEntry struct {
	Key       string          `json:"key"`
	Data      json.RawMessage `json:"data"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

// Persister stores and restores cache snapshots so a restart can serve
// results without an immediate network round trip.
type Persister interface {
	Persist(ctx context.Context, entries []PersistedEntry) error
	Restore(ctx context.Context) ([]PersistedEntry, error)
}

type entry struct {
	data      any
	hasData   bool
	raw       json.RawMessage
	updatedAt time.Time
	lastUsed  time.Time
}

// Client is a keyed request cache with time-based staleness and optional
// snapshot persistence. Only successful results are ever cached or
// persisted; failures fall through to the caller.
type Client struct {
	mu      sync.Mutex
	entries map[string]*entry

	opts      Options
	persister Persister
	log       *zap.SugaredLogger

	now            func() time.Time
	lastPersist    time.Time
	persistPending bool
}

// NewClient creates a cache with the given options. persister may be nil,
// in which case snapshots are disabled.
func NewClient(opts Options, persister Persister, log *zap.SugaredLogger) *Client {
	if opts.StaleTime <= 0 {
		opts.StaleTime = DefaultStaleTime
	}
	if opts.GCTime <= 0 {
		opts.GCTime = DefaultGCTime
	}
	if opts.Retry < 0 {
		opts.Retry = DefaultRetry
	}
	if opts.PersistThrottle <= 0 {
		opts.PersistThrottle = DefaultPersistThrottle
	}
	return &Client{
		entries:   make(map[string]*entry),
		opts:      opts,
		persister: persister,
		log:       log,
		now:       time.Now,
	}
}

// Restore loads the persisted snapshot into memory. Entries are kept in
// their serialized form until the first typed access decodes them.
func (c *Client) Restore(ctx context.Context) error {
	if c.persister == nil {
		return nil
	}
	persisted, err := c.persister.Restore(ctx)
	if err != nil {
		return fmt.Errorf("failed to restore cache snapshot: %w", err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	now := c.now()
	for _, p := range persisted {
		c.entries[p.Key] = &entry{
			raw:       p.Data,
			updatedAt: p.UpdatedAt,
			lastUsed:  now,
		}
	}
	return nil
}

// Invalidate drops the given keys so the next access refetches them.
func (c *Client) Invalidate(keys ...string) {
	c.mu.Lock()
	for _, key := range keys {
		delete(c.entries, key)
	}
	c.schedulePersistLocked()
	c.mu.Unlock()
}

// Fetch returns the cached value for key when it is still fresh, otherwise
// it calls fn, retrying once per the configured retry count. When a refetch
// fails but an earlier result is still in memory, the stale result is
// served instead of the error.
func Fetch[T any](ctx context.Context, c *Client, key string, fn func(context.Context) (T, error)) (T, error) {
	var zero T

	c.mu.Lock()
	now := c.now()
	c.gcLocked(now)

	if e, ok := c.entries[key]; ok {
		e.lastUsed = now
		if now.Sub(e.updatedAt) < c.opts.StaleTime {
			if v, ok, err := decodeEntry[T](e); ok {
				c.mu.Unlock()
				return v, nil
			} else if err != nil {
				// A snapshot that does not decode into the requested
				// type is treated as a miss.
				c.log.Warnw("discarding undecodable cache entry", "key", key, "error", err)
				delete(c.entries, key)
			}
		}
	}
	c.mu.Unlock()

	var lastErr error
	for attempt := 0; attempt <= c.opts.Retry; attempt++ {
		v, err := fn(ctx)
		if err == nil {
			c.mu.Lock()
			now := c.now()
			c.entries[key] = &entry{data: v, hasData: true, updatedAt: now, lastUsed: now}
			c.schedulePersistLocked()
			c.mu.Unlock()
			return v, nil
		}
		lastErr = err
	}

	c.mu.Lock()
	if e, ok := c.entries[key]; ok {
		if v, ok, _ := decodeEntry[T](e); ok {
			c.mu.Unlock()
			c.log.Warnw("fetch failed, serving stale data", "key", key, "error", lastErr)
			return v, nil
		}
	}
	c.mu.Unlock()

	return zero, fmt.Errorf("fetch %s: %w", key, lastErr)
}

// decodeEntry returns the typed value held by e, lazily decoding restored
// snapshots. The error is non-nil only when a raw snapshot cannot be
// decoded into T.
func decodeEntry[T any](e *entry) (T, bool, error) {
	var zero T
	if e.hasData {
		if v, ok := e.data.(T); ok {
			return v, true, nil
		}
		return zero, false, nil
	}
	if e.raw != nil {
		var v T
		if err := json.Unmarshal(e.raw, &v); err != nil {
			return zero, false, err
		}
		e.data = v
		e.hasData = true
		return v, true, nil
	}
	return zero, false, nil
}

func (c *Client) gcLocked(now time.Time) {
	for key, e := range c.entries {
		if now.Sub(e.lastUsed) >= c.opts.GCTime {
			delete(c.entries, key)
		}
	}
}

// schedulePersistLocked queues a snapshot write, collapsing bursts of
// updates into at most one write per throttle interval.
func (c *Client) schedulePersistLocked() {
	if c.persister == nil || c.persistPending {
		return
	}
	c.persistPending = true

	delay := c.opts.PersistThrottle - c.now().Sub(c.lastPersist)
	if delay < 0 {
		delay = 0
	}
	time.AfterFunc(delay, c.flush)
}

func (c *Client) flush() {
	c.mu.Lock()
	snapshot := c.dehydrateLocked()
	c.lastPersist = c.now()
	c.persistPending = false
	c.mu.Unlock()

	if err := c.persister.Persist(context.Background(), snapshot); err != nil {
		c.log.Warnw("failed to persist cache snapshot", "error", err)
	}
}

// dehydrateLocked serializes every entry in memory. Entries only ever hold
// successful results, so the whole map qualifies for persistence.
func (c *Client) dehydrateLocked() []PersistedEntry {
	snapshot := make([]PersistedEntry, 0, len(c.entries))
	for key, e := range c.entries {
		raw := e.raw
		if e.hasData {
			encoded, err := json.Marshal(e.data)
			if err != nil {
				c.log.Warnw("skipping unserializable cache entry", "key", key, "error", err)
				continue
			}
			raw = encoded
		}
		if raw == nil {
			continue
		}
		snapshot = append(snapshot, PersistedEntry{Key: key, Data: raw, UpdatedAt: e.updatedAt})
	}
	return snapshot
}
