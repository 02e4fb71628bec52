// Package app wires data sources to the servers: a source-agnostic loader
// with a TTL cache and an optional load audit trail.
package app

import (
	"context"
	"log"
	"sync"
	"time"

	"salesboard/domain/sales"
	"salesboard/internal/errors"
)

// Source produces a fresh sales table from wherever the data lives.
type Source interface {
	Name() string
	Fetch(ctx context.Context) (*sales.Table, error)
}

// SnapshotRecorder receives a notification per completed load.
type SnapshotRecorder interface {
	Record(ctx context.Context, source string, rowCount int) error
}

// Loader caches the fetched table for a TTL and reloads on expiry or on a
// forced refresh. Any fetch failure aborts the load; the previous table is
// never silently reused past its TTL.
type Loader struct {
	source   Source
	ttl      time.Duration
	recorder SnapshotRecorder

	mu       sync.RWMutex
	table    *sales.Table
	loadedAt time.Time
	loaded   bool
}

// LoadStatus describes the cache state for the status endpoint.
type LoadStatus struct {
	Source   string    `json:"source"`
	Loaded   bool      `json:"loaded"`
	Rows     int       `json:"rows"`
	LoadedAt time.Time `json:"loaded_at,omitempty"`
}

// NewLoader creates a loader over a source. recorder may be nil.
func NewLoader(source Source, ttl time.Duration, recorder SnapshotRecorder) *Loader {
	return &Loader{source: source, ttl: ttl, recorder: recorder}
}

// Table returns the cached table, fetching when the cache is cold or stale.
func (l *Loader) Table(ctx context.Context) (*sales.Table, error) {
	l.mu.RLock()
	if l.loaded && time.Since(l.loadedAt) < l.ttl {
		table := l.table
		l.mu.RUnlock()
		return table, nil
	}
	l.mu.RUnlock()

	return l.load(ctx, false)
}

// Refresh drops the cache and fetches a fresh table.
func (l *Loader) Refresh(ctx context.Context) (*sales.Table, error) {
	return l.load(ctx, true)
}

func (l *Loader) load(ctx context.Context, force bool) (*sales.Table, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	// Another caller may have refreshed while we waited for the lock.
	if !force && l.loaded && time.Since(l.loadedAt) < l.ttl {
		return l.table, nil
	}

	start := time.Now()
	table, err := l.source.Fetch(ctx)
	if err != nil {
		return nil, errors.Wrapf(err, "data load from %s failed", l.source.Name())
	}

	l.table = table
	l.loadedAt = time.Now()
	l.loaded = true
	log.Printf("[Loader] Loaded %d rows from %s in %.2fms",
		table.Len(), l.source.Name(), float64(time.Since(start).Nanoseconds())/1e6)

	if l.recorder != nil {
		if err := l.recorder.Record(ctx, l.source.Name(), table.Len()); err != nil {
			log.Printf("[Loader] Failed to record load snapshot: %v", err)
		}
	}

	return table, nil
}

// Invalidate drops the cache so the next Table call refetches.
func (l *Loader) Invalidate() {
	l.mu.Lock()
	l.loaded = false
	l.mu.Unlock()
}

// Status reports the current cache state.
func (l *Loader) Status() LoadStatus {
	l.mu.RLock()
	defer l.mu.RUnlock()

	status := LoadStatus{Source: l.source.Name(), Loaded: l.loaded}
	if l.loaded {
		status.Rows = l.table.Len()
		status.LoadedAt = l.loadedAt
	}
	return status
}
