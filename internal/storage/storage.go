package storage

import (
	"sync"
	"time"

	"github.com/vitrina-piezas/catalog/internal/models"
)

// Snapshot is the result of one catalog scan together with the config it
// was built from.
type Snapshot struct {
	Records   []models.ProductRecord
	Config    models.Config
	ScannedAt time.Time
}

// LoadFunc produces a fresh snapshot.
type LoadFunc func() (*Snapshot, error)

// CatalogStore caches the latest snapshot for ttl. A zero ttl rescans on
// every Get, so edits to the folder tree show up on the next request.
type CatalogStore struct {
	load LoadFunc
	ttl  time.Duration
	now  func() time.Time

	snapshot *Snapshot
	mu       sync.RWMutex
}

func New(ttl time.Duration, load LoadFunc) *CatalogStore {
	return &CatalogStore{
		load: load,
		ttl:  ttl,
		now:  time.Now,
	}
}

func (s *CatalogStore) cached() (*Snapshot, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.snapshot != nil && s.ttl > 0 && s.now().Sub(s.snapshot.ScannedAt) < s.ttl {
		return s.snapshot, true
	}
	return nil, false
}

// Get returns the cached snapshot while it is fresh, loading a new one otherwise.
func (s *CatalogStore) Get() (*Snapshot, error) {
	if snap, ok := s.cached(); ok {
		return snap, nil
	}

	snap, err := s.load()
	if err != nil {
		return nil, err
	}
	if snap.ScannedAt.IsZero() {
		snap.ScannedAt = s.now()
	}
	s.Set(snap)
	return snap, nil
}

func (s *CatalogStore) Set(snap *Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshot = snap
}

// Invalidate forces the next Get to rescan.
func (s *CatalogStore) Invalidate() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshot = nil
}
