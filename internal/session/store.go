// Package session keeps assembled ledgers in memory so follow-up
// search/pagination requests can reference them by ID. Records are
// process-local and lost on restart by design; this is the requesting
// session's transient state, not persistence.
package session

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dvloznov/statement-ledger/internal/ledger"
)

// Record is one stored ledger with its session metadata.
type Record struct {
	ID        string
	Ledger    *ledger.Ledger
	CreatedAt time.Time
}

// Store is an in-memory record store, safe for concurrent use. Ledgers are
// immutable once assembled, so records share the ledger pointer and only the
// record envelope is copied on read.
type Store struct {
	mu      sync.RWMutex
	records map[string]*Record
	now     func() time.Time
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{
		records: make(map[string]*Record),
		now:     time.Now,
	}
}

// Save stores the ledger under a fresh UUID and returns the record.
func (s *Store) Save(led *ledger.Ledger) (*Record, error) {
	if led == nil {
		return nil, fmt.Errorf("ledger is required")
	}

	rec := &Record{
		ID:        uuid.NewString(),
		Ledger:    led,
		CreatedAt: s.now(),
	}

	s.mu.Lock()
	s.records[rec.ID] = rec
	s.mu.Unlock()

	recCopy := *rec
	return &recCopy, nil
}

// Get retrieves a record by ID.
func (s *Store) Get(id string) (*Record, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.records[id]
	if !ok {
		return nil, false
	}
	recCopy := *rec
	return &recCopy, true
}

// Delete removes a record; deleting an unknown ID is a no-op.
func (s *Store) Delete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.records, id)
}

// Len returns the number of stored records.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}

// PurgeOlderThan drops records created before cutoff and returns how many
// were removed. The API janitor calls this periodically with now-TTL.
func (s *Store) PurgeOlderThan(cutoff time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	purged := 0
	for id, rec := range s.records {
		if rec.CreatedAt.Before(cutoff) {
			delete(s.records, id)
			purged++
		}
	}
	return purged
}
