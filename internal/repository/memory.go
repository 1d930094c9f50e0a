package repository

import (
	"context"
	"sync"
	"time"

	"github.com/pawshield/adtrack/internal/model"
)

// MemoryStore is an in-memory implementation of the click and content
// storage operations. It mirrors the semantics of the PostgreSQL
// repository, including gclid deduplication, and is used by unit tests
// and local development.
type MemoryStore struct {
	mu      sync.Mutex
	clicks  []*model.ClickRecord
	byGCLID map[string]*model.ClickRecord
	content map[string]*model.ContentRecord
}

// NewMemory creates an empty MemoryStore.
func NewMemory() *MemoryStore {
	return &MemoryStore{
		byGCLID: make(map[string]*model.ClickRecord),
		content: make(map[string]*model.ContentRecord),
	}
}

// InsertOrUpdateClick stores a click record. A repeated non-empty
// gclid refreshes the existing record's timestamp and returns its
// original session id instead of inserting a duplicate.
func (s *MemoryStore) InsertOrUpdateClick(ctx context.Context, rec *model.ClickRecord) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if rec.GCLID != "" {
		if existing, ok := s.byGCLID[rec.GCLID]; ok {
			existing.Timestamp = rec.Timestamp
			return existing.SessionID, nil
		}
	}

	stored := rec.Clone()
	s.clicks = append(s.clicks, stored)
	if stored.GCLID != "" {
		s.byGCLID[stored.GCLID] = stored
	}

	return stored.SessionID, nil
}

// GetClickBySession returns the latest click record for a session id.
func (s *MemoryStore) GetClickBySession(ctx context.Context, sessionID string) (*model.ClickRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if rec := s.latestForSession(sessionID); rec != nil {
		return rec.Clone(), nil
	}
	return nil, ErrSessionNotFound
}

// MarkConverted flags the latest click for a session as converted.
func (s *MemoryStore) MarkConverted(ctx context.Context, sessionID string, value float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec := s.latestForSession(sessionID)
	if rec == nil {
		return ErrSessionNotFound
	}

	rec.Converted = true
	rec.ConversionValue = value
	return nil
}

// ClicksSince returns clones of all clicks strictly after the cutoff.
func (s *MemoryStore) ClicksSince(ctx context.Context, cutoff time.Time) ([]*model.ClickRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var records []*model.ClickRecord
	for _, rec := range s.clicks {
		if rec.Timestamp.After(cutoff) {
			records = append(records, rec.Clone())
		}
	}

	return records, nil
}

// GetContent retrieves cached content for a keyword.
func (s *MemoryStore) GetContent(ctx context.Context, keyword string) (*model.ContentRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.content[keyword]
	if !ok {
		return nil, ErrContentNotFound
	}
	return rec.Clone(), nil
}

// UpsertContent replaces any cached content for the record's keyword.
func (s *MemoryStore) UpsertContent(ctx context.Context, rec *model.ContentRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.content[rec.Keyword] = rec.Clone()
	return nil
}

// ClickCount returns the number of stored click rows. Test helper.
func (s *MemoryStore) ClickCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.clicks)
}

// latestForSession finds the stored record with the newest timestamp
// for a session id. Ties break on the ULID, which sorts by mint time.
// Caller must hold the mutex.
func (s *MemoryStore) latestForSession(sessionID string) *model.ClickRecord {
	var latest *model.ClickRecord
	for _, rec := range s.clicks {
		if rec.SessionID != sessionID {
			continue
		}
		if latest == nil || rec.Timestamp.After(latest.Timestamp) ||
			(rec.Timestamp.Equal(latest.Timestamp) && rec.ID > latest.ID) {
			latest = rec
		}
	}
	return latest
}
