// Package notes keeps the single free-form scratch note that lives next to
// the daily spark quote. One note per installation, stored as raw text.
package notes

import (
	"sync"

	"teacherdash/internal/storage"
)

const notesKey = "notes"

// Store owns the quick note.
type Store struct {
	mu      sync.RWMutex
	note    string
	storage *storage.Store
}

// NewStore creates an empty note store.
func NewStore(st *storage.Store) *Store {
	return &Store{storage: st}
}

// Note returns the current note text.
func (s *Store) Note() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.note
}

// SetNote replaces the note.
func (s *Store) SetNote(text string) {
	s.mu.Lock()
	s.note = text
	s.mu.Unlock()
}

// Persist writes the raw note text.
func (s *Store) Persist() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.storage.Write(notesKey, []byte(s.note))
}

// Restore loads the note if one was saved.
func (s *Store) Restore() {
	if data, ok := s.storage.Read(notesKey); ok {
		s.mu.Lock()
		s.note = string(data)
		s.mu.Unlock()
	}
}
