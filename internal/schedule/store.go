package schedule

import (
	"encoding/json"
	"log"
	"sync"

	"teacherdash/internal/storage"
)

const (
	scheduleKey = "schedule"
	imageKey    = "timetableImage"
)

// Store owns the weekly schedule and the uploaded timetable image.
// All access goes through its methods; callers get copies, never the
// backing slices.
type Store struct {
	mu      sync.RWMutex
	week    Week
	image   string
	storage *storage.Store

	subMu sync.Mutex
	subs  []chan struct{}
}

// NewStore creates a Store seeded with the bundled default week.
func NewStore(st *storage.Store) *Store {
	return &Store{
		week:    DefaultWeek(),
		storage: st,
	}
}

// Subscribe returns a channel that receives a signal after every mutation.
// The channel is buffered; a slow consumer coalesces signals instead of
// blocking mutations.
func (s *Store) Subscribe() <-chan struct{} {
	ch := make(chan struct{}, 1)
	s.subMu.Lock()
	s.subs = append(s.subs, ch)
	s.subMu.Unlock()
	return ch
}

// Unsubscribe removes a channel previously returned by Subscribe.
func (s *Store) Unsubscribe(ch <-chan struct{}) {
	s.subMu.Lock()
	defer s.subMu.Unlock()
	for i, sub := range s.subs {
		if sub == ch {
			s.subs = append(s.subs[:i], s.subs[i+1:]...)
			return
		}
	}
}

func (s *Store) notify() {
	s.subMu.Lock()
	defer s.subMu.Unlock()
	for _, ch := range s.subs {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}

func copyBlocks(blocks []Block) []Block {
	if blocks == nil {
		return nil
	}
	out := make([]Block, len(blocks))
	copy(out, blocks)
	for i := range out {
		if out[i].Resources != nil {
			res := make([]ResourceLink, len(out[i].Resources))
			copy(res, out[i].Resources)
			out[i].Resources = res
		}
	}
	return out
}

// Week returns a copy of the full weekly mapping.
func (s *Store) Week() Week {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(Week, len(s.week))
	for day, blocks := range s.week {
		out[day] = copyBlocks(blocks)
	}
	return out
}

// Blocks returns a copy of one day's sequence.
func (s *Store) Blocks(day DayKey) []Block {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return copyBlocks(s.week[day])
}

// Find looks up a block by id within a day.
func (s *Store) Find(day DayKey, id string) (Block, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, b := range s.week[day] {
		if b.ID == id {
			return b, true
		}
	}
	return Block{}, false
}

// ReplaceAll overwrites the entire weekly mapping. The caller must supply
// all five weekday keys.
func (s *Store) ReplaceAll(week Week) {
	s.mu.Lock()
	s.week = week
	s.mu.Unlock()
	s.notify()
}

// AddBlock appends a block to the end of the day's sequence. Ids are not
// checked for uniqueness here; NewBlock mints collision-resistant ones.
func (s *Store) AddBlock(day DayKey, block Block) {
	s.mu.Lock()
	s.week[day] = append(s.week[day], block)
	s.mu.Unlock()
	s.notify()
}

// UpdateBlock replaces the first block within the day whose id matches.
// A miss is a no-op.
func (s *Store) UpdateBlock(day DayKey, block Block) {
	s.mu.Lock()
	for i, existing := range s.week[day] {
		if existing.ID == block.ID {
			s.week[day][i] = block
			break
		}
	}
	s.mu.Unlock()
	s.notify()
}

// RemoveBlock drops every block within the day whose id matches,
// preserving the order of the rest.
func (s *Store) RemoveBlock(day DayKey, id string) {
	s.mu.Lock()
	blocks := s.week[day]
	kept := blocks[:0]
	for _, b := range blocks {
		if b.ID != id {
			kept = append(kept, b)
		}
	}
	s.week[day] = kept
	s.mu.Unlock()
	s.notify()
}

// SetTimetableImage replaces the stored image reference. An empty string
// clears it.
func (s *Store) SetTimetableImage(dataURL string) {
	s.mu.Lock()
	s.image = dataURL
	s.mu.Unlock()
	s.notify()
}

// TimetableImage returns the stored image data URL, empty when none.
func (s *Store) TimetableImage() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.image
}

// Persist writes the schedule and image to durable storage under their
// two independent keys. A cleared image removes its key entirely.
func (s *Store) Persist() error {
	s.mu.RLock()
	week := s.week
	data, err := json.Marshal(week)
	image := s.image
	s.mu.RUnlock()
	if err != nil {
		return err
	}

	if err := s.storage.Write(scheduleKey, data); err != nil {
		return err
	}
	if image != "" {
		return s.storage.Write(imageKey, []byte(image))
	}
	return s.storage.Delete(imageKey)
}

// Restore loads persisted state on startup. Stored JSON that parses as an
// object replaces the in-memory week verbatim, missing days included;
// anything unparseable is ignored and the compiled-in defaults stay.
func (s *Store) Restore() {
	if data, ok := s.storage.Read(scheduleKey); ok {
		var week Week
		if err := json.Unmarshal(data, &week); err != nil {
			log.Printf("Ignoring malformed persisted schedule: %v", err)
		} else if week != nil {
			s.mu.Lock()
			s.week = week
			s.mu.Unlock()
		}
	}
	if data, ok := s.storage.Read(imageKey); ok {
		s.mu.Lock()
		s.image = string(data)
		s.mu.Unlock()
	}
}
