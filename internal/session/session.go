// Package session holds pure UI selection state: which day is in focus and
// whether the spark panel is open. Nothing here is persisted; every process
// start returns to the defaults.
package session

import (
	"sync"
	"time"

	"teacherdash/internal/schedule"
)

// Store holds the current selection.
type Store struct {
	mu          sync.RWMutex
	selectedDay schedule.DayKey
	sparkOpen   bool
}

// NewStore returns a store with the defaults: Wednesday selected,
// spark panel open.
func NewStore() *Store {
	return &Store{
		selectedDay: schedule.Wednesday,
		sparkOpen:   true,
	}
}

// SelectedDay returns the day currently in focus.
func (s *Store) SelectedDay() schedule.DayKey {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.selectedDay
}

// SetSelectedDay puts a day in focus.
func (s *Store) SetSelectedDay(day schedule.DayKey) {
	s.mu.Lock()
	s.selectedDay = day
	s.mu.Unlock()
}

// JumpToToday recomputes the selection from the real-world date and
// returns the resulting day. Weekends land on Monday.
func (s *Store) JumpToToday(now time.Time) schedule.DayKey {
	day := schedule.Today(now)
	s.SetSelectedDay(day)
	return day
}

// SparkOpen reports whether the spark panel is open.
func (s *Store) SparkOpen() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sparkOpen
}

// ToggleSpark flips the spark panel and returns the new state.
func (s *Store) ToggleSpark() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sparkOpen = !s.sparkOpen
	return s.sparkOpen
}

// SetSparkOpen sets the spark panel state directly.
func (s *Store) SetSparkOpen(open bool) {
	s.mu.Lock()
	s.sparkOpen = open
	s.mu.Unlock()
}
