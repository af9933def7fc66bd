package lesson

import (
	"encoding/json"
	"log"
	"sync"

	"teacherdash/internal/storage"
)

const plansKey = "lessonPlans"

// persisted is the current storage shape. Earlier installations stored a
// bare blockId->plan mapping with no templates; Restore accepts both.
type persisted struct {
	Plans     map[string]Plan `json:"plans"`
	Templates []Template      `json:"templates"`
}

// Store owns lesson plans and templates.
type Store struct {
	mu        sync.RWMutex
	plans     map[string]Plan
	templates []Template
	storage   *storage.Store

	subMu sync.Mutex
	subs  []chan struct{}
}

// NewStore creates an empty lesson plan store.
func NewStore(st *storage.Store) *Store {
	return &Store{
		plans:   make(map[string]Plan),
		storage: st,
	}
}

// Subscribe returns a channel signalled after every mutation.
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

// SetPlan upserts the plan keyed by its block id, replacing all fields.
func (s *Store) SetPlan(plan Plan) {
	s.mu.Lock()
	s.plans[plan.BlockID] = plan
	s.mu.Unlock()
	s.notify()
}

// Plan looks up the plan for a block. The second return value is false
// when the block has not been planned yet.
func (s *Store) Plan(blockID string) (Plan, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	plan, ok := s.plans[blockID]
	return plan, ok
}

// Plans returns a copy of the full blockId->plan mapping.
func (s *Store) Plans() map[string]Plan {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]Plan, len(s.plans))
	for id, plan := range s.plans {
		out[id] = plan
	}
	return out
}

// AddTemplate appends a template to the display-ordered list.
func (s *Store) AddTemplate(template Template) {
	s.mu.Lock()
	s.templates = append(s.templates, template)
	s.mu.Unlock()
	s.notify()
}

// RemoveTemplate drops the template with the given id.
func (s *Store) RemoveTemplate(id string) {
	s.mu.Lock()
	kept := s.templates[:0]
	for _, t := range s.templates {
		if t.ID != id {
			kept = append(kept, t)
		}
	}
	s.templates = kept
	s.mu.Unlock()
	s.notify()
}

// Template looks up a template by id.
func (s *Store) Template(id string) (Template, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, t := range s.templates {
		if t.ID == id {
			return t, true
		}
	}
	return Template{}, false
}

// Templates returns a copy of the template list in insertion order.
func (s *Store) Templates() []Template {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Template, len(s.templates))
	copy(out, s.templates)
	return out
}

// Persist writes plans and templates together under one storage key,
// always in the newer {plans, templates} shape.
func (s *Store) Persist() error {
	s.mu.RLock()
	data, err := json.Marshal(persisted{Plans: s.plans, Templates: s.templates})
	s.mu.RUnlock()
	if err != nil {
		return err
	}
	return s.storage.Write(plansKey, data)
}

// Restore loads persisted state, accepting both historical shapes. The
// wrapped shape wins whenever either of its keys is present; otherwise the
// whole object is read as the plans mapping. Malformed data keeps the
// in-memory defaults.
func (s *Store) Restore() {
	data, ok := s.storage.Read(plansKey)
	if !ok {
		return
	}

	var probe map[string]json.RawMessage
	if err := json.Unmarshal(data, &probe); err != nil {
		log.Printf("Ignoring malformed persisted lesson plans: %v", err)
		return
	}

	_, hasPlans := probe["plans"]
	_, hasTemplates := probe["templates"]
	if hasPlans || hasTemplates {
		var wrapped persisted
		if err := json.Unmarshal(data, &wrapped); err != nil {
			log.Printf("Ignoring malformed persisted lesson plans: %v", err)
			return
		}
		s.mu.Lock()
		if wrapped.Plans != nil {
			s.plans = wrapped.Plans
		} else {
			s.plans = make(map[string]Plan)
		}
		s.templates = wrapped.Templates
		s.mu.Unlock()
		return
	}

	// Legacy shape: the object itself is the plans mapping.
	var plans map[string]Plan
	if err := json.Unmarshal(data, &plans); err != nil {
		log.Printf("Ignoring malformed persisted lesson plans: %v", err)
		return
	}
	if plans == nil {
		return
	}
	s.mu.Lock()
	s.plans = plans
	s.templates = nil
	s.mu.Unlock()
}
