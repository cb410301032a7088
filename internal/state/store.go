package state

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"dashforge/internal/generate"
)

// Dashboard couples a generated UI state with the data context it was
// built from.
type Dashboard struct {
	ID        string            `json:"id"`
	Title     string            `json:"title"`
	Data      map[string]any    `json:"data"`
	State     *generate.UIState `json:"state"`
	CreatedAt time.Time         `json:"created_at"`
	UpdatedAt time.Time         `json:"updated_at"`
}

// Event is pushed to subscribers whenever a dashboard changes.
type Event struct {
	DashboardID string            `json:"dashboard_id"`
	Version     string            `json:"version"`
	State       *generate.UIState `json:"state"`
}

// Store manages live dashboards in memory. It is thread-safe; reads return
// clones so callers never share mutable state with the store.
type Store struct {
	mu          sync.RWMutex
	dashboards  map[string]*Dashboard
	subscribers map[string]map[int]chan Event
	nextSubID   int
}

func NewStore() *Store {
	return &Store{
		dashboards:  make(map[string]*Dashboard),
		subscribers: make(map[string]map[int]chan Event),
	}
}

// Create registers a new dashboard and returns its generated ID.
func (s *Store) Create(title string, data map[string]any, st *generate.UIState) (*Dashboard, error) {
	if s == nil {
		return nil, fmt.Errorf("store is nil")
	}
	if st == nil {
		return nil, fmt.Errorf("ui state is required")
	}
	title = strings.TrimSpace(title)
	if title == "" {
		title = "Dashboard"
	}
	now := time.Now()
	d := &Dashboard{
		ID:        uuid.NewString(),
		Title:     title,
		Data:      data,
		State:     st,
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.mu.Lock()
	s.dashboards[d.ID] = d
	s.mu.Unlock()
	return cloneDashboard(d), nil
}

// Get returns a clone of the dashboard, or nil when unknown.
func (s *Store) Get(id string) *Dashboard {
	if s == nil {
		return nil
	}
	s.mu.RLock()
	d := s.dashboards[strings.TrimSpace(id)]
	s.mu.RUnlock()
	return cloneDashboard(d)
}

// List returns clones of all dashboards, newest first.
func (s *Store) List() []*Dashboard {
	if s == nil {
		return nil
	}
	s.mu.RLock()
	out := make([]*Dashboard, 0, len(s.dashboards))
	for _, d := range s.dashboards {
		out = append(out, cloneDashboard(d))
	}
	s.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

// Update replaces the dashboard state and notifies subscribers.
func (s *Store) Update(id string, st *generate.UIState) (*Dashboard, error) {
	if s == nil {
		return nil, fmt.Errorf("store is nil")
	}
	if st == nil {
		return nil, fmt.Errorf("ui state is required")
	}
	id = strings.TrimSpace(id)

	s.mu.Lock()
	d, ok := s.dashboards[id]
	if !ok {
		s.mu.Unlock()
		return nil, fmt.Errorf("dashboard not found: %s", id)
	}
	d.State = st
	d.UpdatedAt = time.Now()
	clone := cloneDashboard(d)
	subs := make([]chan Event, 0, len(s.subscribers[id]))
	for _, ch := range s.subscribers[id] {
		subs = append(subs, ch)
	}
	s.mu.Unlock()

	ev := Event{DashboardID: id, Version: clone.State.Version, State: clone.State}
	for _, ch := range subs {
		select {
		case ch <- ev:
		default:
			// Slow subscribers drop updates rather than block the store.
		}
	}
	return clone, nil
}

// Delete removes a dashboard and closes its subscriptions.
func (s *Store) Delete(id string) {
	if s == nil {
		return
	}
	id = strings.TrimSpace(id)
	s.mu.Lock()
	delete(s.dashboards, id)
	for _, ch := range s.subscribers[id] {
		close(ch)
	}
	delete(s.subscribers, id)
	s.mu.Unlock()
}

// Subscribe returns a channel receiving updates for the dashboard and a
// cancel function that must be called when done.
func (s *Store) Subscribe(id string) (<-chan Event, func()) {
	if s == nil {
		return nil, func() {}
	}
	id = strings.TrimSpace(id)
	ch := make(chan Event, 8)

	s.mu.Lock()
	if s.subscribers[id] == nil {
		s.subscribers[id] = make(map[int]chan Event)
	}
	s.nextSubID++
	subID := s.nextSubID
	s.subscribers[id][subID] = ch
	s.mu.Unlock()

	cancel := func() {
		s.mu.Lock()
		if subs, ok := s.subscribers[id]; ok {
			if _, live := subs[subID]; live {
				delete(subs, subID)
				close(ch)
			}
			if len(subs) == 0 {
				delete(s.subscribers, id)
			}
		}
		s.mu.Unlock()
	}
	return ch, cancel
}

func cloneDashboard(d *Dashboard) *Dashboard {
	if d == nil {
		return nil
	}
	clone := *d
	if d.State != nil {
		st := *d.State
		if d.State.Schema != nil {
			st.Schema = d.State.Schema.Clone()
		}
		st.History = append([]generate.HistoryEntry(nil), d.State.History...)
		clone.State = &st
	}
	return &clone
}
