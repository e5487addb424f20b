// Package state holds the navigation session: which view is active, which
// planet is selected, whether a camera transition is in flight, and the
// render quality level.
package state

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// View is the active navigation view.
type View string

const (
	GalaxyView            View = "GALAXY_VIEW"
	TransitioningToPlanet View = "TRANSITIONING_TO_PLANET"
	PlanetView            View = "PLANET_VIEW"
	TransitioningToGalaxy View = "TRANSITIONING_TO_GALAXY"
)

// Transitional reports whether the view only exists while the camera moves.
func (v View) Transitional() bool {
	return v == TransitioningToPlanet || v == TransitioningToGalaxy
}

// EventType represents the type of navigation change.
type EventType string

const (
	EventSelect         EventType = "SELECT"
	EventSwitch         EventType = "SWITCH"
	EventZoomComplete   EventType = "ZOOM_COMPLETE"
	EventReturn         EventType = "RETURN"
	EventReturnComplete EventType = "RETURN_COMPLETE"
	EventQuality        EventType = "QUALITY"
	EventReset          EventType = "RESET"
)

// Event records one accepted navigation change.
type Event struct {
	Type      EventType `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	PlanetID  string    `json:"planet_id,omitempty"`
	From      View      `json:"from"`
	To        View      `json:"to"`
	Quality   Quality   `json:"quality,omitempty"`
}

// Session is an immutable copy of the navigation state.
type Session struct {
	CurrentView      View
	SelectedPlanetID string // empty when nothing is selected
	IsTransitioning  bool
	QualityLevel     Quality
}

// HasSelection reports whether a planet is selected.
func (s Session) HasSelection() bool {
	return s.SelectedPlanetID != ""
}

// SubscriptionID identifies an observer registered with Subscribe.
type SubscriptionID uuid.UUID

type subscriber struct {
	id SubscriptionID
	fn func(Session)
}

// Manager owns the navigation session. Every mutation goes through one of
// its actions; user actions are ignored while a transition is in flight.
type Manager struct {
	mu sync.RWMutex

	id      uuid.UUID
	session Session

	subs []subscriber
	seq  uint64 // commits so far

	// notifyMu orders deliveries; notified is the last commit delivered.
	notifyMu sync.Mutex
	notified uint64

	// Event log (ring buffer)
	events       []Event
	maxEvents    int
	eventWriteAt int

	now func() time.Time
}

// Config holds configuration for the navigation manager.
type Config struct {
	MaxEvents      int
	InitialQuality Quality
}

// DefaultConfig returns sensible default configuration.
func DefaultConfig() Config {
	return Config{
		MaxEvents:      50,
		InitialQuality: QualityHigh,
	}
}

// NewManager creates a manager in the galaxy view.
func NewManager(cfg Config) *Manager {
	maxEvents := cfg.MaxEvents
	if maxEvents <= 0 {
		maxEvents = 50
	}
	q := cfg.InitialQuality
	if !q.Valid() {
		q = QualityHigh
	}
	return &Manager{
		id: uuid.New(),
		session: Session{
			CurrentView:  GalaxyView,
			QualityLevel: q,
		},
		maxEvents: maxEvents,
		events:    make([]Event, 0, maxEvents),
		now:       time.Now,
	}
}

// ID returns the session identifier, used to correlate log lines.
func (m *Manager) ID() string {
	return m.id.String()
}

// Session returns the current state.
func (m *Manager) Session() Session {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.session
}

// Subscribe registers fn to receive the session after every change.
// Observers run on the caller's goroutine after the change is committed,
// in commit order. A change already superseded by a delivered one is
// skipped, so the last session an observer sees is the current one.
// Observers may read state but must not call actions.
func (m *Manager) Subscribe(fn func(Session)) SubscriptionID {
	id := SubscriptionID(uuid.New())
	m.mu.Lock()
	m.subs = append(m.subs, subscriber{id: id, fn: fn})
	m.mu.Unlock()
	return id
}

// Unsubscribe removes an observer. Unknown ids are ignored.
func (m *Manager) Unsubscribe(id SubscriptionID) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, s := range m.subs {
		if s.id == id {
			m.subs = append(m.subs[:i:i], m.subs[i+1:]...)
			return
		}
	}
}

// SelectPlanet starts a zoom from the galaxy view.
func (m *Manager) SelectPlanet(id string) bool {
	return m.apply(EventSelect, id, func(s *Session) bool {
		if s.IsTransitioning || s.CurrentView != GalaxyView || id == "" {
			return false
		}
		s.SelectedPlanetID = id
		s.CurrentView = TransitioningToPlanet
		s.IsTransitioning = true
		return true
	})
}

// SwitchPlanet starts a zoom to a different planet from the planet view,
// or behaves like SelectPlanet from the galaxy view.
func (m *Manager) SwitchPlanet(id string) bool {
	return m.apply(EventSwitch, id, func(s *Session) bool {
		if s.IsTransitioning || id == "" || id == s.SelectedPlanetID {
			return false
		}
		if s.CurrentView != PlanetView && s.CurrentView != GalaxyView {
			return false
		}
		s.SelectedPlanetID = id
		s.CurrentView = TransitioningToPlanet
		s.IsTransitioning = true
		return true
	})
}

// OnZoomComplete is called by the camera when a zoom finishes.
func (m *Manager) OnZoomComplete() bool {
	return m.apply(EventZoomComplete, "", func(s *Session) bool {
		if s.CurrentView != TransitioningToPlanet {
			return false
		}
		s.CurrentView = PlanetView
		s.IsTransitioning = false
		return true
	})
}

// ReturnToGalaxy starts the zoom back out from the planet view.
func (m *Manager) ReturnToGalaxy() bool {
	return m.apply(EventReturn, "", func(s *Session) bool {
		if s.IsTransitioning || s.CurrentView != PlanetView {
			return false
		}
		s.CurrentView = TransitioningToGalaxy
		s.IsTransitioning = true
		return true
	})
}

// OnReturnComplete is called by the camera when the return finishes.
func (m *Manager) OnReturnComplete() bool {
	return m.apply(EventReturnComplete, "", func(s *Session) bool {
		if s.CurrentView != TransitioningToGalaxy {
			return false
		}
		s.CurrentView = GalaxyView
		s.SelectedPlanetID = ""
		s.IsTransitioning = false
		return true
	})
}

// SetQualityLevel sets the render quality. It is independent of navigation
// and allowed at any time.
func (m *Manager) SetQualityLevel(q Quality) bool {
	return m.apply(EventQuality, "", func(s *Session) bool {
		if !q.Valid() || s.QualityLevel == q {
			return false
		}
		s.QualityLevel = q
		return true
	})
}

// DeclineQuality steps quality down one level.
func (m *Manager) DeclineQuality() bool {
	return m.apply(EventQuality, "", func(s *Session) bool {
		next := s.QualityLevel.Lower()
		if next == s.QualityLevel {
			return false
		}
		s.QualityLevel = next
		return true
	})
}

// InclineQuality steps quality up one level.
func (m *Manager) InclineQuality() bool {
	return m.apply(EventQuality, "", func(s *Session) bool {
		next := s.QualityLevel.Higher()
		if next == s.QualityLevel {
			return false
		}
		s.QualityLevel = next
		return true
	})
}

// Reset returns to the galaxy view with nothing selected, keeping quality.
// Used when the renderer tears down mid-transition.
func (m *Manager) Reset() bool {
	return m.apply(EventReset, "", func(s *Session) bool {
		if s.CurrentView == GalaxyView && !s.IsTransitioning && s.SelectedPlanetID == "" {
			return false
		}
		s.CurrentView = GalaxyView
		s.SelectedPlanetID = ""
		s.IsTransitioning = false
		return true
	})
}

// apply runs mutate under the lock and, if it changed anything, logs the
// event and notifies observers outside the lock.
func (m *Manager) apply(typ EventType, planetID string, mutate func(*Session) bool) bool {
	m.mu.Lock()
	before := m.session
	next := m.session
	if !mutate(&next) {
		m.mu.Unlock()
		return false
	}
	m.session = next
	m.addEvent(Event{
		Type:      typ,
		Timestamp: m.now(),
		PlanetID:  planetID,
		From:      before.CurrentView,
		To:        next.CurrentView,
		Quality:   next.QualityLevel,
	})
	m.seq++
	seq := m.seq
	subs := make([]subscriber, len(m.subs))
	copy(subs, m.subs)
	m.mu.Unlock()

	m.notifyMu.Lock()
	defer m.notifyMu.Unlock()
	if seq <= m.notified {
		return true
	}
	m.notified = seq
	for _, s := range subs {
		s.fn(next)
	}
	return true
}

// addEvent adds an event to the ring buffer.
func (m *Manager) addEvent(e Event) {
	if len(m.events) < m.maxEvents {
		m.events = append(m.events, e)
	} else {
		m.events[m.eventWriteAt] = e
		m.eventWriteAt = (m.eventWriteAt + 1) % m.maxEvents
	}
}

// Snapshot represents an immutable snapshot of current state.
type Snapshot struct {
	SessionID string
	Session   Session
	Events    []Event
}

// Snapshot returns a consistent snapshot of current state.
func (m *Manager) Snapshot() Snapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return Snapshot{
		SessionID: m.id.String(),
		Session:   m.session,
		Events:    m.getEventsOrdered(),
	}
}

// getEventsOrdered returns events in chronological order.
func (m *Manager) getEventsOrdered() []Event {
	if len(m.events) == 0 {
		return nil
	}

	if len(m.events) < m.maxEvents {
		result := make([]Event, len(m.events))
		copy(result, m.events)
		return result
	}

	// Ring buffer is full, reorder from oldest to newest
	result := make([]Event, m.maxEvents)
	for i := 0; i < m.maxEvents; i++ {
		idx := (m.eventWriteAt + i) % m.maxEvents
		result[i] = m.events[idx]
	}
	return result
}

// RecentEvents returns the last n events.
func (m *Manager) RecentEvents(n int) []Event {
	m.mu.RLock()
	defer m.mu.RUnlock()

	all := m.getEventsOrdered()
	if len(all) <= n {
		return all
	}
	return all[len(all)-n:]
}
