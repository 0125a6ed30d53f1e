package session

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/angelcm/onboard-dash-go/internal/models"
)

// Filter dimension names accepted by Set. These are the wire names used
// by the filter-change endpoint.
const (
	DimCountry          = "country"
	DimSubscriptionType = "subscription_type"
	DimStatus           = "onboarding_status"
	DimChannel          = "channel"
	DimRegisteredRange  = "registered_range"
)

// Change updates exactly one filter dimension. For categorical
// dimensions a nil Value clears the filter back to "All". From/To are
// only read for DimRegisteredRange.
type Change struct {
	Dimension string
	Value     *string
	From, To  time.Time
}

// Session owns one user's FilterState. All access goes through the
// mutex so Reset is atomic: a reader never observes a partially reset
// state.
type Session struct {
	mu       sync.Mutex
	defaults models.FilterState
	state    models.FilterState
}

func New(defaults models.FilterState) *Session {
	return &Session{defaults: defaults, state: defaults}
}

// State returns a copy of the current FilterState.
func (s *Session) State() models.FilterState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Set applies a single-dimension change. Unknown dimensions and invalid
// onboarding statuses are rejected; all other values are accepted even
// when absent from the dataset (they just yield an empty subset).
func (s *Session) Set(c Change) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch c.Dimension {
	case DimCountry:
		s.state.Country = c.Value
	case DimSubscriptionType:
		s.state.SubscriptionType = c.Value
	case DimChannel:
		s.state.Channel = c.Value
	case DimStatus:
		if c.Value == nil {
			s.state.Status = nil
			return nil
		}
		st := models.OnboardStatus(*c.Value)
		if st != models.StatusOnboarded && st != models.StatusNotOnboarded {
			return fmt.Errorf("invalid onboarding status %q", *c.Value)
		}
		s.state.Status = &st
	case DimRegisteredRange:
		s.state.RegisteredFrom = c.From
		s.state.RegisteredTo = c.To
	default:
		return fmt.Errorf("unknown filter dimension %q", c.Dimension)
	}
	return nil
}

// Reset restores the startup defaults for every dimension at once.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = s.defaults
}

// Manager hands out isolated sessions so concurrent users never share
// filter state.
type Manager struct {
	mu       sync.Mutex
	defaults models.FilterState
	sessions map[string]*Session
}

func NewManager(defaults models.FilterState) *Manager {
	return &Manager{defaults: defaults, sessions: make(map[string]*Session)}
}

// Get returns the session for id, creating it on first use. An empty id
// allocates a fresh session under a generated uuid; the id is returned
// so the client can keep it.
func (m *Manager) Get(id string) (*Session, string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if id == "" {
		id = uuid.NewString()
	}
	s, ok := m.sessions[id]
	if !ok {
		s = New(m.defaults)
		m.sessions[id] = s
	}
	return s, id
}
