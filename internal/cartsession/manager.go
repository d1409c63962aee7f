package cartsession

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	pkgerrors "github.com/Gubchik123/LapZone/pkg/errors"
)

const janitorInterval = time.Minute

// Manager owns the live page sessions. Sessions expire after their TTL and
// a background janitor reaps them; Get never returns an expired session.
type Manager struct {
	mu       sync.RWMutex
	sessions map[uuid.UUID]*Session
	ttl      time.Duration

	stop     chan struct{}
	stopOnce sync.Once
}

// NewManager builds a manager and starts its janitor goroutine.
func NewManager(ttl time.Duration) (*Manager, error) {
	if ttl <= 0 {
		return nil, fmt.Errorf("session ttl must be positive")
	}
	m := &Manager{
		sessions: make(map[uuid.UUID]*Session),
		ttl:      ttl,
		stop:     make(chan struct{}),
	}
	go m.janitor()
	return m, nil
}

// TTL reports the configured session lifetime.
func (m *Manager) TTL() time.Duration {
	return m.ttl
}

// Put registers a session.
func (m *Manager) Put(s *Session) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[s.ID] = s
}

// Get returns the session or a NOT_FOUND error when it is unknown or has
// expired.
func (m *Manager) Get(id uuid.UUID) (*Session, error) {
	m.mu.RLock()
	s, ok := m.sessions[id]
	m.mu.RUnlock()
	if !ok || s.expired(time.Now()) {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "cart session not found")
	}
	return s, nil
}

// Delete drops a session. Deleting an unknown id is a no-op.
func (m *Manager) Delete(id uuid.UUID) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
}

// Len reports how many sessions are held, expired ones included.
func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// Close stops the janitor and drops all sessions.
func (m *Manager) Close() {
	m.stopOnce.Do(func() {
		close(m.stop)
	})
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions = make(map[uuid.UUID]*Session)
}

func (m *Manager) janitor() {
	ticker := time.NewTicker(janitorInterval)
	defer ticker.Stop()
	for {
		select {
		case <-m.stop:
			return
		case now := <-ticker.C:
			m.reap(now)
		}
	}
}

func (m *Manager) reap(now time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, s := range m.sessions {
		if s.expired(now) {
			delete(m.sessions, id)
		}
	}
}
