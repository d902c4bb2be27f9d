package usecase

import (
	"sync"
	"time"

	"portfolio-backend/internal/domain"
	"portfolio-backend/pkg/logger"

	"github.com/google/uuid"
)

const sessionCleanupInterval = 5 * time.Minute

// FormSessionStore keeps one contact form controller per browser session.
// Drafts live only in memory and are dropped after ttl of inactivity.
type FormSessionStore struct {
	ttl         time.Duration
	maxSessions int
	now         func() time.Time

	mu       sync.Mutex
	sessions map[string]*contactForm

	stop     chan struct{}
	stopOnce sync.Once
}

// NewFormSessionStore creates the store and starts its janitor goroutine
func NewFormSessionStore(ttl time.Duration, maxSessions int) *FormSessionStore {
	s := newFormSessionStore(ttl, maxSessions, time.Now)
	go s.runCleanup(sessionCleanupInterval)
	return s
}

func newFormSessionStore(ttl time.Duration, maxSessions int, now func() time.Time) *FormSessionStore {
	if ttl <= 0 {
		ttl = 30 * time.Minute
	}
	return &FormSessionStore{
		ttl:         ttl,
		maxSessions: maxSessions,
		now:         now,
		sessions:    make(map[string]*contactForm),
		stop:        make(chan struct{}),
	}
}

// Create registers a new form built by newForm under a fresh id
func (s *FormSessionStore) Create(newForm func(id string) *contactForm) (string, *contactForm, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.maxSessions > 0 && len(s.sessions) >= s.maxSessions {
		s.evictExpiredLocked()
		if len(s.sessions) >= s.maxSessions {
			return "", nil, domain.ErrTooManySessions
		}
	}

	id := uuid.NewString()
	form := newForm(id)
	form.now = s.now
	form.lastActive = s.now()
	s.sessions[id] = form
	return id, form, nil
}

func (s *FormSessionStore) Get(id string) (*contactForm, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	form, ok := s.sessions[id]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	if s.expired(form) {
		delete(s.sessions, id)
		return nil, domain.ErrSessionNotFound
	}
	return form, nil
}

// Delete drops the session. An in-flight submit still completes.
func (s *FormSessionStore) Delete(id string) error {
	s.mu.Lock()
	form, ok := s.sessions[id]
	delete(s.sessions, id)
	s.mu.Unlock()

	if !ok {
		return domain.ErrSessionNotFound
	}
	_ = form.Reset()
	return nil
}

func (s *FormSessionStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// Close stops the janitor
func (s *FormSessionStore) Close() {
	s.stopOnce.Do(func() { close(s.stop) })
}

func (s *FormSessionStore) runCleanup(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.stop:
			return
		case <-ticker.C:
			s.mu.Lock()
			removed := s.evictExpiredLocked()
			s.mu.Unlock()
			if removed > 0 {
				logger.Log.Debug("Expired contact form sessions removed", "count", removed)
			}
		}
	}
}

func (s *FormSessionStore) evictExpiredLocked() int {
	removed := 0
	for id, form := range s.sessions {
		if s.expired(form) {
			delete(s.sessions, id)
			removed++
		}
	}
	return removed
}

// expired never reports a form with a submit in flight
func (s *FormSessionStore) expired(form *contactForm) bool {
	lastActive, evictable := form.idleSince()
	return evictable && s.now().Sub(lastActive) > s.ttl
}
