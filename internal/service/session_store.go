package service

import (
	"sync"
	"time"

	"github.com/noah-isme/student-enlistment-api/internal/enlistment"
	"github.com/noah-isme/student-enlistment-api/internal/models"
)

// enlistmentSession owns one student's ledger. mu serialises every ledger
// call; expiresAt belongs to the store and is guarded by the store lock.
type enlistmentSession struct {
	mu           sync.Mutex
	studentID    string
	profile      models.StudentProfile
	courseFilter string
	ledger       *enlistment.Ledger
	expiresAt    time.Time
}

// reset replaces the session state with a freshly loaded one. The caller
// holds mu, so waiting operations see the new ledger.
func (e *enlistmentSession) reset(loaded *enlistmentSession) {
	e.profile = loaded.profile
	e.courseFilter = loaded.courseFilter
	e.ledger = loaded.ledger
}

// sessionStore keeps sessions in memory with a sliding TTL.
type sessionStore struct {
	ttl   time.Duration
	now   func() time.Time
	mu    sync.RWMutex
	items map[string]*enlistmentSession
}

func newSessionStore(ttl time.Duration, now func() time.Time) *sessionStore {
	return &sessionStore{
		ttl:   ttl,
		now:   now,
		items: make(map[string]*enlistmentSession),
	}
}

// Save replaces the student's session and sweeps expired ones. It returns the
// new expiry and the number of live sessions.
func (s *sessionStore) Save(session *enlistmentSession) (time.Time, int) {
	now := s.now()
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, existing := range s.items {
		if now.After(existing.expiresAt) {
			delete(s.items, id)
		}
	}
	session.expiresAt = now.Add(s.ttl)
	s.items[session.studentID] = session
	return session.expiresAt, len(s.items)
}

// Attach returns the student's live session, or stores and returns candidate
// when there is none.
func (s *sessionStore) Attach(candidate *enlistmentSession) *enlistmentSession {
	now := s.now()
	s.mu.Lock()
	defer s.mu.Unlock()
	if existing, ok := s.items[candidate.studentID]; ok && !now.After(existing.expiresAt) {
		return existing
	}
	candidate.expiresAt = now.Add(s.ttl)
	s.items[candidate.studentID] = candidate
	return candidate
}

// Get returns a live session and its extended expiry.
func (s *sessionStore) Get(studentID string) (*enlistmentSession, time.Time, bool) {
	now := s.now()
	s.mu.Lock()
	defer s.mu.Unlock()
	session, ok := s.items[studentID]
	if !ok {
		return nil, time.Time{}, false
	}
	if now.After(session.expiresAt) {
		delete(s.items, studentID)
		return nil, time.Time{}, false
	}
	session.expiresAt = now.Add(s.ttl)
	return session, session.expiresAt, true
}

func (s *sessionStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}
