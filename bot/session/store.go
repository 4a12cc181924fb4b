package session

import "sync"

// Store maps operator ids to their active sessions. The map itself is
// guarded by the mutex; a Session value is only ever touched by its own
// operator's updates, which the bot processes one at a time per sender.
type Store struct {
	mu       sync.RWMutex
	sessions map[int64]*Session
}

// NewStore constructs an empty Store.
func NewStore() *Store {
	return &Store{sessions: make(map[int64]*Session)}
}

// Begin opens a fresh session in PhaseAwaitingMedia for the operator,
// replacing any existing one.
func (s *Store) Begin(operatorID int64) *Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess := &Session{Phase: PhaseAwaitingMedia}
	s.sessions[operatorID] = sess
	return sess
}

// Get returns the operator's active session, if any.
func (s *Store) Get(operatorID int64) (*Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, ok := s.sessions[operatorID]
	return sess, ok
}

// Clear removes the operator's session.
func (s *Store) Clear(operatorID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, operatorID)
}
