package chat

import (
	"sync"

	"github.com/pmoncada/gemchat/internal/model/chat"
)

// maxTurns caps how much history a session retains; the oldest turns are
// evicted first once the cap is reached.
const maxTurns = 10

// Store keeps per-session conversation history in process memory. Sessions are
// created lazily on first append and live until cleared or the process exits.
type Store struct {
	mu       sync.RWMutex
	sessions map[string][]chat.Turn
}

// NewStore bootstraps an empty in-memory session store.
func NewStore() *Store {
	return &Store{sessions: make(map[string][]chat.Turn)}
}

// Get returns a copy of the stored turns, oldest first. Unknown sessions yield
// an empty slice.
func (s *Store) Get(sessionID string) []chat.Turn {
	s.mu.RLock()
	defer s.mu.RUnlock()

	turns := s.sessions[sessionID]
	copied := make([]chat.Turn, len(turns))
	copy(copied, turns)
	return copied
}

// Append adds turns to the session, creating it on first use, then trims the
// history to the newest maxTurns entries.
func (s *Store) Append(sessionID string, turns ...chat.Turn) {
	if len(turns) == 0 {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	history := append(s.sessions[sessionID], turns...)
	if len(history) > maxTurns {
		history = history[len(history)-maxTurns:]
	}
	s.sessions[sessionID] = history
}

// Clear drops the session and reports whether it existed.
func (s *Store) Clear(sessionID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, ok := s.sessions[sessionID]
	delete(s.sessions, sessionID)
	return ok
}
