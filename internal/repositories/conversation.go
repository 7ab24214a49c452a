package repositories

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/sgladkov2017/currency-converter-agent/internal/models"
)

type session struct {
	mu       sync.Mutex
	messages []models.Message
	lastSeen time.Time
}

// ConversationRepository keeps per-session message history in memory.
// Sessions idle past the TTL are dropped lazily on next access; there is
// no background sweeper.
type ConversationRepository struct {
	mu       sync.RWMutex
	sessions map[string]*session
	ttl      time.Duration
	maxLen   int
	now      func() time.Time
}

// NewConversationRepository creates a store with the given idle TTL and
// per-session history cap.
func NewConversationRepository(ttl time.Duration, maxLen int) *ConversationRepository {
	return &ConversationRepository{
		sessions: make(map[string]*session),
		ttl:      ttl,
		maxLen:   maxLen,
		now:      time.Now,
	}
}

// GetOrCreate returns sessionID, creating the session under that id when it
// does not exist yet. A fresh uuid is generated only when no id is supplied.
// An expired session is treated as gone and restarts fresh under the same id.
func (r *ConversationRepository) GetOrCreate(sessionID string) string {
	if sessionID == "" {
		sessionID = uuid.New().String()
	} else if r.lookup(sessionID) != nil {
		return sessionID
	}

	r.mu.Lock()
	if _, ok := r.sessions[sessionID]; !ok {
		r.sessions[sessionID] = &session{lastSeen: r.now()}
	}
	r.mu.Unlock()
	return sessionID
}

// Append records one message. Unknown session ids create the session, so a
// session that expired mid-conversation restarts cleanly.
func (r *ConversationRepository) Append(sessionID, role, text string) {
	s := r.lookup(sessionID)
	if s == nil {
		r.mu.Lock()
		// Insert-if-absent: a concurrent Append may have created the
		// session already, adopt it instead of overwriting.
		if existing, ok := r.sessions[sessionID]; ok {
			s = existing
		} else {
			s = &session{}
			r.sessions[sessionID] = s
		}
		r.mu.Unlock()
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.messages = append(s.messages, models.Message{
		Role:      role,
		Text:      text,
		Timestamp: r.now().UTC(),
	})
	if r.maxLen > 0 && len(s.messages) > r.maxLen {
		s.messages = s.messages[len(s.messages)-r.maxLen:]
	}
	s.lastSeen = r.now()
}

// History returns a copy of the session's messages in insertion order.
// Unknown or expired sessions yield an empty history.
func (r *ConversationRepository) History(sessionID string) []models.Message {
	s := r.lookup(sessionID)
	if s == nil {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Message, len(s.messages))
	copy(out, s.messages)
	return out
}

// Clear drops the session's history. Clearing an unknown session is a no-op.
func (r *ConversationRepository) Clear(sessionID string) {
	r.mu.Lock()
	delete(r.sessions, sessionID)
	r.mu.Unlock()
}

// lookup finds a live session, expiring it if idle past the TTL.
func (r *ConversationRepository) lookup(sessionID string) *session {
	r.mu.RLock()
	s, ok := r.sessions[sessionID]
	r.mu.RUnlock()
	if !ok {
		return nil
	}

	s.mu.Lock()
	expired := r.ttl > 0 && r.now().Sub(s.lastSeen) > r.ttl
	s.mu.Unlock()
	if expired {
		r.mu.Lock()
		// Only delete the entry we judged expired; the id may have been
		// recreated by a concurrent caller in the meantime.
		if r.sessions[sessionID] == s {
			delete(r.sessions, sessionID)
		}
		r.mu.Unlock()
		return nil
	}
	return s
}
