package handlers

import (
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
	"github.com/google/uuid"

	"github.com/jjenkins/gazette/internal/query"
)

// SessionCookie names the cookie carrying the session id
const SessionCookie = "gazette_session"

type session struct {
	mu       sync.Mutex
	state    *query.State
	lastSeen time.Time
}

// Sessions maps session ids to their pagination state. Requests from one
// session run one at a time; different sessions run in parallel.
type Sessions struct {
	mu       sync.Mutex
	sessions map[string]*session
	now      func() time.Time
}

// NewSessions creates an empty session registry
func NewSessions() *Sessions {
	return &Sessions{
		sessions: make(map[string]*session),
		now:      time.Now,
	}
}

// With runs fn with the request's pagination state, creating a session and
// setting its cookie when the request carries no known id.
func (s *Sessions) With(c *fiber.Ctx, fn func(state *query.State)) {
	sess := s.get(c)

	sess.mu.Lock()
	defer sess.mu.Unlock()
	fn(sess.state)
}

func (s *Sessions) get(c *fiber.Ctx) *session {
	// The id becomes a map key, so it must not alias the request buffer
	id := utils.CopyString(c.Cookies(SessionCookie))
	if _, err := uuid.Parse(id); err != nil {
		id = ""
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if sess, ok := s.sessions[id]; ok && id != "" {
		sess.lastSeen = s.now()
		return sess
	}

	if id == "" {
		id = uuid.NewString()
	}
	sess := &session{state: query.NewState(), lastSeen: s.now()}
	s.sessions[id] = sess

	c.Cookie(&fiber.Cookie{
		Name:     SessionCookie,
		Value:    id,
		Path:     "/",
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
	return sess
}

// Prune forgets sessions idle for longer than maxIdle and returns how many
// were removed.
func (s *Sessions) Prune(maxIdle time.Duration) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := s.now().Add(-maxIdle)
	removed := 0
	for id, sess := range s.sessions {
		if sess.lastSeen.Before(cutoff) {
			delete(s.sessions, id)
			removed++
		}
	}
	return removed
}

// Len returns the number of live sessions
func (s *Sessions) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}
