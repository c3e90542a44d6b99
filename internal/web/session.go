// internal/web/session.go
//
// Folio – Web layer: form sessions.
//
// Context
//   The contact page uses a POST-redirect-GET flow, so the visitor's form
//   contents, field errors, and submission banner must survive the redirect.
//   Each visitor gets one contact.Controller, keyed by a random cookie and
//   held in a capacity-bounded LRU.  Eviction closes the controller so its
//   auto-clear timer is released; an evicted visitor simply starts a fresh
//   session on the next request.
//
// Style
//   Two-space sentence spacing, Oxford comma, terse inline notes.
//
//------------------------------------------------------------------------------

package web

import (
	"crypto/rand"
	"encoding/hex"
	"net/http"
	"sync"

	"github.com/averyhall/folio/internal/cache"
	"github.com/averyhall/folio/internal/contact"
	"github.com/averyhall/folio/internal/metrics"
)

const sessionCookie = "folio_session"

// DefaultMaxSessions bounds the session cache when config leaves it unset.
const DefaultMaxSessions = 4096

// sessions maps cookie IDs to live controllers.  The LRU itself is not
// concurrency-safe, so every access happens under mu.
type sessions struct {
	mu  sync.Mutex
	lru *cache.LRU

	newController func() *contact.Controller
}

func newSessions(capacity int, factory func() *contact.Controller) *sessions {
	if capacity < 1 {
		capacity = DefaultMaxSessions
	}
	s := &sessions{lru: cache.New(capacity), newController: factory}
	s.lru.OnEvict(func(_, val any) {
		val.(*contact.Controller).Close()
		metrics.ActiveFormSessions.Dec()
	})
	return s
}

// controller returns the visitor's controller, creating one (and setting the
// session cookie) on first contact.
func (s *sessions) controller(w http.ResponseWriter, r *http.Request) *contact.Controller {
	s.mu.Lock()
	defer s.mu.Unlock()

	if ck, err := r.Cookie(sessionCookie); err == nil && ck.Value != "" {
		if v, ok := s.lru.Get(ck.Value); ok {
			return v.(*contact.Controller)
		}
	}

	id := newSessionID()
	ctrl := s.newController()
	s.lru.Add(id, ctrl)
	metrics.ActiveFormSessions.Inc()

	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		Secure:   r.TLS != nil,
		SameSite: http.SameSiteLaxMode,
	})
	return ctrl
}

// newSessionID returns 16 random bytes hex-encoded.  rand.Read only fails
// when the OS entropy source is broken, in which case serving traffic is the
// least of our problems.
func newSessionID() string {
	b := make([]byte, 16)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}
