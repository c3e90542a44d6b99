// internal/theme/cookie.go
//
// Folio – Theme subsystem: cookie-backed storage.
//
// Context
//   In the web flow the visitor's browser is the client-local store, so the
//   Storage interface is implemented over one cookie.  Reads come from the
//   request; writes go out on the response.  The cookie is intentionally not
//   HttpOnly: the preference is presentation state, and inline scripts may
//   read it to avoid a flash of the wrong mode before hydration.
//
// Style
//   Two-space sentence spacing, Oxford comma, terse inline notes.
//
//------------------------------------------------------------------------------

package theme

import (
	"net/http"
	"time"
)

// CookieStorage adapts one request/response pair to the Storage interface.
type CookieStorage struct {
	r *http.Request
	w http.ResponseWriter
}

// NewCookieStorage returns storage scoped to one request.
func NewCookieStorage(w http.ResponseWriter, r *http.Request) *CookieStorage {
	return &CookieStorage{r: r, w: w}
}

// Get reads the named cookie.  A missing cookie is (“”, false, nil), not an
// error; http.ErrNoCookie is the only error ReadCookie can return.
func (c *CookieStorage) Get(key string) (string, bool, error) {
	ck, err := c.r.Cookie(key)
	if err != nil || ck.Value == "" {
		return "", false, nil
	}
	return ck.Value, true, nil
}

// Set writes the cookie for a year.  SameSite Lax keeps the preference on
// top-level navigations without leaking it cross-site.
func (c *CookieStorage) Set(key, value string) error {
	http.SetCookie(c.w, &http.Cookie{
		Name:     key,
		Value:    value,
		Path:     "/",
		Secure:   c.r.TLS != nil,
		SameSite: http.SameSiteLaxMode,
		Expires:  time.Now().Add(365 * 24 * time.Hour),
	})
	return nil
}
