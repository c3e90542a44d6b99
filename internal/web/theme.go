// internal/web/theme.go
//
// Folio – Web layer: theme preference endpoint.
//
// Context
//   The header of every page carries a tiny <form> posting here.  The
//   handler rebuilds the visitor's theme store over the request's cookie,
//   applies the requested change, and bounces back to the page the visitor
//   came from.  The next render picks the marker up from the cookie, so the
//   flip is visible immediately without any client scripting.
//
// Style
//   Two-space sentence spacing, Oxford comma, terse inline notes.
//
//------------------------------------------------------------------------------

package web

import (
	"net/http"
	"strings"

	"github.com/averyhall/folio/internal/metrics"
	"github.com/averyhall/folio/internal/theme"
)

// themeUpdate handles POST /theme.  The "mode" value is "light", "dark", or
// "toggle"; anything else falls back to toggle, the header button's default.
func (h *Handler) themeUpdate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}

	root := &theme.MarkerRoot{}
	store := theme.NewStore(theme.NewCookieStorage(w, r), root, h.log)
	store.Initialize()

	switch mode := strings.ToLower(r.PostFormValue("mode")); mode {
	case string(theme.Light), string(theme.Dark):
		store.Set(theme.Preference(mode))
	default:
		store.Toggle()
	}
	metrics.ThemeToggles.Inc()

	target := r.Referer()
	if target == "" {
		target = "/"
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}
