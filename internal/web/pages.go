// internal/web/pages.go
//
// Folio – Web layer: page rendering.
//
// Context
//   Pages are rendered server-side from the shared template set.  Every page
//   gets a head.Builder seeded with the site defaults, the theme marker for
//   the <html> class attribute, and the site identity block.  The contact
//   page additionally renders the form from its FieldSpec declaration with
//   the session's current prefill, field errors, and banner state.
//
// Style
//   Two-space sentence spacing, Oxford comma, terse inline notes.
//
//------------------------------------------------------------------------------

package web

import (
	"encoding/json"
	"html/template"
	"net/http"

	"github.com/averyhall/folio/internal/config"
	"github.com/averyhall/folio/internal/contact"
	"github.com/averyhall/folio/internal/form"
	"github.com/averyhall/folio/internal/head"
	"github.com/averyhall/folio/internal/theme"
)

// pageData is the payload every page template receives.
type pageData struct {
	Head       *head.Builder
	Site       config.Site
	ThemeClass string // "dark" or "light", emitted on <html>

	// Contact page only.
	Form  template.HTML
	State contact.State
}

// basePageData seeds head defaults and resolves the theme for this request.
func (h *Handler) basePageData(w http.ResponseWriter, r *http.Request) pageData {
	root := &theme.MarkerRoot{}
	store := theme.NewStore(theme.NewCookieStorage(w, r), root, h.log)
	store.Initialize()

	hb := head.New()
	hb.SetTitle(h.cfg.Site.Title)
	hb.Meta(`<meta charset="utf-8">`)
	hb.Meta(`<meta name="viewport" content="width=device-width, initial-scale=1">`)
	hb.Link(`<link rel="icon" href="/favicon.ico">`)

	return pageData{
		Head:       hb,
		Site:       h.cfg.Site,
		ThemeClass: root.Class(),
	}
}

func (h *Handler) homePage(w http.ResponseWriter, r *http.Request) {
	data := h.basePageData(w, r)

	// Person block for search engines.
	if h.cfg.Site.Owner != "" {
		ld, err := json.Marshal(map[string]string{
			"@context": "https://schema.org",
			"@type":    "Person",
			"name":     h.cfg.Site.Owner,
		})
		if err == nil {
			data.Head.JSONLD(string(ld))
		}
	}

	if err := h.views.Render(w, "home", data); err != nil {
		h.renderError(w, err)
	}
}

func (h *Handler) contactPage(w http.ResponseWriter, r *http.Request) {
	ctrl := h.sessions.controller(w, r)
	data := h.basePageData(w, r)
	data.Head.SetTitle(h.cfg.Site.Title + " – Contact")

	var err error
	data.Form, err = h.renderContactForm(ctrl)
	if err != nil {
		h.renderError(w, err)
		return
	}
	data.State = ctrl.State()

	if err := h.views.Render(w, "contact", data); err != nil {
		h.renderError(w, err)
	}
}

// renderContactForm converts the session's snapshot into form markup.
func (h *Handler) renderContactForm(ctrl *contact.Controller) (template.HTML, error) {
	fm := ctrl.FormSnapshot()
	errs := ctrl.FieldErrors()

	prefill := make(map[string]string, len(contact.Fields))
	msgs := make(map[string]string, len(errs))
	for _, f := range contact.Fields {
		prefill[string(f)] = fm.Value(f)
		if m, ok := errs[f]; ok {
			msgs[string(f)] = m
		}
	}

	return form.RenderFields(contactFields, form.RenderOptions{
		Prefill: prefill,
		Errors:  msgs,
	})
}

// renderError logs and masks template failures.  End-users never see
// internals.
func (h *Handler) renderError(w http.ResponseWriter, err error) {
	h.log.Errorw("render failed", "err", err)
	http.Error(w, "template error", http.StatusInternalServerError)
}
