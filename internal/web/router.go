// internal/web/router.go
//
// Folio – Web layer: handler wiring.
//
// Context
//   One Handler owns everything a request needs: the parsed template set,
//   the form-session cache, the contact pipeline (sender, archive store,
//   notifier), and the site config.  Routes() assembles the chi router used
//   by cmd/web.
//
// Routes
//   GET  /                 – home page
//   GET  /contact          – contact page (form, errors, banner)
//   POST /contact          – form post, PRG flow
//   POST /api/contact      – JSON submission API
//   POST /theme            – set or toggle the display preference
//   GET  /api/submissions  – owner-only archive listing (bearer token)
//   GET  /healthz          – liveness probe
//   GET  /assets/*         – static files under <root>/web/assets
//
// Style
//   Two-space sentence spacing, Oxford comma, terse inline notes.
//
//------------------------------------------------------------------------------

package web

import (
	"net/http"
	"path/filepath"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/averyhall/folio/internal/config"
	"github.com/averyhall/folio/internal/contact"
	"github.com/averyhall/folio/internal/form"
	"github.com/averyhall/folio/internal/notify"
	"github.com/averyhall/folio/internal/view"
)

// contactFields declares the contact form.  The Kind tag picks the widget;
// MinLength mirrors the server-side rules as client hints.
var contactFields = []form.FieldSpec{
	{Name: "name", Label: "Name", Kind: form.KindText, Placeholder: "Your name", MinLength: 2},
	{Name: "email", Label: "Email", Kind: form.KindEmail, Placeholder: "you@example.com"},
	{Name: "subject", Label: "Subject", Kind: form.KindText, Placeholder: "What is this about?", MinLength: 3},
	{Name: "message", Label: "Message", Kind: form.KindTextarea, Placeholder: "Tell me about your project…", MinLength: 10, Rows: 6},
}

// Handler bundles the web layer's collaborators.
type Handler struct {
	cfg      *config.Config
	views    *view.Engine
	sessions *sessions
	sender   contact.Sender
	store    *contact.Store // nil disables the archive
	notifier *notify.Dispatcher
	log      *zap.SugaredLogger
}

// New wires a Handler.  store may be nil when no archive DSN is configured.
func New(cfg *config.Config, views *view.Engine, sender contact.Sender,
	store *contact.Store, notifier *notify.Dispatcher, log *zap.SugaredLogger) *Handler {

	clearAfter := contact.DefaultClearAfter
	if cfg.Contact.ClearAfterSeconds > 0 {
		clearAfter = time.Duration(cfg.Contact.ClearAfterSeconds) * time.Second
	}

	return &Handler{
		cfg:   cfg,
		views: views,
		sessions: newSessions(cfg.Sessions.MaxEntries, func() *contact.Controller {
			return contact.NewController(sender, contact.WithClearAfter(clearAfter))
		}),
		sender:   sender,
		store:    store,
		notifier: notifier,
		log:      log,
	}
}

// Routes assembles the router.
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/", h.homePage)
	r.Get("/contact", h.contactPage)
	r.Post("/contact", h.contactSubmit)
	r.Post("/api/contact", h.contactSubmitJSON)
	r.Post("/theme", h.themeUpdate)
	r.Get("/api/submissions", h.listSubmissions)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	// Static assets live under <root>/web/assets.
	if h.cfg.Paths.Root != "" {
		dir := http.Dir(filepath.Join(h.cfg.Paths.Root, "web", "assets"))
		r.Handle("/assets/*", http.StripPrefix("/assets/", http.FileServer(dir)))
	}

	return r
}
