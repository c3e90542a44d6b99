// internal/web/contact.go
//
// Folio – Web layer: contact submission handlers.
//
// Context
//   Two entry points feed the same pipeline.  The page flow (POST /contact)
//   goes through the visitor's session controller and redirects back to
//   GET /contact, which re-renders whatever the controller now holds: field
//   errors, a success banner with a cleared form, or an error banner with
//   the form intact for retry.  The JSON API (POST /api/contact) is
//   stateless: validate, deliver, answer.
//
//   After a delivered submission both paths archive it (best-effort) and
//   notify the owner via the dispatcher.
//
// Style
//   Two-space sentence spacing, Oxford comma, terse inline notes.
//
//------------------------------------------------------------------------------

package web

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/averyhall/folio/internal/config"
	"github.com/averyhall/folio/internal/contact"
	"github.com/averyhall/folio/internal/form"
	"github.com/averyhall/folio/internal/metrics"
	"github.com/averyhall/folio/internal/notify"
	"github.com/averyhall/folio/internal/requestinfo"
)

//
// page flow
//

func (h *Handler) contactSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}
	if !form.VerifyToken(r.PostFormValue("csrf_token")) {
		http.Error(w, "security token invalid, please reload the page", http.StatusForbidden)
		return
	}

	ctrl := h.sessions.controller(w, r)

	// Feed every posted value through Edit so stale field errors clear the
	// same way they would on a live page.
	for _, f := range contact.Fields {
		ctrl.Edit(f, r.PostFormValue(string(f)))
	}

	sent := ctrl.FormSnapshot() // Submit resets the form on success
	st, err := ctrl.Submit(r.Context())

	switch {
	case errors.Is(err, contact.ErrSubmitPending):
		// Double post; the first one is still in flight.
	case err != nil:
		metrics.SubmissionsFailed.Inc()
		h.log.Warnw("contact delivery failed", "err", err)
	case st.Status == contact.StatusSuccess:
		metrics.SubmissionsAccepted.Inc()
		h.afterDelivery(r, sent)
	default:
		// Validation kept us in idle; the re-rendered page shows the errors.
		metrics.SubmissionsRejected.Inc()
	}

	http.Redirect(w, r, "/contact", http.StatusSeeOther)
}

//
// JSON API
//

func (h *Handler) contactSubmitJSON(w http.ResponseWriter, r *http.Request) {
	var fm contact.Form
	if err := json.NewDecoder(r.Body).Decode(&fm); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"message": "malformed JSON body"})
		return
	}

	if errs, ok := contact.ValidateForm(&fm); !ok {
		metrics.SubmissionsRejected.Inc()
		writeJSON(w, http.StatusUnprocessableEntity, map[string]any{"errors": errs})
		return
	}

	if err := h.sender.Send(r.Context(), fm); err != nil {
		metrics.SubmissionsFailed.Inc()
		h.log.Warnw("contact delivery failed", "err", err)

		msg := contact.GenericErrorMessage
		var de *contact.DeliveryError
		if errors.As(err, &de) && de.Message != "" {
			msg = de.Message
		}
		writeJSON(w, http.StatusBadGateway, map[string]any{"status": "error", "message": msg})
		return
	}

	metrics.SubmissionsAccepted.Inc()
	h.afterDelivery(r, fm)
	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "success",
		"message": contact.SuccessMessage,
	})
}

//
// post-delivery pipeline (archive + notify)
//

// afterDelivery archives the submission and queues owner notifications.
// Both are best-effort: the visitor already got their answer.
func (h *Handler) afterDelivery(r *http.Request, fm contact.Form) {
	sub := contact.Submission{
		Name:    fm.Name,
		Email:   fm.Email,
		Subject: fm.Subject,
		Message: fm.Message,
	}
	if ri := requestinfo.FromContext(r.Context()); ri != nil {
		sub.Browser = ri.UA.Browser
		sub.OS = ri.UA.OS
		sub.Device = ri.UA.Device
		sub.CountryISO = ri.Geo.CountryISO
		sub.City = ri.Geo.City
		sub.ReceivedAt = ri.Timestamp
	}

	if h.store != nil {
		// Detached context: archiving may outlive the request.
		if err := h.store.Insert(context.WithoutCancel(r.Context()), &sub); err != nil {
			h.log.Errorw("submission archive failed", "err", err)
		}
	}

	if h.notifier == nil {
		return
	}
	if to := h.cfg.Contact.NotifyEmail; to != "" {
		body := fmt.Sprintf("From: %s <%s>\nSubject: %s\n\n%s",
			fm.Name, fm.Email, fm.Subject, fm.Message)
		if err := h.notifier.EnqueueEmail(r.Context(), notify.Email{
			To:      []string{to},
			Subject: "New contact submission: " + fm.Subject,
			Text:    body,
		}); err != nil {
			h.log.Warnw("notify email not queued", "err", err)
		}
	}
	if url := h.cfg.Contact.NotifyWebhook; url != "" {
		payload, err := json.Marshal(sub)
		if err == nil {
			err = h.notifier.EnqueueWebhook(r.Context(), notify.Webhook{URL: url, Payload: payload})
		}
		if err != nil {
			h.log.Warnw("notify webhook not queued", "err", err)
		}
	}
}

//
// owner archive listing
//

func (h *Handler) listSubmissions(w http.ResponseWriter, r *http.Request) {
	// Read the token from the live snapshot so a SIGHUP rotation takes effect
	// without a restart.  Before Load has populated the cache (direct handler
	// construction) the boot-time config applies.
	token := h.cfg.Contact.AdminToken
	if live := config.Get(); live != nil {
		token = live.Contact.AdminToken
	}
	if token == "" || r.Header.Get("Authorization") != "Bearer "+token {
		writeJSON(w, http.StatusUnauthorized, map[string]any{"message": "unauthorized"})
		return
	}
	if h.store == nil {
		writeJSON(w, http.StatusNotFound, map[string]any{"message": "archive disabled"})
		return
	}

	subs, err := h.store.Recent(r.Context(), 50)
	if err != nil {
		h.log.Errorw("archive listing failed", "err", err)
		writeJSON(w, http.StatusInternalServerError, map[string]any{"message": "archive unavailable"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"submissions": subs})
}

//
// helpers
//

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
