// internal/web/router_test.go
//
// httptest coverage for the web layer: the JSON submission API, the theme
// endpoint, the owner archive listing, form sessions, and the liveness probe.
//
// Run: go test ./internal/web -v

package web

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/averyhall/folio/internal/config"
	"github.com/averyhall/folio/internal/contact"
	"github.com/averyhall/folio/internal/form"
	"github.com/averyhall/folio/internal/theme"
	"github.com/averyhall/folio/internal/view"
)

// scriptedSender returns its configured error and remembers the last form.
type scriptedSender struct {
	err  error
	last contact.Form
}

func (s *scriptedSender) Send(_ context.Context, fm contact.Form) error {
	s.last = fm
	return s.err
}

func newTestHandler(snd contact.Sender) *Handler {
	cfg := &config.Config{}
	cfg.Contact.AdminToken = "owner-token"
	cfg.Sessions.MaxEntries = 8
	return New(cfg, nil, snd, nil, nil, zap.NewNop().Sugar())
}

// newRenderingHandler parses the real template set so page responses can be
// asserted, not just redirects.
func newRenderingHandler(t *testing.T, snd contact.Sender) *Handler {
	t.Helper()
	views, err := view.New("../../web/templates")
	if err != nil {
		t.Fatalf("parse templates: %v", err)
	}
	cfg := &config.Config{}
	cfg.Site.Title = "Avery Hall"
	cfg.Site.Owner = "Avery Hall"
	cfg.Sessions.MaxEntries = 8
	return New(cfg, views, snd, nil, nil, zap.NewNop().Sugar())
}

// postContactForm posts an urlencoded contact form carrying a fresh CSRF
// token plus the visitor's session cookie, when one is supplied.
func postContactForm(t *testing.T, h http.Handler, sess *http.Cookie,
	fields map[string]string) *httptest.ResponseRecorder {

	t.Helper()
	tok, err := form.GenerateToken()
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	vals := url.Values{"csrf_token": {tok}}
	for k, v := range fields {
		vals.Set(k, v)
	}

	req := httptest.NewRequest(http.MethodPost, "/contact", strings.NewReader(vals.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if sess != nil {
		req.AddCookie(sess)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

// sessionCookieFrom extracts the form-session cookie a response set.
func sessionCookieFrom(t *testing.T, rec *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, ck := range rec.Result().Cookies() {
		if ck.Name == sessionCookie {
			return ck
		}
	}
	t.Fatal("response did not set a session cookie")
	return nil
}

func postJSON(t *testing.T, h http.Handler, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/contact", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestContactJSON_ValidationErrors(t *testing.T) {
	snd := &scriptedSender{}
	router := newTestHandler(snd).Routes()

	rec := postJSON(t, router, `{"name":"A","email":"nope","subject":"ok?","message":"hi"}`)

	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422", rec.Code)
	}
	var body struct {
		Errors map[string]string `json:"errors"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Errors["email"] != "Please enter a valid email address" {
		t.Errorf("email error = %q", body.Errors["email"])
	}
	if _, ok := body.Errors["subject"]; ok {
		t.Error(`"ok?" is three characters and must pass`)
	}
	if snd.last != (contact.Form{}) {
		t.Error("sender must not run for an invalid body")
	}
}

func TestContactJSON_Success(t *testing.T) {
	snd := &scriptedSender{}
	router := newTestHandler(snd).Routes()

	rec := postJSON(t, router,
		`{"name":"Avery","email":"a@b.co","subject":"Hello","message":"A proper message."}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200\n%s", rec.Code, rec.Body)
	}
	var body map[string]string
	_ = json.Unmarshal(rec.Body.Bytes(), &body)
	if body["status"] != "success" || body["message"] != contact.SuccessMessage {
		t.Errorf("body = %v", body)
	}
	if snd.last.Name != "Avery" {
		t.Errorf("sender saw %#v", snd.last)
	}
}

func TestContactJSON_GenericFailureUsesSharedBanner(t *testing.T) {
	snd := &scriptedSender{err: errors.New("connection reset")}
	router := newTestHandler(snd).Routes()

	rec := postJSON(t, router,
		`{"name":"Avery","email":"a@b.co","subject":"Hello","message":"A proper message."}`)

	if rec.Code != http.StatusBadGateway {
		t.Fatalf("status = %d, want 502", rec.Code)
	}
	var body map[string]string
	_ = json.Unmarshal(rec.Body.Bytes(), &body)
	if body["message"] != contact.GenericErrorMessage {
		t.Errorf("message = %q, want the shared generic banner", body["message"])
	}
}

func TestContactJSON_DeliveryFailureSurfacesReason(t *testing.T) {
	snd := &scriptedSender{err: &contact.DeliveryError{StatusCode: 500, Message: "mailbox on fire"}}
	router := newTestHandler(snd).Routes()

	rec := postJSON(t, router,
		`{"name":"Avery","email":"a@b.co","subject":"Hello","message":"A proper message."}`)

	if rec.Code != http.StatusBadGateway {
		t.Fatalf("status = %d, want 502", rec.Code)
	}
	var body map[string]string
	_ = json.Unmarshal(rec.Body.Bytes(), &body)
	if body["status"] != "error" || body["message"] != "mailbox on fire" {
		t.Errorf("body = %v", body)
	}
}

func TestContactJSON_MalformedBody(t *testing.T) {
	router := newTestHandler(&scriptedSender{}).Routes()
	if rec := postJSON(t, router, `{"name":`); rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestContactSubmit_SuccessfulPRGFlow(t *testing.T) {
	snd := &scriptedSender{}
	h := newRenderingHandler(t, snd)
	router := h.Routes()

	rec := postContactForm(t, router, nil, map[string]string{
		"name": "Avery", "email": "a@b.co",
		"subject": "Hello", "message": "A proper message.",
	})

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want 303", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/contact" {
		t.Fatalf("Location = %q, want /contact", loc)
	}
	if snd.last.Name != "Avery" {
		t.Fatalf("sender saw %#v", snd.last)
	}

	// The redirect target re-renders from the same session: success banner
	// up, form cleared.
	sess := sessionCookieFrom(t, rec)
	req := httptest.NewRequest(http.MethodGet, "/contact", nil)
	req.AddCookie(sess)
	page := httptest.NewRecorder()
	router.ServeHTTP(page, req)

	if page.Code != http.StatusOK {
		t.Fatalf("re-render status = %d\n%s", page.Code, page.Body)
	}
	html := page.Body.String()
	if !strings.Contains(html, "Thanks for your message!") {
		t.Error("success banner missing after redirect")
	}
	if strings.Contains(html, `value="Avery"`) {
		t.Error("form must be empty after a successful submission")
	}
}

func TestContactSubmit_InvalidFormReRendersErrors(t *testing.T) {
	snd := &scriptedSender{}
	h := newRenderingHandler(t, snd)
	router := h.Routes()

	rec := postContactForm(t, router, nil, map[string]string{
		"name": "Avery Hall", "email": "not-an-address",
		"subject": "Hello", "message": "A proper message.",
	})
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want 303", rec.Code)
	}
	if snd.last != (contact.Form{}) {
		t.Fatal("sender must not run for an invalid form")
	}

	sess := sessionCookieFrom(t, rec)
	req := httptest.NewRequest(http.MethodGet, "/contact", nil)
	req.AddCookie(sess)
	page := httptest.NewRecorder()
	router.ServeHTTP(page, req)

	html := page.Body.String()
	if !strings.Contains(html, "Please enter a valid email address") {
		t.Error("field error missing after redirect")
	}
	if !strings.Contains(html, `value="Avery Hall"`) {
		t.Error("visitor input must survive the redirect for correction")
	}
}

func TestContactSubmit_DeliveryFailureShowsErrorBanner(t *testing.T) {
	snd := &scriptedSender{err: &contact.DeliveryError{StatusCode: 500, Message: "mailbox on fire"}}
	h := newRenderingHandler(t, snd)
	router := h.Routes()

	rec := postContactForm(t, router, nil, map[string]string{
		"name": "Avery", "email": "a@b.co",
		"subject": "Hello", "message": "A proper message.",
	})
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want 303", rec.Code)
	}

	sess := sessionCookieFrom(t, rec)
	req := httptest.NewRequest(http.MethodGet, "/contact", nil)
	req.AddCookie(sess)
	page := httptest.NewRecorder()
	router.ServeHTTP(page, req)

	html := page.Body.String()
	if !strings.Contains(html, "mailbox on fire") {
		t.Error("error banner missing after redirect")
	}
	if !strings.Contains(html, `value="Avery"`) {
		t.Error("form must stay intact after a failed delivery")
	}
}

func TestContactSubmit_RejectsInvalidCSRFToken(t *testing.T) {
	router := newTestHandler(&scriptedSender{}).Routes()

	vals := url.Values{
		"csrf_token": {"forged"},
		"name":       {"Avery"}, "email": {"a@b.co"},
		"subject": {"Hello"}, "message": {"A proper message."},
	}
	req := httptest.NewRequest(http.MethodPost, "/contact", strings.NewReader(vals.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Errorf("status = %d, want 403", rec.Code)
	}
}

func TestThemeUpdate_SetsCookieAndRedirects(t *testing.T) {
	router := newTestHandler(&scriptedSender{}).Routes()

	req := httptest.NewRequest(http.MethodPost, "/theme", strings.NewReader("mode=light"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Referer", "/contact")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want 303", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/contact" {
		t.Errorf("Location = %q, want the referring page", loc)
	}

	var pref string
	for _, ck := range rec.Result().Cookies() {
		if ck.Name == theme.StorageKey {
			pref = ck.Value // the last write wins
		}
	}
	if pref != string(theme.Light) {
		t.Errorf("persisted preference = %q, want light", pref)
	}
}

func TestThemeUpdate_DefaultIsToggle(t *testing.T) {
	router := newTestHandler(&scriptedSender{}).Routes()

	// Visitor already on dark; an unqualified post flips to light.
	req := httptest.NewRequest(http.MethodPost, "/theme", strings.NewReader(""))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.AddCookie(&http.Cookie{Name: theme.StorageKey, Value: string(theme.Dark)})
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	var pref string
	for _, ck := range rec.Result().Cookies() {
		if ck.Name == theme.StorageKey {
			pref = ck.Value
		}
	}
	if pref != string(theme.Light) {
		t.Errorf("persisted preference = %q, want light", pref)
	}
}

func TestListSubmissions_RequiresBearerToken(t *testing.T) {
	router := newTestHandler(&scriptedSender{}).Routes()

	req := httptest.NewRequest(http.MethodGet, "/api/submissions", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("anonymous status = %d, want 401", rec.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/submissions", nil)
	req.Header.Set("Authorization", "Bearer owner-token")
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	// Store is nil in this fixture, so an authorized call reports the archive
	// as disabled rather than unauthorized.
	if rec.Code != http.StatusNotFound {
		t.Errorf("authorized status = %d, want 404", rec.Code)
	}
}

func TestSessions_CookieReusesController(t *testing.T) {
	made := 0
	s := newSessions(4, func() *contact.Controller {
		made++
		return contact.NewController(&scriptedSender{})
	})

	req := httptest.NewRequest(http.MethodGet, "/contact", nil)
	rec := httptest.NewRecorder()
	first := s.controller(rec, req)

	cookies := rec.Result().Cookies()
	if len(cookies) == 0 || cookies[0].Name != sessionCookie {
		t.Fatalf("first contact must set %s, got %v", sessionCookie, cookies)
	}

	again := httptest.NewRequest(http.MethodGet, "/contact", nil)
	again.AddCookie(cookies[0])
	if second := s.controller(httptest.NewRecorder(), again); second != first {
		t.Error("same cookie must return the same controller")
	}
	if made != 1 {
		t.Errorf("factory ran %d times, want 1", made)
	}
}

func TestSessions_EvictionClosesController(t *testing.T) {
	s := newSessions(1, func() *contact.Controller {
		return contact.NewController(&scriptedSender{})
	})

	s.controller(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	// Second visitor evicts the first; Close must not panic and the cache
	// stays at capacity.
	s.controller(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.lru.Len() != 1 {
		t.Errorf("cache size = %d, want 1", s.lru.Len())
	}
}

func TestHomePage_EmitsPersonBlock(t *testing.T) {
	router := newRenderingHandler(t, &scriptedSender{}).Routes()

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d\n%s", rec.Code, rec.Body)
	}
	html := rec.Body.String()
	if !strings.Contains(html, `<script type="application/ld+json">`) {
		t.Error("structured-data script missing from the home page")
	}
	if !strings.Contains(html, `"@type":"Person"`) {
		t.Errorf("Person block missing:\n%s", html)
	}
}

func TestHealthz(t *testing.T) {
	router := newTestHandler(&scriptedSender{}).Routes()
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if rec.Code != http.StatusOK || rec.Body.String() != "ok" {
		t.Errorf("healthz = %d %q", rec.Code, rec.Body)
	}
}
