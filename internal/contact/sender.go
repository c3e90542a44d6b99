// internal/contact/sender.go
//
// Folio – Contact subsystem: submission delivery.
//
// Context
//   The controller hands a validated form to a Sender and maps the outcome
//   onto the success or error state.  The production sender POSTs the form as
//   JSON to the configured endpoint.  Any OK-class response counts as
//   delivered; anything else becomes a DeliveryError whose message is taken
//   from the endpoint's body when it offers one.  One attempt, no retry.
//
// Style
//   Two-space sentence spacing, Oxford comma, terse inline notes.
//
//------------------------------------------------------------------------------

package contact

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Sender delivers one validated form.  A nil return means the submission
// reached its destination.
type Sender interface {
	Send(ctx context.Context, fm Form) error
}

// DeliveryError describes a failed delivery in terms the visitor may see.
type DeliveryError struct {
	StatusCode int    // HTTP status, 0 when the request never completed
	Message    string // endpoint-supplied reason, may be empty
}

func (e *DeliveryError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("contact delivery failed (%d): %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("contact delivery failed (%d)", e.StatusCode)
}

// EndpointSender POSTs submissions to an HTTP endpoint as JSON.
type EndpointSender struct {
	Endpoint string
	Client   *http.Client // nil means a 10-second default client
}

// NewEndpointSender returns a sender for endpoint with a conservative default
// client.  The timeout bounds the whole attempt, including body read.
func NewEndpointSender(endpoint string) *EndpointSender {
	return &EndpointSender{
		Endpoint: endpoint,
		Client:   &http.Client{Timeout: 10 * time.Second},
	}
}

// Send implements Sender.  The body is the form encoded as JSON with
// Content-Type application/json.
func (s *EndpointSender) Send(ctx context.Context, fm Form) error {
	payload, err := json.Marshal(fm)
	if err != nil {
		return fmt.Errorf("encode submission: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.Endpoint, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("build submission request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	cli := s.Client
	if cli == nil {
		cli = &http.Client{Timeout: 10 * time.Second}
	}

	resp, err := cli.Do(req)
	if err != nil {
		// The network itself failed; there is no endpoint status or body to
		// report, so the transport error is wrapped as-is.
		return fmt.Errorf("contact: deliver submission: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	return &DeliveryError{
		StatusCode: resp.StatusCode,
		Message:    failureMessage(resp.Body),
	}
}

// failureMessage reads an optional {"message": "..."} body from a failed
// response.  Unparseable bodies yield an empty message, and the caller falls
// back to the generic banner text.
func failureMessage(r io.Reader) string {
	body, err := io.ReadAll(io.LimitReader(r, 4096))
	if err != nil || len(body) == 0 {
		return ""
	}
	var payload struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return ""
	}
	return payload.Message
}
