// internal/notify/notify.go
//
// Folio – Owner notifications.
//
// Context
//   After a contact submission is delivered and archived, the site owner is
//   told about it out-of-band: an e-mail, a webhook, or both, per config.
//   Dispatch happens on a single background worker fed by a buffered
//   channel, so the HTTP handler returns promptly and a slow notification
//   target cannot stall visitors.
//
//   E-mail delivery still goes through a log-only publisher; swap the body
//   of sendEmail with a real queue or SMTP client when one is provisioned.
//   Webhooks are delivered for real: one JSON POST per submission.
//
// Style
//   Two-space sentence spacing, Oxford comma, terse inline notes.
//
//------------------------------------------------------------------------------

package notify

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Email is a basic outbound e-mail job.
type Email struct {
	To      []string
	Subject string
	Text    string
}

// Webhook is one JSON POST to an owner-configured URL.
type Webhook struct {
	URL     string
	Payload []byte
	Headers map[string]string
}

// ErrQueueFull is returned when the dispatch buffer is saturated.  Callers
// treat it as a logged warning; notifications are best-effort.
var ErrQueueFull = errors.New("notify: queue full")

// job is the tagged union travelling through the channel.  Exactly one of
// the two pointers is set.
type job struct {
	email   *Email
	webhook *Webhook
}

// Dispatcher owns the worker goroutine.  Construct with New, stop with Close.
type Dispatcher struct {
	ch     chan job
	client *http.Client
	log    *zap.SugaredLogger

	closeOnce sync.Once
	done      chan struct{}
}

// New starts the worker.  log may be nil (global logger is used).
func New(log *zap.SugaredLogger) *Dispatcher {
	if log == nil {
		log = zap.S()
	}
	d := &Dispatcher{
		ch:     make(chan job, 64),
		client: &http.Client{Timeout: 15 * time.Second},
		log:    log,
		done:   make(chan struct{}),
	}
	go d.run()
	return d
}

// EnqueueEmail queues msg without blocking.
func (d *Dispatcher) EnqueueEmail(_ context.Context, msg Email) error {
	select {
	case d.ch <- job{email: &msg}:
		return nil
	default:
		return ErrQueueFull
	}
}

// EnqueueWebhook queues wh without blocking.
func (d *Dispatcher) EnqueueWebhook(_ context.Context, wh Webhook) error {
	select {
	case d.ch <- job{webhook: &wh}:
		return nil
	default:
		return ErrQueueFull
	}
}

// Close stops the worker after draining queued jobs.
func (d *Dispatcher) Close() {
	d.closeOnce.Do(func() {
		close(d.ch)
		<-d.done
	})
}

//
// worker
//

func (d *Dispatcher) run() {
	defer close(d.done)
	for j := range d.ch {
		switch {
		case j.email != nil:
			d.sendEmail(j.email)
		case j.webhook != nil:
			d.sendWebhook(j.webhook)
		}
	}
}

// sendEmail is the log-only publisher.  Replace with a real transport when
// an SMTP relay or mail queue is provisioned.
func (d *Dispatcher) sendEmail(msg *Email) {
	d.log.Infow("notify email",
		"to", msg.To, "subject", msg.Subject, "len_text", len(msg.Text))
}

func (d *Dispatcher) sendWebhook(wh *Webhook) {
	req, err := http.NewRequest(http.MethodPost, wh.URL, bytes.NewReader(wh.Payload))
	if err != nil {
		d.log.Errorw("notify webhook build failed", "url", wh.URL, "err", err)
		return
	}
	req.Header.Set("Content-Type", "application/json")
	for k, v := range wh.Headers {
		req.Header.Set(k, v)
	}

	resp, err := d.client.Do(req)
	if err != nil {
		d.log.Errorw("notify webhook failed", "url", wh.URL, "err", err)
		return
	}
	resp.Body.Close()
	if resp.StatusCode >= 300 {
		d.log.Warnw("notify webhook rejected", "url", wh.URL, "status", resp.StatusCode)
	}
}
