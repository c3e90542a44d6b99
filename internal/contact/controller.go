// internal/contact/controller.go
//
// Folio – Contact subsystem: submission controller.
//
// Context
//   One Controller exists per form session and is the single source of truth
//   for what feedback the contact page shows.  It owns the form contents, the
//   sparse error map, the submission status, and the one-shot auto-clear
//   timer.  Status moves through a four-state machine:
//
//       idle ──submit(valid)──▶ loading ──ok──▶ success ─┐
//                                  │                      ├─(5 s)──▶ idle
//                                  └──fail──▶ error ──────┘
//
//   A submit while loading is a no-op, so a double-click can never issue two
//   deliveries.  Editing any field clears that field's error immediately and,
//   when a success or error banner is showing, dismisses it ahead of the
//   timer.  Delivery failures reach the error state with the sender's
//   message; they are never dressed up as success.
//
// Workflow
//   •  Submit validates first; an invalid form replaces the error map
//      atomically and no transition occurs.
//   •  The sender runs outside the lock so Edit and snapshot calls stay
//      responsive while delivery is in flight.
//   •  The auto-clear timer is owned by the controller and carries a
//      generation number, so a stale fire after an edit cannot wipe state.
//
// Style
//   Two-space sentence spacing, Oxford comma, terse inline notes.
//
//------------------------------------------------------------------------------

package contact

import (
	"context"
	"errors"
	"sync"
	"time"
)

// Status is the submission phase the form session is in.
type Status string

// The four submission states.  Idle is the initial and resting state.
const (
	StatusIdle    Status = "idle"
	StatusLoading Status = "loading"
	StatusSuccess Status = "success"
	StatusError   Status = "error"
)

// State pairs the status with the banner message the page should show.
// Message is empty in idle and loading.
type State struct {
	Status  Status
	Message string
}

// User-facing banner texts, shared with the JSON API so the two surfaces
// cannot drift.  Delivery failures prefer the sender's own message when it
// carries one.
const (
	SuccessMessage      = "Thanks for your message! I will get back to you soon."
	GenericErrorMessage = "Something went wrong. Please try again later."
)

// DefaultClearAfter is how long a success or error banner stays up before the
// controller returns to idle on its own.
const DefaultClearAfter = 5 * time.Second

// ErrSubmitPending is returned when Submit is called while a delivery is
// already in flight.
var ErrSubmitPending = errors.New("contact: submission already in progress")

// Controller drives one form session.  All methods are safe for concurrent
// use; the zero value is not usable, construct via NewController.
type Controller struct {
	sender     Sender
	clearAfter time.Duration

	mu         sync.Mutex
	form       Form
	fieldErrs  Errors
	state      State
	clearTimer *time.Timer
	clearGen   uint64 // bumped on every transition; stale timer fires bail out
}

// Option tweaks controller construction.
type Option func(*Controller)

// WithClearAfter overrides the banner auto-clear delay.  Tests use millisecond
// values here instead of sleeping five seconds.
func WithClearAfter(d time.Duration) Option {
	return func(c *Controller) { c.clearAfter = d }
}

// NewController returns an idle controller that delivers through sender.
func NewController(sender Sender, opts ...Option) *Controller {
	c := &Controller{
		sender:     sender,
		clearAfter: DefaultClearAfter,
		fieldErrs:  make(Errors),
		state:      State{Status: StatusIdle},
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Submit validates the current form and, when valid, delivers it through the
// sender.  It returns the resulting state.
//
//   - Invalid form: the error map is replaced, status stays idle, and the
//     returned error is nil (validation failures are data, not errors).
//   - Delivery in flight: no-op, ErrSubmitPending.
//   - Delivery ok: form reset, errors cleared, success banner scheduled to
//     auto-clear.
//   - Delivery failed: error banner with the failure reason, form contents
//     left intact for retry.
func (c *Controller) Submit(ctx context.Context) (State, error) {
	c.mu.Lock()
	if c.state.Status == StatusLoading {
		st := c.state
		c.mu.Unlock()
		return st, ErrSubmitPending
	}

	errs, ok := ValidateForm(&c.form)
	c.fieldErrs = errs // atomic replace, never a partial update
	if !ok {
		st := c.state
		c.mu.Unlock()
		return st, nil
	}

	c.stopClearLocked()
	c.state = State{Status: StatusLoading}
	fm := c.form // snapshot delivered outside the lock
	c.mu.Unlock()

	err := c.sender.Send(ctx, fm)

	c.mu.Lock()
	defer c.mu.Unlock()
	if err != nil {
		c.state = State{Status: StatusError, Message: deliveryMessage(err)}
	} else {
		c.form.Reset()
		c.fieldErrs = make(Errors)
		c.state = State{Status: StatusSuccess, Message: SuccessMessage}
	}
	c.scheduleClearLocked()
	return c.state, err
}

// Edit records a new raw value for f.  The field's own error is cleared (other
// fields keep theirs), and a visible success or error banner is dismissed
// immediately, superseding the auto-clear timer.  Editing while loading does
// not disturb the in-flight guard.
func (c *Controller) Edit(f Field, value string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.form.SetValue(f, value)
	delete(c.fieldErrs, f)

	if c.state.Status == StatusSuccess || c.state.Status == StatusError {
		c.stopClearLocked()
		c.state = State{Status: StatusIdle}
	}
}

// State returns the current submission state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// FormSnapshot returns a copy of the current form contents.
func (c *Controller) FormSnapshot() Form {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.form
}

// FieldErrors returns a copy of the sparse error map.
func (c *Controller) FieldErrors() Errors {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.fieldErrs.Clone()
}

// Close stops the auto-clear timer.  Call when the session is evicted.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stopClearLocked()
}

//
// timer plumbing (callers hold c.mu)
//

// scheduleClearLocked arms a one-shot return to idle.  The generation captured
// at arm time lets a superseded timer recognise itself and do nothing.
func (c *Controller) scheduleClearLocked() {
	c.stopClearLocked()
	gen := c.clearGen
	c.clearTimer = time.AfterFunc(c.clearAfter, func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		if c.clearGen != gen {
			return // superseded by an edit or a newer submit
		}
		if c.state.Status == StatusSuccess || c.state.Status == StatusError {
			c.state = State{Status: StatusIdle}
		}
	})
}

// stopClearLocked cancels any pending clear and invalidates its generation.
func (c *Controller) stopClearLocked() {
	c.clearGen++
	if c.clearTimer != nil {
		c.clearTimer.Stop()
		c.clearTimer = nil
	}
}

// deliveryMessage extracts a user-facing failure reason from a sender error.
func deliveryMessage(err error) string {
	var de *DeliveryError
	if errors.As(err, &de) && de.Message != "" {
		return de.Message
	}
	return GenericErrorMessage
}
