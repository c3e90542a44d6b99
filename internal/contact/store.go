// internal/contact/store.go
//
// Folio – Contact subsystem: submission archive.
//
// Context
// -------
// Every delivered submission is also archived in MySQL so the site owner has
// a record independent of the notification channel.  One table:
//
//	contact_submission (id PK, name, email, subject, message,
//	                    browser, os, device, country_iso, city,
//	                    received_at)
//
// The helpers accept a *sqlx.DB from internal/database and perform simple
// parameterised statements.  Archiving is best-effort from the visitor's
// point of view: the handler logs archive errors but never turns a delivered
// submission into a user-visible failure.
//
// Notes
// -----
// • Oxford commas, two spaces after periods.
// • Max line length 100 columns.
package contact

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"
)

// Submission is one archived contact-form entry plus visitor metadata.
type Submission struct {
	ID         int64     `db:"id"`
	Name       string    `db:"name"`
	Email      string    `db:"email"`
	Subject    string    `db:"subject"`
	Message    string    `db:"message"`
	Browser    string    `db:"browser"`
	OS         string    `db:"os"`
	Device     string    `db:"device"`
	CountryISO string    `db:"country_iso"`
	City       string    `db:"city"`
	ReceivedAt time.Time `db:"received_at"`
}

// Store wraps the submissions table.
type Store struct{ db *sqlx.DB }

// NewStore returns a Store bound to db.
func NewStore(db *sqlx.DB) *Store { return &Store{db: db} }

// Insert archives one submission and fills in its generated ID.
func (s *Store) Insert(ctx context.Context, sub *Submission) error {
	const q = `INSERT INTO contact_submission
	             (name, email, subject, message,
	              browser, os, device, country_iso, city, received_at)
	           VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	if sub.ReceivedAt.IsZero() {
		sub.ReceivedAt = time.Now().UTC()
	}

	res, err := s.db.ExecContext(ctx, q,
		sub.Name, sub.Email, sub.Subject, sub.Message,
		sub.Browser, sub.OS, sub.Device, sub.CountryISO, sub.City,
		sub.ReceivedAt,
	)
	if err != nil {
		return err
	}
	sub.ID, _ = res.LastInsertId() // MySQL always reports this; ignore elsewhere
	return nil
}

// Recent returns the newest submissions, newest first, capped at limit.
func (s *Store) Recent(ctx context.Context, limit int) ([]Submission, error) {
	const q = `SELECT id, name, email, subject, message,
	                  browser, os, device, country_iso, city, received_at
	             FROM contact_submission
	            ORDER BY received_at DESC
	            LIMIT ?`

	subs := make([]Submission, 0, limit)
	if err := s.db.SelectContext(ctx, &subs, q, limit); err != nil {
		return nil, err
	}
	return subs, nil
}
