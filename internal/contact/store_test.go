// internal/contact/store_test.go
//
// sqlmock-backed tests for the submission archive.
//
// Run: go test ./internal/contact -v

package contact

import (
	"context"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
)

func newMockStore(t *testing.T) (*Store, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return NewStore(sqlx.NewDb(db, "sqlmock")), mock
}

func TestStoreInsert_ArchivesAndAssignsID(t *testing.T) {
	store, mock := newMockStore(t)

	sub := Submission{
		Name: "Avery", Email: "a@b.co", Subject: "Hello",
		Message: "A proper message.", Browser: "Firefox", OS: "Linux",
		Device: "Computer", CountryISO: "US", City: "Portland",
		ReceivedAt: time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC),
	}

	mock.ExpectExec("INSERT INTO contact_submission").
		WithArgs(sub.Name, sub.Email, sub.Subject, sub.Message,
			sub.Browser, sub.OS, sub.Device, sub.CountryISO, sub.City,
			sub.ReceivedAt).
		WillReturnResult(sqlmock.NewResult(7, 1))

	if err := store.Insert(context.Background(), &sub); err != nil {
		t.Fatalf("Insert: %v", err)
	}
	if sub.ID != 7 {
		t.Errorf("ID = %d, want 7", sub.ID)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestStoreInsert_StampsReceivedAt(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectExec("INSERT INTO contact_submission").
		WillReturnResult(sqlmock.NewResult(1, 1))

	sub := Submission{Name: "Avery"}
	if err := store.Insert(context.Background(), &sub); err != nil {
		t.Fatalf("Insert: %v", err)
	}
	if sub.ReceivedAt.IsZero() {
		t.Error("Insert must stamp a zero ReceivedAt")
	}
}

func TestStoreRecent_NewestFirst(t *testing.T) {
	store, mock := newMockStore(t)

	cols := []string{"id", "name", "email", "subject", "message",
		"browser", "os", "device", "country_iso", "city", "received_at"}
	now := time.Now().UTC()
	rows := sqlmock.NewRows(cols).
		AddRow(2, "B", "b@b.co", "Later", "msg", "", "", "", "", "", now).
		AddRow(1, "A", "a@b.co", "Earlier", "msg", "", "", "", "", "", now.Add(-time.Hour))

	mock.ExpectQuery("SELECT (.+) FROM contact_submission").
		WithArgs(50).
		WillReturnRows(rows)

	subs, err := store.Recent(context.Background(), 50)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(subs) != 2 || subs[0].ID != 2 {
		t.Errorf("unexpected result order: %#v", subs)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}
