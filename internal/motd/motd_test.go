// internal/motd/motd_test.go
//
// Unit-tests for the banner-message store using sqlmock.

package motd

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
)

var cols = []string{
	"id", "message_text", "severity", "created_at", "start_date",
	"end_date", "is_active", "author",
}

func newStore(t *testing.T) (*Store, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return New(sqlx.NewDb(db, "mysql")), mock
}

func TestActiveFiltersAndOrders(t *testing.T) {
	s, mock := newStore(t)

	mock.ExpectQuery(`SELECT (.+) FROM motd_messages WHERE is_active = 1 ORDER BY created_at DESC`).
		WillReturnRows(sqlmock.NewRows(cols).
			AddRow(2, "maintenance tonight", "warning", 1743200000, nil, nil, true, "ops").
			AddRow(1, "welcome", "info", 1743100000, nil, nil, true, "ops"))

	got, err := s.Active(context.Background())
	if err != nil {
		t.Fatalf("Active: %v", err)
	}
	if len(got) != 2 || got[0].CreatedAt < got[1].CreatedAt {
		t.Fatalf("unexpected listing: %+v", got)
	}
}

func TestAllIncludesInactive(t *testing.T) {
	s, mock := newStore(t)

	mock.ExpectQuery(`SELECT (.+) FROM motd_messages ORDER BY created_at DESC`).
		WillReturnRows(sqlmock.NewRows(cols).
			AddRow(3, "old notice", "info", 1743000000, nil, nil, false, "ops"))

	got, err := s.All(context.Background())
	if err != nil {
		t.Fatalf("All: %v", err)
	}
	if len(got) != 1 || got[0].IsActive {
		t.Fatalf("unexpected listing: %+v", got)
	}
}
