// internal/history/history_test.go
//
// Unit-tests for the play-history log using sqlmock.

package history

import (
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
)

const tenant = "f6d9a390-7d48-4da6-a177-c378a7a33c1e"

func newStore(t *testing.T) (*Store, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return New(sqlx.NewDb(db, "mysql")), mock
}

func TestAppend(t *testing.T) {
	s, mock := newStore(t)

	mock.ExpectExec(regexp.QuoteMeta(
		`INSERT INTO songify_history (uuid, song, tst) VALUES (?, ?, ?)`)).
		WithArgs(tenant, "Daft Punk - One More Time", "1743100000").
		WillReturnResult(sqlmock.NewResult(1, 1))

	err := s.Append(context.Background(), Entry{
		UUID: tenant,
		Song: "Daft Punk - One More Time",
		Tst:  "1743100000",
	})
	if err != nil {
		t.Fatalf("Append: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet SQL expectations: %v", err)
	}
}

func TestByTenantNewestFirst(t *testing.T) {
	s, mock := newStore(t)

	mock.ExpectQuery(regexp.QuoteMeta(
		`SELECT uuid, song, tst FROM songify_history WHERE uuid = ? ORDER BY tst DESC`)).
		WithArgs(tenant).
		WillReturnRows(sqlmock.NewRows([]string{"uuid", "song", "tst"}).
			AddRow(tenant, "newer", "1743100300").
			AddRow(tenant, "older", "1743100000"))

	got, err := s.ByTenant(context.Background(), tenant)
	if err != nil {
		t.Fatalf("ByTenant: %v", err)
	}
	if len(got) != 2 || got[0].Song != "newer" {
		t.Fatalf("unexpected order: %+v", got)
	}
}
