// internal/telemetry/telemetry_test.go
//
// Unit-tests for the usage store using sqlmock.

package telemetry

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
)

const tenant = "4aa39d0a-1bf6-4705-bfb5-512dd8afc1e2"

func newStore(t *testing.T) (*Store, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return New(sqlx.NewDb(db, "mysql")), mock
}

func TestReportUpserts(t *testing.T) {
	s, mock := newStore(t)

	mock.ExpectExec(regexp.QuoteMeta(
		`REPLACE INTO songify_usage (uuid, tst, twitch_id, twitch_name, vs, playertype, access_key, client_os, client_device) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`)).
		WithArgs(tenant, "1743100000", "12345", "preheet", nil, "spotify",
			"s3cret", nil, nil).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := s.Report(context.Background(), Record{
		UUID:       tenant,
		Tst:        "1743100000",
		TwitchID:   "12345",
		TwitchName: "preheet",
		PlayerType: "spotify",
		AccessKey:  "s3cret",
	})
	if err != nil {
		t.Fatalf("Report: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet SQL expectations: %v", err)
	}
}

func TestReportEmptyTenant(t *testing.T) {
	s, _ := newStore(t)

	err := s.Report(context.Background(), Record{TwitchName: "preheet"})
	if !errors.Is(err, ErrEmptyTenant) {
		t.Fatalf("want ErrEmptyTenant, got %v", err)
	}
}

func TestTwitchNameSoftMiss(t *testing.T) {
	s, mock := newStore(t)

	mock.ExpectQuery("SELECT twitch_name FROM songify_usage").
		WithArgs("nobody").
		WillReturnError(sql.ErrNoRows)

	name, err := s.TwitchName(context.Background(), "nobody")
	if err != nil || name != "" {
		t.Fatalf("want empty name and nil error, got %q, %v", name, err)
	}
}

func TestTenantByName(t *testing.T) {
	s, mock := newStore(t)

	mock.ExpectQuery(regexp.QuoteMeta(
		`SELECT uuid FROM songify_usage WHERE LOWER(twitch_name) = LOWER(?) ORDER BY tst DESC LIMIT 1`)).
		WithArgs("Preheet").
		WillReturnRows(sqlmock.NewRows([]string{"uuid"}).AddRow(tenant))

	id, err := s.TenantByName(context.Background(), "Preheet")
	if err != nil {
		t.Fatalf("TenantByName: %v", err)
	}
	if id != tenant {
		t.Fatalf("unexpected uuid: %q", id)
	}
}
