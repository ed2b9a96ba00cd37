// internal/accesskey/accesskey_test.go
//
// Unit-tests for TOFU key binding using sqlmock.
//
// Run: go test ./internal/accesskey -v

package accesskey

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
)

const (
	tenant = "f6d9a390-7d48-4da6-a177-c378a7a33c1e"
	key    = "s3cret"
)

var (
	claimRE = regexp.QuoteMeta(
		`INSERT INTO songify_usage (uuid, access_key, tst) VALUES (?, ?, ?) ON DUPLICATE KEY UPDATE access_key = COALESCE(access_key, VALUES(access_key))`)
	boundRE = regexp.QuoteMeta(
		`SELECT access_key FROM songify_usage WHERE uuid = ?`)
)

func newStore(t *testing.T) (*Store, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return New(sqlx.NewDb(db, "mysql")), mock
}

func TestVerifyFirstUseBinds(t *testing.T) {
	s, mock := newStore(t)

	// No prior binding: the claim inserts the key, the readback matches.
	mock.ExpectExec(claimRE).
		WithArgs(tenant, key, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(boundRE).
		WithArgs(tenant).
		WillReturnRows(sqlmock.NewRows([]string{"access_key"}).AddRow(key))

	if err := s.Verify(context.Background(), tenant, key); err != nil {
		t.Fatalf("first-use Verify: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet SQL expectations: %v", err)
	}
}

func TestVerifyMatch(t *testing.T) {
	s, mock := newStore(t)

	mock.ExpectExec(claimRE).
		WithArgs(tenant, key, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(boundRE).
		WithArgs(tenant).
		WillReturnRows(sqlmock.NewRows([]string{"access_key"}).AddRow(key))

	if err := s.Verify(context.Background(), tenant, key); err != nil {
		t.Fatalf("matching Verify: %v", err)
	}
}

func TestVerifyMismatch(t *testing.T) {
	s, mock := newStore(t)

	mock.ExpectExec(claimRE).
		WithArgs(tenant, "wrong", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(boundRE).
		WithArgs(tenant).
		WillReturnRows(sqlmock.NewRows([]string{"access_key"}).AddRow(key))

	err := s.Verify(context.Background(), tenant, "wrong")
	if !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("want ErrUnauthorized, got %v", err)
	}
}

func TestVerifyAdoptsKeylessRow(t *testing.T) {
	s, mock := newStore(t)

	// A usage row written by telemetry before any key existed has a NULL
	// access_key; the claim adopts the presented key.
	mock.ExpectExec(claimRE).
		WithArgs(tenant, key, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectQuery(boundRE).
		WithArgs(tenant).
		WillReturnRows(sqlmock.NewRows([]string{"access_key"}).AddRow(key))

	if err := s.Verify(context.Background(), tenant, key); err != nil {
		t.Fatalf("adopt Verify: %v", err)
	}
}

func TestVerifyStoreError(t *testing.T) {
	s, mock := newStore(t)

	mock.ExpectExec(claimRE).
		WithArgs(tenant, key, sqlmock.AnyArg()).
		WillReturnError(errors.New("connection refused"))

	err := s.Verify(context.Background(), tenant, key)
	if err == nil || errors.Is(err, ErrUnauthorized) {
		t.Fatalf("want wrapped store error, got %v", err)
	}
}
