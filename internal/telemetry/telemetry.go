// internal/telemetry/telemetry.go
//
// Per-tenant usage snapshot, latest wins.
//
// Context
// -------
// Every client heartbeat replaces the tenant's whole `songify_usage` row
// (`REPLACE INTO`)—no history is retained.  The row also carries the
// tenant's bound access key, so Report always writes the key that was just
// verified, and the name-based read endpoints use this table to map a
// Twitch display name to the tenant uuid of its most recent session.
package telemetry

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/jmoiron/sqlx"
)

// ErrEmptyTenant rejects telemetry without a tenant id.
var ErrEmptyTenant = errors.New("telemetry: tenant uuid must not be empty")

var v = validator.New()

// Record is one usage snapshot.  Nullable columns are pointers.
type Record struct {
	UUID         string  `db:"uuid" validate:"required"`
	Tst          string  `db:"tst"`
	TwitchID     string  `db:"twitch_id"`
	TwitchName   string  `db:"twitch_name"`
	VS           *string `db:"vs"` // client version string
	PlayerType   string  `db:"playertype"`
	AccessKey    string  `db:"access_key"`
	ClientOS     *string `db:"client_os"`
	ClientDevice *string `db:"client_device"`
}

// Store reads and writes songify_usage.
type Store struct {
	db *sqlx.DB
}

// New returns a Store backed by db.
func New(db *sqlx.DB) *Store { return &Store{db: db} }

const (
	replaceQ = `REPLACE INTO songify_usage
                    (uuid, tst, twitch_id, twitch_name, vs, playertype,
                     access_key, client_os, client_device)
                VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`

	nameQ = `SELECT twitch_name FROM songify_usage WHERE uuid = ?`

	tenantByNameQ = `SELECT uuid FROM songify_usage
                      WHERE LOWER(twitch_name) = LOWER(?)
                      ORDER BY tst DESC
                      LIMIT 1`
)

// Report upserts the tenant's usage row wholesale.  Fails ErrEmptyTenant
// when the uuid is missing; the caller has already verified the access key.
func (s *Store) Report(ctx context.Context, rec Record) error {
	if err := v.Struct(&rec); err != nil {
		return fmt.Errorf("%w: %v", ErrEmptyTenant, err)
	}

	_, err := s.db.ExecContext(ctx, replaceQ,
		rec.UUID, rec.Tst, rec.TwitchID, rec.TwitchName, rec.VS,
		rec.PlayerType, rec.AccessKey, rec.ClientOS, rec.ClientDevice)
	if err != nil {
		return fmt.Errorf("telemetry: report: %w", err)
	}
	return nil
}

// TwitchName returns the tenant's display name, or "" when the tenant has
// never reported (soft miss).
func (s *Store) TwitchName(ctx context.Context, tenantID string) (string, error) {
	var name sql.NullString
	err := s.db.GetContext(ctx, &name, nameQ, tenantID)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return "", nil
	case err != nil:
		return "", fmt.Errorf("telemetry: twitch name: %w", err)
	}
	return name.String, nil
}

// TenantByName maps a display name to the uuid of its most recent session.
// Unknown names return "" with no error; the caller decides what a miss
// means for its endpoint.
func (s *Store) TenantByName(ctx context.Context, name string) (string, error) {
	var id string
	err := s.db.GetContext(ctx, &id, tenantByNameQ, name)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return "", nil
	case err != nil:
		return "", fmt.Errorf("telemetry: tenant by name: %w", err)
	}
	return id, nil
}
