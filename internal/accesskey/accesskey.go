// internal/accesskey/accesskey.go
//
// Trust-on-first-use access-key binding.
//
// Context
// -------
// Tenants are never provisioned; the first caller to authenticate for a
// uuid silently establishes the shared secret every later caller must
// present.  The binding lives in the `songify_usage` row (one per tenant),
// in the `access_key` column.
//
// The historical implementation did a read followed by a conditional
// write, which let two concurrent first calls bind different keys
// nondeterministically.  Verify instead claims the key with one atomic
// statement—`INSERT … ON DUPLICATE KEY UPDATE access_key =
// COALESCE(access_key, VALUES(access_key))`—and then compares.  Exactly one
// of two racing first calls wins the claim; the loser reads the winner's
// key and is rejected.  The COALESCE also adopts usage rows written before
// any key existed (NULL access_key).
//
// Every mutating endpoint calls Verify with the tenant id taken directly
// from the request payload, never an alias-resolved one.
package accesskey

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/songify-rocks/songify-backend/internal/metrics"
)

// ErrUnauthorized is returned when a binding exists and the presented key
// does not match it.  The binding is left unchanged.
var ErrUnauthorized = errors.New("accesskey: presented key does not match binding")

// Store verifies and binds per-tenant access keys.
type Store struct {
	db *sqlx.DB
}

// New returns a Store backed by db.
func New(db *sqlx.DB) *Store { return &Store{db: db} }

const (
	claimQ = `INSERT INTO songify_usage (uuid, access_key, tst)
              VALUES (?, ?, ?)
              ON DUPLICATE KEY UPDATE
                  access_key = COALESCE(access_key, VALUES(access_key))`

	boundQ = `SELECT access_key FROM songify_usage WHERE uuid = ?`
)

// Verify authorizes a mutating call for tenantID.
//
//   - No binding yet: presentedKey becomes the tenant's key and the call
//     succeeds (TOFU).
//   - Binding matches: success.
//   - Binding differs: ErrUnauthorized, no state change.
//   - Store failure: wrapped error.
func (s *Store) Verify(ctx context.Context, tenantID, presentedKey string) error {
	now := strconv.FormatInt(time.Now().Unix(), 10)
	if _, err := s.db.ExecContext(ctx, claimQ, tenantID, presentedKey, now); err != nil {
		return fmt.Errorf("accesskey: claim: %w", err)
	}

	var bound sql.NullString
	if err := s.db.GetContext(ctx, &bound, boundQ, tenantID); err != nil {
		return fmt.Errorf("accesskey: read binding: %w", err)
	}

	if !bound.Valid || bound.String != presentedKey {
		metrics.AuthRejectsTotal.Inc()
		zap.S().Infow("access key mismatch", "tenant", tenantID)
		return ErrUnauthorized
	}
	return nil
}
