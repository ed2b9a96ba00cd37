// internal/web/ref.go
//
// uuid/name disambiguation for read endpoints.
package web

import "context"

// resolveRef turns the (uuid, name) query pair into a tenant id.
//
// Precedence: an explicit uuid is trusted as-is; a name goes through the
// vanity-alias table, then the most-recent-session lookup in the usage
// table.  A name nobody has ever reported under falls through unchanged,
// so downstream queries find nothing and the soft-miss policy applies.
func (s *Server) resolveRef(ctx context.Context, uuid, name string) (string, error) {
	if uuid != "" {
		return uuid, nil
	}
	if name == "" {
		return "", errMissingRef
	}

	if s.aliases.Known(name) {
		return s.aliases.Resolve(name), nil
	}

	id, err := s.usage.TenantByName(ctx, name)
	if err != nil {
		return "", err
	}
	if id != "" {
		return id, nil
	}
	return name, nil
}
