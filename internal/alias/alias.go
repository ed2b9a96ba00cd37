// internal/alias/alias.go
//
// Vanity-name resolution.
//
// Context
// -------
// A handful of long-time streamers predate the uuid scheme and are known to
// chat bots by a bare channel name.  Read endpoints accept either form, so
// this package maps those vanity names to canonical tenant ids and passes
// everything else through unchanged.
//
// The table ships with compiled-in defaults and can be extended (or
// single entries overridden) through the `aliases:` map in conf/global.yaml,
// so adding a streamer no longer needs a rebuild.
//
// Resolution is pure: no I/O, no failure mode.
package alias

import "strings"

// defaults is the historical vanity table.  Keys are lowercase.
var defaults = map[string]string{
	"inzaniity":    "43efb299-2504-4365-8ac6-a301f0d7c7aa",
	"thejaydizzle": "5d07c1d6-6dcc-4185-a6bd-284fe0480b79",
	"sluckz":       "f6d9a390-7d48-4da6-a177-c378a7a33c1e",
	"vigilsc":      "07632164-719f-43ee-87eb-a1c9b4991506",
	"itsbustre":    "c90b6e0e-6706-4036-bf25-327b2d981082",
	"rocketstarrl": "de8a9f85-2919-474c-9845-6534ec54dc7f",
	"preheet":      "4aa39d0a-1bf6-4705-bfb5-512dd8afc1e2",
	"highitsky":    "630e6596-a833-42d9-a905-7a5bf1a75d0e",
}

// Resolver maps vanity names to canonical tenant ids.  Zero value resolves
// nothing; construct with New.
type Resolver struct {
	table map[string]string
}

// New builds a Resolver from the compiled-in defaults merged with overrides
// (typically cfg.Aliases).  Override keys are lowercased; an override for an
// existing name wins.
func New(overrides map[string]string) *Resolver {
	table := make(map[string]string, len(defaults)+len(overrides))
	for k, v := range defaults {
		table[k] = v
	}
	for k, v := range overrides {
		table[strings.ToLower(k)] = v
	}
	return &Resolver{table: table}
}

// Resolve returns the canonical tenant id for a known vanity name, or token
// unchanged when it is not in the table (already-canonical assumption).
// Lookup is case-insensitive.
func (r *Resolver) Resolve(token string) string {
	if id, ok := r.table[strings.ToLower(token)]; ok {
		return id
	}
	return token
}

// Known reports whether token is a vanity name in the table.
func (r *Resolver) Known(token string) bool {
	_, ok := r.table[strings.ToLower(token)]
	return ok
}
