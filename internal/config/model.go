// internal/config/model.go
//
// Typed configuration model for the Songify backend.
//
// Context
// -------
// These structs define the shape of the configuration tree that
// `internal/config/loader.go` builds from three overlay layers:
//
//   • optional `.env`                          – dotenv values,
//   • `conf/global.yaml`                       – primary static file,
//   • `SONGIFY_`-prefixed environment overrides – highest precedence.
//
// Any value whose string begins with the prefix `vault:` is resolved
// through the Vault client *before* unmarshalling, so the model never
// stores Vault URIs—only plain strings.
//
// Validation happens immediately after unmarshal; the app fails fast if
// required fields are missing.
//
// Notes
// -----
//   • Struct tags use `koanf:"…"`, not `yaml:"…"`—Koanf ignores `yaml` tags
//     unless configured otherwise.
//   • The `Paths` block is filled at runtime; YAML must not try to set it.

package config

//
// HTTP section
//

// HTTP holds web-server tunables.  BasePath is the mount point for the API
// routes; overlay clients in the wild speak `/v2`.
type HTTP struct {
	ListenAddr string `koanf:"listen_addr" validate:"required,hostname_port"`
	BasePath   string `koanf:"base_path"`
}

//
// Database section
//

// Database holds the DSN template and its secret.  The template is kept in
// YAML so operators can tweak host, port, or flags without touching Vault.
// The password may be a literal or a `vault:<path>#<key>` reference that the
// loader resolves at boot.  When the template contains a `%s` verb the
// resolved password is substituted into it.
type Database struct {
	DSN      string `koanf:"dsn"      validate:"required"`
	Password string `koanf:"password"`
}

//
// Canvas section
//

// Canvas configures the artwork origin service that backs the read-through
// cache.  TimeoutSeconds bounds every origin call; the cache itself carries
// no TTL.
type Canvas struct {
	OriginURL      string `koanf:"origin_url" validate:"required,url"`
	TimeoutSeconds int    `koanf:"timeout_seconds" validate:"gte=0"`
}

//
// Paths section (runtime only)
//

// Paths is resolved at runtime—never set in YAML or env.  The loader
// discovers `Root` (repo root or SONGIFY_ROOT override) so later code can
// build absolute file paths.
type Paths struct {
	Root string
}

//
// Root aggregate
//

// Config is the immutable aggregate returned by Load() and cached in an
// atomic.Pointer for lock-free reads throughout the app lifetime.  Aliases
// extends (or overrides) the compiled-in vanity-name table.
type Config struct {
	HTTP     HTTP              `koanf:"http"`
	Database Database          `koanf:"database"`
	Canvas   Canvas            `koanf:"canvas"`
	Aliases  map[string]string `koanf:"aliases"`
	Paths    Paths             `koanf:"-"`
}
