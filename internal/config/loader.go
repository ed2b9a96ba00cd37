// internal/config/loader.go
//
// Configuration loader.
//
/*
Context
--------
`Load()` builds one immutable `Config` struct from three layers (highest
precedence last):

  1. Optional `.env` file at `<root>/conf/.env`.
  2. `conf/global.yaml`.
  3. Environment variables prefixed `SONGIFY_`, where `__` maps to “.”
     (e.g., `SONGIFY_HTTP__LISTEN_ADDR → http.listen_addr`).

After merging, the tree is unmarshalled into strongly-typed structs, the
database password is resolved through Vault when it carries the `vault:`
prefix, the result is validated, enriched with the runtime root path, and
cached in an `atomic.Pointer` for lock-free reads.  `Reload()` simply calls
`Load()` again and swaps the pointer.

Instrumentation
---------------
  • DEBUG spans — root discovery, YAML read, env overlay.
  • ERROR spans — YAML parse, env overlay, unmarshal, Vault, validation.
  • INFO  span  — final “config loaded” with key highlights.
  • Logs use the global *sugared* logger (`zap.S()`) so early boot issues
    surface even before the file logger is installed.
*/
package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"time"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	koanf "github.com/knadh/koanf/v2"
	"go.uber.org/zap"

	"github.com/songify-rocks/songify-backend/internal/vault"
)

var current atomic.Pointer[Config]

/*──────────────────────────── root discovery ───────────────────────────────*/

// rootDir resolves SONGIFY_ROOT or climbs directories until conf/global.yaml
// is found.  Falls back to an executable heuristic for production layout.
func rootDir() string {
	if r := os.Getenv("SONGIFY_ROOT"); r != "" {
		return r
	}

	wd, _ := os.Getwd()
	dir := wd
	for {
		if _, err := os.Stat(filepath.Join(dir, "conf", "global.yaml")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir { // reached filesystem root
			break
		}
		dir = parent
	}

	exe, _ := os.Executable()
	if filepath.Base(filepath.Dir(exe)) == "bin" {
		return filepath.Dir(filepath.Dir(exe))
	}
	return wd
}

/*─────────────────────────────── loader ───────────────────────────────────*/

// Load reads .env, YAML, env overrides, resolves secrets, validates, and
// caches the Config.
func Load(ctx context.Context) (*Config, error) {
	root := rootDir()
	zap.S().Debugw("config root resolved", "root", root)

	// .env (optional, no error if missing)
	_ = godotenv.Load(filepath.Join(root, "conf", ".env"))

	k := koanf.New(".")

	yamlPath := filepath.Join(root, "conf", "global.yaml")
	if err := k.Load(file.Provider(yamlPath), yaml.Parser()); err != nil {
		zap.S().Errorw("config yaml load failed", "file", yamlPath, "err", err)
		return nil, err
	}
	zap.S().Debugw("config yaml loaded", "file", yamlPath)

	// Env overrides: SONGIFY_HTTP__LISTEN_ADDR → http.listen_addr
	if err := k.Load(env.Provider("SONGIFY_", ".", func(s string) string {
		return strings.ToLower(strings.ReplaceAll(s, "__", "."))
	}), nil); err != nil {
		zap.S().Errorw("config env overlay failed", "err", err)
		return nil, err
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		zap.S().Errorw("config unmarshal failed", "err", err)
		return nil, err
	}

	if cfg.HTTP.BasePath == "" {
		cfg.HTTP.BasePath = "/v2"
	}
	if cfg.Canvas.TimeoutSeconds == 0 {
		cfg.Canvas.TimeoutSeconds = 5
	}

	if err := resolveSecrets(ctx, &cfg); err != nil {
		zap.S().Errorw("config secret resolution failed", "err", err)
		return nil, err
	}

	cfg.Paths.Root = root
	if err := validateStruct(&cfg); err != nil {
		zap.S().Errorw("config validation failed", "err", err)
		return nil, err
	}

	current.Store(&cfg)
	zap.S().Infow("config loaded",
		"listen_addr", cfg.HTTP.ListenAddr,
		"base_path", cfg.HTTP.BasePath,
		"canvas_origin", cfg.Canvas.OriginURL,
		"aliases", len(cfg.Aliases),
		"root", cfg.Paths.Root,
	)
	return &cfg, nil
}

/*──────────────────────────── secrets ─────────────────────────────────────*/

// resolveSecrets swaps `vault:<path>#<key>` references for their plain
// values and, when the DSN template carries a %s verb, substitutes the
// password into it.  A literal password (or none at all, for socket auth)
// passes through untouched.
func resolveSecrets(ctx context.Context, cfg *Config) error {
	pw := cfg.Database.Password
	if strings.HasPrefix(pw, "vault:") {
		ref := strings.TrimPrefix(pw, "vault:")
		path, key, ok := strings.Cut(ref, "#")
		if !ok {
			return fmt.Errorf("config: vault reference %q must be <path>#<key>", pw)
		}
		cli, err := vault.New(ctx, zap.S().Infof)
		if err != nil {
			return fmt.Errorf("config: vault client: %w", err)
		}
		val, err := cli.GetKV(ctx, path, key, 5*time.Minute)
		if err != nil {
			return fmt.Errorf("config: vault lookup: %w", err)
		}
		pw = val
	}

	if strings.Contains(cfg.Database.DSN, "%s") {
		cfg.Database.DSN = fmt.Sprintf(cfg.Database.DSN, pw)
	}
	cfg.Database.Password = pw
	return nil
}

/*──────────────────────────── helpers ─────────────────────────────────────*/

func Get() *Config { return current.Load() }

func Reload(ctx context.Context) error { _, err := Load(ctx); return err }
