// cmd/api/main.go
//
// Songify backend – HTTP entry point.
//
// Boot sequence
// -------------
//
//  1. Load env vars (server-wide file → .env fallback).
//
//  2. Start daily rotating logger (tees to console when running in a TTY).
//
//  3. Load config: conf/global.yaml + SONGIFY_ env overrides, Vault
//     resolution for the database password.
//
//  4. Open the MySQL pool and fail fast if it does not ping.
//
//  5. Build the alias resolver, the canvas origin client, and the web
//     Server; mount everything on one router (API under /v2, /healthz and
//     /metrics at the root).
//
//  6. Serve until SIGINT/SIGTERM, then drain with a bounded shutdown.
package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"github.com/songify-rocks/songify-backend/internal/alias"
	"github.com/songify-rocks/songify-backend/internal/canvas"
	"github.com/songify-rocks/songify-backend/internal/config"
	"github.com/songify-rocks/songify-backend/internal/database"
	"github.com/songify-rocks/songify-backend/internal/logger"
	"github.com/songify-rocks/songify-backend/internal/server"
	"github.com/songify-rocks/songify-backend/internal/web"
)

const serverEnvPath = "/usr/local/etc/songify-backend/global.env"

// loadEnv prefers the server-wide env file; on dev it falls back to .env.
func loadEnv() {
	if _, err := os.Stat(serverEnvPath); err == nil {
		_ = godotenv.Load(serverEnvPath)
		return
	}
	_ = godotenv.Load()
}

// runningInTTY returns true when stdout is a character device.
func runningInTTY() bool {
	fi, err := os.Stdout.Stat()
	if err != nil {
		return false
	}
	return fi.Mode()&os.ModeCharDevice != 0
}

func init() { loadEnv() }

func main() {
	rootDir, _ := os.Getwd()
	logOut, err := logger.New(rootDir, runningInTTY())
	if err != nil {
		log.Fatalf("start logger: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(),
		syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		logOut.Fatalf("load config: %v", err)
	}

	db, err := database.Open(cfg.Database.DSN)
	if err != nil {
		logOut.Fatalf("connect database: %v", err)
	}
	defer db.Close()
	logOut.Infow("database online")

	// Early sanity check: how many tenants have ever reported.
	var tenants int
	_ = db.Get(&tenants, `SELECT COUNT(*) FROM songify_usage`)
	logOut.Infow("tenant rows found", "count", tenants)

	resolver := alias.New(cfg.Aliases)
	origin := canvas.NewOrigin(cfg.Canvas.OriginURL,
		time.Duration(cfg.Canvas.TimeoutSeconds)*time.Second)
	cache := canvas.New(db, origin)

	handler := web.New(db, resolver, cache, cfg.HTTP.BasePath, logOut).Router()
	srv := server.New(cfg.HTTP.ListenAddr, handler)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logOut.Infow("listening", "addr", cfg.HTTP.ListenAddr, "base", cfg.HTTP.BasePath)
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		logOut.Infow("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logOut.Fatalf("server: %v", err)
	}
	logOut.Infow("bye")
}
