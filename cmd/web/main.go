// cmd/web/main.go
//
// Folio – HTTP entry point.
//
// Boot sequence
// -------------
//
//  1. Install a signal-aware context (SIGINT/SIGTERM drain the server).
//
//  2. Load config: conf/.env → conf/folio.yaml → FOLIO_ env overlay, with
//     `vault:` references resolved through the Vault client.
//
//  3. Start the daily rotating logger (tees to console when in a TTY).
//
//  4. Optional enrichments: GeoLite2 database, MySQL submission archive.
//
//  5. Wire the handler: view engine, form sessions, endpoint sender, and
//     the owner-notification dispatcher.
//
//  6. Assemble the middleware chain (request info → security headers →
//     optional ForceHTTPS), expose Prometheus /metrics, and serve with
//     hardened timeouts until the context is cancelled.
//
// Large comment blocks are framed by blank “//” lines; inline comments use
// a single “//”.
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/averyhall/folio/internal/config"
	"github.com/averyhall/folio/internal/contact"
	"github.com/averyhall/folio/internal/database"
	"github.com/averyhall/folio/internal/logger"
	"github.com/averyhall/folio/internal/middleware"
	"github.com/averyhall/folio/internal/notify"
	"github.com/averyhall/folio/internal/requestinfo"
	"github.com/averyhall/folio/internal/server"
	"github.com/averyhall/folio/internal/view"
	"github.com/averyhall/folio/internal/web"
)

const shutdownGrace = 10 * time.Second

// runningInTTY returns true when stdout is a character device.
func runningInTTY() bool {
	fi, err := os.Stdout.Stat()
	if err != nil {
		return false
	}
	return fi.Mode()&os.ModeCharDevice != 0
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	//
	// ── 1.  Config (bootstrap logger is the zap global default) ────────
	//
	cfg, err := config.Load(ctx)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logOut, err := logger.New(cfg.Paths.Root, runningInTTY())
	if err != nil {
		log.Fatalf("start logger: %v", err)
	}
	defer func() { _ = logOut.Sync() }()

	// SIGHUP re-reads the config tree.  Boot-time wiring (listen address,
	// template set, DB pool) keeps its original values; live readers such as
	// the admin-token check pick up the new config.Get() snapshot.
	hup := make(chan os.Signal, 1)
	signal.Notify(hup, syscall.SIGHUP)
	go func() {
		for range hup {
			if err := config.Reload(ctx); err != nil {
				logOut.Errorw("config reload failed", "err", err)
				continue
			}
			logOut.Infow("config reloaded",
				"contact_endpoint", config.Get().Contact.Endpoint)
		}
	}()

	//
	// ── 2.  Optional enrichments ────────────────────────────────────────
	//
	if cfg.Geo.DBPath != "" {
		if err := requestinfo.InitGeo(cfg.Geo.DBPath); err != nil {
			logOut.Warnw("geo database unavailable, geolocation disabled",
				"path", cfg.Geo.DBPath, "err", err)
		}
	}

	var store *contact.Store
	if cfg.Database.DSN != "" {
		db, err := database.Open(cfg.Database.DSN)
		if err != nil {
			logOut.Fatalw("connect archive DB", "err", err)
		}
		defer db.Close()
		store = contact.NewStore(db)
		logOut.Infow("submission archive online")
	} else {
		logOut.Infow("submission archive disabled")
	}

	//
	// ── 3.  View engine + contact pipeline ──────────────────────────────
	//
	views, err := view.New(filepath.Join(cfg.Paths.Root, "web", "templates"))
	if err != nil {
		logOut.Fatalw("parse templates", "err", err)
	}

	sender := contact.NewEndpointSender(cfg.Contact.Endpoint)
	notifier := notify.New(logOut)
	defer notifier.Close()

	handler := web.New(cfg, views, sender, store, notifier, logOut)

	//
	// ── 4.  Router + middleware chain ───────────────────────────────────
	//
	r := chi.NewRouter()
	r.Use(requestinfo.Enrich)
	r.Use(middleware.Security)
	r.Handle("/metrics", promhttp.Handler())
	r.Mount("/", handler.Routes())

	root := middleware.ForceHTTPS(cfg.HTTP.ForceHTTPS, r)

	//
	// ── 5.  Serve until signalled ───────────────────────────────────────
	//
	srv := server.New(cfg.HTTP.ListenAddr, root)
	logOut.Infow("listening", "addr", cfg.HTTP.ListenAddr)
	if err := server.Run(ctx, srv, shutdownGrace); err != nil {
		logOut.Fatalw("http server", "err", err)
	}
	logOut.Infow("server drained, goodbye")
}
