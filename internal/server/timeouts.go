// internal/server/timeouts.go
//
// HTTP server helper with robust timeouts and ctx-driven shutdown.
//
// Production hardening recommends:
//
//   • ReadTimeout   – abort slow-loris headers (10 s)
//   • WriteTimeout  – cap total response time (15 s)
//   • IdleTimeout   – close keep-alives on idle clients (60 s)
//
// New centralises those defaults so cmd/web doesn’t repeat boilerplate, and
// Run pairs ListenAndServe with a graceful Shutdown when the supplied context
// is cancelled (typically by SIGINT/SIGTERM via signal.NotifyContext).
//

package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"
)

// New constructs an *http.Server with sensible defaults.
func New(addr string, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
		// TLSConfig may be injected by callers (e.g., autocert).
	}
}

// Run serves until ctx is cancelled, then drains in-flight requests for up to
// grace.  A clean shutdown returns nil; http.ErrServerClosed is swallowed
// because it is the expected ListenAndServe result after Shutdown.
func Run(ctx context.Context, srv *http.Server, grace time.Duration) error {
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		shutCtx, cancel := context.WithTimeout(context.Background(), grace)
		defer cancel()
		return srv.Shutdown(shutCtx)
	})

	return g.Wait()
}
