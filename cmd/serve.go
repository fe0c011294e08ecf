package cmd

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"golang.org/x/time/rate"

	"github.com/vitrina-piezas/catalog/internal/handlers"
	"github.com/vitrina-piezas/catalog/internal/storage"
)

func newServeCmd() *cobra.Command {
	var flags catalogFlags
	var port string
	var cacheTTL time.Duration
	var rateLimit float64

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the catalog API and storefront server",
		Long: `Starts an HTTP server exposing the catalog.

  GET /api/products     product records (image paths rooted at /)
  GET /api/categories   distinct categories
  GET /api/config       catalog config with the digital template price
  GET /metrics          Prometheus metrics
  GET /...              storefront page and catalog files

The tree is rescanned on every API request unless --cache-ttl is set.`,
		Example: `  # Serve the catalog in the current directory on port 3000
  catalog serve

  # Serve another directory, caching scans for a minute
  catalog serve --root ./tienda --port 8080 --cache-ttl 1m`,
		RunE: func(cmd *cobra.Command, args []string) error {
			settings := flags.settings()
			if port != "" {
				settings.Port = port
			}
			if cmd.Flags().Changed("cache-ttl") {
				settings.CacheTTL = cacheTTL
			}
			if cmd.Flags().Changed("rate-limit") {
				settings.RateLimit = rateLimit
			}

			ignore := flags.ignoreList()
			store := storage.New(settings.CacheTTL, func() (*storage.Snapshot, error) {
				return loadSnapshot(settings, ignore)
			})

			// Scan once up front so problems show in the log at start-up
			snap, err := store.Get()
			if err != nil {
				return err
			}
			slog.Info("Catalog scanned", "products", len(snap.Records), "root", settings.Root)

			var limiter *rate.Limiter
			if settings.RateLimit > 0 {
				limiter = rate.NewLimiter(rate.Limit(settings.RateLimit), settings.RateBurst)
			}
			handler := handlers.New(store, settings.Root, limiter)

			// Set up routes
			mux := http.NewServeMux()
			mux.HandleFunc("/api/products", handler.RateLimit(handler.HandleProducts))
			mux.HandleFunc("/api/categories", handler.RateLimit(handler.HandleCategories))
			mux.HandleFunc("/api/config", handler.RateLimit(handler.HandleConfig))
			mux.HandleFunc("/api/", handler.HandleAPINotFound)
			mux.Handle("/metrics", promhttp.Handler())
			mux.HandleFunc("/", handler.HandleStatic)
			mux.HandleFunc("/healthcheck", func(w http.ResponseWriter, r *http.Request) {
				if _, err := w.Write([]byte("OK")); err != nil {
					slog.Error("Unable to write healthcheck", "err", err)
				}
			})

			addr := ":" + settings.Port
			server := &http.Server{
				Addr:    addr,
				Handler: handlers.CORS(mux),
			}

			// Start server in goroutine
			serverErr := make(chan error, 1)
			go func() {
				slog.Info("Catalog available", "addr", addr, "url", "http://localhost"+addr)
				if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					serverErr <- err
				}
			}()

			// Wait for context cancellation (Ctrl+C) or server error
			select {
			case <-cmd.Context().Done():
				slog.Info("Shutting down server...")
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := server.Shutdown(shutdownCtx); err != nil {
					slog.Error("Server shutdown failed", "err", err)
					return err
				}
				slog.Info("Server stopped")
				return nil
			case err := <-serverErr:
				return err
			}
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVarP(&port, "port", "p", "", "Port to listen on (default $PORT or 3000)")
	cmd.Flags().DurationVar(&cacheTTL, "cache-ttl", 0, "Reuse a scan for this long (0 rescans on every request)")
	cmd.Flags().Float64Var(&rateLimit, "rate-limit", 0, "API requests per second (default $CATALOG_RATE_LIMIT or 20, 0 disables)")

	return cmd
}
