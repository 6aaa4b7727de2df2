package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/leeforge/plminify/json"
	"github.com/leeforge/plminify/logging"
	"github.com/leeforge/plminify/minifyhtml"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// serveConfig holds configuration for the serve command.
type serveConfig struct {
	addr string
}

func newServeCmd(rc *rootConfig) *cobra.Command {
	cfg := &serveConfig{}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the public folder over HTTP",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runServe(ctx, rc, cfg)
		},
	}

	cmd.Flags().StringVar(&cfg.addr, "addr", "", "listen address (default from serve.addr)")

	return cmd
}

func runServe(ctx context.Context, rc *rootConfig, cfg *serveConfig) error {
	loader, hc, err := rc.load()
	if err != nil {
		return err
	}

	logger, closeLogs := logging.New(hc.Logging)
	defer closeLogs()

	addr := cfg.addr
	if addr == "" {
		addr = hc.Serve.Addr
	}
	root := hc.Runtime(loader.Dir(), logger).Paths.PublicRoot

	srv := &http.Server{
		Addr:              addr,
		Handler:           newRouter(root, logger),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("serving public folder", zap.String("addr", addr), logging.Path(root))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func newRouter(publicRoot string, logger *zap.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(logging.HTTPMiddleware(logger))
	r.Use(middleware.Recoverer)

	r.Get("/-/health", func(w http.ResponseWriter, _ *http.Request) {
		body, err := json.Marshal(map[string]string{
			"status":  "ok",
			"plugin":  minifyhtml.PluginName,
			"version": minifyhtml.Version,
		})
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write(body)
	})
	r.Handle("/*", http.FileServer(http.Dir(publicRoot)))

	return r
}
