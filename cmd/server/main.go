// Command server exposes the Pāli grammar as a JSON REST API.
//
// Configuration comes from PALI_CONFIG (or ./pali.yaml) and PALI_*
// environment variables; see internal/config. The endpoints are listed in
// internal/httpapi.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/paliplatform/pali"
	"github.com/paliplatform/pali/internal/cache"
	"github.com/paliplatform/pali/internal/config"
	"github.com/paliplatform/pali/internal/httpapi"
	"github.com/paliplatform/pali/internal/logging"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logger, err := logging.New(cfg.Log)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	srv, err := newServer(cfg, logger)
	if err != nil {
		return err
	}
	return serve(ctx, srv, cfg.Server, logger)
}

// newServer loads the grammar and assembles the HTTP server.
func newServer(cfg *config.Config, logger *zap.Logger) (*http.Server, error) {
	var (
		g   *pali.Grammar
		err error
	)
	if cfg.Data.Dir != "" {
		logger.Info("loading grammar data", zap.String("dir", cfg.Data.Dir))
		g, err = pali.New(cfg.Data.Dir, pali.WithLogger(logger))
	} else {
		logger.Info("loading embedded grammar data")
		g, err = pali.NewFromFS(pali.EmbeddedData(), pali.WithLogger(logger))
	}
	if err != nil {
		return nil, fmt.Errorf("load grammar: %w", err)
	}

	numerals, err := cache.New(g, cfg.Cache.Size)
	if err != nil {
		return nil, fmt.Errorf("numeral cache: %w", err)
	}

	api := httpapi.New(g, numerals, logger)
	handler := httpapi.Chain(
		httpapi.RequestID,
		httpapi.Recovery(logger),
		httpapi.AccessLog(logger),
		httpapi.CORS(cfg.CORS),
	)(api.Routes())

	return &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}, nil
}

// serve runs srv until ctx is cancelled, then shuts it down gracefully.
func serve(ctx context.Context, srv *http.Server, cfg config.ServerConfig, logger *zap.Logger) error {
	eg, ctx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		logger.Info("listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})
	eg.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		logger.Info("shutting down")
		return srv.Shutdown(shutdownCtx)
	})
	return eg.Wait()
}
