package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jbweber/homelab/pokereview/internal/api"
	"github.com/jbweber/homelab/pokereview/internal/config"
	"github.com/jbweber/homelab/pokereview/internal/datastore"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

func newServeCommand(a *app) *cobra.Command {
	var port string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("port") {
				a.cfg.Port = port
				if err := a.cfg.Validate(); err != nil {
					return err
				}
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			ln, err := net.Listen("tcp", a.cfg.Addr())
			if err != nil {
				return fmt.Errorf("failed to listen on %s: %w", a.cfg.Addr(), err)
			}
			return serve(ctx, a.cfg, a.log, ln)
		},
	}

	cmd.Flags().StringVarP(&port, "port", "p", "", "listen port (env POKEREVIEW_PORT)")
	return cmd
}

// serve runs the API on ln until ctx is done, then shuts down gracefully
// within cfg.ShutdownTimeout. ln is closed on return.
func serve(ctx context.Context, cfg *config.Config, log zerolog.Logger, ln net.Listener) error {
	ds, err := datastore.Open(ctx, cfg)
	if err != nil {
		_ = ln.Close()
		return err
	}
	defer func() {
		if err := ds.Close(); err != nil {
			log.Error().Err(err).Msg("failed to close database")
		}
	}()

	router, err := api.NewAPI(ds,
		api.WithLogger(log),
		api.WithCORSOrigins(cfg.CORSOrigins),
	).Router()
	if err != nil {
		_ = ln.Close()
		return fmt.Errorf("failed to build router: %w", err)
	}

	srv := &http.Server{
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info().Str("addr", ln.Addr().String()).Str("db", cfg.DBPath).Msg("pokereview listening")
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info().Msg("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
		return nil
	})

	return g.Wait()
}
