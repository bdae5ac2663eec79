package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/aliskhannn/lingua/internal/config"
	"github.com/aliskhannn/lingua/internal/delivery/httpapi"
	"github.com/aliskhannn/lingua/internal/service"
)

var errMissingJWTSecret = errors.New("AUTH_JWT_SECRET is required")

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API and the leaderboard refresher",
	RunE: func(cmd *cobra.Command, args []string) error {
		if cfg.Auth.JWTSecret == "" {
			return errMissingJWTSecret
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		store, closeStore, err := openStore(ctx, cfg.DB, migrateOnStart)
		if err != nil {
			return err
		}
		defer closeStore()

		board := service.NewLeaderboard(store.UserProgress, log)
		handler := httpapi.NewHandler(
			service.NewLearnService(store, board, cfg.Auth.AdminIDs),
			service.NewEconomyService(store, board, log),
			service.NewAdminService(store, board, cfg.Auth.AdminIDs),
			[]byte(cfg.Auth.JWTSecret),
			log,
		)

		srv := &http.Server{
			Addr:         cfg.HTTP.Addr,
			Handler:      handler.Routes(),
			ReadTimeout:  cfg.HTTP.ReadTimeout,
			WriteTimeout: cfg.HTTP.WriteTimeout,
		}

		g, ctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			log.Info("http server started", zap.String("addr", srv.Addr))
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		})
		g.Go(func() error {
			return board.Start(ctx, cfg.Leaderboard.RefreshSpec)
		})
		g.Go(func() error {
			<-ctx.Done()
			return shutdown(srv, cfg.HTTP)
		})

		if err := g.Wait(); err != nil {
			return err
		}
		log.Info("http server stopped")
		return nil
	},
}

func shutdown(srv *http.Server, httpCfg config.HTTP) error {
	log.Info("shutdown signal received")

	ctx, cancel := context.WithTimeout(context.Background(), httpCfg.ShutdownTimeout)
	defer cancel()
	return srv.Shutdown(ctx)
}
