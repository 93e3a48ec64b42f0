package app

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"environapi/internal/config"
	"environapi/internal/httpapi"
	"environapi/internal/modules/environment"
	environmentviews "environapi/internal/modules/environment/views"
)

func Run(ctx context.Context, cfg config.Config) error {
	slog.Info("config loaded",
		"appEnv", cfg.AppEnv,
		"logLevel", cfg.LogLevel.String(),
		"httpAddr", cfg.HTTPAddr,
		"locations", strings.Join(cfg.Locations, ","),
		"defaultStart", cfg.DefaultStart.Format(time.DateOnly),
		"defaultEnd", cfg.DefaultEnd.Format(time.DateOnly),
		"maxRangeDays", cfg.MaxRangeDays,
		"shutdownTimeout", cfg.ShutdownTimeout,
		"configFile", cfg.ConfigFile,
	)

	if err := environmentviews.LoadTemplates(); err != nil {
		return err
	}
	mux := httpapi.NewMux(environmentviews.Ready)
	environment.RegisterFeature(mux, cfg, slog.Default())

	srv := httpapi.NewServer(cfg, mux)
	return serve(ctx, srv, cfg)
}

// serve runs srv until ctx is cancelled or the listener fails, then drains
// in-flight requests within cfg.ShutdownTimeout.
func serve(ctx context.Context, srv *http.Server, cfg config.Config) error {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		slog.Info("http listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()

		slog.Info("http shutting down")
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		return err
	}
	return ctx.Err()
}
