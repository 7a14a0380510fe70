package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ozzus/hopcraft/internal/api/http/handlers"
	"github.com/ozzus/hopcraft/internal/api/http/web"
	"github.com/ozzus/hopcraft/internal/application/service"
	"github.com/ozzus/hopcraft/internal/application/shell"
	"github.com/ozzus/hopcraft/internal/httpapp"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the web front end",
	Args:  cobra.NoArgs,
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	stopTracing, err := startTracing()
	if err != nil {
		return err
	}
	defer stopTracing()

	tmpl, err := web.Templates()
	if err != nil {
		return fmt.Errorf("parse templates: %w", err)
	}

	deps := newDependencies(ctx, cfg, log)
	defer deps.close()

	store := shell.NewStore(cfg.Session.TTL)
	go store.Run(ctx, cfg.Session.SweepInterval)

	searchCtx, cancelSearches := context.WithCancel(context.Background())
	searches := service.NewSearchService(searchCtx, log, deps.client, store)

	timeouts := handlers.SearchTimeouts{
		Reverse: cfg.API.ReverseTimeout,
		Smart:   cfg.API.SmartTimeout,
	}
	sessions := handlers.NewSessionManager(store, cfg.Session.CookieSecure)
	page := handlers.NewPageHandler(log, sessions, searches, deps.catalog, tmpl, timeouts, cfg.API.AirportsTimeout)
	api := handlers.NewAPIHandler(log, sessions, deps.catalog, timeouts, cfg.API.AirportsTimeout)

	app := httpapp.New(log, cfg.HTTP.Host, cfg.HTTP.Port, httpapp.Timeouts{
		Read:     cfg.HTTP.ReadTimeout,
		Write:    cfg.HTTP.WriteTimeout,
		Shutdown: cfg.HTTP.ShutdownTimeout,
	}, handlers.NewRouter(page, api, cfg.CORS.AllowedOrigins))

	log.Info("hopcraft starting",
		zap.String("env", cfg.Env),
		zap.String("api_base_url", cfg.API.BaseURL),
		zap.Bool("airport_cache", cfg.Redis.Addr != ""),
	)

	errCh := make(chan error, 1)
	go func() {
		errCh <- app.Run()
	}()

	var runErr error
	select {
	case <-ctx.Done():
		log.Info("shutdown signal received")
		app.Stop()
	case runErr = <-errCh:
		if runErr != nil {
			log.Error("http server stopped", zap.Error(runErr))
		}
	}

	cancelSearches()
	searches.Wait()
	return runErr
}
