package app

import (
	"context"
	"fmt"

	"marketdash/config"
	"marketdash/internal/dashboard/api"
	"marketdash/internal/dashboard/registry"
	"marketdash/internal/dashboard/scheduler"
	"marketdash/internal/dashboard/settings"
	"marketdash/internal/dashboard/stream"
	"marketdash/internal/dashboard/telemetry"
	"marketdash/pkg/yahoo"

	"go.uber.org/zap"
)

// Run wires the dashboard from cfg and blocks until ctx is cancelled or the HTTP server fails.
// History is loaded once; snapshots are refreshed by the scheduler from then on.
func Run(ctx context.Context, cfg *config.Config, logger *zap.Logger) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	historyStart, err := cfg.Dashboard.HistoryStartTime()
	if err != nil {
		return fmt.Errorf("invalid history start: %w", err)
	}

	client := yahoo.NewClient(yahoo.Options{
		BaseURL:      cfg.Feed.BaseURL,
		Timeout:      cfg.Feed.Timeout,
		UserAgent:    cfg.Feed.UserAgent,
		APIKeyHeader: cfg.Feed.APIKeyHeader,
		APIKey:       cfg.Feed.ResolveAPIKey(cfg.Log.Environment),
	})

	reg := registry.Default()
	settingsStore, err := settings.NewStore(settings.Settings{
		AutoRefresh:    cfg.Dashboard.AutoRefresh,
		AlertThreshold: cfg.Dashboard.AlertThreshold,
	})
	if err != nil {
		return err
	}

	recorder := telemetry.NewRecorder()
	hub := stream.NewHub(logger, recorder)

	dash := New(reg, client, settingsStore, recorder, hub, logger, Options{
		HistoryStart: historyStart,
		LookbackDays: cfg.Dashboard.SnapshotLookbackDays,
		TopN:         cfg.Dashboard.TopN,
		Seed:         cfg.Dashboard.SimulationSeed,
	})
	hub.Initial = func() (string, any) { return stream.TopicState, dash.State() }

	sched := scheduler.New(cfg.Dashboard.RefreshInterval,
		func(ctx context.Context, reason scheduler.Reason) {
			if _, err := dash.Refresh(ctx, string(reason)); err != nil && ctx.Err() == nil {
				logger.Error("refresh failed", zap.String("reason", string(reason)), zap.Error(err))
			}
		},
		func() bool { return settingsStore.Get().AutoRefresh },
		logger,
	)
	dash.SetTrigger(sched.Trigger)

	server := api.NewServer(
		api.NewHandler(dash, reg, settingsStore, hub, recorder.Handler(), logger),
		logger,
		api.WithHost(cfg.Server.Host),
		api.WithPort(cfg.Server.Port),
		api.WithTimeouts(cfg.Server.ReadTimeout, cfg.Server.WriteTimeout),
	)
	serverErr := server.Start()

	logger.Info("loading history", zap.Int("currencies", len(reg.Currencies())),
		zap.Int("commodities", len(reg.Commodities())), zap.Time("since", historyStart))
	if err := dash.LoadHistory(ctx); err != nil && ctx.Err() == nil {
		logger.Error("history load failed", zap.Error(err))
	}

	schedDone := sched.Start(ctx)

	var runErr error
	select {
	case <-ctx.Done():
	case err := <-serverErr:
		if err != nil {
			runErr = fmt.Errorf("http server: %w", err)
		}
	}
	cancel()

	shutdownCtx, stop := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer stop()
	if err := server.Stop(shutdownCtx); err != nil {
		logger.Warn("http server shutdown", zap.Error(err))
	}
	hub.Close()
	<-schedDone

	logger.Info("dashboard stopped")
	return runErr
}
