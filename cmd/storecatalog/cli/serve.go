package cli

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
	"github.com/suteetoe/storecatalog/internal/handler"
	"github.com/suteetoe/storecatalog/internal/importer"
	mid "github.com/suteetoe/storecatalog/internal/middleware"
	"github.com/suteetoe/storecatalog/internal/repository"
	"github.com/suteetoe/storecatalog/internal/scheduler"
	"github.com/suteetoe/storecatalog/pkg/logger"
	"github.com/suteetoe/storecatalog/pkg/metrics"
	"github.com/suteetoe/storecatalog/pkg/validation"
	"go.uber.org/zap"
)

func NewServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API and the background job",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context())
		},
	}
}

func runServe(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a, err := bootstrap(ctx)
	if err != nil {
		return err
	}
	defer a.close()
	log := a.log

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	httpMetrics := metrics.NewHTTPMetrics(reg, a.cfg.Metrics.Prefix, a.cfg.ServiceName)
	catalogMetrics := metrics.NewCatalogMetrics(reg, a.cfg.Metrics.Prefix)
	log.Info("Prometheus metrics initialized", zap.String("metrics_prefix", a.cfg.Metrics.Prefix))

	repo := repository.New(a.db, catalogMetrics)
	imp := importer.New(a.cfg.Import.File, repo, catalogMetrics)

	jobs := scheduler.New(log)
	heartbeat := scheduler.NewHeartbeat(log, a.cfg.Job.WorkDuration, catalogMetrics)
	if err := jobs.AddJob(a.cfg.Job.Schedule, scheduler.HeartbeatJobName, heartbeat.Run); err != nil {
		return err
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = validation.New()

	e.Use(middleware.Recover())
	e.Use(mid.RequestID())
	e.Use(logger.Middleware(log))
	e.Use(httpMetrics.Middleware())

	e.GET("/metrics", echo.WrapHandler(metrics.Handler(reg)))
	handler.New(repo, imp).Register(e)

	jobs.Start()

	serverErr := make(chan error, 1)
	go func() {
		log.Info("Starting server", zap.String("port", a.cfg.Server.Port))
		if err := e.Start(":" + a.cfg.Server.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	var runErr error
	select {
	case <-ctx.Done():
		log.Info("Shutdown signal received")
	case err := <-serverErr:
		if err != nil {
			log.Error("Server error", zap.Error(err))
			runErr = err
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Warn("Server shutdown failed", zap.Error(err))
	}
	if err := jobs.Stop(shutdownCtx); err != nil {
		log.Warn("Background jobs did not stop in time", zap.Error(err))
	}
	log.Info("Server stopped")

	return runErr
}
