package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gyan-shrestha/you-ai-hackathon/internal/bootstrap"
	"github.com/gyan-shrestha/you-ai-hackathon/internal/config"
	"github.com/gyan-shrestha/you-ai-hackathon/internal/core/domain"
	"github.com/gyan-shrestha/you-ai-hackathon/internal/infrastructure/queue/nats"
	"github.com/gyan-shrestha/you-ai-hackathon/internal/observability/logging"
	"github.com/gyan-shrestha/you-ai-hackathon/internal/observability/metrics"
)

const askTimeout = 5 * time.Minute

func main() {
	cfg := config.Load()
	slog.SetDefault(logging.NewJSONLogger("worker", cfg.LogLevel))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	workerMetrics := metrics.NewWorkerMetrics("worker")
	observer := metrics.NewPipelineMetrics("worker", workerMetrics.Registry())

	app, err := bootstrap.New(ctx, cfg, observer)
	if err != nil {
		slog.Error("bootstrap_failed", "error", err)
		os.Exit(1)
	}
	defer app.Close()

	queue, err := nats.New(cfg.NATSURL, cfg.AskSubject)
	if err != nil {
		slog.Error("nats_connect_failed", "error", err)
		os.Exit(1)
	}
	defer queue.Close()

	metricsServer := &http.Server{
		Addr:              ":" + cfg.WorkerMetricsPort,
		Handler:           workerMetrics.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		if err := metricsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("worker_metrics_server_failed", "error", err)
		}
	}()

	slog.Info("worker_subscribed", "subject", cfg.AskSubject, "queue_group", nats.QueueGroup)
	err = queue.ServeAsk(ctx, func(handlerCtx context.Context, question string) (*domain.PipelineResult, error) {
		askCtx, cancel := context.WithTimeout(handlerCtx, askTimeout)
		defer cancel()

		workerMetrics.StartAsk()
		start := time.Now()
		result, err := app.Pipeline.Run(askCtx, question)
		workerMetrics.FinishAsk("worker", time.Since(start), err)
		return result, err
	})
	if err != nil {
		slog.Error("worker_serve_failed", "error", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = metricsServer.Shutdown(shutdownCtx)
}
