package app

import (
	"context"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"examflow/internal/config"
	"examflow/internal/queue"
	"examflow/internal/service/lifecycle"
	"examflow/internal/service/scheduler"
	"examflow/internal/sse"
	"examflow/internal/telemetry"
)

type App struct {
	cfg       *config.Config
	hub       *sse.Hub
	consumer  queue.Consumer
	runner    *scheduler.Runner
	lifecycle *lifecycle.Manager
	server    *http.Server
	logger    *zap.Logger
	wg        sync.WaitGroup

	shutdownTelemetry func(context.Context) error
}

func NewApp(cfg *config.Config, hub *sse.Hub, consumer queue.Consumer, runner *scheduler.Runner, manager *lifecycle.Manager, router *gin.Engine, logger *zap.Logger) *App {
	return &App{
		cfg:       cfg,
		hub:       hub,
		consumer:  consumer,
		runner:    runner,
		lifecycle: manager,
		server: &http.Server{
			Addr:    cfg.HTTPAddr,
			Handler: router,
		},
		logger:            logger,
		shutdownTelemetry: func(context.Context) error { return nil },
	}
}

func (a *App) Run(ctx context.Context) error {
	shutdown, err := telemetry.Init(ctx, a.cfg)
	if err != nil {
		return err
	}
	a.shutdownTelemetry = shutdown

	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		a.hub.Run(ctx)
	}()

	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		if err := a.consumer.Start(ctx); err != nil && ctx.Err() == nil {
			a.logger.Error("consumer stopped", zap.Error(err))
		}
	}()

	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		if err := a.runner.Start(ctx); err != nil {
			a.logger.Error("notification timer stopped", zap.Error(err))
		}
	}()

	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		if err := a.lifecycle.Update(ctx); err != nil {
			a.logger.Error("initial cache install failed", zap.String("namespace", a.lifecycle.Namespace()), zap.Error(err))
		}
	}()

	a.logger.Info("worker listening",
		zap.String("addr", a.cfg.HTTPAddr),
		zap.String("app_origin", a.cfg.AppOrigin.String()),
		zap.String("namespace", a.cfg.CacheNamespace),
	)
	return a.server.ListenAndServe()
}

func (a *App) Shutdown(ctx context.Context) error {
	a.logger.Info("graceful shutdown started")
	shutdownErr := a.server.Shutdown(ctx)

	done := make(chan struct{})
	go func() {
		a.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		if err := a.shutdownTelemetry(ctx); err != nil {
			a.logger.Warn("telemetry shutdown failed", zap.Error(err))
		}
		a.logger.Info("graceful shutdown completed")
		return shutdownErr
	case <-ctx.Done():
		if shutdownErr != nil {
			return shutdownErr
		}
		return ctx.Err()
	}
}

func (a *App) Logger() *zap.Logger {
	return a.logger
}
