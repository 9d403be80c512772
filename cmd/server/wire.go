//go:build wireinject
// +build wireinject

package main

import (
	"net/http"

	"github.com/google/wire"

	"examflow/internal/app"
	"examflow/internal/cache"
	"examflow/internal/config"
	httpserver "examflow/internal/http"
	"examflow/internal/http/controller"
	"examflow/internal/logging"
	"examflow/internal/metrics"
	"examflow/internal/queue/rabbitmq"
	"examflow/internal/service/bridge"
	"examflow/internal/service/fetch"
	"examflow/internal/service/lifecycle"
	"examflow/internal/service/notify"
	"examflow/internal/service/scheduler"
	"examflow/internal/sse"
	"examflow/internal/store"
)

func InitializeApp() (*app.App, error) {
	wire.Build(
		config.New,
		logging.New,
		metrics.NewRegistry,
		metrics.New,
		store.NewStore,
		cache.New,
		sse.NewHub,
		wire.Bind(new(notify.Broadcaster), new(*sse.Hub)),
		wire.Bind(new(lifecycle.Broadcaster), new(*sse.Hub)),
		wire.Bind(new(bridge.Clients), new(*sse.Hub)),
		rabbitmq.NewPublisher,
		notify.NewService,
		wire.Bind(new(scheduler.Notifier), new(*notify.Service)),
		scheduler.NewStateStore,
		scheduler.NewLedger,
		scheduler.New,
		scheduler.NewRunner,
		wire.Bind(new(bridge.Checker), new(*scheduler.Scheduler)),
		bridge.NewService,
		wire.Bind(new(rabbitmq.Receiver), new(*bridge.Service)),
		rabbitmq.NewConsumer,
		fetch.NewTransport,
		wire.Bind(new(http.RoundTripper), new(*http.Transport)),
		fetch.NewInterceptor,
		wire.Bind(new(controller.Upstream), new(*fetch.Interceptor)),
		lifecycle.NewManager,
		controller.NewHandler,
		httpserver.NewRouter,
		app.NewApp,
	)
	return &app.App{}, nil
}
