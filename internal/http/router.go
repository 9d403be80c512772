package http

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.uber.org/zap"

	"examflow/internal/config"
	"examflow/internal/http/controller"
	"examflow/internal/http/middleware"
)

func NewRouter(cfg *config.Config, handler *controller.Handler, registry *prometheus.Registry, logger *zap.Logger) *gin.Engine {
	router := gin.New()
	router.Use(otelgin.Middleware(cfg.OTELServiceName), middleware.ZapLogger(logger), middleware.ZapRecovery(logger))

	router.GET("/health", func(c *gin.Context) {
		c.Status(200)
	})
	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(registry, promhttp.HandlerOpts{})))

	sw := router.Group("/sw")
	sw.GET("/lifecycle", handler.Lifecycle)
	sw.POST("/lifecycle/update", handler.LifecycleUpdate)
	sw.POST("/messages", handler.Messages)
	sw.PUT("/permission", handler.Permission)
	sw.GET("/state", handler.State)
	sw.POST("/notifications/click", handler.Click)
	sw.GET("/clients", handler.Clients)

	router.NoRoute(handler.Proxy)

	return router
}
