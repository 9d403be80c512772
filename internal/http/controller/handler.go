package controller

import (
	"net/http"
	"net/url"

	"go.uber.org/zap"

	"examflow/internal/config"
	"examflow/internal/service/bridge"
	"examflow/internal/service/lifecycle"
	"examflow/internal/sse"
)

// Upstream is the transport behind the catch-all route; in production it is
// the fetch interceptor.
type Upstream http.RoundTripper

type Handler struct {
	cfg       *config.Config
	bridge    *bridge.Service
	lifecycle *lifecycle.Manager
	hub       *sse.Hub
	transport http.RoundTripper
	origin    *url.URL
	log       *zap.Logger
}

func NewHandler(cfg *config.Config, bridgeSvc *bridge.Service, manager *lifecycle.Manager, hub *sse.Hub, transport Upstream, logger *zap.Logger) *Handler {
	return &Handler{
		cfg:       cfg,
		bridge:    bridgeSvc,
		lifecycle: manager,
		hub:       hub,
		transport: transport,
		origin:    cfg.AppOrigin,
		log:       logger,
	}
}
