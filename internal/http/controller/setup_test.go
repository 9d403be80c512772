package controller

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"examflow/internal/cache"
	"examflow/internal/config"
	"examflow/internal/metrics"
	"examflow/internal/model"
	"examflow/internal/service/bridge"
	"examflow/internal/service/fetch"
	"examflow/internal/service/lifecycle"
	"examflow/internal/service/notify"
	"examflow/internal/service/scheduler"
	"examflow/internal/sse"
	"examflow/internal/store/memory"
)

type noopPublisher struct{}

func (n *noopPublisher) Publish(ctx context.Context, payload []byte, routingKey string) error {
	return nil
}

type stack struct {
	origin *httptest.Server
	cfg    *config.Config
	cache  *cache.Cache
	hub    *sse.Hub
	router *gin.Engine
}

func newStack(t *testing.T, assets ...string) *stack {
	t.Helper()
	gin.SetMode(gin.TestMode)

	mux := http.NewServeMux()
	mux.HandleFunc("/index.html", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = io.WriteString(w, "<html>shell</html>")
	})
	mux.HandleFunc("/manifest.json", func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"name":"examflow"}`)
	})
	mux.HandleFunc("/api/echo", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Method", r.Method)
		_, _ = io.Copy(w, r.Body)
	})
	origin := httptest.NewServer(mux)
	t.Cleanup(origin.Close)

	appOrigin, err := config.ParseOrigin(origin.URL)
	require.NoError(t, err)
	if len(assets) == 0 {
		assets = []string{"./index.html", "/manifest.json"}
	}
	cfg := &config.Config{
		AppOrigin:              appOrigin,
		AppScope:               "/",
		CacheNamespace:         "examflow-cache-test",
		Assets:                 assets,
		CacheMaxEntryBytes:     1 << 20,
		UpstreamTimeout:        time.Second,
		SSEHeartbeat:           5 * time.Second,
		NotificationPermission: "granted",
		Location:               time.UTC,
		RabbitPublishPrefix:    "notification",
		OTELServiceName:        "examflow-test",
	}

	logger := zap.NewNop()
	repo := memory.New(logger)
	c := cache.New(repo, cfg)
	m := metrics.New(prometheus.NewRegistry())

	hub := sse.NewHub()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	go hub.Run(ctx)

	states, err := scheduler.NewStateStore(cfg)
	require.NoError(t, err)
	notifier := notify.NewService(cfg, hub, &noopPublisher{}, logger)
	sched := scheduler.New(cfg, scheduler.NewLedger(c, logger), notifier, m, logger)
	bridgeSvc := bridge.NewService(cfg, states, sched, hub, logger)

	transport := fetch.NewTransport(cfg)
	interceptor, err := fetch.NewInterceptor(cfg, c, transport, m, logger)
	require.NoError(t, err)
	manager, err := lifecycle.NewManager(cfg, c, repo, transport, hub, m, logger)
	require.NoError(t, err)

	handler := NewHandler(cfg, bridgeSvc, manager, hub, interceptor, logger)
	router := gin.New()
	router.GET("/sw/lifecycle", handler.Lifecycle)
	router.POST("/sw/lifecycle/update", handler.LifecycleUpdate)
	router.POST("/sw/messages", handler.Messages)
	router.PUT("/sw/permission", handler.Permission)
	router.GET("/sw/state", handler.State)
	router.POST("/sw/notifications/click", handler.Click)
	router.GET("/sw/clients", handler.Clients)
	router.NoRoute(handler.Proxy)

	return &stack{origin: origin, cfg: cfg, cache: c, hub: hub, router: router}
}

func performJSONRequest(t *testing.T, router *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(method, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func performRequest(router *gin.Engine, method, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func examTomorrow(title, subject string) model.Exam {
	return model.Exam{
		Title:   title,
		Subject: subject,
		Start:   time.Now().UTC().AddDate(0, 0, 1).Format("2006-01-02"),
	}
}
