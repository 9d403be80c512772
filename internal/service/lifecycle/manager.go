package lifecycle

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"sync"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"examflow/internal/cache"
	"examflow/internal/config"
	"examflow/internal/domain"
	"examflow/internal/metrics"
	"examflow/internal/model"
	"examflow/internal/repository"
	"examflow/internal/service/fetch"
	"examflow/internal/telemetry"
)

// Broadcaster delivers events to connected pages.
type Broadcaster interface {
	Broadcast(event model.Event)
}

// Manager installs the asset list into the current namespace and retires
// namespaces left behind by earlier deployments.
type Manager struct {
	cache   *cache.Cache
	repo    repository.CacheRepository
	client  *http.Client
	assets  []string
	clients Broadcaster
	metrics *metrics.Metrics
	log     *zap.Logger

	mu    sync.RWMutex
	state domain.LifecycleState

	// updating serializes Update runs.
	updating sync.Mutex
}

func NewManager(cfg *config.Config, c *cache.Cache, repo repository.CacheRepository, transport http.RoundTripper, clients Broadcaster, m *metrics.Metrics, logger *zap.Logger) (*Manager, error) {
	assets, err := fetch.ResolveAssets(cfg.AppOrigin, cfg.Assets)
	if err != nil {
		return nil, err
	}
	return &Manager{
		cache:   c,
		repo:    repo,
		client:  &http.Client{Transport: transport, Timeout: cfg.UpstreamTimeout},
		assets:  assets,
		clients: clients,
		metrics: m,
		log:     logger,
		state:   domain.StateParsed,
	}, nil
}

func (m *Manager) State() domain.LifecycleState {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state
}

func (m *Manager) Namespace() string {
	return m.cache.Namespace()
}

func (m *Manager) setState(s domain.LifecycleState) {
	m.mu.Lock()
	m.state = s
	m.mu.Unlock()
	m.metrics.LifecycleTransition.WithLabelValues(string(s)).Inc()
	m.log.Info("lifecycle state changed", zap.String("state", string(s)), zap.String("namespace", m.cache.Namespace()))
}

// Update installs and, on success, activates right away.
func (m *Manager) Update(ctx context.Context) error {
	m.updating.Lock()
	defer m.updating.Unlock()

	if err := m.Install(ctx); err != nil {
		return err
	}
	return m.Activate(ctx)
}

type fetchedAsset struct {
	key    string
	status int
	header http.Header
	body   []byte
}

// Install fetches every asset and stores them only when all succeeded.
func (m *Manager) Install(ctx context.Context) error {
	ctx, span := telemetry.Tracer().Start(ctx, "lifecycle.install")
	defer span.End()
	span.SetAttributes(attribute.Int("assets", len(m.assets)))

	m.setState(domain.StateInstalling)

	fetched := make([]fetchedAsset, len(m.assets))
	g, gctx := errgroup.WithContext(ctx)
	for i, key := range m.assets {
		g.Go(func() error {
			asset, err := m.fetchAsset(gctx, key)
			if err != nil {
				return err
			}
			fetched[i] = asset
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return m.failInstall(span, err)
	}

	// Once every fetch succeeded the write phase runs to completion.
	storeCtx := context.WithoutCancel(ctx)
	if err := m.cache.Open(storeCtx); err != nil {
		return m.failInstall(span, fmt.Errorf("open namespace: %w", err))
	}
	for _, a := range fetched {
		if err := m.cache.Put(storeCtx, a.key, a.status, a.header, a.body); err != nil {
			return m.failInstall(span, fmt.Errorf("store asset %s: %w", a.key, err))
		}
	}

	m.setState(domain.StateInstalled)
	return nil
}

func (m *Manager) failInstall(span trace.Span, err error) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	m.log.Error("cache install failed", zap.String("namespace", m.cache.Namespace()), zap.Error(err))
	m.setState(domain.StateRedundant)
	return err
}

func (m *Manager) fetchAsset(ctx context.Context, key string) (fetchedAsset, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, key, nil)
	if err != nil {
		return fetchedAsset{}, fmt.Errorf("%w: %s: %v", domain.ErrAssetFetch, key, err)
	}
	resp, err := m.client.Do(req)
	if err != nil {
		return fetchedAsset{}, fmt.Errorf("%w: %s: %v", domain.ErrAssetFetch, key, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fetchedAsset{}, fmt.Errorf("%w: %s: status %d", domain.ErrAssetFetch, key, resp.StatusCode)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fetchedAsset{}, fmt.Errorf("%w: %s: %v", domain.ErrAssetFetch, key, err)
	}
	header := cache.StorableHeader(resp.Header)
	header.Del("Content-Length")
	return fetchedAsset{key: key, status: resp.StatusCode, header: header, body: body}, nil
}

// Activate deletes every namespace other than the current one and claims
// connected pages. Individual deletion failures are logged, not returned.
func (m *Manager) Activate(ctx context.Context) error {
	ctx, span := telemetry.Tracer().Start(ctx, "lifecycle.activate")
	defer span.End()

	if s := m.State(); s != domain.StateInstalled && s != domain.StateActivated {
		return domain.ErrInstallNotCompleted
	}
	m.setState(domain.StateActivating)

	names, err := m.repo.ListNamespaces(ctx)
	if err != nil {
		span.RecordError(err)
		m.log.Error("list cache namespaces failed", zap.Error(err))
	}

	current := m.cache.Namespace()
	var g errgroup.Group
	for _, name := range names {
		if name == current {
			continue
		}
		g.Go(func() error {
			deleted, err := m.repo.DeleteNamespace(ctx, name)
			if err != nil {
				m.log.Error("delete stale namespace failed", zap.String("namespace", name), zap.Error(err))
				return nil
			}
			if deleted {
				m.metrics.NamespacesPurged.Inc()
				m.log.Info("deleted stale namespace", zap.String("namespace", name))
			}
			return nil
		})
	}
	_ = g.Wait()

	m.clients.Broadcast(model.Event{Type: model.EventClaim, Data: map[string]string{"namespace": current}})
	m.setState(domain.StateActivated)
	return nil
}
