package fetch

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"go.uber.org/zap"

	"examflow/internal/cache"
	"examflow/internal/config"
	"examflow/internal/domain"
	"examflow/internal/metrics"
)

// Interceptor answers requests from the cache namespace first and the
// network second, filling the cache with same-origin GET responses and
// falling back to the app shell for known assets when offline.
type Interceptor struct {
	cache         *cache.Cache
	next          http.RoundTripper
	origin        *url.URL
	assets        map[string]struct{}
	shellKey      string
	maxEntryBytes int64
	metrics       *metrics.Metrics
	log           *zap.Logger
}

func NewInterceptor(cfg *config.Config, c *cache.Cache, next http.RoundTripper, m *metrics.Metrics, logger *zap.Logger) (*Interceptor, error) {
	keys, err := ResolveAssets(cfg.AppOrigin, cfg.Assets)
	if err != nil {
		return nil, err
	}
	assets := make(map[string]struct{}, len(keys))
	for _, k := range keys {
		assets[k] = struct{}{}
	}
	return &Interceptor{
		cache:         c,
		next:          next,
		origin:        cfg.AppOrigin,
		assets:        assets,
		shellKey:      ShellKey(cfg.AppOrigin),
		maxEntryBytes: cfg.CacheMaxEntryBytes,
		metrics:       m,
		log:           logger,
	}, nil
}

func (i *Interceptor) RoundTrip(req *http.Request) (*http.Response, error) {
	if req.URL.Scheme != "http" && req.URL.Scheme != "https" {
		return i.next.RoundTrip(req)
	}

	ctx := req.Context()
	key := cache.Key(req.URL)

	if req.Method == http.MethodGet {
		entry, err := i.cache.Match(ctx, key)
		switch {
		case err == nil:
			i.metrics.CacheLookups.WithLabelValues("hit").Inc()
			return cache.Response(entry, req), nil
		case errors.Is(err, domain.ErrEntryNotFound):
			i.metrics.CacheLookups.WithLabelValues("miss").Inc()
		default:
			i.metrics.CacheLookups.WithLabelValues("error").Inc()
			i.log.Warn("cache lookup failed, going to network", zap.String("url", key), zap.Error(err))
		}
	}

	resp, err := i.network(req, key)
	if err != nil {
		return i.fallback(ctx, req, key, err)
	}
	return resp, nil
}

func (i *Interceptor) network(req *http.Request, key string) (*http.Response, error) {
	resp, err := i.next.RoundTrip(req)
	if err != nil {
		return nil, err
	}
	if !i.cacheable(req, resp) {
		return resp, nil
	}

	buf, err := io.ReadAll(io.LimitReader(resp.Body, i.maxEntryBytes+1))
	if err != nil {
		_ = resp.Body.Close()
		return nil, fmt.Errorf("read response body: %w", err)
	}
	if int64(len(buf)) > i.maxEntryBytes {
		i.metrics.CacheWrites.WithLabelValues("skipped").Inc()
		resp.Body = &joinedBody{Reader: io.MultiReader(bytes.NewReader(buf), resp.Body), closer: resp.Body}
		return resp, nil
	}
	_ = resp.Body.Close()

	i.store(req.Context(), key, resp, buf)
	resp.Body = io.NopCloser(bytes.NewReader(buf))
	resp.ContentLength = int64(len(buf))
	return resp, nil
}

// cacheable reports whether resp is a complete same-origin answer to a GET.
func (i *Interceptor) cacheable(req *http.Request, resp *http.Response) bool {
	if resp == nil || resp.StatusCode != http.StatusOK || req.Method != http.MethodGet {
		return false
	}
	final := req.URL
	if resp.Request != nil && resp.Request.URL != nil {
		final = resp.Request.URL
	}
	return final.Scheme == i.origin.Scheme && final.Host == i.origin.Host
}

func (i *Interceptor) store(ctx context.Context, key string, resp *http.Response, body []byte) {
	header := cache.StorableHeader(resp.Header)
	header.Del("Content-Length")
	if err := i.cache.Put(context.WithoutCancel(ctx), key, resp.StatusCode, header, body); err != nil {
		i.metrics.CacheWrites.WithLabelValues("error").Inc()
		i.log.Warn("cache write failed", zap.String("url", key), zap.Error(err))
		return
	}
	i.metrics.CacheWrites.WithLabelValues("ok").Inc()
}

func (i *Interceptor) fallback(ctx context.Context, req *http.Request, key string, netErr error) (*http.Response, error) {
	i.log.Error("fetch and cache failed", zap.String("url", key), zap.Error(netErr))

	if !i.isAsset(key) {
		i.metrics.FetchFallbacks.WithLabelValues("unhandled").Inc()
		return nil, netErr
	}
	shell, err := i.cache.Match(ctx, i.shellKey)
	if err != nil {
		i.metrics.FetchFallbacks.WithLabelValues("unhandled").Inc()
		return nil, netErr
	}
	i.metrics.FetchFallbacks.WithLabelValues("shell").Inc()
	return cache.Response(shell, req), nil
}

func (i *Interceptor) isAsset(key string) bool {
	if _, ok := i.assets[key]; ok {
		return true
	}
	_, ok := i.assets[key+"/"]
	return ok
}

type joinedBody struct {
	io.Reader
	closer io.Closer
}

func (b *joinedBody) Close() error {
	return b.closer.Close()
}
