// Package cache binds the cache repository to the deployed namespace and
// converts between stored entries and HTTP responses.
package cache

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"examflow/internal/config"
	"examflow/internal/model"
	"examflow/internal/repository"
)

// Cache is the current deployment's namespace.
type Cache struct {
	repo      repository.CacheRepository
	namespace string
}

func New(repo repository.CacheRepository, cfg *config.Config) *Cache {
	return &Cache{repo: repo, namespace: cfg.CacheNamespace}
}

func (c *Cache) Namespace() string {
	return c.namespace
}

func (c *Cache) Open(ctx context.Context) error {
	return c.repo.OpenNamespace(ctx, c.namespace)
}

// Match looks up key. A miss returns domain.ErrEntryNotFound.
func (c *Cache) Match(ctx context.Context, key string) (model.CachedResponse, error) {
	return c.repo.MatchEntry(ctx, c.namespace, key)
}

func (c *Cache) Put(ctx context.Context, key string, statusCode int, header http.Header, body []byte) error {
	return c.repo.PutEntry(ctx, model.CachedResponse{
		Namespace:  c.namespace,
		Key:        key,
		StatusCode: statusCode,
		Header:     header,
		Body:       body,
		StoredAt:   time.Now().UTC(),
	})
}

// Key is the lookup key for a request URL: absolute, without fragment.
func Key(u *url.URL) string {
	k := *u
	k.Fragment = ""
	k.RawFragment = ""
	return k.String()
}

// Response rebuilds an HTTP response from a stored entry.
func Response(entry model.CachedResponse, req *http.Request) *http.Response {
	return &http.Response{
		Status:        fmt.Sprintf("%d %s", entry.StatusCode, http.StatusText(entry.StatusCode)),
		StatusCode:    entry.StatusCode,
		Proto:         "HTTP/1.1",
		ProtoMajor:    1,
		ProtoMinor:    1,
		Header:        entry.Header.Clone(),
		Body:          io.NopCloser(bytes.NewReader(entry.Body)),
		ContentLength: int64(len(entry.Body)),
		Request:       req,
	}
}

var hopHeaders = []string{
	"Connection",
	"Keep-Alive",
	"Proxy-Authenticate",
	"Proxy-Authorization",
	"Proxy-Connection",
	"Te",
	"Trailer",
	"Transfer-Encoding",
	"Upgrade",
}

// StorableHeader copies h without hop-by-hop fields.
func StorableHeader(h http.Header) http.Header {
	out := h.Clone()
	if out == nil {
		out = http.Header{}
	}
	for _, name := range hopHeaders {
		out.Del(name)
	}
	return out
}
