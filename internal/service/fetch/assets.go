package fetch

import (
	"fmt"
	"net/url"

	"examflow/internal/cache"
)

// ResolveAssets turns the configured asset list into absolute cache keys,
// keeping order. Relative entries resolve against origin.
func ResolveAssets(origin *url.URL, assets []string) ([]string, error) {
	keys := make([]string, 0, len(assets))
	for _, raw := range assets {
		ref, err := url.Parse(raw)
		if err != nil {
			return nil, fmt.Errorf("parse asset %q: %w", raw, err)
		}
		keys = append(keys, cache.Key(origin.ResolveReference(ref)))
	}
	return keys, nil
}

// ShellKey is the cache key of the app shell page served when offline.
func ShellKey(origin *url.URL) string {
	return cache.Key(origin.ResolveReference(&url.URL{Path: "./index.html"}))
}
