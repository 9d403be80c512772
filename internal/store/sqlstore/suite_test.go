package sqlstore

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"examflow/internal/domain"
	"examflow/internal/model"
)

// exerciseStore runs the same behaviour checks against any SQL backend.
func exerciseStore(t *testing.T, store *Store) {
	t.Helper()
	ctx := context.Background()

	require.NoError(t, store.OpenNamespace(ctx, "examflow-cache-v1"))
	require.NoError(t, store.OpenNamespace(ctx, "examflow-cache-v1"))

	_, err := store.MatchEntry(ctx, "examflow-cache-v1", "http://app/index.html")
	require.ErrorIs(t, err, domain.ErrEntryNotFound)

	require.NoError(t, store.PutEntry(ctx, model.CachedResponse{
		Namespace:  "examflow-cache-v1",
		Key:        "http://app/index.html",
		StatusCode: http.StatusOK,
		Header:     http.Header{"Content-Type": {"text/html; charset=utf-8"}},
		Body:       []byte("<html>v1</html>"),
	}))
	require.NoError(t, store.PutEntry(ctx, model.CachedResponse{
		Namespace:  "examflow-cache-v1",
		Key:        "http://app/index.html",
		StatusCode: http.StatusOK,
		Header:     http.Header{"Content-Type": {"text/html; charset=utf-8"}},
		Body:       []byte("<html>v1.1</html>"),
	}))

	got, err := store.MatchEntry(ctx, "examflow-cache-v1", "http://app/index.html")
	require.NoError(t, err)
	require.Equal(t, "<html>v1.1</html>", string(got.Body))
	require.Equal(t, http.StatusOK, got.StatusCode)
	require.Equal(t, "text/html; charset=utf-8", got.Header.Get("Content-Type"))
	require.Equal(t, "http://app/index.html", got.Key)

	// PutEntry opens the namespace implicitly.
	require.NoError(t, store.PutEntry(ctx, model.CachedResponse{
		Namespace:  "examflow-cache-v0",
		Key:        "http://app/old.js",
		StatusCode: http.StatusOK,
	}))

	names, err := store.ListNamespaces(ctx)
	require.NoError(t, err)
	require.Equal(t, []string{"examflow-cache-v0", "examflow-cache-v1"}, names)

	deleted, err := store.DeleteNamespace(ctx, "examflow-cache-v0")
	require.NoError(t, err)
	require.True(t, deleted)

	_, err = store.MatchEntry(ctx, "examflow-cache-v0", "http://app/old.js")
	require.ErrorIs(t, err, domain.ErrEntryNotFound)

	deleted, err = store.DeleteNamespace(ctx, "examflow-cache-v0")
	require.NoError(t, err)
	require.False(t, deleted)

	names, err = store.ListNamespaces(ctx)
	require.NoError(t, err)
	require.Equal(t, []string{"examflow-cache-v1"}, names)
}
