package repository

import (
	"context"

	"examflow/internal/model"
)

// CacheRepository stores request/response pairs grouped into named namespaces.
type CacheRepository interface {
	// OpenNamespace creates the namespace if it does not exist yet.
	OpenNamespace(ctx context.Context, namespace string) error
	ListNamespaces(ctx context.Context) ([]string, error)
	// DeleteNamespace removes the namespace and all its entries. It reports
	// whether anything was deleted.
	DeleteNamespace(ctx context.Context, namespace string) (bool, error)
	// MatchEntry returns domain.ErrEntryNotFound on a miss.
	MatchEntry(ctx context.Context, namespace, key string) (model.CachedResponse, error)
	// PutEntry stores the entry, opening its namespace first when needed.
	PutEntry(ctx context.Context, entry model.CachedResponse) error
}
