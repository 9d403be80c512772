package memory

import (
	"context"
	"sort"
	"time"

	"go.uber.org/zap"

	"examflow/internal/domain"
	"examflow/internal/model"
)

func (s *Store) OpenNamespace(_ context.Context, namespace string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.openLocked(namespace)
	return nil
}

func (s *Store) openLocked(namespace string) map[string]model.CachedResponse {
	entries := s.namespaces[namespace]
	if entries == nil {
		entries = make(map[string]model.CachedResponse)
		s.namespaces[namespace] = entries
	}
	return entries
}

func (s *Store) ListNamespaces(_ context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	names := make([]string, 0, len(s.namespaces))
	for name := range s.namespaces {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

func (s *Store) DeleteNamespace(_ context.Context, namespace string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entries, ok := s.namespaces[namespace]
	if !ok {
		return false, nil
	}
	delete(s.namespaces, namespace)
	s.log.Debug("namespace dropped", zap.String("namespace", namespace), zap.Int("entries", len(entries)))
	return true, nil
}

func (s *Store) MatchEntry(_ context.Context, namespace, key string) (model.CachedResponse, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	entry, ok := s.namespaces[namespace][key]
	if !ok {
		return model.CachedResponse{}, domain.ErrEntryNotFound
	}
	return clone(entry), nil
}

func (s *Store) PutEntry(_ context.Context, entry model.CachedResponse) error {
	if entry.StoredAt.IsZero() {
		entry.StoredAt = time.Now().UTC()
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.openLocked(entry.Namespace)[entry.Key] = clone(entry)
	return nil
}

func clone(entry model.CachedResponse) model.CachedResponse {
	entry.Header = entry.Header.Clone()
	entry.Body = append([]byte(nil), entry.Body...)
	return entry
}
