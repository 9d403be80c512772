package sqlstore

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"examflow/internal/db"
	"examflow/internal/domain"
	"examflow/internal/model"
)

func (s *Store) OpenNamespace(ctx context.Context, namespace string) error {
	_, err := s.queries.GetNamespace(ctx, namespace)
	if err == nil {
		return nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		s.log.Error("sql get namespace failed", zap.String("namespace", namespace), zap.Error(err))
		return err
	}
	err = s.queries.CreateNamespace(ctx, db.CreateNamespaceParams{
		Name:      namespace,
		CreatedAt: time.Now().UTC().UnixMilli(),
	})
	if err != nil {
		// A concurrent open may have won the insert.
		if _, getErr := s.queries.GetNamespace(ctx, namespace); getErr == nil {
			return nil
		}
		s.log.Error("sql create namespace failed", zap.String("namespace", namespace), zap.Error(err))
		return err
	}
	return nil
}

func (s *Store) ListNamespaces(ctx context.Context) ([]string, error) {
	names, err := s.queries.ListNamespaces(ctx)
	if err != nil {
		s.log.Error("sql list namespaces failed", zap.Error(err))
		return nil, err
	}
	return names, nil
}

func (s *Store) DeleteNamespace(ctx context.Context, namespace string) (bool, error) {
	tx, err := s.conn.BeginTx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	q := s.queries.WithTx(tx)
	if err := q.DeleteNamespaceEntries(ctx, namespace); err != nil {
		s.log.Error("sql delete namespace entries failed", zap.String("namespace", namespace), zap.Error(err))
		return false, err
	}
	result, err := q.DeleteNamespace(ctx, namespace)
	if err != nil {
		s.log.Error("sql delete namespace failed", zap.String("namespace", namespace), zap.Error(err))
		return false, err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("commit: %w", err)
	}
	return affected > 0, nil
}

func (s *Store) MatchEntry(ctx context.Context, namespace, key string) (model.CachedResponse, error) {
	row, err := s.queries.GetEntry(ctx, db.GetEntryParams{Namespace: namespace, UrlHash: hashKey(key)})
	if errors.Is(err, sql.ErrNoRows) {
		return model.CachedResponse{}, domain.ErrEntryNotFound
	}
	if err != nil {
		s.log.Error("sql get entry failed", zap.String("namespace", namespace), zap.String("key", key), zap.Error(err))
		return model.CachedResponse{}, err
	}

	header := http.Header{}
	if row.Header != "" {
		if err := json.Unmarshal([]byte(row.Header), &header); err != nil {
			return model.CachedResponse{}, fmt.Errorf("decode cached header: %w", err)
		}
	}
	return model.CachedResponse{
		Namespace:  row.Namespace,
		Key:        row.Url,
		StatusCode: int(row.StatusCode),
		Header:     header,
		Body:       row.Body,
		StoredAt:   time.UnixMilli(row.StoredAt).UTC(),
	}, nil
}

func (s *Store) PutEntry(ctx context.Context, entry model.CachedResponse) error {
	if err := s.OpenNamespace(ctx, entry.Namespace); err != nil {
		return err
	}
	if entry.StoredAt.IsZero() {
		entry.StoredAt = time.Now().UTC()
	}
	header, err := json.Marshal(entry.Header)
	if err != nil {
		return fmt.Errorf("encode header: %w", err)
	}
	body := entry.Body
	if body == nil {
		body = []byte{}
	}
	err = s.queries.PutEntry(ctx, db.PutEntryParams{
		Namespace:  entry.Namespace,
		UrlHash:    hashKey(entry.Key),
		Url:        entry.Key,
		StatusCode: int32(entry.StatusCode),
		Header:     string(header),
		Body:       body,
		StoredAt:   entry.StoredAt.UnixMilli(),
	})
	if err != nil {
		s.log.Error("sql put entry failed",
			zap.String("namespace", entry.Namespace),
			zap.String("key", entry.Key),
			zap.Int("size", len(entry.Body)),
			zap.Error(err),
		)
		return err
	}
	return nil
}

func hashKey(key string) string {
	sum := sha256.Sum256([]byte(key))
	return hex.EncodeToString(sum[:])
}
