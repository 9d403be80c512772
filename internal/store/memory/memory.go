package memory

import (
	"sync"

	"go.uber.org/zap"

	"examflow/internal/model"
)

type Store struct {
	mu         sync.RWMutex
	namespaces map[string]map[string]model.CachedResponse
	log        *zap.Logger
}

// New returns an empty in-process store. A nil logger disables logging.
func New(logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{namespaces: make(map[string]map[string]model.CachedResponse), log: logger}
}
