package scheduler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"examflow/internal/cache"
	"examflow/internal/domain"
)

// LedgerRecord lists the reminder keys already sent on Date.
type LedgerRecord struct {
	Date  string          `json:"date"`
	Exams map[string]bool `json:"exams"`
}

func (r LedgerRecord) Sent(key string) bool {
	return r.Exams[key]
}

func (r LedgerRecord) MarkSent(key string) {
	r.Exams[key] = true
}

// Ledger persists the LedgerRecord as a synthetic entry of the current
// cache namespace, so it survives restarts and is dropped with the namespace.
type Ledger struct {
	cache *cache.Cache
	key   string
	log   *zap.Logger
}

func NewLedger(c *cache.Cache, logger *zap.Logger) *Ledger {
	return &Ledger{cache: c, key: c.Namespace() + "-sent-notifications", log: logger}
}

func (l *Ledger) Key() string {
	return l.key
}

// Load returns the record for today. A missing, unreadable or stale record
// yields a fresh empty one; only a failed storage read is an error.
func (l *Ledger) Load(ctx context.Context, today time.Time) (LedgerRecord, error) {
	date := today.Format(domain.LedgerDateLayout)
	fresh := LedgerRecord{Date: date, Exams: map[string]bool{}}

	entry, err := l.cache.Match(ctx, l.key)
	if errors.Is(err, domain.ErrEntryNotFound) {
		return fresh, nil
	}
	if err != nil {
		return LedgerRecord{}, fmt.Errorf("read ledger: %w", err)
	}

	var record LedgerRecord
	if err := json.Unmarshal(entry.Body, &record); err != nil {
		l.log.Debug("ledger unparsable, starting empty", zap.String("key", l.key), zap.Error(err))
		return fresh, nil
	}
	if record.Date != date {
		l.log.Info("ledger reset for new day", zap.String("previous", record.Date), zap.String("today", date))
		return fresh, nil
	}
	if record.Exams == nil {
		record.Exams = map[string]bool{}
	}
	return record, nil
}

func (l *Ledger) Save(ctx context.Context, record LedgerRecord) error {
	body, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("marshal ledger: %w", err)
	}
	header := http.Header{"Content-Type": {"application/json"}}
	if err := l.cache.Put(ctx, l.key, http.StatusOK, header, body); err != nil {
		return fmt.Errorf("store ledger: %w", err)
	}
	return nil
}
