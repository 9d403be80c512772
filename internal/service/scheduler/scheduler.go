package scheduler

import (
	"context"
	"strconv"
	"sync"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.uber.org/zap"

	"examflow/internal/config"
	"examflow/internal/domain"
	"examflow/internal/metrics"
	"examflow/internal/model"
	"examflow/internal/telemetry"
)

const NotificationIcon = "./icon-192x192.png"

// Notifier displays a reminder on the user's pages.
type Notifier interface {
	Show(ctx context.Context, notification model.Notification) error
}

// Scheduler decides which exam reminders are due today and sends each one
// at most once per day.
type Scheduler struct {
	ledger   *Ledger
	notifier Notifier
	loc      *time.Location
	now      func() time.Time
	metrics  *metrics.Metrics
	log      *zap.Logger

	// mu makes check passes single-writer over the ledger.
	mu sync.Mutex
}

func New(cfg *config.Config, ledger *Ledger, notifier Notifier, m *metrics.Metrics, logger *zap.Logger) *Scheduler {
	loc := cfg.Location
	if loc == nil {
		loc = time.Local
	}
	return &Scheduler{
		ledger:   ledger,
		notifier: notifier,
		loc:      loc,
		now:      time.Now,
		metrics:  m,
		log:      logger,
	}
}

// Check runs one pass over state and returns how many reminders it sent.
// It fails when the ledger cannot be read or when state carries a locale
// without a phrase table. Ledger I/O ignores cancellation of ctx.
func (s *Scheduler) Check(ctx context.Context, state State) (int, error) {
	ctx, span := telemetry.Tracer().Start(ctx, "scheduler.check")
	defer span.End()
	span.SetAttributes(
		attribute.Int("exams", len(state.Exams)),
		attribute.String("permission", string(state.Permission)),
	)

	if state.Permission != domain.PermissionGranted {
		s.metrics.NotificationChecks.WithLabelValues("no_permission").Inc()
		s.log.Debug("notification permission not granted, skipping check",
			zap.String("permission", string(state.Permission)))
		return 0, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.metrics.NotificationChecks.WithLabelValues("ran").Inc()

	ledgerCtx := context.WithoutCancel(ctx)
	today := domain.Midnight(s.now(), s.loc)
	record, err := s.ledger.Load(ledgerCtx, today)
	if err != nil {
		s.metrics.NotificationChecks.WithLabelValues("ledger_error").Inc()
		span.RecordError(err)
		span.SetStatus(codes.Error, "ledger read failed")
		s.log.Error("ledger read failed, skipping check", zap.Error(err))
		return 0, err
	}

	sent := 0
	for _, exam := range state.Exams {
		examDate, err := domain.ParseExamDate(exam.Start, s.loc)
		if err != nil {
			s.log.Warn("skipping exam with unreadable start",
				zap.String("title", exam.Title),
				zap.String("start", exam.Start),
				zap.Error(err),
			)
			continue
		}

		diff := domain.DaysUntil(today, examDate, s.loc)
		if !domain.IsThreshold(diff) {
			continue
		}
		key := domain.NotificationKey(exam.Title, exam.Start, diff)
		if record.Sent(key) {
			continue
		}

		body, err := state.Locale.ReminderBody(exam.Subject, diff)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "unsupported locale")
			return sent, err
		}

		notification := model.Notification{
			Title: exam.Title,
			Body:  body,
			Icon:  NotificationIcon,
			Tag:   key,
			Data: model.NotificationData{
				ExamTitle: exam.Title,
				Subject:   exam.Subject,
				DiffDays:  diff,
			},
		}
		if err := s.notifier.Show(ctx, notification); err != nil {
			s.log.Warn("show notification failed", zap.String("tag", key), zap.Error(err))
		}

		record.MarkSent(key)
		if err := s.ledger.Save(ledgerCtx, record); err != nil {
			s.log.Warn("ledger persist failed", zap.String("tag", key), zap.Error(err))
		}

		sent++
		s.metrics.NotificationsSent.WithLabelValues(strconv.Itoa(diff)).Inc()
		s.log.Info("exam reminder sent",
			zap.String("title", exam.Title),
			zap.String("subject", exam.Subject),
			zap.Int("diff_days", diff),
		)
	}

	span.SetAttributes(attribute.Int("sent", sent))
	return sent, nil
}
