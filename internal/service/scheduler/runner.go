package scheduler

import (
	"context"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// CheckSchedule re-runs the notification check on a fixed interval.
const CheckSchedule = "@every 5m"

// Runner re-invokes Check with the current state on CheckSchedule.
type Runner struct {
	sched  *Scheduler
	states *StateStore
	log    *zap.Logger
}

func NewRunner(sched *Scheduler, states *StateStore, logger *zap.Logger) *Runner {
	return &Runner{sched: sched, states: states, log: logger}
}

// Start blocks until ctx is cancelled, then waits for a running tick.
func (r *Runner) Start(ctx context.Context) error {
	logger := cronLogger{r.log.Sugar()}
	c := cron.New(
		cron.WithLogger(logger),
		cron.WithChain(cron.Recover(logger), cron.SkipIfStillRunning(logger)),
	)
	if _, err := c.AddFunc(CheckSchedule, func() { r.tick(ctx) }); err != nil {
		return err
	}

	c.Start()
	r.log.Info("notification timer started", zap.String("schedule", CheckSchedule))

	<-ctx.Done()
	<-c.Stop().Done()
	r.log.Info("notification timer stopped")
	return nil
}

func (r *Runner) tick(ctx context.Context) {
	if _, err := r.sched.Check(ctx, r.states.Snapshot()); err != nil {
		r.log.Error("scheduled notification check failed", zap.Error(err))
	}
}

type cronLogger struct {
	s *zap.SugaredLogger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.s.Debugw(msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.s.Errorw(msg, append(keysAndValues, "error", err)...)
}
