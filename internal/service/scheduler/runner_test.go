package scheduler

import (
	"context"
	"testing"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"examflow/internal/config"
	"examflow/internal/domain"
	"examflow/internal/model"
)

func TestCheckScheduleParses(t *testing.T) {
	sched, err := cron.ParseStandard(CheckSchedule)
	require.NoError(t, err)
	from := time.Date(2026, 10, 19, 9, 0, 0, 0, time.UTC)
	require.Equal(t, from.Add(5*time.Minute), sched.Next(from))
}

func TestRunnerTickUsesCurrentState(t *testing.T) {
	f := newFixture(t)
	f.notifier.On("Show", mock.Anything, mock.Anything).Return(nil).Once()

	states, err := NewStateStore(&config.Config{NotificationPermission: "granted"})
	require.NoError(t, err)
	r := NewRunner(f.sched, states, zap.NewNop())

	r.tick(context.Background())
	f.notifier.AssertNotCalled(t, "Show", mock.Anything, mock.Anything)

	states.ReplaceSchedule([]model.Exam{examIn(f, "Math", 3)}, domain.LocaleEnglish, nil)
	r.tick(context.Background())
	r.tick(context.Background())
	f.notifier.AssertNumberOfCalls(t, "Show", 1)
}

func TestRunnerStopsOnCancel(t *testing.T) {
	f := newFixture(t)
	states, err := NewStateStore(&config.Config{NotificationPermission: "default"})
	require.NoError(t, err)
	r := NewRunner(f.sched, states, zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- r.Start(ctx) }()
	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("runner did not stop")
	}
}
