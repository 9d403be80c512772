package bridge

import (
	"context"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"examflow/internal/config"
	"examflow/internal/domain"
	"examflow/internal/model"
	"examflow/internal/service/scheduler"
)

type checkerMock struct {
	mock.Mock
}

func (m *checkerMock) Check(ctx context.Context, state scheduler.State) (int, error) {
	args := m.Called(ctx, state)
	return args.Int(0), args.Error(1)
}

type clientsMock struct {
	mock.Mock
}

func (m *clientsMock) Broadcast(event model.Event) {
	m.Called(event)
}

func (m *clientsMock) Send(clientID string, event model.Event) {
	m.Called(clientID, event)
}

func (m *clientsMock) MatchAll(clientType string) []model.Client {
	args := m.Called(clientType)
	return args.Get(0).([]model.Client)
}

func newService(t *testing.T, scope string) (*Service, *scheduler.StateStore, *checkerMock, *clientsMock) {
	t.Helper()
	origin, err := config.ParseOrigin("https://exams.example.com")
	require.NoError(t, err)
	cfg := &config.Config{AppOrigin: origin, AppScope: scope, NotificationPermission: "granted"}
	states, err := scheduler.NewStateStore(cfg)
	require.NoError(t, err)
	checker := &checkerMock{}
	clients := &clientsMock{}
	return NewService(cfg, states, checker, clients, zap.NewNop()), states, checker, clients
}

func TestReceive(t *testing.T) {
	t.Run("schedule message replaces state and checks", func(t *testing.T) {
		svc, states, checker, _ := newService(t, "/")
		checker.On("Check", mock.Anything, mock.MatchedBy(func(st scheduler.State) bool {
			return st.Locale == domain.LocaleSpanish && len(st.Exams) == 1 && st.Permission == domain.PermissionGranted
		})).Return(1, nil).Once()

		sent, err := svc.Receive(context.Background(), model.ScheduleMessage{
			Type:    domain.MessageTypeSchedule,
			Exams:   []model.Exam{{Title: "Final", Subject: "bio", Start: "2026-10-26"}},
			Lang:    "es",
			Palette: []string{"#abc"},
		})
		require.NoError(t, err)
		require.Equal(t, 1, sent)
		require.Equal(t, map[string]string{"bio": "#abc"}, states.Snapshot().Colors)
		checker.AssertExpectations(t)
	})

	t.Run("empty lang defaults to korean", func(t *testing.T) {
		svc, states, checker, _ := newService(t, "/")
		checker.On("Check", mock.Anything, mock.Anything).Return(0, nil).Once()

		_, err := svc.Receive(context.Background(), model.ScheduleMessage{Type: domain.MessageTypeSchedule})
		require.NoError(t, err)
		require.Equal(t, domain.LocaleKorean, states.Snapshot().Locale)
	})

	t.Run("other types are ignored", func(t *testing.T) {
		svc, states, checker, _ := newService(t, "/")

		_, err := svc.Receive(context.Background(), model.ScheduleMessage{
			Type:  "SKIP_WAITING",
			Exams: []model.Exam{{Title: "x"}},
		})
		require.ErrorIs(t, err, domain.ErrUnknownMessageType)
		require.Empty(t, states.Snapshot().Exams)
		checker.AssertNotCalled(t, "Check", mock.Anything, mock.Anything)
	})

	t.Run("unsupported lang is rejected before state changes", func(t *testing.T) {
		svc, states, checker, _ := newService(t, "/")

		_, err := svc.Receive(context.Background(), model.ScheduleMessage{
			Type:  domain.MessageTypeSchedule,
			Exams: []model.Exam{{Title: "x"}},
			Lang:  "fr",
		})
		require.ErrorIs(t, err, domain.ErrUnsupportedLocale)
		require.Empty(t, states.Snapshot().Exams)
		checker.AssertNotCalled(t, "Check", mock.Anything, mock.Anything)
	})
}

func TestSetPermission(t *testing.T) {
	svc, states, _, _ := newService(t, "/")

	p, err := svc.SetPermission("denied")
	require.NoError(t, err)
	require.Equal(t, domain.PermissionDenied, p)
	require.Equal(t, domain.PermissionDenied, states.Snapshot().Permission)

	_, err = svc.SetPermission("yes")
	require.ErrorIs(t, err, domain.ErrInvalidPermission)
	require.Equal(t, domain.PermissionDenied, svc.State().Permission)
}

func TestClick(t *testing.T) {
	closeEvent := model.Event{Type: model.EventClose, Data: map[string]string{"tag": "Math-2026-10-20-D1"}}

	t.Run("focuses a controlled window", func(t *testing.T) {
		svc, _, _, clients := newService(t, "/app/")
		clients.On("Broadcast", closeEvent).Once()
		clients.On("MatchAll", model.ClientTypeWindow).Return([]model.Client{
			{ID: "other-origin", Type: model.ClientTypeWindow, URL: "https://evil.example.com/app/"},
			{ID: "out-of-scope", Type: model.ClientTypeWindow, URL: "https://exams.example.com/admin"},
			{ID: "page", Type: model.ClientTypeWindow, URL: "https://exams.example.com/app/calendar"},
		}).Once()
		clients.On("Send", "page", model.Event{Type: model.EventFocus}).Once()

		res := svc.Click(context.Background(), "Math-2026-10-20-D1")
		require.Equal(t, ClickResult{Action: ClickFocus, ClientID: "page"}, res)
		clients.AssertExpectations(t)
	})

	t.Run("opens root when nothing matches", func(t *testing.T) {
		svc, _, _, clients := newService(t, "/")
		clients.On("Broadcast", closeEvent).Once()
		clients.On("MatchAll", model.ClientTypeWindow).Return([]model.Client{
			{ID: "cdn", Type: model.ClientTypeWindow, URL: "https://cdn.example.com/"},
		}).Once()

		res := svc.Click(context.Background(), "Math-2026-10-20-D1")
		require.Equal(t, ClickResult{Action: ClickOpen, URL: "/"}, res)
		clients.AssertNotCalled(t, "Send", mock.Anything, mock.Anything)
	})
}
