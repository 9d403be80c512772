package controller

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"examflow/internal/domain"
	"examflow/internal/http/dto"
	"examflow/internal/http/resp"
	"examflow/internal/model"
	"examflow/internal/service/bridge"
	"examflow/internal/service/scheduler"
)

func TestMessagesController(t *testing.T) {
	t.Run("schedule message runs a check", func(t *testing.T) {
		s := newStack(t)
		msg := model.ScheduleMessage{
			Type:    domain.MessageTypeSchedule,
			Exams:   []model.Exam{examTomorrow("Midterm", "math")},
			Lang:    "en",
			Palette: []string{"#f00", "#0f0"},
		}

		rec := performJSONRequest(t, s.router, http.MethodPost, "/sw/messages", msg)
		require.Equal(t, http.StatusOK, rec.Code)
		var body dto.ScheduleResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		require.Equal(t, dto.ScheduleResponse{Code: resp.CodeOK, Sent: 1}, body)

		rec = performJSONRequest(t, s.router, http.MethodPost, "/sw/messages", msg)
		require.Equal(t, http.StatusOK, rec.Code)
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		require.Zero(t, body.Sent)
	})

	t.Run("invalid json", func(t *testing.T) {
		s := newStack(t)
		rec := performJSONRequest(t, s.router, http.MethodPost, "/sw/messages", "not an object")
		require.Equal(t, http.StatusBadRequest, rec.Code)

		var body dto.ErrorResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		require.Equal(t, resp.CodeBadRequest, body.Code)
	})

	t.Run("unsupported lang", func(t *testing.T) {
		s := newStack(t)
		rec := performJSONRequest(t, s.router, http.MethodPost, "/sw/messages", model.ScheduleMessage{
			Type: domain.MessageTypeSchedule,
			Lang: "fr",
		})
		require.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("other types ignored", func(t *testing.T) {
		s := newStack(t)
		rec := performJSONRequest(t, s.router, http.MethodPost, "/sw/messages", map[string]string{"type": "SKIP_WAITING"})
		require.Equal(t, http.StatusAccepted, rec.Code)

		var body dto.StatusResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		require.Equal(t, resp.CodeIgnored, body.Code)
	})
}

func TestPermissionAndStateController(t *testing.T) {
	s := newStack(t)

	rec := performJSONRequest(t, s.router, http.MethodPut, "/sw/permission", dto.PermissionRequest{Permission: "maybe"})
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = performJSONRequest(t, s.router, http.MethodPut, "/sw/permission", dto.PermissionRequest{Permission: "denied"})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = performJSONRequest(t, s.router, http.MethodPost, "/sw/messages", model.ScheduleMessage{
		Type:    domain.MessageTypeSchedule,
		Exams:   []model.Exam{examTomorrow("Quiz", "bio")},
		Lang:    "jp",
		Palette: []string{"#123"},
	})
	require.Equal(t, http.StatusOK, rec.Code)
	var sent dto.ScheduleResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &sent))
	require.Zero(t, sent.Sent)

	rec = performRequest(s.router, http.MethodGet, "/sw/state")
	require.Equal(t, http.StatusOK, rec.Code)
	var state scheduler.State
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &state))
	require.Equal(t, domain.PermissionDenied, state.Permission)
	require.Equal(t, domain.LocaleJapanese, state.Locale)
	require.Equal(t, map[string]string{"bio": "#123"}, state.Colors)
	require.Len(t, state.Exams, 1)
}

func TestClickController(t *testing.T) {
	s := newStack(t)

	rec := performJSONRequest(t, s.router, http.MethodPost, "/sw/notifications/click", dto.ClickRequest{Tag: "Quiz-2026-10-20-D1"})
	require.Equal(t, http.StatusOK, rec.Code)
	var res bridge.ClickResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	require.Equal(t, bridge.ClickResult{Action: bridge.ClickOpen, URL: "/"}, res)
}

func TestLifecycleController(t *testing.T) {
	t.Run("update activates", func(t *testing.T) {
		s := newStack(t)

		rec := performRequest(s.router, http.MethodGet, "/sw/lifecycle")
		require.Equal(t, http.StatusOK, rec.Code)
		var body dto.LifecycleResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		require.Equal(t, dto.LifecycleResponse{State: string(domain.StateParsed), Namespace: "examflow-cache-test"}, body)

		rec = performRequest(s.router, http.MethodPost, "/sw/lifecycle/update")
		require.Equal(t, http.StatusOK, rec.Code)
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		require.Equal(t, string(domain.StateActivated), body.State)
	})

	t.Run("missing asset", func(t *testing.T) {
		s := newStack(t, "./index.html", "./gone.png")

		rec := performRequest(s.router, http.MethodPost, "/sw/lifecycle/update")
		require.Equal(t, http.StatusBadGateway, rec.Code)

		rec = performRequest(s.router, http.MethodGet, "/sw/lifecycle")
		var body dto.LifecycleResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		require.Equal(t, string(domain.StateRedundant), body.State)
	})
}
