package bridge

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"examflow/internal/config"
	"examflow/internal/domain"
	"examflow/internal/model"
	"examflow/internal/service/scheduler"
	"examflow/internal/telemetry"
)

// Checker runs one scheduling pass.
type Checker interface {
	Check(ctx context.Context, state scheduler.State) (int, error)
}

// Clients is the registry of connected pages.
type Clients interface {
	Broadcast(event model.Event)
	Send(clientID string, event model.Event)
	MatchAll(clientType string) []model.Client
}

const (
	ClickFocus = "focus"
	ClickOpen  = "open"
)

// ClickResult tells the caller what a notification click did.
type ClickResult struct {
	Action   string `json:"action"`
	ClientID string `json:"client_id,omitempty"`
	URL      string `json:"url,omitempty"`
}

// Service relays page messages into the scheduler and routes
// notification clicks back to a page.
type Service struct {
	states  *scheduler.StateStore
	checker Checker
	clients Clients
	origin  *url.URL
	scope   string
	log     *zap.Logger
}

func NewService(cfg *config.Config, states *scheduler.StateStore, checker Checker, clients Clients, logger *zap.Logger) *Service {
	scope := cfg.AppScope
	if scope == "" {
		scope = "/"
	}
	return &Service{
		states:  states,
		checker: checker,
		clients: clients,
		origin:  cfg.AppOrigin,
		scope:   scope,
		log:     logger,
	}
}

// Receive applies a schedule message and runs a check pass right away.
// Messages of any other type return domain.ErrUnknownMessageType.
func (s *Service) Receive(ctx context.Context, msg model.ScheduleMessage) (int, error) {
	ctx, span := telemetry.Tracer().Start(ctx, "bridge.receive")
	defer span.End()
	span.SetAttributes(attribute.String("type", msg.Type), attribute.Int("exams", len(msg.Exams)))

	if msg.Type != domain.MessageTypeSchedule {
		return 0, fmt.Errorf("%w: %q", domain.ErrUnknownMessageType, msg.Type)
	}
	locale, err := domain.ParseLocale(msg.Lang)
	if err != nil {
		return 0, err
	}

	state := s.states.ReplaceSchedule(msg.Exams, locale, msg.Palette)
	s.log.Info("schedule replaced",
		zap.Int("exams", len(state.Exams)),
		zap.String("lang", string(state.Locale)),
		zap.Int("subjects", len(state.Colors)),
	)
	return s.checker.Check(ctx, state)
}

func (s *Service) SetPermission(raw string) (domain.Permission, error) {
	p, err := domain.ParsePermission(raw)
	if err != nil {
		return "", err
	}
	s.states.SetPermission(p)
	s.log.Info("notification permission updated", zap.String("permission", string(p)))
	return p, nil
}

func (s *Service) State() scheduler.State {
	return s.states.Snapshot()
}

// Click closes the notification identified by tag on every page, then
// focuses a controlled window or asks the caller to open the app root.
func (s *Service) Click(ctx context.Context, tag string) ClickResult {
	_, span := telemetry.Tracer().Start(ctx, "bridge.click")
	defer span.End()

	s.clients.Broadcast(model.Event{Type: model.EventClose, Data: map[string]string{"tag": tag}})

	for _, c := range s.clients.MatchAll(model.ClientTypeWindow) {
		if !s.controls(c.URL) {
			continue
		}
		s.clients.Send(c.ID, model.Event{Type: model.EventFocus})
		span.SetAttributes(attribute.String("action", ClickFocus))
		return ClickResult{Action: ClickFocus, ClientID: c.ID}
	}
	span.SetAttributes(attribute.String("action", ClickOpen))
	return ClickResult{Action: ClickOpen, URL: "/"}
}

// controls reports whether a page URL is same-origin and under the scope.
func (s *Service) controls(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil || s.origin == nil {
		return false
	}
	if u.Scheme != s.origin.Scheme || u.Host != s.origin.Host {
		return false
	}
	path := u.Path
	if path == "" {
		path = "/"
	}
	return strings.HasPrefix(path, s.scope)
}
