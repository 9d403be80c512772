package notify

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"examflow/internal/config"
	"examflow/internal/model"
	"examflow/internal/queue"
)

// Broadcaster delivers events to connected pages.
type Broadcaster interface {
	Broadcast(event model.Event)
}

// Service shows exam reminders: every connected page receives a
// notification event and, with a broker configured, the reminder is
// published for other consumers.
type Service struct {
	hub        Broadcaster
	pub        queue.Publisher
	routingKey string
	log        *zap.Logger
}

func NewService(cfg *config.Config, hub Broadcaster, publisher queue.Publisher, logger *zap.Logger) *Service {
	prefix := cfg.RabbitPublishPrefix
	if prefix == "" {
		prefix = "notification"
	}
	return &Service{hub: hub, pub: publisher, routingKey: prefix + ".exam", log: logger}
}

func (s *Service) Show(ctx context.Context, notification model.Notification) error {
	s.hub.Broadcast(model.Event{Type: model.EventNotification, Data: notification})

	payload, err := json.Marshal(notification)
	if err != nil {
		return fmt.Errorf("marshal notification: %w", err)
	}
	if err := s.pub.Publish(ctx, payload, s.routingKey); err != nil {
		s.log.Error("publish notification failed",
			zap.String("title", notification.Title),
			zap.String("tag", notification.Tag),
			zap.Error(err),
		)
		return err
	}
	return nil
}
