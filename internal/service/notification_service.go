package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/spec-kit/happyfarm/internal/events"
)

// NotificationService records lifecycle events as an audit trail.
type NotificationService struct {
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// NewNotificationService creates the service.
func NewNotificationService(dispatcher events.Dispatcher, logger *zap.Logger) *NotificationService {
	return &NotificationService{
		dispatcher: dispatcher,
		logger:     logger,
	}
}

// EventTypes lists the events the service reacts to.
func (n *NotificationService) EventTypes() []events.EventType {
	return []events.EventType{
		events.EventAnimalCreated,
		events.EventAnimalFed,
		events.EventAnimalGroomed,
		events.EventAnimalSacrificed,
	}
}

// RegisterHandlers subscribes Handle synchronously to every supported event.
func (n *NotificationService) RegisterHandlers() {
	if n.dispatcher == nil {
		return
	}
	for _, t := range n.EventTypes() {
		n.dispatcher.Subscribe(t, n.Handle)
	}
}

// Handle routes one event to its handler.
func (n *NotificationService) Handle(ctx context.Context, event events.Event) error {
	switch event.Type {
	case events.EventAnimalCreated:
		return n.handleAnimalCreated(ctx, event)
	case events.EventAnimalFed, events.EventAnimalGroomed:
		return n.handleCare(ctx, event)
	case events.EventAnimalSacrificed:
		return n.handleAnimalSacrificed(ctx, event)
	}
	return nil
}

func (n *NotificationService) handleAnimalCreated(_ context.Context, event events.Event) error {
	n.logger.Info("AnimalCreated", append(eventFields(event), zap.Any("payload", event.Payload))...)
	return nil
}

func (n *NotificationService) handleCare(_ context.Context, event events.Event) error {
	n.logger.Info("AnimalCared", eventFields(event)...)
	return nil
}

func (n *NotificationService) handleAnimalSacrificed(_ context.Context, event events.Event) error {
	n.logger.Info("AnimalSacrificed", append(eventFields(event), zap.Any("payload", event.Payload))...)
	return nil
}

func eventFields(event events.Event) []zap.Field {
	return []zap.Field{
		zap.String("event_id", event.ID),
		zap.String("event_type", string(event.Type)),
		zap.String("animal_id", event.AnimalID),
		zap.String("farm_id", event.FarmID),
		zap.String("actor_id", event.ActorID),
		zap.String("species", string(event.Species)),
		zap.Time("at", event.Timestamp),
	}
}
