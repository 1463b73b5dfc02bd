package worker

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/spec-kit/happyfarm/internal/events"
	"github.com/spec-kit/happyfarm/internal/service"
)

// NotificationWorker moves notification handling off the request path. Events
// are queued by the dispatcher subscription and handled on one goroutine.
type NotificationWorker struct {
	notifications *service.NotificationService
	logger        *zap.Logger
	queue         chan events.Event
	wg            sync.WaitGroup

	mu      sync.RWMutex
	stopped bool
}

// NewNotificationWorker builds a worker with a bounded queue.
func NewNotificationWorker(notifications *service.NotificationService, logger *zap.Logger, buffer int) *NotificationWorker {
	if buffer <= 0 {
		buffer = 256
	}
	return &NotificationWorker{
		notifications: notifications,
		logger:        logger,
		queue:         make(chan events.Event, buffer),
	}
}

// StartNotificationWorker subscribes the worker to the dispatcher and starts consuming.
func StartNotificationWorker(dispatcher events.Dispatcher, notifications *service.NotificationService, logger *zap.Logger) *NotificationWorker {
	if notifications == nil {
		return nil
	}
	w := NewNotificationWorker(notifications, logger, 0)
	for _, t := range notifications.EventTypes() {
		dispatcher.Subscribe(t, w.enqueue)
	}
	w.Start()
	return w
}

// enqueue never blocks the publisher; when the queue is full or the worker
// has stopped the event is dropped.
func (w *NotificationWorker) enqueue(_ context.Context, event events.Event) error {
	w.mu.RLock()
	defer w.mu.RUnlock()

	if w.stopped {
		w.logger.Warn("notification worker stopped, dropping event",
			zap.String("event_id", event.ID),
			zap.String("event_type", string(event.Type)))
		return nil
	}

	select {
	case w.queue <- event:
	default:
		w.logger.Warn("notification queue full, dropping event",
			zap.String("event_id", event.ID),
			zap.String("event_type", string(event.Type)))
	}
	return nil
}

// Start launches the consumer goroutine.
func (w *NotificationWorker) Start() {
	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		for event := range w.queue {
			if err := w.notifications.Handle(context.Background(), event); err != nil {
				w.logger.Error("notification handler failed", zap.String("event_id", event.ID), zap.Error(err))
			}
		}
	}()
}

// Stop closes the queue and waits until queued events are handled.
// Events published afterwards are dropped.
func (w *NotificationWorker) Stop() {
	if w == nil {
		return
	}
	w.mu.Lock()
	if !w.stopped {
		w.stopped = true
		close(w.queue)
	}
	w.mu.Unlock()
	w.wg.Wait()
}
