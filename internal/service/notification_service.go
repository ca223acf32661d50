package service

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/uniplan/timetable-api/internal/models"
	"github.com/uniplan/timetable-api/pkg/jobs"
)

// DecisionSink delivers one decision event to the outside world. The
// production sink posts to the campus notification gateway; tests use an
// in-memory recorder.
type DecisionSink interface {
	Deliver(ctx context.Context, event models.DecisionEvent) error
}

// DecisionSinkFunc allows using plain functions as sinks.
type DecisionSinkFunc func(ctx context.Context, event models.DecisionEvent) error

// Deliver implements DecisionSink.
func (f DecisionSinkFunc) Deliver(ctx context.Context, event models.DecisionEvent) error {
	return f(ctx, event)
}

// NotificationService fans decision events out to the sink through a
// background worker queue. Delivery is best-effort: a sink outage must
// never roll back an already committed decision.
type NotificationService struct {
	queue  *jobs.Queue
	logger *zap.Logger
}

// NewNotificationService constructs the service and its worker queue. Call
// Start before use and Stop on shutdown.
func NewNotificationService(sink DecisionSink, cfg jobs.QueueConfig) *NotificationService {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	handler := func(ctx context.Context, job jobs.Job) error {
		event, ok := job.Payload.(models.DecisionEvent)
		if !ok {
			return fmt.Errorf("unexpected payload type for job %s", job.ID)
		}
		if sink == nil {
			return nil
		}
		return sink.Deliver(ctx, event)
	}

	return &NotificationService{
		queue:  jobs.NewQueue("decision-notifications", handler, cfg),
		logger: logger,
	}
}

// Start launches the delivery workers.
func (s *NotificationService) Start(ctx context.Context) {
	s.queue.Start(ctx)
}

// Stop drains the workers.
func (s *NotificationService) Stop() {
	s.queue.Stop()
}

// NotifyDecision enqueues one decision event. Failures are logged and
// dropped; the decision itself already committed.
func (s *NotificationService) NotifyDecision(event models.DecisionEvent) {
	err := s.queue.Enqueue(jobs.Job{
		ID:      uuid.NewString(),
		Type:    event.Type,
		Payload: event,
	})
	if err != nil {
		payload, _ := json.Marshal(event)
		s.logger.Warn("dropped decision notification",
			zap.String("requestId", event.RequestID),
			zap.ByteString("event", payload),
			zap.Error(err),
		)
	}
}
