package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/uniplan/timetable-api/internal/models"
	"github.com/uniplan/timetable-api/pkg/jobs"
)

func TestNotificationServiceDeliversDecision(t *testing.T) {
	delivered := make(chan models.DecisionEvent, 1)
	sink := DecisionSinkFunc(func(ctx context.Context, event models.DecisionEvent) error {
		delivered <- event
		return nil
	})

	svc := NewNotificationService(sink, jobs.QueueConfig{Workers: 1})
	svc.Start(context.Background())
	defer svc.Stop()

	svc.NotifyDecision(models.DecisionEvent{
		Type:      "reschedule.decided",
		RequestID: "req-1",
		Decision:  models.RequestStatusApproved,
		DecidedAt: time.Now(),
	})

	select {
	case event := <-delivered:
		require.Equal(t, "req-1", event.RequestID)
		require.Equal(t, models.RequestStatusApproved, event.Decision)
	case <-time.After(2 * time.Second):
		t.Fatal("decision event was not delivered")
	}
}

func TestNotificationServiceDropsWhenStopped(t *testing.T) {
	sink := DecisionSinkFunc(func(ctx context.Context, event models.DecisionEvent) error {
		return nil
	})
	svc := NewNotificationService(sink, jobs.QueueConfig{Workers: 1})

	// Not started: enqueue fails and the event is logged and dropped, never
	// panicking the caller.
	svc.NotifyDecision(models.DecisionEvent{RequestID: "req-1"})
}
