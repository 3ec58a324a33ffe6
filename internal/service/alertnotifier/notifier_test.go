package alertnotifier

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/tablewatch/tablewatch/internal/observability/notify"
)

func TestServiceNotifyAlert(t *testing.T) {
	ctx := context.Background()

	var mu sync.Mutex
	var received []notify.AlertPayload
	svc := NewService(Options{
		Sinks: []SinkRegistration{
			{
				Name: "capture",
				Sink: notify.SinkFunc(func(_ context.Context, payload notify.AlertPayload) error {
					mu.Lock()
					defer mu.Unlock()
					received = append(received, payload)
					return nil
				}),
			},
		},
	})

	svc.NotifyAlert(ctx, notify.AlertPayload{
		AlertID: "alert-1",
		Kind:    "test",
	})

	if len(received) != 1 {
		t.Fatalf("expected 1 payload, got %d", len(received))
	}
	if received[0].Severity != notify.SeverityCritical {
		t.Fatalf("expected severity to default to critical, got %s", received[0].Severity)
	}
}

func TestServiceFansOutToAllSinks(t *testing.T) {
	ctx := context.Background()

	var mu sync.Mutex
	calls := map[string]int{}
	capture := func(name string) notify.Sink {
		return notify.SinkFunc(func(_ context.Context, _ notify.AlertPayload) error {
			mu.Lock()
			defer mu.Unlock()
			calls[name]++
			return nil
		})
	}

	svc := NewService(Options{
		Sinks: []SinkRegistration{
			{Name: "slack", Sink: capture("slack")},
			{Name: "webhook", Sink: capture("webhook")},
		},
	})

	svc.NotifyAlert(ctx, notify.AlertPayload{AlertID: "alert-1"})

	if calls["slack"] != 1 || calls["webhook"] != 1 {
		t.Fatalf("expected each sink called once, got %v", calls)
	}
}

func TestServiceDisabled(t *testing.T) {
	svc := NewService(Options{})
	if svc.Enabled() {
		t.Fatal("expected Enabled() to be false when no sinks registered")
	}

	filtered := NewService(Options{Sinks: []SinkRegistration{{Name: "nil", Sink: nil}}})
	if filtered.Enabled() {
		t.Fatal("expected nil sinks to be filtered out")
	}
}

func TestServiceLogsErrors(t *testing.T) {
	// Ensure we don't panic when a sink returns an error.
	svc := NewService(Options{
		Sinks: []SinkRegistration{
			{
				Name: "fail",
				Sink: notify.SinkFunc(func(_ context.Context, _ notify.AlertPayload) error {
					return errors.New("boom")
				}),
			},
		},
	})

	svc.NotifyAlert(context.Background(), notify.AlertPayload{AlertID: "alert-1"})
}
