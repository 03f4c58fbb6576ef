package queue

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/Sharrmavishal/startsolomay26-sub001/internal/domain/entities"
)

type stubAcker struct {
	pending    []entities.Notification
	pendingErr error
	delivered  []string
	markErr    error
}

func (s *stubAcker) ListPending(ctx context.Context) ([]entities.Notification, error) {
	return s.pending, s.pendingErr
}

func (s *stubAcker) MarkDelivered(ctx context.Context, id string) (entities.Notification, error) {
	s.delivered = append(s.delivered, id)
	if s.markErr != nil {
		return entities.Notification{}, s.markErr
	}
	return entities.Notification{ID: id, Status: entities.NotificationStatusSent}, nil
}

func TestSweepPending(t *testing.T) {
	t.Run("delivers every pending row", func(t *testing.T) {
		acker := &stubAcker{pending: []entities.Notification{
			{ID: "n-1", UserID: "user-1", Channel: "email"},
			{ID: "n-2", UserID: "user-2", Channel: "email"},
		}}

		sweepPending(acker)

		if len(acker.delivered) != 2 || acker.delivered[0] != "n-1" || acker.delivered[1] != "n-2" {
			t.Fatalf("unexpected deliveries %v", acker.delivered)
		}
	})

	t.Run("nothing pending", func(t *testing.T) {
		acker := &stubAcker{}
		sweepPending(acker)
		if len(acker.delivered) != 0 {
			t.Fatalf("unexpected deliveries %v", acker.delivered)
		}
	})

	t.Run("list failure skips the sweep", func(t *testing.T) {
		acker := &stubAcker{pendingErr: errors.New("table unavailable")}
		sweepPending(acker)
		if len(acker.delivered) != 0 {
			t.Fatalf("unexpected deliveries %v", acker.delivered)
		}
	})

	t.Run("mark failure keeps sweeping", func(t *testing.T) {
		acker := &stubAcker{
			pending: []entities.Notification{{ID: "n-1"}, {ID: "n-2"}},
			markErr: errors.New("row missing"),
		}
		sweepPending(acker)
		if len(acker.delivered) != 2 {
			t.Fatalf("expected both rows attempted, got %v", acker.delivered)
		}
	})
}

func TestHandleMessage(t *testing.T) {
	t.Run("marks the row delivered", func(t *testing.T) {
		acker := &stubAcker{}
		body, _ := json.Marshal(entities.NotificationEnqueuedEvent{
			NotificationID: "n-1",
			UserID:         "user-1",
			Channel:        "email",
		})

		if err := handleMessage(body, acker); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(acker.delivered) != 1 || acker.delivered[0] != "n-1" {
			t.Fatalf("unexpected deliveries %v", acker.delivered)
		}
	})

	t.Run("rejects malformed payload", func(t *testing.T) {
		acker := &stubAcker{}
		if err := handleMessage([]byte("{not json"), acker); err == nil {
			t.Fatal("expected decode error")
		}
		if len(acker.delivered) != 0 {
			t.Fatalf("unexpected deliveries %v", acker.delivered)
		}
	})

	t.Run("rejects missing notification id", func(t *testing.T) {
		acker := &stubAcker{}
		if err := handleMessage([]byte(`{"user_id":"user-1"}`), acker); err == nil {
			t.Fatal("expected validation error")
		}
	})
}
