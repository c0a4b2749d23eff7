package notify

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/mossfield/hearth/internal/model"
)

type firedEvent struct {
	choreID string
	kind    Kind
}

type recorder struct {
	events []firedEvent
}

func (r *recorder) fire(c model.Chore, kind Kind) {
	r.events = append(r.events, firedEvent{choreID: c.ID, kind: kind})
}

func (r *recorder) count(choreID string, kind Kind) int {
	n := 0
	for _, e := range r.events {
		if e.choreID == choreID && e.kind == kind {
			n++
		}
	}
	return n
}

func newTestDetector(chores *[]model.Chore, rec *recorder) *Detector {
	return NewDetector(func() []model.Chore {
		return *chores
	}, rec.fire, slog.New(slog.DiscardHandler))
}

func timePtr(t time.Time) *time.Time { return &t }
func intPtr(i int) *int              { return &i }

func TestDetectorOnTime(t *testing.T) {
	chores := []model.Chore{{ID: "dishes", NotificationTime: "07:00"}}
	rec := &recorder{}
	d := newTestDetector(&chores, rec)

	clock := time.Date(2024, 1, 15, 6, 59, 0, 0, time.UTC)
	d.SetClock(func() time.Time { return clock })

	d.Tick()
	if got := rec.count("dishes", KindOnTime); got != 0 {
		t.Errorf("fired on-time %d times before the notification minute", got)
	}

	clock = time.Date(2024, 1, 15, 7, 0, 30, 0, time.UTC)
	d.Tick()
	if got := rec.count("dishes", KindOnTime); got != 1 {
		t.Errorf("fired on-time %d times during the notification minute, want 1", got)
	}

	clock = time.Date(2024, 1, 15, 7, 1, 30, 0, time.UTC)
	d.Tick()
	if got := rec.count("dishes", KindOnTime); got != 1 {
		t.Errorf("fired on-time %d times after the minute passed, want 1", got)
	}
}

func TestDetectorDueSoonOnce(t *testing.T) {
	due := time.Date(2024, 1, 15, 18, 0, 0, 0, time.UTC)
	chores := []model.Chore{{
		ID:               "trash",
		NotificationTime: "09:00",
		DueDate:          timePtr(due),
		ReminderHours:    intPtr(2),
	}}
	rec := &recorder{}
	d := newTestDetector(&chores, rec)

	clock := time.Date(2024, 1, 15, 16, 30, 0, 0, time.UTC)
	d.SetClock(func() time.Time { return clock })

	d.Tick()
	d.Tick()
	clock = clock.Add(time.Minute)
	d.Tick()

	if got := rec.count("trash", KindDueSoon); got != 1 {
		t.Errorf("due-soon fired %d times, want 1", got)
	}
}

func TestDetectorPastDueOnce(t *testing.T) {
	due := time.Date(2024, 1, 15, 18, 0, 0, 0, time.UTC)
	chores := []model.Chore{{ID: "trash", NotificationTime: "09:00", DueDate: timePtr(due)}}
	rec := &recorder{}
	d := newTestDetector(&chores, rec)

	clock := time.Date(2024, 1, 15, 18, 0, 30, 0, time.UTC)
	d.SetClock(func() time.Time { return clock })

	d.Tick()
	d.Tick()

	if got := rec.count("trash", KindPastDue); got != 1 {
		t.Errorf("past-due fired %d times, want 1", got)
	}
}

func TestDetectorDelayed(t *testing.T) {
	chores := []model.Chore{{ID: "dishes", NotificationTime: "07:00"}}
	rec := &recorder{}
	d := newTestDetector(&chores, rec)

	clock := time.Date(2024, 1, 15, 7, 29, 0, 0, time.UTC)
	d.SetClock(func() time.Time { return clock })

	d.Tick()
	if got := rec.count("dishes", KindDelayed); got != 0 {
		t.Errorf("delayed fired %d times before the grace period elapsed", got)
	}

	clock = time.Date(2024, 1, 15, 7, 30, 0, 0, time.UTC)
	d.Tick()
	d.Tick()
	if got := rec.count("dishes", KindDelayed); got != 1 {
		t.Errorf("delayed fired %d times, want 1", got)
	}
}

func TestDetectorSkipsCompleted(t *testing.T) {
	now := time.Date(2024, 1, 15, 9, 0, 0, 0, time.UTC)
	chores := []model.Chore{{
		ID:               "dishes",
		NotificationTime: "07:00",
		IsCompleted:      true,
		CompletedAt:      timePtr(now.Add(-time.Hour)),
	}}
	rec := &recorder{}
	d := newTestDetector(&chores, rec)
	d.SetClock(func() time.Time { return now })

	d.Tick()

	if len(rec.events) != 0 {
		t.Errorf("completed chore produced events: %v", rec.events)
	}
}

func TestDetectorClearChoreReArms(t *testing.T) {
	chores := []model.Chore{{ID: "dishes", NotificationTime: "07:00"}}
	rec := &recorder{}
	d := newTestDetector(&chores, rec)

	clock := time.Date(2024, 1, 15, 8, 0, 0, 0, time.UTC)
	d.SetClock(func() time.Time { return clock })

	d.Tick()
	if got := rec.count("dishes", KindDelayed); got != 1 {
		t.Fatalf("delayed fired %d times, want 1", got)
	}

	// Completing and un-completing the chore makes the threshold live again.
	d.ClearChore("dishes")
	d.Tick()
	if got := rec.count("dishes", KindDelayed); got != 2 {
		t.Errorf("delayed fired %d times after re-arm, want 2", got)
	}
}

func TestDetectorResetReArmsAll(t *testing.T) {
	due := time.Date(2024, 1, 15, 7, 0, 0, 0, time.UTC)
	chores := []model.Chore{
		{ID: "dishes", NotificationTime: "06:00"},
		{ID: "trash", NotificationTime: "06:00", DueDate: timePtr(due)},
	}
	rec := &recorder{}
	d := newTestDetector(&chores, rec)

	clock := time.Date(2024, 1, 15, 8, 0, 0, 0, time.UTC)
	d.SetClock(func() time.Time { return clock })

	d.Tick()
	before := len(rec.events)
	if before == 0 {
		t.Fatal("no thresholds fired")
	}

	d.Tick()
	if len(rec.events) != before {
		t.Fatalf("markers did not suppress repeat events: %d -> %d", before, len(rec.events))
	}

	d.Reset()
	d.Tick()
	if len(rec.events) != 2*before {
		t.Errorf("after reset got %d events total, want %d", len(rec.events), 2*before)
	}
}

func TestDetectorStartStop(t *testing.T) {
	chores := []model.Chore{}
	rec := &recorder{}
	d := newTestDetector(&chores, rec)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	d.Start(ctx)
	d.Stop()
}
