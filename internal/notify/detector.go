package notify

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/mossfield/hearth/internal/model"
	"github.com/mossfield/hearth/internal/schedule"
)

// Kind identifies which threshold a chore crossed.
type Kind string

const (
	// KindOnTime fires during the exact minute of the chore's daily
	// notification time. Not deduplicated; the minute match self-limits it.
	KindOnTime Kind = "on_time"
	// KindDueSoon fires once when the chore enters its reminder window.
	KindDueSoon Kind = "due_soon"
	// KindPastDue fires once when the chore's due date passes.
	KindPastDue Kind = "past_due"
	// KindDelayed fires once when the chore is still incomplete 30 minutes
	// after its daily notification time.
	KindDelayed Kind = "delayed"
)

// delayGrace is how long after the notification time a chore may remain
// incomplete before the delayed threshold fires.
const delayGrace = 30 * time.Minute

// Callback receives each threshold crossing. Presentation (push, toast,
// websocket) is the callback's concern, not the detector's.
type Callback func(chore model.Chore, kind Kind)

// Detector periodically scans the chore collection and fires a callback
// when a chore crosses a notification threshold. Each once-per-occurrence
// threshold is tracked in a marker set owned by the detector; completing a
// chore or resetting the day clears its markers so the thresholds can fire
// again.
type Detector struct {
	mu       sync.Mutex
	source   func() []model.Chore
	fire     Callback
	now      func() time.Time
	interval time.Duration
	logger   *slog.Logger

	dueSoonSeen map[string]struct{}
	pastDueSeen map[string]struct{}
	delayedSeen map[string]struct{}

	cancel context.CancelFunc
	done   chan struct{}
}

// NewDetector creates a detector over the given chore snapshot source.
// The source is called once per tick and must return a consistent snapshot.
func NewDetector(source func() []model.Chore, fire Callback, logger *slog.Logger) *Detector {
	return &Detector{
		source:      source,
		fire:        fire,
		now:         time.Now,
		interval:    60 * time.Second,
		logger:      logger,
		dueSoonSeen: make(map[string]struct{}),
		pastDueSeen: make(map[string]struct{}),
		delayedSeen: make(map[string]struct{}),
	}
}

// SetClock overrides the wall clock, for tests.
func (d *Detector) SetClock(now func() time.Time) {
	d.mu.Lock()
	d.now = now
	d.mu.Unlock()
}

// Start begins the tick loop. Each tick runs to completion before the next
// is scheduled.
func (d *Detector) Start(ctx context.Context) {
	d.mu.Lock()
	ctx, d.cancel = context.WithCancel(ctx)
	d.done = make(chan struct{})
	d.mu.Unlock()

	go func() {
		defer close(d.done)
		ticker := time.NewTicker(d.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				d.Tick()
			}
		}
	}()
}

// Stop cancels the tick loop and waits for any in-flight tick to finish.
func (d *Detector) Stop() {
	d.mu.Lock()
	cancel := d.cancel
	done := d.done
	d.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	if done != nil {
		<-done
	}
}

// Tick evaluates every chore against the current instant and fires
// callbacks for newly crossed thresholds. Exported so tests can drive the
// detector with an injected clock instead of waiting on the ticker.
func (d *Detector) Tick() {
	d.mu.Lock()
	defer d.mu.Unlock()

	now := d.now()
	currentMinute := now.Format("15:04")

	for _, c := range d.source() {
		if c.IsCompleted {
			continue
		}

		if c.NotificationTime != "" && c.NotificationTime == currentMinute {
			d.emit(c, KindOnTime)
		}

		if _, seen := d.dueSoonSeen[c.ID]; !seen && schedule.IsDueSoon(c, now) {
			d.dueSoonSeen[c.ID] = struct{}{}
			d.emit(c, KindDueSoon)
		}

		if _, seen := d.pastDueSeen[c.ID]; !seen && schedule.IsPastDue(c, now) {
			d.pastDueSeen[c.ID] = struct{}{}
			d.emit(c, KindPastDue)
		}

		if _, seen := d.delayedSeen[c.ID]; !seen && d.isDelayed(c, now) {
			d.delayedSeen[c.ID] = struct{}{}
			d.emit(c, KindDelayed)
		}
	}
}

func (d *Detector) emit(c model.Chore, kind Kind) {
	d.logger.Debug("notification threshold crossed", "chore_id", c.ID, "kind", string(kind))
	if d.fire != nil {
		d.fire(c, kind)
	}
}

func (d *Detector) isDelayed(c model.Chore, now time.Time) bool {
	mins := schedule.NotificationMinutes(c)
	if mins >= 24*60 {
		return false
	}
	scheduled := time.Date(now.Year(), now.Month(), now.Day(), mins/60, mins%60, 0, 0, now.Location())
	return !now.Before(scheduled.Add(delayGrace))
}

// ClearChore forgets a chore's markers, typically after it is completed,
// so its thresholds can fire again on a later occurrence.
func (d *Detector) ClearChore(choreID string) {
	d.mu.Lock()
	delete(d.dueSoonSeen, choreID)
	delete(d.pastDueSeen, choreID)
	delete(d.delayedSeen, choreID)
	d.mu.Unlock()
}

// Reset forgets all markers, used when the day is reset.
func (d *Detector) Reset() {
	d.mu.Lock()
	d.dueSoonSeen = make(map[string]struct{})
	d.pastDueSeen = make(map[string]struct{})
	d.delayedSeen = make(map[string]struct{})
	d.mu.Unlock()
}
