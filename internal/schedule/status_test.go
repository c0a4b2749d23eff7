package schedule

import (
	"testing"
	"time"

	"github.com/mossfield/hearth/internal/model"
)

func timePtr(t time.Time) *time.Time { return &t }
func intPtr(i int) *int              { return &i }

func TestIsPastDue(t *testing.T) {
	due := time.Date(2024, 1, 15, 18, 0, 0, 0, time.UTC)

	tests := []struct {
		name  string
		chore model.Chore
		now   time.Time
		want  bool
	}{
		{
			name:  "before due date",
			chore: model.Chore{DueDate: timePtr(due)},
			now:   time.Date(2024, 1, 15, 17, 0, 0, 0, time.UTC),
			want:  false,
		},
		{
			name:  "exactly at due date",
			chore: model.Chore{DueDate: timePtr(due)},
			now:   due,
			want:  false,
		},
		{
			name:  "after due date",
			chore: model.Chore{DueDate: timePtr(due)},
			now:   time.Date(2024, 1, 15, 18, 0, 1, 0, time.UTC),
			want:  true,
		},
		{
			name:  "no due date",
			chore: model.Chore{},
			now:   time.Date(2024, 1, 15, 23, 0, 0, 0, time.UTC),
			want:  false,
		},
		{
			name:  "completed chore is never past due",
			chore: model.Chore{DueDate: timePtr(due), IsCompleted: true},
			now:   time.Date(2024, 1, 15, 23, 0, 0, 0, time.UTC),
			want:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsPastDue(tt.chore, tt.now); got != tt.want {
				t.Errorf("IsPastDue() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestIsDueSoon(t *testing.T) {
	due := time.Date(2024, 1, 15, 18, 0, 0, 0, time.UTC)

	tests := []struct {
		name  string
		chore model.Chore
		now   time.Time
		want  bool
	}{
		{
			name:  "inside reminder window",
			chore: model.Chore{DueDate: timePtr(due), ReminderHours: intPtr(2)},
			now:   time.Date(2024, 1, 15, 17, 0, 0, 0, time.UTC),
			want:  true,
		},
		{
			name:  "exactly at window start",
			chore: model.Chore{DueDate: timePtr(due), ReminderHours: intPtr(2)},
			now:   time.Date(2024, 1, 15, 16, 0, 0, 0, time.UTC),
			want:  true,
		},
		{
			name:  "before window",
			chore: model.Chore{DueDate: timePtr(due), ReminderHours: intPtr(2)},
			now:   time.Date(2024, 1, 15, 15, 59, 0, 0, time.UTC),
			want:  false,
		},
		{
			name:  "at due date no longer due soon",
			chore: model.Chore{DueDate: timePtr(due), ReminderHours: intPtr(2)},
			now:   due,
			want:  false,
		},
		{
			name:  "no reminder configured",
			chore: model.Chore{DueDate: timePtr(due)},
			now:   time.Date(2024, 1, 15, 17, 0, 0, 0, time.UTC),
			want:  false,
		},
		{
			name:  "completed",
			chore: model.Chore{DueDate: timePtr(due), ReminderHours: intPtr(2), IsCompleted: true},
			now:   time.Date(2024, 1, 15, 17, 0, 0, 0, time.UTC),
			want:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsDueSoon(tt.chore, tt.now); got != tt.want {
				t.Errorf("IsDueSoon() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDueSoonAndPastDueExclusive(t *testing.T) {
	due := time.Date(2024, 1, 15, 18, 0, 0, 0, time.UTC)
	c := model.Chore{DueDate: timePtr(due), ReminderHours: intPtr(2)}

	// Sweep across the boundary in minute steps.
	for now := due.Add(-3 * time.Hour); now.Before(due.Add(3 * time.Hour)); now = now.Add(time.Minute) {
		if IsDueSoon(c, now) && IsPastDue(c, now) {
			t.Fatalf("chore both due soon and past due at %v", now)
		}
	}
}

func TestIsOverdueByNotification(t *testing.T) {
	tests := []struct {
		name  string
		chore model.Chore
		now   time.Time
		want  bool
	}{
		{
			name:  "before notification time",
			chore: model.Chore{NotificationTime: "07:00"},
			now:   time.Date(2024, 1, 15, 6, 30, 0, 0, time.UTC),
			want:  false,
		},
		{
			name:  "exactly at notification time",
			chore: model.Chore{NotificationTime: "07:00"},
			now:   time.Date(2024, 1, 15, 7, 0, 0, 0, time.UTC),
			want:  false,
		},
		{
			name:  "after notification time",
			chore: model.Chore{NotificationTime: "07:00"},
			now:   time.Date(2024, 1, 15, 7, 31, 0, 0, time.UTC),
			want:  true,
		},
		{
			name:  "malformed time",
			chore: model.Chore{NotificationTime: "sevenish"},
			now:   time.Date(2024, 1, 15, 23, 0, 0, 0, time.UTC),
			want:  false,
		},
		{
			name:  "empty time",
			chore: model.Chore{},
			now:   time.Date(2024, 1, 15, 23, 0, 0, 0, time.UTC),
			want:  false,
		},
		{
			name:  "completed",
			chore: model.Chore{NotificationTime: "07:00", IsCompleted: true},
			now:   time.Date(2024, 1, 15, 9, 0, 0, 0, time.UTC),
			want:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsOverdueByNotification(tt.chore, tt.now); got != tt.want {
				t.Errorf("IsOverdueByNotification() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestIsRecentlyCompleted(t *testing.T) {
	completed := time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name  string
		chore model.Chore
		now   time.Time
		want  bool
	}{
		{
			name:  "just completed",
			chore: model.Chore{IsCompleted: true, CompletedAt: timePtr(completed)},
			now:   completed.Add(time.Minute),
			want:  true,
		},
		{
			name:  "just inside the window",
			chore: model.Chore{IsCompleted: true, CompletedAt: timePtr(completed)},
			now:   completed.Add(2*time.Hour + 59*time.Minute),
			want:  true,
		},
		{
			name:  "exactly at the window edge",
			chore: model.Chore{IsCompleted: true, CompletedAt: timePtr(completed)},
			now:   completed.Add(3 * time.Hour),
			want:  false,
		},
		{
			name:  "past the window",
			chore: model.Chore{IsCompleted: true, CompletedAt: timePtr(completed)},
			now:   completed.Add(3*time.Hour + time.Minute),
			want:  false,
		},
		{
			name:  "completed without timestamp",
			chore: model.Chore{IsCompleted: true},
			now:   completed,
			want:  false,
		},
		{
			name:  "not completed",
			chore: model.Chore{CompletedAt: timePtr(completed)},
			now:   completed.Add(time.Minute),
			want:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsRecentlyCompleted(tt.chore, tt.now); got != tt.want {
				t.Errorf("IsRecentlyCompleted() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRank(t *testing.T) {
	now := time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name  string
		chore model.Chore
		want  Urgency
	}{
		{
			name:  "past due is critical",
			chore: model.Chore{DueDate: timePtr(now.Add(-time.Hour))},
			want:  UrgencyCritical,
		},
		{
			name:  "overdue by notification is critical",
			chore: model.Chore{NotificationTime: "08:00"},
			want:  UrgencyCritical,
		},
		{
			name:  "due soon stays normal",
			chore: model.Chore{NotificationTime: "20:00", DueDate: timePtr(now.Add(time.Hour)), ReminderHours: intPtr(2)},
			want:  UrgencyNormal,
		},
		{
			name:  "untouched chore is normal",
			chore: model.Chore{NotificationTime: "20:00"},
			want:  UrgencyNormal,
		},
		{
			name:  "completed sorts last",
			chore: model.Chore{NotificationTime: "08:00", IsCompleted: true, CompletedAt: timePtr(now)},
			want:  UrgencyDone,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Rank(tt.chore, now); got != tt.want {
				t.Errorf("Rank() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNotificationMinutes(t *testing.T) {
	tests := []struct {
		time string
		want int
	}{
		{"00:00", 0},
		{"07:30", 450},
		{"23:59", 1439},
		{"24:00", endOfDayMinutes},
		{"garbage", endOfDayMinutes},
		{"", endOfDayMinutes},
		{"7", endOfDayMinutes},
	}

	for _, tt := range tests {
		got := NotificationMinutes(model.Chore{NotificationTime: tt.time})
		if got != tt.want {
			t.Errorf("NotificationMinutes(%q) = %d, want %d", tt.time, got, tt.want)
		}
	}
}
