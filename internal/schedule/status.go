package schedule

import (
	"strconv"
	"strings"
	"time"

	"github.com/mossfield/hearth/internal/model"
)

// RecentWindow is how long a completed chore keeps appearing on the
// dashboard before it is considered stale.
const RecentWindow = 3 * time.Hour

// Urgency is the ordinal display priority of a chore. Lower is more urgent.
type Urgency int

const (
	UrgencyCritical Urgency = 1
	UrgencyNormal   Urgency = 2
	UrgencyDone     Urgency = 3
)

// IsPastDue reports whether an incomplete chore's due date has passed.
func IsPastDue(c model.Chore, now time.Time) bool {
	if c.IsCompleted || c.DueDate == nil {
		return false
	}
	return now.After(*c.DueDate)
}

// IsDueSoon reports whether an incomplete chore is inside its reminder
// window: at or past dueDate - reminderHours, but not yet past the due date.
// Mutually exclusive with IsPastDue by the upper bound.
func IsDueSoon(c model.Chore, now time.Time) bool {
	if c.IsCompleted || c.DueDate == nil || c.ReminderHours == nil {
		return false
	}
	reminderAt := c.DueDate.Add(-time.Duration(*c.ReminderHours) * time.Hour)
	return !now.Before(reminderAt) && now.Before(*c.DueDate)
}

// IsOverdueByNotification reports whether an incomplete chore's daily
// notification time of day has already passed today. Independent of any
// due date. A missing or malformed notification time evaluates to false.
func IsOverdueByNotification(c model.Chore, now time.Time) bool {
	if c.IsCompleted {
		return false
	}
	mins, ok := parseClock(c.NotificationTime)
	if !ok {
		return false
	}
	today := time.Date(now.Year(), now.Month(), now.Day(), mins/60, mins%60, 0, 0, now.Location())
	return now.After(today)
}

// IsRecentlyCompleted reports whether the chore was completed within the
// last three hours.
func IsRecentlyCompleted(c model.Chore, now time.Time) bool {
	if !c.IsCompleted || c.CompletedAt == nil {
		return false
	}
	return now.Sub(*c.CompletedAt) < RecentWindow
}

// Rank classifies a chore for dashboard ordering. Past-due and
// overdue-by-notification chores are critical; completed chores sort last.
// Due-soon chores are shown distinctly but rank the same as untouched
// chores, matching the app's long-standing sort behavior.
func Rank(c model.Chore, now time.Time) Urgency {
	if c.IsCompleted {
		return UrgencyDone
	}
	if IsPastDue(c, now) || IsOverdueByNotification(c, now) {
		return UrgencyCritical
	}
	return UrgencyNormal
}

// endOfDayMinutes sorts chores with unparseable notification times last.
const endOfDayMinutes = 24 * 60

// NotificationMinutes converts the chore's "HH:MM" notification time to
// minutes since midnight for use as a sort key.
func NotificationMinutes(c model.Chore) int {
	mins, ok := parseClock(c.NotificationTime)
	if !ok {
		return endOfDayMinutes
	}
	return mins
}

func parseClock(s string) (int, bool) {
	h, m, ok := strings.Cut(s, ":")
	if !ok {
		return 0, false
	}
	hours, err := strconv.Atoi(h)
	if err != nil || hours < 0 || hours > 23 {
		return 0, false
	}
	minutes, err := strconv.Atoi(m)
	if err != nil || minutes < 0 || minutes > 59 {
		return 0, false
	}
	return hours*60 + minutes, true
}
