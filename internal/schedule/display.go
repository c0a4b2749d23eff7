package schedule

import (
	"sort"
	"time"

	"github.com/mossfield/hearth/internal/model"
)

// DashboardLimit caps how many chores the home dashboard shows.
const DashboardLimit = 9

// GridSlots are the fixed 3x3 dashboard coordinates (percentages), row-major.
// Dashboard chores are placed here in sort order; a chore's stored position
// is only used by the free-form house layout.
var GridSlots = [DashboardLimit]model.Position{
	{X: 25, Y: 39}, {X: 50, Y: 39}, {X: 75, Y: 39},
	{X: 25, Y: 56}, {X: 50, Y: 56}, {X: 75, Y: 56},
	{X: 25, Y: 73}, {X: 50, Y: 73}, {X: 75, Y: 73},
}

// Displayed selects and orders the chores shown on the home dashboard:
// completed chores older than three hours are dropped, only
// placement-eligible chores (those with a position) are kept, and the rest
// are sorted by urgency then by notification time, capped at nine.
func Displayed(chores []model.Chore, now time.Time) []model.Chore {
	var out []model.Chore
	for _, c := range chores {
		if c.IsCompleted && !IsRecentlyCompleted(c, now) {
			continue
		}
		if c.Position == nil {
			continue
		}
		out = append(out, c)
	}

	sort.SliceStable(out, func(i, j int) bool {
		ri, rj := Rank(out[i], now), Rank(out[j], now)
		if ri != rj {
			return ri < rj
		}
		return NotificationMinutes(out[i]) < NotificationMinutes(out[j])
	})

	if len(out) > DashboardLimit {
		out = out[:DashboardLimit]
	}
	return out
}

// TodayChores filters to the chores that belong to today: recurring chores
// always do, one-shot chores only when their due date falls on today's
// local calendar date.
func TodayChores(chores []model.Chore, now time.Time) []model.Chore {
	var out []model.Chore
	for _, c := range chores {
		switch c.Kind() {
		case model.Recurring:
			out = append(out, c)
		case model.OneShot:
			if sameDay(*c.DueDate, now) {
				out = append(out, c)
			}
		}
	}
	return out
}

// Stats is a completed/total pair for a set of today's chores.
type Stats struct {
	Completed int `json:"completed"`
	Total     int `json:"total"`
}

// Percent returns the completion percentage, 0 when the set is empty.
func (s Stats) Percent() int {
	if s.Total == 0 {
		return 0
	}
	return s.Completed * 100 / s.Total
}

// UserTodayStats counts today's chores for one user. Unassigned chores
// count toward every user.
func UserTodayStats(chores []model.Chore, userID string, now time.Time) Stats {
	var st Stats
	for _, c := range TodayChores(chores, now) {
		if c.AssignedTo != "" && c.AssignedTo != userID {
			continue
		}
		st.Total++
		if c.IsCompleted {
			st.Completed++
		}
	}
	return st
}

// FamilyTodayStats counts all of today's chores regardless of assignment.
func FamilyTodayStats(chores []model.Chore, now time.Time) Stats {
	var st Stats
	for _, c := range TodayChores(chores, now) {
		st.Total++
		if c.IsCompleted {
			st.Completed++
		}
	}
	return st
}

func sameDay(a, b time.Time) bool {
	y1, m1, d1 := a.Date()
	y2, m2, d2 := b.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}
