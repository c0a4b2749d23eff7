package model

import "time"

// Position is a percentage coordinate on the house layout (0-100 both axes).
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// ScheduleKind distinguishes recurring daily chores from one-shot deadline chores.
type ScheduleKind int

const (
	// Recurring chores have no due date. They reset daily and belong to
	// "today" every day.
	Recurring ScheduleKind = iota
	// OneShot chores carry a specific due date and time.
	OneShot
)

type Chore struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Icon          string    `json:"icon"`
	CustomIconURL string    `json:"custom_icon_url,omitempty"`
	Position      *Position `json:"position"`

	// NotificationTime is a daily wall-clock time of day ("HH:MM").
	NotificationTime string `json:"notification_time"`
	// DueDate is an optional one-shot deadline.
	DueDate *time.Time `json:"due_date,omitempty"`
	// ReminderHours is the lead time before DueDate at which the chore
	// counts as due soon. Meaningless without DueDate.
	ReminderHours *int `json:"reminder_hours,omitempty"`

	IsCompleted     bool       `json:"is_completed"`
	CompletedAt     *time.Time `json:"completed_at,omitempty"`
	CompletedBy     string     `json:"completed_by,omitempty"`
	CompletedByName string     `json:"completed_by_name,omitempty"`
	TimeSpent       int        `json:"time_spent,omitempty"`

	AssignedTo     string `json:"assigned_to,omitempty"`
	AssignedToName string `json:"assigned_to_name,omitempty"`

	EstimatedTime int    `json:"estimated_time,omitempty"`
	Location      string `json:"location,omitempty"`
	Description   string `json:"description,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Kind reports whether the chore is a recurring daily chore or a one-shot
// deadline chore.
func (c Chore) Kind() ScheduleKind {
	if c.DueDate == nil {
		return Recurring
	}
	return OneShot
}
