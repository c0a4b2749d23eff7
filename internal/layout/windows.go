package layout

import (
	"github.com/mossfield/hearth/internal/model"
)

// WindowSlot is one of the predefined window positions on the house layout.
type WindowSlot struct {
	ID   string
	Name string
	Pos  model.Position
}

// WindowSlots is the fixed palette of window positions, scanned in declared
// order when placing a new chore.
var WindowSlots = []WindowSlot{
	{ID: "window-2f-left", Name: "upstairs left", Pos: model.Position{X: 20, Y: 30}},
	{ID: "window-2f-right", Name: "upstairs right", Pos: model.Position{X: 72, Y: 30}},
	{ID: "window-1f-left", Name: "main floor left", Pos: model.Position{X: 28, Y: 50}},
	{ID: "window-1f-center", Name: "main floor center", Pos: model.Position{X: 50, Y: 50}},
	{ID: "window-1f-right", Name: "main floor right", Pos: model.Position{X: 72, Y: 50}},
	{ID: "window-1f-bl", Name: "lower left", Pos: model.Position{X: 28, Y: 70}},
	{ID: "window-1f-br", Name: "lower right", Pos: model.Position{X: 72, Y: 70}},
}

const (
	// slotTolerance: a slot counts as occupied when a chore sits within
	// this many points of it on both axes.
	slotTolerance = 5
	// overlapTolerance: two chores overlap when within this many points
	// of each other on both axes.
	overlapTolerance = 8
	// nearWindowTolerance: a chore within this distance of any slot keeps
	// its position during bulk reassignment.
	nearWindowTolerance = 10
	// maxNudgeAttempts bounds the overlap-repair nudge loop.
	maxNudgeAttempts = 20
	// canvasMax clamps nudged coordinates to the visible layout.
	canvasMax = 100
)

// AvailableWindow returns the first free window slot position, or nil when
// every slot is occupied. A nil result is a normal outcome: the caller
// leaves the chore unplaced and it shows up in the list view only.
func AvailableWindow(existing []model.Chore) *model.Position {
	for _, slot := range WindowSlots {
		if !occupied(slot.Pos, existing, slotTolerance) {
			p := slot.Pos
			return &p
		}
	}
	return nil
}

func occupied(pos model.Position, chores []model.Chore, tolerance float64) bool {
	for _, c := range chores {
		if c.Position == nil {
			continue
		}
		if within(*c.Position, pos, tolerance) {
			return true
		}
	}
	return false
}

func within(a, b model.Position, tolerance float64) bool {
	return abs(a.X-b.X) < tolerance && abs(a.Y-b.Y) < tolerance
}

// AssignWindows re-places positioned chores onto the window palette. Chores
// already near a window keep their position; the rest are assigned slots
// round-robin. Unpositioned chores are not returned.
func AssignWindows(chores []model.Chore) []model.Chore {
	var out []model.Chore
	for _, c := range chores {
		if c.Position == nil {
			continue
		}
		out = append(out, c)
	}

	for i := range out {
		near := false
		for _, slot := range WindowSlots {
			if within(*out[i].Position, slot.Pos, nearWindowTolerance) {
				near = true
				break
			}
		}
		if near {
			continue
		}
		slot := WindowSlots[i%len(WindowSlots)]
		p := slot.Pos
		out[i].Position = &p
	}
	return out
}

// AdjustOverlapping repairs a collection whose positions collide, e.g.
// after a bulk import. Each positioned chore is checked against the chores
// already placed; on overlap it moves to the first free window slot, or
// failing that is nudged by a fixed offset. A chore that cannot be placed
// within the attempt bound loses its position and reverts to list-only
// rather than drifting off the canvas. Unpositioned chores pass through
// unchanged, after the positioned ones.
func AdjustOverlapping(chores []model.Chore) []model.Chore {
	var placed []model.Chore
	var unplaced []model.Chore

	for _, c := range chores {
		if c.Position == nil {
			unplaced = append(unplaced, c)
			continue
		}

		pos := *c.Position
		resolved := false
		for attempt := 0; attempt < maxNudgeAttempts; attempt++ {
			if !overlapsAny(pos, placed) {
				resolved = true
				break
			}
			if slot := freeSlot(placed); slot != nil {
				pos = *slot
				resolved = true
				break
			}
			pos.X = min(pos.X+5, canvasMax)
			pos.Y = min(pos.Y+3, canvasMax)
		}

		if resolved {
			c.Position = &model.Position{X: pos.X, Y: pos.Y}
		} else {
			c.Position = nil
		}
		if c.Position != nil {
			placed = append(placed, c)
		} else {
			unplaced = append(unplaced, c)
		}
	}

	return append(placed, unplaced...)
}

func overlapsAny(pos model.Position, placed []model.Chore) bool {
	for _, c := range placed {
		if c.Position != nil && within(*c.Position, pos, overlapTolerance) {
			return true
		}
	}
	return false
}

func freeSlot(placed []model.Chore) *model.Position {
	for _, slot := range WindowSlots {
		if !occupied(slot.Pos, placed, overlapTolerance) {
			p := slot.Pos
			return &p
		}
	}
	return nil
}

func abs(f float64) float64 {
	if f < 0 {
		return -f
	}
	return f
}
