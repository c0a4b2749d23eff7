package store

import (
	"fmt"
	"time"

	"github.com/mossfield/hearth/internal/model"
)

// SeedIfEmpty populates a brand-new store with a starter household so the
// app is usable on first boot: three family members, a day's worth of
// chores placed on the house windows, and a few tips. Does nothing when
// any family member already exists.
func SeedIfEmpty(kv *KV) error {
	raws, err := kv.GetByPrefix(memberPrefix)
	if err != nil {
		return fmt.Errorf("seed check: %w", err)
	}
	if len(raws) > 0 {
		return nil
	}

	members := NewFamilyMemberStore(kv)
	mom, err := members.Create("Mom", "#e07a5f", "🌼")
	if err != nil {
		return fmt.Errorf("seed members: %w", err)
	}
	dad, err := members.Create("Dad", "#3d66a5", "🛠️")
	if err != nil {
		return fmt.Errorf("seed members: %w", err)
	}
	kid, err := members.Create("Theo", "#81b29a", "⚽")
	if err != nil {
		return fmt.Errorf("seed members: %w", err)
	}

	chores := NewChoreStore(kv)
	pos := func(x, y float64) *model.Position { return &model.Position{X: x, Y: y} }
	starter := []model.Chore{
		{Name: "Start the laundry", Icon: "👕", Position: pos(20, 30), NotificationTime: "06:30",
			EstimatedTime: 30, AssignedTo: mom.ID, AssignedToName: mom.Name, Location: "Laundry room",
			Description: "Run the washer and hang everything up"},
		{Name: "Cook the rice", Icon: "🍚", Position: pos(72, 30), NotificationTime: "07:00",
			EstimatedTime: 5, AssignedTo: dad.ID, AssignedToName: dad.Name, Location: "Kitchen"},
		{Name: "Water the plants", Icon: "🌱", Position: pos(28, 50), NotificationTime: "08:00",
			EstimatedTime: 10, AssignedTo: mom.ID, AssignedToName: mom.Name, Location: "Balcony"},
		{Name: "Vacuum the living room", Icon: "🧹", Position: pos(50, 50), NotificationTime: "09:00",
			EstimatedTime: 15, AssignedTo: kid.ID, AssignedToName: kid.Name, Location: "Living room"},
		{Name: "Scrub the bathtub", Icon: "🚿", Position: pos(72, 50), NotificationTime: "19:00",
			EstimatedTime: 20, AssignedTo: dad.ID, AssignedToName: dad.Name, Location: "Bathroom"},
		{Name: "Take out the trash", Icon: "🗑️", Position: pos(28, 70), NotificationTime: "07:30",
			EstimatedTime: 5, AssignedTo: dad.ID, AssignedToName: dad.Name, Location: "Front door"},
		{Name: "Wash the dishes", Icon: "🍽️", Position: pos(72, 70), NotificationTime: "20:00",
			EstimatedTime: 10, AssignedTo: kid.ID, AssignedToName: kid.Name, Location: "Kitchen"},
		{Name: "Fold the laundry", Icon: "👔", NotificationTime: "15:00",
			EstimatedTime: 15, AssignedTo: mom.ID, AssignedToName: mom.Name, Location: "Living room"},
		{Name: "Walk the dog", Icon: "🐕", NotificationTime: "18:00",
			EstimatedTime: 30, AssignedTo: dad.ID, AssignedToName: dad.Name, Location: "Neighborhood"},
	}
	for _, c := range starter {
		if _, err := chores.Create(c); err != nil {
			return fmt.Errorf("seed chores: %w", err)
		}
	}

	tips := NewTipStore(kv)
	starterTips := []model.Tip{
		{
			ID:       "tip-degrease",
			Title:    "Cut kitchen grease with baking soda",
			Content:  "Mix two tablespoons of baking soda with one of vinegar. Work it in with a sponge, let it foam, then rinse. No harsh cleaners needed.",
			Category: "kitchen", ReadTime: "3 min",
			Tags:        []string{"baking soda", "natural", "degreasing"},
			Likes:       24,
			PublishedAt: time.Date(2024, 12, 1, 0, 0, 0, 0, time.Local),
		},
		{
			ID:       "tip-dry-faster",
			Title:    "Dry laundry faster indoors",
			Content:  "Throw a dry towel in with the load to soak up moisture, hang long items on the outside of the rack, and point a fan at the lot. Drying time roughly halves.",
			Category: "laundry", ReadTime: "2 min",
			Tags:        []string{"time saver", "indoor drying"},
			Likes:       18,
			PublishedAt: time.Date(2024, 11, 25, 0, 0, 0, 0, time.Local),
		},
		{
			ID:       "tip-fifteen-minutes",
			Title:    "The fifteen-minute tidy",
			Content:  "Set a timer for fifteen minutes, start with the spot that bugs you most, and sort into keep, toss, and undecided. Done daily it keeps the whole place in order.",
			Category: "organization", ReadTime: "4 min",
			Tags:        []string{"decluttering", "habit"},
			Likes:       32,
			PublishedAt: time.Date(2024, 11, 20, 0, 0, 0, 0, time.Local),
		},
	}
	for _, t := range starterTips {
		if err := tips.save(t); err != nil {
			return fmt.Errorf("seed tips: %w", err)
		}
	}

	return nil
}
