package store

import (
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/mossfield/hearth/internal/model"
)

const chorePrefix = "chore:"

type ChoreStore struct {
	kv *KV
}

func NewChoreStore(kv *KV) *ChoreStore {
	return &ChoreStore{kv: kv}
}

func choreKey(id string) string { return chorePrefix + id }

// Create persists a new chore. The ID and timestamps are assigned here;
// any completion attributes on the input are discarded — a chore is born
// incomplete.
func (s *ChoreStore) Create(c model.Chore) (*model.Chore, error) {
	c.ID = uuid.NewString()
	c.IsCompleted = false
	c.CompletedAt = nil
	c.CompletedBy = ""
	c.CompletedByName = ""
	c.TimeSpent = 0
	now := time.Now()
	c.CreatedAt = now
	c.UpdatedAt = now

	if err := s.kv.Set(choreKey(c.ID), c); err != nil {
		return nil, fmt.Errorf("create chore: %w", err)
	}
	return &c, nil
}

// GetByID returns the chore, or nil when it does not exist.
func (s *ChoreStore) GetByID(id string) (*model.Chore, error) {
	var c model.Chore
	found, err := s.kv.Get(choreKey(id), &c)
	if err != nil {
		return nil, fmt.Errorf("get chore: %w", err)
	}
	if !found {
		return nil, nil
	}
	return &c, nil
}

// List returns all chores ordered by creation time.
func (s *ChoreStore) List() ([]model.Chore, error) {
	raws, err := s.kv.GetByPrefix(chorePrefix)
	if err != nil {
		return nil, fmt.Errorf("list chores: %w", err)
	}

	chores := make([]model.Chore, 0, len(raws))
	for _, raw := range raws {
		var c model.Chore
		if err := json.Unmarshal(raw, &c); err != nil {
			return nil, fmt.Errorf("decode chore: %w", err)
		}
		chores = append(chores, c)
	}
	sort.SliceStable(chores, func(i, j int) bool {
		if !chores[i].CreatedAt.Equal(chores[j].CreatedAt) {
			return chores[i].CreatedAt.Before(chores[j].CreatedAt)
		}
		return chores[i].ID < chores[j].ID
	})
	return chores, nil
}

// Update overwrites an existing chore's editable fields, preserving its
// identity, creation time, and completion state.
func (s *ChoreStore) Update(id string, updated model.Chore) (*model.Chore, error) {
	existing, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, nil
	}

	existing.Name = updated.Name
	existing.Icon = updated.Icon
	existing.CustomIconURL = updated.CustomIconURL
	existing.Position = updated.Position
	existing.NotificationTime = updated.NotificationTime
	existing.DueDate = updated.DueDate
	existing.ReminderHours = updated.ReminderHours
	existing.AssignedTo = updated.AssignedTo
	existing.AssignedToName = updated.AssignedToName
	existing.EstimatedTime = updated.EstimatedTime
	existing.Location = updated.Location
	existing.Description = updated.Description
	existing.UpdatedAt = time.Now()

	if err := s.kv.Set(choreKey(id), existing); err != nil {
		return nil, fmt.Errorf("update chore: %w", err)
	}
	return existing, nil
}

func (s *ChoreStore) Delete(id string) error {
	if err := s.kv.Delete(choreKey(id)); err != nil {
		return fmt.Errorf("delete chore: %w", err)
	}
	return nil
}

// Complete marks the chore done. The completion attributes are written
// together so IsCompleted never appears without CompletedAt.
func (s *ChoreStore) Complete(id, completedBy, completedByName string, timeSpent int, at time.Time) (*model.Chore, error) {
	c, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, nil
	}

	c.IsCompleted = true
	c.CompletedAt = &at
	c.CompletedBy = completedBy
	c.CompletedByName = completedByName
	c.TimeSpent = timeSpent
	c.UpdatedAt = time.Now()

	if err := s.kv.Set(choreKey(id), c); err != nil {
		return nil, fmt.Errorf("complete chore: %w", err)
	}
	return c, nil
}

// Uncomplete reverts a completion, clearing all completion attributes
// together.
func (s *ChoreStore) Uncomplete(id string) (*model.Chore, error) {
	c, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, nil
	}

	c.IsCompleted = false
	c.CompletedAt = nil
	c.CompletedBy = ""
	c.CompletedByName = ""
	c.TimeSpent = 0
	c.UpdatedAt = time.Now()

	if err := s.kv.Set(choreKey(id), c); err != nil {
		return nil, fmt.Errorf("uncomplete chore: %w", err)
	}
	return c, nil
}

// ResetDay clears the completion state of every chore in one transaction,
// starting a fresh day.
func (s *ChoreStore) ResetDay() error {
	chores, err := s.List()
	if err != nil {
		return err
	}

	now := time.Now()
	entries := make(map[string]any, len(chores))
	for _, c := range chores {
		c.IsCompleted = false
		c.CompletedAt = nil
		c.CompletedBy = ""
		c.CompletedByName = ""
		c.TimeSpent = 0
		c.UpdatedAt = now
		entries[choreKey(c.ID)] = c
	}
	if err := s.kv.SetMany(entries); err != nil {
		return fmt.Errorf("reset day: %w", err)
	}
	return nil
}

// SaveAll persists the given chores in one transaction, e.g. after a
// position-repair pass.
func (s *ChoreStore) SaveAll(chores []model.Chore) error {
	now := time.Now()
	entries := make(map[string]any, len(chores))
	for _, c := range chores {
		c.UpdatedAt = now
		entries[choreKey(c.ID)] = c
	}
	if err := s.kv.SetMany(entries); err != nil {
		return fmt.Errorf("save chores: %w", err)
	}
	return nil
}
