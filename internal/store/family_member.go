package store

import (
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/mossfield/hearth/internal/model"
)

const (
	memberPrefix = "member:"
	// PIN hashes live under their own keys so they never travel with the
	// member record through API responses.
	pinPrefix = "pin:"
)

type FamilyMemberStore struct {
	kv *KV
}

func NewFamilyMemberStore(kv *KV) *FamilyMemberStore {
	return &FamilyMemberStore{kv: kv}
}

func memberKey(id string) string { return memberPrefix + id }
func pinKey(id string) string    { return pinPrefix + id }

func (s *FamilyMemberStore) Create(name, color, emoji string) (*model.FamilyMember, error) {
	m := model.FamilyMember{
		ID:        uuid.NewString(),
		Name:      name,
		Color:     color,
		Emoji:     emoji,
		LastSeen:  time.Now(),
		CreatedAt: time.Now(),
	}
	if err := s.kv.Set(memberKey(m.ID), m); err != nil {
		return nil, fmt.Errorf("create member: %w", err)
	}
	return &m, nil
}

func (s *FamilyMemberStore) GetByID(id string) (*model.FamilyMember, error) {
	var m model.FamilyMember
	found, err := s.kv.Get(memberKey(id), &m)
	if err != nil {
		return nil, fmt.Errorf("get member: %w", err)
	}
	if !found {
		return nil, nil
	}
	return &m, nil
}

func (s *FamilyMemberStore) List() ([]model.FamilyMember, error) {
	raws, err := s.kv.GetByPrefix(memberPrefix)
	if err != nil {
		return nil, fmt.Errorf("list members: %w", err)
	}

	members := make([]model.FamilyMember, 0, len(raws))
	for _, raw := range raws {
		var m model.FamilyMember
		if err := json.Unmarshal(raw, &m); err != nil {
			return nil, fmt.Errorf("decode member: %w", err)
		}
		members = append(members, m)
	}
	sort.SliceStable(members, func(i, j int) bool {
		if !members[i].CreatedAt.Equal(members[j].CreatedAt) {
			return members[i].CreatedAt.Before(members[j].CreatedAt)
		}
		return members[i].ID < members[j].ID
	})
	return members, nil
}

func (s *FamilyMemberStore) Update(id, name, color, emoji string) (*model.FamilyMember, error) {
	m, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, nil
	}

	m.Name = name
	m.Color = color
	m.Emoji = emoji

	if err := s.kv.Set(memberKey(id), m); err != nil {
		return nil, fmt.Errorf("update member: %w", err)
	}
	return m, nil
}

func (s *FamilyMemberStore) Delete(id string) error {
	if err := s.kv.Delete(memberKey(id)); err != nil {
		return fmt.Errorf("delete member: %w", err)
	}
	if err := s.kv.Delete(pinKey(id)); err != nil {
		return fmt.Errorf("delete member pin: %w", err)
	}
	return nil
}

// TouchLastSeen records member activity.
func (s *FamilyMemberStore) TouchLastSeen(id string, at time.Time) error {
	m, err := s.GetByID(id)
	if err != nil || m == nil {
		return err
	}
	m.LastSeen = at
	if err := s.kv.Set(memberKey(id), m); err != nil {
		return fmt.Errorf("touch member: %w", err)
	}
	return nil
}

// SetPIN stores a bcrypt hash of the member's PIN. Hashing is the
// handler's job; the store only persists the hash.
func (s *FamilyMemberStore) SetPIN(id, hash string) error {
	m, err := s.GetByID(id)
	if err != nil {
		return err
	}
	if m == nil {
		return fmt.Errorf("set pin: member %s not found", id)
	}
	if err := s.kv.Set(pinKey(id), hash); err != nil {
		return fmt.Errorf("set pin: %w", err)
	}
	m.HasPIN = true
	if err := s.kv.Set(memberKey(id), m); err != nil {
		return fmt.Errorf("set pin: %w", err)
	}
	return nil
}

func (s *FamilyMemberStore) ClearPIN(id string) error {
	m, err := s.GetByID(id)
	if err != nil {
		return err
	}
	if m == nil {
		return fmt.Errorf("clear pin: member %s not found", id)
	}
	if err := s.kv.Delete(pinKey(id)); err != nil {
		return fmt.Errorf("clear pin: %w", err)
	}
	m.HasPIN = false
	if err := s.kv.Set(memberKey(id), m); err != nil {
		return fmt.Errorf("clear pin: %w", err)
	}
	return nil
}

// GetPINHash returns the stored hash, empty when no PIN is set.
func (s *FamilyMemberStore) GetPINHash(id string) (string, error) {
	var hash string
	found, err := s.kv.Get(pinKey(id), &hash)
	if err != nil {
		return "", fmt.Errorf("get pin: %w", err)
	}
	if !found {
		return "", nil
	}
	return hash, nil
}
