package store

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/mossfield/hearth/internal/model"
)

const tipPrefix = "tip:"

type TipStore struct {
	kv *KV
}

func NewTipStore(kv *KV) *TipStore {
	return &TipStore{kv: kv}
}

func tipKey(id string) string { return tipPrefix + id }

// List returns all tips, newest first.
func (s *TipStore) List() ([]model.Tip, error) {
	raws, err := s.kv.GetByPrefix(tipPrefix)
	if err != nil {
		return nil, fmt.Errorf("list tips: %w", err)
	}

	tips := make([]model.Tip, 0, len(raws))
	for _, raw := range raws {
		var t model.Tip
		if err := json.Unmarshal(raw, &t); err != nil {
			return nil, fmt.Errorf("decode tip: %w", err)
		}
		tips = append(tips, t)
	}
	sort.SliceStable(tips, func(i, j int) bool {
		return tips[i].PublishedAt.After(tips[j].PublishedAt)
	})
	return tips, nil
}

// ToggleLike flips the liked flag and adjusts the like count.
func (s *TipStore) ToggleLike(id string) (*model.Tip, error) {
	var t model.Tip
	found, err := s.kv.Get(tipKey(id), &t)
	if err != nil {
		return nil, fmt.Errorf("get tip: %w", err)
	}
	if !found {
		return nil, nil
	}

	if t.IsLiked {
		t.IsLiked = false
		t.Likes--
	} else {
		t.IsLiked = true
		t.Likes++
	}

	if err := s.kv.Set(tipKey(id), t); err != nil {
		return nil, fmt.Errorf("toggle tip like: %w", err)
	}
	return &t, nil
}

func (s *TipStore) save(t model.Tip) error {
	return s.kv.Set(tipKey(t.ID), t)
}
