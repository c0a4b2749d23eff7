package store

import (
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/mossfield/hearth/internal/model"
)

const photoPrefix = "photo:"

// MaxPhotoImages caps how many images one photo record may carry.
const MaxPhotoImages = 4

type PhotoStore struct {
	kv *KV
}

func NewPhotoStore(kv *KV) *PhotoStore {
	return &PhotoStore{kv: kv}
}

func photoKey(id string) string { return photoPrefix + id }

func (s *PhotoStore) Create(choreID string, imageURLs []string, comment, takenBy, takenByName string) (*model.ChorePhoto, error) {
	if len(imageURLs) == 0 {
		return nil, fmt.Errorf("create photo: at least one image required")
	}
	if len(imageURLs) > MaxPhotoImages {
		imageURLs = imageURLs[:MaxPhotoImages]
	}

	p := model.ChorePhoto{
		ID:          uuid.NewString(),
		ChoreID:     choreID,
		ImageURLs:   imageURLs,
		Comment:     comment,
		TakenAt:     time.Now(),
		TakenBy:     takenBy,
		TakenByName: takenByName,
	}
	if err := s.kv.Set(photoKey(p.ID), p); err != nil {
		return nil, fmt.Errorf("create photo: %w", err)
	}
	return &p, nil
}

// List returns all photos, newest first.
func (s *PhotoStore) List() ([]model.ChorePhoto, error) {
	raws, err := s.kv.GetByPrefix(photoPrefix)
	if err != nil {
		return nil, fmt.Errorf("list photos: %w", err)
	}

	photos := make([]model.ChorePhoto, 0, len(raws))
	for _, raw := range raws {
		var p model.ChorePhoto
		if err := json.Unmarshal(raw, &p); err != nil {
			return nil, fmt.Errorf("decode photo: %w", err)
		}
		photos = append(photos, p)
	}
	sort.SliceStable(photos, func(i, j int) bool {
		return photos[i].TakenAt.After(photos[j].TakenAt)
	})
	return photos, nil
}

func (s *PhotoStore) UpdateComment(id, comment string) (*model.ChorePhoto, error) {
	var p model.ChorePhoto
	found, err := s.kv.Get(photoKey(id), &p)
	if err != nil {
		return nil, fmt.Errorf("get photo: %w", err)
	}
	if !found {
		return nil, nil
	}

	p.Comment = comment
	if err := s.kv.Set(photoKey(id), p); err != nil {
		return nil, fmt.Errorf("update photo comment: %w", err)
	}
	return &p, nil
}

func (s *PhotoStore) Delete(id string) error {
	if err := s.kv.Delete(photoKey(id)); err != nil {
		return fmt.Errorf("delete photo: %w", err)
	}
	return nil
}
