package store

import (
	"fmt"

	"github.com/mossfield/hearth/internal/model"
)

const settingsKey = "app_settings"

type SettingsStore struct {
	kv *KV
}

func NewSettingsStore(kv *KV) *SettingsStore {
	return &SettingsStore{kv: kv}
}

// Get returns the saved settings, or the defaults when none exist.
func (s *SettingsStore) Get() (model.AppSettings, error) {
	var settings model.AppSettings
	found, err := s.kv.Get(settingsKey, &settings)
	if err != nil {
		return model.AppSettings{}, fmt.Errorf("get settings: %w", err)
	}
	if !found {
		return model.DefaultSettings(), nil
	}
	return settings, nil
}

func (s *SettingsStore) Save(settings model.AppSettings) error {
	if err := s.kv.Set(settingsKey, settings); err != nil {
		return fmt.Errorf("save settings: %w", err)
	}
	return nil
}
