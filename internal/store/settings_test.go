package store

import (
	"testing"

	"github.com/mossfield/hearth/internal/model"
)

func TestSettingsDefaults(t *testing.T) {
	s := NewSettingsStore(newTestKV(t))

	got, err := s.Get()
	if err != nil {
		t.Fatalf("Get: %v", err)
	}

	want := model.DefaultSettings()
	if got != want {
		t.Errorf("Get on empty store = %+v, want defaults %+v", got, want)
	}
}

func TestSettingsSaveRoundTrip(t *testing.T) {
	s := NewSettingsStore(newTestKV(t))

	saved := model.AppSettings{
		DarkMode:      true,
		FontSize:      "large",
		Notifications: false,
		Language:      "de",
	}
	if err := s.Save(saved); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := s.Get()
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got != saved {
		t.Errorf("Get = %+v, want %+v", got, saved)
	}
}
