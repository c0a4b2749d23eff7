package model

type AppSettings struct {
	DarkMode      bool   `json:"dark_mode"`
	FontSize      string `json:"font_size"`
	Notifications bool   `json:"notifications"`
	SoundEnabled  bool   `json:"sound_enabled"`
	FamilySharing bool   `json:"family_sharing"`
	AutoBackup    bool   `json:"auto_backup"`
	Language      string `json:"language"`
}

// DefaultSettings returns the settings used when none have been saved yet.
func DefaultSettings() AppSettings {
	return AppSettings{
		FontSize:      "medium",
		Notifications: true,
		SoundEnabled:  true,
		AutoBackup:    true,
		Language:      "en",
	}
}
