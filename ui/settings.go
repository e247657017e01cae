package ui

const defaultTheme = "desert"

// Preferences is implemented by *athan.Manager.
type Preferences interface {
	Settings() map[string]interface{}
	ApplySettings(settings map[string]interface{})
}

// Settings stands in for a settings panel until there is a real one.
type Settings struct {
	manager Preferences
}

func NewSettings(manager Preferences) *Settings {
	return &Settings{manager: manager}
}

// LoadUserPreferences applies the saved theme and turns notifications on.
func (s *Settings) LoadUserPreferences() {
	theme, ok := s.manager.Settings()["theme"]
	if !ok || theme == "" {
		theme = defaultTheme
	}
	s.manager.ApplySettings(map[string]interface{}{
		"theme":         theme,
		"notifications": true,
	})
}
