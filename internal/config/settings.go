package config

import (
	"os"
	"path/filepath"

	"fyne.io/fyne/v2"
)

// Theme variants
type ThemeVariant string

const (
	ThemeLight ThemeVariant = "light"
	ThemeDark  ThemeVariant = "dark"
)

// Settings keys for Fyne preferences
const (
	KeyOutputDir   = "output_directory"
	KeyFFmpegPath  = "ffmpeg_path"
	KeyFFprobePath = "ffprobe_path"
	KeyTheme       = "app_theme"
	KeyLanguage    = "app_language"
	KeyLastPreset  = "last_preset"
)

// Default values
const (
	DefaultTheme    = ThemeDark
	DefaultLanguage = "system"
)

// Settings manages application configuration
type Settings struct {
	app fyne.App
}

// NewSettings creates a new settings manager
func NewSettings(app fyne.App) *Settings {
	return &Settings{app: app}
}

// GetOutputDirectory returns the configured output directory
func (s *Settings) GetOutputDirectory() string {
	dir := s.app.Preferences().String(KeyOutputDir)
	if dir == "" {
		defaultDir := defaultOutputDir()
		s.SetOutputDirectory(defaultDir)
		return defaultDir
	}
	return dir
}

// SetOutputDirectory sets the output directory
func (s *Settings) SetOutputDirectory(dir string) {
	s.app.Preferences().SetString(KeyOutputDir, dir)
}

// defaultOutputDir is a converted/ folder under the user's Videos directory
func defaultOutputDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), "converted")
	}
	return filepath.Join(home, "Videos", "converted")
}

// GetFFmpegPath returns the configured ffmpeg binary path, "" when unset
func (s *Settings) GetFFmpegPath() string {
	return s.app.Preferences().String(KeyFFmpegPath)
}

// SetFFmpegPath sets the ffmpeg binary path
func (s *Settings) SetFFmpegPath(path string) {
	s.app.Preferences().SetString(KeyFFmpegPath, path)
}

// GetFFprobePath returns the configured ffprobe binary path, "" when unset
func (s *Settings) GetFFprobePath() string {
	return s.app.Preferences().String(KeyFFprobePath)
}

// SetFFprobePath sets the ffprobe binary path
func (s *Settings) SetFFprobePath(path string) {
	s.app.Preferences().SetString(KeyFFprobePath, path)
}

// GetTheme returns the configured theme variant
func (s *Settings) GetTheme() ThemeVariant {
	theme := s.app.Preferences().String(KeyTheme)
	switch ThemeVariant(theme) {
	case ThemeLight, ThemeDark:
		return ThemeVariant(theme)
	}
	s.SetTheme(DefaultTheme)
	return DefaultTheme
}

// SetTheme sets the theme variant
func (s *Settings) SetTheme(theme ThemeVariant) {
	s.app.Preferences().SetString(KeyTheme, string(theme))
}

// GetLanguage returns the configured language
func (s *Settings) GetLanguage() string {
	lang := s.app.Preferences().String(KeyLanguage)
	if lang == "" {
		s.SetLanguage(DefaultLanguage)
		return DefaultLanguage
	}
	return lang
}

// SetLanguage sets the application language
func (s *Settings) SetLanguage(lang string) {
	s.app.Preferences().SetString(KeyLanguage, lang)
}

// GetLastPreset returns the preset name selected last session
func (s *Settings) GetLastPreset() string {
	return s.app.Preferences().String(KeyLastPreset)
}

// SetLastPreset remembers the selected preset name
func (s *Settings) SetLastPreset(name string) {
	s.app.Preferences().SetString(KeyLastPreset, name)
}

// GetThemeOptions returns available theme variants
func (s *Settings) GetThemeOptions() []ThemeVariant {
	return []ThemeVariant{ThemeLight, ThemeDark}
}

// GetLanguageOptions returns available language options
func (s *Settings) GetLanguageOptions() map[string]string {
	return map[string]string{
		"system": "System Default",
		"en":     "English",
		"uk":     "Українська",
	}
}
