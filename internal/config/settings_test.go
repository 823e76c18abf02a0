package config

import (
	"testing"

	"fyne.io/fyne/v2/test"
)

func TestNewSettings(t *testing.T) {
	app := test.NewApp()
	settings := NewSettings(app)

	if settings.app != app {
		t.Error("Settings app reference should match provided app")
	}
}

func TestOutputDirectory(t *testing.T) {
	app := test.NewApp()
	settings := NewSettings(app)

	// Test default value
	dir := settings.GetOutputDirectory()
	if dir == "" {
		t.Error("Output directory should not be empty")
	}

	// Test setting custom value
	customDir := "/custom/converted"
	settings.SetOutputDirectory(customDir)

	retrievedDir := settings.GetOutputDirectory()
	if retrievedDir != customDir {
		t.Errorf("Expected output directory %s, got %s", customDir, retrievedDir)
	}
}

func TestFFmpegPath(t *testing.T) {
	app := test.NewApp()
	settings := NewSettings(app)

	if settings.GetFFmpegPath() != "" {
		t.Error("FFmpeg path should start empty")
	}

	settings.SetFFmpegPath("/opt/ffmpeg/bin/ffmpeg")
	if settings.GetFFmpegPath() != "/opt/ffmpeg/bin/ffmpeg" {
		t.Errorf("Got %s", settings.GetFFmpegPath())
	}

	settings.SetFFprobePath("/opt/ffmpeg/bin/ffprobe")
	if settings.GetFFprobePath() != "/opt/ffmpeg/bin/ffprobe" {
		t.Errorf("Got %s", settings.GetFFprobePath())
	}
}

func TestTheme(t *testing.T) {
	app := test.NewApp()
	settings := NewSettings(app)

	// Test default value
	theme := settings.GetTheme()
	if theme != DefaultTheme {
		t.Errorf("Expected default theme %s, got %s", DefaultTheme, theme)
	}

	// Test setting custom value
	settings.SetTheme(ThemeLight)
	if settings.GetTheme() != ThemeLight {
		t.Errorf("Expected theme %s, got %s", ThemeLight, settings.GetTheme())
	}

	// Unknown stored values fall back to the default
	app.Preferences().SetString(KeyTheme, "sepia")
	if settings.GetTheme() != DefaultTheme {
		t.Errorf("Unknown theme should default to %s, got %s", DefaultTheme, settings.GetTheme())
	}
}

func TestLanguage(t *testing.T) {
	app := test.NewApp()
	settings := NewSettings(app)

	// Test default value
	lang := settings.GetLanguage()
	if lang != DefaultLanguage {
		t.Errorf("Expected default language %s, got %s", DefaultLanguage, lang)
	}

	// Test setting custom value
	settings.SetLanguage("uk")

	retrievedLang := settings.GetLanguage()
	if retrievedLang != "uk" {
		t.Errorf("Expected language 'uk', got %s", retrievedLang)
	}
}

func TestLastPreset(t *testing.T) {
	app := test.NewApp()
	settings := NewSettings(app)

	if settings.GetLastPreset() != "" {
		t.Error("Last preset should start empty")
	}

	settings.SetLastPreset("H.265 Quality (MP4)")
	if settings.GetLastPreset() != "H.265 Quality (MP4)" {
		t.Errorf("Got %s", settings.GetLastPreset())
	}
}

func TestGetLanguageOptions(t *testing.T) {
	app := test.NewApp()
	settings := NewSettings(app)

	options := settings.GetLanguageOptions()

	expectedLangs := []string{"system", "en", "uk"}
	for _, lang := range expectedLangs {
		if _, exists := options[lang]; !exists {
			t.Errorf("Expected language option '%s' to exist", lang)
		}
	}

	if len(options) != len(expectedLangs) {
		t.Errorf("Expected %d language options, got %d", len(expectedLangs), len(options))
	}
}

func TestGetThemeOptions(t *testing.T) {
	app := test.NewApp()
	settings := NewSettings(app)

	options := settings.GetThemeOptions()
	if len(options) != 2 || options[0] != ThemeLight || options[1] != ThemeDark {
		t.Errorf("Theme options = %v", options)
	}
}
