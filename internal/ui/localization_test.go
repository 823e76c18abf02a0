package ui

import "testing"

func TestLocalizationDefaultsToEnglish(t *testing.T) {
	loc := NewLocalization()

	if got := loc.GetCurrentLanguage(); got != "en" {
		t.Errorf("GetCurrentLanguage() = %q, want en", got)
	}
	if got := loc.GetText(KeyAppTitle); got != "Media Converter" {
		t.Errorf("GetText(KeyAppTitle) = %q", got)
	}
}

func TestLocalizationSystemLanguage(t *testing.T) {
	loc := NewLocalization()
	loc.SetLanguage("system")

	if got := loc.GetCurrentLanguage(); got != "en" {
		t.Errorf("system language resolved to %q, want en", got)
	}
}

func TestLocalizationUkrainian(t *testing.T) {
	loc := NewLocalization()
	loc.SetLanguage("uk")

	if got := loc.GetText(KeyAppTitle); got != "Медіа Конвертер" {
		t.Errorf("GetText(KeyAppTitle) = %q", got)
	}
}

func TestLocalizationFallsBackToKey(t *testing.T) {
	loc := NewLocalization()

	if got := loc.GetText("no_such_key"); got != "no_such_key" {
		t.Errorf("GetText(unknown) = %q, want the key itself", got)
	}
}
