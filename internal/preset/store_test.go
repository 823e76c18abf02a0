package preset

import (
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/mediabatch/media-converter/internal/model"
)

func TestApplyPartial(t *testing.T) {
	s := model.DefaultSettings()
	s.CRF = 18
	s.TextWatermark = "keep me"

	p := Preset{
		VideoFormat: ptr("webm"),
		Codec:       ptr(model.CodecVP9),
		CRF:         ptr(28),
	}
	p.Apply(&s)

	if s.VideoFormat != "webm" || s.Codec != model.CodecVP9 || s.CRF != 28 {
		t.Errorf("preset fields not applied: %+v", s)
	}
	if s.TextWatermark != "keep me" {
		t.Errorf("unset preset field overwrote TextWatermark: %q", s.TextWatermark)
	}
	if s.SpeedPreset != "medium" {
		t.Errorf("unset preset field overwrote SpeedPreset: %q", s.SpeedPreset)
	}
}

func TestDefaultsApply(t *testing.T) {
	defaults := Defaults()
	if len(defaults) != 9 {
		t.Fatalf("Defaults() has %d presets", len(defaults))
	}

	tests := []struct {
		name  string
		check func(t *testing.T, s model.ConversionSettings)
	}{
		{"H.265 Quality (MP4)", func(t *testing.T, s model.ConversionSettings) {
			if s.Codec != model.CodecH265 || s.CRF != 26 || s.SpeedPreset != "slow" {
				t.Errorf("settings = %+v", s)
			}
		}},
		{"Fast Copy (Remux MP4)", func(t *testing.T, s model.ConversionSettings) {
			if !s.FastCopy || s.VideoFormat != "mp4" {
				t.Errorf("settings = %+v", s)
			}
		}},
		{"GIF Preview 480p", func(t *testing.T, s model.ConversionSettings) {
			if s.VideoFormat != "gif" || s.ResizeW != 640 {
				t.Errorf("settings = %+v", s)
			}
		}},
		{"Photo WebP 80", func(t *testing.T, s model.ConversionSettings) {
			if s.PhotoFormat != "webp" || s.PhotoQuality != 80 {
				t.Errorf("settings = %+v", s)
			}
			if s.VideoFormat != "mp4" {
				t.Errorf("photo preset changed the video format: %q", s.VideoFormat)
			}
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, ok := defaults[tt.name]
			if !ok {
				t.Fatalf("preset %q missing", tt.name)
			}
			s := model.DefaultSettings()
			p.Apply(&s)
			tt.check(t, s)
		})
	}
}

func TestStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "presets.yaml")

	store := NewStore(path)
	saved := Preset{
		VideoFormat: ptr("mkv"),
		Codec:       ptr(model.CodecAV1),
		CRF:         ptr(32),
		Speed:       ptr(1.5),
	}
	if err := store.Save("My Archive", saved); err != nil {
		t.Fatal(err)
	}

	reloaded := NewStore(path)
	got, ok := reloaded.Get("My Archive")
	if !ok {
		t.Fatal("saved preset missing after reload")
	}
	if got.VideoFormat == nil || *got.VideoFormat != "mkv" {
		t.Errorf("VideoFormat = %v", got.VideoFormat)
	}
	if got.Codec == nil || *got.Codec != model.CodecAV1 {
		t.Errorf("Codec = %v", got.Codec)
	}
	if got.CRF == nil || *got.CRF != 32 {
		t.Errorf("CRF = %v", got.CRF)
	}
	if got.Speed == nil || *got.Speed != 1.5 {
		t.Errorf("Speed = %v", got.Speed)
	}
	if got.PhotoQuality != nil {
		t.Errorf("unset field came back non-nil: %v", *got.PhotoQuality)
	}
}

func TestStoreNames(t *testing.T) {
	path := filepath.Join(t.TempDir(), "presets.yaml")
	store := NewStore(path)

	names := store.Names()
	if !slices.IsSorted(names) {
		t.Errorf("names not sorted: %v", names)
	}
	if !slices.Contains(names, "H.264 Balance (MP4)") {
		t.Errorf("built-ins missing from %v", names)
	}

	if err := store.Save("Zebra", Preset{CRF: ptr(20)}); err != nil {
		t.Fatal(err)
	}
	names = store.Names()
	if !slices.Contains(names, "Zebra") {
		t.Errorf("user preset missing from %v", names)
	}
	if count := len(names); count != 10 {
		t.Errorf("len(names) = %d, want 10", count)
	}
}

func TestStoreDelete(t *testing.T) {
	path := filepath.Join(t.TempDir(), "presets.yaml")
	store := NewStore(path)

	if err := store.Delete("H.264 Balance (MP4)"); err == nil {
		t.Error("deleting a built-in succeeded")
	}
	if err := store.Delete("nope"); err == nil {
		t.Error("deleting a missing preset succeeded")
	}

	if err := store.Save("Mine", Preset{CRF: ptr(20)}); err != nil {
		t.Fatal(err)
	}
	if err := store.Delete("Mine"); err != nil {
		t.Fatal(err)
	}
	if _, ok := store.Get("Mine"); ok {
		t.Error("deleted preset still present")
	}
}

func TestStoreShadowBuiltin(t *testing.T) {
	path := filepath.Join(t.TempDir(), "presets.yaml")
	store := NewStore(path)

	const name = "H.264 Balance (MP4)"
	if !store.IsBuiltin(name) {
		t.Fatal("expected built-in")
	}
	if err := store.Save(name, Preset{CRF: ptr(19)}); err != nil {
		t.Fatal(err)
	}
	if store.IsBuiltin(name) {
		t.Error("shadowed preset still reported built in")
	}
	got, _ := store.Get(name)
	if got.CRF == nil || *got.CRF != 19 {
		t.Errorf("shadow not returned: %v", got.CRF)
	}

	if err := store.Delete(name); err != nil {
		t.Fatal(err)
	}
	got, ok := store.Get(name)
	if !ok || got.CRF == nil || *got.CRF != 23 {
		t.Errorf("built-in not restored after delete: %v", got.CRF)
	}
}

func TestStoreCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "presets.yaml")
	if err := os.WriteFile(path, []byte("{not yaml: ["), 0644); err != nil {
		t.Fatal(err)
	}

	store := NewStore(path)
	if len(store.Names()) != 9 {
		t.Errorf("corrupt file changed the preset list: %v", store.Names())
	}
}
