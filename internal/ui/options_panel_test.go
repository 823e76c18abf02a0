package ui

import (
	"testing"

	"fyne.io/fyne/v2/test"

	"github.com/mediabatch/media-converter/internal/model"
	"github.com/mediabatch/media-converter/internal/preset"
)

func TestOptionsPanelStartsWithDefaults(t *testing.T) {
	test.NewApp()

	op := NewOptionsPanel(NewLocalization())
	s := op.Settings()

	want := model.DefaultSettings()
	if s.VideoFormat != want.VideoFormat {
		t.Errorf("VideoFormat = %q, want %q", s.VideoFormat, want.VideoFormat)
	}
	if s.CRF != want.CRF {
		t.Errorf("CRF = %d, want %d", s.CRF, want.CRF)
	}
	if s.Codec != want.Codec {
		t.Errorf("Codec = %q, want %q", s.Codec, want.Codec)
	}
	if s.TrimStart >= 0 {
		t.Errorf("TrimStart = %v, want unset", s.TrimStart)
	}
}

func TestOptionsPanelRoundTrip(t *testing.T) {
	test.NewApp()

	op := NewOptionsPanel(NewLocalization())

	in := model.DefaultSettings()
	in.VideoFormat = "webm"
	in.Codec = model.CodecVP9
	in.CRF = 28
	in.ResizeW = 1280
	in.TrimStart = 5.5
	in.Speed = 1.5
	in.TextWatermark = "sample"
	in.MetaTitle = "My Title"
	op.SetSettings(in)

	out := op.Settings()
	if out.VideoFormat != "webm" || out.Codec != model.CodecVP9 || out.CRF != 28 {
		t.Errorf("output fields did not survive: %+v", out)
	}
	if out.ResizeW != 1280 {
		t.Errorf("ResizeW = %d, want 1280", out.ResizeW)
	}
	if out.TrimStart != 5.5 {
		t.Errorf("TrimStart = %v, want 5.5", out.TrimStart)
	}
	if out.Speed != 1.5 {
		t.Errorf("Speed = %v, want 1.5", out.Speed)
	}
	if out.TextWatermark != "sample" {
		t.Errorf("TextWatermark = %q", out.TextWatermark)
	}
	if out.MetaTitle != "My Title" {
		t.Errorf("MetaTitle = %q", out.MetaTitle)
	}
}

// Fields absent from a preset keep their current form values
func TestOptionsPanelApplyPresetIsPartial(t *testing.T) {
	test.NewApp()

	op := NewOptionsPanel(NewLocalization())

	current := op.Settings()
	current.MetaTitle = "keep me"
	current.TrimStart = 3
	op.SetSettings(current)

	p := preset.Defaults()["H.265 Quality (MP4)"]
	op.ApplyPreset(p)

	s := op.Settings()
	if s.Codec != model.CodecH265 {
		t.Errorf("Codec = %q, want h265", s.Codec)
	}
	if s.CRF != 26 {
		t.Errorf("CRF = %d, want 26", s.CRF)
	}
	if s.SpeedPreset != "slow" {
		t.Errorf("SpeedPreset = %q, want slow", s.SpeedPreset)
	}
	if s.MetaTitle != "keep me" {
		t.Errorf("MetaTitle = %q, preset should not touch metadata", s.MetaTitle)
	}
	if s.TrimStart != 3 {
		t.Errorf("TrimStart = %v, preset should not touch trim", s.TrimStart)
	}
}

func TestOptionsPanelKeepsHiddenFields(t *testing.T) {
	test.NewApp()

	op := NewOptionsPanel(NewLocalization())

	in := model.DefaultSettings()
	in.TextBoxColor = "navy"
	in.TextBoxOpacity = 70
	op.SetSettings(in)

	out := op.Settings()
	if out.TextBoxColor != "navy" || out.TextBoxOpacity != 70 {
		t.Errorf("hidden fields lost: color %q opacity %d", out.TextBoxColor, out.TextBoxOpacity)
	}
}

func TestFormatFileSize(t *testing.T) {
	tests := []struct {
		bytes int64
		want  string
	}{
		{512, "512 B"},
		{1024, "1.0 KB"},
		{1536, "1.5 KB"},
		{1048576, "1.0 MB"},
		{5 * 1024 * 1024 * 1024, "5.0 GB"},
	}

	for _, tt := range tests {
		if got := formatFileSize(tt.bytes); got != tt.want {
			t.Errorf("formatFileSize(%d) = %q, want %q", tt.bytes, got, tt.want)
		}
	}
}
