package preset

import (
	"github.com/mediabatch/media-converter/internal/model"
)

// Preset is a partial bundle of conversion options. Nil fields are left
// alone when the preset is applied, so a photo preset does not disturb
// video options and vice versa.
type Preset struct {
	VideoFormat  *string            `koanf:"video_format"`
	PhotoFormat  *string            `koanf:"photo_format"`
	Codec        *model.VideoCodec  `koanf:"codec"`
	HW           *model.HWEncoder   `koanf:"hw"`
	CRF          *int               `koanf:"crf"`
	SpeedPreset  *string            `koanf:"speed_preset"`
	FastCopy     *bool              `koanf:"fast_copy"`
	PhotoQuality *int               `koanf:"photo_quality"`
	ResizeW      *int               `koanf:"resize_w"`
	ResizeH      *int               `koanf:"resize_h"`
	Portrait     *model.PortraitMode `koanf:"portrait"`
	Rotate       *model.Rotation    `koanf:"rotate"`
	Speed        *float64           `koanf:"speed"`
}

// Apply copies the preset's set fields onto the settings
func (p Preset) Apply(s *model.ConversionSettings) {
	if p.VideoFormat != nil {
		s.VideoFormat = *p.VideoFormat
	}
	if p.PhotoFormat != nil {
		s.PhotoFormat = *p.PhotoFormat
	}
	if p.Codec != nil {
		s.Codec = *p.Codec
	}
	if p.HW != nil {
		s.HW = *p.HW
	}
	if p.CRF != nil {
		s.CRF = *p.CRF
	}
	if p.SpeedPreset != nil {
		s.SpeedPreset = *p.SpeedPreset
	}
	if p.FastCopy != nil {
		s.FastCopy = *p.FastCopy
	}
	if p.PhotoQuality != nil {
		s.PhotoQuality = *p.PhotoQuality
	}
	if p.ResizeW != nil {
		s.ResizeW = *p.ResizeW
	}
	if p.ResizeH != nil {
		s.ResizeH = *p.ResizeH
	}
	if p.Portrait != nil {
		s.Portrait = *p.Portrait
	}
	if p.Rotate != nil {
		s.Rotate = *p.Rotate
	}
	if p.Speed != nil {
		s.Speed = *p.Speed
	}
}

// FromSettings snapshots the fields a saved preset should remember
func FromSettings(s *model.ConversionSettings) Preset {
	return Preset{
		VideoFormat:  ptr(s.VideoFormat),
		PhotoFormat:  ptr(s.PhotoFormat),
		Codec:        ptr(s.Codec),
		HW:           ptr(s.HW),
		CRF:          ptr(s.CRF),
		SpeedPreset:  ptr(s.SpeedPreset),
		FastCopy:     ptr(s.FastCopy),
		PhotoQuality: ptr(s.PhotoQuality),
		ResizeW:      ptr(s.ResizeW),
		ResizeH:      ptr(s.ResizeH),
		Portrait:     ptr(s.Portrait),
		Rotate:       ptr(s.Rotate),
		Speed:        ptr(s.Speed),
	}
}

func ptr[T any](v T) *T {
	return &v
}

// Defaults returns the built-in presets keyed by display name
func Defaults() map[string]Preset {
	return map[string]Preset{
		"H.264 Balance (MP4)": {
			VideoFormat: ptr("mp4"),
			Codec:       ptr(model.CodecH264),
			CRF:         ptr(23),
			SpeedPreset: ptr("medium"),
			FastCopy:    ptr(false),
		},
		"H.265 Quality (MP4)": {
			VideoFormat: ptr("mp4"),
			Codec:       ptr(model.CodecH265),
			CRF:         ptr(26),
			SpeedPreset: ptr("slow"),
			FastCopy:    ptr(false),
		},
		"AV1 Archive (MKV)": {
			VideoFormat: ptr("mkv"),
			Codec:       ptr(model.CodecAV1),
			CRF:         ptr(30),
			FastCopy:    ptr(false),
		},
		"VP9 Web (WebM)": {
			VideoFormat: ptr("webm"),
			Codec:       ptr(model.CodecVP9),
			CRF:         ptr(28),
			SpeedPreset: ptr("slow"),
			FastCopy:    ptr(false),
		},
		"NVENC H.264 Fast": {
			VideoFormat: ptr("mp4"),
			Codec:       ptr(model.CodecH264),
			HW:          ptr(model.HWNvidia),
			CRF:         ptr(23),
			SpeedPreset: ptr("fast"),
			FastCopy:    ptr(false),
		},
		"Fast Copy (Remux MP4)": {
			VideoFormat: ptr("mp4"),
			FastCopy:    ptr(true),
		},
		"GIF Preview 480p": {
			VideoFormat: ptr("gif"),
			ResizeW:     ptr(640),
			FastCopy:    ptr(false),
		},
		"Photo JPG 90": {
			PhotoFormat:  ptr("jpg"),
			PhotoQuality: ptr(90),
		},
		"Photo WebP 80": {
			PhotoFormat:  ptr("webp"),
			PhotoQuality: ptr(80),
		},
	}
}
