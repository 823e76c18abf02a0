package model

// VideoCodec is the user's codec choice for video output
type VideoCodec string

const (
	CodecAuto VideoCodec = "auto"
	CodecH264 VideoCodec = "h264"
	CodecH265 VideoCodec = "h265"
	CodecAV1  VideoCodec = "av1"
	CodecVP9  VideoCodec = "vp9"
)

// HWEncoder is the user's hardware acceleration preference
type HWEncoder string

const (
	HWAuto   HWEncoder = "auto"
	HWCPU    HWEncoder = "cpu"
	HWNvidia HWEncoder = "nvidia"
	HWIntel  HWEncoder = "intel"
	HWAMD    HWEncoder = "amd"
)

// Rotation selects a transpose-based rotation filter
type Rotation string

const (
	RotateNone  Rotation = "none"
	Rotate90CW  Rotation = "90cw"
	Rotate90CCW Rotation = "90ccw"
	Rotate180   Rotation = "180"
)

// Position places a watermark relative to the frame
type Position string

const (
	PositionTopLeft     Position = "top-left"
	PositionTopRight    Position = "top-right"
	PositionBottomLeft  Position = "bottom-left"
	PositionBottomRight Position = "bottom-right"
	PositionCenter      Position = "center"
)

// PortraitMode converts landscape footage to a 9:16 frame
type PortraitMode string

const (
	PortraitOff       PortraitMode = "off"
	PortraitCrop1080  PortraitMode = "crop-1080"
	PortraitBlur1080  PortraitMode = "blur-1080"
	PortraitCrop720   PortraitMode = "crop-720"
	PortraitBlur720   PortraitMode = "blur-720"
)

// Option lists for UI selects. Order matters for display.
var (
	VideoFormats = []string{"mp4", "mkv", "webm", "mov", "avi", "gif"}
	PhotoFormats = []string{"jpg", "png", "webp", "bmp", "tiff"}

	VideoCodecs   = []VideoCodec{CodecAuto, CodecH264, CodecH265, CodecAV1, CodecVP9}
	HWEncoders    = []HWEncoder{HWAuto, HWCPU, HWNvidia, HWIntel, HWAMD}
	Rotations     = []Rotation{RotateNone, Rotate90CW, Rotate90CCW, Rotate180}
	Positions     = []Position{PositionTopLeft, PositionTopRight, PositionBottomLeft, PositionBottomRight, PositionCenter}
	PortraitModes = []PortraitMode{PortraitOff, PortraitCrop1080, PortraitBlur1080, PortraitCrop720, PortraitBlur720}

	SpeedPresets = []string{"ultrafast", "superfast", "veryfast", "faster", "fast", "medium", "slow", "slower", "veryslow"}
)

// ConversionSettings is the flat bundle of options collected from the form.
// Zero or negative numeric values mean "not set" where a field is optional.
type ConversionSettings struct {
	VideoFormat  string
	PhotoFormat  string
	CRF          int
	SpeedPreset  string // x264/x265 -preset value
	Portrait     PortraitMode
	PhotoQuality int // 0..100
	Overwrite    bool
	FastCopy     bool

	TrimStart float64 // seconds, <0 means unset
	TrimEnd   float64 // seconds, <0 means unset
	Merge     bool
	MergeName string

	ResizeW int // <=0 means unset
	ResizeH int
	CropW   int
	CropH   int
	CropX   int
	CropY   int
	Rotate  Rotation
	Speed   float64 // playback speed factor, <=0 means unset

	WatermarkPath    string
	WatermarkPos     Position
	WatermarkOpacity int // percent
	WatermarkScale   int // percent of frame width

	TextWatermark  string
	TextPos        Position
	TextSize       int
	TextColor      string
	TextBox        bool
	TextBoxColor   string
	TextBoxOpacity int // percent
	TextFont       string // path to a font file

	Codec VideoCodec
	HW    HWEncoder

	StripMetadata bool
	CopyMetadata  bool
	MetaTitle     string
	MetaComment   string
	MetaAuthor    string
	MetaCopyright string
}

// DefaultSettings returns the settings the form starts with
func DefaultSettings() ConversionSettings {
	return ConversionSettings{
		VideoFormat:      "mp4",
		PhotoFormat:      "jpg",
		CRF:              23,
		SpeedPreset:      "medium",
		Portrait:         PortraitOff,
		PhotoQuality:     90,
		TrimStart:        -1,
		TrimEnd:          -1,
		MergeName:        "merged",
		Rotate:           RotateNone,
		WatermarkPos:     PositionBottomRight,
		WatermarkOpacity: 80,
		WatermarkScale:   30,
		TextPos:          PositionBottomRight,
		TextSize:         24,
		TextColor:        "white",
		TextBoxColor:     "black",
		TextBoxOpacity:   50,
		Codec:            CodecAuto,
		HW:               HWAuto,
	}
}
