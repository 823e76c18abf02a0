package ffmpeg

import (
	"math"
	"strings"
	"testing"

	"github.com/mediabatch/media-converter/internal/model"
)

func TestEscapeDrawtext(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"plain", "plain"},
		{"10:30", `10\:30`},
		{"it's", `it\'s`},
		{`a\b`, `a\\b`},
	}
	for _, tt := range tests {
		if got := EscapeDrawtext(tt.in); got != tt.want {
			t.Errorf("EscapeDrawtext(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestAtempoChain(t *testing.T) {
	tests := []struct {
		name  string
		speed float64
		want  []float64
	}{
		{"identity", 1.0, []float64{1.0}},
		{"in range", 1.5, []float64{1.5}},
		{"fast", 4.0, []float64{2.0, 2.0, 1.0}},
		{"very slow", 0.2, []float64{0.5, 0.5, 0.8}},
		{"invalid", 0, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := AtempoChain(tt.speed)
			if len(got) != len(tt.want) {
				t.Fatalf("AtempoChain(%v) = %v, want %v", tt.speed, got, tt.want)
			}
			product := 1.0
			for i, factor := range got {
				if factor < 0.5-1e-9 || factor > 2.0+1e-9 {
					t.Errorf("factor %v out of atempo range", factor)
				}
				if math.Abs(factor-tt.want[i]) > 1e-9 {
					t.Errorf("AtempoChain(%v) = %v, want %v", tt.speed, got, tt.want)
				}
				product *= factor
			}
			if len(got) > 0 && math.Abs(product-tt.speed) > 1e-9 {
				t.Errorf("chain product = %v, want %v", product, tt.speed)
			}
		})
	}
}

func TestBuildVideoFilterSpecSimpleChain(t *testing.T) {
	s := model.DefaultSettings()
	s.ResizeW = 1280
	s.CropW, s.CropH, s.CropX, s.CropY = 640, 480, 10, 20
	s.Rotate = model.Rotate90CW
	s.Speed = 2.0

	tc := NewToolchain("ffmpeg", "ffprobe")
	spec := tc.BuildVideoFilterSpec(&s, ".mp4")

	if !spec.Used || spec.Flag != FlagVideoFilter {
		t.Fatalf("expected a -vf chain, got %+v", spec)
	}
	want := "scale=1280:-1,crop=640:480:10:20,transpose=1,setpts=PTS/2"
	if spec.Graph != want {
		t.Errorf("Graph = %q, want %q", spec.Graph, want)
	}
	if len(spec.ExtraInputs) != 0 || spec.MapLabel != "" {
		t.Errorf("simple chain carries graph extras: %+v", spec)
	}
}

func TestBuildVideoFilterSpecNoFilters(t *testing.T) {
	s := model.DefaultSettings()
	tc := NewToolchain("ffmpeg", "ffprobe")
	if spec := tc.BuildVideoFilterSpec(&s, ".mp4"); spec.Used {
		t.Errorf("default settings produced filters: %+v", spec)
	}
}

func TestBuildVideoFilterSpecGIF(t *testing.T) {
	s := model.DefaultSettings()
	tc := NewToolchain("ffmpeg", "ffprobe")

	spec := tc.BuildVideoFilterSpec(&s, ".gif")
	if spec.Graph != "fps=12,scale=640:-1:flags=lanczos" {
		t.Errorf("Graph = %q", spec.Graph)
	}

	s.ResizeW = 320
	spec = tc.BuildVideoFilterSpec(&s, ".gif")
	if strings.Contains(spec.Graph, "lanczos") {
		t.Errorf("explicit resize still added the default scale: %q", spec.Graph)
	}
	if !strings.Contains(spec.Graph, "scale=320:-1") {
		t.Errorf("missing resize in %q", spec.Graph)
	}
}

func TestBuildVideoFilterSpecText(t *testing.T) {
	s := model.DefaultSettings()
	s.TextWatermark = "sample: clip"
	s.TextPos = model.PositionBottomRight
	s.TextSize = 32
	s.TextColor = "yellow"
	s.TextBox = true

	tc := NewToolchain("ffmpeg", "ffprobe")
	spec := tc.BuildVideoFilterSpec(&s, ".mp4")
	if spec.Flag != FlagVideoFilter {
		t.Fatalf("Flag = %q", spec.Flag)
	}
	for _, want := range []string{
		`drawtext=text='sample\: clip'`,
		"x=W-tw-10:y=H-th-10",
		"fontsize=32",
		"fontcolor=yellow",
		"box=1:boxcolor=black@0.50",
	} {
		if !strings.Contains(spec.Graph, want) {
			t.Errorf("Graph %q missing %q", spec.Graph, want)
		}
	}
}

func TestBuildVideoFilterSpecPortrait(t *testing.T) {
	tc := NewToolchain("ffmpeg", "ffprobe")

	s := model.DefaultSettings()
	s.Portrait = model.PortraitCrop1080
	spec := tc.BuildVideoFilterSpec(&s, ".mp4")
	if spec.Flag != FlagVideoFilter {
		t.Fatalf("crop portrait should be a -vf chain, got %+v", spec)
	}
	if !strings.Contains(spec.Graph, "crop=1080:1920") {
		t.Errorf("Graph = %q", spec.Graph)
	}

	s.Portrait = model.PortraitBlur720
	spec = tc.BuildVideoFilterSpec(&s, ".mp4")
	if spec.Flag != FlagFilterComplex {
		t.Fatalf("blur portrait should be a graph, got %+v", spec)
	}
	if spec.MapLabel != "[vbase]" {
		t.Errorf("MapLabel = %q", spec.MapLabel)
	}
	for _, want := range []string{"boxblur", "crop=720:1280", "overlay=(W-w)/2:(H-h)/2"} {
		if !strings.Contains(spec.Graph, want) {
			t.Errorf("Graph %q missing %q", spec.Graph, want)
		}
	}
}

func TestBuildVideoFilterSpecWatermark(t *testing.T) {
	wm := writeTempFile(t, "wm-*.png")

	s := model.DefaultSettings()
	s.WatermarkPath = wm
	s.WatermarkPos = model.PositionTopRight
	s.WatermarkOpacity = 50
	s.WatermarkScale = 25

	tc := NewToolchain("ffmpeg", "ffprobe")
	spec := tc.BuildVideoFilterSpec(&s, ".mp4")
	if spec.Flag != FlagFilterComplex {
		t.Fatalf("Flag = %q", spec.Flag)
	}
	if len(spec.ExtraInputs) != 1 || spec.ExtraInputs[0] != wm {
		t.Errorf("ExtraInputs = %v", spec.ExtraInputs)
	}
	if spec.MapLabel != "[vout]" {
		t.Errorf("MapLabel = %q", spec.MapLabel)
	}
	for _, want := range []string{
		"[1:v]format=rgba,scale=iw*0.25:ih*0.25,colorchannelmixer=aa=0.50[wm]",
		"[vbase][wm]overlay=W-w-10:10[vout]",
	} {
		if !strings.Contains(spec.Graph, want) {
			t.Errorf("Graph %q missing %q", spec.Graph, want)
		}
	}
}

func TestBuildVideoFilterSpecMissingWatermark(t *testing.T) {
	s := model.DefaultSettings()
	s.WatermarkPath = "/nonexistent/logo.png"

	var warned string
	tc := NewToolchain("ffmpeg", "ffprobe")
	tc.OnWarning = func(msg string) { warned = msg }

	spec := tc.BuildVideoFilterSpec(&s, ".mp4")
	if spec.Used {
		t.Errorf("missing watermark still produced filters: %+v", spec)
	}
	if warned == "" {
		t.Error("expected a warning about the missing watermark")
	}
}

func TestBuildAudioSpeedFilter(t *testing.T) {
	s := model.DefaultSettings()
	if got := BuildAudioSpeedFilter(&s); got != "" {
		t.Errorf("unset speed = %q", got)
	}

	s.Speed = 3.0
	if got := BuildAudioSpeedFilter(&s); got != "atempo=2.000,atempo=1.500" {
		t.Errorf("speed 3.0 = %q", got)
	}

	s.Speed = 1.0
	if got := BuildAudioSpeedFilter(&s); got != "" {
		t.Errorf("speed 1.0 = %q", got)
	}
}

func TestBuildPhotoFilterSpec(t *testing.T) {
	s := model.DefaultSettings()
	s.ResizeH = 1080
	s.Rotate = model.Rotate180
	s.Speed = 2.0 // ignored for photos
	s.Portrait = model.PortraitBlur1080

	tc := NewToolchain("ffmpeg", "ffprobe")
	spec := tc.BuildPhotoFilterSpec(&s)
	if spec.Flag != FlagVideoFilter {
		t.Fatalf("Flag = %q", spec.Flag)
	}
	if spec.Graph != "scale=-1:1080,transpose=1,transpose=1" {
		t.Errorf("Graph = %q", spec.Graph)
	}
}
