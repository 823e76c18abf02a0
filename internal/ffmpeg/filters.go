package ffmpeg

import (
	"fmt"
	"os"
	"strings"

	"github.com/mediabatch/media-converter/internal/model"
)

// Filter flag selection
const (
	FlagVideoFilter   = "-vf"
	FlagFilterComplex = "-filter_complex"
)

// speedEpsilon treats factors this close to 1.0 as "no speed change"
const speedEpsilon = 0.001

// FilterSpec describes the video filter arrangement for one conversion:
// either a simple -vf chain or a -filter_complex graph with a labeled output
// and optional extra inputs (the watermark image).
type FilterSpec struct {
	Flag        string   // "-vf", "-filter_complex", or "" for none
	Graph       string
	MapLabel    string   // output label for -filter_complex, e.g. "[vout]"
	ExtraInputs []string // additional -i inputs consumed by the graph
	Used        bool     // whether any video filtering applies
}

// overlayPositions are x:y expressions for image watermark overlay
var overlayPositions = map[model.Position]string{
	model.PositionTopLeft:     "10:10",
	model.PositionTopRight:    "W-w-10:10",
	model.PositionBottomLeft:  "10:H-h-10",
	model.PositionBottomRight: "W-w-10:H-h-10",
	model.PositionCenter:      "(W-w)/2:(H-h)/2",
}

// drawtextPositions are x:y expressions for the text watermark, using text
// dimensions instead of overlay dimensions
var drawtextPositions = map[model.Position]string{
	model.PositionTopLeft:     "10:10",
	model.PositionTopRight:    "W-tw-10:10",
	model.PositionBottomLeft:  "10:H-th-10",
	model.PositionBottomRight: "W-tw-10:H-th-10",
	model.PositionCenter:      "(W-tw)/2:(H-th)/2",
}

// rotateFilters maps rotation choices onto transpose chains
var rotateFilters = map[model.Rotation]string{
	model.Rotate90CW:  "transpose=1",
	model.Rotate90CCW: "transpose=2",
	model.Rotate180:   "transpose=1,transpose=1",
}

// portraitTargets maps portrait modes to mode + frame size
var portraitTargets = map[model.PortraitMode]struct {
	blur bool
	w, h int
}{
	model.PortraitCrop1080: {false, 1080, 1920},
	model.PortraitBlur1080: {true, 1080, 1920},
	model.PortraitCrop720:  {false, 720, 1280},
	model.PortraitBlur720:  {true, 720, 1280},
}

// EscapeDrawtext escapes characters that terminate drawtext values
func EscapeDrawtext(text string) string {
	text = strings.ReplaceAll(text, `\`, `\\`)
	text = strings.ReplaceAll(text, ":", `\:`)
	text = strings.ReplaceAll(text, "'", `\'`)
	return text
}

// EscapeFilterPath makes a filesystem path safe inside a filter expression
func EscapeFilterPath(path string) string {
	path = strings.ReplaceAll(path, `\`, "/")
	return strings.ReplaceAll(path, ":", `\:`)
}

// AtempoChain splits a speed factor into atempo-legal factors in [0.5, 2.0]
func AtempoChain(speed float64) []float64 {
	if speed <= 0 {
		return nil
	}
	var factors []float64
	for speed > 2.0 {
		factors = append(factors, 2.0)
		speed /= 2.0
	}
	for speed < 0.5 {
		factors = append(factors, 0.5)
		speed /= 0.5
	}
	return append(factors, speed)
}

// speedFactor returns the effective speed change, or 0 when none applies
func speedFactor(s *model.ConversionSettings) float64 {
	if s.Speed <= 0 {
		return 0
	}
	if diff := s.Speed - 1.0; diff < speedEpsilon && diff > -speedEpsilon {
		return 0
	}
	return s.Speed
}

// BuildAudioSpeedFilter returns the -filter:a chain matching the speed
// setting, or "" when audio is unchanged
func BuildAudioSpeedFilter(s *model.ConversionSettings) string {
	speed := speedFactor(s)
	if speed == 0 {
		return ""
	}
	chain := AtempoChain(speed)
	parts := make([]string, 0, len(chain))
	for _, factor := range chain {
		parts = append(parts, fmt.Sprintf("atempo=%.3f", factor))
	}
	return strings.Join(parts, ",")
}

// resizeFilter builds a scale filter; a missing side keeps aspect ratio
func resizeFilter(s *model.ConversionSettings) string {
	if s.ResizeW <= 0 && s.ResizeH <= 0 {
		return ""
	}
	w, h := s.ResizeW, s.ResizeH
	if w <= 0 {
		w = -1
	}
	if h <= 0 {
		h = -1
	}
	return fmt.Sprintf("scale=%d:%d", w, h)
}

// cropFilter builds a crop filter; both dimensions are required
func cropFilter(s *model.ConversionSettings) string {
	if s.CropW <= 0 || s.CropH <= 0 {
		return ""
	}
	x, y := s.CropX, s.CropY
	if x < 0 {
		x = 0
	}
	if y < 0 {
		y = 0
	}
	return fmt.Sprintf("crop=%d:%d:%d:%d", s.CropW, s.CropH, x, y)
}

// buildTextFilter builds the drawtext expression for the text watermark,
// or "" when no text is set
func buildTextFilter(s *model.ConversionSettings) string {
	text := strings.TrimSpace(s.TextWatermark)
	if text == "" {
		return ""
	}

	color := strings.TrimSpace(s.TextColor)
	if color == "" {
		color = "white"
	}
	pos, ok := drawtextPositions[s.TextPos]
	if !ok {
		pos = drawtextPositions[model.PositionTopLeft]
	}
	x, y, _ := strings.Cut(pos, ":")

	draw := fmt.Sprintf("drawtext=text='%s':x=%s:y=%s:fontsize=%d:fontcolor=%s",
		EscapeDrawtext(text), x, y, s.TextSize, color)

	if font := strings.TrimSpace(s.TextFont); font != "" {
		draw += fmt.Sprintf(":fontfile='%s'", EscapeFilterPath(font))
	}
	if s.TextBox {
		opacity := clampPercent(s.TextBoxOpacity)
		boxColor := strings.TrimSpace(s.TextBoxColor)
		if boxColor == "" {
			boxColor = "black"
		}
		draw += fmt.Sprintf(":box=1:boxcolor=%s@%.2f", boxColor, float64(opacity)/100.0)
	}
	return draw
}

func clampPercent(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

// watermarkInput validates the configured watermark image and returns its
// path, or "" when unset or missing
func (t *Toolchain) watermarkInput(s *model.ConversionSettings) string {
	path := strings.TrimSpace(s.WatermarkPath)
	if path == "" {
		return ""
	}
	if _, err := os.Stat(path); err != nil {
		t.warnf("watermark image not found: %s", path)
		return ""
	}
	return path
}

// watermarkChain builds the [1:v] preprocessing chain for the image
// watermark: rgba conversion, scaling, and opacity
func watermarkChain(s *model.ConversionSettings) string {
	scale := s.WatermarkScale
	if scale < 1 {
		scale = 1
	}
	opacity := clampPercent(s.WatermarkOpacity)
	return fmt.Sprintf("[1:v]format=rgba,scale=iw*%.2f:ih*%.2f,colorchannelmixer=aa=%.2f[wm]",
		float64(scale)/100.0, float64(scale)/100.0, float64(opacity)/100.0)
}

// BuildVideoFilterSpec assembles the complete video filter arrangement for
// the given settings and output extension.
func (t *Toolchain) BuildVideoFilterSpec(s *model.ConversionSettings, outExt string) FilterSpec {
	outExt = strings.ToLower(outExt)
	var filters []string

	resize := resizeFilter(s)
	if resize != "" {
		filters = append(filters, resize)
	}
	if crop := cropFilter(s); crop != "" {
		filters = append(filters, crop)
	}
	if rotate := rotateFilters[s.Rotate]; rotate != "" {
		filters = append(filters, rotate)
	}
	if speed := speedFactor(s); speed != 0 {
		filters = append(filters, fmt.Sprintf("setpts=PTS/%g", speed))
	}
	if text := buildTextFilter(s); text != "" {
		filters = append(filters, text)
	}

	useBlur := false
	blurGraph := ""
	if target, ok := portraitTargets[s.Portrait]; ok {
		if target.blur {
			useBlur = true
			blurGraph = fmt.Sprintf(
				"[0:v]scale=%d:%d:force_original_aspect_ratio=increase,boxblur=20:1,crop=%d:%d[bg];"+
					"[0:v]scale=%d:%d:force_original_aspect_ratio=decrease[fg];"+
					"[bg][fg]overlay=(W-w)/2:(H-h)/2,setsar=1",
				target.w, target.h, target.w, target.h, target.w, target.h)
		} else {
			cropChain := fmt.Sprintf(
				"scale='if(gt(a,9/16),-2,%d)':'if(gt(a,9/16),%d,-2)',crop=%d:%d,setsar=1",
				target.w, target.h, target.w, target.h)
			filters = append([]string{cropChain}, filters...)
		}
	}

	if outExt == ".gif" {
		filters = append(filters, "fps=12")
		if resize == "" {
			filters = append(filters, "scale=640:-1:flags=lanczos")
		}
	}

	wmInput := t.watermarkInput(s)

	if !useBlur && wmInput == "" {
		if len(filters) > 0 {
			return FilterSpec{Flag: FlagVideoFilter, Graph: strings.Join(filters, ","), Used: true}
		}
		return FilterSpec{}
	}

	const baseLabel = "vbase"
	var graphParts []string
	if useBlur {
		graph := blurGraph
		if len(filters) > 0 {
			graph += "," + strings.Join(filters, ",")
		}
		graphParts = append(graphParts, graph+"["+baseLabel+"]")
	} else {
		chain := "null"
		if len(filters) > 0 {
			chain = strings.Join(filters, ",")
		}
		graphParts = append(graphParts, "[0:v]"+chain+"["+baseLabel+"]")
	}

	outLabel := baseLabel
	var extraInputs []string
	if wmInput != "" {
		extraInputs = append(extraInputs, wmInput)
		graphParts = append(graphParts, watermarkChain(s))
		pos, ok := overlayPositions[s.WatermarkPos]
		if !ok {
			pos = overlayPositions[model.PositionTopLeft]
		}
		graphParts = append(graphParts, fmt.Sprintf("[%s][wm]overlay=%s[vout]", baseLabel, pos))
		outLabel = "vout"
	}

	return FilterSpec{
		Flag:        FlagFilterComplex,
		Graph:       strings.Join(graphParts, ";"),
		MapLabel:    "[" + outLabel + "]",
		ExtraInputs: extraInputs,
		Used:        true,
	}
}

// BuildPhotoFilterSpec assembles the filter arrangement for photo
// conversions: resize, crop, rotate, text, and image watermark. Portrait,
// speed, and GIF handling do not apply to photos.
func (t *Toolchain) BuildPhotoFilterSpec(s *model.ConversionSettings) FilterSpec {
	var filters []string
	if resize := resizeFilter(s); resize != "" {
		filters = append(filters, resize)
	}
	if crop := cropFilter(s); crop != "" {
		filters = append(filters, crop)
	}
	if rotate := rotateFilters[s.Rotate]; rotate != "" {
		filters = append(filters, rotate)
	}
	if text := buildTextFilter(s); text != "" {
		filters = append(filters, text)
	}

	wmInput := t.watermarkInput(s)
	if wmInput == "" {
		if len(filters) > 0 {
			return FilterSpec{Flag: FlagVideoFilter, Graph: strings.Join(filters, ","), Used: true}
		}
		return FilterSpec{}
	}

	const baseLabel = "vbase"
	chain := "null"
	if len(filters) > 0 {
		chain = strings.Join(filters, ",")
	}
	graphParts := []string{
		"[0:v]" + chain + "[" + baseLabel + "]",
		watermarkChain(s),
	}
	pos, ok := overlayPositions[s.WatermarkPos]
	if !ok {
		pos = overlayPositions[model.PositionTopLeft]
	}
	graphParts = append(graphParts, fmt.Sprintf("[%s][wm]overlay=%s[vout]", baseLabel, pos))

	return FilterSpec{
		Flag:        FlagFilterComplex,
		Graph:       strings.Join(graphParts, ";"),
		MapLabel:    "[vout]",
		ExtraInputs: []string{wmInput},
		Used:        true,
	}
}
