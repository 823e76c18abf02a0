package ffmpeg

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/mediabatch/media-converter/internal/model"
)

// Audio encoding defaults per container family
const (
	AudioCodecOpus   = "libopus"
	AudioBitrateOpus = "128k"
	AudioCodecAAC    = "aac"
	AudioBitrateAAC  = "192k"
)

// copyCompatCodecs lists which input video codecs a container accepts
// without re-encoding
var copyCompatCodecs = map[string]map[string]bool{
	".mp4":  {"h264": true, "hevc": true, "h265": true, "av1": true},
	".mov":  {"h264": true, "hevc": true, "h265": true, "av1": true},
	".m4v":  {"h264": true, "hevc": true, "h265": true, "av1": true},
	".webm": {"vp8": true, "vp9": true, "av1": true},
	".avi":  {"mpeg4": true, "h264": true, "xvid": true},
}

// overwriteFlag maps the overwrite setting onto ffmpeg's -y/-n
func overwriteFlag(overwrite bool) string {
	if overwrite {
		return "-y"
	}
	return "-n"
}

// trimArgs builds the -ss/-to flags, emitted after the input for
// frame-accurate seeking. An end at or before the start is ignored with a
// warning rather than producing an empty output.
func (t *Toolchain) trimArgs(s *model.ConversionSettings) []string {
	var args []string
	if s.TrimStart >= 0 {
		args = append(args, "-ss", fmt.Sprintf("%.3f", s.TrimStart))
	}
	if s.TrimEnd >= 0 {
		start := s.TrimStart
		if start < 0 {
			start = 0
		}
		if s.TrimEnd > start {
			args = append(args, "-to", fmt.Sprintf("%.3f", s.TrimEnd))
		} else {
			t.warnf("trim end %.3f is not after start, ignoring", s.TrimEnd)
		}
	}
	return args
}

// metadataArgs builds the -map_metadata and -metadata flags
func metadataArgs(s *model.ConversionSettings) []string {
	var args []string
	if s.StripMetadata {
		args = append(args, "-map_metadata", "-1")
	} else if s.CopyMetadata {
		args = append(args, "-map_metadata", "0")
	}
	for _, field := range []struct{ key, value string }{
		{"title", s.MetaTitle},
		{"comment", s.MetaComment},
		{"artist", s.MetaAuthor},
		{"copyright", s.MetaCopyright},
	} {
		if v := strings.TrimSpace(field.value); v != "" {
			args = append(args, "-metadata", field.key+"="+v)
		}
	}
	return args
}

// audioArgs picks the audio encoder for the output container
func audioArgs(outExt string) []string {
	if outExt == ".webm" {
		return []string{"-c:a", AudioCodecOpus, "-b:a", AudioBitrateOpus}
	}
	return []string{"-c:a", AudioCodecAAC, "-b:a", AudioBitrateAAC}
}

// hasTransforms reports whether the settings require any video filtering
func hasTransforms(s *model.ConversionSettings) bool {
	return s.ResizeW > 0 || s.ResizeH > 0 ||
		(s.CropW > 0 && s.CropH > 0) ||
		(s.Rotate != model.RotateNone && s.Rotate != "") ||
		speedFactor(s) != 0 ||
		(s.Portrait != model.PortraitOff && s.Portrait != "") ||
		strings.TrimSpace(s.WatermarkPath) != "" ||
		strings.TrimSpace(s.TextWatermark) != ""
}

// FastCopyAllowed reports whether the input can be remuxed into the output
// container without re-encoding: fast copy enabled, no transforms, the same
// container extension, and a compatible input codec. Missing probe data is
// accepted since the containers already match.
func FastCopyAllowed(s *model.ConversionSettings, info *model.MediaInfo, inExt, outExt string) bool {
	if !s.FastCopy || hasTransforms(s) {
		return false
	}
	outExt = strings.ToLower(outExt)
	if outExt == ".gif" {
		return false
	}
	if strings.ToLower(inExt) != outExt {
		return false
	}
	if info != nil && info.VideoCodec != "" {
		if compat, ok := copyCompatCodecs[outExt]; ok && !compat[strings.ToLower(info.VideoCodec)] {
			return false
		}
	}
	return true
}

// BuildVideoArgs constructs the full ffmpeg argument list for one video
// conversion. info may be nil when probing failed.
func (t *Toolchain) BuildVideoArgs(s *model.ConversionSettings, inputPath, outputPath string, info *model.MediaInfo) []string {
	outExt := strings.ToLower(filepath.Ext(outputPath))

	args := []string{t.FFmpegPath, overwriteFlag(s.Overwrite), "-i", inputPath}

	if FastCopyAllowed(s, info, filepath.Ext(inputPath), outExt) {
		args = append(args, t.trimArgs(s)...)
		args = append(args, "-map", "0", "-c", "copy")
		args = append(args, metadataArgs(s)...)
		if outExt == ".mp4" || outExt == ".mov" || outExt == ".m4v" {
			args = append(args, "-movflags", "+faststart")
		}
		return append(args, outputPath)
	}

	spec := t.BuildVideoFilterSpec(s, outExt)
	for _, extra := range spec.ExtraInputs {
		args = append(args, "-i", extra)
	}
	args = append(args, t.trimArgs(s)...)
	if spec.Used {
		args = append(args, spec.Flag, spec.Graph)
		if spec.MapLabel != "" {
			args = append(args, "-map", spec.MapLabel, "-map", "0:a?")
		}
	}

	if outExt == ".gif" {
		args = append(args, "-an")
		args = append(args, metadataArgs(s)...)
		return append(args, outputPath)
	}

	codec := t.ResolveCodec(outExt, s.Codec)
	encoder, _ := t.SelectEncoder(codec, s.HW)
	args = append(args, "-c:v", encoder)
	args = append(args, qualityArgs(encoder, s.CRF)...)
	if preset := strings.TrimSpace(s.SpeedPreset); preset != "" {
		if encoder == "libx264" || encoder == "libx265" {
			args = append(args, "-preset", preset)
		}
	}
	if needsYUV420(encoder) {
		args = append(args, "-pix_fmt", "yuv420p")
	}

	args = append(args, audioArgs(outExt)...)
	if audioFilter := BuildAudioSpeedFilter(s); audioFilter != "" {
		args = append(args, "-filter:a", audioFilter)
	}

	args = append(args, metadataArgs(s)...)
	if outExt == ".mp4" || outExt == ".mov" || outExt == ".m4v" {
		args = append(args, "-movflags", "+faststart")
	}
	return append(args, outputPath)
}

// jpegQuality maps a 0..100 quality percentage onto mjpeg's 2..31 -q:v
// scale, where lower is better
func jpegQuality(quality int) int {
	q := int(math.Round(31 - (float64(clampPercent(quality))/100.0)*29))
	if q < 2 {
		q = 2
	}
	if q > 31 {
		q = 31
	}
	return q
}

// BuildPhotoArgs constructs the ffmpeg argument list for one photo
// conversion
func (t *Toolchain) BuildPhotoArgs(s *model.ConversionSettings, inputPath, outputPath string) []string {
	outExt := strings.ToLower(filepath.Ext(outputPath))

	args := []string{t.FFmpegPath, overwriteFlag(s.Overwrite), "-i", inputPath}

	spec := t.BuildPhotoFilterSpec(s)
	for _, extra := range spec.ExtraInputs {
		args = append(args, "-i", extra)
	}
	if spec.Used {
		args = append(args, spec.Flag, spec.Graph)
		if spec.MapLabel != "" {
			args = append(args, "-map", spec.MapLabel)
		}
	}

	switch outExt {
	case ".jpg", ".jpeg":
		args = append(args, "-q:v", strconv.Itoa(jpegQuality(s.PhotoQuality)))
	case ".webp":
		args = append(args, "-q:v", strconv.Itoa(clampPercent(s.PhotoQuality)))
	}

	args = append(args, metadataArgs(s)...)
	return append(args, outputPath)
}

// MergeCopyAllowed reports whether all inputs can be concatenated without
// re-encoding: fast copy enabled, no transforms, no trim, and every probed
// input sharing the same container-compatible codecs.
func MergeCopyAllowed(s *model.ConversionSettings, inputPaths []string, infos []*model.MediaInfo, outExt string) bool {
	if !s.FastCopy || hasTransforms(s) || len(infos) == 0 || len(inputPaths) == 0 {
		return false
	}
	if s.TrimStart >= 0 || s.TrimEnd >= 0 {
		return false
	}
	first := infos[0]
	if first == nil || first.VideoCodec == "" {
		return false
	}
	for _, info := range infos[1:] {
		if info == nil || info.VideoCodec != first.VideoCodec || info.AudioCodec != first.AudioCodec {
			return false
		}
	}
	return FastCopyAllowed(s, first, filepath.Ext(inputPaths[0]), outExt)
}

// WriteConcatList writes a concat demuxer list file for the given inputs
// and returns its path. The caller removes the file after the merge.
func WriteConcatList(paths []string) (string, error) {
	f, err := os.CreateTemp("", "concat-*.txt")
	if err != nil {
		return "", fmt.Errorf("failed to create concat list: %w", err)
	}
	defer f.Close()

	var sb strings.Builder
	for _, path := range paths {
		escaped := strings.ReplaceAll(path, "'", `'\''`)
		sb.WriteString("file '" + escaped + "'\n")
	}
	if _, err := f.WriteString(sb.String()); err != nil {
		os.Remove(f.Name())
		return "", fmt.Errorf("failed to write concat list: %w", err)
	}
	return f.Name(), nil
}

// BuildMergeArgs constructs the ffmpeg argument list that concatenates the
// inputs behind listPath into a single output
func (t *Toolchain) BuildMergeArgs(s *model.ConversionSettings, listPath string, inputPaths []string, outputPath string, infos []*model.MediaInfo) []string {
	outExt := strings.ToLower(filepath.Ext(outputPath))

	args := []string{t.FFmpegPath, overwriteFlag(s.Overwrite),
		"-f", "concat", "-safe", "0", "-i", listPath}

	if MergeCopyAllowed(s, inputPaths, infos, outExt) {
		args = append(args, "-map", "0", "-c", "copy")
	} else {
		spec := t.BuildVideoFilterSpec(s, outExt)
		for _, extra := range spec.ExtraInputs {
			args = append(args, "-i", extra)
		}
		args = append(args, t.trimArgs(s)...)
		if spec.Used {
			args = append(args, spec.Flag, spec.Graph)
			if spec.MapLabel != "" {
				args = append(args, "-map", spec.MapLabel, "-map", "0:a?")
			}
		}

		codec := t.ResolveCodec(outExt, s.Codec)
		encoder, _ := t.SelectEncoder(codec, s.HW)
		args = append(args, "-c:v", encoder)
		args = append(args, qualityArgs(encoder, s.CRF)...)
		if preset := strings.TrimSpace(s.SpeedPreset); preset != "" {
			if encoder == "libx264" || encoder == "libx265" {
				args = append(args, "-preset", preset)
			}
		}
		if needsYUV420(encoder) {
			args = append(args, "-pix_fmt", "yuv420p")
		}
		args = append(args, audioArgs(outExt)...)
		if audioFilter := BuildAudioSpeedFilter(s); audioFilter != "" {
			args = append(args, "-filter:a", audioFilter)
		}
	}

	args = append(args, metadataArgs(s)...)
	if outExt == ".mp4" || outExt == ".mov" || outExt == ".m4v" {
		args = append(args, "-movflags", "+faststart")
	}
	return append(args, outputPath)
}

// WithProgressArgs injects the machine-readable progress flags right after
// the binary and overwrite flag so every builder output gains them uniformly
func WithProgressArgs(args []string) []string {
	if len(args) < 2 {
		return args
	}
	injected := []string{"-hide_banner", "-nostats", "-progress", "pipe:1"}
	out := make([]string, 0, len(args)+len(injected))
	out = append(out, args[:2]...)
	out = append(out, injected...)
	return append(out, args[2:]...)
}
