package ffmpeg

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"strings"
	"sync"

	"github.com/mediabatch/media-converter/internal/model"
)

// ffprobe invocation constants
const (
	FFprobeLogLevel    = "error"
	FFprobeShowEntries = "format=duration,size,format_name:stream=codec_type,codec_name,width,height"
	FFprobeFormatJSON  = "json"
)

// Toolchain holds resolved paths to the external binaries and the encoder
// capability set detected from the local ffmpeg build.
type Toolchain struct {
	FFmpegPath  string
	FFprobePath string

	encMu    sync.RWMutex
	encoders map[string]bool

	// OnWarning receives human-readable notes about silent fallbacks
	// (codec switched, encoder unavailable, watermark file missing).
	OnWarning func(msg string)
}

// NewToolchain creates a toolchain for the given binary paths. Empty paths
// mean the binary was not found; callers check HasFFmpeg before converting.
func NewToolchain(ffmpegPath, ffprobePath string) *Toolchain {
	return &Toolchain{
		FFmpegPath:  ffmpegPath,
		FFprobePath: ffprobePath,
	}
}

// HasFFmpeg reports whether an ffmpeg binary is configured
func (t *Toolchain) HasFFmpeg() bool {
	return t.FFmpegPath != ""
}

// HasFFprobe reports whether an ffprobe binary is configured
func (t *Toolchain) HasFFprobe() bool {
	return t.FFprobePath != ""
}

// SetPaths replaces the binary paths, e.g. after the user browsed for ffmpeg
func (t *Toolchain) SetPaths(ffmpegPath, ffprobePath string) {
	t.FFmpegPath = ffmpegPath
	t.FFprobePath = ffprobePath
	t.encMu.Lock()
	t.encoders = nil
	t.encMu.Unlock()
}

func (t *Toolchain) warnf(format string, args ...any) {
	if t.OnWarning != nil {
		t.OnWarning(fmt.Sprintf(format, args...))
	}
}

// DetectEncoders runs `ffmpeg -encoders` and caches the encoder name set.
// Failures leave the set empty, which disables capability filtering.
func (t *Toolchain) DetectEncoders(ctx context.Context) {
	detected := map[string]bool{}
	defer func() {
		t.encMu.Lock()
		t.encoders = detected
		t.encMu.Unlock()
	}()

	if !t.HasFFmpeg() {
		return
	}

	cmd := exec.CommandContext(ctx, t.FFmpegPath, "-hide_banner", "-encoders")
	output, err := cmd.Output()
	if err != nil {
		return
	}

	scanner := bufio.NewScanner(strings.NewReader(string(output)))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "Encoders:") || strings.HasPrefix(line, "--") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) >= 2 {
			detected[fields[1]] = true
		}
	}
}

// SetEncoders overrides the detected encoder set (used in tests)
func (t *Toolchain) SetEncoders(names ...string) {
	set := map[string]bool{}
	for _, name := range names {
		set[name] = true
	}
	t.encMu.Lock()
	t.encoders = set
	t.encMu.Unlock()
}

// hasEncoder reports encoder availability. An empty capability set means
// detection never ran, in which case every encoder is assumed available.
func (t *Toolchain) hasEncoder(name string) bool {
	t.encMu.RLock()
	defer t.encMu.RUnlock()
	if len(t.encoders) == 0 {
		return true
	}
	return t.encoders[name]
}

// detectedEncoder reports availability only when detection actually ran
func (t *Toolchain) detectedEncoder(name string) bool {
	t.encMu.RLock()
	defer t.encMu.RUnlock()
	return len(t.encoders) > 0 && t.encoders[name]
}

// ffprobe JSON payload shapes
type probeFormat struct {
	Duration   string `json:"duration"`
	Size       string `json:"size"`
	FormatName string `json:"format_name"`
}

type probeStream struct {
	CodecType string `json:"codec_type"`
	CodecName string `json:"codec_name"`
	Width     int    `json:"width"`
	Height    int    `json:"height"`
}

type probeResult struct {
	Format  probeFormat   `json:"format"`
	Streams []probeStream `json:"streams"`
}

// Probe runs ffprobe against a file and extracts duration, codecs,
// dimensions, container name, and size.
func (t *Toolchain) Probe(ctx context.Context, path string) (*model.MediaInfo, error) {
	if !t.HasFFprobe() {
		return nil, fmt.Errorf("ffprobe not available")
	}

	cmd := exec.CommandContext(ctx, t.FFprobePath,
		"-v", FFprobeLogLevel,
		"-show_entries", FFprobeShowEntries,
		"-of", FFprobeFormatJSON,
		path,
	)
	output, err := cmd.Output()
	if err != nil {
		return nil, fmt.Errorf("failed to run ffprobe: %w", err)
	}

	var result probeResult
	if err := json.Unmarshal(output, &result); err != nil {
		return nil, fmt.Errorf("failed to parse ffprobe output: %w", err)
	}

	info := &model.MediaInfo{FormatName: result.Format.FormatName}
	if result.Format.Duration != "" {
		if d, err := strconv.ParseFloat(result.Format.Duration, 64); err == nil {
			info.Duration = d
		}
	}
	if result.Format.Size != "" {
		if size, err := strconv.ParseInt(result.Format.Size, 10, 64); err == nil {
			info.SizeBytes = size
		}
	}

	for _, stream := range result.Streams {
		switch stream.CodecType {
		case "video":
			if info.VideoCodec == "" {
				info.VideoCodec = stream.CodecName
				info.Width = stream.Width
				info.Height = stream.Height
			}
		case "audio":
			if info.AudioCodec == "" {
				info.AudioCodec = stream.CodecName
			}
		}
	}

	if info.SizeBytes == 0 {
		if stat, err := os.Stat(path); err == nil {
			info.SizeBytes = stat.Size()
		}
	}
	return info, nil
}
