package model

import (
	"path/filepath"
	"strings"
)

// MediaKind tells whether a queue item is treated as video or photo media
type MediaKind string

const (
	MediaKindVideo MediaKind = "video"
	MediaKindPhoto MediaKind = "photo"
)

// videoExtensions lists container extensions handled as video input
var videoExtensions = map[string]bool{
	".mov": true, ".mp4": true, ".mkv": true, ".webm": true, ".avi": true,
	".m4v": true, ".flv": true, ".wmv": true, ".mts": true, ".m2ts": true,
}

// photoExtensions lists image extensions handled as photo input
var photoExtensions = map[string]bool{
	".jpg": true, ".jpeg": true, ".png": true, ".webp": true, ".bmp": true,
	".tif": true, ".tiff": true, ".heic": true, ".heif": true,
}

// IsVideoPath reports whether the path has a known video extension
func IsVideoPath(path string) bool {
	return videoExtensions[strings.ToLower(filepath.Ext(path))]
}

// IsPhotoPath reports whether the path has a known photo extension
func IsPhotoPath(path string) bool {
	return photoExtensions[strings.ToLower(filepath.Ext(path))]
}

// DetectKind classifies a path as video or photo media.
// The second return value is false for unsupported extensions.
func DetectKind(path string) (MediaKind, bool) {
	switch {
	case IsVideoPath(path):
		return MediaKindVideo, true
	case IsPhotoPath(path):
		return MediaKindPhoto, true
	default:
		return "", false
	}
}

// MediaInfo holds the subset of ffprobe output the app cares about.
// Zero values mean the field was not reported.
type MediaInfo struct {
	Duration   float64 // seconds
	VideoCodec string
	AudioCodec string
	Width      int
	Height     int
	FormatName string
	SizeBytes  int64
}
