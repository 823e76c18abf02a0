package model

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"
)

// ConvertTask represents a single queued conversion
type ConvertTask struct {
	ID         string
	Path       string
	Kind       MediaKind
	Status     TaskStatus
	Progress   float64 // 0.0 to 1.0
	Percent    int     // 0 to 100
	Speed      string  // encode speed as reported by ffmpeg (e.g., "1.53x")
	ETASec     int     // ETA in seconds, -1 if unknown
	LastError  string  // last error message if any
	OutputPath string  // path to converted file
	StartedAt  time.Time
	FinishedAt time.Time
	Info       *MediaInfo // ffprobe result, nil until probed
}

// GetETAString returns ETA formatted as hh:mm:ss, or "—" if unknown
func (ct *ConvertTask) GetETAString() string {
	if ct.ETASec <= 0 {
		return "—"
	}

	hours := ct.ETASec / 3600
	minutes := (ct.ETASec % 3600) / 60
	seconds := ct.ETASec % 60

	if hours > 0 {
		return fmt.Sprintf("%02d:%02d:%02d", hours, minutes, seconds)
	}
	return fmt.Sprintf("%02d:%02d", minutes, seconds)
}

// GetDisplayTitle returns the file name without its extension, falling back
// to the full path when the name is empty
func (ct *ConvertTask) GetDisplayTitle() string {
	name := filepath.Base(ct.Path)
	if idx := strings.LastIndex(name, "."); idx > 0 {
		name = name[:idx]
	}
	if name == "" || name == "." {
		return ct.Path
	}
	return name
}

// Duration returns the probed duration in seconds, or 0 when unknown
func (ct *ConvertTask) Duration() float64 {
	if ct.Info == nil {
		return 0
	}
	return ct.Info.Duration
}
