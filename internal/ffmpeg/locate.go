package ffmpeg

import (
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
)

// Executable names
const (
	FFmpegCommand  = "ffmpeg"
	FFprobeCommand = "ffprobe"
)

// exeName appends .exe on Windows
func exeName(base string) string {
	if runtime.GOOS == "windows" {
		return base + ".exe"
	}
	return base
}

// findTool looks for a tool next to the app binary, in a bin/ subdirectory,
// then on PATH. Returns "" when not found.
func findTool(base string, extraDirs ...string) string {
	name := exeName(base)

	var dirs []string
	if exe, err := os.Executable(); err == nil {
		exeDir := filepath.Dir(exe)
		dirs = append(dirs, exeDir, filepath.Join(exeDir, "bin"))
	}
	dirs = append(dirs, extraDirs...)

	for _, dir := range dirs {
		candidate := filepath.Join(dir, name)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate
		}
	}

	if path, err := exec.LookPath(name); err == nil {
		return path
	}
	return ""
}

// FindFFmpeg locates the ffmpeg binary
func FindFFmpeg() string {
	return findTool(FFmpegCommand)
}

// FindFFprobe locates the ffprobe binary, preferring the directory of a known
// ffmpeg path so matched builds are picked up together
func FindFFprobe(ffmpegPath string) string {
	if ffmpegPath != "" {
		return findTool(FFprobeCommand, filepath.Dir(ffmpegPath))
	}
	return findTool(FFprobeCommand)
}
