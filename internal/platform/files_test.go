package platform

import (
	"os"
	"path/filepath"
	"testing"
)

func TestCreateDirectoryIfNotExists(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "out")

	if err := CreateDirectoryIfNotExists(dir); err != nil {
		t.Fatal(err)
	}
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		t.Fatalf("directory not created: %v", err)
	}

	// Second call on an existing directory is a no-op
	if err := CreateDirectoryIfNotExists(dir); err != nil {
		t.Fatal(err)
	}
}

func TestSafeOutputName(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "clip.mp4")

	if got := SafeOutputName(path, false); got != path {
		t.Errorf("fresh path changed to %q", got)
	}

	if err := os.WriteFile(path, nil, 0644); err != nil {
		t.Fatal(err)
	}
	want := filepath.Join(dir, "clip (1).mp4")
	if got := SafeOutputName(path, false); got != want {
		t.Errorf("SafeOutputName = %q, want %q", got, want)
	}

	if err := os.WriteFile(want, nil, 0644); err != nil {
		t.Fatal(err)
	}
	want2 := filepath.Join(dir, "clip (2).mp4")
	if got := SafeOutputName(path, false); got != want2 {
		t.Errorf("SafeOutputName = %q, want %q", got, want2)
	}

	// Overwrite keeps the original path
	if got := SafeOutputName(path, true); got != path {
		t.Errorf("overwrite path changed to %q", got)
	}
}

func TestScanMediaFiles(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"b.mp4", "a.jpg", "notes.txt", "z.mkv"} {
		if err := os.WriteFile(filepath.Join(dir, name), nil, 0644); err != nil {
			t.Fatal(err)
		}
	}
	if err := os.Mkdir(filepath.Join(dir, "sub"), 0755); err != nil {
		t.Fatal(err)
	}

	paths, err := ScanMediaFiles(dir)
	if err != nil {
		t.Fatal(err)
	}
	want := []string{
		filepath.Join(dir, "a.jpg"),
		filepath.Join(dir, "b.mp4"),
		filepath.Join(dir, "z.mkv"),
	}
	if len(paths) != len(want) {
		t.Fatalf("paths = %v, want %v", paths, want)
	}
	for i := range want {
		if paths[i] != want[i] {
			t.Errorf("paths[%d] = %q, want %q", i, paths[i], want[i])
		}
	}
}

func TestScanMediaFilesMissingDir(t *testing.T) {
	if _, err := ScanMediaFiles(filepath.Join(t.TempDir(), "missing")); err == nil {
		t.Error("expected an error for a missing directory")
	}
}
