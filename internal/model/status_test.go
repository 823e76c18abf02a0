package model

import "testing"

func TestTaskStatus_IsActive(t *testing.T) {
	tests := []struct {
		status   TaskStatus
		expected bool
	}{
		{TaskStatusPending, false},
		{TaskStatusStarting, true},
		{TaskStatusConverting, true},
		{TaskStatusStopping, true},
		{TaskStatusStopped, false},
		{TaskStatusCompleted, false},
		{TaskStatusError, false},
	}

	for _, test := range tests {
		if result := test.status.IsActive(); result != test.expected {
			t.Errorf("IsActive() for %s = %v, expected %v", test.status, result, test.expected)
		}
	}
}

func TestTaskStatus_IsFinished(t *testing.T) {
	tests := []struct {
		status   TaskStatus
		expected bool
	}{
		{TaskStatusPending, false},
		{TaskStatusStarting, false},
		{TaskStatusConverting, false},
		{TaskStatusStopping, false},
		{TaskStatusStopped, true},
		{TaskStatusCompleted, true},
		{TaskStatusError, true},
	}

	for _, test := range tests {
		if result := test.status.IsFinished(); result != test.expected {
			t.Errorf("IsFinished() for %s = %v, expected %v", test.status, result, test.expected)
		}
	}
}

func TestDetectKind(t *testing.T) {
	tests := []struct {
		path     string
		kind     MediaKind
		ok       bool
	}{
		{"/media/clip.MP4", MediaKindVideo, true},
		{"/media/clip.mkv", MediaKindVideo, true},
		{"/media/shot.jpeg", MediaKindPhoto, true},
		{"/media/shot.HEIC", MediaKindPhoto, true},
		{"/media/notes.txt", "", false},
		{"/media/noext", "", false},
	}

	for _, test := range tests {
		kind, ok := DetectKind(test.path)
		if kind != test.kind || ok != test.ok {
			t.Errorf("DetectKind(%s) = (%s, %v), expected (%s, %v)",
				test.path, kind, ok, test.kind, test.ok)
		}
	}
}
