package ffmpeg

import (
	"math"
	"testing"
)

func TestProgressParserFeed(t *testing.T) {
	var p ProgressParser

	lines := []string{
		"frame=120",
		"out_time_us=2500000",
		"out_time=00:00:02.500000",
		"speed=1.53x",
		"progress=continue",
	}
	var got Progress
	var complete bool
	for _, line := range lines {
		if snapshot, ok := p.Feed(line); ok {
			got = snapshot
			complete = true
		}
	}
	if !complete {
		t.Fatal("expected a completed block")
	}
	if math.Abs(got.OutTime-2.5) > 1e-9 {
		t.Errorf("OutTime = %v, want 2.5", got.OutTime)
	}
	if math.Abs(got.Speed-1.53) > 1e-9 {
		t.Errorf("Speed = %v, want 1.53", got.Speed)
	}
	if got.Done {
		t.Error("Done = true on a continue block")
	}
}

func TestProgressParserEnd(t *testing.T) {
	var p ProgressParser
	p.Feed("out_time_ms=10000000")
	got, ok := p.Feed("progress=end")
	if !ok {
		t.Fatal("expected a completed block")
	}
	if !got.Done {
		t.Error("Done = false on the end block")
	}
	if math.Abs(got.OutTime-10) > 1e-9 {
		t.Errorf("OutTime = %v, want 10", got.OutTime)
	}
}

func TestProgressParserMalformed(t *testing.T) {
	var p ProgressParser
	for _, line := range []string{
		"",
		"garbage",
		"out_time_us=notanumber",
		"out_time=99.5",
		"speed=N/A",
	} {
		if _, ok := p.Feed(line); ok {
			t.Errorf("Feed(%q) completed a block", line)
		}
	}
	got, ok := p.Feed("progress=continue")
	if !ok {
		t.Fatal("expected a completed block")
	}
	if got.OutTime != 0 || got.Speed != 0 {
		t.Errorf("malformed lines changed state: %+v", got)
	}
}

func TestParseClock(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  float64
		ok    bool
	}{
		{"zero", "00:00:00.000000", 0, true},
		{"mixed", "01:02:03.5", 3723.5, true},
		{"no fraction", "00:10:00", 600, true},
		{"two parts", "10:00", 0, false},
		{"negative", "-1:00:00", 0, false},
		{"letters", "aa:bb:cc", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := parseClock(tt.value)
			if ok != tt.ok {
				t.Fatalf("parseClock(%q) ok = %v, want %v", tt.value, ok, tt.ok)
			}
			if ok && math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("parseClock(%q) = %v, want %v", tt.value, got, tt.want)
			}
		})
	}
}
