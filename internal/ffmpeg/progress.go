package ffmpeg

import (
	"strconv"
	"strings"
)

// Progress keys emitted by -progress pipe:1
const (
	progressKeyOutTimeMS = "out_time_ms"
	progressKeyOutTimeUS = "out_time_us"
	progressKeyOutTime   = "out_time"
	progressKeySpeed     = "speed"
	progressKeyProgress  = "progress"
	progressValueEnd     = "end"
)

// Progress is one decoded block of ffmpeg progress output
type Progress struct {
	OutTime float64 // seconds of output produced so far
	Speed   float64 // realtime multiplier, 0 when unknown
	Done    bool    // true on the final progress=end block
}

// ProgressParser accumulates key=value lines from ffmpeg's -progress stream.
// Feed returns a completed Progress snapshot each time a block-terminating
// progress= line arrives; malformed lines are skipped.
type ProgressParser struct {
	current Progress
}

// Feed consumes one line of progress output
func (p *ProgressParser) Feed(line string) (Progress, bool) {
	key, value, ok := strings.Cut(strings.TrimSpace(line), "=")
	if !ok {
		return Progress{}, false
	}
	value = strings.TrimSpace(value)

	switch key {
	case progressKeyOutTimeMS, progressKeyOutTimeUS:
		// both report microseconds despite the _ms name
		if us, err := strconv.ParseInt(value, 10, 64); err == nil && us >= 0 {
			p.current.OutTime = float64(us) / 1e6
		}
	case progressKeyOutTime:
		if sec, ok := parseClock(value); ok {
			p.current.OutTime = sec
		}
	case progressKeySpeed:
		value = strings.TrimSuffix(value, "x")
		if speed, err := strconv.ParseFloat(value, 64); err == nil && speed > 0 {
			p.current.Speed = speed
		}
	case progressKeyProgress:
		snapshot := p.current
		snapshot.Done = value == progressValueEnd
		return snapshot, true
	}
	return Progress{}, false
}

// parseClock converts HH:MM:SS.frac into seconds
func parseClock(value string) (float64, bool) {
	parts := strings.Split(value, ":")
	if len(parts) != 3 {
		return 0, false
	}
	hours, err := strconv.Atoi(parts[0])
	if err != nil || hours < 0 {
		return 0, false
	}
	minutes, err := strconv.Atoi(parts[1])
	if err != nil || minutes < 0 {
		return 0, false
	}
	seconds, err := strconv.ParseFloat(parts[2], 64)
	if err != nil || seconds < 0 {
		return 0, false
	}
	return float64(hours)*3600 + float64(minutes)*60 + seconds, true
}
