package convert

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/mediabatch/media-converter/internal/ffmpeg"
	"github.com/mediabatch/media-converter/internal/model"
	"github.com/mediabatch/media-converter/internal/platform"
)

// Log levels passed to the log callback
const (
	LogInfo  = "INFO"
	LogWarn  = "WARN"
	LogError = "ERROR"
)

const (
	TaskIDPrefix = "convert-"
)

// stderr fragments that get surfaced as warnings in the log pane
var stderrWarnMarkers = []string{"error", "invalid", "failed"}

// BatchProgress is the overall queue state pushed to the UI while a batch runs
type BatchProgress struct {
	FileIndex    int // 1-based index of the file being converted
	FileCount    int
	FilePercent  int
	TotalPercent int
	Speed        string
	ETASec       int // overall ETA, -1 when unknown
}

// BatchResult summarizes a finished batch
type BatchResult struct {
	Stopped   bool
	Converted int
	Failed    int
}

// Service runs conversions sequentially on a single worker goroutine
type Service struct {
	toolchain *ffmpeg.Toolchain

	tasks      []*model.ConvertTask
	tasksMutex sync.RWMutex

	running bool
	cancel  context.CancelFunc

	onTask  func(*model.ConvertTask)
	onBatch func(BatchProgress)
	onLog   func(level, message string)
	onDone  func(BatchResult)
}

// NewService creates a new conversion service
func NewService(toolchain *ffmpeg.Toolchain) *Service {
	s := &Service{toolchain: toolchain}
	toolchain.OnWarning = func(msg string) {
		s.logf(LogWarn, "%s", msg)
	}
	return s
}

// SetTaskCallback sets the callback for per-task updates
func (s *Service) SetTaskCallback(callback func(*model.ConvertTask)) {
	s.onTask = callback
}

// SetBatchCallback sets the callback for overall progress updates
func (s *Service) SetBatchCallback(callback func(BatchProgress)) {
	s.onBatch = callback
}

// SetLogCallback sets the callback for log lines
func (s *Service) SetLogCallback(callback func(level, message string)) {
	s.onLog = callback
}

// SetDoneCallback sets the callback invoked when a batch finishes
func (s *Service) SetDoneCallback(callback func(BatchResult)) {
	s.onDone = callback
}

// IsRunning reports whether a batch is in progress
func (s *Service) IsRunning() bool {
	s.tasksMutex.RLock()
	defer s.tasksMutex.RUnlock()
	return s.running
}

// Tasks returns the current queue snapshot
func (s *Service) Tasks() []*model.ConvertTask {
	s.tasksMutex.RLock()
	defer s.tasksMutex.RUnlock()
	out := make([]*model.ConvertTask, len(s.tasks))
	copy(out, s.tasks)
	return out
}

// Start begins converting the given files with the given settings. Only one
// batch can run at a time.
func (s *Service) Start(paths []string, settings model.ConversionSettings, outputDir string) error {
	if !s.toolchain.HasFFmpeg() {
		return fmt.Errorf("ffmpeg binary not found")
	}
	if len(paths) == 0 {
		return fmt.Errorf("nothing to convert")
	}

	s.tasksMutex.Lock()
	if s.running {
		s.tasksMutex.Unlock()
		return fmt.Errorf("conversion already in progress")
	}

	tasks := make([]*model.ConvertTask, 0, len(paths))
	for _, path := range paths {
		kind, ok := model.DetectKind(path)
		if !ok {
			continue
		}
		tasks = append(tasks, &model.ConvertTask{
			ID:     generateTaskID(),
			Path:   path,
			Kind:   kind,
			Status: model.TaskStatusPending,
			ETASec: -1,
		})
	}
	if len(tasks) == 0 {
		s.tasksMutex.Unlock()
		return fmt.Errorf("no supported media files in selection")
	}

	ctx, cancel := context.WithCancel(context.Background())
	s.tasks = tasks
	s.running = true
	s.cancel = cancel
	s.tasksMutex.Unlock()

	go s.runBatch(ctx, tasks, settings, outputDir)
	return nil
}

// Stop cancels the running batch. The current ffmpeg process is terminated
// and its partial output removed.
func (s *Service) Stop() {
	s.tasksMutex.Lock()
	defer s.tasksMutex.Unlock()
	if !s.running {
		return
	}
	for _, task := range s.tasks {
		if task.Status.IsActive() {
			task.Status = model.TaskStatusStopping
			s.notifyTask(task)
		}
	}
	if s.cancel != nil {
		s.cancel()
	}
}

// runBatch is the worker goroutine: probe everything, merge if requested,
// then convert file by file
func (s *Service) runBatch(ctx context.Context, tasks []*model.ConvertTask, settings model.ConversionSettings, outputDir string) {
	result := BatchResult{}
	defer func() {
		s.tasksMutex.Lock()
		s.running = false
		s.cancel = nil
		s.tasksMutex.Unlock()
		if s.onDone != nil {
			s.onDone(result)
		}
	}()

	if err := platform.CreateDirectoryIfNotExists(outputDir); err != nil {
		s.logf(LogError, "cannot create output directory: %v", err)
		result.Failed = len(tasks)
		return
	}

	s.probeAll(ctx, tasks)
	totalDuration := 0.0
	for _, task := range tasks {
		if task.Kind == model.MediaKindVideo {
			totalDuration += effectiveDuration(task.Duration(), &settings)
		}
	}

	doneDuration := 0.0
	converted := 0
	failed := 0

	videoTasks := videoOnly(tasks)
	merging := settings.Merge && len(videoTasks) > 1

	if merging {
		mergeDuration := 0.0
		for _, task := range videoTasks {
			mergeDuration += effectiveDuration(task.Duration(), &settings)
		}
		if s.runMerge(ctx, videoTasks, &settings, outputDir, mergeDuration, totalDuration, len(tasks)) {
			converted += len(videoTasks)
		} else {
			failed += len(videoTasks)
		}
		doneDuration += mergeDuration
		if ctx.Err() != nil {
			result.Stopped = true
			result.Converted = converted
			result.Failed = failed
			return
		}
	}

	for i, task := range tasks {
		if merging && task.Kind == model.MediaKindVideo {
			continue
		}
		if ctx.Err() != nil {
			result.Stopped = true
			break
		}

		ok := s.convertOne(ctx, task, &settings, outputDir, batchState{
			fileIndex:     i + 1,
			fileCount:     len(tasks),
			totalDuration: totalDuration,
			doneDuration:  doneDuration,
		})
		if ctx.Err() != nil {
			result.Stopped = true
			break
		}
		if ok {
			converted++
		} else {
			failed++
		}
		if task.Kind == model.MediaKindVideo {
			doneDuration += effectiveDuration(task.Duration(), &settings)
		}
	}

	result.Converted = converted
	result.Failed = failed
	if !result.Stopped {
		s.logf(LogInfo, "batch finished: %d converted, %d failed", converted, failed)
	} else {
		s.logf(LogInfo, "batch stopped")
	}
}

// probeAll runs ffprobe over every task and logs a one-line summary per file
func (s *Service) probeAll(ctx context.Context, tasks []*model.ConvertTask) {
	if !s.toolchain.HasFFprobe() {
		s.logf(LogWarn, "ffprobe not found, progress will be approximate")
		return
	}
	for _, task := range tasks {
		if ctx.Err() != nil {
			return
		}
		info, err := s.toolchain.Probe(ctx, task.Path)
		if err != nil {
			s.logf(LogWarn, "probe failed for %s: %v", filepath.Base(task.Path), err)
			continue
		}
		s.tasksMutex.Lock()
		task.Info = info
		s.tasksMutex.Unlock()
		s.notifyTask(task)

		if task.Kind == model.MediaKindVideo {
			s.logf(LogInfo, "%s: %s %dx%d, %.1fs",
				filepath.Base(task.Path), info.VideoCodec, info.Width, info.Height, info.Duration)
		} else {
			s.logf(LogInfo, "%s: %dx%d", filepath.Base(task.Path), info.Width, info.Height)
		}
	}
}

// batchState carries the overall-progress inputs for one file's conversion
type batchState struct {
	fileIndex     int
	fileCount     int
	totalDuration float64
	doneDuration  float64
}

// convertOne converts a single file and reports whether it succeeded
func (s *Service) convertOne(ctx context.Context, task *model.ConvertTask, settings *model.ConversionSettings, outputDir string, state batchState) bool {
	outputPath := s.outputPathFor(task, settings, outputDir)

	s.tasksMutex.Lock()
	task.Status = model.TaskStatusStarting
	task.OutputPath = outputPath
	task.StartedAt = time.Now()
	s.tasksMutex.Unlock()
	s.notifyTask(task)

	var args []string
	if task.Kind == model.MediaKindPhoto {
		args = s.toolchain.BuildPhotoArgs(settings, task.Path, outputPath)
	} else {
		args = s.toolchain.BuildVideoArgs(settings, task.Path, outputPath, task.Info)
	}

	duration := effectiveDuration(task.Duration(), settings)
	err := s.runFFmpeg(ctx, args, task, duration, state)

	s.tasksMutex.Lock()
	task.FinishedAt = time.Now()
	switch {
	case ctx.Err() == context.Canceled:
		task.Status = model.TaskStatusStopped
		os.Remove(outputPath)
	case err != nil:
		task.Status = model.TaskStatusError
		task.LastError = err.Error()
		os.Remove(outputPath)
	default:
		task.Status = model.TaskStatusCompleted
		task.Progress = 1.0
		task.Percent = 100
		task.ETASec = 0
	}
	s.tasksMutex.Unlock()
	s.notifyTask(task)

	if ctx.Err() != nil {
		return false
	}
	if err != nil {
		s.logf(LogError, "%s: %v", filepath.Base(task.Path), err)
		return false
	}
	s.logf(LogInfo, "%s -> %s", filepath.Base(task.Path), filepath.Base(outputPath))
	return true
}

// runMerge concatenates the video tasks into a single output file
func (s *Service) runMerge(ctx context.Context, tasks []*model.ConvertTask, settings *model.ConversionSettings, outputDir string, mergeDuration, totalDuration float64, fileCount int) bool {
	name := strings.TrimSpace(settings.MergeName)
	if name == "" {
		name = "merged"
	}
	ext := "." + strings.TrimPrefix(settings.VideoFormat, ".")
	outputPath := platform.SafeOutputName(filepath.Join(outputDir, name+ext), settings.Overwrite)

	paths := make([]string, len(tasks))
	infos := make([]*model.MediaInfo, len(tasks))
	for i, task := range tasks {
		paths[i] = task.Path
		infos[i] = task.Info
	}

	listPath, err := ffmpeg.WriteConcatList(paths)
	if err != nil {
		s.logf(LogError, "merge: %v", err)
		s.markTasks(tasks, model.TaskStatusError, err.Error())
		return false
	}
	defer os.Remove(listPath)

	s.markTasks(tasks, model.TaskStatusConverting, "")
	s.logf(LogInfo, "merging %d clips into %s", len(tasks), filepath.Base(outputPath))

	args := s.toolchain.BuildMergeArgs(settings, listPath, paths, outputPath, infos)
	lead := tasks[0]
	s.tasksMutex.Lock()
	lead.OutputPath = outputPath
	lead.StartedAt = time.Now()
	s.tasksMutex.Unlock()

	err = s.runFFmpeg(ctx, args, lead, mergeDuration, batchState{
		fileIndex:     1,
		fileCount:     fileCount,
		totalDuration: totalDuration,
	})

	switch {
	case ctx.Err() == context.Canceled:
		s.markTasks(tasks, model.TaskStatusStopped, "")
		os.Remove(outputPath)
		return false
	case err != nil:
		s.logf(LogError, "merge: %v", err)
		s.markTasks(tasks, model.TaskStatusError, err.Error())
		os.Remove(outputPath)
		return false
	}

	s.tasksMutex.Lock()
	now := time.Now()
	for _, task := range tasks {
		task.OutputPath = outputPath
		task.Progress = 1.0
		task.Percent = 100
		task.ETASec = 0
		task.FinishedAt = now
	}
	s.tasksMutex.Unlock()
	s.markTasks(tasks, model.TaskStatusCompleted, "")
	s.logf(LogInfo, "merge complete: %s", filepath.Base(outputPath))
	return true
}

// runFFmpeg executes one ffmpeg process, feeding progress into the task and
// batch callbacks until the process exits
func (s *Service) runFFmpeg(ctx context.Context, args []string, task *model.ConvertTask, duration float64, state batchState) error {
	args = ffmpeg.WithProgressArgs(args)
	cmd := exec.CommandContext(ctx, args[0], args[1:]...)

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return fmt.Errorf("failed to create stdout pipe: %w", err)
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return fmt.Errorf("failed to create stderr pipe: %w", err)
	}

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to start ffmpeg: %w", err)
	}

	s.tasksMutex.Lock()
	task.Status = model.TaskStatusConverting
	s.tasksMutex.Unlock()
	s.notifyTask(task)

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		s.monitorProgress(stdout, task, duration, state)
	}()
	go func() {
		defer wg.Done()
		s.drainStderr(stderr)
	}()
	wg.Wait()

	if err := cmd.Wait(); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("ffmpeg exited with error: %w", err)
	}
	return nil
}

// monitorProgress parses -progress output and pushes task/batch updates
func (s *Service) monitorProgress(stdout io.ReadCloser, task *model.ConvertTask, duration float64, state batchState) {
	defer stdout.Close()

	var parser ffmpeg.ProgressParser
	started := time.Now()
	scanner := bufio.NewScanner(stdout)
	for scanner.Scan() {
		snapshot, ok := parser.Feed(scanner.Text())
		if !ok {
			continue
		}

		progress := 0.0
		if duration > 0 {
			progress = snapshot.OutTime / duration
			if progress > 1.0 {
				progress = 1.0
			}
		}

		eta := -1
		if duration > 0 {
			remaining := duration - snapshot.OutTime
			if remaining < 0 {
				remaining = 0
			}
			if snapshot.Speed > 0 {
				eta = int(remaining / snapshot.Speed)
			} else if progress > 0 {
				elapsed := time.Since(started).Seconds()
				eta = int(elapsed/progress - elapsed)
			}
		}

		speed := ""
		if snapshot.Speed > 0 {
			speed = fmt.Sprintf("%.2fx", snapshot.Speed)
		}

		s.tasksMutex.Lock()
		task.Progress = progress
		task.Percent = int(progress * 100)
		task.Speed = speed
		task.ETASec = eta
		s.tasksMutex.Unlock()
		s.notifyTask(task)

		s.notifyBatch(BatchProgress{
			FileIndex:    state.fileIndex,
			FileCount:    state.fileCount,
			FilePercent:  int(progress * 100),
			TotalPercent: totalPercent(state, snapshot.OutTime, progress),
			Speed:        speed,
			ETASec:       eta,
		})
	}
}

// totalPercent blends finished and in-flight duration, falling back to file
// counts when durations are unknown
func totalPercent(state batchState, outTime, fileProgress float64) int {
	if state.totalDuration > 0 {
		done := state.doneDuration + outTime
		if done > state.totalDuration {
			done = state.totalDuration
		}
		return int(done / state.totalDuration * 100)
	}
	if state.fileCount == 0 {
		return 0
	}
	return int((float64(state.fileIndex-1) + fileProgress) / float64(state.fileCount) * 100)
}

// drainStderr keeps the stderr pipe flowing and surfaces suspicious lines
func (s *Service) drainStderr(stderr io.ReadCloser) {
	defer stderr.Close()
	scanner := bufio.NewScanner(stderr)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		lower := strings.ToLower(line)
		for _, marker := range stderrWarnMarkers {
			if strings.Contains(lower, marker) {
				s.logf(LogWarn, "%s", line)
				break
			}
		}
	}
}

// outputPathFor picks the output file path for a task
func (s *Service) outputPathFor(task *model.ConvertTask, settings *model.ConversionSettings, outputDir string) string {
	format := settings.VideoFormat
	if task.Kind == model.MediaKindPhoto {
		format = settings.PhotoFormat
	}
	ext := "." + strings.TrimPrefix(format, ".")

	base := task.GetDisplayTitle()
	return platform.SafeOutputName(filepath.Join(outputDir, base+ext), settings.Overwrite)
}

// markTasks sets a status on a group of tasks and notifies the UI
func (s *Service) markTasks(tasks []*model.ConvertTask, status model.TaskStatus, lastError string) {
	s.tasksMutex.Lock()
	for _, task := range tasks {
		task.Status = status
		if lastError != "" {
			task.LastError = lastError
		}
	}
	s.tasksMutex.Unlock()
	for _, task := range tasks {
		s.notifyTask(task)
	}
}

// effectiveDuration accounts for trim when estimating how long the encoded
// output will run
func effectiveDuration(duration float64, s *model.ConversionSettings) float64 {
	if duration <= 0 {
		return 0
	}
	start := 0.0
	if s.TrimStart > 0 {
		start = s.TrimStart
	}
	end := duration
	if s.TrimEnd > start && s.TrimEnd < duration {
		end = s.TrimEnd
	}
	if end <= start {
		return 0
	}
	out := end - start
	if speed := s.Speed; speed > 0 && speed != 1.0 {
		out /= speed
	}
	return out
}

// videoOnly filters the queue down to video tasks
func videoOnly(tasks []*model.ConvertTask) []*model.ConvertTask {
	var out []*model.ConvertTask
	for _, task := range tasks {
		if task.Kind == model.MediaKindVideo {
			out = append(out, task)
		}
	}
	return out
}

func (s *Service) notifyTask(task *model.ConvertTask) {
	if s.onTask != nil {
		s.onTask(task)
	}
}

func (s *Service) notifyBatch(progress BatchProgress) {
	if s.onBatch != nil {
		s.onBatch(progress)
	}
}

func (s *Service) logf(level, format string, args ...any) {
	if s.onLog != nil {
		s.onLog(level, fmt.Sprintf(format, args...))
	}
}

// generateTaskID generates a unique task ID using UUID v7 for better uniqueness and time ordering
func generateTaskID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return fmt.Sprintf(TaskIDPrefix+"%d", time.Now().UnixNano())
	}
	return TaskIDPrefix + id.String()
}
