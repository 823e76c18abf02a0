package ui

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/mediabatch/media-converter/internal/config"
	"github.com/mediabatch/media-converter/internal/convert"
	"github.com/mediabatch/media-converter/internal/ffmpeg"
	"github.com/mediabatch/media-converter/internal/model"
	"github.com/mediabatch/media-converter/internal/platform"
	"github.com/mediabatch/media-converter/internal/preset"
)

// RootUI is the main application window
type RootUI struct {
	app    fyne.App
	window fyne.Window

	settings     *config.Settings
	localization *Localization
	toolchain    *ffmpeg.Toolchain
	converter    convert.Converter
	presets      *preset.Store

	// Queue shown in the list. Before a batch starts these are local
	// pending entries; once running they are the converter's tasks.
	tasks      []*model.ConvertTask
	tasksMutex sync.RWMutex

	taskList     *widget.List
	optionsPanel *OptionsPanel

	presetSelect    *widget.Select
	savePresetBtn   *widget.Button
	deletePresetBtn *widget.Button

	addVideosBtn *widget.Button
	addPhotosBtn *widget.Button
	addFolderBtn *widget.Button
	clearBtn     *widget.Button
	settingsBtn  *widget.Button
	convertBtn   *widget.Button
	stopBtn      *widget.Button

	currentFileBar *widget.ProgressBar
	overallBar     *widget.ProgressBar
	currentLabel   *widget.Label
	speedEtaLabel  *widget.Label

	logEntry *widget.Entry
	logLines []string
	logMutex sync.Mutex

	ffmpegNotice *fyne.Container

	settingsDialog *SettingsDialog

	toastMutex  sync.Mutex
	activeToast *widget.PopUp
}

// NewRootUI creates the main window and wires the converter callbacks
func NewRootUI(app fyne.App, settings *config.Settings, toolchain *ffmpeg.Toolchain, converter convert.Converter, presets *preset.Store) *RootUI {
	localization := NewLocalization()
	localization.SetLanguage(settings.GetLanguage())

	r := &RootUI{
		app:          app,
		settings:     settings,
		localization: localization,
		toolchain:    toolchain,
		converter:    converter,
		presets:      presets,
	}

	r.window = app.NewWindow(localization.GetText(KeyAppTitle))
	r.window.Resize(fyne.NewSize(WindowDefaultWidth, WindowDefaultHeight))

	r.setupUI()
	r.setupCallbacks()
	r.restoreLastPreset()

	return r
}

// ShowAndRun displays the window and starts the event loop
func (r *RootUI) ShowAndRun() {
	r.window.ShowAndRun()
}

// setupUI builds the window content
func (r *RootUI) setupUI() {
	loc := r.localization

	r.addVideosBtn = widget.NewButton(IconVideo+" "+loc.GetText(KeyAddVideos), r.onAddVideos)
	r.addPhotosBtn = widget.NewButton(IconPhoto+" "+loc.GetText(KeyAddPhotos), r.onAddPhotos)
	r.addFolderBtn = widget.NewButton(IconFolder+" "+loc.GetText(KeyAddFolder), r.onAddFolder)
	r.clearBtn = widget.NewButton(loc.GetText(KeyClearQueue), r.onClearQueue)
	r.settingsBtn = widget.NewButton(IconSettings+" "+loc.GetText(KeySettings), r.onShowSettings)

	toolbar := container.NewHBox(
		r.addVideosBtn, r.addPhotosBtn, r.addFolderBtn, r.clearBtn,
		widget.NewSeparator(),
		r.settingsBtn,
	)

	// Preset row
	r.presetSelect = widget.NewSelect(r.presets.Names(), r.onPresetSelected)
	r.presetSelect.PlaceHolder = loc.GetText(KeyPreset)
	r.savePresetBtn = widget.NewButton(loc.GetText(KeySavePreset), r.onSavePreset)
	r.deletePresetBtn = widget.NewButton(loc.GetText(KeyDeletePreset), r.onDeletePreset)
	presetRow := container.NewBorder(nil, nil,
		widget.NewLabel(loc.GetText(KeyPreset)),
		container.NewHBox(r.savePresetBtn, r.deletePresetBtn),
		r.presetSelect,
	)

	r.ffmpegNotice = r.createFFmpegNotice()

	top := container.NewVBox(toolbar, presetRow, r.ffmpegNotice, widget.NewSeparator())

	// Queue list
	r.taskList = widget.NewList(
		func() int {
			r.tasksMutex.RLock()
			defer r.tasksMutex.RUnlock()
			return len(r.tasks)
		},
		func() fyne.CanvasObject {
			return NewTaskRow(nil, r.localization)
		},
		func(id widget.ListItemID, obj fyne.CanvasObject) {
			r.tasksMutex.RLock()
			var task *model.ConvertTask
			if id >= 0 && int(id) < len(r.tasks) {
				task = r.tasks[id]
			}
			r.tasksMutex.RUnlock()

			row, ok := obj.(*TaskRow)
			if !ok || task == nil {
				return
			}
			row.SetCallbacks(r.onRevealFile, r.onOpenFile, r.onRemoveTask)
			row.UpdateTask(task)
		},
	)

	r.optionsPanel = NewOptionsPanel(r.localization)
	optionsScroll := container.NewVScroll(r.optionsPanel.Container())

	split := container.NewHSplit(r.taskList, optionsScroll)
	split.SetOffset(0.6)

	// Progress area
	r.currentFileBar = widget.NewProgressBar()
	r.overallBar = widget.NewProgressBar()
	r.currentLabel = widget.NewLabel(loc.GetText(KeyCurrentFile))
	r.speedEtaLabel = widget.NewLabel(DashPlaceholder)
	r.speedEtaLabel.TextStyle = fyne.TextStyle{Monospace: true}
	r.speedEtaLabel.Alignment = fyne.TextAlignTrailing

	progressArea := container.NewVBox(
		container.NewBorder(nil, nil, r.currentLabel, r.speedEtaLabel),
		r.currentFileBar,
		widget.NewLabel(loc.GetText(KeyOverallProgress)),
		r.overallBar,
	)

	r.convertBtn = widget.NewButton(IconPlay+" "+loc.GetText(KeyConvert), r.onConvert)
	r.convertBtn.Importance = widget.HighImportance
	r.stopBtn = widget.NewButton(IconStopped+" "+loc.GetText(KeyStop), r.onStop)
	r.stopBtn.Disable()
	buttonRow := container.NewHBox(r.convertBtn, r.stopBtn)

	// Log pane
	r.logEntry = widget.NewMultiLineEntry()
	r.logEntry.Wrapping = fyne.TextWrapWord
	logScroll := container.NewVScroll(r.logEntry)
	logScroll.SetMinSize(fyne.NewSize(0, 100))
	logAccordion := widget.NewAccordion(
		widget.NewAccordionItem(loc.GetText(KeyLog), logScroll),
	)

	bottom := container.NewVBox(widget.NewSeparator(), progressArea, buttonRow, logAccordion)

	content := container.NewBorder(top, bottom, nil, nil, split)
	r.window.SetContent(content)
	r.window.SetMainMenu(r.createMenu())
}

// createFFmpegNotice builds the banner shown while ffmpeg is not found
func (r *RootUI) createFFmpegNotice() *fyne.Container {
	loc := r.localization

	label := widget.NewLabel(IconError + " " + loc.GetText(KeyFFmpegMissing))
	label.Importance = widget.DangerImportance

	locateBtn := widget.NewButton(loc.GetText(KeyLocateFFmpeg), r.onLocateFFmpeg)

	notice := container.NewHBox(label, locateBtn)
	if r.toolchain.HasFFmpeg() {
		notice.Hide()
	}
	return notice
}

// createMenu builds the main menu
func (r *RootUI) createMenu() *fyne.MainMenu {
	loc := r.localization

	fileMenu := fyne.NewMenu(loc.GetText(KeyFile),
		fyne.NewMenuItem(loc.GetText(KeyAddVideos), r.onAddVideos),
		fyne.NewMenuItem(loc.GetText(KeyAddPhotos), r.onAddPhotos),
		fyne.NewMenuItem(loc.GetText(KeyAddFolder), r.onAddFolder),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem(loc.GetText(KeySettings), r.onShowSettings),
	)

	languageLabels := r.localization.GetAvailableLanguages()
	codes := make([]string, 0, len(languageLabels))
	for code := range languageLabels {
		codes = append(codes, code)
	}
	sort.Strings(codes)

	languageItems := []*fyne.MenuItem{}
	for _, code := range codes {
		lang := code
		languageItems = append(languageItems, fyne.NewMenuItem(languageLabels[code], func() {
			r.onLanguageChange(lang)
		}))
	}
	languageMenu := fyne.NewMenu(loc.GetText(KeyLanguage), languageItems...)

	return fyne.NewMainMenu(fileMenu, languageMenu)
}

// setupCallbacks wires converter events into the UI thread
func (r *RootUI) setupCallbacks() {
	r.converter.SetTaskCallback(r.onTaskUpdate)
	r.converter.SetBatchCallback(r.onBatchProgress)
	r.converter.SetLogCallback(r.onLogMessage)
	r.converter.SetDoneCallback(r.onBatchDone)
}

// restoreLastPreset re-applies the preset used in the previous session
func (r *RootUI) restoreLastPreset() {
	name := r.settings.GetLastPreset()
	if name == "" {
		return
	}
	if _, ok := r.presets.Get(name); ok {
		r.presetSelect.SetSelected(name)
	}
}

// Queue management

func (r *RootUI) addPaths(paths ...string) {
	r.tasksMutex.Lock()
	added := 0
	for _, path := range paths {
		kind, ok := model.DetectKind(path)
		if !ok {
			continue
		}
		duplicate := false
		for _, t := range r.tasks {
			if t.Path == path {
				duplicate = true
				break
			}
		}
		if duplicate {
			continue
		}
		r.tasks = append(r.tasks, &model.ConvertTask{
			ID:     fmt.Sprintf("queued-%d-%d", len(r.tasks), time.Now().UnixNano()),
			Path:   path,
			Kind:   kind,
			Status: model.TaskStatusPending,
			ETASec: -1,
		})
		added++
	}
	r.tasksMutex.Unlock()

	if added > 0 {
		r.taskList.Refresh()
	}
}

func (r *RootUI) queuedPaths() []string {
	r.tasksMutex.RLock()
	defer r.tasksMutex.RUnlock()

	paths := make([]string, 0, len(r.tasks))
	for _, t := range r.tasks {
		paths = append(paths, t.Path)
	}
	return paths
}

func (r *RootUI) onAddVideos() {
	path := platform.PickMediaFile(r.localization.GetText(KeyAddVideos), "Videos",
		"mp4", "mkv", "webm", "mov", "avi", "m4v", "flv", "wmv", "mts", "m2ts")
	if path != "" {
		r.addPaths(path)
	}
}

func (r *RootUI) onAddPhotos() {
	path := platform.PickMediaFile(r.localization.GetText(KeyAddPhotos), "Photos",
		"jpg", "jpeg", "png", "webp", "bmp", "tif", "tiff", "heic", "heif")
	if path != "" {
		r.addPaths(path)
	}
}

func (r *RootUI) onAddFolder() {
	dir := platform.PickDirectory(r.localization.GetText(KeyAddFolder))
	if dir == "" {
		return
	}
	paths, err := platform.ScanMediaFiles(dir)
	if err != nil {
		dialog.ShowError(err, r.window)
		return
	}
	if len(paths) == 0 {
		dialog.ShowInformation(r.localization.GetText(KeyAddFolder), r.localization.GetText(KeyNoFiles), r.window)
		return
	}
	r.addPaths(paths...)
}

func (r *RootUI) onClearQueue() {
	if r.converter.IsRunning() {
		return
	}
	r.tasksMutex.Lock()
	r.tasks = nil
	r.tasksMutex.Unlock()
	r.taskList.Refresh()
	r.resetProgress()
}

func (r *RootUI) onRemoveTask(taskID string) {
	r.tasksMutex.Lock()
	for i, t := range r.tasks {
		if t.ID == taskID {
			if t.Status.IsActive() {
				break
			}
			r.tasks = append(r.tasks[:i], r.tasks[i+1:]...)
			break
		}
	}
	r.tasksMutex.Unlock()
	r.taskList.Refresh()
}

// Conversion control

func (r *RootUI) onConvert() {
	paths := r.queuedPaths()
	if len(paths) == 0 {
		dialog.ShowInformation(r.localization.GetText(KeyConvert), r.localization.GetText(KeyNoFiles), r.window)
		return
	}

	settings := r.optionsPanel.Settings()
	outputDir := r.settings.GetOutputDirectory()

	if err := r.converter.Start(paths, settings, outputDir); err != nil {
		dialog.ShowError(err, r.window)
		return
	}

	// The converter owns the task objects from here on
	r.tasksMutex.Lock()
	r.tasks = r.converter.Tasks()
	r.tasksMutex.Unlock()

	r.convertBtn.Disable()
	r.stopBtn.Enable()
	r.clearBtn.Disable()
	r.resetProgress()
	r.taskList.Refresh()
}

func (r *RootUI) onStop() {
	r.converter.Stop()
	r.stopBtn.Disable()
}

func (r *RootUI) resetProgress() {
	r.currentFileBar.SetValue(0)
	r.overallBar.SetValue(0)
	r.currentLabel.SetText(r.localization.GetText(KeyCurrentFile))
	r.speedEtaLabel.SetText(DashPlaceholder)
}

// Converter callbacks. These arrive from worker goroutines, so every UI
// mutation goes through fyne.Do.

func (r *RootUI) onTaskUpdate(task *model.ConvertTask) {
	if task == nil {
		return
	}
	fyne.Do(func() {
		r.taskList.Refresh()
		if task.Status == model.TaskStatusConverting {
			r.currentLabel.SetText(r.localization.GetText(KeyCurrentFile) + ": " + task.GetDisplayTitle())
		}
	})
}

func (r *RootUI) onBatchProgress(progress convert.BatchProgress) {
	fyne.Do(func() {
		r.currentFileBar.SetValue(float64(progress.FilePercent) / MaxProgressPercent)
		r.overallBar.SetValue(float64(progress.TotalPercent) / MaxProgressPercent)

		text := fmt.Sprintf("%d/%d", progress.FileIndex, progress.FileCount)
		if progress.Speed != "" {
			text += MiddleDotSeparator + progress.Speed
		}
		if progress.ETASec > 0 {
			eta := model.ConvertTask{ETASec: progress.ETASec}
			text += MiddleDotSeparator + eta.GetETAString()
		}
		r.speedEtaLabel.SetText(text)
	})
}

func (r *RootUI) onLogMessage(level, message string) {
	r.logMutex.Lock()
	line := fmt.Sprintf("[%s] %s %s", time.Now().Format("15:04:05"), strings.ToUpper(level), message)
	r.logLines = append(r.logLines, line)
	if len(r.logLines) > LogMaxLines {
		r.logLines = r.logLines[len(r.logLines)-LogMaxLines:]
	}
	text := strings.Join(r.logLines, "\n")
	r.logMutex.Unlock()

	fyne.Do(func() {
		r.logEntry.SetText(text)
		r.logEntry.CursorRow = len(r.logLines)
	})
}

func (r *RootUI) onBatchDone(result convert.BatchResult) {
	fyne.Do(func() {
		r.convertBtn.Enable()
		r.stopBtn.Disable()
		r.clearBtn.Enable()
		r.taskList.Refresh()

		key := KeyConversionDone
		if result.Stopped {
			key = KeyConversionStop
		}
		message := fmt.Sprintf("%s (%d ✓ / %d ✗)", r.localization.GetText(key), result.Converted, result.Failed)
		r.sendCompletionNotification(message)
		r.showToastNotification(message)
	})
}

// Row actions

func (r *RootUI) onRevealFile(filePath string) {
	if err := platform.OpenFileInManager(filePath); err != nil {
		dialog.ShowError(fmt.Errorf("%s: %w", r.localization.GetText(KeyErrorOpeningFile), err), r.window)
	}
}

func (r *RootUI) onOpenFile(filePath string) {
	if err := platform.OpenFileWithDefaultApp(filePath); err != nil {
		dialog.ShowError(fmt.Errorf("%s: %w", r.localization.GetText(KeyErrorOpeningFile), err), r.window)
	}
}

// Presets

func (r *RootUI) onPresetSelected(name string) {
	if name == "" {
		return
	}
	p, ok := r.presets.Get(name)
	if !ok {
		return
	}
	r.optionsPanel.ApplyPreset(p)
	r.settings.SetLastPreset(name)
}

func (r *RootUI) onSavePreset() {
	loc := r.localization

	nameEntry := widget.NewEntry()
	nameEntry.SetPlaceHolder(loc.GetText(KeyPresetName))
	if name := r.presetSelect.Selected; name != "" && !r.presets.IsBuiltin(name) {
		nameEntry.SetText(name)
	}

	form := container.NewVBox(widget.NewLabel(loc.GetText(KeyPresetName)), nameEntry)
	d := dialog.NewCustomConfirm(loc.GetText(KeySavePreset), loc.GetText(KeySave), loc.GetText(KeyCancel), form,
		func(confirmed bool) {
			if !confirmed {
				return
			}
			name := strings.TrimSpace(nameEntry.Text)
			if name == "" {
				return
			}
			current := r.optionsPanel.Settings()
			p := preset.FromSettings(&current)
			if err := r.presets.Save(name, p); err != nil {
				dialog.ShowError(err, r.window)
				return
			}
			r.presetSelect.Options = r.presets.Names()
			r.presetSelect.SetSelected(name)
			r.settings.SetLastPreset(name)
			r.showToastNotification(loc.GetText(KeyPresetSaved))
		}, r.window)
	d.Resize(fyne.NewSize(PresetDialogWidth, PresetDialogHeight))
	d.Show()
}

func (r *RootUI) onDeletePreset() {
	name := r.presetSelect.Selected
	if name == "" {
		return
	}
	if err := r.presets.Delete(name); err != nil {
		dialog.ShowError(err, r.window)
		return
	}
	r.presetSelect.Options = r.presets.Names()
	r.presetSelect.ClearSelected()
	r.settings.SetLastPreset("")
}

// Settings and language

func (r *RootUI) onShowSettings() {
	if r.settingsDialog == nil {
		r.settingsDialog = NewSettingsDialog(r.settings, r.localization, r.window, r.onSettingsSaved)
	}
	r.settingsDialog.Show()
}

// onSettingsSaved re-resolves the toolchain paths after the dialog closes
func (r *RootUI) onSettingsSaved() {
	ffmpegPath := r.settings.GetFFmpegPath()
	if ffmpegPath == "" {
		ffmpegPath = ffmpeg.FindFFmpeg()
	}
	r.applyFFmpegPath(ffmpegPath)

	if lang := r.settings.GetLanguage(); lang != r.localization.GetCurrentLanguage() {
		r.onLanguageChange(lang)
	}
}

func (r *RootUI) onLocateFFmpeg() {
	path := platform.PickAnyFile(r.localization.GetText(KeyLocateFFmpeg))
	if path == "" {
		return
	}
	r.settings.SetFFmpegPath(path)
	r.applyFFmpegPath(path)
}

func (r *RootUI) applyFFmpegPath(ffmpegPath string) {
	ffprobePath := r.settings.GetFFprobePath()
	if ffprobePath == "" {
		ffprobePath = ffmpeg.FindFFprobe(ffmpegPath)
	}
	r.toolchain.SetPaths(ffmpegPath, ffprobePath)

	if r.toolchain.HasFFmpeg() {
		r.ffmpegNotice.Hide()
		go r.toolchain.DetectEncoders(context.Background())
	} else {
		r.ffmpegNotice.Show()
	}
}

func (r *RootUI) onLanguageChange(lang string) {
	r.settings.SetLanguage(lang)
	r.localization.SetLanguage(lang)
	r.refreshUITexts()
}

// refreshUITexts re-applies localized texts after a language switch
func (r *RootUI) refreshUITexts() {
	loc := r.localization

	r.window.SetTitle(loc.GetText(KeyAppTitle))

	r.addVideosBtn.SetText(IconVideo + " " + loc.GetText(KeyAddVideos))
	r.addPhotosBtn.SetText(IconPhoto + " " + loc.GetText(KeyAddPhotos))
	r.addFolderBtn.SetText(IconFolder + " " + loc.GetText(KeyAddFolder))
	r.clearBtn.SetText(loc.GetText(KeyClearQueue))
	r.settingsBtn.SetText(IconSettings + " " + loc.GetText(KeySettings))
	r.convertBtn.SetText(IconPlay + " " + loc.GetText(KeyConvert))
	r.stopBtn.SetText(IconStopped + " " + loc.GetText(KeyStop))
	r.savePresetBtn.SetText(loc.GetText(KeySavePreset))
	r.deletePresetBtn.SetText(loc.GetText(KeyDeletePreset))
	r.presetSelect.PlaceHolder = loc.GetText(KeyPreset)
	r.presetSelect.Refresh()
	r.currentLabel.SetText(loc.GetText(KeyCurrentFile))

	// Dialogs are rebuilt on next open so they pick up the new texts
	r.settingsDialog = nil

	r.window.SetMainMenu(r.createMenu())
	r.taskList.Refresh()
}

// Notifications

// sendCompletionNotification sends a system notification about batch completion
func (r *RootUI) sendCompletionNotification(message string) {
	r.app.SendNotification(fyne.NewNotification(r.localization.GetText(KeyAppTitle), message))
}

// showToastNotification shows a transient in-window toast
func (r *RootUI) showToastNotification(message string) {
	r.toastMutex.Lock()
	if r.activeToast != nil {
		r.activeToast.Hide()
		r.activeToast = nil
	}
	r.toastMutex.Unlock()

	label := widget.NewLabel(message)
	label.Wrapping = fyne.TextWrapWord
	label.Alignment = fyne.TextAlignCenter

	content := container.NewVBox(label)
	toast := widget.NewPopUp(content, r.window.Canvas())
	toast.Resize(fyne.NewSize(ToastWidth, ToastHeight))

	canvasSize := r.window.Canvas().Size()
	toast.Move(fyne.NewPos(
		canvasSize.Width-ToastWidth-ToastMargin,
		canvasSize.Height-ToastHeight-ToastMargin,
	))
	toast.Show()

	r.toastMutex.Lock()
	r.activeToast = toast
	r.toastMutex.Unlock()

	go func() {
		time.Sleep(ToastAutoHide)
		fyne.Do(func() {
			r.toastMutex.Lock()
			defer r.toastMutex.Unlock()
			if r.activeToast == toast {
				toast.Hide()
				r.activeToast = nil
			}
		})
	}()
}
