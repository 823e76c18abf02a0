package ui

import (
	"fmt"
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"github.com/mediabatch/media-converter/internal/model"
)

// File size formatting constants
const (
	FileSizeUnit  = 1024
	FileSizeUnits = "KMGTPE"
)

// formatFileSize formats file size in bytes to human readable format
func formatFileSize(bytes int64) string {
	if bytes < FileSizeUnit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := int64(FileSizeUnit), 0
	for n := bytes / FileSizeUnit; n >= FileSizeUnit; n /= FileSizeUnit {
		div *= FileSizeUnit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(bytes)/float64(div), FileSizeUnits[exp])
}

// TaskRow represents a compact queue row widget
type TaskRow struct {
	widget.BaseWidget

	task         *model.ConvertTask
	localization *Localization

	titleLabel    *widget.Label
	infoLabel     *widget.Label
	statusLabel   *widget.Label
	progressLabel *widget.Label
	speedEtaLabel *widget.Label

	revealBtn *widget.Button
	openBtn   *widget.Button
	removeBtn *widget.Button

	onReveal func(filePath string)
	onOpen   func(filePath string)
	onRemove func(taskID string)
}

// NewTaskRow creates a new queue row widget
func NewTaskRow(task *model.ConvertTask, localization *Localization) *TaskRow {
	if task == nil {
		task = &model.ConvertTask{ID: "placeholder", Status: model.TaskStatusPending}
	}

	tr := &TaskRow{
		task:         task,
		localization: localization,
	}
	tr.ExtendBaseWidget(tr)
	tr.createUI()
	tr.updateFromTask()
	return tr
}

// SetCallbacks sets the action callbacks
func (tr *TaskRow) SetCallbacks(
	onReveal func(filePath string),
	onOpen func(filePath string),
	onRemove func(taskID string),
) {
	tr.onReveal = onReveal
	tr.onOpen = onOpen
	tr.onRemove = onRemove
}

// UpdateTask updates the row with new task data
func (tr *TaskRow) UpdateTask(task *model.ConvertTask) {
	if task == nil {
		return
	}
	tr.task = task
	tr.updateFromTask()
	tr.Refresh()
}

// createUI creates the UI components
func (tr *TaskRow) createUI() {
	tr.titleLabel = widget.NewLabel("")
	tr.titleLabel.TextStyle = fyne.TextStyle{Bold: true}
	tr.titleLabel.Truncation = fyne.TextTruncateEllipsis
	tr.titleLabel.Alignment = fyne.TextAlignLeading

	tr.infoLabel = widget.NewLabel("")
	tr.infoLabel.Alignment = fyne.TextAlignLeading

	tr.statusLabel = widget.NewLabel("")
	tr.statusLabel.Alignment = fyne.TextAlignTrailing
	tr.progressLabel = widget.NewLabel("")
	tr.progressLabel.Alignment = fyne.TextAlignTrailing
	tr.speedEtaLabel = widget.NewLabel("")
	tr.speedEtaLabel.Alignment = fyne.TextAlignTrailing
	tr.speedEtaLabel.TextStyle = fyne.TextStyle{Monospace: true}

	tr.revealBtn = widget.NewButton(tr.localization.GetText(KeyReveal), func() {
		if tr.onReveal != nil && tr.task.OutputPath != "" {
			tr.onReveal(tr.task.OutputPath)
		}
	})
	tr.revealBtn.Importance = widget.MediumImportance

	tr.openBtn = widget.NewButton(tr.localization.GetText(KeyOpen), func() {
		if tr.onOpen != nil && tr.task.OutputPath != "" {
			tr.onOpen(tr.task.OutputPath)
		}
	})
	tr.openBtn.Importance = widget.MediumImportance

	tr.removeBtn = widget.NewButton(IconClose, func() {
		if tr.onRemove != nil {
			tr.onRemove(tr.task.ID)
		}
	})
	tr.removeBtn.Importance = widget.LowImportance
}

// updateFromTask updates UI components based on task state
func (tr *TaskRow) updateFromTask() {
	if tr.task == nil {
		return
	}

	kindIcon := IconVideo
	if tr.task.Kind == model.MediaKindPhoto {
		kindIcon = IconPhoto
	}
	tr.titleLabel.SetText(kindIcon + " " + tr.task.GetDisplayTitle())

	// Source details from the probe, when available
	infoText := ""
	if info := tr.task.Info; info != nil {
		if info.Width > 0 && info.Height > 0 {
			infoText = fmt.Sprintf("%dx%d", info.Width, info.Height)
		}
		if info.VideoCodec != "" {
			if infoText != "" {
				infoText += MiddleDotSeparator
			}
			infoText += info.VideoCodec
		}
		if info.SizeBytes > 0 {
			if infoText != "" {
				infoText += MiddleDotSeparator
			}
			infoText += formatFileSize(info.SizeBytes)
		}
	}
	tr.infoLabel.SetText(infoText)

	switch tr.task.Status {
	case model.TaskStatusError:
		tr.statusLabel.Importance = widget.DangerImportance
		tr.statusLabel.SetText(IconError + " " + tr.task.Status.String())
	case model.TaskStatusCompleted:
		tr.statusLabel.Importance = widget.SuccessImportance
		tr.statusLabel.SetText(tr.task.Status.String())
	case model.TaskStatusConverting, model.TaskStatusStarting:
		tr.statusLabel.Importance = widget.HighImportance
		tr.statusLabel.SetText(IconPlay + " " + tr.task.Status.String())
	case model.TaskStatusStopped:
		tr.statusLabel.Importance = widget.MediumImportance
		tr.statusLabel.SetText(IconStopped + " " + tr.task.Status.String())
	case model.TaskStatusPending:
		tr.statusLabel.Importance = widget.MediumImportance
		tr.statusLabel.SetText(IconPending + " " + tr.task.Status.String())
	default:
		tr.statusLabel.Importance = widget.MediumImportance
		tr.statusLabel.SetText(tr.task.Status.String())
	}

	effectivePercent := tr.task.Percent
	if tr.task.Status == model.TaskStatusCompleted {
		effectivePercent = MaxProgressPercent
	} else if effectivePercent <= 0 && tr.task.Progress > 0 {
		effectivePercent = int(tr.task.Progress*MaxProgressPercent + RoundingCoefficient)
		if effectivePercent == 0 {
			effectivePercent = MinProgressPercent
		}
	}
	if effectivePercent < 0 {
		effectivePercent = 0
	}
	if effectivePercent > MaxProgressPercent {
		effectivePercent = MaxProgressPercent
	}
	if tr.task.Status == model.TaskStatusCompleted {
		tr.progressLabel.SetText("")
	} else {
		tr.progressLabel.SetText(fmt.Sprintf(ProgressLabelFormat, effectivePercent))
	}

	speedEtaText := ""
	switch tr.task.Status {
	case model.TaskStatusConverting:
		if tr.task.Speed != "" {
			speedEtaText = tr.task.Speed
		}
		if tr.task.ETASec > 0 {
			if speedEtaText != "" {
				speedEtaText += MiddleDotSeparator
			}
			speedEtaText += tr.task.GetETAString()
		}
		if speedEtaText == "" {
			speedEtaText = DashPlaceholder
		}
	case model.TaskStatusError:
		speedEtaText = tr.task.LastError
	}
	tr.speedEtaLabel.SetText(speedEtaText)

	tr.updateButtons()
}

// updateButtons updates button states based on task status
func (tr *TaskRow) updateButtons() {
	if tr.task.Status == model.TaskStatusCompleted && tr.task.OutputPath != "" {
		tr.revealBtn.Enable()
		tr.openBtn.Enable()
	} else {
		tr.revealBtn.Disable()
		tr.openBtn.Disable()
	}

	if tr.task.Status.IsActive() {
		tr.removeBtn.Disable()
	} else {
		tr.removeBtn.Enable()
	}
}

// CreateRenderer creates the widget renderer
func (tr *TaskRow) CreateRenderer() fyne.WidgetRenderer {
	return &taskRowRenderer{taskRow: tr}
}

// taskRowRenderer renders the task row widget
type taskRowRenderer struct {
	taskRow *TaskRow
	layout  *fyne.Container
}

// Layout arranges the components
func (r *taskRowRenderer) Layout(size fyne.Size) {
	if r.layout == nil {
		r.createLayout()
	}
	if size.Width < RowMinWidth {
		size.Width = RowMinWidth
	}
	if size.Height < RowMinHeight {
		size.Height = RowMinHeight
	}
	r.layout.Resize(size)
}

// MinSize returns the minimum size
func (r *taskRowRenderer) MinSize() fyne.Size {
	if r.layout != nil {
		return r.layout.MinSize()
	}
	return fyne.NewSize(RowMinWidth, RowMinHeight)
}

// Refresh refreshes the renderer
func (r *taskRowRenderer) Refresh() {
	if r.layout == nil {
		r.createLayout()
	}
	r.layout.Refresh()
}

// Objects returns the container objects
func (r *taskRowRenderer) Objects() []fyne.CanvasObject {
	if r.layout == nil {
		r.createLayout()
	}
	return []fyne.CanvasObject{r.layout}
}

// Destroy cleans up the renderer
func (r *taskRowRenderer) Destroy() {}

// createLayout creates the main layout
func (r *taskRowRenderer) createLayout() {
	tr := r.taskRow

	// Fix width using a transparent rectangle underneath
	fixedWidth := func(w float32, obj fyne.CanvasObject) fyne.CanvasObject {
		spacer := canvas.NewRectangle(color.RGBA{0, 0, 0, 0})
		spacer.SetMinSize(fyne.NewSize(w, obj.MinSize().Height))
		return container.NewStack(spacer, obj)
	}

	leftSide := container.NewVBox(tr.titleLabel, tr.infoLabel)

	rightSide := container.NewVBox(
		fixedWidth(StatusLabelWidth, tr.statusLabel),
		container.NewHBox(
			fixedWidth(SpeedLabelWidth, tr.speedEtaLabel),
			fixedWidth(PercentLabelWidth, tr.progressLabel),
		),
	)

	actionRow := container.NewHBox(tr.revealBtn, tr.openBtn, tr.removeBtn)
	rightCluster := container.NewBorder(nil, nil, nil, actionRow, rightSide)
	mainContent := container.NewBorder(nil, nil, nil, rightCluster, leftSide)

	r.layout = container.NewVBox(mainContent, widget.NewSeparator())
}
