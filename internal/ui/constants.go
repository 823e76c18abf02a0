package ui

import "time"

// UI-wide constants to avoid magic numbers/strings scattered across the codebase.

// Icons (emojis/symbols)
const (
	IconSettings = "⚙"
	IconPlay     = "▶"
	IconVideo    = "🎬"
	IconPhoto    = "🖼"
	IconFolder   = "📁"
	IconClose    = "×"
	IconError    = "❌"
	IconPending  = "⏳"
	IconStopped  = "⏹"
)

// Text fragments
const (
	MiddleDotSeparator  = " · "
	DashPlaceholder     = "—"
	ProgressLabelFormat = "%d%%"
)

// Layout sizing (TaskRow / lists)
const (
	StatusLabelWidth  float32 = 96
	SpeedLabelWidth   float32 = 110
	PercentLabelWidth float32 = 48

	RowMinWidth  float32 = 380
	RowMinHeight float32 = 56
)

// Window and dialog sizing
const (
	WindowDefaultWidth   float32 = 960
	WindowDefaultHeight  float32 = 640
	SettingsDialogWidth  float32 = 520
	SettingsDialogHeight float32 = 380
	PresetDialogWidth    float32 = 380
	PresetDialogHeight   float32 = 140
)

// Log pane behavior
const (
	LogMaxLines = 500
)

// Toast notification sizing and behavior
const (
	ToastWidth    float32 = 300
	ToastHeight   float32 = 120
	ToastMargin   float32 = 20
	ToastAutoHide         = 5 * time.Second
)

// Progress calculation constants
const (
	MaxProgressPercent  = 100
	MinProgressPercent  = 1
	RoundingCoefficient = 0.5
)
