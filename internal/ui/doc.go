package ui

// Package ui contains the Fyne-based desktop user interface for the application.
// It wires user interactions to the conversion service and renders the queue,
// the option form, presets, progress, and settings. All UI strings are
// localized via Localization.
