package main

import (
	"context"

	"fyne.io/fyne/v2/app"

	"github.com/mediabatch/media-converter/internal/config"
	"github.com/mediabatch/media-converter/internal/convert"
	"github.com/mediabatch/media-converter/internal/ffmpeg"
	"github.com/mediabatch/media-converter/internal/preset"
	"github.com/mediabatch/media-converter/internal/ui"
)

const appID = "com.mediabatch.media-converter"

func main() {
	fyneApp := app.NewWithID(appID)

	settings := config.NewSettings(fyneApp)
	fyneApp.Settings().SetTheme(ui.NewAppTheme(settings.GetTheme()))

	// Configured paths win over PATH lookup
	ffmpegPath := settings.GetFFmpegPath()
	if ffmpegPath == "" {
		ffmpegPath = ffmpeg.FindFFmpeg()
	}
	ffprobePath := settings.GetFFprobePath()
	if ffprobePath == "" {
		ffprobePath = ffmpeg.FindFFprobe(ffmpegPath)
	}

	toolchain := ffmpeg.NewToolchain(ffmpegPath, ffprobePath)
	if toolchain.HasFFmpeg() {
		go toolchain.DetectEncoders(context.Background())
	}

	presets := preset.NewStore(preset.DefaultStorePath("media-converter"))
	converter := convert.NewService(toolchain)

	root := ui.NewRootUI(fyneApp, settings, toolchain, converter, presets)
	root.ShowAndRun()
}
