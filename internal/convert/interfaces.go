package convert

import (
	"github.com/mediabatch/media-converter/internal/model"
)

// Converter defines the interface for the batch conversion service.
type Converter interface {
	SetTaskCallback(func(*model.ConvertTask))
	SetBatchCallback(func(BatchProgress))
	SetLogCallback(func(level, message string))
	SetDoneCallback(func(result BatchResult))
	Start(paths []string, settings model.ConversionSettings, outputDir string) error
	Stop()
	IsRunning() bool
	Tasks() []*model.ConvertTask
}
