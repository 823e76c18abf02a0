package convert

// Package convert runs the batch conversion queue: probing inputs, building
// ffmpeg command lines, running one ffmpeg process at a time, and reporting
// per-file and overall progress back to the UI through callbacks.
