package ffmpeg

// Package ffmpeg wraps the external ffmpeg/ffprobe binaries: locating them,
// probing media, selecting encoders, constructing command-line argument lists
// for video/photo/merge conversions, and parsing -progress key=value output.
// No encoding logic lives here; the package only builds and reads the CLI
// contract of the external tool.
