package pipeline

import "github.com/mgpai22/rsub/internal/logging"

// Reporter receives per-file progress from a Runner.
type Reporter interface {
	FileRead(path string, entries int)
	FileWritten(path string, entries int)
	FileFailed(path string, err error)
	Warn(path string, err error)
}

// LogReporter reports through the structured logger.
type LogReporter struct {
	Logger *logging.Logger
}

func (r LogReporter) FileRead(path string, entries int) {
	r.Logger.Infow("Subtitles read", "path", path, "entries", entries)
}

func (r LogReporter) FileWritten(path string, entries int) {
	r.Logger.Infow("Subtitles written", "path", path, "entries", entries)
}

func (r LogReporter) FileFailed(path string, err error) {
	r.Logger.Errorw("Failed to process subtitle file", "path", path, "error", err)
}

func (r LogReporter) Warn(path string, err error) {
	r.Logger.Warnw("Subtitle warning", "path", path, "error", err)
}

type nopReporter struct{}

func (nopReporter) FileRead(string, int) {}
func (nopReporter) FileWritten(string, int) {}
func (nopReporter) FileFailed(string, error) {}
func (nopReporter) Warn(string, error) {}
