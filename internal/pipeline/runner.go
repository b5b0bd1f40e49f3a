package pipeline

import (
	"context"
	"errors"
	"fmt"

	"github.com/mgpai22/rsub/internal/logging"
	"github.com/mgpai22/rsub/internal/subtitle"
	"github.com/mgpai22/rsub/internal/transform"
)

var (
	// no valid transformation was requested, no file was touched
	ErrNothingToDo = errors.New("nothing to change")
	// the file had no entries, it was left as is
	ErrNoEntries = errors.New("no subtitle entries read")
)

// options for one batch run
type Options struct {
	CreateBackup     bool
	UseBackupAsInput bool
	Renumber         bool
	Encoding         string
}

func DefaultOptions() Options {
	return Options{
		CreateBackup: true,
		Renumber:     true,
		Encoding:     subtitle.DefaultEncoding,
	}
}

// Runner reads, retimes and writes subtitle files one at a time.
type Runner struct {
	opts     Options
	reporter Reporter
	logger   *logging.Logger
}

// NewRunner accepts nil for reporter and logger.
func NewRunner(opts Options, reporter Reporter, logger *logging.Logger) *Runner {
	if reporter == nil {
		reporter = nopReporter{}
	}
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Runner{opts: opts, reporter: reporter, logger: logger}
}

// Run applies cmds to every file in paths. Inert commands are dropped
// first; when none remain ErrNothingToDo is returned and no file is
// touched. A failing file is reported and recorded in the summary, the
// batch carries on with the next one.
func (r *Runner) Run(
	ctx context.Context,
	paths []string,
	cmds []transform.Command,
) (*Summary, error) {
	active := transform.Compile(cmds...)
	if len(active) == 0 {
		return nil, ErrNothingToDo
	}
	if _, err := subtitle.ResolveEncoding(r.opts.Encoding); err != nil {
		return nil, err
	}

	summary := &Summary{Commands: active}
	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return summary, err
		}
		summary.add(r.processFile(path, active))
	}
	return summary, nil
}

func (r *Runner) processFile(path string, cmds []transform.Command) FileResult {
	result := FileResult{Path: path}

	file, err := subtitle.NewSRTFile(
		path,
		subtitle.WithEncoding(r.opts.Encoding),
		subtitle.WithLogger(r.logger.SugaredLogger),
		subtitle.WithWarningHandler(func(err error) {
			r.reporter.Warn(path, err)
		}),
	)
	if err != nil {
		return r.fail(result, err)
	}

	result.Source = file.InputPath(r.opts.UseBackupAsInput)
	entries, err := file.Read(r.opts.UseBackupAsInput)
	if err != nil {
		return r.fail(result, fmt.Errorf("read %s: %w", result.Source, err))
	}
	result.Read = len(entries)
	r.reporter.FileRead(result.Source, result.Read)

	if len(entries) == 0 {
		r.reporter.Warn(path, ErrNoEntries)
		return result
	}

	transform.ApplyAll(cmds, entries)
	r.logger.Debugw("Applied commands", "path", path, "commands", len(cmds))

	written, err := file.Write(entries, subtitle.WriteOptions{
		Backup:   r.opts.CreateBackup,
		Renumber: r.opts.Renumber,
	})
	if err != nil {
		return r.fail(result, fmt.Errorf("write %s: %w", path, err))
	}
	result.Written = written
	r.reporter.FileWritten(path, written)
	return result
}

func (r *Runner) fail(result FileResult, err error) FileResult {
	result.Err = err
	r.reporter.FileFailed(result.Path, err)
	return result
}
