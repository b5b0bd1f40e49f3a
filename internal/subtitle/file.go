package subtitle

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"go.uber.org/zap"
	"golang.org/x/text/encoding"
	"golang.org/x/text/transform"
)

const BackupExtension = ".bak"

// SRTFile reads and writes one SubRip file in a fixed text encoding.
type SRTFile struct {
	path         string
	encodingName string
	codec        encoding.Encoding
	logger       *zap.SugaredLogger
	onWarning    func(error)
}

type Option func(*SRTFile)

// WithEncoding sets the text encoding used for both reading and writing.
func WithEncoding(name string) Option {
	return func(f *SRTFile) {
		f.encodingName = name
	}
}

func WithLogger(logger *zap.SugaredLogger) Option {
	return func(f *SRTFile) {
		if logger != nil {
			f.logger = logger
		}
	}
}

// WithWarningHandler receives recoverable problems such as unreadable
// timestamps. By default they are logged.
func WithWarningHandler(fn func(error)) Option {
	return func(f *SRTFile) {
		f.onWarning = fn
	}
}

func NewSRTFile(path string, opts ...Option) (*SRTFile, error) {
	f := &SRTFile{
		path:         path,
		encodingName: DefaultEncoding,
		logger:       zap.NewNop().Sugar(),
	}
	for _, opt := range opts {
		opt(f)
	}

	codec, err := ResolveEncoding(f.encodingName)
	if err != nil {
		return nil, err
	}
	f.codec = codec

	if f.onWarning == nil {
		f.onWarning = func(err error) {
			f.logger.Warnw("Subtitle warning", "file", f.path, "error", err)
		}
	}
	return f, nil
}

func (f *SRTFile) Path() string {
	return f.path
}

func (f *SRTFile) BackupPath() string {
	return f.path + BackupExtension
}

func (f *SRTFile) Encoding() string {
	return f.encodingName
}

// InputPath is the file Read would use: the backup when useBackup is set
// and a backup exists, the primary path otherwise.
func (f *SRTFile) InputPath(useBackup bool) string {
	if useBackup && fileExists(f.BackupPath()) {
		return f.BackupPath()
	}
	return f.path
}

// Read parses all entries of the file. A malformed block discards
// everything read so far and returns a *BlockParseError.
func (f *SRTFile) Read(useBackup bool) ([]*Entry, error) {
	inPath := f.InputPath(useBackup)
	f.logger.Debugw("Reading subtitles", "path", inPath, "encoding", f.encodingName)

	file, err := os.Open(inPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open SRT file: %w", err)
	}
	defer func() {
		_ = file.Close()
	}()

	reader := transform.NewReader(file, f.codec.NewDecoder())
	entries, err := parseSRT(reader, inPath, f.onWarning)
	if err != nil {
		return nil, err
	}

	f.logger.Debugw("Subtitles read", "path", inPath, "entries", len(entries))
	return entries, nil
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil || !errors.Is(err, fs.ErrNotExist)
}
