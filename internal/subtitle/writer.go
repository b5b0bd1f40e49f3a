package subtitle

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Write stores the valid entries, in order, and returns how many were
// written. An empty slice, or one without valid entries, leaves the file
// system untouched. The new content
// replaces the file through a rename, so a failed write never truncates it.
func (f *SRTFile) Write(entries []*Entry, opts WriteOptions) (int, error) {
	if len(entries) == 0 {
		return 0, nil
	}

	content, written := renderSRT(entries, opts.Renumber)
	if written == 0 {
		f.logger.Warnw("No valid entries left, file not rewritten", "path", f.path)
		return 0, nil
	}
	encoded, err := f.codec.NewEncoder().String(content)
	if err != nil {
		return 0, fmt.Errorf("failed to encode subtitles as %s: %w", f.encodingName, err)
	}

	if opts.Backup {
		if _, err := f.Backup(); err != nil {
			return 0, err
		}
	}

	f.logger.Debugw("Writing subtitles", "path", f.path, "entries", written)
	if err := writeFileAtomic(f.path, []byte(encoded)); err != nil {
		return 0, err
	}
	return written, nil
}

// Backup copies the file to <path>.bak unless a backup already exists, so
// the first backup, taken before any rewrite, is never overwritten.
func (f *SRTFile) Backup() (bool, error) {
	backupPath := f.BackupPath()
	if !fileExists(f.path) || fileExists(backupPath) {
		return false, nil
	}

	f.logger.Infow("Creating backup file", "path", backupPath)
	if err := copyFile(f.path, backupPath); err != nil {
		return false, fmt.Errorf("failed to create backup %s: %w", backupPath, err)
	}
	return true, nil
}

// renderSRT skips invalid entries and numbers the rest from 1 when renumber
// is set, keeping original order tokens otherwise.
func renderSRT(entries []*Entry, renumber bool) (string, int) {
	var sb strings.Builder
	counter := 0
	for _, entry := range entries {
		if !entry.Valid() {
			continue
		}
		counter++

		order := ""
		if renumber {
			order = strconv.Itoa(counter)
		}
		sb.WriteString(entry.Render(order))
	}
	return sb.String(), counter
}

func writeFileAtomic(path string, data []byte) error {
	mode := os.FileMode(0644)
	if info, err := os.Stat(path); err == nil {
		mode = info.Mode().Perm()
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer func() {
		_ = os.Remove(tmpPath)
	}()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("failed to write SRT file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write SRT file: %w", err)
	}
	if err := os.Chmod(tmpPath, mode); err != nil {
		return fmt.Errorf("failed to set file mode: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("failed to replace %s: %w", path, err)
	}
	return nil
}

// copyFile streams src to dst, keeping the source permissions.
func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return err
	}

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_EXCL, info.Mode().Perm())
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return err
	}
	return out.Close()
}
