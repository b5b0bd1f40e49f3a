package subtitle

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"golang.org/x/text/encoding/charmap"
)

func writeTestFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}
}

func openTestFile(t *testing.T, path string, opts ...Option) *SRTFile {
	t.Helper()
	file, err := NewSRTFile(path, opts...)
	if err != nil {
		t.Fatalf("NewSRTFile failed: %v", err)
	}
	return file
}

func orders(entries []*Entry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Order
	}
	return out
}

func TestReadSRTFile(t *testing.T) {
	content := `1
00:00:01,000 --> 00:00:04,000
Hello, world!

2
00:00:05,500 --> 00:00:08,250
This is a <i>test</i>.
With multiple lines.

7
00:00:10:000 --> 00:00:12,500
Final subtitle.
`
	srtPath := filepath.Join(t.TempDir(), "test.srt")
	writeTestFile(t, srtPath, content)

	entries, err := openTestFile(t, srtPath).Read(false)
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}

	if diff := cmp.Diff([]string{"1", "2", "7"}, orders(entries)); diff != "" {
		t.Fatalf("unexpected orders (-want +got):\n%s", diff)
	}

	if entries[0].Start.Seconds() != 1 || entries[0].End.Seconds() != 4 {
		t.Errorf(
			"entry 0: expected 1s-4s, got %v-%v",
			entries[0].Start.Seconds(),
			entries[0].End.Seconds(),
		)
	}

	expectedText := "This is a test.\nWith multiple lines."
	if entries[1].Text != expectedText {
		t.Errorf("entry 1: expected %q, got %q", expectedText, entries[1].Text)
	}

	if entries[2].Start.Seconds() != 10 {
		t.Errorf("entry 2: expected start 10s, got %v", entries[2].Start.Seconds())
	}
}

func TestReadToleratesLayoutNoise(t *testing.T) {
	// CRLF endings, padded lines, repeated blank lines and no final newline
	content := "\r\n\r\n  1  \r\n00:00:01,000 --> 00:00:02,000\r\nfirst\r\n\r\n \t \r\n\r\n" +
		"2\r\n00:00:03,000 --> 00:00:04,000\r\n  second  "
	srtPath := filepath.Join(t.TempDir(), "noisy.srt")
	writeTestFile(t, srtPath, content)

	entries, err := openTestFile(t, srtPath).Read(false)
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}

	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].Order != "1" || entries[0].Text != "first" {
		t.Errorf("entry 0: unexpected %+v", entries[0])
	}
	if entries[1].Text != "second" {
		t.Errorf("entry 1: expected %q, got %q", "second", entries[1].Text)
	}
}

func TestReadStripsUTF8BOM(t *testing.T) {
	content := "\ufeff1\n00:00:01,000 --> 00:00:02,000\nhi\n"
	srtPath := filepath.Join(t.TempDir(), "bom.srt")
	writeTestFile(t, srtPath, content)

	entries, err := openTestFile(t, srtPath, WithEncoding("UTF-8")).Read(false)
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if len(entries) != 1 || entries[0].Order != "1" {
		t.Fatalf("unexpected entries: %+v", entries)
	}
}

func TestReadBlockWithoutText(t *testing.T) {
	content := "1\n00:00:01,000 --> 00:00:02,000\n\n2\n00:00:03,000 --> 00:00:04,000\nx\n"
	srtPath := filepath.Join(t.TempDir(), "empty_text.srt")
	writeTestFile(t, srtPath, content)

	entries, err := openTestFile(t, srtPath).Read(false)
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].Text != "" {
		t.Errorf("expected empty text, got %q", entries[0].Text)
	}
}

func TestReadMalformedBlockDiscardsFile(t *testing.T) {
	tests := []struct {
		name    string
		content string
		line    int
		wantErr error
	}{
		{
			name:    "missing separator",
			content: "1\n00:00:01,000 --> 00:00:02,000\nok\n\n2\n00:00:03,000 00:00:04,000\nbroken\n",
			line:    5,
			wantErr: errBadRange,
		},
		{
			name:    "missing range line",
			content: "1\n00:00:01,000 --> 00:00:02,000\nok\n\norphan\n",
			line:    5,
			wantErr: errMissingRange,
		},
		{
			name:    "too many separators",
			content: "1\n00:00:01,000 --> 00:00:02,000 --> 00:00:03,000\ntext\n",
			line:    1,
			wantErr: errBadRange,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srtPath := filepath.Join(t.TempDir(), "bad.srt")
			writeTestFile(t, srtPath, tt.content)

			entries, err := openTestFile(t, srtPath).Read(false)
			if entries != nil {
				t.Errorf("expected no entries, got %d", len(entries))
			}

			var blockErr *BlockParseError
			if !errors.As(err, &blockErr) {
				t.Fatalf("expected *BlockParseError, got %v", err)
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("expected %v, got %v", tt.wantErr, err)
			}
			if blockErr.Line != tt.line {
				t.Errorf("expected block at line %d, got %d", tt.line, blockErr.Line)
			}
			if blockErr.Path != srtPath {
				t.Errorf("expected path %s, got %s", srtPath, blockErr.Path)
			}
			if len(blockErr.Block) == 0 {
				t.Error("expected block contents in error")
			}
		})
	}
}

func TestReadBadTimestampWarns(t *testing.T) {
	content := "1\n00:00:xx,000 --> 00:00:02,000\nfirst\n\n2\n00:00:03,000 --> 00:00:04,000\nsecond\n"
	srtPath := filepath.Join(t.TempDir(), "warn.srt")
	writeTestFile(t, srtPath, content)

	var warnings []error
	file := openTestFile(t, srtPath, WithWarningHandler(func(err error) {
		warnings = append(warnings, err)
	}))

	entries, err := file.Read(false)
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].Valid() {
		t.Error("expected entry with bad timestamp to be invalid")
	}
	if !entries[1].Valid() {
		t.Error("expected second entry to be valid")
	}

	if len(warnings) != 1 {
		t.Fatalf("expected 1 warning, got %d", len(warnings))
	}
	var parseErr *TimeParseError
	if !errors.As(warnings[0], &parseErr) {
		t.Fatalf("expected *TimeParseError, got %T", warnings[0])
	}
	if !strings.Contains(parseErr.Text, "xx") {
		t.Errorf("expected offending text in warning, got %q", parseErr.Text)
	}
}

func TestReadMissingFile(t *testing.T) {
	file := openTestFile(t, filepath.Join(t.TempDir(), "missing.srt"))
	_, err := file.Read(false)
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected not-exist error, got %v", err)
	}
}

func TestReadUsesBackupWhenRequested(t *testing.T) {
	srtPath := filepath.Join(t.TempDir(), "movie.srt")
	writeTestFile(t, srtPath, "9\n00:00:01,000 --> 00:00:02,000\ncurrent\n")

	file := openTestFile(t, srtPath)

	// no backup yet: falls back to the primary file
	entries, err := file.Read(true)
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if entries[0].Text != "current" {
		t.Errorf("expected primary file to be read, got %q", entries[0].Text)
	}

	writeTestFile(t, file.BackupPath(), "1\n00:00:01,000 --> 00:00:02,000\noriginal\n")

	entries, err = file.Read(true)
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if entries[0].Text != "original" {
		t.Errorf("expected backup to be read, got %q", entries[0].Text)
	}

	entries, err = file.Read(false)
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if entries[0].Text != "current" {
		t.Errorf("expected primary file to be read, got %q", entries[0].Text)
	}
}

func TestReadDecodesLegacyEncoding(t *testing.T) {
	text := "Vőlegény és menyasszony"
	content := "1\n00:00:01,000 --> 00:00:02,000\n" + text + "\n"
	encoded, err := charmap.ISO8859_2.NewEncoder().String(content)
	if err != nil {
		t.Fatalf("failed to encode fixture: %v", err)
	}

	srtPath := filepath.Join(t.TempDir(), "hu.srt")
	writeTestFile(t, srtPath, encoded)

	entries, err := openTestFile(t, srtPath).Read(false)
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if entries[0].Text != text {
		t.Errorf("expected %q, got %q", text, entries[0].Text)
	}
}
