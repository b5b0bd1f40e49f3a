package subtitle

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

const (
	rangeSeparator = " --> "
	maxLineSize    = 1024 * 1024
)

// blockAccumulator collects the non-empty lines of one SRT block and turns
// them into an entry when the block ends. A blank line flushes a pending
// block; end of input flushes whatever is left.
type blockAccumulator struct {
	path      string
	buffer    []string
	startLine int
	entries   []*Entry
	warn      func(error)
}

func (a *blockAccumulator) accumulate(lineNum int, line string) error {
	if line == "" {
		if len(a.buffer) == 0 {
			return nil
		}
		return a.flush()
	}

	if len(a.buffer) == 0 {
		a.startLine = lineNum
	}
	a.buffer = append(a.buffer, line)
	return nil
}

func (a *blockAccumulator) finish() error {
	if len(a.buffer) == 0 {
		return nil
	}
	return a.flush()
}

// flush parses the buffer: order token, "start --> end", then text lines.
func (a *blockAccumulator) flush() error {
	if len(a.buffer) < 2 {
		return a.blockError(errMissingRange)
	}

	timeRange := strings.Split(a.buffer[1], rangeSeparator)
	if len(timeRange) != 2 {
		return a.blockError(fmt.Errorf("%w: %q", errBadRange, a.buffer[1]))
	}

	entry, warnings := NewEntry(
		a.buffer[0],
		timeRange[0],
		timeRange[1],
		strings.Join(a.buffer[2:], "\n"),
	)
	for _, w := range warnings {
		a.warn(w)
	}

	a.entries = append(a.entries, entry)
	a.buffer = a.buffer[:0]
	return nil
}

func (a *blockAccumulator) blockError(err error) error {
	block := make([]string, len(a.buffer))
	copy(block, a.buffer)
	return &BlockParseError{
		Path:  a.path,
		Line:  a.startLine,
		Block: block,
		Err:   err,
	}
}

// parseSRT reads decoded SRT text. Any block error abandons the whole
// read: no entries are returned alongside an error.
func parseSRT(r io.Reader, path string, warn func(error)) ([]*Entry, error) {
	acc := &blockAccumulator{path: path, warn: warn}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := scanner.Text()
		if lineNum == 1 {
			line = strings.TrimPrefix(line, "\ufeff")
		}

		if err := acc.accumulate(lineNum, strings.TrimSpace(line)); err != nil {
			return nil, err
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading SRT file: %w", err)
	}

	if err := acc.finish(); err != nil {
		return nil, err
	}
	return acc.entries, nil
}
