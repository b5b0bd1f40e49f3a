package subtitle

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrUnknownEncoding = errors.New("unknown text encoding")

	errMissingRange = errors.New("missing time range line")
	errBadRange     = errors.New("malformed time range")
)

// TimeParseError reports a timestamp that could not be read. It is
// recoverable: the affected time becomes invalid and reading continues.
type TimeParseError struct {
	Text string
	Err  error
}

func (e *TimeParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("could not read time entry %q: %v", e.Text, e.Err)
	}
	return fmt.Sprintf("could not read time entry %q", e.Text)
}

func (e *TimeParseError) Unwrap() error {
	return e.Err
}

// BlockParseError reports a structurally malformed subtitle block. The
// whole file read is abandoned when one occurs.
type BlockParseError struct {
	Path  string
	Line  int
	Block []string
	Err   error
}

func (e *BlockParseError) Error() string {
	return fmt.Sprintf(
		"%s: invalid subtitle block at line %d [%s]: %v",
		e.Path,
		e.Line,
		strings.Join(e.Block, " | "),
		e.Err,
	)
}

func (e *BlockParseError) Unwrap() error {
	return e.Err
}
