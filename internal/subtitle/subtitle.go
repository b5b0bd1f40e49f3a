package subtitle

import (
	"fmt"
	"strings"
)

// represents single subtitle entry
type Entry struct {
	// order token as found in the source, kept verbatim
	Order string
	Start Time
	End   Time
	Text  string
}

// options for writing subtitle entries back to disk
type WriteOptions struct {
	// copy the file to <path>.bak before the first write
	Backup bool
	// replace order tokens with 1-based positions among written entries
	Renumber bool
}

// NewEntry builds an entry from the raw parts of one SRT block. Timestamp
// problems do not fail construction: the affected time is left invalid
// and the parse errors are returned as warnings.
func NewEntry(order, start, end, text string) (*Entry, []error) {
	var warnings []error

	startTime, err := ParseTime(start)
	if err != nil {
		warnings = append(warnings, err)
	}
	endTime, err := ParseTime(end)
	if err != nil {
		warnings = append(warnings, err)
	}

	return &Entry{
		Order: order,
		Start: startTime,
		End:   endTime,
		Text:  StripItalics(text),
	}, warnings
}

// StripItalics removes literal <i> and </i> tokens, which many players do
// not support. It is not a tag parser.
func StripItalics(text string) string {
	text = strings.ReplaceAll(text, "<i>", "")
	return strings.ReplaceAll(text, "</i>", "")
}

func (e *Entry) Rescale(ratio float64) {
	e.Start.Rescale(ratio)
	e.End.Rescale(ratio)
}

func (e *Entry) Shift(offset float64) {
	e.Start.Shift(offset)
	e.End.Shift(offset)
}

func (e *Entry) Valid() bool {
	return e.Start.Valid() && e.End.Valid()
}

// Render returns the SRT block for the entry. An empty order renders the
// original order token. Callers must check Valid first.
func (e *Entry) Render(order string) string {
	if order == "" {
		order = e.Order
	}
	return fmt.Sprintf("%s\n%s --> %s\n%s\n\n", order, e.Start, e.End, e.Text)
}
