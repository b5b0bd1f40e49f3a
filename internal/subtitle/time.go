package subtitle

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
)

// [,:] before the millis accepts malformed subs that use a colon
var timestampRegex = regexp.MustCompile(`(\d{2}):(\d{2}):(\d{2})[,:](\d{3})`)

const invalidSeconds = -1.0

// Time is a subtitle timestamp in seconds since the start of the media.
// Negative values are invalid and never serialized.
type Time struct {
	seconds float64
}

// InvalidTime is the value a failed parse yields.
var InvalidTime = Time{seconds: invalidSeconds}

func NewTime(seconds float64) Time {
	return Time{seconds: seconds}
}

// ParseTime reads the first HH:MM:SS,mmm (or HH:MM:SS:mmm) timestamp found
// in text. On failure it returns InvalidTime together with a
// *TimeParseError; the error is meant to be reported as a warning.
func ParseTime(text string) (Time, error) {
	matches := timestampRegex.FindStringSubmatch(text)
	if len(matches) != 5 {
		return InvalidTime, &TimeParseError{Text: text}
	}

	var parts [4]float64
	for i, group := range matches[1:] {
		n, err := strconv.Atoi(group)
		if err != nil {
			return InvalidTime, &TimeParseError{Text: text, Err: err}
		}
		parts[i] = float64(n)
	}
	h, m, s, ms := parts[0], parts[1], parts[2], parts[3]

	return Time{seconds: (h*60.0+m)*60.0 + s + ms/1000.0}, nil
}

func (t Time) Seconds() float64 {
	return t.seconds
}

func (t Time) Valid() bool {
	return t.seconds >= 0.0
}

// Rescale multiplies the timestamp by ratio without clamping.
func (t *Time) Rescale(ratio float64) {
	t.seconds *= ratio
}

// Shift adds offset seconds; the result may become negative (invalid).
func (t *Time) Shift(offset float64) {
	t.seconds += offset
}

// String formats the time as HH:MM:SS,mmm. Milliseconds are truncated,
// never rounded. The result is meaningless for an invalid time.
func (t Time) String() string {
	whole := math.Floor(t.seconds)
	millis := int((t.seconds - whole) * 1000.0)

	total := int(whole)
	minutes := total / 60
	seconds := total - minutes*60
	hours := minutes / 60
	minutes -= hours * 60

	return fmt.Sprintf("%02d:%02d:%02d,%03d", hours, minutes, seconds, millis)
}
