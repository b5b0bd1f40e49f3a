package transform

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/mgpai22/rsub/internal/subtitle"
)

// frame rates the fps directive converts between
const (
	FPS25 = 25.0
	FPS23 = 23.976
)

// operation bound to a command
type Kind int

const (
	KindInert Kind = iota
	KindRescale
	KindShift
)

func (k Kind) String() string {
	switch k {
	case KindRescale:
		return "rescale"
	case KindShift:
		return "shift"
	default:
		return "inert"
	}
}

// Command is one time transformation applied to every entry of a file.
// The zero value is inert.
type Command struct {
	Kind  Kind
	Param float64
}

// NewFPS converts between 25 and 23.976 fps. "23" converts 25 -> 23.976,
// "25" converts 23.976 -> 25. Any other argument yields an inert command.
func NewFPS(arg string) Command {
	switch strings.TrimSpace(arg) {
	case "23":
		return Command{Kind: KindRescale, Param: FPS25 / FPS23}
	case "25":
		return Command{Kind: KindRescale, Param: FPS23 / FPS25}
	default:
		return Command{}
	}
}

func NewShift(seconds float64) Command {
	if math.IsNaN(seconds) || math.IsInf(seconds, 0) {
		return Command{}
	}
	return Command{Kind: KindShift, Param: seconds}
}

// ParseShift reads a signed number of seconds; an empty or non-numeric
// argument yields an inert command.
func ParseShift(arg string) Command {
	arg = strings.TrimSpace(arg)
	if arg == "" {
		return Command{}
	}
	seconds, err := strconv.ParseFloat(arg, 64)
	if err != nil {
		return Command{}
	}
	return NewShift(seconds)
}

// ParseDirective compiles "fps=23", "fps=25" or "shift=<seconds>"; a colon
// works as separator too. Unknown directives are inert.
func ParseDirective(directive string) Command {
	directive = strings.TrimSpace(directive)
	name, arg, ok := strings.Cut(directive, "=")
	if !ok {
		name, arg, ok = strings.Cut(directive, ":")
	}
	if !ok {
		return Command{}
	}

	switch strings.ToLower(strings.TrimSpace(name)) {
	case "fps":
		return NewFPS(arg)
	case "shift":
		return ParseShift(arg)
	default:
		return Command{}
	}
}

func (c Command) Valid() bool {
	return c.Kind != KindInert
}

// Apply runs the bound operation on entry; inert commands do nothing.
func (c Command) Apply(entry *subtitle.Entry) {
	switch c.Kind {
	case KindRescale:
		entry.Rescale(c.Param)
	case KindShift:
		entry.Shift(c.Param)
	}
}

func (c Command) String() string {
	switch c.Kind {
	case KindRescale:
		return fmt.Sprintf("rescale(x%.6f)", c.Param)
	case KindShift:
		return fmt.Sprintf("shift(%+gs)", c.Param)
	default:
		return "inert"
	}
}

// Compile drops inert commands and keeps the rest in their given order.
func Compile(cmds ...Command) []Command {
	active := make([]Command, 0, len(cmds))
	for _, cmd := range cmds {
		if cmd.Valid() {
			active = append(active, cmd)
		}
	}
	return active
}

// ApplyAll applies every command, in order, to every entry.
func ApplyAll(cmds []Command, entries []*subtitle.Entry) {
	for _, entry := range entries {
		for _, cmd := range cmds {
			cmd.Apply(entry)
		}
	}
}
