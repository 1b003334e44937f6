// SPDX-License-Identifier: MIT

// Package textpad repeats a short decorative message until a line is long
// enough to fill a background strip.
package textpad

import (
	"errors"
	"unicode/utf16"
)

// MinVisibleLength is the visible line length a padded message must reach
const MinVisibleLength = 60

// NBSP is the separator token written into persisted markup
const NBSP = "&#160;"

// EmptyPolicy decides what an empty message produces
type EmptyPolicy int

const (
	// EmptyRepeat pads the separator on its own
	EmptyRepeat EmptyPolicy = iota
	// EmptyBlank returns an empty string
	EmptyBlank
)

// Options configures a Generator
type Options struct {
	Separator      string      // appended after every copy of the message
	SeparatorWidth int         // length deducted per copy before comparing against MinLength
	StartIndex     int         // loop index when the first copy is already in place
	MinLength      int         // visible length to reach
	Empty          EmptyPolicy // what an empty message produces
}

// EditOptions is used for editor previews: a plain space separator,
// index starting at 0, empty input padded with spaces.
var EditOptions = Options{
	Separator:  " ",
	StartIndex: 0,
	MinLength:  MinVisibleLength,
	Empty:      EmptyRepeat,
}

// SaveOptions is used for persisted markup: a non-breaking space entity
// that does not count toward the visible length, index starting at 1,
// empty input producing nothing.
var SaveOptions = Options{
	Separator:      NBSP,
	SeparatorWidth: len(NBSP),
	StartIndex:     1,
	MinLength:      MinVisibleLength,
	Empty:          EmptyBlank,
}

// Generator pads messages according to its Options
type Generator struct {
	opts Options
}

var (
	editGenerator = Generator{opts: EditOptions}
	saveGenerator = Generator{opts: SaveOptions}
)

// New validates opts and returns a Generator.
// The separator must be wider than the width deducted for it, otherwise
// an empty message would never reach the minimum length.
func New(opts Options) (Generator, error) {
	if opts.Separator == "" {
		return Generator{}, errors.New("separator cannot be empty")
	}
	if opts.SeparatorWidth < 0 {
		return Generator{}, errors.New("separator width cannot be negative")
	}
	if Length(opts.Separator) <= opts.SeparatorWidth && opts.Empty == EmptyRepeat {
		return Generator{}, errors.New("separator width must be smaller than the separator when empty messages are padded")
	}
	if opts.MinLength < 0 {
		return Generator{}, errors.New("minimum length cannot be negative")
	}
	return Generator{opts: opts}, nil
}

// EditGenerator returns the generator used for editor previews
func EditGenerator() Generator {
	return editGenerator
}

// SaveGenerator returns the generator used for persisted markup
func SaveGenerator() Generator {
	return saveGenerator
}

// Edit pads message for an editor preview
func Edit(message string) string {
	return editGenerator.Generate(message)
}

// Save pads message for persisted markup
func Save(message string) string {
	return saveGenerator.Generate(message)
}

// Options returns the generator's configuration
func (g Generator) Options() Options {
	return g.opts
}

// Generate returns message followed by the separator, repeated
// Repetitions(message) times.
func (g Generator) Generate(message string) string {
	n := g.Repetitions(message)
	if n == 0 {
		return ""
	}

	unit := message + g.opts.Separator
	buf := make([]byte, 0, len(unit)*n)
	for i := 0; i < n; i++ {
		buf = append(buf, unit...)
	}
	return string(buf)
}

// Repetitions returns how many copies of message Generate emits.
//
// The first copy is always present. Further copies are added while the
// measured length, less SeparatorWidth per loop index, is below MinLength
// or the loop index is even. The loop therefore always stops on an odd
// index.
func (g Generator) Repetitions(message string) int {
	_, copies := g.walk(message)
	return copies
}

// FinalIndex returns the loop index at which generation stopped, or -1
// when the message produced nothing.
func (g Generator) FinalIndex(message string) int {
	index, _ := g.walk(message)
	return index
}

func (g Generator) walk(message string) (index, copies int) {
	if message == "" && g.opts.Empty == EmptyBlank {
		return -1, 0
	}

	unit := Length(message) + Length(g.opts.Separator)
	// a unit no wider than its deduction never advances the visible length
	if unit <= g.opts.SeparatorWidth {
		unit = g.opts.SeparatorWidth + 1
	}

	length := unit
	index = g.opts.StartIndex
	copies = 1
	for length-g.opts.SeparatorWidth*index < g.opts.MinLength || index%2 == 0 {
		length += unit
		index++
		copies++
	}
	return index, copies
}

// Length measures s in UTF-16 code units, the unit editors count in.
func Length(s string) int {
	n := 0
	for _, r := range s {
		n += utf16.RuneLen(r)
	}
	return n
}
