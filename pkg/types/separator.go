// Separator setting for digit grouping.
package types

import (
	"errors"
	"strings"
)

// Separator selects the grouping character and, coupled to it, the
// fractional-point character used for display.
type Separator int

// Separator values. The zero value is SeparatorSpaces.
const (
	SeparatorSpaces Separator = iota
	SeparatorComma
	SeparatorPeriod
)

// Separator names as they appear in config.yaml and on the command line.
const (
	SeparatorNameSpaces = "spaces"
	SeparatorNameComma  = "comma"
	SeparatorNamePeriod = "period"
)

// ErrSeparatorUnknown is returned by ParseSeparator for unrecognized names.
var ErrSeparatorUnknown = errors.New("unknown separator")

// ParseSeparator converts a separator name into a Separator. Matching is
// case-insensitive.
func ParseSeparator(name string) (Separator, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case SeparatorNameSpaces:
		return SeparatorSpaces, nil
	case SeparatorNameComma:
		return SeparatorComma, nil
	case SeparatorNamePeriod:
		return SeparatorPeriod, nil
	default:
		return SeparatorSpaces, ErrSeparatorUnknown
	}
}

// String returns the config name of the separator.
func (s Separator) String() string {
	switch s {
	case SeparatorComma:
		return SeparatorNameComma
	case SeparatorPeriod:
		return SeparatorNamePeriod
	default:
		return SeparatorNameSpaces
	}
}

// Grouping returns the character inserted between groups of three digits.
func (s Separator) Grouping() string {
	switch s {
	case SeparatorComma:
		return ","
	case SeparatorPeriod:
		return "."
	default:
		return " "
	}
}

// Fractional returns the character that separates integer and fractional
// digits. It is ',' for SeparatorPeriod and '.' otherwise, so it never
// equals Grouping.
func (s Separator) Fractional() string {
	if s == SeparatorPeriod {
		return ","
	}
	return "."
}
