// Package logging builds the zerolog loggers used by the unitto command.
package logging

import (
	"fmt"
	"io"

	"github.com/rs/zerolog"
)

// ComponentKey is the field naming the part of the program that logged.
const ComponentKey = "component"

// ParseLevel maps a configured level name to a zerolog level. An empty name
// selects warn.
func ParseLevel(name string) (zerolog.Level, error) {
	if name == "" {
		return zerolog.WarnLevel, nil
	}
	lvl, err := zerolog.ParseLevel(name)
	if err != nil {
		return zerolog.NoLevel, fmt.Errorf("parsing log level %q: %w", name, err)
	}
	return lvl, nil
}

// New returns a JSON logger writing to w at the named level, with a
// timestamp on every event.
func New(w io.Writer, level string) (zerolog.Logger, error) {
	lvl, err := ParseLevel(level)
	if err != nil {
		return zerolog.Nop(), err
	}
	return zerolog.New(w).Level(lvl).With().Timestamp().Logger(), nil
}

// NewConsole is New with human-readable output for a terminal.
func NewConsole(w io.Writer, level string) (zerolog.Logger, error) {
	return New(zerolog.ConsoleWriter{Out: w, NoColor: true}, level)
}

// Component returns a child logger tagged with a component name.
func Component(l zerolog.Logger, name string) zerolog.Logger {
	return l.With().Str(ComponentKey, name).Logger()
}
