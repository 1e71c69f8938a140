package format

import (
	"regexp"
	"strings"
	"sync"

	"github.com/mesh-intelligence/unitto/pkg/types"
)

// canonicalPoint is the fractional point of canonical strings.
const canonicalPoint = '.'

// groupedRun matches an integer already grouped with '.' under the period
// setting, e.g. "1.234" or "12.345.678".
var groupedRun = regexp.MustCompile(`^\d{1,3}(\.\d{3})+$`)

// Formatter groups digits according to a Separator setting that may change
// at any time. The zero value uses SeparatorSpaces. Safe for concurrent use.
type Formatter struct {
	mu  sync.RWMutex
	sep types.Separator
}

// New returns a Formatter using sep.
func New(sep types.Separator) *Formatter {
	return &Formatter{sep: sep}
}

// SetSeparator changes the setting used by subsequent calls.
func (f *Formatter) SetSeparator(sep types.Separator) {
	f.mu.Lock()
	f.sep = sep
	f.mu.Unlock()
}

// Separator returns the current setting.
func (f *Formatter) Separator() types.Separator {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.sep
}

// Fractional returns the fractional-point character of the current setting.
func (f *Formatter) Fractional() string {
	return f.Separator().Fractional()
}

// Grouping returns the grouping character of the current setting.
func (f *Formatter) Grouping() string {
	return f.Separator().Grouping()
}

// Format returns raw with every numeric run grouped. raw may be canonical or
// the output of a previous Format call with the same setting;
// Format(Format(s)) == Format(s).
func (f *Formatter) Format(raw string) string {
	sep := f.Separator()
	return formatCanonical(normalize(raw, sep), sep)
}

// FormatCanonical groups a canonical string: '.' is the fractional point
// and no grouping characters are present.
func (f *Formatter) FormatCanonical(s string) string {
	return formatCanonical(s, f.Separator())
}

// Unformat converts a formatted string back to canonical form.
func (f *Formatter) Unformat(display string) string {
	return normalize(display, f.Separator())
}

// normalize strips grouping characters and restores the canonical
// fractional point.
func normalize(s string, sep types.Separator) string {
	switch sep {
	case types.SeparatorSpaces, types.SeparatorComma:
		return strings.ReplaceAll(s, sep.Grouping(), "")
	}

	// Period: '.' is both the canonical point and the display grouping
	// character, so each run is inspected on its own.
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); {
		if !isPeriodRunByte(s[i]) {
			b.WriteByte(s[i])
			i++
			continue
		}
		j := i
		for j < len(s) && isPeriodRunByte(s[j]) {
			j++
		}
		mantissa := j < len(s) && s[j] == 'E'
		b.WriteString(normalizePeriodRun(s[i:j], mantissa))
		i = j
	}
	return b.String()
}

// normalizePeriodRun converts one run of digits, '.' and ',' formatted
// under the period setting to canonical form. A run without ',' is display
// form only when its dots sit exactly at group boundaries; a single dot
// after a leading zero ("0.125") and exponent mantissas stay canonical.
func normalizePeriodRun(run string, mantissa bool) string {
	if strings.Contains(run, ",") {
		run = strings.ReplaceAll(run, ".", "")
		return strings.ReplaceAll(run, ",", ".")
	}
	if mantissa || !groupedRun.MatchString(run) {
		return run
	}
	if strings.Count(run, ".") == 1 && run[0] == '0' {
		return run
	}
	return strings.ReplaceAll(run, ".", "")
}

func formatCanonical(s string, sep types.Separator) string {
	if s == "" {
		return s
	}
	grouping, fractional := sep.Grouping(), sep.Fractional()

	var b strings.Builder
	b.Grow(len(s) + len(s)/3)
	for i := 0; i < len(s); {
		if !isRunByte(s[i]) {
			b.WriteByte(s[i])
			i++
			continue
		}
		j := i
		for j < len(s) && isRunByte(s[j]) {
			j++
		}
		run := s[i:j]

		if j < len(s) && s[j] == 'E' {
			// Exponent notation is never grouped.
			b.WriteString(strings.ReplaceAll(run, string(canonicalPoint), fractional))
			k := exponentEnd(s, j)
			b.WriteString(s[j:k])
			i = k
			continue
		}

		b.WriteString(groupRun(run, grouping, fractional))
		i = j
	}
	return b.String()
}

// exponentEnd returns the index just past the exponent marker starting at
// s[start], its optional sign, and its digits.
func exponentEnd(s string, start int) int {
	k := start + 1
	switch {
	case k < len(s) && (s[k] == '+' || s[k] == '-'):
		k++
	case strings.HasPrefix(s[k:], "–"):
		k += len("–")
	}
	for k < len(s) && isDigit(s[k]) {
		k++
	}
	return k
}

// groupRun groups the integer part of a numeric run and keeps the
// fractional suffix, including a lone trailing point.
func groupRun(run, grouping, fractional string) string {
	idx := strings.IndexByte(run, canonicalPoint)
	if idx < 0 {
		return groupDigits(run, grouping)
	}
	return groupDigits(run[:idx], grouping) + fractional + run[idx+1:]
}

// groupDigits inserts grouping between clusters of three digits counted
// from the right.
func groupDigits(digits, grouping string) string {
	if len(digits) <= 3 {
		return digits
	}
	head := len(digits) % 3
	if head == 0 {
		head = 3
	}

	var b strings.Builder
	b.Grow(len(digits) + len(digits)/3*len(grouping))
	b.WriteString(digits[:head])
	for i := head; i < len(digits); i += 3 {
		b.WriteString(grouping)
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isRunByte(c byte) bool {
	return isDigit(c) || c == canonicalPoint
}

func isPeriodRunByte(c byte) bool {
	return isRunByte(c) || c == ','
}
