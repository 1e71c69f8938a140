package calc

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/mesh-intelligence/unitto/internal/convert"
	"github.com/mesh-intelligence/unitto/internal/expr"
	"github.com/mesh-intelligence/unitto/internal/format"
	"github.com/mesh-intelligence/unitto/pkg/types"
)

// DefaultPrecision is the number of fractional digits shown in the output.
const DefaultPrecision = types.DefaultPrecision

// Session is the state behind one converter screen. It is meant to be
// driven from a single goroutine.
type Session struct {
	formatter *format.Formatter
	evaluator *expr.Evaluator
	converter *convert.Converter
	precision int

	input    string // canonical
	from, to types.Unit
}

// Option configures a Session.
type Option func(*Session)

// WithEvaluator sets the evaluator used for the input expression.
func WithEvaluator(e *expr.Evaluator) Option {
	return func(s *Session) { s.evaluator = e }
}

// WithConverter sets the converter applied to the evaluated input.
func WithConverter(c *convert.Converter) Option {
	return func(s *Session) { s.converter = c }
}

// WithPrecision sets the number of fractional digits of the output.
func WithPrecision(p int) Option {
	return func(s *Session) {
		if p >= 0 {
			s.precision = p
		}
	}
}

// NewSession returns an empty Session converting from one unit to another.
// The formatter is shared so that separator changes apply immediately.
func NewSession(f *format.Formatter, from, to types.Unit, opts ...Option) *Session {
	s := &Session{
		formatter: f,
		evaluator: expr.NewEvaluator(expr.DefaultPrecision),
		converter: convert.New(),
		precision: DefaultPrecision,
		from:      from,
		to:        to,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// From returns the unit converted from.
func (s *Session) From() types.Unit { return s.from }

// To returns the unit converted to.
func (s *Session) To() types.Unit { return s.to }

// SetFrom changes the unit converted from.
func (s *Session) SetFrom(u types.Unit) { s.from = u }

// SetTo changes the unit converted to.
func (s *Session) SetTo(u types.Unit) { s.to = u }

// Swap exchanges the from and to units.
func (s *Session) Swap() {
	s.from, s.to = s.to, s.from
}

// RawInput returns the canonical input expression.
func (s *Session) RawInput() string { return s.input }

// SetInput replaces the input. text may be canonical or formatted with the
// current separator.
func (s *Session) SetInput(text string) {
	s.input = s.formatter.Unformat(text)
}

// Clear empties the input.
func (s *Session) Clear() { s.input = "" }

// Delete removes the last symbol of the input.
func (s *Session) Delete() {
	_, size := utf8.DecodeLastRuneInString(s.input)
	s.input = s.input[:len(s.input)-size]
}

// AddSymbol appends a key to the input if it keeps the expression
// well-formed so far, and reports whether it was accepted. Digits, the
// fractional point, and the operators listed as Key constants are known;
// ASCII aliases ("-", "*", "/") are accepted too.
func (s *Session) AddSymbol(key string) bool {
	if alias, ok := keyAliases[key]; ok {
		key = alias
	}
	last, _ := utf8.DecodeLastRuneInString(s.input)
	empty := s.input == ""

	switch {
	case len(key) == 1 && isDigitRune(rune(key[0])):
		return s.addDigit(key, last, empty)
	case key == KeyDot:
		return s.addDot(last, empty)
	case key == KeyMinus:
		return s.addMinus(last, empty)
	case key == KeyPlus, key == KeyMultiply, key == KeyDivide, key == KeyPower:
		return s.addBinary(key)
	case key == KeySqrt, key == KeyLeftBracket:
		if !empty && (isDigitRune(last) || last == '.' || string(last) == KeyRightBracket) {
			return false
		}
		s.input += key
		return true
	case key == KeyRightBracket:
		if s.openBrackets() == 0 || empty {
			return false
		}
		if !isDigitRune(last) && last != '.' && string(last) != KeyRightBracket {
			return false
		}
		s.input += key
		return true
	}
	return false
}

func (s *Session) addDigit(key string, last rune, empty bool) bool {
	if !empty && string(last) == KeyRightBracket {
		return false
	}
	// A lone leading zero is replaced rather than extended.
	if s.currentRun() == "0" {
		s.input = s.input[:len(s.input)-1]
	}
	s.input += key
	return true
}

func (s *Session) addDot(last rune, empty bool) bool {
	if strings.Contains(s.currentRun(), KeyDot) {
		return false
	}
	if !empty && string(last) == KeyRightBracket {
		return false
	}
	if empty || !isDigitRune(last) {
		s.input += "0"
	}
	s.input += KeyDot
	return true
}

// addMinus appends a minus sign. After '+' or another minus it replaces the
// operator; after ×, ÷, ^, '(' or '√', and at the start, it is unary.
func (s *Session) addMinus(last rune, empty bool) bool {
	if !empty && (string(last) == KeyPlus || string(last) == KeyMinus) {
		s.Delete()
	}
	s.input += KeyMinus
	return true
}

// addBinary appends a binary operator, replacing any operators already
// trailing the input. It is rejected where no left operand exists.
func (s *Session) addBinary(key string) bool {
	trimmed := strings.TrimRightFunc(s.input, isBinaryKey)
	if trimmed == "" {
		return false
	}
	last, _ := utf8.DecodeLastRuneInString(trimmed)
	if string(last) == KeyLeftBracket || string(last) == KeySqrt {
		return false
	}
	s.input = trimmed + key
	return true
}

// currentRun returns the numeric run at the end of the input.
func (s *Session) currentRun() string {
	i := len(s.input)
	for i > 0 && (isDigitRune(rune(s.input[i-1])) || s.input[i-1] == '.') {
		i--
	}
	return s.input[i:]
}

func (s *Session) openBrackets() int {
	return strings.Count(s.input, KeyLeftBracket) - strings.Count(s.input, KeyRightBracket)
}

// Input returns the input formatted for display.
func (s *Session) Input() string {
	return s.formatter.FormatCanonical(s.input)
}

// Evaluate evaluates the input expression.
func (s *Session) Evaluate() expr.Result {
	return s.evaluator.Evaluate(s.input)
}

// Output returns the converted value formatted for display. Incomplete
// input yields an empty string and no error; invalid input yields
// ErrInvalidInput. Conversion errors, such as a missing currency rate, are
// returned unchanged.
func (s *Session) Output() (string, error) {
	res := s.Evaluate()
	switch res.Kind {
	case expr.KindIncomplete:
		return "", nil
	case expr.KindInvalid:
		return "", fmt.Errorf("%w: %v", types.ErrInvalidInput, res.Err)
	}

	out, err := s.converter.Convert(res.Value, s.from, s.to)
	if err != nil {
		return "", err
	}
	return s.formatter.FormatDecimal(out, s.precision), nil
}
