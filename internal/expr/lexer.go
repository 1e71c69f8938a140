package expr

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

// Lexing errors. Both classify the input as incomplete.
var (
	ErrUnexpectedChar = errors.New("unexpected character")
	ErrMalformedNum   = errors.New("malformed number")
)

var operators = map[rune]TokenType{
	'+': TokenPlus,
	'-': TokenMinus,
	'–': TokenMinus,
	'×': TokenMul,
	'*': TokenMul,
	'÷': TokenDiv,
	'/': TokenDiv,
	'^': TokenPow,
	'√': TokenSqrt,
	'(': TokenLParen,
	')': TokenRParen,
}

// Tokenize splits a canonical expression into tokens. The returned slice
// always ends with a TokenEOF. Whitespace is skipped.
func Tokenize(src string) ([]Token, error) {
	var toks []Token
	for i := 0; i < len(src); {
		r, size := utf8.DecodeRuneInString(src[i:])
		switch {
		case r == ' ' || r == '\t':
			i += size
		case isDigit(r) || r == '.':
			lit, end, err := scanNumber(src, i)
			if err != nil {
				return nil, err
			}
			toks = append(toks, Token{Type: TokenNumber, Value: lit, Pos: i})
			i = end
		default:
			typ, ok := operators[r]
			if !ok {
				return nil, fmt.Errorf("%w %q at %d", ErrUnexpectedChar, r, i)
			}
			toks = append(toks, Token{Type: typ, Value: string(r), Pos: i})
			i += size
		}
	}
	return append(toks, Token{Type: TokenEOF, Pos: len(src)}), nil
}

// scanNumber reads a numeric run starting at src[start] and returns it in a
// form apd.NewFromString accepts: a bare leading point gains a zero, a
// trailing point is dropped, and an en dash exponent sign becomes '-'.
func scanNumber(src string, start int) (string, int, error) {
	i := start
	points := 0
	for i < len(src) && (isDigit(rune(src[i])) || src[i] == '.') {
		if src[i] == '.' {
			points++
		}
		i++
	}
	mantissa := src[start:i]
	if points > 1 || mantissa == "." {
		return "", i, fmt.Errorf("%w %q at %d", ErrMalformedNum, mantissa, start)
	}
	if strings.HasPrefix(mantissa, ".") {
		mantissa = "0" + mantissa
	}
	mantissa = strings.TrimSuffix(mantissa, ".")

	if i >= len(src) || src[i] != 'E' {
		return mantissa, i, nil
	}

	i++
	sign := ""
	switch {
	case i < len(src) && (src[i] == '+' || src[i] == '-'):
		sign = src[i : i+1]
		i++
	case strings.HasPrefix(src[i:], "–"):
		sign = "-"
		i += len("–")
	}
	digits := i
	for i < len(src) && isDigit(rune(src[i])) {
		i++
	}
	if digits == i {
		return "", i, fmt.Errorf("%w: exponent without digits at %d", ErrMalformedNum, start)
	}
	return mantissa + "E" + sign + src[digits:i], i, nil
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}
