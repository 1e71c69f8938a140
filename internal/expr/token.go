// Package expr tokenizes and evaluates the arithmetic expressions typed into
// the converter. Input may be incomplete at any keystroke; evaluation never
// panics and reports unfinished or undefined input as result states.
package expr

// TokenType represents the type of a lexical token.
type TokenType int

const (
	TokenNumber TokenType = iota // decimal literal, optionally with exponent
	TokenPlus                    // +
	TokenMinus                   // - or –
	TokenMul                     // × or *
	TokenDiv                     // ÷ or /
	TokenPow                     // ^
	TokenSqrt                    // √
	TokenLParen                  // (
	TokenRParen                  // )
	TokenEOF                     // end of expression
)

// Token represents a single lexical token.
type Token struct {
	Type  TokenType
	Value string // raw text; for numbers the literal in apd syntax
	Pos   int    // byte offset in source
}

// String returns a debug-friendly representation of the token type.
func (t TokenType) String() string {
	switch t {
	case TokenNumber:
		return "NUMBER"
	case TokenPlus:
		return "PLUS"
	case TokenMinus:
		return "MINUS"
	case TokenMul:
		return "MUL"
	case TokenDiv:
		return "DIV"
	case TokenPow:
		return "POW"
	case TokenSqrt:
		return "SQRT"
	case TokenLParen:
		return "LPAREN"
	case TokenRParen:
		return "RPAREN"
	case TokenEOF:
		return "EOF"
	default:
		return "UNKNOWN"
	}
}

