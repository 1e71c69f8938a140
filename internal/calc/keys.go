// Package calc holds the live input session of the converter: the
// expression being typed, the selected unit pair, and the rendering of both
// the input and the converted output.
package calc

// Canonical keys accepted by Session.AddSymbol.
const (
	KeyDot          = "."
	KeyPlus         = "+"
	KeyMinus        = "–"
	KeyMultiply     = "×"
	KeyDivide       = "÷"
	KeyPower        = "^"
	KeySqrt         = "√"
	KeyLeftBracket  = "("
	KeyRightBracket = ")"
)

// keyAliases maps ASCII spellings to canonical keys.
var keyAliases = map[string]string{
	"-": KeyMinus,
	"*": KeyMultiply,
	"/": KeyDivide,
}

func isBinaryKey(r rune) bool {
	switch string(r) {
	case KeyPlus, KeyMinus, KeyMultiply, KeyDivide, KeyPower:
		return true
	}
	return false
}

func isDigitRune(r rune) bool {
	return r >= '0' && r <= '9'
}
