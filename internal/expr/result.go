package expr

import (
	"errors"

	"github.com/cockroachdb/apd/v3"
)

// Kind classifies the outcome of an evaluation.
type Kind int

const (
	// KindValue means the expression produced a finite number.
	KindValue Kind = iota

	// KindIncomplete means the expression is unfinished or malformed. The
	// two are not distinguished: the caller knows whether the user is still
	// typing.
	KindIncomplete

	// KindInvalid means the expression is complete but mathematically
	// undefined, e.g. division by zero.
	KindInvalid
)

// String returns the lower-case name of the kind.
func (k Kind) String() string {
	switch k {
	case KindValue:
		return "value"
	case KindIncomplete:
		return "incomplete"
	case KindInvalid:
		return "invalid"
	default:
		return "unknown"
	}
}

// Reasons attached to non-value results.
var (
	ErrEmpty           = errors.New("empty expression")
	ErrUnexpectedToken = errors.New("unexpected token")
	ErrUnexpectedEnd   = errors.New("unexpected end of expression")
	ErrDivisionByZero  = errors.New("division by zero")
	ErrNegativeSqrt    = errors.New("square root of a negative number")
	ErrUndefinedOp     = errors.New("undefined operation")
)

// Result is the tagged outcome of Evaluate. Value is set only for
// KindValue; Err describes why the result is incomplete or invalid.
type Result struct {
	Kind  Kind
	Value *apd.Decimal
	Err   error
}

// OK reports whether the result holds a value.
func (r Result) OK() bool {
	return r.Kind == KindValue
}

func value(d *apd.Decimal) Result {
	return Result{Kind: KindValue, Value: d}
}

func incomplete(err error) Result {
	return Result{Kind: KindIncomplete, Err: err}
}

func invalid(err error) Result {
	return Result{Kind: KindInvalid, Err: err}
}
