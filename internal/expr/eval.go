package expr

import (
	"errors"
	"fmt"
	"strings"

	"github.com/cockroachdb/apd/v3"
)

// DefaultPrecision is the number of significant decimal digits carried by
// intermediate results.
const DefaultPrecision = 34

// Evaluator evaluates canonical expressions with a fixed decimal context.
// It holds no mutable state and is safe for concurrent use.
type Evaluator struct {
	ctx *apd.Context
}

// NewEvaluator returns an Evaluator carrying precision significant digits.
// A zero precision selects DefaultPrecision.
func NewEvaluator(precision uint32) *Evaluator {
	if precision == 0 {
		precision = DefaultPrecision
	}
	ctx := apd.BaseContext.WithPrecision(precision)
	ctx.Rounding = apd.RoundHalfEven
	return &Evaluator{ctx: ctx}
}

// Context returns the decimal context used for arithmetic.
func (e *Evaluator) Context() *apd.Context {
	return e.ctx
}

var defaultEvaluator = NewEvaluator(DefaultPrecision)

// Evaluate evaluates src with DefaultPrecision.
func Evaluate(src string) Result {
	return defaultEvaluator.Evaluate(src)
}

// Evaluate parses and evaluates a canonical expression.
//
// Precedence, high to low: √ and ^ (right-associative, √x^y is √(x^y)),
// unary minus and plus, × and ÷, + and −. A '(' still open at the end of
// input is treated as closed.
func (e *Evaluator) Evaluate(src string) Result {
	if strings.TrimSpace(src) == "" {
		return incomplete(ErrEmpty)
	}
	toks, err := Tokenize(src)
	if err != nil {
		return incomplete(err)
	}

	p := &parser{toks: toks, ctx: e.ctx}
	v, err := p.parseExpr()
	if err == nil {
		if t := p.peek(); t.Type != TokenEOF {
			err = fmt.Errorf("%w %s at %d", ErrUnexpectedToken, t.Type, t.Pos)
		}
	}
	if err != nil {
		return classify(err)
	}
	v.Reduce(v)
	return value(v)
}

func classify(err error) Result {
	if errors.Is(err, ErrDivisionByZero) || errors.Is(err, ErrNegativeSqrt) || errors.Is(err, ErrUndefinedOp) {
		return invalid(err)
	}
	return incomplete(err)
}

type parser struct {
	toks []Token
	pos  int
	ctx  *apd.Context
}

func (p *parser) peek() Token {
	return p.toks[p.pos]
}

func (p *parser) next() Token {
	t := p.toks[p.pos]
	if t.Type != TokenEOF {
		p.pos++
	}
	return t
}

// parseExpr := term (('+' | '-') term)*
func (p *parser) parseExpr() (*apd.Decimal, error) {
	left, err := p.parseTerm()
	if err != nil {
		return nil, err
	}
	for {
		op := p.peek()
		if op.Type != TokenPlus && op.Type != TokenMinus {
			return left, nil
		}
		p.next()
		right, err := p.parseTerm()
		if err != nil {
			return nil, err
		}
		if left, err = p.binary(op, left, right); err != nil {
			return nil, err
		}
	}
}

// parseTerm := unary (('×' | '÷') unary)*
func (p *parser) parseTerm() (*apd.Decimal, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for {
		op := p.peek()
		if op.Type != TokenMul && op.Type != TokenDiv {
			return left, nil
		}
		p.next()
		right, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		if left, err = p.binary(op, left, right); err != nil {
			return nil, err
		}
	}
}

// parseUnary := ('-' | '+') unary | factor
func (p *parser) parseUnary() (*apd.Decimal, error) {
	switch p.peek().Type {
	case TokenMinus:
		p.next()
		v, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return v.Neg(v), nil
	case TokenPlus:
		p.next()
		return p.parseUnary()
	}
	return p.parseFactor()
}

// parseFactor := '√' unary | primary ('^' unary)?
func (p *parser) parseFactor() (*apd.Decimal, error) {
	if p.peek().Type == TokenSqrt {
		p.next()
		v, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return p.sqrt(v)
	}

	base, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	if p.peek().Type != TokenPow {
		return base, nil
	}
	op := p.next()
	exp, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	return p.binary(op, base, exp)
}

// parsePrimary := number | '(' expr (')' | EOF)
func (p *parser) parsePrimary() (*apd.Decimal, error) {
	t := p.next()
	switch t.Type {
	case TokenNumber:
		d, _, err := apd.NewFromString(t.Value)
		if err != nil {
			return nil, fmt.Errorf("%w %q: %v", ErrMalformedNum, t.Value, err)
		}
		return d, nil
	case TokenLParen:
		v, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		switch p.peek().Type {
		case TokenRParen:
			p.next()
		case TokenEOF:
			// Unclosed at end of input.
		default:
			u := p.peek()
			return nil, fmt.Errorf("%w %s at %d", ErrUnexpectedToken, u.Type, u.Pos)
		}
		return v, nil
	case TokenEOF:
		return nil, ErrUnexpectedEnd
	default:
		return nil, fmt.Errorf("%w %s at %d", ErrUnexpectedToken, t.Type, t.Pos)
	}
}

func (p *parser) binary(op Token, x, y *apd.Decimal) (*apd.Decimal, error) {
	d := new(apd.Decimal)
	var err error
	switch op.Type {
	case TokenPlus:
		_, err = p.ctx.Add(d, x, y)
	case TokenMinus:
		_, err = p.ctx.Sub(d, x, y)
	case TokenMul:
		_, err = p.ctx.Mul(d, x, y)
	case TokenDiv:
		if y.IsZero() {
			return nil, ErrDivisionByZero
		}
		_, err = p.ctx.Quo(d, x, y)
	case TokenPow:
		if x.IsZero() && y.Sign() < 0 {
			return nil, ErrDivisionByZero
		}
		_, err = p.ctx.Pow(d, x, y)
	default:
		return nil, fmt.Errorf("%w %s at %d", ErrUnexpectedToken, op.Type, op.Pos)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrUndefinedOp, op.Value, err)
	}
	if d.Form != apd.Finite {
		return nil, fmt.Errorf("%w: %s: non-finite result", ErrUndefinedOp, op.Value)
	}
	return d, nil
}

func (p *parser) sqrt(x *apd.Decimal) (*apd.Decimal, error) {
	if x.Sign() < 0 {
		return nil, ErrNegativeSqrt
	}
	d := new(apd.Decimal)
	if _, err := p.ctx.Sqrt(d, x); err != nil {
		return nil, fmt.Errorf("%w: √: %v", ErrUndefinedOp, err)
	}
	if d.Form != apd.Finite {
		return nil, fmt.Errorf("%w: √: non-finite result", ErrUndefinedOp)
	}
	return d, nil
}
