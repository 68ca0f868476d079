package engine

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

var (
	ErrUnderflow    = errors.New("stack underflow")
	ErrUnknownWord  = errors.New("unknown word")
	ErrDivideByZero = errors.New("division by zero")
	ErrType         = errors.New("type mismatch")
)

// Int is an integer stack value.
type Int int64

func (v Int) String() string { return strconv.FormatInt(int64(v), 10) }

// Float is a floating point stack value.
type Float float64

func (v Float) String() string { return strconv.FormatFloat(float64(v), 'g', -1, 64) }

// Bool is the result of a comparison.
type Bool bool

func (v Bool) String() string { return strconv.FormatBool(bool(v)) }

// Symbol is a quoted word pushed with a leading '.
type Symbol string

func (v Symbol) String() string { return string(v) }

// Str is a string literal.
type Str string

func (v Str) String() string { return strconv.Quote(string(v)) }

// Stack is an in-process reverse Polish calculator. Tokens are separated by
// whitespace and evaluated left to right against a single stack.
type Stack struct{}

// NewStack returns the calculator engine.
func NewStack() *Stack { return &Stack{} }

type machine struct {
	stack []Value
}

type word func(m *machine) error

var words = map[string]word{
	"+":     arith(func(a, b int64) (int64, error) { return a + b, nil }, func(a, b float64) float64 { return a + b }),
	"-":     arith(func(a, b int64) (int64, error) { return a - b, nil }, func(a, b float64) float64 { return a - b }),
	"*":     arith(func(a, b int64) (int64, error) { return a * b, nil }, func(a, b float64) float64 { return a * b }),
	"/":     arith(intDiv, func(a, b float64) float64 { return a / b }),
	"%":     arith(intMod, math.Mod),
	"<":     compare(func(a, b float64) bool { return a < b }),
	">":     compare(func(a, b float64) bool { return a > b }),
	"=":     equal,
	"!":     not,
	"dup":   dup,
	"drop":  drop,
	"swap":  swap,
	"over":  over,
	"clear": clearStack,
}

// Run evaluates source and returns the final stack, bottom first.
func (s *Stack) Run(ctx context.Context, source string) ([]Value, error) {
	m := &machine{}
	for _, tok := range strings.Fields(source) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if err := m.eval(tok); err != nil {
			return nil, err
		}
	}
	return m.stack, nil
}

func (m *machine) eval(tok string) error {
	if w, ok := words[tok]; ok {
		if err := w(m); err != nil {
			return fmt.Errorf("%s: %w", tok, err)
		}
		return nil
	}
	if v, ok := literal(tok); ok {
		m.push(v)
		return nil
	}
	return fmt.Errorf("%w: %s", ErrUnknownWord, tok)
}

func literal(tok string) (Value, bool) {
	if i, err := strconv.ParseInt(tok, 10, 64); err == nil {
		return Int(i), true
	}
	if f, err := strconv.ParseFloat(tok, 64); err == nil {
		return Float(f), true
	}
	switch tok {
	case "true":
		return Bool(true), true
	case "false":
		return Bool(false), true
	}
	if len(tok) > 1 && tok[0] == '\'' {
		return Symbol(tok[1:]), true
	}
	if len(tok) >= 2 && tok[0] == '"' && tok[len(tok)-1] == '"' {
		return Str(tok[1 : len(tok)-1]), true
	}
	return nil, false
}

func (m *machine) push(v Value) { m.stack = append(m.stack, v) }

func (m *machine) pop(n int) ([]Value, error) {
	if len(m.stack) < n {
		return nil, ErrUnderflow
	}
	top := make([]Value, n)
	copy(top, m.stack[len(m.stack)-n:])
	m.stack = m.stack[:len(m.stack)-n]
	return top, nil
}

func intDiv(a, b int64) (int64, error) {
	if b == 0 {
		return 0, ErrDivideByZero
	}
	return a / b, nil
}

func intMod(a, b int64) (int64, error) {
	if b == 0 {
		return 0, ErrDivideByZero
	}
	return a % b, nil
}

func toFloat(v Value) (float64, bool) {
	switch n := v.(type) {
	case Int:
		return float64(n), true
	case Float:
		return float64(n), true
	}
	return 0, false
}

func arith(ints func(a, b int64) (int64, error), floats func(a, b float64) float64) word {
	return func(m *machine) error {
		args, err := m.pop(2)
		if err != nil {
			return err
		}
		a, b := args[0], args[1]

		if ai, ok := a.(Int); ok {
			if bi, ok := b.(Int); ok {
				r, err := ints(int64(ai), int64(bi))
				if err != nil {
					return err
				}
				m.push(Int(r))
				return nil
			}
		}
		af, aok := toFloat(a)
		bf, bok := toFloat(b)
		if !aok || !bok {
			return fmt.Errorf("%w: %s and %s", ErrType, a, b)
		}
		m.push(Float(floats(af, bf)))
		return nil
	}
}

func compare(cmp func(a, b float64) bool) word {
	return func(m *machine) error {
		args, err := m.pop(2)
		if err != nil {
			return err
		}
		af, aok := toFloat(args[0])
		bf, bok := toFloat(args[1])
		if !aok || !bok {
			return fmt.Errorf("%w: %s and %s", ErrType, args[0], args[1])
		}
		m.push(Bool(cmp(af, bf)))
		return nil
	}
}

func equal(m *machine) error {
	args, err := m.pop(2)
	if err != nil {
		return err
	}
	af, aok := toFloat(args[0])
	bf, bok := toFloat(args[1])
	if aok && bok {
		m.push(Bool(af == bf))
		return nil
	}
	m.push(Bool(args[0] == args[1]))
	return nil
}

func not(m *machine) error {
	args, err := m.pop(1)
	if err != nil {
		return err
	}
	b, ok := args[0].(Bool)
	if !ok {
		return fmt.Errorf("%w: %s is not a boolean", ErrType, args[0])
	}
	m.push(!b)
	return nil
}

func dup(m *machine) error {
	args, err := m.pop(1)
	if err != nil {
		return err
	}
	m.push(args[0])
	m.push(args[0])
	return nil
}

func drop(m *machine) error {
	_, err := m.pop(1)
	return err
}

func swap(m *machine) error {
	args, err := m.pop(2)
	if err != nil {
		return err
	}
	m.push(args[1])
	m.push(args[0])
	return nil
}

func over(m *machine) error {
	args, err := m.pop(2)
	if err != nil {
		return err
	}
	m.push(args[0])
	m.push(args[1])
	m.push(args[0])
	return nil
}

func clearStack(m *machine) error {
	m.stack = m.stack[:0]
	return nil
}
