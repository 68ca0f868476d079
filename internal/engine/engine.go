// Package engine provides the execution backends the device hands its source
// text to when it switches into Run mode.
package engine

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrTimeout is returned by a timed engine whose deadline passed first.
var ErrTimeout = errors.New("program timed out")

// ErrCrashed is returned when an engine panics.
var ErrCrashed = errors.New("program failed to execute correctly")

// Value is one entry of an engine's result stack.
type Value = fmt.Stringer

// Text is a Value that is already a display string.
type Text string

func (t Text) String() string { return string(t) }

// Engine executes source text and returns the resulting stack, bottom first.
type Engine interface {
	Run(ctx context.Context, source string) ([]Value, error)
}

// Func adapts an ordinary function to Engine.
type Func func(ctx context.Context, source string) ([]Value, error)

// Run calls f.
func (f Func) Run(ctx context.Context, source string) ([]Value, error) { return f(ctx, source) }

// Render joins the display strings of vs with ", ".
func Render(vs []Value) string {
	parts := make([]string, len(vs))
	for i, v := range vs {
		parts[i] = v.String()
	}
	return strings.Join(parts, ", ")
}

// Texts converts vs to their display strings.
func Texts(vs []Value) []string {
	out := make([]string, len(vs))
	for i, v := range vs {
		out[i] = v.String()
	}
	return out
}

// Timed wraps an Engine with a wall-clock budget.
type Timed struct {
	inner   Engine
	timeout time.Duration
}

// WithTimeout returns an Engine that gives up after d. A zero or negative d
// disables the budget but panics are still recovered.
func WithTimeout(e Engine, d time.Duration) *Timed {
	return &Timed{inner: e, timeout: d}
}

type runResult struct {
	values []Value
	err    error
}

// Run executes the wrapped engine on its own goroutine and waits for it or
// the deadline, whichever comes first.
func (t *Timed) Run(ctx context.Context, source string) ([]Value, error) {
	if t.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, t.timeout)
		defer cancel()
	}

	done := make(chan runResult, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				done <- runResult{err: fmt.Errorf("%w: %v", ErrCrashed, r)}
			}
		}()
		vs, err := t.inner.Run(ctx, source)
		done <- runResult{values: vs, err: err}
	}()

	select {
	case res := <-done:
		if errors.Is(res.err, context.DeadlineExceeded) {
			return nil, ErrTimeout
		}
		return res.values, res.err
	case <-ctx.Done():
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return nil, ErrTimeout
		}
		return nil, ctx.Err()
	}
}
