package engine

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestRender(t *testing.T) {
	tests := []struct {
		in   []Value
		want string
	}{
		{nil, ""},
		{[]Value{Int(4)}, "4"},
		{[]Value{Int(1), Float(2.5), Bool(true), Symbol("h")}, "1, 2.5, true, h"},
		{[]Value{Text("a b")}, "a b"},
	}
	for _, tt := range tests {
		if got := Render(tt.in); got != tt.want {
			t.Errorf("Render(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestWithTimeoutPassesThrough(t *testing.T) {
	e := WithTimeout(Func(func(ctx context.Context, source string) ([]Value, error) {
		return []Value{Text(source)}, nil
	}), time.Second)

	vs, err := e.Run(context.Background(), "hello")
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if Render(vs) != "hello" {
		t.Errorf("got %q", Render(vs))
	}
}

func TestWithTimeoutExpires(t *testing.T) {
	release := make(chan struct{})
	defer close(release)
	e := WithTimeout(Func(func(ctx context.Context, _ string) ([]Value, error) {
		<-release
		return nil, nil
	}), 20*time.Millisecond)

	_, err := e.Run(context.Background(), "")
	if !errors.Is(err, ErrTimeout) {
		t.Fatalf("err = %v, want ErrTimeout", err)
	}
}

func TestWithTimeoutMapsDeadlineFromEngine(t *testing.T) {
	e := WithTimeout(Func(func(ctx context.Context, _ string) ([]Value, error) {
		<-ctx.Done()
		return nil, ctx.Err()
	}), 10*time.Millisecond)

	_, err := e.Run(context.Background(), "")
	if !errors.Is(err, ErrTimeout) {
		t.Fatalf("err = %v, want ErrTimeout", err)
	}
}

func TestWithTimeoutRecoversPanic(t *testing.T) {
	e := WithTimeout(Func(func(context.Context, string) ([]Value, error) {
		panic("boom")
	}), time.Second)

	_, err := e.Run(context.Background(), "")
	if !errors.Is(err, ErrCrashed) {
		t.Fatalf("err = %v, want ErrCrashed", err)
	}
}

func TestWithTimeoutCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	e := WithTimeout(Func(func(ctx context.Context, _ string) ([]Value, error) {
		<-ctx.Done()
		return nil, ctx.Err()
	}), 0)

	_, err := e.Run(ctx, "")
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
}
