package shell

import (
	"context"
	"strings"
	"testing"
)

func TestExecArithmetic(t *testing.T) {
	s := New(t.TempDir(), DefaultBlockFuncs())
	out, errOut, err := s.Exec(context.Background(), "echo $((2 + 2))\necho done")
	if err != nil {
		t.Fatalf("Exec: %v (stderr %q)", err, errOut)
	}
	if out != "4\ndone\n" {
		t.Errorf("stdout = %q", out)
	}
}

func TestExecBlocked(t *testing.T) {
	s := New(t.TempDir(), DefaultBlockFuncs())
	_, _, err := s.Exec(context.Background(), "curl http://example.com")
	if err == nil || !strings.Contains(err.Error(), "command blocked") {
		t.Fatalf("expected blocked error, got %v", err)
	}
}

func TestExecIsolatedRuns(t *testing.T) {
	s := New(t.TempDir(), nil)
	if _, _, err := s.Exec(context.Background(), "X=1; export X"); err != nil {
		t.Fatalf("Exec: %v", err)
	}
	out, _, err := s.Exec(context.Background(), `echo "x=$X"`)
	if err != nil {
		t.Fatalf("Exec: %v", err)
	}
	if out != "x=\n" {
		t.Errorf("environment leaked between runs: %q", out)
	}
}

func TestExecParseError(t *testing.T) {
	s := New(t.TempDir(), nil)
	if _, _, err := s.Exec(context.Background(), "echo $(("); err == nil {
		t.Fatal("expected parse error")
	}
}
