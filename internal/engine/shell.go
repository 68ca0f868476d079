package engine

import (
	"context"
	"errors"
	"strings"

	"github.com/Vandesm14/stack-server/internal/shell"
)

// Shell runs the source as a POSIX shell script. Each non-empty line written
// to stdout becomes one result value.
type Shell struct {
	sh *shell.Shell
}

// NewShell returns a shell engine running in dir under the device policy.
func NewShell(dir string) *Shell {
	return &Shell{sh: shell.New(dir, shell.DefaultBlockFuncs())}
}

// Run executes source. Output on stderr or a failing exit status is reported
// as an error carrying the stderr text when there is any.
func (s *Shell) Run(ctx context.Context, source string) ([]Value, error) {
	stdout, stderr, err := s.sh.Exec(ctx, source)
	msg := strings.TrimSpace(stderr)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
			return nil, err
		}
		if msg != "" {
			return nil, errors.New(msg)
		}
		return nil, err
	}
	if msg != "" {
		return nil, errors.New(msg)
	}

	var out []Value
	for _, line := range strings.Split(stdout, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		out = append(out, Text(line))
	}
	return out, nil
}
