package shell

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"strings"

	"mvdan.cc/sh/v3/expand"
	"mvdan.cc/sh/v3/interp"
	"mvdan.cc/sh/v3/syntax"
)

// Shell runs scripts in-process. Every Exec starts from the same directory
// and environment; nothing carries over between runs.
type Shell struct {
	dir        string
	env        []string
	blockFuncs []BlockFunc
}

// New creates a Shell that runs in dir with the given block functions. An
// empty dir means the process working directory.
func New(dir string, blockers []BlockFunc) *Shell {
	if dir == "" {
		dir, _ = os.Getwd()
	}
	return &Shell{
		dir:        dir,
		env:        []string{"PATH=" + os.Getenv("PATH"), "LC_ALL=C"},
		blockFuncs: blockers,
	}
}

// Exec runs script synchronously, returning stdout, stderr, and any error.
func (s *Shell) Exec(ctx context.Context, script string) (stdout, stderr string, err error) {
	var out, errOut bytes.Buffer
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("command execution panic: %v", r)
		}
		stdout, stderr = out.String(), errOut.String()
	}()

	parsed, err := syntax.NewParser().Parse(strings.NewReader(script), "")
	if err != nil {
		return "", "", fmt.Errorf("could not parse script: %w", err)
	}

	runner, err := interp.New(
		interp.StdIO(nil, &out, &errOut),
		interp.Interactive(false),
		interp.Env(expand.ListEnviron(s.env...)),
		interp.Dir(s.dir),
		interp.ExecHandlers(s.blockHandler()),
	)
	if err != nil {
		return "", "", fmt.Errorf("could not create interpreter: %w", err)
	}

	return "", "", runner.Run(ctx, parsed)
}

func (s *Shell) blockHandler() func(next interp.ExecHandlerFunc) interp.ExecHandlerFunc {
	return func(next interp.ExecHandlerFunc) interp.ExecHandlerFunc {
		return func(ctx context.Context, args []string) error {
			if len(args) == 0 {
				return next(ctx, args)
			}
			for _, bf := range s.blockFuncs {
				if bf(args) {
					return fmt.Errorf("command blocked: %q", args[0])
				}
			}
			return next(ctx, args)
		}
	}
}
