// Package shell provides an in-process POSIX shell interpreter with command
// blocking, used as a sandboxed execution backend for the device.
package shell

// BlockFunc returns true if the given command args should be blocked.
type BlockFunc func(args []string) bool

// AllowOnly returns a BlockFunc that blocks every external program not in
// cmds. Shell builtins (echo, printf, test, arithmetic) never reach it.
func AllowOnly(cmds []string) BlockFunc {
	allowed := make(map[string]struct{}, len(cmds))
	for _, c := range cmds {
		allowed[c] = struct{}{}
	}
	return func(args []string) bool {
		if len(args) == 0 {
			return false
		}
		_, ok := allowed[args[0]]
		return !ok
	}
}

// DefaultBlockFuncs returns the device policy: builtins only, plus a few
// text utilities that cannot reach the network or the filesystem by
// themselves.
func DefaultBlockFuncs() []BlockFunc {
	return []BlockFunc{
		AllowOnly([]string{"expr", "seq", "factor", "bc"}),
	}
}
