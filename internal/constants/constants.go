// Package constants holds the reference device's fixed dimensions and the
// defaults every other package falls back to.
package constants

import "time"

const (
	// WrapWidth is the number of cells on a display line before a forced wrap.
	WrapWidth = 15

	// WindowHeight is the number of display lines visible at once.
	WindowHeight = 7

	// InitialText is the program the device boots with.
	InitialText = "2 2 +\nh"

	// RunTimeout bounds a single program execution.
	RunTimeout = 5 * time.Second

	// ServerAddr is where the execution backend listens by default.
	ServerAddr = ":7777"

	// SyntaxTheme is the Chroma style the device colours cells with.
	SyntaxTheme = "github-dark"
)
