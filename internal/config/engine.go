package config

import (
	"fmt"
	"net/http"

	"github.com/Vandesm14/stack-server/internal/engine"
)

// NewEngine returns the execution engine selected by [engine].kind. The
// result is not time limited; callers wrap it with engine.WithTimeout. A nil
// client uses http.DefaultClient for the remote engine.
func (e EngineConfig) NewEngine(client *http.Client) (engine.Engine, error) {
	switch e.Kind {
	case EngineStack:
		return engine.NewStack(), nil
	case EngineShell:
		return engine.NewShell(e.ShellDir), nil
	case EngineRemote:
		return engine.NewRemote(e.Endpoint, client), nil
	default:
		return nil, fmt.Errorf("unknown engine kind %q", e.Kind)
	}
}
