// Command device runs the fixed-width stack calculator display in the
// terminal.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	tea "charm.land/bubbletea/v2"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/Vandesm14/stack-server/internal/config"
	"github.com/Vandesm14/stack-server/internal/editor"
	"github.com/Vandesm14/stack-server/internal/highlight"
	"github.com/Vandesm14/stack-server/internal/tui"
)

func main() {
	configPath := flag.String("config", "", "config file (default ~/.config/stack-server/config.toml)")
	flag.Parse()

	if err := run(*configPath); err != nil {
		fmt.Fprintf(os.Stderr, "device: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath string) error {
	if configPath == "" {
		p, err := config.DefaultPath()
		if err != nil {
			return fmt.Errorf("config path: %w", err)
		}
		configPath = p
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	closeLog, err := setupLogging(cfg.Level())
	if err != nil {
		return err
	}
	defer closeLog()

	e, err := cfg.Engine.NewEngine(nil)
	if err != nil {
		return err
	}
	machine := editor.New(e,
		editor.WithWrapWidth(cfg.Device.WrapWidth),
		editor.WithWindowHeight(cfg.Device.WindowHeight),
		editor.WithRunTimeout(cfg.Engine.Timeout()),
	)

	log.Info().
		Str("engine", cfg.Engine.Kind).
		Int("wrap_width", cfg.Device.WrapWidth).
		Int("window_height", cfg.Device.WindowHeight).
		Msg("device: starting")

	model := tui.New(machine, cfg.Device.InitialText, tui.Options{
		Theme:    cfg.UI.SyntaxTheme,
		Language: highlight.LanguageFor(cfg.UI.Language, cfg.Engine.Kind),
	})
	if _, err := tea.NewProgram(model).Run(); err != nil {
		return fmt.Errorf("running device: %w", err)
	}
	return nil
}

// setupLogging sends the global logger to device.log in the data directory;
// the terminal belongs to the program.
func setupLogging(level zerolog.Level) (func(), error) {
	dir, err := config.EnsureDataDir()
	if err != nil {
		return nil, fmt.Errorf("data dir: %w", err)
	}
	f, err := os.OpenFile(filepath.Join(dir, "device.log"), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, fmt.Errorf("open log: %w", err)
	}
	zerolog.SetGlobalLevel(level)
	log.Logger = zerolog.New(f).With().Timestamp().Logger()
	return func() { _ = f.Close() }, nil
}
