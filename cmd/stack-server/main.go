// Command stack-server runs programs submitted over HTTP.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/Vandesm14/stack-server/internal/config"
	"github.com/Vandesm14/stack-server/internal/engine"
	"github.com/Vandesm14/stack-server/internal/server"
	"github.com/Vandesm14/stack-server/internal/store"
)

func main() {
	configPath := flag.String("config", "", "config file (default ~/.config/stack-server/config.toml)")
	addr := flag.String("addr", "", "listen address (overrides server.addr)")
	flag.Parse()

	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}).
		With().Timestamp().Logger()

	if err := run(*configPath, *addr); err != nil {
		log.Error().Err(err).Msg("stack-server: exiting")
		os.Exit(1)
	}
}

func run(configPath, addr string) error {
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
	zerolog.SetGlobalLevel(cfg.Level())
	if addr == "" {
		addr = cfg.Server.Addr
	}

	if cfg.Engine.Kind == config.EngineRemote {
		return fmt.Errorf("engine.kind=%q would forward to itself; use stack or shell", cfg.Engine.Kind)
	}
	e, err := cfg.Engine.NewEngine(nil)
	if err != nil {
		return err
	}

	cache, err := openCache(cfg.Server, cfg.Engine)
	if err != nil {
		return err
	}
	defer cache.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := server.New(engine.WithTimeout(e, cfg.Engine.Timeout()), cache, cfg.Server.MaxConns)
	log.Info().
		Str("addr", addr).
		Str("engine", cfg.Engine.Kind).
		Dur("timeout", cfg.Engine.Timeout()).
		Msg("stack-server: starting")
	return srv.ListenAndServe(ctx, addr)
}

// openCache opens the run cache, defaulting to cache.db in the data
// directory, namespaced by engine kind. A zero TTL or an engine whose
// output is not reproducible disables caching.
func openCache(sc config.ServerConfig, ec config.EngineConfig) (*store.Cache, error) {
	if sc.CacheTTL() <= 0 || !ec.Cacheable() {
		log.Info().Str("engine", ec.Kind).Msg("stack-server: run cache disabled")
		return nil, nil
	}
	path := sc.CachePath
	if path == "" {
		dir, err := config.EnsureDataDir()
		if err != nil {
			return nil, fmt.Errorf("data dir: %w", err)
		}
		path = filepath.Join(dir, "cache.db")
	}
	cache, err := store.Open(path, ec.Kind, sc.CacheTTL())
	if err != nil {
		return nil, fmt.Errorf("open cache: %w", err)
	}
	return cache, nil
}
