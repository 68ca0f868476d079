// Package server exposes an execution engine over HTTP: POST /execute with
// the program as the request body.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/net/netutil"

	"github.com/Vandesm14/stack-server/internal/engine"
	"github.com/Vandesm14/stack-server/internal/store"
)

// MaxSourceBytes caps the size of a submitted program.
const MaxSourceBytes = 64 << 10

// Server runs programs submitted over HTTP.
type Server struct {
	engine   engine.Engine
	cache    *store.Cache
	maxConns int
}

// New returns a Server running programs on e. cache may be nil. maxConns
// limits simultaneous connections; zero means unlimited.
func New(e engine.Engine, cache *store.Cache, maxConns int) *Server {
	return &Server{engine: e, cache: cache, maxConns: maxConns}
}

// Handler returns the HTTP routes.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/execute", s.handleExecute)
	return withCORS(mux)
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

// Serve serves on ln until ctx is cancelled.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	if s.maxConns > 0 {
		ln = netutil.LimitListener(ln, s.maxConns)
	}
	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", ln.Addr().String()).Int("max_conns", s.maxConns).Msg("server: listening")
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	log.Info().Msg("server: stopped")
	return nil
}

func withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("Access-Control-Allow-Origin", "*")
		h.Set("Access-Control-Allow-Methods", "GET, POST, PATCH")
		h.Set("Access-Control-Allow-Headers", "Content-Type, Accept")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) handleExecute(w http.ResponseWriter, r *http.Request) {
	reqID := uuid.NewString()
	w.Header().Set("X-Request-Id", reqID)
	logger := log.With().Str("request_id", reqID).Logger()

	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, MaxSourceBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			http.Error(w, "program too large", http.StatusRequestEntityTooLarge)
			return
		}
		http.Error(w, "could not read program", http.StatusBadRequest)
		return
	}
	source := string(body)

	start := time.Now()
	stack, cached := s.cache.Get(source)
	if !cached {
		vs, err := s.run(r.Context(), source)
		if err != nil {
			logger.Info().Err(err).Dur("elapsed", time.Since(start)).Msg("execute: failed")
			respond(w, r, http.StatusBadRequest, engine.Response{Error: err.Error()})
			return
		}
		stack = engine.Texts(vs)
		s.cache.Set(source, stack)
	}

	logger.Info().
		Int("values", len(stack)).
		Bool("cached", cached).
		Dur("elapsed", time.Since(start)).
		Msg("execute: ok")
	respond(w, r, http.StatusAccepted, engine.Response{Stack: stack})
}

func (s *Server) run(ctx context.Context, source string) ([]engine.Value, error) {
	if s.engine == nil {
		return nil, errors.New("no execution engine")
	}
	return s.engine.Run(ctx, source)
}

// respond writes res as JSON when the client asks for it, otherwise as plain
// text: the ", "-joined stack or the error message.
func respond(w http.ResponseWriter, r *http.Request, status int, res engine.Response) {
	if res.Stack == nil {
		res.Stack = []string{}
	}
	if strings.Contains(r.Header.Get("Accept"), "application/json") {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		if err := json.NewEncoder(w).Encode(res); err != nil {
			log.Warn().Err(err).Msg("execute: write response")
		}
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(status)
	text := res.Error
	if status < 300 {
		text = strings.Join(res.Stack, ", ")
	}
	if _, err := io.WriteString(w, text); err != nil {
		log.Warn().Err(err).Msg("execute: write response")
	}
}
