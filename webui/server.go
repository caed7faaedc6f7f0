package webui

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/giftwork2016-hub/adobe-PS-AI-plugin/webui/static"

	"go.uber.org/zap"
)

// AuthProvider gates panel routes behind a login. Implemented by
// auth.Middleware; kept as an interface here to avoid an import cycle and to
// allow running without authentication (nil provider).
type AuthProvider interface {
	Middleware(next http.Handler) http.Handler
	LoginHandler() http.HandlerFunc
	LogoutHandler() http.HandlerFunc
}

// ServerConfig configures the panel server.
type ServerConfig struct {
	// Host to bind to (default: "localhost"; the panel is a local bridge,
	// not a public service)
	Host string

	// Port to listen on (default: 3800)
	Port int

	// ReadTimeout for HTTP requests (default: 30s)
	ReadTimeout time.Duration

	// WriteTimeout for HTTP responses. Generate blocks for the provider
	// latency, so this must comfortably exceed it (default: 60s)
	WriteTimeout time.Duration

	// IdleTimeout for keep-alive connections (default: 120s)
	IdleTimeout time.Duration
}

// DefaultServerConfig returns a ServerConfig with sensible defaults.
func DefaultServerConfig() ServerConfig {
	return ServerConfig{
		Host:         "localhost",
		Port:         3800,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}
}

// Server hosts the panel UI and its JSON API on the loopback interface. It
// wires together the embedded static assets, the optional auth provider,
// request logging and the PanelAPI.
type Server struct {
	httpServer *http.Server
	mux        *http.ServeMux
	config     ServerConfig
	logger     *zap.Logger
	auth       AuthProvider
	api        *PanelAPI
}

// NewServer creates a configured panel server. authProvider may be nil for
// an unauthenticated panel.
func NewServer(config ServerConfig, api *PanelAPI, authProvider AuthProvider, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	if config.Host == "" {
		config.Host = "localhost"
	}
	if config.Port == 0 {
		config.Port = 3800
	}

	s := &Server{
		mux:    http.NewServeMux(),
		config: config,
		logger: logger,
		auth:   authProvider,
		api:    api,
	}
	s.setupRoutes()

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf("%s:%d", config.Host, config.Port),
		Handler:      s.rootHandler(),
		ReadTimeout:  config.ReadTimeout,
		WriteTimeout: config.WriteTimeout,
		IdleTimeout:  config.IdleTimeout,
	}

	logger.Info("panel server created",
		zap.String("addr", s.httpServer.Addr),
		zap.Bool("auth_enabled", authProvider != nil))
	return s
}

func (s *Server) setupRoutes() {
	// Unauthenticated routes
	s.mux.HandleFunc("/health", s.handleHealth)
	if s.auth != nil {
		s.mux.HandleFunc("/login", s.auth.LoginHandler())
		s.mux.HandleFunc("/logout", s.auth.LogoutHandler())
	}

	// Panel page and API, behind auth when enabled
	protected := http.NewServeMux()
	protected.HandleFunc("/panel", s.handlePanel)
	protected.HandleFunc("/panel/", s.handlePanel)
	s.api.RegisterRoutes(protected)

	var handler http.Handler = protected
	if s.auth != nil {
		handler = s.auth.Middleware(protected)
	}
	s.mux.Handle("/panel", handler)
	s.mux.Handle("/panel/", handler)
	s.mux.Handle("/api/", handler)

	s.mux.HandleFunc("/", s.handleRoot)
}

func (s *Server) rootHandler() http.Handler {
	mw := NewLoggingMiddleware(s.logger, "/health")
	return mw.Handler(s.mux)
}

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	http.Redirect(w, r, "/panel", http.StatusTemporaryRedirect)
}

func (s *Server) handlePanel(w http.ResponseWriter, r *http.Request) {
	data, err := static.ReadFile("panel.html")
	if err != nil {
		s.logger.Error("panel asset missing", zap.Error(err))
		http.Error(w, "panel asset missing", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(data)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}

// Handler returns the server's root handler, middleware included. Used by
// tests to drive the server without a listener.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Start begins listening. Blocks until the server shuts down.
func (s *Server) Start() error {
	s.logger.Info("panel server starting", zap.String("addr", s.httpServer.Addr))
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("panel server error: %w", err)
	}
	return nil
}

// Shutdown gracefully drains in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("panel server shutting down")
	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("panel server shutdown: %w", err)
	}
	return nil
}
