package server

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/kbukum/voicecheck/errors"
	"github.com/kbukum/voicecheck/logger"
	"github.com/kbukum/voicecheck/server/middleware"
)

// Server is the HTTP server of the service, backed by Gin and served over
// HTTP/1.1 and cleartext HTTP/2.
type Server struct {
	httpServer *http.Server
	engine     *gin.Engine
	handler    http.Handler
	config     Config
	log        *logger.Logger

	mu       sync.RWMutex
	listener net.Listener
}

// New creates a new Server with the CORS and body size limits applied in
// front of Gin. cfg should have defaults applied.
func New(cfg Config, log *logger.Logger) *Server {
	// Set Gin mode based on global zerolog level.
	if zerolog.GlobalLevel() <= zerolog.DebugLevel {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}
	if log == nil {
		log = logger.GetGlobalLogger()
	}

	engine := gin.New()
	engine.HandleMethodNotAllowed = true
	engine.NoRoute(func(c *gin.Context) {
		RespondWithError(c, errors.NotFound(c.Request.URL.Path))
	})
	engine.NoMethod(func(c *gin.Context) {
		RespondWithError(c, errors.MethodNotAllowed(c.Request.Method, c.Request.URL.Path))
	})

	handler := middleware.Chain(
		middleware.CORS(&cfg.CORS),
		middleware.BodySizeLimit(cfg.MaxBodySize),
	)(engine)

	h2s := &http2.Server{
		MaxConcurrentStreams: 250,
		IdleTimeout:          time.Duration(cfg.IdleTimeout) * time.Second,
	}

	httpServer := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Handler:           h2c.NewHandler(handler, h2s),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       time.Duration(cfg.ReadTimeout) * time.Second,
		WriteTimeout:      time.Duration(cfg.WriteTimeout) * time.Second,
		IdleTimeout:       time.Duration(cfg.IdleTimeout) * time.Second,
	}

	return &Server{
		httpServer: httpServer,
		engine:     engine,
		handler:    httpServer.Handler,
		config:     cfg,
		log:        log.WithComponent("server"),
	}
}

// Handler returns the complete handler stack, for use with httptest.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// ApplyMiddleware installs the engine wide middleware: panic recovery,
// request ids and request logging.
func (s *Server) ApplyMiddleware() {
	s.engine.Use(middleware.Recovery(s.log))
	s.engine.Use(middleware.RequestID())
	s.engine.Use(middleware.RequestLogger(s.log))
}

// Start binds the port and begins serving. It returns once the listener is
// bound so the caller knows the port is ready; serving continues in a goroutine.
func (s *Server) Start(ctx context.Context) error {
	listener, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		return fmt.Errorf("server failed to bind %s: %w", s.httpServer.Addr, err)
	}
	s.mu.Lock()
	s.listener = listener
	s.mu.Unlock()

	go func() {
		if err := s.httpServer.Serve(listener); err != nil && err != http.ErrServerClosed {
			s.log.Error("Server error", logger.ErrorFields("serve", err))
		}
	}()

	s.log.Info("HTTP server started", map[string]interface{}{
		"addr": listener.Addr().String(),
	})
	return nil
}

// Stop gracefully shuts down the server, waiting for in-flight requests
// until ctx ends.
func (s *Server) Stop(ctx context.Context) error {
	s.log.Info("Shutting down HTTP server")

	if err := s.httpServer.Shutdown(ctx); err != nil {
		s.log.Error("Server shutdown error", logger.ErrorFields("shutdown", err))
		return fmt.Errorf("server shutdown error: %w", err)
	}

	s.log.Info("HTTP server shut down successfully")
	return nil
}

// Addr returns the bound address once started, otherwise the configured one.
func (s *Server) Addr() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.listener != nil {
		return s.listener.Addr().String()
	}
	return s.httpServer.Addr
}

// Started reports whether the listener is bound.
func (s *Server) Started() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.listener != nil
}
