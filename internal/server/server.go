package server

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/web-debit/navigate-relay/app/internal/config"
	"github.com/web-debit/navigate-relay/app/internal/logger"
	"github.com/web-debit/navigate-relay/app/internal/pages"
	"github.com/web-debit/navigate-relay/app/internal/relay"
	"github.com/web-debit/navigate-relay/app/internal/server/handlers"
	relaymw "github.com/web-debit/navigate-relay/app/internal/server/middleware"
	"github.com/web-debit/navigate-relay/app/web"
)

type Server struct {
	config     *config.ServerEnvironment
	logger     *slog.Logger
	router     *chi.Mux
	errorPages *pages.Renderer
	startedAt  time.Time

	// read-only for the lifetime of the process
	mode        relay.Mode
	credentials relay.MerchantCredentials
	gateway     relay.Gateway
	template    relay.TemplateSource
	static      fs.FS
}

func NewServer(
	cfg *config.ServerEnvironment,
	logger *slog.Logger,
) (*Server, error) {
	errorPages, err := pages.New(web.FS, web.ErrorTemplate)
	if err != nil {
		return nil, err
	}

	server := &Server{
		config:      cfg,
		logger:      logger,
		router:      chi.NewRouter(),
		errorPages:  errorPages,
		startedAt:   time.Now(),
		mode:        cfg.Mode(),
		credentials: cfg.Credentials(),
		gateway:     cfg.Gateway(),
	}

	if !server.credentials.Complete() {
		return nil, relay.NewConfigurationError("merchant credentials are incomplete")
	}

	if err := server.initAssets(); err != nil {
		return nil, fmt.Errorf("failed to initialize assets: %w", err)
	}

	server.setupMiddleware()
	server.registerRoutes()

	return server, nil
}

// initAssets selects the page template and static file system: files on disk
// when TEMPLATE_PATH / STATIC_DIR are set, the embedded copies otherwise.
func (s *Server) initAssets() error {
	if s.config.TemplatePath != "" {
		s.template = relay.TemplateSource{
			FS:   os.DirFS(filepath.Dir(s.config.TemplatePath)),
			Name: filepath.Base(s.config.TemplatePath),
		}
	} else {
		s.template = relay.TemplateSource{FS: web.FS, Name: web.PageTemplate}
	}

	// the template is re-read on every request, a failure here is only a warning
	if _, err := s.template.Load(); err != nil {
		s.logger.Warn("page template not readable at startup",
			slog.String("template", s.template.Name),
			slog.String("error", err.Error()))
	}

	if s.config.StaticDir != "" {
		s.static = os.DirFS(s.config.StaticDir)
		return nil
	}
	static, err := fs.Sub(web.FS, "static")
	if err != nil {
		return err
	}
	s.static = static
	return nil
}

func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(logger.RequestLogging(s.logger))
	s.router.Use(relaymw.Recover(s.errorPages))
	s.router.Use(relaymw.SecurityHeaders(s.config.Environment, s.gateway.URL))
	s.router.Use(relaymw.RateLimit(s.config.RateLimitRPS, s.config.RateLimitBurst, s.errorPages))
	s.router.Use(relaymw.RequestSizeLimit(s.config.MaxRequestSize, s.errorPages))
	if s.config.EnableAuth {
		s.router.Use(relaymw.BasicAuth("navigate-relay", s.config.AdminUser, s.credentials.AdminPassword(), s.errorPages, "/health"))
	}
	s.router.Use(middleware.Timeout(60 * time.Second))
}

func (s *Server) registerRoutes() {
	s.router.Get("/", s.handleRelay)
	s.router.Head("/", s.handleRelay)
	s.router.Post("/", s.handleRelay)

	s.router.Get("/health", handlers.HandleHealth)
	s.router.Get("/debug", handlers.HandleDebug(handlers.DebugInfo{
		Environment: s.config.Environment,
		Mode:        s.mode,
		AuthEnabled: s.config.EnableAuth,
		GatewayURL:  s.gateway.URL,
		StartedAt:   s.startedAt,
		Credentials: s.credentials,
	}))
	s.router.Get("/version", handlers.HandleVersion())

	s.router.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(s.static))))

	s.router.NotFound(s.handleNotFound)
	s.router.MethodNotAllowed(s.handleNotFound)
}

// ServeHTTP makes the server usable with httptest.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) Start(ctx context.Context) error {
	serverAddr := fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)

	httpServer := &http.Server{
		Addr:         serverAddr,
		Handler:      s.router,
		ReadTimeout:  s.config.ReadTimeout,
		WriteTimeout: s.config.WriteTimeout,
		IdleTimeout:  s.config.IdleTimeout,
	}

	serverErrors := make(chan error, 1)

	go func() {
		s.logger.Info("service listening",
			slog.String("environment", s.config.Environment),
			slog.String("mode", string(s.mode)),
			slog.String("address", serverAddr))

		err := httpServer.ListenAndServe()
		if err != nil && err != http.ErrServerClosed {
			serverErrors <- fmt.Errorf("server failed to start: %w", err)
		}
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-ctx.Done():
		s.logger.Info("shutdown signal received")
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), s.config.ServerShutdownTimeout)
	defer shutdownCancel()

	s.logger.Info("shutting down HTTP server")

	err := httpServer.Shutdown(shutdownCtx)
	if err != nil {
		s.logger.Warn("HTTP server shutdown error",
			slog.String("error", err.Error()))
		return fmt.Errorf("HTTP server shutdown failed: %w", err)
	}

	s.logger.Info("HTTP server shutdown complete")
	return nil
}

func (s *Server) handleNotFound(w http.ResponseWriter, r *http.Request) {
	s.errorPages.Respond(w, r, pages.NotFound())
}
