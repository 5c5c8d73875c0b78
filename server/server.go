// Package server is the baasdoc demo BaaS application: users, teams and
// projects modules whose routes and OpenAPI operations are declared
// together, served with the generated document and its docs UI.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"

	"github.com/go-chi/chi/v5"
	"golang.org/x/net/netutil"

	"github.com/vitalvas/baasdoc/config"
	"github.com/vitalvas/baasdoc/i18n"
	"github.com/vitalvas/baasdoc/metric"
	"github.com/vitalvas/baasdoc/middleware"
	"github.com/vitalvas/baasdoc/openapi"
	"github.com/vitalvas/baasdoc/render"
)

// Server owns the router, the completed document and the demo state.
type Server struct {
	cfg     *config.Config
	logger  *slog.Logger
	catalog *i18n.Catalog
	metrics *metric.Registry
	spec    *openapi.Spec
	doc     *openapi.Document
	router  chi.Router
	app     *app
}

// New builds the server and its document. It fails when the document
// cannot be completed or the routes disagree with it.
func New(cfg *config.Config, logger *slog.Logger) (*Server, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	catalog, err := NewCatalog(cfg.I18n.Language())
	if err != nil {
		return nil, err
	}

	ui, err := openapi.ParseDocsUI(cfg.Docs.UI)
	if err != nil {
		return nil, err
	}

	s := &Server{
		cfg:     cfg,
		logger:  logger,
		catalog: catalog,
		metrics: metric.NewRegistry(),
		app:     newApp(),
	}
	s.spec = s.newSpec()

	r := chi.NewRouter()
	if err := s.useMiddleware(r); err != nil {
		return nil, err
	}

	bodyChecks, err := s.bodyChecks()
	if err != nil {
		return nil, err
	}
	r.Group(func(api chi.Router) {
		api.Use(bodyChecks...)
		s.registerUsers(api)
		s.registerTeams(api)
		s.registerProjects(api)
	})

	s.doc, err = s.spec.Complete()
	if err != nil {
		return nil, fmt.Errorf("server: build document: %w", err)
	}
	if err := CheckRoutes(r, s.doc, APIPrefix); err != nil {
		return nil, err
	}
	if err := s.metrics.Metrics.ObserveDocument(s.doc); err != nil {
		return nil, err
	}

	if err := s.doc.Handle(r, &openapi.HandleConfig{UI: ui, DocsPath: cfg.Docs.Path}); err != nil {
		return nil, err
	}
	r.Method(http.MethodGet, "/metrics", s.metrics.Handler())
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		render.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	s.router = r
	return s, nil
}

func (s *Server) newSpec() *openapi.Spec {
	info := openapi.Info{
		Title:       s.cfg.OpenAPI.Title,
		Version:     s.cfg.OpenAPI.Version,
		Description: s.cfg.OpenAPI.Description,
	}

	servers := make([]openapi.Server, 0, len(s.cfg.OpenAPI.Servers))
	for _, url := range s.cfg.OpenAPI.Servers {
		servers = append(servers, openapi.Server{URL: url})
	}

	spec := openapi.NewSpec(info,
		openapi.WithLogger(s.logger),
		openapi.WithServers(servers...),
		openapi.WithMessages(s.catalog.DefaultPrinter()),
	)

	if s.cfg.Auth.Token != "" {
		spec.AddSecurityScheme(bearerScheme, &openapi.SecurityScheme{
			Type:        "http",
			Scheme:      "bearer",
			Description: "Static bearer token",
		})
	}

	return spec
}

func (s *Server) useMiddleware(r chi.Router) error {
	hostname, err := middleware.Hostname(middleware.HostnameConfig{HostnameEnv: []string{"POD_NAME", "HOSTNAME"}})
	if err != nil {
		return err
	}

	r.Use(
		middleware.RequestID(middleware.RequestIDConfig{}),
		hostname,
		middleware.AccessLog(middleware.AccessLogConfig{
			Logger:    s.logger,
			Observe:   s.metrics.Metrics.ObserveRequest,
			SkipPaths: []string{"/metrics", "/healthz"},
		}),
		middleware.Language(s.catalog),
		middleware.Recovery(middleware.RecoveryConfig{Logger: s.logger, Code: &CodeInternal}),
	)
	return nil
}

func (s *Server) bodyChecks() ([]func(http.Handler) http.Handler, error) {
	contentType, err := middleware.ContentTypeCheck(middleware.ContentTypeCheckConfig{
		AllowedTypes: []string{"application/json"},
		Code:         &CodeUnsupportedMediaType,
	})
	if err != nil {
		return nil, err
	}

	sizeLimit, err := middleware.RequestSizeLimit(s.cfg.Server.MaxBodyBytes)
	if err != nil {
		return nil, err
	}

	return []func(http.Handler) http.Handler{contentType, sizeLimit}, nil
}

// Document returns the completed OpenAPI document.
func (s *Server) Document() *openapi.Document {
	return s.doc
}

// Handler returns the HTTP handler of the server.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run listens on the configured address until ctx is done, then shuts down
// gracefully.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.Server.Addr)
	if err != nil {
		return fmt.Errorf("server: listen: %w", err)
	}
	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx is done.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	if s.cfg.Server.MaxConnections > 0 {
		ln = netutil.LimitListener(ln, s.cfg.Server.MaxConnections)
	}

	srv := &http.Server{
		Handler:      s.router,
		ReadTimeout:  s.cfg.Server.ReadTimeout,
		WriteTimeout: s.cfg.Server.WriteTimeout,
		ErrorLog:     slog.NewLogLogger(s.logger.Handler(), slog.LevelError),
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server listening", "addr", ln.Addr().String())
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.cfg.Server.ShutdownTimeout)
	defer cancel()

	s.logger.Info("server shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server: shutdown: %w", err)
	}
	return nil
}
