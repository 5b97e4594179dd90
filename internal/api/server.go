// Package api exposes the scheme finder over HTTP.
package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"scheme-finder/internal/catalog"
	"scheme-finder/internal/common/logger"
	"scheme-finder/internal/matching"
	"scheme-finder/internal/models"
	"scheme-finder/internal/predictor"
)

// Predictor forwards a profile to the remote prediction service.
type Predictor interface {
	Predict(ctx context.Context, req predictor.Request) ([]byte, error)
}

// Tracker stores the applications a citizen follows up on.
type Tracker interface {
	Add(ctx context.Context, citizenID string, scheme models.SchemeRecommendation) (*models.TrackedApplication, bool, error)
	Update(ctx context.Context, citizenID, id string, upd models.ApplicationUpdate) (*models.TrackedApplication, error)
	Remove(ctx context.Context, citizenID, id string) error
	List(ctx context.Context, citizenID string) ([]models.TrackedApplication, error)
}

// Check reports whether a dependency is usable. Used by /ready.
type Check func(ctx context.Context) error

type Deps struct {
	Catalog   *catalog.Store
	Engine    *matching.Engine
	Predictor Predictor
	Tracker   Tracker
	Checks    map[string]Check
	Logger    logger.Logger

	// Tracer wraps ranking in a span. Defaults to a no-op tracer.
	Tracer trace.Tracer
}

type Server struct {
	deps   Deps
	logger logger.Logger
	router *gin.Engine
	srv    *http.Server
}

func NewServer(deps Deps) *Server {
	if deps.Engine == nil {
		deps.Engine = matching.NewEngine()
	}
	if deps.Logger == nil {
		deps.Logger = logger.NewNoOpLogger()
	}
	if deps.Tracer == nil {
		deps.Tracer = noop.NewTracerProvider().Tracer("api")
	}

	s := &Server{
		deps:   deps,
		logger: deps.Logger.WithFields(map[string]interface{}{"component": "api"}),
	}
	s.router = s.routes()
	return s
}

func (s *Server) routes() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), requestID(), s.accessLog(), cors())

	r.GET("/health", s.health)
	r.GET("/ready", s.ready)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api")
	{
		api.POST("/recommendations", s.recommend)
		api.POST("/predict", s.predict)

		api.GET("/schemes", s.listSchemes)
		api.GET("/schemes/:id", s.getScheme)

		apps := api.Group("/applications", citizen())
		apps.GET("", s.listApplications)
		apps.POST("", s.addApplication)
		apps.PATCH("/:id", s.updateApplication)
		apps.DELETE("/:id", s.removeApplication)
	}
	return r
}

// Handler returns the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start serves on addr until Shutdown is called.
func (s *Server) Start(addr string) error {
	s.srv = &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	s.logger.Info("HTTP API listening", map[string]interface{}{"address": addr})
	if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	if s.srv == nil {
		return nil
	}
	return s.srv.Shutdown(ctx)
}
