package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/pageza/cookbook/backend/config"
	"github.com/pageza/cookbook/backend/internal/api"
	"github.com/pageza/cookbook/backend/internal/middleware"
	"github.com/pageza/cookbook/backend/internal/repository"
	"github.com/pageza/cookbook/backend/internal/service"
	"github.com/pageza/cookbook/backend/internal/storage"
)

// Server represents the HTTP server
type Server struct {
	cfg    *config.Config
	router *gin.Engine
	http   *http.Server
	db     *gorm.DB
	redis  *redis.Client
}

// New wires services and routes over db. redisClient and store are optional:
// without Redis the AI endpoints are not rate limited, without a store
// generated images are not persisted.
func New(cfg *config.Config, db *gorm.DB, redisClient *redis.Client, store storage.Storage) (*Server, error) {
	stats, err := repository.NewStatsRepositoryFromGorm(db)
	if err != nil {
		return nil, fmt.Errorf("failed to create stats repository: %w", err)
	}

	var limiter *middleware.RateLimiter
	if redisClient != nil {
		limiter = middleware.NewAIRateLimiter(redisClient, cfg.AIRateLimit, cfg.AIRateWindow)
	}

	router := gin.New()
	router.Use(middleware.Recovery())
	router.Use(middleware.RequestLogger())
	router.Use(middleware.CORS(cfg.CORSAllowedOrigins))

	api.RegisterRoutes(router, api.Services{
		Recipes:      service.NewRecipeService(repository.NewGormRepository(db, service.GenerateEmbedding)),
		Descriptions: service.NewDescriptionService(cfg.OpenAIAPIKey, cfg.OpenAIChatURL, cfg.DescriptionModel, nil),
		Images:       service.NewImageService(cfg.OpenAIAPIKey, cfg.OpenAIImagesURL, cfg.ImageModel, store, nil),
		Dashboard:    service.NewDashboardService(stats),
		AILimiter:    limiter,
	})

	if local, ok := store.(storage.LocalBaseDirProvider); ok {
		prefix := local.PublicBaseURL()
		if strings.HasPrefix(prefix, "/") {
			router.Static(prefix, local.LocalBaseDir())
		}
	}

	return &Server{
		cfg:    cfg,
		router: router,
		db:     db,
		redis:  redisClient,
		http: &http.Server{
			Addr:              fmt.Sprintf("%s:%s", cfg.ServerHost, cfg.ServerPort),
			Handler:           router,
			ReadHeaderTimeout: 10 * time.Second,
			// image generation can take most of a minute
			WriteTimeout: 90 * time.Second,
			IdleTimeout:  120 * time.Second,
		},
	}, nil
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start listens until the server is shut down.
func (s *Server) Start() error {
	logrus.WithField("addr", s.http.Addr).Info("starting http server")
	if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown stops accepting requests, waits for in-flight ones and closes
// the Redis and database connections.
func (s *Server) Shutdown(ctx context.Context) error {
	err := s.http.Shutdown(ctx)
	if s.redis != nil {
		if cerr := s.redis.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}
	if sqlDB, derr := s.db.DB(); derr == nil {
		if cerr := sqlDB.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}
	return err
}
