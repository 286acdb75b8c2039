// Package server provides the JSON API HTTP server
package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/jarrett-joe/my-meal-planner/internal/infrastructure/config"
	"github.com/jarrett-joe/my-meal-planner/internal/infrastructure/http/handlers"
	"github.com/jarrett-joe/my-meal-planner/internal/infrastructure/http/middleware"
	"github.com/jarrett-joe/my-meal-planner/internal/ports/inbound"
	"github.com/jarrett-joe/my-meal-planner/pkg/healthcheck"
)

// Server hosts the REST API
type Server struct {
	config *config.Config
	logger *zap.Logger
	server *http.Server
	router *chi.Mux
	api    *handlers.API
	health *healthcheck.Handler
}

// NewServer creates the API server with its routes configured
func NewServer(
	cfg *config.Config,
	log *zap.Logger,
	recipes inbound.RecipeService,
	mealPlan inbound.MealPlanService,
	grocery inbound.GroceryService,
	users inbound.UserService,
	health *healthcheck.Handler,
) *Server {
	s := &Server{
		config: cfg,
		logger: log.Named("http-server"),
		api:    handlers.NewAPI(recipes, mealPlan, grocery, users, log),
		health: health,
	}

	s.router = s.setupRoutes()
	s.server = &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      s.router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	return s
}

func (s *Server) setupRoutes() *chi.Mux {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logger(s.logger))
	r.Use(middleware.Recovery(s.logger))
	r.Use(middleware.Security())
	r.Use(middleware.CORS(s.config.Server))
	r.Use(chimiddleware.Timeout(60 * time.Second))
	r.Use(chimiddleware.Compress(5))

	r.Get("/health", s.health.Live)
	r.Get("/ready", s.health.Ready)

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Authenticate(s.config.Auth, s.logger))
		s.setupAPIV1Routes(r)
	})

	return r
}

func (s *Server) setupAPIV1Routes(r chi.Router) {
	aiLimit := middleware.RateLimit(s.config.RateLimit)

	r.Route("/auth", func(r chi.Router) {
		r.Get("/user", s.api.GetCurrentUser)
	})

	r.Route("/preferences", func(r chi.Router) {
		r.Get("/", s.api.GetPreferences)
		r.Put("/", s.api.UpdatePreferences)
	})

	r.Route("/recipes", func(r chi.Router) {
		r.Get("/", s.api.ListRecipes)
		r.Post("/", s.api.CreateRecipe)
		r.With(aiLimit).Post("/suggest", s.api.SuggestMeals)
		r.Get("/{recipeID}", s.api.GetRecipe)
	})

	r.Route("/favorites", func(r chi.Router) {
		r.Get("/", s.api.ListFavorites)
		r.Post("/{recipeID}", s.api.AddFavorite)
		r.Delete("/{recipeID}", s.api.RemoveFavorite)
	})

	r.Route("/calendar", func(r chi.Router) {
		r.Get("/", s.api.ListCalendar)
		r.Post("/", s.api.ScheduleMeal)
		r.Delete("/{date}/{slot}", s.api.UnscheduleMeal)
	})

	r.Route("/grocery-list", func(r chi.Router) {
		r.Get("/", s.api.GetGroceryList)
		r.With(aiLimit).Post("/generate", s.api.GenerateGroceryList)
	})
}

// Start starts the HTTP server
func (s *Server) Start() error {
	s.logger.Info("Starting API server",
		zap.String("address", s.server.Addr),
		zap.String("environment", s.config.App.Environment),
	)
	return s.server.ListenAndServe()
}

// Router returns the configured router, for tests
func (s *Server) Router() http.Handler {
	return s.router
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down API server")
	return s.server.Shutdown(ctx)
}
