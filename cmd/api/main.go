// Meal planner API server entry point
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/jarrett-joe/my-meal-planner/internal/application/grocery"
	"github.com/jarrett-joe/my-meal-planner/internal/application/mealplan"
	"github.com/jarrett-joe/my-meal-planner/internal/application/recipe"
	"github.com/jarrett-joe/my-meal-planner/internal/application/user"
	"github.com/jarrett-joe/my-meal-planner/internal/infrastructure/ai/grok"
	"github.com/jarrett-joe/my-meal-planner/internal/infrastructure/cache"
	"github.com/jarrett-joe/my-meal-planner/internal/infrastructure/config"
	"github.com/jarrett-joe/my-meal-planner/internal/infrastructure/email"
	"github.com/jarrett-joe/my-meal-planner/internal/infrastructure/http/server"
	gormrepo "github.com/jarrett-joe/my-meal-planner/internal/infrastructure/persistence/gorm"
	"github.com/jarrett-joe/my-meal-planner/internal/infrastructure/persistence/postgres"
	"github.com/jarrett-joe/my-meal-planner/internal/ports/outbound"
	"github.com/jarrett-joe/my-meal-planner/pkg/healthcheck"
	"github.com/jarrett-joe/my-meal-planner/pkg/logger"
)

func main() {
	configPath := flag.String("config", "", "path to config file")
	flag.Parse()

	if err := run(*configPath); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log, err := logger.New(logger.Config{
		Level:       cfg.App.LogLevel,
		Format:      cfg.App.LogFormat,
		Development: cfg.IsDevelopment(),
	})
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync()

	log.Info("Starting meal planner",
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Environment),
	)

	db, err := postgres.Connect(cfg, log)
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("unwrap database handle: %w", err)
	}
	defer sqlDB.Close()

	checks := []healthcheck.Check{
		{Name: "database", Probe: sqlDB.PingContext},
	}

	var suggestionCache outbound.SuggestionCache = cache.NoopSuggestionCache{}
	if cfg.Redis.Enable {
		redisCache, err := cache.NewSuggestionCache(cfg.Redis, log)
		if err != nil {
			return fmt.Errorf("connect redis: %w", err)
		}
		defer redisCache.Close()
		suggestionCache = redisCache
		checks = append(checks, healthcheck.Check{Name: "cache", Probe: redisCache.Ping})
	}

	aiClient := grok.NewClient(cfg.AI, log)
	notifier := email.NewNotifier(cfg.Email, log)

	recipeRepo := gormrepo.NewRecipeRepository(db)
	favoriteRepo := gormrepo.NewFavoriteRepository(db)
	prefRepo := gormrepo.NewPreferenceRepository(db)
	userRepo := gormrepo.NewUserRepository(db)
	calendarRepo := gormrepo.NewCalendarRepository(db)
	groceryRepo := gormrepo.NewGroceryListRepository(db)

	recipeService := recipe.NewRecipeService(
		recipeRepo, favoriteRepo, prefRepo, userRepo,
		aiClient, suggestionCache, notifier, log,
	)
	mealPlanService := mealplan.NewMealPlanService(calendarRepo, recipeRepo, log)
	groceryService := grocery.NewGroceryService(
		groceryRepo, calendarRepo, recipeRepo, userRepo,
		aiClient, notifier, log,
	)
	userService := user.NewUserService(userRepo, prefRepo, log)

	health := healthcheck.NewHandler(cfg.App.Name, cfg.App.Version, log, checks...)

	srv := server.NewServer(cfg, log, recipeService, mealPlanService, groceryService, userService, health)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("server: %w", err)
	case sig := <-quit:
		log.Info("Received shutdown signal", zap.String("signal", sig.String()))
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}

	log.Info("Server stopped")
	return nil
}
