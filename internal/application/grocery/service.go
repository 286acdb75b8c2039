// Package grocery provides the application layer for grocery list
// generation. Resolving the recipe set is kept separate from merging
// ingredients, so ad hoc selections and whole-week calendar state share one
// code path.
package grocery

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jarrett-joe/my-meal-planner/internal/domain/grocery"
	"github.com/jarrett-joe/my-meal-planner/internal/domain/mealplan"
	"github.com/jarrett-joe/my-meal-planner/internal/domain/recipe"
	"github.com/jarrett-joe/my-meal-planner/internal/ports/inbound"
	"github.com/jarrett-joe/my-meal-planner/internal/ports/outbound"
	"github.com/jarrett-joe/my-meal-planner/pkg/errors"
)

// GroceryService implements the grocery list use cases
type GroceryService struct {
	groceryRepo  outbound.GroceryListRepository
	calendarRepo outbound.CalendarRepository
	recipeRepo   outbound.RecipeRepository
	userRepo     outbound.UserRepository
	merger       outbound.IngredientMerger
	notifier     outbound.Notifier
	logger       *zap.Logger
}

// NewGroceryService creates a new grocery service
func NewGroceryService(
	groceryRepo outbound.GroceryListRepository,
	calendarRepo outbound.CalendarRepository,
	recipeRepo outbound.RecipeRepository,
	userRepo outbound.UserRepository,
	merger outbound.IngredientMerger,
	notifier outbound.Notifier,
	logger *zap.Logger,
) inbound.GroceryService {
	return &GroceryService{
		groceryRepo:  groceryRepo,
		calendarRepo: calendarRepo,
		recipeRepo:   recipeRepo,
		userRepo:     userRepo,
		merger:       merger,
		notifier:     notifier,
		logger:       logger.Named("grocery-service"),
	}
}

// GenerateGroceryList resolves the requested recipe set, sends one merge
// request to the ingredient-merging backend, and persists the categorized
// result for (user, week start), replacing any prior list for that week.
func (s *GroceryService) GenerateGroceryList(ctx context.Context, cmd inbound.GenerateGroceryListCommand) (*inbound.GroceryListDTO, error) {
	if cmd.WeekStart.IsZero() {
		return nil, errors.NewValidationError("week_start_date is required")
	}
	weekStart := mealplan.TruncateToDay(cmd.WeekStart)

	recipes, err := s.resolveRecipes(ctx, cmd, weekStart)
	if err != nil {
		return nil, err
	}

	meals := make([]outbound.MealIngredients, len(recipes))
	for i, r := range recipes {
		meals[i] = outbound.MealIngredients{
			Title:       r.Title(),
			Ingredients: r.Ingredients(),
		}
	}

	categories, err := s.merger.MergeIngredients(ctx, meals)
	if err != nil {
		if appErr, ok := err.(*errors.AppError); ok {
			return nil, appErr
		}
		return nil, errors.NewExternalServiceError("ingredient merge backend", err)
	}

	list, err := grocery.NewList(cmd.UserID, weekStart, categories)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	saved, err := s.groceryRepo.Upsert(ctx, list)
	if err != nil {
		return nil, errors.NewDatabaseError("upsert grocery list", err)
	}

	s.logger.Info("Grocery list generated",
		zap.String("user_id", cmd.UserID.String()),
		zap.String("week_start", mealplan.FormatDate(weekStart)),
		zap.Int("meals", len(meals)),
		zap.Int("categories", len(saved.Categories())),
	)

	if u, err := s.userRepo.FindByID(ctx, cmd.UserID); err == nil && u != nil {
		s.notifier.GroceryListReady(ctx, u, weekStart)
	}

	return listToDTO(saved), nil
}

// GetGroceryList returns the persisted list for (user, week start).
func (s *GroceryService) GetGroceryList(ctx context.Context, userID uuid.UUID, weekStart time.Time) (*inbound.GroceryListDTO, error) {
	list, err := s.groceryRepo.Find(ctx, userID, mealplan.TruncateToDay(weekStart))
	if err != nil {
		return nil, errors.NewDatabaseError("find grocery list", err)
	}
	if list == nil {
		return nil, errors.NewNotFoundError("grocery list")
	}
	return listToDTO(list), nil
}

// resolveRecipes picks the input mode. Explicit recipe IDs are deduplicated
// and resolved through the store; an entirely unresolvable set is rejected.
// In week mode the 7-day calendar window is consulted; duplicate recipes
// scheduled in the same week are deliberately kept so the merge backend can
// scale quantities.
func (s *GroceryService) resolveRecipes(ctx context.Context, cmd inbound.GenerateGroceryListCommand, weekStart time.Time) ([]*recipe.Recipe, error) {
	if cmd.RecipeIDs != nil {
		ids := dedupe(*cmd.RecipeIDs)
		if len(ids) == 0 {
			return nil, errors.NewEmptySelectionError("no recipes were selected")
		}

		recipes, err := s.recipeRepo.FindByIDs(ctx, ids)
		if err != nil {
			return nil, errors.NewDatabaseError("resolve recipes", err)
		}
		if len(recipes) == 0 {
			return nil, errors.NewEmptySelectionError("none of the selected recipes could be found")
		}
		return recipes, nil
	}

	scheduled, err := s.calendarRepo.ListRange(ctx, cmd.UserID, weekStart, mealplan.WeekEnd(weekStart))
	if err != nil {
		return nil, errors.NewDatabaseError("list calendar week", err)
	}
	if len(scheduled) == 0 {
		return nil, errors.NewEmptySelectionError("no meals scheduled this week — add meals first")
	}

	recipes := make([]*recipe.Recipe, len(scheduled))
	for i, sm := range scheduled {
		recipes[i] = sm.Recipe
	}
	return recipes, nil
}

func dedupe(ids []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(ids))
	out := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

func listToDTO(l *grocery.List) *inbound.GroceryListDTO {
	return &inbound.GroceryListDTO{
		UserID:     l.UserID(),
		WeekStart:  mealplan.FormatDate(l.WeekStart()),
		Categories: inbound.CategoriesFromDomain(l.Categories()),
		CreatedAt:  l.CreatedAt().Format(time.RFC3339),
	}
}
