// Package recipe provides the application layer for recipe records,
// favorites and AI-backed meal suggestions.
package recipe

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jarrett-joe/my-meal-planner/internal/domain/recipe"
	"github.com/jarrett-joe/my-meal-planner/internal/domain/user"
	"github.com/jarrett-joe/my-meal-planner/internal/ports/inbound"
	"github.com/jarrett-joe/my-meal-planner/internal/ports/outbound"
	"github.com/jarrett-joe/my-meal-planner/pkg/errors"
)

const suggestionCacheTTL = 24 * time.Hour

// RecipeService implements the recipe use cases
type RecipeService struct {
	recipeRepo   outbound.RecipeRepository
	favoriteRepo outbound.FavoriteRepository
	prefRepo     outbound.PreferenceRepository
	userRepo     outbound.UserRepository
	suggestions  outbound.SuggestionService
	cache        outbound.SuggestionCache
	notifier     outbound.Notifier
	logger       *zap.Logger
}

// NewRecipeService creates a new recipe service
func NewRecipeService(
	recipeRepo outbound.RecipeRepository,
	favoriteRepo outbound.FavoriteRepository,
	prefRepo outbound.PreferenceRepository,
	userRepo outbound.UserRepository,
	suggestions outbound.SuggestionService,
	cache outbound.SuggestionCache,
	notifier outbound.Notifier,
	logger *zap.Logger,
) inbound.RecipeService {
	return &RecipeService{
		recipeRepo:   recipeRepo,
		favoriteRepo: favoriteRepo,
		prefRepo:     prefRepo,
		userRepo:     userRepo,
		suggestions:  suggestions,
		cache:        cache,
		notifier:     notifier,
		logger:       logger.Named("recipe-service"),
	}
}

// CreateRecipe stores a manually entered recipe.
func (s *RecipeService) CreateRecipe(ctx context.Context, cmd inbound.CreateRecipeCommand) (*inbound.RecipeDTO, error) {
	entity, err := recipe.NewRecipe(cmd.Title, cmd.Ingredients, cmd.OwnerID)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}
	if err := entity.SetDetails(cmd.Description, cmd.Cuisine, cmd.Protein, cmd.CookingTime, cmd.Rating); err != nil {
		return nil, errors.NewValidationError(err.Error())
	}
	entity.SetInstructions(cmd.Instructions)
	entity.SetMedia(cmd.ImageURL, cmd.SourceURL)

	if err := s.recipeRepo.Create(ctx, entity); err != nil {
		return nil, errors.NewDatabaseError("create recipe", err)
	}

	s.logger.Info("Recipe created",
		zap.String("recipe_id", entity.ID().String()),
		zap.String("title", entity.Title()),
	)

	dto := inbound.RecipeDTOFromDomain(entity)
	return &dto, nil
}

// GetRecipeByID returns a single recipe record.
func (s *RecipeService) GetRecipeByID(ctx context.Context, recipeID uuid.UUID) (*inbound.RecipeDTO, error) {
	entity, err := s.recipeRepo.FindByID(ctx, recipeID)
	if err != nil {
		return nil, errors.NewDatabaseError("find recipe", err)
	}
	if entity == nil {
		return nil, errors.NewRecipeNotFoundError(recipeID.String())
	}
	dto := inbound.RecipeDTOFromDomain(entity)
	return &dto, nil
}

// ListRecipes returns stored recipes filtered by optional tags, best-rated
// first.
func (s *RecipeService) ListRecipes(ctx context.Context, query inbound.ListRecipesQuery) ([]inbound.RecipeDTO, error) {
	limit := query.Limit
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	recipes, err := s.recipeRepo.List(ctx, query.Cuisine, query.Protein, limit)
	if err != nil {
		return nil, errors.NewDatabaseError("list recipes", err)
	}
	return inbound.RecipeDTOsFromDomain(recipes), nil
}

// SuggestMeals asks the generative backend for meal suggestions, persists
// them as system-generated recipes, and deducts meal credits as a separate,
// explicit step afterwards. Persisting the recipes and deducting credits are
// deliberately not atomic with each other.
func (s *RecipeService) SuggestMeals(ctx context.Context, cmd inbound.SuggestMealsCommand) ([]inbound.RecipeDTO, error) {
	account, err := s.userRepo.FindByID(ctx, cmd.UserID)
	if err != nil {
		return nil, errors.NewDatabaseError("find user", err)
	}
	if account == nil {
		return nil, errors.NewUserNotFoundError(cmd.UserID.String())
	}
	if !account.CanGenerateMeals() {
		return nil, errors.NewQuotaExceededError("meal credit", account.TotalMealsUsed())
	}

	count := cmd.Count
	if count <= 0 || count > 12 {
		count = 6
	}

	prefs, err := s.resolvePreferences(ctx, cmd)
	if err != nil {
		return nil, err
	}

	suggestions, cached := s.cachedSuggestions(ctx, prefs, count)
	if !cached {
		suggestions, err = s.suggestions.SuggestMeals(ctx, prefs, count)
		if err != nil {
			if appErr, ok := err.(*errors.AppError); ok {
				return nil, appErr
			}
			return nil, errors.NewExternalServiceError("suggestion backend", err)
		}
		s.cache.Set(ctx, suggestionKey(prefs, count), suggestions, suggestionCacheTTL)
	}

	saved := s.persistSuggestions(ctx, suggestions)

	// Credits only cover what the balance allows; active subscribers are not
	// metered. Partial coverage still persists every generated recipe.
	if n := account.CreditsToConsume(len(saved)); n > 0 {
		if err := s.userRepo.ConsumeCredits(ctx, cmd.UserID, n); err != nil {
			s.logger.Error("Failed to consume meal credits",
				zap.String("user_id", cmd.UserID.String()),
				zap.Int("credits", n),
				zap.Error(err),
			)
		}
	}

	s.notifier.MealsSuggested(ctx, account, len(saved))

	return inbound.RecipeDTOsFromDomain(saved), nil
}

// AddFavorite records a favorite; a duplicate add is a silent no-op.
func (s *RecipeService) AddFavorite(ctx context.Context, userID, recipeID uuid.UUID) error {
	entity, err := s.recipeRepo.FindByID(ctx, recipeID)
	if err != nil {
		return errors.NewDatabaseError("find recipe", err)
	}
	if entity == nil {
		return errors.NewRecipeNotFoundError(recipeID.String())
	}

	if err := s.favoriteRepo.Add(ctx, userID, recipeID); err != nil {
		return errors.NewDatabaseError("add favorite", err)
	}
	return nil
}

// RemoveFavorite removes a favorite; removing an absent pair is a no-op.
func (s *RecipeService) RemoveFavorite(ctx context.Context, userID, recipeID uuid.UUID) error {
	if err := s.favoriteRepo.Remove(ctx, userID, recipeID); err != nil {
		return errors.NewDatabaseError("remove favorite", err)
	}
	return nil
}

// ListFavorites returns the user's favorites joined with full recipe
// records, most recently favorited first.
func (s *RecipeService) ListFavorites(ctx context.Context, userID uuid.UUID) ([]inbound.RecipeDTO, error) {
	recipes, err := s.favoriteRepo.List(ctx, userID)
	if err != nil {
		return nil, errors.NewDatabaseError("list favorites", err)
	}
	return inbound.RecipeDTOsFromDomain(recipes), nil
}

// resolvePreferences uses the preferences supplied with the command, falling
// back to the user's stored preference set when the command carries none.
func (s *RecipeService) resolvePreferences(ctx context.Context, cmd inbound.SuggestMealsCommand) (*user.Preferences, error) {
	if len(cmd.ProteinPreferences) > 0 || len(cmd.CuisinePreferences) > 0 || len(cmd.DietaryRestrictions) > 0 {
		return &user.Preferences{
			UserID:              cmd.UserID,
			ProteinPreferences:  cmd.ProteinPreferences,
			CuisinePreferences:  cmd.CuisinePreferences,
			DietaryRestrictions: cmd.DietaryRestrictions,
		}, nil
	}

	stored, err := s.prefRepo.Find(ctx, cmd.UserID)
	if err != nil {
		return nil, errors.NewDatabaseError("find preferences", err)
	}
	if stored == nil {
		return user.DefaultPreferences(cmd.UserID), nil
	}
	return stored, nil
}

func (s *RecipeService) cachedSuggestions(ctx context.Context, prefs *user.Preferences, count int) ([]outbound.MealSuggestion, bool) {
	suggestions, ok := s.cache.Get(ctx, suggestionKey(prefs, count))
	if ok {
		s.logger.Debug("Suggestion cache hit", zap.Int("count", count))
	}
	return suggestions, ok
}

// persistSuggestions stores each suggestion as a system-generated recipe.
// Individual failures are logged and skipped so one malformed suggestion
// does not sink the batch.
func (s *RecipeService) persistSuggestions(ctx context.Context, suggestions []outbound.MealSuggestion) []*recipe.Recipe {
	saved := make([]*recipe.Recipe, 0, len(suggestions))
	for _, suggestion := range suggestions {
		entity, err := recipe.NewRecipe(suggestion.Title, suggestion.Ingredients, nil)
		if err == nil {
			err = entity.SetDetails(suggestion.Description, suggestion.Cuisine, suggestion.Protein, suggestion.CookingTime, suggestion.Rating)
		}
		if err != nil {
			s.logger.Warn("Skipping malformed suggestion",
				zap.String("title", suggestion.Title),
				zap.Error(err),
			)
			continue
		}
		entity.SetInstructions(suggestion.Instructions)
		entity.SetMedia(suggestion.ImageURL, suggestion.SourceURL)

		if err := s.recipeRepo.Create(ctx, entity); err != nil {
			s.logger.Error("Failed to save suggested recipe",
				zap.String("title", suggestion.Title),
				zap.Error(err),
			)
			continue
		}
		saved = append(saved, entity)
	}
	return saved
}

// suggestionKey fingerprints a preference set for cache lookups. Tag order
// within a list is irrelevant, so lists are sorted before hashing.
func suggestionKey(prefs *user.Preferences, count int) string {
	canonical := func(tags []string) string {
		sorted := append([]string(nil), tags...)
		sort.Strings(sorted)
		return strings.Join(sorted, ",")
	}

	sum := sha256.Sum256([]byte(fmt.Sprintf("%s|%s|%s|%d",
		canonical(prefs.ProteinPreferences),
		canonical(prefs.CuisinePreferences),
		canonical(prefs.DietaryRestrictions),
		count,
	)))
	return "suggestions:" + hex.EncodeToString(sum[:])
}
