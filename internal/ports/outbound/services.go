package outbound

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jarrett-joe/my-meal-planner/internal/domain/grocery"
	"github.com/jarrett-joe/my-meal-planner/internal/domain/user"
)

// MealSuggestion is the normalized shape of one AI-suggested meal. Whatever
// shape the generative backend answers with, the adapter flattens it to this
// before it reaches the application layer.
type MealSuggestion struct {
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	Cuisine      string   `json:"cuisine"`
	Protein      string   `json:"protein"`
	CookingTime  int      `json:"cookingTime"`
	Ingredients  []string `json:"ingredients"`
	Instructions string   `json:"instructions"`
	Rating       float64  `json:"rating"`
	ImageURL     string   `json:"imageUrl"`
	SourceURL    string   `json:"sourceUrl"`
}

// SuggestionService defines the interface to the recipe suggestion backend.
type SuggestionService interface {
	// SuggestMeals generates up to count meal suggestions matching the given
	// preferences. Failures of the backend, including unparseable responses,
	// surface as external-service errors; quota decisions are not made here.
	SuggestMeals(ctx context.Context, prefs *user.Preferences, count int) ([]MealSuggestion, error)
}

// MealIngredients names one recipe's ingredient list for a merge request.
type MealIngredients struct {
	Title       string   `json:"title"`
	Ingredients []string `json:"ingredients"`
}

// IngredientMerger defines the interface to the ingredient-merging backend,
// which combines heterogeneous ingredient lists into a deduplicated,
// categorized shopping list. The merging heuristics belong to the backend;
// only this call contract matters to the core.
type IngredientMerger interface {
	MergeIngredients(ctx context.Context, meals []MealIngredients) ([]grocery.Category, error)
}

// Notifier defines the fire-and-forget notification interface. Failures are
// logged by implementations and never propagate to callers.
type Notifier interface {
	GroceryListReady(ctx context.Context, u *user.User, weekStart time.Time)
	MealsSuggested(ctx context.Context, u *user.User, count int)
}

// SuggestionCache caches normalized suggestion responses keyed by preference
// fingerprint. A nil-safe no-op implementation is acceptable.
type SuggestionCache interface {
	Get(ctx context.Context, key string) ([]MealSuggestion, bool)
	Set(ctx context.Context, key string, suggestions []MealSuggestion, ttl time.Duration)
}

// CurrentUser carries the identity resolved for an inbound request. The core
// never reads ambient session state; the HTTP layer resolves identity and
// passes it down explicitly.
type CurrentUser struct {
	ID        uuid.UUID
	Email     string
	FirstName string
	LastName  string
}
