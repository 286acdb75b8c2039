// Package outbound defines the interfaces for outbound ports (secondary/driven adapters)
// These are the interfaces that the application uses to interact with external systems
package outbound

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jarrett-joe/my-meal-planner/internal/domain/grocery"
	"github.com/jarrett-joe/my-meal-planner/internal/domain/mealplan"
	"github.com/jarrett-joe/my-meal-planner/internal/domain/recipe"
	"github.com/jarrett-joe/my-meal-planner/internal/domain/user"
)

// RecipeRepository defines the interface for recipe persistence.
// Recipes are immutable once created; there is no update operation.
type RecipeRepository interface {
	Create(ctx context.Context, recipe *recipe.Recipe) error
	FindByID(ctx context.Context, id uuid.UUID) (*recipe.Recipe, error)

	// FindByIDs resolves a batch of recipe IDs. IDs that do not resolve are
	// silently absent from the result; callers decide whether that matters.
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*recipe.Recipe, error)

	// List returns recipes filtered by optional cuisine/protein tags,
	// best-rated first.
	List(ctx context.Context, cuisine, protein string, limit int) ([]*recipe.Recipe, error)
}

// CalendarRepository defines the interface for meal calendar persistence.
// Uniqueness on (user, scheduled date, slot) is the storage layer's job: Upsert
// must be an atomic insert-or-replace on that key, never read-then-write.
type CalendarRepository interface {
	Upsert(ctx context.Context, entry *mealplan.Entry) (*mealplan.Entry, error)

	// Delete removes the entry at the exact (user, date, slot) key. Deleting
	// an absent key is a no-op, not an error.
	Delete(ctx context.Context, userID uuid.UUID, date time.Time, slot mealplan.Slot) error

	// ListRange returns the user's entries with dates in the inclusive
	// [from, to] range, each joined with its recipe, ordered by date then by
	// slot order.
	ListRange(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]*mealplan.ScheduledMeal, error)
}

// FavoriteRepository defines the interface for the favorites ledger.
type FavoriteRepository interface {
	// Add inserts the (user, recipe) pair; a duplicate add is a silent no-op.
	Add(ctx context.Context, userID, recipeID uuid.UUID) error

	// Remove deletes the pair; removing an absent pair is a no-op.
	Remove(ctx context.Context, userID, recipeID uuid.UUID) error

	// List returns the user's favorites joined with recipes, most recently
	// favorited first.
	List(ctx context.Context, userID uuid.UUID) ([]*recipe.Recipe, error)
}

// PreferenceRepository defines the interface for preference persistence.
type PreferenceRepository interface {
	// Find returns the stored preference row, or nil when the user has never
	// written preferences.
	Find(ctx context.Context, userID uuid.UUID) (*user.Preferences, error)

	// Upsert writes the full preference row keyed by user ID.
	Upsert(ctx context.Context, prefs *user.Preferences) error
}

// GroceryListRepository defines the interface for grocery list persistence.
type GroceryListRepository interface {
	// Upsert replaces the list stored for (user, week start) in full.
	Upsert(ctx context.Context, list *grocery.List) (*grocery.List, error)

	// Find returns the list for (user, week start), or nil when none exists.
	Find(ctx context.Context, userID uuid.UUID, weekStart time.Time) (*grocery.List, error)
}

// UserRepository defines the interface for user persistence.
type UserRepository interface {
	Upsert(ctx context.Context, u *user.User) error
	FindByID(ctx context.Context, id uuid.UUID) (*user.User, error)

	// ConsumeCredits atomically deducts n meal credits and adds n to the
	// lifetime usage counter. Deduction is an explicit step, deliberately
	// uncoordinated with recipe persistence.
	ConsumeCredits(ctx context.Context, id uuid.UUID, n int) error
}
