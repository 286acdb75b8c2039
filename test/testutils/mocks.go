// Package testutils provides mock implementations and test data factories.
package testutils

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/jarrett-joe/my-meal-planner/internal/domain/grocery"
	"github.com/jarrett-joe/my-meal-planner/internal/domain/mealplan"
	"github.com/jarrett-joe/my-meal-planner/internal/domain/recipe"
	"github.com/jarrett-joe/my-meal-planner/internal/domain/user"
	"github.com/jarrett-joe/my-meal-planner/internal/ports/outbound"
)

// MockRecipeRepository provides a mock implementation of RecipeRepository
type MockRecipeRepository struct {
	mock.Mock
}

func (m *MockRecipeRepository) Create(ctx context.Context, r *recipe.Recipe) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

func (m *MockRecipeRepository) FindByID(ctx context.Context, id uuid.UUID) (*recipe.Recipe, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*recipe.Recipe), args.Error(1)
}

func (m *MockRecipeRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*recipe.Recipe, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*recipe.Recipe), args.Error(1)
}

func (m *MockRecipeRepository) List(ctx context.Context, cuisine, protein string, limit int) ([]*recipe.Recipe, error) {
	args := m.Called(ctx, cuisine, protein, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*recipe.Recipe), args.Error(1)
}

// MockCalendarRepository provides a mock implementation of CalendarRepository
type MockCalendarRepository struct {
	mock.Mock
}

func (m *MockCalendarRepository) Upsert(ctx context.Context, entry *mealplan.Entry) (*mealplan.Entry, error) {
	args := m.Called(ctx, entry)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*mealplan.Entry), args.Error(1)
}

func (m *MockCalendarRepository) Delete(ctx context.Context, userID uuid.UUID, date time.Time, slot mealplan.Slot) error {
	args := m.Called(ctx, userID, date, slot)
	return args.Error(0)
}

func (m *MockCalendarRepository) ListRange(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]*mealplan.ScheduledMeal, error) {
	args := m.Called(ctx, userID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*mealplan.ScheduledMeal), args.Error(1)
}

// MockFavoriteRepository provides a mock implementation of FavoriteRepository
type MockFavoriteRepository struct {
	mock.Mock
}

func (m *MockFavoriteRepository) Add(ctx context.Context, userID, recipeID uuid.UUID) error {
	args := m.Called(ctx, userID, recipeID)
	return args.Error(0)
}

func (m *MockFavoriteRepository) Remove(ctx context.Context, userID, recipeID uuid.UUID) error {
	args := m.Called(ctx, userID, recipeID)
	return args.Error(0)
}

func (m *MockFavoriteRepository) List(ctx context.Context, userID uuid.UUID) ([]*recipe.Recipe, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*recipe.Recipe), args.Error(1)
}

// MockPreferenceRepository provides a mock implementation of PreferenceRepository
type MockPreferenceRepository struct {
	mock.Mock
}

func (m *MockPreferenceRepository) Find(ctx context.Context, userID uuid.UUID) (*user.Preferences, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.Preferences), args.Error(1)
}

func (m *MockPreferenceRepository) Upsert(ctx context.Context, prefs *user.Preferences) error {
	args := m.Called(ctx, prefs)
	return args.Error(0)
}

// MockGroceryListRepository provides a mock implementation of GroceryListRepository
type MockGroceryListRepository struct {
	mock.Mock
}

func (m *MockGroceryListRepository) Upsert(ctx context.Context, list *grocery.List) (*grocery.List, error) {
	args := m.Called(ctx, list)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*grocery.List), args.Error(1)
}

func (m *MockGroceryListRepository) Find(ctx context.Context, userID uuid.UUID, weekStart time.Time) (*grocery.List, error) {
	args := m.Called(ctx, userID, weekStart)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*grocery.List), args.Error(1)
}

// MockUserRepository provides a mock implementation of UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Upsert(ctx context.Context, u *user.User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*user.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.User), args.Error(1)
}

func (m *MockUserRepository) ConsumeCredits(ctx context.Context, id uuid.UUID, n int) error {
	args := m.Called(ctx, id, n)
	return args.Error(0)
}

// MockSuggestionService provides a mock implementation of SuggestionService
type MockSuggestionService struct {
	mock.Mock
}

func (m *MockSuggestionService) SuggestMeals(ctx context.Context, prefs *user.Preferences, count int) ([]outbound.MealSuggestion, error) {
	args := m.Called(ctx, prefs, count)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]outbound.MealSuggestion), args.Error(1)
}

// MockIngredientMerger provides a mock implementation of IngredientMerger
type MockIngredientMerger struct {
	mock.Mock
}

func (m *MockIngredientMerger) MergeIngredients(ctx context.Context, meals []outbound.MealIngredients) ([]grocery.Category, error) {
	args := m.Called(ctx, meals)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]grocery.Category), args.Error(1)
}

// NoopCache is a SuggestionCache that never hits. Services treat a miss as a
// plain pass-through, which keeps suggestion tests deterministic.
type NoopCache struct{}

func (NoopCache) Get(ctx context.Context, key string) ([]outbound.MealSuggestion, bool) {
	return nil, false
}

func (NoopCache) Set(ctx context.Context, key string, suggestions []outbound.MealSuggestion, ttl time.Duration) {
}

// NoopNotifier is a Notifier that records nothing and never fails.
type NoopNotifier struct{}

func (NoopNotifier) GroceryListReady(ctx context.Context, u *user.User, weekStart time.Time) {}

func (NoopNotifier) MealsSuggested(ctx context.Context, u *user.User, count int) {}
