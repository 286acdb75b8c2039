package grocery_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	appgrocery "github.com/jarrett-joe/my-meal-planner/internal/application/grocery"
	"github.com/jarrett-joe/my-meal-planner/internal/domain/grocery"
	"github.com/jarrett-joe/my-meal-planner/internal/domain/mealplan"
	"github.com/jarrett-joe/my-meal-planner/internal/domain/recipe"
	"github.com/jarrett-joe/my-meal-planner/internal/ports/inbound"
	"github.com/jarrett-joe/my-meal-planner/pkg/errors"
	"github.com/jarrett-joe/my-meal-planner/test/testutils"
)

type groceryFixture struct {
	groceryRepo  *testutils.MockGroceryListRepository
	calendarRepo *testutils.MockCalendarRepository
	recipeRepo   *testutils.MockRecipeRepository
	userRepo     *testutils.MockUserRepository
	merger       *testutils.MockIngredientMerger
	svc          inbound.GroceryService
}

func newGroceryFixture() *groceryFixture {
	f := &groceryFixture{
		groceryRepo:  new(testutils.MockGroceryListRepository),
		calendarRepo: new(testutils.MockCalendarRepository),
		recipeRepo:   new(testutils.MockRecipeRepository),
		userRepo:     new(testutils.MockUserRepository),
		merger:       new(testutils.MockIngredientMerger),
	}
	f.svc = appgrocery.NewGroceryService(
		f.groceryRepo, f.calendarRepo, f.recipeRepo, f.userRepo,
		f.merger, testutils.NoopNotifier{}, zap.NewNop(),
	)
	return f
}

var weekStart = time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC)

func TestGenerateGroceryList_ExplicitSelection(t *testing.T) {
	userID := uuid.New()
	factory := testutils.NewRecipeFactory(11)

	t.Run("merges the selected recipes", func(t *testing.T) {
		f := newGroceryFixture()
		r1, r2 := factory.Recipe(), factory.Recipe()
		ids := []uuid.UUID{r1.ID(), r2.ID()}

		f.recipeRepo.On("FindByIDs", mock.Anything, ids).Return([]*recipe.Recipe{r1, r2}, nil)
		f.merger.On("MergeIngredients", mock.Anything, mock.AnythingOfType("[]outbound.MealIngredients")).
			Return([]grocery.Category{
				{Name: "Proteins", Items: []string{"2 lbs chicken"}},
				{Name: "Produce", Items: []string{"3 onions", "garlic"}},
			}, nil)
		stored, err := grocery.NewList(userID, weekStart, []grocery.Category{{Name: "Proteins", Items: []string{"2 lbs chicken"}}})
		require.NoError(t, err)
		f.groceryRepo.On("Upsert", mock.Anything, mock.AnythingOfType("*grocery.List")).Return(stored, nil)
		f.userRepo.On("FindByID", mock.Anything, userID).Return(nil, nil)

		dto, err := f.svc.GenerateGroceryList(context.Background(), inbound.GenerateGroceryListCommand{
			UserID:    userID,
			RecipeIDs: &ids,
			WeekStart: weekStart,
		})

		require.NoError(t, err)
		assert.Equal(t, "2025-03-03", dto.WeekStart)
		f.merger.AssertExpectations(t)
	})

	t.Run("never persists blank or empty categories from the merge backend", func(t *testing.T) {
		f := newGroceryFixture()
		r := factory.Recipe()
		ids := []uuid.UUID{r.ID()}

		f.recipeRepo.On("FindByIDs", mock.Anything, ids).Return([]*recipe.Recipe{r}, nil)
		f.merger.On("MergeIngredients", mock.Anything, mock.Anything).
			Return([]grocery.Category{
				{Name: "Produce", Items: []string{"carrots"}},
				{Name: "", Items: []string{"unlabeled"}},
				{Name: "Dairy", Items: []string{}},
			}, nil)
		stored, err := grocery.NewList(userID, weekStart, []grocery.Category{{Name: "Produce", Items: []string{"carrots"}}})
		require.NoError(t, err)
		f.groceryRepo.On("Upsert", mock.Anything, mock.MatchedBy(func(l *grocery.List) bool {
			return len(l.Categories()) == 1 && l.Categories()[0].Name == "Produce"
		})).Return(stored, nil)
		f.userRepo.On("FindByID", mock.Anything, userID).Return(nil, nil)

		dto, err := f.svc.GenerateGroceryList(context.Background(), inbound.GenerateGroceryListCommand{
			UserID:    userID,
			RecipeIDs: &ids,
			WeekStart: weekStart,
		})

		require.NoError(t, err)
		require.Len(t, dto.Categories, 1)
		f.groceryRepo.AssertExpectations(t)
	})

	t.Run("rejects an empty selection", func(t *testing.T) {
		f := newGroceryFixture()
		empty := []uuid.UUID{}

		_, err := f.svc.GenerateGroceryList(context.Background(), inbound.GenerateGroceryListCommand{
			UserID:    userID,
			RecipeIDs: &empty,
			WeekStart: weekStart,
		})

		require.Error(t, err)
		assert.True(t, errors.Is(err, errors.CodeEmptySelection))
		f.merger.AssertNotCalled(t, "MergeIngredients")
	})

	t.Run("rejects a selection that resolves to nothing", func(t *testing.T) {
		f := newGroceryFixture()
		ids := []uuid.UUID{uuid.New(), uuid.New()}

		f.recipeRepo.On("FindByIDs", mock.Anything, ids).Return([]*recipe.Recipe{}, nil)

		_, err := f.svc.GenerateGroceryList(context.Background(), inbound.GenerateGroceryListCommand{
			UserID:    userID,
			RecipeIDs: &ids,
			WeekStart: weekStart,
		})

		require.Error(t, err)
		assert.True(t, errors.Is(err, errors.CodeEmptySelection))
	})
}

func TestGenerateGroceryList_WeekMode(t *testing.T) {
	userID := uuid.New()
	factory := testutils.NewRecipeFactory(13)

	t.Run("uses the calendar window when no selection is given", func(t *testing.T) {
		f := newGroceryFixture()
		r := factory.Recipe()
		entry := mealplan.ReconstituteEntry(userID, weekStart, mealplan.SlotDinner, r.ID(), time.Now())

		f.calendarRepo.On("ListRange", mock.Anything, userID, weekStart, mealplan.WeekEnd(weekStart)).
			Return([]*mealplan.ScheduledMeal{{Entry: entry, Recipe: r}}, nil)
		f.merger.On("MergeIngredients", mock.Anything, mock.AnythingOfType("[]outbound.MealIngredients")).
			Return([]grocery.Category{{Name: "Produce", Items: []string{"carrots"}}}, nil)
		stored, err := grocery.NewList(userID, weekStart, []grocery.Category{{Name: "Produce", Items: []string{"carrots"}}})
		require.NoError(t, err)
		f.groceryRepo.On("Upsert", mock.Anything, mock.AnythingOfType("*grocery.List")).Return(stored, nil)
		f.userRepo.On("FindByID", mock.Anything, userID).Return(nil, nil)

		dto, err := f.svc.GenerateGroceryList(context.Background(), inbound.GenerateGroceryListCommand{
			UserID:    userID,
			WeekStart: weekStart,
		})

		require.NoError(t, err)
		require.Len(t, dto.Categories, 1)
		assert.Equal(t, "Produce", dto.Categories[0].Category)
	})

	t.Run("rejects an empty calendar week with an actionable message", func(t *testing.T) {
		f := newGroceryFixture()

		f.calendarRepo.On("ListRange", mock.Anything, userID, weekStart, mealplan.WeekEnd(weekStart)).
			Return([]*mealplan.ScheduledMeal{}, nil)

		_, err := f.svc.GenerateGroceryList(context.Background(), inbound.GenerateGroceryListCommand{
			UserID:    userID,
			WeekStart: weekStart,
		})

		require.Error(t, err)
		assert.True(t, errors.Is(err, errors.CodeEmptySelection))
		assert.Contains(t, err.Error(), "add meals first")
	})

	t.Run("requires a week start", func(t *testing.T) {
		f := newGroceryFixture()

		_, err := f.svc.GenerateGroceryList(context.Background(), inbound.GenerateGroceryListCommand{
			UserID: userID,
		})

		require.Error(t, err)
		assert.True(t, errors.Is(err, errors.CodeValidationFailed))
	})
}

func TestGenerateGroceryList_MergeFailure(t *testing.T) {
	userID := uuid.New()
	factory := testutils.NewRecipeFactory(17)
	f := newGroceryFixture()

	r := factory.Recipe()
	ids := []uuid.UUID{r.ID()}
	f.recipeRepo.On("FindByIDs", mock.Anything, ids).Return([]*recipe.Recipe{r}, nil)
	f.merger.On("MergeIngredients", mock.Anything, mock.Anything).Return(nil, assert.AnError)

	_, err := f.svc.GenerateGroceryList(context.Background(), inbound.GenerateGroceryListCommand{
		UserID:    userID,
		RecipeIDs: &ids,
		WeekStart: weekStart,
	})

	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.CodeExternalServiceError))
	f.groceryRepo.AssertNotCalled(t, "Upsert")
}

func TestGetGroceryList(t *testing.T) {
	userID := uuid.New()

	t.Run("returns the stored list", func(t *testing.T) {
		f := newGroceryFixture()
		stored, err := grocery.NewList(userID, weekStart, []grocery.Category{
			{Name: "Pantry", Items: []string{"rice", "olive oil"}},
		})
		require.NoError(t, err)
		f.groceryRepo.On("Find", mock.Anything, userID, weekStart).Return(stored, nil)

		dto, err := f.svc.GetGroceryList(context.Background(), userID, weekStart)

		require.NoError(t, err)
		require.Len(t, dto.Categories, 1)
		assert.Equal(t, []string{"rice", "olive oil"}, dto.Categories[0].Items)
	})

	t.Run("missing list is not-found", func(t *testing.T) {
		f := newGroceryFixture()
		f.groceryRepo.On("Find", mock.Anything, userID, weekStart).Return(nil, nil)

		_, err := f.svc.GetGroceryList(context.Background(), userID, weekStart)

		require.Error(t, err)
		assert.True(t, errors.Is(err, errors.CodeNotFound))
	})
}
