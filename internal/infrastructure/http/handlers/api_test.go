package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/jarrett-joe/my-meal-planner/internal/infrastructure/http/handlers"
	"github.com/jarrett-joe/my-meal-planner/internal/infrastructure/http/middleware"
	"github.com/jarrett-joe/my-meal-planner/internal/ports/inbound"
	"github.com/jarrett-joe/my-meal-planner/internal/ports/outbound"
	"github.com/jarrett-joe/my-meal-planner/pkg/errors"
)

// Inbound service mocks

type mockRecipeService struct{ mock.Mock }

func (m *mockRecipeService) CreateRecipe(ctx context.Context, cmd inbound.CreateRecipeCommand) (*inbound.RecipeDTO, error) {
	args := m.Called(ctx, cmd)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inbound.RecipeDTO), args.Error(1)
}

func (m *mockRecipeService) SuggestMeals(ctx context.Context, cmd inbound.SuggestMealsCommand) ([]inbound.RecipeDTO, error) {
	args := m.Called(ctx, cmd)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]inbound.RecipeDTO), args.Error(1)
}

func (m *mockRecipeService) AddFavorite(ctx context.Context, userID, recipeID uuid.UUID) error {
	return m.Called(ctx, userID, recipeID).Error(0)
}

func (m *mockRecipeService) RemoveFavorite(ctx context.Context, userID, recipeID uuid.UUID) error {
	return m.Called(ctx, userID, recipeID).Error(0)
}

func (m *mockRecipeService) GetRecipeByID(ctx context.Context, recipeID uuid.UUID) (*inbound.RecipeDTO, error) {
	args := m.Called(ctx, recipeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inbound.RecipeDTO), args.Error(1)
}

func (m *mockRecipeService) ListRecipes(ctx context.Context, query inbound.ListRecipesQuery) ([]inbound.RecipeDTO, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]inbound.RecipeDTO), args.Error(1)
}

func (m *mockRecipeService) ListFavorites(ctx context.Context, userID uuid.UUID) ([]inbound.RecipeDTO, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]inbound.RecipeDTO), args.Error(1)
}

type mockMealPlanService struct{ mock.Mock }

func (m *mockMealPlanService) ScheduleMeal(ctx context.Context, cmd inbound.ScheduleMealCommand) (*inbound.CalendarEntryDTO, error) {
	args := m.Called(ctx, cmd)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inbound.CalendarEntryDTO), args.Error(1)
}

func (m *mockMealPlanService) UnscheduleMeal(ctx context.Context, cmd inbound.UnscheduleMealCommand) error {
	return m.Called(ctx, cmd).Error(0)
}

func (m *mockMealPlanService) ListCalendar(ctx context.Context, query inbound.ListCalendarQuery) ([]inbound.CalendarEntryDTO, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]inbound.CalendarEntryDTO), args.Error(1)
}

type mockGroceryService struct{ mock.Mock }

func (m *mockGroceryService) GenerateGroceryList(ctx context.Context, cmd inbound.GenerateGroceryListCommand) (*inbound.GroceryListDTO, error) {
	args := m.Called(ctx, cmd)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inbound.GroceryListDTO), args.Error(1)
}

func (m *mockGroceryService) GetGroceryList(ctx context.Context, userID uuid.UUID, weekStart time.Time) (*inbound.GroceryListDTO, error) {
	args := m.Called(ctx, userID, weekStart)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inbound.GroceryListDTO), args.Error(1)
}

type mockUserService struct{ mock.Mock }

func (m *mockUserService) EnsureUser(ctx context.Context, cmd inbound.EnsureUserCommand) (*inbound.UserDTO, error) {
	args := m.Called(ctx, cmd)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inbound.UserDTO), args.Error(1)
}

func (m *mockUserService) GetUser(ctx context.Context, userID uuid.UUID) (*inbound.UserDTO, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inbound.UserDTO), args.Error(1)
}

func (m *mockUserService) GetPreferences(ctx context.Context, userID uuid.UUID) (*inbound.PreferencesDTO, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inbound.PreferencesDTO), args.Error(1)
}

func (m *mockUserService) SetPreferences(ctx context.Context, cmd inbound.SetPreferencesCommand) (*inbound.PreferencesDTO, error) {
	args := m.Called(ctx, cmd)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inbound.PreferencesDTO), args.Error(1)
}

type apiFixture struct {
	recipes  *mockRecipeService
	mealPlan *mockMealPlanService
	grocery  *mockGroceryService
	users    *mockUserService
	api      *handlers.API
	userID   uuid.UUID
}

func newAPIFixture(t *testing.T) *apiFixture {
	t.Helper()
	f := &apiFixture{
		recipes:  &mockRecipeService{},
		mealPlan: &mockMealPlanService{},
		grocery:  &mockGroceryService{},
		users:    &mockUserService{},
		userID:   uuid.New(),
	}
	f.api = handlers.NewAPI(f.recipes, f.mealPlan, f.grocery, f.users, zap.NewNop())
	return f
}

// request builds an authenticated request carrying the fixture user's
// identity, the way Authenticate would.
func (f *apiFixture) request(method, target string, body interface{}) *http.Request {
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			panic(err)
		}
	}
	req := httptest.NewRequest(method, target, &buf)
	ctx := middleware.WithCurrentUser(req.Context(), outbound.CurrentUser{
		ID:    f.userID,
		Email: "cook@example.com",
	})
	return req.WithContext(ctx)
}

func withURLParams(req *http.Request, params map[string]string) *http.Request {
	rctx := chi.NewRouteContext()
	for k, v := range params {
		rctx.URLParams.Add(k, v)
	}
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

func errorCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body.Error.Code
}

func TestScheduleMeal(t *testing.T) {
	t.Run("schedules a valid entry", func(t *testing.T) {
		f := newAPIFixture(t)
		recipeID := uuid.New()

		f.mealPlan.On("ScheduleMeal", mock.Anything, mock.MatchedBy(func(cmd inbound.ScheduleMealCommand) bool {
			return cmd.UserID == f.userID &&
				cmd.RecipeID == recipeID &&
				cmd.Date.Format("2006-01-02") == "2025-03-05" &&
				string(cmd.Slot) == "dinner"
		})).Return(&inbound.CalendarEntryDTO{
			UserID:        f.userID,
			ScheduledDate: "2025-03-05",
			MealSlot:      "dinner",
		}, nil)

		rec := httptest.NewRecorder()
		f.api.ScheduleMeal(rec, f.request(http.MethodPost, "/api/v1/calendar", map[string]string{
			"date":      "2025-03-05",
			"meal_slot": "dinner",
			"recipe_id": recipeID.String(),
		}))

		require.Equal(t, http.StatusOK, rec.Code)
		f.mealPlan.AssertExpectations(t)
	})

	t.Run("rejects an unknown meal slot before reaching the service", func(t *testing.T) {
		f := newAPIFixture(t)

		rec := httptest.NewRecorder()
		f.api.ScheduleMeal(rec, f.request(http.MethodPost, "/api/v1/calendar", map[string]string{
			"date":      "2025-03-05",
			"meal_slot": "brunch",
			"recipe_id": uuid.New().String(),
		}))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, string(errors.CodeUnknownMealSlot), errorCode(t, rec))
		f.mealPlan.AssertNotCalled(t, "ScheduleMeal", mock.Anything, mock.Anything)
	})

	t.Run("rejects a malformed date", func(t *testing.T) {
		f := newAPIFixture(t)

		rec := httptest.NewRecorder()
		f.api.ScheduleMeal(rec, f.request(http.MethodPost, "/api/v1/calendar", map[string]string{
			"date":      "03/05/2025",
			"meal_slot": "dinner",
			"recipe_id": uuid.New().String(),
		}))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, string(errors.CodeValidationFailed), errorCode(t, rec))
	})
}

func TestUnscheduleMeal(t *testing.T) {
	f := newAPIFixture(t)

	f.mealPlan.On("UnscheduleMeal", mock.Anything, mock.MatchedBy(func(cmd inbound.UnscheduleMealCommand) bool {
		return cmd.UserID == f.userID && string(cmd.Slot) == "lunch"
	})).Return(nil)

	req := withURLParams(f.request(http.MethodDelete, "/api/v1/calendar/2025-03-05/lunch", nil), map[string]string{
		"date": "2025-03-05",
		"slot": "lunch",
	})
	rec := httptest.NewRecorder()
	f.api.UnscheduleMeal(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	f.mealPlan.AssertExpectations(t)
}

func TestListCalendar(t *testing.T) {
	t.Run("returns entries for the range", func(t *testing.T) {
		f := newAPIFixture(t)

		f.mealPlan.On("ListCalendar", mock.Anything, mock.MatchedBy(func(q inbound.ListCalendarQuery) bool {
			return q.UserID == f.userID &&
				q.From.Format("2006-01-02") == "2025-03-03" &&
				q.To.Format("2006-01-02") == "2025-03-09"
		})).Return([]inbound.CalendarEntryDTO{{ScheduledDate: "2025-03-04", MealSlot: "dinner"}}, nil)

		rec := httptest.NewRecorder()
		f.api.ListCalendar(rec, f.request(http.MethodGet, "/api/v1/calendar?start=2025-03-03&end=2025-03-09", nil))

		require.Equal(t, http.StatusOK, rec.Code)

		var entries []inbound.CalendarEntryDTO
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &entries))
		assert.Len(t, entries, 1)
	})

	t.Run("rejects a missing range", func(t *testing.T) {
		f := newAPIFixture(t)

		rec := httptest.NewRecorder()
		f.api.ListCalendar(rec, f.request(http.MethodGet, "/api/v1/calendar", nil))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestSuggestMeals(t *testing.T) {
	t.Run("passes inline preferences through", func(t *testing.T) {
		f := newAPIFixture(t)

		f.recipes.On("SuggestMeals", mock.Anything, mock.MatchedBy(func(cmd inbound.SuggestMealsCommand) bool {
			return cmd.UserID == f.userID && cmd.Count == 4 && len(cmd.ProteinPreferences) == 1
		})).Return([]inbound.RecipeDTO{{Title: "Seared Salmon"}}, nil)

		rec := httptest.NewRecorder()
		f.api.SuggestMeals(rec, f.request(http.MethodPost, "/api/v1/recipes/suggest", map[string]interface{}{
			"count":               4,
			"protein_preferences": []string{"salmon"},
		}))

		require.Equal(t, http.StatusOK, rec.Code)
		f.recipes.AssertExpectations(t)
	})

	t.Run("maps quota exhaustion to 429", func(t *testing.T) {
		f := newAPIFixture(t)

		f.recipes.On("SuggestMeals", mock.Anything, mock.Anything).
			Return(nil, errors.NewQuotaExceededError("meal credit", 10))

		rec := httptest.NewRecorder()
		f.api.SuggestMeals(rec, f.request(http.MethodPost, "/api/v1/recipes/suggest", map[string]interface{}{
			"count": 4,
		}))

		assert.Equal(t, http.StatusTooManyRequests, rec.Code)
		assert.Equal(t, string(errors.CodeQuotaExceeded), errorCode(t, rec))
	})
}

func TestFavorites(t *testing.T) {
	t.Run("add favorite returns no content", func(t *testing.T) {
		f := newAPIFixture(t)
		recipeID := uuid.New()

		f.recipes.On("AddFavorite", mock.Anything, f.userID, recipeID).Return(nil)

		req := withURLParams(f.request(http.MethodPost, "/api/v1/favorites/"+recipeID.String(), nil), map[string]string{
			"recipeID": recipeID.String(),
		})
		rec := httptest.NewRecorder()
		f.api.AddFavorite(rec, req)

		assert.Equal(t, http.StatusNoContent, rec.Code)
	})

	t.Run("add favorite for an unknown recipe maps to 404", func(t *testing.T) {
		f := newAPIFixture(t)
		recipeID := uuid.New()

		f.recipes.On("AddFavorite", mock.Anything, f.userID, recipeID).
			Return(errors.NewRecipeNotFoundError(recipeID.String()))

		req := withURLParams(f.request(http.MethodPost, "/api/v1/favorites/"+recipeID.String(), nil), map[string]string{
			"recipeID": recipeID.String(),
		})
		rec := httptest.NewRecorder()
		f.api.AddFavorite(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, string(errors.CodeRecipeNotFound), errorCode(t, rec))
	})

	t.Run("rejects a malformed recipe id", func(t *testing.T) {
		f := newAPIFixture(t)

		req := withURLParams(f.request(http.MethodPost, "/api/v1/favorites/not-a-uuid", nil), map[string]string{
			"recipeID": "not-a-uuid",
		})
		rec := httptest.NewRecorder()
		f.api.AddFavorite(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		f.recipes.AssertNotCalled(t, "AddFavorite", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestGenerateGroceryList(t *testing.T) {
	t.Run("explicit recipe selection", func(t *testing.T) {
		f := newAPIFixture(t)
		r1, r2 := uuid.New(), uuid.New()

		f.grocery.On("GenerateGroceryList", mock.Anything, mock.MatchedBy(func(cmd inbound.GenerateGroceryListCommand) bool {
			return cmd.UserID == f.userID &&
				cmd.RecipeIDs != nil && len(*cmd.RecipeIDs) == 2 &&
				cmd.WeekStart.Format("2006-01-02") == "2025-03-03"
		})).Return(&inbound.GroceryListDTO{WeekStart: "2025-03-03"}, nil)

		rec := httptest.NewRecorder()
		f.api.GenerateGroceryList(rec, f.request(http.MethodPost, "/api/v1/grocery-list/generate", map[string]interface{}{
			"recipe_ids":      []string{r1.String(), r2.String()},
			"week_start_date": "2025-03-03",
		}))

		require.Equal(t, http.StatusOK, rec.Code)
		f.grocery.AssertExpectations(t)
	})

	t.Run("omitted recipe ids selects the calendar week", func(t *testing.T) {
		f := newAPIFixture(t)

		f.grocery.On("GenerateGroceryList", mock.Anything, mock.MatchedBy(func(cmd inbound.GenerateGroceryListCommand) bool {
			return cmd.RecipeIDs == nil
		})).Return(&inbound.GroceryListDTO{WeekStart: "2025-03-03"}, nil)

		rec := httptest.NewRecorder()
		f.api.GenerateGroceryList(rec, f.request(http.MethodPost, "/api/v1/grocery-list/generate", map[string]interface{}{
			"week_start_date": "2025-03-03",
		}))

		require.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("empty selection maps to 400", func(t *testing.T) {
		f := newAPIFixture(t)

		f.grocery.On("GenerateGroceryList", mock.Anything, mock.Anything).
			Return(nil, errors.NewEmptySelectionError("select at least one recipe"))

		rec := httptest.NewRecorder()
		f.api.GenerateGroceryList(rec, f.request(http.MethodPost, "/api/v1/grocery-list/generate", map[string]interface{}{
			"recipe_ids":      []string{},
			"week_start_date": "2025-03-03",
		}))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, string(errors.CodeEmptySelection), errorCode(t, rec))
	})

	t.Run("missing week start is rejected", func(t *testing.T) {
		f := newAPIFixture(t)

		rec := httptest.NewRecorder()
		f.api.GenerateGroceryList(rec, f.request(http.MethodPost, "/api/v1/grocery-list/generate", map[string]interface{}{
			"recipe_ids": []string{uuid.New().String()},
		}))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		f.grocery.AssertNotCalled(t, "GenerateGroceryList", mock.Anything, mock.Anything)
	})
}

func TestGetGroceryList(t *testing.T) {
	t.Run("missing list maps to 404", func(t *testing.T) {
		f := newAPIFixture(t)

		f.grocery.On("GetGroceryList", mock.Anything, f.userID, mock.Anything).
			Return(nil, errors.NewNotFoundError("grocery list"))

		rec := httptest.NewRecorder()
		f.api.GetGroceryList(rec, f.request(http.MethodGet, "/api/v1/grocery-list?week_start_date=2025-03-03", nil))

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestGetCurrentUser(t *testing.T) {
	t.Run("ensures the user from identity claims", func(t *testing.T) {
		f := newAPIFixture(t)

		f.users.On("EnsureUser", mock.Anything, mock.MatchedBy(func(cmd inbound.EnsureUserCommand) bool {
			return cmd.UserID == f.userID && cmd.Email == "cook@example.com"
		})).Return(&inbound.UserDTO{ID: f.userID, Email: "cook@example.com", MealCredits: 10}, nil)

		rec := httptest.NewRecorder()
		f.api.GetCurrentUser(rec, f.request(http.MethodGet, "/api/v1/auth/user", nil))

		require.Equal(t, http.StatusOK, rec.Code)

		var dto inbound.UserDTO
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &dto))
		assert.Equal(t, 10, dto.MealCredits)
	})

	t.Run("missing identity maps to 401", func(t *testing.T) {
		f := newAPIFixture(t)

		rec := httptest.NewRecorder()
		f.api.GetCurrentUser(rec, httptest.NewRequest(http.MethodGet, "/api/v1/auth/user", nil))

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		f.users.AssertNotCalled(t, "EnsureUser", mock.Anything, mock.Anything)
	})
}

func TestUpdatePreferences(t *testing.T) {
	f := newAPIFixture(t)

	f.users.On("SetPreferences", mock.Anything, mock.MatchedBy(func(cmd inbound.SetPreferencesCommand) bool {
		return cmd.UserID == f.userID &&
			cmd.ProteinPreferences != nil && len(*cmd.ProteinPreferences) == 2 &&
			cmd.CuisinePreferences == nil
	})).Return(&inbound.PreferencesDTO{
		UserID:             f.userID,
		ProteinPreferences: []string{"chicken", "tofu"},
	}, nil)

	rec := httptest.NewRecorder()
	f.api.UpdatePreferences(rec, f.request(http.MethodPut, "/api/v1/preferences", map[string]interface{}{
		"protein_preferences": []string{"chicken", "tofu"},
	}))

	require.Equal(t, http.StatusOK, rec.Code)
	f.users.AssertExpectations(t)
}
