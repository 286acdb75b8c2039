// Package handlers provides the REST API handlers
package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jarrett-joe/my-meal-planner/internal/domain/mealplan"
	"github.com/jarrett-joe/my-meal-planner/internal/infrastructure/http/middleware"
	"github.com/jarrett-joe/my-meal-planner/internal/ports/inbound"
	"github.com/jarrett-joe/my-meal-planner/pkg/errors"
)

// API bundles the application services behind the REST surface
type API struct {
	recipes  inbound.RecipeService
	mealPlan inbound.MealPlanService
	grocery  inbound.GroceryService
	users    inbound.UserService
	validate *validator.Validate
	logger   *zap.Logger
}

// NewAPI creates the REST API handler set
func NewAPI(
	recipes inbound.RecipeService,
	mealPlan inbound.MealPlanService,
	grocery inbound.GroceryService,
	users inbound.UserService,
	logger *zap.Logger,
) *API {
	return &API{
		recipes:  recipes,
		mealPlan: mealPlan,
		grocery:  grocery,
		users:    users,
		validate: validator.New(),
		logger:   logger.Named("api"),
	}
}

// Request bodies

type createRecipeRequest struct {
	Title        string   `json:"title" validate:"required,min=3,max=200"`
	Description  string   `json:"description"`
	Cuisine      string   `json:"cuisine"`
	Protein      string   `json:"protein"`
	CookingTime  int      `json:"cooking_time" validate:"gte=0"`
	Rating       float64  `json:"rating" validate:"gte=0,lte=5"`
	Ingredients  []string `json:"ingredients" validate:"required,min=1"`
	Instructions string   `json:"instructions"`
	ImageURL     string   `json:"image_url"`
	SourceURL    string   `json:"source_url"`
}

type suggestMealsRequest struct {
	Count               int      `json:"count" validate:"gte=0,lte=12"`
	ProteinPreferences  []string `json:"protein_preferences"`
	CuisinePreferences  []string `json:"cuisine_preferences"`
	DietaryRestrictions []string `json:"dietary_restrictions"`
}

type scheduleMealRequest struct {
	Date     string `json:"date" validate:"required"`
	MealSlot string `json:"meal_slot" validate:"required"`
	RecipeID string `json:"recipe_id" validate:"required,uuid"`
}

type generateGroceryListRequest struct {
	RecipeIDs *[]string `json:"recipe_ids"`
	WeekStart string    `json:"week_start_date" validate:"required"`
}

type setPreferencesRequest struct {
	ProteinPreferences  *[]string `json:"protein_preferences"`
	CuisinePreferences  *[]string `json:"cuisine_preferences"`
	DietaryRestrictions *[]string `json:"dietary_restrictions"`
}

// GetCurrentUser upserts and returns the authenticated user's record
func (a *API) GetCurrentUser(w http.ResponseWriter, r *http.Request) {
	current, ok := middleware.CurrentUserFrom(r.Context())
	if !ok {
		a.respondError(w, r, errors.NewUnauthorizedError(""))
		return
	}

	dto, err := a.users.EnsureUser(r.Context(), inbound.EnsureUserCommand{
		UserID:    current.ID,
		Email:     current.Email,
		FirstName: current.FirstName,
		LastName:  current.LastName,
	})
	if err != nil {
		a.respondError(w, r, errors.Wrap(err, "ensure user"))
		return
	}
	a.respondJSON(w, http.StatusOK, dto)
}

// GetPreferences returns the user's stored preference set
func (a *API) GetPreferences(w http.ResponseWriter, r *http.Request) {
	current, _ := middleware.CurrentUserFrom(r.Context())

	dto, err := a.users.GetPreferences(r.Context(), current.ID)
	if err != nil {
		a.respondError(w, r, errors.Wrap(err, "get preferences"))
		return
	}
	a.respondJSON(w, http.StatusOK, dto)
}

// UpdatePreferences applies a partial preference update
func (a *API) UpdatePreferences(w http.ResponseWriter, r *http.Request) {
	current, _ := middleware.CurrentUserFrom(r.Context())

	var req setPreferencesRequest
	if !a.decode(w, r, &req) {
		return
	}

	dto, err := a.users.SetPreferences(r.Context(), inbound.SetPreferencesCommand{
		UserID:              current.ID,
		ProteinPreferences:  req.ProteinPreferences,
		CuisinePreferences:  req.CuisinePreferences,
		DietaryRestrictions: req.DietaryRestrictions,
	})
	if err != nil {
		a.respondError(w, r, errors.Wrap(err, "set preferences"))
		return
	}
	a.respondJSON(w, http.StatusOK, dto)
}

// CreateRecipe stores a manually entered recipe
func (a *API) CreateRecipe(w http.ResponseWriter, r *http.Request) {
	current, _ := middleware.CurrentUserFrom(r.Context())

	var req createRecipeRequest
	if !a.decode(w, r, &req) {
		return
	}

	ownerID := current.ID
	dto, err := a.recipes.CreateRecipe(r.Context(), inbound.CreateRecipeCommand{
		Title:        req.Title,
		Description:  req.Description,
		Cuisine:      req.Cuisine,
		Protein:      req.Protein,
		CookingTime:  req.CookingTime,
		Rating:       req.Rating,
		Ingredients:  req.Ingredients,
		Instructions: req.Instructions,
		ImageURL:     req.ImageURL,
		SourceURL:    req.SourceURL,
		OwnerID:      &ownerID,
	})
	if err != nil {
		a.respondError(w, r, errors.Wrap(err, "create recipe"))
		return
	}
	a.respondJSON(w, http.StatusCreated, dto)
}

// ListRecipes returns stored recipes filtered by optional tags
func (a *API) ListRecipes(w http.ResponseWriter, r *http.Request) {
	query := inbound.ListRecipesQuery{
		Cuisine: r.URL.Query().Get("cuisine"),
		Protein: r.URL.Query().Get("protein"),
	}
	if limit := r.URL.Query().Get("limit"); limit != "" {
		n, err := strconv.Atoi(limit)
		if err != nil || n <= 0 {
			a.respondError(w, r, errors.NewValidationError("limit must be a positive integer"))
			return
		}
		query.Limit = n
	}

	dtos, err := a.recipes.ListRecipes(r.Context(), query)
	if err != nil {
		a.respondError(w, r, errors.Wrap(err, "list recipes"))
		return
	}
	a.respondJSON(w, http.StatusOK, dtos)
}

// GetRecipe returns a single recipe record
func (a *API) GetRecipe(w http.ResponseWriter, r *http.Request) {
	recipeID, ok := a.uuidParam(w, r, "recipeID")
	if !ok {
		return
	}

	dto, err := a.recipes.GetRecipeByID(r.Context(), recipeID)
	if err != nil {
		a.respondError(w, r, errors.Wrap(err, "get recipe"))
		return
	}
	a.respondJSON(w, http.StatusOK, dto)
}

// SuggestMeals asks the AI backend for meal suggestions
func (a *API) SuggestMeals(w http.ResponseWriter, r *http.Request) {
	current, _ := middleware.CurrentUserFrom(r.Context())

	var req suggestMealsRequest
	if !a.decode(w, r, &req) {
		return
	}

	dtos, err := a.recipes.SuggestMeals(r.Context(), inbound.SuggestMealsCommand{
		UserID:              current.ID,
		Count:               req.Count,
		ProteinPreferences:  req.ProteinPreferences,
		CuisinePreferences:  req.CuisinePreferences,
		DietaryRestrictions: req.DietaryRestrictions,
	})
	if err != nil {
		a.respondError(w, r, errors.Wrap(err, "suggest meals"))
		return
	}
	a.respondJSON(w, http.StatusOK, dtos)
}

// ListFavorites returns the user's favorites joined with recipes
func (a *API) ListFavorites(w http.ResponseWriter, r *http.Request) {
	current, _ := middleware.CurrentUserFrom(r.Context())

	dtos, err := a.recipes.ListFavorites(r.Context(), current.ID)
	if err != nil {
		a.respondError(w, r, errors.Wrap(err, "list favorites"))
		return
	}
	a.respondJSON(w, http.StatusOK, dtos)
}

// AddFavorite records a favorite; duplicates are a silent success
func (a *API) AddFavorite(w http.ResponseWriter, r *http.Request) {
	current, _ := middleware.CurrentUserFrom(r.Context())
	recipeID, ok := a.uuidParam(w, r, "recipeID")
	if !ok {
		return
	}

	if err := a.recipes.AddFavorite(r.Context(), current.ID, recipeID); err != nil {
		a.respondError(w, r, errors.Wrap(err, "add favorite"))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// RemoveFavorite removes a favorite; absent pairs are a silent success
func (a *API) RemoveFavorite(w http.ResponseWriter, r *http.Request) {
	current, _ := middleware.CurrentUserFrom(r.Context())
	recipeID, ok := a.uuidParam(w, r, "recipeID")
	if !ok {
		return
	}

	if err := a.recipes.RemoveFavorite(r.Context(), current.ID, recipeID); err != nil {
		a.respondError(w, r, errors.Wrap(err, "remove favorite"))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ListCalendar returns scheduled meals in the inclusive [start, end] range
func (a *API) ListCalendar(w http.ResponseWriter, r *http.Request) {
	current, _ := middleware.CurrentUserFrom(r.Context())

	from, err := mealplan.ParseDate(r.URL.Query().Get("start"))
	if err != nil {
		a.respondError(w, r, errors.NewValidationError("start must be a YYYY-MM-DD date"))
		return
	}
	to, err := mealplan.ParseDate(r.URL.Query().Get("end"))
	if err != nil {
		a.respondError(w, r, errors.NewValidationError("end must be a YYYY-MM-DD date"))
		return
	}

	dtos, err := a.mealPlan.ListCalendar(r.Context(), inbound.ListCalendarQuery{
		UserID: current.ID,
		From:   from,
		To:     to,
	})
	if err != nil {
		a.respondError(w, r, errors.Wrap(err, "list calendar"))
		return
	}
	a.respondJSON(w, http.StatusOK, dtos)
}

// ScheduleMeal upserts a calendar entry at (user, date, slot)
func (a *API) ScheduleMeal(w http.ResponseWriter, r *http.Request) {
	current, _ := middleware.CurrentUserFrom(r.Context())

	var req scheduleMealRequest
	if !a.decode(w, r, &req) {
		return
	}

	date, err := mealplan.ParseDate(req.Date)
	if err != nil {
		a.respondError(w, r, errors.NewValidationError("date must be a YYYY-MM-DD date"))
		return
	}
	slot, err := mealplan.ParseSlot(req.MealSlot)
	if err != nil {
		a.respondError(w, r, errors.NewUnknownMealSlotError(req.MealSlot))
		return
	}
	recipeID, err := uuid.Parse(req.RecipeID)
	if err != nil {
		a.respondError(w, r, errors.NewValidationError("recipe_id must be a UUID"))
		return
	}

	dto, err := a.mealPlan.ScheduleMeal(r.Context(), inbound.ScheduleMealCommand{
		UserID:   current.ID,
		Date:     date,
		Slot:     slot,
		RecipeID: recipeID,
	})
	if err != nil {
		a.respondError(w, r, errors.Wrap(err, "schedule meal"))
		return
	}
	a.respondJSON(w, http.StatusOK, dto)
}

// UnscheduleMeal removes the calendar entry at (user, date, slot)
func (a *API) UnscheduleMeal(w http.ResponseWriter, r *http.Request) {
	current, _ := middleware.CurrentUserFrom(r.Context())

	date, err := mealplan.ParseDate(chi.URLParam(r, "date"))
	if err != nil {
		a.respondError(w, r, errors.NewValidationError("date must be a YYYY-MM-DD date"))
		return
	}
	slot, err := mealplan.ParseSlot(chi.URLParam(r, "slot"))
	if err != nil {
		a.respondError(w, r, errors.NewUnknownMealSlotError(chi.URLParam(r, "slot")))
		return
	}

	if err := a.mealPlan.UnscheduleMeal(r.Context(), inbound.UnscheduleMealCommand{
		UserID: current.ID,
		Date:   date,
		Slot:   slot,
	}); err != nil {
		a.respondError(w, r, errors.Wrap(err, "unschedule meal"))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GenerateGroceryList generates and stores the week's grocery list
func (a *API) GenerateGroceryList(w http.ResponseWriter, r *http.Request) {
	current, _ := middleware.CurrentUserFrom(r.Context())

	var req generateGroceryListRequest
	if !a.decode(w, r, &req) {
		return
	}

	weekStart, err := mealplan.ParseDate(req.WeekStart)
	if err != nil {
		a.respondError(w, r, errors.NewValidationError("week_start_date must be a YYYY-MM-DD date"))
		return
	}

	cmd := inbound.GenerateGroceryListCommand{
		UserID:    current.ID,
		WeekStart: weekStart,
	}
	if req.RecipeIDs != nil {
		ids := make([]uuid.UUID, 0, len(*req.RecipeIDs))
		for _, raw := range *req.RecipeIDs {
			id, err := uuid.Parse(raw)
			if err != nil {
				a.respondError(w, r, errors.NewValidationError("recipe_ids must be UUIDs"))
				return
			}
			ids = append(ids, id)
		}
		cmd.RecipeIDs = &ids
	}

	dto, err := a.grocery.GenerateGroceryList(r.Context(), cmd)
	if err != nil {
		a.respondError(w, r, errors.Wrap(err, "generate grocery list"))
		return
	}
	a.respondJSON(w, http.StatusOK, dto)
}

// GetGroceryList returns the stored list for the given week
func (a *API) GetGroceryList(w http.ResponseWriter, r *http.Request) {
	current, _ := middleware.CurrentUserFrom(r.Context())

	weekStart, err := mealplan.ParseDate(r.URL.Query().Get("week_start_date"))
	if err != nil {
		a.respondError(w, r, errors.NewValidationError("week_start_date must be a YYYY-MM-DD date"))
		return
	}

	dto, err := a.grocery.GetGroceryList(r.Context(), current.ID, weekStart)
	if err != nil {
		a.respondError(w, r, errors.Wrap(err, "get grocery list"))
		return
	}
	a.respondJSON(w, http.StatusOK, dto)
}

// Helpers

func (a *API) decode(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		a.respondError(w, r, errors.NewBadRequestError("Malformed JSON body"))
		return false
	}
	if err := a.validate.Struct(dst); err != nil {
		a.respondError(w, r, errors.NewValidationError(err.Error()))
		return false
	}
	return true
}

func (a *API) uuidParam(w http.ResponseWriter, r *http.Request, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, name))
	if err != nil {
		a.respondError(w, r, errors.NewValidationError(name+" must be a UUID"))
		return uuid.Nil, false
	}
	return id, true
}

func (a *API) respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		a.logger.Error("Failed to encode response", zap.Error(err))
	}
}

func (a *API) respondError(w http.ResponseWriter, r *http.Request, err *errors.AppError) {
	if err.StatusCode() >= http.StatusInternalServerError {
		a.logger.Error("Request failed",
			zap.String("url", r.URL.String()),
			zap.String("code", string(err.Code)),
			zap.Error(err),
		)
	}
	middleware.WriteError(w, r, err)
}
